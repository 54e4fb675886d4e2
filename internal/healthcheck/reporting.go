package healthcheck

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

const (
	startBannerMessageConstant              = "🔍 Dependency Health Check Starting...\n"
	rootCheckingMessageConstant             = "📦 Checking root workspace dependencies..."
	rootResolvedMessageConstant             = "✅ Root: All dependencies resolved"
	rootMissingMessageConstant              = "⚠️  Root: Missing dependencies detected"
	rootInstallingMessageConstant           = "🔧 Installing root dependencies..."
	rootFixedMessageConstant                = "✅ Root: Dependencies fixed"
	rootFailedMessageConstant               = "❌ Root: Failed to fix dependencies"
	workspaceCheckingTemplateConstant       = "📦 Checking workspace: %s"
	workspaceSkippedTemplateConstant        = "⚠️  %s not found in %s, skipping..."
	workspaceResolvedTemplateConstant       = "✅ %s: All dependencies resolved"
	workspaceMissingTemplateConstant        = "⚠️  %s: Missing dependencies detected"
	workspaceInstallingTemplateConstant     = "🔧 Installing missing dependencies for %s..."
	workspaceFixedTemplateConstant          = "✅ %s: Dependencies fixed"
	workspaceFailedTemplateConstant         = "❌ %s: Failed to fix dependencies"
	summaryHeadingMessageConstant           = "\n🏥 Health Check Summary:"
	summaryHintTemplateConstant             = "- %s"
	securityHeadingMessageConstant          = "\n🔒 Security Check:"
	securityVulnerabilitiesTemplateConstant = "⚠️  Security vulnerabilities found. Run: %s audit fix"
	completedMessageConstant                = "\n✨ Dependency health check completed!"
)

// outcomeMessages holds the lines printed while probing and repairing one workspace.
type outcomeMessages struct {
	checking   string
	resolved   string
	missing    string
	installing string
	fixed      string
	failed     string
}

func rootOutcomeMessages() outcomeMessages {
	return outcomeMessages{
		checking:   rootCheckingMessageConstant,
		resolved:   rootResolvedMessageConstant,
		missing:    rootMissingMessageConstant,
		installing: rootInstallingMessageConstant,
		fixed:      rootFixedMessageConstant,
		failed:     rootFailedMessageConstant,
	}
}

func workspaceOutcomeMessages(workspace string) outcomeMessages {
	return outcomeMessages{
		checking:   fmt.Sprintf(workspaceCheckingTemplateConstant, workspace),
		resolved:   fmt.Sprintf(workspaceResolvedTemplateConstant, workspace),
		missing:    fmt.Sprintf(workspaceMissingTemplateConstant, workspace),
		installing: fmt.Sprintf(workspaceInstallingTemplateConstant, workspace),
		fixed:      fmt.Sprintf(workspaceFixedTemplateConstant, workspace),
		failed:     fmt.Sprintf(workspaceFailedTemplateConstant, workspace),
	}
}

// consoleReporter prints the user-facing progress lines.
type consoleReporter struct {
	writer  io.Writer
	heading func(a ...interface{}) string
	info    func(a ...interface{}) string
	success func(a ...interface{}) string
	warning func(a ...interface{}) string
	failure func(a ...interface{}) string
}

func newConsoleReporter(writer io.Writer, colorEnabled bool) *consoleReporter {
	if writer == nil {
		writer = io.Discard
	}
	return &consoleReporter{
		writer:  writer,
		heading: colorFunc(colorEnabled, color.FgCyan, color.Bold),
		info:    colorFunc(colorEnabled, color.FgBlue),
		success: colorFunc(colorEnabled, color.FgGreen),
		warning: colorFunc(colorEnabled, color.FgYellow),
		failure: colorFunc(colorEnabled, color.FgRed),
	}
}

func colorFunc(enabled bool, attributes ...color.Attribute) func(a ...interface{}) string {
	printer := color.New(attributes...)
	if enabled {
		printer.EnableColor()
	} else {
		printer.DisableColor()
	}
	return printer.SprintFunc()
}

func (reporter *consoleReporter) printLine(styler func(a ...interface{}) string, message string) {
	fmt.Fprintln(reporter.writer, styler(message))
}

func (reporter *consoleReporter) blankLine() {
	fmt.Fprintln(reporter.writer)
}

func (reporter *consoleReporter) started() {
	reporter.printLine(reporter.heading, startBannerMessageConstant)
}

func (reporter *consoleReporter) skipped(manifestFile string, workspace string) {
	reporter.printLine(reporter.warning, fmt.Sprintf(workspaceSkippedTemplateConstant, manifestFile, workspace))
}

func (reporter *consoleReporter) summary(hints []string) {
	reporter.printLine(reporter.heading, summaryHeadingMessageConstant)
	for _, hint := range hints {
		fmt.Fprintln(reporter.writer, fmt.Sprintf(summaryHintTemplateConstant, hint))
	}
}

func (reporter *consoleReporter) securityCheck() {
	reporter.printLine(reporter.heading, securityHeadingMessageConstant)
}

func (reporter *consoleReporter) vulnerabilitiesFound(executable string) {
	reporter.printLine(reporter.warning, fmt.Sprintf(securityVulnerabilitiesTemplateConstant, executable))
}

func (reporter *consoleReporter) completed() {
	reporter.printLine(reporter.heading, completedMessageConstant)
}
