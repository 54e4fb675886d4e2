package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	flagPrefixConstant                      = "-"
	flagValueSeparatorConstant              = "="
)

const (
	npmListSubcommandNameConstant     = "ls"
	npmListAliasSubcommandConstant    = "list"
	npmInstallSubcommandNameConstant  = "install"
	npmInstallAliasSubcommandConstant = "i"
	npmAuditSubcommandNameConstant    = "audit"
	npmDepthFlagConstant              = "--depth"
	npmAuditLevelFlagConstant         = "--audit-level"
	npmDefaultAuditLevelConstant      = "low"
)

const (
	npmListStartTemplateConstant               = "Listing installed dependencies in %s"
	npmListDepthStartTemplateConstant          = "Listing installed dependencies at depth %s in %s"
	npmListSuccessTemplateConstant             = "All declared dependencies resolved in %s"
	npmListFailureTemplateConstant             = "Unresolved dependencies in %s (exit code %d%s)"
	npmListExecutionFailureTemplateConstant    = "Unable to list dependencies in %s: %s"
	npmInstallStartTemplateConstant            = "Installing dependencies in %s"
	npmInstallFlagsStartTemplateConstant       = "Installing dependencies in %s with %s"
	npmInstallSuccessTemplateConstant          = "Installed dependencies in %s"
	npmInstallFailureTemplateConstant          = "Failed to install dependencies in %s (exit code %d%s)"
	npmInstallExecutionFailureTemplateConstant = "Unable to install dependencies in %s: %s"
	npmAuditStartTemplateConstant              = "Auditing dependencies in %s at severity %s or above"
	npmAuditSuccessTemplateConstant            = "No vulnerabilities at severity %s or above in %s"
	npmAuditFailureTemplateConstant            = "Vulnerabilities at severity %s or above reported in %s (exit code %d%s)"
	npmAuditExecutionFailureTemplateConstant   = "Unable to audit dependencies in %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case npmListSubcommandNameConstant, npmListAliasSubcommandConstant:
		return formatter.describeListMessage(command, result, failure, stage)
	case npmInstallSubcommandNameConstant, npmInstallAliasSubcommandConstant:
		return formatter.describeInstallMessage(command, result, failure, stage)
	case npmAuditSubcommandNameConstant:
		return formatter.describeAuditMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeListMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		depth := findFlagValue(command.Details.Arguments, npmDepthFlagConstant)
		if len(depth) == 0 {
			return fmt.Sprintf(npmListStartTemplateConstant, workingDirectory)
		}
		return fmt.Sprintf(npmListDepthStartTemplateConstant, depth, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(npmListSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(npmListFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(npmListExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeInstallMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		installFlags := collectFlags(command.Details.Arguments[1:])
		if len(installFlags) == 0 {
			return fmt.Sprintf(npmInstallStartTemplateConstant, workingDirectory)
		}
		return fmt.Sprintf(npmInstallFlagsStartTemplateConstant, workingDirectory, strings.Join(installFlags, ", "))
	case messageStageSuccess:
		return fmt.Sprintf(npmInstallSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(npmInstallFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(npmInstallExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeAuditMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	auditLevel := findFlagValue(command.Details.Arguments, npmAuditLevelFlagConstant)
	if len(auditLevel) == 0 {
		auditLevel = npmDefaultAuditLevelConstant
	}
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(npmAuditStartTemplateConstant, workingDirectory, auditLevel)
	case messageStageSuccess:
		return fmt.Sprintf(npmAuditSuccessTemplateConstant, auditLevel, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(npmAuditFailureTemplateConstant, auditLevel, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(npmAuditExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	label := describeCommand(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, label)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, label)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, label, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, label, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmed := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmed) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmed := strings.TrimSpace(standardError)
	if len(trimmed) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmed)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

// findFlagValue supports both "--flag value" and "--flag=value" spellings.
func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments); index++ {
		trimmed := strings.TrimSpace(arguments[index])
		if trimmed == flag && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
		if strings.HasPrefix(trimmed, flag+flagValueSeparatorConstant) {
			return strings.TrimPrefix(trimmed, flag+flagValueSeparatorConstant)
		}
	}
	return emptyStringConstant
}

func collectFlags(arguments []string) []string {
	var flags []string
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if strings.HasPrefix(trimmed, flagPrefixConstant) {
			flags = append(flags, trimmed)
		}
	}
	return flags
}
