package healthcheck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	pathutils "github.com/temirov/dephealth/internal/utils/path"
)

const (
	notProjectRootMessageConstant              = "must be run from the project root directory"
	packageManagerNotConfiguredMessageConstant = "health check package manager not configured"
	fileSystemNotConfiguredMessageConstant     = "health check filesystem not configured"
	manifestMissingErrorTemplateConstant       = "%w: %s not found"
	manifestInspectionErrorTemplateConstant    = "unable to inspect %s: %w"
	rootWorkspaceNameConstant                  = "root"
	logMessageProjectRootVerifiedConstant      = "project root verified"
	logMessageProbeFailedConstant              = "dependency probe failed"
	logMessageInstallFailedConstant            = "dependency install failed"
	logMessageManifestInspectionFailedConstant = "unable to inspect workspace manifest; skipping"
	logMessageAuditFailedConstant              = "security audit reported findings"
	logMessageRunCompletedConstant             = "health check completed"
	logFieldWorkspaceConstant                  = "workspace"
	logFieldPathConstant                       = "path"
	logFieldProjectRootConstant                = "project_root"
	logFieldResolvedCountConstant              = "resolved"
	logFieldRepairedCountConstant              = "repaired"
	logFieldRepairFailedCountConstant          = "repair_failed"
	logFieldSkippedCountConstant               = "skipped"
	logFieldAuditConstant                      = "audit"
)

var (
	// ErrNotProjectRoot indicates the health check was started outside the project root.
	ErrNotProjectRoot = errors.New(notProjectRootMessageConstant)
	// ErrPackageManagerNotConfigured indicates a missing package manager dependency.
	ErrPackageManagerNotConfigured = errors.New(packageManagerNotConfiguredMessageConstant)
	// ErrFileSystemNotConfigured indicates a missing filesystem dependency.
	ErrFileSystemNotConfigured = errors.New(fileSystemNotConfiguredMessageConstant)
)

// Dependencies enumerates the collaborators required by Service.
type Dependencies struct {
	PackageManager PackageManager
	FileSystem     FileSystem
	Logger         *zap.Logger
	Output         io.Writer
	ColorOutput    bool
	HomeExpander   *pathutils.HomeExpander
}

// Service runs the dependency health check for one project.
type Service struct {
	configuration  CommandConfiguration
	packageManager PackageManager
	fileSystem     FileSystem
	logger         *zap.Logger
	reporter       *consoleReporter
}

// NewService validates dependencies and sanitizes the configuration.
func NewService(configuration CommandConfiguration, dependencies Dependencies) (*Service, error) {
	if dependencies.PackageManager == nil {
		return nil, ErrPackageManagerNotConfigured
	}
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	homeExpander := dependencies.HomeExpander
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}

	return &Service{
		configuration:  configuration.sanitize(homeExpander),
		packageManager: dependencies.PackageManager,
		fileSystem:     dependencies.FileSystem,
		logger:         logger,
		reporter:       newConsoleReporter(dependencies.Output, dependencies.ColorOutput),
	}, nil
}

// Configuration returns the sanitized configuration the service runs with.
func (service *Service) Configuration() CommandConfiguration {
	return service.configuration
}

// Run checks the project root, then every configured workspace in order, prints the summary hints and
// finishes with a single security audit. Dependency and audit failures are recorded in the report and never
// returned; the error is non-nil only when the project root check fails or the context ends early.
func (service *Service) Run(executionContext context.Context) (Report, error) {
	if executionContext == nil {
		executionContext = context.Background()
	}

	report := Report{Audit: AuditStatusNotRun}
	service.reporter.started()

	if verificationError := service.VerifyProjectRoot(service.configuration.ProjectRoot); verificationError != nil {
		return report, verificationError
	}

	report.Workspaces = append(report.Workspaces, service.CheckRoot(executionContext))

	for _, workspace := range service.configuration.Workspaces {
		if contextError := executionContext.Err(); contextError != nil {
			return report, contextError
		}
		report.Workspaces = append(report.Workspaces, service.CheckWorkspace(executionContext, workspace))
	}

	service.reporter.summary(service.configuration.SummaryHints)

	if contextError := executionContext.Err(); contextError != nil {
		return report, contextError
	}
	report.Audit = service.Audit(executionContext)

	service.reporter.completed()
	service.logger.Info(
		logMessageRunCompletedConstant,
		zap.Int(logFieldResolvedCountConstant, report.CountByStatus(WorkspaceStatusResolved)),
		zap.Int(logFieldRepairedCountConstant, report.CountByStatus(WorkspaceStatusRepairedOK)),
		zap.Int(logFieldRepairFailedCountConstant, report.CountByStatus(WorkspaceStatusRepairFailed)),
		zap.Int(logFieldSkippedCountConstant, report.CountByStatus(WorkspaceStatusSkipped)),
		zap.String(logFieldAuditConstant, string(report.Audit)),
	)
	return report, nil
}

// VerifyProjectRoot confirms that projectRoot holds the root manifest and the manifest of every required workspace.
// Missing manifests produce an error wrapping ErrNotProjectRoot.
func (service *Service) VerifyProjectRoot(projectRoot string) error {
	requiredManifests := []string{filepath.Join(projectRoot, service.configuration.ManifestFile)}
	for _, requiredWorkspace := range service.configuration.RequiredWorkspaces {
		requiredManifests = append(requiredManifests, filepath.Join(service.resolveWorkspacePath(projectRoot, requiredWorkspace), service.configuration.ManifestFile))
	}

	for _, manifestPath := range requiredManifests {
		exists, lookupError := service.fileSystem.FileExists(manifestPath)
		if lookupError != nil {
			return fmt.Errorf(manifestInspectionErrorTemplateConstant, manifestPath, lookupError)
		}
		if !exists {
			return fmt.Errorf(manifestMissingErrorTemplateConstant, ErrNotProjectRoot, manifestPath)
		}
	}

	absoluteRoot, absoluteError := service.fileSystem.Abs(projectRoot)
	if absoluteError != nil {
		absoluteRoot = projectRoot
	}
	service.logger.Debug(logMessageProjectRootVerifiedConstant, zap.String(logFieldProjectRootConstant, absoluteRoot))
	return nil
}

// CheckRoot probes the project root and attempts one reinstall when the probe fails.
// The root manifest was confirmed by VerifyProjectRoot, so the root is never skipped.
func (service *Service) CheckRoot(executionContext context.Context) WorkspaceReport {
	messages := rootOutcomeMessages()
	service.reporter.printLine(service.reporter.info, messages.checking)

	rootPath := service.configuration.ProjectRoot
	status := service.probeAndRepair(executionContext, rootWorkspaceNameConstant, rootPath, messages)
	service.reporter.blankLine()
	return WorkspaceReport{Workspace: rootWorkspaceNameConstant, Path: rootPath, Status: status}
}

// CheckWorkspace probes one workspace and attempts one reinstall when the probe fails.
// Workspaces without a manifest are skipped without running any command.
func (service *Service) CheckWorkspace(executionContext context.Context, workspace string) WorkspaceReport {
	messages := workspaceOutcomeMessages(workspace)
	service.reporter.printLine(service.reporter.info, messages.checking)

	workspacePath := service.resolveWorkspacePath(service.configuration.ProjectRoot, workspace)
	manifestPath := filepath.Join(workspacePath, service.configuration.ManifestFile)

	exists, lookupError := service.fileSystem.FileExists(manifestPath)
	if lookupError != nil {
		service.logger.Warn(
			logMessageManifestInspectionFailedConstant,
			zap.String(logFieldWorkspaceConstant, workspace),
			zap.String(logFieldPathConstant, manifestPath),
			zap.Error(lookupError),
		)
	}
	if !exists {
		service.reporter.skipped(service.configuration.ManifestFile, workspace)
		return WorkspaceReport{Workspace: workspace, Path: workspacePath, Status: WorkspaceStatusSkipped}
	}

	status := service.probeAndRepair(executionContext, workspace, workspacePath, messages)
	return WorkspaceReport{Workspace: workspace, Path: workspacePath, Status: status}
}

// Audit runs the security audit once from the project root. Findings are reported as a warning.
func (service *Service) Audit(executionContext context.Context) AuditStatus {
	service.reporter.securityCheck()

	auditError := service.packageManager.Audit(executionContext, service.configuration.ProjectRoot)
	if auditError != nil {
		service.logger.Debug(logMessageAuditFailedConstant, zap.Error(auditError))
		service.reporter.vulnerabilitiesFound(service.configuration.PackageManager.Executable)
		return AuditStatusVulnerabilitiesFound
	}
	return AuditStatusPassed
}

func (service *Service) probeAndRepair(executionContext context.Context, workspace string, workspacePath string, messages outcomeMessages) WorkspaceStatus {
	probeError := service.packageManager.ListInstalled(executionContext, workspacePath)
	if probeError == nil {
		service.reporter.printLine(service.reporter.success, messages.resolved)
		return WorkspaceStatusResolved
	}
	service.logger.Debug(logMessageProbeFailedConstant, zap.String(logFieldWorkspaceConstant, workspace), zap.Error(probeError))

	service.reporter.printLine(service.reporter.warning, messages.missing)
	service.reporter.printLine(service.reporter.info, messages.installing)

	installError := service.packageManager.Install(executionContext, workspacePath)
	if installError == nil {
		service.reporter.printLine(service.reporter.success, messages.fixed)
		return WorkspaceStatusRepairedOK
	}
	service.logger.Debug(logMessageInstallFailedConstant, zap.String(logFieldWorkspaceConstant, workspace), zap.Error(installError))

	service.reporter.printLine(service.reporter.failure, messages.failed)
	return WorkspaceStatusRepairFailed
}

func (service *Service) resolveWorkspacePath(projectRoot string, workspace string) string {
	if filepath.IsAbs(workspace) {
		return workspace
	}
	return filepath.Join(projectRoot, workspace)
}
