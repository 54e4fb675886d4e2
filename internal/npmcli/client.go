package npmcli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/dephealth/internal/execshell"
)

const (
	listSubcommandConstant                  = "ls"
	installSubcommandConstant               = "install"
	auditSubcommandConstant                 = "audit"
	depthFlagTemplateConstant               = "--depth=%s"
	auditLevelFlagTemplateConstant          = "--audit-level=%s"
	defaultListDepthConstant                = 0
	defaultPeerDependencyFlagConstant       = "--legacy-peer-deps"
	defaultAuditLevelConstant               = "high"
	workingDirectoryFieldNameConstant       = "working_directory"
	requiredValueMessageConstant            = "value required"
	executorNotConfiguredMessageConstant    = "npm executor not configured"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	listInstalledOperationNameConstant      = OperationName("ListInstalled")
	installOperationNameConstant            = OperationName("Install")
	auditOperationNameConstant              = OperationName("Audit")
)

// OperationName describes a named npm workflow supported by the client.
type OperationName string

// Configuration controls the arguments passed to the package manager.
type Configuration struct {
	Executable         string
	ListDepth          int
	PeerDependencyFlag string
	AuditLevel         string
}

// DefaultConfiguration returns the npm arguments used by the health check.
func DefaultConfiguration() Configuration {
	return Configuration{
		Executable:         string(execshell.CommandNPM),
		ListDepth:          defaultListDepthConstant,
		PeerDependencyFlag: defaultPeerDependencyFlagConstant,
		AuditLevel:         defaultAuditLevelConstant,
	}
}

func (configuration Configuration) sanitize() Configuration {
	defaults := DefaultConfiguration()
	sanitized := Configuration{
		Executable:         strings.TrimSpace(configuration.Executable),
		ListDepth:          configuration.ListDepth,
		PeerDependencyFlag: strings.TrimSpace(configuration.PeerDependencyFlag),
		AuditLevel:         strings.TrimSpace(configuration.AuditLevel),
	}
	if len(sanitized.Executable) == 0 {
		sanitized.Executable = defaults.Executable
	}
	if sanitized.ListDepth < 0 {
		sanitized.ListDepth = defaults.ListDepth
	}
	if len(sanitized.PeerDependencyFlag) == 0 {
		sanitized.PeerDependencyFlag = defaults.PeerDependencyFlag
	}
	if len(sanitized.AuditLevel) == 0 {
		sanitized.AuditLevel = defaults.AuditLevel
	}
	return sanitized
}

// NPMCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type NPMCommandExecutor interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
}

// Client coordinates npm invocations through execshell.
type Client struct {
	executor      NPMCommandExecutor
	configuration Configuration
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for npm operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// NewClient constructs an npm client. Empty configuration fields fall back to DefaultConfiguration.
func NewClient(executor NPMCommandExecutor, configuration Configuration) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor, configuration: configuration.sanitize()}, nil
}

// ListInstalled runs npm ls at the configured depth with captured output.
// A nil error means every declared dependency resolved.
func (client *Client) ListInstalled(executionContext context.Context, workingDirectory string) error {
	arguments := []string{
		listSubcommandConstant,
		fmt.Sprintf(depthFlagTemplateConstant, strconv.Itoa(client.configuration.ListDepth)),
	}
	return client.run(executionContext, listInstalledOperationNameConstant, workingDirectory, arguments, execshell.OutputModeCaptured)
}

// Install runs npm install with the configured peer dependency flag, streaming output to the terminal.
func (client *Client) Install(executionContext context.Context, workingDirectory string) error {
	arguments := []string{installSubcommandConstant, client.configuration.PeerDependencyFlag}
	return client.run(executionContext, installOperationNameConstant, workingDirectory, arguments, execshell.OutputModeStreamed)
}

// Audit runs npm audit at the configured severity threshold, streaming output to the terminal.
// npm exits non-zero when vulnerabilities at or above the threshold exist.
func (client *Client) Audit(executionContext context.Context, workingDirectory string) error {
	arguments := []string{
		auditSubcommandConstant,
		fmt.Sprintf(auditLevelFlagTemplateConstant, client.configuration.AuditLevel),
	}
	return client.run(executionContext, auditOperationNameConstant, workingDirectory, arguments, execshell.OutputModeStreamed)
}

func (client *Client) run(executionContext context.Context, operation OperationName, workingDirectory string, arguments []string, outputMode execshell.OutputMode) error {
	trimmedDirectory := strings.TrimSpace(workingDirectory)
	if len(trimmedDirectory) == 0 {
		return InvalidInputError{FieldName: workingDirectoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	command := execshell.ShellCommand{
		Name: execshell.CommandName(client.configuration.Executable),
		Details: execshell.CommandDetails{
			Arguments:        arguments,
			WorkingDirectory: trimmedDirectory,
			OutputMode:       outputMode,
		},
	}

	if _, executionError := client.executor.Execute(executionContext, command); executionError != nil {
		return OperationError{Operation: operation, Cause: executionError}
	}
	return nil
}
