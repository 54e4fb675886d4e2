package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	commandNPMStringConstant                     = "npm"
	loggerNotConfiguredMessageConstant           = "shell executor logger not configured"
	commandRunnerNotConfiguredMessageConstant    = "shell executor command runner not configured"
	commandFailedErrorTemplateConstant           = "%s exited with code %d"
	commandFailedWithStderrTemplateConstant      = "%s exited with code %d: %s"
	commandExecutionErrorTemplateConstant        = "%s could not be executed: %v"
	logFieldCommandNameConstant                  = "command"
	logFieldArgumentsConstant                    = "arguments"
	logFieldWorkingDirectoryConstant             = "working_directory"
	logFieldExitCodeConstant                     = "exit_code"
	logFieldOutputModeConstant                   = "output_mode"
	logFieldStandardErrorConstant                = "stderr"
	outputModeCapturedStringConstant             = "captured"
	outputModeStreamedStringConstant             = "streamed"
	commandLabelArgumentsSeparatorConstant       = " "
	commandLabelWithDirectoryTemplateConstant    = "%s (in %s)"
	commandLabelWithoutDirectoryTemplateConstant = "%s"
)

// CommandName identifies an external executable.
type CommandName string

// CommandNPM is the default package manager executable.
const CommandNPM CommandName = CommandName(commandNPMStringConstant)

// OutputMode controls what happens to a command's standard streams.
type OutputMode int

// Supported output modes.
const (
	// OutputModeCaptured buffers standard output and error; nothing reaches the terminal.
	OutputModeCaptured OutputMode = iota
	// OutputModeStreamed forwards standard output and error to the runner's writers while the command runs.
	OutputModeStreamed
)

// String returns the log label of the output mode.
func (mode OutputMode) String() string {
	if mode == OutputModeStreamed {
		return outputModeStreamedStringConstant
	}
	return outputModeCapturedStringConstant
}

// CommandDetails describes a single invocation of an executable.
type CommandDetails struct {
	Arguments        []string
	WorkingDirectory string
	OutputMode       OutputMode
}

// ShellCommand combines the executable name with invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of executing a command.
// Streamed commands leave both output fields empty.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner runs shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandEventObserver receives lifecycle notifications for shell command execution.
type CommandEventObserver interface {
	// CommandStarted notifies observers that command execution is beginning.
	CommandStarted(command ShellCommand)
	// CommandCompleted notifies observers that command execution finished and supplies the result.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed reports failures that prevented an execution result.
	CommandExecutionFailed(command ShellCommand, failure error)
}

type noopCommandEventObserver struct{}

func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}

var (
	// ErrLoggerNotConfigured indicates a missing logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrCommandRunnerNotConfigured indicates a missing command runner.
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
)

// CommandFailedError reports a command that ran and exited with a non-zero code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command.
func (failedError CommandFailedError) Error() string {
	label := describeCommand(failedError.Command)
	standardError := strings.TrimSpace(failedError.Result.StandardError)
	if len(standardError) == 0 {
		return fmt.Sprintf(commandFailedErrorTemplateConstant, label, failedError.Result.ExitCode)
	}
	return fmt.Sprintf(commandFailedWithStderrTemplateConstant, label, failedError.Result.ExitCode, standardError)
}

// CommandExecutionError reports a command that could not be started or awaited.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (executionError CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, describeCommand(executionError.Command), executionError.Cause)
}

// Unwrap exposes the underlying runner error.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

// ShellExecutor runs commands through a CommandRunner, logging lifecycle events.
type ShellExecutor struct {
	logger    *zap.Logger
	runner    CommandRunner
	observer  CommandEventObserver
	formatter CommandMessageFormatter
}

// NewShellExecutorWithObserver constructs a ShellExecutor that notifies the observer about command lifecycle events.
// A nil observer disables notifications.
func NewShellExecutorWithObserver(logger *zap.Logger, runner CommandRunner, observer CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	if observer == nil {
		observer = noopCommandEventObserver{}
	}
	return &ShellExecutor{
		logger:    logger,
		runner:    runner,
		observer:  observer,
		formatter: CommandMessageFormatter{},
	}, nil
}

// Execute runs the command and converts non-zero exits into CommandFailedError.
// Non-zero exits log at debug since callers report them; runner failures log at error.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	commandFields := []zap.Field{
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
		zap.Stringer(logFieldOutputModeConstant, command.Details.OutputMode),
	}

	executor.logger.Debug(executor.formatter.BuildStartedMessage(command), commandFields...)
	executor.observer.CommandStarted(command)

	executionResult, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.logger.Error(executor.formatter.BuildExecutionFailureMessage(command, runError), append(commandFields, zap.Error(runError))...)
		executor.observer.CommandExecutionFailed(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.observer.CommandCompleted(command, executionResult)

	if executionResult.ExitCode != 0 {
		executor.logger.Debug(
			executor.formatter.BuildFailureMessage(command, executionResult),
			append(commandFields,
				zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
				zap.String(logFieldStandardErrorConstant, executionResult.StandardError),
			)...,
		)
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Debug(executor.formatter.BuildSuccessMessage(command), append(commandFields, zap.Int(logFieldExitCodeConstant, 0))...)
	return executionResult, nil
}

func describeCommand(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandLabelArgumentsSeparatorConstant))
	}
	commandLabel := strings.Join(commandParts, commandLabelArgumentsSeparatorConstant)

	workingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(workingDirectory) == 0 {
		return fmt.Sprintf(commandLabelWithoutDirectoryTemplateConstant, commandLabel)
	}
	return fmt.Sprintf(commandLabelWithDirectoryTemplateConstant, commandLabel, workingDirectory)
}
