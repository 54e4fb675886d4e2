package execshell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"

	"github.com/temirov/dephealth/internal/utils"
)

// OSCommandRunner executes commands using the operating system facilities.
type OSCommandRunner struct {
	standardOutput io.Writer
	standardError  io.Writer
}

// NewOSCommandRunnerWithWriters constructs a runner that streams to the provided writers.
func NewOSCommandRunnerWithWriters(standardOutput io.Writer, standardError io.Writer) *OSCommandRunner {
	if standardOutput == nil {
		standardOutput = io.Discard
	}
	if standardError == nil {
		standardError = io.Discard
	}
	return &OSCommandRunner{
		standardOutput: utils.NewFlushingWriter(standardOutput),
		standardError:  utils.NewFlushingWriter(standardError),
	}
}

// Run executes the supplied command using os/exec.
// Captured commands return their output in the result; streamed commands write it to the runner's writers only.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	commandArguments := append([]string{}, command.Details.Arguments...)
	executable := exec.CommandContext(executionContext, string(command.Name), commandArguments...)

	if len(command.Details.WorkingDirectory) > 0 {
		executable.Dir = command.Details.WorkingDirectory
	}

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	switch command.Details.OutputMode {
	case OutputModeStreamed:
		executable.Stdout = runner.standardOutput
		executable.Stderr = runner.standardError
	default:
		executable.Stdout = &standardOutputBuffer
		executable.Stderr = &standardErrorBuffer
	}

	runError := executable.Run()
	if runError != nil {
		exitError := &exec.ExitError{}
		if errors.As(runError, &exitError) && executionContext.Err() == nil {
			return ExecutionResult{
				StandardOutput: standardOutputBuffer.String(),
				StandardError:  standardErrorBuffer.String(),
				ExitCode:       exitError.ExitCode(),
			}, nil
		}
		return ExecutionResult{}, runError
	}

	return ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
		ExitCode:       0,
	}, nil
}
