package healthcheck

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/dephealth/internal/execshell"
	"github.com/temirov/dephealth/internal/filesystem"
	"github.com/temirov/dephealth/internal/npmcli"
)

// PackageManager exposes the package manager operations used by the health check.
// Each operation returns a non-nil error when the underlying command fails for any reason.
type PackageManager interface {
	ListInstalled(executionContext context.Context, workingDirectory string) error
	Install(executionContext context.Context, workingDirectory string) error
	Audit(executionContext context.Context, workingDirectory string) error
}

// FileSystem provides the manifest lookups required by the health check.
type FileSystem interface {
	FileExists(path string) (bool, error)
	Abs(path string) (string, error)
}

// ResolvePackageManager returns the provided package manager or constructs an npm client that runs real processes.
// Streamed command output is written to outputWriter and errorWriter.
func ResolvePackageManager(existing PackageManager, logger *zap.Logger, observer execshell.CommandEventObserver, configuration npmcli.Configuration, outputWriter io.Writer, errorWriter io.Writer) (PackageManager, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunnerWithWriters(outputWriter, errorWriter)
	shellExecutor, executorError := execshell.NewShellExecutorWithObserver(logger, commandRunner, observer)
	if executorError != nil {
		return nil, executorError
	}

	client, clientError := npmcli.NewClient(shellExecutor, configuration)
	if clientError != nil {
		return nil, clientError
	}
	return client, nil
}

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing FileSystem) FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}
