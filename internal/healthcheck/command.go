package healthcheck

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/dephealth/internal/execshell"
	"github.com/temirov/dephealth/internal/ui"
	"github.com/temirov/dephealth/internal/utils"
)

const (
	commandUseConstant                  = "check"
	commandShortDescriptionConstant     = "Verify and repair workspace dependencies"
	commandLongDescriptionConstant      = "check probes the project root and each configured workspace with npm ls, reinstalls dependencies once where the probe fails, and finishes with an npm audit. It must be run from the project root."
	logMessageConfigurationFileConstant = "configuration file loaded"
	logFieldConfigurationFileConstant   = "configuration_file"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the health check cobra command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	PackageManager        PackageManager
	FileSystem            FileSystem
	CommandEventsObserver execshell.CommandEventObserver
	ConfigurationProvider func() CommandConfiguration
	ColorOutputProvider   func() bool
}

// Build constructs the health check command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()

	contextAccessor := utils.NewCommandContextAccessor()
	if configurationFilePath, recorded := contextAccessor.ConfigurationFilePath(command.Context()); recorded {
		logger.Debug(logMessageConfigurationFileConstant, zap.String(logFieldConfigurationFileConstant, configurationFilePath))
	}

	packageManager, packageManagerError := ResolvePackageManager(
		builder.PackageManager,
		logger,
		builder.CommandEventsObserver,
		configuration.PackageManager.ClientConfiguration(),
		command.OutOrStdout(),
		command.ErrOrStderr(),
	)
	if packageManagerError != nil {
		return packageManagerError
	}

	service, serviceError := NewService(configuration, Dependencies{
		PackageManager: packageManager,
		FileSystem:     ResolveFileSystem(builder.FileSystem),
		Logger:         logger,
		Output:         command.OutOrStdout(),
		ColorOutput:    builder.resolveColorOutput(command),
	})
	if serviceError != nil {
		return serviceError
	}

	_, runError := service.Run(command.Context())
	return runError
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveColorOutput(command *cobra.Command) bool {
	if builder.ColorOutputProvider != nil {
		return builder.ColorOutputProvider()
	}
	outputFile, isFile := command.OutOrStdout().(*os.File)
	if !isFile {
		return false
	}
	return ui.NewColorPolicy().ShouldUseColor(outputFile)
}
