package cli

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/dephealth/internal/execshell"
	"github.com/temirov/dephealth/internal/healthcheck"
	"github.com/temirov/dephealth/internal/ui"
	"github.com/temirov/dephealth/internal/utils"
	flagutils "github.com/temirov/dephealth/internal/utils/flags"
)

const (
	applicationNameConstant                 = "dephealth"
	applicationShortDescriptionConstant     = "Check and repair npm workspace dependencies"
	applicationLongDescriptionConstant      = "dephealth verifies that the project root and every configured workspace resolve their declared npm dependencies, reinstalls them once where they do not, and finishes with a security audit. Run it from the project root."
	versionTemplateConstant                 = "dephealth version: {{.Version}}\n"
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	healthCheckConfigurationKeyConstant     = "health_check"
	environmentPrefixConstant               = "DEPHEALTH"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	commandBuildErrorTemplateConstant       = "unable to build %s command: %w"
	defaultConfigurationSearchPathConstant  = "."
)

// Version is reported by --version. Release builds override it with -ldflags "-X".
var Version = "dev"

var logLevelChoices = []string{
	string(utils.LogLevelDebug),
	string(utils.LogLevelInfo),
	string(utils.LogLevelWarn),
	string(utils.LogLevelError),
}

var logFormatChoices = []string{
	string(utils.LogFormatConsole),
	string(utils.LogFormatStructured),
}

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common      ApplicationCommonConfiguration   `mapstructure:"common"`
	HealthCheck healthcheck.CommandConfiguration `mapstructure:"health_check"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	commandContextAccessor utils.CommandContextAccessor
	healthCheckBuilder     healthcheck.CommandBuilder
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	application.healthCheckBuilder = healthcheck.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		CommandEventsObserver: application,
		ConfigurationProvider: func() healthcheck.CommandConfiguration {
			return application.configuration.HealthCheck
		},
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.SetVersionTemplate(versionTemplateConstant)
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", flagutils.FormatChoiceUsage(string(utils.LogLevelWarn), logLevelChoices, logLevelFlagUsageConstant))
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", flagutils.FormatChoiceUsage(string(utils.LogFormatConsole), logFormatChoices, logFormatFlagUsageConstant))

	checkCommand, checkBuildError := application.healthCheckBuilder.Build()
	if checkBuildError == nil {
		cobraCommand.RunE = checkCommand.RunE
		cobraCommand.AddCommand(checkCommand)
	} else {
		cobraCommand.RunE = func(*cobra.Command, []string) error {
			return fmt.Errorf(commandBuildErrorTemplateConstant, applicationNameConstant, checkBuildError)
		}
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and runs the health check.
func Execute() error {
	return NewApplication().Execute()
}

// CommandStarted forwards package manager lifecycle events to the console event logger when console logging is active.
func (application *Application) CommandStarted(command execshell.ShellCommand) {
	if eventLogger := application.commandEventLogger(); eventLogger != nil {
		eventLogger.CommandStarted(command)
	}
}

// CommandCompleted implements execshell.CommandEventObserver.
func (application *Application) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if eventLogger := application.commandEventLogger(); eventLogger != nil {
		eventLogger.CommandCompleted(command, result)
	}
}

// CommandExecutionFailed implements execshell.CommandEventObserver.
func (application *Application) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if eventLogger := application.commandEventLogger(); eventLogger != nil {
		eventLogger.CommandExecutionFailed(command, failure)
	}
}

func (application *Application) commandEventLogger() *ui.ConsoleCommandEventLogger {
	if !application.humanReadableLoggingEnabled() {
		return nil
	}
	return ui.NewConsoleCommandEventLogger(application.logger)
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelWarn),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
	}
	for configurationKey, configurationValue := range healthcheck.DefaultConfigurationValues(healthCheckConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		normalizedLevel, levelError := flagutils.NormalizeChoice(logLevelFlagNameConstant, application.logLevelFlagValue, logLevelChoices)
		if levelError != nil {
			return levelError
		}
		application.configuration.Common.LogLevel = normalizedLevel
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		normalizedFormat, formatError := flagutils.NormalizeChoice(logFormatFlagNameConstant, application.logFormatFlagValue, logFormatChoices)
		if formatError != nil {
			return formatError
		}
		application.configuration.Common.LogFormat = normalizedFormat
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	return utils.LogFormat(application.configuration.Common.LogFormat) == utils.LogFormatConsole
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
