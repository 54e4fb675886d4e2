package utils

import "context"

type commandContextKey string

const (
	configurationFileContextKeyConstant = commandContextKey("dephealth.configuration_file")
)

// CommandContextAccessor stores and retrieves values shared between the root command and its execution.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath records the configuration file that produced the active settings.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFileContextKeyConstant, configurationFilePath)
}

// ConfigurationFilePath returns the recorded configuration file. The boolean is false when nothing was recorded
// or when the settings came only from embedded defaults and the environment.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, recorded := executionContext.Value(configurationFileContextKeyConstant).(string)
	if !recorded || len(configurationFilePath) == 0 {
		return "", false
	}
	return configurationFilePath, true
}
