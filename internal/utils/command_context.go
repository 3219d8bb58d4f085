package utils

import "context"

type configurationFilePathContextKey struct{}

// CommandContextAccessor carries scan-wide values through the command
// execution context so the run path does not reach back into flag state.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath returns a context carrying the resolved
// configuration file path. An empty path means no configuration file was
// used.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFilePathContextKey{}, configurationFilePath)
}

// ConfigurationFilePath reports the configuration file path carried by the
// context, if one was recorded.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, pathRecorded := executionContext.Value(configurationFilePathContextKey{}).(string)
	return configurationFilePath, pathRecorded
}
