package backup

import "strings"

const (
	defaultBackupRootConstant       = "."
	defaultRateLimitSecondsConstant = 1

	configurationRootKeyConstant             = "root"
	configurationRateLimitSecondsKeyConstant = "rate_limit_seconds"
)

// CommandConfiguration captures persistent settings for the backup command.
type CommandConfiguration struct {
	Root             string `mapstructure:"root"`
	RateLimitSeconds int    `mapstructure:"rate_limit_seconds"`
}

// DefaultCommandConfiguration returns baseline configuration values for the backup command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Root:             defaultBackupRootConstant,
		RateLimitSeconds: defaultRateLimitSecondsConstant,
	}
}

// DefaultConfigurationValues exposes baseline configuration values keyed beneath rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationRootKeyConstant:             defaults.Root,
		rootKey + "." + configurationRateLimitSecondsKeyConstant: defaults.RateLimitSeconds,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Root = strings.TrimSpace(configuration.Root)
	if len(sanitized.Root) == 0 {
		sanitized.Root = defaultBackupRootConstant
	}

	return sanitized
}
