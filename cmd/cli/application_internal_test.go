package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const (
	testConfigurationFileNameConstant = "config.yaml"
	testConsoleLogFormatConstant      = "console"
	testBackupRootConstant            = "/var/backups/github"
	testRateLimitSecondsConstant      = 3
)

type testConfigurationFixture struct {
	Common testCommonConfigurationFixture `yaml:"common,omitempty"`
	Backup testBackupConfigurationFixture `yaml:"backup,omitempty"`
}

type testCommonConfigurationFixture struct {
	LogLevel  string `yaml:"log_level,omitempty"`
	LogFormat string `yaml:"log_format,omitempty"`
}

type testBackupConfigurationFixture struct {
	Root             string `yaml:"root,omitempty"`
	RateLimitSeconds int    `yaml:"rate_limit_seconds,omitempty"`
}

func writeConfigurationFixture(testInstance *testing.T, fixture testConfigurationFixture) string {
	testInstance.Helper()

	serializedConfiguration, marshalError := yaml.Marshal(fixture)
	require.NoError(testInstance, marshalError)

	configurationPath := filepath.Join(testInstance.TempDir(), testConfigurationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, serializedConfiguration, 0o644))

	return configurationPath
}

func TestInitializeConfigurationAppliesEmbeddedDefaults(testInstance *testing.T) {
	application, creationError := NewApplication()
	require.NoError(testInstance, creationError)

	application.configurationFilePath = writeConfigurationFixture(testInstance, testConfigurationFixture{})

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))

	require.Equal(testInstance, "info", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "structured", application.configuration.Common.LogFormat)
	require.Equal(testInstance, ".", application.configuration.Backup.Root)
	require.Equal(testInstance, 1, application.configuration.Backup.RateLimitSeconds)
	require.Nil(testInstance, application.backupBuilder.CommandEventsObserver)
}

func TestInitializeConfigurationHonorsConfigurationFile(testInstance *testing.T) {
	application, creationError := NewApplication()
	require.NoError(testInstance, creationError)

	application.configurationFilePath = writeConfigurationFixture(testInstance, testConfigurationFixture{
		Common: testCommonConfigurationFixture{LogFormat: testConsoleLogFormatConstant},
		Backup: testBackupConfigurationFixture{
			Root:             testBackupRootConstant,
			RateLimitSeconds: testRateLimitSecondsConstant,
		},
	})

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))

	require.Equal(testInstance, testConsoleLogFormatConstant, application.configuration.Common.LogFormat)
	require.Equal(testInstance, testBackupRootConstant, application.configuration.Backup.Root)
	require.Equal(testInstance, testRateLimitSecondsConstant, application.configuration.Backup.RateLimitSeconds)
	require.NotNil(testInstance, application.backupBuilder.CommandEventsObserver)
}

func TestInitializeConfigurationPrefersFlagOverrides(testInstance *testing.T) {
	application, creationError := NewApplication()
	require.NoError(testInstance, creationError)

	application.configurationFilePath = writeConfigurationFixture(testInstance, testConfigurationFixture{
		Common: testCommonConfigurationFixture{LogLevel: "debug", LogFormat: "structured"},
	})

	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set(logLevelFlagNameConstant, "error"))
	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set(logFormatFlagNameConstant, testConsoleLogFormatConstant))

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))

	require.Equal(testInstance, "error", application.configuration.Common.LogLevel)
	require.Equal(testInstance, testConsoleLogFormatConstant, application.configuration.Common.LogFormat)
	require.NotNil(testInstance, application.backupBuilder.CommandEventsObserver)
}

func TestInitializeConfigurationRejectsUnsupportedLogLevel(testInstance *testing.T) {
	application, creationError := NewApplication()
	require.NoError(testInstance, creationError)

	application.configurationFilePath = writeConfigurationFixture(testInstance, testConfigurationFixture{
		Common: testCommonConfigurationFixture{LogLevel: "verbose"},
	})

	initializationError := application.initializeConfiguration(application.rootCommand)
	require.Error(testInstance, initializationError)
	require.Contains(testInstance, initializationError.Error(), "unable to create logger")
}
