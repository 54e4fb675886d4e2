package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/dephealth/internal/utils"
)

const (
	testEnvironmentPrefixConstant                  = "TESTDEPHEALTH"
	testLogLevelKeyConstant                        = "common.log_level"
	testLogLevelEnvironmentVariableConstant        = "TESTDEPHEALTH_COMMON_LOG_LEVEL"
	testWorkspacesEnvironmentVariableConstant      = "TESTDEPHEALTH_HEALTH_CHECK_WORKSPACES"
	testDefaultLogLevelConstant                    = "info"
	testEmbeddedLogLevelConstant                   = "debug"
	testFileLogLevelConstant                       = "warn"
	testEnvironmentLogLevelConstant                = "error"
	testConfigFileNameConstant                     = "config.yaml"
	testConfigurationNameConstant                  = "config"
	testConfigurationTypeConstant                  = "yaml"
	testEmbeddedConfigurationTemplateConstant      = "common:\n  log_level: %s\nhealth_check:\n  workspaces:\n    - api\n    - client\n"
	testFileConfigurationTemplateConstant          = "common:\n  log_level: %s\n"
	testCaseDefaultsMessageConstant                = "defaults apply without embedded data"
	testCaseEmbeddedMessageConstant                = "embedded configuration overrides defaults"
	testCaseFileMessageConstant                    = "config file overrides embedded configuration"
	testCaseEnvironmentMessageConstant             = "environment overrides config file"
	testCaseSearchPathMessageConstant              = "search path supplies config file"
	configurationLoaderSubtestNameTemplateConstant = "%d_%s"
)

type configurationFixture struct {
	Common      configurationCommonFixture      `mapstructure:"common"`
	HealthCheck configurationHealthCheckFixture `mapstructure:"health_check"`
}

type configurationCommonFixture struct {
	LogLevel string `mapstructure:"log_level"`
}

type configurationHealthCheckFixture struct {
	Workspaces []string `mapstructure:"workspaces"`
}

func TestConfigurationLoaderLoadConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name                string
		embeddedLogLevel    string
		fileLogLevel        string
		fileInSearchPath    bool
		environmentLogLevel string
		expectedLogLevel    string
	}{
		{
			name:             testCaseDefaultsMessageConstant,
			expectedLogLevel: testDefaultLogLevelConstant,
		},
		{
			name:             testCaseEmbeddedMessageConstant,
			embeddedLogLevel: testEmbeddedLogLevelConstant,
			expectedLogLevel: testEmbeddedLogLevelConstant,
		},
		{
			name:             testCaseFileMessageConstant,
			embeddedLogLevel: testEmbeddedLogLevelConstant,
			fileLogLevel:     testFileLogLevelConstant,
			expectedLogLevel: testFileLogLevelConstant,
		},
		{
			name:             testCaseSearchPathMessageConstant,
			embeddedLogLevel: testEmbeddedLogLevelConstant,
			fileLogLevel:     testFileLogLevelConstant,
			fileInSearchPath: true,
			expectedLogLevel: testFileLogLevelConstant,
		},
		{
			name:                testCaseEnvironmentMessageConstant,
			embeddedLogLevel:    testEmbeddedLogLevelConstant,
			fileLogLevel:        testFileLogLevelConstant,
			environmentLogLevel: testEnvironmentLogLevelConstant,
			expectedLogLevel:    testEnvironmentLogLevelConstant,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			tempDirectory := testInstance.TempDir()

			configurationFilePath := ""
			expectedConfigFileUsed := ""
			if len(testCase.fileLogLevel) > 0 {
				filePath := filepath.Join(tempDirectory, testConfigFileNameConstant)
				writeError := os.WriteFile(filePath, []byte(fmt.Sprintf(testFileConfigurationTemplateConstant, testCase.fileLogLevel)), 0o600)
				require.NoError(testInstance, writeError)
				expectedConfigFileUsed = filePath
				if !testCase.fileInSearchPath {
					configurationFilePath = filePath
				}
			}

			if len(testCase.environmentLogLevel) > 0 {
				testInstance.Setenv(testLogLevelEnvironmentVariableConstant, testCase.environmentLogLevel)
			}

			configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{tempDirectory})
			if len(testCase.embeddedLogLevel) > 0 {
				configurationLoader.SetEmbeddedConfiguration([]byte(fmt.Sprintf(testEmbeddedConfigurationTemplateConstant, testCase.embeddedLogLevel)), testConfigurationTypeConstant)
			}

			defaultValues := map[string]any{
				testLogLevelKeyConstant: testDefaultLogLevelConstant,
			}

			loadedConfiguration := configurationFixture{}
			metadata, loadError := configurationLoader.LoadConfiguration(configurationFilePath, defaultValues, &loadedConfiguration)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedLogLevel, loadedConfiguration.Common.LogLevel)
			require.Equal(testInstance, expectedConfigFileUsed, metadata.ConfigFileUsed)
		})
	}
}

func TestConfigurationLoaderDecodesCommaSeparatedEnvironmentLists(testInstance *testing.T) {
	testInstance.Setenv(testWorkspacesEnvironmentVariableConstant, "api,packages/api,client")

	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{testInstance.TempDir()})
	configurationLoader.SetEmbeddedConfiguration([]byte(fmt.Sprintf(testEmbeddedConfigurationTemplateConstant, testEmbeddedLogLevelConstant)), testConfigurationTypeConstant)

	loadedConfiguration := configurationFixture{}
	_, loadError := configurationLoader.LoadConfiguration("", nil, &loadedConfiguration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, []string{"api", "packages/api", "client"}, loadedConfiguration.HealthCheck.Workspaces)
}

func TestConfigurationLoaderRejectsMissingExplicitFile(testInstance *testing.T) {
	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)

	loadedConfiguration := configurationFixture{}
	_, loadError := configurationLoader.LoadConfiguration(filepath.Join(testInstance.TempDir(), "absent.yaml"), nil, &loadedConfiguration)
	require.Error(testInstance, loadError)
}
