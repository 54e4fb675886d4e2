package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/dephealth/cmd/cli"
	"github.com/temirov/dephealth/internal/utils"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	parentDirectoryReferenceConstant = ".."
	snippetFileNameConstant          = "config.yaml"
	configurationNameConstant        = "config"
	configurationTypeConstant        = "yaml"
	environmentPrefixConstant        = "DEPHEALTHREADME"
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
)

func readReadmeConfigurationSnippet(testInstance *testing.T) string {
	testInstance.Helper()

	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	contentBytes, readError := os.ReadFile(filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant))
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	fenceEndRelativeIndex := strings.Index(contentText[headerIndex:], yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)

	return strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : headerIndex+fenceEndRelativeIndex])
}

func TestReadmeConfigurationMatchesEmbeddedDefaults(testInstance *testing.T) {
	snippetContent := readReadmeConfigurationSnippet(testInstance)
	embeddedContent, _ := cli.EmbeddedDefaultConfiguration()

	var readmeDocument map[string]any
	require.NoError(testInstance, yaml.Unmarshal([]byte(snippetContent), &readmeDocument))

	var embeddedDocument map[string]any
	require.NoError(testInstance, yaml.Unmarshal(embeddedContent, &embeddedDocument))

	require.Equal(testInstance, embeddedDocument, readmeDocument)
}

func TestReadmeConfigurationLoads(testInstance *testing.T) {
	snippetPath := filepath.Join(testInstance.TempDir(), snippetFileNameConstant)
	require.NoError(testInstance, os.WriteFile(snippetPath, []byte(readReadmeConfigurationSnippet(testInstance)), 0o600))

	configurationLoader := utils.NewConfigurationLoader(configurationNameConstant, configurationTypeConstant, environmentPrefixConstant, nil)

	var applicationConfiguration cli.ApplicationConfiguration
	metadata, loadError := configurationLoader.LoadConfiguration(snippetPath, nil, &applicationConfiguration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, snippetPath, metadata.ConfigFileUsed)

	require.Equal(testInstance, "warn", applicationConfiguration.Common.LogLevel)
	require.Equal(testInstance, []string{"api"}, applicationConfiguration.HealthCheck.RequiredWorkspaces)
	require.Len(testInstance, applicationConfiguration.HealthCheck.Workspaces, 6)
	require.Equal(testInstance, "--legacy-peer-deps", applicationConfiguration.HealthCheck.PackageManager.PeerDependencyFlag)
	require.Equal(testInstance, "high", applicationConfiguration.HealthCheck.PackageManager.AuditLevel)
}
