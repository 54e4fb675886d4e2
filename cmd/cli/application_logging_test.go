package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/dephealth/internal/utils"
)

const (
	testFailingNPMListErrorConstant    = "npm ERR! missing: left-pad@1.3.0"
	testFailingNPMInstallErrorConstant = "npm ERR! ERESOLVE could not resolve"
	testFailingNPMScriptConstant       = `#!/bin/sh
case "$1" in
  ls)
    echo "npm ERR! missing: left-pad@1.3.0" >&2
    exit 1
    ;;
  install)
    echo "npm ERR! ERESOLVE could not resolve" >&2
    exit 1
    ;;
  audit)
    echo "1 high severity vulnerability"
    exit 1
    ;;
esac
exit 2
`
	testRootFailedLineConstant = "❌ Root: Failed to fix dependencies"
)

func installFailingNPM(t *testing.T) {
	t.Helper()
	binaryDirectory := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(binaryDirectory, "npm"), []byte(testFailingNPMScriptConstant), 0o755))
	t.Setenv("PATH", binaryDirectory+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestApplicationDefaultLoggingStaysQuietWhenChecksFail(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake npm executable is a POSIX shell script")
	}
	installFailingNPM(t)

	projectRoot := t.TempDir()
	writeTestManifest(t, projectRoot)
	writeTestManifest(t, filepath.Join(projectRoot, "api"))
	writeTestManifest(t, filepath.Join(projectRoot, "client"))

	configurationPath := filepath.Join(t.TempDir(), testConfigurationFileNameConstant)
	require.NoError(t, os.WriteFile(configurationPath, []byte(fmt.Sprintf(testConfigurationTemplateConstant, projectRoot)), 0o600))

	logOutput := &bytes.Buffer{}
	application := NewApplication()
	application.loggerFactory = utils.NewLoggerFactoryWithOutput(logOutput)
	application.healthCheckBuilder.ColorOutputProvider = func() bool { return false }

	standardOutput := &bytes.Buffer{}
	standardError := &bytes.Buffer{}
	application.rootCommand.SetOut(standardOutput)
	application.rootCommand.SetErr(standardError)
	application.rootCommand.SetArgs([]string{"--config", configurationPath})

	require.NoError(t, application.Execute())

	require.Empty(t, logOutput.String())
	require.Contains(t, standardOutput.String(), testRootFailedLineConstant)
	require.Contains(t, standardOutput.String(), testCompletionLineConstant)
	require.NotContains(t, standardOutput.String(), testFailingNPMListErrorConstant)
	require.NotContains(t, standardError.String(), testFailingNPMListErrorConstant)
	require.Contains(t, standardError.String(), testFailingNPMInstallErrorConstant)
}
