package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/dephealth/internal/filesystem"
)

func TestOSFileSystemFileExists(testInstance *testing.T) {
	projectDirectory := testInstance.TempDir()
	manifestPath := filepath.Join(projectDirectory, "package.json")
	require.NoError(testInstance, os.WriteFile(manifestPath, []byte("{}"), 0o600))
	require.NoError(testInstance, os.Mkdir(filepath.Join(projectDirectory, "client"), 0o755))

	testCases := []struct {
		name           string
		path           string
		expectedExists bool
	}{
		{name: "regular_file", path: manifestPath, expectedExists: true},
		{name: "missing_file", path: filepath.Join(projectDirectory, "api", "package.json"), expectedExists: false},
		{name: "directory", path: filepath.Join(projectDirectory, "client"), expectedExists: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			exists, lookupError := filesystem.OSFileSystem{}.FileExists(testCase.path)
			require.NoError(testInstance, lookupError)
			require.Equal(testInstance, testCase.expectedExists, exists)
		})
	}
}
