package healthcheck_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testManifestFileNameConstant    = "package.json"
	testManifestContentsConstant    = "{\"name\":\"fixture\",\"version\":\"1.0.0\"}\n"
	testListOperationConstant       = "ls"
	testInstallOperationConstant    = "install"
	testAuditOperationConstant      = "audit"
	testProbeFailureMessageConstant = "npm ls --depth=0 exited with code 1"
)

type packageManagerCall struct {
	Operation string
	Directory string
}

type recordingPackageManager struct {
	calls           []packageManagerCall
	listFailures    map[string]bool
	installFailures map[string]bool
	auditError      error
}

func (manager *recordingPackageManager) ListInstalled(_ context.Context, workingDirectory string) error {
	manager.calls = append(manager.calls, packageManagerCall{Operation: testListOperationConstant, Directory: workingDirectory})
	if manager.listFailures[workingDirectory] {
		return &probeFailure{}
	}
	return nil
}

func (manager *recordingPackageManager) Install(_ context.Context, workingDirectory string) error {
	manager.calls = append(manager.calls, packageManagerCall{Operation: testInstallOperationConstant, Directory: workingDirectory})
	if manager.installFailures[workingDirectory] {
		return &probeFailure{}
	}
	return nil
}

func (manager *recordingPackageManager) Audit(_ context.Context, workingDirectory string) error {
	manager.calls = append(manager.calls, packageManagerCall{Operation: testAuditOperationConstant, Directory: workingDirectory})
	return manager.auditError
}

func (manager *recordingPackageManager) countOperation(operation string) int {
	count := 0
	for _, call := range manager.calls {
		if call.Operation == operation {
			count++
		}
	}
	return count
}

type probeFailure struct{}

func (*probeFailure) Error() string {
	return testProbeFailureMessageConstant
}

// createProject writes a manifest at the project root and in every listed workspace.
func createProject(testInstance *testing.T, workspacesWithManifest ...string) string {
	testInstance.Helper()
	projectRoot := testInstance.TempDir()
	writeManifest(testInstance, projectRoot)
	for _, workspace := range workspacesWithManifest {
		writeManifest(testInstance, filepath.Join(projectRoot, workspace))
	}
	return projectRoot
}

func writeManifest(testInstance *testing.T, directory string) {
	testInstance.Helper()
	require.NoError(testInstance, os.MkdirAll(directory, 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(directory, testManifestFileNameConstant), []byte(testManifestContentsConstant), 0o600))
}
