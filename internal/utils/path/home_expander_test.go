package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/dephealth/internal/utils/path"
)

const testHomeDirectoryConstant = "/home/maintainer"

func TestHomeExpanderResolve(testInstance *testing.T) {
	testCases := []struct {
		name          string
		candidatePath string
		providerError error
		expectedPath  string
	}{
		{name: "empty_path", candidatePath: "   ", expectedPath: "."},
		{name: "relative_path", candidatePath: "projects/../librechat", expectedPath: "librechat"},
		{name: "tilde_only", candidatePath: "~", expectedPath: testHomeDirectoryConstant},
		{name: "tilde_prefix", candidatePath: "~/src/librechat/", expectedPath: filepath.Join(testHomeDirectoryConstant, "src", "librechat")},
		{name: "other_user_untouched", candidatePath: "~root/app", expectedPath: "~root/app"},
		{name: "provider_failure", candidatePath: "~/src", providerError: errors.New("no home"), expectedPath: "~/src"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
				if testCase.providerError != nil {
					return "", testCase.providerError
				}
				return testHomeDirectoryConstant, nil
			})

			require.Equal(testInstance, testCase.expectedPath, expander.Resolve(testCase.candidatePath))
		})
	}
}
