package ui_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/dephealth/internal/ui"
)

func TestColorPolicyShouldUseColor(testInstance *testing.T) {
	testCases := []struct {
		name          string
		environment   map[string]string
		isTerminal    bool
		expectedColor bool
	}{
		{name: "terminal_without_overrides", isTerminal: true, expectedColor: true},
		{name: "pipe_without_overrides", isTerminal: false, expectedColor: false},
		{name: "no_color_wins_over_force", environment: map[string]string{"NO_COLOR": "1", "CLICOLOR_FORCE": "1"}, isTerminal: true, expectedColor: false},
		{name: "force_color_on_pipe", environment: map[string]string{"CLICOLOR_FORCE": "1"}, isTerminal: false, expectedColor: true},
		{name: "clicolor_disabled_on_terminal", environment: map[string]string{"CLICOLOR": "0"}, isTerminal: true, expectedColor: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			policy := ui.ColorPolicy{
				LookupEnvironment: func(name string) string { return testCase.environment[name] },
				IsTerminal:        func(int) bool { return testCase.isTerminal },
			}

			require.Equal(testInstance, testCase.expectedColor, policy.ShouldUseColor(os.Stdout))
		})
	}
}

func TestColorPolicyWithoutOutputFile(testInstance *testing.T) {
	policy := ui.ColorPolicy{
		LookupEnvironment: func(string) string { return "" },
		IsTerminal:        func(int) bool { return true },
	}

	require.False(testInstance, policy.ShouldUseColor(nil))
}
