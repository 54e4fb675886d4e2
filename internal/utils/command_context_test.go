package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/dephealth/internal/utils"
)

func TestCommandContextAccessorConfigurationFilePath(testInstance *testing.T) {
	testCases := []struct {
		name             string
		buildContext     func(accessor utils.CommandContextAccessor) context.Context
		expectedPath     string
		expectedRecorded bool
	}{
		{
			name: "recorded_path",
			buildContext: func(accessor utils.CommandContextAccessor) context.Context {
				return accessor.WithConfigurationFilePath(context.Background(), "/tmp/project/config.yaml")
			},
			expectedPath:     "/tmp/project/config.yaml",
			expectedRecorded: true,
		},
		{
			name: "embedded_defaults_only",
			buildContext: func(accessor utils.CommandContextAccessor) context.Context {
				return accessor.WithConfigurationFilePath(context.Background(), "")
			},
		},
		{
			name: "nothing_recorded",
			buildContext: func(utils.CommandContextAccessor) context.Context {
				return context.Background()
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			accessor := utils.NewCommandContextAccessor()

			configurationFilePath, recorded := accessor.ConfigurationFilePath(testCase.buildContext(accessor))
			require.Equal(testInstance, testCase.expectedRecorded, recorded)
			require.Equal(testInstance, testCase.expectedPath, configurationFilePath)
		})
	}
}
