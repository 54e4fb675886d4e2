package healthcheck

import (
	"strings"

	"github.com/temirov/dephealth/internal/npmcli"
	pathutils "github.com/temirov/dephealth/internal/utils/path"
)

const (
	defaultProjectRootConstant        = "."
	defaultManifestFileConstant       = "package.json"
	defaultRequiredWorkspaceConstant  = "api"
	defaultPeriodicRunHintConstant    = "Run this script periodically to catch dependency issues early"
	defaultNodemonDirectHintConstant  = "If nodemon issues persist, use: npm run backend:dev:direct"
	defaultNativeWatchingHintConstant = "For Node.js native watching: npm run backend:dev:watch"
	configurationKeySeparatorConstant = "."
	projectRootKeyConstant            = "project_root"
	manifestFileKeyConstant           = "manifest_file"
	requiredWorkspacesKeyConstant     = "required_workspaces"
	workspacesKeyConstant             = "workspaces"
	summaryHintsKeyConstant           = "summary_hints"
	packageManagerKeyConstant         = "package_manager"
	executableKeyConstant             = "executable"
	listDepthKeyConstant              = "ls_depth"
	peerDependencyFlagKeyConstant     = "peer_dependency_flag"
	auditLevelKeyConstant             = "audit_level"
)

var defaultWorkspaces = []string{
	"api",
	"client",
	"packages/data-provider",
	"packages/data-schemas",
	"packages/api",
	"packages/client",
}

// CommandConfiguration captures persistent settings for the health check.
type CommandConfiguration struct {
	ProjectRoot        string                      `mapstructure:"project_root"`
	ManifestFile       string                      `mapstructure:"manifest_file"`
	RequiredWorkspaces []string                    `mapstructure:"required_workspaces"`
	Workspaces         []string                    `mapstructure:"workspaces"`
	PackageManager     PackageManagerConfiguration `mapstructure:"package_manager"`
	SummaryHints       []string                    `mapstructure:"summary_hints"`
}

// PackageManagerConfiguration controls the package manager invocations.
type PackageManagerConfiguration struct {
	Executable         string `mapstructure:"executable"`
	ListDepth          int    `mapstructure:"ls_depth"`
	PeerDependencyFlag string `mapstructure:"peer_dependency_flag"`
	AuditLevel         string `mapstructure:"audit_level"`
}

// DefaultCommandConfiguration returns baseline configuration values for the health check.
func DefaultCommandConfiguration() CommandConfiguration {
	clientDefaults := npmcli.DefaultConfiguration()
	return CommandConfiguration{
		ProjectRoot:        defaultProjectRootConstant,
		ManifestFile:       defaultManifestFileConstant,
		RequiredWorkspaces: []string{defaultRequiredWorkspaceConstant},
		Workspaces:         append([]string{}, defaultWorkspaces...),
		PackageManager: PackageManagerConfiguration{
			Executable:         clientDefaults.Executable,
			ListDepth:          clientDefaults.ListDepth,
			PeerDependencyFlag: clientDefaults.PeerDependencyFlag,
			AuditLevel:         clientDefaults.AuditLevel,
		},
		SummaryHints: []string{
			defaultPeriodicRunHintConstant,
			defaultNodemonDirectHintConstant,
			defaultNativeWatchingHintConstant,
		},
	}
}

// DefaultConfigurationValues returns the defaults keyed by their dotted configuration path below rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	packageManagerKey := rootKey + configurationKeySeparatorConstant + packageManagerKeyConstant + configurationKeySeparatorConstant
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + projectRootKeyConstant:        defaults.ProjectRoot,
		rootKey + configurationKeySeparatorConstant + manifestFileKeyConstant:       defaults.ManifestFile,
		rootKey + configurationKeySeparatorConstant + requiredWorkspacesKeyConstant: defaults.RequiredWorkspaces,
		rootKey + configurationKeySeparatorConstant + workspacesKeyConstant:         defaults.Workspaces,
		rootKey + configurationKeySeparatorConstant + summaryHintsKeyConstant:       defaults.SummaryHints,
		packageManagerKey + executableKeyConstant:                                   defaults.PackageManager.Executable,
		packageManagerKey + listDepthKeyConstant:                                    defaults.PackageManager.ListDepth,
		packageManagerKey + peerDependencyFlagKeyConstant:                           defaults.PackageManager.PeerDependencyFlag,
		packageManagerKey + auditLevelKeyConstant:                                   defaults.PackageManager.AuditLevel,
	}
}

// ClientConfiguration converts the settings into npm client arguments.
func (configuration PackageManagerConfiguration) ClientConfiguration() npmcli.Configuration {
	return npmcli.Configuration{
		Executable:         configuration.Executable,
		ListDepth:          configuration.ListDepth,
		PeerDependencyFlag: configuration.PeerDependencyFlag,
		AuditLevel:         configuration.AuditLevel,
	}
}

// sanitize trims whitespace, expands the project root and applies defaults to unset values.
// An explicitly empty workspace list stays empty; duplicate workspaces keep their first position.
func (configuration CommandConfiguration) sanitize(expander *pathutils.HomeExpander) CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.ProjectRoot = expander.Resolve(configuration.ProjectRoot)

	sanitized.ManifestFile = strings.TrimSpace(configuration.ManifestFile)
	if len(sanitized.ManifestFile) == 0 {
		sanitized.ManifestFile = defaults.ManifestFile
	}

	if configuration.RequiredWorkspaces == nil {
		sanitized.RequiredWorkspaces = defaults.RequiredWorkspaces
	} else {
		sanitized.RequiredWorkspaces = sanitizeWorkspaces(configuration.RequiredWorkspaces)
	}

	if configuration.Workspaces == nil {
		sanitized.Workspaces = defaults.Workspaces
	} else {
		sanitized.Workspaces = sanitizeWorkspaces(configuration.Workspaces)
	}

	if configuration.SummaryHints == nil {
		sanitized.SummaryHints = defaults.SummaryHints
	} else {
		sanitized.SummaryHints = sanitizeHints(configuration.SummaryHints)
	}

	sanitized.PackageManager.Executable = strings.TrimSpace(configuration.PackageManager.Executable)
	if len(sanitized.PackageManager.Executable) == 0 {
		sanitized.PackageManager.Executable = defaults.PackageManager.Executable
	}

	return sanitized
}

func sanitizeWorkspaces(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for index := range raw {
		trimmed := strings.TrimRight(strings.TrimSpace(raw[index]), "/")
		if len(trimmed) == 0 {
			continue
		}
		if _, duplicate := seen[trimmed]; duplicate {
			continue
		}
		seen[trimmed] = struct{}{}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}

func sanitizeHints(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for index := range raw {
		trimmed := strings.TrimSpace(raw[index])
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
