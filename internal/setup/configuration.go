package setup

import (
	"strings"

	pathutils "github.com/temirov/stamp/internal/utils/path"
)

const (
	defaultManifestFileConstant        = "package.json"
	defaultChangesetConfigFileConstant = ".changeset/config.json"
	defaultBootstrapScriptNameConstant = "setup"
	defaultCleanupPathConstant         = "scripts/setup.sh"
	defaultBranchNameConstant          = "main"
	defaultRequiredCheckNameConstant   = "test"
	defaultRemoteNameConstant          = "origin"
	defaultRemoteProtocolConstant      = "ssh"
	defaultPackageManagerConstant      = "npm"
	defaultSecretNameConstant          = "NPM_TOKEN"
	defaultCommitMessageConstant       = "chore: configure project from template"

	configurationTargetsKeyConstant         = "targets"
	configurationManifestKeyConstant        = "manifest"
	configurationBootstrapScriptKeyConstant = "bootstrap_script"
	configurationCleanupPathsKeyConstant    = "cleanup_paths"
	configurationBranchKeyConstant          = "branch"
	configurationRequiredCheckKeyConstant   = "required_check"
	configurationRemoteKeyConstant          = "remote"
	configurationProtocolKeyConstant        = "protocol"
	configurationPackageManagerKeyConstant  = "package_manager"
	configurationSecretNameKeyConstant      = "secret_name"
	configurationSecretSourceKeyConstant    = "secret_env"
	configurationCommitMessageKeyConstant   = "commit_message"
	configurationAssumeYesKeyConstant       = "assume_yes"
	configurationKeySeparatorConstant       = "."
)

var setupConfigurationTargetPathSanitizer = pathutils.NewTargetPathSanitizer()

// CommandConfiguration captures persisted configuration for the setup workflow.
type CommandConfiguration struct {
	TargetFiles         []string `mapstructure:"targets"`
	ManifestFile        string   `mapstructure:"manifest"`
	BootstrapScriptName string   `mapstructure:"bootstrap_script"`
	CleanupPaths        []string `mapstructure:"cleanup_paths"`
	DefaultBranch       string   `mapstructure:"branch"`
	RequiredCheckName   string   `mapstructure:"required_check"`
	RemoteName          string   `mapstructure:"remote"`
	RemoteProtocol      string   `mapstructure:"protocol"`
	PackageManager      string   `mapstructure:"package_manager"`
	SecretName          string   `mapstructure:"secret_name"`
	SecretSource        string   `mapstructure:"secret_env"`
	CommitMessage       string   `mapstructure:"commit_message"`
	AssumeYes           bool     `mapstructure:"assume_yes"`
}

// DefaultCommandConfiguration returns baseline configuration values for setup.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		TargetFiles:         []string{defaultManifestFileConstant, defaultChangesetConfigFileConstant},
		ManifestFile:        defaultManifestFileConstant,
		BootstrapScriptName: defaultBootstrapScriptNameConstant,
		CleanupPaths:        []string{defaultCleanupPathConstant},
		DefaultBranch:       defaultBranchNameConstant,
		RequiredCheckName:   defaultRequiredCheckNameConstant,
		RemoteName:          defaultRemoteNameConstant,
		RemoteProtocol:      defaultRemoteProtocolConstant,
		PackageManager:      defaultPackageManagerConstant,
		SecretName:          defaultSecretNameConstant,
		SecretSource:        defaultSecretNameConstant,
		CommitMessage:       defaultCommitMessageConstant,
		AssumeYes:           false,
	}
}

// DefaultConfigurationValues produces Viper defaults for the setup command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationTargetsKeyConstant:         defaults.TargetFiles,
		rootKey + configurationKeySeparatorConstant + configurationManifestKeyConstant:        defaults.ManifestFile,
		rootKey + configurationKeySeparatorConstant + configurationBootstrapScriptKeyConstant: defaults.BootstrapScriptName,
		rootKey + configurationKeySeparatorConstant + configurationCleanupPathsKeyConstant:    defaults.CleanupPaths,
		rootKey + configurationKeySeparatorConstant + configurationBranchKeyConstant:          defaults.DefaultBranch,
		rootKey + configurationKeySeparatorConstant + configurationRequiredCheckKeyConstant:   defaults.RequiredCheckName,
		rootKey + configurationKeySeparatorConstant + configurationRemoteKeyConstant:          defaults.RemoteName,
		rootKey + configurationKeySeparatorConstant + configurationProtocolKeyConstant:        defaults.RemoteProtocol,
		rootKey + configurationKeySeparatorConstant + configurationPackageManagerKeyConstant:  defaults.PackageManager,
		rootKey + configurationKeySeparatorConstant + configurationSecretNameKeyConstant:      defaults.SecretName,
		rootKey + configurationKeySeparatorConstant + configurationSecretSourceKeyConstant:    defaults.SecretSource,
		rootKey + configurationKeySeparatorConstant + configurationCommitMessageKeyConstant:   defaults.CommitMessage,
		rootKey + configurationKeySeparatorConstant + configurationAssumeYesKeyConstant:       defaults.AssumeYes,
	}
}

// Sanitize trims configured values and removes empty list entries.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.TargetFiles = setupConfigurationTargetPathSanitizer.Sanitize(configuration.TargetFiles)
	sanitized.ManifestFile = strings.TrimSpace(configuration.ManifestFile)
	sanitized.BootstrapScriptName = strings.TrimSpace(configuration.BootstrapScriptName)
	sanitized.CleanupPaths = setupConfigurationTargetPathSanitizer.Sanitize(configuration.CleanupPaths)
	sanitized.DefaultBranch = strings.TrimSpace(configuration.DefaultBranch)
	sanitized.RequiredCheckName = strings.TrimSpace(configuration.RequiredCheckName)
	sanitized.RemoteName = strings.TrimSpace(configuration.RemoteName)
	sanitized.RemoteProtocol = strings.TrimSpace(configuration.RemoteProtocol)
	sanitized.PackageManager = strings.TrimSpace(configuration.PackageManager)
	sanitized.SecretName = strings.TrimSpace(configuration.SecretName)
	sanitized.SecretSource = strings.TrimSpace(configuration.SecretSource)
	sanitized.CommitMessage = strings.TrimSpace(configuration.CommitMessage)
	return sanitized
}
