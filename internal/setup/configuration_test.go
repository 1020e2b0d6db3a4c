package setup_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/stamp/internal/setup"
)

func TestDefaultCommandConfiguration(testInstance *testing.T) {
	testInstance.Parallel()

	configuration := setup.DefaultCommandConfiguration()

	require.Equal(testInstance, []string{"package.json", ".changeset/config.json"}, configuration.TargetFiles)
	require.Equal(testInstance, "package.json", configuration.ManifestFile)
	require.Equal(testInstance, "setup", configuration.BootstrapScriptName)
	require.Equal(testInstance, []string{"scripts/setup.sh"}, configuration.CleanupPaths)
	require.Equal(testInstance, "main", configuration.DefaultBranch)
	require.Equal(testInstance, "test", configuration.RequiredCheckName)
	require.Equal(testInstance, "origin", configuration.RemoteName)
	require.Equal(testInstance, "ssh", configuration.RemoteProtocol)
	require.Equal(testInstance, "npm", configuration.PackageManager)
	require.Equal(testInstance, "NPM_TOKEN", configuration.SecretName)
	require.Equal(testInstance, "NPM_TOKEN", configuration.SecretSource)
	require.Equal(testInstance, "chore: configure project from template", configuration.CommitMessage)
	require.False(testInstance, configuration.AssumeYes)
}

func TestCommandConfigurationSanitize(testInstance *testing.T) {
	testInstance.Parallel()

	configuration := setup.CommandConfiguration{
		TargetFiles:         []string{"  package.json  ", "", "./package.json", "docs//README.md"},
		ManifestFile:        "  package.json  ",
		BootstrapScriptName: " setup ",
		CleanupPaths:        []string{" scripts/setup.sh ", "   "},
		DefaultBranch:       " main ",
		RequiredCheckName:   " test ",
		RemoteName:          " origin ",
		RemoteProtocol:      " ssh ",
		PackageManager:      " npm ",
		SecretName:          " NPM_TOKEN ",
		SecretSource:        " env:NPM_TOKEN ",
		CommitMessage:       " chore: configure project from template ",
		AssumeYes:           true,
	}

	sanitized := configuration.Sanitize()

	require.Equal(testInstance, []string{"package.json", "docs/README.md"}, sanitized.TargetFiles)
	require.Equal(testInstance, "package.json", sanitized.ManifestFile)
	require.Equal(testInstance, "setup", sanitized.BootstrapScriptName)
	require.Equal(testInstance, []string{"scripts/setup.sh"}, sanitized.CleanupPaths)
	require.Equal(testInstance, "main", sanitized.DefaultBranch)
	require.Equal(testInstance, "test", sanitized.RequiredCheckName)
	require.Equal(testInstance, "origin", sanitized.RemoteName)
	require.Equal(testInstance, "ssh", sanitized.RemoteProtocol)
	require.Equal(testInstance, "npm", sanitized.PackageManager)
	require.Equal(testInstance, "NPM_TOKEN", sanitized.SecretName)
	require.Equal(testInstance, "env:NPM_TOKEN", sanitized.SecretSource)
	require.Equal(testInstance, "chore: configure project from template", sanitized.CommitMessage)
	require.True(testInstance, sanitized.AssumeYes)
}
