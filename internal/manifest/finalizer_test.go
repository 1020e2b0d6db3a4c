package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/stamp/internal/manifest"
)

const testManifestFileNameConstant = "package.json"

func writeTestManifest(testInstance *testing.T, content string, mode os.FileMode) string {
	testInstance.Helper()

	manifestPath := filepath.Join(testInstance.TempDir(), testManifestFileNameConstant)
	require.NoError(testInstance, os.WriteFile(manifestPath, []byte(content), mode))
	return manifestPath
}

func TestFinalizerVerifiesNameAndRemovesScript(testInstance *testing.T) {
	testInstance.Parallel()

	manifestPath := writeTestManifest(testInstance, testCommentedManifestConstant, 0o644)

	finalizer := manifest.NewFinalizer(zap.NewNop())
	outcome, finalizeError := finalizer.Finalize(manifestPath, "widget", testBootstrapScriptNameConstant)
	require.NoError(testInstance, finalizeError)
	require.False(testInstance, outcome.Skipped)
	require.Equal(testInstance, "widget", outcome.ManifestName)
	require.True(testInstance, outcome.NameVerified)
	require.True(testInstance, outcome.ScriptRemoved)

	finalizedContent, readError := os.ReadFile(manifestPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, testStableEncodedManifestConstant, string(finalizedContent))
}

func TestFinalizerReportsNameMismatch(testInstance *testing.T) {
	testInstance.Parallel()

	manifestPath := writeTestManifest(testInstance, testCommentedManifestConstant, 0o644)

	finalizer := manifest.NewFinalizer(zap.NewNop())
	outcome, finalizeError := finalizer.Finalize(manifestPath, "gadget", testBootstrapScriptNameConstant)
	require.NoError(testInstance, finalizeError)
	require.Equal(testInstance, "widget", outcome.ManifestName)
	require.False(testInstance, outcome.NameVerified)
}

func TestFinalizerSkipsMissingManifest(testInstance *testing.T) {
	testInstance.Parallel()

	manifestPath := filepath.Join(testInstance.TempDir(), testManifestFileNameConstant)

	finalizer := manifest.NewFinalizer(zap.NewNop())
	outcome, finalizeError := finalizer.Finalize(manifestPath, "widget", testBootstrapScriptNameConstant)
	require.NoError(testInstance, finalizeError)
	require.True(testInstance, outcome.Skipped)

	_, statError := os.Stat(manifestPath)
	require.ErrorIs(testInstance, statError, os.ErrNotExist)
}

func TestFinalizerPreservesManifestFileMode(testInstance *testing.T) {
	testInstance.Parallel()

	manifestPath := writeTestManifest(testInstance, testCommentedManifestConstant, 0o600)

	finalizer := manifest.NewFinalizer(zap.NewNop())
	_, finalizeError := finalizer.Finalize(manifestPath, "widget", testBootstrapScriptNameConstant)
	require.NoError(testInstance, finalizeError)

	fileInfo, statError := os.Stat(manifestPath)
	require.NoError(testInstance, statError)
	require.Equal(testInstance, os.FileMode(0o600), fileInfo.Mode().Perm())
}

func TestFinalizerSurfacesParseFailures(testInstance *testing.T) {
	testInstance.Parallel()

	manifestPath := writeTestManifest(testInstance, "{\"name\": \"widget\"", 0o644)

	finalizer := manifest.NewFinalizer(zap.NewNop())
	_, finalizeError := finalizer.Finalize(manifestPath, "widget", testBootstrapScriptNameConstant)
	require.Error(testInstance, finalizeError)
	require.Contains(testInstance, finalizeError.Error(), "unable to parse manifest")
}
