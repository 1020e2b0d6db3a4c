package pathutils_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/stamp/internal/utils/path"
)

const testHomeDirectoryConstant = "/home/tester"

func testHomeDirectoryProvider() (string, error) {
	return testHomeDirectoryConstant, nil
}

func TestTargetPathSanitizerSanitize(testInstance *testing.T) {
	testCases := []struct {
		name           string
		candidatePaths []string
		expectedPaths  []string
	}{
		{
			name:           "nil_input_returns_nil",
			candidatePaths: nil,
			expectedPaths:  nil,
		},
		{
			name:           "trims_and_drops_empty_entries",
			candidatePaths: []string{"  package.json  ", "", "   "},
			expectedPaths:  []string{"package.json"},
		},
		{
			name:           "cleans_relative_paths",
			candidatePaths: []string{"./package.json", ".changeset//config.json"},
			expectedPaths:  []string{"package.json", filepath.Join(".changeset", "config.json")},
		},
		{
			name:           "removes_duplicates_preserving_order",
			candidatePaths: []string{"package.json", "scripts/setup.sh", "./package.json"},
			expectedPaths:  []string{"package.json", filepath.Join("scripts", "setup.sh")},
		},
		{
			name:           "expands_home_directory_prefix",
			candidatePaths: []string{"~/templates/config.json"},
			expectedPaths:  []string{filepath.Join(testHomeDirectoryConstant, "templates", "config.json")},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			subtest.Parallel()

			expander := pathutils.NewHomeExpanderWithProvider(testHomeDirectoryProvider)
			sanitizer := pathutils.NewTargetPathSanitizerWithExpander(expander)
			require.Equal(subtest, testCase.expectedPaths, sanitizer.Sanitize(testCase.candidatePaths))
		})
	}
}
