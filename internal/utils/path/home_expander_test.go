package pathutils_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/stamp/internal/utils/path"
)

func TestHomeExpanderExpand(testInstance *testing.T) {
	testCases := []struct {
		name          string
		candidatePath string
		expectedPath  string
	}{
		{
			name:          "bare_shortcut_resolves_to_home",
			candidatePath: "~",
			expectedPath:  testHomeDirectoryConstant,
		},
		{
			name:          "prefixed_path_joins_home",
			candidatePath: "~/projects/widget-kit",
			expectedPath:  testHomeDirectoryConstant + "/projects/widget-kit",
		},
		{
			name:          "absolute_path_passes_through",
			candidatePath: "/srv/templates",
			expectedPath:  "/srv/templates",
		},
		{
			name:          "named_user_shortcut_passes_through",
			candidatePath: "~other/projects",
			expectedPath:  "~other/projects",
		},
		{
			name:          "empty_path_passes_through",
			candidatePath: "",
			expectedPath:  "",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			subtest.Parallel()

			expander := pathutils.NewHomeExpanderWithProvider(testHomeDirectoryProvider)
			require.Equal(subtest, testCase.expectedPath, expander.Expand(testCase.candidatePath))
		})
	}
}

func TestHomeExpanderKeepsPathWhenLookupFails(testInstance *testing.T) {
	testInstance.Parallel()

	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New("home directory unavailable")
	})

	require.Equal(testInstance, "~/projects", expander.Expand("~/projects"))
}

func TestHomeExpanderCachesLookup(testInstance *testing.T) {
	testInstance.Parallel()

	lookupCount := 0
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		lookupCount++
		return testHomeDirectoryConstant, nil
	})

	require.Equal(testInstance, testHomeDirectoryConstant+"/a", expander.Expand("~/a"))
	require.Equal(testInstance, testHomeDirectoryConstant+"/b", expander.Expand("~/b"))
	require.Equal(testInstance, 1, lookupCount)
}
