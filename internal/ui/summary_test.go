package ui_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/stamp/internal/ui"
)

const (
	testSummaryHeadingConstant     = "Next steps:"
	testFirstStepLineConstant      = "Push your code: git push -u origin main"
	testSecondStepLineConstant     = "Start developing"
	testConditionalLineConstant    = "Add the publish token as a repository secret"
	testSummaryAllLinesExpectation = "Next steps:\n1. Push your code: git push -u origin main\n2. Add the publish token as a repository secret\n3. Start developing\n"
	testSummaryTwoLinesExpectation = "Next steps:\n1. Push your code: git push -u origin main\n2. Start developing\n"
)

func TestCompletionSummaryNumbersLinesByPosition(testInstance *testing.T) {
	testCases := []struct {
		name            string
		includeOptional bool
		expectedOutput  string
	}{
		{
			name:            "all_lines_present",
			includeOptional: true,
			expectedOutput:  testSummaryAllLinesExpectation,
		},
		{
			name:            "optional_line_omitted",
			includeOptional: false,
			expectedOutput:  testSummaryTwoLinesExpectation,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			summary := &ui.CompletionSummary{}
			summary.Append(testFirstStepLineConstant)
			if testCase.includeOptional {
				summary.Append(testConditionalLineConstant)
			}
			summary.Append(testSecondStepLineConstant)

			outputBuffer := &bytes.Buffer{}
			summary.Render(ui.NewWriterReporter(outputBuffer), testSummaryHeadingConstant)

			require.Equal(testInstance, testCase.expectedOutput, outputBuffer.String())
		})
	}
}

func TestCompletionSummaryWithoutLinesRendersHeadingOnly(testInstance *testing.T) {
	summary := &ui.CompletionSummary{}
	outputBuffer := &bytes.Buffer{}

	summary.Render(ui.NewWriterReporter(outputBuffer), testSummaryHeadingConstant)

	require.Equal(testInstance, testSummaryHeadingConstant+"\n", outputBuffer.String())
}

func TestCompletionSummaryLinesReturnsCopy(testInstance *testing.T) {
	summary := &ui.CompletionSummary{}
	summary.Append(testFirstStepLineConstant)

	lines := summary.Lines()
	lines[0] = "mutated"

	require.Equal(testInstance, []string{testFirstStepLineConstant}, summary.Lines())
}
