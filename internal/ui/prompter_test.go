package ui_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/stamp/internal/ui"
)

const (
	testQuestionConstant            = "Package name"
	testDefaultAnswerConstant       = "widget"
	testTypedAnswerConstant         = "gadget"
	testConfirmationQuestionConst   = "Proceed with these values? (y/n): "
	testEmptyInputCaseNameConstant  = "empty_input_uses_default"
	testTypedInputCaseNameConstant  = "typed_input_wins"
	testPaddedInputCaseNameConstant = "padded_input_is_trimmed"
	testMissingNewlineCaseName      = "final_line_without_newline"
)

type closableInputStub struct {
	reader     io.Reader
	closeCount int
}

func (stub *closableInputStub) Read(buffer []byte) (int, error) {
	return stub.reader.Read(buffer)
}

func (stub *closableInputStub) Close() error {
	stub.closeCount++
	return nil
}

func TestConsolePrompterAskResolvesAnswers(testInstance *testing.T) {
	testCases := []struct {
		name           string
		typedInput     string
		expectedAnswer string
	}{
		{
			name:           testEmptyInputCaseNameConstant,
			typedInput:     "\n",
			expectedAnswer: testDefaultAnswerConstant,
		},
		{
			name:           testTypedInputCaseNameConstant,
			typedInput:     testTypedAnswerConstant + "\n",
			expectedAnswer: testTypedAnswerConstant,
		},
		{
			name:           testPaddedInputCaseNameConstant,
			typedInput:     "  " + testTypedAnswerConstant + "  \n",
			expectedAnswer: testTypedAnswerConstant,
		},
		{
			name:           testMissingNewlineCaseName,
			typedInput:     testTypedAnswerConstant,
			expectedAnswer: testTypedAnswerConstant,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			outputBuffer := &bytes.Buffer{}
			prompter := ui.NewConsolePrompter(strings.NewReader(testCase.typedInput), outputBuffer)

			answer, askError := prompter.Ask(testQuestionConstant, testDefaultAnswerConstant)

			require.NoError(testInstance, askError)
			require.Equal(testInstance, testCase.expectedAnswer, answer)
			require.Equal(testInstance, testQuestionConstant+" ["+testDefaultAnswerConstant+"]: ", outputBuffer.String())
		})
	}
}

func TestConsolePrompterAskWithoutDefaultOmitsBrackets(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	prompter := ui.NewConsolePrompter(strings.NewReader("\n"), outputBuffer)

	answer, askError := prompter.Ask(testQuestionConstant, "")

	require.NoError(testInstance, askError)
	require.Empty(testInstance, answer)
	require.Equal(testInstance, testQuestionConstant+": ", outputBuffer.String())
}

func TestConsolePrompterConfirmInterpretsResponses(testInstance *testing.T) {
	testCases := []struct {
		name            string
		typedInput      string
		expectedOutcome bool
	}{
		{name: "short_affirmative", typedInput: "y\n", expectedOutcome: true},
		{name: "long_affirmative", typedInput: "Yes\n", expectedOutcome: true},
		{name: "negative", typedInput: "n\n", expectedOutcome: false},
		{name: "empty_declines", typedInput: "\n", expectedOutcome: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			prompter := ui.NewConsolePrompter(strings.NewReader(testCase.typedInput), &bytes.Buffer{})

			outcome, confirmError := prompter.Confirm(testConfirmationQuestionConst)

			require.NoError(testInstance, confirmError)
			require.Equal(testInstance, testCase.expectedOutcome, outcome)
		})
	}
}

func TestConsolePrompterCloseReleasesInputOnce(testInstance *testing.T) {
	inputStub := &closableInputStub{reader: strings.NewReader("")}
	prompter := ui.NewConsolePrompter(inputStub, io.Discard)

	require.NoError(testInstance, prompter.Close())
	require.NoError(testInstance, prompter.Close())
	require.Equal(testInstance, 1, inputStub.closeCount)
}

func TestConsolePrompterPropagatesWriteFailures(testInstance *testing.T) {
	prompter := ui.NewConsolePrompter(strings.NewReader("answer\n"), failingWriter{})

	_, askError := prompter.Ask(testQuestionConstant, testDefaultAnswerConstant)

	require.Error(testInstance, askError)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("terminal unavailable")
}
