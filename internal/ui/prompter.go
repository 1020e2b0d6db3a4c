package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	promptWithDefaultTemplateConstant    = "%s [%s]: "
	promptWithoutDefaultTemplateConstant = "%s: "
	lineDelimiterConstant                = '\n'
	affirmativeShortResponseConstant     = "y"
	affirmativeLongResponseConstant      = "yes"
)

// ConsolePrompter reads free-text answers from an interactive input stream.
//
// The prompter is a scoped resource: it owns the buffered input for the whole
// run and Close releases the underlying stream exactly once, on every exit
// path. Callers defer a single Close at acquisition.
type ConsolePrompter struct {
	reader *bufio.Reader
	writer io.Writer
	closer io.Closer
	closed bool
}

// NewConsolePrompter constructs a prompter from the provided input and output streams.
// When the input also implements io.Closer it is retained for release via Close.
func NewConsolePrompter(input io.Reader, output io.Writer) *ConsolePrompter {
	prompter := &ConsolePrompter{reader: bufio.NewReader(input), writer: output}
	if inputCloser, implementsCloser := input.(io.Closer); implementsCloser {
		prompter.closer = inputCloser
	}
	return prompter
}

// Ask displays the question with a bracketed default when one is known, blocks
// for one line, and returns the trimmed answer or the default when the trimmed
// answer is empty.
func (prompter *ConsolePrompter) Ask(question string, defaultValue string) (string, error) {
	promptText := fmt.Sprintf(promptWithoutDefaultTemplateConstant, question)
	if len(strings.TrimSpace(defaultValue)) > 0 {
		promptText = fmt.Sprintf(promptWithDefaultTemplateConstant, question, defaultValue)
	}

	response, promptError := prompter.readResponse(promptText)
	if promptError != nil {
		return "", promptError
	}

	trimmedResponse := strings.TrimSpace(response)
	if len(trimmedResponse) == 0 {
		return defaultValue, nil
	}
	return trimmedResponse, nil
}

// Confirm displays the question and interprets affirmative responses (y/yes).
// Any other answer, including an empty line, declines.
func (prompter *ConsolePrompter) Confirm(question string) (bool, error) {
	response, promptError := prompter.readResponse(question)
	if promptError != nil {
		return false, promptError
	}

	trimmedResponse := strings.TrimSpace(strings.ToLower(response))
	switch trimmedResponse {
	case affirmativeShortResponseConstant, affirmativeLongResponseConstant:
		return true, nil
	default:
		return false, nil
	}
}

// Close releases the underlying input stream. Subsequent calls are no-ops.
func (prompter *ConsolePrompter) Close() error {
	if prompter.closed || prompter.closer == nil {
		prompter.closed = true
		return nil
	}
	prompter.closed = true
	return prompter.closer.Close()
}

func (prompter *ConsolePrompter) readResponse(promptText string) (string, error) {
	if prompter.writer != nil {
		if _, writeError := io.WriteString(prompter.writer, promptText); writeError != nil {
			return "", writeError
		}
	}

	response, readError := prompter.reader.ReadString(lineDelimiterConstant)
	if readError != nil && readError != io.EOF {
		return "", readError
	}
	return response, nil
}
