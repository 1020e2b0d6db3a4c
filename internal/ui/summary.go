package ui

import (
	"fmt"
	"io"
	"os"
)

const (
	summaryHeadingTemplateConstant = "%s\n"
	numberedLineTemplateConstant   = "%d. %s\n"
)

// Reporter emits formatted console output to an underlying sink.
type Reporter interface {
	Printf(format string, args ...any)
}

type writerReporter struct {
	writer io.Writer
}

// NewWriterReporter constructs a Reporter that writes to the provided io.Writer,
// defaulting to standard output.
func NewWriterReporter(writer io.Writer) Reporter {
	if writer == nil || writer == io.Discard {
		writer = os.Stdout
	}
	return writerReporter{writer: writer}
}

func (reporter writerReporter) Printf(format string, args ...any) {
	if reporter.writer == nil {
		return
	}
	fmt.Fprintf(reporter.writer, format, args...)
}

// CompletionSummary accumulates next-step lines and renders them as a numbered
// list. Numbers come from each line's position at render time, so conditional
// sections never leave gaps or stale counts.
type CompletionSummary struct {
	lines []string
}

// Append adds one line to the summary.
func (summary *CompletionSummary) Append(line string) {
	summary.lines = append(summary.lines, line)
}

// Lines returns the accumulated lines in insertion order.
func (summary *CompletionSummary) Lines() []string {
	return append([]string{}, summary.lines...)
}

// Render writes the heading followed by every accumulated line, numbered from one.
func (summary *CompletionSummary) Render(reporter Reporter, heading string) {
	if reporter == nil {
		return
	}
	if len(heading) > 0 {
		reporter.Printf(summaryHeadingTemplateConstant, heading)
	}
	for lineIndex, line := range summary.lines {
		reporter.Printf(numberedLineTemplateConstant, lineIndex+1, line)
	}
}
