// Package ui provides the interactive console surface of the application.
//
// It owns line-oriented prompting with bracketed defaults, a Reporter sink for
// human-readable status output, and the numbered completion summary rendered at
// the end of a bootstrap run. Detailed telemetry continues to flow through
// structured loggers; this package only speaks to the person at the terminal.
package ui
