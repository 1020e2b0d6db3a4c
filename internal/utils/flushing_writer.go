package utils

import (
	"io"
	"sync"
)

type flushable interface {
	Flush() error
}

// FlushingWriter forwards writes to the wrapped writer and flushes it after
// every write when the writer supports flushing. Prompts written without a
// trailing newline stay visible while the process waits for input.
type FlushingWriter struct {
	destination io.Writer
	writeGuard  sync.Mutex
}

// NewFlushingWriter wraps the provided writer. Writers that already flush are
// passed through unchanged.
func NewFlushingWriter(destination io.Writer) io.Writer {
	if destination == nil {
		return nil
	}
	if _, alreadyWrapped := destination.(*FlushingWriter); alreadyWrapped {
		return destination
	}
	return &FlushingWriter{destination: destination}
}

// Write delegates to the underlying writer and flushes it when supported.
func (writer *FlushingWriter) Write(data []byte) (int, error) {
	if writer == nil || writer.destination == nil {
		return 0, nil
	}

	writer.writeGuard.Lock()
	defer writer.writeGuard.Unlock()

	bytesWritten, writeError := writer.destination.Write(data)
	if writeError != nil {
		return bytesWritten, writeError
	}

	if flushableDestination, supportsFlush := writer.destination.(flushable); supportsFlush {
		if flushError := flushableDestination.Flush(); flushError != nil {
			return bytesWritten, flushError
		}
	}

	return bytesWritten, nil
}
