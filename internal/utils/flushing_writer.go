package utils

import (
	"io"
	"sync"
)

// FlushingWriter serializes writes to an underlying writer and flushes buffered writers after every write,
// so streamed subprocess output interleaves correctly with status lines.
type FlushingWriter struct {
	writer io.Writer
	mutex  sync.Mutex
}

// NewFlushingWriter wraps the provided writer. Discarding and already wrapped writers are returned unchanged.
func NewFlushingWriter(writer io.Writer) io.Writer {
	switch writer.(type) {
	case nil:
		return io.Discard
	case *FlushingWriter:
		return writer
	}
	if writer == io.Discard {
		return writer
	}
	return &FlushingWriter{writer: writer}
}

// Write delegates to the underlying writer and flushes it when possible.
func (flushingWriter *FlushingWriter) Write(data []byte) (int, error) {
	flushingWriter.mutex.Lock()
	defer flushingWriter.mutex.Unlock()

	bytesWritten, writeError := flushingWriter.writer.Write(data)
	if writeError != nil {
		return bytesWritten, writeError
	}

	if flushableWriter, implementsFlush := flushingWriter.writer.(interface{ Flush() error }); implementsFlush {
		if flushError := flushableWriter.Flush(); flushError != nil {
			return bytesWritten, flushError
		}
	}

	return bytesWritten, nil
}
