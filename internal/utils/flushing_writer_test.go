package utils_test

import (
	"bufio"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/dephealth/internal/utils"
)

func TestFlushingWriterFlushesBufferedWriters(testInstance *testing.T) {
	destination := &bytes.Buffer{}
	bufferedWriter := bufio.NewWriterSize(destination, 4096)

	flushingWriter := utils.NewFlushingWriter(bufferedWriter)
	bytesWritten, writeError := flushingWriter.Write([]byte("added 12 packages\n"))

	require.NoError(testInstance, writeError)
	require.Equal(testInstance, 18, bytesWritten)
	require.Equal(testInstance, "added 12 packages\n", destination.String())
}

func TestNewFlushingWriterReturnsSpecialWritersUnchanged(testInstance *testing.T) {
	require.Equal(testInstance, io.Discard, utils.NewFlushingWriter(nil))
	require.Equal(testInstance, io.Discard, utils.NewFlushingWriter(io.Discard))

	wrapped := utils.NewFlushingWriter(&bytes.Buffer{})
	require.Same(testInstance, wrapped, utils.NewFlushingWriter(wrapped))
}
