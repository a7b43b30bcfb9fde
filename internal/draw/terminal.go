package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ANSI sequences used by the terminal hosts.
const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
)

// ChunkWriter collects one frame of terminal output (canvas and overlay
// text) and flushes it in MTU-sized writes.
type ChunkWriter struct {
	buf    strings.Builder
	w      *bufio.Writer
	num    [20]byte
	offCol int
	offRow int
}

// NewChunkWriter writes frames to w. WriteAt coordinates are shifted by
// the given offset.
func NewChunkWriter(w io.Writer, offCol, offRow int) *ChunkWriter {
	return &ChunkWriter{w: bufio.NewWriterSize(w, 8192), offCol: offCol, offRow: offRow}
}

// SetOffset updates the shift applied by WriteAt, e.g. after a resize.
func (cw *ChunkWriter) SetOffset(offCol, offRow int) {
	cw.offCol, cw.offRow = offCol, offRow
}

// Write buffers p; it lets a Canvas render into the frame.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.buf.Write(p)
}

// WriteString buffers s without positioning.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// WriteAt buffers s at a 1-based canvas cell.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.num[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.num[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
	cw.buf.WriteString(s)
}

// Flush sends the buffered frame and resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	if err := writeChunked(cw.w, data); err != nil {
		return err
	}
	return cw.w.Flush()
}

var _ io.Writer = (*ChunkWriter)(nil)

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc queries os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

func ClearScreen(w io.Writer) { io.WriteString(w, seqClear) }
func HideCursor(w io.Writer) { io.WriteString(w, seqHideCursor) }
func ShowCursor(w io.Writer) { io.WriteString(w, seqShowCursor) }
