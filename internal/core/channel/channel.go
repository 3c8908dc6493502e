// Package channel provides the line-oriented transport the player roles talk
// through.
package channel

import (
	"bufio"
	"fmt"
	"io"

	"github.com/hay-kot/pingpong/internal/core/protocol"
)

// maxLineSize bounds a single inbound line.
const maxLineSize = 1 << 20

// Channel is a bidirectional line transport.
type Channel interface {
	// Write sends line followed by a newline and flushes it.
	Write(line string) error
	// Read blocks for the next line. It returns protocol.Unknown once no
	// further input is available and never fails.
	Read() string
}

// TransportError is returned by Write when the underlying writer fails.
type TransportError struct {
	Line string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("write %q: %v", e.Line, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Line is a Channel over a reader and a writer, typically both ends of one
// socket.
type Line struct {
	scanner *bufio.Scanner
	writer  *bufio.Writer
}

// NewLine creates a Line channel. Either side may be nil when only the other
// direction is used.
func NewLine(r io.Reader, w io.Writer) *Line {
	l := &Line{}
	if r != nil {
		l.scanner = bufio.NewScanner(r)
		l.scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	}
	if w != nil {
		l.writer = bufio.NewWriter(w)
	}
	return l
}

// Write appends a newline to line and flushes it to the underlying writer.
func (l *Line) Write(line string) error {
	if l.writer == nil {
		return &TransportError{Line: line, Err: io.ErrClosedPipe}
	}
	if _, err := l.writer.WriteString(line + "\n"); err != nil {
		return &TransportError{Line: line, Err: err}
	}
	if err := l.writer.Flush(); err != nil {
		return &TransportError{Line: line, Err: err}
	}
	return nil
}

// Read returns the next line without its terminator, or protocol.Unknown
// when the reader is exhausted or broken.
func (l *Line) Read() string {
	if l.scanner == nil || !l.scanner.Scan() {
		return protocol.Unknown
	}
	return l.scanner.Text()
}
