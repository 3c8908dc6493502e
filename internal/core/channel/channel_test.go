package channel

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/hay-kot/pingpong/internal/core/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct {
	err error
}

func (w failingWriter) Write(_ []byte) (int, error) {
	return 0, w.err
}

func TestLine_Write(t *testing.T) {
	var buf bytes.Buffer
	ch := NewLine(nil, &buf)

	require.NoError(t, ch.Write("Test message"))
	assert.Equal(t, "Test message\n", buf.String())

	require.NoError(t, ch.Write("second"))
	assert.Equal(t, "Test message\nsecond\n", buf.String(), "each write is flushed immediately")
}

func TestLine_WriteError(t *testing.T) {
	boom := errors.New("broken pipe")
	ch := NewLine(nil, failingWriter{err: boom})

	err := ch.Write("Test message")

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "Test message", te.Line)
	assert.ErrorIs(t, err, boom)
}

func TestLine_WriteWithoutWriter(t *testing.T) {
	ch := NewLine(strings.NewReader("x\n"), nil)
	assert.ErrorIs(t, ch.Write("x"), io.ErrClosedPipe)
}

func TestLine_Read(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "unterminated final line",
			input: "Test scanner message",
			want:  []string{"Test scanner message", protocol.Unknown},
		},
		{
			name:  "several lines",
			input: "a\nb\n",
			want:  []string{"a", "b", protocol.Unknown},
		},
		{
			name:  "crlf is stripped",
			input: "a\r\n",
			want:  []string{"a", protocol.Unknown},
		},
		{
			name:  "empty line is content",
			input: "\nz\n",
			want:  []string{"", "z", protocol.Unknown},
		},
		{
			name:  "empty input",
			input: "",
			want:  []string{protocol.Unknown, protocol.Unknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := NewLine(strings.NewReader(tt.input), nil)
			for _, want := range tt.want {
				assert.Equal(t, want, ch.Read())
			}
		})
	}
}

func TestLine_ReadWithoutReader(t *testing.T) {
	ch := NewLine(nil, io.Discard)
	assert.Equal(t, protocol.Unknown, ch.Read())
}

func TestLine_RoundTrip(t *testing.T) {
	pr, pw := io.Pipe()
	writer := NewLine(nil, pw)
	reader := NewLine(pr, nil)

	go func() {
		_ = writer.Write("X")
		_ = pw.Close()
	}()

	assert.Equal(t, "X", reader.Read())
	assert.Equal(t, protocol.Unknown, reader.Read())
}

func TestRecording(t *testing.T) {
	boom := errors.New("boom")
	rec := &Recording{
		Script: []string{"one"},
		Errors: map[string]error{"bad": boom},
	}

	assert.Equal(t, "one", rec.Read())
	assert.Equal(t, protocol.Unknown, rec.Read())
	assert.NoError(t, rec.Write("good"))
	assert.ErrorIs(t, rec.Write("bad"), boom)

	assert.Equal(t, []string{"one", protocol.Unknown}, rec.Reads())
	assert.Equal(t, []string{"good", "bad"}, rec.Writes())
	assert.Equal(t, []Op{
		{Kind: OpRead, Line: "one"},
		{Kind: OpRead, Line: protocol.Unknown},
		{Kind: OpWrite, Line: "good"},
		{Kind: OpWrite, Line: "bad"},
	}, rec.Ops)
}
