package channel

import (
	"sync"

	"github.com/hay-kot/pingpong/internal/core/protocol"
)

// OpKind identifies a recorded channel operation.
type OpKind string

const (
	OpRead  OpKind = "read"
	OpWrite OpKind = "write"
)

// Op is one operation performed on a Recording, in call order.
type Op struct {
	Kind OpKind
	Line string
}

// Recording is a scripted Channel for tests. Reads are served from Script in
// order and yield protocol.Unknown once it is exhausted. Every Write is
// recorded, including failing ones.
type Recording struct {
	mu  sync.Mutex
	Ops []Op

	// Script holds the lines returned by successive reads.
	Script []string

	// Errors maps a written line to the error its Write returns.
	Errors map[string]error

	// WriteErr, when set, fails every write not listed in Errors.
	WriteErr error

	next int
}

// Write records line and returns the configured error, if any.
func (r *Recording) Write(line string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Ops = append(r.Ops, Op{Kind: OpWrite, Line: line})

	if err, ok := r.Errors[line]; ok && err != nil {
		return &TransportError{Line: line, Err: err}
	}
	if r.WriteErr != nil {
		return &TransportError{Line: line, Err: r.WriteErr}
	}
	return nil
}

// Read returns the next scripted line.
func (r *Recording) Read() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	line := protocol.Unknown
	if r.next < len(r.Script) {
		line = r.Script[r.next]
		r.next++
	}

	r.Ops = append(r.Ops, Op{Kind: OpRead, Line: line})
	return line
}

// Writes returns the lines passed to Write, in order.
func (r *Recording) Writes() []string {
	return r.lines(OpWrite)
}

// Reads returns the lines handed out by Read, in order.
func (r *Recording) Reads() []string {
	return r.lines(OpRead)
}

func (r *Recording) lines(kind OpKind) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []string
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op.Line)
		}
	}
	return out
}
