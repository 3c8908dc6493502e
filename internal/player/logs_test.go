package player

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// logCapture collects JSON log events emitted by a role.
type logCapture struct {
	t   *testing.T
	buf bytes.Buffer
}

func newLogCapture(t *testing.T) (*logCapture, zerolog.Logger) {
	t.Helper()
	c := &logCapture{t: t}
	return c, zerolog.New(&c.buf).Level(zerolog.DebugLevel)
}

func (c *logCapture) events() []map[string]any {
	c.t.Helper()

	var out []map[string]any
	scanner := bufio.NewScanner(bytes.NewReader(c.buf.Bytes()))
	for scanner.Scan() {
		var ev map[string]any
		require.NoError(c.t, json.Unmarshal(scanner.Bytes(), &ev))
		out = append(out, ev)
	}
	return out
}

// at returns the events logged at level.
func (c *logCapture) at(level zerolog.Level) []map[string]any {
	c.t.Helper()

	var out []map[string]any
	for _, ev := range c.events() {
		if ev[zerolog.LevelFieldName] == level.String() {
			out = append(out, ev)
		}
	}
	return out
}

// abnormal returns every warn-or-worse event.
func (c *logCapture) abnormal() []map[string]any {
	c.t.Helper()

	var out []map[string]any
	for _, lvl := range []zerolog.Level{zerolog.WarnLevel, zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel} {
		out = append(out, c.at(lvl)...)
	}
	return out
}
