// Package protocol defines the line protocol shared by the initiator and
// receiver roles.
package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Unknown is the line a channel yields once its input is exhausted.
// Roles treat it as ordinary message content.
const Unknown = "Unknown"

// Default protocol values.
const (
	DefaultPayload     = "Message for this Task -- "
	DefaultTermination = "poison-pill"
)

// Messages holds the two lines with protocol meaning. Both roles must be
// built with the same value.
type Messages struct {
	Payload     string `yaml:"payload" toml:"payload"`
	Termination string `yaml:"termination" toml:"termination"`
}

// DefaultMessages returns the built-in payload and termination token.
func DefaultMessages() Messages {
	return Messages{
		Payload:     DefaultPayload,
		Termination: DefaultTermination,
	}
}

// Validate checks that the termination token can never be confused with a
// payload or with a reply derived from it.
func (m Messages) Validate() error {
	if m.Payload == "" {
		return errors.New("payload cannot be empty")
	}
	if m.Termination == "" {
		return errors.New("termination cannot be empty")
	}
	if strings.ContainsAny(m.Payload, "\r\n") || strings.ContainsAny(m.Termination, "\r\n") {
		return errors.New("payload and termination must be single lines")
	}
	if m.Payload == m.Termination {
		return errors.New("termination must differ from payload")
	}
	if IsReplyTo(m.Termination, m.Payload) {
		return fmt.Errorf("termination %q collides with a payload reply", m.Termination)
	}
	return nil
}

// Reply composes the receiver's answer to line for the given round.
func Reply(line string, count int) string {
	return line + " " + strconv.Itoa(count)
}

// HasCount reports whether reply carries the decimal form of count anywhere
// in its text.
func HasCount(reply string, count int) bool {
	return strings.Contains(reply, strconv.Itoa(count))
}

// IsReplyTo reports whether line has the shape "<msg> <decimal>".
func IsReplyTo(line, msg string) bool {
	rest, ok := strings.CutPrefix(line, msg+" ")
	if !ok || rest == "" {
		return false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
