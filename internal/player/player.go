// Package player implements the two roles of the exchange: the initiator,
// which drives a bounded number of rounds, and the receiver, which echoes
// lines back with a sequence counter until told to stop.
package player

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hay-kot/pingpong/internal/core/channel"
	"github.com/hay-kot/pingpong/internal/core/protocol"
	"github.com/rs/zerolog"
)

// ErrUnknownRole is returned when a role keyword is neither initiator nor
// receiver.
var ErrUnknownRole = errors.New("unknown role")

// Role selects a Player variant.
type Role string

const (
	RoleInitiator Role = "initiator"
	RoleReceiver  Role = "receiver"
)

// ParseRole maps a role keyword onto a Role.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleInitiator:
		return RoleInitiator, nil
	case RoleReceiver:
		return RoleReceiver, nil
	default:
		return "", fmt.Errorf("%w %q (allowed: %s, %s)", ErrUnknownRole, s, RoleInitiator, RoleReceiver)
	}
}

// Player runs one side of the exchange to completion. Start blocks until the
// role reaches its terminal state and reports every outcome through the
// logger it was built with.
type Player interface {
	Start()
	Stats() Stats
}

// Stats summarizes a finished run.
type Stats struct {
	// Rounds counts completed exchanges.
	Rounds int
	// Mismatches counts replies that lacked the expected counter.
	Mismatches int
	// Aborted is set when the run ended on a write failure.
	Aborted bool
}

// Options configures New.
type Options struct {
	Messages    protocol.Messages
	MaxMessages int // initiator only
}

// New builds the Player for role bound to ch.
func New(role Role, ch channel.Channel, opts Options, log zerolog.Logger) (Player, error) {
	switch role {
	case RoleInitiator:
		return NewInitiator(ch, opts.Messages, opts.MaxMessages, log), nil
	case RoleReceiver:
		return NewReceiver(ch, opts.Messages, log), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownRole, role)
	}
}
