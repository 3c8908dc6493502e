package player

import (
	"github.com/hay-kot/pingpong/internal/core/channel"
	"github.com/hay-kot/pingpong/internal/core/protocol"
	"github.com/rs/zerolog"
)

type receiverState int

const (
	stateAwaitingMessage receiverState = iota
	stateReplying
	stateReceiveDone
)

func (s receiverState) String() string {
	switch s {
	case stateAwaitingMessage:
		return "awaiting_message"
	case stateReplying:
		return "replying"
	case stateReceiveDone:
		return "done"
	default:
		return "invalid"
	}
}

// Receiver echoes every line with " <count>" appended until it reads the
// termination token.
type Receiver struct {
	ch    channel.Channel
	msgs  protocol.Messages
	log   zerolog.Logger
	stats Stats
}

// NewReceiver creates a Receiver.
func NewReceiver(ch channel.Channel, msgs protocol.Messages, log zerolog.Logger) *Receiver {
	return &Receiver{
		ch:   ch,
		msgs: msgs,
		log:  log,
	}
}

// Start reads and replies until the termination token arrives or a reply
// cannot be written.
func (r *Receiver) Start() {
	r.stats = Stats{}

	var (
		count = 1
		line  string
		state = stateAwaitingMessage
	)

	for state != stateReceiveDone {
		var next receiverState

		switch state {
		case stateAwaitingMessage:
			line = r.ch.Read()
			r.log.Info().Str("message", line).Msg("received message")
			if line == r.msgs.Termination {
				r.log.Info().Msg("received termination, exiting")
				next = stateReceiveDone
			} else {
				next = stateReplying
			}

		case stateReplying:
			reply := protocol.Reply(line, count)
			if err := r.ch.Write(reply); err != nil {
				r.log.Error().Err(err).Int("count", count).Msg("failed to send reply")
				r.stats.Aborted = true
				next = stateReceiveDone
				break
			}
			r.log.Info().Str("message", reply).Msg("sent message")
			r.stats.Rounds++
			count++
			next = stateAwaitingMessage
		}

		r.log.Debug().Stringer("from", state).Stringer("to", next).Int("count", count).Msg("transition")
		state = next
	}
}

// Stats returns the outcome of the last Start.
func (r *Receiver) Stats() Stats {
	return r.stats
}
