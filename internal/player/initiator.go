package player

import (
	"github.com/hay-kot/pingpong/internal/core/channel"
	"github.com/hay-kot/pingpong/internal/core/protocol"
	"github.com/rs/zerolog"
)

type initiatorState int

const (
	stateSending initiatorState = iota
	stateAwaitingReply
	stateCheckingTermination
	stateSendDone
)

func (s initiatorState) String() string {
	switch s {
	case stateSending:
		return "sending"
	case stateAwaitingReply:
		return "awaiting_reply"
	case stateCheckingTermination:
		return "checking_termination"
	case stateSendDone:
		return "done"
	default:
		return "invalid"
	}
}

// Initiator writes the payload, waits for the numbered reply, and after
// maxMessages rounds sends the termination token.
type Initiator struct {
	ch          channel.Channel
	msgs        protocol.Messages
	maxMessages int
	log         zerolog.Logger
	stats       Stats
}

// NewInitiator creates an Initiator. maxMessages is not validated; any value
// below 1 ends the run after the first round.
func NewInitiator(ch channel.Channel, msgs protocol.Messages, maxMessages int, log zerolog.Logger) *Initiator {
	return &Initiator{
		ch:          ch,
		msgs:        msgs,
		maxMessages: maxMessages,
		log:         log,
	}
}

// Start runs rounds until the termination token has been sent or the payload
// could not be written.
func (i *Initiator) Start() {
	i.stats = Stats{}
	count := 1
	state := stateSending

	for state != stateSendDone {
		next := i.step(state, &count)
		i.log.Debug().Stringer("from", state).Stringer("to", next).Int("count", count).Msg("transition")
		state = next
	}
}

func (i *Initiator) step(state initiatorState, count *int) initiatorState {
	switch state {
	case stateSending:
		if err := i.ch.Write(i.msgs.Payload); err != nil {
			i.log.Error().Err(err).Int("count", *count).Msg("failed to write message")
			i.stats.Aborted = true
			return stateSendDone
		}
		i.log.Info().Str("message", i.msgs.Payload).Msg("sent message")
		return stateAwaitingReply

	case stateAwaitingReply:
		reply := i.ch.Read()
		if protocol.HasCount(reply, *count) {
			i.log.Info().Str("message", reply).Msg("received message")
		} else {
			i.log.Warn().Str("message", reply).Int("count", *count).Msg("reply is missing the expected count")
			i.stats.Mismatches++
		}
		i.stats.Rounds++
		return stateCheckingTermination

	case stateCheckingTermination:
		if *count < i.maxMessages {
			*count++
			return stateSending
		}
		i.log.Info().Int("count", *count).Msg("message limit reached")
		if err := i.ch.Write(i.msgs.Termination); err != nil {
			i.log.Error().Err(err).Msg("failed to send termination to receiver")
		} else {
			i.log.Info().Str("message", i.msgs.Termination).Msg("sent termination")
		}
		return stateSendDone
	}

	return stateSendDone
}

// Stats returns the outcome of the last Start.
func (i *Initiator) Stats() Stats {
	return i.stats
}
