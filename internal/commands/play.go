package commands

import (
	"context"
	"errors"

	"github.com/hay-kot/pingpong/internal/player"
	"github.com/hay-kot/pingpong/internal/printer"
	"github.com/hay-kot/pingpong/internal/session"
	"github.com/hay-kot/pingpong/pkg/randid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// roleLogger returns the diagnostic logger for one run of role.
func roleLogger(role player.Role) zerolog.Logger {
	return log.With().
		Str("component", string(role)).
		Str("session", randid.Generate(8)).
		Logger()
}

// play runs role over conn and prints a summary once it finishes. Role
// outcomes, including write failures, never fail the command.
func play(ctx context.Context, conn *session.Conn, role player.Role, opts player.Options, logger zerolog.Logger) error {
	p, err := player.New(role, conn.Channel(), opts, logger)
	if err != nil {
		_ = conn.Close()
		return err
	}

	logger.Info().Msg("player starting")
	err = session.Run(ctx, conn, p)
	logger.Info().Msg("player task is complete, shutting down")

	pr := printer.Ctx(ctx)
	stats := p.Stats()

	switch {
	case errors.Is(err, context.Canceled):
		pr.Warnf("Interrupted after %d round(s)", stats.Rounds)
	case stats.Aborted:
		pr.Errorf("Connection lost after %d round(s)", stats.Rounds)
	case stats.Mismatches > 0:
		pr.Warnf("Exchanged %d round(s), %d unexpected repl(ies)", stats.Rounds, stats.Mismatches)
	default:
		pr.Successf("Exchanged %d round(s)", stats.Rounds)
	}

	return nil
}
