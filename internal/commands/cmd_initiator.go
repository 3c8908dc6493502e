package commands

import (
	"context"
	"fmt"

	"github.com/hay-kot/pingpong/internal/player"
	"github.com/hay-kot/pingpong/internal/session"
	"github.com/urfave/cli/v3"
)

type InitiatorCmd struct {
	flags *Flags
}

// NewInitiatorCmd creates a new initiator command
func NewInitiatorCmd(flags *Flags) *InitiatorCmd {
	return &InitiatorCmd{flags: flags}
}

// Register adds the initiator command to the application
func (cmd *InitiatorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "initiator",
		Usage:     "Connect to a receiver and send a bounded number of messages",
		UsageText: initiatorUsage,
		Description: `Connects to a receiver at <host>:<port>, sends the payload and checks
that every reply carries the round number. After <max-messages> rounds the
termination token is sent and the receiver stops.

A reply without the expected round number is logged as a warning and the
exchange continues. A <max-messages> of 0 or less still runs one round
before the termination token is sent.

Example:
  pingpong initiator 9000 localhost 3`,
		Action: cmd.run,
	})

	return app
}

func (cmd *InitiatorCmd) run(ctx context.Context, c *cli.Command) error {
	args, err := parseInitiatorArgs(c.Args().Slice())
	if err != nil {
		return err
	}

	cfg, err := cmd.flags.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := roleLogger(player.RoleInitiator)
	logger.Info().Int("max_messages", args.MaxMessages).Msg("maximum number of messages to send")

	conn, err := session.Dial(ctx, args.Host, args.Port, cfg.Initiator.DialTimeout, logger)
	if err != nil {
		return err
	}

	return play(ctx, conn, player.RoleInitiator, player.Options{
		Messages:    cfg.Protocol,
		MaxMessages: args.MaxMessages,
	}, logger)
}
