package commands

import (
	"context"
	"fmt"

	"github.com/hay-kot/pingpong/internal/player"
	"github.com/hay-kot/pingpong/internal/session"
	"github.com/urfave/cli/v3"
)

type ReceiverCmd struct {
	flags *Flags
}

// NewReceiverCmd creates a new receiver command
func NewReceiverCmd(flags *Flags) *ReceiverCmd {
	return &ReceiverCmd{flags: flags}
}

// Register adds the receiver command to the application
func (cmd *ReceiverCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "receiver",
		Usage:     "Wait for one initiator and echo its messages",
		UsageText: receiverUsage,
		Description: `Listens on <port>, accepts a single initiator and answers every line
with the same line followed by a space and the round number. The receiver
stops when it reads the termination token or a reply cannot be sent.

Example:
  pingpong receiver 9000`,
		Action: cmd.run,
	})

	return app
}

func (cmd *ReceiverCmd) run(ctx context.Context, c *cli.Command) error {
	args, err := parseReceiverArgs(c.Args().Slice())
	if err != nil {
		return err
	}

	cfg, err := cmd.flags.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := roleLogger(player.RoleReceiver)

	conn, err := session.Accept(ctx, cfg.Receiver.ListenHost, args.Port, logger)
	if err != nil {
		return err
	}

	return play(ctx, conn, player.RoleReceiver, player.Options{Messages: cfg.Protocol}, logger)
}
