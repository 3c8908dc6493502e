package commands

import (
	"context"
	"errors"

	"github.com/hay-kot/pingpong/internal/player"
	"github.com/hay-kot/pingpong/internal/printer"
	"github.com/urfave/cli/v3"
)

const rootUsage = "pingpong <initiator|receiver> <port> [<host> <max-messages>]"

// RoleAction handles a root invocation that did not match a subcommand: a
// missing or unknown role keyword is a usage error.
func RoleAction(_ context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return newUsageError(rootUsage, "a role is required")
	}

	raw := c.Args().First()
	role, err := player.ParseRole(raw)
	if err != nil {
		if errors.Is(err, player.ErrUnknownRole) {
			return newUsageError(rootUsage, "%v", err)
		}
		return err
	}

	// Subcommand names are case sensitive, so a parsed role only lands here
	// when it was spelled differently.
	return newUsageError(rootUsage, "unknown command %q, did you mean %q", raw, role)
}

// Run executes app and maps its error onto a process exit code. Usage
// errors exit cleanly so that no session is ever half started.
func Run(ctx context.Context, app *cli.Command, p *printer.Printer, args []string) int {
	if app.ExitErrHandler == nil {
		app.ExitErrHandler = func(context.Context, *cli.Command, error) {}
	}

	err := app.Run(ctx, args)
	if err == nil {
		return 0
	}

	if errors.Is(err, ErrUsage) {
		p.Errorf("%v", err)
		return 0
	}

	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		if msg := exitErr.Error(); msg != "" {
			p.Errorf("%s", msg)
		}
		return exitErr.ExitCode()
	}

	p.Printf("")
	p.FatalError(err)
	return 1
}
