package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/hay-kot/pingpong/internal/core/config"
	"github.com/hay-kot/pingpong/internal/printer"
	"github.com/urfave/cli/v3"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "pingpong config validate [options]",
				Description: "Loads the configuration file (YAML, or TOML for .toml files) and checks the protocol messages and role settings.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	cfg, err := config.Load(cmd.flags.ConfigPath)

	var warnings []config.Warning
	if cfg != nil {
		warnings = cfg.Warnings()
	}

	if cmd.format == "json" {
		return cmd.outputJSON(c, err, warnings)
	}

	return cmd.outputText(printer.Ctx(ctx), cfg, err, warnings)
}

func (cmd *ConfigValidateCmd) outputJSON(c *cli.Command, validationErr error, warnings []config.Warning) error {
	type fieldError struct {
		Field   string `json:"field,omitempty"`
		Message string `json:"message"`
	}

	out := struct {
		Valid    bool             `json:"valid"`
		Errors   []fieldError     `json:"errors,omitempty"`
		Warnings []config.Warning `json:"warnings,omitempty"`
	}{
		Valid:    validationErr == nil,
		Warnings: warnings,
	}

	for _, fe := range extractFieldErrors(validationErr) {
		out.Errors = append(out.Errors, fieldError{Field: fe.Field, Message: fe.Err.Error()})
	}

	enc := json.NewEncoder(c.Root().Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	if validationErr != nil {
		return cli.Exit("", 1)
	}
	return nil
}

// extractFieldErrors extracts field errors from a validation error.
func extractFieldErrors(err error) criterio.FieldErrors {
	if err == nil {
		return nil
	}
	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		return fieldErrs
	}
	return criterio.FieldErrors{{Err: err}}
}

func (cmd *ConfigValidateCmd) outputText(p *printer.Printer, cfg *config.Config, validationErr error, warnings []config.Warning) error {
	p.Section("Configuration")
	p.Infof("file: %s", cmd.flags.ConfigPath)

	if validationErr != nil {
		for _, fe := range extractFieldErrors(validationErr) {
			label := fe.Field
			if label == "" {
				label = "config"
			}
			p.FailItem(label, fe.Err.Error())
		}
		p.Printf("")
		p.Errorf("%d error(s)", len(extractFieldErrors(validationErr)))
		return cli.Exit("", 1)
	}

	p.CheckItem("protocol.payload", fmt.Sprintf("%q", cfg.Protocol.Payload))
	p.CheckItem("protocol.termination", fmt.Sprintf("%q", cfg.Protocol.Termination))
	p.CheckItem("initiator.dial_timeout", cfg.Initiator.DialTimeout.String())
	listen := cfg.Receiver.ListenHost
	if listen == "" {
		listen = "all interfaces"
	}
	p.CheckItem("receiver.listen_host", listen)

	for _, w := range warnings {
		p.WarnItem(w.Field, w.Message)
	}

	p.Printf("")
	if len(warnings) > 0 {
		p.Successf("Configuration is valid (%d warning(s))", len(warnings))
	} else {
		p.Successf("Configuration is valid")
	}
	return nil
}
