// Package config handles configuration loading and validation for pingpong.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hay-kot/criterio"
	"github.com/hay-kot/pingpong/internal/core/protocol"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration. Ports, hosts and round
// limits given on the command line always take precedence.
type Config struct {
	Protocol  protocol.Messages `yaml:"protocol" toml:"protocol"`
	Initiator InitiatorConfig   `yaml:"initiator" toml:"initiator"`
	Receiver  ReceiverConfig    `yaml:"receiver" toml:"receiver"`
}

// InitiatorConfig holds settings for the initiator role.
type InitiatorConfig struct {
	// DialTimeout bounds the connection attempt only. Zero disables it.
	DialTimeout time.Duration `yaml:"dial_timeout" toml:"dial_timeout"`
}

// ReceiverConfig holds settings for the receiver role.
type ReceiverConfig struct {
	// ListenHost is the interface to bind; empty means all interfaces.
	ListenHost string `yaml:"listen_host" toml:"listen_host"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Protocol: protocol.DefaultMessages(),
		Initiator: InitiatorConfig{
			DialTimeout: 10 * time.Second,
		},
	}
}

// Load reads configuration from path. Files ending in .toml are decoded as
// TOML, anything else as YAML. If path is empty or doesn't exist, defaults
// are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := decode(path, data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// applyDefaults fills protocol values a config file left blank.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Protocol.Payload == "" {
		c.Protocol.Payload = defaults.Protocol.Payload
	}
	if c.Protocol.Termination == "" {
		c.Protocol.Termination = defaults.Protocol.Termination
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs criterio.FieldErrors

	if err := c.Protocol.Validate(); err != nil {
		errs = append(errs, criterio.FieldError{Field: "protocol", Err: err})
	}

	if c.Initiator.DialTimeout < 0 {
		errs = append(errs, criterio.FieldError{
			Field: "initiator.dial_timeout",
			Err:   fmt.Errorf("must not be negative, got %s", c.Initiator.DialTimeout),
		})
	}

	if strings.ContainsAny(c.Receiver.ListenHost, " /") {
		errs = append(errs, criterio.FieldError{
			Field: "receiver.listen_host",
			Err:   fmt.Errorf("%q is not a host name or address", c.Receiver.ListenHost),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Warning is a non-fatal configuration issue.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Warnings reports settings that are valid but likely unintended.
func (c *Config) Warnings() []Warning {
	var warnings []Warning

	if c.Initiator.DialTimeout == 0 {
		warnings = append(warnings, Warning{
			Field:   "initiator.dial_timeout",
			Message: "no dial timeout; connecting to an unreachable receiver may block for a long time",
		})
	}

	if strings.TrimSpace(c.Protocol.Termination) != c.Protocol.Termination {
		warnings = append(warnings, Warning{
			Field:   "protocol.termination",
			Message: "termination has surrounding whitespace and must be matched exactly",
		})
	}

	return warnings
}
