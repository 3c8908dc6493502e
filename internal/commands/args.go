package commands

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUsage marks invalid command-line arguments. The process exits with
// status 0 and no session is started.
var ErrUsage = errors.New("usage")

type usageError struct {
	msg   string
	usage string
}

func (e *usageError) Error() string {
	return e.msg + "\n\nUsage: " + e.usage
}

func (e *usageError) Is(target error) bool {
	return target == ErrUsage
}

func newUsageError(usage, format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...), usage: usage}
}

const (
	initiatorUsage = "pingpong initiator <port> <host> <max-messages>"
	receiverUsage  = "pingpong receiver <port>"
)

type initiatorArgs struct {
	Port        int
	Host        string
	MaxMessages int
}

type receiverArgs struct {
	Port int
}

func parseInitiatorArgs(args []string) (initiatorArgs, error) {
	if len(args) != 3 {
		return initiatorArgs{}, newUsageError(initiatorUsage, "initiator requires 3 arguments, got %d", len(args))
	}

	port, err := parsePort(args[0])
	if err != nil {
		return initiatorArgs{}, newUsageError(initiatorUsage, "%v", err)
	}

	if args[1] == "" {
		return initiatorArgs{}, newUsageError(initiatorUsage, "host cannot be empty")
	}

	limit, err := strconv.Atoi(args[2])
	if err != nil {
		return initiatorArgs{}, newUsageError(initiatorUsage, "max-messages must be an integer, got %q", args[2])
	}

	return initiatorArgs{Port: port, Host: args[1], MaxMessages: limit}, nil
}

// parseReceiverArgs accepts the port alone or the full initiator argument
// list; anything after the port is ignored.
func parseReceiverArgs(args []string) (receiverArgs, error) {
	if len(args) != 1 && len(args) != 3 {
		return receiverArgs{}, newUsageError(receiverUsage, "receiver requires a port argument")
	}

	port, err := parsePort(args[0])
	if err != nil {
		return receiverArgs{}, newUsageError(receiverUsage, "%v", err)
	}

	return receiverArgs{Port: port}, nil
}

func parsePort(raw string) (int, error) {
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("port must be an integer, got %q", raw)
	}
	if port < 0 || port > 65535 {
		return 0, fmt.Errorf("port %d is out of range", port)
	}
	return port, nil
}
