// Package session owns the socket behind a player: it connects or accepts a
// single TCP peer, hands the roles a line channel bound to it, and releases
// the connection however the role exits.
package session

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/hay-kot/pingpong/internal/core/channel"
	"github.com/hay-kot/pingpong/internal/player"
	"github.com/rs/zerolog"
)

// Conn is one established peer connection.
type Conn struct {
	conn net.Conn
	ch   *channel.Line
	log  zerolog.Logger

	closeOnce sync.Once
	closeErr  error
}

func newConn(c net.Conn, log zerolog.Logger) *Conn {
	log = log.With().Str("peer", c.RemoteAddr().String()).Logger()
	return &Conn{
		conn: c,
		ch:   channel.NewLine(c, c),
		log:  log,
	}
}

// Channel returns the line channel bound to the connection.
func (c *Conn) Channel() channel.Channel {
	return c.ch
}

// Close releases the connection. It is safe to call more than once.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
		if c.closeErr != nil {
			c.log.Error().Err(c.closeErr).Msg("failed to close connection")
			return
		}
		c.log.Debug().Msg("connection closed")
	})
	return c.closeErr
}

// Dial connects to a receiver at host:port. A zero timeout waits as long as
// the operating system allows.
func Dial(ctx context.Context, host string, port int, timeout time.Duration, log zerolog.Logger) (*Conn, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	d := net.Dialer{Timeout: timeout}

	c, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", addr, err)
	}

	log.Info().Str("addr", addr).Str("local", c.LocalAddr().String()).Msg("connected to receiver")
	return newConn(c, log), nil
}

// Listener waits for exactly one initiator.
type Listener struct {
	ln  net.Listener
	log zerolog.Logger
}

// Listen binds host:port. An empty host listens on all interfaces; port 0
// picks a free port.
func Listen(ctx context.Context, host string, port int, log zerolog.Logger) (*Listener, error) {
	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", port, err)
	}

	log.Info().Str("addr", ln.Addr().String()).Msg("waiting for initiator to connect")
	return &Listener{ln: ln, log: log}, nil
}

// Addr returns the bound address.
func (l *Listener) Addr() net.Addr {
	return l.ln.Addr()
}

// AcceptOne accepts a single peer and closes the listener. Cancelling ctx
// aborts the wait.
func (l *Listener) AcceptOne(ctx context.Context) (*Conn, error) {
	stop := context.AfterFunc(ctx, func() {
		_ = l.ln.Close()
	})
	defer stop()
	defer l.ln.Close() //nolint:errcheck

	c, err := l.ln.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("accept: %w", ctx.Err())
		}
		return nil, fmt.Errorf("accept: %w", err)
	}

	l.log.Info().Str("peer", c.RemoteAddr().String()).Msg("initiator connected")
	return newConn(c, l.log), nil
}

// Close stops listening without accepting.
func (l *Listener) Close() error {
	return l.ln.Close()
}

// Accept listens on host:port and returns the first peer to connect.
func Accept(ctx context.Context, host string, port int, log zerolog.Logger) (*Conn, error) {
	l, err := Listen(ctx, host, port, log)
	if err != nil {
		return nil, err
	}
	return l.AcceptOne(ctx)
}

// Run starts p and closes conn once p returns. If ctx is cancelled first the
// connection is closed underneath the role, which unblocks its read and
// fails its next write. Run reports ctx.Err() in that case.
func Run(ctx context.Context, conn *Conn, p player.Player) error {
	stop := context.AfterFunc(ctx, func() {
		conn.log.Warn().Msg("interrupted, closing connection")
		_ = conn.Close()
	})
	defer stop()
	defer conn.Close() //nolint:errcheck

	p.Start()

	return ctx.Err()
}
