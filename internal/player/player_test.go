package player

import (
	"net"
	"sync"
	"testing"

	"github.com/hay-kot/pingpong/internal/core/channel"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{"initiator", RoleInitiator, false},
		{"receiver", RoleReceiver, false},
		{" Receiver ", RoleReceiver, false},
		{"client", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	ch := &channel.Recording{}
	opts := Options{Messages: testMessages, MaxMessages: 2}

	p, err := New(RoleInitiator, ch, opts, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &Initiator{}, p)

	p, err = New(RoleReceiver, ch, opts, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &Receiver{}, p)

	_, err = New(Role("observer"), ch, opts, zerolog.Nop())
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestRoundTripOverPipe(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close() //nolint:errcheck
	defer b.Close() //nolint:errcheck

	initLogs, initLog := newLogCapture(t)
	recvLogs, recvLog := newLogCapture(t)

	initiator := NewInitiator(channel.NewLine(a, a), testMessages, 3, initLog)
	receiver := NewReceiver(channel.NewLine(b, b), testMessages, recvLog)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		receiver.Start()
	}()
	go func() {
		defer wg.Done()
		initiator.Start()
	}()
	wg.Wait()

	assert.Equal(t, Stats{Rounds: 3}, initiator.Stats())
	assert.Equal(t, Stats{Rounds: 3}, receiver.Stats())
	assert.Empty(t, initLogs.abnormal())
	assert.Empty(t, recvLogs.abnormal())
}
