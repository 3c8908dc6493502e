package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReply(t *testing.T) {
	assert.Equal(t, "hello 1", Reply("hello", 1))
	assert.Equal(t, "Message for this Task --  12", Reply(DefaultPayload, 12))
	assert.Equal(t, " 3", Reply("", 3))
}

func TestHasCount(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		count int
		want  bool
	}{
		{"exact suffix", "msg 3", 3, true},
		{"substring of larger number", "msg 13", 3, true},
		{"missing", "msg 4", 3, false},
		{"unknown sentinel", Unknown, 1, false},
		{"empty", "", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasCount(tt.reply, tt.count))
		})
	}
}

func TestIsReplyTo(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"ping 1", true},
		{"ping 120", true},
		{"ping ", false},
		{"ping", false},
		{"ping x", false},
		{"ping 1a", false},
		{"pong 1", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsReplyTo(tt.line, "ping"))
		})
	}
}

func TestMessages_Validate(t *testing.T) {
	tests := []struct {
		name    string
		msgs    Messages
		wantErr bool
	}{
		{"defaults", DefaultMessages(), false},
		{"empty payload", Messages{Termination: "stop"}, true},
		{"empty termination", Messages{Payload: "ping"}, true},
		{"same values", Messages{Payload: "ping", Termination: "ping"}, true},
		{"termination looks like a reply", Messages{Payload: "ping", Termination: "ping 7"}, true},
		{"multi-line payload", Messages{Payload: "a\nb", Termination: "stop"}, true},
		{"distinct", Messages{Payload: "ping", Termination: "stop"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msgs.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
