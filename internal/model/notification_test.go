package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"email", TypeEmail},
		{"EMAIL", TypeEmail},
		{"Sms", TypeSMS},
		{"In-App", TypeInApp},
	}

	for _, tt := range tests {
		got, err := ParseType(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseType_Invalid(t *testing.T) {
	for _, in := range []string{"", "push", "in_app", "e-mail", " sms "} {
		_, err := ParseType(in)
		assert.ErrorIs(t, err, ErrInvalidType, in)
	}
}

func TestRetryStatus(t *testing.T) {
	s := RetryStatus(2)
	assert.Equal(t, Status("pending (retry 2)"), s)

	n, ok := s.Retry()
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = StatusPending.Retry()
	assert.False(t, ok)
	_, ok = StatusFailed.Retry()
	assert.False(t, ok)
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, RetryStatus(1).Terminal())
}
