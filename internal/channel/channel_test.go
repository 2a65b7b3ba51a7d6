package channel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/notification-service/internal/model"
)

func TestRouter_Attempt(t *testing.T) {
	var got []model.Type
	record := func(ok bool) Channel {
		return Func(func(_ context.Context, n model.Notification) (bool, error) {
			got = append(got, n.Type)
			return ok, nil
		})
	}

	r := NewRouter(map[model.Type]Channel{
		model.TypeEmail: record(true),
		model.TypeSMS:   record(false),
	})

	ok, err := r.Attempt(context.Background(), model.Notification{Type: model.TypeEmail})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Attempt(context.Background(), model.Notification{Type: model.TypeSMS})
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, []model.Type{model.TypeEmail, model.TypeSMS}, got)
}

func TestRouter_UnknownType(t *testing.T) {
	r := NewRouter(map[model.Type]Channel{})

	ok, err := r.Attempt(context.Background(), model.Notification{Type: model.TypeInApp})
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestSimulated_Outcome(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		draw float64
		want bool
	}{
		{"draw above rate succeeds", 0.3, 0.5, true},
		{"draw below rate fails", 0.3, 0.1, false},
		{"zero rate always succeeds", 0, 0, true},
		{"full rate always fails", 1, 0.999, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSimulated("test",
				WithFailureRate(tt.rate),
				WithLatency(time.Millisecond),
				WithRandom(func() float64 { return tt.draw }),
			)

			ok, err := s.Attempt(context.Background(), model.Notification{ID: "n1", Type: model.TypeSMS})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestSimulated_Latency(t *testing.T) {
	s := NewSimulated("test", WithFailureRate(0), WithLatency(20*time.Millisecond))

	start := time.Now()
	_, err := s.Attempt(context.Background(), model.Notification{ID: "n1"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSimulated_ContextCancelled(t *testing.T) {
	s := NewSimulated("test", WithLatency(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := s.Attempt(ctx, model.Notification{ID: "n1"})
	assert.False(t, ok)
	assert.True(t, errors.Is(err, context.Canceled))
}
