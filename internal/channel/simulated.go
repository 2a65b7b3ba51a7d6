package channel

import (
	"context"
	"math/rand"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/notification-service/internal/model"
)

const (
	// DefaultFailureRate is the share of simulated attempts that report failure.
	DefaultFailureRate = 0.3
	// DefaultLatency is how long a simulated attempt takes.
	DefaultLatency = 500 * time.Millisecond
)

// Simulated stands in for a real transport: every attempt waits for Latency and
// then fails with probability FailureRate.
type Simulated struct {
	name        string
	failureRate float64
	latency     time.Duration
	draw        func() float64
}

// SimulatedOption configures a Simulated channel.
type SimulatedOption func(*Simulated)

// WithFailureRate sets the probability in [0, 1] of an attempt failing.
func WithFailureRate(rate float64) SimulatedOption {
	return func(s *Simulated) {
		s.failureRate = rate
	}
}

// WithLatency sets the duration of a single attempt.
func WithLatency(d time.Duration) SimulatedOption {
	return func(s *Simulated) {
		s.latency = d
	}
}

// WithRandom replaces the source of uniform draws in [0, 1).
func WithRandom(draw func() float64) SimulatedOption {
	return func(s *Simulated) {
		s.draw = draw
	}
}

// NewSimulated creates a simulated channel with the given name, used in logs.
func NewSimulated(name string, opts ...SimulatedOption) *Simulated {
	s := &Simulated{
		name:        name,
		failureRate: DefaultFailureRate,
		latency:     DefaultLatency,
		draw:        rand.Float64,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Attempt simulates sending n. A cancelled context aborts the wait and is
// reported as an error.
func (s *Simulated) Attempt(ctx context.Context, n model.Notification) (bool, error) {
	zlog.Logger.Info().
		Str("channel", s.name).
		Str("id", n.ID).
		Str("user_id", n.UserID).
		Msgf("sending %s notification", n.Type)

	success := s.draw() >= s.failureRate

	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-timer.C:
	}

	if !success {
		zlog.Logger.Warn().Str("channel", s.name).Str("id", n.ID).Msgf("failed to send %s notification", n.Type)
		return false, nil
	}

	zlog.Logger.Info().Str("channel", s.name).Str("id", n.ID).Msgf("%s notification sent", n.Type)
	return true, nil
}
