// Package channeltest provides a deterministic channel for tests.
package channeltest

import (
	"context"
	"sync"

	"github.com/aliskhannn/notification-service/internal/model"
)

// Outcome is one scripted attempt result.
type Outcome struct {
	Sent bool
	Err  error
}

var (
	// Sent is a successful attempt.
	Sent = Outcome{Sent: true}
	// NotSent is an attempt the transport reported as failed.
	NotSent = Outcome{}
)

// Malfunction is an attempt that fails with err.
func Malfunction(err error) Outcome {
	return Outcome{Err: err}
}

// Scripted replays a fixed sequence of outcomes, one per attempt, and records
// every notification it was asked to deliver. Once the script is exhausted the
// fallback outcome is returned.
type Scripted struct {
	mu       sync.Mutex
	script   []Outcome
	fallback Outcome
	attempts []model.Notification
}

// New creates a Scripted channel. Attempts beyond the script report NotSent.
func New(script ...Outcome) *Scripted {
	return &Scripted{script: script, fallback: NotSent}
}

// Always creates a Scripted channel that returns o for every attempt.
func Always(o Outcome) *Scripted {
	return &Scripted{fallback: o}
}

// Attempt returns the next scripted outcome.
func (s *Scripted) Attempt(_ context.Context, n model.Notification) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts = append(s.attempts, n)

	o := s.fallback
	if len(s.script) > 0 {
		o = s.script[0]
		s.script = s.script[1:]
	}

	return o.Sent, o.Err
}

// Attempts returns how many attempts were made.
func (s *Scripted) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.attempts)
}

// Calls returns a copy of every notification passed to Attempt, in order.
func (s *Scripted) Calls() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Notification, len(s.attempts))
	copy(out, s.attempts)

	return out
}
