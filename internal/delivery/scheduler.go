package delivery

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/wb-go/wbf/retry"

	"github.com/aliskhannn/notification-service/internal/model"
)

var (
	ErrRetriesExhausted = errors.New("retries exhausted")
	ErrAlreadyScheduled = errors.New("retry already scheduled")
	ErrSchedulerStopped = errors.New("scheduler stopped")
)

// DefaultStrategy retries three times after 1s, 2s and 4s.
var DefaultStrategy = retry.Strategy{
	Attempts: 3,
	Delay:    time.Second,
	Backoff:  2,
}

type statusUpdater interface {
	UpdateStatus(userID, id string, status model.Status, retryCount int) bool
}

// Scheduler arms deferred retries of failed deliveries.
//
// Strategy.Attempts bounds the retry count, Strategy.Delay is the delay before
// the first retry and Strategy.Backoff multiplies it for every following one.
// At most one retry is armed per notification id.
type Scheduler struct {
	store    statusUpdater
	strategy retry.Strategy

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

// NewScheduler creates a Scheduler that records retry states in store.
func NewScheduler(store statusUpdater, strategy retry.Strategy) *Scheduler {
	return &Scheduler{
		store:    store,
		strategy: strategy,
		timers:   make(map[string]*time.Timer),
	}
}

// MaxRetries returns the retry bound.
func (s *Scheduler) MaxRetries() int {
	return s.strategy.Attempts
}

// Backoff returns the delay before the retry that follows a failure with the
// given retry count: Delay * Backoff^retryCount.
func (s *Scheduler) Backoff(retryCount int) time.Duration {
	factor := s.strategy.Backoff
	if factor < 1 {
		factor = 1
	}

	return time.Duration(float64(s.strategy.Delay) * math.Pow(factor, float64(retryCount)))
}

// Schedule arms a retry of n.
//
// The delay is computed from the retry count before it is incremented. n is
// updated in place (retry count and "pending (retry N)" status), the new state
// is written to the store, and fn receives a copy of n once the delay elapses.
// It returns ErrRetriesExhausted without side effects when n already used every
// retry.
func (s *Scheduler) Schedule(n *model.Notification, fn func(model.Notification)) (time.Duration, error) {
	if n.RetryCount >= s.strategy.Attempts {
		return 0, ErrRetriesExhausted
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return 0, ErrSchedulerStopped
	}

	if _, ok := s.timers[n.ID]; ok {
		return 0, ErrAlreadyScheduled
	}

	delay := s.Backoff(n.RetryCount)

	n.RetryCount++
	n.Status = model.RetryStatus(n.RetryCount)
	s.store.UpdateStatus(n.UserID, n.ID, n.Status, n.RetryCount)

	next := *n
	s.timers[n.ID] = time.AfterFunc(delay, func() {
		s.fire(next, fn)
	})

	return delay, nil
}

func (s *Scheduler) fire(n model.Notification, fn func(model.Notification)) {
	s.mu.Lock()
	delete(s.timers, n.ID)
	stopped := s.stopped
	s.mu.Unlock()

	if stopped {
		return
	}

	fn(n)
}

// Pending returns the number of armed retries.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.timers)
}

// Stop disarms every pending retry and rejects new ones. It returns how many
// armed retries were cancelled.
func (s *Scheduler) Stop() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true

	cancelled := 0
	for id, t := range s.timers {
		if t.Stop() {
			cancelled++
		}
		delete(s.timers, id)
	}

	return cancelled
}
