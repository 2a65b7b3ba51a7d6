// Package delivery drives notifications through their delivery lifecycle.
//
// A notification starts pending, is attempted through a channel and then either
// becomes delivered, is scheduled for a retry with exponential backoff, or, once
// its retries are used up, becomes failed. Delivered and failed are terminal.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/notification-service/internal/channel"
	"github.com/aliskhannn/notification-service/internal/model"
	"github.com/aliskhannn/notification-service/internal/worker"
)

// Outcome names the transition taken by a single Process call.
type Outcome string

const (
	OutcomeDelivered      Outcome = "delivered"
	OutcomeRetryScheduled Outcome = "retry_scheduled"
	OutcomeFailed         Outcome = "failed"
	OutcomeHalted         Outcome = "halted"
	OutcomeSkipped        Outcome = "skipped"
)

type retryScheduler interface {
	Schedule(n *model.Notification, fn func(model.Notification)) (time.Duration, error)
}

type submitter interface {
	TrySubmit(n model.Notification) error
}

// Engine runs single delivery attempts and applies the resulting transition.
type Engine struct {
	store     statusUpdater
	channel   channel.Channel
	scheduler retryScheduler
	submitter submitter

	inflight sync.Map
}

// Option configures an Engine.
type Option func(*Engine)

// WithSubmitter routes fired retries through s instead of running them on the
// timer goroutine. A retry that finds the queue full runs on the timer
// goroutine.
func WithSubmitter(s submitter) Option {
	return func(e *Engine) {
		e.submitter = s
	}
}

// NewEngine creates a delivery engine.
func NewEngine(store statusUpdater, ch channel.Channel, scheduler retryScheduler, opts ...Option) *Engine {
	e := &Engine{
		store:     store,
		channel:   ch,
		scheduler: scheduler,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Process makes one delivery attempt for n and records the outcome.
//
// It returns true only when the notification was delivered. A failed attempt
// either arms a retry or, when no retries are left, marks the notification
// failed. A channel malfunction stops the pipeline for n without a retry and
// without touching its status.
func (e *Engine) Process(ctx context.Context, n model.Notification) bool {
	outcome := e.process(ctx, n)
	return outcome == OutcomeDelivered
}

func (e *Engine) process(ctx context.Context, n model.Notification) Outcome {
	if _, busy := e.inflight.LoadOrStore(n.ID, struct{}{}); busy {
		zlog.Logger.Warn().Str("id", n.ID).Msg("notification already in flight, skipping")
		return OutcomeSkipped
	}

	zlog.Logger.Info().Str("id", n.ID).Int("retry", n.RetryCount).Msg("processing notification")

	sent, err := e.attempt(ctx, n)

	// the slot is freed before a retry can be armed so that the retry never
	// races with this call
	e.inflight.Delete(n.ID)

	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", n.ID).Str("outcome", string(OutcomeHalted)).
			Msg("error processing notification")
		return OutcomeHalted
	}

	if sent {
		e.store.UpdateStatus(n.UserID, n.ID, model.StatusDelivered, n.RetryCount)
		zlog.Logger.Info().Str("id", n.ID).Str("outcome", string(OutcomeDelivered)).
			Msg("notification sent successfully")
		return OutcomeDelivered
	}

	delay, err := e.scheduler.Schedule(&n, e.resubmit)
	switch {
	case err == nil:
		zlog.Logger.Info().
			Str("id", n.ID).
			Int("retry", n.RetryCount).
			Dur("delay", delay).
			Str("outcome", string(OutcomeRetryScheduled)).
			Msg("scheduling retry")
		return OutcomeRetryScheduled

	case errors.Is(err, ErrRetriesExhausted):
		e.store.UpdateStatus(n.UserID, n.ID, model.StatusFailed, n.RetryCount)
		zlog.Logger.Warn().Str("id", n.ID).Int("retry", n.RetryCount).Str("outcome", string(OutcomeFailed)).
			Msg("notification failed after all retries")
		return OutcomeFailed

	default:
		zlog.Logger.Error().Err(err).Str("id", n.ID).Str("outcome", string(OutcomeHalted)).
			Msg("failed to schedule retry")
		return OutcomeHalted
	}
}

func (e *Engine) attempt(ctx context.Context, n model.Notification) (sent bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			sent, err = false, fmt.Errorf("channel panic: %v", r)
		}
	}()

	return e.channel.Attempt(ctx, n)
}

func (e *Engine) resubmit(n model.Notification) {
	if e.submitter == nil {
		e.Process(context.Background(), n)
		return
	}

	err := e.submitter.TrySubmit(n)
	switch {
	case err == nil:
	case errors.Is(err, worker.ErrQueueFull):
		zlog.Logger.Warn().Str("id", n.ID).Int("retry", n.RetryCount).Msg("dispatch queue full, retrying inline")
		e.Process(context.Background(), n)
	default:
		zlog.Logger.Error().Err(err).Str("id", n.ID).Int("retry", n.RetryCount).Msg("failed to submit retry")
	}
}
