// Package channel provides the delivery channels the engine sends notifications through.
//
// A Channel reports a boolean outcome for each attempt. A false outcome is an
// ordinary delivery failure that the engine may retry; a non-nil error means the
// channel itself malfunctioned.
package channel

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/notification-service/internal/model"
)

// ErrUnknownType is returned when no channel is registered for a notification type.
var ErrUnknownType = errors.New("no channel for notification type")

// Channel attempts to deliver a single notification.
//
//go:generate mockgen -source=channel.go -destination=../mocks/channel/mock.go -package=mocks
type Channel interface {
	Attempt(ctx context.Context, n model.Notification) (bool, error)
}

// Func adapts an ordinary function to the Channel interface.
type Func func(ctx context.Context, n model.Notification) (bool, error)

// Attempt calls f(ctx, n).
func (f Func) Attempt(ctx context.Context, n model.Notification) (bool, error) {
	return f(ctx, n)
}

// Router picks the channel registered for the notification type.
type Router struct {
	channels map[model.Type]Channel
}

// NewRouter creates a Router from a type-to-channel mapping.
func NewRouter(channels map[model.Type]Channel) *Router {
	cp := make(map[model.Type]Channel, len(channels))
	for t, ch := range channels {
		cp[t] = ch
	}

	return &Router{channels: cp}
}

// Attempt delivers n through the channel registered for n.Type.
func (r *Router) Attempt(ctx context.Context, n model.Notification) (bool, error) {
	ch, ok := r.channels[n.Type]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownType, n.Type)
	}

	return ch.Attempt(ctx, n)
}
