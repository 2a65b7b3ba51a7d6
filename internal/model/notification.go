package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidType is returned when a notification type is not email, sms or in-app.
var ErrInvalidType = errors.New("invalid notification type")

// Type is the delivery channel kind requested for a notification.
type Type string

const (
	TypeEmail Type = "email"
	TypeSMS   Type = "sms"
	TypeInApp Type = "in-app"
)

// Types lists every supported notification type.
var Types = []Type{TypeEmail, TypeSMS, TypeInApp}

// ParseType lower-cases s and checks it against the supported types.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(s))
	for _, known := range Types {
		if t == known {
			return t, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
}

// Status is the delivery state of a notification.
type Status string

const (
	StatusPending   Status = "pending"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
)

const retryStatusFormat = "pending (retry %d)"

// RetryStatus returns the status of a notification waiting for its n-th retry.
func RetryStatus(n int) Status {
	return Status(fmt.Sprintf(retryStatusFormat, n))
}

// Retry reports the retry number encoded in a "pending (retry N)" status.
func (s Status) Retry() (int, bool) {
	var n int
	if _, err := fmt.Sscanf(string(s), retryStatusFormat, &n); err != nil {
		return 0, false
	}

	return n, true
}

// Terminal reports whether no further transition is allowed out of s.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusFailed
}

// Notification represents a notification entity in the system.
type Notification struct {
	ID         string    `json:"id"`         // unique identifier, assigned at admission
	UserID     string    `json:"userId"`     // owning user
	Type       Type      `json:"type"`       // delivery kind: "email", "sms" or "in-app"
	Content    string    `json:"content"`    // opaque payload
	Timestamp  time.Time `json:"timestamp"`  // creation time, UTC
	Status     Status    `json:"status"`     // "pending", "pending (retry N)", "delivered" or "failed"
	RetryCount int       `json:"retryCount"` // number of failed attempts that were followed by a retry
}
