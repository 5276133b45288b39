// Package notifier delivers the user-visible outcome of every mutation:
// exactly one notification per mutating call, success or failure, sourced
// from the service layer so callers never duplicate it.
package notifier

import (
	"context"
	"time"
)

// Status of a mutation outcome.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Notification describes one mutation outcome.
type Notification struct {
	Resource string    `json:"resource"`
	Action   string    `json:"action"`
	Status   Status    `json:"status"`
	Message  string    `json:"message,omitempty"`
	At       time.Time `json:"at"`
}

// Notifier publishes notifications to the user's channel. Delivery is
// best-effort; a failed publish is logged and counted, never propagated into
// the mutation result.
type Notifier interface {
	Notify(ctx context.Context, userID string, n Notification) error
}

// Success builds a success notification.
func Success(resource, action string) Notification {
	return Notification{Resource: resource, Action: action, Status: StatusSuccess, At: time.Now()}
}

// Failure builds a failure notification carrying the underlying message.
func Failure(resource, action, message string) Notification {
	return Notification{Resource: resource, Action: action, Status: StatusFailure, Message: message, At: time.Now()}
}

// Nop discards all notifications. Used in tests.
type Nop struct{}

func (Nop) Notify(ctx context.Context, userID string, n Notification) error { return nil }
