// Package notifications delivers user facing notifications (settings
// saved, save failed) to the configured surfaces and keeps an auditable
// delivery log.
package notifications

import (
	"context"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a user facing message.
type Notification struct {
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Notifier is a single notification surface.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
