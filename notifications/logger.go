package notifications

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// LogNotifier writes notifications to the application log. It is the
// fallback surface when no webhook is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (l *LogNotifier) Notify(ctx context.Context, n Notification) error {
	entry := log.WithFields(log.Fields{
		"title":    n.Title,
		"severity": n.Severity,
	})

	if n.Severity == SeverityError {
		entry.Warn(n.Message)
	} else {
		entry.Info(n.Message)
	}

	return nil
}

// Recorder stores notifications in memory, mainly for testing purposes.
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(ctx context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	nn := make([]Notification, len(r.notifications))
	copy(nn, r.notifications)
	return nn
}
