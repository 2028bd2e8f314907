package notifications

import (
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

type DispatcherOption func(*Dispatcher)

// WithNotifier adds a notification surface.
func WithNotifier(n Notifier) DispatcherOption {
	return func(d *Dispatcher) {
		d.notifiers = append(d.notifiers, n)
	}
}

// WithWebhook adds a webhook surface when url is non-empty.
func WithWebhook(url string, timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if url == "" {
			return
		}
		w, err := NewWebhookNotifier(url, timeout)
		if err != nil {
			log.Fatal(err)
		}
		d.notifiers = append(d.notifiers, w)
	}
}

// WithMaxSendRate caps deliveries per second across all workers.
func WithMaxSendRate(rate int) DispatcherOption {
	return func(d *Dispatcher) {
		if rate <= 0 {
			return
		}
		d.ratelimiter = ratelimit.New(rate, ratelimit.WithoutSlack)
	}
}
