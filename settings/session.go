package settings

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	apperrors "github.com/readmosaic/a11y-settings-api/errors"
	"github.com/readmosaic/a11y-settings-api/notifications"
	"github.com/readmosaic/a11y-settings-api/users"
)

// Session holds one consumer's in-memory settings record for the
// lifetime of a panel. It starts at defaults, optionally replaces them
// once from the stored record, and merges patches on every update.
// Updates are optimistic: the local record changes first and stays
// changed even when persistence fails.
//
// Session methods are safe for concurrent use, but overlapping Update
// calls are intentionally not serialized end to end: the persistence
// step runs outside the record lock, so two rapid updates race and the
// later store response wins.
type Session struct {
	mu      sync.RWMutex
	service Service
	user    *users.User
	current Settings
	saving  bool

	notifier notifications.Notifier
}

// NewSession initiates a session at defaults and announces the initial
// record so style markers get derived before any load completes.
func NewSession(service Service, user *users.User, opts ...SessionOption) *Session {
	s := &Session{
		service: service,
		user:    user,
		current: Defaults(),
	}

	for _, opt := range opts {
		opt(s)
	}

	SettingsChanged.Trigger(SettingsChangedPayload{UserID: s.userID(), Settings: s.current})

	return s
}

type SessionOption func(*Session)

// WithNotifier makes the session surface save results to the user.
func WithNotifier(n notifications.Notifier) SessionOption {
	return func(s *Session) {
		s.notifier = n
	}
}

// Current returns a copy of the in-memory record.
func (s *Session) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Saving reports whether an Update persistence attempt is in flight.
// It is never set during Load.
func (s *Session) Saving() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saving
}

// Load replaces the in-memory record with the stored one. Without an
// authenticated user it is a no-op and no store call is made. Failures
// are logged only; the record stays at its current value. No retry.
func (s *Session) Load(ctx context.Context) {
	if s.user == nil {
		return
	}

	loaded, err := s.service.GetSettings(ctx, s.user.ID)
	if err != nil {
		log.
			WithFields(log.Fields{"userID": s.user.ID, "error": err}).
			Warn("Could not load stored accessibility settings")
		return
	}

	s.mu.Lock()
	s.current = *loaded
	s.mu.Unlock()

	SettingsChanged.Trigger(SettingsChangedPayload{UserID: s.user.ID, Settings: *loaded})
}

// Update merges a patch into the record, persists the merged record and
// notifies the user about the outcome. The merged record is returned in
// all cases and the local record is never rolled back. There is no
// dirty check: an update that changes nothing still persists and
// notifies.
//
// The returned error is non-nil only when the write was rejected
// outright by policy (a RequestError, for example maintenance mode).
// Infrastructure failures stay silent to the caller and surface as an
// error notification instead.
func (s *Session) Update(ctx context.Context, patch Patch) (Settings, error) {
	s.mu.Lock()
	s.current = s.current.Merge(patch)
	merged := s.current
	s.mu.Unlock()

	SettingsChanged.Trigger(SettingsChangedPayload{UserID: s.userID(), Settings: merged})

	if s.user == nil {
		log.Debug("No authenticated user, skipping settings persistence")
		return merged, nil
	}

	s.setSaving(true)
	defer s.setSaving(false)

	if err := s.service.SaveSettings(ctx, s.user.ID, merged); err != nil {
		var reqErr *apperrors.RequestError
		if errors.As(err, &reqErr) {
			// A synchronous rejection; the caller hears about it
			// directly, so no notification is dispatched.
			return merged, err
		}

		log.
			WithFields(log.Fields{"userID": s.user.ID, "error": err}).
			Warn("Could not persist accessibility settings")
		s.notify(ctx, notifications.Notification{
			Title:    "Accessibility settings",
			Message:  "Your accessibility settings could not be saved",
			Severity: notifications.SeverityError,
		})
		return merged, nil
	}

	s.notify(ctx, notifications.Notification{
		Title:    "Accessibility settings",
		Message:  "Your accessibility settings were saved",
		Severity: notifications.SeveritySuccess,
	})

	return merged, nil
}

func (s *Session) userID() uuid.UUID {
	if s.user == nil {
		return uuid.Nil
	}
	return s.user.ID
}

func (s *Session) setSaving(v bool) {
	s.mu.Lock()
	s.saving = v
	s.mu.Unlock()
}

func (s *Session) notify(ctx context.Context, n notifications.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		log.WithFields(log.Fields{"error": err}).Warn("Could not dispatch notification")
	}
}
