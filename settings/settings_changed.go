package settings

import (
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// SettingsChangedPayload carries the full record after any change,
// including the initial default application of a new session.
type SettingsChangedPayload struct {
	UserID   uuid.UUID // uuid.Nil for anonymous sessions
	Settings Settings
}

type settingsChangedHandler interface {
	Handle(SettingsChangedPayload)
}

type settingsChanged struct {
	handlers []settingsChangedHandler
}

var SettingsChanged settingsChanged // singleton of type settingsChanged

// Register adds an event handler for this event
func (e *settingsChanged) Register(handler settingsChangedHandler) {
	log.Debug("Registering SettingsChanged event handler")
	e.handlers = append(e.handlers, handler)
}

// Trigger sends out an event with the payload
func (e *settingsChanged) Trigger(payload SettingsChangedPayload) {
	log.
		WithFields(log.Fields{"settings": payload.Settings.String()}).
		Trace("Handling SettingsChanged event")

	for _, handler := range e.handlers {
		go handler.Handle(payload)
	}
}
