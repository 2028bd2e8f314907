package handlers

import (
	"net/http"

	"github.com/readmosaic/a11y-settings-api/notifications"
	"github.com/readmosaic/a11y-settings-api/settings"
)

// Settings is a HTTP server for accessibility settings management.
type Settings struct {
	service  settings.Service
	notifier notifications.Notifier
}

func NewSettings(service settings.Service, notifier notifications.Notifier) *Settings {
	return &Settings{service, notifier}
}

func (s *Settings) Get() http.Handler {
	return http.HandlerFunc(s.GetFunc)
}

func (s *Settings) Update() http.Handler {
	h := http.HandlerFunc(s.UpdateFunc)
	return UseJson(h)
}
