package handlers

import (
	"net/http"

	"github.com/readmosaic/a11y-settings-api/settings"
)

// Themes is a HTTP server for derived theme descriptors.
type Themes struct {
	service settings.Service
}

func NewThemes(service settings.Service) *Themes {
	return &Themes{service}
}

func (s *Themes) Get() http.Handler {
	return http.HandlerFunc(s.GetFunc)
}
