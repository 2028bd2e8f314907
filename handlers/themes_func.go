package handlers

import (
	"net/http"

	"github.com/readmosaic/a11y-settings-api/themes"
)

type themeResponse struct {
	themes.Descriptor
	Markers []themes.Marker `json:"markers"`
}

func (s *Themes) GetFunc(rw http.ResponseWriter, r *http.Request) {
	userID, err := parseUserID(r)
	if err != nil {
		handleError(rw, r, err)
		return
	}

	current, err := s.service.GetSettings(r.Context(), userID)
	if err != nil {
		handleError(rw, r, err)
		return
	}

	d := themes.FromSettings(*current)

	handleJsonResponse(rw, http.StatusOK, themeResponse{d, d.Markers()})
}
