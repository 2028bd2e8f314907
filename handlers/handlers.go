// Package handlers provides HTTP handlers for different services
// across the application.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	apperrors "github.com/readmosaic/a11y-settings-api/errors"
)

var (
	EmptyBodyError = &apperrors.RequestError{
		StatusCode: http.StatusBadRequest,
		Err:        fmt.Errorf("empty body"),
	}
	InvalidBodyError = &apperrors.RequestError{
		StatusCode: http.StatusBadRequest,
		Err:        fmt.Errorf("invalid body"),
	}
	UnauthorizedError = &apperrors.RequestError{
		StatusCode: http.StatusUnauthorized,
		Err:        fmt.Errorf("missing or invalid authentication"),
	}
)

// handleError is a helper function for unified HTTP error handling.
func handleError(rw http.ResponseWriter, r *http.Request, err error) {
	log.WithFields(log.Fields{"error": err}).Warn("Error while handling request")

	var reqErr *apperrors.RequestError
	if errors.As(err, &reqErr) {
		http.Error(rw, reqErr.Error(), reqErr.StatusCode)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(rw, "record not found", http.StatusNotFound)
		return
	}

	// Do not send data regarding unknown errors
	http.Error(rw, "Error", http.StatusInternalServerError)
}

// handleJsonResponse is a helper function for unified JSON response handling.
func handleJsonResponse(rw http.ResponseWriter, status int, res interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	if err := json.NewEncoder(rw).Encode(res); err != nil {
		log.WithFields(log.Fields{"error": err}).Warn("Error while encoding response")
	}
}

func checkNonEmptyBody(r *http.Request) error {
	if r.Body == nil || r.ContentLength == 0 {
		return EmptyBodyError
	}
	return nil
}
