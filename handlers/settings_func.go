package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	apperrors "github.com/readmosaic/a11y-settings-api/errors"
	"github.com/readmosaic/a11y-settings-api/settings"
)

func (s *Settings) GetFunc(rw http.ResponseWriter, r *http.Request) {
	userID, err := parseUserID(r)
	if err != nil {
		handleError(rw, r, err)
		return
	}

	res, err := s.service.GetSettings(r.Context(), userID)
	if err != nil {
		handleError(rw, r, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, res)
}

// UpdateFunc merges a partial patch into the caller's settings through
// a short-lived session. An infrastructure persist failure surfaces as
// a notification and the response still carries the merged record with
// 200; only a policy rejection (maintenance mode) maps to an error
// status.
func (s *Settings) UpdateFunc(rw http.ResponseWriter, r *http.Request) {
	userID, err := parseUserID(r)
	if err != nil {
		handleError(rw, r, err)
		return
	}

	user := UserFromContext(r.Context())
	if user == nil {
		handleError(rw, r, UnauthorizedError)
		return
	}

	if user.ID != userID {
		handleError(rw, r, &apperrors.RequestError{
			StatusCode: http.StatusForbidden,
			Err:        fmt.Errorf("token does not match user"),
		})
		return
	}

	if err := checkNonEmptyBody(r); err != nil {
		handleError(rw, r, err)
		return
	}

	var patch settings.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		handleError(rw, r, InvalidBodyError)
		return
	}

	if err := patch.Validate(); err != nil {
		handleError(rw, r, &apperrors.RequestError{StatusCode: http.StatusBadRequest, Err: err})
		return
	}

	session := settings.NewSession(s.service, user, settings.WithNotifier(s.notifier))
	session.Load(r.Context())

	res, err := session.Update(r.Context(), patch)
	if err != nil {
		// A policy rejection, e.g. maintenance mode
		handleError(rw, r, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, res)
}

func parseUserID(r *http.Request) (uuid.UUID, error) {
	vars := mux.Vars(r)

	userID, err := uuid.Parse(vars["userID"])
	if err != nil {
		return uuid.Nil, &apperrors.RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        fmt.Errorf(`not a valid user id: "%s"`, vars["userID"]),
		}
	}

	return userID, nil
}
