package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

func (s *Users) CreateFunc(rw http.ResponseWriter, r *http.Request) {
	if err := checkNonEmptyBody(r); err != nil {
		handleError(rw, r, err)
		return
	}

	var body struct {
		Username string `json:"username"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handleError(rw, r, InvalidBodyError)
		return
	}

	u, err := s.service.Create(r.Context(), body.Username)
	if err != nil {
		handleError(rw, r, err)
		return
	}

	handleJsonResponse(rw, http.StatusCreated, u)
}

func (s *Users) ListFunc(rw http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.FormValue("limit"))
	offset, _ := strconv.Atoi(r.FormValue("offset"))

	uu, err := s.service.List(limit, offset)
	if err != nil {
		handleError(rw, r, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, uu)
}

func (s *Users) DetailsFunc(rw http.ResponseWriter, r *http.Request) {
	userID, err := parseUserID(r)
	if err != nil {
		handleError(rw, r, err)
		return
	}

	u, err := s.service.Details(r.Context(), userID)
	if err != nil {
		handleError(rw, r, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, u)
}
