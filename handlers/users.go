package handlers

import (
	"net/http"

	"github.com/readmosaic/a11y-settings-api/users"
)

// Users is a HTTP server for user management.
type Users struct {
	service users.Service
}

func NewUsers(service users.Service) *Users {
	return &Users{service}
}

func (s *Users) Create() http.Handler {
	h := http.HandlerFunc(s.CreateFunc)
	return UseJson(h)
}

func (s *Users) List() http.Handler {
	return http.HandlerFunc(s.ListFunc)
}

func (s *Users) Details() http.Handler {
	return http.HandlerFunc(s.DetailsFunc)
}
