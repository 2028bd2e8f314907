package users

import (
	"github.com/google/uuid"

	"github.com/readmosaic/a11y-settings-api/datastore"
)

// Store manages data regarding users.
type Store interface {
	Users(datastore.ListOptions) ([]User, error)
	User(id uuid.UUID) (*User, error)
	UserByToken(token string) (*User, error)
	InsertUser(*User) error
}
