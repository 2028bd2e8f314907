// Package users provides the authenticated-user lookup the settings
// surface depends on. Authentication is deliberately thin: a user is
// resolved from an opaque API token, and "no user" is a valid outcome,
// not an error.
package users

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User database model
type User struct {
	ID        uuid.UUID      `gorm:"column:id;primaryKey;type:uuid" json:"userId"`
	Username  string         `gorm:"column:username;uniqueIndex;not null" json:"username"`
	APIToken  string         `gorm:"column:api_token;uniqueIndex;not null" json:"apiToken,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
