package settings

import (
	"github.com/google/uuid"

	"github.com/readmosaic/a11y-settings-api/datastore"
)

// Store manages per-user profile records.
type Store interface {
	// Profile returns the profile record for a user.
	// Returns gorm.ErrRecordNotFound if the user has no stored profile.
	Profile(userID uuid.UUID) (*Profile, error)
	// SaveProfile inserts or updates a profile record.
	SaveProfile(p *Profile) error
	// Profiles lists stored profiles.
	Profiles(datastore.ListOptions) ([]Profile, error)
}
