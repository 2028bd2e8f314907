package settings

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/readmosaic/a11y-settings-api/datastore"
)

// Profile is the per-user record holding arbitrary preference data.
// Preferences is a free-form JSON object; accessibility settings are
// stored inside it so the schema stays stable when fields are added.
type Profile struct {
	UserID      uuid.UUID      `gorm:"column:user_id;primaryKey;type:uuid"`
	Preferences datatypes.JSON `gorm:"column:preferences"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Profile) TableName() string {
	return "profiles"
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &GormStore{db}
}

func (s *GormStore) Profile(userID uuid.UUID) (*Profile, error) {
	var p Profile
	if err := s.db.First(&p, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) SaveProfile(p *Profile) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"preferences", "updated_at"}),
	}).Create(p).Error
}

func (s *GormStore) Profiles(o datastore.ListOptions) ([]Profile, error) {
	pp := []Profile{}
	err := s.db.
		Order("created_at desc").
		Limit(o.Limit).
		Offset(o.Offset).
		Find(&pp).Error
	return pp, err
}
