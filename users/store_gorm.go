package users

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/readmosaic/a11y-settings-api/datastore"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &GormStore{db}
}

func (s *GormStore) Users(o datastore.ListOptions) ([]User, error) {
	uu := []User{}
	err := s.db.
		Order("created_at desc").
		Limit(o.Limit).
		Offset(o.Offset).
		Find(&uu).Error
	return uu, err
}

func (s *GormStore) User(id uuid.UUID) (*User, error) {
	var u User
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormStore) UserByToken(token string) (*User, error) {
	var u User
	if err := s.db.First(&u, "api_token = ?", token).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormStore) InsertUser(u *User) error {
	return s.db.Create(u).Error
}
