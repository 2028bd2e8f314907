package notifications

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

func (s *GormStore) Deliveries(o datastore.ListOptions) ([]Delivery, error) {
	dd := []Delivery{}
	err := s.db.
		Order("created_at desc").
		Limit(o.Limit).
		Offset(o.Offset).
		Find(&dd).Error
	return dd, err
}

func (s *GormStore) Delivery(id uuid.UUID) (*Delivery, error) {
	var d Delivery
	if err := s.db.First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *GormStore) InsertDelivery(d *Delivery) error {
	return s.db.Create(d).Error
}

func (s *GormStore) UpdateDelivery(d *Delivery) error {
	return s.db.Save(d).Error
}
