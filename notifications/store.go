package notifications

import (
	"github.com/google/uuid"

	"github.com/readmosaic/a11y-settings-api/datastore"
)

// Store manages data regarding notification deliveries.
type Store interface {
	Deliveries(datastore.ListOptions) ([]Delivery, error)
	Delivery(id uuid.UUID) (*Delivery, error)
	InsertDelivery(*Delivery) error
	UpdateDelivery(*Delivery) error
}
