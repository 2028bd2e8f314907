package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// State is a type for Delivery state.
type State string

const (
	Init      State = "INIT"
	Complete  State = "COMPLETE"
	Failed    State = "FAILED"
	QueueFull State = "QUEUE_FULL"
)

// Delivery database model, one row per dispatched notification.
type Delivery struct {
	ID        uuid.UUID      `gorm:"column:id;primaryKey;type:uuid;" json:"deliveryId"`
	State     State          `gorm:"column:state;default:INIT" json:"state"`
	Error     string         `gorm:"column:error" json:"error"`
	Errors    pq.StringArray `gorm:"column:errors;type:text[]" json:"errors"`
	ExecCount int            `gorm:"column:exec_count;default:0" json:"execCount"`
	Payload   datatypes.JSON `gorm:"column:payload" json:"payload"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Delivery) TableName() string {
	return "notification_deliveries"
}

func newDelivery(n Notification) (*Delivery, error) {
	payload, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}

	return &Delivery{
		ID:      uuid.New(),
		State:   Init,
		Payload: datatypes.JSON(payload),
	}, nil
}

func (d *Delivery) Notification() (Notification, error) {
	n := Notification{}
	err := json.Unmarshal(d.Payload, &n)
	return n, err
}
