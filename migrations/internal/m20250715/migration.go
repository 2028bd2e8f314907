// m20250715 adds the notification delivery log.
package m20250715

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const ID = "20250715"

// State is a type for Delivery state.
type State string

// Delivery database model
type Delivery struct {
	ID        uuid.UUID      `gorm:"column:id;primaryKey;type:uuid"`
	State     State          `gorm:"column:state;default:INIT"`
	Error     string         `gorm:"column:error"`
	Errors    pq.StringArray `gorm:"column:errors;type:text[]"`
	ExecCount int            `gorm:"column:exec_count;default:0"`
	Payload   datatypes.JSON `gorm:"column:payload"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Delivery) TableName() string {
	return "notification_deliveries"
}

func Migrate(tx *gorm.DB) error {
	return tx.AutoMigrate(&Delivery{})
}

func Rollback(tx *gorm.DB) error {
	return tx.Migrator().DropTable(&Delivery{})
}
