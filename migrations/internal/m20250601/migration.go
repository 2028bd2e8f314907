// m20250601 creates the initial schema: users, profiles, system
// settings and idempotency keys.
package m20250601

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const ID = "20250601"

// User database model
type User struct {
	ID        uuid.UUID      `gorm:"column:id;primaryKey;type:uuid"`
	Username  string         `gorm:"column:username;uniqueIndex;not null"`
	APIToken  string         `gorm:"column:api_token;uniqueIndex;not null"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}

// Profile database model
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

// Settings database model
type Settings struct {
	gorm.Model
	MaintenanceMode bool `gorm:"column:maintenance_mode;default:false"`
}

func (Settings) TableName() string {
	return "system_settings"
}

// IdempotencyStoreGormItem database model
type IdempotencyStoreGormItem struct {
	Key        string    `gorm:"column:key;primaryKey"`
	ExpiryDate time.Time `gorm:"column:expiry_date"`
}

func (IdempotencyStoreGormItem) TableName() string {
	return "idempotency_keys"
}

func Migrate(tx *gorm.DB) error {
	return tx.AutoMigrate(&User{}, &Profile{}, &Settings{}, &IdempotencyStoreGormItem{})
}

func Rollback(tx *gorm.DB) error {
	return tx.Migrator().DropTable(&IdempotencyStoreGormItem{}, &Settings{}, &Profile{}, &User{})
}
