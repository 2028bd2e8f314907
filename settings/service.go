package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "github.com/readmosaic/a11y-settings-api/errors"
	"github.com/readmosaic/a11y-settings-api/system"
)

// Service defines the API for accessibility settings management.
type Service interface {
	// GetSettings returns the stored settings for a user merged over
	// defaults. A user without a stored record gets exact defaults.
	GetSettings(ctx context.Context, userID uuid.UUID) (*Settings, error)
	// UpdateSettings merges a partial patch over the stored record and
	// persists the result.
	UpdateSettings(ctx context.Context, userID uuid.UUID, patch Patch) (*Settings, error)
	// SaveSettings persists a full record wholesale, replacing whatever
	// is stored. Used by sessions which own the merged record already.
	SaveSettings(ctx context.Context, userID uuid.UUID, s Settings) error
}

type ServiceImpl struct {
	store  Store
	system system.Service
}

// NewService initiates a new settings service.
func NewService(store Store, opts ...ServiceOption) Service {
	svc := &ServiceImpl{store: store}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (svc *ServiceImpl) GetSettings(ctx context.Context, userID uuid.UUID) (*Settings, error) {
	result := Defaults()

	p, err := svc.store.Profile(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &result, nil
		}
		return nil, err
	}

	stored, err := decodePreferences(p.Preferences)
	if err != nil {
		// A malformed preferences object falls back to defaults; the
		// stored record is left untouched.
		log.
			WithFields(log.Fields{"userID": userID, "error": err}).
			Warn("Stored preferences are not a valid object, using defaults")
		return &result, nil
	}

	result = result.Merge(stored)
	return &result, nil
}

func (svc *ServiceImpl) UpdateSettings(ctx context.Context, userID uuid.UUID, patch Patch) (*Settings, error) {
	if err := patch.Validate(); err != nil {
		return nil, &apperrors.RequestError{StatusCode: http.StatusBadRequest, Err: err}
	}

	current, err := svc.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := current.Merge(patch)

	if err := svc.SaveSettings(ctx, userID, merged); err != nil {
		return nil, err
	}

	return &merged, nil
}

func (svc *ServiceImpl) SaveSettings(ctx context.Context, userID uuid.UUID, s Settings) error {
	if err := svc.checkMaintenance(); err != nil {
		return err
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{"userID": userID, "settings": s.String()}).Trace("Save settings")

	return svc.store.SaveProfile(&Profile{UserID: userID, Preferences: datatypes.JSON(raw)})
}

func (svc *ServiceImpl) checkMaintenance() error {
	if svc.system == nil {
		return nil
	}
	maintenance, err := svc.system.IsMaintenanceMode()
	if err != nil {
		return err
	}
	if maintenance {
		return &apperrors.RequestError{
			StatusCode: http.StatusServiceUnavailable,
			Err:        fmt.Errorf("settings are read-only while the system is in maintenance mode"),
		}
	}
	return nil
}

// decodePreferences reads a stored preferences object into a partial
// patch. Partial objects are valid; they merge over defaults on read.
// A missing or null object decodes to an empty patch.
func decodePreferences(raw datatypes.JSON) (Patch, error) {
	patch := Patch{}

	if len(raw) == 0 || string(raw) == "null" {
		return patch, nil
	}

	if err := json.Unmarshal(raw, &patch); err != nil {
		return patch, err
	}

	if err := patch.Validate(); err != nil {
		return Patch{}, err
	}

	return patch, nil
}
