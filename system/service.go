package system

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Service defines the API for service wide settings.
type Service interface {
	GetSettings() (*Settings, error)
	SaveSettings(settings *Settings) error
	IsMaintenanceMode() (bool, error)
}

type ServiceImpl struct {
	store Store
}

func NewService(store Store) Service {
	return &ServiceImpl{store}
}

func (svc *ServiceImpl) GetSettings() (*Settings, error) {
	return svc.store.GetSettings()
}

func (svc *ServiceImpl) SaveSettings(settings *Settings) error {
	if settings.ID == 0 {
		return fmt.Errorf("settings object has no ID, get an existing settings first and alter it")
	}
	log.WithFields(log.Fields{"settings": settings}).Trace("Save system settings")
	return svc.store.SaveSettings(settings)
}

func (svc *ServiceImpl) IsMaintenanceMode() (bool, error) {
	settings, err := svc.GetSettings()
	if err != nil {
		return false, err
	}
	return settings.IsMaintenanceMode(), nil
}
