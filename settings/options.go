package settings

import (
	"github.com/readmosaic/a11y-settings-api/system"
)

type ServiceOption func(*ServiceImpl)

// WithSystemService makes settings writes honor system maintenance mode.
func WithSystemService(svc system.Service) ServiceOption {
	return func(s *ServiceImpl) {
		s.system = svc
	}
}
