package test

import (
	"testing"

	"go.uber.org/goleak"
	upstreamgorm "gorm.io/gorm"

	"github.com/readmosaic/a11y-settings-api/configs"
	"github.com/readmosaic/a11y-settings-api/datastore/gorm"
	"github.com/readmosaic/a11y-settings-api/notifications"
	"github.com/readmosaic/a11y-settings-api/settings"
	"github.com/readmosaic/a11y-settings-api/system"
	"github.com/readmosaic/a11y-settings-api/users"
)

type Services interface {
	GetSettings() settings.Service
	GetUsers() users.Service
	GetSystem() system.Service
	GetDispatcher() *notifications.Dispatcher
	GetRecorder() *notifications.Recorder
}

type svcs struct {
	settingsService settings.Service
	userService     users.Service
	systemService   system.Service

	dispatcher *notifications.Dispatcher
	recorder   *notifications.Recorder
}

func GetDatabase(t *testing.T, cfg *configs.Config) *upstreamgorm.DB {
	db, err := gorm.New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { gorm.Close(db) })

	return db
}

func GetServices(t *testing.T, cfg *configs.Config) Services {
	t.Cleanup(func() {
		goleak.VerifyNone(t,
			goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"),
			goleak.IgnoreTopFunction("github.com/readmosaic/a11y-settings-api/notifications.(*Dispatcher).startWorkers.func1"),
		)
	})

	db := GetDatabase(t, cfg)

	systemService := system.NewService(system.NewGormStore(db))

	recorder := notifications.NewRecorder()

	dispatcher := notifications.NewDispatcher(
		notifications.NewGormStore(db),
		cfg.NotificationQueueCapacity,
		cfg.NotificationWorkerCount,
		notifications.WithNotifier(recorder),
	)

	userService := users.NewService(users.NewGormStore(db))
	settingsService := settings.NewService(
		settings.NewGormStore(db),
		settings.WithSystemService(systemService),
	)

	t.Cleanup(func() {
		dispatcher.Stop()
	})

	dispatcher.Start()

	return &svcs{
		settingsService: settingsService,
		userService:     userService,
		systemService:   systemService,

		dispatcher: dispatcher,
		recorder:   recorder,
	}
}

func (s *svcs) GetSettings() settings.Service {
	return s.settingsService
}

func (s *svcs) GetUsers() users.Service {
	return s.userService
}

func (s *svcs) GetSystem() system.Service {
	return s.systemService
}

func (s *svcs) GetDispatcher() *notifications.Dispatcher {
	return s.dispatcher
}

func (s *svcs) GetRecorder() *notifications.Recorder {
	return s.recorder
}
