package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/readmosaic/a11y-settings-api/configs"
	"github.com/readmosaic/a11y-settings-api/datastore/gorm"
	"github.com/readmosaic/a11y-settings-api/handlers"
	"github.com/readmosaic/a11y-settings-api/notifications"
	"github.com/readmosaic/a11y-settings-api/otel"
	"github.com/readmosaic/a11y-settings-api/settings"
	"github.com/readmosaic/a11y-settings-api/system"
	"github.com/readmosaic/a11y-settings-api/themes"
	"github.com/readmosaic/a11y-settings-api/users"
)

const version = "0.3.0"

var (
	sha1ver   string // sha1 revision used to build the program
	buildTime string // when the executable was built
)

func main() {
	var printVersion bool

	// If we should just print the version number and exit
	flag.BoolVar(&printVersion, "version", false, "if true, print version and exit")
	flag.Parse()

	if printVersion {
		fmt.Printf("v%s build on %s from sha1 %s\n", version, buildTime, sha1ver)
		os.Exit(0)
	}

	cfg, err := configs.Parse()
	if err != nil {
		panic(err)
	}

	runServer(cfg)

	os.Exit(0)
}

func runServer(cfg *configs.Config) {
	configs.ConfigureLogger(cfg.LogLevel)

	log.Info("Starting server")

	// Database
	db, err := gorm.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer gorm.Close(db)

	systemService := system.NewService(system.NewGormStore(db))

	// Notification dispatcher
	dispatcher := notifications.NewDispatcher(
		notifications.NewGormStore(db),
		cfg.NotificationQueueCapacity,
		cfg.NotificationWorkerCount,
		notifications.WithWebhook(cfg.NotificationWebhookUrl, cfg.NotificationWebhookTimeout),
		notifications.WithMaxSendRate(cfg.NotificationMaxSendRate),
	)

	defer func() {
		dispatcher.Stop()
		log.Info("Stopped notification dispatcher")
	}()

	// Services
	userService := users.NewService(users.NewGormStore(db))
	settingsService := settings.NewService(
		settings.NewGormStore(db),
		settings.WithSystemService(systemService),
	)

	dispatcher.Start()
	log.Info("Started notification dispatcher")

	// Register event handlers
	settings.SettingsChanged.Register(themes.NewApplier(themes.NewLogSurface()))

	// HTTP handling
	systemHandler := handlers.NewSystem(systemService)
	userHandler := handlers.NewUsers(userService)
	settingsHandler := handlers.NewSettings(settingsService, dispatcher)
	themeHandler := handlers.NewThemes(settingsService)

	r := mux.NewRouter()

	if cfg.EnableTracing {
		tp := otel.InitTracer(cfg.TraceProjectID)
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Warn(err)
			}
		}()
		r.Use(otelmux.Middleware("a11y-settings-api"))
	}

	// Catch the api version
	rv := r.PathPrefix("/{apiVersion}").Subrouter()

	// Debug
	rv.Handle("/debug", handlers.Debug("https://github.com/readmosaic/a11y-settings-api", sha1ver, buildTime)).Methods(http.MethodGet)

	// Health
	rv.HandleFunc("/health/ready", handlers.HandleHealthReady).Methods(http.MethodGet)
	rv.Handle("/health/liveness", handlers.Liveness(func() (interface{}, error) {
		return dispatcher.Status()
	})).Methods(http.MethodGet)

	// System
	rv.Handle("/system/settings", systemHandler.GetSettings()).Methods(http.MethodGet)
	rv.Handle("/system/settings", systemHandler.SetSettings()).Methods(http.MethodPost)

	// Users
	rv.Handle("/users", userHandler.List()).Methods(http.MethodGet)              // list
	rv.Handle("/users", userHandler.Create()).Methods(http.MethodPost)           // create
	rv.Handle("/users/{userID}", userHandler.Details()).Methods(http.MethodGet)  // details

	// Accessibility settings
	rv.Handle("/users/{userID}/settings", settingsHandler.Get()).Methods(http.MethodGet)
	rv.Handle("/users/{userID}/settings", settingsHandler.Update()).Methods(http.MethodPost)

	// Derived theme descriptor
	rv.Handle("/users/{userID}/theme", themeHandler.Get()).Methods(http.MethodGet)

	// Demo page
	rv.Handle("/demo", handlers.Demo()).Methods(http.MethodGet)

	h := http.TimeoutHandler(r, cfg.ServerRequestTimeout, "request timed out")
	h = handlers.UseAuthentication(h, userService)
	h = handlers.UseCors(h)
	h = handlers.UseLogging(h)
	h = handlers.UseCompress(h)

	// Setup idempotency key middleware if it's enabled
	// redis for idempotency key handling
	if !cfg.DisableIdempotencyMiddleware {
		var is handlers.IdempotencyStore
		switch cfg.IdempotencyMiddlewareDatabaseType {
		// Shared SQL/Gorm store (same as for main app)
		case handlers.IdempotencyStoreTypeShared.String():
			is = handlers.NewIdempotencyStoreGorm(db)
		// Redis, separate from app db
		case handlers.IdempotencyStoreTypeRedis.String():
			if cfg.IdempotencyMiddlewareRedisURL == "" {
				log.Fatal("idempotency middleware db set to redis but Redis URL is empty")
			}
			pool := &redis.Pool{
				MaxIdle:   80,
				MaxActive: 12000,
				Dial: func() (redis.Conn, error) {
					c, err := redis.DialURL(cfg.IdempotencyMiddlewareRedisURL)
					if err != nil {
						panic(err.Error())
					}
					return c, err
				},
			}

			client := pool.Get()

			defer func() {
				log.Info("Closing Redis client..")
				if err := client.Close(); err != nil {
					log.Warn(err)
				}
			}()

			is = handlers.NewIdempotencyStoreRedis(client)
		case handlers.IdempotencyStoreTypeLocal.String():
			is = handlers.NewIdempotencyStoreLocal()
		}

		h = handlers.UseIdempotency(h, handlers.IdempotencyHandlerOptions{
			Expiry: 1 * time.Hour,
			// The admin surface is not retried by clients. It is mounted
			// under /{apiVersion} like everything else, so match the
			// segment rather than a fixed version prefix.
			Ignore: func(r *http.Request) bool {
				parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 3)
				return len(parts) >= 2 && parts[1] == "system"
			},
		}, is)
	}

	// Server boilerplate
	srv := &http.Server{
		Handler:      h,
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		WriteTimeout: 0, // Disabled, set cfg.ServerRequestTimeout instead
		ReadTimeout:  0, // Disabled, set cfg.ServerRequestTimeout instead
	}

	// Run our server in a goroutine so that it doesn't block.
	go func() {
		log.
			WithFields(log.Fields{
				"host": cfg.Host,
				"port": cfg.Port,
			}).
			Info("Server listening")
		if err := srv.ListenAndServe(); err != nil {
			log.Warn(err)
		}
	}()

	// Trap interupt or sigterm and gracefully shutdown the server
	c := make(chan os.Signal, 1)
	// We'll accept graceful shutdowns when quit via SIGINT (Ctrl+C)
	// SIGKILL, SIGQUIT or SIGTERM (Ctrl+/) will not be caught.
	signal.Notify(c, os.Interrupt)

	// Block until we receive our signal.
	sig := <-c

	log.Infof("Got signal: %s. Shutting down..", sig)

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warnf("Error in server shutdown: %s", err)
	}
}
