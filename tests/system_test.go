package tests

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/mux"

	"github.com/readmosaic/a11y-settings-api/handlers"
	"github.com/readmosaic/a11y-settings-api/notifications"
	"github.com/readmosaic/a11y-settings-api/settings"
	"github.com/readmosaic/a11y-settings-api/tests/test"
	"github.com/readmosaic/a11y-settings-api/users"
)

func TestSystemSettingsE2E(t *testing.T) {
	cfg := test.LoadConfig(t)
	svcs := test.GetServices(t, cfg)

	sysHandler := handlers.NewSystem(svcs.GetSystem())

	router := mux.NewRouter()
	router.Handle("/settings", sysHandler.GetSettings()).Methods(http.MethodGet)
	router.Handle("/settings", sysHandler.SetSettings()).Methods(http.MethodPost)

	var steps = []struct {
		body           io.Reader
		path           string
		method         string
		expectedStatus int
		expectedBody   string
	}{
		{
			body:           nil,
			path:           "/settings",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"maintenanceMode":false}`,
		},
		{
			body:           bytes.NewBufferString("{\"maintenanceMode\": true}"),
			path:           "/settings",
			method:         http.MethodPost,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"maintenanceMode":true}`,
		},
		{
			body:           nil,
			path:           "/settings",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"maintenanceMode":true}`,
		},
	}

	for _, tt := range steps {
		res := send(router, tt.method, tt.path, tt.body)
		assertStatusCode(t, res, tt.expectedStatus)
		if bs, err := io.ReadAll(res.Body); err != nil || strings.TrimSpace(string(bs)) != tt.expectedBody {
			if err != nil {
				t.Error(err)
			} else {
				t.Errorf("expected response body to equal '%v', got '%v'\n", tt.expectedBody, strings.TrimSpace(string(bs)))
			}
		}
	}
}

func TestMaintenanceModeBlocksSettingsWrites(t *testing.T) {
	cfg := test.LoadConfig(t)
	svcs := test.GetServices(t, cfg)

	router := settingsRouter(svcs)

	var user users.User
	res := send(router, http.MethodPost, "/users", bytes.NewBufferString(`{"username":"maintained"}`))
	assertStatusCode(t, res, http.StatusCreated)
	fromJsonBody(res, &user)

	auth := map[string]string{"Authorization": fmt.Sprintf("Bearer %s", user.APIToken)}
	settingsPath := fmt.Sprintf("/users/%s/settings", user.ID)

	// Enable maintenance mode.
	sysService := svcs.GetSystem()
	sysSettings, err := sysService.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	sysSettings.MaintenanceMode = true
	if err := sysService.SaveSettings(sysSettings); err != nil {
		t.Fatal(err)
	}

	// Writes are rejected outright while in maintenance.
	res = sendWithHeaders(router, http.MethodPost, settingsPath,
		bytes.NewBufferString(`{"contrast":"high"}`), auth)
	assertStatusCode(t, res, http.StatusServiceUnavailable)

	// A synchronous rejection dispatches no notification.
	if ns := svcs.GetRecorder().Notifications(); len(ns) != 0 {
		t.Errorf("expected no notifications, got %d", len(ns))
	}

	// Reads are unaffected and still serve defaults.
	res = send(router, http.MethodGet, settingsPath, nil)
	assertStatusCode(t, res, http.StatusOK)

	var stored settings.Settings
	fromJsonBody(res, &stored)
	if diff := cmp.Diff(settings.Defaults(), stored); diff != "" {
		t.Errorf("expected the stored record to stay at defaults:\n%s", diff)
	}

	// Disable maintenance mode, writes go through again.
	sysSettings.MaintenanceMode = false
	if err := sysService.SaveSettings(sysSettings); err != nil {
		t.Fatal(err)
	}

	res = sendWithHeaders(router, http.MethodPost, settingsPath,
		bytes.NewBufferString(`{"contrast":"high"}`), auth)
	assertStatusCode(t, res, http.StatusOK)

	var merged settings.Settings
	fromJsonBody(res, &merged)
	if merged.Contrast != settings.ContrastHigh {
		t.Errorf("expected the response to carry the merged record, got %s", merged.String())
	}

	ns := waitForNotifications(t, svcs.GetRecorder(), 1)
	if ns[0].Severity != notifications.SeveritySuccess {
		t.Errorf("expected a success notification, got %q", ns[0].Severity)
	}

	res = send(router, http.MethodGet, settingsPath, nil)
	assertStatusCode(t, res, http.StatusOK)
	fromJsonBody(res, &stored)
	if stored.Contrast != settings.ContrastHigh {
		t.Errorf("expected the write to persist after maintenance, got %s", stored.String())
	}
}

func TestIsMaintenanceMode(t *testing.T) {
	cfg := test.LoadConfig(t)
	svcs := test.GetServices(t, cfg)

	sysService := svcs.GetSystem()

	sysSettings, err := sysService.GetSettings()
	if err != nil {
		t.Fatal(err)
	}

	if maintenance, err := sysService.IsMaintenanceMode(); err != nil {
		t.Fatal(err)
	} else if maintenance {
		t.Error("expected maintenance mode to be off by default")
	}

	sysSettings.MaintenanceMode = true
	if err := sysService.SaveSettings(sysSettings); err != nil {
		t.Fatal(err)
	}

	if maintenance, err := sysService.IsMaintenanceMode(); err != nil {
		t.Fatal(err)
	} else if !maintenance {
		t.Error("expected maintenance mode to be on")
	}
}
