package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/mux"

	"github.com/readmosaic/a11y-settings-api/handlers"
	"github.com/readmosaic/a11y-settings-api/notifications"
	"github.com/readmosaic/a11y-settings-api/settings"
	"github.com/readmosaic/a11y-settings-api/tests/test"
	"github.com/readmosaic/a11y-settings-api/themes"
	"github.com/readmosaic/a11y-settings-api/users"
)

func TestSettingsHandlerE2E(t *testing.T) {
	cfg := test.LoadConfig(t)
	svcs := test.GetServices(t, cfg)

	router := settingsRouter(svcs)

	// Create a user to act as.
	var user users.User
	res := send(router, http.MethodPost, "/users", bytes.NewBufferString(`{"username":"reader"}`))
	assertStatusCode(t, res, http.StatusCreated)
	fromJsonBody(res, &user)

	if user.APIToken == "" {
		t.Fatal("expected the created user to carry an api token")
	}

	auth := map[string]string{"Authorization": fmt.Sprintf("Bearer %s", user.APIToken)}
	settingsPath := fmt.Sprintf("/users/%s/settings", user.ID)

	t.Run("settings default before any update", func(t *testing.T) {
		res := send(router, http.MethodGet, settingsPath, nil)
		assertStatusCode(t, res, http.StatusOK)

		var s settings.Settings
		fromJsonBody(res, &s)

		if diff := cmp.Diff(settings.Defaults(), s); diff != "" {
			t.Errorf("unexpected settings:\n%s", diff)
		}
	})

	t.Run("update requires authentication", func(t *testing.T) {
		res := send(router, http.MethodPost, settingsPath, bytes.NewBufferString(`{"contrast":"high"}`))
		assertStatusCode(t, res, http.StatusUnauthorized)
	})

	t.Run("update rejects a token for another user", func(t *testing.T) {
		var other users.User
		res := send(router, http.MethodPost, "/users", bytes.NewBufferString(`{"username":"impostor"}`))
		assertStatusCode(t, res, http.StatusCreated)
		fromJsonBody(res, &other)

		res = sendWithHeaders(router, http.MethodPost, settingsPath,
			bytes.NewBufferString(`{"contrast":"high"}`),
			map[string]string{"Authorization": fmt.Sprintf("Bearer %s", other.APIToken)})
		assertStatusCode(t, res, http.StatusForbidden)
	})

	t.Run("update merges and persists a partial patch", func(t *testing.T) {
		res := sendWithHeaders(router, http.MethodPost, settingsPath,
			bytes.NewBufferString(`{"fontSize":"large","voiceNavigation":true}`), auth)
		assertStatusCode(t, res, http.StatusOK)

		var merged settings.Settings
		fromJsonBody(res, &merged)

		expected := settings.Settings{
			FontSize:        settings.FontSizeLarge,
			Contrast:        settings.ContrastNormal,
			Font:            settings.FontDefault,
			VoiceNavigation: true,
		}
		if diff := cmp.Diff(expected, merged); diff != "" {
			t.Errorf("unexpected merged record:\n%s", diff)
		}

		// The stored record reflects the merge.
		res = send(router, http.MethodGet, settingsPath, nil)
		assertStatusCode(t, res, http.StatusOK)

		var stored settings.Settings
		fromJsonBody(res, &stored)

		if diff := cmp.Diff(expected, stored); diff != "" {
			t.Errorf("unexpected stored record:\n%s", diff)
		}

		// A successful persist surfaces a success notification.
		ns := waitForNotifications(t, svcs.GetRecorder(), 1)
		if ns[0].Severity != notifications.SeveritySuccess {
			t.Errorf("expected a success notification, got %q", ns[0].Severity)
		}
	})

	t.Run("theme descriptor follows stored settings", func(t *testing.T) {
		res := send(router, http.MethodGet, fmt.Sprintf("/users/%s/theme", user.ID), nil)
		assertStatusCode(t, res, http.StatusOK)

		var theme struct {
			themes.Descriptor
			Markers []themes.Marker `json:"markers"`
		}
		fromJsonBody(res, &theme)

		expected := []themes.Marker{themes.MarkerTextLarge, themes.MarkerContrastNormal, themes.MarkerFontDefault}
		if diff := cmp.Diff(expected, theme.Markers); diff != "" {
			t.Errorf("unexpected markers:\n%s", diff)
		}
	})

	t.Run("update rejects an unknown enum value", func(t *testing.T) {
		res := sendWithHeaders(router, http.MethodPost, settingsPath,
			bytes.NewBufferString(`{"fontSize":"enormous"}`), auth)
		assertStatusCode(t, res, http.StatusBadRequest)
	})

	t.Run("update rejects an empty body", func(t *testing.T) {
		res := sendWithHeaders(router, http.MethodPost, settingsPath, nil, auth)
		assertStatusCode(t, res, http.StatusBadRequest)
	})

	t.Run("invalid user id is a bad request", func(t *testing.T) {
		res := send(router, http.MethodGet, "/users/not-an-id/settings", nil)
		assertStatusCode(t, res, http.StatusBadRequest)
	})

	t.Run("unknown user gets defaults", func(t *testing.T) {
		res := send(router, http.MethodGet, "/users/00000000-0000-0000-0000-000000000001/settings", nil)
		assertStatusCode(t, res, http.StatusOK)

		var s settings.Settings
		fromJsonBody(res, &s)

		if diff := cmp.Diff(settings.Defaults(), s); diff != "" {
			t.Errorf("unexpected settings:\n%s", diff)
		}
	})
}

func TestUserHandlerE2E(t *testing.T) {
	cfg := test.LoadConfig(t)
	svcs := test.GetServices(t, cfg)

	router := settingsRouter(svcs)

	var created users.User
	res := send(router, http.MethodPost, "/users", bytes.NewBufferString(`{"username":"alice"}`))
	assertStatusCode(t, res, http.StatusCreated)
	fromJsonBody(res, &created)

	t.Run("create rejects an empty username", func(t *testing.T) {
		res := send(router, http.MethodPost, "/users", bytes.NewBufferString(`{"username":""}`))
		assertStatusCode(t, res, http.StatusBadRequest)
	})

	t.Run("details omit the api token", func(t *testing.T) {
		res := send(router, http.MethodGet, fmt.Sprintf("/users/%s", created.ID), nil)
		assertStatusCode(t, res, http.StatusOK)

		var u users.User
		fromJsonBody(res, &u)

		if u.Username != "alice" {
			t.Errorf("expected username %q, got %q", "alice", u.Username)
		}
		if u.APIToken != "" {
			t.Error("expected the api token to be omitted from details")
		}
	})

	t.Run("unknown user details is not found", func(t *testing.T) {
		res := send(router, http.MethodGet, "/users/00000000-0000-0000-0000-000000000002", nil)
		assertStatusCode(t, res, http.StatusNotFound)
	})

	t.Run("list includes the created user", func(t *testing.T) {
		res := send(router, http.MethodGet, "/users", nil)
		assertStatusCode(t, res, http.StatusOK)

		var uu []users.User
		fromJsonBody(res, &uu)

		if len(uu) == 0 {
			t.Error("expected at least one user")
		}
		for _, u := range uu {
			if u.APIToken != "" {
				t.Error("expected api tokens to be omitted from listings")
			}
		}
	})
}

// settingsRouter builds the e2e router with the same middleware chain
// the server uses for authentication.
func settingsRouter(svcs test.Services) *mux.Router {
	userHandler := handlers.NewUsers(svcs.GetUsers())
	settingsHandler := handlers.NewSettings(svcs.GetSettings(), svcs.GetDispatcher())
	themeHandler := handlers.NewThemes(svcs.GetSettings())

	router := mux.NewRouter()
	router.Handle("/users", userHandler.List()).Methods(http.MethodGet)
	router.Handle("/users", userHandler.Create()).Methods(http.MethodPost)
	router.Handle("/users/{userID}", userHandler.Details()).Methods(http.MethodGet)
	router.Handle("/users/{userID}/settings", settingsHandler.Get()).Methods(http.MethodGet)
	router.Handle("/users/{userID}/settings", settingsHandler.Update()).Methods(http.MethodPost)
	router.Handle("/users/{userID}/theme", themeHandler.Get()).Methods(http.MethodGet)

	authenticated := mux.NewRouter()
	authenticated.PathPrefix("/").Handler(handlers.UseAuthentication(router, svcs.GetUsers()))

	return authenticated
}

func waitForNotifications(t *testing.T, recorder *notifications.Recorder, count int) []notifications.Notification {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		ns := recorder.Notifications()
		if len(ns) >= count {
			return ns
		}
		select {
		case <-deadline:
			t.Fatalf("expected %d notifications, got %d", count, len(ns))
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func assertStatusCode(t *testing.T, res *http.Response, expected int) {
	t.Helper()
	if res.StatusCode != expected {
		bs, err := io.ReadAll(res.Body)
		if err != nil {
			panic(err)
		}
		t.Fatalf("expected HTTP response status code %d, got %d: %s", expected, res.StatusCode, string(bs))
	}
}

func fromJsonBody(res *http.Response, v interface{}) {
	bs, err := io.ReadAll(res.Body)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(bs, v)
	if err != nil {
		panic(err)
	}
}

func send(router *mux.Router, method, path string, body io.Reader) *http.Response {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("content-type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr.Result()
}

func sendWithHeaders(router *mux.Router, method, path string, body io.Reader, headers map[string]string) *http.Response {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("content-type", "application/json")

	for hk, hv := range headers {
		req.Header.Set(hk, hv)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr.Result()
}
