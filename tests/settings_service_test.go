package tests

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/readmosaic/a11y-settings-api/datastore"
	apperrors "github.com/readmosaic/a11y-settings-api/errors"
	"github.com/readmosaic/a11y-settings-api/settings"
	"github.com/readmosaic/a11y-settings-api/tests/test"
)

func TestSettingsService(t *testing.T) {
	cfg := test.LoadConfig(t)
	svcs := test.GetServices(t, cfg)

	service := svcs.GetSettings()
	userID := uuid.New()

	t.Run("update merges a patch over defaults and persists", func(t *testing.T) {
		large := settings.FontSizeLarge
		res, err := service.UpdateSettings(context.Background(), userID, settings.Patch{FontSize: &large})
		if err != nil {
			t.Fatal(err)
		}

		expected := settings.Settings{
			FontSize:        settings.FontSizeLarge,
			Contrast:        settings.ContrastNormal,
			Font:            settings.FontDefault,
			VoiceNavigation: false,
		}
		if diff := cmp.Diff(expected, *res); diff != "" {
			t.Errorf("unexpected merged record:\n%s", diff)
		}

		stored, err := service.GetSettings(context.Background(), userID)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(expected, *stored); diff != "" {
			t.Errorf("unexpected stored record:\n%s", diff)
		}
	})

	t.Run("a second update merges over the stored record", func(t *testing.T) {
		voice := true
		res, err := service.UpdateSettings(context.Background(), userID, settings.Patch{VoiceNavigation: &voice})
		if err != nil {
			t.Fatal(err)
		}

		if res.FontSize != settings.FontSizeLarge || !res.VoiceNavigation {
			t.Errorf("expected earlier changes to survive the merge, got %s", res.String())
		}
	})

	t.Run("update rejects an invalid patch", func(t *testing.T) {
		invalid := settings.FontSize("enormous")
		_, err := service.UpdateSettings(context.Background(), userID, settings.Patch{FontSize: &invalid})

		var reqErr *apperrors.RequestError
		if !errors.As(err, &reqErr) || reqErr.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected a 400 request error, got %v", err)
		}
	})

	t.Run("update is rejected during maintenance", func(t *testing.T) {
		sysService := svcs.GetSystem()
		sysSettings, err := sysService.GetSettings()
		if err != nil {
			t.Fatal(err)
		}

		sysSettings.MaintenanceMode = true
		if err := sysService.SaveSettings(sysSettings); err != nil {
			t.Fatal(err)
		}

		high := settings.ContrastHigh
		_, err = service.UpdateSettings(context.Background(), userID, settings.Patch{Contrast: &high})

		var reqErr *apperrors.RequestError
		if !errors.As(err, &reqErr) || reqErr.StatusCode != http.StatusServiceUnavailable {
			t.Fatalf("expected a 503 request error, got %v", err)
		}

		sysSettings.MaintenanceMode = false
		if err := sysService.SaveSettings(sysSettings); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("profiles lists stored records", func(t *testing.T) {
		store := settings.NewGormStore(test.GetDatabase(t, cfg))

		pp, err := store.Profiles(datastore.ParseListOptions(10, 0))
		if err != nil {
			t.Fatal(err)
		}

		if len(pp) != 1 {
			t.Fatalf("expected 1 profile, got %d", len(pp))
		}
		if pp[0].UserID != userID {
			t.Errorf("expected profile for user %s, got %s", userID, pp[0].UserID)
		}
	})
}
