package settings

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaults(t *testing.T) {
	expected := Settings{
		FontSize:        FontSizeMedium,
		Contrast:        ContrastNormal,
		Font:            FontDefault,
		VoiceNavigation: false,
	}

	if diff := cmp.Diff(expected, Defaults()); diff != "" {
		t.Errorf("unexpected defaults:\n%s", diff)
	}
}

func TestMerge(t *testing.T) {
	large := FontSizeLarge
	high := ContrastHigh
	dyslexic := FontDyslexic
	voice := true

	cases := []struct {
		name     string
		patch    Patch
		expected Settings
	}{
		{
			name:     "empty patch keeps current values",
			patch:    Patch{},
			expected: Defaults(),
		},
		{
			name:  "single field",
			patch: Patch{Contrast: &high},
			expected: Settings{
				FontSize:        FontSizeMedium,
				Contrast:        ContrastHigh,
				Font:            FontDefault,
				VoiceNavigation: false,
			},
		},
		{
			name:  "all fields",
			patch: Patch{FontSize: &large, Contrast: &high, Font: &dyslexic, VoiceNavigation: &voice},
			expected: Settings{
				FontSize:        FontSizeLarge,
				Contrast:        ContrastHigh,
				Font:            FontDyslexic,
				VoiceNavigation: true,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			merged := Defaults().Merge(tc.patch)

			if diff := cmp.Diff(tc.expected, merged); diff != "" {
				t.Errorf("unexpected merge result:\n%s", diff)
			}

			// A merged record never has a missing field
			if merged.FontSize == "" || merged.Contrast == "" || merged.Font == "" {
				t.Errorf("merged record has an empty field: %s", merged.String())
			}
		})
	}
}

func TestPatchValidate(t *testing.T) {
	valid := FontSizeLarge
	if err := (Patch{FontSize: &valid}).Validate(); err != nil {
		t.Errorf("expected patch to be valid, got: %s", err)
	}

	invalid := FontSize("enormous")
	if err := (Patch{FontSize: &invalid}).Validate(); err == nil {
		t.Error("expected patch to be invalid")
	}

	badContrast := Contrast("sepia")
	if err := (Patch{Contrast: &badContrast}).Validate(); err == nil {
		t.Error("expected patch to be invalid")
	}
}

func TestDecodePreferences(t *testing.T) {
	t.Run("partial object merges over defaults", func(t *testing.T) {
		patch, err := decodePreferences([]byte(`{"fontSize":"large","voiceNavigation":true}`))
		if err != nil {
			t.Fatal(err)
		}

		merged := Defaults().Merge(patch)

		expected := Settings{
			FontSize:        FontSizeLarge,
			Contrast:        ContrastNormal,
			Font:            FontDefault,
			VoiceNavigation: true,
		}

		if diff := cmp.Diff(expected, merged); diff != "" {
			t.Errorf("unexpected result:\n%s", diff)
		}
	})

	t.Run("empty and null decode to empty patch", func(t *testing.T) {
		for _, raw := range []string{"", "null"} {
			patch, err := decodePreferences([]byte(raw))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(Patch{}, patch); diff != "" {
				t.Errorf("expected an empty patch for %q:\n%s", raw, diff)
			}
		}
	})

	t.Run("non-object errors", func(t *testing.T) {
		if _, err := decodePreferences([]byte(`"large"`)); err == nil {
			t.Error("expected an error for a non-object value")
		}
		if _, err := decodePreferences([]byte(`[1,2,3]`)); err == nil {
			t.Error("expected an error for an array value")
		}
	})
}
