// Package settings implements per-user accessibility preferences:
// an always-complete record of font size, contrast, font family and
// voice navigation, persisted per user as a JSON preferences object.
package settings

import (
	"fmt"
)

type FontSize string

const (
	FontSizeSmall  FontSize = "small"
	FontSizeMedium FontSize = "medium"
	FontSizeLarge  FontSize = "large"
)

type Contrast string

const (
	ContrastNormal Contrast = "normal"
	ContrastHigh   Contrast = "high"
)

type Font string

const (
	FontDefault  Font = "default"
	FontDyslexic Font = "dyslexic"
)

// Settings is the full accessibility preference record. All four fields
// are always present; partial state only ever exists as a Patch.
type Settings struct {
	FontSize        FontSize `json:"fontSize"`
	Contrast        Contrast `json:"contrast"`
	Font            Font     `json:"font"`
	VoiceNavigation bool     `json:"voiceNavigation"`
}

func Defaults() Settings {
	return Settings{
		FontSize:        FontSizeMedium,
		Contrast:        ContrastNormal,
		Font:            FontDefault,
		VoiceNavigation: false,
	}
}

func (s Settings) String() string {
	return fmt.Sprintf("fontSize: %s, contrast: %s, font: %s, voiceNavigation: %t",
		s.FontSize, s.Contrast, s.Font, s.VoiceNavigation)
}

// Merge applies a partial patch over the record and returns the result.
// Unset patch fields keep their current value, so a merged record never
// has a missing field.
func (s Settings) Merge(p Patch) Settings {
	if p.FontSize != nil {
		s.FontSize = *p.FontSize
	}
	if p.Contrast != nil {
		s.Contrast = *p.Contrast
	}
	if p.Font != nil {
		s.Font = *p.Font
	}
	if p.VoiceNavigation != nil {
		s.VoiceNavigation = *p.VoiceNavigation
	}
	return s
}

// Patch is a partial preference record. Nil fields are "not given".
type Patch struct {
	FontSize        *FontSize `json:"fontSize,omitempty"`
	Contrast        *Contrast `json:"contrast,omitempty"`
	Font            *Font     `json:"font,omitempty"`
	VoiceNavigation *bool     `json:"voiceNavigation,omitempty"`
}

func (p Patch) Validate() error {
	if p.FontSize != nil {
		switch *p.FontSize {
		case FontSizeSmall, FontSizeMedium, FontSizeLarge:
		default:
			return fmt.Errorf(`not a valid font size: "%s"`, *p.FontSize)
		}
	}
	if p.Contrast != nil {
		switch *p.Contrast {
		case ContrastNormal, ContrastHigh:
		default:
			return fmt.Errorf(`not a valid contrast: "%s"`, *p.Contrast)
		}
	}
	if p.Font != nil {
		switch *p.Font {
		case FontDefault, FontDyslexic:
		default:
			return fmt.Errorf(`not a valid font: "%s"`, *p.Font)
		}
	}
	return nil
}
