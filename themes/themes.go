// Package themes derives document style markers from accessibility
// settings. The computation is a pure descriptor value; applying it to
// an actual document surface is a separate concern (see Applier).
package themes

import (
	"github.com/readmosaic/a11y-settings-api/settings"
)

// Marker is a named style flag applied to the document root.
type Marker string

const (
	MarkerTextSmall  Marker = "text-small"
	MarkerTextMedium Marker = "text-medium"
	MarkerTextLarge  Marker = "text-large"

	MarkerContrastNormal Marker = "contrast-normal"
	MarkerContrastHigh   Marker = "contrast-high"

	MarkerFontDefault  Marker = "font-default"
	MarkerFontDyslexic Marker = "font-dyslexic"
)

// Descriptor holds exactly one marker per group: size, contrast, font.
type Descriptor struct {
	Size     Marker `json:"size"`
	Contrast Marker `json:"contrast"`
	Font     Marker `json:"font"`
}

// FromSettings computes the descriptor for a settings record.
func FromSettings(s settings.Settings) Descriptor {
	d := Descriptor{
		Size:     MarkerTextMedium,
		Contrast: MarkerContrastNormal,
		Font:     MarkerFontDefault,
	}

	switch s.FontSize {
	case settings.FontSizeSmall:
		d.Size = MarkerTextSmall
	case settings.FontSizeLarge:
		d.Size = MarkerTextLarge
	}

	if s.Contrast == settings.ContrastHigh {
		d.Contrast = MarkerContrastHigh
	}

	if s.Font == settings.FontDyslexic {
		d.Font = MarkerFontDyslexic
	}

	return d
}

// Markers returns the descriptor as a marker set.
func (d Descriptor) Markers() []Marker {
	return []Marker{d.Size, d.Contrast, d.Font}
}
