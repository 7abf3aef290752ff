package sink

import (
	"github.com/matzehuels/arcslider/pkg/errors"
)

// Style holds the visual attributes shared by every sink.
type Style struct {
	TrackColor   string  `json:"track_color" toml:"track_color"`
	ActiveColor  string  `json:"active_color" toml:"active_color"`
	HandleColor  string  `json:"handle_color" toml:"handle_color"`
	HandleStroke string  `json:"handle_stroke" toml:"handle_stroke"`
	StrokeWidth  float64 `json:"stroke_width" toml:"stroke_width"`
	HandleRadius float64 `json:"handle_radius" toml:"handle_radius"`
}

// DefaultStyle returns the built-in look.
func DefaultStyle() Style {
	return Style{
		TrackColor:   "#e0e0e0",
		ActiveColor:  "#2a9d8f",
		HandleColor:  "#ffffff",
		HandleStroke: "#264653",
		StrokeWidth:  10,
		HandleRadius: 9,
	}
}

// WithDefaults fills zero fields from DefaultStyle.
func (s Style) WithDefaults() Style {
	d := DefaultStyle()
	if s.TrackColor == "" {
		s.TrackColor = d.TrackColor
	}
	if s.ActiveColor == "" {
		s.ActiveColor = d.ActiveColor
	}
	if s.HandleColor == "" {
		s.HandleColor = d.HandleColor
	}
	if s.HandleStroke == "" {
		s.HandleStroke = d.HandleStroke
	}
	if s.StrokeWidth <= 0 {
		s.StrokeWidth = d.StrokeWidth
	}
	if s.HandleRadius <= 0 {
		s.HandleRadius = d.HandleRadius
	}
	return s
}

// Validate checks that every colour is safe to embed in a document.
func (s Style) Validate() error {
	for _, c := range []string{s.TrackColor, s.ActiveColor, s.HandleColor, s.HandleStroke} {
		if err := errors.ValidateColor(c); err != nil {
			return err
		}
	}
	return nil
}
