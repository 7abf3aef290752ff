package slider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/matzehuels/arcslider/pkg/geometry"
)

// Defaults applied to fields a configuration leaves out.
const (
	DefaultRadius       = 50.0
	DefaultMin          = 0.0
	DefaultMax          = 1000.0
	DefaultStep         = 50.0
	DefaultInitialValue = 0.0

	// DefaultViewportSize is the width and height of the square drawing area.
	DefaultViewportSize = 300.0

	// dragScale keeps the active arc's end cap just short of the handle.
	dragScale = 0.999
)

// Config is the immutable description of one slider.
//
// Step is carried for the rendering layer but never applied to dragging.
// Ranges with Max <= Min and non-positive radii are not validated.
type Config struct {
	ID           string  `json:"id"`
	Radius       float64 `json:"radius"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Step         float64 `json:"step"`
	InitialValue float64 `json:"initial_value"`
}

// Option customizes a Config built by NewConfig.
type Option func(*Config)

// WithID sets the slider identifier.
func WithID(id string) Option { return func(c *Config) { c.ID = id } }

// WithRadius sets the ring radius.
func WithRadius(r float64) Option { return func(c *Config) { c.Radius = r } }

// WithRange sets the value range.
func WithRange(lo, hi float64) Option {
	return func(c *Config) { c.Min, c.Max = lo, hi }
}

// WithStep sets the step increment.
func WithStep(step float64) Option { return func(c *Config) { c.Step = step } }

// WithInitialValue sets the value the slider starts at.
func WithInitialValue(v float64) Option { return func(c *Config) { c.InitialValue = v } }

// DefaultConfig returns a Config with every field at its default.
func DefaultConfig() Config {
	return Config{
		Radius:       DefaultRadius,
		Min:          DefaultMin,
		Max:          DefaultMax,
		Step:         DefaultStep,
		InitialValue: DefaultInitialValue,
	}
}

// NewConfig applies opts on top of DefaultConfig.
func NewConfig(opts ...Option) Config {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// UnmarshalJSON decodes over DefaultConfig, so fields missing from the
// input keep their defaults. Unknown fields are rejected.
func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config
	v := plain(DefaultConfig())
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	*c = Config(v)
	return nil
}

// InitialAngle returns the starting sweep in whole degrees:
// floor(InitialValue / (Max - Min) * 360).
//
// Min is not subtracted from InitialValue, so for a non-zero Min the result
// does not agree with State.Value. This mirrors how existing widgets were
// configured and is kept as is.
func InitialAngle(c Config) float64 {
	return math.Floor((c.InitialValue / (c.Max - c.Min)) * 360)
}

// AngleForValue maps a value onto the ring: (v - Min) / (Max - Min) * 360.
// It is the exact inverse of ValueForAngle.
func AngleForValue(c Config, v float64) float64 {
	return (v - c.Min) / (c.Max - c.Min) * 360
}

// ValueForAngle maps a sweep in degrees back to a value.
func ValueForAngle(c Config, deg float64) float64 {
	return c.Min + (deg/360)*(c.Max-c.Min)
}

// Viewport is the square logical drawing area of a widget.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultViewport returns the 300×300 viewport.
func DefaultViewport() Viewport {
	return Viewport{Width: DefaultViewportSize, Height: DefaultViewportSize}
}

// Center returns the ring center.
func (v Viewport) Center() geometry.Point {
	return geometry.Point{X: v.Width / 2, Y: v.Height / 2}
}

// Widget is the construction input for one container of sliders.
type Widget struct {
	ContainerSelector string   `json:"container_selector"`
	Viewport          Viewport `json:"viewport"`
	Sliders           []Config `json:"sliders"`
}

// Normalized returns a copy with a default viewport when none is set and
// an ID for every slider that lacks one.
func (w Widget) Normalized() Widget {
	if w.Viewport.Width <= 0 || w.Viewport.Height <= 0 {
		w.Viewport = DefaultViewport()
	}
	sliders := make([]Config, len(w.Sliders))
	for i, c := range w.Sliders {
		if c.ID == "" {
			c.ID = fmt.Sprintf("slider-%d", i)
		}
		sliders[i] = c
	}
	w.Sliders = sliders
	return w
}
