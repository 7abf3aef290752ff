// Package pipeline turns a widget configuration into rendered artifacts.
//
// The same code path serves the CLI render command and the server's static
// endpoints: build a controller in its initial state, render each requested
// format, and cache the bytes under a hash of the inputs.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Widget:  cfg.Widget,
//	    Style:   cfg.Style,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arcslider/pkg/cache"
	"github.com/matzehuels/arcslider/pkg/errors"
	"github.com/matzehuels/arcslider/pkg/render/sink"
	"github.com/matzehuels/arcslider/pkg/slider"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatHTML = "html"
)

// DefaultScale is the PNG pixel density.
const DefaultScale = 2.0

// DefaultCacheTTL is how long rendered artifacts stay cached.
const DefaultCacheTTL = 24 * time.Hour

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatHTML: true,
}

// Options configures one pipeline run.
type Options struct {
	Widget  slider.Widget `json:"widget"`
	Style   sink.Style    `json:"style"`
	Formats []string      `json:"formats,omitempty"`
	Scale   float64       `json:"scale,omitempty"`
	Title   string        `json:"title,omitempty"`

	// Refresh skips the cache lookup but still stores the result.
	Refresh  bool          `json:"-"`
	CacheTTL time.Duration `json:"-"`
	Logger   *log.Logger   `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// WidgetHash identifies the normalized widget and style.
	WidgetHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing and size information.
type Stats struct {
	Sliders    int
	Bytes      int
	RenderTime time.Duration
}

// CacheInfo records which formats came from the cache.
type CacheInfo struct {
	Hits   []string
	Misses []string
}

// AllHit reports whether every artifact was served from cache.
func (c CacheInfo) AllHit() bool { return len(c.Misses) == 0 && len(c.Hits) > 0 }

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(formatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated list, trimming blanks and duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// ValidateAndSetDefaults normalizes the widget, fills in defaults, and
// validates formats and style.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Widget.Sliders) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "widget has no sliders")
	}
	o.Widget = o.Widget.Normalized()
	o.Style = o.Style.WithDefaults()
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := o.Style.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "style")
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for one format. Scale only
// affects PNG output, so it is left out of the other keys.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

func formatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}
