// Package config loads arcslider widget configuration from TOML files.
//
// A file describes one widget and the services around it:
//
//	container_selector = "#mixer"
//	width = 300
//	height = 300
//
//	[style]
//	active_color = "#2a9d8f"
//
//	[[sliders]]
//	id = "volume"
//	radius = 100
//	min = 0
//	max = 1000
//	initial_value = 250
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//	instance_ttl = "30m"
//
// Slider fields that are left out take the slider package defaults
// (radius 50, min 0, max 1000, step 50, initial_value 0). Ranges are not
// checked: max <= min is the caller's responsibility.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/arcslider/pkg/errors"
	"github.com/matzehuels/arcslider/pkg/render/sink"
	"github.com/matzehuels/arcslider/pkg/slider"
)

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheMongo = "mongo"
)

// Defaults for the service sections.
const (
	DefaultAddr            = ":8080"
	DefaultCacheTTL        = 24 * time.Hour
	DefaultInstanceTTL     = 30 * time.Minute
	DefaultMaxInstances    = 1000
	DefaultMongoDatabase   = "arcslider"
	DefaultMongoCollection = "artifacts"
)

// Duration is a time.Duration written as a Go duration string ("90s", "24h").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config is a fully defaulted widget configuration.
type Config struct {
	Widget slider.Widget
	Style  sink.Style
	Cache  CacheConfig
	Server ServerConfig

	// Undecoded lists keys present in the file that no field consumed.
	Undecoded []string
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend         string        `toml:"backend"`
	Dir             string        `toml:"dir"`
	RedisAddr       string        `toml:"redis_addr"`
	RedisPassword   string        `toml:"redis_password"`
	RedisDB         int           `toml:"redis_db"`
	MongoURI        string        `toml:"mongo_uri"`
	MongoDatabase   string        `toml:"mongo_database"`
	MongoCollection string        `toml:"mongo_collection"`
	TTL             time.Duration `toml:"-"`
}

// ServerConfig configures the interactive widget server.
type ServerConfig struct {
	Addr         string        `toml:"addr"`
	InstanceTTL  time.Duration `toml:"-"`
	MaxInstances int           `toml:"max_instances"`
}

// file mirrors the TOML layout. Pointer fields distinguish "missing" from zero.
type file struct {
	ContainerSelector string          `toml:"container_selector"`
	Width             float64         `toml:"width"`
	Height            float64         `toml:"height"`
	Style             sink.Style      `toml:"style"`
	Sliders           []sliderSection `toml:"sliders"`
	Cache             cacheSection    `toml:"cache"`
	Server            serverSection   `toml:"server"`
}

type sliderSection struct {
	ID           string   `toml:"id"`
	Radius       *float64 `toml:"radius"`
	Min          *float64 `toml:"min"`
	Max          *float64 `toml:"max"`
	Step         *float64 `toml:"step"`
	InitialValue *float64 `toml:"initial_value"`
}

type cacheSection struct {
	CacheConfig
	TTL *Duration `toml:"ttl"`
}

type serverSection struct {
	ServerConfig
	InstanceTTL *Duration `toml:"instance_ttl"`
}

// Default returns the configuration used when no file is given: one
// default slider in a 300×300 viewport, file cache, server on :8080.
func Default() *Config {
	cfg, _ := Parse(nil)
	return cfg
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML data, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var f file
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Widget: slider.Widget{
			ContainerSelector: f.ContainerSelector,
			Viewport:          slider.Viewport{Width: f.Width, Height: f.Height},
		},
		Style:  f.Style.WithDefaults(),
		Cache:  f.Cache.resolve(),
		Server: f.Server.resolve(),
	}
	for _, key := range md.Undecoded() {
		cfg.Undecoded = append(cfg.Undecoded, key.String())
	}

	if len(f.Sliders) == 0 {
		f.Sliders = []sliderSection{{}}
	}
	for _, s := range f.Sliders {
		cfg.Widget.Sliders = append(cfg.Widget.Sliders, s.resolve())
	}
	cfg.Widget = cfg.Widget.Normalized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks identifiers, selector, colours and cache backend. Slider
// geometry (radius sign, range order) is deliberately not checked.
func (c *Config) Validate() error {
	if err := ValidateWidget(c.Widget); err != nil {
		return err
	}
	if err := c.Style.Validate(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case CacheNone, CacheFile, CacheRedis, CacheMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}

// ValidateWidget checks the container selector and slider IDs of a
// normalized widget. The server applies it to widgets posted by clients.
func ValidateWidget(w slider.Widget) error {
	if err := errors.ValidateSelector(w.ContainerSelector); err != nil {
		return err
	}
	seen := make(map[string]bool, len(w.Sliders))
	for _, s := range w.Sliders {
		if err := errors.ValidateID(s.ID); err != nil {
			return err
		}
		if seen[s.ID] {
			return errors.New(errors.ErrCodeInvalidID, "duplicate slider id %q", s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

func (s sliderSection) resolve() slider.Config {
	opts := []slider.Option{slider.WithID(s.ID)}
	if s.Radius != nil {
		opts = append(opts, slider.WithRadius(*s.Radius))
	}
	lo, hi := slider.DefaultMin, slider.DefaultMax
	if s.Min != nil {
		lo = *s.Min
	}
	if s.Max != nil {
		hi = *s.Max
	}
	opts = append(opts, slider.WithRange(lo, hi))
	if s.Step != nil {
		opts = append(opts, slider.WithStep(*s.Step))
	}
	if s.InitialValue != nil {
		opts = append(opts, slider.WithInitialValue(*s.InitialValue))
	}
	return slider.NewConfig(opts...)
}

func (s cacheSection) resolve() CacheConfig {
	c := s.CacheConfig
	if c.Backend == "" {
		c.Backend = CacheFile
	}
	if c.MongoDatabase == "" {
		c.MongoDatabase = DefaultMongoDatabase
	}
	if c.MongoCollection == "" {
		c.MongoCollection = DefaultMongoCollection
	}
	c.TTL = DefaultCacheTTL
	if s.TTL != nil {
		c.TTL = time.Duration(*s.TTL)
	}
	return c
}

func (s serverSection) resolve() ServerConfig {
	c := s.ServerConfig
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxInstances <= 0 {
		c.MaxInstances = DefaultMaxInstances
	}
	c.InstanceTTL = DefaultInstanceTTL
	if s.InstanceTTL != nil {
		c.InstanceTTL = time.Duration(*s.InstanceTTL)
	}
	return c
}
