package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arcslider/pkg/cache"
	"github.com/matzehuels/arcslider/pkg/errors"
	"github.com/matzehuels/arcslider/pkg/observability"
	"github.com/matzehuels/arcslider/pkg/render/sink"
	"github.com/matzehuels/arcslider/pkg/slider"
)

func testWidget() slider.Widget {
	return slider.Widget{
		ContainerSelector: "#knobs",
		Sliders: []slider.Config{
			slider.NewConfig(slider.WithID("volume"), slider.WithRadius(100), slider.WithInitialValue(250)),
			slider.NewConfig(slider.WithRadius(60)),
		},
	}
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"html", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats(" SVG, png,,svg ")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(got, ",") != "svg,png" {
		t.Errorf("ParseFormats = %v", got)
	}
	if _, err := ParseFormats("svg,gif"); err == nil {
		t.Error("expected error for gif")
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Widget: testWidget()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v", opts.Scale)
	}
	if opts.Widget.Sliders[1].ID != "slider-1" {
		t.Errorf("slider id = %q", opts.Widget.Sliders[1].ID)
	}
	if opts.Style != sink.DefaultStyle() {
		t.Errorf("Style = %+v", opts.Style)
	}

	empty := Options{}
	if err := empty.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("empty widget err = %v", err)
	}

	bad := Options{Widget: testWidget(), Style: sink.Style{ActiveColor: "not a colour"}}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad style err = %v", err)
	}
}

func TestRenderAllFormats(t *testing.T) {
	opts := Options{Widget: testWidget(), Formats: []string{"svg", "png", "json", "html"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	artifacts, err := Render(opts)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.HasPrefix(artifacts["svg"], []byte("<svg")) {
		t.Errorf("svg artifact: %.40s", artifacts["svg"])
	}
	if !bytes.HasPrefix(artifacts["png"], []byte("\x89PNG")) {
		t.Error("png artifact missing signature")
	}
	if !bytes.Contains(artifacts["html"], []byte("<svg")) {
		t.Error("html artifact should embed the svg")
	}

	var doc sink.Document
	if err := json.Unmarshal(artifacts["json"], &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Sliders) != 2 || doc.Sliders[0].Frame.AngleDegrees != 90 {
		t.Errorf("json document = %+v", doc)
	}
}

func TestRunnerCaches(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	hooks := &countingHooks{}
	observability.SetCacheHooks(hooks)

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, quietLogger())
	defer r.Close()

	ctx := context.Background()
	opts := Options{Widget: testWidget(), Formats: []string{"svg", "json"}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(first.CacheInfo.Hits) != 0 || len(first.CacheInfo.Misses) != 2 {
		t.Errorf("first run cache info = %+v", first.CacheInfo)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.AllHit() {
		t.Errorf("second run cache info = %+v", second.CacheInfo)
	}
	if first.WidgetHash != second.WidgetHash {
		t.Error("widget hash should be stable")
	}
	if !bytes.Equal(first.Artifacts["svg"], second.Artifacts["svg"]) {
		t.Error("cached svg differs from rendered svg")
	}
	if hooks.hits != 2 || hooks.misses != 2 || hooks.sets != 2 {
		t.Errorf("hooks = %+v", hooks)
	}

	// Adding a format renders only the new one.
	opts.Formats = []string{"svg", "png"}
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(third.CacheInfo.Hits, ",") != "svg" || strings.Join(third.CacheInfo.Misses, ",") != "png" {
		t.Errorf("third run cache info = %+v", third.CacheInfo)
	}

	opts.Refresh = true
	fourth, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(fourth.CacheInfo.Hits) != 0 {
		t.Errorf("refresh should bypass cache: %+v", fourth.CacheInfo)
	}
}

func TestRunnerDifferentWidgetsDifferentHashes(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()

	a, err := r.Execute(ctx, Options{Widget: testWidget()})
	if err != nil {
		t.Fatal(err)
	}
	w := testWidget()
	w.Sliders[0].Radius = 90
	b, err := r.Execute(ctx, Options{Widget: w})
	if err != nil {
		t.Fatal(err)
	}
	if a.WidgetHash == b.WidgetHash {
		t.Error("different widgets should hash differently")
	}
}

func TestRunnerRenderHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	hooks := &countingHooks{}
	observability.SetRenderHooks(hooks)

	r := NewRunner(nil, nil, quietLogger())
	if _, err := r.Execute(context.Background(), Options{Widget: testWidget()}); err != nil {
		t.Fatal(err)
	}
	if hooks.starts != 1 || hooks.completes != 1 {
		t.Errorf("render hooks = %+v", hooks)
	}
}

type countingHooks struct {
	observability.NoopRenderHooks
	observability.NoopCacheHooks
	starts, completes  int
	hits, misses, sets int
}

func (h *countingHooks) OnRenderStart(context.Context, []string) { h.starts++ }
func (h *countingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.completes++
}
func (h *countingHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingHooks) OnCacheSet(context.Context, string, int) { h.sets++ }
