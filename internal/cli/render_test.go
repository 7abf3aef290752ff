package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/arcslider/pkg/geometry"
	"github.com/matzehuels/arcslider/pkg/slider"
)

func TestRenderCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	base := filepath.Join(t.TempDir(), "out", "knob")

	if _, err := execute(t, "render", "-f", "svg,json", "-o", base, "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, ext := range []string{".svg", ".json"} {
		data, err := os.ReadFile(base + ext)
		if err != nil {
			t.Fatalf("read %s: %v", ext, err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", ext)
		}
	}
	svg, _ := os.ReadFile(base + ".svg")
	if !strings.Contains(string(svg), "<svg") {
		t.Error("svg output missing <svg element")
	}
}

func TestRenderCommandStdout(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	out, err := execute(t, "render", "-f", "json", "-o", "-", "--no-cache")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var doc struct {
		Sliders []json.RawMessage `json:"sliders"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, out)
	}
	if len(doc.Sliders) != 1 {
		t.Errorf("got %d sliders, want 1", len(doc.Sliders))
	}
}

func TestRenderCommandErrors(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	tests := []struct {
		name string
		args []string
	}{
		{"bad format", []string{"render", "-f", "gif", "--no-cache"}},
		{"stdout needs one format", []string{"render", "-f", "svg,png", "-o", "-", "--no-cache"}},
		{"missing config", []string{"--config", filepath.Join(t.TempDir(), "nope.toml"), "render"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestProbeCommand(t *testing.T) {
	out, err := execute(t, "probe", "--x", "200", "--y", "150")
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	for _, want := range []string{"slider-0", "90.0000°", "89.9100°", "249.7500", "M "} {
		if !strings.Contains(out, want) {
			t.Errorf("probe output missing %q:\n%s", want, out)
		}
	}

	if _, err := execute(t, "probe", "--x", "200"); err == nil {
		t.Error("probe without --y should fail")
	}
}

func TestWriteArtifacts(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "widget")
	paths, err := writeArtifacts(base, []string{"svg", "png"}, map[string][]byte{
		"svg": []byte("<svg/>"),
		"png": {0x89, 'P', 'N', 'G'},
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	want := []string{base + ".svg", base + ".png"}
	for i, p := range want {
		if paths[i] != p {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], p)
		}
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s not written: %v", p, err)
		}
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := configFlag(""); got != "" {
		t.Errorf("configFlag(\"\") = %q", got)
	}
	if got := configFlag("knobs.toml"); got != " -c knobs.toml" {
		t.Errorf("configFlag = %q", got)
	}

	for addr, want := range map[string]string{
		":8080":          "http://localhost:8080",
		"127.0.0.1:9000": "http://127.0.0.1:9000",
	} {
		if got := displayURL(addr); got != want {
			t.Errorf("displayURL(%q) = %q, want %q", addr, got, want)
		}
	}

	for v, want := range map[float64]string{100: "100", 0: "0", 2.5: "2.5", 1.25: "1.25"} {
		if got := trimFloat(v); got != want {
			t.Errorf("trimFloat(%v) = %q, want %q", v, got, want)
		}
	}

	for n, want := range map[int]string{512: "512 B", 2048: "2.0 KB", 3 << 20: "3.0 MB"} {
		if got := formatBytes(n); got != want {
			t.Errorf("formatBytes(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestSliderTable(t *testing.T) {
	w := slider.Widget{Sliders: []slider.Config{
		slider.NewConfig(slider.WithID("volume"), slider.WithRadius(100)),
		slider.NewConfig(slider.WithID("bass"), slider.WithRadius(60), slider.WithRange(-10, 10)),
	}}.Normalized()
	c := slider.NewController(w)
	c.PointerDown(geometry.Point{X: 250, Y: 150})

	out := sliderTable(c)
	for _, want := range []string{"Slider", "volume", "bass", "-10–10", "89.91°"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
