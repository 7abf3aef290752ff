package sink

import (
	"bytes"
	"encoding/json"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/arcslider/pkg/geometry"
	"github.com/matzehuels/arcslider/pkg/slider"
)

func testController() *slider.Controller {
	return slider.NewController(slider.Widget{
		ContainerSelector: ".container",
		Sliders: []slider.Config{
			slider.NewConfig(slider.WithID("volume"), slider.WithRadius(100), slider.WithInitialValue(250)),
		},
	})
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testController()))

	for _, want := range []string{
		`xmlns="http://www.w3.org/2000/svg"`,
		`viewBox="0 0 300 300"`,
		`id="slider-volume"`,
		`transform="rotate(-90,150,150)"`,
		`class="sliderSinglePath" d="` + geometry.DescribeArc(150, 150, 100, 0, 360) + `"`,
		`class="sliderSinglePathActive" d="` + geometry.DescribeArc(150, 150, 100, 0, 90) + `"`,
		`class="sliderHandle"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("SVG not terminated")
	}
}

func TestRenderSVGStyle(t *testing.T) {
	svg := string(RenderSVG(testController(), WithStyle(Style{ActiveColor: "tomato", StrokeWidth: 4}), WithoutXMLNS()))
	if strings.Contains(svg, "xmlns") {
		t.Error("WithoutXMLNS should drop the namespace")
	}
	if !strings.Contains(svg, `stroke="tomato" stroke-width="4"`) {
		t.Error("custom active colour not applied")
	}
	if !strings.Contains(svg, `stroke="`+DefaultStyle().TrackColor+`"`) {
		t.Error("unset fields should fall back to defaults")
	}
}

func TestRenderSVGReflectsDrag(t *testing.T) {
	c := testController()
	f, _ := c.PointerDown(geometry.Point{X: 150, Y: 250})
	svg := string(RenderSVG(c))
	if !strings.Contains(svg, `d="`+f.ActivePath+`"`) {
		t.Error("SVG should show the dragged arc")
	}
}

func TestRenderHTML(t *testing.T) {
	page, err := RenderHTML(testController(),
		WithTitle("Volume <test>"),
		WithContainerSelector("#mixer"),
		WithInstance("http://localhost:8080/", "abc"))
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	s := string(page)

	for _, want := range []string{
		"<title>Volume &lt;test&gt;</title>",
		`<div id="mixer">`,
		`class="slider__data"`,
		`"instance":"abc"`,
		`"endpoint":"http://localhost:8080"`,
		`window.addEventListener('mouseup'`,
		`data-value-for="volume">250.0<`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(s, "xmlns") {
		t.Error("inline SVG should not carry xmlns")
	}
}

func TestRenderHTMLStatic(t *testing.T) {
	page, err := RenderHTML(testController())
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if bytes.Contains(page, []byte("<script")) {
		t.Error("page without instance should not include scripts")
	}
}

func TestContainerAttr(t *testing.T) {
	tests := []struct{ sel, want string }{
		{"#app", `id="app"`},
		{".box", `class="box"`},
		{"main", `data-container="main"`},
		{"", `class="slider"`},
	}
	for _, tt := range tests {
		if got := containerAttr(tt.sel); got != tt.want {
			t.Errorf("containerAttr(%q) = %q, want %q", tt.sel, got, tt.want)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(testController(), WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 300 {
		t.Fatalf("size = %v", b)
	}

	active, _ := parseColor(DefaultStyle().ActiveColor)
	track, _ := parseColor(DefaultStyle().TrackColor)

	// The active arc spans 0°..90°, i.e. 12 o'clock to 3 o'clock on screen.
	// 45° on the ring lies in the upper-right quadrant.
	on := geometry.Rotate(geometry.PolarToCartesian(150, 150, 100, 45), geometry.Point{X: 150, Y: 150}, -90)
	if !sameRGB(img.At(int(on.X), int(on.Y)), active) {
		t.Errorf("pixel at 45° = %v, want active colour", img.At(int(on.X), int(on.Y)))
	}
	// 9 o'clock is only covered by the track.
	if !sameRGB(img.At(50, 150), track) {
		t.Errorf("pixel at 9 o'clock = %v, want track colour", img.At(50, 150))
	}
	// The ring's interior stays empty.
	if _, _, _, a := img.At(150, 150).RGBA(); a != 0 {
		t.Error("ring center should be transparent")
	}
}

func TestRenderPNGInvalidColor(t *testing.T) {
	if _, err := RenderPNG(testController(), WithPNGStyle(Style{TrackColor: "#zz"})); err == nil {
		t.Error("invalid colour should fail")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#fff", color.NRGBA{255, 255, 255, 255}},
		{"#2a9d8f", color.NRGBA{0x2a, 0x9d, 0x8f, 255}},
		{"#00000080", color.NRGBA{0, 0, 0, 0x80}},
	}
	for _, tt := range tests {
		got, err := parseColor(tt.in)
		if err != nil {
			t.Fatalf("parseColor(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("parseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := parseColor("Teal"); err != nil {
		t.Errorf("keyword colours should parse: %v", err)
	}
	if _, err := parseColor("nocolor"); err == nil {
		t.Error("unknown keyword should fail")
	}
}

func TestHexColor(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"#FFF", "#ffffff"},
		{"#2a9d8f80", "#2a9d8f"},
		{"teal", "#008080"},
	}
	for _, tt := range tests {
		got, err := HexColor(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("HexColor(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := HexColor("#12"); err == nil {
		t.Error("short hex should fail")
	}
}

func TestRenderJSON(t *testing.T) {
	c := testController()
	c.PointerDown(geometry.Point{X: 250, Y: 150})

	data, err := RenderJSON(c, ".container")
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Interaction != "dragging" || doc.ActiveSlider != "volume" {
		t.Errorf("interaction = %q/%q", doc.Interaction, doc.ActiveSlider)
	}
	if len(doc.Sliders) != 1 || doc.Sliders[0].Config.Radius != 100 {
		t.Fatalf("sliders = %+v", doc.Sliders)
	}
	if !strings.HasSuffix(doc.Sliders[0].BackgroundPath, "z") {
		t.Error("background should be closed")
	}
	if doc.Rotation != -90 {
		t.Errorf("rotation = %v", doc.Rotation)
	}
}

func TestStyleValidate(t *testing.T) {
	if err := DefaultStyle().Validate(); err != nil {
		t.Errorf("default style invalid: %v", err)
	}
	bad := DefaultStyle()
	bad.HandleColor = `red" onload="x`
	if err := bad.Validate(); err == nil {
		t.Error("attribute injection should be rejected")
	}
}

func sameRGB(a, b color.Color) bool {
	ar, ag, ab, _ := a.RGBA()
	br, bg, bb, _ := b.RGBA()
	near := func(x, y uint32) bool { return max(x, y)-min(x, y) < 0x0200 }
	return near(ar, br) && near(ag, bg) && near(ab, bb)
}
