package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/image/vector"

	"github.com/matzehuels/arcslider/pkg/geometry"
	"github.com/matzehuels/arcslider/pkg/slider"
)

// degreesPerSegment bounds the polygon approximation error of arcs.
const degreesPerSegment = 2.0

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	style Style
	scale float64
	pivot geometry.Point // center of the group rotation
}

// WithPNGStyle sets the visual style.
func WithPNGStyle(s Style) PNGOption { return func(r *pngRenderer) { r.style = s.WithDefaults() } }

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// RenderPNG rasterizes the current state of c. Unlike the SVG sink it has
// no transform support, so group-space geometry is rotated into screen
// space point by point.
func RenderPNG(c *slider.Controller, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{style: DefaultStyle(), scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}

	track, err := parseColor(r.style.TrackColor)
	if err != nil {
		return nil, err
	}
	active, err := parseColor(r.style.ActiveColor)
	if err != nil {
		return nil, err
	}
	handleFill, err := parseColor(r.style.HandleColor)
	if err != nil {
		return nil, err
	}
	handleStroke, err := parseColor(r.style.HandleStroke)
	if err != nil {
		return nil, err
	}

	vp := c.Viewport()
	img := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(vp.Width*r.scale)), int(math.Ceil(vp.Height*r.scale))))
	center := vp.Center()
	r.pivot = center
	half := r.style.StrokeWidth / 2

	for _, s := range c.States() {
		f := s.Frame(center)
		outer, inner := s.Radius()+half, max(s.Radius()-half, 0)
		r.fillSector(img, center, outer, inner, 0, 360, track)
		if f.AngleDegrees > 0 {
			r.fillSector(img, center, outer, inner, 0, f.AngleDegrees, active)
		}
		r.fillSector(img, f.Handle, r.style.HandleRadius+1, 0, 0, 360, handleStroke)
		r.fillSector(img, f.Handle, r.style.HandleRadius-1, 0, 0, 360, handleFill)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// fillSector fills the annular sector between inner and outer radius around
// center (group space) from one angle to another. inner == 0 fills a pie.
func (r *pngRenderer) fillSector(dst *image.RGBA, center geometry.Point, outer, inner, from, to float64, col color.Color) {
	if outer <= 0 || to <= from {
		return
	}
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	pt := func(radius, deg float64) (float32, float32) {
		p := geometry.Rotate(geometry.PolarToCartesian(center.X, center.Y, radius, deg), r.pivot, groupRotation)
		return float32(p.X * r.scale), float32(p.Y * r.scale)
	}

	steps := int(math.Ceil((to-from)/degreesPerSegment)) + 1
	angle := func(i int) float64 { return from + (to-from)*float64(i)/float64(steps) }

	z.MoveTo(pt(outer, from))
	for i := 1; i <= steps; i++ {
		z.LineTo(pt(outer, angle(i)))
	}
	for i := steps; i >= 0; i-- {
		z.LineTo(pt(inner, angle(i)))
	}
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(col), image.Point{})
}

// parseColor accepts #rgb, #rrggbb, #rrggbbaa and SVG colour keywords.
func parseColor(s string) (color.Color, error) {
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if hex == s {
		return nil, fmt.Errorf("unknown color %q", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// HexColor normalizes a style colour to #rrggbb, dropping alpha. Terminal
// renderers use it since they only understand hex.
func HexColor(s string) (string, error) {
	c, err := parseColor(s)
	if err != nil {
		return "", err
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), nil
}
