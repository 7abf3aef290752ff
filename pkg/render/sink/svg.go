package sink

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/arcslider/pkg/slider"
)

// groupRotation turns the slider group so that angle 0 sits at 12 o'clock.
const groupRotation = -90.0

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style Style
	embed bool
}

// WithStyle sets the visual style.
func WithStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s.WithDefaults() } }

// WithoutXMLNS omits the namespace attribute for inline embedding in HTML.
func WithoutXMLNS() SVGOption { return func(r *svgRenderer) { r.embed = true } }

// RenderSVG renders the current state of every slider in c.
func RenderSVG(c *slider.Controller, opts ...SVGOption) []byte {
	r := svgRenderer{style: DefaultStyle()}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	r.write(&buf, c)
	return buf.Bytes()
}

func (r *svgRenderer) write(buf *bytes.Buffer, c *slider.Controller) {
	vp := c.Viewport()
	center := vp.Center()

	ns := ` xmlns="http://www.w3.org/2000/svg"`
	if r.embed {
		ns = ""
	}
	fmt.Fprintf(buf, `<svg%s viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		ns, num(vp.Width), num(vp.Height), num(vp.Width), num(vp.Height))

	for _, s := range c.States() {
		f := s.Frame(center)
		fmt.Fprintf(buf, `  <g class="sliderSingle" id="slider-%s" data-slider="%s" data-radius="%s" transform="rotate(%s,%s,%s)">`+"\n",
			s.ID(), s.ID(), num(s.Radius()), num(groupRotation), num(center.X), num(center.Y))
		fmt.Fprintf(buf, `    <path class="sliderSinglePath" d="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
			s.Background(center), r.style.TrackColor, num(r.style.StrokeWidth))
		fmt.Fprintf(buf, `    <path class="sliderSinglePathActive" d="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
			f.ActivePath, r.style.ActiveColor, num(r.style.StrokeWidth))
		fmt.Fprintf(buf, `    <circle class="sliderHandle" cx="%s" cy="%s" r="%s" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
			num(f.Handle.X), num(f.Handle.Y), num(r.style.HandleRadius), r.style.HandleColor, r.style.HandleStroke)
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
