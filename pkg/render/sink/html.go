package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/arcslider/pkg/slider"
)

const pageCSS = `
    body { font-family: system-ui, sans-serif; display: flex; justify-content: center; margin-top: 40px; }
    .slider__data { touch-action: none; user-select: none; }
    .sliderHandle { cursor: grab; }
    .slider__values { margin-top: 12px; font-variant-numeric: tabular-nums; }`

// pageJS forwards pointer events to the server in delivery order and
// applies the frames it returns. mouseup/touchend are observed on window so
// a drag that leaves the widget still ends.
const pageJS = `
    (function () {
      const cfg = JSON.parse(document.getElementById('arcslider-config').textContent);
      const container = document.querySelector('.slider__data');
      const url = cfg.endpoint + '/api/widgets/' + cfg.instance + '/pointer';
      let queue = Promise.resolve();
      let dragging = false;

      function position(e) {
        const rect = container.getBoundingClientRect();
        const bounds = { left: rect.left, top: rect.top };
        if (e.touches) {
          const touches = Array.from(e.touches).map(t => ({ pageX: t.pageX, pageY: t.pageY }));
          return { kind: 'touch', touches: touches, bounds: bounds };
        }
        return { kind: 'mouse', clientX: e.clientX, clientY: e.clientY, bounds: bounds };
      }

      function apply(frames) {
        (frames || []).forEach(f => {
          const g = document.getElementById('slider-' + f.slider_id);
          if (!g) return;
          g.querySelector('.sliderSinglePathActive').setAttribute('d', f.active_path);
          const h = g.querySelector('.sliderHandle');
          h.setAttribute('cx', f.handle.x);
          h.setAttribute('cy', f.handle.y);
          const out = document.querySelector('[data-value-for="' + f.slider_id + '"]');
          if (out) out.textContent = f.value.toFixed(1);
        });
      }

      function send(type, e) {
        const body = Object.assign({ type: type }, e ? position(e) : {});
        queue = queue
          .then(() => fetch(url, {
            method: 'POST',
            headers: { 'Content-Type': 'application/json' },
            body: JSON.stringify(body),
          }))
          .then(r => r.ok ? r.json() : { frames: [] })
          .then(res => apply(res.frames))
          .catch(() => {});
      }

      function start(e) { dragging = true; send('down', e); }
      function move(e) { if (!dragging) return; e.preventDefault(); send('move', e); }
      function end(type) { return () => { if (!dragging) return; dragging = false; send(type); }; }

      container.addEventListener('mousedown', start, false);
      container.addEventListener('touchstart', start, false);
      container.addEventListener('mousemove', move, false);
      container.addEventListener('touchmove', move, { passive: false });
      window.addEventListener('mouseup', end('up'), false);
      window.addEventListener('touchend', end('up'), false);
      window.addEventListener('touchcancel', end('cancel'), false);
    })();`

// HTMLOption configures page rendering.
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	title    string
	selector string
	endpoint string
	instance string
	svgOpts  []SVGOption
}

// WithTitle sets the page title.
func WithTitle(t string) HTMLOption { return func(r *htmlRenderer) { r.title = t } }

// WithContainerSelector names the element wrapping the widget. "#id" and
// ".class" selectors become the matching attribute; anything else is kept
// as a data attribute.
func WithContainerSelector(sel string) HTMLOption {
	return func(r *htmlRenderer) { r.selector = sel }
}

// WithInstance sets the server endpoint and widget instance the page talks to.
func WithInstance(endpoint, id string) HTMLOption {
	return func(r *htmlRenderer) { r.endpoint, r.instance = strings.TrimSuffix(endpoint, "/"), id }
}

// WithHTMLSVGOptions passes options through to the embedded SVG.
func WithHTMLSVGOptions(opts ...SVGOption) HTMLOption {
	return func(r *htmlRenderer) { r.svgOpts = opts }
}

// RenderHTML renders an interactive page for c. Without WithInstance the
// page is static.
func RenderHTML(c *slider.Controller, opts ...HTMLOption) ([]byte, error) {
	r := htmlRenderer{title: "arcslider"}
	for _, opt := range opts {
		opt(&r)
	}

	svgOpts := append([]SVGOption{WithoutXMLNS()}, r.svgOpts...)
	svg := RenderSVG(c, svgOpts...)

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n  <meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(r.title))
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n</head>\n<body>\n", pageCSS)
	fmt.Fprintf(&buf, "<div %s>\n<div class=\"slider__data\">\n", containerAttr(r.selector))
	buf.Write(svg)
	buf.WriteString("</div>\n<div class=\"slider__values\">\n")
	for _, f := range c.Frames() {
		fmt.Fprintf(&buf, "  <div>%s: <output data-value-for=\"%s\">%.1f</output></div>\n",
			html.EscapeString(f.SliderID), html.EscapeString(f.SliderID), f.Value)
	}
	buf.WriteString("</div>\n</div>\n")

	if r.instance != "" {
		cfg, err := json.Marshal(map[string]string{"endpoint": r.endpoint, "instance": r.instance})
		if err != nil {
			return nil, fmt.Errorf("encode page config: %w", err)
		}
		fmt.Fprintf(&buf, "<script type=\"application/json\" id=\"arcslider-config\">%s</script>\n", cfg)
		fmt.Fprintf(&buf, "<script>%s\n</script>\n", pageJS)
	}

	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

func containerAttr(sel string) string {
	switch {
	case strings.HasPrefix(sel, "#") && len(sel) > 1:
		return fmt.Sprintf(`id="%s"`, html.EscapeString(sel[1:]))
	case strings.HasPrefix(sel, ".") && len(sel) > 1:
		return fmt.Sprintf(`class="%s"`, html.EscapeString(sel[1:]))
	case sel != "":
		return fmt.Sprintf(`data-container="%s"`, html.EscapeString(sel))
	default:
		return `class="slider"`
	}
}
