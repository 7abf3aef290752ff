package pipeline

import (
	"fmt"

	"github.com/matzehuels/arcslider/pkg/render/sink"
	"github.com/matzehuels/arcslider/pkg/slider"
)

// Render renders every requested format from a fresh controller, i.e. with
// each slider at its initial angle. opts must already be validated.
func Render(opts Options) (map[string][]byte, error) {
	c := slider.NewController(opts.Widget)
	return RenderController(c, opts)
}

// RenderController renders the current state of c. The server renders live
// instances through it; their artifacts are never cached.
func RenderController(c *slider.Controller, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(c, sink.WithStyle(opts.Style))
		case FormatPNG:
			data, err = sink.RenderPNG(c, sink.WithPNGStyle(opts.Style), sink.WithScale(opts.Scale))
		case FormatJSON:
			data, err = sink.RenderJSON(c, opts.Widget.ContainerSelector)
		case FormatHTML:
			htmlOpts := []sink.HTMLOption{
				sink.WithContainerSelector(opts.Widget.ContainerSelector),
				sink.WithHTMLSVGOptions(sink.WithStyle(opts.Style)),
			}
			if opts.Title != "" {
				htmlOpts = append(htmlOpts, sink.WithTitle(opts.Title))
			}
			data, err = sink.RenderHTML(c, htmlOpts...)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
