// Package pkg provides the libraries behind arcslider, a circular range
// slider engine.
//
// # Overview
//
// A widget is a set of concentric rings drawn in a square viewport. Each
// ring is one slider; dragging anywhere on the widget moves the slider whose
// ring lies nearest to the pointer. The pkg directory is organized as:
//
//  1. [geometry] - Angle and arc math (polar conversion, SVG arc paths)
//  2. [slider] - Slider configuration, state and the pointer controller
//  3. [render/sink] - Output formats (SVG, PNG, JSON, HTML)
//  4. [pipeline] - Validate → render → cache orchestration
//  5. [cache], [session], [config] - Infrastructure
//
// # Architecture
//
//	TOML config / JSON widget
//	         ↓
//	    [config] package (defaults + validation)
//	         ↓
//	    [slider] package (controller, pointer events)
//	         ↓
//	    [render/sink] package (svg, png, json, html)
//	         ↓
//	    [pipeline] + [cache] (hashing, artifact reuse)
//
// # Quick Start
//
//	w := slider.Widget{Sliders: []slider.Config{
//	    slider.NewConfig(slider.WithID("volume"), slider.WithRadius(100)),
//	}}.Normalized()
//	c := slider.NewController(w)
//
//	// Click to the right of the center: a quarter turn.
//	frame, _ := c.PointerDown(geometry.Point{X: 250, Y: 150})
//	c.PointerUp()
//
//	svg := sink.RenderSVG(c, sink.WithStyle(sink.DefaultStyle()))
//
// # Main Packages
//
// [geometry] - Pure functions. Angles are measured clockwise from 12
// o'clock for pointers, and from 3 o'clock for drawing; the widget group is
// rotated by -90° so the two agree on screen.
//
// [slider] - [slider.Controller] owns one [slider.State] per ring and a
// tagged interaction (idle or dragging). It is not safe for concurrent use;
// [session] wraps it with a mutex for the server.
//
// [pipeline] - Used by both the CLI and the HTTP server. Artifacts are keyed
// by a hash of the widget, style and title, so unchanged widgets are served
// from [cache].
//
// [observability] - Hook registries for render, cache, interaction and
// server events. Defaults are no-ops.
//
// # Testing
//
//	go test ./pkg/...                  # All tests
//	go test ./pkg/geometry/...         # Specific package
//	go test -run Example ./pkg/...     # Examples only
//
// Redis and MongoDB cache tests run only when ARCSLIDER_TEST_REDIS_ADDR or
// ARCSLIDER_TEST_MONGO_URI is set.
//
// [geometry]: https://pkg.go.dev/github.com/matzehuels/arcslider/pkg/geometry
// [slider]: https://pkg.go.dev/github.com/matzehuels/arcslider/pkg/slider
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/arcslider/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/arcslider/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/arcslider/pkg/cache
// [session]: https://pkg.go.dev/github.com/matzehuels/arcslider/pkg/session
// [config]: https://pkg.go.dev/github.com/matzehuels/arcslider/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/arcslider/pkg/observability
package pkg
