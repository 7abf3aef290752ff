// Package sink renders slider widgets into output formats.
//
// Each sink reads the current geometry from a [slider.Controller] and writes
// a complete document:
//
//   - [RenderSVG]: standalone SVG with one rotated group per slider
//   - [RenderHTML]: interactive page that forwards pointer events to the server
//   - [RenderPNG]: raster image produced in-process with golang.org/x/image/vector
//   - [RenderJSON]: the render instructions (paths and handle positions) as JSON
//
// All sinks share a [Style] describing colours and stroke sizes.
package sink
