// Package slider owns the state and interaction logic of circular range
// sliders.
//
// A [Widget] describes one container holding one or more concentric sliders.
// [NewController] turns it into a [Controller], which keeps a [State] per
// slider and a single [Interaction] value shared by all of them: either
// [Idle] or [Dragging] a specific slider. Only one slider is dragged at a
// time, and a pointer-up anywhere ends the drag.
//
// The controller never touches a drawing surface. Every interaction step
// returns a [Frame] holding the active-arc path and handle position, and the
// rendering layer writes those into whatever it draws with.
//
// # Input
//
// Mouse and touch events are normalized at the boundary. [Relative] turns a
// [MouseEvent] or [TouchEvent] plus the container's [Bounds] into a
// container-local point; the controller only ever sees that point.
//
// # Example
//
//	c := slider.NewController(slider.Widget{
//	    Sliders: []slider.Config{slider.NewConfig(slider.WithRadius(80))},
//	})
//	frame, ok := c.PointerDown(geometry.Point{X: 230, Y: 150})
//	if ok {
//	    fmt.Println(frame.ActivePath)
//	}
//	c.PointerUp()
package slider
