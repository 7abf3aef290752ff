package slider

import (
	"fmt"
	"math"

	"github.com/matzehuels/arcslider/pkg/geometry"
)

// Controller owns the sliders of one widget and the interaction state
// machine shared by them.
//
// A Controller is not safe for concurrent use. Hosts with more than one
// goroutine delivering events must serialize calls.
type Controller struct {
	viewport    Viewport
	states      []*State
	byID        map[string]*State
	interaction Interaction
}

// NewController creates a controller in the Idle state with one State per
// configured slider.
func NewController(w Widget) *Controller {
	w = w.Normalized()
	c := &Controller{
		viewport:    w.Viewport,
		states:      make([]*State, 0, len(w.Sliders)),
		byID:        make(map[string]*State, len(w.Sliders)),
		interaction: Idle{},
	}
	for _, cfg := range w.Sliders {
		s := NewState(cfg)
		c.states = append(c.states, s)
		c.byID[cfg.ID] = s
	}
	return c
}

// Viewport returns the drawing area the controller computes geometry for.
func (c *Controller) Viewport() Viewport { return c.viewport }

// Interaction returns the current interaction state.
func (c *Controller) Interaction() Interaction { return c.interaction }

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool {
	_, ok := c.interaction.(Dragging)
	return ok
}

// ActiveID returns the ID of the slider being dragged, or "" when idle.
func (c *Controller) ActiveID() string {
	if d, ok := c.interaction.(Dragging); ok {
		return d.SliderID
	}
	return ""
}

// State returns the state of the slider with the given ID.
func (c *Controller) State(id string) (*State, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// States returns all slider states in configuration order.
func (c *Controller) States() []*State {
	return append([]*State(nil), c.states...)
}

// Frames returns the current frame of every slider.
func (c *Controller) Frames() []Frame {
	center := c.viewport.Center()
	frames := make([]Frame, len(c.states))
	for i, s := range c.states {
		frames[i] = s.Frame(center)
	}
	return frames
}

// PointerDown starts a drag at container-local point p and returns the
// frame for that position, so a click without movement still moves the
// handle. It is a no-op while a drag is already in progress or when the
// widget has no sliders.
func (c *Controller) PointerDown(p geometry.Point) (Frame, bool) {
	if c.Dragging() {
		return Frame{}, false
	}
	s := c.pick(p)
	if s == nil {
		return Frame{}, false
	}
	c.interaction = Dragging{SliderID: s.ID()}
	return s.track(c.viewport.Center(), p), true
}

// PointerMove updates the dragged slider to follow p. The boolean is false
// when idle; callers should only suppress the host's default scrolling and
// selection handling when it is true.
func (c *Controller) PointerMove(p geometry.Point) (Frame, bool) {
	d, ok := c.interaction.(Dragging)
	if !ok {
		return Frame{}, false
	}
	s, ok := c.byID[d.SliderID]
	if !ok {
		c.interaction = Idle{}
		return Frame{}, false
	}
	return s.track(c.viewport.Center(), p), true
}

// PointerUp ends the drag. It reports whether a drag was in progress.
// Pointer-cancel is handled identically.
func (c *Controller) PointerUp() bool {
	if !c.Dragging() {
		return false
	}
	c.interaction = Idle{}
	return true
}

// Handle normalizes a raw event and dispatches it by phase. Up and cancel
// never produce a frame and ignore ev, which may be nil.
func (c *Controller) Handle(phase Phase, ev Event, b Bounds) (Frame, bool, error) {
	switch phase {
	case PhaseUp, PhaseCancel:
		return Frame{}, c.PointerUp(), nil
	case PhaseDown, PhaseMove:
	default:
		return Frame{}, false, fmt.Errorf("unknown pointer phase %q", phase)
	}

	if ev == nil {
		return Frame{}, false, fmt.Errorf("%s event: missing position", phase)
	}
	p, err := Relative(ev, b)
	if err != nil {
		return Frame{}, false, fmt.Errorf("%s event: %w", phase, err)
	}
	if phase == PhaseDown {
		f, ok := c.PointerDown(p)
		return f, ok, nil
	}
	f, ok := c.PointerMove(p)
	return f, ok, nil
}

// pick chooses the slider whose ring lies closest to p.
func (c *Controller) pick(p geometry.Point) *State {
	if len(c.states) == 0 {
		return nil
	}
	if len(c.states) == 1 {
		return c.states[0]
	}
	dist := p.Distance(c.viewport.Center())
	best := c.states[0]
	bestGap := math.Abs(dist - best.Radius())
	for _, s := range c.states[1:] {
		if gap := math.Abs(dist - s.Radius()); gap < bestGap {
			best, bestGap = s, gap
		}
	}
	return best
}
