package slider

import (
	"math"

	"github.com/matzehuels/arcslider/pkg/geometry"
)

// State is the mutable state of one rendered slider. Radius and range are
// copied from the Config at creation and never change; only the angle moves.
type State struct {
	cfg   Config
	angle float64 // sweep in degrees, within [0, 360]
}

// NewState creates the state for c, starting at InitialAngle(c) clamped
// into [0, 360].
func NewState(c Config) *State {
	return &State{cfg: c, angle: clampAngle(InitialAngle(c))}
}

// ID returns the slider identifier.
func (s *State) ID() string { return s.cfg.ID }

// Config returns the configuration the state was created from.
func (s *State) Config() Config { return s.cfg }

// Radius returns the ring radius.
func (s *State) Radius() float64 { return s.cfg.Radius }

// AngleDegrees returns the current sweep of the active arc.
func (s *State) AngleDegrees() float64 { return s.angle }

// Value returns Min + AngleDegrees/360 * (Max - Min).
func (s *State) Value() float64 { return ValueForAngle(s.cfg, s.angle) }

// Frame returns the render instruction for the current angle.
func (s *State) Frame(center geometry.Point) Frame {
	return s.frameAt(center, geometry.DegreesToRadians(s.angle))
}

// Background returns the full-ring path drawn beneath the active arc.
func (s *State) Background(center geometry.Point) string {
	return geometry.DescribeArc(center.X, center.Y, s.cfg.Radius, 0, 360)
}

// track moves the slider to follow a pointer at p and returns the new frame.
func (s *State) track(center, p geometry.Point) Frame {
	rad := geometry.PointerAngle(p.X, p.Y, center.X, center.Y) * dragScale
	s.angle = clampAngle(geometry.RadiansToDegrees(rad))
	return s.frameAt(center, rad)
}

func (s *State) frameAt(center geometry.Point, rad float64) Frame {
	r := s.cfg.Radius
	return Frame{
		SliderID:     s.cfg.ID,
		AngleDegrees: s.angle,
		Value:        s.Value(),
		ActivePath:   geometry.DescribeArc(center.X, center.Y, r, 0, s.angle),
		Handle:       geometry.PointAtAngle(rad, r, center.X, center.Y),
	}
}

// clampAngle keeps deg in [0, 360]. NaN, from an empty range, becomes 0.
func clampAngle(deg float64) float64 {
	if math.IsNaN(deg) {
		return 0
	}
	return max(0, min(360, deg))
}

// Frame is the geometry a renderer needs to redraw one slider.
// Coordinates are in group space (see package geometry).
type Frame struct {
	SliderID     string         `json:"slider_id"`
	AngleDegrees float64        `json:"angle_degrees"`
	Value        float64        `json:"value"`
	ActivePath   string         `json:"active_path"`
	Handle       geometry.Point `json:"handle"`
}
