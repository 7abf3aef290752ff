package slider

import (
	"errors"

	"github.com/matzehuels/arcslider/pkg/geometry"
)

// ErrNoTouchPoints is returned for a touch event that carries no touches.
var ErrNoTouchPoints = errors.New("touch event has no touch points")

// Event is a raw pointer event as delivered by the host: a MouseEvent or a
// TouchEvent.
type Event interface {
	position() (x, y float64, err error)
}

// MouseEvent carries viewport-relative client coordinates.
type MouseEvent struct {
	ClientX float64 `json:"clientX"`
	ClientY float64 `json:"clientY"`
}

func (e MouseEvent) position() (float64, float64, error) {
	return e.ClientX, e.ClientY, nil
}

// TouchPoint is a single touch in page coordinates.
type TouchPoint struct {
	PageX float64 `json:"pageX"`
	PageY float64 `json:"pageY"`
}

// TouchEvent carries the active touches. Only the first one is read.
type TouchEvent struct {
	Touches []TouchPoint `json:"touches"`
}

func (e TouchEvent) position() (float64, float64, error) {
	if len(e.Touches) == 0 {
		return 0, 0, ErrNoTouchPoints
	}
	return e.Touches[0].PageX, e.Touches[0].PageY, nil
}

// Bounds is the top-left corner of the container in the event's coordinate space.
type Bounds struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

// Relative converts ev into container-local coordinates.
func Relative(ev Event, b Bounds) (geometry.Point, error) {
	x, y, err := ev.position()
	if err != nil {
		return geometry.Point{}, err
	}
	return geometry.Point{X: x - b.Left, Y: y - b.Top}, nil
}
