package slider

// Interaction is the pointer state of a controller: Idle or Dragging.
type Interaction interface {
	isInteraction()
}

// Idle means no pointer is down.
type Idle struct{}

// Dragging means the pointer went down on SliderID and has not been released.
type Dragging struct {
	SliderID string
}

func (Idle) isInteraction()     {}
func (Dragging) isInteraction() {}

// Phase identifies a step of a pointer gesture.
type Phase string

// Pointer phases.
const (
	PhaseDown   Phase = "down"
	PhaseMove   Phase = "move"
	PhaseUp     Phase = "up"
	PhaseCancel Phase = "cancel"
)

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool {
	switch p {
	case PhaseDown, PhaseMove, PhaseUp, PhaseCancel:
		return true
	}
	return false
}
