package trap

import "timeline/internal/ui/surface"

// Direction of a sequential focus step
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// ActivatedEvent is published when a trap is armed
type ActivatedEvent struct {
	Root         surface.ElementID
	Elements     []surface.ElementID
	ReturnTarget surface.ElementID
}

// DeactivatedEvent is published when a trap is released
type DeactivatedEvent struct {
	Root     surface.ElementID
	Restored bool // focus went back to the return target
}
