package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode. The mode follows the focus zone: the
// event list, the filter bar, the detail modal or the inline help.
type Mode int

const (
	ModeTimeline Mode = iota
	ModeFilters
	ModeModal
	ModeHelp
)

func (m Mode) String() string {
	switch m {
	case ModeFilters:
		return "filters"
	case ModeModal:
		return "dialog"
	case ModeHelp:
		return "help"
	default:
		return "timeline"
	}
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	ActiveIndex() int
	TotalItems() int
	FocusedElement() string
	ModalUp() bool
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
