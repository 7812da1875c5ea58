package types

// Navigation directions
const (
	DirectionNext     = "next"
	DirectionPrevious = "previous"
	DirectionFirst    = "first"
	DirectionLast     = "last"
)

// Navigation actions
type NavigateAction struct {
	Direction string // one of the Direction constants
}

func (a NavigateAction) Type() string { return "navigate" }

// ActivateAction presses the focused control
type ActivateAction struct{}

func (a ActivateAction) Type() string { return "activate" }

// TabAction moves focus along the sequential tab order
type TabAction struct {
	Backward bool
}

func (a TabAction) Type() string { return "tab" }

// ScrollAction scrolls the event list without moving focus
type ScrollAction struct {
	Delta int // rows; negative scrolls up
}

func (a ScrollAction) Type() string { return "scroll" }

// Modal actions
type CloseModalAction struct{}

func (a CloseModalAction) Type() string { return "close_modal" }

// StepEventAction shows the previous or next event in the open modal
type StepEventAction struct {
	Offset int
}

func (a StepEventAction) Type() string { return "step_event" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
