package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"timeline/internal/ui/input/types"
)

// ModalMode handles keys while the detail dialog is up. Tab movement is
// routed through the focus trap by the model.
type ModalMode struct {
	keys types.KeyMap
}

func NewModalMode(keys types.KeyMap) *ModalMode {
	return &ModalMode{keys: keys}
}

func (m *ModalMode) Name() string {
	return types.ModeModal.String()
}

func (m *ModalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ModalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ModalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Quit):
		return []types.Action{types.CloseModalAction{}}, true
	case key.Matches(msg, m.keys.Tab):
		return []types.Action{types.TabAction{}}, true
	case key.Matches(msg, m.keys.ShiftTab):
		return []types.Action{types.TabAction{Backward: true}}, true
	case key.Matches(msg, m.keys.Activate):
		return []types.Action{types.ActivateAction{}}, true
	case key.Matches(msg, m.keys.PrevEvent):
		return []types.Action{types.StepEventAction{Offset: -1}}, true
	case key.Matches(msg, m.keys.NextEvent):
		return []types.Action{types.StepEventAction{Offset: 1}}, true
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	}
	// Swallow everything else so the page underneath stays put
	return nil, true
}
