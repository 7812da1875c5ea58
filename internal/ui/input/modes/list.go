package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"timeline/internal/ui/input/types"
)

// listKeys maps the keys shared by the roving lists (event list and
// filter bar) to actions. Both axes move focus; the lists wrap.
func listKeys(msg tea.KeyMsg, keys types.KeyMap) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Left):
		return []types.Action{types.NavigateAction{Direction: types.DirectionPrevious}}, true
	case key.Matches(msg, keys.Down), key.Matches(msg, keys.Right):
		return []types.Action{types.NavigateAction{Direction: types.DirectionNext}}, true
	case key.Matches(msg, keys.Home):
		return []types.Action{types.NavigateAction{Direction: types.DirectionFirst}}, true
	case key.Matches(msg, keys.End):
		return []types.Action{types.NavigateAction{Direction: types.DirectionLast}}, true
	case key.Matches(msg, keys.Activate):
		return []types.Action{types.ActivateAction{}}, true
	case key.Matches(msg, keys.Tab):
		return []types.Action{types.TabAction{}}, true
	case key.Matches(msg, keys.ShiftTab):
		return []types.Action{types.TabAction{Backward: true}}, true
	case key.Matches(msg, keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	case key.Matches(msg, keys.Quit):
		return []types.Action{types.QuitAction{}}, true
	}
	return nil, false
}
