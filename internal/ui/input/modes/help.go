package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"timeline/internal/ui/input/types"
)

// HelpMode is active while the inline help overlay is shown
type HelpMode struct {
	keys types.KeyMap
}

func NewHelpMode(keys types.KeyMap) *HelpMode {
	return &HelpMode{keys: keys}
}

func (m *HelpMode) Name() string {
	return types.ModeHelp.String()
}

func (m *HelpMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *HelpMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *HelpMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		return []types.Action{types.ToggleHelpAction{}}, true
	}
	return nil, true
}
