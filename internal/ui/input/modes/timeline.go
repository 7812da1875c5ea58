package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"timeline/internal/ui/input/types"
)

// scrollStep is how far PgUp/PgDn scroll the event list
const scrollStep = 5

type TimelineMode struct {
	keys types.KeyMap
}

func NewTimelineMode(keys types.KeyMap) *TimelineMode {
	return &TimelineMode{keys: keys}
}

func (m *TimelineMode) Name() string {
	return types.ModeTimeline.String()
}

func (m *TimelineMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *TimelineMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *TimelineMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.PageUp):
		return []types.Action{types.ScrollAction{Delta: -scrollStep}}, true
	case key.Matches(msg, m.keys.PageDown):
		return []types.Action{types.ScrollAction{Delta: scrollStep}}, true
	case key.Matches(msg, m.keys.Activate) && ctx.ActiveIndex() < 0:
		// Nothing focused yet, there is nothing to open
		return nil, true
	}
	return listKeys(msg, m.keys)
}
