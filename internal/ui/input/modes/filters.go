package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"timeline/internal/ui/input/types"
)

type FiltersMode struct {
	keys types.KeyMap
}

func NewFiltersMode(keys types.KeyMap) *FiltersMode {
	return &FiltersMode{keys: keys}
}

func (m *FiltersMode) Name() string {
	return types.ModeFilters.String()
}

func (m *FiltersMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *FiltersMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *FiltersMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	return listKeys(msg, m.keys)
}
