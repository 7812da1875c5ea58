package input

import (
	tea "github.com/charmbracelet/bubbletea"

	"timeline/internal/ui/input/modes"
	"timeline/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	keys        types.KeyMap
}

func New(keys types.KeyMap) *Handler {
	h := &Handler{
		currentMode: types.ModeTimeline,
		modes:       make(map[types.Mode]types.ModeHandler),
		keys:        keys,
	}

	// Register all mode handlers
	h.modes[types.ModeTimeline] = modes.NewTimelineMode(keys)
	h.modes[types.ModeFilters] = modes.NewFiltersMode(keys)
	h.modes[types.ModeModal] = modes.NewModalMode(keys)
	h.modes[types.ModeHelp] = modes.NewHelpMode(keys)

	return h
}

// HandleKey runs msg through the current mode. Mode changes requested by
// the mode are applied here and replaced by the Exit/Enter actions of the
// modes involved.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) []types.Action {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if !consumed {
		return nil
	}

	var allActions []types.Action
	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			allActions = append(allActions, h.switchMode(changeMode.Mode, ctx)...)
			continue
		}
		allActions = append(allActions, action)
	}
	return allActions
}

// SyncMode moves the handler to mode, running Exit/Enter when it changes
func (h *Handler) SyncMode(mode types.Mode, ctx types.Context) []types.Action {
	if mode == h.currentMode {
		return nil
	}
	return h.switchMode(mode, ctx)
}

func (h *Handler) switchMode(mode types.Mode, ctx types.Context) []types.Action {
	var out []types.Action
	if cur := h.modes[h.currentMode]; cur != nil {
		out = append(out, cur.Exit(ctx)...)
	}
	h.currentMode = mode
	if next := h.modes[h.currentMode]; next != nil {
		out = append(out, next.Enter(ctx)...)
	}
	return out
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

func (h *Handler) Keys() types.KeyMap {
	return h.keys
}

func (h *Handler) RegisterMode(mode types.Mode, handler types.ModeHandler) {
	h.modes[mode] = handler
}

func (h *Handler) Reset() {
	h.currentMode = types.ModeTimeline
}
