package ui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"timeline/internal/categories"
	"timeline/internal/config"
	"timeline/internal/domain"
	"timeline/internal/eventbus"
	"timeline/internal/logic"
	"timeline/internal/source"
	"timeline/internal/ui/handlers"
	"timeline/internal/ui/input"
	inputtypes "timeline/internal/ui/input/types"
	uilogic "timeline/internal/ui/logic"
	"timeline/internal/ui/schedule"
	"timeline/internal/ui/services"
	"timeline/internal/ui/services/announce"
	"timeline/internal/ui/services/events"
	"timeline/internal/ui/services/modal"
	"timeline/internal/ui/services/roving"
	"timeline/internal/ui/services/trap"
	"timeline/internal/ui/state"
	"timeline/internal/ui/surface"
	vm "timeline/internal/ui/viewmodels"
	"timeline/internal/ui/views"
)

// Roving list names
const (
	timelineList = "timeline"
	filterList   = "filters"
)

const (
	loadAnnounceTTL   = 2000 * time.Millisecond
	filterAnnounceTTL = 1000 * time.Millisecond

	loadedMessage = "Timeline loaded with %d events. Use arrow keys to navigate between events, Enter or Space to view details."
	closedMessage = "Modal closed. Returned to %s timeline event."

	// E2EEnv makes the first frame carry views.ReadyMarker
	E2EEnv = "TIMELINE_E2E_TEST"
)

// Options configures a Model
type Options struct {
	Config *config.Config
	Bus    eventbus.EventBus // may be nil
	Logger *slog.Logger
	Loader source.Loader // defaults to a loader using Config.Source.Timeout
	// Location overrides Config.Source.Location
	Location string
	// Scheduler runs deferred work; defaults to the Bubble Tea scheduler
	Scheduler schedule.Scheduler
}

// Model represents the UI state
type Model struct {
	bus      eventbus.EventBus
	config   *config.Config
	state    *state.AppState
	logger   *slog.Logger
	loader   source.Loader
	location string

	// Interaction layer
	doc          *surface.Document
	uiBus        *events.Bus
	teaScheduler *schedule.Tea // nil when another scheduler was injected
	announcer    *announce.Service
	timeline     *roving.Service
	filters      *roving.Service
	trap         *trap.Service
	modal        *modal.Service

	// Handlers
	store        *logic.MemoryEventStore
	index        categories.CategoryIndex
	viewport     *uilogic.Viewport
	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	viewModel    *vm.ViewModel
	inputHandler *input.Handler
	helpRenderer *HelpRenderer
	spinner      spinner.Model

	// Program reference for terminal management
	program *tea.Program
	helpOps *HelpOps
}

// NewModel creates a new UI model
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	location := opts.Location
	if location == "" {
		location = cfg.Source.Location
	}
	loader := opts.Loader
	if loader == nil {
		loader = source.NewLoader(opts.Bus, logger, cfg.Source.Timeout)
	}

	m := &Model{
		bus:      opts.Bus,
		config:   cfg,
		state:    state.NewAppState(),
		logger:   logger,
		loader:   loader,
		location: location,
		doc:      surface.NewDocument(),
		uiBus:    events.NewBus(),
		store:    logic.NewMemoryEventStore(),
		index:    categories.NewIndex(nil),
		viewport: uilogic.NewViewport(),
		renderer: views.NewRenderer(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.state.Location = location

	sched := opts.Scheduler
	if sched == nil {
		m.teaScheduler = schedule.NewTea()
		sched = m.teaScheduler
	} else if t, ok := sched.(*schedule.Tea); ok {
		m.teaScheduler = t
	}

	ctx := services.Context{Surface: m.doc, Scheduler: sched, Bus: m.uiBus, Logger: logger}
	m.announcer = announce.NewService(ctx, cfg.Accessibility.AnnounceTTL)
	m.timeline = roving.NewService(ctx, m.announcer, roving.Options{
		Name:     timelineList,
		Announce: cfg.Accessibility.AnnounceNavigation,
		Format:   eventPositionFormat,
	})
	m.filters = roving.NewService(ctx, nil, roving.Options{Name: filterList})
	m.trap = trap.NewService(ctx)
	presenter := &detailPresenter{
		doc:       m.doc,
		state:     m.state,
		store:     m.store,
		announcer: m.announcer,
		baseDir:   sourceDir(location),
		logger:    logger,
	}
	m.modal = modal.NewService(ctx, presenter, m.trap, m.announcer, modal.Options{
		SettleDelay:   cfg.Accessibility.SettleDelay,
		AnnounceTTL:   cfg.Accessibility.AnnounceTTL,
		Available:     m.eventAvailable,
		ClosedMessage: m.closedMessage,
	})

	for _, group := range []surface.ElementID{vm.FiltersGroupID, vm.TimelineGroupID} {
		if err := m.doc.Append(surface.PageID, surface.Element{ID: group, Role: surface.RoleGroup}); err != nil {
			logger.Error("build page", "err", err)
		}
	}

	m.uiBus.Subscribe(roving.ActiveIndexChangedEvent{}, func(e interface{}) {
		m.onActiveIndexChanged(e.(roving.ActiveIndexChangedEvent))
	})
	m.uiBus.Subscribe(modal.StateChangedEvent{}, func(e interface{}) {
		m.onModalStateChanged(e.(modal.StateChangedEvent))
	})
	m.uiBus.Subscribe(announce.AnnouncedEvent{}, func(e interface{}) {
		a := e.(announce.AnnouncedEvent).Announcement
		m.publish(eventbus.AnnouncedEvent{Politeness: a.Politeness.String(), Message: a.Message})
	})

	keys := inputtypes.DefaultKeyMap()
	m.inputHandler = input.New(keys)
	m.helpRenderer = NewHelpRenderer(keys)
	m.eventHandler = handlers.NewEventHandler(m.state, m.store, m.index, logger)
	m.viewModel = vm.NewViewModel(m.state, m.doc, m.store, m.index, m.timeline, m.filters, m.viewport)
	m.viewModel.SetHelp(keys)
	m.viewModel.SetHelpContent(m.helpRenderer.RenderHelpContent())
	m.viewModel.SetReadyMarker(os.Getenv(E2EEnv) == "1")
	m.viewport.SetHeight(views.ListHeight(0))

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Init starts loading the event source
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadEvents())
}

func (m *Model) loadEvents() tea.Cmd {
	loader, location := m.loader, m.location
	return func() tea.Msg {
		res, err := loader.Load(context.Background(), location)
		if err != nil {
			return EventMsg{Event: eventbus.EventsLoadFailedEvent{Location: location, Err: err}}
		}
		return EventMsg{Event: eventbus.EventsLoadedEvent{Location: res.Location, Events: res.Events, Skipped: res.Skipped}}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewModel.SetDimensions(msg.Width, msg.Height)
		m.viewport.SetHeight(views.ListHeight(msg.Height))
		m.viewport.EnsureVisible(m.timeline.ActiveIndex())

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		m.handleMouse(msg)

	case schedule.FireMsg:
		if m.teaScheduler != nil {
			m.teaScheduler.Fire(msg)
		}

	case spinner.TickMsg:
		if m.state.Loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case EventMsg:
		m.handleEvent(msg.Event)

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: fall back to the inline overlay
			m.logger.Warn("help pager failed", "err", msg.err)
			m.state.ShowHelp = true
		}

	case pauseRenderingMsg:
		m.state.InPager = true

	case resumeRenderingMsg:
		m.state.InPager = false
	}

	if m.teaScheduler != nil {
		cmds = append(cmds, m.teaScheduler.Drain())
	}
	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m *Model) View() string {
	if m.state.InPager {
		return ""
	}
	m.viewModel.SetSpinner(m.spinner.View())
	return m.renderer.Render(m.viewModel.BuildViewState())
}

// zoneMode derives the input mode from where focus is
func (m *Model) zoneMode() inputtypes.Mode {
	switch {
	case m.state.ShowHelp:
		return inputtypes.ModeHelp
	case m.modal.IsUp():
		return inputtypes.ModeModal
	case m.doc.Contains(vm.FiltersGroupID, m.doc.ActiveElement()):
		return inputtypes.ModeFilters
	default:
		return inputtypes.ModeTimeline
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	ctx := &input.ModelContext{Surface: m.doc, Timeline: m.timeline, Modal: m.modal}
	actions := m.inputHandler.SyncMode(m.zoneMode(), ctx)
	actions = append(actions, m.inputHandler.HandleKey(msg, ctx)...)

	var cmds []tea.Cmd
	for _, action := range actions {
		if cmd := m.processAction(action); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.focusedList().Navigate(roving.Direction(a.Direction))

	case inputtypes.ActivateAction:
		m.activate()

	case inputtypes.TabAction:
		m.tab(a.Backward)

	case inputtypes.ScrollAction:
		m.scroll(a.Delta)

	case inputtypes.CloseModalAction:
		m.modal.HandleEscape()

	case inputtypes.StepEventAction:
		m.stepEvent(a.Offset)

	case inputtypes.ToggleHelpAction:
		return m.toggleHelp()

	case inputtypes.QuitAction:
		m.logger.Info("quit", "forced", a.Force)
		return tea.Quit
	}
	return nil
}

func (m *Model) focusedList() *roving.Service {
	if m.inputHandler.CurrentMode() == inputtypes.ModeFilters {
		return m.filters
	}
	return m.timeline
}

func (m *Model) activate() {
	switch m.inputHandler.CurrentMode() {
	case inputtypes.ModeModal:
		switch m.doc.ActiveElement() {
		case vm.ModalCloseID:
			m.modal.RequestClose()
		case vm.ModalPrevID:
			m.stepEvent(-1)
		case vm.ModalNextID:
			m.stepEvent(1)
		}
	case inputtypes.ModeFilters:
		m.filters.ActivateCurrent()
	default:
		m.timeline.ActivateCurrent()
	}
}

// tab moves focus along the tab order; an armed trap gets the first say.
// Steps are dropped while the dialog is settling: the page underneath is
// already inert and the trap is not armed yet.
func (m *Model) tab(backward bool) {
	if m.modal.State() == modal.Opening {
		return
	}
	dir := trap.Forward
	if backward {
		dir = trap.Backward
	}
	if m.trap.HandleTabStep(dir) {
		return
	}
	next := m.doc.NextTabStop(m.doc.ActiveElement(), backward)
	if next == "" || !m.doc.Focus(next) {
		return
	}
	m.syncListFocus(next)
}

// syncListFocus tells the roving list owning id that it received focus
func (m *Model) syncListFocus(id surface.ElementID) {
	for _, list := range []*roving.Service{m.timeline, m.filters} {
		if idx := list.Set().IndexOfElement(id); idx >= 0 {
			list.OnExternalFocus(idx)
			return
		}
	}
}

func (m *Model) scroll(delta int) {
	if m.doc.ScrollLocked() {
		return
	}
	m.viewport.Scroll(delta)
}

// stepEvent shows the neighbour of the dialog's event among the listed ones
func (m *Model) stepEvent(offset int) {
	session, ok := m.modal.Session()
	if !ok {
		return
	}
	e := m.store.Neighbour(m.state.VisibleIDs(), session.Subject.ID, offset)
	if e == nil {
		return
	}
	m.modal.RequestOpen(modal.Subject{ID: e.ID, Title: e.Title})
}

func (m *Model) toggleHelp() tea.Cmd {
	if m.state.ShowHelp {
		m.state.ShowHelp = false
		return nil
	}
	if m.program != nil {
		return m.fetchHelpPager(m.helpRenderer.RenderHelpContent())
	}
	m.state.ShowHelp = true
	return nil
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scroll(-1)
		return
	case tea.MouseButtonWheelDown:
		m.scroll(1)
		return
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}

	if m.state.ShowHelp {
		m.state.ShowHelp = false
		return
	}
	vs := m.viewModel.BuildViewState()
	if m.modal.IsUp() {
		if !m.renderer.ModalRect(vs).Contains(msg.X, msg.Y) {
			m.modal.HandleBackdrop()
		}
		return
	}

	switch {
	case msg.Y == views.FilterBarLine:
		if i := m.renderer.FilterHit(vs, msg.X); i >= 0 {
			m.filters.MoveTo(i)
			m.filters.ActivateCurrent()
		}
	case msg.Y >= views.ListTop:
		if i := m.viewport.RowAt(msg.Y - views.ListTop); i >= 0 {
			m.timeline.MoveTo(i)
			m.timeline.ActivateCurrent()
		}
	}
}

// handleEvent processes domain events
func (m *Model) handleEvent(event eventbus.DomainEvent) {
	if !m.eventHandler.HandleEvent(event) {
		return
	}
	m.rebuildFilters()

	switch e := event.(type) {
	case eventbus.EventsLoadedEvent:
		filter := m.config.UI.DefaultFilter
		if !m.index.Has(filter) {
			filter = domain.AllCategories
		}
		m.applyFilter(filter, false)
		if n := m.store.Len(); n > 0 {
			m.announcer.Announce(fmt.Sprintf(loadedMessage, n), surface.Polite, loadAnnounceTTL)
		} else {
			m.announcer.Announce("No events found", surface.Polite, loadAnnounceTTL)
		}

	case eventbus.EventsLoadFailedEvent:
		m.applyFilter(domain.AllCategories, false)
		m.announcer.Announce(fmt.Sprintf("Failed to load timeline events: %v", e.Err), surface.Assertive, 0)
	}
}

// rebuildFilters renders one button per category into the filter bar
func (m *Model) rebuildFilters() {
	m.doc.Clear(vm.FiltersGroupID)

	var cats []categories.Category
	if m.state.LoadErr == nil {
		cats = m.index.Categories()
	}
	items := make([]roving.FocusableItem, 0, len(cats))
	for _, c := range cats {
		id := vm.FilterElementID(c.Name)
		el := surface.Element{ID: id, Role: surface.RoleButton, Label: fmt.Sprintf("%s (%d)", c.Name, c.Count), Focusable: true}
		if err := m.doc.Append(vm.FiltersGroupID, el); err != nil {
			m.logger.Error("add filter button", "category", c.Name, "err", err)
			continue
		}
		name := c.Name
		items = append(items, roving.FocusableItem{
			Key:        name,
			Element:    id,
			Label:      c.Description,
			OnActivate: func() { m.applyFilter(name, true) },
		})
	}
	set, err := roving.NewFocusSet(items)
	if err != nil {
		m.logger.Error("filter bar", "err", err)
		return
	}
	m.filters.Initialize(set)
	m.syncTabStops(m.filters)
}

// applyFilter lists the events of category and rebinds the timeline
func (m *Model) applyFilter(category string, byUser bool) {
	m.state.ActiveFilter = category
	m.state.Visible = nil
	if m.state.LoadErr == nil {
		m.state.Visible = m.index.Filter(category)
	}

	m.doc.Clear(vm.TimelineGroupID)
	items := make([]roving.FocusableItem, 0, len(m.state.Visible))
	for _, e := range m.state.Visible {
		id := vm.EventElementID(e.ID)
		if err := m.doc.Append(vm.TimelineGroupID, surface.Element{ID: id, Role: surface.RoleButton, Label: e.Title, Focusable: true}); err != nil {
			m.logger.Error("add timeline row", "event", e.ID, "err", err)
			continue
		}
		ev := e
		items = append(items, roving.FocusableItem{
			Key:        e.ID,
			Element:    id,
			Label:      eventLabel(e),
			OnActivate: func() { m.openEvent(ev) },
		})
	}
	set, err := roving.NewFocusSet(items)
	if err != nil {
		m.logger.Error("timeline list", "err", err)
		return
	}
	m.timeline.Initialize(set)
	m.syncTabStops(m.timeline)

	m.viewport.SetTotal(set.Len())
	if idx := m.timeline.ActiveIndex(); idx >= 0 {
		m.viewport.EnsureVisible(idx)
	} else {
		m.viewport.Scroll(-m.viewport.Offset())
	}

	if !byUser {
		return
	}
	count := set.Len()
	m.logger.Info("filter changed", "category", category, "count", count)
	m.announcer.Announce(fmt.Sprintf("Filter changed to %s. Showing %d events.", category, count), surface.Polite, filterAnnounceTTL)
	m.publish(eventbus.FilterChangedEvent{Category: category, Count: count})
	m.publish(eventbus.ConfigChangedEvent{LastFilter: category})
}

// syncTabStops keeps exactly one tab stop in list: the active item, or
// the first item while nothing is active
func (m *Model) syncTabStops(list *roving.Service) {
	set := list.Set()
	stop := list.ActiveIndex()
	if stop < 0 {
		stop = 0
	}
	for i := 0; i < set.Len(); i++ {
		item, _ := set.Item(i)
		m.doc.SetTabStop(item.Element, i == stop)
	}
}

func (m *Model) openEvent(e *domain.Event) {
	// The row becomes the trigger focus returns to on close
	if !m.doc.Contains(vm.TimelineGroupID, m.doc.ActiveElement()) {
		m.doc.Focus(vm.EventElementID(e.ID))
	}
	m.modal.RequestOpen(modal.Subject{ID: e.ID, Title: e.Title})
}

func (m *Model) onActiveIndexChanged(e roving.ActiveIndexChangedEvent) {
	switch e.Name {
	case timelineList:
		m.syncTabStops(m.timeline)
		if e.NewIndex >= 0 {
			m.viewport.EnsureVisible(e.NewIndex)
		}
	case filterList:
		m.syncTabStops(m.filters)
	}
}

func (m *Model) onModalStateChanged(e modal.StateChangedEvent) {
	switch e.To {
	case modal.Open:
		m.publish(eventbus.ModalOpenedEvent{SessionID: e.Session.ID, EventID: e.Session.Subject.ID, Title: e.Session.Subject.Title})
	case modal.Closed:
		m.publish(eventbus.ModalClosedEvent{SessionID: e.Session.ID, EventID: e.Session.Subject.ID, Aborted: e.From == modal.Opening})
	}
}

func (m *Model) eventAvailable(s modal.Subject) bool {
	return m.store.GetEvent(s.ID) != nil
}

// closedMessage names the event focus returns to
func (m *Model) closedMessage(s modal.Subject) string {
	title := s.Title
	if session, ok := m.modal.Session(); ok {
		if id, ok := vm.EventIDFromElement(session.Trigger); ok {
			if e := m.store.GetEvent(id); e != nil {
				title = e.Title
			}
		}
	}
	return fmt.Sprintf(closedMessage, title)
}

func (m *Model) publish(e eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}

func eventLabel(e *domain.Event) string {
	return fmt.Sprintf("%s, %s. %s from %s", e.Title, e.DisplayYear(), e.Category, e.Location)
}

func eventPositionFormat(index, total int, label string) string {
	return fmt.Sprintf("%s. Event %d of %d.", label, index+1, total)
}

// sourceDir is the directory relative image paths are resolved against
func sourceDir(location string) string {
	if location == "" || source.IsRemote(location) {
		return ""
	}
	return filepath.Dir(location)
}
