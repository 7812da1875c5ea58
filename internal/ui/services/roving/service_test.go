package roving

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeline/internal/ui/schedule"
	"timeline/internal/ui/services"
	"timeline/internal/ui/services/announce"
	"timeline/internal/ui/services/events"
	"timeline/internal/ui/surface"
)

type fixture struct {
	doc       *surface.Document
	bus       *events.Bus
	svc       *Service
	activated []string
}

func newFixture(t *testing.T, titles ...string) *fixture {
	t.Helper()
	f := &fixture{doc: surface.NewDocument(), bus: events.NewBus()}
	ctx := services.Context{Surface: f.doc, Scheduler: schedule.NewManual(), Bus: f.bus}
	f.svc = NewService(ctx, announce.NewService(ctx, 0), Options{Name: "timeline", Announce: true})
	f.svc.Initialize(f.render(t, titles...))
	return f
}

func (f *fixture) render(t *testing.T, titles ...string) FocusSet {
	t.Helper()
	f.doc.Clear(surface.PageID)
	items := make([]FocusableItem, len(titles))
	for i, title := range titles {
		id := surface.ElementID("event-" + title)
		require.NoError(t, f.doc.Append(surface.PageID, surface.Element{ID: id, Role: surface.RoleButton, Focusable: true}))
		title := title
		items[i] = FocusableItem{Key: title, Element: id, Label: title, OnActivate: func() {
			f.activated = append(f.activated, title)
		}}
	}
	set, err := NewFocusSet(items)
	require.NoError(t, err)
	return set
}

func five() []string {
	return []string{"dodo", "moa", "quagga", "thylacine", "aurochs"}
}

func TestNewFocusSetRejectsDuplicateKeys(t *testing.T) {
	_, err := NewFocusSet([]FocusableItem{{Key: "a"}, {Key: "b"}, {Key: "a"}})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestNewFocusSetAssignsContiguousIndices(t *testing.T) {
	set, err := NewFocusSet([]FocusableItem{{Key: "a", Index: 7}, {Key: "b", Index: 3}})
	require.NoError(t, err)
	for i := 0; i < set.Len(); i++ {
		item, ok := set.Item(i)
		require.True(t, ok)
		assert.Equal(t, i, item.Index)
	}
	assert.Equal(t, 1, set.IndexOf("b"))
	assert.Equal(t, -1, set.IndexOf("z"))
}

func TestFiveItemSequence(t *testing.T) {
	f := newFixture(t, five()...)
	require.Equal(t, -1, f.svc.ActiveIndex())

	f.svc.MoveFirst()
	assert.Equal(t, 0, f.svc.ActiveIndex())
	f.svc.MovePrevious()
	assert.Equal(t, 4, f.svc.ActiveIndex())
	f.svc.MoveNext()
	assert.Equal(t, 0, f.svc.ActiveIndex())
	assert.Equal(t, surface.ElementID("event-dodo"), f.doc.ActiveElement())
}

func TestWrapAroundClosure(t *testing.T) {
	for n := 1; n <= 6; n++ {
		titles := make([]string, n)
		for i := range titles {
			titles[i] = fmt.Sprintf("e%d", i)
		}
		for start := 0; start < n; start++ {
			f := newFixture(t, titles...)
			f.svc.MoveTo(start)
			for i := 0; i < n; i++ {
				f.svc.MoveNext()
			}
			assert.Equal(t, start, f.svc.ActiveIndex(), "n=%d start=%d", n, start)
		}
	}
}

func TestNextThenPreviousIsIdentity(t *testing.T) {
	for n := 1; n <= 5; n++ {
		titles := make([]string, n)
		for i := range titles {
			titles[i] = fmt.Sprintf("e%d", i)
		}
		f := newFixture(t, titles...)
		for start := 0; start < n; start++ {
			f.svc.MoveTo(start)
			f.svc.MoveNext()
			f.svc.MovePrevious()
			assert.Equal(t, start, f.svc.ActiveIndex(), "n=%d start=%d", n, start)
		}
	}
}

func TestEmptySetOperationsAreNoOps(t *testing.T) {
	f := newFixture(t)

	f.svc.MoveNext()
	f.svc.MovePrevious()
	f.svc.MoveFirst()
	f.svc.MoveLast()
	f.svc.MoveTo(3)
	f.svc.ActivateCurrent()
	f.svc.OnExternalFocus(2)

	assert.Equal(t, -1, f.svc.ActiveIndex())
	assert.Empty(t, f.activated)
	assert.Equal(t, surface.ElementID(""), f.doc.ActiveElement())
}

func TestSingleItemStillMovesFocus(t *testing.T) {
	f := newFixture(t, "dodo")
	f.svc.MoveNext()
	assert.Equal(t, 0, f.svc.ActiveIndex())

	f.doc.Blur()
	f.svc.MoveNext()
	assert.Equal(t, 0, f.svc.ActiveIndex())
	assert.Equal(t, surface.ElementID("event-dodo"), f.doc.ActiveElement())
}

func TestDirectionalMovesAnnouncePosition(t *testing.T) {
	f := newFixture(t, five()...)
	f.svc.MoveNext()
	f.svc.MoveNext()
	assert.Equal(t, "item 2 of 5: moa", f.doc.LiveRegion(surface.Polite))

	f.svc.MoveLast()
	assert.Equal(t, "item 5 of 5: aurochs", f.doc.LiveRegion(surface.Polite))
}

func TestMoveToClampsOutOfRange(t *testing.T) {
	f := newFixture(t, five()...)
	f.svc.MoveTo(42)
	assert.Equal(t, 4, f.svc.ActiveIndex())
	f.svc.MoveTo(-3)
	assert.Equal(t, 0, f.svc.ActiveIndex())
}

func TestActivateCurrent(t *testing.T) {
	f := newFixture(t, five()...)
	f.svc.ActivateCurrent()
	assert.Empty(t, f.activated, "nothing is active yet")

	f.svc.MoveLast()
	f.svc.ActivateCurrent()
	assert.Equal(t, []string{"aurochs"}, f.activated)
}

func TestOnExternalFocusSyncsWithoutRefocusing(t *testing.T) {
	f := newFixture(t, five()...)
	require.True(t, f.doc.Focus("event-quagga"))

	f.svc.OnExternalFocus(2)
	assert.Equal(t, 2, f.svc.ActiveIndex())
	assert.Empty(t, f.doc.LiveHistory(), "pointer focus is not announced")

	f.doc.Blur()
	f.svc.OnExternalFocus(99)
	assert.Equal(t, 4, f.svc.ActiveIndex())
	assert.Equal(t, surface.ElementID(""), f.doc.ActiveElement(), "focus target is left alone")
}

func TestInitializeKeepsIndexForSameKeys(t *testing.T) {
	f := newFixture(t, five()...)
	f.svc.MoveTo(3)

	f.svc.Initialize(f.render(t, five()...))
	assert.Equal(t, 3, f.svc.ActiveIndex())
}

func TestInitializeClampsWhenListTruncated(t *testing.T) {
	f := newFixture(t, five()...)
	f.svc.MoveTo(3)

	f.svc.Initialize(f.render(t, "dodo", "moa"))
	assert.Equal(t, 1, f.svc.ActiveIndex())

	f.svc.Initialize(f.render(t))
	assert.Equal(t, -1, f.svc.ActiveIndex(), "an empty list has nothing to keep")
}

func TestInitializeResetsWhenListReplaced(t *testing.T) {
	f := newFixture(t, five()...)
	f.svc.MoveTo(3)

	f.svc.Initialize(f.render(t, "moa", "dodo"))
	assert.Equal(t, -1, f.svc.ActiveIndex())

	f.svc.MoveTo(1)
	f.svc.Initialize(f.render(t, "moa", "dodo", "quagga"))
	assert.Equal(t, -1, f.svc.ActiveIndex(), "a longer list is a new list")
}

func TestActiveIndexChangedEvents(t *testing.T) {
	f := newFixture(t, five()...)
	var got []ActiveIndexChangedEvent
	f.bus.Subscribe(ActiveIndexChangedEvent{}, func(e interface{}) {
		got = append(got, e.(ActiveIndexChangedEvent))
	})

	f.svc.MoveFirst()
	f.svc.MoveFirst()
	f.svc.MoveNext()

	require.Len(t, got, 2, "unchanged index publishes nothing")
	assert.Equal(t, ActiveIndexChangedEvent{Name: "timeline", OldIndex: -1, NewIndex: 0}, got[0])
	assert.Equal(t, ActiveIndexChangedEvent{Name: "timeline", OldIndex: 0, NewIndex: 1}, got[1])
}
