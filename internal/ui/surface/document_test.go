package surface

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPage(t *testing.T) *Document {
	t.Helper()
	d := NewDocument()
	require.NoError(t, d.Append(PageID, Element{ID: "filters", Role: RoleGroup}))
	require.NoError(t, d.Append("filters", Element{ID: "f-all", Role: RoleButton, Focusable: true, TabStop: true}))
	require.NoError(t, d.Append("filters", Element{ID: "f-birds", Role: RoleButton, Focusable: true}))
	require.NoError(t, d.Append(PageID, Element{ID: "list", Role: RoleGroup}))
	require.NoError(t, d.Append("list", Element{ID: "e1", Role: RoleButton, Focusable: true, TabStop: true}))
	require.NoError(t, d.Append("list", Element{ID: "e2", Role: RoleButton, Focusable: true}))
	return d
}

func TestAppendRejectsDuplicatesAndMissingParents(t *testing.T) {
	d := buildPage(t)
	assert.ErrorIs(t, d.Append(PageID, Element{ID: "e1"}), ErrElementExists)
	assert.ErrorIs(t, d.Append("nope", Element{ID: "x"}), ErrNoSuchElement)
}

func TestFocusRequiresFocusableEnabledElement(t *testing.T) {
	d := buildPage(t)

	assert.False(t, d.Focus("list"), "groups are not focusable")
	assert.False(t, d.Focus("missing"))
	assert.True(t, d.Focus("e2"))
	assert.Equal(t, ElementID("e2"), d.ActiveElement())

	d.SetDisabled("e2", true)
	assert.Equal(t, ElementID(""), d.ActiveElement(), "disabling the focused element blurs it")
	assert.False(t, d.Focus("e2"))
}

func TestRemoveDropsSubtreeAndFocus(t *testing.T) {
	d := buildPage(t)
	require.True(t, d.Focus("e1"))

	d.Remove("list")

	assert.False(t, d.Exists("e1"))
	assert.False(t, d.Exists("e2"))
	assert.Equal(t, ElementID(""), d.ActiveElement())
	assert.False(t, d.Contains(PageID, "e1"))
}

func TestInteractiveIsTreeOrdered(t *testing.T) {
	d := buildPage(t)
	assert.Equal(t, []ElementID{"f-all", "f-birds", "e1", "e2"}, d.Interactive(PageID))
	assert.Equal(t, []ElementID{"e1", "e2"}, d.Interactive("list"))
	assert.Empty(t, d.Interactive(ModalRootID))
}

func TestNextTabStopWrapsAndSkipsNonStops(t *testing.T) {
	d := buildPage(t)

	assert.Equal(t, ElementID("f-all"), d.NextTabStop("", false))
	assert.Equal(t, ElementID("e1"), d.NextTabStop("", true))
	assert.Equal(t, ElementID("e1"), d.NextTabStop("f-all", false))
	assert.Equal(t, ElementID("f-all"), d.NextTabStop("e1", false))
	assert.Equal(t, ElementID("f-all"), d.NextTabStop("e1", true))

	// e2 is focusable but not a tab stop; tab order continues from its tree position
	assert.Equal(t, ElementID("f-all"), d.NextTabStop("e2", false))
	assert.Equal(t, ElementID("e1"), d.NextTabStop("e2", true))
	assert.Equal(t, ElementID("e1"), d.NextTabStop("f-birds", false))
}

func TestLiveRegionHistoryAndObserver(t *testing.T) {
	d := NewDocument()
	var seen []LiveWrite
	d.OnLiveRegion = func(w LiveWrite) { seen = append(seen, w) }

	d.SetLiveRegion(Polite, "one")
	d.SetLiveRegion(Assertive, "two")
	d.SetLiveRegion(Polite, "")

	assert.Equal(t, "", d.LiveRegion(Polite))
	assert.Equal(t, "two", d.LiveRegion(Assertive))
	assert.Len(t, d.LiveHistory(), 3)
	assert.Equal(t, d.LiveHistory(), seen)
}

func TestLiveHistoryKeepsMostRecentWrites(t *testing.T) {
	d := NewDocument()
	total := LiveHistoryLimit + 10
	for i := 0; i < total; i++ {
		d.SetLiveRegion(Polite, fmt.Sprintf("event %d", i))
	}

	history := d.LiveHistory()
	require.Len(t, history, LiveHistoryLimit)
	assert.Equal(t, "event 10", history[0].Message)
	assert.Equal(t, fmt.Sprintf("event %d", total-1), history[len(history)-1].Message)
	assert.Equal(t, fmt.Sprintf("event %d", total-1), d.LiveRegion(Polite))
}

func TestContainsWalksAncestors(t *testing.T) {
	d := buildPage(t)
	assert.True(t, d.Contains(PageID, "e2"))
	assert.True(t, d.Contains("list", "list"))
	assert.False(t, d.Contains("filters", "e2"))
	assert.False(t, d.Contains(ModalRootID, "e2"))
}
