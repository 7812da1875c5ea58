package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"timeline/internal/domain"
)

func TestNewAppStateStartsLoadingWithAllFilter(t *testing.T) {
	s := NewAppState()
	assert.True(t, s.Loading)
	assert.Equal(t, domain.AllCategories, s.ActiveFilter)
}

func TestVisibleLookup(t *testing.T) {
	s := NewAppState()
	s.Visible = []*domain.Event{{ID: "dodo"}, {ID: "moa"}}

	assert.Equal(t, []string{"dodo", "moa"}, s.VisibleIDs())
	assert.Equal(t, 1, s.IndexOf("moa"))
	assert.Equal(t, -1, s.IndexOf("quagga"))
}

func TestLoadTransitions(t *testing.T) {
	s := NewAppState()
	s.Visible = []*domain.Event{{ID: "dodo"}}

	s.SetFailed("events.json", errors.New("boom"))
	assert.False(t, s.Loading)
	assert.Error(t, s.LoadErr)
	assert.Empty(t, s.Visible)

	s.SetLoaded("events.json", 2)
	assert.NoError(t, s.LoadErr)
	assert.Equal(t, 2, s.Skipped)
}
