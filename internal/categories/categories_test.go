package categories

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"timeline/internal/domain"
)

func sample() []*domain.Event {
	return []*domain.Event{
		{ID: "dodo", Title: "Dodo", Category: "Birds"},
		{ID: "thylacine", Title: "Thylacine", Category: "Mammals"},
		{ID: "moa", Title: "Moa", Category: "Birds"},
		{ID: "mystery", Title: "Mystery"},
	}
}

func ids(events []*domain.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func TestCategoriesListAllFirstThenFirstSeen(t *testing.T) {
	ci := NewIndex(sample())

	cats := ci.Categories()
	var names []string
	var counts []int
	for _, c := range cats {
		names = append(names, c.Name)
		counts = append(counts, c.Count)
	}
	assert.Equal(t, []string{domain.AllCategories, "Birds", "Mammals", Uncategorized}, names)
	assert.Equal(t, []int{4, 2, 1, 1}, counts)
	assert.Equal(t, "Show only Birds events", cats[1].Description)
}

func TestFilterKeepsSourceOrder(t *testing.T) {
	ci := NewIndex(sample())

	assert.Equal(t, []string{"dodo", "moa"}, ids(ci.Filter("Birds")))
	assert.Equal(t, []string{"dodo", "thylacine", "moa", "mystery"}, ids(ci.Filter(domain.AllCategories)))
	assert.Empty(t, ci.Filter("Reptiles"))
}

func TestHasAndCount(t *testing.T) {
	ci := NewIndex(sample())

	assert.True(t, ci.Has(domain.AllCategories))
	assert.True(t, ci.Has("Mammals"))
	assert.False(t, ci.Has("Reptiles"))
	assert.Equal(t, 2, ci.Count("Birds"))
	assert.Equal(t, 0, ci.Count("Reptiles"))
}

func TestRebuildReplacesIndex(t *testing.T) {
	ci := NewIndex(sample())
	ci.Rebuild([]*domain.Event{{ID: "trex", Category: "Dinosaurs"}})

	assert.False(t, ci.Has("Birds"))
	assert.Equal(t, 1, ci.Count(domain.AllCategories))
	assert.Len(t, ci.Categories(), 2)
}

func TestEmptyIndex(t *testing.T) {
	ci := NewIndex(nil)
	cats := ci.Categories()
	assert.Len(t, cats, 1)
	assert.Equal(t, 0, cats[0].Count)
	assert.Empty(t, ci.Filter(domain.AllCategories))
}
