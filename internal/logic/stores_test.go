package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeline/internal/domain"
)

func TestReplaceKeepsOrderAndIndexesByID(t *testing.T) {
	s := NewMemoryEventStore()
	s.Replace([]*domain.Event{{ID: "moa"}, {ID: "dodo"}})

	require.Equal(t, 2, s.Len())
	assert.Equal(t, "moa", s.GetAllEvents()[0].ID)
	assert.Equal(t, "dodo", s.GetEvent("dodo").ID)
	assert.Nil(t, s.GetEvent("quagga"))

	s.Replace(nil)
	assert.Zero(t, s.Len())
	assert.Nil(t, s.GetEvent("moa"))
}

func TestGetAllEventsReturnsCopy(t *testing.T) {
	s := NewMemoryEventStore()
	s.Replace([]*domain.Event{{ID: "moa"}})

	all := s.GetAllEvents()
	all[0] = &domain.Event{ID: "changed"}
	assert.Equal(t, "moa", s.GetAllEvents()[0].ID)
}

func TestNeighbourWraps(t *testing.T) {
	s := NewMemoryEventStore()
	s.Replace([]*domain.Event{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	ids := []string{"a", "b", "c"}

	assert.Equal(t, "b", s.Neighbour(ids, "a", 1).ID)
	assert.Equal(t, "a", s.Neighbour(ids, "c", 1).ID)
	assert.Equal(t, "c", s.Neighbour(ids, "a", -1).ID)
	assert.Nil(t, s.Neighbour(ids, "z", 1))
	assert.Nil(t, s.Neighbour(nil, "a", 1))
}
