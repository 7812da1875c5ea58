package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureVisibleScrollsMinimally(t *testing.T) {
	v := NewViewport()
	v.SetHeight(3)
	v.SetTotal(10)

	v.EnsureVisible(2)
	assert.Equal(t, 0, v.Offset())

	v.EnsureVisible(4)
	assert.Equal(t, 2, v.Offset())

	v.EnsureVisible(9)
	assert.Equal(t, 7, v.Offset())

	v.EnsureVisible(0)
	assert.Equal(t, 0, v.Offset())

	v.EnsureVisible(42)
	assert.Equal(t, 0, v.Offset(), "out of range index is ignored")
}

func TestScrollClampsToContent(t *testing.T) {
	v := NewViewport()
	v.SetHeight(4)
	v.SetTotal(6)

	assert.True(t, v.Scroll(10))
	assert.Equal(t, 2, v.Offset())
	assert.False(t, v.Scroll(1))
	assert.True(t, v.Scroll(-10))
	assert.Equal(t, 0, v.Offset())
}

func TestRangeAndRowAt(t *testing.T) {
	v := NewViewport()
	v.SetHeight(5)
	v.SetTotal(3)

	start, end := v.Range()
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)
	assert.Equal(t, 2, v.RowAt(2))
	assert.Equal(t, -1, v.RowAt(3))
	assert.Equal(t, -1, v.RowAt(-1))
	assert.False(t, v.HasAbove())
	assert.False(t, v.HasBelow())

	v.SetTotal(20)
	v.Scroll(3)
	assert.Equal(t, 4, v.RowAt(1))
	assert.True(t, v.HasAbove())
	assert.True(t, v.HasBelow())
}

func TestShrinkingListPullsOffsetBack(t *testing.T) {
	v := NewViewport()
	v.SetHeight(3)
	v.SetTotal(10)
	v.EnsureVisible(9)

	v.SetTotal(4)
	assert.Equal(t, 1, v.Offset())

	v.SetTotal(0)
	assert.Equal(t, 0, v.Offset())
}
