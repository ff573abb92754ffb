package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeading_Rotation(t *testing.T) {
	tests := []struct {
		h                     Heading
		right, left, opposite Heading
	}{
		{North, East, West, South},
		{East, South, North, West},
		{South, West, East, North},
		{West, North, South, East},
	}

	for _, tt := range tests {
		t.Run(tt.h.String(), func(t *testing.T) {
			assert.Equal(t, tt.right, tt.h.Right())
			assert.Equal(t, tt.left, tt.h.Left())
			assert.Equal(t, tt.opposite, tt.h.Opposite())
			assert.Equal(t, tt.h, tt.h.Right().Left())
		})
	}
}

func TestHeading_DeltaNorthIsPositiveY(t *testing.T) {
	c := Cell{X: 3, Y: 3}
	assert.Equal(t, Cell{X: 3, Y: 4}, c.Step(North))
	assert.Equal(t, Cell{X: 4, Y: 3}, c.Step(East))
	assert.Equal(t, Cell{X: 3, Y: 2}, c.Step(South))
	assert.Equal(t, Cell{X: 2, Y: 3}, c.Step(West))
}

func TestParseHeading(t *testing.T) {
	for _, s := range []string{"north", "N", " North "} {
		h, err := ParseHeading(s)
		require.NoError(t, err, s)
		assert.Equal(t, North, h)
	}

	h, err := ParseHeading("w")
	require.NoError(t, err)
	assert.Equal(t, West, h)

	_, err = ParseHeading("up")
	assert.Error(t, err)
}

func TestSize_Goals(t *testing.T) {
	s := Size{W: 4, H: 4}
	goals := s.Goals()
	assert.Equal(t, []Cell{{1, 1}, {2, 1}, {1, 2}, {2, 2}}, goals)

	for _, g := range goals {
		assert.True(t, s.IsGoal(g), "goal %v", g)
	}
	assert.False(t, s.IsGoal(Cell{0, 0}))
	assert.False(t, s.IsGoal(Cell{3, 2}))

	big := DefaultSize.Goals()
	assert.Contains(t, big, Cell{7, 7})
	assert.Contains(t, big, Cell{8, 8})
}

func TestSize_ContainsAndIndex(t *testing.T) {
	s := Size{W: 4, H: 6}
	assert.True(t, s.Contains(Cell{0, 0}))
	assert.True(t, s.Contains(Cell{3, 5}))
	assert.False(t, s.Contains(Cell{4, 0}))
	assert.False(t, s.Contains(Cell{0, 6}))
	assert.False(t, s.Contains(Cell{-1, 0}))

	for i := 0; i < s.Area(); i++ {
		assert.Equal(t, i, s.Index(s.CellAt(i)))
	}

	assert.True(t, s.Even())
	assert.False(t, Size{W: 5, H: 4}.Even())
	assert.False(t, Size{}.Even())
}

func TestWallMask(t *testing.T) {
	var m WallMask
	assert.False(t, m.Has(North))

	m = m.With(North).With(West)
	assert.True(t, m.Has(North))
	assert.True(t, m.Has(West))
	assert.False(t, m.Has(East))
	assert.Equal(t, 2, m.Count())
	assert.Equal(t, WallNorth|WallWest, m)
	assert.Equal(t, m, m.With(North), "setting an existing bit is a no-op")
	assert.Equal(t, 4, WallAll.Count())
}

func TestQueue_FIFOAndBound(t *testing.T) {
	q := NewQueue(3)
	assert.True(t, q.Empty())

	require.True(t, q.Push(Cell{0, 0}))
	require.True(t, q.Push(Cell{1, 0}))
	require.True(t, q.Push(Cell{2, 0}))
	assert.False(t, q.Push(Cell{3, 0}), "push beyond capacity must be rejected")
	assert.Equal(t, 3, q.Len())

	c, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, Cell{0, 0}, c)

	// Wrap around the ring
	require.True(t, q.Push(Cell{4, 0}))

	var got []Cell
	for !q.Empty() {
		c, _ := q.Pop()
		got = append(got, c)
	}
	assert.Equal(t, []Cell{{1, 0}, {2, 0}, {4, 0}}, got)

	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestQueue_Reset(t *testing.T) {
	q := NewQueue(2)
	q.Push(Cell{1, 1})
	q.Reset()
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 2, q.Cap())
	assert.True(t, q.Push(Cell{2, 2}))
	assert.True(t, q.Push(Cell{3, 3}))
}
