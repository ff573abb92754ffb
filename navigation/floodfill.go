package navigation

import (
	"github.com/lixenwraith/micromouse/grid"
)

// Unreachable marks cells with no known-open path to any goal cell
const Unreachable = 1<<30 - 1

// DistanceField stores per-cell step counts to the nearest goal cell
type DistanceField struct {
	size      grid.Size
	Distances []int // Row-major, Unreachable if no known-open path

	// Reusable BFS buffer, capacity W*H
	queue *grid.Queue
}

// NewDistanceField creates a field with every cell unreachable
func NewDistanceField(size grid.Size) *DistanceField {
	f := &DistanceField{
		size:      size,
		Distances: make([]int, size.Area()),
		queue:     grid.NewQueue(size.Area()),
	}
	f.reset()
	return f
}

// Size returns the grid dimensions
func (f *DistanceField) Size() grid.Size {
	return f.size
}

func (f *DistanceField) reset() {
	for i := range f.Distances {
		f.Distances[i] = Unreachable
	}
}

// Distance returns the distance at c, Unreachable if out of bounds or unreached
func (f *DistanceField) Distance(c grid.Cell) int {
	if !f.size.Contains(c) {
		return Unreachable
	}
	return f.Distances[f.size.Index(c)]
}

// Reachable reports whether c has a finite distance
func (f *DistanceField) Reachable(c grid.Cell) bool {
	return f.Distance(c) < Unreachable
}

// Compute replaces the field with a multi-source BFS from goals over walls
//
// All goals are seeded at 0 and enqueued together. Neighbours are expanded in
// N, E, S, W order; a move A->B is allowed unless A records a wall toward B,
// and B is only updated when the candidate is strictly smaller
func (f *DistanceField) Compute(walls *WallMap, goals []grid.Cell) {
	f.reset()
	f.queue.Reset()

	for _, g := range goals {
		if !f.size.Contains(g) {
			continue
		}
		f.Distances[f.size.Index(g)] = 0
		f.queue.Push(g)
	}

	for {
		cur, ok := f.queue.Pop()
		if !ok {
			break
		}
		next := f.Distances[f.size.Index(cur)] + 1

		for _, h := range grid.Headings {
			if walls.HasWall(cur, h) {
				continue
			}
			n := cur.Step(h)
			if !f.size.Contains(n) {
				continue
			}

			nIdx := f.size.Index(n)
			if next < f.Distances[nIdx] {
				f.Distances[nIdx] = next
				f.queue.Push(n)
			}
		}
	}
}

// ReachableCount returns the number of cells with a finite distance
func (f *DistanceField) ReachableCount() int {
	n := 0
	for _, d := range f.Distances {
		if d < Unreachable {
			n++
		}
	}
	return n
}
