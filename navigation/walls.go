package navigation

import (
	"github.com/lixenwraith/micromouse/grid"
)

// WallMap is the navigator's belief about maze walls
// Bits are only ever set: an unset bit means "no known wall", not "known open"
// Every set bit is mirrored on the in-bounds neighbour sharing the edge
type WallMap struct {
	size  grid.Size
	masks []grid.WallMask
}

// NewWallMap creates an empty wall map for the given dimensions
func NewWallMap(size grid.Size) *WallMap {
	return &WallMap{
		size:  size,
		masks: make([]grid.WallMask, size.Area()),
	}
}

// Size returns the grid dimensions
func (w *WallMap) Size() grid.Size {
	return w.size
}

// Reset clears all knowledge, only valid at run start
func (w *WallMap) Reset() {
	for i := range w.masks {
		w.masks[i] = 0
	}
}

// Mask returns the wall bits of c, zero when out of bounds
func (w *WallMap) Mask(c grid.Cell) grid.WallMask {
	if !w.size.Contains(c) {
		return 0
	}
	return w.masks[w.size.Index(c)]
}

// HasWall reports whether c has a known wall on side h
func (w *WallMap) HasWall(c grid.Cell, h grid.Heading) bool {
	return w.Mask(c).Has(h)
}

// SetWall records a wall on side h of c and the reciprocal side of its neighbour
func (w *WallMap) SetWall(c grid.Cell, h grid.Heading) {
	if !w.size.Contains(c) {
		return
	}
	w.masks[w.size.Index(c)] |= h.Bit()

	n := c.Step(h)
	if w.size.Contains(n) {
		w.masks[w.size.Index(n)] |= h.Opposite().Bit()
	}
}

// Readings are wall-presence flags relative to the current heading
type Readings struct {
	Ahead, Left, Right bool
}

// Observe folds one set of relative sensor readings taken at pose into the map
// Re-applying the same readings from the same pose leaves the map unchanged
func (w *WallMap) Observe(pose Pose, r Readings) {
	if r.Ahead {
		w.SetWall(pose.Cell, pose.Heading)
	}
	if r.Left {
		w.SetWall(pose.Cell, pose.Heading.Left())
	}
	if r.Right {
		w.SetWall(pose.Cell, pose.Heading.Right())
	}
}

// Known returns the number of cells with at least one recorded wall
func (w *WallMap) Known() int {
	n := 0
	for _, m := range w.masks {
		if m != 0 {
			n++
		}
	}
	return n
}

// Clone returns an independent copy
func (w *WallMap) Clone() *WallMap {
	masks := make([]grid.WallMask, len(w.masks))
	copy(masks, w.masks)
	return &WallMap{size: w.size, masks: masks}
}

// Equal reports whether both maps record the same walls
func (w *WallMap) Equal(o *WallMap) bool {
	if w.size != o.size {
		return false
	}
	for i := range w.masks {
		if w.masks[i] != o.masks[i] {
			return false
		}
	}
	return true
}
