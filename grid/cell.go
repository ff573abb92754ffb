// Package grid holds the fixed-size addressing primitives shared by the
// navigator, the maze model and the simulator.
package grid

import "fmt"

// Cell is a grid coordinate, X grows East and Y grows North
type Cell struct {
	X, Y int
}

// Step returns the adjacent cell in direction h, which may be out of bounds
func (c Cell) Step(h Heading) Cell {
	dx, dy := h.Delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Size is the fixed dimensions of a maze grid
type Size struct {
	W, H int
}

// DefaultSize is the classic 16x16 competition maze
var DefaultSize = Size{W: 16, H: 16}

// Contains reports whether c lies within [0,W) x [0,H)
func (s Size) Contains(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < s.W && c.Y < s.H
}

// Area returns W*H
func (s Size) Area() int {
	return s.W * s.H
}

// Index returns the flat row-major index of c, caller checks bounds
func (s Size) Index(c Cell) int {
	return c.Y*s.W + c.X
}

// CellAt is the inverse of Index
func (s Size) CellAt(idx int) Cell {
	return Cell{X: idx % s.W, Y: idx / s.W}
}

// Goals returns the centre 2x2 block in seeding order
func (s Size) Goals() []Cell {
	cx, cy := s.W/2, s.H/2
	return []Cell{
		{X: cx - 1, Y: cy - 1},
		{X: cx, Y: cy - 1},
		{X: cx - 1, Y: cy},
		{X: cx, Y: cy},
	}
}

// IsGoal reports whether c is one of the centre goal cells
func (s Size) IsGoal(c Cell) bool {
	cx, cy := s.W/2, s.H/2
	return (c.X == cx-1 || c.X == cx) && (c.Y == cy-1 || c.Y == cy)
}

// Even reports whether both dimensions are positive and even
func (s Size) Even() bool {
	return s.W > 0 && s.H > 0 && s.W%2 == 0 && s.H%2 == 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}
