// Package maze models the ground-truth walls of a physical maze: generation,
// the classic ASCII text format, and shortest-path queries used for reporting.
package maze

import (
	"errors"
	"strings"

	"github.com/lixenwraith/micromouse/grid"
	"github.com/lixenwraith/micromouse/navigation"
)

var (
	ErrSize   = errors.New("maze dimensions must be positive and even")
	ErrFormat = errors.New("malformed maze text")
)

// Maze holds fully known walls, the outer boundary is always walled
type Maze struct {
	Size  grid.Size
	walls *navigation.WallMap
}

// New returns a maze with only the boundary walls
func New(size grid.Size) (*Maze, error) {
	if !size.Even() {
		return nil, ErrSize
	}
	m := &Maze{Size: size, walls: navigation.NewWallMap(size)}
	for x := 0; x < size.W; x++ {
		m.walls.SetWall(grid.Cell{X: x, Y: 0}, grid.South)
		m.walls.SetWall(grid.Cell{X: x, Y: size.H - 1}, grid.North)
	}
	for y := 0; y < size.H; y++ {
		m.walls.SetWall(grid.Cell{X: 0, Y: y}, grid.West)
		m.walls.SetWall(grid.Cell{X: size.W - 1, Y: y}, grid.East)
	}
	return m, nil
}

// HasWall reports whether side h of c is walled, any side facing outside is
func (m *Maze) HasWall(c grid.Cell, h grid.Heading) bool {
	if !m.Size.Contains(c) || !m.Size.Contains(c.Step(h)) {
		return true
	}
	return m.walls.HasWall(c, h)
}

// SetWall adds a wall on side h of c and its reciprocal
func (m *Maze) SetWall(c grid.Cell, h grid.Heading) {
	m.walls.SetWall(c, h)
}

// Walls exposes the ground-truth wall map, callers must not mutate it
func (m *Maze) Walls() *navigation.WallMap {
	return m.walls
}

// Distances floods the true maze from the goal block
func (m *Maze) Distances() *navigation.DistanceField {
	f := navigation.NewDistanceField(m.Size)
	f.Compute(m.walls, m.Size.Goals())
	return f
}

// Solve returns the shortest true path from start into the goal block,
// start included, or nil when the goal is unreachable
func (m *Maze) Solve(start grid.Cell) []grid.Cell {
	f := m.Distances()
	if !f.Reachable(start) {
		return nil
	}

	path := []grid.Cell{start}
	cur := start
	for f.Distance(cur) > 0 {
		for _, h := range grid.Headings {
			n := cur.Step(h)
			if !m.HasWall(cur, h) && f.Distance(n) == f.Distance(cur)-1 {
				cur = n
				break
			}
		}
		path = append(path, cur)
	}
	return path
}

// String renders the maze in the classic ASCII format, north row first
func (m *Maze) String() string {
	return m.Render(nil)
}

// Render draws the maze with an optional per-cell label, fitted by Label
func (m *Maze) Render(label func(c grid.Cell) string) string {
	var sb strings.Builder

	for y := m.Size.H - 1; y >= 0; y-- {
		m.renderHorizontal(&sb, y, grid.North)

		for x := 0; x < m.Size.W; x++ {
			c := grid.Cell{X: x, Y: y}
			if m.HasWall(c, grid.West) {
				sb.WriteByte('|')
			} else {
				sb.WriteByte(' ')
			}
			if label == nil {
				sb.WriteString("   ")
			} else {
				sb.WriteString(Label(label(c)))
			}
		}
		if m.HasWall(grid.Cell{X: m.Size.W - 1, Y: y}, grid.East) {
			sb.WriteByte('|')
		} else {
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	m.renderHorizontal(&sb, 0, grid.South)

	return sb.String()
}

func (m *Maze) renderHorizontal(sb *strings.Builder, y int, side grid.Heading) {
	for x := 0; x < m.Size.W; x++ {
		sb.WriteByte('+')
		if m.HasWall(grid.Cell{X: x, Y: y}, side) {
			sb.WriteString("---")
		} else {
			sb.WriteString("   ")
		}
	}
	sb.WriteString("+\n")
}

// LabelOverflow is drawn in place of a label wider than a cell
const LabelOverflow = "###"

// Label fits s into a 3-rune cell, centring short labels
// Longer labels become LabelOverflow rather than a truncated, wrong value
func Label(s string) string {
	r := []rune(s)
	switch len(r) {
	case 0:
		return "   "
	case 1:
		return " " + s + " "
	case 2:
		return s + " "
	case 3:
		return s
	}
	return LabelOverflow
}
