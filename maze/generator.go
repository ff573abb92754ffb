package maze

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/micromouse/grid"
)

type Config struct {
	Width, Height int

	// Braiding: 0.0 (Perfect Maze/Tree) to 1.0 (No dead ends/Graph).
	// Higher values add cycles. Wall-free posts outside the goal are never created.
	Braiding float64

	Start grid.Cell // Carving origin, clamped into bounds
	Seed  int64     // Optional (0 = Random)
}

// Generate creates a connected maze with an open 2x2 goal block at the centre
func Generate(cfg Config) (*Maze, error) {
	size := grid.Size{W: cfg.Width, H: cfg.Height}
	if !size.Even() {
		return nil, ErrSize
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	c := &carver{size: size, open: make([]grid.WallMask, size.Area())}

	// Spanning tree over all cells
	c.recursiveBacktracker(clampCell(size, cfg.Start), rng)

	// Cycles, constrained so no post loses its last wall
	if cfg.Braiding > 0 {
		c.braid(cfg.Braiding, rng)
	}

	// Goal block has no internal walls
	goals := size.Goals()
	c.carve(goals[0], grid.East)
	c.carve(goals[0], grid.North)
	c.carve(goals[3], grid.West)
	c.carve(goals[3], grid.South)

	return c.build()
}

// carver tracks open sides during generation, walls are derived at the end
type carver struct {
	size grid.Size
	open []grid.WallMask
}

func (c *carver) isOpen(cell grid.Cell, h grid.Heading) bool {
	return c.open[c.size.Index(cell)].Has(h)
}

func (c *carver) carve(cell grid.Cell, h grid.Heading) {
	n := cell.Step(h)
	if !c.size.Contains(cell) || !c.size.Contains(n) {
		return
	}
	c.open[c.size.Index(cell)] |= h.Bit()
	c.open[c.size.Index(n)] |= h.Opposite().Bit()
}

func (c *carver) recursiveBacktracker(start grid.Cell, rng *rand.Rand) {
	visited := make([]bool, c.size.Area())
	visited[c.size.Index(start)] = true
	stack := []grid.Cell{start}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates := make([]grid.Heading, 0, 4)

		for _, h := range grid.Headings {
			n := curr.Step(h)
			if c.size.Contains(n) && !visited[c.size.Index(n)] {
				candidates = append(candidates, h)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		h := candidates[rng.Intn(len(candidates))]
		next := curr.Step(h)
		c.carve(curr, h)
		visited[c.size.Index(next)] = true
		stack = append(stack, next)
	}
}

func (c *carver) braid(probability float64, rng *rand.Rand) {
	for y := 0; y < c.size.H; y++ {
		for x := 0; x < c.size.W; x++ {
			cell := grid.Cell{X: x, Y: y}

			// Dead end: exactly one open side
			if c.open[c.size.Index(cell)].Count() != 1 || rng.Float64() >= probability {
				continue
			}

			candidates := make([]grid.Heading, 0, 3)
			for _, h := range grid.Headings {
				if c.size.Contains(cell.Step(h)) && !c.isOpen(cell, h) && c.canSafelyRemove(cell, h) {
					candidates = append(candidates, h)
				}
			}

			if len(candidates) > 0 {
				c.carve(cell, candidates[rng.Intn(len(candidates))])
			}
		}
	}
}

// canSafelyRemove reports whether both posts at the ends of the wall keep another wall
// A post with no walls is a pillar-free 2x2 plaza around it
func (c *carver) canSafelyRemove(cell grid.Cell, h grid.Heading) bool {
	var a, b [2]int
	switch h {
	case grid.North:
		a, b = [2]int{cell.X, cell.Y + 1}, [2]int{cell.X + 1, cell.Y + 1}
	case grid.East:
		a, b = [2]int{cell.X + 1, cell.Y}, [2]int{cell.X + 1, cell.Y + 1}
	case grid.South:
		a, b = [2]int{cell.X, cell.Y}, [2]int{cell.X + 1, cell.Y}
	case grid.West:
		a, b = [2]int{cell.X, cell.Y}, [2]int{cell.X, cell.Y + 1}
	}
	return c.postWalls(a[0], a[1]) >= 2 && c.postWalls(b[0], b[1]) >= 2
}

// postWalls counts wall segments touching the lattice point at the south-west corner of (px, py)
func (c *carver) postWalls(px, py int) int {
	n := 0
	if c.edge(grid.Cell{X: px - 1, Y: py}, grid.South) {
		n++
	}
	if c.edge(grid.Cell{X: px, Y: py}, grid.South) {
		n++
	}
	if c.edge(grid.Cell{X: px, Y: py}, grid.West) {
		n++
	}
	if c.edge(grid.Cell{X: px, Y: py - 1}, grid.West) {
		n++
	}
	return n
}

// edge reports whether a wall segment exists on side h of cell, which may lie outside the grid
func (c *carver) edge(cell grid.Cell, h grid.Heading) bool {
	in := c.size.Contains(cell)
	n := cell.Step(h)
	nIn := c.size.Contains(n)
	switch {
	case in && nIn:
		return !c.isOpen(cell, h)
	case in || nIn:
		return true // Boundary
	}
	return false
}

func (c *carver) build() (*Maze, error) {
	m, err := New(c.size)
	if err != nil {
		return nil, err
	}
	for i := range c.open {
		cell := c.size.CellAt(i)
		for _, h := range []grid.Heading{grid.North, grid.East} {
			if c.size.Contains(cell.Step(h)) && !c.isOpen(cell, h) {
				m.SetWall(cell, h)
			}
		}
	}
	return m, nil
}

func clampCell(size grid.Size, p grid.Cell) grid.Cell {
	return grid.Cell{
		X: min(max(p.X, 0), size.W-1),
		Y: min(max(p.Y, 0), size.H-1),
	}
}
