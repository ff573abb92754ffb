package maze

import (
	"fmt"
	"os"
	"strings"

	"github.com/lixenwraith/micromouse/grid"
)

// Parse reads the ASCII format produced by String
// Each row is a '+---+' line of north walls followed by a '|   |' cell line;
// the final line holds the south walls of row 0. The outer boundary must be
// complete. Trailing spaces may be omitted
func Parse(text string) (*Maze, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 3 || len(lines)%2 == 0 {
		return nil, fmt.Errorf("%w: %d lines", ErrFormat, len(lines))
	}

	top := strings.TrimRight(lines[0], " ")
	if len(top) < 5 || (len(top)-1)%4 != 0 {
		return nil, fmt.Errorf("%w: first line width %d", ErrFormat, len(top))
	}

	size := grid.Size{W: (len(top) - 1) / 4, H: (len(lines) - 1) / 2}
	m, err := New(size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", size, err)
	}

	width := 4*size.W + 1
	for i, raw := range lines {
		if len(raw) > width && strings.TrimSpace(raw[width:]) != "" {
			return nil, fmt.Errorf("%w: line %d longer than %d columns", ErrFormat, i+1, width)
		}
		line := raw + strings.Repeat(" ", max(0, width-len(raw)))

		if i%2 == 0 {
			// Wall line: north side of row y, or the south boundary on the last line
			y := size.H - 1 - i/2
			boundary := i == 0 || i == len(lines)-1
			for x := 0; x <= size.W; x++ {
				if line[4*x] != '+' {
					return nil, fmt.Errorf("%w: line %d column %d: expected '+'", ErrFormat, i+1, 4*x+1)
				}
				if x == size.W {
					break
				}
				if line[4*x+1] != '-' {
					if boundary {
						return nil, fmt.Errorf("%w: line %d column %d: missing boundary wall", ErrFormat, i+1, 4*x+2)
					}
					continue
				}
				if y >= 0 {
					m.SetWall(grid.Cell{X: x, Y: y}, grid.North)
				}
			}
			continue
		}

		if line[0] != '|' || line[width-1] != '|' {
			return nil, fmt.Errorf("%w: line %d: missing boundary wall", ErrFormat, i+1)
		}
		y := size.H - 1 - i/2
		for x := 0; x < size.W; x++ {
			if line[4*x] == '|' {
				m.SetWall(grid.Cell{X: x, Y: y}, grid.West)
			}
		}
	}

	return m, nil
}

// Load reads and parses a maze file
func Load(path string) (*Maze, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Save writes the maze in ASCII format
func Save(path string, m *Maze) error {
	return os.WriteFile(path, []byte(m.String()), 0644)
}
