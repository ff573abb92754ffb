package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/micromouse/grid"
	"github.com/lixenwraith/micromouse/maze"
	"github.com/lixenwraith/micromouse/parameter"
)

func main() {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Println("\n=== MICROMOUSE MAZE GENERATOR ===")

		w := getInt(reader, fmt.Sprintf("Width [even] (default %d): ", parameter.GridDefaultWidth), parameter.GridDefaultWidth)
		h := getInt(reader, fmt.Sprintf("Height [even] (default %d): ", parameter.GridDefaultHeight), parameter.GridDefaultHeight)
		braid := getFloat(reader, fmt.Sprintf("Braiding Factor [0.0 - 1.0] (default %.1f): ", parameter.SimDefaultBraiding), parameter.SimDefaultBraiding)
		seed := getInt64(reader, "Seed (default random): ", 0)
		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		fmt.Println("\nGenerating...")
		startT := time.Now()
		m, err := maze.Generate(maze.Config{
			Width:    w,
			Height:   h,
			Braiding: braid,
			Seed:     seed,
		})
		dur := time.Since(startT)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		fmt.Printf("Done in %v, seed %d\n", dur, seed)
		fmt.Printf("Grid Dimensions: %s\n", m.Size)

		path := m.Solve(grid.Cell{})
		if path != nil {
			fmt.Printf("Solution Path Length: %d moves\n", len(path)-1)
		} else {
			fmt.Println("Status: Unsolvable (Isolated Start/Goal)")
		}

		draw(m, path)

		fmt.Print("\nSave to file (empty to skip): ")
		name, _ := reader.ReadString('\n')
		if name = strings.TrimSpace(name); name != "" {
			if err := maze.Save(name, m); err != nil {
				fmt.Printf("Error: %v\n", err)
			} else {
				fmt.Printf("Saved %s\n", name)
			}
		}

		fmt.Print("\nGenerate another? [Y/n]: ")
		cont, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(cont)) == "n" {
			break
		}
	}
}

func draw(m *maze.Maze, path []grid.Cell) {
	onPath := make(map[grid.Cell]bool, len(path))
	for _, c := range path {
		onPath[c] = true
	}

	fmt.Println(m.Render(func(c grid.Cell) string {
		switch {
		case c == (grid.Cell{}):
			return "S"
		case m.Size.IsGoal(c):
			return "G"
		case onPath[c]:
			return "•"
		}
		return ""
	}))
}

// --- Input Helpers ---

// prompt reads one line, falling back to def on empty or unparsable input
func prompt[T any](r *bufio.Reader, text string, def T, parse func(string) (T, error)) T {
	fmt.Print(text)
	s, _ := r.ReadString('\n')
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		return def
	}
	return v
}

func getInt(r *bufio.Reader, text string, def int) int {
	return prompt(r, text, def, strconv.Atoi)
}

func getInt64(r *bufio.Reader, text string, def int64) int64 {
	return prompt(r, text, def, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

func getFloat(r *bufio.Reader, text string, def float64) float64 {
	v := prompt(r, text, def, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
	return min(max(v, 0), 1)
}
