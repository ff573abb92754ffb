package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/lixenwraith/micromouse/config"
	"github.com/lixenwraith/micromouse/grid"
	"github.com/lixenwraith/micromouse/logging"
	"github.com/lixenwraith/micromouse/maze"
	"github.com/lixenwraith/micromouse/sim"
)

var (
	configFlag     = flag.String("config", "", "TOML config file (defaults used when empty)")
	mazeFlag       = flag.String("maze", "", "ASCII maze file, a maze is generated when empty")
	seedFlag       = flag.Int64("seed", 0, "Generator seed, overrides config when non-zero")
	debugFlag      = flag.Bool("debug", false, "Write logs to logs/mouse-sim.log")
	dumpConfigFlag = flag.String("dump-config", "", "Write the effective config to this path and exit")
	distFlag       = flag.Bool("distances", false, "Label cells with final flood-fill distances instead of the path")
)

func main() {
	flag.Parse()
	logging.Capture()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if logFile := logging.Setup("mouse-sim", cfg.Log.Debug); logFile != nil {
		defer logFile.Close()
	}

	if *dumpConfigFlag != "" {
		if err := config.Save(*dumpConfigFlag, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "dump config: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			return cfg, err
		}
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if *seedFlag != 0 {
		cfg.Sim.Seed = *seedFlag
	}
	if *debugFlag {
		cfg.Log.Debug = true
	}
	return cfg, cfg.Validate()
}

func buildMaze(cfg config.Config) (*maze.Maze, error) {
	if *mazeFlag != "" {
		m, err := maze.Load(*mazeFlag)
		if err != nil {
			return nil, err
		}
		if m.Size != cfg.Size() {
			log.Printf("[SIM] maze file is %s, config says %s; using the file", m.Size, cfg.Size())
		}
		return m, nil
	}

	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("[SIM] generating %s maze, seed %d", cfg.Size(), seed)
	return maze.Generate(maze.Config{
		Width:    cfg.Grid.Width,
		Height:   cfg.Grid.Height,
		Braiding: cfg.Sim.Braiding,
		Seed:     seed,
	})
}

func run(cfg config.Config) error {
	m, err := buildMaze(cfg)
	if err != nil {
		return err
	}

	start, err := cfg.StartPose()
	if err != nil {
		return err
	}
	if !m.Size.Contains(start.Cell) {
		return fmt.Errorf("%w: start %s outside %s maze", config.ErrInvalid, start.Cell, m.Size)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := sim.NewRunner(m, start)
	startT := time.Now()
	res, runErr := runner.Run(ctx, cfg.Sim.MaxTicks)
	dur := time.Since(startT)

	draw(runner.Snapshot(), *distFlag)

	fmt.Printf("\nRun:      %s\n", res.RunID)
	fmt.Printf("Reached:  %t in %v\n", res.Reached, dur)
	fmt.Printf("Ticks:    %d (%d moves, %d turns)\n", res.Ticks, res.Moves, res.Turns)
	fmt.Printf("Explored: %d of %d cells\n", res.Visited, m.Size.Area())
	if res.Optimal >= 0 {
		fmt.Printf("Optimal:  %d moves\n", res.Optimal)
	} else {
		fmt.Println("Optimal:  unreachable")
	}

	switch {
	case runErr == nil:
		return nil
	case errors.Is(runErr, sim.ErrTickLimit), errors.Is(runErr, sim.ErrCollision):
		return fmt.Errorf("run %s: %w", res.RunID, runErr)
	default:
		return runErr
	}
}

func draw(s sim.Snapshot, distances bool) {
	fmt.Println(s.Maze.Render(func(c grid.Cell) string {
		switch {
		case c == s.Pose.Cell:
			return string(s.Pose.Heading.Arrow())
		case distances:
			if !s.Distances.Reachable(c) {
				return "?"
			}
			return strconv.Itoa(s.Distances.Distance(c))
		case s.Maze.Size.IsGoal(c):
			return "G"
		case s.Visited(c):
			return "•"
		}
		return ""
	}))
}
