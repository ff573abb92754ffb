package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/micromouse/config"
	"github.com/lixenwraith/micromouse/grid"
	"github.com/lixenwraith/micromouse/logging"
	"github.com/lixenwraith/micromouse/maze"
	"github.com/lixenwraith/micromouse/navigation"
	"github.com/lixenwraith/micromouse/parameter"
	"github.com/lixenwraith/micromouse/sim"
)

var (
	configFlag = flag.String("config", "", "TOML config file (defaults used when empty)")
	mazeFlag   = flag.String("maze", "", "ASCII maze file, a maze is generated when empty")
	seedFlag   = flag.Int64("seed", 0, "Generator seed, overrides config when non-zero")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/mouse-view.log")
)

var (
	styleKnownWall = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleTrueWall  = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleGoal      = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleVisited   = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleUnknown   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleMouse     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Reverse(true)
	styleCrash     = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
	styleStatus    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

type Viewer struct {
	screen        tcell.Screen
	width, height int

	cfg    config.Config
	start  navigation.Pose
	seed   int64
	runner *sim.Runner

	running bool
	status  string
	lastErr error

	// Audio
	audioInit bool
}

func NewViewer(cfg config.Config) (*Viewer, error) {
	start, err := cfg.StartPose()
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}

	if err := screen.Init(); err != nil {
		return nil, err
	}

	v := &Viewer{
		screen: screen,
		cfg:    cfg,
		start:  start,
		seed:   cfg.Sim.Seed,
	}
	if v.seed == 0 {
		v.seed = time.Now().UnixNano()
	}
	v.width, v.height = screen.Size()

	if err := v.loadMaze(); err != nil {
		screen.Fini()
		return nil, err
	}

	// Initialize audio
	if err := v.initAudio(); err != nil {
		// Non-fatal, viewer runs silent
		log.Printf("[VIEW] audio initialization failed: %v", err)
	}

	return v, nil
}

func (v *Viewer) loadMaze() error {
	var (
		m   *maze.Maze
		err error
	)
	if *mazeFlag != "" {
		m, err = maze.Load(*mazeFlag)
	} else {
		m, err = maze.Generate(maze.Config{
			Width:    v.cfg.Grid.Width,
			Height:   v.cfg.Grid.Height,
			Braiding: v.cfg.Sim.Braiding,
			Seed:     v.seed,
		})
	}
	if err != nil {
		return err
	}
	if !m.Size.Contains(v.start.Cell) {
		return fmt.Errorf("%w: start %s outside %s maze", config.ErrInvalid, v.start.Cell, m.Size)
	}

	v.runner = sim.NewRunner(m, v.start)
	v.running = false
	v.lastErr = nil
	v.status = fmt.Sprintf("seed %d", v.seed)
	return nil
}

func (v *Viewer) initAudio() error {
	sampleRate := beep.SampleRate(parameter.AudioSampleRate)
	err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration))
	if err == nil {
		v.audioInit = true
	}
	return err
}

func (v *Viewer) playTone(freq float64, d time.Duration) {
	if !v.audioInit {
		return
	}

	sampleRate := beep.SampleRate(parameter.AudioSampleRate)
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}

func (v *Viewer) tick() {
	if v.runner.AtGoal() || v.lastErr != nil {
		v.running = false
		return
	}

	action, err := v.runner.Tick()
	if err != nil {
		v.lastErr = err
		v.running = false
		v.status = err.Error()
		v.playTone(parameter.ToneCollisionHz, parameter.ToneCollisionDuration)
		return
	}

	if v.runner.Result().Ticks >= v.cfg.Sim.MaxTicks {
		v.lastErr = sim.ErrTickLimit
		v.running = false
		v.status = sim.ErrTickLimit.Error()
		return
	}

	v.status = action.String()
	if v.runner.AtGoal() {
		v.running = false
		v.status = "goal reached"
		v.playTone(parameter.ToneGoalHz, parameter.ToneGoalDuration)
	}
}

// cellOrigin returns the screen position of the north-west post of c
func (v *Viewer) cellOrigin(size grid.Size, c grid.Cell) (int, int) {
	return parameter.ViewMarginX + 4*c.X, parameter.ViewMarginY + 2*(size.H-1-c.Y)
}

func (v *Viewer) wallStyle(s sim.Snapshot, c grid.Cell, h grid.Heading) (tcell.Style, bool) {
	if s.Walls.HasWall(c, h) {
		return styleKnownWall, true
	}
	if s.Maze.HasWall(c, h) {
		return styleTrueWall, true
	}
	return tcell.StyleDefault, false
}

func (v *Viewer) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		if x+i >= v.width {
			return
		}
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (v *Viewer) draw() {
	v.screen.Clear()

	s := v.runner.Snapshot()
	size := s.Maze.Size

	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			c := grid.Cell{X: x, Y: y}
			sx, sy := v.cellOrigin(size, c)

			v.screen.SetContent(sx, sy, '+', nil, styleTrueWall)
			if style, ok := v.wallStyle(s, c, grid.North); ok {
				v.drawText(sx+1, sy, "---", style)
			}
			if style, ok := v.wallStyle(s, c, grid.West); ok {
				v.screen.SetContent(sx, sy+1, '|', nil, style)
			}
			if x == size.W-1 {
				v.screen.SetContent(sx+4, sy, '+', nil, styleTrueWall)
				if style, ok := v.wallStyle(s, c, grid.East); ok {
					v.screen.SetContent(sx+4, sy+1, '|', nil, style)
				}
			}
			if y == 0 {
				v.screen.SetContent(sx, sy+2, '+', nil, styleTrueWall)
				if style, ok := v.wallStyle(s, c, grid.South); ok {
					v.drawText(sx+1, sy+2, "---", style)
				}
				if x == size.W-1 {
					v.screen.SetContent(sx+4, sy+2, '+', nil, styleTrueWall)
				}
			}

			v.drawCell(s, c, sx+1, sy+1)
		}
	}

	res := s.Result
	line := fmt.Sprintf(" tick %d  moves %d  turns %d  explored %d/%d  optimal %d  heading for %s | %s | [space] step [r] run [n] new [q] quit ",
		res.Ticks, res.Moves, res.Turns, res.Visited, size.Area(), res.Optimal, s.Choice, v.status)
	v.drawText(0, v.height-1, line, styleStatus)

	v.screen.Show()
}

func (v *Viewer) drawCell(s sim.Snapshot, c grid.Cell, x, y int) {
	if c == s.Pose.Cell {
		style := styleMouse
		if s.Crashed {
			style = styleCrash
		}
		v.drawText(x, y, " "+string(s.Pose.Heading.Arrow())+" ", style)
		return
	}

	label := maze.Label("?")
	if s.Distances.Reachable(c) {
		label = maze.Label(strconv.Itoa(s.Distances.Distance(c)))
	}

	style := styleUnknown
	switch {
	case s.Maze.Size.IsGoal(c):
		style = styleGoal
	case s.Visited(c):
		style = styleVisited
	}
	v.drawText(x, y, label, style)
}

func (v *Viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}

		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.running = false
				v.tick()
			case 'r':
				v.running = !v.running
			case 'n':
				v.seed++
				if err := v.loadMaze(); err != nil {
					v.status = err.Error()
				}
			case 'R':
				v.runner.Reset()
				v.running = false
				v.lastErr = nil
				v.status = "reset"
			}
		}

	case *tcell.EventResize:
		v.width, v.height = v.screen.Size()
		v.screen.Sync()
	}

	return true
}

func (v *Viewer) run() {
	interval := time.Duration(v.cfg.Sim.TickMs) * time.Millisecond
	if interval <= 0 {
		interval = parameter.SimDefaultTickMs * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- v.screen.PollEvent()
		}
	}()

	v.draw()
	for {
		select {
		case ev := <-eventChan:
			if ev == nil {
				return
			}
			if !v.handleInput(ev) {
				return
			}
			v.draw()

		case <-ticker.C:
			if v.running {
				v.tick()
				v.draw()
			}
		}
	}
}

func (v *Viewer) cleanup() {
	if v.audioInit {
		speaker.Close()
	}
	v.screen.Fini()
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

func main() {
	flag.Parse()

	// The screen owns the terminal, log lines only ever go to the debug file
	logging.Capture()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if logFile := logging.Setup("mouse-view", cfg.Log.Debug); logFile != nil {
		defer logFile.Close()
	}

	viewer, err := NewViewer(cfg)
	if err != nil {
		if errors.Is(err, config.ErrInvalid) {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		}
		os.Exit(1)
	}
	defer viewer.cleanup()

	viewer.run()
}
