// Package config loads run settings from TOML, an optional .env file and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/micromouse/grid"
	"github.com/lixenwraith/micromouse/navigation"
	"github.com/lixenwraith/micromouse/parameter"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Config holds the settings fixed for the lifetime of one run
type Config struct {
	Grid  GridConfig  `toml:"grid"`
	Start StartConfig `toml:"start"`
	Sim   SimConfig   `toml:"sim"`
	Log   LogConfig   `toml:"log"`
}

type GridConfig struct {
	Width  int `toml:"width" validate:"min=2"`  // Cells, even, at most parameter.GridMaxDimension
	Height int `toml:"height" validate:"min=2"` // Cells, even, at most parameter.GridMaxDimension
}

type StartConfig struct {
	X       int    `toml:"x" validate:"min=0"`
	Y       int    `toml:"y" validate:"min=0"`
	Heading string `toml:"heading" validate:"required"`
}

type SimConfig struct {
	MaxTicks int     `toml:"max_ticks" validate:"min=1"`
	Seed     int64   `toml:"seed"` // 0 = time based
	Braiding float64 `toml:"braiding" validate:"min=0,max=1"`
	TickMs   int     `toml:"tick_ms" validate:"min=0,max=10000"`
}

type LogConfig struct {
	Debug bool `toml:"debug"`
}

// Env keys read by ApplyEnv
const (
	EnvWidth    = "MOUSE_WIDTH"
	EnvHeight   = "MOUSE_HEIGHT"
	EnvSeed     = "MOUSE_SEED"
	EnvMaxTicks = "MOUSE_MAX_TICKS"
	EnvDebug    = "MOUSE_DEBUG"
)

var validate = validator.New()

// Default returns the 16x16 competition setup starting bottom-left facing North
func Default() Config {
	return Config{
		Grid: GridConfig{
			Width:  parameter.GridDefaultWidth,
			Height: parameter.GridDefaultHeight,
		},
		Start: StartConfig{
			X:       navigation.DefaultStart.X,
			Y:       navigation.DefaultStart.Y,
			Heading: navigation.DefaultStart.Heading.String(),
		},
		Sim: SimConfig{
			MaxTicks: parameter.SimDefaultMaxTicks,
			Braiding: parameter.SimDefaultBraiding,
			TickMs:   parameter.SimDefaultTickMs,
		},
	}
}

// Load reads a TOML file over the defaults, missing keys keep their default
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as TOML
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overlays MOUSE_* variables, loading .env first when present
func ApplyEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[CFG] .env could not be loaded: %v", err)
	}

	ints := []struct {
		key string
		dst *int
	}{
		{EnvWidth, &cfg.Grid.Width},
		{EnvHeight, &cfg.Grid.Height},
		{EnvMaxTicks, &cfg.Sim.MaxTicks},
	}
	for _, e := range ints {
		v, ok := os.LookupEnv(e.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %v", ErrInvalid, e.key, err)
		}
		*e.dst = n
	}

	if v, ok := os.LookupEnv(EnvSeed); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %v", ErrInvalid, EnvSeed, err)
		}
		cfg.Sim.Seed = n
	}

	if v, ok := os.LookupEnv(EnvDebug); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be a boolean: %v", ErrInvalid, EnvDebug, err)
		}
		cfg.Log.Debug = b
	}

	return nil
}

// Validate checks ranges, the grid bound, even dimensions and that the start pose is inside the grid
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Grid.Width > parameter.GridMaxDimension || c.Grid.Height > parameter.GridMaxDimension {
		return fmt.Errorf("%w: grid %s exceeds %d cells per side", ErrInvalid, c.Size(), parameter.GridMaxDimension)
	}
	if !c.Size().Even() {
		return fmt.Errorf("%w: grid %s must have even dimensions", ErrInvalid, c.Size())
	}
	if _, err := c.StartPose(); err != nil {
		return err
	}
	return nil
}

// Size returns the configured grid dimensions
func (c Config) Size() grid.Size {
	return grid.Size{W: c.Grid.Width, H: c.Grid.Height}
}

// StartPose resolves the start section into a navigator pose
func (c Config) StartPose() (navigation.Pose, error) {
	h, err := grid.ParseHeading(c.Start.Heading)
	if err != nil {
		return navigation.Pose{}, fmt.Errorf("%w: start: %v", ErrInvalid, err)
	}
	cell := grid.Cell{X: c.Start.X, Y: c.Start.Y}
	if !c.Size().Contains(cell) {
		return navigation.Pose{}, fmt.Errorf("%w: start %s outside %s grid", ErrInvalid, cell, c.Size())
	}
	return navigation.Pose{Cell: cell, Heading: h}, nil
}
