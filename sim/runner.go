// Package sim drives a navigator through a ground-truth maze: it answers the
// navigator's wall sensors from the true pose and executes returned actions.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"

	"github.com/lixenwraith/micromouse/grid"
	"github.com/lixenwraith/micromouse/maze"
	"github.com/lixenwraith/micromouse/navigation"
)

var (
	ErrTickLimit = errors.New("tick limit reached before goal")
	ErrCollision = errors.New("forward move into a wall")
)

// Result summarises one run
type Result struct {
	RunID   uuid.UUID
	Ticks   int
	Moves   int
	Turns   int
	Visited int  // Distinct cells entered, start included
	Reached bool // Mouse ended on a goal cell
	Optimal int  // Shortest true path length in moves, -1 if unreachable
}

func (r Result) String() string {
	return fmt.Sprintf("run %s: reached=%t ticks=%d moves=%d turns=%d visited=%d optimal=%d",
		r.RunID, r.Reached, r.Ticks, r.Moves, r.Turns, r.Visited, r.Optimal)
}

// Runner owns the true mouse pose and one navigator per run
type Runner struct {
	id    uuid.UUID
	maze  *maze.Maze
	nav   *navigation.Navigator
	start navigation.Pose

	pose    navigation.Pose // Ground truth, tracked independently of the navigator
	visited mapset.Set[grid.Cell]
	moves   int
	turns   int
	crashed bool
}

// NewRunner prepares a run from start on m
func NewRunner(m *maze.Maze, start navigation.Pose) *Runner {
	r := &Runner{
		maze:  m,
		start: start,
	}
	r.nav = navigation.NewNavigator(m.Size, start, navigation.SensorFunc(r.sense))
	r.Reset()
	return r
}

// Reset starts a new run on the same maze with a fresh ID and empty wall knowledge
func (r *Runner) Reset() {
	r.id = uuid.New()
	r.nav.Reset()
	r.pose = r.start
	r.visited = mapset.New[grid.Cell]()
	r.visited.Put(r.start.Cell)
	r.moves = 0
	r.turns = 0
	r.crashed = false
}

func (r *Runner) wall(h grid.Heading) bool {
	return r.maze.HasWall(r.pose.Cell, h)
}

// sense answers the navigator's sensors from the true pose
func (r *Runner) sense(side navigation.Side) bool {
	switch side {
	case navigation.SideLeft:
		return r.wall(r.pose.Heading.Left())
	case navigation.SideRight:
		return r.wall(r.pose.Heading.Right())
	}
	return r.wall(r.pose.Heading)
}

// AtGoal reports whether the true pose is on a goal cell
func (r *Runner) AtGoal() bool {
	return r.maze.Size.IsGoal(r.pose.Cell)
}

// Tick runs one navigator step and applies the action to the true pose
// Returns Idle without stepping once the goal is reached
func (r *Runner) Tick() (navigation.Action, error) {
	if r.AtGoal() {
		return navigation.Idle, nil
	}
	if r.crashed {
		return navigation.Idle, ErrCollision
	}

	action := r.nav.Step()
	switch action {
	case navigation.TurnLeft:
		r.pose.Heading = r.pose.Heading.Left()
		r.turns++
	case navigation.TurnRight:
		r.pose.Heading = r.pose.Heading.Right()
		r.turns++
	case navigation.MoveForward:
		if r.wall(r.pose.Heading) {
			r.crashed = true
			log.Printf("[SIM] [%s] collision at %s", r.id, r.pose)
			return action, fmt.Errorf("%w: at %s", ErrCollision, r.pose)
		}
		r.pose.Cell = r.pose.Step(r.pose.Heading)
		r.visited.Put(r.pose.Cell)
		r.moves++
	}

	return action, nil
}

// Run ticks until the goal is reached, a collision occurs, ctx is done, or maxTicks elapse
func (r *Runner) Run(ctx context.Context, maxTicks int) (Result, error) {
	log.Printf("[SIM] [%s] start %s on %s maze", r.id, r.pose, r.maze.Size)

	for r.nav.Ticks() < maxTicks && !r.AtGoal() {
		if err := ctx.Err(); err != nil {
			return r.Result(), err
		}
		if _, err := r.Tick(); err != nil {
			return r.Result(), err
		}
	}

	res := r.Result()
	if !res.Reached {
		return res, fmt.Errorf("%w: %d ticks", ErrTickLimit, maxTicks)
	}
	log.Printf("[SIM] %s", res)
	return res, nil
}

// Result reports progress so far
func (r *Runner) Result() Result {
	optimal := -1
	if path := r.maze.Solve(r.start.Cell); path != nil {
		optimal = len(path) - 1
	}
	return Result{
		RunID:   r.id,
		Ticks:   r.nav.Ticks(),
		Moves:   r.moves,
		Turns:   r.turns,
		Visited: r.visited.Size(),
		Reached: r.AtGoal(),
		Optimal: optimal,
	}
}

// Snapshot is a read-only view for renderers
type Snapshot struct {
	Maze      *maze.Maze
	Pose      navigation.Pose
	Belief    navigation.Pose
	Walls     *navigation.WallMap // Copy, unaffected by later ticks
	Distances *navigation.DistanceField
	Choice    grid.Heading // Direction chosen on the last tick
	Visited   func(c grid.Cell) bool
	Result    Result
	Crashed   bool
}

// Snapshot captures the current state
// Walls are copied; Distances and Visited track the live run until the next Tick
func (r *Runner) Snapshot() Snapshot {
	return Snapshot{
		Maze:      r.maze,
		Pose:      r.pose,
		Belief:    r.nav.Pose(),
		Walls:     r.nav.Walls().Clone(),
		Distances: r.nav.Distances(),
		Choice:    r.nav.LastChoice(),
		Visited:   r.visited.Has,
		Result:    r.Result(),
		Crashed:   r.crashed,
	}
}
