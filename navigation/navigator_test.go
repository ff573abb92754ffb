package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/micromouse/grid"
)

// truthSensor answers from a fully known wall map at the navigator's own pose
type truthSensor struct {
	truth *WallMap
	nav   *Navigator
}

func (s *truthSensor) wall(h grid.Heading) bool {
	p := s.nav.Pose()
	if !s.truth.Size().Contains(p.Step(h)) {
		return true
	}
	return s.truth.HasWall(p.Cell, h)
}

func (s *truthSensor) WallAhead() bool { return s.wall(s.nav.Pose().Heading) }
func (s *truthSensor) WallLeft() bool  { return s.wall(s.nav.Pose().Heading.Left()) }
func (s *truthSensor) WallRight() bool { return s.wall(s.nav.Pose().Heading.Right()) }

func newTruthNavigator(truth *WallMap, start Pose) *Navigator {
	s := &truthSensor{truth: truth}
	n := NewNavigator(truth.Size(), start, s)
	s.nav = n
	return n
}

func TestStep_TieBreakPrefersNorth(t *testing.T) {
	size := grid.Size{W: 4, H: 4}
	nav := newTruthNavigator(NewWallMap(size), DefaultStart)

	action := nav.Step()

	assert.Equal(t, MoveForward, action)
	assert.Equal(t, Pose{Cell: grid.Cell{X: 0, Y: 1}, Heading: grid.North}, nav.Pose())
	assert.Equal(t, 1, nav.Distances().Distance(grid.Cell{X: 0, Y: 1}))
	assert.Equal(t, 1, nav.Distances().Distance(grid.Cell{X: 1, Y: 0}))
}

func TestStep_WallNorthTurnsRight(t *testing.T) {
	size := grid.Size{W: 4, H: 4}
	truth := NewWallMap(size)
	truth.SetWall(grid.Cell{X: 0, Y: 0}, grid.North)
	nav := newTruthNavigator(truth, DefaultStart)

	action := nav.Step()

	assert.Equal(t, TurnRight, action)
	assert.Equal(t, Pose{Cell: grid.Cell{X: 0, Y: 0}, Heading: grid.East}, nav.Pose())
	assert.True(t, nav.Walls().HasWall(grid.Cell{X: 0, Y: 0}, grid.North))
	assert.True(t, nav.Walls().HasWall(grid.Cell{X: 0, Y: 1}, grid.South))
}

func TestStep_TurnLeft(t *testing.T) {
	size := grid.Size{W: 4, H: 4}
	nav := newTruthNavigator(NewWallMap(size), Pose{Heading: grid.East})

	action := nav.Step()

	assert.Equal(t, TurnLeft, action)
	assert.Equal(t, Pose{Heading: grid.North}, nav.Pose())
}

func TestStep_UTurnTakesTwoRightTurns(t *testing.T) {
	size := grid.Size{W: 4, H: 4}
	nav := newTruthNavigator(NewWallMap(size), Pose{Heading: grid.South})

	first := nav.Step()
	assert.Equal(t, TurnRight, first)
	assert.Equal(t, grid.West, nav.Pose().Heading)
	assert.Equal(t, grid.North, nav.LastChoice())

	second := nav.Step()
	assert.Equal(t, TurnRight, second)
	assert.Equal(t, grid.North, nav.Pose().Heading)
	assert.Equal(t, grid.Cell{}, nav.Pose().Cell)

	assert.Equal(t, MoveForward, nav.Step())
	assert.Equal(t, grid.Cell{X: 0, Y: 1}, nav.Pose().Cell)
}

func TestDecide_OppositeQuarterTurnOnly(t *testing.T) {
	size := grid.Size{W: 4, H: 4}
	walls := NewWallMap(size)
	field := NewDistanceField(size)
	field.Compute(walls, size.Goals())

	// From (1,3) the goal (1,2) is South; facing North makes it opposite
	pose := Pose{Cell: grid.Cell{X: 1, Y: 3}, Heading: grid.North}
	action, next, best := Decide(walls, field, pose)

	assert.Equal(t, grid.South, best)
	assert.Equal(t, TurnRight, action)
	assert.Equal(t, Pose{Cell: pose.Cell, Heading: grid.East}, next)
}

func TestDecide_EnclosedFallsBackToNorth(t *testing.T) {
	size := grid.Size{W: 4, H: 4}
	walls := NewWallMap(size)
	origin := grid.Cell{X: 0, Y: 0}
	walls.SetWall(origin, grid.North)
	walls.SetWall(origin, grid.East)
	field := NewDistanceField(size)
	field.Compute(walls, size.Goals())
	require.False(t, field.Reachable(origin))

	// Facing East, North is a left turn
	action, next, best := Decide(walls, field, Pose{Cell: origin, Heading: grid.East})
	assert.Equal(t, grid.North, best)
	assert.Equal(t, TurnLeft, action)
	assert.Equal(t, Pose{Cell: origin, Heading: grid.North}, next)

	// Facing North the fallback commands a move into the known wall
	action, next, _ = Decide(walls, field, Pose{Cell: origin, Heading: grid.North})
	assert.Equal(t, MoveForward, action)
	assert.Equal(t, grid.Cell{X: 0, Y: 1}, next.Cell)
}

func TestDecide_UnreachableNeighboursAreNotCandidates(t *testing.T) {
	size := grid.Size{W: 4, H: 4}
	walls := NewWallMap(size)
	// Seal the goal block so nothing outside it is reachable
	for _, g := range size.Goals() {
		for _, h := range grid.Headings {
			walls.SetWall(g, h)
		}
	}
	field := NewDistanceField(size)
	field.Compute(walls, size.Goals())

	action, next, best := Decide(walls, field, Pose{Cell: grid.Cell{X: 3, Y: 0}, Heading: grid.West})
	assert.Equal(t, grid.North, best)
	assert.Equal(t, TurnRight, action)
	assert.Equal(t, grid.North, next.Heading)
}

func TestDecide_NeverIdle(t *testing.T) {
	size := grid.Size{W: 4, H: 4}
	walls := NewWallMap(size)
	field := NewDistanceField(size)
	field.Compute(walls, size.Goals())

	for i := 0; i < size.Area(); i++ {
		for _, h := range grid.Headings {
			action, _, _ := Decide(walls, field, Pose{Cell: size.CellAt(i), Heading: h})
			assert.NotEqual(t, Idle, action)
		}
	}
}

func TestNavigator_OpenMazeReachesGoal(t *testing.T) {
	size := grid.DefaultSize
	nav := newTruthNavigator(NewWallMap(size), DefaultStart)

	moves := 0
	for i := 0; i < 200 && !nav.AtGoal(); i++ {
		if nav.Step() == MoveForward {
			moves++
		}
	}

	require.True(t, nav.AtGoal())
	assert.Equal(t, 14, moves, "open maze path is the Manhattan distance")
}

func TestNavigator_DetoursAroundDiscoveredWall(t *testing.T) {
	size := grid.Size{W: 4, H: 4}
	truth := NewWallMap(size)
	// A wall across the west column above (0,1)
	truth.SetWall(grid.Cell{X: 0, Y: 1}, grid.North)
	truth.SetWall(grid.Cell{X: 0, Y: 1}, grid.East)
	nav := newTruthNavigator(truth, DefaultStart)

	for i := 0; i < 50 && !nav.AtGoal(); i++ {
		nav.Step()
	}

	require.True(t, nav.AtGoal())
	assert.True(t, nav.Walls().HasWall(grid.Cell{X: 0, Y: 1}, grid.East))
}

func TestNavigator_Reset(t *testing.T) {
	size := grid.Size{W: 4, H: 4}
	truth := NewWallMap(size)
	truth.SetWall(grid.Cell{X: 0, Y: 0}, grid.North)
	nav := newTruthNavigator(truth, DefaultStart)

	nav.Step()
	nav.Step()
	require.NotZero(t, nav.Walls().Known())

	nav.Reset()
	assert.Equal(t, DefaultStart, nav.Pose())
	assert.Zero(t, nav.Walls().Known())
	assert.Zero(t, nav.Ticks())
	assert.False(t, nav.Distances().Reachable(grid.Cell{X: 1, Y: 1}))
}

func TestSensorFunc(t *testing.T) {
	s := SensorFunc(func(side Side) bool { return side == SideLeft })
	assert.Equal(t, Readings{Left: true}, Read(s))
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "forward", MoveForward.String())
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "action(9)", Action(9).String())
}
