package navigation

import (
	"fmt"

	"github.com/lixenwraith/micromouse/grid"
)

// Action is the single motion command emitted per control tick
type Action uint8

const (
	TurnLeft Action = iota
	MoveForward
	TurnRight
	Idle // Never produced by Decide, reserved for callers that stop stepping
)

func (a Action) String() string {
	switch a {
	case TurnLeft:
		return "left"
	case MoveForward:
		return "forward"
	case TurnRight:
		return "right"
	case Idle:
		return "idle"
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// Pose is the agent's cell and absolute heading
type Pose struct {
	grid.Cell
	Heading grid.Heading
}

// DefaultStart is the bottom-left corner facing North
var DefaultStart = Pose{Cell: grid.Cell{X: 0, Y: 0}, Heading: grid.North}

func (p Pose) String() string {
	return fmt.Sprintf("%s %s", p.Cell, p.Heading)
}

// Decide picks the open neighbour with the smallest distance and maps it to an action
//
// Neighbours are scanned N, E, S, W with a strict less-than update, so the
// earliest direction wins ties. With no candidate the best direction stays
// North and the minimum stays Unreachable; that fallback can point into a wall
// and is kept as-is. An opposite best direction yields one quarter turn right
//
// Returns the action, the pose after applying it, and the chosen direction
func Decide(walls *WallMap, field *DistanceField, pose Pose) (Action, Pose, grid.Heading) {
	size := field.Size()
	best := grid.North
	minDist := Unreachable

	for _, h := range grid.Headings {
		n := pose.Step(h)
		if !size.Contains(n) || walls.HasWall(pose.Cell, h) {
			continue
		}
		if d := field.Distance(n); d < minDist {
			minDist = d
			best = h
		}
	}

	next := pose
	switch best {
	case pose.Heading:
		next.Cell = pose.Step(best)
		return MoveForward, next, best
	case pose.Heading.Right():
		next.Heading = best
		return TurnRight, next, best
	case pose.Heading.Left():
		next.Heading = best
		return TurnLeft, next, best
	default:
		// U-turn: a quarter turn now, the next tick completes it
		next.Heading = pose.Heading.Right()
		return TurnRight, next, best
	}
}

// Navigator owns the wall map, distance field and pose for one run
// Not safe for concurrent use: tick N+1 must not start before tick N returns
type Navigator struct {
	size   grid.Size
	goals  []grid.Cell
	start  Pose
	sensor Sensor

	walls *WallMap
	field *DistanceField
	pose  Pose
	ticks int
	last  grid.Heading
}

// NewNavigator creates a navigator at start, reading walls from sensor
func NewNavigator(size grid.Size, start Pose, sensor Sensor) *Navigator {
	return &Navigator{
		size:   size,
		goals:  size.Goals(),
		start:  start,
		sensor: sensor,
		walls:  NewWallMap(size),
		field:  NewDistanceField(size),
		pose:   start,
	}
}

// Step runs one control tick: sense, update walls, flood fill, decide
func (n *Navigator) Step() Action {
	r := Read(n.sensor)
	n.walls.Observe(n.pose, r)
	n.field.Compute(n.walls, n.goals)

	action, next, best := Decide(n.walls, n.field, n.pose)
	n.pose = next
	n.last = best
	n.ticks++
	return action
}

// Reset restores the start pose and forgets all walls
func (n *Navigator) Reset() {
	n.walls.Reset()
	n.field.reset()
	n.pose = n.start
	n.ticks = 0
	n.last = grid.North
}

// Pose returns the navigator's believed pose
func (n *Navigator) Pose() Pose {
	return n.pose
}

// Walls exposes the wall map for inspection, callers must not mutate it
func (n *Navigator) Walls() *WallMap {
	return n.walls
}

// Distances exposes the last computed field, callers must not mutate it
func (n *Navigator) Distances() *DistanceField {
	return n.field
}

// AtGoal reports whether the pose is on a goal cell
func (n *Navigator) AtGoal() bool {
	return n.size.IsGoal(n.pose.Cell)
}

// Ticks returns the number of completed steps since start or reset
func (n *Navigator) Ticks() int {
	return n.ticks
}

// LastChoice returns the direction selected on the previous tick
func (n *Navigator) LastChoice() grid.Heading {
	return n.last
}

// Size returns the grid dimensions
func (n *Navigator) Size() grid.Size {
	return n.size
}
