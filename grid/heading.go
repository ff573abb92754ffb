package grid

import (
	"fmt"
	"strings"
)

// Heading is an absolute compass direction, clockwise from North
type Heading uint8

const (
	North Heading = iota
	East
	South
	West
	HeadingCount
)

// Headings lists all headings in neighbour exploration order: N, E, S, W
var Headings = [HeadingCount]Heading{North, East, South, West}

// headingDeltas matches Headings index order, North is +Y
var headingDeltas = [HeadingCount][2]int{
	{0, 1}, {1, 0}, {0, -1}, {-1, 0},
}

var headingNames = [HeadingCount]string{"north", "east", "south", "west"}

// Right returns the heading one quarter turn clockwise
func (h Heading) Right() Heading {
	return (h + 1) % HeadingCount
}

// Left returns the heading one quarter turn counter-clockwise
func (h Heading) Left() Heading {
	return (h + HeadingCount - 1) % HeadingCount
}

// Opposite returns the heading two quarter turns away
func (h Heading) Opposite() Heading {
	return (h + 2) % HeadingCount
}

// Delta returns the unit step (dx, dy) for the heading
func (h Heading) Delta() (dx, dy int) {
	d := headingDeltas[h%HeadingCount]
	return d[0], d[1]
}

// Valid reports whether h is one of the four compass headings
func (h Heading) Valid() bool {
	return h < HeadingCount
}

func (h Heading) String() string {
	if !h.Valid() {
		return fmt.Sprintf("heading(%d)", uint8(h))
	}
	return headingNames[h]
}

// Arrow returns a single rune pointing along the heading
func (h Heading) Arrow() rune {
	switch h {
	case North:
		return '^'
	case East:
		return '>'
	case South:
		return 'v'
	case West:
		return '<'
	}
	return '?'
}

// ParseHeading accepts full names or single letters, case-insensitive
func ParseHeading(s string) (Heading, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n":
		return North, nil
	case "east", "e":
		return East, nil
	case "south", "s":
		return South, nil
	case "west", "w":
		return West, nil
	}
	return 0, fmt.Errorf("unknown heading %q", s)
}
