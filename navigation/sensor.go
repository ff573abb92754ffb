package navigation

// Sensor reports wall presence relative to the agent's current heading
// Implemented by the hardware or simulator layer, queried once per tick
type Sensor interface {
	WallAhead() bool
	WallLeft() bool
	WallRight() bool
}

// Read samples all three sides before any wall map mutation
func Read(s Sensor) Readings {
	return Readings{
		Ahead: s.WallAhead(),
		Left:  s.WallLeft(),
		Right: s.WallRight(),
	}
}

// SensorFunc adapts a single lookup keyed by relative side into a Sensor
type SensorFunc func(side Side) bool

// Side is a direction relative to the current heading
type Side uint8

const (
	SideAhead Side = iota
	SideLeft
	SideRight
)

func (f SensorFunc) WallAhead() bool { return f(SideAhead) }
func (f SensorFunc) WallLeft() bool  { return f(SideLeft) }
func (f SensorFunc) WallRight() bool { return f(SideRight) }
