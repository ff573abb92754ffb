package grid

// WallMask records which sides of a cell are walled, one bit per heading
type WallMask uint8

const (
	WallNorth WallMask = 1 << North
	WallEast  WallMask = 1 << East
	WallSouth WallMask = 1 << South
	WallWest  WallMask = 1 << West
	WallAll            = WallNorth | WallEast | WallSouth | WallWest
)

// Bit returns the mask bit for heading h
func (h Heading) Bit() WallMask {
	return 1 << (h % HeadingCount)
}

// Has reports whether the side facing h is walled
func (m WallMask) Has(h Heading) bool {
	return m&h.Bit() != 0
}

// With returns m with the side facing h walled
func (m WallMask) With(h Heading) WallMask {
	return m | h.Bit()
}

// Count returns the number of walled sides
func (m WallMask) Count() int {
	n := 0
	for _, h := range Headings {
		if m.Has(h) {
			n++
		}
	}
	return n
}
