package parameter

import "time"

// Viewer Layout
const (
	// ViewMarginX is the column of the maze's west boundary
	ViewMarginX = 1

	// ViewMarginY is the row of the maze's north boundary
	ViewMarginY = 1
)

// Viewer Audio
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	ToneGoalHz       = 880.0
	ToneGoalDuration = 150 * time.Millisecond

	ToneCollisionHz       = 220.0
	ToneCollisionDuration = 300 * time.Millisecond
)
