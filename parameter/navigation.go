package parameter

// Maze Grid
const (
	// GridDefaultWidth is the classic competition maze width in cells
	GridDefaultWidth = 16

	// GridDefaultHeight is the classic competition maze height in cells
	GridDefaultHeight = 16

	// GridMaxDimension bounds either side, keeps the per-tick flood fill small
	GridMaxDimension = 64
)

// Simulation
const (
	// SimDefaultMaxTicks stops a run that has not reached the goal
	SimDefaultMaxTicks = 4096

	// SimDefaultBraiding is the dead-end removal probability for generated mazes
	SimDefaultBraiding = 0.1

	// SimDefaultTickMs is the viewer's autoplay interval
	SimDefaultTickMs = 60
)
