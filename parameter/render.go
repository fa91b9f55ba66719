package parameter

// Terminal presentation
const (
	// RenderScale is scene units per terminal column; rows are doubled to keep cells square
	RenderScale = 1.0

	// RenderMinAlpha hides entities below this alpha instead of drawing a dim glyph
	RenderMinAlpha = 0.02

	// EmphasisChimeCooldown is the minimum number of frames between two emphasis chimes
	EmphasisChimeCooldown = 6
)

// Recording
const (
	// RecordingBatchSize is the number of buffered frames flushed per SQLite transaction
	RecordingBatchSize = 512
)
