package parameter

// Temporal visibility
const (
	// VisibilityFadeRange is the half-width of the smoothstep edges around validity bounds
	VisibilityFadeRange = 0.5

	// EmphasisThreshold flags an entity as just appeared while 0 < alpha < threshold
	EmphasisThreshold = 0.1
)
