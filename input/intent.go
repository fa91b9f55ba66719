package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	IntentQuit   // q, Ctrl+C
	IntentResize // Terminal resize event
	IntentScroll // Wheel, arrows, PgUp/PgDn; Value is the signed notch count
	IntentJump   // Home/End or confirmed prompt; Value is the year
	IntentPrompt // Prompt text changed, redraw status
)

// Intent is a resolved input with its numeric argument
type Intent struct {
	Type  IntentType
	Value float64
}
