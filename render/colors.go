package render

import (
	"github.com/gdamore/tcell/v2"
)

// RGB color definitions for scene elements
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbHud        = tcell.NewRGBColor(255, 255, 255) // White
	RgbHudDim     = tcell.NewRGBColor(130, 130, 150) // Muted labels
	RgbBarFill    = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbBarEmpty   = tcell.NewRGBColor(60, 60, 80)    // Dark slate
	RgbCursor     = tcell.NewRGBColor(255, 165, 0)   // Orange target marker

	RgbBody       = tcell.NewRGBColor(100, 150, 255) // Normal Blue
	RgbStation    = tcell.NewRGBColor(0, 200, 0)     // Normal Green
	RgbEvent      = tcell.NewRGBColor(255, 80, 80)   // Normal Red
	RgbEntity     = tcell.NewRGBColor(200, 200, 200) // Light gray fallback
	RgbEmphasis   = tcell.NewRGBColor(255, 255, 0)   // Bright yellow flash
	RgbOrbiter    = tcell.NewRGBColor(0, 200, 200)   // Vibrant cyan
	RgbLibration  = tcell.NewRGBColor(128, 0, 128)   // Dark purple
	RgbTransition = tcell.NewRGBColor(255, 192, 203) // Pink transition badge
)

// styleHints maps dataset period styles to artifact colors
var styleHints = map[string]tcell.Color{
	"amber":   tcell.NewRGBColor(255, 191, 0),
	"crimson": tcell.NewRGBColor(220, 20, 60),
	"cyan":    tcell.NewRGBColor(0, 200, 200),
	"violet":  tcell.NewRGBColor(160, 90, 255),
	"green":   tcell.NewRGBColor(50, 255, 50),
}

// HintColor resolves a style hint; unknown hints fall back to the entity gray
func HintColor(hint string) tcell.Color {
	if c, ok := styleHints[hint]; ok {
		return c
	}
	return RgbEntity
}

// KindColor returns the base color for an entity kind
func KindColor(kind string) tcell.Color {
	switch kind {
	case "body":
		return RgbBody
	case "station":
		return RgbStation
	case "event":
		return RgbEvent
	default:
		return RgbEntity
	}
}

// KindGlyph returns the scene glyph for an entity kind
func KindGlyph(kind string) rune {
	switch kind {
	case "body":
		return 'O'
	case "station":
		return '#'
	case "event":
		return '*'
	default:
		return '+'
	}
}

// Fade scales a color toward the background by alpha in [0, 1]
func Fade(c tcell.Color, alpha float64) tcell.Color {
	if alpha >= 1 {
		return c
	}
	if alpha < 0 {
		alpha = 0
	}
	r, g, b := c.RGB()
	br, bg, bb := RgbBackground.RGB()
	mix := func(fg, bg int32) int32 {
		return bg + int32(float64(fg-bg)*alpha+0.5)
	}
	return tcell.NewRGBColor(mix(r, br), mix(g, bg), mix(b, bb))
}
