package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/vmath"
)

// Layout rows outside the scene
const (
	hudRows    = 1
	footerRows = 2
)

// PromptFunc reports the pending jump prompt text and whether it is open
type PromptFunc func() (string, bool)

// TerminalPresenter draws frames to a tcell screen
// Scene first (libration, artifacts, entities, bodies), then HUD and footer on top
type TerminalPresenter struct {
	screen   tcell.Screen
	scale    float64
	minAlpha float64
	center   vmath.Vec3F

	minTime, maxTime float64
	prompt           PromptFunc

	defaultStyle tcell.Style
	presented    uint64
}

// NewTerminalPresenter creates a presenter for a timeline spanning [minTime, maxTime]
func NewTerminalPresenter(screen tcell.Screen, scale, minTime, maxTime float64) *TerminalPresenter {
	if scale <= 0 {
		scale = parameter.RenderScale
	}
	return &TerminalPresenter{
		screen:       screen,
		scale:        scale,
		minAlpha:     parameter.RenderMinAlpha,
		minTime:      minTime,
		maxTime:      maxTime,
		defaultStyle: tcell.StyleDefault.Background(RgbBackground).Foreground(RgbHud),
	}
}

// SetPrompt installs the source of the footer prompt
func (r *TerminalPresenter) SetPrompt(fn PromptFunc) {
	r.prompt = fn
}

// SetCenter moves the scene point drawn at the middle of the viewport
func (r *TerminalPresenter) SetCenter(c vmath.Vec3F) {
	r.center = c
}

// Presented returns the number of frames drawn
func (r *TerminalPresenter) Presented() uint64 {
	return r.presented
}

// Viewport returns the scene area for the current screen size
func (r *TerminalPresenter) Viewport() Viewport {
	w, h := r.screen.Size()
	sceneH := h - hudRows - footerRows
	if sceneH < 0 {
		sceneH = 0
	}
	return Viewport{
		X:      0,
		Y:      hudRows,
		Width:  w,
		Height: sceneH,
		Scale:  r.scale,
		Center: r.center,
	}
}

// Present implements engine.Presenter
func (r *TerminalPresenter) Present(frame *engine.Frame) {
	r.screen.SetStyle(r.defaultStyle)
	r.screen.Clear()

	vp := r.Viewport()
	r.drawLibration(vp, frame)
	r.drawArtifacts(vp, frame)
	r.drawEntities(vp, frame)
	r.drawBodies(vp, frame)

	w, h := r.screen.Size()
	r.drawHud(w, frame)
	r.drawTimelineBar(w, h-2, frame)
	r.drawFooter(w, h-1, frame)

	r.screen.Show()
	r.presented++
}

func (r *TerminalPresenter) drawLibration(vp Viewport, frame *engine.Frame) {
	if !frame.HasLibration {
		return
	}
	style := r.defaultStyle.Foreground(RgbLibration)
	for i, p := range frame.Libration.Points() {
		if x, y, ok := vp.Project(p); ok {
			r.screen.SetContent(x, y, rune('1'+i), nil, style)
		}
	}
}

func (r *TerminalPresenter) drawArtifacts(vp Viewport, frame *engine.Frame) {
	for i := range frame.Artifacts {
		a := &frame.Artifacts[i]
		style := r.defaultStyle.Foreground(Fade(HintColor(a.ColorHint), a.Opacity))
		x0, y0, _ := vp.Project(a.StartPoint)
		x1, y1, _ := vp.Project(a.EndPoint)
		Line(x0, y0, x1, y1, func(x, y int) {
			if vp.Contains(x, y) {
				r.screen.SetContent(x, y, '.', nil, style)
			}
		})
		if vp.Contains(x1, y1) {
			r.screen.SetContent(x1, y1, '>', nil, style)
		}
	}
}

func (r *TerminalPresenter) drawEntities(vp Viewport, frame *engine.Frame) {
	for i := range frame.Entities {
		e := &frame.Entities[i]
		if e.Alpha < r.minAlpha {
			continue
		}
		x, y, ok := vp.Project(e.Position)
		if !ok {
			continue
		}

		color := KindColor(e.Kind)
		style := r.defaultStyle
		if e.JustAppeared {
			style = style.Foreground(RgbEmphasis).Bold(true)
		} else {
			style = style.Foreground(Fade(color, e.Alpha))
		}
		r.screen.SetContent(x, y, KindGlyph(e.Kind), nil, style)
	}
}

func (r *TerminalPresenter) drawBodies(vp Viewport, frame *engine.Frame) {
	style := r.defaultStyle.Foreground(RgbOrbiter)
	for i := range frame.Bodies {
		if x, y, ok := vp.Project(frame.Bodies[i].Position); ok {
			r.screen.SetContent(x, y, 'o', nil, style)
		}
	}
}

func (r *TerminalPresenter) drawHud(w int, frame *engine.Frame) {
	text := fmt.Sprintf(" %s  target %.2f  vel %+.4f  visible %d  artifacts %d",
		frame.Year, frame.TargetTime, frame.Velocity, frame.VisibleCount(), len(frame.Artifacts))
	x := r.drawText(0, 0, w, text, r.defaultStyle.Foreground(RgbHud))

	if frame.Transitioning {
		r.drawText(x+2, 0, w, "[transition]", r.defaultStyle.Foreground(RgbTransition))
	}
}

func (r *TerminalPresenter) drawTimelineBar(w, y int, frame *engine.Frame) {
	if y < hudRows {
		return
	}
	fill := BarFill(w, frame.Progress)
	filled := r.defaultStyle.Background(RgbBarFill)
	empty := r.defaultStyle.Background(RgbBarEmpty)
	for x := 0; x < w; x++ {
		style := empty
		if x < fill {
			style = filled
		}
		r.screen.SetContent(x, y, ' ', nil, style)
	}

	span := r.maxTime - r.minTime
	if span <= 0 || w == 0 {
		return
	}
	tx := BarFill(w, (frame.TargetTime-r.minTime)/span)
	if tx >= w {
		tx = w - 1
	}
	r.screen.SetContent(tx, y, '|', nil, empty.Foreground(RgbCursor))
}

func (r *TerminalPresenter) drawFooter(w, y int, frame *engine.Frame) {
	if y < hudRows {
		return
	}
	if r.prompt != nil {
		if text, open := r.prompt(); open {
			r.drawText(0, y, w, " jump to year: "+text+"_", r.defaultStyle.Foreground(RgbCursor))
			return
		}
	}

	x := r.drawText(0, y, w, fmt.Sprintf(" %.0f", r.minTime), r.defaultStyle.Foreground(RgbHudDim))
	if frame.LivePeriod != "" {
		x = r.drawText(x+2, y, w, frame.LivePeriod, r.defaultStyle.Foreground(RgbEvent).Bold(true))
	}
	hint := fmt.Sprintf("wheel/arrows scroll  0-9 jump  q quit  %.0f ", r.maxTime)
	r.drawText(max(x+2, w-len(hint)), y, w, hint, r.defaultStyle.Foreground(RgbHudDim))
}

// drawText writes s from (x, y) clipped at w and returns the column after the last rune
func (r *TerminalPresenter) drawText(x, y, w int, s string, style tcell.Style) int {
	for _, ch := range s {
		if x >= w {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
