package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orrery/component"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/vmath"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := screen.GetContent(x, y)
		if ch == 0 {
			ch = ' '
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}

func testFrame() *engine.Frame {
	return &engine.Frame{
		Tick:        1,
		CurrentTime: 79,
		TargetTime:  79,
		Year:        "Year 79",
		Progress:    0.8,
		Entities: []engine.EntityView{
			{ID: "station", Kind: "station", Position: vmath.Vec3F{}, Alpha: 1},
			{ID: "ghost", Kind: "event", Position: vmath.Vec3F{X: -4}, Alpha: 0},
		},
		Bodies: []engine.BodyView{
			{ID: "moon", Position: vmath.Vec3F{X: 10}},
		},
	}
}

func TestTerminalPresenterScene(t *testing.T) {
	screen := newTestScreen(t, 60, 12)
	r := NewTerminalPresenter(screen, 1, 1, 100)

	r.Present(testFrame())

	if r.Presented() != 1 {
		t.Errorf("Presented() = %d, want 1", r.Presented())
	}

	vp := r.Viewport()
	if vp.Y != 1 || vp.Height != 9 || vp.Width != 60 {
		t.Fatalf("Unexpected viewport %+v", vp)
	}

	ch, _, _, _ := screen.GetContent(30, 5)
	if ch != '#' {
		t.Errorf("Station glyph at (30,5) = %q, want '#'", ch)
	}
	ch, _, _, _ = screen.GetContent(40, 5)
	if ch != 'o' {
		t.Errorf("Body glyph at (40,5) = %q, want 'o'", ch)
	}
	ch, _, _, _ = screen.GetContent(26, 5)
	if ch == '*' {
		t.Error("Invisible entity should not be drawn")
	}
}

func TestTerminalPresenterHud(t *testing.T) {
	screen := newTestScreen(t, 80, 12)
	r := NewTerminalPresenter(screen, 1, 1, 100)

	f := testFrame()
	f.Transitioning = true
	r.Present(f)

	hud := rowText(screen, 0)
	if !strings.Contains(hud, "Year 79") {
		t.Errorf("HUD missing year: %q", hud)
	}
	if !strings.Contains(hud, "visible 1") {
		t.Errorf("HUD missing visible count: %q", hud)
	}
	if !strings.Contains(hud, "[transition]") {
		t.Errorf("HUD missing transition badge: %q", hud)
	}

	// Target 79 of [1, 100] lands at column round(0.788 * 80) = 63
	ch, _, _, _ := screen.GetContent(63, 10)
	if ch != '|' {
		t.Errorf("Target marker at column 63 = %q, want '|'", ch)
	}
}

func TestTerminalPresenterFooter(t *testing.T) {
	screen := newTestScreen(t, 80, 12)
	r := NewTerminalPresenter(screen, 1, 1, 100)

	f := testFrame()
	f.LivePeriod = "Siege"
	r.Present(f)
	if footer := rowText(screen, 11); !strings.Contains(footer, "Siege") {
		t.Errorf("Footer missing live period: %q", footer)
	}

	r.SetPrompt(func() (string, bool) { return "42", true })
	r.Present(f)
	footer := rowText(screen, 11)
	if !strings.Contains(footer, "jump to year: 42_") {
		t.Errorf("Footer missing open prompt: %q", footer)
	}
	if strings.Contains(footer, "Siege") {
		t.Errorf("Prompt should replace the footer: %q", footer)
	}
}

func TestTerminalPresenterArtifactsAndLibration(t *testing.T) {
	screen := newTestScreen(t, 60, 12)
	r := NewTerminalPresenter(screen, 1, 1, 100)

	f := testFrame()
	f.Entities = nil
	f.Bodies = nil
	f.Artifacts = []component.TransientArtifact{{
		ID:         "a",
		StartPoint: vmath.Vec3F{X: -10},
		EndPoint:   vmath.Vec3F{X: -2},
		Opacity:    0.5,
		ColorHint:  "amber",
	}}
	f.HasLibration = true
	f.Libration.L4 = vmath.Vec3F{X: 20}
	r.Present(f)

	ch, _, _, _ := screen.GetContent(20, 5)
	if ch != '.' {
		t.Errorf("Artifact trail at (20,5) = %q, want '.'", ch)
	}
	ch, _, _, _ = screen.GetContent(28, 5)
	if ch != '>' {
		t.Errorf("Artifact head at (28,5) = %q, want '>'", ch)
	}
	ch, _, _, _ = screen.GetContent(50, 5)
	if ch != '4' {
		t.Errorf("L4 marker at (50,5) = %q, want '4'", ch)
	}
}

func TestTerminalPresenterSmallScreen(t *testing.T) {
	screen := newTestScreen(t, 10, 2)
	r := NewTerminalPresenter(screen, 0, 1, 100)

	// Must not panic when there is no room for the scene
	r.Present(testFrame())

	if vp := r.Viewport(); vp.Height != 0 {
		t.Errorf("Viewport height = %d, want 0", vp.Height)
	}
}
