package input

import (
	"strconv"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orrery/engine"
)

// PageNotches is the scroll amount for PgUp/PgDn
const PageNotches = 10

// Machine turns terminal events into intents and owns the jump prompt
// Typing a digit, '-' or ':' opens the prompt; Enter jumps, Esc cancels
type Machine struct {
	minYear float64
	maxYear float64

	prompting bool
	prompt    []rune
}

func NewMachine(minYear, maxYear float64) *Machine {
	return &Machine{minYear: minYear, maxYear: maxYear}
}

// Prompt returns the pending jump text and whether the prompt is open
func (m *Machine) Prompt() (string, bool) {
	return string(m.prompt), m.prompting
}

func (m *Machine) closePrompt() {
	m.prompting = false
	m.prompt = m.prompt[:0]
}

// HandleEvent maps one tcell event to an intent
func (m *Machine) HandleEvent(ev tcell.Event) Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return Intent{Type: IntentResize}
	case *tcell.EventMouse:
		return m.handleMouse(ev)
	case *tcell.EventKey:
		if m.prompting {
			return m.handlePromptKey(ev)
		}
		return m.handleKey(ev)
	}
	return Intent{}
}

func (m *Machine) handleMouse(ev *tcell.EventMouse) Intent {
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelDown != 0:
		return Intent{Type: IntentScroll, Value: 1}
	case buttons&tcell.WheelUp != 0:
		return Intent{Type: IntentScroll, Value: -1}
	}
	return Intent{}
}

func (m *Machine) handleKey(ev *tcell.EventKey) Intent {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return Intent{Type: IntentQuit}
	case tcell.KeyRight, tcell.KeyDown:
		return Intent{Type: IntentScroll, Value: 1}
	case tcell.KeyLeft, tcell.KeyUp:
		return Intent{Type: IntentScroll, Value: -1}
	case tcell.KeyPgDn:
		return Intent{Type: IntentScroll, Value: PageNotches}
	case tcell.KeyPgUp:
		return Intent{Type: IntentScroll, Value: -PageNotches}
	case tcell.KeyHome:
		return Intent{Type: IntentJump, Value: m.minYear}
	case tcell.KeyEnd:
		return Intent{Type: IntentJump, Value: m.maxYear}
	case tcell.KeyRune:
		r := ev.Rune()
		switch {
		case r == 'q':
			return Intent{Type: IntentQuit}
		case r == 'l':
			return Intent{Type: IntentScroll, Value: 1}
		case r == 'h':
			return Intent{Type: IntentScroll, Value: -1}
		case r == ':':
			m.prompting = true
			return Intent{Type: IntentPrompt}
		case unicode.IsDigit(r) || r == '-':
			m.prompting = true
			m.prompt = append(m.prompt, r)
			return Intent{Type: IntentPrompt}
		}
	}
	return Intent{}
}

func (m *Machine) handlePromptKey(ev *tcell.EventKey) Intent {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		m.closePrompt()
		return Intent{Type: IntentPrompt}
	case tcell.KeyEnter:
		text := string(m.prompt)
		m.closePrompt()
		year, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Intent{Type: IntentPrompt}
		}
		return Intent{Type: IntentJump, Value: year}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(m.prompt) > 0 {
			m.prompt = m.prompt[:len(m.prompt)-1]
		}
		return Intent{Type: IntentPrompt}
	case tcell.KeyRune:
		r := ev.Rune()
		if unicode.IsDigit(r) || r == '.' || (r == '-' && len(m.prompt) == 0) {
			m.prompt = append(m.prompt, r)
		}
		return Intent{Type: IntentPrompt}
	}
	return Intent{}
}

// Dispatch routes timeline intents to the input queue; returns true on quit
func Dispatch(in Intent, q *engine.InputQueue) (quit bool) {
	switch in.Type {
	case IntentQuit:
		return true
	case IntentScroll:
		q.Scroll(in.Value)
	case IntentJump:
		q.Jump(in.Value)
	}
	return false
}
