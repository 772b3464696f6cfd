package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/offwall/render"
)

// HitFunc reports whether a canvas point grabs the ball
type HitFunc func(x, y float64) bool

// Machine is the input state machine
// Parses tcell events into semantic Intent
type Machine struct {
	keyTable *KeyTable
	hit      HitFunc

	// Mouse gesture state
	pressed  bool // Left button currently down
	dragging bool // Press landed on the ball
}

// NewMachine creates an input machine; nil keys uses the default table
func NewMachine(keys *KeyTable, hit HitFunc) *Machine {
	if keys == nil {
		keys = DefaultKeyTable()
	}
	if hit == nil {
		hit = func(float64, float64) bool { return false }
	}
	return &Machine{
		keyTable: keys,
		hit:      hit,
	}
}

// Dragging reports whether a grab is in progress
func (m *Machine) Dragging() bool {
	return m.dragging
}

// Reset drops any gesture in progress
func (m *Machine) Reset() {
	m.pressed = false
	m.dragging = false
}

// Process parses a tcell event and returns an Intent
// Returns nil if the event has no meaning
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	case *tcell.EventKey:
		if t := m.keyTable.Lookup(ev); t != IntentNone {
			return &Intent{Type: t}
		}
	case *tcell.EventMouse:
		return m.processMouse(ev)
	}
	return nil
}

func (m *Machine) processMouse(ev *tcell.EventMouse) *Intent {
	col, row := ev.Position()
	x, y := render.CellCenter(col, row)
	down := ev.Buttons()&tcell.Button1 != 0

	intent := func(t IntentType) *Intent {
		return &Intent{Type: t, X: x, Y: y, Col: col, Row: row}
	}

	switch {
	case down && !m.pressed:
		m.pressed = true
		if m.hit(x, y) {
			m.dragging = true
			return intent(IntentDragStart)
		}

	case down && m.pressed:
		if m.dragging {
			return intent(IntentDragMove)
		}

	case !down && m.pressed:
		m.pressed = false
		if m.dragging {
			m.dragging = false
			return intent(IntentDragEnd)
		}

	default:
		// Motion without a button: nothing to do
	}
	return nil
}
