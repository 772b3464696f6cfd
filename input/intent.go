package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit       // q, Esc, Ctrl+C
	IntentPause      // p
	IntentToggleMute // m
	IntentResize     // Terminal resize event

	// Mouse
	IntentDragStart // Left press over the ball
	IntentDragMove  // Motion with the left button held after a grab
	IntentDragEnd   // Left release after a grab
)

var intentNames = [...]string{
	IntentNone:       "none",
	IntentQuit:       "quit",
	IntentPause:      "pause",
	IntentToggleMute: "toggle_mute",
	IntentResize:     "resize",
	IntentDragStart:  "drag_start",
	IntentDragMove:   "drag_move",
	IntentDragEnd:    "drag_end",
}

func (t IntentType) String() string {
	if int(t) < len(intentNames) {
		return intentNames[t]
	}
	return "unknown"
}

// Intent represents a parsed semantic action
// Pure data struct with no engine dependencies
type Intent struct {
	Type IntentType

	// Pointer in canvas pixels (drag intents) and the cell it came from
	X, Y     float64
	Col, Row int
}

// IsDrag reports whether the intent belongs to the drag gesture
func (i *Intent) IsDrag() bool {
	return i != nil && (i.Type == IntentDragStart || i.Type == IntentDragMove || i.Type == IntentDragEnd)
}
