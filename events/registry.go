package events

import "strconv"

var eventNames = [...]string{
	EventBeforeStep:     "BeforeStep",
	EventCollisionStart: "CollisionStart",
	EventDragStart:      "DragStart",
	EventDragMove:       "DragMove",
	EventDragEnd:        "DragEnd",
}

// String returns the event name used in logs
func (t EventType) String() string {
	if t >= 0 && int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "EventType(" + strconv.Itoa(int(t)) + ")"
}
