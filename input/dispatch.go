package input

import (
	"github.com/lixenwraith/offwall/engine"
	"github.com/lixenwraith/offwall/events"
	"github.com/lixenwraith/offwall/physics"
)

var dragEvents = map[IntentType]events.EventType{
	IntentDragStart: events.EventDragStart,
	IntentDragMove:  events.EventDragMove,
	IntentDragEnd:   events.EventDragEnd,
}

// PushDrag queues the game event for a drag intent
// Returns false for non-drag intents
func PushDrag(ctx *engine.GameContext, in *Intent) bool {
	if !in.IsDrag() {
		return false
	}
	ctx.PushEvent(dragEvents[in.Type], &events.DragPayload{X: in.X, Y: in.Y})
	return true
}

// BallHit grabs within the ball radius plus slack, measured from the live ball position
// Slack of half a cell keeps small terminal balls grabbable
func BallHit(ball engine.BallBody, radius, slack float64) HitFunc {
	return func(x, y float64) bool {
		p := ball.Position()
		if !p.IsFinite() {
			return false
		}
		d := physics.Vector{X: x, Y: y}.Sub(p)
		r := radius + slack
		return d.Dot(d) <= r*r
	}
}
