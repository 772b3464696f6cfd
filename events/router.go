package events

// Handler receives the event types it declares, with the dispatch context T
type Handler[T any] interface {
	HandleEvent(ctx T, event GameEvent)
	EventTypes() []EventType
}

// Router fans queued events out to handlers on the game loop goroutine.
// Handlers sharing a type run in registration order, so the drag constraint sees a
// grab before the turn machine resets the score.
type Router[T any] struct {
	queue    *EventQueue
	handlers map[EventType][]Handler[T]

	// Types where only the last of a consecutive run matters
	latestOnly map[EventType]bool
}

// NewRouter creates a router draining queue
func NewRouter[T any](queue *EventQueue) *Router[T] {
	return &Router[T]{
		queue:      queue,
		handlers:   make(map[EventType][]Handler[T]),
		latestOnly: make(map[EventType]bool),
	}
}

// Register subscribes handler to each type it declares
func (r *Router[T]) Register(handler Handler[T]) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// Coalesce marks types whose back-to-back occurrences collapse to the newest one
// on DispatchAll. Pointer motion is the use: a burst of moves between two steps
// only needs the final position.
func (r *Router[T]) Coalesce(types ...EventType) {
	for _, t := range types {
		r.latestOnly[t] = true
	}
}

// Dispatch delivers one event, bypassing the queue
func (r *Router[T]) Dispatch(ctx T, ev GameEvent) {
	for _, h := range r.handlers[ev.Type] {
		h.HandleEvent(ctx, ev)
	}
}

// DispatchAll drains the queue and delivers the events in push order
// Returns the number of events taken from the queue, coalesced ones included
func (r *Router[T]) DispatchAll(ctx T) int {
	batch := r.queue.Consume()
	for i, ev := range batch {
		if r.latestOnly[ev.Type] && i+1 < len(batch) && batch[i+1].Type == ev.Type {
			continue
		}
		r.Dispatch(ctx, ev)
	}
	return len(batch)
}

// HandlerCount returns the number of handlers subscribed to t
func (r *Router[T]) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
