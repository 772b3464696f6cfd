package events

import (
	"sync/atomic"

	"github.com/lixenwraith/offwall/constants"
)

// EventQueue is a fixed ring of game events written by the input reader and the
// game loop and drained once per step by the loop alone.
// A full ring overwrites its oldest unread event; Dropped counts those losses.
type EventQueue struct {
	slots [constants.EventQueueSize]slot
	read  atomic.Uint64
	write atomic.Uint64

	dropped atomic.Uint64
}

// slot pairs an event with a ready flag set only after the event is fully stored
type slot struct {
	ev    GameEvent
	ready atomic.Bool
}

// NewEventQueue creates an empty queue
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push stores ev, overwriting the oldest unread event when the ring is full
func (q *EventQueue) Push(ev GameEvent) {
	pos := q.reserve()
	s := &q.slots[pos&constants.EventBufferMask]
	s.ev = ev
	s.ready.Store(true)

	// Writer lapped the reader: move the read index past the lost event
	read := q.read.Load()
	if pos+1-read > constants.EventQueueSize {
		if q.read.CompareAndSwap(read, pos+1-constants.EventQueueSize) {
			q.dropped.Add(1)
		}
	}
}

// reserve claims the next write position
func (q *EventQueue) reserve() uint64 {
	for {
		pos := q.write.Load()
		if q.write.CompareAndSwap(pos, pos+1) {
			return pos
		}
	}
}

// Consume drains every ready event in push order
// A slot still being written ends the batch; it is picked up next call
func (q *EventQueue) Consume() []GameEvent {
	for {
		start := q.read.Load()
		end := q.write.Load()
		if end == start {
			return nil
		}
		if end-start > constants.EventQueueSize {
			start = end - constants.EventQueueSize
		}

		batch := make([]GameEvent, 0, end-start)
		for pos := start; pos < end; pos++ {
			s := &q.slots[pos&constants.EventBufferMask]
			if !s.ready.Load() {
				break
			}
			batch = append(batch, s.ev)
			s.ready.Store(false)
		}

		if !q.read.CompareAndSwap(start, start+uint64(len(batch))) {
			continue
		}
		if len(batch) == 0 {
			return nil
		}
		return batch
	}
}

// Pending returns the number of unread events
func (q *EventQueue) Pending() int {
	n := q.write.Load() - q.read.Load()
	return int(min(n, constants.EventQueueSize))
}

// Dropped returns how many unread events were overwritten since creation
func (q *EventQueue) Dropped() uint64 {
	return q.dropped.Load()
}
