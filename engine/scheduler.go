package engine

import (
	"container/heap"
	"time"
)

// Task is a handle to a scheduled callback
type Task struct {
	id        uint64
	due       time.Duration
	fn        func()
	index     int
	cancelled bool
	done      bool
}

// Cancel prevents the task from running
// Returns false if it already ran or was already cancelled
func (t *Task) Cancel() bool {
	if t == nil || t.done || t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}

// Pending reports whether the task will still run
func (t *Task) Pending() bool {
	return t != nil && !t.done && !t.cancelled
}

// Due returns the simulated time the task runs at
func (t *Task) Due() time.Duration {
	return t.due
}

// Scheduler runs callbacks at simulated times on the game loop
// Not safe for concurrent use
type Scheduler struct {
	now    time.Duration
	nextID uint64
	queue  taskHeap
}

// NewScheduler creates an empty scheduler at simulated time zero
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the time of the last Advance
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once delay has elapsed
func (s *Scheduler) After(delay time.Duration, fn func()) *Task {
	s.nextID++
	t := &Task{id: s.nextID, due: s.now + delay, fn: fn}
	heap.Push(&s.queue, t)
	return t
}

// Advance moves time forward and runs due tasks in due order
// Tasks scheduled by callbacks run in the same call if already due
// Returns the number of callbacks executed
func (s *Scheduler) Advance(now time.Duration) int {
	if now > s.now {
		s.now = now
	}

	ran := 0
	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.due > s.now {
			break
		}
		heap.Pop(&s.queue)
		if next.cancelled {
			continue
		}
		next.done = true
		next.fn()
		ran++
	}
	return ran
}

// Len returns the number of queued tasks, including cancelled ones not yet reached
func (s *Scheduler) Len() int {
	return s.queue.Len()
}

// taskHeap orders tasks by due time, then by scheduling order
type taskHeap []*Task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].id < h[j].id
}

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *taskHeap) Push(x any) {
	t := x.(*Task)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
