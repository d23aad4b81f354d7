package schedule

import "time"

// Timers is the set of pending callbacks owned by one component. CancelAll
// releases all of them; a callback that was already on its way to the queue
// when CancelAll ran is dropped when it arrives.
type Timers struct {
	clock   Clock
	pending map[uint64]Timer
	next    uint64
	stopped bool
}

// NewTimers returns an empty set scheduling on clock.
func NewTimers(clock Clock) *Timers {
	return &Timers{
		clock:   clock,
		pending: make(map[uint64]Timer),
	}
}

// After schedules f to run after d. It reports false, scheduling nothing,
// once the set has been cancelled.
func (t *Timers) After(d time.Duration, f func()) bool {
	if t.stopped {
		return false
	}
	id := t.next
	t.next++
	t.pending[id] = t.clock.AfterFunc(d, func() {
		if t.stopped {
			return
		}
		if _, ok := t.pending[id]; !ok {
			return
		}
		delete(t.pending, id)
		f()
	})
	return true
}

// Len returns the number of callbacks that have not yet run.
func (t *Timers) Len() int {
	return len(t.pending)
}

// Stopped reports whether CancelAll has been called.
func (t *Timers) Stopped() bool {
	return t.stopped
}

// CancelAll stops every pending callback. The set schedules nothing afterwards.
func (t *Timers) CancelAll() {
	t.stopped = true
	for id, timer := range t.pending {
		timer.Stop()
		delete(t.pending, id)
	}
}
