package schedule

import "time"

// Fake is a manually advanced Clock. Callbacks run inline on the goroutine
// calling Advance, in due order, ties broken by scheduling order.
type Fake struct {
	now     time.Time
	seq     uint64
	pending []*fakeTimer
}

type fakeTimer struct {
	at      time.Time
	seq     uint64
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewFake returns a fake clock reading start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (c *Fake) Now() time.Time {
	return c.now
}

func (c *Fake) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &fakeTimer{at: c.now.Add(d), seq: c.seq, f: f}
	c.pending = append(c.pending, t)
	return t
}

// Advance moves the clock forward by d, firing every callback that falls due.
// Callbacks scheduled by a firing callback run in the same Advance if they are
// due before the target time. A negative d counts as zero.
func (c *Fake) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	target := c.now.Add(d)
	for {
		next := c.nextDue(target)
		if next == nil {
			break
		}
		c.now = next.at
		next.fired = true
		next.f()
	}
	c.now = target
	c.compact()
}

// Pending returns how many callbacks are still scheduled.
func (c *Fake) Pending() int {
	n := 0
	for _, t := range c.pending {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (c *Fake) nextDue(target time.Time) *fakeTimer {
	var next *fakeTimer
	for _, t := range c.pending {
		if t.stopped || t.fired || t.at.After(target) {
			continue
		}
		if next == nil || t.at.Before(next.at) || (t.at.Equal(next.at) && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (c *Fake) compact() {
	live := c.pending[:0]
	for _, t := range c.pending {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(c.pending); i++ {
		c.pending[i] = nil
	}
	c.pending = live
}
