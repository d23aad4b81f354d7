package preview

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/preethi-chalasani/portfolio/internal/schedule"
)

// Clock is a schedule.Clock whose callbacks run inside the bubbletea update
// loop. Expired timers are delivered as messages; Handle runs them.
type Clock struct {
	fired     chan *teaTimer
	done      chan struct{}
	closeOnce sync.Once
}

// fireMsg carries an expired timer to Update.
type fireMsg struct {
	timer *teaTimer
}

type teaTimer struct {
	t       *time.Timer
	f       func()
	stopped bool
	ran     bool
}

// Stop prevents the callback if it has not run yet. It must be called from
// the update loop.
func (tm *teaTimer) Stop() bool {
	if tm.stopped || tm.ran {
		return false
	}
	tm.stopped = true
	tm.t.Stop()
	return true
}

// NewClock returns a clock. Close releases timers still in flight.
func NewClock() *Clock {
	return &Clock{
		fired: make(chan *teaTimer, 16),
		done:  make(chan struct{}),
	}
}

func (c *Clock) Now() time.Time {
	return time.Now()
}

func (c *Clock) AfterFunc(d time.Duration, f func()) schedule.Timer {
	tm := &teaTimer{f: f}
	tm.t = time.AfterFunc(d, func() {
		select {
		case c.fired <- tm:
		case <-c.done:
		}
	})
	return tm
}

// Wait returns a command that blocks until the next timer expires. The
// program must issue it again after each fireMsg.
func (c *Clock) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case tm := <-c.fired:
			return fireMsg{timer: tm}
		case <-c.done:
			return nil
		}
	}
}

// Handle runs the timer in msg unless it was stopped. It reports whether msg
// belonged to the clock and, if so, returns the next Wait.
func (c *Clock) Handle(msg tea.Msg) (tea.Cmd, bool) {
	fm, ok := msg.(fireMsg)
	if !ok {
		return nil, false
	}
	if tm := fm.timer; !tm.stopped && !tm.ran {
		tm.ran = true
		tm.f()
	}
	return c.Wait(), true
}

// Close drops every pending delivery.
func (c *Clock) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
