// Package schedule delivers delayed callbacks onto a single execution queue.
//
// Components built on this package are not safe for concurrent use. Every
// callback a Clock schedules runs on the queue that owns the clock, and the
// component's own methods must be called from that same queue.
package schedule

import (
	"sync"
	"time"
)

// Clock schedules f to run on the clock's execution queue after d.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending callback. Stop reports whether it prevented the call.
type Timer interface {
	Stop() bool
}

// Loop is a real-time Clock backed by one goroutine that runs posted work in
// order, one item at a time.
type Loop struct {
	work      chan func()
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewLoop starts a loop. Close must be called to release its goroutine.
func NewLoop() *Loop {
	l := &Loop{
		work: make(chan func(), 64),
		done: make(chan struct{}),
	}
	l.wg.Add(1)
	go l.run()
	return l
}

func (l *Loop) run() {
	defer l.wg.Done()
	for {
		select {
		case f := <-l.work:
			f()
		case <-l.done:
			return
		}
	}
}

// Now returns the wall clock time.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// AfterFunc posts f to the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, func() {
		l.Do(f)
	})
}

// Do posts f to the loop. It reports false if the loop is closed.
func (l *Loop) Do(f func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.work <- f:
		return true
	case <-l.done:
		return false
	}
}

// Sync runs f on the loop and waits for it to return. It must not be called
// from a callback running on the same loop.
func (l *Loop) Sync(f func()) bool {
	ran := make(chan struct{})
	if !l.Do(func() {
		defer close(ran)
		f()
	}) {
		return false
	}
	select {
	case <-ran:
		return true
	case <-l.done:
		return false
	}
}

// Close stops the loop after the callback in progress, if any, returns.
// Work still queued is dropped.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
	})
	l.wg.Wait()
}
