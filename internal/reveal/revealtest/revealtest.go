// Package revealtest provides a hand-driven reveal.Observer for tests.
package revealtest

import "github.com/preethi-chalasani/portfolio/internal/reveal"

// Element is a fixed box that can be detached.
type Element struct {
	Rect     reveal.Rect
	Detached bool
}

func (e *Element) Bounds() (reveal.Rect, bool) {
	if e == nil || e.Detached {
		return reveal.Rect{}, false
	}
	return e.Rect, true
}

// Subscription records one Observe call.
type Subscription struct {
	Element   reveal.Element
	Options   reveal.Options
	Cancelled bool
	cb        func(reveal.Entry)
}

func (s *Subscription) Cancel() {
	s.Cancelled = true
}

// Observer records watchers and never notifies on its own.
type Observer struct {
	subs []*Subscription
}

func (o *Observer) Observe(el reveal.Element, opts reveal.Options, cb func(reveal.Entry)) reveal.Subscription {
	s := &Subscription{Element: el, Options: opts, cb: cb}
	o.subs = append(o.subs, s)
	return s
}

// Fire delivers an entry to every live watcher of el and returns how many
// were notified.
func (o *Observer) Fire(el reveal.Element, intersecting bool) int {
	n := 0
	for _, s := range append([]*Subscription(nil), o.subs...) {
		if s.Element != el || s.Cancelled {
			continue
		}
		Deliver(s, intersecting)
		n++
	}
	return n
}

// Deliver sends an entry to s even if it was cancelled, the way a queued
// browser callback can still arrive after disconnect.
func Deliver(s *Subscription, intersecting bool) {
	ratio := 0.0
	if intersecting {
		ratio = 1
	}
	s.cb(reveal.Entry{Element: s.Element, Intersecting: intersecting, Ratio: ratio})
}

// Subscriptions returns every watcher ever installed, in order.
func (o *Observer) Subscriptions() []*Subscription {
	return o.subs
}

// Active returns the number of watchers not cancelled.
func (o *Observer) Active() int {
	n := 0
	for _, s := range o.subs {
		if !s.Cancelled {
			n++
		}
	}
	return n
}
