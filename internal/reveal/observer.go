// Package reveal turns viewport intersection notifications into a per-element
// "has been seen" signal for scroll-triggered animations.
package reveal

// Rect is an axis-aligned box in page coordinates.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Area() float64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// Intersect returns the overlap of r and o. Boxes that only share an edge
// intersect with zero area.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.W, o.X+o.W)
	y1 := min(r.Y+r.H, o.Y+o.H)
	if x1 < x0 || y1 < y0 {
		return Rect{}, false
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}, true
}

// Element is anything whose position on the page can be observed.
type Element interface {
	// Bounds returns the element's box, or false if it is not attached to
	// the page.
	Bounds() (Rect, bool)
}

// Entry is one intersection notification.
type Entry struct {
	Element      Element
	Intersecting bool
	Ratio        float64
}

// Observer installs intersection watchers. Callbacks are delivered on the
// caller's execution queue.
type Observer interface {
	Observe(el Element, opts Options, cb func(Entry)) Subscription
}

// Subscription is an installed watcher. Cancel is idempotent.
type Subscription interface {
	Cancel()
}
