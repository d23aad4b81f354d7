package reveal

// Viewport is a geometric Observer: it knows the visible window onto the page
// and notifies watchers when their element crosses the threshold.
//
// Each watcher receives one entry when it is installed and then one entry per
// change of its intersecting state, evaluated on ScrollTo, ScrollBy, Resize
// and Refresh. Callbacks run synchronously on the caller's goroutine.
type Viewport struct {
	root Rect
	subs []*viewportSub
}

type viewportSub struct {
	viewport     *Viewport
	el           Element
	threshold    float64
	margin       Margin
	cb           func(Entry)
	intersecting bool
	cancelled    bool
}

func (s *viewportSub) Cancel() {
	if s.cancelled {
		return
	}
	s.cancelled = true
	s.viewport.remove(s)
}

// NewViewport returns a viewport of the given size scrolled to the top.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{root: Rect{W: width, H: height}}
}

// Observe installs a watcher and delivers its initial entry before returning.
// An unparsable root margin is treated as no margin.
func (v *Viewport) Observe(el Element, opts Options, cb func(Entry)) Subscription {
	margin, _ := ParseMargin(opts.RootMargin)
	s := &viewportSub{
		viewport:  v,
		el:        el,
		threshold: opts.Threshold,
		margin:    margin,
		cb:        cb,
	}
	v.subs = append(v.subs, s)

	entry := v.measure(s)
	s.intersecting = entry.Intersecting
	s.cb(entry)
	return s
}

// Root returns the visible window in page coordinates.
func (v *Viewport) Root() Rect {
	return v.root
}

// ScrollTo moves the top edge of the viewport to y.
func (v *Viewport) ScrollTo(y float64) {
	v.root.Y = y
	v.Refresh()
}

// ScrollBy moves the viewport by dy.
func (v *Viewport) ScrollBy(dy float64) {
	v.ScrollTo(v.root.Y + dy)
}

// Resize changes the viewport size, keeping its scroll position.
func (v *Viewport) Resize(width, height float64) {
	v.root.W = width
	v.root.H = height
	v.Refresh()
}

// Refresh re-evaluates every watcher, e.g. after the page layout changed.
func (v *Viewport) Refresh() {
	subs := append([]*viewportSub(nil), v.subs...)
	for _, s := range subs {
		if s.cancelled {
			continue
		}
		entry := v.measure(s)
		if entry.Intersecting == s.intersecting {
			continue
		}
		s.intersecting = entry.Intersecting
		s.cb(entry)
	}
}

// Len returns the number of installed watchers.
func (v *Viewport) Len() int {
	return len(v.subs)
}

// Measure computes the entry el would get under opts at the current position.
func (v *Viewport) Measure(el Element, opts Options) Entry {
	margin, _ := ParseMargin(opts.RootMargin)
	return v.measure(&viewportSub{el: el, threshold: opts.Threshold, margin: margin})
}

func (v *Viewport) measure(s *viewportSub) Entry {
	entry := Entry{Element: s.el}
	bounds, ok := s.el.Bounds()
	if !ok {
		return entry
	}
	overlap, ok := bounds.Intersect(s.margin.Apply(v.root))
	if !ok {
		return entry
	}
	if area := bounds.Area(); area > 0 {
		entry.Ratio = overlap.Area() / area
	} else {
		entry.Ratio = 1
	}
	entry.Intersecting = entry.Ratio >= s.threshold
	return entry
}

func (v *Viewport) remove(s *viewportSub) {
	for i, cur := range v.subs {
		if cur == s {
			v.subs = append(v.subs[:i], v.subs[i+1:]...)
			return
		}
	}
}
