package reveal

import "go.uber.org/zap"

// Controller owns the reveal signal of a single element.
//
// With Once set the signal latches: after the first intersecting entry the
// watcher is removed and Visible stays true. Without it the signal follows the
// latest entry. A Controller must be used from its observer's queue.
type Controller struct {
	observer  Observer
	opts      Options
	logger    *zap.Logger
	sub       Subscription
	visible   bool
	done      bool
	closed    bool
	listeners []func(bool)
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the logger for watcher lifecycle events.
func WithLogger(logger *zap.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a controller that will watch through observer.
func New(observer Observer, opts Options, options ...ControllerOption) (*Controller, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		observer: observer,
		opts:     opts,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// OnChange registers fn to be called whenever the signal flips.
func (c *Controller) OnChange(fn func(visible bool)) {
	c.listeners = append(c.listeners, fn)
}

// Observe starts watching el. It returns false without installing anything
// when el is nil or not attached yet, or the controller is closed; the caller
// is expected to try again once the element exists. Observing an element
// while a watcher is in place, or after a one-shot reveal, does nothing and
// returns true.
func (c *Controller) Observe(el Element) bool {
	if c.closed {
		return false
	}
	if c.sub != nil || c.done {
		return true
	}
	if el == nil {
		return false
	}
	if _, ok := el.Bounds(); !ok {
		c.logger.Debug("reveal target not attached")
		return false
	}

	sub := c.observer.Observe(el, c.opts, c.handle)
	// The observer may have delivered a reveal synchronously.
	if c.done || c.closed {
		sub.Cancel()
		return true
	}
	c.sub = sub
	return true
}

// Visible reports the current reveal signal.
func (c *Controller) Visible() bool {
	return c.visible
}

// Observing reports whether a watcher is installed.
func (c *Controller) Observing() bool {
	return c.sub != nil
}

// Close detaches the watcher. The signal keeps its last value and later
// entries are ignored.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.release()
}

func (c *Controller) handle(e Entry) {
	if c.closed || c.done {
		return
	}
	if e.Intersecting {
		if c.opts.Once {
			c.done = true
			c.release()
		}
		c.set(true)
		return
	}
	if !c.opts.Once {
		c.set(false)
	}
}

func (c *Controller) release() {
	if c.sub == nil {
		return
	}
	c.sub.Cancel()
	c.sub = nil
}

func (c *Controller) set(visible bool) {
	if c.visible == visible {
		return
	}
	c.visible = visible
	for _, fn := range c.listeners {
		fn(visible)
	}
}
