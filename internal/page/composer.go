// Package page composes the intro and the page sections into one state the
// rendering layer can draw from.
package page

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/preethi-chalasani/portfolio/internal/content"
	"github.com/preethi-chalasani/portfolio/internal/intro"
	"github.com/preethi-chalasani/portfolio/internal/projects"
	"github.com/preethi-chalasani/portfolio/internal/reveal"
	"github.com/preethi-chalasani/portfolio/internal/schedule"
)

// SectionID names a section of the page tree.
type SectionID string

const (
	Navigation SectionID = "navigation"
	Hero       SectionID = "hero"
	Projects   SectionID = "projects"
	About      SectionID = "about"
	Contact    SectionID = "contact"
	Footer     SectionID = "footer"
)

// Sections lists the page tree in document order.
var Sections = []SectionID{Navigation, Hero, Projects, About, Contact, Footer}

// Layout locates section elements. Element may return nil or a detached
// element while the section is not on the page yet.
type Layout interface {
	Element(id SectionID) reveal.Element
}

// Config wires a Composer to its queue, viewport and content.
type Config struct {
	Clock    schedule.Clock
	Observer reveal.Observer
	Content  *content.Site
	// Reveal overrides reveal.DefaultOptions for every section.
	Reveal *reveal.Options
	Logger *zap.Logger
}

// Composer shows the intro until it completes, then mounts every section with
// its own reveal controller. It must be used from the clock's queue.
type Composer struct {
	clock     schedule.Clock
	observer  reveal.Observer
	opts      reveal.Options
	logger    *zap.Logger
	site      *content.Site
	view      *projects.View
	intro     *intro.Sequencer
	introDone bool
	mounted   bool
	unmounted bool
	layout    Layout
	sections  map[SectionID]*reveal.Controller
	listeners []func()
}

// New validates cfg and returns an unmounted composer.
func New(cfg Config) (*Composer, error) {
	if cfg.Clock == nil || cfg.Observer == nil {
		return nil, fmt.Errorf("page: clock and observer are required")
	}
	opts := reveal.DefaultOptions()
	if cfg.Reveal != nil {
		opts = *cfg.Reveal
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("page: reveal options: %w", err)
	}
	site := cfg.Content
	if site == nil {
		site = &content.Site{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{
		clock:    cfg.Clock,
		observer: cfg.Observer,
		opts:     opts,
		logger:   logger,
		site:     site,
		view:     projects.NewView(site.Work.Projects),
		sections: make(map[SectionID]*reveal.Controller),
	}, nil
}

// OnChange registers fn to run after every state transition.
func (c *Composer) OnChange(fn func()) {
	c.listeners = append(c.listeners, fn)
}

// Mount starts the intro. Sections are mounted against layout once it
// completes. Mounting twice does nothing.
func (c *Composer) Mount(layout Layout) {
	if c.mounted || c.unmounted {
		return
	}
	c.mounted = true
	c.layout = layout
	c.intro = intro.New(c.clock, intro.WithLogger(c.logger.Named("intro")))
	c.intro.OnPhase(func(intro.Phase) { c.changed() })
	c.intro.Start(c.finishIntro)
	c.changed()
}

func (c *Composer) finishIntro() {
	if c.unmounted {
		return
	}
	c.intro.Stop()
	c.intro = nil
	c.introDone = true
	c.logger.Debug("intro complete, mounting sections")

	for _, id := range Sections {
		ctrl, err := reveal.New(c.observer, c.opts, reveal.WithLogger(c.logger.With(zap.String("section", string(id)))))
		if err != nil {
			// options were validated in New
			c.logger.Error("section reveal", zap.String("section", string(id)), zap.Error(err))
			continue
		}
		ctrl.OnChange(func(bool) { c.changed() })
		c.sections[id] = ctrl
	}
	c.Attach()
	c.changed()
}

// Attach retries observation for sections whose element was not on the page
// yet and returns how many are still waiting.
func (c *Composer) Attach() int {
	if !c.introDone || c.unmounted {
		return 0
	}
	waiting := 0
	for _, id := range Sections {
		ctrl, ok := c.sections[id]
		if !ok {
			continue
		}
		var el reveal.Element
		if c.layout != nil {
			el = c.layout.Element(id)
		}
		if !ctrl.Observe(el) {
			waiting++
		}
	}
	return waiting
}

// Unmount cancels the intro and detaches every section. Callbacks arriving
// later are ignored.
func (c *Composer) Unmount() {
	if c.unmounted {
		return
	}
	c.unmounted = true
	if c.intro != nil {
		c.intro.Stop()
		c.intro = nil
	}
	for _, ctrl := range c.sections {
		ctrl.Close()
	}
	c.logger.Debug("page unmounted")
}

// Toggle opens or collapses a case study.
func (c *Composer) Toggle(id string) {
	c.view.Toggle(id)
	c.changed()
}

// SetExpansion replaces the case study selection.
func (c *Composer) SetExpansion(e projects.Expansion) {
	c.view.SetState(e)
	c.changed()
}

// Projects returns the case study list view.
func (c *Composer) Projects() *projects.View {
	return c.view
}

// Content returns the page copy.
func (c *Composer) Content() *content.Site {
	return c.site
}

// IntroDone reports whether the page tree has been revealed.
func (c *Composer) IntroDone() bool {
	return c.introDone
}

// Visible reports whether section id should be drawn in its revealed state.
func (c *Composer) Visible(id SectionID) bool {
	if !c.introDone {
		return false
	}
	ctrl, ok := c.sections[id]
	if !ok {
		return false
	}
	return ctrl.Visible()
}

// State is a point-in-time view of the page for rendering.
type State struct {
	IntroActive  bool
	Phase        intro.Phase
	IntroElapsed time.Duration
	Visible      map[SectionID]bool
	Expansion    projects.Expansion
}

func (c *Composer) Snapshot() State {
	s := State{
		IntroActive: c.intro != nil,
		Phase:       intro.Complete,
		Visible:     make(map[SectionID]bool, len(Sections)),
		Expansion:   c.view.State(),
	}
	if c.intro != nil {
		s.Phase = c.intro.Phase()
		s.IntroElapsed = c.intro.Elapsed()
	} else if !c.introDone {
		s.Phase = intro.Scatter
	}
	for _, id := range Sections {
		s.Visible[id] = c.Visible(id)
	}
	return s
}

func (c *Composer) changed() {
	if c.unmounted {
		return
	}
	for _, fn := range c.listeners {
		fn()
	}
}
