package page

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preethi-chalasani/portfolio/internal/content"
	"github.com/preethi-chalasani/portfolio/internal/intro"
	"github.com/preethi-chalasani/portfolio/internal/reveal"
	"github.com/preethi-chalasani/portfolio/internal/reveal/revealtest"
	"github.com/preethi-chalasani/portfolio/internal/schedule"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	clock    *schedule.Fake
	observer *revealtest.Observer
	elements map[SectionID]*revealtest.Element
	composer *Composer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		clock:    schedule.NewFake(epoch),
		observer: &revealtest.Observer{},
		elements: make(map[SectionID]*revealtest.Element),
	}
	layout := Elements{}
	for _, id := range Sections {
		el := &revealtest.Element{}
		f.elements[id] = el
		layout[id] = el
	}
	c, err := New(Config{Clock: f.clock, Observer: f.observer, Content: content.Default()})
	require.NoError(t, err)
	f.composer = c
	c.Mount(layout)
	return f
}

func TestComposerGatesSectionsOnIntro(t *testing.T) {
	f := newFixture(t)
	c := f.composer

	s := c.Snapshot()
	assert.True(t, s.IntroActive)
	assert.Equal(t, intro.Scatter, s.Phase)
	assert.Empty(t, f.observer.Subscriptions())

	f.clock.Advance(intro.CompleteAt)
	assert.Equal(t, intro.Complete, c.Snapshot().Phase)
	assert.False(t, c.IntroDone())

	f.clock.Advance(intro.DoneAt - intro.CompleteAt)
	require.True(t, c.IntroDone())
	s = c.Snapshot()
	assert.False(t, s.IntroActive)
	assert.Equal(t, intro.Complete, s.Phase)
	assert.Len(t, f.observer.Subscriptions(), len(Sections))
	for _, id := range Sections {
		assert.False(t, s.Visible[id], id)
	}
}

func TestComposerSectionsRevealIndependently(t *testing.T) {
	f := newFixture(t)
	c := f.composer
	f.clock.Advance(intro.DoneAt)

	f.observer.Fire(f.elements[Contact], true)
	assert.True(t, c.Visible(Contact))
	assert.False(t, c.Visible(Projects))

	f.observer.Fire(f.elements[Contact], false)
	assert.True(t, c.Visible(Contact), "one-shot sections stay revealed")

	f.observer.Fire(f.elements[Hero], true)
	f.observer.Fire(f.elements[Navigation], true)
	assert.True(t, c.Visible(Hero))
	assert.True(t, c.Visible(Navigation))
}

func TestComposerAttachRetriesMissingElements(t *testing.T) {
	f := newFixture(t)
	f.elements[Footer].Detached = true
	f.clock.Advance(intro.DoneAt)

	assert.Len(t, f.observer.Subscriptions(), len(Sections)-1)

	f.elements[Footer].Detached = false
	assert.Zero(t, f.composer.Attach())
	assert.Len(t, f.observer.Subscriptions(), len(Sections))

	// already observed sections are left alone
	assert.Zero(t, f.composer.Attach())
	assert.Len(t, f.observer.Subscriptions(), len(Sections))
}

func TestComposerUnmountDuringIntro(t *testing.T) {
	f := newFixture(t)
	changes := 0
	f.composer.OnChange(func() { changes++ })

	f.clock.Advance(500 * time.Millisecond)
	require.Equal(t, intro.Resolve, f.composer.Snapshot().Phase)
	f.composer.Unmount()
	f.composer.Unmount()
	before := changes
	f.clock.Advance(10 * time.Second)

	assert.False(t, f.composer.IntroDone())
	assert.Empty(t, f.observer.Subscriptions())
	assert.Zero(t, f.clock.Pending())
	assert.Equal(t, before, changes)
}

func TestComposerUnmountDetachesSections(t *testing.T) {
	f := newFixture(t)
	f.clock.Advance(intro.DoneAt)
	require.Equal(t, len(Sections), f.observer.Active())

	f.composer.Unmount()
	assert.Zero(t, f.observer.Active())

	for _, sub := range f.observer.Subscriptions() {
		revealtest.Deliver(sub, true)
	}
	for _, id := range Sections {
		assert.False(t, f.composer.Visible(id))
	}
}

func TestComposerToggle(t *testing.T) {
	f := newFixture(t)
	c := f.composer
	changes := 0
	c.OnChange(func() { changes++ })

	c.Toggle("rna-therapeutics")
	c.Toggle("clinical-research")
	id, open := c.Snapshot().Expansion.Open()
	assert.True(t, open)
	assert.Equal(t, "clinical-research", id)

	c.Toggle("clinical-research")
	_, open = c.Snapshot().Expansion.Open()
	assert.False(t, open)
	assert.Equal(t, 3, changes)
}

func TestComposerNotifiesPhaseChanges(t *testing.T) {
	f := newFixture(t)
	var phases []intro.Phase
	f.composer.OnChange(func() {
		phases = append(phases, f.composer.Snapshot().Phase)
	})

	f.clock.Advance(intro.DoneAt)
	require.GreaterOrEqual(t, len(phases), 3)
	assert.Equal(t, []intro.Phase{intro.Resolve, intro.Complete}, phases[:2])
}

func TestComposerWithViewport(t *testing.T) {
	clock := schedule.NewFake(epoch)
	viewport := reveal.NewViewport(1000, 800)
	heights := map[SectionID]float64{Navigation: 100, Hero: 600}
	layout := Elements{}
	y := 0.0
	for _, id := range Sections {
		h, ok := heights[id]
		if !ok {
			h = 700
		}
		layout[id] = &revealtest.Element{Rect: reveal.Rect{Y: y, W: 1000, H: h}}
		y += h
	}
	c, err := New(Config{Clock: clock, Observer: viewport})
	require.NoError(t, err)
	c.Mount(layout)
	clock.Advance(intro.DoneAt)

	assert.True(t, c.Visible(Navigation))
	assert.True(t, c.Visible(Hero))
	assert.False(t, c.Visible(Projects))

	for pos := 0.0; pos <= y; pos += 300 {
		viewport.ScrollTo(pos)
	}
	for _, id := range Sections {
		assert.True(t, c.Visible(id), id)
	}
	assert.Zero(t, viewport.Len())
}

func TestNewValidates(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	bad := reveal.Options{Threshold: 2}
	_, err = New(Config{Clock: schedule.NewFake(epoch), Observer: &revealtest.Observer{}, Reveal: &bad})
	assert.ErrorIs(t, err, reveal.ErrInvalidThreshold)
}

func TestStagger(t *testing.T) {
	assert.Equal(t, 300*time.Millisecond, Stagger(BarBaseDelay, BarStagger, 0))
	assert.Equal(t, 620*time.Millisecond, Stagger(BarBaseDelay, BarStagger, 4))
}
