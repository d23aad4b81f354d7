// Package preview draws the page in a terminal. The bubbletea update loop is
// the execution queue: intro timers arrive as messages and the terminal scroll
// position drives a reveal.Viewport.
package preview

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/preethi-chalasani/portfolio/internal/content"
	"github.com/preethi-chalasani/portfolio/internal/page"
	"github.com/preethi-chalasani/portfolio/internal/reveal"
	"github.com/preethi-chalasani/portfolio/internal/schedule"
)

// A terminal cell is treated as RowHeight by ColWidth pixels so that reveal
// margins written in px keep roughly their on-screen size.
const (
	RowHeight = 20
	ColWidth  = 10

	frameInterval = time.Second / 30
	maxWidth      = 100
)

// Options configures a Model.
type Options struct {
	// Clock defaults to a Clock driven by the update loop.
	Clock  schedule.Clock
	Reveal *reveal.Options
	Year   int
	Logger *zap.Logger
}

type frameMsg time.Time

// block is a laid-out section. It is detached until the first layout.
type block struct {
	rect   reveal.Rect
	placed bool
	lines  []string
}

func (b *block) Bounds() (reveal.Rect, bool) {
	return b.rect, b.placed
}

// Model is the bubbletea model for the terminal preview.
type Model struct {
	composer *page.Composer
	viewport *reveal.Viewport
	clock    *Clock
	blocks   map[page.SectionID]*block
	keys     keyMap
	help     help.Model
	bar      progress.Model
	year     int

	width, height int
	scroll        int
	total         int
	selected      int
	quitting      bool
}

// New returns a model for s. The intro starts when the program calls Init.
func New(s *content.Site, opts Options) (*Model, error) {
	if s == nil {
		s = content.Default()
	}
	m := &Model{
		viewport: reveal.NewViewport(0, 0),
		blocks:   make(map[page.SectionID]*block, len(page.Sections)),
		keys:     defaultKeys(),
		help:     help.New(),
		bar:      progress.New(progress.WithSolidFill(string(accentColor)), progress.WithoutPercentage()),
		year:     opts.Year,
		selected: -1,
	}
	if m.year == 0 {
		m.year = time.Now().Year()
	}
	clock := opts.Clock
	if clock == nil {
		m.clock = NewClock()
		clock = m.clock
	}
	composer, err := page.New(page.Config{
		Clock:    clock,
		Observer: m.viewport,
		Content:  s,
		Reveal:   opts.Reveal,
		Logger:   opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	m.composer = composer
	layout := page.Elements{}
	for _, id := range page.Sections {
		b := &block{}
		m.blocks[id] = b
		layout[id] = b
	}
	composer.Mount(layout)
	return m, nil
}

// Composer exposes the page state being drawn.
func (m *Model) Composer() *page.Composer {
	return m.composer
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{frame()}
	if m.clock != nil {
		cmds = append(cmds, m.clock.Wait())
	}
	return tea.Batch(cmds...)
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.clock != nil {
		if cmd, ok := m.clock.Handle(msg); ok {
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.relayout()
		return m, nil

	case frameMsg:
		if m.composer.IntroDone() || m.quitting {
			return m, nil
		}
		return m, frame()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quit()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.scrollTo(m.scroll + 1)
	case key.Matches(msg, m.keys.Up):
		m.scrollTo(m.scroll - 1)
	case key.Matches(msg, m.keys.PageDown):
		m.scrollTo(m.scroll + m.pageRows())
	case key.Matches(msg, m.keys.PageUp):
		m.scrollTo(m.scroll - m.pageRows())
	case key.Matches(msg, m.keys.Next):
		m.selectProject(1)
	case key.Matches(msg, m.keys.Prev):
		m.selectProject(-1)
	case key.Matches(msg, m.keys.Toggle):
		if m.selected >= 0 {
			m.composer.Toggle(m.composer.Projects().ID(m.selected))
			m.relayout()
		}
	}
	return m, nil
}

// Close unmounts the page and stops the clock. It is safe to call after the
// quit key already did so.
func (m *Model) Close() {
	m.quit()
}

func (m *Model) quit() {
	if m.quitting {
		return
	}
	m.quitting = true
	m.composer.Unmount()
	if m.clock != nil {
		m.clock.Close()
	}
}

func (m *Model) selectProject(step int) {
	n := m.composer.Projects().Len()
	if n == 0 {
		return
	}
	switch {
	case m.selected < 0 && step > 0:
		m.selected = 0
	case m.selected < 0:
		m.selected = n - 1
	default:
		m.selected = (m.selected + step + n) % n
	}
	m.relayout()
}

// pageRows is the number of page lines on screen; the last row is help.
func (m *Model) pageRows() int {
	return max(m.height-1, 1)
}

func (m *Model) scrollTo(row int) {
	m.scroll = min(max(row, 0), max(m.total-m.pageRows(), 0))
	m.viewport.ScrollTo(float64(m.scroll * RowHeight))
}

// relayout redraws every section at the current width, stacks them top to
// bottom and lets the viewport re-evaluate its watchers.
func (m *Model) relayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	w := min(m.width, maxWidth)
	y := 0
	for _, id := range page.Sections {
		b := m.blocks[id]
		b.lines = m.renderSection(id, w)
		b.rect = reveal.Rect{Y: float64(y * RowHeight), W: float64(w * ColWidth), H: float64(len(b.lines) * RowHeight)}
		b.placed = true
		y += len(b.lines)
	}
	m.total = y
	m.viewport.Resize(float64(w*ColWidth), float64(m.pageRows()*RowHeight))
	m.scrollTo(m.scroll)
	m.composer.Attach()
}
