// Package site renders the page to a static HTML document. The intro timeline,
// glyph offsets, stagger delays and reveal options are computed here and
// emitted as data attributes; the embedded script only applies them.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/preethi-chalasani/portfolio/internal/content"
	"github.com/preethi-chalasani/portfolio/internal/intro"
	"github.com/preethi-chalasani/portfolio/internal/page"
	"github.com/preethi-chalasani/portfolio/internal/projects"
	"github.com/preethi-chalasani/portfolio/internal/reveal"
)

//go:embed templates/index.html static
var files embed.FS

var tmpl = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"ms":    func(d time.Duration) int64 { return d.Milliseconds() },
	"inc":   func(i int) int { return i + 1 },
	"num":   func(f float64) string { return strconv.FormatFloat(f, 'f', 3, 64) },
	"exact": func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) },
	"pct":   func(f float64) string { return strconv.FormatFloat(f*100, 'f', 0, 64) + "%" },
	"stagger": func(base, step time.Duration, i int) int64 {
		return page.Stagger(base, step, i).Milliseconds()
	},
}).ParseFS(files, "templates/index.html"))

// Options tunes one rendering.
type Options struct {
	// Reveal is applied to every section. Zero value means reveal.DefaultOptions.
	Reveal *reveal.Options
	// Expansion is the project open on first paint.
	Expansion projects.Expansion
	// Year is printed in the footer. Zero means the current year.
	Year int
}

type glyphView struct {
	Char  string
	From  intro.Offset
	Delay time.Duration
}

type data struct {
	Site      *content.Site
	Glyphs    []glyphView
	Fragments []intro.Fragment
	Rows      []projects.Row
	Reveal    reveal.Options
	Margin    reveal.Margin
	Sections  []page.SectionID
	Year      int

	ResolveAt, CompleteAt, DoneAt time.Duration
	GlyphDuration, ExitDuration   time.Duration
	FragmentDuration              time.Duration
	LineDelay, LineDuration       time.Duration
	RowTransition                 time.Duration
	HeroDelay, HeroStagger        time.Duration
	SecondaryDelay, ScrollCue     time.Duration
	BarBase, BarStagger, BarSpeed time.Duration
}

// Render writes the page for s. The document is complete: it references only
// the assets served from Static under /static/.
func Render(w io.Writer, s *content.Site, opts Options) error {
	d, err := newData(s, opts)
	if err != nil {
		return err
	}
	if err := tmpl.Execute(w, d); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// RenderBytes renders into memory.
func RenderBytes(s *content.Site, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, s, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newData(s *content.Site, opts Options) (data, error) {
	if s == nil {
		s = &content.Site{}
	}
	ro := reveal.DefaultOptions()
	if opts.Reveal != nil {
		ro = *opts.Reveal
	}
	if err := ro.Validate(); err != nil {
		return data{}, err
	}
	margin, err := reveal.ParseMargin(ro.RootMargin)
	if err != nil {
		return data{}, err
	}
	year := opts.Year
	if year == 0 {
		year = time.Now().Year()
	}

	view := projects.NewView(s.Work.Projects)
	view.SetState(opts.Expansion)

	var glyphs []glyphView
	for _, g := range intro.Glyphs(s.Intro) {
		glyphs = append(glyphs, glyphView{Char: string(g.Char), From: g.From, Delay: g.Delay})
	}

	return data{
		Site:             s,
		Glyphs:           glyphs,
		Fragments:        intro.Fragments(),
		Rows:             view.Rows(),
		Reveal:           ro,
		Margin:           margin,
		Sections:         page.Sections,
		Year:             year,
		ResolveAt:        intro.ResolveAt,
		CompleteAt:       intro.CompleteAt,
		DoneAt:           intro.DoneAt,
		GlyphDuration:    intro.GlyphDuration,
		ExitDuration:     intro.ExitDuration,
		FragmentDuration: intro.FragmentDuration,
		LineDelay:        intro.LineDelay,
		LineDuration:     intro.LineDuration,
		RowTransition:    page.PanelTransition,
		HeroDelay:        page.HeroDelay,
		HeroStagger:      page.HeroStagger,
		SecondaryDelay:   page.SecondaryDelay,
		ScrollCue:        page.ScrollCueDelay,
		BarBase:          page.BarBaseDelay,
		BarStagger:       page.BarStagger,
		BarSpeed:         page.BarDuration,
	}, nil
}

// Static returns the stylesheet and script served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Build writes index.html and the static assets into dir.
func Build(dir string, s *content.Site, opts Options) error {
	if err := os.MkdirAll(filepath.Join(dir, "static"), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	html, err := RenderBytes(s, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "index.html"), html, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return fs.WalkDir(Static(), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		b, err := fs.ReadFile(Static(), path)
		if err != nil {
			return fmt.Errorf("read asset %s: %w", path, err)
		}
		if err := os.WriteFile(filepath.Join(dir, "static", path), b, 0o644); err != nil {
			return fmt.Errorf("write asset %s: %w", path, err)
		}
		return nil
	})
}
