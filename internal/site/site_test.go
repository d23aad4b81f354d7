package site

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/preethi-chalasani/portfolio/internal/content"
	"github.com/preethi-chalasani/portfolio/internal/projects"
	"github.com/preethi-chalasani/portfolio/internal/reveal"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var collapsedPanel = regexp.MustCompile(`class="project-panel" id="panel-[a-z-]+" hidden>`)

func render(t *testing.T, s *content.Site, opts Options) string {
	t.Helper()
	b, err := RenderBytes(s, opts)
	require.NoError(t, err)
	return string(b)
}

func TestRenderDefault(t *testing.T) {
	html := render(t, content.Default(), Options{Year: 2025})

	assert.Contains(t, html, `data-intro="scatter"`)
	assert.Contains(t, html, `data-resolve-at="200"`)
	assert.Contains(t, html, `data-complete-at="1400"`)
	assert.Contains(t, html, `data-done-at="1800"`)
	assert.Contains(t, html, `data-reveal-threshold="0.1"`)
	assert.Contains(t, html, `data-reveal-margin="0px 0px -50px 0px"`)
	assert.Contains(t, html, `data-reveal-once="true"`)
	assert.Contains(t, html, "&copy; 2025 Preethi Chalasani")

	assert.Equal(t, len("PREETHI"), strings.Count(html, `class="glyph"`))
	assert.Equal(t, 6, strings.Count(html, `class="fragment"`))
	assert.Equal(t, 6, strings.Count(html, `data-revealed="false"`))
	assert.Equal(t, 4, strings.Count(html, `data-expanded="false"`))
	assert.NotContains(t, html, `data-expanded="true"`)
}

func TestRenderGlyphOffsets(t *testing.T) {
	html := render(t, content.Default(), Options{Year: 2025})

	// glyph 0: sin(0)=0, cos(0)*80=80, (0-3)*25=-75, scale 0.3
	assert.Contains(t, html, `data-x="0.000" data-y="80.000" data-rotate="-75.000"`)
	assert.Contains(t, html, `data-scale="0.300" data-opacity="0.300"`)
	assert.Contains(t, html, `data-delay="40" data-duration="800"`)
}

func TestRenderRowsAndTags(t *testing.T) {
	html := render(t, content.Default(), Options{Year: 2025})

	assert.Contains(t, html, `<span class="project-index">01</span>`)
	assert.Contains(t, html, `<span class="project-index">04</span>`)
	assert.Contains(t, html, `data-project="biomicrofluidics"`)
	assert.Contains(t, html, `data-delay="180"`)
	assert.Equal(t, 4, strings.Count(html, `class="project-panel"`))
	assert.Len(t, collapsedPanel.FindAllString(html, -1), 4, "every panel starts collapsed")
}

func TestRenderExpansion(t *testing.T) {
	html := render(t, content.Default(), Options{Year: 2025, Expansion: projects.Expanded("clinical-research")})

	assert.Equal(t, 1, strings.Count(html, `data-expanded="true"`))
	assert.Contains(t, html, `data-project="clinical-research"`+"\n"+`            data-expanded="true"`)
	assert.Len(t, collapsedPanel.FindAllString(html, -1), 3)
}

func TestRenderExternalLinks(t *testing.T) {
	html := render(t, content.Default(), Options{Year: 2025})

	assert.Contains(t, html, `<a href="mailto:preethi@umd.edu">`)
	assert.Contains(t, html, `<a href="https://eng.umd.edu/" target="_blank" rel="noopener noreferrer">`)
}

func TestRenderCustomReveal(t *testing.T) {
	opts := reveal.Options{Threshold: 0.5, Once: false}
	html := render(t, content.Default(), Options{Year: 2025, Reveal: &opts})
	assert.Contains(t, html, `data-reveal-threshold="0.5"`)
	assert.Contains(t, html, `data-reveal-margin="0px 0px 0px 0px"`)
	assert.Contains(t, html, `data-reveal-once="false"`)

	bad := reveal.Options{Threshold: 0.1, RootMargin: "ten"}
	_, err := RenderBytes(content.Default(), Options{Reveal: &bad})
	assert.ErrorIs(t, err, reveal.ErrInvalidMargin)
}

func TestRenderRevealNormalized(t *testing.T) {
	opts := reveal.Options{Threshold: 0.0004, RootMargin: "0", Once: true}
	html := render(t, content.Default(), Options{Year: 2025, Reveal: &opts})
	assert.Contains(t, html, `data-reveal-threshold="0.0004"`)
	assert.Contains(t, html, `data-reveal-margin="0px 0px 0px 0px"`)

	opts.RootMargin = "10px 5%"
	html = render(t, content.Default(), Options{Year: 2025, Reveal: &opts})
	assert.Contains(t, html, `data-reveal-margin="10px 5% 10px 5%"`)

	for _, margin := range []string{"NaNpx", "Infpx 0px"} {
		bad := reveal.Options{Threshold: 0.1, RootMargin: margin}
		_, err := RenderBytes(content.Default(), Options{Reveal: &bad})
		assert.ErrorIs(t, err, reveal.ErrInvalidMargin, margin)
	}
}

func TestRenderEmptyContent(t *testing.T) {
	html := render(t, &content.Site{}, Options{Year: 2025})
	assert.NotContains(t, html, `class="glyph"`)
	assert.NotContains(t, html, `class="project stagger"`)
	assert.Equal(t, 6, strings.Count(html, `data-revealed="false"`))

	html = render(t, nil, Options{Year: 2025})
	assert.Contains(t, html, `data-section="footer"`)
}

func TestNavBoxIsNotShifted(t *testing.T) {
	css, err := fs.ReadFile(Static(), "site.css")
	require.NoError(t, err)

	// the observed nav must stay inside the viewport so it can cross the threshold
	rule := regexp.MustCompile(`(?m)^\.nav\[data-section\] \{([^}]*)\}`).FindSubmatch(css)
	require.NotNil(t, rule)
	assert.NotContains(t, string(rule[1]), "translate")
	assert.Contains(t, string(css), `.nav[data-section] > * { transform: translateY(-100%);`)
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Build(dir, content.Default(), Options{Year: 2025}))

	for _, name := range []string{"index.html", "static/site.css", "static/site.js"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}

const reloadDoc = `owner: Someone Else
intro: HELLO
`

func TestReloader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte("owner: First\n"), 0o644))

	got := make(chan *content.Site, 4)
	r, err := NewReloader(path, func(s *content.Site) { got <- s }, nil)
	require.NoError(t, err)
	r.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	// a broken document is skipped
	require.NoError(t, os.WriteFile(path, []byte("owner: [unterminated\n"), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Empty(t, got)

	require.NoError(t, os.WriteFile(path, []byte(reloadDoc), 0o644))
	select {
	case s := <-got:
		assert.Equal(t, "Someone Else", s.Owner)
		assert.Equal(t, "HELLO", s.Intro)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}

	time.Sleep(200 * time.Millisecond)
	for len(got) > 0 {
		assert.Equal(t, "Someone Else", (<-got).Owner)
	}

	// other files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte(reloadDoc), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Empty(t, got)

	cancel()
	require.NoError(t, <-done)
}
