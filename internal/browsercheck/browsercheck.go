// Package browsercheck drives a headless browser against a served page and
// checks that the intro completes, every section reveals when scrolled into
// view, and at most one case study is open at a time.
package browsercheck

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/preethi-chalasani/portfolio/internal/page"
)

const DefaultTimeout = 30 * time.Second

var ErrMissingURL = errors.New("page url is required")

// Config selects the page and the browser.
type Config struct {
	URL string
	// ControlURL attaches to a running browser instead of launching one.
	ControlURL string
	Timeout    time.Duration
	Logger     *zap.Logger
}

func (c Config) validate() error {
	if c.URL == "" {
		return ErrMissingURL
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("page url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("page url %q: scheme must be http or https", c.URL)
	}
	return nil
}

// Report is what the check observed.
type Report struct {
	IntroDone time.Duration
	Revealed  []page.SectionID
	Projects  int
}

// Run performs the check and returns the first failure.
func Run(ctx context.Context, cfg Config) (Report, error) {
	if err := cfg.validate(); err != nil {
		return Report{}, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	controlURL := cfg.ControlURL
	if controlURL == "" {
		l := launcher.New().Headless(true)
		u, err := l.Launch()
		if err != nil {
			return Report{}, fmt.Errorf("launch browser: %w", err)
		}
		defer func() {
			l.Kill()
			l.Cleanup()
		}()
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return Report{}, fmt.Errorf("connect browser: %w", err)
	}
	defer browser.Close()

	p, err := browser.Page(proto.TargetCreateTarget{URL: cfg.URL})
	if err != nil {
		return Report{}, fmt.Errorf("open %s: %w", cfg.URL, err)
	}
	p = p.Timeout(cfg.Timeout)

	var report Report
	start := time.Now()
	if _, err := p.Element(`html[data-intro="done"]`); err != nil {
		return report, fmt.Errorf("wait for intro: %w", err)
	}
	report.IntroDone = time.Since(start)
	logger.Info("intro done", zap.Duration("after", report.IntroDone))

	for _, id := range page.Sections {
		el, err := p.Element("#" + string(id))
		if err != nil {
			return report, fmt.Errorf("find section %s: %w", id, err)
		}
		if err := el.ScrollIntoView(); err != nil {
			return report, fmt.Errorf("scroll to %s: %w", id, err)
		}
		if _, err := p.Element(fmt.Sprintf(`#%s[data-revealed="true"]`, id)); err != nil {
			return report, fmt.Errorf("wait for %s reveal: %w", id, err)
		}
		report.Revealed = append(report.Revealed, id)
		logger.Debug("section revealed", zap.String("section", string(id)))
	}

	n, err := checkExpansion(p)
	report.Projects = n
	if err != nil {
		return report, err
	}
	return report, nil
}

// checkExpansion clicks through the case studies: opening one closes the
// previous, clicking the open one collapses the list.
func checkExpansion(p *rod.Page) (int, error) {
	toggles, err := p.Elements(".project-toggle")
	if err != nil {
		return 0, fmt.Errorf("find projects: %w", err)
	}
	if len(toggles) == 0 {
		return 0, nil
	}
	for i, t := range toggles {
		if err := t.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return len(toggles), fmt.Errorf("open project %d: %w", i, err)
		}
		open, err := expanded(p)
		if err != nil {
			return len(toggles), err
		}
		want, err := projectID(t)
		if err != nil {
			return len(toggles), err
		}
		if len(open) != 1 || open[0] != want {
			return len(toggles), fmt.Errorf("after opening %s: open projects %v", want, open)
		}
	}
	last := toggles[len(toggles)-1]
	if err := last.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return len(toggles), fmt.Errorf("collapse project: %w", err)
	}
	open, err := expanded(p)
	if err != nil {
		return len(toggles), err
	}
	if len(open) != 0 {
		return len(toggles), fmt.Errorf("after collapsing: open projects %v", open)
	}
	return len(toggles), nil
}

func expanded(p *rod.Page) ([]string, error) {
	rows, err := p.Elements(`[data-project][data-expanded="true"]`)
	if err != nil {
		return nil, fmt.Errorf("find open projects: %w", err)
	}
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		id, err := r.Attribute("data-project")
		if err != nil {
			return nil, fmt.Errorf("read project id: %w", err)
		}
		if id != nil {
			ids = append(ids, *id)
		}
	}
	return ids, nil
}

func projectID(toggle *rod.Element) (string, error) {
	row, err := toggle.Parent()
	if err != nil {
		return "", fmt.Errorf("project row: %w", err)
	}
	id, err := row.Attribute("data-project")
	if err != nil || id == nil {
		return "", fmt.Errorf("project row has no id: %w", err)
	}
	return *id, nil
}
