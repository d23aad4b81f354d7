package preview

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/preethi-chalasani/portfolio/internal/intro"
	"github.com/preethi-chalasani/portfolio/internal/page"
)

func (m *Model) View() string {
	if m.quitting || m.width <= 0 || m.height <= 0 {
		return ""
	}
	s := m.composer.Snapshot()
	if !m.composer.IntroDone() {
		return m.introView(s)
	}

	rows := m.pageRows()
	out := make([]string, 0, rows+1)
	y := 0
	for _, id := range page.Sections {
		for _, line := range m.blocks[id].lines {
			if y >= m.scroll && y < m.scroll+rows {
				if s.Visible[id] {
					out = append(out, line)
				} else {
					out = append(out, "")
				}
			}
			y++
		}
	}
	for len(out) < rows {
		out = append(out, "")
	}
	out = append(out, m.help.View(m.keys))
	return strings.Join(out, "\n")
}

// introView draws the glyphs and fragments at their offsets for the current
// instant, one terminal cell per ColWidth by RowHeight pixels.
func (m *Model) introView(s page.State) string {
	w, h := m.width, m.height
	grid := make([][]string, h)
	for r := range grid {
		grid[r] = make([]string, w)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}
	put := func(row, col int, cell string) {
		if row >= 0 && row < h && col >= 0 && col < w {
			grid[row][col] = cell
		}
	}
	cx, cy := w/2, h/2

	for _, f := range intro.Fragments() {
		o := f.At(s.IntroElapsed)
		if o.Opacity < 0.05 {
			continue
		}
		put(cy+cells(o.Y, RowHeight), cx+cells(o.X, ColWidth), fragmentStyle.Render("·"))
	}

	glyphs := intro.Glyphs(m.composer.Content().Intro)
	left := cx - len(glyphs) + 1
	sinceResolve := s.IntroElapsed - intro.ResolveAt
	for _, g := range glyphs {
		o := g.At(sinceResolve)
		style := glyphStyle
		if o.Opacity < 0.6 || s.Phase == intro.Complete {
			style = faintStyle
		}
		put(cy+cells(o.Y, RowHeight), left+2*g.Index+cells(o.X, ColWidth), style.Render(string(g.Char)))
	}

	if t := s.IntroElapsed - intro.LineDelay; t > 0 && len(glyphs) > 0 {
		span := 2*len(glyphs) - 1
		n := min(span, int(float64(span)*float64(t)/float64(intro.LineDuration)))
		for i := 0; i < n; i++ {
			put(cy+2, left+i, ruleStyle.Render("─"))
		}
	}

	lines := make([]string, h)
	for r := range grid {
		lines[r] = strings.Join(grid[r], "")
	}
	return strings.Join(lines, "\n")
}

func cells(px float64, size int) int {
	return int(math.Round(px / float64(size)))
}

func wrap(text string, width int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return strings.Split(lipgloss.NewStyle().Width(width).Render(text), "\n")
}

func (m *Model) renderSection(id page.SectionID, w int) []string {
	var lines []string
	switch id {
	case page.Navigation:
		lines = m.renderNavigation(w)
	case page.Hero:
		lines = m.renderHero(w)
	case page.Projects:
		lines = m.renderProjects(w)
	case page.About:
		lines = m.renderAbout(w)
	case page.Contact:
		lines = m.renderContact(w)
	case page.Footer:
		lines = m.renderFooter(w)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

func (m *Model) renderNavigation(w int) []string {
	site := m.composer.Content()
	labels := make([]string, 0, len(site.Navigation))
	for _, item := range site.Navigation {
		labels = append(labels, item.Label)
	}
	return []string{
		ownerStyle.Render(site.Owner) + "   " + subtleStyle.Render(strings.Join(labels, "  ")),
		ruleStyle.Render(strings.Repeat("─", w)),
	}
}

func (m *Model) renderHero(w int) []string {
	hero := m.composer.Content().Hero
	lines := []string{"", labelStyle.Render(strings.ToUpper(hero.Label)), ""}
	lines = append(lines, titleStyle.Render(hero.FirstName), surnameStyle.Render(hero.Surname), "")
	lines = append(lines, wrap(hero.Description, w)...)
	if hero.StatusValue != "" {
		lines = append(lines, "", labelStyle.Render(hero.StatusLabel)+" "+hero.StatusValue)
	}
	return append(lines, "", subtleStyle.Render("scroll ↓"), "")
}

func (m *Model) renderProjects(w int) []string {
	work := m.composer.Content().Work
	lines := []string{headingStyle.Render(work.Title)}
	lines = append(lines, wrap(subtleStyle.Render(work.Subtitle), w)...)
	lines = append(lines, "")

	for _, row := range m.composer.Projects().Rows() {
		marker, title := " ", row.Project.Title
		if row.Index == m.selected {
			marker, title = ">", selectedStyle.Render(title)
		}
		head := fmt.Sprintf("%s %02d  %s", marker, row.Index+1, title)
		if len(row.Tags) > 0 {
			head += "  " + tagStyle.Render("["+strings.Join(row.Tags, "] [")+"]")
		}
		if row.Project.Period != "" {
			head += "  " + subtleStyle.Render(row.Project.Period)
		}
		lines = append(lines, head)
		if !row.Expanded {
			continue
		}

		p, inner := row.Project, max(w-6, 10)
		indent := func(ls []string) {
			for _, l := range ls {
				lines = append(lines, "      "+l)
			}
		}
		indent(wrap(p.Abstract, inner))
		for _, part := range []struct{ title, body string }{
			{"Problem", p.Problem},
			{"Methodology", p.Methodology},
			{"Outcome", p.Outcome},
		} {
			if part.body == "" {
				continue
			}
			indent([]string{"", labelStyle.Render(part.title)})
			indent(wrap(part.body, inner))
			if part.title == "Problem" {
				for _, c := range p.Constraints {
					indent([]string{"• " + c})
				}
			}
		}
		if len(p.Domains) > 0 {
			indent([]string{"", tagStyle.Render(strings.Join(p.Domains, " · "))})
		}
		lines = append(lines, "")
	}
	return append(lines, "")
}

func (m *Model) renderAbout(w int) []string {
	about := m.composer.Content().About
	lines := []string{headingStyle.Render(about.Title), ""}
	for _, p := range about.Bio {
		lines = append(lines, wrap(p, w)...)
		lines = append(lines, "")
	}
	m.bar.Width = max(w-34, 10)
	for _, c := range about.Competencies {
		lines = append(lines, fmt.Sprintf("%-32s  %s", c.Area, m.bar.ViewAs(c.Fraction())))
	}
	if len(about.Tools) > 0 {
		lines = append(lines, "")
		lines = append(lines, wrap(subtleStyle.Render(strings.Join(about.Tools, " · ")), w)...)
	}
	return append(lines, "")
}

func (m *Model) renderContact(w int) []string {
	contact := m.composer.Content().Contact
	lines := []string{headingStyle.Render(contact.Title)}
	lines = append(lines, wrap(contact.Text, w)...)
	lines = append(lines, "")
	for _, l := range contact.Links {
		lines = append(lines, labelStyle.Render(fmt.Sprintf("%-12s", l.Label))+l.Value)
	}
	return append(lines, "")
}

// renderFooter pads the last section so it can cross a bottom root margin.
func (m *Model) renderFooter(w int) []string {
	site := m.composer.Content()
	return []string{
		ruleStyle.Render(strings.Repeat("─", w)),
		subtleStyle.Render(fmt.Sprintf("© %d %s", m.year, site.Owner)) + "  " + subtleStyle.Render(site.Footer.Note),
		"",
		"",
	}
}
