// Package content is the page's static copy, embedded at build time.
package content

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var embedded []byte

// Site is everything the page displays.
type Site struct {
	Owner      string    `yaml:"owner" json:"owner"`
	Intro      string    `yaml:"intro" json:"intro"`
	Hero       Hero      `yaml:"hero" json:"hero"`
	Navigation []NavItem `yaml:"navigation" json:"navigation"`
	Work       Work      `yaml:"work" json:"work"`
	About      About     `yaml:"about" json:"about"`
	Contact    Contact   `yaml:"contact" json:"contact"`
	Footer     Footer    `yaml:"footer" json:"footer"`
}

type Hero struct {
	Label       string `yaml:"label" json:"label"`
	FirstName   string `yaml:"first_name" json:"first_name"`
	Surname     string `yaml:"surname" json:"surname"`
	Description string `yaml:"description" json:"description"`
	StatusLabel string `yaml:"status_label" json:"status_label"`
	StatusValue string `yaml:"status_value" json:"status_value"`
}

type NavItem struct {
	Label string `yaml:"label" json:"label"`
	Href  string `yaml:"href" json:"href"`
}

type Work struct {
	Title    string    `yaml:"title" json:"title"`
	Subtitle string    `yaml:"subtitle" json:"subtitle"`
	Projects []Project `yaml:"projects" json:"projects"`
}

// Project is one case study, laid out like a paper: problem, method, result.
type Project struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Abstract    string   `yaml:"abstract" json:"abstract"`
	Problem     string   `yaml:"problem" json:"problem"`
	Constraints []string `yaml:"constraints" json:"constraints"`
	Methodology string   `yaml:"methodology" json:"methodology"`
	Outcome     string   `yaml:"outcome" json:"outcome"`
	Domains     []string `yaml:"domains" json:"domains"`
	Period      string   `yaml:"period" json:"period"`
	Link        string   `yaml:"link,omitempty" json:"link,omitempty"`
}

type About struct {
	Title        string       `yaml:"title" json:"title"`
	Bio          []string     `yaml:"bio" json:"bio"`
	Competencies []Competency `yaml:"competencies" json:"competencies"`
	Tools        []string     `yaml:"tools" json:"tools"`
}

// Competency is a self-assessed skill level in percent.
type Competency struct {
	Area  string `yaml:"area" json:"area"`
	Level int    `yaml:"level" json:"level"`
}

// Fraction returns Level as a bar fill in [0, 1].
func (c Competency) Fraction() float64 {
	switch {
	case c.Level <= 0:
		return 0
	case c.Level >= 100:
		return 1
	}
	return float64(c.Level) / 100
}

type Contact struct {
	Title string        `yaml:"title" json:"title"`
	Text  string        `yaml:"text" json:"text"`
	Links []ContactLink `yaml:"links" json:"links"`
}

type ContactLink struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
	Href  string `yaml:"href" json:"href"`
}

// External reports whether the link leaves the page for another site; mail
// links open in place.
func (l ContactLink) External() bool {
	return !strings.HasPrefix(l.Href, "mailto:")
}

type Footer struct {
	Note string `yaml:"note" json:"note"`
}

// Parse decodes a content document.
func Parse(data []byte) (*Site, error) {
	var s Site
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	return &s, nil
}

// Load reads a content document from path.
func Load(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Parse(data)
}

// Default returns the embedded content. It panics if the embedded document
// does not parse, which only a broken build can cause.
func Default() *Site {
	s, err := Parse(embedded)
	if err != nil {
		panic(err)
	}
	return s
}

// Project returns the case study with id.
func (s *Site) Project(id string) (Project, bool) {
	for _, p := range s.Work.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}
