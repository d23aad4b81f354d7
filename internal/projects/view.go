package projects

import (
	"time"

	"github.com/preethi-chalasani/portfolio/internal/content"
)

const (
	// RowBaseDelay and RowStagger space out the rows' entrance once the list
	// is revealed.
	RowBaseDelay = 100 * time.Millisecond
	RowStagger   = 80 * time.Millisecond

	// MaxTags is how many domain tags a collapsed row shows.
	MaxTags = 2
)

// Row is what the rendering layer needs to draw one case study.
type Row struct {
	Project  content.Project
	Index    int
	Expanded bool
	Delay    time.Duration
	Tags     []string
}

// View pairs the read-only record list with its expansion state.
type View struct {
	records []content.Project
	state   Expansion
}

// NewView returns a collapsed view over records.
func NewView(records []content.Project) *View {
	return &View{records: records}
}

// Toggle applies Expansion.Toggle to the view's state.
func (v *View) Toggle(id string) {
	v.state = v.state.Toggle(id)
}

// State returns the current expansion.
func (v *View) State() Expansion {
	return v.state
}

// SetState replaces the expansion, e.g. from a URL.
func (v *View) SetState(e Expansion) {
	v.state = e
}

// Len returns the number of records.
func (v *View) Len() int {
	return len(v.records)
}

// ID returns the id of the record at index i.
func (v *View) ID(i int) string {
	return v.records[i].ID
}

// Rows returns one row per record, in content order.
func (v *View) Rows() []Row {
	rows := make([]Row, 0, len(v.records))
	for i, p := range v.records {
		rows = append(rows, Row{
			Project:  p,
			Index:    i,
			Expanded: v.state.IsOpen(p.ID),
			Delay:    RowBaseDelay + time.Duration(i)*RowStagger,
			Tags:     Tags(p),
		})
	}
	return rows
}

// Tags returns the leading domain tags shown on a collapsed row.
func Tags(p content.Project) []string {
	if len(p.Domains) <= MaxTags {
		return p.Domains
	}
	return p.Domains[:MaxTags]
}
