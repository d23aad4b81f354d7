// Package projects holds the case-study list state: which record, if any, has
// its detail panel open.
package projects

// Expansion is the single-selection state of the list. The zero value has
// every panel collapsed.
type Expansion struct {
	id   string
	open bool
}

// Expanded returns the state with id open.
func Expanded(id string) Expansion {
	return Expansion{id: id, open: true}
}

// Toggle collapses id if it is the open panel, otherwise opens id in place of
// whatever was open.
func (e Expansion) Toggle(id string) Expansion {
	if e.open && e.id == id {
		return Expansion{}
	}
	return Expanded(id)
}

// Open returns the open id, if any.
func (e Expansion) Open() (string, bool) {
	return e.id, e.open
}

// IsOpen reports whether id is the open panel.
func (e Expansion) IsOpen(id string) bool {
	return e.open && e.id == id
}

// String is the open id, or "" when collapsed. It round-trips through
// ParseExpansion.
func (e Expansion) String() string {
	if !e.open {
		return ""
	}
	return e.id
}

// ParseExpansion reads a state written by String.
func ParseExpansion(s string) Expansion {
	if s == "" {
		return Expansion{}
	}
	return Expanded(s)
}
