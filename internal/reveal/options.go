package reveal

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidThreshold = errors.New("threshold must be within [0, 1]")
	ErrInvalidMargin    = errors.New("invalid root margin")
)

// Options controls when an element counts as revealed.
type Options struct {
	// Threshold is the visible fraction of the element required to count as
	// intersecting.
	Threshold float64
	// RootMargin grows (positive) or shrinks (negative) the viewport edges,
	// in CSS margin order. Empty means no margin.
	RootMargin string
	// Once stops observing after the first reveal.
	Once bool
}

// DefaultOptions reveals an element once, when a tenth of it is at least 50px
// above the bottom edge of the viewport.
func DefaultOptions() Options {
	return Options{
		Threshold:  0.1,
		RootMargin: "0px 0px -50px 0px",
		Once:       true,
	}
}

// Validate checks the threshold range and the margin syntax.
func (o Options) Validate() error {
	if o.Threshold < 0 || o.Threshold > 1 || o.Threshold != o.Threshold {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, o.Threshold)
	}
	if _, err := ParseMargin(o.RootMargin); err != nil {
		return err
	}
	return nil
}

// Length is a margin component in pixels or percent of the root size.
type Length struct {
	Value   float64
	Percent bool
}

func (l Length) resolve(size float64) float64 {
	if l.Percent {
		return size * l.Value / 100
	}
	return l.Value
}

func (l Length) String() string {
	unit := "px"
	if l.Percent {
		unit = "%"
	}
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + unit
}

// Margin holds the four root edge offsets.
type Margin struct {
	Top, Right, Bottom, Left Length
}

// ParseMargin parses one to four space separated lengths, each either "0" or
// a number suffixed with "px" or "%", expanded the way CSS margins are.
func ParseMargin(s string) (Margin, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Margin{}, nil
	}
	if len(fields) > 4 {
		return Margin{}, fmt.Errorf("%w %q: want at most 4 values", ErrInvalidMargin, s)
	}
	vals := make([]Length, len(fields))
	for i, f := range fields {
		l, err := parseLength(f)
		if err != nil {
			return Margin{}, fmt.Errorf("%w %q: %v", ErrInvalidMargin, s, err)
		}
		vals[i] = l
	}
	switch len(vals) {
	case 1:
		return Margin{vals[0], vals[0], vals[0], vals[0]}, nil
	case 2:
		return Margin{vals[0], vals[1], vals[0], vals[1]}, nil
	case 3:
		return Margin{vals[0], vals[1], vals[2], vals[1]}, nil
	default:
		return Margin{vals[0], vals[1], vals[2], vals[3]}, nil
	}
}

func parseLength(s string) (Length, error) {
	var l Length
	num := s
	switch {
	case strings.HasSuffix(s, "px"):
		num = strings.TrimSuffix(s, "px")
	case strings.HasSuffix(s, "%"):
		num = strings.TrimSuffix(s, "%")
		l.Percent = true
	case s != "0":
		return l, fmt.Errorf("length %q needs a px or %% unit", s)
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return l, fmt.Errorf("length %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return l, fmt.Errorf("length %q is not finite", s)
	}
	l.Value = v
	return l, nil
}

func (m Margin) String() string {
	return strings.Join([]string{m.Top.String(), m.Right.String(), m.Bottom.String(), m.Left.String()}, " ")
}

// Apply returns root grown by the margin. Percentages resolve against the
// root's height for top and bottom and its width for left and right.
func (m Margin) Apply(root Rect) Rect {
	top := m.Top.resolve(root.H)
	bottom := m.Bottom.resolve(root.H)
	left := m.Left.resolve(root.W)
	right := m.Right.resolve(root.W)
	return Rect{
		X: root.X - left,
		Y: root.Y - top,
		W: root.W + left + right,
		H: root.H + top + bottom,
	}
}
