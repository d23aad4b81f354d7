package intro

import (
	"math"
	"time"
)

const (
	GlyphBaseDelay = 0
	GlyphStagger   = 40 * time.Millisecond
	GlyphDuration  = 800 * time.Millisecond

	FragmentCount     = 6
	FragmentBaseDelay = 100 * time.Millisecond
	FragmentStagger   = 50 * time.Millisecond
	FragmentDuration  = 1200 * time.Millisecond

	LineDelay    = 1000 * time.Millisecond
	LineDuration = 600 * time.Millisecond

	// ExitDuration is the overlay fade that starts when the Complete phase begins.
	ExitDuration = 400 * time.Millisecond
)

// Offset is a visual transform relative to an element's resting place.
type Offset struct {
	X, Y    float64
	Rotate  float64
	Scale   float64
	Opacity float64
}

// Rest is the settled transform of a resolved glyph.
var Rest = Offset{Scale: 1, Opacity: 1}

// ScatterOffset is the starting transform of glyph i. It is a pure function of
// i so every run of the animation starts from the same positions.
func ScatterOffset(i int) Offset {
	fi := float64(i)
	return Offset{
		X:       math.Sin(fi*1.7) * 120,
		Y:       math.Cos(fi*2.3) * 80,
		Rotate:  (fi - 3) * 25,
		Scale:   0.3 + float64(i%3)*0.2,
		Opacity: 0.3,
	}
}

// FragmentOffset is the starting transform of decorative fragment i.
func FragmentOffset(i int) Offset {
	fi := float64(i)
	return Offset{
		X:       math.Sin(fi*2.1) * 200,
		Y:       math.Cos(fi*1.8) * 150,
		Scale:   0.5 + fi*0.1,
		Opacity: 0.4,
	}
}

// Glyph is one character of the intro word.
type Glyph struct {
	Index    int
	Char     rune
	From     Offset
	Delay    time.Duration
	Duration time.Duration
}

// Glyphs splits word into glyphs with their scatter offsets and stagger.
func Glyphs(word string) []Glyph {
	var glyphs []Glyph
	for _, r := range word {
		i := len(glyphs)
		glyphs = append(glyphs, Glyph{
			Index:    i,
			Char:     r,
			From:     ScatterOffset(i),
			Delay:    GlyphBaseDelay + time.Duration(i)*GlyphStagger,
			Duration: GlyphDuration,
		})
	}
	return glyphs
}

// At returns the glyph's transform sinceResolve after the Resolve phase began.
func (g Glyph) At(sinceResolve time.Duration) Offset {
	return lerp(g.From, Rest, progress(sinceResolve-g.Delay, g.Duration))
}

// Settled reports whether the glyph has reached Rest.
func (g Glyph) Settled(sinceResolve time.Duration) bool {
	return sinceResolve >= g.Delay+g.Duration
}

// Fragment is a decorative particle that collapses into the centre.
type Fragment struct {
	Index    int
	From     Offset
	Delay    time.Duration
	Duration time.Duration
}

// Fragments returns the decorative fragments, animated from mount.
func Fragments() []Fragment {
	out := make([]Fragment, FragmentCount)
	for i := range out {
		out[i] = Fragment{
			Index:    i,
			From:     FragmentOffset(i),
			Delay:    FragmentBaseDelay + time.Duration(i)*FragmentStagger,
			Duration: FragmentDuration,
		}
	}
	return out
}

// At returns the fragment's transform elapsed after mount.
func (f Fragment) At(elapsed time.Duration) Offset {
	return lerp(f.From, Offset{}, progress(elapsed-f.Delay, f.Duration))
}

// progress maps elapsed/duration onto [0,1] with an exponential ease-out:
// fast start, gentle settle.
func progress(elapsed, duration time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	if duration <= 0 || elapsed >= duration {
		return 1
	}
	t := float64(elapsed) / float64(duration)
	return 1 - math.Pow(2, -10*t)
}

func lerp(a, b Offset, t float64) Offset {
	if t >= 1 {
		return b
	}
	mix := func(x, y float64) float64 { return x + (y-x)*t }
	return Offset{
		X:       mix(a.X, b.X),
		Y:       mix(a.Y, b.Y),
		Rotate:  mix(a.Rotate, b.Rotate),
		Scale:   mix(a.Scale, b.Scale),
		Opacity: mix(a.Opacity, b.Opacity),
	}
}
