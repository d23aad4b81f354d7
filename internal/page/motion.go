package page

import (
	"time"

	"github.com/preethi-chalasani/portfolio/internal/reveal"
)

// Entrance timings shared by the rendering layers.
const (
	PageFade        = 500 * time.Millisecond
	NavSlide        = 500 * time.Millisecond
	SectionFade     = 600 * time.Millisecond
	HeroDelay       = 100 * time.Millisecond
	HeroStagger     = 100 * time.Millisecond
	ScrollCueDelay  = 800 * time.Millisecond
	SecondaryDelay  = 150 * time.Millisecond
	BarDuration     = 800 * time.Millisecond
	BarBaseDelay    = 300 * time.Millisecond
	BarStagger      = 80 * time.Millisecond
	PanelTransition = 400 * time.Millisecond
)

// Stagger returns the delay of the i-th item in a sequence.
func Stagger(base, step time.Duration, i int) time.Duration {
	return base + time.Duration(i)*step
}

// Elements is a fixed Layout.
type Elements map[SectionID]reveal.Element

func (e Elements) Element(id SectionID) reveal.Element {
	return e[id]
}
