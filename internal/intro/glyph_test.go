package intro

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScatterOffsetSnapshot(t *testing.T) {
	want := []Offset{
		{X: 0, Y: 80, Rotate: -75, Scale: 0.3, Opacity: 0.3},
		{X: 118.99977725429623, Y: -53.30208170238593, Rotate: -50, Scale: 0.5, Opacity: 0.3},
		{X: -30.664932243219745, Y: -8.972202154804389, Rotate: -25, Scale: 0.7, Opacity: 0.3},
		{X: -111.09776187932789, Y: 65.25800801002859, Rotate: 0, Scale: 0.3, Opacity: 0.3},
		{X: 59.29360213663298, Y: -77.98748971233309, Rotate: 25, Scale: 0.5, Opacity: 0.3},
		{X: 95.81845351481883, Y: 38.66438070024047, Rotate: 50, Scale: 0.7, Opacity: 0.3},
		{X: -83.98496251122508, Y: 26.46519023592389, Rotate: 75, Scale: 0.3, Opacity: 0.3},
	}

	var got []Offset
	for i := range want {
		got = append(got, ScatterOffset(i))
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("scatter offsets mismatch (-want +got):\n%s", diff)
	}
}

func TestScatterOffsetIsBitStable(t *testing.T) {
	for i := 0; i < 64; i++ {
		a, b := ScatterOffset(i), ScatterOffset(i)
		for _, pair := range [][2]float64{{a.X, b.X}, {a.Y, b.Y}, {a.Rotate, b.Rotate}, {a.Scale, b.Scale}} {
			require.Equal(t, math.Float64bits(pair[0]), math.Float64bits(pair[1]), "glyph %d", i)
		}
	}
}

func TestGlyphs(t *testing.T) {
	glyphs := Glyphs("PREETHI")
	require.Len(t, glyphs, 7)

	for i, g := range glyphs {
		assert.Equal(t, i, g.Index)
		assert.Equal(t, time.Duration(i)*GlyphStagger, g.Delay)
		assert.Equal(t, GlyphDuration, g.Duration)
		assert.Equal(t, ScatterOffset(i), g.From)
	}
	assert.Equal(t, 'P', glyphs[0].Char)
	assert.Equal(t, 'I', glyphs[6].Char)
	assert.Empty(t, Glyphs(""))
}

func TestGlyphAt(t *testing.T) {
	g := Glyphs("AB")[1]

	assert.Equal(t, g.From, g.At(0))
	assert.Equal(t, g.From, g.At(g.Delay))
	assert.Equal(t, Rest, g.At(g.Delay+g.Duration))
	assert.True(t, g.Settled(g.Delay+g.Duration))
	assert.False(t, g.Settled(g.Delay+g.Duration-time.Millisecond))

	mid := g.At(g.Delay + g.Duration/2)
	assert.Greater(t, mid.Scale, g.From.Scale)
	assert.Less(t, mid.Scale, 1.0)
	// ease-out covers most of the distance in the first half
	assert.Less(t, math.Abs(mid.X), math.Abs(g.From.X)*0.1)
}

func TestFragments(t *testing.T) {
	fragments := Fragments()
	require.Len(t, fragments, FragmentCount)

	for i, f := range fragments {
		assert.Equal(t, FragmentBaseDelay+time.Duration(i)*FragmentStagger, f.Delay)
		assert.InDelta(t, 0.5+float64(i)*0.1, f.From.Scale, 1e-12)
		assert.Equal(t, Offset{}, f.At(f.Delay+f.Duration))
	}
	assert.Equal(t, fragments[0].From, fragments[0].At(0))
}
