package shader

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Stop is one gradient stop: a position in [0, 1] and its color.
type Stop struct {
	T     float64
	Color Color
}

// Palette is an ordered list of gradient stops sampled by t. It is the
// procedural replacement for a 1D texture: shaders look colors up by a
// noise value instead of a texel coordinate.
type Palette []Stop

// Sample returns the palette color at t, clamped to the end stops and
// linearly interpolated between neighbors.
func (p Palette) Sample(t float64) Color {
	if len(p) == 0 {
		return Color{}
	}
	if t <= p[0].T {
		return p[0].Color
	}
	last := p[len(p)-1]
	if t >= last.T {
		return last.Color
	}

	for i := 1; i < len(p); i++ {
		if t <= p[i].T {
			span := p[i].T - p[i-1].T
			f := 0.0
			if span > 0 {
				f = (t - p[i-1].T) / span
			}
			return p[i-1].Color.Lerp(p[i].Color, f)
		}
	}
	return last.Color
}

// HCLRamp blends n colors from one end color to the other in HCL space,
// which keeps perceived lightness steady where plain RGB blending turns
// muddy. The ring system uses it to grade annulus tints inner to outer.
func HCLRamp(from, to Color, n int) []Color {
	a := colorful.Color{R: from.R, G: from.G, B: from.B}
	b := colorful.Color{R: to.R, G: to.G, B: to.B}

	out := make([]Color, n)
	for i := range n {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		c := a.BlendHcl(b, t).Clamped()
		out[i] = Color{c.R, c.G, c.B, 1}
	}
	return out
}
