package shader

import "image/color"

// Color is a floating-point RGBA color with channels in [0, 1].
// Shader layers compose in float space and convert to 8-bit only when a
// fragment is written to the framebuffer.
type Color struct {
	R, G, B, A float64
}

// NewColor creates an opaque color.
func NewColor(r, g, b float64) Color {
	return Color{r, g, b, 1}
}

// NewColorA creates a color with explicit alpha.
func NewColorA(r, g, b, a float64) Color {
	return Color{r, g, b, a}
}

// Add returns the channel-wise sum. Alpha is kept from c.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A}
}

// Scale multiplies the RGB channels by s, leaving alpha alone.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A}
}

// Mul returns the channel-wise product. Alpha is kept from c.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A}
}

// Lerp interpolates toward o by t, including alpha.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		c.R + (o.R-c.R)*t,
		c.G + (o.G-c.G)*t,
		c.B + (o.B-c.B)*t,
		c.A + (o.A-c.A)*t,
	}
}

// Clamp limits every channel to [0, 1]. Fragment shaders clamp their
// result so layered additions can overshoot freely in between.
func (c Color) Clamp() Color {
	return Color{
		Clamp01(c.R),
		Clamp01(c.G),
		Clamp01(c.B),
		Clamp01(c.A),
	}
}

// RGBA converts to an 8-bit color for the framebuffer.
func (c Color) RGBA() color.RGBA {
	cl := c.Clamp()
	return color.RGBA{
		R: uint8(cl.R*255 + 0.5),
		G: uint8(cl.G*255 + 0.5),
		B: uint8(cl.B*255 + 0.5),
		A: uint8(cl.A*255 + 0.5),
	}
}

// Clamp01 limits x to [0, 1].
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Mix linearly interpolates between a and b by t.
func Mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Smoothstep is the Hermite ramp: 0 below edge0, 1 above edge1, smooth
// in between.
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}
