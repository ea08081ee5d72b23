package shader

import (
	"math"

	"github.com/jruiz002/planetas/pkg/math3d"
	"github.com/jruiz002/planetas/pkg/noise"
)

// Crystal renders a translucent faceted gem world with an internal glow
// that pulses over time.
type Crystal struct{}

var crystalFacets = []Color{
	NewColor(0.45, 0.75, 0.95),
	NewColor(0.60, 0.50, 0.95),
	NewColor(0.40, 0.90, 0.85),
	NewColor(0.80, 0.65, 0.98),
}

func (Crystal) Vertex(v Vertex, u *Uniforms) (math3d.Vec3, math3d.Vec3) {
	pulse := 1 + 0.3*math.Sin(u.Time*2)
	h := (noise.FBM(v.Position.Scale(5), 3)*0.5 + 0.5) * 0.04 * pulse
	return v.Position.Add(v.Normal.Scale(h)), v.Normal
}

func (Crystal) Fragment(f Fragment, u *Uniforms) Color {
	p := f.Position

	// Each lattice cell gets one flat facet color.
	cell := p.Scale(3).Floor()
	pick := noise.Simple(cell)*0.5 + 0.5
	c := crystalFacets[int(pick*3.999)]

	// Darken toward facet boundaries.
	edge := Smoothstep(0.25, 0.55, noise.Voronoi(p.Scale(3)))
	c = c.Scale(1 - 0.45*edge)

	// Internal glow pulsing out of phase with the surface.
	glow := 0.5 + 0.5*math.Sin(u.Time*2+p.Y*4)
	core := noise.FBM(p.Scale(2), 3)*0.5 + 0.5
	c = c.Add(NewColor(0.3, 0.5, 0.9).Scale(0.25 * glow * core))

	c = c.Scale(diffuse(f.Normal, u.LightDir, 0.35))

	// Sharp specular glints sell the glassy surface.
	view := u.CameraPos.Sub(f.World).Normalize()
	spec := specular(f.Normal, u.LightDir, view, 32)
	c = c.Add(NewColor(1, 1, 1).Scale(spec * 0.8))

	c = c.Clamp()
	c.A = 0.9
	return c
}
