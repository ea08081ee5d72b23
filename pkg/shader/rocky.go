package shader

import (
	"github.com/jruiz002/planetas/pkg/math3d"
	"github.com/jruiz002/planetas/pkg/noise"
)

// Rocky is a cratered terrestrial surface: fBm terrain strata, Voronoi
// craters and a fine grain layer, with mountains displacing the mesh.
type Rocky struct{}

// Rocky displacement stays within this amplitude.
const rockyRelief = 0.05

// Vertex raises terrain along the normal by fBm height.
func (Rocky) Vertex(v Vertex, _ *Uniforms) (math3d.Vec3, math3d.Vec3) {
	h := noise.FBM(v.Position.Scale(3), 4) * rockyRelief
	return v.Position.Add(v.Normal.Scale(h)), v.Normal
}

// Fragment layers strata, craters, grain and lighting.
func (Rocky) Fragment(f Fragment, u *Uniforms) Color {
	p := f.Position

	// Layer 1: continent-scale height field
	height := noise.FBM(p.Scale(3), 5)

	// Layer 2: strata by height threshold
	dirt := NewColor(0.48, 0.35, 0.22)
	rock := NewColor(0.55, 0.52, 0.48)
	peak := NewColor(0.78, 0.76, 0.72)
	c := dirt.Lerp(rock, Smoothstep(-0.25, 0.1, height))
	c = c.Lerp(peak, Smoothstep(0.25, 0.45, height))

	// Layer 3: crater wells darken the floor
	crater := Smoothstep(0.35, 0.05, noise.Voronoi(p.Scale(4)))
	c = c.Scale(1 - 0.35*crater)

	// Layer 4: fine grain so flat regions don't look polished
	c = c.Scale(1 + 0.08*noise.Simple(p.Scale(40)))

	// Layer 5: diffuse lighting
	c = c.Scale(diffuse(f.Normal, u.LightDir, 0.2))

	// Layer 6: high peaks catch a little extra light
	c = c.Add(NewColor(1, 1, 1).Scale(0.1 * Smoothstep(0.35, 0.5, height)))

	return c.Clamp()
}
