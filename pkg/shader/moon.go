package shader

import (
	"math"

	"github.com/jruiz002/planetas/pkg/math3d"
	"github.com/jruiz002/planetas/pkg/noise"
)

// Moon scales a unit sphere down and carries it around the planet in
// the vertex stage. Fragment noise samples the pre-orbit position, so
// the craters do not crawl as the moon moves.
type Moon struct{}

// MoonScale is the moon radius relative to the unit planet sphere.
const MoonScale = 0.3

// MoonOrbitRadius is the distance from the planet center to the moon.
const MoonOrbitRadius = 3.0

const moonOrbitRate = 0.8

// MoonOrbitCenter reports where the moon sits at the given time. The
// scene uses it to cull the moon, since the mesh bounds only cover the
// unit sphere the shader displaces.
func MoonOrbitCenter(time float64) math3d.Vec3 {
	sin, cos := math.Sincos(time * moonOrbitRate)
	return math3d.V3(cos*MoonOrbitRadius, 0, sin*MoonOrbitRadius)
}

func (Moon) Vertex(v Vertex, u *Uniforms) (math3d.Vec3, math3d.Vec3) {
	rough := noise.FBM(v.Position.Scale(6), 3) * 0.02
	p := v.Position.Scale(MoonScale).Add(v.Normal.Scale(rough * MoonScale))
	return p.Add(MoonOrbitCenter(u.Time)), v.Normal
}

func (Moon) Fragment(f Fragment, u *Uniforms) Color {
	p := f.Position

	tone := noise.FBM(p.Scale(3), 4)*0.5 + 0.5
	c := NewColor(0.35, 0.34, 0.33).Lerp(NewColor(0.62, 0.61, 0.58), tone)

	// Dark maria patches.
	mare := Smoothstep(0.55, 0.75, noise.FBM(p.Scale(1.5), 3)*0.5+0.5)
	c = c.Lerp(NewColor(0.22, 0.22, 0.24), mare*0.6)

	// Craters: darker floors with a faint bright rim.
	vor := noise.Voronoi(p.Scale(6))
	floor := Smoothstep(0.35, 0.08, vor)
	rim := Smoothstep(0.40, 0.32, vor) * Smoothstep(0.24, 0.32, vor)
	c = c.Scale(1 - 0.4*floor)
	c = c.Add(NewColor(1, 1, 1).Scale(rim * 0.12))

	c = c.Scale(diffuse(f.Normal, u.LightDir, 0.15))
	return c.Clamp()
}
