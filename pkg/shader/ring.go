package shader

import (
	"math"

	"github.com/jruiz002/planetas/pkg/math3d"
	"github.com/jruiz002/planetas/pkg/noise"
)

// Ring shades one translucent annulus of a ring system. Each annulus
// spins in the vertex stage at its own phase, so the system shears as
// it turns.
type Ring struct {
	Index int
	Tint  Color
	Speed float64
}

const ringPhase = 0.35

func (r Ring) Vertex(v Vertex, u *Uniforms) (math3d.Vec3, math3d.Vec3) {
	angle := u.Time*r.Speed + float64(r.Index)*ringPhase
	sin, cos := math.Sincos(angle)
	p := math3d.V3(
		v.Position.X*cos+v.Position.Z*sin,
		0,
		-v.Position.X*sin+v.Position.Z*cos,
	)
	n := math3d.V3(
		v.Normal.X*cos+v.Normal.Z*sin,
		v.Normal.Y,
		-v.Normal.X*sin+v.Normal.Z*cos,
	)
	return p, n
}

func (r Ring) Fragment(f Fragment, u *Uniforms) Color {
	// UV.Y runs inner edge to outer edge across the annulus.
	radial := f.UV.Y

	bands := 0.5 + 0.5*math.Sin(radial*28+float64(r.Index)*2.1)
	dust := noise.FBM(math3d.V3(radial*12, float64(r.Index)*3.7, f.UV.X*2), 3)*0.5 + 0.5

	c := r.Tint.Scale(0.7 + 0.3*bands)
	c = c.Lerp(NewColor(0.9, 0.88, 0.82), dust*0.25)

	// Rings are thin enough to light from either side.
	lit := 0.35 + 0.65*math.Abs(f.Normal.Dot(u.LightDir))
	c = c.Scale(lit)

	fade := Smoothstep(0, 0.12, radial) * Smoothstep(1, 0.88, radial)
	c = c.Clamp()
	c.A = (0.30 + 0.45*dust) * fade
	return c
}
