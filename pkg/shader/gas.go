package shader

import (
	"math"

	"github.com/jruiz002/planetas/pkg/math3d"
	"github.com/jruiz002/planetas/pkg/noise"
)

// GasGiant renders banded cloud decks: latitude bands warped by fBm
// turbulence, drifting storm cells, no surface relief.
type GasGiant struct{}

var gasBands = Palette{
	{0.0, NewColor(0.55, 0.38, 0.22)},
	{0.3, NewColor(0.78, 0.60, 0.38)},
	{0.55, NewColor(0.88, 0.78, 0.58)},
	{0.8, NewColor(0.70, 0.48, 0.30)},
	{1.0, NewColor(0.60, 0.40, 0.25)},
}

// Vertex leaves the sphere untouched; gas giants have no terrain.
func (GasGiant) Vertex(v Vertex, _ *Uniforms) (math3d.Vec3, math3d.Vec3) {
	return v.Position, v.Normal
}

func (GasGiant) Fragment(f Fragment, u *Uniforms) Color {
	p := f.Position

	// Turbulence warps the band coordinate so the stripes waver.
	turb := noise.FBM(p.Scale(4), 4) * 0.4

	// Latitude bands, slowly shearing with time.
	band := math.Sin(p.Y*10 + turb*3 + u.Time*0.3)
	c := gasBands.Sample(band*0.5 + 0.5)

	// Storm cells drift through the bands.
	storm := Smoothstep(0.45, 0.75, noise.FBM(p.Scale(2.2).Add(math3d.V3(u.Time*0.15, 0, 0)), 4))
	c = c.Lerp(NewColor(0.92, 0.88, 0.80), storm*0.6)

	// Swirl streaks along the flow direction.
	swirl := noise.Simple(math3d.V3(p.X*8, p.Y*30, p.Z*8)) * 0.08
	c = c.Scale(1 + swirl)

	c = c.Scale(diffuse(f.Normal, u.LightDir, 0.3))
	return c.Clamp()
}
