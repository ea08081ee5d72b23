package shader

import (
	"math"

	"github.com/jruiz002/planetas/pkg/math3d"
	"github.com/jruiz002/planetas/pkg/noise"
)

// Lava renders a cooling volcanic world: dark crust split by glowing
// cracks of molten rock. The cracks are emissive, so they stay bright
// on the night side.
type Lava struct{}

func (Lava) Vertex(v Vertex, _ *Uniforms) (math3d.Vec3, math3d.Vec3) {
	h := noise.FBM(v.Position.Scale(4), 4) * 0.03
	return v.Position.Add(v.Normal.Scale(h)), v.Normal
}

func (Lava) Fragment(f Fragment, u *Uniforms) Color {
	p := f.Position

	// Basalt crust, slightly warmer on high ground.
	height := noise.FBM(p.Scale(4), 4)
	crust := NewColor(0.14, 0.11, 0.10).Lerp(NewColor(0.30, 0.20, 0.15), height*0.5+0.5)

	// Ridge noise peaks along its creases; the top of the ridge is the crack.
	crack := Smoothstep(0.78, 0.95, noise.Ridge(p.Scale(3), 4))

	// Molten flow creeping under the crust.
	heat := noise.FBM(p.Scale(2).Add(math3d.V3(0, -u.Time*0.2, 0)), 3)*0.5 + 0.5
	lava := NewColor(0.95, 0.25, 0.03).Lerp(NewColor(1.0, 0.85, 0.30), heat)

	pulse := 0.85 + 0.15*math.Sin(u.Time*3+p.X*2)

	c := crust.Scale(diffuse(f.Normal, u.LightDir, 0.15))
	c = c.Add(lava.Scale(crack * pulse))

	// Faint heat shimmer over the whole surface.
	c = c.Add(NewColor(0.25, 0.08, 0.0).Scale(heat * 0.15))

	return c.Clamp()
}
