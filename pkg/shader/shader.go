// Package shader implements the programmable stages of the planet
// renderer. A Shader pairs a vertex stage, which may displace geometry
// along its normals, with a fragment stage that computes a procedural
// color per pixel. All color comes from layered noise; there are no
// image textures.
package shader

import (
	"math"

	"github.com/jruiz002/planetas/pkg/math3d"
)

// Vertex is the vertex-stage input: one mesh vertex in model space.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Fragment is the fragment-stage input, interpolated by the rasterizer
// with perspective correction.
//
// Position is the raw mesh-local position, before any vertex-stage
// displacement: noise sampled there sticks to the surface instead of
// swimming when the planet spins or the moon orbits. World and Normal
// are world-space, for lighting and view-dependent terms.
type Fragment struct {
	Position math3d.Vec3
	World    math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Uniforms are the per-frame constants shared by every pass. The main
// loop snapshots them once per frame so all passes see the same time.
type Uniforms struct {
	Time      float64
	LightDir  math3d.Vec3 // Normalized, pointing toward the light
	CameraPos math3d.Vec3
}

// NewUniforms returns uniforms with the default light direction.
func NewUniforms() *Uniforms {
	return &Uniforms{
		LightDir: math3d.V3(1, 1, 1).Normalize(),
	}
}

// Shader is one planet surface program.
//
// Vertex maps a model-space vertex to its (possibly displaced) position
// and normal, still in model space. Fragment computes the color for one
// covered pixel; implementations clamp every channel to [0, 1] before
// returning.
type Shader interface {
	Vertex(v Vertex, u *Uniforms) (pos, normal math3d.Vec3)
	Fragment(f Fragment, u *Uniforms) Color
}

// diffuse returns ambient + (1-ambient) * max(0, n.l) lighting.
func diffuse(normal, lightDir math3d.Vec3, ambient float64) float64 {
	d := normal.Dot(lightDir)
	if d < 0 {
		d = 0
	}
	return ambient + (1-ambient)*d
}

// specular returns a Phong highlight with the given exponent.
func specular(normal, lightDir, viewDir math3d.Vec3, power float64) float64 {
	reflected := lightDir.Negate().Reflect(normal)
	s := reflected.Dot(viewDir)
	if s <= 0 {
		return 0
	}
	return math.Pow(s, power)
}
