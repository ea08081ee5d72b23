// Package planet assembles meshes and shaders into ordered draw plans
// for the terminal viewer. Each variant is a preset: a surface shader
// for the body plus optional ring annuli and an orbiting moon.
package planet

import (
	"github.com/jruiz002/planetas/pkg/math3d"
	"github.com/jruiz002/planetas/pkg/models"
	"github.com/jruiz002/planetas/pkg/render"
	"github.com/jruiz002/planetas/pkg/shader"
)

// Ring layout shared by every ringed variant.
const (
	ringInnerBase = 1.5  // Inner radius of the first annulus
	ringSpacing   = 0.3  // Radial gap between annulus inner edges
	ringWidth     = 0.18 // Band width of each annulus
	ringSegments  = 64
	ringSpinRate  = 0.25
)

// moonBoundRadius bounds the moon sphere after its 0.3 scale and
// surface displacement, with slack for both.
const moonBoundRadius = 0.35

// Variant identifies one planet preset.
type Variant int

const (
	Rocky Variant = iota
	GasGiant
	Crystal
	Lava
	variantCount
)

// VariantCount is the number of selectable presets.
const VariantCount = int(variantCount)

func (v Variant) String() string {
	return v.Config().Name
}

// Config describes one variant's companions, motion, and HUD accents.
type Config struct {
	Name          string
	Accent        shader.Color // HUD accent color
	RingTint      shader.Color // Innermost annulus tint
	RingTintOuter shader.Color // Outermost annulus tint; annuli grade between the two
	RotationSpeed float64      // Body spin, radians per second
	Rings         int          // Number of ring annuli, 0 for none
	HasMoon       bool
	Features      []string // Short descriptions for the HUD
}

var configs = [variantCount]Config{
	Rocky: {
		Name:          "Rocky",
		Accent:        shader.NewColor(0.80, 0.55, 0.35),
		RotationSpeed: 0.5,
		HasMoon:       true,
		Features:      []string{"cratered highlands", "orbiting moon"},
	},
	GasGiant: {
		Name:          "Gas Giant",
		Accent:        shader.NewColor(0.85, 0.65, 0.45),
		RingTint:      shader.NewColor(0.82, 0.72, 0.58),
		RingTintOuter: shader.NewColor(0.55, 0.47, 0.40),
		RotationSpeed: 1.2,
		Rings:         8,
		Features:      []string{"banded clouds", "storm cells", "ring system"},
	},
	Crystal: {
		Name:          "Crystal",
		Accent:        shader.NewColor(0.55, 0.70, 0.95),
		RingTint:      shader.NewColor(0.66, 0.74, 0.92),
		RingTintOuter: shader.NewColor(0.85, 0.72, 0.96),
		RotationSpeed: 0.8,
		Rings:         8,
		Features:      []string{"faceted surface", "inner glow", "ring system"},
	},
	Lava: {
		Name:          "Lava",
		Accent:        shader.NewColor(0.95, 0.35, 0.12),
		RotationSpeed: 1.5,
		Features:      []string{"molten fissures", "ember glow"},
	},
}

// Config returns the preset for this variant. Out-of-range variants
// fall back to Rocky.
func (v Variant) Config() Config {
	if v < 0 || v >= variantCount {
		v = Rocky
	}
	return configs[v]
}

// Shader returns the surface shader for this variant.
func (v Variant) Shader() shader.Shader {
	switch v {
	case GasGiant:
		return shader.GasGiant{}
	case Crystal:
		return shader.Crystal{}
	case Lava:
		return shader.Lava{}
	default:
		return shader.Rocky{}
	}
}

// BoundSphere is a world-space bounding sphere for draw ops whose
// vertex stage moves the mesh away from its static bounds.
type BoundSphere struct {
	Center math3d.Vec3
	Radius float64
}

// DrawOp is one mesh drawn with one shader.
type DrawOp struct {
	Mesh     render.MeshRenderer
	Shader   shader.Shader
	Model    math3d.Mat4
	TwoSided bool         // Disable backface culling (ring annuli)
	Bound    *BoundSphere // Overrides mesh bounds when set
}

// Pass groups the draw ops for one scene role. Passes are drawn in
// slice order, ops in slice order within a pass.
type Pass struct {
	Name string
	Ops  []DrawOp
}

// orbitingMesh strips the static bounds from a mesh whose vertex stage
// repositions it; culling goes through the op's Bound sphere instead.
type orbitingMesh struct {
	render.MeshRenderer
}

type ringPiece struct {
	mesh   *models.Mesh
	shader shader.Ring
}

// Planet is one assembled scene: body, companions, and their shaders.
type Planet struct {
	variant Variant
	config  Config
	body    *models.Mesh
	rings   []ringPiece
}

// Build assembles the scene for a variant around the given sphere mesh.
// The moon reuses the same sphere; its shader scales and offsets it.
func Build(v Variant, sphere *models.Mesh) *Planet {
	cfg := v.Config()
	p := &Planet{
		variant: v,
		config:  cfg,
		body:    sphere,
	}

	if cfg.Rings > 0 {
		tints := shader.HCLRamp(cfg.RingTint, cfg.RingTintOuter, cfg.Rings)
		for i := 0; i < cfg.Rings; i++ {
			inner := ringInnerBase + float64(i)*ringSpacing
			p.rings = append(p.rings, ringPiece{
				mesh: models.NewRing(inner, inner+ringWidth, ringSegments),
				shader: shader.Ring{
					Index: i,
					Tint:  tints[i],
					Speed: ringSpinRate,
				},
			})
		}
	}

	return p
}

// Variant returns the preset this planet was built from.
func (p *Planet) Variant() Variant {
	return p.variant
}

// Config returns the preset configuration.
func (p *Planet) Config() Config {
	return p.config
}

// TriangleCount returns the triangles across all passes, for the HUD.
func (p *Planet) TriangleCount() int {
	n := p.body.TriangleCount()
	for _, r := range p.rings {
		n += r.mesh.TriangleCount()
	}
	if p.config.HasMoon {
		n += p.body.TriangleCount()
	}
	return n
}

// Passes returns the ordered draw plan for one frame: the body, then
// any rings blended over it, then the moon. Callers draw passes and
// their ops in order; the rings depend on the body already holding the
// depth buffer, and the moon must not blend under the rings.
func (p *Planet) Passes(time float64) []Pass {
	passes := make([]Pass, 0, 3)

	passes = append(passes, Pass{
		Name: "body",
		Ops: []DrawOp{{
			Mesh:   p.body,
			Shader: p.variant.Shader(),
			Model:  math3d.RotateY(time * p.config.RotationSpeed),
		}},
	})

	if len(p.rings) > 0 {
		ops := make([]DrawOp, len(p.rings))
		for i, r := range p.rings {
			ops[i] = DrawOp{
				Mesh:     r.mesh,
				Shader:   r.shader,
				Model:    math3d.Identity(),
				TwoSided: true,
			}
		}
		passes = append(passes, Pass{Name: "rings", Ops: ops})
	}

	if p.config.HasMoon {
		passes = append(passes, Pass{
			Name: "moon",
			Ops: []DrawOp{{
				Mesh:   orbitingMesh{p.body},
				Shader: shader.Moon{},
				Model:  math3d.Identity(),
				Bound: &BoundSphere{
					Center: shader.MoonOrbitCenter(time),
					Radius: moonBoundRadius,
				},
			}},
		})
	}

	return passes
}
