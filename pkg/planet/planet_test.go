package planet

import (
	"math"
	"testing"

	"github.com/jruiz002/planetas/pkg/math3d"
	"github.com/jruiz002/planetas/pkg/models"
	"github.com/jruiz002/planetas/pkg/render"
	"github.com/jruiz002/planetas/pkg/shader"
)

func testSphere() *models.Mesh {
	return models.NewUVSphere(8, 12, 1)
}

func passNames(passes []Pass) []string {
	names := make([]string, len(passes))
	for i, p := range passes {
		names[i] = p.Name
	}
	return names
}

func TestPassOrder(t *testing.T) {
	tests := []struct {
		variant Variant
		want    []string
	}{
		{Rocky, []string{"body", "moon"}},
		{GasGiant, []string{"body", "rings"}},
		{Crystal, []string{"body", "rings"}},
		{Lava, []string{"body"}},
	}

	for _, tc := range tests {
		t.Run(tc.variant.String(), func(t *testing.T) {
			got := passNames(Build(tc.variant, testSphere()).Passes(1.5))
			if len(got) != len(tc.want) {
				t.Fatalf("passes = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("passes = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestBodyPass(t *testing.T) {
	sphere := testSphere()
	p := Build(Lava, sphere)

	passes := p.Passes(2.0)
	body := passes[0]
	if len(body.Ops) != 1 {
		t.Fatalf("body pass has %d ops, want 1", len(body.Ops))
	}

	op := body.Ops[0]
	if op.TwoSided {
		t.Error("body should be backface culled")
	}
	if op.Bound != nil {
		t.Error("body uses its mesh bounds, not an explicit sphere")
	}
	if _, ok := op.Shader.(shader.Lava); !ok {
		t.Errorf("body shader = %T, want shader.Lava", op.Shader)
	}

	// The body spins at the configured rate.
	want := math3d.RotateY(2.0 * Lava.Config().RotationSpeed)
	if op.Model != want {
		t.Error("body model should be RotateY(time * rotation speed)")
	}

	// The mesh must stay cullable through its bounds.
	if _, ok := op.Mesh.(render.BoundedMeshRenderer); !ok {
		t.Error("body mesh should expose bounds for frustum culling")
	}
}

func TestRingPass(t *testing.T) {
	p := Build(GasGiant, testSphere())
	passes := p.Passes(0)

	rings := passes[1]
	if len(rings.Ops) != 8 {
		t.Fatalf("ring pass has %d ops, want 8", len(rings.Ops))
	}

	for i, op := range rings.Ops {
		if !op.TwoSided {
			t.Errorf("ring %d should render two-sided", i)
		}
		if op.Model != math3d.Identity() {
			t.Errorf("ring %d model should be identity; the shader spins it", i)
		}

		rs, ok := op.Shader.(shader.Ring)
		if !ok {
			t.Fatalf("ring %d shader = %T, want shader.Ring", i, op.Shader)
		}
		if rs.Index != i {
			t.Errorf("ring %d shader index = %d", i, rs.Index)
		}

		// Annulus i spans [1.5 + 0.3i, 1.5 + 0.3i + 0.18].
		bounded, ok := op.Mesh.(render.BoundedMeshRenderer)
		if !ok {
			t.Fatalf("ring %d mesh should expose bounds", i)
		}
		_, max := bounded.GetBounds()
		wantOuter := ringInnerBase + float64(i)*ringSpacing + ringWidth
		if math.Abs(max.X-wantOuter) > 1e-9 {
			t.Errorf("ring %d outer radius = %v, want %v", i, max.X, wantOuter)
		}
	}

	// Tints grade from the inner annulus to the outer one.
	first := rings.Ops[0].Shader.(shader.Ring).Tint
	last := rings.Ops[len(rings.Ops)-1].Shader.(shader.Ring).Tint
	if first == last {
		t.Error("annulus tints should grade from inner to outer")
	}
}

func TestMoonPass(t *testing.T) {
	sphere := testSphere()
	p := Build(Rocky, sphere)

	passes := p.Passes(3.7)
	moon := passes[len(passes)-1]
	if moon.Name != "moon" {
		t.Fatalf("last pass = %q, want moon", moon.Name)
	}

	op := moon.Ops[0]
	if op.Bound == nil {
		t.Fatal("moon op needs an explicit bounding sphere")
	}

	want := shader.MoonOrbitCenter(3.7)
	if math.Abs(op.Bound.Center.X-want.X) > 1e-9 ||
		math.Abs(op.Bound.Center.Y-want.Y) > 1e-9 ||
		math.Abs(op.Bound.Center.Z-want.Z) > 1e-9 {
		t.Errorf("moon bound center = %v, want %v", op.Bound.Center, want)
	}
	if op.Bound.Radius < shader.MoonScale {
		t.Errorf("moon bound radius %v smaller than the moon itself", op.Bound.Radius)
	}

	// The static sphere bounds must be hidden, or the rasterizer would
	// cull against the planet's box instead of the moon's orbit.
	if _, ok := op.Mesh.(render.BoundedMeshRenderer); ok {
		t.Error("moon mesh should not expose the shared sphere bounds")
	}
	if op.Mesh.TriangleCount() != sphere.TriangleCount() {
		t.Error("moon should reuse the body sphere geometry")
	}

	// The bound follows the orbit.
	later := Build(Rocky, sphere).Passes(4.9)
	laterOp := later[len(later)-1].Ops[0]
	if laterOp.Bound.Center == op.Bound.Center {
		t.Error("moon bound should move over time")
	}
}

func TestConfigTable(t *testing.T) {
	tests := []struct {
		variant Variant
		name    string
		speed   float64
		rings   int
		hasMoon bool
	}{
		{Rocky, "Rocky", 0.5, 0, true},
		{GasGiant, "Gas Giant", 1.2, 8, false},
		{Crystal, "Crystal", 0.8, 8, false},
		{Lava, "Lava", 1.5, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.variant.Config()
			if cfg.Name != tc.name {
				t.Errorf("name = %q, want %q", cfg.Name, tc.name)
			}
			if cfg.RotationSpeed != tc.speed {
				t.Errorf("rotation speed = %v, want %v", cfg.RotationSpeed, tc.speed)
			}
			if cfg.Rings != tc.rings {
				t.Errorf("rings = %d, want %d", cfg.Rings, tc.rings)
			}
			if cfg.HasMoon != tc.hasMoon {
				t.Errorf("hasMoon = %v, want %v", cfg.HasMoon, tc.hasMoon)
			}
			if len(cfg.Features) == 0 {
				t.Error("every variant should list features for the HUD")
			}
			if cfg.Rings > 0 && (cfg.RingTint == (shader.Color{}) || cfg.RingTintOuter == (shader.Color{})) {
				t.Error("ringed variants need inner and outer ring tints")
			}
		})
	}

	// Out-of-range variants fall back to Rocky instead of panicking.
	if got := Variant(99).Config().Name; got != "Rocky" {
		t.Errorf("out-of-range config = %q, want Rocky", got)
	}
}

func TestVariantShaders(t *testing.T) {
	if _, ok := Rocky.Shader().(shader.Rocky); !ok {
		t.Errorf("Rocky shader = %T", Rocky.Shader())
	}
	if _, ok := GasGiant.Shader().(shader.GasGiant); !ok {
		t.Errorf("GasGiant shader = %T", GasGiant.Shader())
	}
	if _, ok := Crystal.Shader().(shader.Crystal); !ok {
		t.Errorf("Crystal shader = %T", Crystal.Shader())
	}
	if _, ok := Lava.Shader().(shader.Lava); !ok {
		t.Errorf("Lava shader = %T", Lava.Shader())
	}
}

func TestTriangleCount(t *testing.T) {
	sphere := testSphere()

	// The moon doubles the sphere's triangles.
	rocky := Build(Rocky, sphere)
	if got := rocky.TriangleCount(); got != 2*sphere.TriangleCount() {
		t.Errorf("rocky triangles = %d, want %d", got, 2*sphere.TriangleCount())
	}

	// Rings add on top of the body.
	gas := Build(GasGiant, sphere)
	if got := gas.TriangleCount(); got <= sphere.TriangleCount() {
		t.Errorf("gas giant triangles = %d, want more than the bare sphere", got)
	}

	lava := Build(Lava, sphere)
	if got := lava.TriangleCount(); got != sphere.TriangleCount() {
		t.Errorf("lava triangles = %d, want %d", got, sphere.TriangleCount())
	}
}
