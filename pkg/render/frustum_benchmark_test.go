package render

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jruiz002/planetas/pkg/math3d"
	"github.com/jruiz002/planetas/pkg/shader"
)

// BenchmarkFrustumExtract benchmarks frustum plane extraction from view-projection matrix.
func BenchmarkFrustumExtract(b *testing.B) {
	fov := math.Pi / 3
	aspect := 16.0 / 9.0
	near := 0.1
	far := 100.0

	proj := math3d.Perspective(fov, aspect, near, far)
	view := math3d.Identity()
	viewProj := proj.Mul(view)

	for b.Loop() {
		_ = ExtractFrustum(viewProj)
	}
}

// BenchmarkAABBIntersection benchmarks AABB vs frustum intersection test.
func BenchmarkAABBIntersection(b *testing.B) {
	fov := math.Pi / 3
	aspect := 16.0 / 9.0
	near := 0.1
	far := 100.0

	proj := math3d.Perspective(fov, aspect, near, far)
	view := math3d.Identity()
	viewProj := proj.Mul(view)
	frustum := ExtractFrustum(viewProj)

	// AABB in front of camera (visible)
	visibleBounds := AABB{
		Min: math3d.V3(-1, -1, -15),
		Max: math3d.V3(1, 1, -5),
	}

	b.Run("visible", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = frustum.IntersectsFrustum(visibleBounds)
		}
	})

	// AABB behind camera (culled quickly)
	culledBounds := AABB{
		Min: math3d.V3(-1, -1, 5),
		Max: math3d.V3(1, 1, 15),
	}

	b.Run("culled", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = frustum.IntersectsFrustum(culledBounds)
		}
	})
}

// BenchmarkTransformAABB benchmarks AABB transformation.
func BenchmarkTransformAABB(b *testing.B) {
	local := AABB{
		Min: math3d.V3(-1, -1, -1),
		Max: math3d.V3(1, 1, 1),
	}
	transform := math3d.Translate(math3d.V3(10, 5, -20)).Mul(math3d.RotateY(0.5)).Mul(math3d.ScaleUniform(2))

	for b.Loop() {
		_ = TransformAABB(local, transform)
	}
}

// BenchmarkCullingScenario simulates culling N objects, some visible, some not.
func BenchmarkCullingScenario(b *testing.B) {
	// Setup camera and frustum
	cam := NewCamera()
	cam.Rotate(0.4, 0.3)
	cam.Zoom(10)

	viewProj := cam.ViewProjectionMatrix()
	frustum := ExtractFrustum(viewProj)

	// Generate random objects: some in view, some out
	rng := rand.New(rand.NewSource(42))
	objectCount := 100

	type object struct {
		bounds    AABB
		transform math3d.Mat4
	}
	objects := make([]object, objectCount)

	for i := range objectCount {
		// Random position: X, Z in [-50, 50], Y in [0, 10]
		x := rng.Float64()*100 - 50
		y := rng.Float64() * 10
		z := rng.Float64()*100 - 50

		objects[i] = object{
			bounds: AABB{
				Min: math3d.V3(-1, -1, -1),
				Max: math3d.V3(1, 1, 1),
			},
			transform: math3d.Translate(math3d.V3(x, y, z)),
		}
	}

	b.Run("with_culling", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			visible := 0
			for _, obj := range objects {
				worldBounds := TransformAABB(obj.bounds, obj.transform)
				if frustum.IntersectsFrustum(worldBounds) {
					visible++
				}
			}
			_ = visible
		}
	})

	b.Run("no_culling", func(b *testing.B) {
		// Simulate just doing work without culling
		for i := 0; i < b.N; i++ {
			visible := 0
			for range objects {
				// Pretend we "render" everything
				visible++
			}
			_ = visible
		}
	})
}

// BenchmarkMeshCullingComparison compares drawing a crowd of meshes with
// and without bounds available for culling. Half the objects sit behind
// the camera.
func BenchmarkMeshCullingComparison(b *testing.B) {
	fb := NewFramebuffer(160, 96)
	cam := NewCamera()
	cam.Yaw = math.Pi / 2
	cam.Pitch = 0
	cam.Distance = 10
	cam.SetAspectRatio(float64(fb.Width) / float64(fb.Height))

	rast := NewRasterizer(cam, fb)

	mesh := &boundedMockMesh{
		mockMesh: *quadMesh(0),
		min:      math3d.V3(-1, -1, -0.1),
		max:      math3d.V3(1, 1, 0.1),
	}
	sh := flatShader{shader.NewColor(0.4, 0.6, 0.8)}
	u := shader.NewUniforms()

	// Generate objects: 50% visible, 50% behind camera
	rng := rand.New(rand.NewSource(42))
	objectCount := 100
	transforms := make([]math3d.Mat4, objectCount)

	for i := range objectCount {
		var z float64
		if i%2 == 0 {
			// Visible: in front of camera
			z = rng.Float64()*6 - 8 // Z from -8 to -2
		} else {
			// Culled: behind camera
			z = rng.Float64()*20 + 25 // Z from 25 to 45
		}
		x := rng.Float64()*4 - 2
		y := rng.Float64() * 2
		transforms[i] = math3d.Translate(math3d.V3(x, y, z))
	}

	b.Run("with_culling", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			rast.ClearDepth()
			fb.Clear(RGB(0, 0, 0))
			rast.InvalidateFrustum()
			rast.ResetCullingStats()

			for _, transform := range transforms {
				rast.DrawMeshShadedOpt(mesh, transform, sh, u)
			}
		}
	})

	b.Run("without_culling", func(b *testing.B) {
		stripped := unboundedMesh{mesh}
		for i := 0; i < b.N; i++ {
			rast.ClearDepth()
			fb.Clear(RGB(0, 0, 0))

			for _, transform := range transforms {
				rast.DrawMeshShadedOpt(stripped, transform, sh, u)
			}
		}
	})
}
