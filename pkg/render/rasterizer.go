package render

import (
	"math"

	"github.com/jruiz002/planetas/pkg/math3d"
	"github.com/jruiz002/planetas/pkg/shader"
)

// minClipW is the smallest clip-space w a vertex may carry into the
// perspective divide. Triangles with any vertex closer than this are
// dropped whole; clipping against the near plane is not worth it at
// terminal resolution.
const minClipW = 1e-6

// degenerateArea2 is the doubled screen-space area below which a
// triangle covers no pixels.
const degenerateArea2 = 1e-12

// Rasterizer handles software triangle rasterization.
type Rasterizer struct {
	camera                 *Camera
	fb                     *Framebuffer
	depth                  *DepthBuffer
	viewport               math3d.Mat4  // NDC to screen, cached per resize
	frustum                Frustum      // Cached frustum planes
	frustumDirty           bool         // Whether frustum needs recalculation
	CullingStats           CullingStats // Statistics for debugging/benchmarking
	DisableBackfaceCulling bool         // If true, render both sides of triangles
}

// CullingStats tracks culling and rasterization counts per frame.
type CullingStats struct {
	MeshesTested     int // Total meshes tested for culling
	MeshesCulled     int // Meshes culled (not rendered)
	MeshesDrawn      int // Meshes that passed culling
	TrianglesIn      int // Triangles submitted for rasterization
	TrianglesDrawn   int // Triangles actually scanned
	TrianglesSkipped int // Behind the camera, degenerate, or back-facing
}

// NewRasterizer creates a new rasterizer.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{
		camera:       camera,
		fb:           fb,
		frustumDirty: true,
	}
	r.Resize()
	return r
}

// Resize resizes the rasterizer's buffers to match the framebuffer.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.depth = nil
		return
	}
	r.depth = NewDepthBuffer(r.fb.Width, r.fb.Height)
	r.viewport = math3d.Viewport(float64(r.fb.Width), float64(r.fb.Height))
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// ClearDepth clears the depth buffer (call before each frame).
func (r *Rasterizer) ClearDepth() {
	if r.depth != nil {
		r.depth.Clear()
	}
}

// InvalidateFrustum marks the frustum as needing recalculation.
// Call this when the camera moves or rotates.
func (r *Rasterizer) InvalidateFrustum() {
	r.frustumDirty = true
}

// UpdateFrustum recalculates the frustum planes from the camera.
func (r *Rasterizer) UpdateFrustum() {
	if r.frustumDirty {
		r.frustum = ExtractFrustum(r.camera.ViewProjectionMatrix())
		r.frustumDirty = false
	}
}

// GetFrustum returns the current frustum (updating if needed).
func (r *Rasterizer) GetFrustum() Frustum {
	r.UpdateFrustum()
	return r.frustum
}

// ResetCullingStats resets the culling statistics (call once per frame).
func (r *Rasterizer) ResetCullingStats() {
	r.CullingStats = CullingStats{}
}

// IsVisible tests if a world-space AABB is visible in the frustum.
func (r *Rasterizer) IsVisible(worldBounds AABB) bool {
	r.UpdateFrustum()
	return r.frustum.IntersectsFrustum(worldBounds)
}

// IsVisibleTransformed tests if a local-space AABB is visible after transformation.
func (r *Rasterizer) IsVisibleTransformed(localBounds AABB, transform math3d.Mat4) bool {
	worldBounds := TransformAABB(localBounds, transform)
	return r.IsVisible(worldBounds)
}

// IsSphereVisible tests a world-space bounding sphere against the frustum.
// Meshes whose vertex stage moves them (the orbiting moon) report their
// bounds this way, since the static mesh AABB no longer covers them.
func (r *Rasterizer) IsSphereVisible(center math3d.Vec3, radius float64) bool {
	r.UpdateFrustum()
	return r.frustum.IntersectsSphere(center, radius)
}

// getDepth returns the depth at (x, y).
func (r *Rasterizer) getDepth(x, y int) float64 {
	if r.depth == nil {
		return DepthFar
	}
	return r.depth.At(x, y)
}

// setDepth sets the depth at (x, y).
func (r *Rasterizer) setDepth(x, y int, z float64) {
	if r.depth != nil {
		r.depth.Set(x, y, z)
	}
}

// screenVertex holds a vertex after the vertex stage and projection.
type screenVertex struct {
	X, Y float64 // Screen coordinates
	Z    float64 // NDC depth (for the depth buffer)
	W    float64 // Clip-space w
	InvW float64 // 1/w (for perspective-correct interpolation)

	// Attributes interpolated into fragments
	Local  math3d.Vec3 // Mesh-local position before the vertex stage ran
	World  math3d.Vec3 // World position after displacement and model transform
	Normal math3d.Vec3 // World-space normal
	UV     math3d.Vec2
}

// projectTriangle runs the vertex stage on one triangle and projects it
// to screen space. screenMat is viewport * projection * view. Returns
// false if any vertex sits behind (or on) the near plane.
func (r *Rasterizer) projectTriangle(mesh MeshRenderer, face [3]int, model math3d.Mat4, s shader.Shader, u *shader.Uniforms, screenMat math3d.Mat4) ([3]screenVertex, bool) {
	var sv [3]screenVertex
	for i := range 3 {
		pos, normal, uvc := mesh.GetVertex(face[i])
		outPos, outNormal := s.Vertex(shader.Vertex{Position: pos, Normal: normal, UV: uvc}, u)

		world := model.MulVec3(outPos)
		clip := screenMat.MulVec4(math3d.V4FromV3(world, 1))
		if clip.W < minClipW {
			return sv, false
		}

		invW := 1.0 / clip.W
		sv[i] = screenVertex{
			X:      clip.X * invW,
			Y:      clip.Y * invW,
			Z:      clip.Z * invW,
			W:      clip.W,
			InvW:   invW,
			Local:  pos,
			World:  world,
			Normal: model.MulVec3Dir(outNormal).Normalize(),
			UV:     uvc,
		}
	}
	return sv, true
}

// fragmentAt interpolates vertex attributes at normalized barycentric
// weights (b0, b1, b2), perspective-correct via 1/w.
func fragmentAt(sv *[3]screenVertex, b0, b1, b2 float64) (shader.Fragment, bool) {
	pw0 := b0 * sv[0].InvW
	pw1 := b1 * sv[1].InvW
	pw2 := b2 * sv[2].InvW
	oneOverW := pw0 + pw1 + pw2
	if oneOverW == 0 {
		return shader.Fragment{}, false
	}
	inv := 1.0 / oneOverW

	f := shader.Fragment{
		Position: sv[0].Local.Scale(pw0).
			Add(sv[1].Local.Scale(pw1)).
			Add(sv[2].Local.Scale(pw2)).Scale(inv),
		World: sv[0].World.Scale(pw0).
			Add(sv[1].World.Scale(pw1)).
			Add(sv[2].World.Scale(pw2)).Scale(inv),
		Normal: sv[0].Normal.Scale(pw0).
			Add(sv[1].Normal.Scale(pw1)).
			Add(sv[2].Normal.Scale(pw2)).Scale(inv).Normalize(),
		UV: math3d.V2(
			(pw0*sv[0].UV.X+pw1*sv[1].UV.X+pw2*sv[2].UV.X)*inv,
			(pw0*sv[0].UV.Y+pw1*sv[1].UV.Y+pw2*sv[2].UV.Y)*inv,
		),
	}
	return f, true
}

// DrawMeshShaded renders a mesh through a shader pair. This is the
// reference implementation; DrawMeshShadedOpt is the one the frame loop
// uses. Automatically performs frustum culling if the mesh provides bounds.
func (r *Rasterizer) DrawMeshShaded(mesh MeshRenderer, model math3d.Mat4, s shader.Shader, u *shader.Uniforms) {
	if r.tryFrustumCull(mesh, model) {
		return
	}

	screenMat := r.viewport.Mul(r.camera.ViewProjectionMatrix())

	for i := 0; i < mesh.TriangleCount(); i++ {
		r.CullingStats.TrianglesIn++
		sv, ok := r.projectTriangle(mesh, mesh.GetFace(i), model, s, u, screenMat)
		if !ok {
			r.CullingStats.TrianglesSkipped++
			continue
		}
		r.drawTriangleShaded(&sv, s, u)
	}
}

// drawTriangleShaded rasterizes one projected triangle with per-pixel
// barycentric evaluation.
func (r *Rasterizer) drawTriangleShaded(sv *[3]screenVertex, s shader.Shader, u *shader.Uniforms) {
	// Screen-space winding. Front faces wind clockwise on screen.
	cross := (sv[1].X-sv[0].X)*(sv[2].Y-sv[0].Y) - (sv[1].Y-sv[0].Y)*(sv[2].X-sv[0].X)
	if cross < 0 && !r.DisableBackfaceCulling {
		r.CullingStats.TrianglesSkipped++
		return
	}
	if math.Abs(cross) < degenerateArea2 {
		r.CullingStats.TrianglesSkipped++
		return
	}

	// Bounding box (clamped to screen)
	minX := int(math.Max(0, math.Floor(min3(sv[0].X, sv[1].X, sv[2].X))))
	maxX := int(math.Min(float64(r.Width()-1), math.Ceil(max3(sv[0].X, sv[1].X, sv[2].X))))
	minY := int(math.Max(0, math.Floor(min3(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := int(math.Min(float64(r.Height()-1), math.Ceil(max3(sv[0].Y, sv[1].Y, sv[2].Y))))

	if minX > maxX || minY > maxY {
		r.CullingStats.TrianglesSkipped++
		return
	}
	r.CullingStats.TrianglesDrawn++

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5

			// The dot-product formulation is winding independent, so
			// two-sided triangles need no special casing here.
			bc := barycentric(
				sv[0].X, sv[0].Y,
				sv[1].X, sv[1].Y,
				sv[2].X, sv[2].Y,
				px, py,
			)

			// Check if inside triangle
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			// Interpolate depth
			z := bc.X*sv[0].Z + bc.Y*sv[1].Z + bc.Z*sv[2].Z

			// Depth test: strictly closer wins, so on exact ties the
			// first fragment drawn stays.
			if z >= r.getDepth(x, y) {
				continue
			}

			f, ok := fragmentAt(sv, bc.X, bc.Y, bc.Z)
			if !ok {
				continue
			}

			c := s.Fragment(f, u).RGBA()
			if c.A == 0 {
				continue
			}

			r.setDepth(x, y, z)
			if c.A == 255 {
				r.fb.SetPixel(x, y, c)
			} else {
				r.fb.BlendPixel(x, y, c)
			}
		}
	}
}

// barycentric calculates barycentric coordinates for point (px, py) in triangle.
func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) math3d.Vec3 {
	v0x, v0y := x2-x0, y2-y0
	v1x, v1y := x1-x0, y1-y0
	v2x, v2y := px-x0, py-y0

	dot00 := v0x*v0x + v0y*v0y
	dot01 := v0x*v1x + v0y*v1y
	dot02 := v0x*v2x + v0y*v2y
	dot11 := v1x*v1x + v1y*v1y
	dot12 := v1x*v2x + v1y*v2y

	invDenom := 1.0 / (dot00*dot11 - dot01*dot01)
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	return math3d.V3(1-u-v, v, u)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}

// MeshRenderer is the geometry source for draw calls. Defined here so
// drawing does not depend on the models package.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2)
	GetFace(i int) [3]int
}

// BoundedMeshRenderer extends MeshRenderer with bounding box support for frustum culling.
type BoundedMeshRenderer interface {
	MeshRenderer
	GetBounds() (min, max math3d.Vec3)
}

// tryFrustumCull attempts to cull a mesh using its bounds if available.
// Returns true if the mesh should be culled (not visible).
func (r *Rasterizer) tryFrustumCull(mesh MeshRenderer, transform math3d.Mat4) bool {
	// Check if mesh supports bounds for frustum culling
	bounded, ok := mesh.(BoundedMeshRenderer)
	if !ok {
		// No bounds available, can't cull
		return false
	}

	r.CullingStats.MeshesTested++

	// Get local bounds and transform to world space
	minBounds, maxBounds := bounded.GetBounds()
	localBounds := AABB{Min: minBounds, Max: maxBounds}

	// Check if visible
	if !r.IsVisibleTransformed(localBounds, transform) {
		r.CullingStats.MeshesCulled++
		return true
	}

	r.CullingStats.MeshesDrawn++
	return false
}

// DrawMeshWireframe renders a mesh as wireframe, ignoring shaders.
// Automatically performs frustum culling if the mesh provides bounds.
func (r *Rasterizer) DrawMeshWireframe(mesh MeshRenderer, transform math3d.Mat4, color Color) {
	// Frustum culling check
	if r.tryFrustumCull(mesh, transform) {
		return
	}

	for i := 0; i < mesh.TriangleCount(); i++ {
		face := mesh.GetFace(i)

		p0, _, _ := mesh.GetVertex(face[0])
		p1, _, _ := mesh.GetVertex(face[1])
		p2, _, _ := mesh.GetVertex(face[2])

		v0 := transform.MulVec3(p0)
		v1 := transform.MulVec3(p1)
		v2 := transform.MulVec3(p2)

		r.drawLine3D(v0, v1, color)
		r.drawLine3D(v1, v2, color)
		r.drawLine3D(v2, v0, color)
	}
}

// drawLine3D draws a 3D line (projected to screen).
func (r *Rasterizer) drawLine3D(a, b math3d.Vec3, color Color) {
	viewProj := r.camera.ViewProjectionMatrix()

	// Transform to clip space
	clipA := viewProj.MulVec4(math3d.V4FromV3(a, 1))
	clipB := viewProj.MulVec4(math3d.V4FromV3(b, 1))

	// Skip if both behind camera
	if clipA.W <= 0 && clipB.W <= 0 {
		return
	}

	// Perspective divide and NDC to screen
	if clipA.W > 0 {
		clipA.X /= clipA.W
		clipA.Y /= clipA.W
	}
	if clipB.W > 0 {
		clipB.X /= clipB.W
		clipB.Y /= clipB.W
	}

	x0 := int((clipA.X + 1) * 0.5 * float64(r.Width()))
	y0 := int((1 - clipA.Y) * 0.5 * float64(r.Height()))
	x1 := int((clipB.X + 1) * 0.5 * float64(r.Width()))
	y1 := int((1 - clipB.Y) * 0.5 * float64(r.Height()))

	r.fb.DrawLine(x0, y0, x1, y1, color)
}
