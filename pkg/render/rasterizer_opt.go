package render

import (
	"math"

	"github.com/jruiz002/planetas/pkg/math3d"
	"github.com/jruiz002/planetas/pkg/shader"
)

// DrawMeshShadedOpt is the optimized variant of DrawMeshShaded. It
// replaces the per-pixel barycentric solve with incremental edge
// functions and writes the framebuffer directly. Output matches the
// reference path; the frame loop uses this one.
func (r *Rasterizer) DrawMeshShadedOpt(mesh MeshRenderer, model math3d.Mat4, s shader.Shader, u *shader.Uniforms) {
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
		r.drawTriangleShadedOpt(&sv, s, u)
	}
}

// edgeCoeffs returns the edge function E(x, y) = a*x + b*y + c for the
// directed edge (xa, ya) -> (xb, yb). E is positive to the left of the
// edge in screen coordinates (y down), so all three edges of a
// clockwise triangle are positive inside.
func edgeCoeffs(xa, ya, xb, yb float64) (a, b, c float64) {
	return ya - yb, xb - xa, xa*yb - xb*ya
}

func (r *Rasterizer) drawTriangleShadedOpt(sv *[3]screenVertex, s shader.Shader, u *shader.Uniforms) {
	x0, y0 := sv[0].X, sv[0].Y
	x1, y1 := sv[1].X, sv[1].Y
	x2, y2 := sv[2].X, sv[2].Y

	// Doubled signed area; positive for front (clockwise) winding.
	area2 := (x1-x0)*(y2-y0) - (y1-y0)*(x2-x0)
	flip := false
	if area2 < 0 {
		if !r.DisableBackfaceCulling {
			r.CullingStats.TrianglesSkipped++
			return
		}
		flip = true
	}
	if math.Abs(area2) < degenerateArea2 {
		r.CullingStats.TrianglesSkipped++
		return
	}

	// Edge i is the edge opposite vertex i, so w_i/area2 is the
	// barycentric weight of vertex i.
	a0, b0, c0 := edgeCoeffs(x1, y1, x2, y2)
	a1, b1, c1 := edgeCoeffs(x2, y2, x0, y0)
	a2, b2, c2 := edgeCoeffs(x0, y0, x1, y1)

	// A back-facing triangle drawn two-sided has negative edge
	// functions inside. Negate everything so the inside test and the
	// normalized weights keep their signs.
	if flip {
		a0, b0, c0 = -a0, -b0, -c0
		a1, b1, c1 = -a1, -b1, -c1
		a2, b2, c2 = -a2, -b2, -c2
		area2 = -area2
	}
	invArea := 1.0 / area2

	minX := int(math.Max(0, math.Floor(min3(x0, x1, x2))))
	maxX := int(math.Min(float64(r.Width()-1), math.Ceil(max3(x0, x1, x2))))
	minY := int(math.Max(0, math.Floor(min3(y0, y1, y2))))
	maxY := int(math.Min(float64(r.Height()-1), math.Ceil(max3(y0, y1, y2))))

	if minX > maxX || minY > maxY {
		r.CullingStats.TrianglesSkipped++
		return
	}
	r.CullingStats.TrianglesDrawn++

	// Edge values at the top-left pixel center; stepping one pixel in x
	// adds a, one pixel in y adds b.
	px, py := float64(minX)+0.5, float64(minY)+0.5
	w0Row := a0*px + b0*py + c0
	w1Row := a1*px + b1*py + c1
	w2Row := a2*px + b2*py + c2

	zbuf := r.depth.Data
	fbw := r.fb.Width

	for y := minY; y <= maxY; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row
		rowIdx := y * fbw

		for x := minX; x <= maxX; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				bc0 := w0 * invArea
				bc1 := w1 * invArea
				bc2 := w2 * invArea

				z := bc0*sv[0].Z + bc1*sv[1].Z + bc2*sv[2].Z
				idx := rowIdx + x

				if z < zbuf[idx] {
					if f, ok := fragmentAt(sv, bc0, bc1, bc2); ok {
						c := s.Fragment(f, u).RGBA()
						switch {
						case c.A == 255:
							zbuf[idx] = z
							r.fb.Pixels[idx] = c
						case c.A > 0:
							zbuf[idx] = z
							r.fb.BlendPixel(x, y, c)
						}
					}
				}
			}

			w0 += a0
			w1 += a1
			w2 += a2
		}

		w0Row += b0
		w1Row += b1
		w2Row += b2
	}
}
