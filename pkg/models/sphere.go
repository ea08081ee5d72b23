package models

import (
	"math"

	"github.com/jruiz002/planetas/pkg/math3d"
)

// NewUVSphere builds a latitude/longitude sphere centered at the origin.
// rings is the number of latitude bands (poles included), sectors the
// number of longitude slices. Vertices along the seam and at the poles
// are duplicated so each carries its own UV.
//
// Triangles are wound clockwise when viewed from outside, which is the
// front-facing convention the rasterizer expects.
func NewUVSphere(rings, sectors int, radius float64) *Mesh {
	if rings < 2 {
		rings = 2
	}
	if sectors < 3 {
		sectors = 3
	}

	mesh := NewMesh("sphere")
	mesh.Vertices = make([]Vertex, 0, (rings+1)*(sectors+1))
	mesh.Triangles = make([]Triangle, 0, sectors*(2*rings-2))

	for r := 0; r <= rings; r++ {
		theta := math.Pi * float64(r) / float64(rings)
		y := math.Cos(theta)
		radial := math.Sin(theta)
		for s := 0; s <= sectors; s++ {
			phi := 2 * math.Pi * float64(s) / float64(sectors)
			n := math3d.V3(radial*math.Cos(phi), y, radial*math.Sin(phi))
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: n.Scale(radius),
				Normal:   n,
				UV:       math3d.V2(float64(s)/float64(sectors), float64(r)/float64(rings)),
			})
		}
	}

	for r := 0; r < rings; r++ {
		for s := 0; s < sectors; s++ {
			cur := r*(sectors+1) + s
			next := cur + sectors + 1

			// Each quad splits into two triangles. The triangle that
			// collapses onto a pole is dropped.
			if r < rings-1 {
				mesh.Triangles = append(mesh.Triangles, Triangle{V: [3]int{cur, next, next + 1}})
			}
			if r > 0 {
				mesh.Triangles = append(mesh.Triangles, Triangle{V: [3]int{cur, next + 1, cur + 1}})
			}
		}
	}

	mesh.CalculateBounds()
	return mesh
}
