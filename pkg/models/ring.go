package models

import (
	"math"

	"github.com/jruiz002/planetas/pkg/math3d"
)

// NewRing builds a flat annulus in the XZ plane between inner and outer
// radius, with +Y normals. UV.X runs around the ring, UV.Y from the
// inner edge (0) to the outer edge (1).
//
// The winding faces up; ring systems are drawn two-sided, so the
// underside shows as well.
func NewRing(inner, outer float64, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}

	mesh := NewMesh("ring")
	mesh.Vertices = make([]Vertex, 0, 2*(segments+1))
	mesh.Triangles = make([]Triangle, 0, 2*segments)

	up := math3d.V3(0, 1, 0)
	for s := 0; s <= segments; s++ {
		angle := 2 * math.Pi * float64(s) / float64(segments)
		sin, cos := math.Sincos(angle)
		u := float64(s) / float64(segments)
		mesh.Vertices = append(mesh.Vertices,
			Vertex{
				Position: math3d.V3(inner*cos, 0, inner*sin),
				Normal:   up,
				UV:       math3d.V2(u, 0),
			},
			Vertex{
				Position: math3d.V3(outer*cos, 0, outer*sin),
				Normal:   up,
				UV:       math3d.V2(u, 1),
			},
		)
	}

	for s := 0; s < segments; s++ {
		in := 2 * s
		out := in + 1
		mesh.Triangles = append(mesh.Triangles,
			Triangle{V: [3]int{in, out, out + 2}},
			Triangle{V: [3]int{in, out + 2, in + 2}},
		)
	}

	mesh.CalculateBounds()
	return mesh
}
