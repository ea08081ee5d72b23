package models

import (
	"math"
	"testing"

	"github.com/jruiz002/planetas/pkg/math3d"
)

func TestSphereCounts(t *testing.T) {
	tests := []struct {
		name    string
		rings   int
		sectors int
	}{
		{"minimal", 2, 3},
		{"coarse", 8, 12},
		{"default", 32, 48},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewUVSphere(tt.rings, tt.sectors, 1)
			if got, want := m.VertexCount(), (tt.rings+1)*(tt.sectors+1); got != want {
				t.Errorf("vertices = %d, want %d", got, want)
			}
			if got, want := m.TriangleCount(), tt.sectors*(2*tt.rings-2); got != want {
				t.Errorf("triangles = %d, want %d", got, want)
			}
			if err := m.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestSphereClampsDegenerateArgs(t *testing.T) {
	m := NewUVSphere(0, 0, 1)
	if m.TriangleCount() == 0 {
		t.Error("clamped sphere should still have triangles")
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestSphereGeometry(t *testing.T) {
	const radius = 2.5
	m := NewUVSphere(16, 24, radius)

	for i, v := range m.Vertices {
		if r := v.Position.Len(); math.Abs(r-radius) > epsilon {
			t.Fatalf("vertex %d at radius %v, want %v", i, r, radius)
		}
		if l := v.Normal.Len(); math.Abs(l-1) > epsilon {
			t.Fatalf("vertex %d normal length %v", i, l)
		}
		if d := v.Normal.Sub(v.Position.Scale(1 / radius)).Len(); d > epsilon {
			t.Fatalf("vertex %d normal %v does not point radially", i, v.Normal)
		}
		if v.UV.X < 0 || v.UV.X > 1 || v.UV.Y < 0 || v.UV.Y > 1 {
			t.Fatalf("vertex %d uv %v out of range", i, v.UV)
		}
	}

	if m.BoundsMax.Y-radius > epsilon || m.BoundsMin.Y+radius > epsilon {
		t.Errorf("bounds [%v, %v] should touch the poles", m.BoundsMin, m.BoundsMax)
	}
}

func TestSpherePoles(t *testing.T) {
	m := NewUVSphere(8, 12, 1)
	top := m.Vertices[0]
	if top.Position.Sub(math3d.V3(0, 1, 0)).Len() > epsilon {
		t.Errorf("first vertex %v should sit on the north pole", top.Position)
	}
	bottom := m.Vertices[len(m.Vertices)-1]
	if bottom.Position.Sub(math3d.V3(0, -1, 0)).Len() > epsilon {
		t.Errorf("last vertex %v should sit on the south pole", bottom.Position)
	}
}

// Front faces are wound clockwise seen from outside, so the geometric
// normal of every triangle must point away from the center.
func TestSphereWinding(t *testing.T) {
	m := NewUVSphere(8, 12, 1)
	for i, tri := range m.Triangles {
		v0 := m.Vertices[tri.V[0]].Position
		v1 := m.Vertices[tri.V[1]].Position
		v2 := m.Vertices[tri.V[2]].Position

		outward := v2.Sub(v0).Cross(v1.Sub(v0))
		centroid := v0.Add(v1).Add(v2).Scale(1.0 / 3)
		if outward.Dot(centroid) <= 0 {
			t.Fatalf("triangle %d wound inside out: %v %v %v", i, v0, v1, v2)
		}
	}
}

func TestSphereNoDegenerateTriangles(t *testing.T) {
	m := NewUVSphere(6, 8, 1)
	for i, tri := range m.Triangles {
		v0 := m.Vertices[tri.V[0]].Position
		v1 := m.Vertices[tri.V[1]].Position
		v2 := m.Vertices[tri.V[2]].Position
		area := v1.Sub(v0).Cross(v2.Sub(v0)).Len() / 2
		if area < 1e-12 {
			t.Errorf("triangle %d has zero area", i)
		}
	}
}

func TestRingMesh(t *testing.T) {
	const (
		inner    = 1.5
		outer    = 1.68
		segments = 64
	)
	m := NewRing(inner, outer, segments)

	if got, want := m.VertexCount(), 2*(segments+1); got != want {
		t.Errorf("vertices = %d, want %d", got, want)
	}
	if got, want := m.TriangleCount(), 2*segments; got != want {
		t.Errorf("triangles = %d, want %d", got, want)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	for i, v := range m.Vertices {
		if v.Position.Y != 0 {
			t.Fatalf("vertex %d off the plane: %v", i, v.Position)
		}
		r := math.Hypot(v.Position.X, v.Position.Z)
		if r < inner-epsilon || r > outer+epsilon {
			t.Fatalf("vertex %d at radius %v outside [%v, %v]", i, r, inner, outer)
		}
		if v.Normal != math3d.V3(0, 1, 0) {
			t.Fatalf("vertex %d normal %v, want +Y", i, v.Normal)
		}
		if v.UV.Y != 0 && v.UV.Y != 1 {
			t.Fatalf("vertex %d radial uv %v, want 0 or 1", i, v.UV.Y)
		}
	}
}

func BenchmarkNewUVSphere(b *testing.B) {
	for b.Loop() {
		NewUVSphere(32, 48, 1)
	}
}
