package models

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jruiz002/planetas/pkg/math3d"
)

func writeOBJ(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.obj")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOBJTriangle(t *testing.T) {
	path := writeOBJ(t, `
# a single triangle
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`)
	m, err := LoadOBJ(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.VertexCount() != 3 || m.TriangleCount() != 1 {
		t.Fatalf("got %d vertices, %d triangles", m.VertexCount(), m.TriangleCount())
	}
	// CCW input comes out reversed.
	if got := m.Triangles[0].V; got != [3]int{0, 2, 1} {
		t.Errorf("winding = %v, want [0 2 1]", got)
	}
}

func TestLoadOBJQuadFan(t *testing.T) {
	path := writeOBJ(t, `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`)
	m, err := LoadOBJ(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.TriangleCount() != 2 {
		t.Fatalf("quad should fan into 2 triangles, got %d", m.TriangleCount())
	}
}

func TestLoadOBJFullCorners(t *testing.T) {
	path := writeOBJ(t, `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
f 1/1/1 3/3/1 2/2/1
`)
	m, err := LoadOBJ(path)
	if err != nil {
		t.Fatal(err)
	}
	// Same corner specs must reuse vertices.
	if m.VertexCount() != 3 {
		t.Errorf("vertices = %d, want 3 after dedup", m.VertexCount())
	}
	if m.TriangleCount() != 2 {
		t.Errorf("triangles = %d, want 2", m.TriangleCount())
	}
	if n := m.Vertices[0].Normal; n != math3d.V3(0, 0, 1) {
		t.Errorf("normal = %v, want +Z", n)
	}
	if uv := m.Vertices[1].UV; uv != math3d.V2(1, 0) {
		t.Errorf("uv = %v, want (1,0)", uv)
	}
}

func TestLoadOBJNormalOnlyCorners(t *testing.T) {
	path := writeOBJ(t, `
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
`)
	m, err := LoadOBJ(path)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range m.Vertices {
		if v.Normal != math3d.V3(0, 0, 1) {
			t.Errorf("vertex %d normal = %v", i, v.Normal)
		}
	}
}

func TestLoadOBJNegativeIndices(t *testing.T) {
	path := writeOBJ(t, `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`)
	m, err := LoadOBJ(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Triangles[0].V != [3]int{0, 2, 1} {
		t.Errorf("triangle = %v", m.Triangles[0].V)
	}
}

func TestLoadOBJErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			"index out of range",
			"v 0 0 0\nv 1 0 0\nf 1 2 99\n",
			"out of range",
		},
		{
			"bad float",
			"v 0 zero 0\n",
			"line 1",
		},
		{
			"face too short",
			"v 0 0 0\nv 1 0 0\nf 1 2\n",
			"at least 3",
		},
		{
			"missing position index",
			"v 0 0 0\nvt 0 0\nf /1 /1 /1\n",
			"no position",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadOBJ(writeOBJ(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadOBJMissingFile(t *testing.T) {
	if _, err := LoadOBJ("/nonexistent/model.obj"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadOBJNormalFallback(t *testing.T) {
	path := writeOBJ(t, `
v 0 0 0
v 1 0 0
v 0 1 0
f 1 3 2
`)
	m, err := LoadOBJ(path)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range m.Vertices {
		if d := v.Normal.Len(); d < 1-epsilon || d > 1+epsilon {
			t.Errorf("vertex %d normal %v not unit length", i, v.Normal)
		}
	}
}

func TestLoadOBJSphericalUVFallback(t *testing.T) {
	path := writeOBJ(t, `
v 1 0 0
v 0 1 0
v 0 0 1
f 1 3 2
`)
	m, err := LoadOBJ(path)
	if err != nil {
		t.Fatal(err)
	}
	seenDistinct := false
	first := m.Vertices[0].UV
	for i, v := range m.Vertices {
		if v.UV.X < 0 || v.UV.X > 1 || v.UV.Y < 0 || v.UV.Y > 1 {
			t.Errorf("vertex %d uv %v out of range", i, v.UV)
		}
		if v.UV != first {
			seenDistinct = true
		}
	}
	if !seenDistinct {
		t.Error("fallback UVs should vary across the mesh")
	}
}
