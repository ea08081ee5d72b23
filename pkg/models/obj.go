package models

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jruiz002/planetas/pkg/math3d"
)

// LoadOBJ loads a Wavefront OBJ file. Polygon faces are fan
// triangulated. OBJ winds front faces counter-clockwise; the loader
// reverses each triangle to the engine's clockwise convention.
//
// Missing normals are reconstructed as smooth normals, and missing
// texture coordinates fall back to a spherical projection.
func LoadOBJ(path string) (*Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer file.Close()

	var (
		positions []math3d.Vec3
		normals   []math3d.Vec3
		uvs       []math3d.Vec2
	)

	mesh := NewMesh(filepath.Base(path))
	// OBJ indexes positions, uvs, and normals separately; the mesh
	// indexes whole vertices. Deduplicate on the index triple.
	seen := make(map[[3]int]int)

	lineNo := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("obj %q line %d: %w", path, lineNo, err)
			}
			positions = append(positions, p)

		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("obj %q line %d: %w", path, lineNo, err)
			}
			normals = append(normals, n)

		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("obj %q line %d: vt needs 2 components", path, lineNo)
			}
			u, err1 := strconv.ParseFloat(fields[1], 64)
			v, err2 := strconv.ParseFloat(fields[2], 64)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("obj %q line %d: bad texture coordinate", path, lineNo)
			}
			uvs = append(uvs, math3d.V2(u, v))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj %q line %d: face needs at least 3 corners", path, lineNo)
			}
			corners := make([]int, 0, len(fields)-1)
			for _, spec := range fields[1:] {
				idx, err := resolveCorner(spec, positions, uvs, normals, mesh, seen)
				if err != nil {
					return nil, fmt.Errorf("obj %q line %d: %w", path, lineNo, err)
				}
				corners = append(corners, idx)
			}
			// Fan triangulate, reversing CCW -> CW as we go.
			for i := 1; i+1 < len(corners); i++ {
				mesh.Triangles = append(mesh.Triangles, Triangle{
					V: [3]int{corners[0], corners[i+1], corners[i]},
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}

	if len(normals) == 0 {
		mesh.CalculateSmoothNormals()
	}
	if len(uvs) == 0 {
		for i := range mesh.Vertices {
			mesh.Vertices[i].UV = sphericalUV(mesh.Vertices[i].Position)
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// resolveCorner parses one face corner ("v", "v/vt", "v//vn" or
// "v/vt/vn", 1-based, negative meaning from-the-end) and returns the
// mesh vertex index for it, adding the vertex on first sight.
// Relative indices depend on how much of the file has been read, so
// deduplication keys on the resolved indices, not the raw spec.
func resolveCorner(spec string, positions []math3d.Vec3, uvs []math3d.Vec2, normals []math3d.Vec3, mesh *Mesh, seen map[[3]int]int) (int, error) {
	parts := strings.Split(spec, "/")
	if len(parts) > 3 {
		return 0, fmt.Errorf("bad face corner %q", spec)
	}

	key := [3]int{-1, -1, -1}
	for i, part := range parts {
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, fmt.Errorf("bad face corner %q: %w", spec, err)
		}
		var count int
		switch i {
		case 0:
			count = len(positions)
		case 1:
			count = len(uvs)
		case 2:
			count = len(normals)
		}
		key[i], err = resolveIndex(n, count)
		if err != nil {
			return 0, fmt.Errorf("face corner %q: %w", spec, err)
		}
	}
	if key[0] < 0 {
		return 0, fmt.Errorf("face corner %q has no position", spec)
	}

	if idx, ok := seen[key]; ok {
		return idx, nil
	}

	v := Vertex{Position: positions[key[0]]}
	if key[1] >= 0 {
		// OBJ puts V=0 at the bottom already.
		v.UV = uvs[key[1]]
	}
	if key[2] >= 0 {
		v.Normal = normals[key[2]]
	}

	idx := len(mesh.Vertices)
	mesh.Vertices = append(mesh.Vertices, v)
	seen[key] = idx
	return idx, nil
}

// resolveIndex maps a 1-based (or negative relative) OBJ index to a
// 0-based slice index.
func resolveIndex(idx, count int) (int, error) {
	switch {
	case idx > 0 && idx <= count:
		return idx - 1, nil
	case idx < 0 && -idx <= count:
		return count + idx, nil
	default:
		return 0, fmt.Errorf("index %d out of range, have %d", idx, count)
	}
}

func parseVec3(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Zero3(), fmt.Errorf("need 3 components, have %d", len(fields))
	}
	var out [3]float64
	for i := range 3 {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math3d.Zero3(), fmt.Errorf("bad component %q: %w", fields[i], err)
		}
		out[i] = f
	}
	return math3d.V3(out[0], out[1], out[2]), nil
}

// sphericalUV projects a position radially onto [0,1]^2. Used when a
// model ships without texture coordinates, so procedural shaders still
// get a stable parameterization.
func sphericalUV(p math3d.Vec3) math3d.Vec2 {
	if p.Len() == 0 {
		return math3d.V2(0.5, 0.5)
	}
	d := p.Normalize()
	u := 0.5 + math.Atan2(d.Z, d.X)/(2*math.Pi)
	v := 0.5 - math.Asin(d.Y)/math.Pi
	return math3d.V2(u, v)
}
