// Package noise provides deterministic procedural noise primitives for
// the planet shaders. All functions are pure: the same input always
// produces the same output, so a surface pattern is stable across frames.
package noise

import (
	"math"

	"github.com/jruiz002/planetas/pkg/math3d"
)

// Simple returns sine-hash noise for a 3D coordinate in [-1, 1].
// It is a hash, not gradient noise: neighboring points are uncorrelated,
// which is what the shaders want for grain and speckle layers.
func Simple(p math3d.Vec3) float64 {
	s := math.Sin(p.X*12.9898+p.Y*78.233+p.Z*37.719) * 43758.5453
	return fract(math.Abs(s)*1000)*2 - 1
}

// FBM is fractal Brownian motion: octaves of Simple noise summed with
// halving amplitude and doubling frequency. Amplitude starts at 0.5, so
// the result always stays inside (-1, 1).
func FBM(p math3d.Vec3, octaves int) float64 {
	value := 0.0
	amplitude := 0.5
	frequency := 1.0

	for range octaves {
		value += amplitude * Simple(p.Scale(frequency))
		amplitude *= 0.5
		frequency *= 2
	}
	return value
}

// Voronoi returns the distance from p to the nearest seed point of a
// jittered integer lattice. Distances are >= 0; cell interiors are dark
// wells, cell borders are ridges. Used for craters and facets.
func Voronoi(p math3d.Vec3) float64 {
	base := p.Floor()
	minDist := math.MaxFloat64

	for dz := -1.0; dz <= 1; dz++ {
		for dy := -1.0; dy <= 1; dy++ {
			for dx := -1.0; dx <= 1; dx++ {
				cell := base.Add(math3d.V3(dx, dy, dz))
				seed := cell.Add(cellJitter(cell))
				if d := p.Distance(seed); d < minDist {
					minDist = d
				}
			}
		}
	}
	return minDist
}

// Ridge inverts the absolute value of FBM, producing sharp crests where
// the fractal crosses zero. Result is in (0, 1].
func Ridge(p math3d.Vec3, octaves int) float64 {
	return 1 - math.Abs(FBM(p, octaves))
}

// cellJitter offsets a lattice cell by a deterministic amount in [0,1)^3.
func cellJitter(cell math3d.Vec3) math3d.Vec3 {
	return math3d.V3(
		hash01(cell, 127.1, 311.7, 74.7),
		hash01(cell, 269.5, 183.3, 246.1),
		hash01(cell, 113.5, 271.9, 124.6),
	)
}

func hash01(p math3d.Vec3, a, b, c float64) float64 {
	s := math.Sin(p.X*a+p.Y*b+p.Z*c) * 43758.5453
	return fract(math.Abs(s))
}

func fract(x float64) float64 {
	return x - math.Floor(x)
}
