package render

import (
	"math"

	"github.com/jruiz002/planetas/pkg/math3d"
)

// Wireframe renders 3D line overlays on top of a shaded frame.
type Wireframe struct {
	camera *Camera
	fb     *Framebuffer
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(camera *Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		camera: camera,
		fb:     fb,
	}
}

// DrawLine3D draws a line in 3D space.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	// Project both endpoints
	x1, y1, _, vis1 := w.camera.WorldToScreen(p1, w.fb.Width, w.fb.Height)
	x2, y2, _, vis2 := w.camera.WorldToScreen(p2, w.fb.Width, w.fb.Height)

	// Simple clipping: only draw if at least one point is visible
	// (proper line clipping would be more complex)
	if !vis1 && !vis2 {
		return
	}

	// Draw the line
	w.fb.DrawLine(int(x1), int(y1), int(x2), int(y2), color)
}

// DrawAxes draws the coordinate axes at the origin.
func (w *Wireframe) DrawAxes(length float64) {
	origin := math3d.Zero3()
	w.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)   // X axis
	w.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen) // Y axis
	w.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)  // Z axis
}

// DrawCircle draws a circle in the XZ plane, used to trace orbit paths.
func (w *Wireframe) DrawCircle(center math3d.Vec3, radius float64, segments int, color Color) {
	if segments < 3 {
		segments = 3
	}
	step := 2 * math.Pi / float64(segments)
	prev := math3d.V3(center.X+radius, center.Y, center.Z)
	for i := 1; i <= segments; i++ {
		angle := float64(i) * step
		next := math3d.V3(
			center.X+radius*math.Cos(angle),
			center.Y,
			center.Z+radius*math.Sin(angle),
		)
		w.DrawLine3D(prev, next, color)
		prev = next
	}
}

// DrawPoint draws a point as a small cross.
func (w *Wireframe) DrawPoint(pos math3d.Vec3, size float64, color Color) {
	halfSize := size / 2
	w.DrawLine3D(
		math3d.V3(pos.X-halfSize, pos.Y, pos.Z),
		math3d.V3(pos.X+halfSize, pos.Y, pos.Z),
		color,
	)
	w.DrawLine3D(
		math3d.V3(pos.X, pos.Y-halfSize, pos.Z),
		math3d.V3(pos.X, pos.Y+halfSize, pos.Z),
		color,
	)
	w.DrawLine3D(
		math3d.V3(pos.X, pos.Y, pos.Z-halfSize),
		math3d.V3(pos.X, pos.Y, pos.Z+halfSize),
		color,
	)
}
