package render

import (
	"math"

	"github.com/jruiz002/planetas/pkg/math3d"
)

// Orbit limits. Pitch stops short of the poles so the look-at up vector
// never degenerates, and distance keeps the planet between the clip planes.
const (
	maxPitch    = math.Pi/2 - 0.1
	minDistance = 1.0
	maxDistance = 20.0
)

// Camera defaults.
const (
	defaultYaw      = math.Pi / 2
	defaultPitch    = 0.2
	defaultDistance = 5.0
)

// Camera orbits a target point. The eye position is derived from yaw,
// pitch, and distance; panning moves the target.
type Camera struct {
	// Orbit state
	Target   math3d.Vec3
	Yaw      float64 // Angle around the Y axis
	Pitch    float64 // Elevation above the target plane
	Distance float64 // Eye distance from the target

	// Projection parameters
	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
	Near        float64 // Near clipping plane
	Far         float64 // Far clipping plane

	// Cached matrices (computed on demand)
	viewMatrix     math3d.Mat4
	projMatrix     math3d.Mat4
	viewProjMatrix math3d.Mat4
	viewDirty      bool
	projDirty      bool
	viewProjDirty  bool
}

// NewCamera creates a camera orbiting the origin with default settings.
func NewCamera() *Camera {
	return &Camera{
		Target:        math3d.Zero3(),
		Yaw:           defaultYaw,
		Pitch:         defaultPitch,
		Distance:      defaultDistance,
		FOV:           math.Pi / 4, // 45 degrees
		AspectRatio:   16.0 / 9.0,
		Near:          0.1,
		Far:           100,
		viewDirty:     true,
		projDirty:     true,
		viewProjDirty: true,
	}
}

// Position returns the eye position on the orbit sphere.
func (c *Camera) Position() math3d.Vec3 {
	cosP := math.Cos(c.Pitch)
	return c.Target.Add(math3d.V3(
		cosP*math.Cos(c.Yaw),
		math.Sin(c.Pitch),
		cosP*math.Sin(c.Yaw),
	).Scale(c.Distance))
}

// Rotate orbits the camera by the given yaw and pitch deltas (radians).
// Pitch is clamped short of the poles.
func (c *Camera) Rotate(deltaYaw, deltaPitch float64) {
	c.Yaw += deltaYaw
	c.Pitch += deltaPitch

	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}

	c.viewDirty = true
	c.viewProjDirty = true
}

// Zoom moves the eye along the view ray. Positive deltas move away
// from the target. Distance is clamped to the orbit limits.
func (c *Camera) Zoom(delta float64) {
	c.Distance += delta
	if c.Distance < minDistance {
		c.Distance = minDistance
	}
	if c.Distance > maxDistance {
		c.Distance = maxDistance
	}
	c.viewDirty = true
	c.viewProjDirty = true
}

// Pan slides the target in the camera plane. dx moves along the
// camera's right vector, dy along its up vector.
func (c *Camera) Pan(dx, dy float64) {
	c.Target = c.Target.Add(c.Right().Scale(dx)).Add(c.Up().Scale(dy))
	c.viewDirty = true
	c.viewProjDirty = true
}

// SetTarget points the orbit at a new target.
func (c *Camera) SetTarget(target math3d.Vec3) {
	c.Target = target
	c.viewDirty = true
	c.viewProjDirty = true
}

// Reset restores the default orbit around the origin.
func (c *Camera) Reset() {
	c.Target = math3d.Zero3()
	c.Yaw = defaultYaw
	c.Pitch = defaultPitch
	c.Distance = defaultDistance
	c.viewDirty = true
	c.viewProjDirty = true
}

// SetFOV sets the field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
	c.viewProjDirty = true
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
	c.viewProjDirty = true
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.projDirty = true
	c.viewProjDirty = true
}

// Forward returns the direction from the eye toward the target.
func (c *Camera) Forward() math3d.Vec3 {
	return c.Target.Sub(c.Position()).Normalize()
}

// Right returns the camera's right direction, horizontal in world space.
func (c *Camera) Right() math3d.Vec3 {
	return c.Forward().Cross(math3d.Up()).Normalize()
}

// Up returns the camera's up direction.
func (c *Camera) Up() math3d.Vec3 {
	return c.Right().Cross(c.Forward())
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.viewMatrix = math3d.LookAt(c.Position(), c.Target, math3d.Up())
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns the combined view-projection matrix.
// It tracks its own dirty flag, so fetching the view or projection
// matrix first does not leave a stale product behind.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	if c.viewProjDirty || c.viewDirty || c.projDirty {
		_ = c.ViewMatrix()
		_ = c.ProjectionMatrix()
		c.viewProjMatrix = c.projMatrix.Mul(c.viewMatrix)
		c.viewProjDirty = false
	}
	return c.viewProjMatrix
}

// WorldToScreen transforms a world point to screen coordinates.
// Returns (screenX, screenY, depth, visible).
func (c *Camera) WorldToScreen(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	// Transform to clip space
	clipPos := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(worldPos, 1))

	// Check if behind camera
	if clipPos.W <= 0 {
		return 0, 0, 0, false
	}

	// Perspective divide to NDC (-1 to 1)
	ndc := clipPos.PerspectiveDivide()

	// Check if in view frustum
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}

	// Convert to screen coordinates
	x = (ndc.X + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float64(screenHeight) // Y is flipped
	depth = ndc.Z

	return x, y, depth, true
}
