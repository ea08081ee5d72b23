package render

import (
	"math"
	"testing"

	"github.com/jruiz002/planetas/pkg/math3d"
)

const cameraEpsilon = 1e-9

func vecClose(a, b math3d.Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestCameraPositionOnOrbit(t *testing.T) {
	c := NewCamera()
	c.Yaw = math.Pi / 2
	c.Pitch = 0
	c.Distance = 10

	if !vecClose(c.Position(), math3d.V3(0, 0, 10), cameraEpsilon) {
		t.Errorf("eye = %v, want (0, 0, 10)", c.Position())
	}

	// Yaw of zero swings the eye onto the +X axis.
	c.Yaw = 0
	if !vecClose(c.Position(), math3d.V3(10, 0, 0), cameraEpsilon) {
		t.Errorf("eye = %v, want (10, 0, 0)", c.Position())
	}

	// Pitch lifts the eye while keeping it on the orbit sphere.
	c.Pitch = math.Pi / 4
	pos := c.Position()
	if math.Abs(pos.Len()-10) > cameraEpsilon {
		t.Errorf("orbit radius = %v, want 10", pos.Len())
	}
	if math.Abs(pos.Y-10*math.Sin(math.Pi/4)) > cameraEpsilon {
		t.Errorf("eye height = %v, want %v", pos.Y, 10*math.Sin(math.Pi/4))
	}

	// The eye orbits the target, not the origin.
	c.SetTarget(math3d.V3(5, 0, 0))
	if math.Abs(c.Position().Sub(c.Target).Len()-10) > cameraEpsilon {
		t.Error("eye should stay at Distance from the target")
	}
}

func TestCameraRotateClampsPitch(t *testing.T) {
	c := NewCamera()

	c.Rotate(0, 10)
	if c.Pitch != maxPitch {
		t.Errorf("pitch = %v, want clamp at %v", c.Pitch, maxPitch)
	}

	c.Rotate(0, -20)
	if c.Pitch != -maxPitch {
		t.Errorf("pitch = %v, want clamp at %v", c.Pitch, -maxPitch)
	}

	// Yaw wraps freely.
	before := c.Yaw
	c.Rotate(4*math.Pi, 0)
	if math.Abs(c.Yaw-before-4*math.Pi) > cameraEpsilon {
		t.Errorf("yaw = %v, want %v", c.Yaw, before+4*math.Pi)
	}
}

func TestCameraZoomClampsDistance(t *testing.T) {
	c := NewCamera()

	c.Zoom(-100)
	if c.Distance != minDistance {
		t.Errorf("distance = %v, want clamp at %v", c.Distance, minDistance)
	}

	c.Zoom(100)
	if c.Distance != maxDistance {
		t.Errorf("distance = %v, want clamp at %v", c.Distance, maxDistance)
	}

	c.Zoom(-1)
	if c.Distance != maxDistance-1 {
		t.Errorf("distance = %v, want %v", c.Distance, maxDistance-1)
	}
}

func TestCameraPanMovesTarget(t *testing.T) {
	c := NewCamera()
	c.Yaw = math.Pi / 2
	c.Pitch = 0
	c.Distance = 10

	// Eye on +Z looking at the origin: right is +X, up is +Y.
	c.Pan(2, 3)
	if !vecClose(c.Target, math3d.V3(2, 3, 0), cameraEpsilon) {
		t.Errorf("target = %v, want (2, 3, 0)", c.Target)
	}

	// The eye follows the target.
	if !vecClose(c.Position(), math3d.V3(2, 3, 10), cameraEpsilon) {
		t.Errorf("eye = %v, want (2, 3, 10)", c.Position())
	}
}

func TestCameraReset(t *testing.T) {
	c := NewCamera()
	c.Rotate(1.2, 0.4)
	c.Zoom(7)
	c.Pan(3, -2)

	c.Reset()

	if c.Yaw != defaultYaw || c.Pitch != defaultPitch || c.Distance != defaultDistance {
		t.Errorf("reset orbit = (%v, %v, %v), want defaults", c.Yaw, c.Pitch, c.Distance)
	}
	if !vecClose(c.Target, math3d.Zero3(), cameraEpsilon) {
		t.Errorf("reset target = %v, want origin", c.Target)
	}
}

func TestCameraBasisOrthonormal(t *testing.T) {
	c := NewCamera()
	c.Rotate(0.7, 0.3)

	f := c.Forward()
	r := c.Right()
	u := c.Up()

	for name, v := range map[string]math3d.Vec3{"forward": f, "right": r, "up": u} {
		if math.Abs(v.Len()-1) > cameraEpsilon {
			t.Errorf("%s length = %v, want 1", name, v.Len())
		}
	}
	if math.Abs(f.Dot(r)) > cameraEpsilon || math.Abs(f.Dot(u)) > cameraEpsilon || math.Abs(r.Dot(u)) > cameraEpsilon {
		t.Error("camera basis vectors should be mutually perpendicular")
	}

	// Right stays horizontal so panning never rolls the view.
	if math.Abs(r.Y) > cameraEpsilon {
		t.Errorf("right.Y = %v, want 0", r.Y)
	}
}

func TestViewProjectionStaysFresh(t *testing.T) {
	c := NewCamera()
	vp1 := c.ViewProjectionMatrix()

	// Fetching the view matrix between a mutation and the combined
	// fetch must not leave a stale product.
	c.Rotate(0.3, 0)
	_ = c.ViewMatrix()
	vp2 := c.ViewProjectionMatrix()

	if vp1 == vp2 {
		t.Error("view-projection matrix did not refresh after Rotate")
	}

	c.SetFOV(math.Pi / 3)
	_ = c.ProjectionMatrix()
	vp3 := c.ViewProjectionMatrix()

	if vp2 == vp3 {
		t.Error("view-projection matrix did not refresh after SetFOV")
	}
}

func TestWorldToScreen(t *testing.T) {
	c := NewCamera()
	c.Yaw = math.Pi / 2
	c.Pitch = 0
	c.Distance = 10
	c.SetAspectRatio(1)

	x, y, depth, visible := c.WorldToScreen(math3d.Zero3(), 100, 100)
	if !visible {
		t.Fatal("target should be visible")
	}
	if math.Abs(x-50) > 0.5 || math.Abs(y-50) > 0.5 {
		t.Errorf("target projected to (%v, %v), want screen center", x, y)
	}
	if depth <= -1 || depth >= 1 {
		t.Errorf("depth = %v, want inside (-1, 1)", depth)
	}

	// Above the target lands in the upper half of the screen.
	_, yUp, _, ok := c.WorldToScreen(math3d.V3(0, 1, 0), 100, 100)
	if !ok || yUp >= 50 {
		t.Errorf("point above target projected to y=%v, want < 50", yUp)
	}

	// Behind the camera is not visible.
	if _, _, _, ok := c.WorldToScreen(math3d.V3(0, 0, 20), 100, 100); ok {
		t.Error("point behind the camera should not be visible")
	}
}
