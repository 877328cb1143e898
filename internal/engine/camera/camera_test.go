package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/rollcube/pkg/math"
)

func near(a, b, eps float32) bool {
	return float32(gomath.Abs(float64(a-b))) <= eps
}

func TestNewOrbitCamera(t *testing.T) {
	c := NewOrbitCamera()

	if !near(c.Distance, 34.641, 0.001) {
		t.Errorf("expected distance 34.641, got %f", c.Distance)
	}
	if !near(c.RotationX, 0.6155, 0.001) {
		t.Errorf("expected pitch 0.6155, got %f", c.RotationX)
	}
	if !near(c.RotationY, gomath.Pi/4, 0.001) {
		t.Errorf("expected yaw pi/4, got %f", c.RotationY)
	}

	pos := c.Position()
	for i, v := range pos.Array() {
		if !near(v, 20, 0.001) {
			t.Errorf("position[%d]: expected 20, got %f", i, v)
		}
	}
}

func TestOrbitDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 10000)
	if c.RotationX != c.MaxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", c.MaxPitch, c.RotationX)
	}
	c.HandleDrag(0, -10000)
	if c.RotationX != c.MinPitch {
		t.Errorf("expected pitch clamped to %f, got %f", c.MinPitch, c.RotationX)
	}

	yaw := c.RotationY
	c.HandleDrag(100, 0)
	if !near(c.RotationY, yaw-0.5, 0.0001) {
		t.Errorf("expected yaw %f, got %f", yaw-0.5, c.RotationY)
	}
}

func TestOrbitReset(t *testing.T) {
	c := NewOrbitCamera()
	home := c.Position()

	c.HandleDrag(300, -200)
	c.HandleZoom(3)
	c.Center = math.V3(1, 2, 3)
	c.Reset()

	if c.Center != (math.Vec3{}) {
		t.Errorf("expected center at origin, got %v", c.Center)
	}
	if got := c.Position(); got != home {
		t.Errorf("expected home position %v, got %v", home, got)
	}
}

func TestOrbitZoomLimits(t *testing.T) {
	c := NewOrbitCamera()
	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("expected distance %f, got %f", c.MinDistance, c.Distance)
	}
	for i := 0; i < 100; i++ {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("expected distance %f, got %f", c.MaxDistance, c.Distance)
	}
}

func TestOrthoResize(t *testing.T) {
	c := NewOrthoCamera(1280, 640)

	halfW, halfH := c.Extent()
	if !near(halfH, 5, 0.0001) || !near(halfW, 10, 0.0001) {
		t.Errorf("expected extent 10x5, got %fx%f", halfW, halfH)
	}

	p := c.Projection()
	if !near(p[0], 0.1, 0.0001) || !near(p[5], 0.2, 0.0001) {
		t.Errorf("unexpected projection scale %f, %f", p[0], p[5])
	}

	c.Resize(0, 100)
	if c.Aspect() != 2 {
		t.Errorf("expected zero size to be ignored, aspect %f", c.Aspect())
	}

	c.Resize(500, 500)
	halfW, halfH = c.Extent()
	if !near(halfW, halfH, 0.0001) {
		t.Errorf("expected square extent, got %fx%f", halfW, halfH)
	}
}

func TestOrthoZoomScalesFrustum(t *testing.T) {
	c := NewOrthoCamera(800, 800)
	c.Orbit.HandleZoom(1)

	_, halfH := c.Extent()
	if !near(halfH, 4.5, 0.0001) {
		t.Errorf("expected half height 4.5, got %f", halfH)
	}
}

func TestOrthoOriginProjectsToCenter(t *testing.T) {
	c := NewOrthoCamera(1280, 720)

	p := c.ViewProjection().TransformPoint(math.Vec3{})
	if !near(p.X, 0, 0.0001) || !near(p.Y, 0, 0.0001) {
		t.Errorf("expected origin at screen center, got (%f, %f)", p.X, p.Y)
	}
	if p.Z <= -1 || p.Z >= 1 {
		t.Errorf("expected origin inside depth range, got %f", p.Z)
	}
}
