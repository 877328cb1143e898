package camera

import (
	"github.com/Faultbox/rollcube/pkg/math"
)

// DefaultFrustum is the visible height of the orthographic view in world units.
const DefaultFrustum = 10

// OrthoCamera is an orthographic camera whose view comes from an orbit
// controller. Zooming the orbit scales the frustum since distance alone
// does not change an orthographic image.
type OrthoCamera struct {
	Orbit   *OrbitCamera
	Frustum float32
	Near    float32
	Far     float32

	aspect       float32
	baseDistance float32
}

// NewOrthoCamera creates an orthographic camera for a viewport of the given size.
func NewOrthoCamera(width, height int) *OrthoCamera {
	orbit := NewOrbitCamera()
	c := &OrthoCamera{
		Orbit:        orbit,
		Frustum:      DefaultFrustum,
		Near:         0.1,
		Far:          100,
		aspect:       1,
		baseDistance: orbit.Distance,
	}
	c.Resize(width, height)
	return c
}

// Resize recomputes the aspect ratio. Zero sizes are ignored.
func (c *OrthoCamera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float32(width) / float32(height)
}

// Aspect returns the current width/height ratio.
func (c *OrthoCamera) Aspect() float32 {
	return c.aspect
}

// Extent returns the half width and half height of the view volume.
func (c *OrthoCamera) Extent() (halfW, halfH float32) {
	zoom := c.Orbit.Distance / c.baseDistance
	halfH = c.Frustum / 2 * zoom
	halfW = halfH * c.aspect
	return halfW, halfH
}

// Projection returns the orthographic projection matrix.
func (c *OrthoCamera) Projection() math.Mat4 {
	halfW, halfH := c.Extent()
	return math.Ortho(-halfW, halfW, -halfH, halfH, c.Near, c.Far)
}

// View returns the view matrix.
func (c *OrthoCamera) View() math.Mat4 {
	return c.Orbit.ViewMatrix()
}

// ViewProjection returns projection * view.
func (c *OrthoCamera) ViewProjection() math.Mat4 {
	return c.Projection().Mul(c.View())
}

// Position returns the eye position.
func (c *OrthoCamera) Position() math.Vec3 {
	return c.Orbit.Position()
}
