package shadow

import (
	gomath "math"

	"github.com/Faultbox/rollcube/internal/engine/geometry"
	"github.com/Faultbox/rollcube/pkg/math"
)

// MinRadius keeps the light volume from collapsing on an empty scene.
const MinRadius = 1

// Radius returns the half-diagonal of b, never below MinRadius.
func Radius(b geometry.Bounds) float32 {
	s := b.Size().Scale(0.5)
	r := float32(gomath.Sqrt(float64(s.Dot(s))))
	if r < MinRadius {
		return MinRadius
	}
	return r
}

// LightMatrix computes the view-projection of a directional light for the
// shadow pass. toLight points from the scene toward the light and need not
// be normalized.
func LightMatrix(toLight math.Vec3, scene geometry.Bounds) math.Mat4 {
	dir := toLight.Normalize()
	center := scene.Center()
	radius := Radius(scene)

	// Position light far enough to encompass entire scene
	lightDistance := radius * 2.0
	lightPos := center.Add(dir.Scale(lightDistance))

	// Avoid an up vector parallel to the light direction
	up := math.V3(0, 1, 0)
	if abs32(dir.Y) > 0.99 {
		up = math.V3(0, 0, 1)
	}

	view := math.LookAt(lightPos, center, up)

	// Padding avoids edge artifacts
	padding := radius * 0.1
	halfSize := radius + padding
	far := lightDistance + radius + padding

	proj := math.Ortho(-halfSize, halfSize, -halfSize, halfSize, 0.1, far)
	return proj.Mul(view)
}

// Bias maps clip space [-1, 1] into texture space [0, 1] for sampling.
func Bias() math.Mat4 {
	return math.Translate(math.V3(0.5, 0.5, 0.5)).Mul(math.Scale(math.V3(0.5, 0.5, 0.5)))
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
