// Package choreo scripts the rolling cube: the roll primitive and its pivot
// frame, grid snapping, the footprint trail, the step sequencer, the jump
// finale, the solidify cross-fade and the run controller that ties them to a
// click.
//
// Everything here runs on the goroutine that calls Director.Update. Motion is
// expressed as tweens on a shared tween.Manager; each stage continues the next
// from its completion callback.
package choreo

import (
	"fmt"

	"github.com/Faultbox/rollcube/pkg/math"
)

// Transform is a rigid pose with per-axis scale. Rotation holds XYZ-ordered
// Euler angles in radians.
type Transform struct {
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
}

// SpawnPosition is where the cube appears at the start of every run.
var SpawnPosition = math.Vec3{X: -0.5, Y: 9, Z: -2.5}

// SpawnTransform returns the cube pose at the start of a run.
func SpawnTransform() Transform {
	return Transform{Position: SpawnPosition, Scale: math.V3(1, 1, 1)}
}

// Matrix returns T * R * S.
func (t Transform) Matrix() math.Mat4 {
	return math.Compose(t.Position, t.Rotation, t.Scale)
}

// Axis names one of the three coordinate axes.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Vector returns the unit vector along the axis.
func (a Axis) Vector() math.Vec3 {
	switch a {
	case AxisX:
		return math.V3(1, 0, 0)
	case AxisY:
		return math.V3(0, 1, 0)
	default:
		return math.V3(0, 0, 1)
	}
}

// Rotation returns the rotation matrix about the axis.
func (a Axis) Rotation(angle float32) math.Mat4 {
	switch a {
	case AxisX:
		return math.RotateX(angle)
	case AxisY:
		return math.RotateY(angle)
	default:
		return math.RotateZ(angle)
	}
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", a)
	}
}
