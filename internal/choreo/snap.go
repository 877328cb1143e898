package choreo

import (
	gomath "math"

	"github.com/Faultbox/rollcube/pkg/math"
)

// GridStep is the spacing positions snap to.
const GridStep = 0.5

// SnapPosition rounds every component to the nearest multiple of GridStep.
func SnapPosition(p math.Vec3) math.Vec3 {
	return p.Map(func(v float32) float32 { return math.RoundToMultiple(v, GridStep) })
}

// SnapRotation rounds an orientation to the nearest one whose Euler angles are
// all multiples of a quarter turn.
//
// The rotation matrix is rounded first and the angles are then re-extracted,
// so an orientation reached by rolling about different axes maps onto one
// canonical Euler triple instead of drifting per component.
func SnapRotation(euler math.Vec3) math.Vec3 {
	m := math.RoundRotation(math.EulerXYZ(euler))
	e := math.EulerFromMat4(m)
	return e.Map(func(v float32) float32 { return math.RoundToMultiple(v, math.HalfPi) })
}

// SnapTransform snaps position and rotation. Scale is left untouched.
func SnapTransform(t Transform) Transform {
	t.Position = SnapPosition(t.Position)
	t.Rotation = SnapRotation(t.Rotation)
	return t
}

// OnGrid reports whether the pose satisfies the grid invariant within tol:
// position components are multiples of GridStep and rotation components are
// multiples of a quarter turn.
func OnGrid(t Transform, tol float64) bool {
	for _, v := range t.Position.Array() {
		if !multipleOf(v, GridStep, tol) {
			return false
		}
	}
	for _, v := range t.Rotation.Array() {
		if !multipleOf(v, gomath.Pi/2, tol) {
			return false
		}
	}
	return true
}

func multipleOf(v float32, step, tol float64) bool {
	q := float64(v) / step
	return gomath.Abs(q-gomath.Round(q))*step <= tol
}
