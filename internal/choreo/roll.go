package choreo

import (
	"errors"
	"time"

	"github.com/Faultbox/rollcube/internal/engine/tween"
	"github.com/Faultbox/rollcube/pkg/math"
)

// ErrRollInFlight is returned when a roll is requested while another one is
// still animating.
var ErrRollInFlight = errors.New("choreo: roll already in flight")

// PivotFrame is the temporary frame a cube rolls in. It sits at Origin with no
// rotation when the cube is attached and turns about Axis by Angle.
type PivotFrame struct {
	Origin math.Vec3
	Axis   Axis
	Angle  float32

	// Cube pose in frame space, captured at attach time.
	localPos math.Vec3
	localRot math.Mat4
	scale    math.Vec3
}

// Attach creates a frame at origin and expresses the cube's world pose in its
// space. The world pose is unchanged by attaching.
func Attach(origin math.Vec3, axis Axis, cube Transform) *PivotFrame {
	f := &PivotFrame{Origin: origin, Axis: axis}
	f.localPos = f.Matrix().Inverse().TransformPoint(cube.Position)
	f.localRot = math.EulerXYZ(cube.Rotation)
	f.scale = cube.Scale
	return f
}

// Matrix returns the frame transform T(origin) * R(axis, angle).
func (f *PivotFrame) Matrix() math.Mat4 {
	return math.Translate(f.Origin).Mul(f.Axis.Rotation(f.Angle))
}

// World returns the attached cube's world pose at the current angle.
func (f *PivotFrame) World() Transform {
	r := f.Axis.Rotation(f.Angle)
	return Transform{
		Position: f.Matrix().TransformPoint(f.localPos),
		Rotation: math.EulerFromMat4(r.Mul(f.localRot)),
		Scale:    f.scale,
	}
}

// Roller rotates the cube about an edge, one roll at a time.
type Roller struct {
	tweens *tween.Manager
	cube   *Transform
	frame  *PivotFrame

	Duration time.Duration
	Pause    time.Duration
}

// NewRoller creates a roller animating cube on tweens.
func NewRoller(tweens *tween.Manager, cube *Transform, duration, pause time.Duration) *Roller {
	return &Roller{tweens: tweens, cube: cube, Duration: duration, Pause: pause}
}

// Rolling reports whether a roll is animating.
func (r *Roller) Rolling() bool {
	return r.frame != nil
}

// Frame returns the active pivot frame, or nil between rolls.
func (r *Roller) Frame() *PivotFrame {
	return r.frame
}

// Roll turns the cube by angle about axis through pivot. The cube's world pose
// follows the frame on every update. When the motion ends the pose is baked,
// snapped to the grid, and onComplete runs after the configured pause.
func (r *Roller) Roll(pivot math.Vec3, axis Axis, angle float32, onComplete func()) error {
	if r.frame != nil {
		return ErrRollInFlight
	}
	f := Attach(pivot, axis, *r.cube)
	r.frame = f

	follow := func() { *r.cube = f.World() }
	r.tweens.To([]tween.Field{tween.F(&f.Angle, angle)}, r.Duration, tween.InOutQuad,
		tween.Options{OnUpdate: follow},
		func() {
			f.Angle = angle
			*r.cube = SnapTransform(f.World())
			r.frame = nil
			if onComplete == nil {
				return
			}
			if r.Pause > 0 {
				r.tweens.After(r.Pause, onComplete)
				return
			}
			onComplete()
		})
	return nil
}

// Reset detaches any frame without touching the cube.
func (r *Roller) Reset() {
	r.frame = nil
}
