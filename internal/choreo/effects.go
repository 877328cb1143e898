package choreo

import (
	"time"

	"github.com/Faultbox/rollcube/internal/engine/tween"
	"github.com/Faultbox/rollcube/pkg/math"
)

// Rig is the scene root transform. Impacts shake it independently of the
// camera, so everything in the scene moves together.
type Rig struct {
	Position math.Vec3
	Rotation math.Vec3
}

// Matrix returns the rig transform.
func (r Rig) Matrix() math.Mat4 {
	return math.Compose(r.Position, r.Rotation, math.V3(1, 1, 1))
}

// Impact targets.
const (
	ShakeAngle  = -0.1
	BounceDepth = -0.5
)

// Shake tilts the rig about z and back once.
func Shake(tweens *tween.Manager, rig *Rig, d time.Duration) {
	tweens.To([]tween.Field{tween.F(&rig.Rotation.Z, ShakeAngle)}, d, tween.OutElastic,
		tween.Options{Yoyo: true, Repeat: 1}, nil)
}

// Bounce dips the rig along y and back once.
func Bounce(tweens *tween.Manager, rig *Rig, d time.Duration) {
	tweens.To([]tween.Field{tween.F(&rig.Position.Y, BounceDepth)}, d, tween.OutElastic,
		tween.Options{Yoyo: true, Repeat: 1}, nil)
}
