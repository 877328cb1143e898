package choreo

import (
	gomath "math"

	"github.com/Faultbox/rollcube/internal/engine/tween"
	"github.com/Faultbox/rollcube/pkg/math"
)

// Finale targets.
var (
	JumpPosition = math.V3(0, 4, 0)
	RestPosition = math.V3(-0.745, -0.75, -0.745)
)

const (
	JumpScale = 1.5
	JumpSpins = 20
)

// Finale is the jump, spin and drop after the last roll.
type Finale struct {
	tweens *tween.Manager
	cube   *Transform
	rig    *Rig
	timing Timing
}

// NewFinale creates a finale acting on cube and rig.
func NewFinale(tweens *tween.Manager, cube *Transform, rig *Rig, timing Timing) *Finale {
	return &Finale{tweens: tweens, cube: cube, rig: rig, timing: timing}
}

// Jump raises, enlarges and spins the cube together. The spin controls the
// timeline: a pause after it ends, onDrop runs and the cube drops. onLanded
// runs when the drop settles. Either callback may be nil.
func (f *Finale) Jump(onDrop, onLanded func()) {
	t := f.timing
	c := f.cube
	spin := c.Rotation.Z - float32(2*gomath.Pi*JumpSpins)

	f.tweens.To([]tween.Field{
		tween.F(&c.Position.X, JumpPosition.X),
		tween.F(&c.Position.Y, JumpPosition.Y),
		tween.F(&c.Position.Z, JumpPosition.Z),
	}, t.Jump, tween.OutCubic, tween.Options{}, nil)

	f.tweens.To([]tween.Field{
		tween.F(&c.Scale.X, JumpScale),
		tween.F(&c.Scale.Y, JumpScale),
		tween.F(&c.Scale.Z, JumpScale),
	}, t.Jump, tween.OutQuad, tween.Options{}, nil)

	f.tweens.To([]tween.Field{tween.F(&c.Rotation.Z, spin)}, t.Jump, tween.OutCubic, tween.Options{},
		func() {
			f.tweens.After(t.JumpPause, func() {
				if onDrop != nil {
					onDrop()
				}
				f.drop(onLanded)
			})
		})
}

func (f *Finale) drop(onLanded func()) {
	t := f.timing
	c := f.cube

	f.tweens.After(t.BounceDelay, func() { Bounce(f.tweens, f.rig, t.Impact) })
	f.tweens.To([]tween.Field{
		tween.F(&c.Position.X, RestPosition.X),
		tween.F(&c.Position.Y, RestPosition.Y),
		tween.F(&c.Position.Z, RestPosition.Z),
	}, t.Drop, tween.OutElastic, tween.Options{}, onLanded)
}
