package choreo

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/rollcube/internal/engine/tween"
	"github.com/Faultbox/rollcube/pkg/math"
)

// State is the run flag.
type State uint8

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Phase is the stage of the timeline. It is finer than State: the solidify
// cross-fade plays while the run flag is already clear.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseIntro
	PhaseRolling
	PhaseJump
	PhaseDrop
	PhaseSolidify
	PhaseDone
)

var phaseNames = [...]string{"idle", "intro", "rolling", "jump", "drop", "solidify", "done"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", p)
}

// Timing holds every duration of the timeline.
type Timing struct {
	Roll        time.Duration
	RollPause   time.Duration
	Intro       time.Duration
	IntroPause  time.Duration
	ShakeDelay  time.Duration
	Impact      time.Duration
	Jump        time.Duration
	JumpPause   time.Duration
	Drop        time.Duration
	BounceDelay time.Duration
	Solidify    time.Duration
}

// DefaultTiming returns the reference timeline.
func DefaultTiming() Timing {
	return Timing{
		Roll:        170 * time.Millisecond,
		RollPause:   0,
		Intro:       300 * time.Millisecond,
		IntroPause:  100 * time.Millisecond,
		ShakeDelay:  75 * time.Millisecond,
		Impact:      200 * time.Millisecond,
		Jump:        400 * time.Millisecond,
		JumpPause:   300 * time.Millisecond,
		Drop:        250 * time.Millisecond,
		BounceDelay: 100 * time.Millisecond,
		Solidify:    450 * time.Millisecond,
	}
}

// Total returns the length of one run along the reference path.
func (t Timing) Total(steps int) time.Duration {
	return t.Intro + t.IntroPause +
		time.Duration(steps)*(t.Roll+t.RollPause) +
		t.Jump + t.JumpPause + t.Drop + t.Solidify
}

// IntroHeight is the cube's y once it has landed on the grid.
const IntroHeight = 0.5

// Cue is the sound played at the start of every run. Implementations must
// tolerate calls before the sound has loaded.
type Cue interface {
	Resume()
	Ready() bool
	Playing() bool
	Stop()
	Play()
}

// Options configures a Director. Zero fields take defaults.
type Options struct {
	Timing Timing
	Path   []Step
	Cue    Cue
	Logger *zap.Logger
	// OnPhase observes every phase change with the timeline clock.
	OnPhase func(p Phase, at time.Duration)
}

// Director runs the choreography: it guards against overlapping runs, resets
// all animation state on a trigger and drives the intro, the rolls, the finale
// and the cross-fade.
type Director struct {
	tweens *tween.Manager
	timing Timing
	cue    Cue
	log    *zap.Logger

	state   State
	phase   Phase
	runs    int
	onPhase func(Phase, time.Duration)

	cube       Transform
	rig        Rig
	appearance Appearance
	trail      Trail
	solid      []SolidPart
	grid       bool

	roller *Roller
	seq    *Sequencer
	finale *Finale
}

// New creates an idle director with the cube at its spawn pose.
func New(opts Options) *Director {
	if opts.Timing == (Timing{}) {
		opts.Timing = DefaultTiming()
	}
	if opts.Path == nil {
		opts.Path = ReferencePath
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	d := &Director{
		tweens:     tween.NewManager(),
		timing:     opts.Timing,
		cue:        opts.Cue,
		log:        opts.Logger,
		onPhase:    opts.OnPhase,
		cube:       SpawnTransform(),
		appearance: RestAppearance(),
		grid:       true,
	}
	d.roller = NewRoller(d.tweens, &d.cube, opts.Timing.Roll, opts.Timing.RollPause)
	d.seq = NewSequencer(opts.Path, d.roller, &d.trail, &d.cube, opts.Logger)
	d.finale = NewFinale(d.tweens, &d.cube, &d.rig, opts.Timing)
	return d
}

// Trigger starts a new run. It is ignored, and reports false, while a run is
// in progress.
func (d *Director) Trigger() bool {
	if d.state == Running {
		d.log.Debug("trigger ignored", zap.Stringer("phase", d.phase))
		return false
	}
	d.state = Running
	d.runs++
	d.log.Info("run started", zap.Int("run", d.runs))

	d.playCue()
	d.reset()
	d.intro()
	return true
}

// ToggleGrid flips helper grid visibility. It does not affect the run.
func (d *Director) ToggleGrid() {
	d.grid = !d.grid
}

// Update advances the timeline by dt.
func (d *Director) Update(dt time.Duration) {
	d.tweens.Update(dt)
}

func (d *Director) playCue() {
	if d.cue == nil {
		return
	}
	d.cue.Resume()
	if !d.cue.Ready() {
		d.log.Debug("cue not loaded, skipping")
		return
	}
	if d.cue.Playing() {
		d.cue.Stop()
	}
	d.cue.Play()
}

// reset puts every piece of animation state back to its spawn value and drops
// whatever the previous run still had scheduled.
func (d *Director) reset() {
	d.tweens.Clear()
	d.roller.Reset()
	d.seq.Reset()
	d.solid = nil
	d.trail.Clear()
	d.cube = SpawnTransform()
	d.rig = Rig{}
	d.appearance = RestAppearance()
}

func (d *Director) setPhase(p Phase) {
	d.phase = p
	if d.onPhase != nil {
		d.onPhase(p, d.tweens.Now())
	}
}

func (d *Director) intro() {
	d.setPhase(PhaseIntro)
	d.tweens.After(d.timing.ShakeDelay, func() { Shake(d.tweens, &d.rig, d.timing.Impact) })
	d.tweens.To([]tween.Field{tween.F(&d.cube.Position.Y, IntroHeight)}, d.timing.Intro, tween.OutElastic,
		tween.Options{},
		func() {
			d.tweens.After(d.timing.IntroPause, func() {
				d.setPhase(PhaseRolling)
				d.seq.Start(d.jump)
			})
		})
}

func (d *Director) jump() {
	d.setPhase(PhaseJump)
	d.log.Debug("finale", zap.Float32("x", d.cube.Position.X),
		zap.Float32("y", d.cube.Position.Y), zap.Float32("z", d.cube.Position.Z))
	d.finale.Jump(func() { d.setPhase(PhaseDrop) }, d.landed)
}

func (d *Director) landed() {
	d.state = Idle
	d.setPhase(PhaseSolidify)
	d.solid = BuildSolidGroup(d.cube, d.trail.Footprints())
	CrossFade(d.tweens, &d.appearance, d.timing.Solidify, func() {
		d.setPhase(PhaseDone)
		d.log.Info("run finished", zap.Int("run", d.runs), zap.Int("footprints", d.trail.Len()))
	})
}

// State returns the run flag.
func (d *Director) State() State { return d.state }

// Phase returns the timeline stage.
func (d *Director) Phase() Phase { return d.phase }

// Runs returns the number of accepted triggers.
func (d *Director) Runs() int { return d.runs }

// Cube returns the current cube pose.
func (d *Director) Cube() Transform { return d.cube }

// Rig returns the current scene root transform.
func (d *Director) Rig() Rig { return d.rig }

// Appearance returns the current material state.
func (d *Director) Appearance() Appearance { return d.appearance }

// Footprints returns the plates dropped so far in this run.
func (d *Director) Footprints() []Footprint { return d.trail.Footprints() }

// SolidParts returns the solid group, empty until the cube has landed.
func (d *Director) SolidParts() []SolidPart {
	out := make([]SolidPart, len(d.solid))
	copy(out, d.solid)
	return out
}

// Records returns the rolls executed in this run.
func (d *Director) Records() []RollRecord { return d.seq.Records() }

// Rolling reports whether a roll is animating.
func (d *Director) Rolling() bool { return d.roller.Rolling() }

// GridVisible reports whether the helper grid is shown.
func (d *Director) GridVisible() bool { return d.grid }

// Pending returns the number of live tweens and timers.
func (d *Director) Pending() int { return d.tweens.Len() }

// Now returns the timeline clock.
func (d *Director) Now() time.Duration { return d.tweens.Now() }

// Timing returns the configured durations.
func (d *Director) Timing() Timing { return d.timing }

// PivotFrame returns the active roll frame, or nil between rolls.
func (d *Director) PivotFrame() *PivotFrame { return d.roller.Frame() }

// groupMatrix places the solid group under the rig.
func (d *Director) groupMatrix() math.Mat4 {
	return d.rig.Matrix().Mul(math.Scale(math.V3(SolidGroupScale, SolidGroupScale, SolidGroupScale)))
}
