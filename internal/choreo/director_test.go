package choreo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/rollcube/internal/engine/scene"
	"github.com/Faultbox/rollcube/pkg/math"
)

const frameStep = 10 * time.Millisecond

// runUntil advances d in fixed frames until cond holds or limit elapses.
func runUntil(d *Director, cond func() bool, limit time.Duration) bool {
	for elapsed := time.Duration(0); elapsed < limit; elapsed += frameStep {
		if cond() {
			return true
		}
		d.Update(frameStep)
	}
	return cond()
}

func runToEnd(t *testing.T, d *Director) {
	t.Helper()
	ok := runUntil(d, func() bool { return d.Phase() == PhaseDone }, 10*time.Second)
	require.True(t, ok, "run did not finish, stuck in %s", d.Phase())
}

type fakeCue struct {
	ready, playing bool
	calls          []string
}

func (c *fakeCue) Resume()       { c.calls = append(c.calls, "resume") }
func (c *fakeCue) Ready() bool   { return c.ready }
func (c *fakeCue) Playing() bool { return c.playing }
func (c *fakeCue) Stop()         { c.calls = append(c.calls, "stop"); c.playing = false }
func (c *fakeCue) Play()         { c.calls = append(c.calls, "play"); c.playing = true }

func TestNewDirectorIsIdleAtSpawn(t *testing.T) {
	d := New(Options{})

	assert.Equal(t, Idle, d.State())
	assert.Equal(t, PhaseIdle, d.Phase())
	assert.Equal(t, SpawnTransform(), d.Cube())
	assert.Equal(t, math.V3(-0.5, 9, -2.5), d.Cube().Position)
	assert.Equal(t, RestAppearance(), d.Appearance())
	assert.True(t, d.Appearance().Settled())
	assert.True(t, d.GridVisible())
	assert.Equal(t, 0, d.Pending())
}

func TestIntroLandsBeforeFirstRoll(t *testing.T) {
	d := New(Options{})
	require.True(t, d.Trigger())
	assert.Equal(t, Running, d.State())
	assert.Equal(t, PhaseIntro, d.Phase())

	ok := runUntil(d, func() bool { return d.Phase() == PhaseRolling }, time.Second)
	require.True(t, ok)

	assert.Equal(t, math.V3(-0.5, 0.5, -2.5), d.Cube().Position)
	assert.Empty(t, d.Footprints())
	assert.Empty(t, d.Records())
	assert.GreaterOrEqual(t, d.Now(), d.Timing().Intro+d.Timing().IntroPause)
}

func TestFirstRollsAndFootprint(t *testing.T) {
	d := New(Options{})
	d.Trigger()

	ok := runUntil(d, func() bool { return len(d.Records()) == 1 }, 2*time.Second)
	require.True(t, ok)

	rec := d.Records()[0]
	assert.Equal(t, 1, rec.Index)
	assert.Equal(t, math.V3(-1, 0, -2.5), rec.Pivot)
	assert.Equal(t, AxisZ, rec.Axis)
	assert.Equal(t, math.HalfPi, rec.Angle)
	assert.Equal(t, math.V3(-1.5, 0.5, -2.5), rec.Landing)

	// Step two drops its footprint on the cell step one landed on.
	ok = runUntil(d, func() bool { return len(d.Footprints()) == 1 }, time.Second)
	require.True(t, ok)
	fp := d.Footprints()[0]
	assert.Equal(t, math.V3(-1.5, 0.5, -2.5), fp.Cell)
	assert.Equal(t, FaceDown, fp.Face)
	assert.Equal(t, math.V3(-1.5, 0, -2.5), fp.Position)
	assert.Equal(t, float32(PlateThickness), fp.Size.Y)
}

func TestFullRun(t *testing.T) {
	var jumpFrom math.Vec3
	var phases []Phase
	var d *Director
	d = New(Options{OnPhase: func(p Phase, _ time.Duration) {
		phases = append(phases, p)
		if p == PhaseJump {
			jumpFrom = d.Cube().Position
		}
	}})

	d.Trigger()
	runToEnd(t, d)

	assert.Equal(t, []Phase{PhaseIntro, PhaseRolling, PhaseJump, PhaseDrop, PhaseSolidify, PhaseDone}, phases)

	records := d.Records()
	require.Len(t, records, 16)
	for _, rec := range records {
		assert.True(t, OnGrid(Transform{Position: rec.Landing}, 0), "step %d landed off grid at %v", rec.Index, rec.Landing)
	}
	assert.Equal(t, math.V3(0.5, -0.5, -0.5), jumpFrom)

	prints := d.Footprints()
	require.Len(t, prints, 15)
	assert.Equal(t, math.V3(-1.5, 0.5, -2.5), prints[0].Cell)
	assert.Equal(t, math.V3(0.5, -0.5, -1.5), prints[14].Cell)
	assert.Equal(t, FaceWest, prints[14].Face)

	assert.Equal(t, Idle, d.State())
	assert.Equal(t, RestPosition, d.Cube().Position)
	assert.InDelta(t, JumpScale, d.Cube().Scale.X, 1e-6)
	assert.Equal(t, Rig{}, d.Rig(), "impacts settle back")
	assert.Equal(t, 0, d.Pending())
}

func TestCrossFadeEnd(t *testing.T) {
	d := New(Options{})
	d.Trigger()
	runToEnd(t, d)

	a := d.Appearance()
	assert.Equal(t, float32(0), a.RollingOpacity)
	assert.Equal(t, float32(1), a.SolidOpacity)
	assert.False(t, a.SolidBlended)
	assert.True(t, a.Settled())

	parts := d.SolidParts()
	require.Len(t, parts, 17)
	assert.True(t, parts[16].Filler)
	assert.Equal(t, FillerSize, parts[16].Shape.Size)
	assert.Equal(t, FillerPosition, parts[16].Transform.Position)

	// Plates widen to full cells but stay thin; the cube keeps its final pose.
	size := parts[0].Shape.Size
	assert.Equal(t, float32(1), size.X)
	assert.InDelta(t, 0.01, size.Y, 1e-4)
	assert.Equal(t, float32(1), size.Z)
	assert.Equal(t, math.V3(1, 1, 1), parts[15].Shape.Size)
	assert.Equal(t, d.Cube(), parts[15].Transform)
}

func TestSolidifyMidFadeBothBlended(t *testing.T) {
	d := New(Options{})
	d.Trigger()
	ok := runUntil(d, func() bool { return d.Phase() == PhaseSolidify }, 10*time.Second)
	require.True(t, ok)

	assert.Equal(t, Idle, d.State(), "run flag clears before the cross-fade")
	d.Update(200 * time.Millisecond)

	a := d.Appearance()
	assert.True(t, a.RollingBlended)
	assert.True(t, a.SolidBlended)
	assert.Greater(t, a.RollingOpacity, float32(0))
	assert.Less(t, a.SolidOpacity, float32(1))
	assert.InDelta(t, 1, a.RollingOpacity+a.SolidOpacity, 1e-4)
}

func TestTriggerWhileRunningIsIgnored(t *testing.T) {
	d := New(Options{})
	require.True(t, d.Trigger())
	runUntil(d, func() bool { return len(d.Records()) == 3 }, 2*time.Second)

	pending := d.Pending()
	cube := d.Cube()
	prints := d.Footprints()
	frame := d.Frame()

	assert.False(t, d.Trigger())
	assert.Equal(t, Running, d.State())
	assert.Equal(t, 1, d.Runs())
	assert.Equal(t, pending, d.Pending(), "no new tweens")
	assert.Equal(t, cube, d.Cube())
	assert.Equal(t, prints, d.Footprints())
	assert.Equal(t, frame, d.Frame())
}

func TestRunsAreDeterministic(t *testing.T) {
	d := New(Options{})
	d.Trigger()
	runToEnd(t, d)
	first := d.Records()
	firstPrints := d.Footprints()

	require.True(t, d.Trigger())
	runToEnd(t, d)

	assert.Equal(t, first, d.Records())
	assert.Equal(t, firstPrints, d.Footprints())
	assert.Equal(t, 2, d.Runs())
}

func TestTriggerResetsPreviousRun(t *testing.T) {
	d := New(Options{})
	d.Trigger()
	runToEnd(t, d)
	require.NotEmpty(t, d.Footprints())
	require.NotEmpty(t, d.SolidParts())

	require.True(t, d.Trigger())
	assert.Empty(t, d.Footprints())
	assert.Empty(t, d.SolidParts())
	assert.Equal(t, SpawnTransform(), d.Cube())
	assert.Equal(t, RestAppearance(), d.Appearance())
	assert.Equal(t, PhaseIntro, d.Phase())
}

func TestTriggerDuringCrossFadeCancelsIt(t *testing.T) {
	d := New(Options{})
	d.Trigger()
	ok := runUntil(d, func() bool { return d.Phase() == PhaseSolidify }, 10*time.Second)
	require.True(t, ok)
	d.Update(100 * time.Millisecond)

	require.True(t, d.Trigger(), "the run flag is already clear while solidifying")
	ok = runUntil(d, func() bool { return d.Phase() == PhaseRolling }, time.Second)
	require.True(t, ok)

	// The old fade never finishes on top of the new run.
	assert.Equal(t, RestAppearance(), d.Appearance())
	assert.Empty(t, d.SolidParts())
}

func TestCue(t *testing.T) {
	t.Run("not loaded", func(t *testing.T) {
		cue := &fakeCue{}
		d := New(Options{Cue: cue})
		require.True(t, d.Trigger())
		assert.Equal(t, []string{"resume"}, cue.calls)
	})

	t.Run("restart", func(t *testing.T) {
		cue := &fakeCue{ready: true, playing: true}
		d := New(Options{Cue: cue})
		d.Trigger()
		assert.Equal(t, []string{"resume", "stop", "play"}, cue.calls)
	})

	t.Run("ignored trigger leaves cue alone", func(t *testing.T) {
		cue := &fakeCue{ready: true}
		d := New(Options{Cue: cue})
		d.Trigger()
		d.Trigger()
		assert.Equal(t, []string{"resume", "play"}, cue.calls)
	})
}

func TestShakeReturnsToRest(t *testing.T) {
	d := New(Options{})
	d.Trigger()

	d.Update(d.Timing().ShakeDelay)
	d.Update(50 * time.Millisecond)
	assert.NotZero(t, d.Rig().Rotation.Z)

	runUntil(d, func() bool { return d.Phase() == PhaseRolling }, time.Second)
	d.Update(d.Timing().Impact)
	assert.InDelta(t, 0, d.Rig().Rotation.Z, 1e-6)
}

func TestToggleGrid(t *testing.T) {
	d := New(Options{})
	d.ToggleGrid()
	assert.False(t, d.GridVisible())
	assert.False(t, d.Frame().Grid.Visible)
	d.ToggleGrid()
	assert.True(t, d.Frame().Grid.Visible)
	assert.Equal(t, Idle, d.State())
}

func TestFrameItems(t *testing.T) {
	d := New(Options{})
	f := d.Frame()
	require.Len(t, f.Items, 1)
	assert.Equal(t, "cube", f.Items[0].Name)
	assert.Equal(t, scene.Phong, f.Items[0].Material.Shading)
	assert.Len(t, f.Opaque(), 1)
	assert.Empty(t, f.Blended())
	assert.Len(t, f.Lights, 2)

	d.Trigger()
	runToEnd(t, d)

	f = d.Frame()
	// 15 plates, the cube and 17 solid parts.
	require.Len(t, f.Items, 33)
	assert.Equal(t, scene.Unlit, f.Items[0].Material.Shading)
	assert.Len(t, f.Opaque(), 17, "only the solid group remains visible")

	solid := f.Items[32]
	assert.Equal(t, "solid", solid.Name)
	assert.False(t, solid.CastShadow, "filler only receives shadows")
	p := solid.Model.TransformPoint(math.Vec3{})
	assert.InDelta(t, FillerPosition.X*SolidGroupScale, p.X, 1e-5)
	assert.InDelta(t, FillerPosition.Z*SolidGroupScale, p.Z, 1e-5)
}

func TestTimingTotal(t *testing.T) {
	total := DefaultTiming().Total(len(ReferencePath))
	assert.Equal(t, 4520*time.Millisecond, total)
}
