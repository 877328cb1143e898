package choreo

import (
	gomath "math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/rollcube/internal/engine/tween"
	"github.com/Faultbox/rollcube/pkg/math"
)

func TestAttachPreservesWorldPose(t *testing.T) {
	cube := Transform{Position: math.V3(-0.5, 0.5, -2.5), Rotation: math.V3(0, math.HalfPi, 0), Scale: math.V3(1, 1, 1)}
	f := Attach(math.V3(-1, 0, -2.5), AxisZ, cube)

	w := f.World()
	assert.InDelta(t, cube.Position.X, w.Position.X, 1e-6)
	assert.InDelta(t, cube.Position.Y, w.Position.Y, 1e-6)
	assert.InDelta(t, cube.Position.Z, w.Position.Z, 1e-6)

	want := math.EulerXYZ(cube.Rotation)
	have := math.EulerXYZ(w.Rotation)
	for i := range want {
		assert.InDelta(t, want[i], have[i], 1e-6)
	}
}

func TestRollStepOne(t *testing.T) {
	tweens := tween.NewManager()
	cube := Transform{Position: math.V3(-0.5, 0.5, -2.5), Scale: math.V3(1, 1, 1)}
	r := NewRoller(tweens, &cube, 170*time.Millisecond, 0)

	pivot := cube.Position.Add(math.V3(-0.5, -0.5, 0))
	done := 0
	require.NoError(t, r.Roll(pivot, AxisZ, math.HalfPi, func() { done++ }))
	assert.True(t, r.Rolling())
	assert.ErrorIs(t, r.Roll(pivot, AxisZ, math.HalfPi, nil), ErrRollInFlight)

	tweens.Update(85 * time.Millisecond)
	// Mid-roll the cube is off-grid but still rigidly attached to the edge.
	assert.False(t, OnGrid(cube, 1e-3))
	assert.InDelta(t, gomath.Sqrt(0.5), cube.Position.Distance(pivot), 1e-5)
	assert.Equal(t, 0, done)

	tweens.Update(85 * time.Millisecond)
	require.Equal(t, 1, done)
	assert.False(t, r.Rolling())
	assert.Nil(t, r.Frame())
	assert.Equal(t, math.V3(-1.5, 0.5, -2.5), cube.Position)
	assert.Equal(t, math.V3(0, 0, math.HalfPi), cube.Rotation)
}

func TestRollPause(t *testing.T) {
	tweens := tween.NewManager()
	cube := Transform{Position: math.V3(0.5, 0.5, 0.5), Scale: math.V3(1, 1, 1)}
	r := NewRoller(tweens, &cube, 100*time.Millisecond, 50*time.Millisecond)

	done := false
	require.NoError(t, r.Roll(math.V3(0.5, 0, 1), AxisX, math.HalfPi, func() { done = true }))

	tweens.Update(100 * time.Millisecond)
	assert.False(t, done, "continuation waits for the pause")
	assert.False(t, r.Rolling(), "the next roll may be issued during the pause")

	tweens.Update(50 * time.Millisecond)
	assert.True(t, done)
	assert.Equal(t, math.V3(0.5, 0.5, 1.5), cube.Position)
}

func TestRollHalfTurn(t *testing.T) {
	tweens := tween.NewManager()
	cube := Transform{Position: math.V3(-2.5, 0.5, -0.5), Scale: math.V3(1, 1, 1)}
	r := NewRoller(tweens, &cube, 170*time.Millisecond, 0)

	require.NoError(t, r.Roll(math.V3(-2.5, 0, 0), AxisX, float32(gomath.Pi), nil))
	tweens.Update(200 * time.Millisecond)

	assert.Equal(t, math.V3(-2.5, -0.5, 0.5), cube.Position)
	assert.True(t, OnGrid(cube, 1e-6))
}

// walk applies every step of path instantly and returns the pose after each roll.
func walk(start Transform, path []Step) []Transform {
	cube := start
	out := make([]Transform, 0, len(path))
	for _, s := range path {
		f := Attach(cube.Position.Add(s.PivotOffset), s.Axis, cube)
		f.Angle = s.Angle
		cube = SnapTransform(f.World())
		out = append(out, cube)
	}
	return out
}

func TestReferencePathShape(t *testing.T) {
	require.Len(t, ReferencePath, 16)
	assert.Equal(t, 15, FootprintSteps(ReferencePath))
	assert.Equal(t, FaceNone, ReferencePath[0].Face)

	for i, s := range ReferencePath {
		a := gomath.Abs(float64(s.Angle))
		assert.True(t, nearly(a, gomath.Pi/2) || nearly(a, gomath.Pi), "step %d angle %f", i+1, s.Angle)
	}
}

func TestReferencePathFootprintsFollowLandings(t *testing.T) {
	start := SpawnTransform()
	start.Position.Y = IntroHeight
	poses := walk(start, ReferencePath)

	for i, p := range poses {
		assert.True(t, OnGrid(p, 1e-5), "step %d off grid: %+v", i+1, p)
		if i+1 < len(ReferencePath) {
			// Each footprint marks the cell the previous roll landed on.
			assert.Equal(t, p.Position, ReferencePath[i+1].Cell, "step %d", i+2)
		}
	}

	assert.Equal(t, math.V3(-1.5, 0.5, -2.5), poses[0].Position)
	assert.Equal(t, math.V3(-2.5, -0.5, 0.5), poses[4].Position)
	assert.Equal(t, math.V3(0.5, -2.5, -0.5), poses[9].Position)
	assert.Equal(t, math.V3(0.5, -0.5, -0.5), poses[15].Position)
}

func nearly(a, b float64) bool {
	return gomath.Abs(a-b) < 1e-6
}
