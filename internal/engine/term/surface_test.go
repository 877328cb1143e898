package term

import (
	"image"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/rollcube/internal/engine/camera"
	"github.com/Faultbox/rollcube/internal/engine/input"
	"github.com/Faultbox/rollcube/internal/engine/scene"
)

type fakeSource struct {
	elapsed time.Duration
	frame   scene.Frame
}

func (f *fakeSource) Update(dt time.Duration) { f.elapsed += dt }
func (f *fakeSource) Frame() scene.Frame      { return f.frame }

func newTestSurface(t *testing.T) (*Surface, tcell.SimulationScreen, *[]input.Command) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(40, 21)

	src := &fakeSource{frame: cubeFrame()}
	s := New(screen, src, camera.NewOrthoCamera(40, 40), nil)

	var got []input.Command
	s.OnCommand = func(c input.Command) { got = append(got, c) }
	return s, screen, &got
}

func actions(cmds []input.Command) []input.Action {
	out := make([]input.Action, len(cmds))
	for i, c := range cmds {
		out[i] = c.Action
	}
	return out
}

func TestSurfaceKeys(t *testing.T) {
	s, _, got := newTestSurface(t)

	assert.False(t, s.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)))
	assert.False(t, s.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone)))
	assert.False(t, s.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))
	assert.False(t, s.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)))
	assert.Equal(t, []input.Action{input.ActionTrigger, input.ActionToggleGrid, input.ActionTrigger, input.ActionResetView}, actions(*got))

	assert.True(t, s.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.True(t, s.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestSurfaceMouseClick(t *testing.T) {
	s, _, got := newTestSurface(t)

	s.HandleEvent(tcell.NewEventMouse(5, 5, tcell.ButtonPrimary, tcell.ModNone))
	s.HandleEvent(tcell.NewEventMouse(5, 5, tcell.ButtonNone, tcell.ModNone))
	s.HandleEvent(tcell.NewEventMouse(7, 7, tcell.ButtonSecondary, tcell.ModNone))
	s.HandleEvent(tcell.NewEventMouse(7, 7, tcell.ButtonNone, tcell.ModNone))

	assert.Equal(t, []input.Action{input.ActionTrigger, input.ActionToggleGrid}, actions(*got))
}

func TestSurfaceMouseDrag(t *testing.T) {
	s, _, got := newTestSurface(t)

	s.HandleEvent(tcell.NewEventMouse(5, 5, tcell.ButtonPrimary, tcell.ModNone))
	s.HandleEvent(tcell.NewEventMouse(10, 5, tcell.ButtonPrimary, tcell.ModNone))
	s.HandleEvent(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone))

	require.Len(t, *got, 1, "a drag must not also trigger")
	cmd := (*got)[0]
	assert.Equal(t, input.ActionOrbit, cmd.Action)
	assert.Equal(t, float32(5*DragScale), cmd.DX)
	assert.Equal(t, float32(0), cmd.DY)
}

func TestSurfaceWheel(t *testing.T) {
	s, _, got := newTestSurface(t)

	s.HandleEvent(tcell.NewEventMouse(5, 5, tcell.WheelUp, tcell.ModNone))
	s.HandleEvent(tcell.NewEventMouse(5, 5, tcell.WheelDown, tcell.ModNone))

	require.Len(t, *got, 2)
	assert.Equal(t, float32(1), (*got)[0].Zoom)
	assert.Equal(t, float32(-1), (*got)[1].Zoom)
}

func TestSurfaceDrawWithStatus(t *testing.T) {
	s, screen, _ := newTestSurface(t)
	s.Status = func() string { return "idle" }

	s.Draw()

	assert.Equal(t, 20, s.canvas.Height, "status line is taken from the canvas")
	for i, want := range "idle" {
		r, _, _, _ := screen.GetContent(i, 20)
		assert.Equal(t, want, r)
	}

	_, _, style, _ := screen.GetContent(20, 10)
	_, bg, _ := style.Decompose()
	assert.NotEqual(t, tcell.NewRGBColor(0, 0, 0), bg, "the cube is drawn in the middle")
}

func TestSurfaceSnapshot(t *testing.T) {
	s, _, got := newTestSurface(t)

	// Without a handler the key is ignored.
	assert.False(t, s.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)))

	var shot image.Image
	s.OnSnapshot = func(img image.Image) { shot = img }
	s.Draw()
	assert.False(t, s.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)))

	require.NotNil(t, shot)
	assert.Equal(t, image.Rect(0, 0, 40, 21), shot.Bounds())
	assert.Empty(t, *got, "a snapshot is not a command")
}
