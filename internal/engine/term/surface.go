package term

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/rollcube/internal/engine/camera"
	"github.com/Faultbox/rollcube/internal/engine/input"
	"github.com/Faultbox/rollcube/internal/engine/scene"
)

// FrameInterval is the redraw period, about 60 FPS.
const FrameInterval = 16 * time.Millisecond

// DragScale converts a drag of one cell into orbit pixels.
const DragScale = 8

// Source is what the surface draws and advances every tick.
type Source interface {
	Update(dt time.Duration)
	Frame() scene.Frame
}

// Surface runs a scene in a terminal. Mouse input is turned into commands
// through an input.Gesture and handed to OnCommand.
type Surface struct {
	screen  tcell.Screen
	source  Source
	camera  *camera.OrthoCamera
	gesture *input.Gesture
	raster  *Rasterizer
	canvas  *Canvas
	log     *zap.Logger

	// OnCommand receives every gesture result that is not ActionNone.
	OnCommand func(input.Command)
	// Status returns the text of the bottom line. Nil hides it.
	Status func() string
	// OnSnapshot receives the last drawn canvas when 'p' is pressed.
	OnSnapshot func(image.Image)

	buttons tcell.ButtonMask
}

// New wraps an initialized screen.
func New(screen tcell.Screen, source Source, cam *camera.OrthoCamera, log *zap.Logger) *Surface {
	if log == nil {
		log = zap.NewNop()
	}
	g := input.NewGesture()
	g.Threshold = 1

	s := &Surface{
		screen:  screen,
		source:  source,
		camera:  cam,
		gesture: g,
		raster:  NewRasterizer(),
		canvas:  NewCanvas(0, 0),
		log:     log,
	}
	return s
}

// Open creates and initializes the terminal screen with mouse reporting.
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	return screen, nil
}

// Run polls events and redraws until ctx is done or the user quits.
func (s *Surface) Run(ctx context.Context) error {
	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				// Screen finalized
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			if s.HandleEvent(ev) {
				return nil
			}

		case now := <-ticker.C:
			s.source.Update(now.Sub(last))
			last = now
			s.Draw()
		}
	}
}

// HandleEvent processes one terminal event. It returns true to quit.
func (s *Surface) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		switch e.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyEnter:
			s.emit(input.Command{Action: input.ActionTrigger})
		case tcell.KeyRune:
			switch e.Rune() {
			case 'q':
				return true
			case ' ':
				s.emit(input.Command{Action: input.ActionTrigger})
			case 'g':
				s.emit(input.Command{Action: input.ActionToggleGrid})
			case 'r':
				s.emit(input.Command{Action: input.ActionResetView})
			case 'p':
				if s.OnSnapshot != nil {
					s.OnSnapshot(s.canvas.Image())
				}
			}
		}

	case *tcell.EventResize:
		w, h := e.Size()
		s.log.Debug("terminal resized", zap.Int("cols", w), zap.Int("rows", h))
		s.screen.Sync()

	case *tcell.EventMouse:
		for _, in := range s.translate(e) {
			cmd := s.gesture.Handle(in)
			if cmd.Action == input.ActionOrbit {
				cmd.DX *= DragScale
				cmd.DY *= DragScale * CellAspect
			}
			s.emit(cmd)
		}
	}
	return false
}

func (s *Surface) emit(cmd input.Command) {
	if cmd.Action == input.ActionNone || s.OnCommand == nil {
		return
	}
	s.OnCommand(cmd)
}

// translate turns a tcell mouse report into press, release, move and wheel
// events by diffing the held buttons against the previous report.
func (s *Surface) translate(e *tcell.EventMouse) []input.Event {
	x, y := e.Position()
	held := e.Buttons()
	var out []input.Event

	if held&tcell.WheelUp != 0 {
		out = append(out, input.Event{Type: input.EventMouseWheel, WheelY: 1})
	}
	if held&tcell.WheelDown != 0 {
		out = append(out, input.Event{Type: input.EventMouseWheel, WheelY: -1})
	}

	buttons := held & (tcell.ButtonPrimary | tcell.ButtonSecondary)
	out = append(out, input.Event{Type: input.EventMouseMove, MouseX: x, MouseY: y})
	for _, b := range []struct {
		mask   tcell.ButtonMask
		button uint8
	}{
		{tcell.ButtonPrimary, input.ButtonLeft},
		{tcell.ButtonSecondary, input.ButtonRight},
	} {
		was, is := s.buttons&b.mask != 0, buttons&b.mask != 0
		switch {
		case is && !was:
			out = append(out, input.Event{Type: input.EventMouseDown, MouseX: x, MouseY: y, Button: b.button})
		case was && !is:
			out = append(out, input.Event{Type: input.EventMouseUp, MouseX: x, MouseY: y, Button: b.button})
		}
	}
	s.buttons = buttons
	return out
}

func (s *Surface) resize() {
	w, h := s.screen.Size()
	if s.Status != nil {
		h--
	}
	s.canvas.Resize(w, h)
	s.camera.Resize(w, h*CellAspect)
}

// Draw renders the current frame and shows it.
func (s *Surface) Draw() {
	s.resize()
	f := s.source.Frame()
	s.raster.Draw(s.canvas, f, s.camera.ViewProjection(), s.camera.Position())

	for y := 0; y < s.canvas.Height; y++ {
		for x := 0; x < s.canvas.Width; x++ {
			r, g, b := s.canvas.At(x, y).Bytes()
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
			s.screen.SetContent(x, y, ' ', nil, style)
		}
	}

	if s.Status != nil {
		s.drawStatus(s.Status())
	}
	s.screen.Show()
}

func (s *Surface) drawStatus(text string) {
	w, h := s.screen.Size()
	y := h - 1
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	runes := []rune(text)
	for x := 0; x < w; x++ {
		ch := ' '
		if x < len(runes) {
			ch = runes[x]
		}
		s.screen.SetContent(x, y, ch, nil, style)
	}
}
