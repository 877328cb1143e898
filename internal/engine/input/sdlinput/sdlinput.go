// Package sdlinput feeds SDL2 events into the input package.
package sdlinput

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/rollcube/internal/engine/input"
)

// Input collects the events of one frame.
type Input struct {
	events []input.Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]input.Event, 0, 16),
	}
}

// Update drains the SDL queue. It returns true once the window is asked to
// close; events after the quit stay queued.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		ev, ok := translate(event)
		if !ok {
			continue
		}
		i.events = append(i.events, ev)
		if ev.Type == input.EventQuit {
			return true
		}
	}
	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []input.Event {
	return i.events
}

// translate maps one SDL event. Key repeats and unrelated window events are
// dropped.
func translate(event sdl.Event) (input.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return input.Event{Type: input.EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event != sdl.WINDOWEVENT_RESIZED && e.Event != sdl.WINDOWEVENT_SIZE_CHANGED {
			return input.Event{}, false
		}
		return input.Event{Type: input.EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return input.Event{}, false
		}
		t := input.EventKeyUp
		if e.Type == sdl.KEYDOWN {
			t = input.EventKeyDown
		}
		return input.Event{Type: t, Key: uint32(e.Keysym.Scancode)}, true

	case *sdl.MouseMotionEvent:
		return input.Event{Type: input.EventMouseMove, MouseX: int(e.X), MouseY: int(e.Y)}, true

	case *sdl.MouseButtonEvent:
		t := input.EventMouseUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			t = input.EventMouseDown
		}
		return input.Event{Type: t, MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button}, true

	case *sdl.MouseWheelEvent:
		dy := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			dy = -dy
		}
		return input.Event{Type: input.EventMouseWheel, WheelY: dy}, true
	}
	return input.Event{}, false
}
