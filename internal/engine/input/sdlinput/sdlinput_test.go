package sdlinput

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/rollcube/internal/engine/input"
)

func TestButtonsMatchSDL(t *testing.T) {
	if input.ButtonLeft != sdl.BUTTON_LEFT || input.ButtonMiddle != sdl.BUTTON_MIDDLE || input.ButtonRight != sdl.BUTTON_RIGHT {
		t.Errorf("button numbers drifted from SDL: %d %d %d", input.ButtonLeft, input.ButtonMiddle, input.ButtonRight)
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name  string
		event sdl.Event
		want  input.Event
		ok    bool
	}{
		{"quit", &sdl.QuitEvent{Type: sdl.QUIT}, input.Event{Type: input.EventQuit}, true},
		{"resize", &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 800, Data2: 600},
			input.Event{Type: input.EventWindowResize, Width: 800, Height: 600}, true},
		{"focus ignored", &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_FOCUS_GAINED}, input.Event{}, false},
		{"key down", &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_SPACE}},
			input.Event{Type: input.EventKeyDown, Key: uint32(sdl.SCANCODE_SPACE)}, true},
		{"key repeat ignored", &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_SPACE}},
			input.Event{}, false},
		{"key up", &sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_G}},
			input.Event{Type: input.EventKeyUp, Key: uint32(sdl.SCANCODE_G)}, true},
		{"motion", &sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 10, Y: 20},
			input.Event{Type: input.EventMouseMove, MouseX: 10, MouseY: 20}, true},
		{"press", &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, X: 3, Y: 4, Button: sdl.BUTTON_LEFT},
			input.Event{Type: input.EventMouseDown, MouseX: 3, MouseY: 4, Button: input.ButtonLeft}, true},
		{"release", &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, X: 3, Y: 4, Button: sdl.BUTTON_RIGHT},
			input.Event{Type: input.EventMouseUp, MouseX: 3, MouseY: 4, Button: input.ButtonRight}, true},
		{"wheel", &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 2},
			input.Event{Type: input.EventMouseWheel, WheelY: 2}, true},
		{"flipped wheel", &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 2, Direction: sdl.MOUSEWHEEL_FLIPPED},
			input.Event{Type: input.EventMouseWheel, WheelY: -2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translate(tt.event)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
