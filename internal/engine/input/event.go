// Package input holds surface-neutral input events and the pointer gesture
// that turns them into app commands. It links no windowing library; see
// sdlinput for the SDL2 source.
package input

// EventType identifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Mouse buttons, numbered as SDL numbers them.
const (
	ButtonLeft   uint8 = 1
	ButtonMiddle uint8 = 2
	ButtonRight  uint8 = 3
)

// Event is one input event. Only the fields of its Type are set.
type Event struct {
	Type EventType
	// Key is the source's physical key code (an SDL scancode for sdlinput).
	Key    uint32
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
	WheelY float32
}
