package input

// Action is what a pointer gesture asks the app to do.
type Action int

const (
	ActionNone Action = iota
	ActionTrigger
	ActionToggleGrid
	ActionOrbit
	ActionZoom
	ActionResetView
)

// DefaultDragThreshold is how far, in pixels, the pointer may travel with
// the left button held before the press counts as a drag instead of a click.
const DefaultDragThreshold = 4

// Command is the result of one event fed through a Gesture.
type Command struct {
	Action Action
	DX, DY float32 // Orbit delta in pixels
	Zoom   float32 // Wheel steps, positive zooms in
}

// Gesture turns raw mouse events into clicks, drags and zooms. A left
// press released without dragging triggers; dragging orbits; a right
// press toggles the grid; a middle press resets the view.
type Gesture struct {
	Threshold int

	down         bool
	dragging     bool
	startX       int
	startY       int
	lastX, lastY int
}

// NewGesture creates a gesture tracker with the default threshold.
func NewGesture() *Gesture {
	return &Gesture{Threshold: DefaultDragThreshold}
}

// Handle consumes one event.
func (g *Gesture) Handle(e Event) Command {
	switch e.Type {
	case EventMouseDown:
		switch e.Button {
		case ButtonLeft:
			g.down = true
			g.dragging = false
			g.startX, g.startY = e.MouseX, e.MouseY
			g.lastX, g.lastY = e.MouseX, e.MouseY
		case ButtonRight:
			return Command{Action: ActionToggleGrid}
		case ButtonMiddle:
			return Command{Action: ActionResetView}
		}

	case EventMouseMove:
		if !g.down {
			return Command{}
		}
		if !g.dragging {
			dx, dy := e.MouseX-g.startX, e.MouseY-g.startY
			if dx*dx+dy*dy <= g.Threshold*g.Threshold {
				return Command{}
			}
			g.dragging = true
		}
		dx, dy := e.MouseX-g.lastX, e.MouseY-g.lastY
		if dx == 0 && dy == 0 {
			return Command{}
		}
		g.lastX, g.lastY = e.MouseX, e.MouseY
		return Command{Action: ActionOrbit, DX: float32(dx), DY: float32(dy)}

	case EventMouseUp:
		if e.Button != ButtonLeft || !g.down {
			return Command{}
		}
		wasDrag := g.dragging
		g.down, g.dragging = false, false
		if !wasDrag {
			return Command{Action: ActionTrigger}
		}

	case EventMouseWheel:
		if e.WheelY != 0 {
			return Command{Action: ActionZoom, Zoom: e.WheelY}
		}
	}
	return Command{}
}

// Dragging reports whether the left button is held past the threshold.
func (g *Gesture) Dragging() bool {
	return g.dragging
}
