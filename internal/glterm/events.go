package glterm

import "github.com/go-gl/glfw/v3.3/glfw"

// EventKind tags the variant stored in an Event.
type EventKind int

const (
	EventKey EventKind = iota
	EventChar
	EventResize
	EventExpose
	EventClose
)

// Event is the InputSource port's single event type: KeyPress, Char,
// Resize, Expose, Close. No button/mouse events are produced — this core
// does no mouse reporting.
type Event struct {
	Kind EventKind

	Key  glfw.Key
	Mods glfw.ModifierKey

	Char rune

	Width, Height int // pixel dimensions, for EventResize
}

// InputSource wires GLFW callbacks on win to a buffered channel the event
// loop drains once per readiness wait. GLFW callbacks fire only during
// PollEvents/WaitEventsTimeout on the locked main thread, so this never
// needs its own synchronization.
type InputSource struct {
	events chan Event
}

// NewInputSource registers GLFW callbacks on win and returns the channel
// they feed.
func NewInputSource(win *Window) *InputSource {
	src := &InputSource{events: make(chan Event, 256)}
	g := win.GLFW()

	g.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		src.push(Event{Kind: EventKey, Key: key, Mods: mods})
	})

	g.SetCharCallback(func(_ *glfw.Window, char rune) {
		src.push(Event{Kind: EventChar, Char: char})
	})

	g.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		src.push(Event{Kind: EventResize, Width: width, Height: height})
	})

	g.SetRefreshCallback(func(_ *glfw.Window) {
		src.push(Event{Kind: EventExpose})
	})

	g.SetCloseCallback(func(_ *glfw.Window) {
		src.push(Event{Kind: EventClose})
	})

	return src
}

// push enqueues an event, dropping it if the channel is saturated rather
// than blocking the GLFW callback thread.
func (src *InputSource) push(ev Event) {
	select {
	case src.events <- ev:
	default:
	}
}

// Events returns the channel the event loop drains alongside the channel
// fed by its PTY reader goroutine.
func (src *InputSource) Events() <-chan Event { return src.events }
