// Package input translates SDL2 events into camera-friendly callbacks.
//
// All per-window input state lives in a State value passed by the caller;
// the package keeps no globals.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventScroll
)

// Event is an SDL event reduced to what the demos consume.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Repeat bool
	Width  int
	Height int
	MouseX float32
	MouseY float32
	RelX   float32
	RelY   float32
	Scroll float32
}

// Handler receives dispatched input. Mouse deltas are in pixels with y
// pointing up; scroll is in wheel notches, positive away from the user.
type Handler interface {
	OnMouseMove(dx, dy float32)
	OnScroll(dy float32)
	OnKey(key sdl.Scancode, down bool)
	OnResize(width, height int)
}

// State is the input state of one window.
type State struct {
	// Relative selects relative mouse motion, used while the mouse is
	// captured. Otherwise deltas come from consecutive cursor positions.
	Relative bool
	Quit     bool

	lastX, lastY float32
	firstMouse   bool
	down         map[sdl.Scancode]bool
}

// NewState returns an empty input state.
func NewState() *State {
	return &State{
		firstMouse: true,
		down:       make(map[sdl.Scancode]bool),
	}
}

// Held reports whether key is currently pressed.
func (s *State) Held(key sdl.Scancode) bool {
	return s.down[key]
}

// ResetMouse makes the next cursor position a new reference point instead
// of producing a jump.
func (s *State) ResetMouse() {
	s.firstMouse = true
}

// Dispatch updates s with e and forwards it to h, which may be nil.
// Key auto-repeat is swallowed.
func (s *State) Dispatch(e Event, h Handler) {
	switch e.Type {
	case EventQuit:
		s.Quit = true

	case EventResize:
		if h != nil {
			h.OnResize(e.Width, e.Height)
		}

	case EventKeyDown:
		if e.Repeat {
			return
		}
		s.down[e.Key] = true
		if h != nil {
			h.OnKey(e.Key, true)
		}

	case EventKeyUp:
		delete(s.down, e.Key)
		if h != nil {
			h.OnKey(e.Key, false)
		}

	case EventMouseMove:
		var dx, dy float32
		if s.Relative {
			dx, dy = e.RelX, -e.RelY
		} else {
			if s.firstMouse {
				s.lastX, s.lastY = e.MouseX, e.MouseY
				s.firstMouse = false
			}
			// Screen y grows downwards.
			dx, dy = e.MouseX-s.lastX, s.lastY-e.MouseY
			s.lastX, s.lastY = e.MouseX, e.MouseY
		}
		if h != nil && (dx != 0 || dy != 0) {
			h.OnMouseMove(dx, dy)
		}

	case EventScroll:
		if h != nil && e.Scroll != 0 {
			h.OnScroll(e.Scroll)
		}
	}
}

// Translate converts an SDL event. It reports false for events the demos
// ignore.
func Translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{Type: EventResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		t := EventKeyUp
		if e.Type == sdl.KEYDOWN {
			t = EventKeyDown
		}
		return Event{Type: t, Key: e.Keysym.Scancode, Repeat: e.Repeat != 0}, true

	case *sdl.MouseMotionEvent:
		return Event{
			Type:   EventMouseMove,
			MouseX: float32(e.X),
			MouseY: float32(e.Y),
			RelX:   float32(e.XRel),
			RelY:   float32(e.YRel),
		}, true

	case *sdl.MouseWheelEvent:
		dy := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			dy = -dy
		}
		return Event{Type: EventScroll, Scroll: dy}, true
	}
	return Event{}, false
}

// Pump drains the SDL event queue into s and h.
func Pump(s *State, h Handler) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := Translate(event); ok {
			s.Dispatch(e, h)
		}
	}
}
