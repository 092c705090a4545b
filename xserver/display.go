// Package xserver is the thin adapter between the window-manager core and
// the X11 protocol. spec.md §1 calls this out explicitly as an external
// collaborator: "The core consumes an abstract Display capability." Every
// other package in this module talks to Display, never to xgb/xgbutil
// directly, which is what keeps store and desktop testable without a
// running X server.
package xserver

import "github.com/gowm/stackwm/geometry"

// Window is an opaque handle to an X window, the wire-level xproto.Window
// value. It is never dereferenced by the core.
type Window uint32

// None is the null window handle.
const None Window = 0

// EventType enumerates the ten event kinds spec.md §4.6 dispatches on.
type EventType int

const (
	EventUnknown EventType = iota
	EventKeyPress
	EventButtonPress
	EventMotionNotify
	EventMapRequest
	EventConfigureRequest
	EventDestroyNotify
	EventUnmapNotify
	EventEnterNotify
	EventPropertyNotify
	EventClientMessage
)

// Event is the union of the fields any one dispatcher handler needs. Only
// the fields relevant to Type are populated.
type Event struct {
	Type EventType

	Window     Window // target window of the event
	EventOwner Window // the "event" field of UnmapNotify (root vs non-root)

	Detail int    // keycode (KeyPress) or button (ButtonPress) or detail (EnterNotify)
	State  uint16 // modifier mask at the time of the event

	RootX, RootY int // pointer root coordinates (ButtonPress/MotionNotify)

	ValueMask                               uint16
	X, Y, Width, Height, BorderWidth         int
	Sibling                                  Window
	StackMode                                int

	MessageType string    // ClientMessage type atom name
	Data        [5]uint32 // ClientMessage data32

	Atom string // PropertyNotify atom name
}

// EnterNotifyInferior mirrors XCB_NOTIFY_DETAIL_INFERIOR: the dispatcher
// ignores EnterNotify events with this detail (spec.md §4.6).
const EnterNotifyInferior = 2

// WindowClass is the WM_CLASS pair used for AppRule matching.
type WindowClass struct {
	Class    string
	Instance string
}

// Display is every X11 capability the core needs. The real implementation
// (XgbutilDisplay) wraps github.com/jezek/xgbutil; tests use a fake.
type Display interface {
	// Root & monitors
	RootWindow() Window
	Monitors() []geometry.Geometry // Xinerama/RandR rectangles, screen order

	// Event pump (spec.md §5 suspension points a, b)
	NextEvent() (Event, error)
	Flush()
	HasError() bool

	// Geometry & movement
	Geometry(w Window) (geometry.Geometry, error)
	MoveResize(w Window, x, y, width, height int) error
	Move(w Window, x, y int) error
	Resize(w Window, width, height int) error

	// Stacking, borders, focus
	SetBorderWidth(w Window, width int) error
	SetBorderColor(w Window, focused bool) error
	Raise(w Window) error
	SetInputFocus(w Window) error
	SetActiveWindow(w Window) error
	ClearActiveWindow() error

	// Mapping & attributes
	MapWindow(w Window) error
	UnmapWindow(w Window) error
	OverrideRedirect(w Window) (bool, error)
	ListenPropertyChange(w Window, enterWindow bool) error

	// ICCCM/EWMH reads used during MapRequest (spec.md §4.7) and property
	// updates (spec.md §4.6 propertynotify)
	WindowClassOf(w Window) (WindowClass, error)
	TransientFor(w Window) (Window, bool)
	FullscreenRequested(w Window) bool
	IsUrgent(w Window) bool
	SupportsDelete(w Window) bool

	// Fullscreen EWMH state publication (spec.md §4.8)
	SetFullscreenState(w Window, on bool) error

	// Client teardown (spec.md action table "killclient")
	SendDeleteMessage(w Window) error
	KillClient(w Window) error

	// Button/key grabs (spec.md §4.2 step 4 "ensure button-1 is grabbed",
	// §9 numlock/CLEANMASK)
	GrabButton(w Window, mod string, button uint8) error
	GrabKey(mod string, keysym string) error
	UngrabAllKeys() error
	CleanMask(state uint16) uint16
	ModMask(mod string) uint16
	KeysymName(keycode int) string
	FullscreenAtom() uint32

	// Interactive move/resize (spec.md §4.5)
	GrabPointer() error
	UngrabPointer() error
	QueryPointer() (geometry.Point, error)

	// Process spawning (spec.md §4.4 "spawn")
	Spawn(cmd string) error

	Close() error
}
