package xserver

import "github.com/gowm/stackwm/geometry"

// Fake is an in-memory Display for tests: no X connection, just a record of
// window geometries and a scripted event queue. It lets store/desktop logic
// run and be asserted on without a running X server.
type Fake struct {
	Root    Window
	Heads   []geometry.Geometry
	Geoms   map[Window]geometry.Geometry
	Classes map[Window]WindowClass
	Mapped  map[Window]bool
	Borders map[Window]int

	Events []Event
	pos    int

	NextWindow Window

	FullscreenAtomValue uint32

	// DeleteSupported/DeleteSent/Killed let tests script and observe
	// KillClient's WM_DELETE_WINDOW-vs-force-kill branch (spec.md S5).
	DeleteSupported map[Window]bool
	DeleteSent      map[Window]bool
	Killed          map[Window]bool

	// PointerPos is what QueryPointer returns.
	PointerPos geometry.Point
}

// NewFake returns a Fake with one 1600x920 head (900 usable + 20 panel, per
// the S1/S2 scenarios) and empty bookkeeping maps.
func NewFake() *Fake {
	return &Fake{
		Root:                1,
		Heads:               []geometry.Geometry{{X: 0, Y: 0, Width: 1600, Height: 920}},
		Geoms:               map[Window]geometry.Geometry{},
		Classes:             map[Window]WindowClass{},
		Mapped:              map[Window]bool{},
		Borders:             map[Window]int{},
		NextWindow:          2,
		FullscreenAtomValue: 100,
	}
}

func (f *Fake) RootWindow() Window              { return f.Root }
func (f *Fake) Monitors() []geometry.Geometry    { return f.Heads }
func (f *Fake) Flush()                           {}
func (f *Fake) HasError() bool                   { return false }
func (f *Fake) Close() error                     { return nil }
func (f *Fake) CleanMask(state uint16) uint16    { return state }
func (f *Fake) ModMask(mod string) uint16        { return 0 }
func (f *Fake) KeysymName(keycode int) string    { return "" }
func (f *Fake) FullscreenAtom() uint32           { return f.FullscreenAtomValue }
func (f *Fake) UngrabAllKeys() error             { return nil }
func (f *Fake) GrabKey(mod, keysym string) error { return nil }
func (f *Fake) GrabButton(w Window, mod string, button uint8) error { return nil }
func (f *Fake) GrabPointer() error               { return nil }
func (f *Fake) UngrabPointer() error             { return nil }
func (f *Fake) QueryPointer() (geometry.Point, error) { return f.PointerPos, nil }
func (f *Fake) Spawn(cmd string) error           { return nil }

func (f *Fake) NextEvent() (Event, error) {
	if f.pos >= len(f.Events) {
		return Event{}, errNoMoreEvents
	}
	ev := f.Events[f.pos]
	f.pos++
	return ev, nil
}

func (f *Fake) Geometry(w Window) (geometry.Geometry, error) {
	g, ok := f.Geoms[w]
	if !ok {
		return geometry.Geometry{}, errUnknownWindow
	}
	return g, nil
}

func (f *Fake) MoveResize(w Window, x, y, width, height int) error {
	f.Geoms[w] = geometry.Geometry{X: x, Y: y, Width: width, Height: height}
	return nil
}

func (f *Fake) Move(w Window, x, y int) error {
	g := f.Geoms[w]
	g.X, g.Y = x, y
	f.Geoms[w] = g
	return nil
}

func (f *Fake) Resize(w Window, width, height int) error {
	g := f.Geoms[w]
	g.Width, g.Height = width, height
	f.Geoms[w] = g
	return nil
}

func (f *Fake) SetBorderWidth(w Window, width int) error {
	f.Borders[w] = width
	return nil
}

func (f *Fake) SetBorderColor(w Window, focused bool) error { return nil }
func (f *Fake) Raise(w Window) error                        { return nil }
func (f *Fake) SetInputFocus(w Window) error                 { return nil }
func (f *Fake) SetActiveWindow(w Window) error               { return nil }
func (f *Fake) ClearActiveWindow() error                     { return nil }

func (f *Fake) MapWindow(w Window) error   { f.Mapped[w] = true; return nil }
func (f *Fake) UnmapWindow(w Window) error { f.Mapped[w] = false; return nil }

func (f *Fake) OverrideRedirect(w Window) (bool, error)            { return false, nil }
func (f *Fake) ListenPropertyChange(w Window, enter bool) error    { return nil }
func (f *Fake) WindowClassOf(w Window) (WindowClass, error)        { return f.Classes[w], nil }
func (f *Fake) TransientFor(w Window) (Window, bool)               { return None, false }
func (f *Fake) FullscreenRequested(w Window) bool                  { return false }
func (f *Fake) IsUrgent(w Window) bool                             { return false }
func (f *Fake) SupportsDelete(w Window) bool                       { return f.DeleteSupported[w] }

func (f *Fake) SetFullscreenState(w Window, on bool) error { return nil }

func (f *Fake) SendDeleteMessage(w Window) error {
	if f.DeleteSent == nil {
		f.DeleteSent = map[Window]bool{}
	}
	f.DeleteSent[w] = true
	return nil
}

func (f *Fake) KillClient(w Window) error {
	if f.Killed == nil {
		f.Killed = map[Window]bool{}
	}
	f.Killed[w] = true
	return nil
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }

const errNoMoreEvents = fakeErr("no more scripted events")
const errUnknownWindow = fakeErr("unknown window")
