package xserver

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"

	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/icccm"
	"github.com/jezek/xgbutil/keybind"
	"github.com/jezek/xgbutil/xevent"
	"github.com/jezek/xgbutil/xwindow"

	"github.com/gowm/stackwm/geometry"

	log "github.com/sirupsen/logrus"
)

// XgbutilDisplay is the production Display, grounded on the teacher's own
// xgbutil call patterns (store/root.go, store/client.go): a single *xgbutil.XUtil
// connection, ewmh/icccm helpers for property access, xwindow for geometry.
type XgbutilDisplay struct {
	X *xgbutil.XUtil

	mu          sync.Mutex
	numlockMask uint16
	focusColor  uint32
	unfocusColor uint32
}

// Dial opens the X connection and discovers the numlock modifier, mirroring
// the teacher's Connected()/setup_keyboard sequence.
func Dial(focusHex, unfocusHex string) (*XgbutilDisplay, error) {
	X, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}

	if err := randr.Init(X.Conn()); err != nil {
		log.Warn("RandR unavailable, falling back to single monitor: ", err)
	}

	keybind.Initialize(X)

	d := &XgbutilDisplay{X: X}
	d.numlockMask = discoverNumlock(X)
	d.focusColor = parseHexColor(focusHex)
	d.unfocusColor = parseHexColor(unfocusHex)

	return d, nil
}

func parseHexColor(hex string) uint32 {
	hex = strings.TrimPrefix(hex, "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0
	}
	return uint32(v)
}

// discoverNumlock scans the server's modifier map for the Num_Lock keysym,
// per spec.md §9 "CLEANMASK".
func discoverNumlock(X *xgbutil.XUtil) uint16 {
	mods, err := xproto.GetModifierMapping(X.Conn()).Reply()
	if err != nil || mods == nil {
		return 0
	}
	numlockKeycodes := X.KeysymToKeycodes(0xff7f) // XK_Num_Lock
	perMod := int(mods.KeycodesPerModifier)
	for i, kc := range mods.Keycodes {
		for _, nkc := range numlockKeycodes {
			if xproto.Keycode(nkc) == kc {
				modIndex := i / perMod
				return 1 << uint(modIndex)
			}
		}
	}
	return 0
}

func (d *XgbutilDisplay) RootWindow() Window {
	return Window(d.X.RootWin())
}

func (d *XgbutilDisplay) Monitors() []geometry.Geometry {
	heads, err := randr.GetScreenResources(d.X.Conn(), d.X.RootWin()).Reply()
	if err != nil || heads == nil {
		return []geometry.Geometry{d.fallbackScreen()}
	}

	var out []geometry.Geometry
	for _, output := range heads.Outputs {
		oinfo, err := randr.GetOutputInfo(d.X.Conn(), output, 0).Reply()
		if err != nil || oinfo.Connection != randr.ConnectionConnected || oinfo.Crtc == 0 {
			continue
		}
		cinfo, err := randr.GetCrtcInfo(d.X.Conn(), oinfo.Crtc, 0).Reply()
		if err != nil {
			continue
		}
		out = append(out, geometry.Geometry{
			X: int(cinfo.X), Y: int(cinfo.Y),
			Width: int(cinfo.Width), Height: int(cinfo.Height),
		})
	}

	if len(out) == 0 {
		return []geometry.Geometry{d.fallbackScreen()}
	}
	return out
}

func (d *XgbutilDisplay) fallbackScreen() geometry.Geometry {
	screen := d.X.Screen()
	return geometry.Geometry{X: 0, Y: 0, Width: int(screen.WidthInPixels), Height: int(screen.HeightInPixels)}
}

func (d *XgbutilDisplay) NextEvent() (Event, error) {
	raw, err := d.X.Conn().WaitForEvent()
	if err != nil {
		return Event{}, err
	}
	return d.translateEvent(raw), nil
}

func (d *XgbutilDisplay) Flush() {
	xevent.Flush(d.X)
}

func (d *XgbutilDisplay) HasError() bool {
	return d.X.Conn() == nil
}

func (d *XgbutilDisplay) Geometry(w Window) (geometry.Geometry, error) {
	win := xwindow.New(d.X, xproto.Window(w))
	g, err := win.Geometry()
	if err != nil {
		return geometry.Geometry{}, err
	}
	return geometry.Geometry{X: g.X(), Y: g.Y(), Width: g.Width(), Height: g.Height()}, nil
}

func (d *XgbutilDisplay) MoveResize(w Window, x, y, width, height int) error {
	return xwindow.New(d.X, xproto.Window(w)).MoveResize(x, y, width, height)
}

func (d *XgbutilDisplay) Move(w Window, x, y int) error {
	return xwindow.New(d.X, xproto.Window(w)).Move(x, y)
}

func (d *XgbutilDisplay) Resize(w Window, width, height int) error {
	return xwindow.New(d.X, xproto.Window(w)).Resize(width, height)
}

func (d *XgbutilDisplay) SetBorderWidth(w Window, width int) error {
	return xproto.ConfigureWindowChecked(d.X.Conn(), xproto.Window(w), xproto.ConfigWindowBorderWidth,
		[]uint32{uint32(width)}).Check()
}

func (d *XgbutilDisplay) SetBorderColor(w Window, focused bool) error {
	color := d.unfocusColor
	if focused {
		color = d.focusColor
	}
	return xproto.ChangeWindowAttributesChecked(d.X.Conn(), xproto.Window(w), xproto.CwBorderPixel,
		[]uint32{color}).Check()
}

func (d *XgbutilDisplay) Raise(w Window) error {
	return xwindow.New(d.X, xproto.Window(w)).StackRaise()
}

func (d *XgbutilDisplay) SetInputFocus(w Window) error {
	return xproto.SetInputFocusChecked(d.X.Conn(), xproto.InputFocusPointerRoot, xproto.Window(w), xproto.TimeCurrentTime).Check()
}

func (d *XgbutilDisplay) SetActiveWindow(w Window) error {
	return ewmh.ActiveWindowSet(d.X, xproto.Window(w))
}

func (d *XgbutilDisplay) ClearActiveWindow() error {
	return xproto.DeletePropertyChecked(d.X.Conn(), d.X.RootWin(), d.X.Atm("_NET_ACTIVE_WINDOW")).Check()
}

func (d *XgbutilDisplay) MapWindow(w Window) error {
	return xproto.MapWindowChecked(d.X.Conn(), xproto.Window(w)).Check()
}

func (d *XgbutilDisplay) UnmapWindow(w Window) error {
	return xproto.UnmapWindowChecked(d.X.Conn(), xproto.Window(w)).Check()
}

func (d *XgbutilDisplay) OverrideRedirect(w Window) (bool, error) {
	attr, err := xproto.GetWindowAttributes(d.X.Conn(), xproto.Window(w)).Reply()
	if err != nil || attr == nil {
		return false, err
	}
	return attr.OverrideRedirect, nil
}

func (d *XgbutilDisplay) ListenPropertyChange(w Window, enterWindow bool) error {
	mask := xproto.EventMaskPropertyChange
	if enterWindow {
		mask |= xproto.EventMaskEnterWindow
	}
	return xproto.ChangeWindowAttributesChecked(d.X.Conn(), xproto.Window(w), xproto.CwEventMask,
		[]uint32{uint32(mask)}).Check()
}

func (d *XgbutilDisplay) WindowClassOf(w Window) (WindowClass, error) {
	cls, err := icccm.WmClassGet(d.X, xproto.Window(w))
	if err != nil || cls == nil {
		return WindowClass{}, err
	}
	return WindowClass{Class: cls.Class, Instance: cls.Instance}, nil
}

func (d *XgbutilDisplay) TransientFor(w Window) (Window, bool) {
	t, err := icccm.WmTransientForGet(d.X, xproto.Window(w))
	if err != nil || t == 0 {
		return None, false
	}
	return Window(t), true
}

func (d *XgbutilDisplay) FullscreenRequested(w Window) bool {
	states, err := ewmh.WmStateGet(d.X, xproto.Window(w))
	if err != nil {
		return false
	}
	for _, s := range states {
		if s == "_NET_WM_STATE_FULLSCREEN" {
			return true
		}
	}
	return false
}

func (d *XgbutilDisplay) IsUrgent(w Window) bool {
	hints, err := icccm.WmHintsGet(d.X, xproto.Window(w))
	if err != nil || hints == nil {
		return false
	}
	return hints.Flags&icccm.HintXUrgency > 0
}

func (d *XgbutilDisplay) SupportsDelete(w Window) bool {
	protocols, err := icccm.WmProtocolsGet(d.X, xproto.Window(w))
	if err != nil {
		return false
	}
	for _, p := range protocols {
		if p == "WM_DELETE_WINDOW" {
			return true
		}
	}
	return false
}

func (d *XgbutilDisplay) SetFullscreenState(w Window, on bool) error {
	if on {
		return ewmh.WmStateReq(d.X, xproto.Window(w), ewmh.StateAdd, "_NET_WM_STATE_FULLSCREEN")
	}
	return ewmh.WmStateReq(d.X, xproto.Window(w), ewmh.StateRemove, "_NET_WM_STATE_FULLSCREEN")
}

func (d *XgbutilDisplay) SendDeleteMessage(w Window) error {
	return ewmh.ClientEvent(d.X, xproto.Window(w), "WM_PROTOCOLS", int(d.X.Atm("WM_DELETE_WINDOW")), int(xproto.TimeCurrentTime))
}

func (d *XgbutilDisplay) KillClient(w Window) error {
	return xproto.KillClientChecked(d.X.Conn(), uint32(w)).Check()
}

func (d *XgbutilDisplay) GrabButton(w Window, mod string, button uint8) error {
	modmask := modmaskFromName(mod)
	return xproto.GrabButtonChecked(d.X.Conn(), false, xproto.Window(w),
		xproto.EventMaskButtonPress,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		d.X.RootWin(), xproto.CursorNone,
		button, uint16(modmask)).Check()
}

func (d *XgbutilDisplay) GrabKey(mod string, keysym string) error {
	ks := d.X.StrToKeysym(keysym)
	if ks == 0 {
		return fmt.Errorf("unknown keysym %q", keysym)
	}
	modmask := modmaskFromName(mod)
	codes := d.X.KeysymToKeycodes(ks)

	ignored := []uint16{0, xproto.ModMaskLock, d.numlockMask, d.numlockMask | xproto.ModMaskLock}
	for _, kc := range codes {
		for _, ig := range ignored {
			err := xproto.GrabKeyChecked(d.X.Conn(), true, d.X.RootWin(),
				uint16(modmask)|ig, xproto.Keycode(kc),
				xproto.GrabModeAsync, xproto.GrabModeAsync).Check()
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *XgbutilDisplay) UngrabAllKeys() error {
	return xproto.UngrabKeyChecked(d.X.Conn(), 0, d.X.RootWin(), xproto.ModMaskAny).Check()
}

func (d *XgbutilDisplay) CleanMask(state uint16) uint16 {
	return state &^ (xproto.ModMaskLock | d.numlockMask)
}

// ModMask resolves a configured modifier spec ("Mod4", "Mod4|Shift") to its
// numeric mask, so the dispatcher can compare it against a cleaned event
// state without knowing about xproto mask bits.
func (d *XgbutilDisplay) ModMask(mod string) uint16 {
	return modmaskFromName(mod)
}

// KeysymName resolves a keycode to the string name bound to keybind.Key
// literals in config (e.g. "j", "Return", "Tab"), ignoring modifier state;
// CleanMask/ModMask handle the modifier side of the match separately.
func (d *XgbutilDisplay) KeysymName(keycode int) string {
	name, ok := keybind.LookupString(d.X, 0, xproto.Keycode(keycode))
	if !ok {
		return ""
	}
	return name
}

// FullscreenAtom exposes the interned _NET_WM_STATE_FULLSCREEN atom so the
// dispatcher can compare it against a ClientMessage's raw data32 payload
// (spec.md §4.6 "clientmessage").
func (d *XgbutilDisplay) FullscreenAtom() uint32 {
	return uint32(d.X.Atm("_NET_WM_STATE_FULLSCREEN"))
}

func (d *XgbutilDisplay) GrabPointer() error {
	const buttonMask = xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease |
		xproto.EventMaskButtonMotion | xproto.EventMaskPointerMotion
	reply, err := xproto.GrabPointer(d.X.Conn(), false, d.X.RootWin(), buttonMask,
		xproto.GrabModeAsync, xproto.GrabModeAsync, xproto.WindowNone, xproto.CursorNone,
		xproto.TimeCurrentTime).Reply()
	if err != nil {
		return err
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("grab pointer failed: status %d", reply.Status)
	}
	return nil
}

func (d *XgbutilDisplay) UngrabPointer() error {
	return xproto.UngrabPointerChecked(d.X.Conn(), xproto.TimeCurrentTime).Check()
}

func (d *XgbutilDisplay) QueryPointer() (geometry.Point, error) {
	reply, err := xproto.QueryPointer(d.X.Conn(), d.X.RootWin()).Reply()
	if err != nil {
		return geometry.Point{}, err
	}
	return geometry.Point{X: int(reply.RootX), Y: int(reply.RootY)}, nil
}

func (d *XgbutilDisplay) Spawn(cmd string) error {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return nil
	}
	c := exec.Command(fields[0], fields[1:]...)
	c.Stdout, c.Stderr = os.Stdout, os.Stderr
	c.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := c.Start(); err != nil {
		return err
	}
	go c.Wait()
	return nil
}

func (d *XgbutilDisplay) Close() error {
	d.X.Conn().Close()
	return nil
}

func modmaskFromName(mod string) uint16 {
	var mask uint16
	for _, part := range strings.Split(mod, "|") {
		switch strings.TrimSpace(part) {
		case "Mod1":
			mask |= xproto.ModMask1
		case "Mod2":
			mask |= xproto.ModMask2
		case "Mod3":
			mask |= xproto.ModMask3
		case "Mod4":
			mask |= xproto.ModMask4
		case "Mod5":
			mask |= xproto.ModMask5
		case "Shift":
			mask |= xproto.ModMaskShift
		case "Control", "Ctrl":
			mask |= xproto.ModMaskControl
		}
	}
	return mask
}

// translateEvent converts a raw xgb event into the core's Event shape. Only
// the opcodes the dispatcher handles (spec.md §4.6) are recognized; anything
// else comes back as EventUnknown and is ignored by the dispatcher.
func (d *XgbutilDisplay) translateEvent(raw xgb.Event) Event {
	switch e := raw.(type) {
	case xproto.KeyPressEvent:
		return Event{Type: EventKeyPress, Window: Window(e.Event), Detail: int(e.Detail), State: e.State}
	case xproto.ButtonPressEvent:
		return Event{Type: EventButtonPress, Window: Window(e.Event), Detail: int(e.Detail), State: e.State,
			RootX: int(e.RootX), RootY: int(e.RootY)}
	case xproto.MotionNotifyEvent:
		return Event{Type: EventMotionNotify, Window: Window(e.Event), RootX: int(e.RootX), RootY: int(e.RootY), State: e.State}
	case xproto.MapRequestEvent:
		return Event{Type: EventMapRequest, Window: Window(e.Window)}
	case xproto.ConfigureRequestEvent:
		return Event{
			Type: EventConfigureRequest, Window: Window(e.Window),
			ValueMask: e.ValueMask, X: int(e.X), Y: int(e.Y),
			Width: int(e.Width), Height: int(e.Height),
			BorderWidth: int(e.BorderWidth), Sibling: Window(e.Sibling), StackMode: int(e.StackMode),
		}
	case xproto.DestroyNotifyEvent:
		return Event{Type: EventDestroyNotify, Window: Window(e.Window)}
	case xproto.UnmapNotifyEvent:
		return Event{Type: EventUnmapNotify, Window: Window(e.Window), EventOwner: Window(e.Event)}
	case xproto.EnterNotifyEvent:
		return Event{Type: EventEnterNotify, Window: Window(e.Event), Detail: int(e.Detail)}
	case xproto.PropertyNotifyEvent:
		return Event{Type: EventPropertyNotify, Window: Window(e.Window), Atom: d.atomName(e.Atom)}
	case xproto.ClientMessageEvent:
		data := e.Data.Data32
		var out [5]uint32
		copy(out[:], data)
		return Event{Type: EventClientMessage, Window: Window(e.Window), MessageType: d.atomName(e.Type), Data: out}
	}
	return Event{Type: EventUnknown}
}

var atomNameCache sync.Map

// atomName resolves an atom to its string name, memoized since the same
// handful of atoms (WM_PROTOCOLS, _NET_WM_STATE, ...) recur on every event.
func (d *XgbutilDisplay) atomName(a xproto.Atom) string {
	if v, ok := atomNameCache.Load(a); ok {
		return v.(string)
	}
	reply, err := xproto.GetAtomName(d.X.Conn(), a).Reply()
	if err != nil || reply == nil {
		return ""
	}
	name := reply.Name
	atomNameCache.Store(a, name)
	return name
}
