package desktop

import (
	"github.com/gowm/stackwm/config"
	"github.com/gowm/stackwm/geometry"
	"github.com/gowm/stackwm/xserver"

	log "github.com/sirupsen/logrus"
)

// Dispatch routes one X event to its handler (spec.md §4.6). Every handler
// is total: an event for an unknown window, or one that fails a reply, is
// silently ignored rather than propagated as an error.
func (core *Core) Dispatch(ev xserver.Event) {
	switch ev.Type {
	case xserver.EventButtonPress:
		core.onButtonPress(ev)
	case xserver.EventKeyPress:
		core.onKeyPress(ev)
	case xserver.EventClientMessage:
		core.onClientMessage(ev)
	case xserver.EventConfigureRequest:
		core.onConfigureRequest(ev)
	case xserver.EventDestroyNotify:
		core.onDestroyOrUnmap(ev.Window)
	case xserver.EventUnmapNotify:
		if ev.EventOwner != core.Display.RootWindow() {
			core.onDestroyOrUnmap(ev.Window)
		}
	case xserver.EventEnterNotify:
		core.onEnterNotify(ev)
	case xserver.EventMotionNotify:
		core.onMotionNotify(ev)
	case xserver.EventPropertyNotify:
		core.onPropertyNotify(ev)
	case xserver.EventMapRequest:
		core.handleMapRequest(ev)
	}
}

func (core *Core) onButtonPress(ev xserver.Event) {
	cfg := core.World.Config
	if c, _, _ := core.World.WindowToClient(ev.Window); c != nil && cfg.ClickToFocus && ev.Detail == 1 {
		core.UpdateCurrent(c)
	}

	mask := core.Display.CleanMask(ev.State)
	for _, b := range cfg.Buttons {
		if b.Button != uint8(ev.Detail) {
			continue
		}
		if core.Display.ModMask(b.Mod) != mask {
			continue
		}
		core.runAction(b.Action, b.Arg, b.Cmd)
	}
}

func (core *Core) onKeyPress(ev xserver.Event) {
	cfg := core.World.Config
	mask := core.Display.CleanMask(ev.State)
	keysym := core.Display.KeysymName(ev.Detail)
	for _, k := range cfg.Keys {
		if core.Display.ModMask(k.Mod) != mask {
			continue
		}
		if k.Key != keysym {
			continue
		}
		core.runAction(k.Action, k.Arg, k.Cmd)
	}
}

func (core *Core) onClientMessage(ev xserver.Event) {
	if ev.MessageType != "_NET_WM_STATE" {
		return
	}
	c, _, _ := core.World.WindowToClient(ev.Window)
	if c == nil {
		return
	}

	fsAtom := core.Display.FullscreenAtom()
	if ev.Data[1] != fsAtom && ev.Data[2] != fsAtom {
		return
	}

	switch ev.Data[0] {
	case 0:
		core.SetFullscreen(c, false)
	case 1:
		core.SetFullscreen(c, true)
	case 2:
		core.SetFullscreen(c, !c.IsFullscreen)
	}
}

func (core *Core) onConfigureRequest(ev xserver.Event) {
	c, _, _ := core.World.WindowToClient(ev.Window)
	if c != nil && c.IsFullscreen {
		mon := core.World.Current()
		core.Display.MoveResize(ev.Window, mon.WX, mon.WY, mon.WW, mon.WH+core.World.Config.PanelHeight)
		return
	}

	mon := core.World.Current()
	min := core.minWindowSize()
	w := geometry.MinInt(geometry.MaxInt(ev.Width, min), mon.WW-2*core.World.Config.BorderWidth)
	h := geometry.MinInt(geometry.MaxInt(ev.Height, min), mon.WH-2*core.World.Config.BorderWidth)
	core.Display.MoveResize(ev.Window, ev.X, ev.Y, w, h)
}

func (core *Core) onDestroyOrUnmap(w xserver.Window) {
	c, _, _ := core.World.WindowToClient(w)
	if c == nil {
		return
	}
	core.RemoveClient(c)
	core.emitInfo()
}

func (core *Core) onEnterNotify(ev xserver.Event) {
	if !core.World.Config.FollowMouse || ev.Detail == xserver.EnterNotifyInferior {
		return
	}
	if c, _, _ := core.World.WindowToClient(ev.Window); c != nil {
		core.UpdateCurrent(c)
	}
}

func (core *Core) onMotionNotify(ev xserver.Event) {
	if !core.World.Config.FollowMonitor {
		return
	}
	at := core.World.MonitorAt(geometry.Point{X: ev.RootX, Y: ev.RootY})
	if at != core.World.CurrentMonitor {
		core.ChangeMonitor(at)
	}
}

func (core *Core) onPropertyNotify(ev xserver.Event) {
	if ev.Atom != "WM_HINTS" {
		return
	}
	c, _, _ := core.World.WindowToClient(ev.Window)
	if c == nil {
		return
	}
	c.IsUrgent = core.Display.IsUrgent(ev.Window)
	core.emitInfo()
}

// runAction maps an action name (config.KeyBinding.Action /
// config.ButtonBinding.Action) to the corresponding Core method. Unknown
// names are logged and ignored rather than panicking.
func (core *Core) runAction(name string, arg int, cmd string) {
	switch name {
	case "next_win":
		core.NextWin()
	case "prev_win":
		core.PrevWin()
	case "move_up":
		core.MoveUp()
	case "move_down":
		core.MoveDown()
	case "swap_master":
		core.SwapMaster()
	case "switch_mode":
		core.SwitchMode(modeFromArg(arg))
	case "resize_master":
		core.ResizeMaster(arg)
	case "resize_stack":
		core.ResizeStack(arg)
	case "rotate":
		core.Rotate(arg)
	case "rotate_filled":
		core.RotateFilled(arg)
	case "rotate_monitor":
		core.RotateMonitor(arg)
	case "change_desktop":
		core.ChangeDesktop(arg)
	case "change_monitor":
		core.ChangeMonitor(arg)
	case "client_to_desktop":
		core.ClientToDesktop(arg)
	case "client_to_monitor":
		core.ClientToMonitor(arg)
	case "last_desktop":
		core.LastDesktop()
	case "last_monitor":
		core.LastMonitor()
	case "togglepanel":
		core.TogglePanel()
	case "focusurgent":
		core.FocusUrgent()
	case "killclient":
		core.KillClient()
	case "quit":
		core.Quit(arg)
	case "mousemotion":
		core.MouseMotion(arg)
	case "spawn":
		if cmd != "" {
			core.Spawn(cmd)
		}
	default:
		log.WithFields(log.Fields{"action": name}).Debug("Unknown action")
	}
}

func modeFromArg(arg int) config.Mode {
	return config.Mode(arg)
}
