package desktop

import (
	"github.com/gowm/stackwm/config"
	"github.com/gowm/stackwm/store"

	log "github.com/sirupsen/logrus"
)

// Spawn execs cmd via the Display adapter (spec.md §4.4 "spawn").
func (core *Core) Spawn(cmd string) {
	if err := core.Display.Spawn(cmd); err != nil {
		log.Warn("Could not spawn ", cmd, ": ", err)
	}
}

// KillClient implements spec.md S5: send WM_DELETE_WINDOW if the client
// advertises it, otherwise force-kill, then unlink it from the store.
func (core *Core) KillClient() {
	dsk := &core.World.Current().Live
	c := dsk.Current
	if c == nil {
		return
	}

	if core.Display.SupportsDelete(c.Win) {
		if err := core.Display.SendDeleteMessage(c.Win); err != nil {
			log.Warn("Could not send delete message: ", err)
		}
	} else if err := core.Display.KillClient(c.Win); err != nil {
		log.Warn("Could not kill client: ", err)
	}
	core.RemoveClient(c)
}

// RemoveClient unlinks c from the current desktop, refocuses prevFocus (or
// nothing) and retiles. Called both from KillClient and from the
// destroynotify/unmapnotify handlers.
func (core *Core) RemoveClient(c *store.Client) {
	dsk := &core.World.Current().Live
	prev := dsk.PrevFocus
	dsk.Remove(c)
	if prev == c {
		prev = nil
	}
	core.UpdateCurrent(prev)
}

// NextWin / PrevWin cycle focus within the current desktop, wrapping.
func (core *Core) NextWin() {
	dsk := &core.World.Current().Live
	if dsk.Current == nil {
		return
	}
	core.UpdateCurrent(dsk.Next(dsk.Current))
}

func (core *Core) PrevWin() {
	dsk := &core.World.Current().Live
	if dsk.Current == nil {
		return
	}
	if p := dsk.Prev(dsk.Current); p != nil {
		core.UpdateCurrent(p)
	}
}

// MoveUp swaps current with its predecessor in list order.
func (core *Core) MoveUp() {
	dsk := &core.World.Current().Live
	if dsk.Current == nil {
		return
	}
	if dsk.MoveUp(dsk.Current) {
		core.Tile()
	}
}

// MoveDown swaps current with its successor in list order.
func (core *Core) MoveDown() {
	dsk := &core.World.Current().Live
	if dsk.Current == nil {
		return
	}
	if dsk.MoveDown(dsk.Current) {
		core.Tile()
	}
}

// SwapMaster brings the current client to the head of the list: a single
// MoveDown if it already is head (pushing it behind the next client), else
// repeated MoveUp until it reaches head (spec.md §4.4 "swap_master").
func (core *Core) SwapMaster() {
	dsk := &core.World.Current().Live
	c := dsk.Current
	if c == nil {
		return
	}
	if c == dsk.Head {
		dsk.MoveDown(c)
	} else {
		for dsk.Head != c && dsk.MoveUp(c) {
		}
	}
	core.UpdateCurrent(dsk.Head)
}

// SwitchMode changes the current desktop's layout mode. Re-selecting the
// active mode clears every client's floating flag instead of changing
// anything else (spec.md §4.4, §8.7 idempotence).
func (core *Core) SwitchMode(mode config.Mode) {
	mon := core.World.Current()
	dsk := &mon.Live

	if dsk.Mode == mode {
		for c := dsk.Head; c != nil; c = nextOf(c, dsk) {
			c.IsFloating = false
		}
	} else {
		dsk.Mode = mode
		axis := mon.WW
		if mode == config.Bstack {
			axis = mon.WH
		}
		dsk.MasterSize = float64(axis) * core.World.Config.MasterSize
	}
	core.UpdateCurrent(dsk.Current)
}

// ResizeMaster adjusts the master area by delta pixels, rejecting changes
// that would shrink either side below MinWindowSize.
func (core *Core) ResizeMaster(delta int) {
	mon := core.World.Current()
	dsk := &mon.Live
	axis := mon.WW
	if dsk.Mode == config.Bstack {
		axis = mon.WH
	}

	next := int(dsk.MasterSize) + delta
	min := core.minWindowSize()
	if next <= min || axis-next <= min {
		return
	}
	dsk.MasterSize = float64(next)
	core.Tile()
}

// ResizeStack adds delta to growth, the pixel remainder handed to the first
// stack client.
func (core *Core) ResizeStack(delta int) {
	dsk := &core.World.Current().Live
	dsk.Growth += delta
	core.Tile()
}

// TogglePanel flips whether the reserved panel strip is honored.
func (core *Core) TogglePanel() {
	dsk := &core.World.Current().Live
	dsk.ShowPanel = !dsk.ShowPanel
	core.Tile()
}

// FocusUrgent focuses the first client marked urgent, searching every
// monitor and desktop in order.
func (core *Core) FocusUrgent() {
	for mi, mon := range core.World.Monitors {
		savedDesktop := mon.CurrentDesktop
		for di := range mon.Desktops {
			mon.SelectDesktop(di)
			for c := mon.Live.Head; c != nil; c = nextOf(c, &mon.Live) {
				if !c.IsUrgent {
					continue
				}
				mon.SelectDesktop(savedDesktop)
				core.World.CurrentMonitor = mi
				core.ChangeDesktop(di)
				core.UpdateCurrent(c)
				return
			}
		}
		mon.SelectDesktop(savedDesktop)
	}
}

// Quit stops the event loop. The caller (cmd/stackwm's run loop) observes
// World.Running go false, breaks out and exits the process with ExitCode.
func (core *Core) Quit(code int) {
	core.World.Running = false
	core.ExitCode = code
}
