package desktop

import (
	"github.com/gowm/stackwm/config"
	"github.com/gowm/stackwm/store"

	log "github.com/sirupsen/logrus"
)

// UpdateCurrent is the central state mutator (spec.md §4.2). It settles
// which client is focused, repaints every border on the current desktop,
// restacks tiled clients under floating ones, and republishes
// _NET_ACTIVE_WINDOW/input focus, then retiles.
func (core *Core) UpdateCurrent(c *store.Client) {
	mon := core.World.Current()
	dsk := &mon.Live

	switch {
	case c == nil:
		dsk.Current, dsk.PrevFocus = nil, nil
		if err := core.Display.ClearActiveWindow(); err != nil {
			log.Debug("Could not clear active window: ", err)
		}
		return
	case c == dsk.PrevFocus:
		dsk.Current = dsk.PrevFocus
		dsk.PrevFocus = dsk.Prev(dsk.Current)
	case c != dsk.Current:
		dsk.PrevFocus = dsk.Current
		dsk.Current = c
	}

	n := dsk.Len()
	for cur := dsk.Head; cur != nil; cur = nextOf(cur, dsk) {
		core.paintBorder(cur, dsk, n)
		if core.World.Config.ClickToFocus {
			if err := core.Display.GrabButton(cur.Win, "", 1); err != nil {
				log.Debug("Could not grab button 1 on ", cur.Win, ": ", err)
			}
		}
		if !cur.IsFloating && !cur.IsTransient {
			core.Display.Raise(cur.Win)
		}
	}

	if dsk.Current != nil && (dsk.Current.IsFloating || dsk.Current.IsTransient) {
		core.Display.Raise(dsk.Current.Win)
	}

	if dsk.Current != nil {
		core.Display.SetActiveWindow(dsk.Current.Win)
		core.Display.SetInputFocus(dsk.Current.Win)
	}

	core.Tile()
}

// paintBorder applies spec.md §4.2 step 4's border-width and border-color
// rule to a single client on the current desktop.
func (core *Core) paintBorder(c *store.Client, dsk *store.Desktop, n int) {
	cfg := core.World.Config
	width := cfg.BorderWidth
	if n == 1 || c.IsFullscreen || (dsk.Mode == config.Monocle && !c.IsFloating && !c.IsTransient) {
		width = 0
	}
	core.Display.SetBorderWidth(c.Win, width)
	core.Display.SetBorderColor(c.Win, c == dsk.Current)
}

// nextOf walks the desktop list without wrapping, for use in a plain
// forward pass (store.Desktop.Next wraps, which a whole-list walk must not).
func nextOf(c *store.Client, dsk *store.Desktop) *store.Client {
	n := dsk.Next(c)
	if n == dsk.Head {
		return nil
	}
	return n
}
