package desktop

import (
	"github.com/gowm/stackwm/geometry"
	"github.com/gowm/stackwm/store"
	"github.com/gowm/stackwm/xserver"

	log "github.com/sirupsen/logrus"
)

// Mouse action kinds, matching the MOVE/RESIZE arguments on the configured
// button bindings (config.ButtonBinding.Arg for action "mousemotion").
const (
	Move   = 0
	Resize = 1
)

// MouseMotion runs the interactive move/resize loop (spec.md §4.5). It
// blocks the caller, re-dispatching MapRequest/ConfigureRequest events so
// new windows don't deadlock against the grabbed pointer, and returns once
// any key or button event arrives.
func (core *Core) MouseMotion(kind int) {
	dsk := &core.World.Current().Live
	c := dsk.Current
	if c == nil {
		return
	}

	winGeo, err := core.Display.Geometry(c.Win)
	if err != nil {
		log.Debug("Could not query geometry for drag: ", err)
		return
	}
	start, err := core.Display.QueryPointer()
	if err != nil {
		log.Debug("Could not query pointer for drag: ", err)
		return
	}
	if err := core.Display.GrabPointer(); err != nil {
		log.Debug("Could not grab pointer for drag: ", err)
		return
	}
	defer core.Display.UngrabPointer()

	if c.IsFullscreen {
		core.SetFullscreen(c, false)
	}
	if !c.IsFloating {
		c.IsFloating = true
	}
	core.UpdateCurrent(c)

	for {
		ev, err := core.Display.NextEvent()
		if err != nil {
			return
		}

		switch ev.Type {
		case xserver.EventMotionNotify:
			core.dragTo(c, kind, winGeo, start, ev)
		case xserver.EventMapRequest, xserver.EventConfigureRequest:
			core.Dispatch(ev)
		case xserver.EventKeyPress, xserver.EventButtonPress:
			return
		}
	}
}

// dragTo applies one MotionNotify sample during a drag: resize tracks the
// pointer delta directly, move tracks it and migrates the client to a new
// monitor if the drag crosses into one (spec.md §4.5 step 5, §8 S6).
func (core *Core) dragTo(c *store.Client, kind int, winGeo geometry.Geometry, start geometry.Point, ev xserver.Event) {
	dx := ev.RootX - start.X
	dy := ev.RootY - start.Y

	if kind == Resize {
		w := geometry.MaxInt(winGeo.Width+dx, core.minWindowSize())
		h := geometry.MaxInt(winGeo.Height+dy, core.minWindowSize())
		core.Display.Resize(c.Win, w, h)
		return
	}

	xw := winGeo.X + dx
	yh := winGeo.Y + dy
	core.Display.Move(c.Win, xw, yh)

	newMon := core.World.MonitorAt(geometry.Point{X: ev.RootX, Y: ev.RootY})
	if newMon != core.World.CurrentMonitor {
		core.ClientToMonitor(newMon)
		core.ChangeMonitor(newMon)
	}
}
