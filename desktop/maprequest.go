package desktop

import (
	"github.com/gowm/stackwm/xserver"

	log "github.com/sirupsen/logrus"
)

// handleMapRequest implements spec.md §4.7: classify the new window against
// the rule table, insert it into its target desktop, apply transient and
// fullscreen state, and map it if its desktop is the one currently showing.
func (core *Core) handleMapRequest(ev xserver.Event) {
	w := ev.Window

	if redirect, err := core.Display.OverrideRedirect(w); err != nil || redirect {
		return
	}
	if c, _, _ := core.World.WindowToClient(w); c != nil {
		return
	}

	mon := core.World.Current()
	target := mon.CurrentDesktop
	follow := false
	floating := false

	if cls, err := core.Display.WindowClassOf(w); err == nil {
		for _, rule := range core.World.Config.Rules {
			if rule.Class == cls.Class || rule.Class == cls.Instance {
				if rule.Desktop >= 0 {
					target = rule.Desktop
				}
				follow = rule.Follow
				floating = rule.Floating
				break
			}
		}
	}

	saved := mon.CurrentDesktop
	if target != saved {
		mon.SelectDesktop(target)
	}

	c := mon.Live.Add(w, core.World.Config.AttachAside)
	if err := core.Display.ListenPropertyChange(w, core.World.Config.FollowMouse); err != nil {
		log.Debug("Could not listen for property changes on ", w, ": ", err)
	}

	if t, ok := core.Display.TransientFor(w); ok {
		_ = t
		c.IsTransient = true
	}
	c.IsFloating = floating || c.IsTransient

	if core.Display.FullscreenRequested(w) {
		if err := core.Display.SetFullscreenState(w, true); err == nil {
			c.IsFullscreen = true
			core.Display.MoveResize(w, mon.WX, mon.WY, mon.WW, mon.WH+core.World.Config.PanelHeight)
		}
	}

	core.UpdateCurrent(c)
	if err := core.Display.GrabButton(w, "", 1); err != nil {
		log.Debug("Could not grab button on new client: ", err)
	}

	if target != saved {
		mon.SelectDesktop(saved)
		if follow {
			core.ChangeDesktop(target)
		}
	} else {
		core.Display.MapWindow(w)
		core.UpdateCurrent(c)
	}
}
