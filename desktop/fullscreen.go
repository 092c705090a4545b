package desktop

import "github.com/gowm/stackwm/store"

// SetFullscreen toggles c's fullscreen state (spec.md §4.8). It is a no-op
// if on already matches c.IsFullscreen.
func (core *Core) SetFullscreen(c *store.Client, on bool) {
	if on == c.IsFullscreen {
		return
	}
	if err := core.Display.SetFullscreenState(c.Win, on); err != nil {
		return
	}
	c.IsFullscreen = on

	if on {
		mon := core.World.Current()
		core.Display.MoveResize(c.Win, mon.WX, mon.WY, mon.WW, mon.WH+core.World.Config.PanelHeight)
	}

	core.UpdateCurrent(core.World.Current().Live.Current)
}
