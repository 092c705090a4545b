package desktop

// ChangeDesktop switches the current monitor to desktop i. A no-op if i is
// already current. Clients of the new desktop are mapped before the old
// desktop's are unmapped, and the new desktop's current is mapped first of
// all, so no frame is ever drawn with both desktops' windows missing
// (spec.md §4.4 "change_desktop", §9 open question a).
func (core *Core) ChangeDesktop(i int) {
	mon := core.World.Current()
	if i == mon.CurrentDesktop {
		return
	}

	old := mon.CurrentDesktop
	mon.PreviousDesktop = old
	mon.SelectDesktop(i)

	if cur := mon.Live.Current; cur != nil {
		core.Display.MapWindow(cur.Win)
	}
	for c := mon.Live.Head; c != nil; c = nextOf(c, &mon.Live) {
		if c == mon.Live.Current {
			continue
		}
		core.Display.MapWindow(c.Win)
	}

	core.UpdateCurrent(mon.Live.Current)

	mon.SelectDesktop(old)
	for c := mon.Live.Head; c != nil; c = nextOf(c, &mon.Live) {
		if c == mon.Live.Current {
			continue
		}
		core.Display.UnmapWindow(c.Win)
	}
	if cur := mon.Live.Current; cur != nil {
		core.Display.UnmapWindow(cur.Win)
	}
	mon.SelectDesktop(i)
}

// LastDesktop returns to the monitor's previously selected desktop.
func (core *Core) LastDesktop() {
	core.ChangeDesktop(core.World.Current().PreviousDesktop)
}

// Rotate moves to desktop (current+delta) mod Desktops on the current
// monitor.
func (core *Core) Rotate(delta int) {
	n := core.World.Config.Desktops
	mon := core.World.Current()
	next := ((mon.CurrentDesktop+delta)%n + n) % n
	core.ChangeDesktop(next)
}

// RotateFilled is Rotate but skips any desktop whose head is empty.
func (core *Core) RotateFilled(delta int) {
	n := core.World.Config.Desktops
	mon := core.World.Current()
	start := mon.CurrentDesktop
	next := start
	for i := 0; i < n; i++ {
		next = ((next+delta)%n + n) % n
		if next == start {
			break
		}
		if mon.Desktops[next].Head != nil {
			break
		}
	}
	core.ChangeDesktop(next)
}

// ChangeMonitor switches CurrentMonitor to i and refocuses its current
// client.
func (core *Core) ChangeMonitor(i int) {
	if i == core.World.CurrentMonitor {
		return
	}
	core.World.PreviousMonitor = core.World.CurrentMonitor
	core.World.CurrentMonitor = i
	core.UpdateCurrent(core.World.Current().Live.Current)
}

// LastMonitor returns to the previously selected monitor.
func (core *Core) LastMonitor() {
	core.ChangeMonitor(core.World.PreviousMonitor)
}

// RotateMonitor moves to monitor (current+delta) mod len(Monitors).
func (core *Core) RotateMonitor(delta int) {
	n := len(core.World.Monitors)
	next := ((core.World.CurrentMonitor+delta)%n + n) % n
	core.ChangeMonitor(next)
}

// ClientToDesktop detaches the current client and appends it to desktop i's
// tail, leaving it focused there; the source desktop refocuses prevFocus.
// If FollowWindow is set, the view also switches to i (spec.md §4.4
// "client_to_desktop", §8 S3).
func (core *Core) ClientToDesktop(i int) {
	mon := core.World.Current()
	if i == mon.CurrentDesktop {
		return
	}
	dsk := &mon.Live
	c := dsk.Current
	if c == nil {
		return
	}

	dsk.Remove(c)
	core.UpdateCurrent(dsk.PrevFocus)

	old := mon.CurrentDesktop
	mon.SelectDesktop(i)
	mon.Live.Attach(c, true)
	core.UpdateCurrent(c)
	mon.SelectDesktop(old)

	if core.World.Config.FollowWindow {
		core.ChangeDesktop(i)
	}
}

// ClientToMonitor moves the current client to monitor i, preserving its
// identity and flags, and retiles both monitors. If FollowWindow is set,
// the view also switches to i (spec.md §4.4 "client_to_monitor").
func (core *Core) ClientToMonitor(i int) {
	if i == core.World.CurrentMonitor {
		return
	}
	mon := core.World.Current()
	dsk := &mon.Live
	c := dsk.Current
	if c == nil {
		return
	}

	core.Display.UnmapWindow(c.Win)
	dsk.Remove(c)
	core.UpdateCurrent(dsk.PrevFocus)
	core.Tile()

	target := core.World.Monitors[i]
	target.Live.Attach(c, true)
	c.Monitor = i

	saved := core.World.CurrentMonitor
	core.World.CurrentMonitor = i
	core.Display.MapWindow(c.Win)
	core.UpdateCurrent(c)
	core.Tile()
	core.World.CurrentMonitor = saved

	if core.World.Config.FollowWindow {
		core.ChangeMonitor(i)
	}
}
