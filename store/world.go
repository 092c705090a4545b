// Package store holds the windowing-state core: clients, desktops,
// monitors and the global state that ties them together. Every type here
// is a plain data structure; nothing in this package talks to X11 directly,
// which is what makes it exercisable without a running server.
package store

import (
	"github.com/gowm/stackwm/config"
	"github.com/gowm/stackwm/geometry"
	"github.com/gowm/stackwm/xserver"
)

// World is the global state of a running instance: the monitor array and
// which one is current. NewWorld leaves FocusColor, UnfocusColor and
// NumlockMask at zero; the X adapter keeps its own border colors and numlock
// mask. It is the single piece of mutable state the focus engine, layout
// engines, dispatcher and action layer all operate on.
type World struct {
	Config *config.Conf

	Monitors        []*Monitor
	CurrentMonitor  int
	PreviousMonitor int

	FocusColor   uint32
	UnfocusColor uint32
	NumlockMask  uint16

	Running bool
}

// NewWorld builds one Monitor per rectangle in heads, seeded from cfg.
func NewWorld(heads []geometry.Geometry, cfg *config.Conf) *World {
	w := &World{Config: cfg, Running: true}
	for _, h := range heads {
		w.Monitors = append(w.Monitors, NewMonitor(cfg.Desktops, h, cfg))
	}
	if cfg.DefaultMonitor < len(w.Monitors) {
		w.CurrentMonitor = cfg.DefaultMonitor
	}
	return w
}

// Current returns the monitor currently in focus.
func (w *World) Current() *Monitor {
	return w.Monitors[w.CurrentMonitor]
}

// MonitorAt returns the index of the monitor whose rectangle contains p,
// falling back to the current monitor if none does (spec.md §4.5 step for
// drag-across-monitor detection reads this).
func (w *World) MonitorAt(p geometry.Point) int {
	var rects []geometry.Geometry
	for _, m := range w.Monitors {
		rects = append(rects, m.Geometry())
	}
	return geometry.MonitorAt(rects, p, w.CurrentMonitor)
}

// WindowToClient linear-searches every desktop of every monitor for win, the
// spec.md §4.1 bijection lookup. Each monitor's desktop selection is
// restored to what it was on entry before returning.
func (w *World) WindowToClient(win xserver.Window) (c *Client, monitor *Monitor, desktop int) {
	for _, m := range w.Monitors {
		savedDesktop := m.CurrentDesktop
		for di := range m.Desktops {
			m.SelectDesktop(di)
			for cur := m.Live.Head; cur != nil; cur = cur.next {
				if cur.Win == win {
					found, foundDesktop := cur, di
					m.SelectDesktop(savedDesktop)
					return found, m, foundDesktop
				}
			}
		}
		m.SelectDesktop(savedDesktop)
	}
	return nil, nil, -1
}
