package store

import (
	"github.com/gowm/stackwm/config"
	"github.com/gowm/stackwm/geometry"
)

// Monitor holds the working rectangle of one physical output and its
// DESKTOPS desktops. The currently selected desktop's fields are mirrored in
// Live, the "working copy" every layout/focus routine reads and writes;
// SelectDesktop saves Live into Desktops[CurrentDesktop] and loads
// Desktops[d] into Live.
type Monitor struct {
	WW, WH, WX, WY int

	CurrentDesktop  int
	PreviousDesktop int

	Desktops []Desktop
	Live     Desktop
}

// NewMonitor allocates n desktops for the rectangle geo, each seeded from
// cfg's default mode and master size. The working rectangle reserves
// PanelHeight pixels regardless of ShowPanel; tile() adds the strip back
// when the panel isn't actually being drawn.
func NewMonitor(n int, geo geometry.Geometry, cfg *config.Conf) *Monitor {
	m := &Monitor{
		WX: geo.X, WY: geo.Y,
		WW: geo.Width, WH: geo.Height - cfg.PanelHeight,
	}

	m.Desktops = make([]Desktop, n)
	for i := range m.Desktops {
		m.Desktops[i] = Desktop{
			Mode:       cfg.DefaultMode,
			MasterSize: masterSize(cfg.DefaultMode, m.WW, m.WH, cfg.MasterSize),
			ShowPanel:  cfg.ShowPanel,
		}
	}
	m.Live = m.Desktops[0]
	return m
}

// masterSize computes the pixel master size for mode from the configured
// fraction: the work height for BSTACK (the split runs vertically), the
// work width otherwise.
func masterSize(mode config.Mode, ww, wh int, fraction float64) float64 {
	if mode == config.Bstack {
		return float64(wh) * fraction
	}
	return float64(ww) * fraction
}

// SelectDesktop saves the live desktop back into its slot and loads d,
// unconditionally — callers that want a same-desktop no-op (change_desktop)
// check that themselves before calling in. This is a pure scan/select
// primitive: it does not touch PreviousDesktop, since it is also called by
// lookups that have nothing to do with desktop navigation (WindowToClient,
// FocusUrgent, handleMapRequest) and would otherwise clobber last_desktop's
// target on every such scan. Only ChangeDesktop records PreviousDesktop, the
// same split monsterwm.c draws between select_desktop and change_desktop.
func (m *Monitor) SelectDesktop(d int) {
	m.Desktops[m.CurrentDesktop] = m.Live
	m.CurrentDesktop = d
	m.Live = m.Desktops[d]
}

// Geometry returns the monitor's working rectangle as a geometry.Geometry.
func (m *Monitor) Geometry() geometry.Geometry {
	return geometry.Geometry{X: m.WX, Y: m.WY, Width: m.WW, Height: m.WH}
}
