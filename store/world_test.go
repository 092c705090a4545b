package store

import (
	"testing"

	"github.com/gowm/stackwm/config"
	"github.com/gowm/stackwm/geometry"
	"github.com/gowm/stackwm/xserver"
)

func testWorld() *World {
	cfg := config.Default()
	cfg.Desktops = 3
	heads := []geometry.Geometry{
		{X: 0, Y: 0, Width: 1600, Height: 900},
		{X: 1600, Y: 0, Width: 1600, Height: 900},
	}
	return NewWorld(heads, cfg)
}

func TestWindowToClientFindsAcrossDesktopsAndRestoresSelection(t *testing.T) {
	w := testWorld()
	mon := w.Monitors[0]

	mon.SelectDesktop(1)
	c := mon.Live.Add(99, true)
	mon.SelectDesktop(0)

	if mon.CurrentDesktop != 0 {
		t.Fatalf("setup should leave desktop 0 selected, got %d", mon.CurrentDesktop)
	}

	found, foundMon, foundDesktop := w.WindowToClient(99)
	if found != c {
		t.Fatalf("expected to find client added on desktop 1")
	}
	if foundMon != mon || foundDesktop != 1 {
		t.Fatalf("wrong location reported: mon=%v desktop=%d", foundMon, foundDesktop)
	}
	if mon.CurrentDesktop != 0 {
		t.Errorf("WindowToClient must restore the caller's desktop selection, got %d", mon.CurrentDesktop)
	}
}

func TestWindowToClientMissReturnsNone(t *testing.T) {
	w := testWorld()
	c, mon, d := w.WindowToClient(xserver.Window(12345))
	if c != nil || mon != nil || d != -1 {
		t.Fatalf("expected a clean miss, got %v %v %d", c, mon, d)
	}
}

func TestMonitorAtFallsBackToCurrent(t *testing.T) {
	w := testWorld()
	w.CurrentMonitor = 1

	at := w.MonitorAt(geometry.Point{X: 5000, Y: 5000})
	if at != 1 {
		t.Errorf("expected fallback to current monitor 1, got %d", at)
	}

	at = w.MonitorAt(geometry.Point{X: 10, Y: 10})
	if at != 0 {
		t.Errorf("expected monitor 0 to contain (10,10), got %d", at)
	}
}

func TestSelectDesktopSavesAndLoads(t *testing.T) {
	w := testWorld()
	mon := w.Monitors[0]

	mon.Live.Add(1, true)
	if mon.Live.Head == nil {
		t.Fatal("setup: expected a client on desktop 0")
	}

	mon.SelectDesktop(1)
	if mon.Live.Head != nil {
		t.Fatal("desktop 1 should start empty")
	}

	mon.SelectDesktop(0)
	if mon.Live.Head == nil {
		t.Error("desktop 0's client list should have been preserved by select_desktop")
	}
}
