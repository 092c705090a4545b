package desktop

import (
	"testing"

	"github.com/gowm/stackwm/config"
	"github.com/gowm/stackwm/geometry"
	"github.com/gowm/stackwm/store"
	"github.com/gowm/stackwm/xserver"
)

func singleMonitorCore(t *testing.T, nMonitors int) (*Core, *xserver.Fake) {
	t.Helper()
	cfg := config.Default()
	cfg.Desktops = 3
	cfg.PanelHeight = 0

	fake := xserver.NewFake()
	heads := make([]geometry.Geometry, nMonitors)
	for i := range heads {
		heads[i] = geometry.Geometry{X: i * 1600, Y: 0, Width: 1600, Height: 900}
	}
	fake.Heads = heads

	world := store.NewWorld(heads, cfg)
	core := &Core{World: world, Display: fake, Info: func(string) {}}
	return core, fake
}

// TestClientToDesktopMovesAndRefocuses is spec.md §8 S3: moving the current
// client to another desktop detaches it, refocuses the source desktop's
// prevFocus, and leaves the client attached (and focusable) on the target.
func TestClientToDesktopMovesAndRefocuses(t *testing.T) {
	core, _ := singleMonitorCore(t, 1)
	mon := core.World.Current()

	a := mon.Live.Add(1, true)
	b := mon.Live.Add(2, true)
	mon.Live.Current = b
	mon.Live.PrevFocus = a

	core.ClientToDesktop(1)

	if mon.Live.Current != a {
		t.Errorf("source desktop should refocus prevFocus, got %v want %v", mon.Live.Current, a)
	}
	found := false
	for c := mon.Live.Head; c != nil; c = nextOf(c, &mon.Live) {
		if c == b {
			found = true
		}
	}
	if found {
		t.Error("moved client should no longer be linked on the source desktop")
	}

	mon.SelectDesktop(1)
	if mon.Live.Head != b {
		t.Errorf("target desktop should now hold the moved client, got %v", mon.Live.Head)
	}
	if mon.Live.Current != b {
		t.Error("moved client should be focused on the target desktop")
	}
	if b.Monitor != 0 {
		t.Errorf("client_to_desktop must not change the monitor field, got %d", b.Monitor)
	}
}

// TestClientToDesktopFollowsWhenConfigured checks the FollowWindow variant
// of S3: the view switches along with the client.
func TestClientToDesktopFollowsWhenConfigured(t *testing.T) {
	core, _ := singleMonitorCore(t, 1)
	core.World.Config.FollowWindow = true
	mon := core.World.Current()

	c := mon.Live.Add(1, true)
	mon.Live.Current = c

	core.ClientToDesktop(2)

	if mon.CurrentDesktop != 2 {
		t.Errorf("FollowWindow should switch the view to the target desktop, got %d", mon.CurrentDesktop)
	}
}

// TestClientToMonitorMovesAcrossMonitors covers client_to_monitor: identity
// and flags survive, the monitor field updates, and the client is tileable
// on the new monitor.
func TestClientToMonitorMovesAcrossMonitors(t *testing.T) {
	core, _ := singleMonitorCore(t, 2)
	mon0 := core.World.Monitors[0]

	c := mon0.Live.Add(1, true)
	c.IsUrgent = true
	mon0.Live.Current = c

	core.ClientToMonitor(1)

	mon1 := core.World.Monitors[1]
	if mon1.Live.Head != c {
		t.Fatalf("target monitor should hold the moved client, got %v", mon1.Live.Head)
	}
	if c.Monitor != 1 {
		t.Errorf("client.Monitor should be updated to 1, got %d", c.Monitor)
	}
	if !c.IsUrgent {
		t.Error("client_to_monitor must preserve client flags")
	}
	for cur := mon0.Live.Head; cur != nil; cur = nextOf(cur, &mon0.Live) {
		if cur == c {
			t.Error("moved client should no longer be linked on the source monitor")
		}
	}
}

// TestSetFullscreenTogglesStateAndGeometry is spec.md S4: a _NET_WM_STATE
// ClientMessage toggling fullscreen updates both the flag and the X state,
// and resizes the window to the full monitor rectangle including the panel
// strip.
func TestSetFullscreenTogglesStateAndGeometry(t *testing.T) {
	core, fake := singleMonitorCore(t, 1)
	core.World.Config.PanelHeight = 20
	mon := core.World.Current()
	c := mon.Live.Add(1, true)
	mon.Live.Current = c

	ev := xserver.Event{
		Type:        xserver.EventClientMessage,
		Window:      1,
		MessageType: "_NET_WM_STATE",
		Data:        [5]uint32{2, fake.FullscreenAtomValue, 0},
	}
	core.Dispatch(ev)

	if !c.IsFullscreen {
		t.Fatal("toggle (_NET_WM_STATE_TOGGLE) should have set fullscreen")
	}
	g := fake.Geoms[1]
	if g.X != mon.WX || g.Y != mon.WY || g.Width != mon.WW || g.Height != mon.WH+20 {
		t.Errorf("fullscreen geometry = %+v, want full monitor + panel strip", g)
	}

	core.Dispatch(ev)
	if c.IsFullscreen {
		t.Error("second toggle should have cleared fullscreen")
	}
}

// TestKillClientSendsDeleteWhenSupported is spec.md S5: a client that
// advertises WM_DELETE_WINDOW gets asked nicely instead of being
// force-killed, and is unlinked from the store right after the request.
func TestKillClientSendsDeleteWhenSupported(t *testing.T) {
	core, fake := singleMonitorCore(t, 1)
	mon := core.World.Current()
	c := mon.Live.Add(1, true)
	mon.Live.Current = c
	fake.DeleteSupported = map[xserver.Window]bool{1: true}

	core.KillClient()

	if !fake.DeleteSent[1] {
		t.Error("expected a WM_DELETE_WINDOW message for a delete-capable client")
	}
	if fake.Killed[1] {
		t.Error("should not force-kill a client that supports delete")
	}
	if mon.Live.Head != nil {
		t.Error("client should be unlinked after the delete request")
	}
}

// TestKillClientForceKillsWhenUnsupported is the other half of S5: a client
// with no WM_DELETE_WINDOW protocol is force-killed and unlinked
// immediately.
func TestKillClientForceKillsWhenUnsupported(t *testing.T) {
	core, fake := singleMonitorCore(t, 1)
	mon := core.World.Current()
	c := mon.Live.Add(1, true)
	mon.Live.Current = c

	core.KillClient()

	if !fake.Killed[1] {
		t.Error("expected a forced KillClient for a delete-incapable client")
	}
	if mon.Live.Head != nil {
		t.Error("force-killed client should be unlinked immediately")
	}
}

// TestMouseMotionMoveCrossesMonitor is spec.md S6: dragging a client's
// tracked point past the boundary of the current monitor migrates it, via
// ClientToMonitor, to the monitor that now contains the point.
func TestMouseMotionMoveCrossesMonitor(t *testing.T) {
	core, fake := singleMonitorCore(t, 2)
	mon0 := core.World.Monitors[0]
	c := mon0.Live.Add(1, true)
	mon0.Live.Current = c
	fake.Geoms[1] = geometry.Geometry{X: 100, Y: 100, Width: 200, Height: 100}
	fake.PointerPos = geometry.Point{X: 200, Y: 150}

	motion := xserver.Event{Type: xserver.EventMotionNotify, RootX: 1700, RootY: 150}
	core.dragTo(c, Move, fake.Geoms[1], fake.PointerPos, motion)

	if c.Monitor != 1 {
		t.Errorf("client should have migrated to monitor 1, got %d", c.Monitor)
	}
}
