package desktop

import (
	"testing"

	"github.com/gowm/stackwm/config"
	"github.com/gowm/stackwm/geometry"
	"github.com/gowm/stackwm/store"
	"github.com/gowm/stackwm/xserver"
)

func oneDesktopCore(t *testing.T) (*Core, *xserver.Fake) {
	t.Helper()
	cfg := config.Default()
	cfg.Desktops = 1
	cfg.PanelHeight = 0

	fake := xserver.NewFake()
	heads := []geometry.Geometry{{X: 0, Y: 0, Width: 1600, Height: 900}}
	fake.Heads = heads

	world := store.NewWorld(heads, cfg)
	core := &Core{World: world, Display: fake, Info: func(string) {}}
	return core, fake
}

// TestBorderWidthZeroOnSingleClient is spec.md invariant 4: a desktop with
// exactly one client never draws a border on it.
func TestBorderWidthZeroOnSingleClient(t *testing.T) {
	core, fake := oneDesktopCore(t)
	mon := core.World.Current()
	c := mon.Live.Add(1, true)

	core.UpdateCurrent(c)

	if w := fake.Borders[1]; w != 0 {
		t.Errorf("sole client should have border width 0, got %d", w)
	}
}

// TestBorderWidthZeroInMonocleForTiledClients covers the monocle special
// case: tiled (non-floating, non-transient) clients are borderless, but a
// floating client stacked above them still gets a border.
func TestBorderWidthZeroInMonocleForTiledClients(t *testing.T) {
	core, fake := oneDesktopCore(t)
	mon := core.World.Current()
	mon.Live.Mode = config.Monocle

	a := mon.Live.Add(1, true)
	b := mon.Live.Add(2, true)
	b.IsFloating = true

	core.UpdateCurrent(a)

	if w := fake.Borders[1]; w != 0 {
		t.Errorf("tiled monocle client should be borderless, got %d", w)
	}
	if w := fake.Borders[2]; w == 0 {
		t.Error("floating client under monocle should still get a border")
	}
}

// TestBorderWidthNonZeroWithMultipleTileClients is the converse: under
// tile mode with more than one client, borders are drawn at the configured
// width.
func TestBorderWidthNonZeroWithMultipleTileClients(t *testing.T) {
	core, fake := oneDesktopCore(t)
	mon := core.World.Current()
	mon.Live.Add(1, true)
	c2 := mon.Live.Add(2, true)

	core.UpdateCurrent(c2)

	if w := fake.Borders[1]; w != core.World.Config.BorderWidth {
		t.Errorf("non-solo tiled client should have the configured border width, got %d", w)
	}
}

// TestUpdateCurrentSwapsBackToPrevFocus covers focusing the already-recorded
// prevFocus client: Current/PrevFocus swap roles instead of both pointing
// at the same client.
func TestUpdateCurrentSwapsBackToPrevFocus(t *testing.T) {
	core, _ := oneDesktopCore(t)
	mon := core.World.Current()
	a := mon.Live.Add(1, true)
	b := mon.Live.Add(2, true)

	core.UpdateCurrent(a)
	core.UpdateCurrent(b)
	if mon.Live.Current != b || mon.Live.PrevFocus != a {
		t.Fatalf("setup: got current=%v prevFocus=%v", mon.Live.Current, mon.Live.PrevFocus)
	}

	core.UpdateCurrent(a) // a is prevFocus: should swap back
	if mon.Live.Current != a {
		t.Errorf("expected current to swap back to a, got %v", mon.Live.Current)
	}
	if mon.Live.PrevFocus != b {
		t.Errorf("expected prevFocus to become b, got %v", mon.Live.PrevFocus)
	}
}

// TestEmitInfoReportsPerDesktopCounts exercises the desktopinfo protocol
// end to end: one client, marked urgent, on desktop 0 of one monitor.
func TestEmitInfoReportsPerDesktopCounts(t *testing.T) {
	core, _ := oneDesktopCore(t)
	mon := core.World.Current()
	c := mon.Live.Add(1, true)
	c.IsUrgent = true

	var got string
	core.Info = func(line string) { got = line }
	core.emitInfo()

	want := "0:1:0:1:0:1:1\n"
	if got != want {
		t.Errorf("emitInfo() = %q, want %q", got, want)
	}
}
