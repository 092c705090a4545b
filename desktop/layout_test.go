package desktop

import (
	"testing"

	"github.com/gowm/stackwm/config"
	"github.com/gowm/stackwm/geometry"
	"github.com/gowm/stackwm/store"
	"github.com/gowm/stackwm/xserver"
)

// testCore builds a single-monitor Core with no panel reservation, so hh/cy
// reduce to WH/0 and the layout arithmetic is easy to hand-trace against
// monsterwm.c's stack()/grid().
func testCore(t *testing.T, ww, wh int, mode config.Mode, masterFraction float64) (*Core, *xserver.Fake) {
	t.Helper()
	cfg := config.Default()
	cfg.PanelHeight = 0
	cfg.BorderWidth = 2
	cfg.DefaultMode = mode
	cfg.MasterSize = masterFraction
	cfg.Desktops = 1

	fake := xserver.NewFake()
	fake.Heads = []geometry.Geometry{{X: 0, Y: 0, Width: ww, Height: wh}}

	world := store.NewWorld(fake.Heads, cfg)
	core := &Core{World: world, Display: fake, Info: func(string) {}}
	return core, fake
}

func addWindows(mon *store.Monitor, n int) []xserver.Window {
	wins := make([]xserver.Window, n)
	for i := 0; i < n; i++ {
		w := xserver.Window(100 + i)
		mon.Live.Add(w, true)
		wins[i] = w
	}
	return wins
}

// TestLayoutStackThreeWindows traces monsterwm.c's stack() by hand for a
// 1000x500 monitor, border 2, master fraction 0.5, three tileable windows.
func TestLayoutStackThreeWindows(t *testing.T) {
	core, fake := testCore(t, 1000, 500, config.Tile, 0.5)
	mon := core.World.Current()
	wins := addWindows(mon, 3)

	core.Tile()

	want := map[xserver.Window]geometry.Geometry{
		wins[0]: {X: 0, Y: 0, Width: 498, Height: 496},
		wins[1]: {X: 500, Y: 0, Width: 496, Height: 246},
		wins[2]: {X: 500, Y: 248, Width: 496, Height: 248},
	}
	for w, g := range want {
		if got := fake.Geoms[w]; got != g {
			t.Errorf("window %v: got %+v, want %+v", w, got, g)
		}
	}
}

// TestLayoutStackSingleStackWindow checks the n==1 special case: no
// growth/remainder split happens, the lone stack window just gets z in
// full (monsterwm.c only enters the d/z split "else if (n > 1)").
func TestLayoutStackSingleStackWindow(t *testing.T) {
	core, fake := testCore(t, 1000, 500, config.Tile, 0.5)
	mon := core.World.Current()
	wins := addWindows(mon, 2)

	core.Tile()

	master := fake.Geoms[wins[0]]
	stack := fake.Geoms[wins[1]]
	if master.Width != 498 || master.Height != 496 {
		t.Errorf("master geometry = %+v", master)
	}
	if stack.X != 500 || stack.Y != 0 || stack.Width != 496 || stack.Height != 496 {
		t.Errorf("sole stack window should fill the whole column, got %+v", stack)
	}
}

// TestLayoutStackSingleClientIsMonocle covers the "desktop holding exactly
// one client is laid out as monocle regardless of configured mode" rule.
func TestLayoutStackSingleClientIsMonocle(t *testing.T) {
	core, fake := testCore(t, 1000, 500, config.Tile, 0.5)
	mon := core.World.Current()
	wins := addWindows(mon, 1)

	core.Tile()

	g := fake.Geoms[wins[0]]
	if g.X != 0 || g.Y != 0 || g.Width != 1000 || g.Height != 500 {
		t.Errorf("single client should cover the whole working area, got %+v", g)
	}
}

// TestLayoutGridOfFive traces monsterwm.c's grid() by hand: n==5 forces 2
// columns, and once the first column satisfies its share (2 rows) the
// persistent rows variable bumps to 3 for the rest of the clients.
func TestLayoutGridOfFive(t *testing.T) {
	core, fake := testCore(t, 1000, 500, config.Grid, 0.5)
	mon := core.World.Current()
	wins := addWindows(mon, 5)

	core.Tile()

	want := map[xserver.Window]geometry.Geometry{
		wins[0]: {X: 0, Y: 0, Width: 497, Height: 247},
		wins[1]: {X: 0, Y: 249, Width: 497, Height: 247},
		wins[2]: {X: 499, Y: 0, Width: 497, Height: 164},
		wins[3]: {X: 499, Y: 166, Width: 497, Height: 164},
		wins[4]: {X: 499, Y: 332, Width: 497, Height: 164},
	}
	for w, g := range want {
		if got := fake.Geoms[w]; got != g {
			t.Errorf("window %v: got %+v, want %+v", w, got, g)
		}
	}
}

// TestLayoutGridSkipsFloating checks ISFFT exclusion from the grid count
// (spec.md: floating/fullscreen/transient clients never enter a layout).
func TestLayoutGridSkipsFloating(t *testing.T) {
	core, fake := testCore(t, 1000, 500, config.Grid, 0.5)
	mon := core.World.Current()
	wins := addWindows(mon, 3)
	for c := mon.Live.Head; c != nil; c = nextOf(c, &mon.Live) {
		if c.Win == wins[1] {
			c.IsFloating = true
		}
	}

	core.Tile()

	if _, ok := fake.Geoms[wins[1]]; ok {
		t.Errorf("floating window should never be placed by the grid layout")
	}
	if len(fake.Geoms) != 2 {
		t.Errorf("expected exactly 2 tiled windows, got %d", len(fake.Geoms))
	}
}

// TestLayoutMonocleFillsWholeArea checks every tileable client gets the
// same full-area geometry under monocle (border rule is what makes only
// the current one visible, not layout).
func TestLayoutMonocleFillsWholeArea(t *testing.T) {
	core, fake := testCore(t, 800, 600, config.Monocle, 0.5)
	mon := core.World.Current()
	wins := addWindows(mon, 3)

	core.Tile()

	for _, w := range wins {
		g := fake.Geoms[w]
		if g.X != 0 || g.Y != 0 || g.Width != 800 || g.Height != 600 {
			t.Errorf("monocle window %v got %+v, want full area", w, g)
		}
	}
}
