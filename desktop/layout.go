package desktop

import (
	"github.com/gowm/stackwm/config"
	"github.com/gowm/stackwm/store"

	log "github.com/sirupsen/logrus"
)

// minWindowSize is the smallest primary-dimension a tiled client is ever
// given; resize_master rejects changes that would violate it.
func (core *Core) minWindowSize() int {
	return core.World.Config.MinWindowSize
}

// Tile recomputes the geometry of every tileable client on the current
// desktop and pushes it to the Display (spec.md §4.3). A desktop holding
// exactly one client is always laid out as MONOCLE regardless of its
// configured mode.
func (core *Core) Tile() {
	mon := core.World.Current()
	dsk := &mon.Live

	cfg := core.World.Config
	hh := mon.WH
	if !dsk.ShowPanel {
		hh += cfg.PanelHeight
	}
	cy := 0
	if cfg.TopPanel && dsk.ShowPanel {
		cy = cfg.PanelHeight
	}

	mode := dsk.Mode
	if dsk.Len() == 1 {
		mode = config.Monocle
	}

	switch mode {
	case config.Monocle:
		core.layoutMonocle(mon, dsk, hh, cy)
	case config.Grid:
		core.layoutGrid(mon, dsk, hh, cy)
	default:
		core.layoutStack(mon, dsk, hh, cy, mode == config.Bstack)
	}
}

// layoutMonocle fills the whole working area with every tileable client;
// UpdateCurrent's border rule is what makes only the current one visible.
func (core *Core) layoutMonocle(mon *store.Monitor, dsk *store.Desktop, hh, cy int) {
	for c := dsk.Head; c != nil; c = nextOf(c, dsk) {
		if c.ISFFT() {
			continue
		}
		core.Display.MoveResize(c.Win, mon.WX, mon.WY+cy, mon.WW, hh)
	}
}

// layoutStack implements tile and bstack, which share one split algorithm
// differing only in which axis the master/stack boundary runs along
// (spec.md §4.3 "tile/bstack (shared stack)"). Ported directly from
// monsterwm.c's stack(), including its exact border arithmetic: geometry
// (x,y) is the top-left of the border, so a slot of width `s` gets content
// width `s - BORDER_WIDTH` (outer footprint stays `s` once the border is
// drawn), and only the first stack window absorbs the growth remainder `d`.
func (core *Core) layoutStack(mon *store.Monitor, dsk *store.Desktop, hh, cy int, bstack bool) {
	bw := core.World.Config.BorderWidth
	master, total := dsk.Tileable()
	if master == nil {
		return
	}
	n := total - 1 // stack windows, excluding the master

	z := hh
	if bstack {
		z = mon.WW
	}
	ma := int(dsk.MasterSize)

	if n == 0 {
		core.Display.MoveResize(master.Win, mon.WX, mon.WY+cy, mon.WW-2*bw, hh-2*bw)
		return
	}

	d := 0
	if n > 1 {
		d = (z-dsk.Growth)%n + dsk.Growth
		z = (z - dsk.Growth) / n
	}

	// master
	if bstack {
		core.Display.MoveResize(master.Win, mon.WX, mon.WY+cy, mon.WW-2*bw, ma-bw)
	} else {
		core.Display.MoveResize(master.Win, mon.WX, mon.WY+cy, ma-bw, hh-2*bw)
	}

	// locate the first stack window
	c := nextOf(master, dsk)
	for c != nil && c.ISFFT() {
		c = nextOf(c, dsk)
	}
	if c == nil {
		return
	}

	cx := mon.WX
	if !bstack {
		cx += ma
	}
	cy2 := mon.WY + cy
	cw := mon.WW - 2*bw - ma
	if bstack {
		cw = hh - 2*bw - ma
	}
	ch := z - bw

	if bstack {
		cy2 += ma
		core.Display.MoveResize(c.Win, cx, cy2, ch-bw+d, cw)
		cx += ch + d
	} else {
		core.Display.MoveResize(c.Win, cx, cy2, cw, ch-bw+d)
		cy2 += ch + d
	}

	for c = nextOf(c, dsk); c != nil; c = nextOf(c, dsk) {
		if c.ISFFT() {
			continue
		}
		if bstack {
			core.Display.MoveResize(c.Win, cx, cy2, ch, cw)
			cx += z
		} else {
			core.Display.MoveResize(c.Win, cx, cy2, cw, ch)
			cy2 += z
		}
	}
}

// layoutGrid balances tileable clients into the smallest square-ish grid
// covering n cells, special-casing n==5 to a 2-column layout (spec.md §4.3).
// Ported directly from monsterwm.c's grid(): cw/ch are computed once, and
// once a column is found to need an extra row (to absorb n%cols leftover
// clients), rows stays bumped for every column after it, not just that one.
func (core *Core) layoutGrid(mon *store.Monitor, dsk *store.Desktop, hh, cy int) {
	bw := core.World.Config.BorderWidth
	_, n := dsk.Tileable()
	if n == 0 {
		return
	}

	cols := 0
	for ; cols <= n/2; cols++ {
		if cols*cols >= n {
			break
		}
	}
	if n == 5 {
		cols = 2
	}
	if cols == 0 {
		cols = 1
	}

	rows := n / cols
	ch := hh - bw
	cw := (mon.WW - bw) / cols

	i, cn, rn := -1, 0, 0
	for c := dsk.Head; c != nil; c = nextOf(c, dsk) {
		if c.ISFFT() {
			continue
		}
		i++

		if i/rows+1 > cols-n%cols {
			rows = n/cols + 1
		}

		core.Display.MoveResize(c.Win,
			mon.WX+cn*cw, mon.WY+cy+rn*ch/rows,
			cw-bw, ch/rows-bw)

		rn++
		if rn >= rows {
			rn = 0
			cn++
		}
	}
	log.Debug("Grid layout placed ", i+1, " clients in ", cn+1, " columns")
}
