package desktop

import (
	"fmt"
	"strconv"
	"strings"
)

// emitInfo renders one desktopinfo line (spec.md §6 "stdout protocol") and
// hands it to core.Info. A call with no sink configured is a silent no-op.
func (core *Core) emitInfo() {
	if core.Info == nil {
		return
	}

	// spec.md §9 open question b: the per-record "monitor is current" flag
	// is, in the source this was distilled from, computed once per call as
	// current_monitor == OLDM rather than per-monitor — so it comes out
	// identical across every record of one invocation. OLDM is the current
	// monitor as of the start of this call, before anything below runs.
	oldMonitor := core.World.CurrentMonitor
	monitorStillCurrent := core.World.CurrentMonitor == oldMonitor

	var records []string
	for mi, mon := range core.World.Monitors {
		for di, dsk := range mon.Desktops {
			live := dsk
			if di == mon.CurrentDesktop {
				live = mon.Live
			}

			urgent := 0
			for c := live.Head; c != nil; c = nextOf(c, &live) {
				if c.IsUrgent {
					urgent = 1
					break
				}
			}

			records = append(records, strings.Join([]string{
				strconv.Itoa(mi),
				boolDigit(monitorStillCurrent),
				strconv.Itoa(di),
				strconv.Itoa(live.Len()),
				strconv.Itoa(int(live.Mode)),
				boolDigit(di == mon.CurrentDesktop),
				strconv.Itoa(urgent),
			}, ":"))
		}
	}

	core.Info(fmt.Sprintln(strings.Join(records, " ")))
}

func boolDigit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
