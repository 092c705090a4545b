// Package desktop is the windowing-state core's behavior: the focus engine,
// the layout engines, the event dispatcher and the action layer. It mutates
// a store.World through an xserver.Display and nothing else, so it runs
// unchanged against a fake Display in tests and a real one at runtime.
package desktop

import (
	"github.com/gowm/stackwm/store"
	"github.com/gowm/stackwm/xserver"

	log "github.com/sirupsen/logrus"
)

// Sink receives one rendered desktopinfo line per invocation (spec.md §6
// "stdout protocol"). The statusline package implements this against stdout;
// tests can supply a recording fake.
type Sink func(line string)

// Core is the live instance: the world state, the Display adapter it drives,
// and the sink it reports desktop changes to. There is exactly one Core per
// process and it is only ever touched from the single event-loop goroutine
// (spec.md §5 "Locking: None required; single-threaded").
type Core struct {
	World   *store.World
	Display xserver.Display
	Info    Sink

	// ExitCode is set by Quit; cmd/stackwm reads it after the loop returns.
	ExitCode int

	// oldCurrentMonitor is not read or written; emitInfo keeps its frozen
	// "monitor at the start of this call" value in a local variable instead.
	oldCurrentMonitor int
}

// NewCore wires a World to a Display and installs the configured key grabs.
// It does not set an event mask on the root window, does not grab the
// configured button bindings, and does not start the event loop; the run
// loop in cmd/stackwm does that.
func NewCore(world *store.World, display xserver.Display, sink Sink) *Core {
	core := &Core{World: world, Display: display, Info: sink}
	core.grabKeys()
	return core
}

// grabKeys ungrabs any stale key bindings and installs the configured key
// grabs, matching the teacher's startup grab table shape. Button bindings
// are not grabbed here.
func (core *Core) grabKeys() {
	cfg := core.World.Config
	if err := core.Display.UngrabAllKeys(); err != nil {
		log.Warn("Could not ungrab existing keys: ", err)
	}
	for _, kb := range cfg.Keys {
		if err := core.Display.GrabKey(kb.Mod, kb.Key); err != nil {
			log.WithFields(log.Fields{"mod": kb.Mod, "key": kb.Key}).Warn("Could not grab key: ", err)
		}
	}
}
