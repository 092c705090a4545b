// Package config holds the static, load-time configuration of the window
// manager: keybindings, button bindings, app rules, colors and layout
// constants. Once loaded it is treated as immutable by the rest of the
// program (spec.md §9 "Static configuration").
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	log "github.com/sirupsen/logrus"
)

// Mode is a tiling layout mode.
type Mode int

const (
	Tile Mode = iota
	Monocle
	Bstack
	Grid
)

func (m Mode) String() string {
	switch m {
	case Tile:
		return "tile"
	case Monocle:
		return "monocle"
	case Bstack:
		return "bstack"
	case Grid:
		return "grid"
	}
	return "unknown"
}

// KeyBinding maps a modifier+keysym combination to a named action. Cmd is
// only read by the "spawn" action.
type KeyBinding struct {
	Mod    string
	Key    string
	Action string
	Arg    int
	Cmd    string
}

// ButtonBinding maps a modifier+pointer-button combination to a named
// action, used for both click-to-focus passthrough and drag bindings.
type ButtonBinding struct {
	Mod    string
	Button uint8
	Action string
	Arg    int
	Cmd    string
}

// Rule matches a mapped window's WM_CLASS/instance to a starting desktop and
// floating/follow behavior (spec.md §4.7 step 3).
type Rule struct {
	Class    string
	Desktop  int // -1 means "current desktop"
	Follow   bool
	Floating bool
}

// Conf is the full set of recognized options (spec.md §6 "Configuration").
type Conf struct {
	Mod            string
	MasterSize     float64
	DefaultMode    Mode
	DefaultDesktop int
	DefaultMonitor int
	Desktops       int
	ShowPanel      bool
	TopPanel       bool
	PanelHeight    int
	BorderWidth    int
	Focus          string
	Unfocus        string
	MinWindowSize  int

	FollowMouse   bool
	FollowMonitor bool
	FollowWindow  bool
	ClickToFocus  bool
	AttachAside   bool

	Keys    []KeyBinding
	Buttons []ButtonBinding
	Rules   []Rule
}

// Config is the active, immutable-after-load configuration. It starts out
// as Default() and is overwritten wholesale by Load.
var Config = Default()

// Default returns the compiled-in configuration, used when no config file is
// present and as the base that a config file's values are merged onto.
func Default() *Conf {
	return &Conf{
		Mod:            "Mod4",
		MasterSize:     0.52,
		DefaultMode:    Tile,
		DefaultDesktop: 0,
		DefaultMonitor: 0,
		Desktops:       5,
		ShowPanel:      true,
		TopPanel:       true,
		PanelHeight:    20,
		BorderWidth:    2,
		Focus:          "#5294e2",
		Unfocus:        "#404552",
		MinWindowSize:  50,

		FollowMouse:   false,
		FollowMonitor: false,
		FollowWindow:  false,
		ClickToFocus:  true,
		AttachAside:   true,

		Keys: []KeyBinding{
			{Mod: "Mod4", Key: "j", Action: "next_win"},
			{Mod: "Mod4", Key: "k", Action: "prev_win"},
			{Mod: "Mod4|Shift", Key: "j", Action: "move_down"},
			{Mod: "Mod4|Shift", Key: "k", Action: "move_up"},
			{Mod: "Mod4", Key: "Return", Action: "swap_master"},
			{Mod: "Mod4", Key: "t", Action: "switch_mode", Arg: int(Tile)},
			{Mod: "Mod4", Key: "m", Action: "switch_mode", Arg: int(Monocle)},
			{Mod: "Mod4", Key: "b", Action: "switch_mode", Arg: int(Bstack)},
			{Mod: "Mod4", Key: "g", Action: "switch_mode", Arg: int(Grid)},
			{Mod: "Mod4", Key: "h", Action: "resize_master", Arg: -20},
			{Mod: "Mod4", Key: "l", Action: "resize_master", Arg: 20},
			{Mod: "Mod4|Shift", Key: "h", Action: "resize_stack", Arg: -20},
			{Mod: "Mod4|Shift", Key: "l", Action: "resize_stack", Arg: 20},
			{Mod: "Mod4", Key: "Tab", Action: "last_desktop"},
			{Mod: "Mod4", Key: "q", Action: "killclient"},
			{Mod: "Mod4|Shift", Key: "q", Action: "quit", Arg: 0},
			{Mod: "Mod4", Key: "p", Action: "togglepanel"},
			{Mod: "Mod4", Key: "u", Action: "focusurgent"},
			{Mod: "Mod4|Shift", Key: "Return", Action: "spawn", Cmd: "xterm"},
			{Mod: "Mod4", Key: "1", Action: "change_desktop", Arg: 0},
			{Mod: "Mod4", Key: "2", Action: "change_desktop", Arg: 1},
			{Mod: "Mod4", Key: "3", Action: "change_desktop", Arg: 2},
			{Mod: "Mod4", Key: "4", Action: "change_desktop", Arg: 3},
			{Mod: "Mod4", Key: "5", Action: "change_desktop", Arg: 4},
			{Mod: "Mod4|Shift", Key: "1", Action: "client_to_desktop", Arg: 0},
			{Mod: "Mod4|Shift", Key: "2", Action: "client_to_desktop", Arg: 1},
			{Mod: "Mod4|Shift", Key: "3", Action: "client_to_desktop", Arg: 2},
			{Mod: "Mod4|Shift", Key: "4", Action: "client_to_desktop", Arg: 3},
			{Mod: "Mod4|Shift", Key: "5", Action: "client_to_desktop", Arg: 4},
			{Mod: "Mod4", Key: "period", Action: "rotate_monitor", Arg: 1},
			{Mod: "Mod4", Key: "comma", Action: "rotate_monitor", Arg: -1},
			{Mod: "Mod4", Key: "grave", Action: "last_monitor"},
			{Mod: "Mod4|Control", Key: "j", Action: "rotate", Arg: 1},
			{Mod: "Mod4|Control", Key: "k", Action: "rotate", Arg: -1},
			{Mod: "Mod4|Shift", Key: "period", Action: "client_to_monitor", Arg: 1},
			{Mod: "Mod4|Shift", Key: "comma", Action: "client_to_monitor", Arg: 0},
		},
		Buttons: []ButtonBinding{
			{Mod: "Mod4", Button: 1, Action: "mousemotion", Arg: 0}, // MOVE
			{Mod: "Mod4", Button: 3, Action: "mousemotion", Arg: 1}, // RESIZE
		},
		Rules: []Rule{
			{Class: "Gimp", Desktop: -1, Follow: false, Floating: true},
		},
	}
}

// Load reads path (a TOML file) and merges its values onto the compiled-in
// default, then replaces the package-level Config. A missing file is not an
// error: the caller is expected to have written the default out first (see
// WriteDefaultIfMissing).
func Load(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	c := Default()
	v.SetDefault("mod", c.Mod)
	v.SetDefault("master_size", c.MasterSize)
	v.SetDefault("desktops", c.Desktops)
	v.SetDefault("show_panel", c.ShowPanel)
	v.SetDefault("top_panel", c.TopPanel)
	v.SetDefault("panel_height", c.PanelHeight)
	v.SetDefault("border_width", c.BorderWidth)
	v.SetDefault("focus_color", c.Focus)
	v.SetDefault("unfocus_color", c.Unfocus)
	v.SetDefault("min_window_size", c.MinWindowSize)
	v.SetDefault("follow_mouse", c.FollowMouse)
	v.SetDefault("follow_monitor", c.FollowMonitor)
	v.SetDefault("follow_window", c.FollowWindow)
	v.SetDefault("click_to_focus", c.ClickToFocus)
	v.SetDefault("attach_aside", c.AttachAside)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			log.Info("No config file found, using compiled-in defaults [", path, "]")
			Config = c
			return nil
		}
		return err
	}

	c.Mod = v.GetString("mod")
	c.MasterSize = v.GetFloat64("master_size")
	c.Desktops = v.GetInt("desktops")
	c.ShowPanel = v.GetBool("show_panel")
	c.TopPanel = v.GetBool("top_panel")
	c.PanelHeight = v.GetInt("panel_height")
	c.BorderWidth = v.GetInt("border_width")
	c.Focus = v.GetString("focus_color")
	c.Unfocus = v.GetString("unfocus_color")
	c.MinWindowSize = v.GetInt("min_window_size")
	c.FollowMouse = v.GetBool("follow_mouse")
	c.FollowMonitor = v.GetBool("follow_monitor")
	c.FollowWindow = v.GetBool("follow_window")
	c.ClickToFocus = v.GetBool("click_to_focus")
	c.AttachAside = v.GetBool("attach_aside")

	log.WithFields(log.Fields{
		"path":     path,
		"desktops": c.Desktops,
	}).Info("Loaded configuration")

	Config = c
	return nil
}

// WriteDefaultIfMissing ensures a config file exists at path, copying a
// system-wide template (if one is installed) or writing the compiled-in
// TOML rendering otherwise. Mirrors the teacher's CopyFileContents bootstrap
// helper (store/fileutil.go), pointed at config provisioning instead of
// client-cache provisioning.
func WriteDefaultIfMissing(path, systemTemplate string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	if systemTemplate != "" {
		if _, err := os.Stat(systemTemplate); err == nil {
			return CopyFileContents(systemTemplate, path, 0644)
		}
	}

	return os.WriteFile(path, []byte(defaultTOML), 0644)
}

const defaultTOML = `# stackwm configuration
mod = "Mod4"
master_size = 0.52
desktops = 5
show_panel = true
top_panel = true
panel_height = 20
border_width = 2
focus_color = "#5294e2"
unfocus_color = "#404552"
min_window_size = 50
follow_mouse = false
follow_monitor = false
follow_window = false
click_to_focus = true
attach_aside = true
`
