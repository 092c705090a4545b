package store

import "github.com/gowm/stackwm/xserver"

// Client is the manager's record for one managed top-level window. It is
// linked into exactly one Desktop's list at any time; next/prev are that
// list's intrusive pointers and are only ever touched by Desktop's methods.
type Client struct {
	Win     xserver.Window
	Monitor int

	IsUrgent     bool
	IsTransient  bool
	IsFullscreen bool
	IsFloating   bool

	next, prev *Client
}

// ISFFT reports whether c is excluded from tiling: fullscreen, floating or
// transient. Layout engines skip every client for which this is true.
func (c *Client) ISFFT() bool {
	return c.IsFullscreen || c.IsFloating || c.IsTransient
}
