package store

import (
	"github.com/gowm/stackwm/config"
	"github.com/gowm/stackwm/xserver"
)

// Desktop is the saved state of one virtual workspace on one monitor: its
// client list plus the layout parameters that survive a desktop switch.
type Desktop struct {
	Mode       config.Mode
	MasterSize float64
	Growth     int
	ShowPanel  bool

	Head    *Client
	tail    *Client
	Current *Client

	// PrevFocus is the client focused immediately before Current; cycling
	// focus back onto it is what "focus back" means in updateCurrent.
	PrevFocus *Client
}

// Add allocates a client for win and links it at the head of the list, or
// at the tail when aside is true (config.Conf.AttachAside).
func (d *Desktop) Add(win xserver.Window, aside bool) *Client {
	c := &Client{Win: win}
	d.link(c, aside)
	return c
}

// Attach links an already-allocated, currently-detached client (one just
// returned by Remove) onto this desktop. Used to carry a client's identity
// and flags across a desktop or monitor boundary (client_to_desktop,
// client_to_monitor) instead of reallocating and copying fields by hand.
func (d *Desktop) Attach(c *Client, aside bool) {
	d.link(c, aside)
}

func (d *Desktop) link(c *Client, aside bool) {
	switch {
	case d.Head == nil:
		d.Head, d.tail = c, c
	case aside:
		c.prev = d.tail
		d.tail.next = c
		d.tail = c
	default:
		c.next = d.Head
		d.Head.prev = c
		d.Head = c
	}
}

// Remove unlinks c from the list. The caller is responsible for updating
// Current/PrevFocus elsewhere (focus reassignment) beyond the bookkeeping
// done here to keep both fields from dangling.
func (d *Desktop) Remove(c *Client) {
	if c.prev != nil {
		c.prev.next = c.next
	} else {
		d.Head = c.next
	}
	if c.next != nil {
		c.next.prev = c.prev
	} else {
		d.tail = c.prev
	}
	c.next, c.prev = nil, nil

	if d.Current == c {
		d.Current = nil
	}
	if d.PrevFocus == c {
		d.PrevFocus = nil
	}
}

// Prev returns the node preceding c in list order. prev(head) is the tail
// (focus cycling treats the list as a ring); a list of zero or one clients
// has no predecessor.
func (d *Desktop) Prev(c *Client) *Client {
	if d.Head == nil || d.Head == d.tail {
		return nil
	}
	if c == d.Head {
		return d.tail
	}
	for p := d.Head; p != nil; p = p.next {
		if p.next == c {
			return p
		}
	}
	return nil
}

// Next returns the node following c, wrapping to Head past the tail.
func (d *Desktop) Next(c *Client) *Client {
	if c.next != nil {
		return c.next
	}
	return d.Head
}

// Swap exchanges the list positions of a and b, handling both the adjacent
// and non-adjacent cases and keeping Head/tail consistent.
func (d *Desktop) Swap(a, b *Client) {
	if a == b {
		return
	}
	if a.next == b {
		d.swapAdjacent(a, b)
		return
	}
	if b.next == a {
		d.swapAdjacent(b, a)
		return
	}

	ap, an := a.prev, a.next
	bp, bn := b.prev, b.next
	d.relink(a, b, ap, an)
	d.relink(b, a, bp, bn)
}

// swapAdjacent exchanges x and y where x immediately precedes y.
func (d *Desktop) swapAdjacent(x, y *Client) {
	p, n := x.prev, y.next
	if p != nil {
		p.next = y
	} else {
		d.Head = y
	}
	y.prev = p
	y.next = x
	x.prev = y
	x.next = n
	if n != nil {
		n.prev = x
	} else {
		d.tail = x
	}
}

// relink drops node into the slot bounded by prev/next.
func (d *Desktop) relink(old, node, prev, next *Client) {
	_ = old
	if prev != nil {
		prev.next = node
	} else {
		d.Head = node
	}
	if next != nil {
		next.prev = node
	} else {
		d.tail = node
	}
	node.prev, node.next = prev, next
}

// MoveUp swaps c with its list predecessor, wrapping c==Head to swap with
// the tail. Reports false on a single-client list, where there is no
// meaningful move (spec.md §4.4 "move_up").
func (d *Desktop) MoveUp(c *Client) bool {
	p := d.Prev(c)
	if p == nil {
		return false
	}
	d.Swap(p, c)
	return true
}

// MoveDown swaps c with its list successor, wrapping c==tail to swap with
// Head (spec.md §4.4 "move_down").
func (d *Desktop) MoveDown(c *Client) bool {
	n := d.Next(c)
	if n == nil || n == c {
		return false
	}
	d.Swap(c, n)
	return true
}

// Len counts the clients currently linked into the desktop.
func (d *Desktop) Len() int {
	n := 0
	for c := d.Head; c != nil; c = c.next {
		n++
	}
	return n
}

// Tileable counts the clients for which ISFFT is false, plus a pointer to
// the first one — layout engines need exactly these two numbers.
func (d *Desktop) Tileable() (first *Client, n int) {
	for c := d.Head; c != nil; c = c.next {
		if c.ISFFT() {
			continue
		}
		if first == nil {
			first = c
		}
		n++
	}
	return first, n
}
