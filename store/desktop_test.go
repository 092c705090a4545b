package store

import (
	"testing"

	"github.com/gowm/stackwm/xserver"
)

func windows(d *Desktop) []xserver.Window {
	var out []xserver.Window
	for c := d.Head; c != nil; c = c.next {
		out = append(out, c.Win)
	}
	return out
}

func sameOrder(a, b []xserver.Window) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDesktopAddOrdering(t *testing.T) {
	var d Desktop
	d.Add(1, false) // head
	d.Add(2, false) // prepend -> new head
	d.Add(3, true)  // append -> tail

	got := windows(&d)
	want := []xserver.Window{2, 1, 3}
	if !sameOrder(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDesktopPrevWraps(t *testing.T) {
	var d Desktop
	a := d.Add(1, true)
	b := d.Add(2, true)
	c := d.Add(3, true)

	if d.Prev(a) != c {
		t.Error("prev(head) should be tail")
	}
	if d.Prev(b) != a {
		t.Error("prev(middle) should be its predecessor")
	}
}

func TestDesktopPrevSingleton(t *testing.T) {
	var d Desktop
	a := d.Add(1, true)
	if d.Prev(a) != nil {
		t.Error("prev on a single-client list should be none")
	}
}

// TestMoveDownThenMoveUpRestoresOrder is spec invariant 9: on a list of
// length >= 2 with current not alone, move_down(); move_up() restores order.
func TestMoveDownThenMoveUpRestoresOrder(t *testing.T) {
	var d Desktop
	d.Add(1, true)
	b := d.Add(2, true)
	d.Add(3, true)

	before := windows(&d)

	d.MoveDown(b)
	d.MoveUp(b)

	after := windows(&d)
	if !sameOrder(before, after) {
		t.Fatalf("order not restored: %v -> %v", before, after)
	}
}

func TestDesktopRemoveUnlinksAndClearsFocus(t *testing.T) {
	var d Desktop
	a := d.Add(1, true)
	b := d.Add(2, true)
	d.Current = b
	d.PrevFocus = a

	d.Remove(a)

	if d.Head != b {
		t.Errorf("head should be b after removing a, got %v", d.Head)
	}
	if d.PrevFocus != nil {
		t.Error("PrevFocus should be cleared when its client is removed")
	}
	if d.Current != b {
		t.Error("Current should be unaffected by removing a different client")
	}
}

func TestDesktopAttachPreservesIdentity(t *testing.T) {
	var src, dst Desktop
	c := src.Add(42, true)
	c.IsFloating = true

	src.Remove(c)
	dst.Attach(c, true)

	if dst.Head != c {
		t.Fatal("attach should place the same client pointer at head of an empty desktop")
	}
	if !dst.Head.IsFloating {
		t.Error("attach should preserve client flags across desktops")
	}
}

func TestTileableSkipsISFFT(t *testing.T) {
	var d Desktop
	d.Add(1, true)
	floating := d.Add(2, true)
	floating.IsFloating = true
	d.Add(3, true)

	first, n := d.Tileable()
	if n != 2 {
		t.Fatalf("expected 2 tileable clients, got %d", n)
	}
	if first == nil || first.Win != 1 {
		t.Fatalf("expected first tileable client to be window 1, got %v", first)
	}
}
