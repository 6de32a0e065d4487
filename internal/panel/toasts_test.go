package panel

import (
	"testing"
	"time"
)

func TestToastsPushAssignsUniqueIDsWithinSameTick(t *testing.T) {
	// Frozen clock: every push lands on the same millisecond.
	fixed := time.UnixMilli(1700000000000)
	q := NewToastsAt(func() time.Time { return fixed })

	a := q.Push("a", ToastSuccess)
	b := q.Push("b", ToastError)
	c := q.Push("c", ToastInfo)

	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Fatalf("ids must be unique: %d %d %d", a.ID, b.ID, c.ID)
	}
	if !(a.ID < b.ID && b.ID < c.ID) {
		t.Fatalf("ids must be monotonic: %d %d %d", a.ID, b.ID, c.ID)
	}
}

func TestToastsOrderOldestFirst(t *testing.T) {
	q := NewToasts()
	q.Push("first", ToastInfo)
	q.Push("second", ToastInfo)

	items := q.Items()
	if len(items) != 2 || items[0].Message != "first" || items[1].Message != "second" {
		t.Fatalf("insertion order broken: %+v", items)
	}
	if head, ok := q.Oldest(); !ok || head.Message != "first" {
		t.Fatalf("oldest = %+v %v", head, ok)
	}
}

func TestToastsDismissIdempotent(t *testing.T) {
	q := NewToasts()
	toast := q.Push("bye", ToastSuccess)

	if !q.Dismiss(toast.ID) {
		t.Fatalf("first dismiss must remove the toast")
	}
	// The scheduled expiry may still fire after a manual dismissal; it must
	// be a no-op.
	if q.Dismiss(toast.ID) {
		t.Fatalf("second dismiss must be a no-op")
	}
	if q.Len() != 0 {
		t.Fatalf("queue not empty: %d", q.Len())
	}
}
