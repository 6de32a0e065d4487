package panel

import "time"

// ToastTTL is how long a toast stays up before it self-expires.
const ToastTTL = 3000 * time.Millisecond

type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
	ToastInfo
)

// Toast is one short-lived notification. The id is a millisecond timestamp;
// when two pushes land on the same clock tick a monotonic counter keeps ids
// unique anyway.
type Toast struct {
	ID      int64
	Message string
	Kind    ToastKind
}

// Toasts is an append-only ordered queue with timed eviction. The queue
// itself does no scheduling: the screen schedules an expiry for each pushed
// toast and routes it back through Dismiss, which is idempotent so a manual
// dismissal followed by the timer firing (or vice versa) is safe.
type Toasts struct {
	items  []Toast
	now    func() time.Time
	lastID int64
}

// NewToasts returns a queue using the wall clock. Tests may substitute the
// clock via NewToastsAt.
func NewToasts() *Toasts {
	return NewToastsAt(time.Now)
}

func NewToastsAt(now func() time.Time) *Toasts {
	return &Toasts{now: now}
}

// Push appends a toast and returns it so the caller can schedule its expiry.
func (t *Toasts) Push(message string, kind ToastKind) Toast {
	id := t.now().UnixMilli()
	if id <= t.lastID {
		id = t.lastID + 1
	}
	t.lastID = id
	toast := Toast{ID: id, Message: message, Kind: kind}
	t.items = append(t.items, toast)
	return toast
}

// Dismiss removes the toast with the given id. Removing an absent id is a
// no-op; reports whether anything was removed.
func (t *Toasts) Dismiss(id int64) bool {
	for i := range t.items {
		if t.items[i].ID == id {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns the live toasts, oldest first.
func (t *Toasts) Items() []Toast { return t.items }

func (t *Toasts) Len() int { return len(t.items) }

// Oldest returns the head of the queue, if any. The TUI uses it for
// keyboard-driven dismissal.
func (t *Toasts) Oldest() (Toast, bool) {
	if len(t.items) == 0 {
		return Toast{}, false
	}
	return t.items[0], true
}
