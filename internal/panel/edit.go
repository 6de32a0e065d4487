package panel

// EditSession tracks the single record allowed to be in edit mode on a
// screen. Two states: idle (no working copy) and editing. The working copy
// diverges from the store until the screen commits it via Store.Replace or
// discards it.
type EditSession[R Record] struct {
	working *R
}

// Active reports whether an edit is in progress.
func (e *EditSession[R]) Active() bool { return e.working != nil }

// Start begins editing a copy of r. Starting a new edit while another is
// active silently drops the previous working copy; this lossy behavior is
// intentional (last write wins, no guard).
func (e *EditSession[R]) Start(r R) {
	copy := r
	e.working = &copy
}

// Working returns the mutable working copy, or nil when idle.
func (e *EditSession[R]) Working() *R { return e.working }

// Editing reports whether the record with the given id is the one being
// edited.
func (e *EditSession[R]) Editing(id int) bool {
	return e.working != nil && (*e.working).Key() == id
}

// Finish returns the session to idle after a successful commit. The screen
// must only call this once validation and Store.Replace succeeded; on
// validation failure the session stays in editing with the invalid copy
// intact so the user can correct it.
func (e *EditSession[R]) Finish() { e.working = nil }

// Discard drops the working copy unconditionally and returns to idle.
func (e *EditSession[R]) Discard() { e.working = nil }
