package panel

// ConfirmGate interposes a yes/no prompt before destructive operations. Two
// states: closed (no target) and open (a record pending deletion). At most
// one pending confirmation at a time; a second Request while open replaces
// the target (last write wins).
type ConfirmGate[R Record] struct {
	target *R
}

// Open reports whether a confirmation is pending.
func (g *ConfirmGate[R]) Open() bool { return g.target != nil }

// Target returns the pending record, or nil when closed.
func (g *ConfirmGate[R]) Target() *R { return g.target }

// Request opens the gate for r.
func (g *ConfirmGate[R]) Request(r R) {
	copy := r
	g.target = &copy
}

// Cancel closes the gate with no side effect.
func (g *ConfirmGate[R]) Cancel() { g.target = nil }

// Take returns the pending record and closes the gate. The screen performs
// the actual removal. False when the gate was not open.
func (g *ConfirmGate[R]) Take() (R, bool) {
	if g.target == nil {
		var zero R
		return zero, false
	}
	r := *g.target
	g.target = nil
	return r, true
}
