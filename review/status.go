// ABOUTME: Save status finite-state machine for the correction submit lifecycle
// ABOUTME: One machine per review session; gates input while a save is in flight

package review

// SaveState is the state of the correction submission lifecycle
type SaveState int

// Save states: idle -> saving -> {success, error} -> idle
const (
	StatusIdle SaveState = iota
	StatusSaving
	StatusSuccess
	StatusError
)

// String returns a human-readable state name
func (s SaveState) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSaving:
		return "saving"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// StatusMachine owns the save status transitions for one review session.
// It is not safe for concurrent use; all transitions happen on the UI loop.
type StatusMachine struct {
	state SaveState
}

// State returns the current state
func (m *StatusMachine) State() SaveState {
	return m.state
}

// Saving reports whether a save is currently in flight
func (m *StatusMachine) Saving() bool {
	return m.state == StatusSaving
}

// Begin moves to saving. Returns false (no transition) when a save is
// already in flight; a pending success/error acknowledgment is overridden.
func (m *StatusMachine) Begin() bool {
	if m.state == StatusSaving {
		return false
	}

	m.state = StatusSaving

	return true
}

// Resolve records the submission result. Only valid while saving.
func (m *StatusMachine) Resolve(err error) bool {
	if m.state != StatusSaving {
		return false
	}

	if err != nil {
		m.state = StatusError
	} else {
		m.state = StatusSuccess
	}

	return true
}

// Reset acknowledges a terminal state and returns to idle.
// Resetting while idle is a no-op; resetting while saving is rejected.
func (m *StatusMachine) Reset() bool {
	if m.state == StatusSaving {
		return false
	}

	m.state = StatusIdle

	return true
}
