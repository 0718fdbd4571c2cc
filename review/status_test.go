// ABOUTME: Tests for the save status finite-state machine
// ABOUTME: Exhaustively walks the legal and illegal transitions

package review

import (
	"errors"
	"testing"
)

func TestStatusMachineHappyPath(t *testing.T) {
	var m StatusMachine

	if m.State() != StatusIdle {
		t.Errorf("Expected initial state idle, got %s", m.State())
	}

	if !m.Begin() {
		t.Fatal("Begin from idle should succeed")
	}

	if !m.Saving() {
		t.Error("Expected saving after Begin")
	}

	if !m.Resolve(nil) {
		t.Fatal("Resolve while saving should succeed")
	}

	if m.State() != StatusSuccess {
		t.Errorf("Expected success, got %s", m.State())
	}

	if !m.Reset() {
		t.Fatal("Reset from success should succeed")
	}

	if m.State() != StatusIdle {
		t.Errorf("Expected idle after reset, got %s", m.State())
	}
}

func TestStatusMachineError(t *testing.T) {
	var m StatusMachine

	m.Begin()
	m.Resolve(errors.New("backend unavailable"))

	if m.State() != StatusError {
		t.Errorf("Expected error state, got %s", m.State())
	}

	// Error is recoverable: a new commit may begin without an explicit reset
	if !m.Begin() {
		t.Error("Begin from error should succeed")
	}
}

func TestStatusMachineGatesWhileSaving(t *testing.T) {
	var m StatusMachine

	m.Begin()

	if m.Begin() {
		t.Error("Begin while saving must be rejected")
	}

	if m.Reset() {
		t.Error("Reset while saving must be rejected")
	}

	if m.State() != StatusSaving {
		t.Errorf("Expected state to remain saving, got %s", m.State())
	}
}

func TestStatusMachineResolveRequiresSaving(t *testing.T) {
	var m StatusMachine

	if m.Resolve(nil) {
		t.Error("Resolve while idle must be rejected")
	}

	m.Begin()
	m.Resolve(nil)

	// A second, late resolution must not flip the state
	if m.Resolve(errors.New("late")) {
		t.Error("Resolve after terminal state must be rejected")
	}

	if m.State() != StatusSuccess {
		t.Errorf("Expected success preserved, got %s", m.State())
	}
}

func TestSaveStateString(t *testing.T) {
	cases := map[SaveState]string{
		StatusIdle:    "idle",
		StatusSaving:  "saving",
		StatusSuccess: "success",
		StatusError:   "error",
	}

	for state, want := range cases {
		if state.String() != want {
			t.Errorf("Expected %q, got %q", want, state.String())
		}
	}
}
