// ABOUTME: Unit tests for keyboard dispatch and the saving gate
// ABOUTME: Verifies every shortcut maps to its command and focus suppression

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyRunes(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func TestDispatchKeyMappings(t *testing.T) {
	keys := defaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want Command
	}{
		{"space toggles playback", tea.KeyMsg{Type: tea.KeySpace}, CmdPlayPause},
		{"j nudges end backward", keyRunes("j"), CmdNudgeEndBackward},
		{"k nudges end forward", keyRunes("k"), CmdNudgeEndForward},
		{"shift j nudges start backward", keyRunes("J"), CmdNudgeStartBackward},
		{"shift k nudges start forward", keyRunes("K"), CmdNudgeStartForward},
		{"enter saves", tea.KeyMsg{Type: tea.KeyEnter}, CmdSave},
		{"escape resets", tea.KeyMsg{Type: tea.KeyEscape}, CmdReset},
		{"c confirms", keyRunes("c"), CmdConfirm},
		{"x rejects", keyRunes("x"), CmdReject},
		{"down selects next", tea.KeyMsg{Type: tea.KeyDown}, CmdNextCandidate},
		{"up selects previous", tea.KeyMsg{Type: tea.KeyUp}, CmdPrevCandidate},
		{"n edits notes", keyRunes("n"), CmdEditNotes},
		{"m cycles touch mode", keyRunes("m"), CmdCycleTouchMode},
		{"q quits", keyRunes("q"), CmdQuit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dispatchKey(keys, tt.msg, false)
			if got.Cmd != tt.want {
				t.Errorf("Expected command %d, got %d", tt.want, got.Cmd)
			}
		})
	}
}

func TestDispatchKeyIgnoresModifiedKeys(t *testing.T) {
	keys := defaultKeyMap()

	// Ctrl-modified editing keys must not trigger edits
	got := dispatchKey(keys, tea.KeyMsg{Type: tea.KeyCtrlJ}, false)
	if got.Cmd != CmdNone {
		t.Errorf("Expected ctrl+j to dispatch nothing, got command %d", got.Cmd)
	}

	got = dispatchKey(keys, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j"), Alt: true}, false)
	if got.Cmd != CmdNone {
		t.Errorf("Expected alt+j to dispatch nothing, got command %d", got.Cmd)
	}
}

func TestDispatchKeySuppressedWhileNotesFocused(t *testing.T) {
	keys := defaultKeyMap()

	for _, msg := range []tea.KeyMsg{
		keyRunes("j"),
		keyRunes("x"),
		{Type: tea.KeyEnter},
		keyRunes("q"),
	} {
		got := dispatchKey(keys, msg, true)
		if got.Cmd != CmdNone {
			t.Errorf("Expected %q suppressed while notes focused, got command %d", msg.String(), got.Cmd)
		}
	}

	// Ctrl+C must still quit
	got := dispatchKey(keys, tea.KeyMsg{Type: tea.KeyCtrlC}, true)
	if got.Cmd != CmdQuit {
		t.Errorf("Expected ctrl+c to quit while notes focused, got command %d", got.Cmd)
	}
}

func TestNavigableCommands(t *testing.T) {
	allowed := []Command{CmdSelectCandidate, CmdNextCandidate, CmdPrevCandidate, CmdSeekTo, CmdQuit}
	for _, c := range allowed {
		if !navigable(c) {
			t.Errorf("Expected command %d to stay enabled while saving", c)
		}
	}

	blocked := []Command{
		CmdPlayPause, CmdNudgeEndForward, CmdNudgeEndBackward,
		CmdNudgeStartForward, CmdNudgeStartBackward,
		CmdSave, CmdReset, CmdConfirm, CmdReject,
		CmdSetStartBound, CmdSetEndBound, CmdEditNotes, CmdCycleTouchMode,
	}
	for _, c := range blocked {
		if navigable(c) {
			t.Errorf("Expected command %d to be blocked while saving", c)
		}
	}
}
