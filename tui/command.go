// ABOUTME: Editor command set and the pure input dispatchers
// ABOUTME: Translates key, pointer, and gesture input into commands

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Command identifies an editor operation. Every input modality
// (keyboard, pointer, touch gesture) resolves to one of these before
// anything mutates state.
type Command int

const (
	CmdNone Command = iota
	CmdPlayPause
	CmdNudgeEndForward
	CmdNudgeEndBackward
	CmdNudgeStartForward
	CmdNudgeStartBackward
	CmdSave
	CmdReset
	CmdConfirm
	CmdReject
	CmdSelectCandidate
	CmdNextCandidate
	CmdPrevCandidate
	CmdSeekTo
	CmdSetStartBound
	CmdSetEndBound
	CmdEditNotes
	CmdCycleTouchMode
	CmdQuit
)

// Input pairs a command with its argument, when it takes one.
// Index is used by CmdSelectCandidate, Time by the seek and
// bound-setting commands.
type Input struct {
	Cmd   Command
	Index int
	Time  float64
}

// keyMap defines all keyboard shortcuts for the editor
type keyMap struct {
	PlayPause      key.Binding
	NudgeEndFwd    key.Binding
	NudgeEndBack   key.Binding
	NudgeStartFwd  key.Binding
	NudgeStartBack key.Binding
	Save           key.Binding
	Reset          key.Binding
	Confirm        key.Binding
	Reject         key.Binding
	Next           key.Binding
	Prev           key.Binding
	Notes          key.Binding
	TouchMode      key.Binding
	Quit           key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		NudgeEndFwd: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "end later"),
		),
		NudgeEndBack: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "end earlier"),
		),
		NudgeStartFwd: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "start later"),
		),
		NudgeStartBack: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "start earlier"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Reset: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "reset"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "confirm"),
		),
		Reject: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reject"),
		),
		Next: key.NewBinding(
			key.WithKeys("down", "tab"),
			key.WithHelp("↓", "next ad"),
		),
		Prev: key.NewBinding(
			key.WithKeys("up", "shift+tab"),
			key.WithHelp("↑", "prev ad"),
		),
		Notes: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "notes"),
		),
		TouchMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "touch mode"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// dispatchKey maps a keypress to an editor command. While the notes
// field has focus every editor shortcut is suppressed so typing cannot
// trigger boundary edits; quit still works via ctrl+c.
func dispatchKey(keys keyMap, msg tea.KeyMsg, notesFocused bool) Input {
	if notesFocused {
		if msg.String() == "ctrl+c" {
			return Input{Cmd: CmdQuit}
		}
		return Input{}
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return Input{Cmd: CmdQuit}
	case key.Matches(msg, keys.PlayPause):
		return Input{Cmd: CmdPlayPause}
	case key.Matches(msg, keys.NudgeStartFwd):
		return Input{Cmd: CmdNudgeStartForward}
	case key.Matches(msg, keys.NudgeStartBack):
		return Input{Cmd: CmdNudgeStartBackward}
	case key.Matches(msg, keys.NudgeEndFwd):
		return Input{Cmd: CmdNudgeEndForward}
	case key.Matches(msg, keys.NudgeEndBack):
		return Input{Cmd: CmdNudgeEndBackward}
	case key.Matches(msg, keys.Save):
		return Input{Cmd: CmdSave}
	case key.Matches(msg, keys.Reset):
		return Input{Cmd: CmdReset}
	case key.Matches(msg, keys.Confirm):
		return Input{Cmd: CmdConfirm}
	case key.Matches(msg, keys.Reject):
		return Input{Cmd: CmdReject}
	case key.Matches(msg, keys.Next):
		return Input{Cmd: CmdNextCandidate}
	case key.Matches(msg, keys.Prev):
		return Input{Cmd: CmdPrevCandidate}
	case key.Matches(msg, keys.Notes):
		return Input{Cmd: CmdEditNotes}
	case key.Matches(msg, keys.TouchMode):
		return Input{Cmd: CmdCycleTouchMode}
	}
	return Input{}
}

// navigable reports whether a command stays enabled while a save is in
// flight. Moving around and seeking never corrupt the pending
// correction; everything else waits for the save to resolve.
func navigable(c Command) bool {
	switch c {
	case CmdSelectCandidate, CmdNextCandidate, CmdPrevCandidate, CmdSeekTo, CmdQuit:
		return true
	}
	return false
}
