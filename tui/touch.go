// ABOUTME: Pointer and touch input resolution against the screen layout
// ABOUTME: Maps clicks and recognized gestures to editor commands

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"ad-review/gesture"
)

// TouchMode selects what a single tap on the transcript does
type TouchMode int

const (
	ModeSeek TouchMode = iota
	ModeSetStart
	ModeSetEnd
)

func (m TouchMode) String() string {
	switch m {
	case ModeSeek:
		return "seek"
	case ModeSetStart:
		return "set start"
	case ModeSetEnd:
		return "set end"
	}
	return "unknown"
}

func (m TouchMode) next() TouchMode {
	switch m {
	case ModeSeek:
		return ModeSetStart
	case ModeSetStart:
		return ModeSetEnd
	}
	return ModeSeek
}

// layout records where each interactive region landed in the last
// render, so pointer coordinates can be resolved back to content.
type layout struct {
	width, height int

	listWidth int
	listTop   int
	listRows  int

	transcriptLeft int
	transcriptTop  int
	transcriptRows int

	progressRow int
	barLeft     int
	barWidth    int
}

// candidateAt resolves a click in the candidate list to a list row
func (l layout) candidateAt(x, y int) (int, bool) {
	if x >= l.listWidth || y < l.listTop || y >= l.listTop+l.listRows {
		return 0, false
	}
	return y - l.listTop, true
}

// transcriptRowAt resolves a click in the transcript panel to a
// viewport-relative row; the caller adds the scroll offset.
func (l layout) transcriptRowAt(x, y int) (int, bool) {
	if x < l.transcriptLeft || y < l.transcriptTop || y >= l.transcriptTop+l.transcriptRows {
		return 0, false
	}
	return y - l.transcriptTop, true
}

// onProgressBar reports whether a click lands on the playback bar.
// While a drag is in progress the target widens by one row each way so
// small vertical wobble does not drop the drag.
func (l layout) onProgressBar(x, y int, dragging bool) bool {
	if dragging {
		return y >= l.progressRow-1 && y <= l.progressRow+1
	}
	return y == l.progressRow && x >= l.barLeft && x < l.barLeft+l.barWidth
}

// seekTime converts a progress-bar column to a playback position
func (l layout) seekTime(x int, duration float64) float64 {
	if l.barWidth <= 1 || duration <= 0 {
		return 0
	}
	col := x - l.barLeft
	if col < 0 {
		col = 0
	}
	if col > l.barWidth-1 {
		col = l.barWidth - 1
	}
	return float64(col) / float64(l.barWidth-1) * duration
}

// pointerInput maps a plain mouse click on a transcript segment to a
// command. Modifier keys pick the bound-setting variants.
func pointerInput(msg tea.MouseMsg, segStart, segEnd float64) Input {
	switch {
	case msg.Shift:
		return Input{Cmd: CmdSetEndBound, Time: segEnd}
	case msg.Alt, msg.Ctrl:
		return Input{Cmd: CmdSetStartBound, Time: segStart}
	}
	return Input{Cmd: CmdSeekTo, Time: segStart}
}

// gestureInput maps a recognized gesture to a command. segStart and
// segEnd bound the transcript segment under the gesture's position;
// haveSeg is false when the gesture landed outside any segment.
func gestureInput(ev gesture.Event, mode TouchMode, segStart, segEnd float64, haveSeg bool, swipeEnabled bool) Input {
	switch ev.Kind {
	case gesture.Tap:
		if !haveSeg {
			return Input{}
		}
		switch mode {
		case ModeSetStart:
			return Input{Cmd: CmdSetStartBound, Time: segStart}
		case ModeSetEnd:
			return Input{Cmd: CmdSetEndBound, Time: segEnd}
		}
		return Input{Cmd: CmdSeekTo, Time: segStart}
	case gesture.DoubleTap:
		if !haveSeg {
			return Input{}
		}
		return Input{Cmd: CmdSetStartBound, Time: segStart}
	case gesture.LongPress:
		if !haveSeg {
			return Input{}
		}
		return Input{Cmd: CmdSetEndBound, Time: segEnd}
	case gesture.SwipeLeft:
		if swipeEnabled {
			return Input{Cmd: CmdNextCandidate}
		}
	case gesture.SwipeRight:
		if swipeEnabled {
			return Input{Cmd: CmdPrevCandidate}
		}
	}
	return Input{}
}
