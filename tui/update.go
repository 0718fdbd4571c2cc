// ABOUTME: Event handling and state updates for the TUI
// ABOUTME: Implements the Bubble Tea Update() function and message handlers

package tui

import (
	"fmt"
	"math"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ad-review/config"
	"ad-review/gesture"
	"ad-review/journal"
	"ad-review/review"
	"ad-review/transcript"
)

// Update handles messages and updates the model
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.deps.Logger.Debugf("[PANIC] Update panic: %v", r)
			m.deps.Logger.Debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)

		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case playTickMsg:
		if m.player.Playing() {
			m.player.Advance(msg.at.Sub(m.lastTick).Seconds())
			m.lastTick = msg.at
		}

		return m, m.schedulePlayTick()

	case gestureTickMsg:
		ev := m.recognizer.Expire(time.Now())
		cmd := m.handleGestureEvent(ev)

		return m, tea.Batch(cmd, m.scheduleGestureTick())

	case saveResultMsg:
		return m.handleSaveResult(msg)

	case statusResetMsg:
		// A newer save owns the banner now
		if msg.epoch == m.ackEpoch {
			m.status.Reset()
		}

		return m, nil

	case fileChangedMsg:
		return m, tea.Batch(m.reloadEpisode(), waitForFileChange(m.watcher))

	case reloadedMsg:
		m.handleReload(msg)

		return m, nil
	}

	return m, nil
}

// handleResize recalculates the layout on terminal size changes
func (m *model) handleResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	viewportWidth := msg.Width - listPanelWidth - panelPadding
	if viewportWidth < minViewportWidth {
		viewportWidth = minViewportWidth
	}

	viewportHeight := msg.Height - totalUIChrome
	if viewportHeight < minViewportHeight {
		viewportHeight = minViewportHeight
	}

	m.viewport.Width = viewportWidth
	m.viewport.Height = viewportHeight

	barWidth := msg.Width - 18 // Leave room for the time label
	if barWidth < minViewportWidth {
		barWidth = minViewportWidth
	}
	m.prog.Width = barWidth

	m.lay = layout{
		width:          msg.Width,
		height:         msg.Height,
		listWidth:      listPanelWidth,
		listTop:        titleHeight,
		listRows:       m.session.Len(),
		transcriptLeft: listPanelWidth + panelPadding,
		transcriptTop:  titleHeight + headerHeight,
		transcriptRows: viewportHeight,
		progressRow:    msg.Height - statusBarHeight - helpHeight - progressHeight,
		barLeft:        1,
		barWidth:       barWidth,
	}

	m.updateViewportContent()
	m.scrollToSelection()
}

// handleKey routes keyboard input. While the notes field has focus all
// keys go to the text input except its blur keys.
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.notes.Focused() {
		switch msg.String() {
		case "enter":
			m.notes.Blur()

			return m, nil
		case "esc":
			m.notes.SetValue("")
			m.notes.Blur()

			return m, nil
		case "ctrl+c":
			return m.handleQuit()
		}

		var cmd tea.Cmd
		m.notes, cmd = m.notes.Update(msg)

		return m, cmd
	}

	in := dispatchKey(m.keys, msg, false)

	return m.apply(in)
}

// handleMouse routes pointer input by screen region. Unmodified
// presses over the transcript feed the gesture recognizer when touch
// is enabled; modified clicks keep plain pointer semantics.
func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Wheel scrolls the transcript
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)

		return m, cmd
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}

		// Progress bar: click or start of a drag
		if m.lay.onProgressBar(msg.X, msg.Y, false) {
			m.barDragging = true

			return m.apply(Input{Cmd: CmdSeekTo, Time: m.barTime(msg.X)})
		}

		// Candidate list: click selects
		if row, ok := m.lay.candidateAt(msg.X, msg.Y); ok {
			return m.apply(Input{Cmd: CmdSelectCandidate, Index: row})
		}

		if m.touchRouted(msg) {
			ev := m.recognizer.Press(m.pixelX(msg.X), m.pixelY(msg.Y), time.Now())
			cmd := m.handleGestureEvent(ev)

			return m, tea.Batch(cmd, m.scheduleGestureTick())
		}

		if seg, ok := m.segmentAt(msg.X, msg.Y); ok {
			return m.apply(pointerInput(msg, seg.Start, seg.End))
		}

		return m, nil

	case tea.MouseActionMotion:
		if m.barDragging {
			if m.lay.onProgressBar(msg.X, msg.Y, true) {
				return m.apply(Input{Cmd: CmdSeekTo, Time: m.barTime(msg.X)})
			}

			return m, nil
		}

		m.recognizer.Move(m.pixelX(msg.X), m.pixelY(msg.Y))

		return m, nil

	case tea.MouseActionRelease:
		if m.barDragging {
			m.barDragging = false

			return m, nil
		}

		ev := m.recognizer.Release(m.pixelX(msg.X), m.pixelY(msg.Y), time.Now())
		cmd := m.handleGestureEvent(ev)

		return m, tea.Batch(cmd, m.scheduleGestureTick())
	}

	return m, nil
}

// touchRouted reports whether this press belongs to the gesture
// recognizer rather than plain pointer handling
func (m *model) touchRouted(msg tea.MouseMsg) bool {
	if !m.caps.SupportsTouch {
		return false
	}
	if msg.Shift || msg.Alt || msg.Ctrl {
		return false
	}
	_, ok := m.lay.transcriptRowAt(msg.X, msg.Y)

	return ok
}

// handleGestureEvent resolves a recognized gesture against the
// transcript and applies the resulting command
func (m *model) handleGestureEvent(ev gesture.Event) tea.Cmd {
	if ev.Kind == gesture.None {
		return nil
	}

	cellX := int(ev.X / m.cfg.PixelsPerCell)
	cellY := int(ev.Y / m.cfg.PixelsPerCell)

	seg, ok := m.segmentAt(cellX, cellY)
	in := gestureInput(ev, m.mode, seg.Start, seg.End, ok, m.caps.SupportsSwipe)

	m.deps.Logger.Debugf("[TUI] Gesture %s at (%d,%d) -> command %d", ev.Kind, cellX, cellY, in.Cmd)

	cmd := m.applyInPlace(in)

	return cmd
}

// segmentAt resolves screen coordinates to the transcript segment
// rendered at that row
func (m *model) segmentAt(x, y int) (transcript.Segment, bool) {
	row, ok := m.lay.transcriptRowAt(x, y)
	if !ok {
		return transcript.Segment{}, false
	}

	idx := m.viewport.YOffset + row
	if idx < 0 || idx >= len(m.episode.Transcript) {
		return transcript.Segment{}, false
	}

	return m.episode.Transcript[idx], true
}

// pixelX converts a terminal column to recognizer pixel space
func (m *model) pixelX(x int) float64 {
	return float64(x) * m.cfg.PixelsPerCell
}

func (m *model) pixelY(y int) float64 {
	return float64(y) * m.cfg.PixelsPerCell
}

// barTime converts a progress-bar column to a playback position.
// The player reports 0 for unknown-length media, so a bar click then has
// no position to map to and keeps the playhead where it is.
func (m *model) barTime(x int) float64 {
	duration := m.player.Duration()
	if duration <= 0 || math.IsInf(duration, 1) {
		return m.player.Position()
	}

	return m.lay.seekTime(x, duration)
}

// apply runs a command through the saving gate in the value-receiver
// Update flow
func (m model) apply(in Input) (tea.Model, tea.Cmd) {
	if in.Cmd == CmdQuit {
		return m.handleQuit()
	}

	cmd := m.applyInPlace(in)

	return m, cmd
}

// applyInPlace executes a dispatched command against the session and
// player. Everything except navigation and seeking is dropped while a
// save is in flight.
func (m *model) applyInPlace(in Input) tea.Cmd {
	if in.Cmd == CmdNone {
		return nil
	}

	if m.status.Saving() && !navigable(in.Cmd) {
		m.deps.Logger.Debugf("[TUI] Dropped command %d while saving", in.Cmd)

		return nil
	}

	switch in.Cmd {
	case CmdPlayPause:
		bounds := m.session.Bounds()
		m.player.Toggle(bounds.Start, bounds.End)
		m.lastTick = time.Now()

		return m.schedulePlayTick()

	case CmdNudgeStartForward:
		m.session.NudgeStart(m.cfg.NudgeStep)
		m.updateViewportContent()

	case CmdNudgeStartBackward:
		m.session.NudgeStart(-m.cfg.NudgeStep)
		m.updateViewportContent()

	case CmdNudgeEndForward:
		m.session.NudgeEnd(m.cfg.NudgeStep)
		m.updateViewportContent()

	case CmdNudgeEndBackward:
		m.session.NudgeEnd(-m.cfg.NudgeStep)
		m.updateViewportContent()

	case CmdSetStartBound:
		m.session.SetStart(in.Time)
		m.updateViewportContent()

	case CmdSetEndBound:
		m.session.SetEnd(in.Time)
		m.updateViewportContent()

	case CmdReset:
		m.session.ResetBounds()
		m.updateViewportContent()

	case CmdSave:
		return m.commit(review.CommitSave)

	case CmdConfirm:
		return m.commit(review.CommitConfirm)

	case CmdReject:
		return m.commit(review.CommitReject)

	case CmdSelectCandidate:
		if m.session.Select(in.Index) {
			m.onSelectionChanged()
		}

	case CmdNextCandidate:
		if m.session.Next() {
			m.onSelectionChanged()
		}

	case CmdPrevCandidate:
		if m.session.Previous() {
			m.onSelectionChanged()
		}

	case CmdSeekTo:
		// In-editor seeks do not arm the preserve flag; the next play
		// still snaps to the working start when outside the bounds
		m.player.Seek(in.Time)

	case CmdEditNotes:
		m.notes.Focus()

		return textinput.Blink

	case CmdCycleTouchMode:
		m.mode = m.mode.next()
		m.setStatusMsg(fmt.Sprintf("Touch mode: %s", m.mode))
	}

	return nil
}

// onSelectionChanged resets per-candidate state after the selection moves
func (m *model) onSelectionChanged() {
	m.notes.SetValue("")
	m.updateViewportContent()
	m.scrollToSelection()
}

// handleSaveResult finishes the save lifecycle: journal the outcome,
// advance on success, leave everything in place on error.
func (m model) handleSaveResult(msg saveResultMsg) (tea.Model, tea.Cmd) {
	m.status.Resolve(msg.err)
	m.ackEpoch++

	if msg.err != nil {
		m.deps.Logger.Debugf("[TUI] Save failed: %v", msg.err)

		return m, m.scheduleAckReset()
	}

	m.reviewed[journal.BoundsKey(msg.corr.Original.Start, msg.corr.Original.End)] = true
	m.notes.SetValue("")

	// Auto-advance to the next candidate; the last save leaves the
	// selection where it is.
	if m.session.Next() {
		m.updateViewportContent()
		m.scrollToSelection()
	}

	return m, m.scheduleAckReset()
}

// handleReload swaps in a re-read episode file, keeping the current
// selection index when it still exists
func (m *model) handleReload(msg reloadedMsg) {
	if msg.err != nil {
		m.deps.Logger.Debugf("[TUI] Reload failed: %v", msg.err)
		m.setStatusMsg("Review file changed but could not be reloaded")

		return
	}

	kept := m.session.Index()

	m.episode = msg.episode
	m.session = review.NewSession(msg.episode.Candidates, msg.episode.Duration, review.SessionOptions{
		MinAdLength: m.cfg.MinAdLength,
		JumpSlack:   m.cfg.JumpSlack,
	})
	m.session.Select(kept)

	m.lay.listRows = m.session.Len()
	m.setStatusMsg(fmt.Sprintf("Reloaded %d candidates", m.session.Len()))
	m.updateViewportContent()
	m.scrollToSelection()
}

// handleQuit saves config and exits
func (m model) handleQuit() (tea.Model, tea.Cmd) {
	m.quitting = true

	if err := config.SaveConfig(m.deps.ConfigPath, m.deps.SharedConfig.Get()); err != nil {
		m.deps.Logger.Debugf("[TUI] Failed to save config on quit: %v", err)
		// Continue anyway - don't block quit on config save failure
	}

	return m, tea.Quit
}
