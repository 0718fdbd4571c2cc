// ABOUTME: Rendering and display functions for the TUI
// ABOUTME: Implements the Bubble Tea View() function and all render helpers

package tui

import (
	"fmt"
	"math"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/lipgloss"

	"ad-review/journal"
	"ad-review/review"
	"ad-review/transcript"
)

// View renders the TUI
func (m model) View() string {
	defer func() {
		if r := recover(); r != nil {
			m.deps.Logger.Debugf("[PANIC] View panic: %v", r)
			m.deps.Logger.Debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	if m.quitting {
		return "Saving config and exiting...\n"
	}

	leftPanel := m.renderCandidates()
	rightPanel := m.renderTranscript()

	panelHeight := m.height - (boundsHeight + progressHeight + statusBarHeight + helpHeight + 1)

	leftPanelStyle := lipgloss.NewStyle().
		Width(listPanelWidth).
		Height(panelHeight).
		Padding(0, 1)

	rightPanelWidth := m.width - listPanelWidth - panelPadding
	if rightPanelWidth < minViewportWidth*2 {
		rightPanelWidth = minViewportWidth * 2
	}

	rightPanelStyle := lipgloss.NewStyle().
		Width(rightPanelWidth).
		Height(panelHeight).
		Padding(0, 1)

	combined := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftPanelStyle.Render(leftPanel),
		rightPanelStyle.Render(rightPanel),
	)

	return combined + "\n" +
		m.renderBounds() + "\n" +
		m.renderProgress() + "\n" +
		m.renderStatus() + "\n" +
		m.renderHelp()
}

// renderCandidates renders the detected ad list panel
func (m model) renderCandidates() string {
	var s string

	name := m.episode.Title
	if name == "" {
		name = m.episode.EpisodeID
	}

	title := fmt.Sprintf("Detected ads - %s", truncate(name, 28))
	s += titleStyle.Render(title) + "\n\n"

	candidates := m.session.Candidates()
	if len(candidates) == 0 {
		s += listRowStyle.Render("No ad candidates in this episode")

		return s
	}

	selected := m.session.Index()

	for i, c := range candidates {
		prefix := "  "
		if i == selected {
			prefix = "► "
		}

		mark := " "
		if m.reviewed[journal.BoundsKey(c.Start, c.End)] {
			mark = reviewedStyle.Render("✓")
		}

		line := fmt.Sprintf("%s%s %s-%s %3.0f%% %s",
			prefix,
			mark,
			formatTime(c.Start),
			formatTime(c.End),
			c.Confidence*100,
			truncate(string(c.Stage), 12),
		)

		if m.caps.HasSponsorBadge && c.Sponsor != "" {
			line += " [" + truncate(c.Sponsor, 10) + "]"
		}

		if i == selected {
			s += selectedRowStyle.Render(line) + "\n"
		} else {
			s += listRowStyle.Render(line) + "\n"
		}
	}

	return s
}

// renderTranscript renders the transcript panel with viewport scrolling
func (m model) renderTranscript() string {
	var s string

	s += titleStyle.Render("Transcript") + "\n\n"

	header := fmt.Sprintf("%-8s %s", "Time", "Text")
	s += transcriptHeaderStyle.Render(header) + "\n"

	// Viewport content is set in Update()
	s += m.viewport.View()

	return s
}

// updateViewportContent builds and sets the viewport content
// Renders ALL segments - let viewport handle scrolling
func (m *model) updateViewportContent() {
	segments := m.episode.Transcript
	if len(segments) == 0 {
		m.viewport.SetContent("No transcript available for this episode")

		return
	}

	bounds := m.session.Bounds()

	textWidth := m.viewport.Width - 10
	if textWidth < minViewportWidth {
		textWidth = minViewportWidth
	}

	var content string

	for _, seg := range segments {
		line := fmt.Sprintf("%-8s %s", formatTime(seg.Start), truncate(seg.Text, textWidth))

		// Highlight segments inside the working ad bounds
		if seg.Start < bounds.End && seg.End > bounds.Start {
			line = adSegmentStyle.Render(line)
		}

		content += line + "\n"
	}

	m.viewport.SetContent(content)
}

// scrollToSelection scrolls the transcript so the current candidate's
// start is visible near the top of the viewport
func (m *model) scrollToSelection() {
	if m.session.Empty() || len(m.episode.Transcript) == 0 {
		return
	}

	bounds := m.session.Bounds()

	idx := transcript.IndexAt(m.episode.Transcript, bounds.Start)
	if idx < 0 {
		overlapping := transcript.Overlapping(m.episode.Transcript, bounds.Start, bounds.End)
		if len(overlapping) == 0 {
			return
		}
		idx = overlapping[0]
	}

	// Leave a couple of context lines above the ad
	offset := idx - 2
	if offset < 0 {
		offset = 0
	}

	m.viewport.SetYOffset(offset)
}

// renderBounds renders the working bounds and their delta from the
// detector's original values
func (m model) renderBounds() string {
	if m.session.Empty() {
		return helpStyle.Render(" No candidate selected")
	}

	bounds := m.session.Bounds()
	startDelta, endDelta := m.session.Adjustment()

	notesPart := ""
	if m.notes.Focused() {
		notesPart = " | Notes: " + m.notes.View()
	} else if m.notes.Value() != "" {
		notesPart = " | Notes: " + truncate(m.notes.Value(), 40)
	}

	line := fmt.Sprintf(" Start %s (%s) | End %s (%s)%s",
		formatTime(bounds.Start),
		formatDelta(startDelta),
		formatTime(bounds.End),
		formatDelta(endDelta),
		notesPart,
	)

	return line
}

// renderProgress renders the playback bar and time label
func (m model) renderProgress() string {
	duration := m.player.Duration()
	position := m.player.Position()

	percent := 0.0
	if !math.IsInf(duration, 1) && duration > 0 {
		percent = position / duration
	}

	marker := "⏸"
	if m.player.Playing() {
		marker = "▶"
	}

	durLabel := formatTime(duration)
	if duration <= 0 {
		durLabel = "--:--"
	}

	label := fmt.Sprintf(" %s %s / %s", marker, formatTime(position), durLabel)

	return " " + m.prog.ViewAs(percent) + label
}

// renderStatus renders the status bar
func (m model) renderStatus() string {
	// Show transient message if recent
	if m.statusMsg != "" && time.Since(m.statusMsgAge) < statusMessageDuration {
		return statusStyle.Width(m.width).Render(m.statusMsg)
	}

	position := ""
	if idx := m.session.Index(); idx >= 0 {
		position = fmt.Sprintf("Ad %d/%d | ", idx+1, m.session.Len())
	}

	reviewedCount := 0
	for _, c := range m.session.Candidates() {
		if m.reviewed[journal.BoundsKey(c.Start, c.End)] {
			reviewedCount++
		}
	}

	status := fmt.Sprintf("%s%d reviewed | touch: %s | %s",
		position,
		reviewedCount,
		m.mode,
		m.renderSaveState(),
	)

	if m.status.State() == review.StatusError {
		return saveErrorStyle.Width(m.width).Render(status)
	}

	return statusStyle.Width(m.width).Render(status)
}

// renderSaveState renders the save lifecycle indicator
func (m model) renderSaveState() string {
	switch m.status.State() {
	case review.StatusSaving:
		return "saving..."
	case review.StatusSuccess:
		return "saved"
	case review.StatusError:
		return "SAVE FAILED - press enter to retry"
	}

	return "ready"
}

// renderHelp renders the help text
func (m model) renderHelp() string {
	return helpStyle.Render(" space: play/pause | j/k: nudge end | J/K: nudge start | enter: save | c: confirm | x: reject | esc: reset | n: notes | m: touch mode | ↑/↓: ads | q: quit")
}

// ========== Formatting helpers ==========

// formatTime renders seconds as m:ss or h:mm:ss
func formatTime(seconds float64) string {
	if math.IsInf(seconds, 1) || seconds < 0 {
		return "--:--"
	}

	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}

	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// formatDelta renders a boundary adjustment as a signed offset
func formatDelta(delta float64) string {
	if delta == 0 {
		return "+0.0s"
	}

	return fmt.Sprintf("%+.1fs", delta)
}
