// ABOUTME: Terminal UI model and core state management
// ABOUTME: Bubble Tea model implementation for ad boundary review

// Package tui provides an interactive terminal UI for reviewing detected
// ad segments and correcting their boundaries.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"ad-review/config"
	"ad-review/gesture"
	"ad-review/journal"
	"ad-review/player"
	"ad-review/review"
)

// Layout constants for UI dimensions
const (
	listPanelWidth = 44 // Left panel width for the candidate list
	panelPadding   = 2  // Horizontal spacing between panels

	// UI chrome heights (elements that reduce available viewport space)
	titleHeight     = 2 // Panel title bars
	headerHeight    = 1 // Column headers for the transcript
	boundsHeight    = 1 // Working bounds and delta display
	progressHeight  = 1 // Playback progress bar
	statusBarHeight = 1 // Bottom status bar
	helpHeight      = 1 // Help text line
	spacingHeight   = 2 // Vertical spacing between elements
	totalUIChrome   = titleHeight + headerHeight + boundsHeight + progressHeight + statusBarHeight + helpHeight + spacingHeight

	// Minimum viewport dimensions to ensure usability
	minViewportWidth  = 20
	minViewportHeight = 5
)

// Timing constants
const (
	playTickInterval      = 250 * time.Millisecond // Playback clock resolution
	statusMessageDuration = 5 * time.Second        // How long to show transient status messages
	maxNotesLength        = 200
)

// Messages produced by async commands
type (
	saveResultMsg struct {
		corr review.Correction
		err  error
	}
	statusResetMsg struct{ epoch int }
	playTickMsg    struct{ at time.Time }
	gestureTickMsg struct{}
	fileChangedMsg struct{}
	reloadedMsg    struct {
		episode *review.Episode
		err     error
	}
)

// model holds the TUI state
type model struct {
	// Dependencies
	deps Dependencies
	keys keyMap

	// Configuration snapshot for this run
	cfg config.ReviewConfig

	// Review state
	episode  *review.Episode
	session  *review.Session
	status   review.StatusMachine
	player   *player.Player
	reviewed map[string]bool // journal.BoundsKey of already-handled candidates
	notes    textinput.Model

	// Input state
	recognizer  *gesture.Recognizer
	mode        TouchMode
	caps        Capabilities
	barDragging bool

	// Save lifecycle
	ackEpoch int // Increments per resolved save to ignore stale ack timers

	// File watching
	watcher     *fsnotify.Watcher
	episodePath string

	// UI state
	width        int
	height       int
	lay          layout
	viewport     viewport.Model
	prog         progress.Model
	statusMsg    string
	statusMsgAge time.Time
	quitting     bool
	lastTick     time.Time
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	listRowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("240")).
				Foreground(lipgloss.Color("15")).
				Bold(true).
				Padding(0, 1)

	transcriptHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("10"))

	adSegmentStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("52")).
			Foreground(lipgloss.Color("15"))

	reviewedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	saveErrorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("52")).
			Foreground(lipgloss.Color("15")).
			Bold(true).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Run starts the review TUI with injected dependencies
func Run(opts Options, deps Dependencies) error {
	episode, err := deps.Loader.Load(opts.EpisodePath)
	if err != nil {
		return err
	}

	m := initModel(episode, opts, deps)

	// Watch the review file so detector re-runs show up live. A watch
	// failure degrades to a static session rather than aborting.
	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		if err := watcher.Add(opts.EpisodePath); err != nil {
			watcher.Close()
			watcher = nil
		}
	} else {
		watcher = nil
	}
	m.watcher = watcher

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	_, err = p.Run()

	if watcher != nil {
		watcher.Close()
	}

	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// initModel creates the initial model with injected dependencies
func initModel(episode *review.Episode, opts Options, deps Dependencies) model {
	cfg := deps.SharedConfig.Get()

	session := review.NewSession(episode.Candidates, episode.Duration, review.SessionOptions{
		MinAdLength: cfg.MinAdLength,
		JumpSlack:   cfg.JumpSlack,
	})

	reviewed := opts.Reviewed
	if reviewed == nil {
		reviewed = map[string]bool{}
	}

	notes := textinput.New()
	notes.Placeholder = "notes"
	notes.CharLimit = maxNotesLength

	m := model{
		deps:     deps,
		keys:     defaultKeyMap(),
		cfg:      cfg,
		episode:  episode,
		session:  session,
		player:   player.New(episode.Duration),
		reviewed: reviewed,
		notes:    notes,
		recognizer: gesture.NewRecognizer(gesture.Config{
			TapMax:          time.Duration(cfg.TapMaxMS) * time.Millisecond,
			DoubleTapWindow: time.Duration(cfg.DoubleTapMS) * time.Millisecond,
			LongPressHold:   time.Duration(cfg.LongPressMS) * time.Millisecond,
			SwipeThreshold:  cfg.SwipeThreshold,
			MoveSlop:        gesture.DefaultConfig().MoveSlop,
			DoubleTapSlop:   gesture.DefaultConfig().DoubleTapSlop,
		}),
		mode:        ModeSeek,
		caps:        opts.Caps,
		episodePath: opts.EpisodePath,
		viewport:    viewport.New(0, 0), // Width and height set on first WindowSizeMsg
		prog:        progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}

	if opts.InitialSeek >= 0 {
		if idx, ok := m.session.JumpToTime(opts.InitialSeek); ok {
			m.deps.Logger.Debugf("[TUI] Initial seek %.1fs matched candidate %d", opts.InitialSeek, idx)
		}
		m.player.SeekPreserving(opts.InitialSeek)
	} else {
		m.selectFirstUnreviewed()
	}

	return m
}

// Init initializes the model
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.watcher != nil {
		cmds = append(cmds, waitForFileChange(m.watcher))
	}

	return tea.Batch(cmds...)
}

// ========== Helper Methods ==========

// selectFirstUnreviewed moves the selection to the first candidate that
// has no journal entry yet. Falls back to the first candidate.
func (m *model) selectFirstUnreviewed() {
	for i, c := range m.session.Candidates() {
		if !m.reviewed[journal.BoundsKey(c.Start, c.End)] {
			m.session.Select(i)

			return
		}
	}
}

// commit builds a correction for the current candidate and starts the
// async save. Returns nil when a save is already running or there is
// nothing to commit.
func (m *model) commit(kind review.CommitKind) tea.Cmd {
	if !m.status.Begin() {
		return nil
	}

	corr, ok := m.session.Commit(kind, m.notes.Value())
	if !ok {
		// Empty session; undo the state transition
		m.status.Resolve(nil)
		m.status.Reset()

		return nil
	}

	m.deps.Logger.Debugf("[TUI] Submitting %s for %.1f-%.1f", corr.Type, corr.Original.Start, corr.Original.End)

	return m.submitCorrection(corr)
}

// submitCorrection returns a command that delivers the correction in
// the background and reports the outcome as a message.
func (m *model) submitCorrection(corr review.Correction) tea.Cmd {
	submitter := m.deps.Submitter
	slug := m.episode.PodcastSlug
	id := m.episode.EpisodeID
	timeout := time.Duration(m.cfg.SubmitTimeoutMS) * time.Millisecond

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := submitter.Submit(ctx, slug, id, corr)

		return saveResultMsg{corr: corr, err: err}
	}
}

// scheduleAckReset clears the success/error banner after the ack
// window. The epoch guards against a stale timer clearing the banner
// of a newer save.
func (m *model) scheduleAckReset() tea.Cmd {
	epoch := m.ackEpoch
	window := time.Duration(m.cfg.AckWindowMS) * time.Millisecond

	return tea.Tick(window, func(time.Time) tea.Msg {
		return statusResetMsg{epoch: epoch}
	})
}

// schedulePlayTick keeps the playback clock advancing while playing
func (m *model) schedulePlayTick() tea.Cmd {
	if !m.player.Playing() {
		return nil
	}

	return tea.Tick(playTickInterval, func(t time.Time) tea.Msg {
		return playTickMsg{at: t}
	})
}

// scheduleGestureTick arms a wakeup for the recognizer's next pending
// deadline (deferred tap or long press)
func (m *model) scheduleGestureTick() tea.Cmd {
	deadline, ok := m.recognizer.Deadline()
	if !ok {
		return nil
	}

	wait := time.Until(deadline)
	if wait < 0 {
		wait = 0
	}

	return tea.Tick(wait, func(time.Time) tea.Msg {
		return gestureTickMsg{}
	})
}

// waitForFileChange blocks on watcher events and reports a relevant
// change as a message
func waitForFileChange(watcher *fsnotify.Watcher) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}

				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					return fileChangedMsg{}
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}

// reloadEpisode re-reads the review file in the background
func (m *model) reloadEpisode() tea.Cmd {
	loader := m.deps.Loader
	path := m.episodePath

	return func() tea.Msg {
		episode, err := loader.Load(path)

		return reloadedMsg{episode: episode, err: err}
	}
}

// setStatusMsg sets a transient status message with current timestamp
func (m *model) setStatusMsg(msg string) {
	m.statusMsg = msg
	m.statusMsgAge = time.Now()
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}
