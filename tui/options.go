// ABOUTME: TUI mode configuration, capability flags, and injected dependencies
// ABOUTME: Defines input parameters for running the review editor

package tui

import "ad-review/config"

// Capabilities selects which optional interaction features the editor
// exposes. One parameterized editor replaces per-feature widget variants.
type Capabilities struct {
	SupportsTouch   bool // Route unmodified presses through the gesture recognizer
	SupportsSwipe   bool // Horizontal swipe navigates between candidates
	HasSponsorBadge bool // Show the sponsor name in the candidate list
}

// DefaultCapabilities enables the full interaction surface
func DefaultCapabilities() Capabilities {
	return Capabilities{
		SupportsTouch:   true,
		SupportsSwipe:   true,
		HasSponsorBadge: true,
	}
}

// Options contains configuration for running the review TUI
type Options struct {
	EpisodePath string          // Path to the episode review file
	InitialSeek float64         // Jump-to time in seconds; negative means none
	Reviewed    map[string]bool // Candidates already journaled, by journal.BoundsKey
	Caps        Capabilities
	DebugLog    bool
}

// Dependencies holds all external dependencies for the TUI
// This allows for clean dependency injection and easy testing
type Dependencies struct {
	Submitter    Submitter
	Loader       EpisodeLoader
	Logger       Logger
	SharedConfig *config.SharedConfig
	ConfigPath   string
}
