// ABOUTME: Shared initialization code for all modes (TUI, list, batch)
// ABOUTME: Wires config, journal, API client, and episode loading together

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"ad-review/api"
	"ad-review/config"
	"ad-review/journal"
	"ad-review/player"
	"ad-review/review"
)

var debugLog *log.Logger

// RunOptions contains command-line options for all modes
type RunOptions struct {
	EpisodePath   string
	Offline       bool
	Seek          float64
	MinConfidence float64
	DebugLog      bool
	JournalPath   string
}

// ReviewContext contains everything a mode needs to operate on one episode
type ReviewContext struct {
	Episode      *review.Episode
	Config       config.ReviewConfig
	SharedConfig *config.SharedConfig
	ConfigPath   string
	Journal      *journal.Store
	Submitter    *CorrectionSubmitter
	Reviewed     map[string]bool
}

// Close releases the journal handle
func (rc *ReviewContext) Close() {
	if rc.Journal != nil {
		if err := rc.Journal.Close(); err != nil {
			debugf("[INIT] Failed to close journal: %v", err)
		}
	}
}

// InitializeReview loads the episode, config, journal, and API client
func InitializeReview(opts RunOptions) (*ReviewContext, error) {
	configPath := config.GetConfigPath()
	cfg, _ := config.LoadConfig(configPath)

	sharedConfig := &config.SharedConfig{}
	sharedConfig.Update(cfg)

	episode, err := loadEpisodeWithMetadata(opts.EpisodePath)
	if err != nil {
		return nil, err
	}

	journalPath := opts.JournalPath
	if journalPath == "" {
		journalPath = cfg.JournalPath
	}
	if journalPath == "" {
		journalPath = defaultJournalPath()
	}

	if dir := filepath.Dir(journalPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	store, err := journal.Open(journalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	reviewed, err := store.ReviewedBounds(episode.PodcastSlug, episode.EpisodeID)
	if err != nil {
		debugf("[INIT] Failed to read journal history: %v", err)
		reviewed = map[string]bool{}
	}

	var client *api.Client
	if !opts.Offline {
		client = api.NewClient(cfg.APIBaseURL, time.Duration(cfg.SubmitTimeoutMS)*time.Millisecond)
	}

	return &ReviewContext{
		Episode:      episode,
		Config:       cfg,
		SharedConfig: sharedConfig,
		ConfigPath:   configPath,
		Journal:      store,
		Submitter:    &CorrectionSubmitter{client: client, journal: store},
		Reviewed:     reviewed,
	}, nil
}

// loadEpisodeWithMetadata reads the review file and fills in a missing
// title from the audio file's tags when one is available locally
func loadEpisodeWithMetadata(path string) (*review.Episode, error) {
	episode, err := review.LoadEpisode(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load episode: %w", err)
	}

	if episode.Title == "" && episode.AudioPath != "" {
		if meta, err := player.ReadMetadata(episode.AudioPath); err == nil {
			episode.Title = meta.Title
			debugf("[INIT] Episode title from audio tags: %s", meta.Title)
		} else {
			debugf("[INIT] Audio tag probe failed: %v", err)
		}
	}

	return episode, nil
}

// defaultJournalPath puts the journal next to the user config
func defaultJournalPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "ad-review-journal.sqlite"
	}

	return filepath.Join(homeDir, ".config", "ad-review", "journal.sqlite")
}

// CorrectionSubmitter delivers corrections to the backend and records
// every accepted one in the local journal. With no client it runs
// offline and journals only.
type CorrectionSubmitter struct {
	client  *api.Client
	journal *journal.Store
}

// Submit implements tui.Submitter
func (s *CorrectionSubmitter) Submit(ctx context.Context, podcastSlug, episodeID string, corr review.Correction) error {
	if s.client != nil {
		if err := s.client.SubmitCorrection(ctx, podcastSlug, episodeID, apiCorrection(corr)); err != nil {
			return err
		}
	}

	// The backend accepted the correction; a journal failure only
	// costs resume bookkeeping, not the correction itself.
	if _, err := s.journal.Append(podcastSlug, episodeID, corr); err != nil {
		debugf("[SUBMIT] Journal append failed: %v", err)
	}

	return nil
}

// apiCorrection maps the domain correction onto the wire client's shape
func apiCorrection(corr review.Correction) api.Correction {
	return api.Correction{
		Type:          string(corr.Type),
		Start:         corr.Original.Start,
		End:           corr.Original.End,
		PatternID:     corr.Original.PatternID,
		Confidence:    corr.Original.Confidence,
		Reason:        corr.Original.Reason,
		Sponsor:       corr.Original.Sponsor,
		AdjustedStart: corr.AdjustedStart,
		AdjustedEnd:   corr.AdjustedEnd,
		Notes:         corr.Notes,
	}
}

// episodeLoader adapts loadEpisodeWithMetadata for the TUI's loader interface
type episodeLoader struct{}

func (episodeLoader) Load(path string) (*review.Episode, error) {
	return loadEpisodeWithMetadata(path)
}

// debugLogger adapts the package debug log for the TUI's logger interface
type debugLogger struct{}

func (debugLogger) Debugf(format string, args ...interface{}) {
	debugf(format, args...)
}

// SetupDebugLog initializes debug logging
func SetupDebugLog(filename string) error {
	if err := InitDebugLog(filename); err != nil {
		return fmt.Errorf("failed to initialize debug log: %w", err)
	}

	fileInfo, _ := os.Stdout.Stat()
	if (fileInfo.Mode() & os.ModeCharDevice) != 0 {
		fmt.Printf("Debug logging enabled: %s\n", filename)
	}

	return nil
}

// InitDebugLog initializes debug logging
func InitDebugLog(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugLog = log.New(f, "", log.Ltime|log.Lmicroseconds)

	return nil
}

// debugf logs debug messages if enabled
func debugf(format string, args ...interface{}) {
	if debugLog != nil {
		debugLog.Printf(format, args...)
	}
}

// truncate shortens string to maxLen, adding "..." if needed
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}
