// ABOUTME: Interface definitions for TUI dependencies
// ABOUTME: Enables dependency injection and testing with mock implementations

package tui

import (
	"context"

	"ad-review/review"
)

// Submitter delivers a finished correction to its destination. The
// production implementation journals locally and posts to the API;
// tests substitute a recorder.
type Submitter interface {
	Submit(ctx context.Context, podcastSlug, episodeID string, corr review.Correction) error
}

// EpisodeLoader reads an episode review file from disk
type EpisodeLoader interface {
	Load(path string) (*review.Episode, error)
}

// Logger handles debug logging operations
type Logger interface {
	Debugf(format string, args ...interface{})
}

// NoopLogger discards all log output
type NoopLogger struct{}

func (NoopLogger) Debugf(format string, args ...interface{}) {}
