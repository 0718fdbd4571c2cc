// ABOUTME: Defines ad candidate types and episode review file loading
// ABOUTME: Provides JSON parsing and validation for detection pipeline output

// Package review implements the core ad-boundary review session: the ordered
// candidate list, working bounds editing, correction emission, and the save
// status lifecycle.
package review

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"ad-review/transcript"
)

// DetectionStage identifies which pipeline phase produced a candidate
type DetectionStage string

// Detection stages emitted by the scanning pipeline
const (
	StageFirstPass    DetectionStage = "first-pass"
	StageVerification DetectionStage = "verification"
	StageFingerprint  DetectionStage = "fingerprint"
	StageTextPattern  DetectionStage = "text-pattern"
	StageLanguage     DetectionStage = "language"
	StageUnspecified  DetectionStage = "unspecified"
)

// PatternScope is the applicability level of the detection pattern that
// matched, surfaced read-only in the editor
type PatternScope string

// Pattern scopes
const (
	ScopeGlobal  PatternScope = "global"
	ScopeNetwork PatternScope = "network"
	ScopePodcast PatternScope = "podcast"
)

// Candidate is a machine-detected advertisement time range awaiting human
// review. Candidates are immutable once loaded; edits happen on the session's
// working bounds.
type Candidate struct {
	Start      float64        `json:"start"`
	End        float64        `json:"end"`
	Confidence float64        `json:"confidence"`
	Reason     string         `json:"reason"`
	Sponsor    string         `json:"sponsor,omitempty"`
	Stage      DetectionStage `json:"detection_stage,omitempty"`
	Scope      PatternScope   `json:"scope,omitempty"`
	PatternID  *int64         `json:"pattern_id,omitempty"`
}

// Duration returns the length of the flagged region in seconds
func (c Candidate) Duration() float64 {
	return c.End - c.Start
}

// Contains reports whether t falls inside the flagged region
func (c Candidate) Contains(t float64) bool {
	return t >= c.Start && t <= c.End
}

// DistanceTo returns how far t is from the flagged region (0 when inside)
func (c Candidate) DistanceTo(t float64) float64 {
	switch {
	case t < c.Start:
		return c.Start - t
	case t > c.End:
		return t - c.End
	default:
		return 0
	}
}

// Validate checks that the candidate is well-formed
func (c Candidate) Validate() error {
	if c.Start < 0 {
		return fmt.Errorf("start cannot be negative (got %.3f)", c.Start)
	}

	if c.End <= c.Start {
		return fmt.Errorf("end must be greater than start (%.3f <= %.3f)", c.End, c.Start)
	}

	if c.Confidence < 0 || c.Confidence > 1 {
		return fmt.Errorf("confidence must be within [0,1] (got %.3f)", c.Confidence)
	}

	return nil
}

// Episode is one episode review document: metadata plus the candidates and
// transcript produced by the detection pipeline
type Episode struct {
	PodcastSlug string               `json:"podcast_slug"`
	EpisodeID   string               `json:"episode_id"`
	Title       string               `json:"title,omitempty"`
	AudioURL    string               `json:"audio_url,omitempty"`
	AudioPath   string               `json:"audio_path,omitempty"`
	Duration    float64              `json:"duration"`
	Candidates  []Candidate          `json:"candidates"`
	Transcript  []transcript.Segment `json:"transcript,omitempty"`
}

// LoadEpisode reads and validates an episode review file.
// Candidates are sorted by start time; an episode with zero candidates is
// valid and yields an inert review session.
func LoadEpisode(path string) (*Episode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read review file: %w", err)
	}

	var ep Episode
	if err := json.Unmarshal(data, &ep); err != nil {
		return nil, fmt.Errorf("failed to parse review file: %w", err)
	}

	if ep.PodcastSlug == "" {
		return nil, fmt.Errorf("review file missing podcast_slug")
	}

	if ep.EpisodeID == "" {
		return nil, fmt.Errorf("review file missing episode_id")
	}

	for i := range ep.Candidates {
		if ep.Candidates[i].Stage == "" {
			ep.Candidates[i].Stage = StageUnspecified
		}

		if err := ep.Candidates[i].Validate(); err != nil {
			return nil, fmt.Errorf("candidate %d invalid: %w", i, err)
		}

		// A scanner occasionally overshoots the media end by a frame or two
		if ep.Duration > 0 && ep.Candidates[i].End > ep.Duration {
			ep.Candidates[i].End = ep.Duration
		}
	}

	for i, seg := range ep.Transcript {
		if err := seg.Validate(); err != nil {
			return nil, fmt.Errorf("transcript segment %d invalid: %w", i, err)
		}
	}

	sort.SliceStable(ep.Candidates, func(i, j int) bool {
		return ep.Candidates[i].Start < ep.Candidates[j].Start
	})

	return &ep, nil
}
