// ABOUTME: HTTP client for the backend corrections endpoint
// ABOUTME: Serializes Correction records into the submission wire format

// Package api submits reviewer corrections to the podcast admin backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// originalAd is the wire shape of the candidate a correction refers to
type originalAd struct {
	Start      float64  `json:"start"`
	End        float64  `json:"end"`
	PatternID  *int64   `json:"pattern_id,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
	Reason     string   `json:"reason,omitempty"`
	Sponsor    string   `json:"sponsor,omitempty"`
}

// correctionRequest is the POST body for a correction submission
type correctionRequest struct {
	Type          string     `json:"type"`
	OriginalAd    originalAd `json:"original_ad"`
	AdjustedStart *float64   `json:"adjusted_start,omitempty"`
	AdjustedEnd   *float64   `json:"adjusted_end,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// Correction is the submission payload, decoupled from the review package so
// the client only depends on wire concerns
type Correction struct {
	Type          string
	Start         float64
	End           float64
	PatternID     *int64
	Confidence    float64
	Reason        string
	Sponsor       string
	AdjustedStart *float64
	AdjustedEnd   *float64
	Notes         string
}

// Client talks to the backend corrections API
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a corrections client for the given base URL
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// SubmitCorrection posts one correction for an episode.
// The editor treats any non-2xx response as a submission failure; there is no
// response body contract beyond success or failure.
func (c *Client) SubmitCorrection(ctx context.Context, podcastSlug, episodeID string, corr Correction) error {
	confidence := corr.Confidence

	body := correctionRequest{
		Type: corr.Type,
		OriginalAd: originalAd{
			Start:      corr.Start,
			End:        corr.End,
			PatternID:  corr.PatternID,
			Confidence: &confidence,
			Reason:     corr.Reason,
			Sponsor:    corr.Sponsor,
		},
		AdjustedStart: corr.AdjustedStart,
		AdjustedEnd:   corr.AdjustedEnd,
		Notes:         corr.Notes,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode correction: %w", err)
	}

	endpoint := fmt.Sprintf("%s/episodes/%s/%s/corrections",
		c.baseURL, url.PathEscape(podcastSlug), url.PathEscape(episodeID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("correction submission failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("correction submission rejected: %s", resp.Status)
	}

	return nil
}
