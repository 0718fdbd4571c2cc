// ABOUTME: Tests for the SQLite correction journal
// ABOUTME: Uses an in-memory database

package journal

import (
	"testing"

	"ad-review/review"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	t.Cleanup(func() { store.Close() })

	return store
}

func TestAppendAndReadBack(t *testing.T) {
	store := openTestStore(t)

	start := 10.0
	end := 16.0

	id, err := store.Append("daily-brief", "ep-104", review.Correction{
		Type:          review.CorrectionAdjust,
		Original:      review.Candidate{Start: 10.0, End: 15.0, Confidence: 0.9},
		AdjustedStart: &start,
		AdjustedEnd:   &end,
		Notes:         "late fade",
	})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if id == 0 {
		t.Error("Expected non-zero entry id")
	}

	entries, err := store.EpisodeEntries("daily-brief", "ep-104")
	if err != nil {
		t.Fatalf("EpisodeEntries failed: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.Type != "adjust" {
		t.Errorf("Expected type adjust, got %s", e.Type)
	}

	if e.OriginalStart != 10.0 || e.OriginalEnd != 15.0 {
		t.Errorf("Unexpected original bounds [%.1f, %.1f]", e.OriginalStart, e.OriginalEnd)
	}

	if e.AdjustedStart == nil || *e.AdjustedStart != 10.0 {
		t.Error("Expected adjusted start 10.0")
	}

	if e.AdjustedEnd == nil || *e.AdjustedEnd != 16.0 {
		t.Error("Expected adjusted end 16.0")
	}

	if e.Notes != "late fade" {
		t.Errorf("Expected notes carried, got %q", e.Notes)
	}
}

func TestAppendConfirmHasNullAdjusted(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Append("daily-brief", "ep-104", review.Correction{
		Type:     review.CorrectionConfirm,
		Original: review.Candidate{Start: 30.0, End: 35.0, Confidence: 0.7},
	})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	entries, err := store.EpisodeEntries("daily-brief", "ep-104")
	if err != nil {
		t.Fatalf("EpisodeEntries failed: %v", err)
	}

	if entries[0].AdjustedStart != nil || entries[0].AdjustedEnd != nil {
		t.Error("Confirm entry must have null adjusted bounds")
	}
}

func TestReviewedBounds(t *testing.T) {
	store := openTestStore(t)

	_, _ = store.Append("daily-brief", "ep-104", review.Correction{
		Type:     review.CorrectionConfirm,
		Original: review.Candidate{Start: 10.0, End: 15.0, Confidence: 0.9},
	})
	_, _ = store.Append("daily-brief", "ep-104", review.Correction{
		Type:     review.CorrectionReject,
		Original: review.Candidate{Start: 30.0, End: 35.0, Confidence: 0.7},
	})

	// Entries for another episode must not leak in
	_, _ = store.Append("daily-brief", "ep-105", review.Correction{
		Type:     review.CorrectionConfirm,
		Original: review.Candidate{Start: 60.0, End: 75.0, Confidence: 0.5},
	})

	reviewed, err := store.ReviewedBounds("daily-brief", "ep-104")
	if err != nil {
		t.Fatalf("ReviewedBounds failed: %v", err)
	}

	if len(reviewed) != 2 {
		t.Fatalf("Expected 2 reviewed candidates, got %d", len(reviewed))
	}

	if !reviewed[BoundsKey(10.0, 15.0)] {
		t.Error("Expected [10, 15] marked reviewed")
	}

	if reviewed[BoundsKey(60.0, 75.0)] {
		t.Error("Other episode's candidate must not be marked reviewed")
	}
}
