// ABOUTME: Tests for transcript segment lookup helpers
// ABOUTME: Validates time containment and overlap queries

package transcript

import "testing"

func testSegments() []Segment {
	return []Segment{
		{Start: 0, End: 5, Text: "Welcome back."},
		{Start: 5, End: 12.5, Text: "Today we talk about mattresses."},
		{Start: 12.5, End: 20, Text: "This episode is brought to you by Acme."},
	}
}

func TestIndexAt(t *testing.T) {
	segs := testSegments()

	if i := IndexAt(segs, 6.0); i != 1 {
		t.Errorf("Expected segment 1 at t=6, got %d", i)
	}

	// Boundary belongs to the following segment
	if i := IndexAt(segs, 5.0); i != 1 {
		t.Errorf("Expected segment 1 at t=5, got %d", i)
	}

	if i := IndexAt(segs, 99.0); i != -1 {
		t.Errorf("Expected -1 outside transcript, got %d", i)
	}
}

func TestOverlapping(t *testing.T) {
	segs := testSegments()

	got := Overlapping(segs, 4.0, 13.0)
	if len(got) != 3 {
		t.Fatalf("Expected 3 overlapping segments, got %d", len(got))
	}

	got = Overlapping(segs, 20.0, 30.0)
	if len(got) != 0 {
		t.Errorf("Expected no overlap past transcript end, got %d", len(got))
	}
}

func TestSegmentValidate(t *testing.T) {
	if err := (Segment{Start: 1, End: 0.5, Text: "x"}).Validate(); err == nil {
		t.Error("Expected error for inverted segment")
	}

	if err := (Segment{Start: -1, End: 2, Text: "x"}).Validate(); err == nil {
		t.Error("Expected error for negative start")
	}

	if err := (Segment{Start: 0, End: 2, Text: "x"}).Validate(); err != nil {
		t.Errorf("Expected valid segment, got %v", err)
	}
}
