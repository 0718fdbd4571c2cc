// ABOUTME: Transcript segment types and time-based lookup
// ABOUTME: Segments come from the transcription pass of the detection pipeline

// Package transcript holds the episode transcript segments shown alongside
// the candidate list so reviewers can place boundaries on sentence edges.
package transcript

import "fmt"

// Segment is a single transcribed span of the episode audio
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Validate checks that the segment has a sane time range
func (s Segment) Validate() error {
	if s.Start < 0 {
		return fmt.Errorf("start cannot be negative (got %.3f)", s.Start)
	}

	if s.End <= s.Start {
		return fmt.Errorf("end must be greater than start (%.3f <= %.3f)", s.End, s.Start)
	}

	return nil
}

// Contains reports whether t falls inside the segment
func (s Segment) Contains(t float64) bool {
	return t >= s.Start && t < s.End
}

// IndexAt returns the index of the segment containing t, or -1.
// Segments are expected to be ordered by start time.
func IndexAt(segments []Segment, t float64) int {
	for i, seg := range segments {
		if seg.Contains(t) {
			return i
		}
	}

	return -1
}

// Overlapping returns the indices of segments overlapping [start, end]
func Overlapping(segments []Segment, start, end float64) []int {
	var out []int

	for i, seg := range segments {
		if seg.End > start && seg.Start < end {
			out = append(out, i)
		}
	}

	return out
}
