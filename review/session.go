// ABOUTME: Review session state: candidate store, selection, working bounds
// ABOUTME: Implements clamped boundary editing and correction emission

package review

import "math"

// Selection is the single authoritative source for the selected candidate
// index. Handlers must read the index through it at call time, never through
// a value captured earlier.
type Selection interface {
	Index() int
	Set(i int)
}

// internalSelection is the session-owned selection used when no external
// owner injects its own store
type internalSelection struct {
	i int
}

func (s *internalSelection) Index() int { return s.i }

func (s *internalSelection) Set(i int) { s.i = i }

// Bounds is the mutable working copy of the active candidate's time range
type Bounds struct {
	Start float64
	End   float64
}

// SessionOptions configures a review session. Zero values fall back to the
// editor defaults (internal selection, 1s minimum ad length, 0.5s jump slack).
type SessionOptions struct {
	Selection   Selection // External index owner; nil means session-owned
	MinAdLength float64   // Minimum gap kept between working start and end
	JumpSlack   float64   // Tolerance for resolving a jump time to a candidate
}

// Session holds one episode's ordered candidate list plus the per-candidate
// working bounds. Working bounds are recreated on every index change; edits
// never survive moving away from a candidate without saving.
type Session struct {
	candidates  []Candidate
	duration    float64
	minAdLength float64
	jumpSlack   float64
	sel         Selection

	bounds    Bounds
	boundsFor int // candidate index the bounds were derived from
}

// NewSession creates a review session over an ordered candidate list.
// A duration of zero or less means the media length is unknown and the end
// clamp is effectively unbounded.
func NewSession(candidates []Candidate, duration float64, opts SessionOptions) *Session {
	if duration <= 0 {
		duration = math.Inf(1)
	}

	sel := opts.Selection
	if sel == nil {
		sel = &internalSelection{}
	}

	minAdLength := opts.MinAdLength
	if minAdLength <= 0 {
		minAdLength = 1.0
	}

	jumpSlack := opts.JumpSlack
	if jumpSlack <= 0 {
		jumpSlack = 0.5
	}

	s := &Session{
		candidates:  candidates,
		duration:    duration,
		minAdLength: minAdLength,
		jumpSlack:   jumpSlack,
		sel:         sel,
		boundsFor:   -1,
	}
	s.ensureBounds()

	return s
}

// Len returns the number of candidates
func (s *Session) Len() int {
	return len(s.candidates)
}

// Empty reports whether there is nothing to review
func (s *Session) Empty() bool {
	return len(s.candidates) == 0
}

// Duration returns the media duration (math.Inf(1) when unknown)
func (s *Session) Duration() float64 {
	return s.duration
}

// Index returns the selected candidate index, or -1 when the list is empty.
// The index is always read from the selection source at call time.
func (s *Session) Index() int {
	if len(s.candidates) == 0 {
		return -1
	}

	i := s.sel.Index()
	if i < 0 {
		return 0
	}

	if i >= len(s.candidates) {
		return len(s.candidates) - 1
	}

	return i
}

// Candidate returns the candidate at index i
func (s *Session) Candidate(i int) (Candidate, bool) {
	if i < 0 || i >= len(s.candidates) {
		return Candidate{}, false
	}

	return s.candidates[i], true
}

// Candidates returns the ordered candidate list
func (s *Session) Candidates() []Candidate {
	return s.candidates
}

// Current returns the active candidate
func (s *Session) Current() (Candidate, bool) {
	return s.Candidate(s.Index())
}

// Select moves the selection to index i. Out-of-range indices are ignored.
// Returns true when the selection changed.
func (s *Session) Select(i int) bool {
	if i < 0 || i >= len(s.candidates) {
		return false
	}

	if i == s.Index() && s.boundsFor == i {
		return false
	}

	s.sel.Set(i)
	s.ensureBounds()

	return true
}

// Next advances to the next candidate; a no-op at the end of the list
func (s *Session) Next() bool {
	return s.Select(s.Index() + 1)
}

// Previous moves to the previous candidate; a no-op at index zero
func (s *Session) Previous() bool {
	return s.Select(s.Index() - 1)
}

// JumpToTime resolves an absolute time to the first candidate containing it
// or lying within the jump slack, selects that candidate, and returns its
// index. Returns (-1, false) when no candidate matches; the caller still
// performs the seek in that case.
func (s *Session) JumpToTime(t float64) (int, bool) {
	for i, c := range s.candidates {
		if c.DistanceTo(t) <= s.jumpSlack {
			s.Select(i)
			return i, true
		}
	}

	return -1, false
}

// ensureBounds re-derives the working bounds whenever the authoritative index
// moved away from the candidate they were initialized from. An external
// selection owner can change the index at any time, so every bounds accessor
// goes through here.
func (s *Session) ensureBounds() {
	i := s.Index()
	if i == s.boundsFor {
		return
	}

	s.boundsFor = i

	if c, ok := s.Candidate(i); ok {
		s.bounds = Bounds{Start: c.Start, End: c.End}
	} else {
		s.bounds = Bounds{}
	}
}

// Bounds returns the working bounds for the active candidate
func (s *Session) Bounds() Bounds {
	s.ensureBounds()
	return s.bounds
}

// clampStart bounds a prospective start to [0, end - minAdLength]
func (s *Session) clampStart(t float64) float64 {
	max := s.bounds.End - s.minAdLength
	if t > max {
		t = max
	}

	if t < 0 {
		t = 0
	}

	return t
}

// clampEnd bounds a prospective end to [start + minAdLength, duration]
func (s *Session) clampEnd(t float64) float64 {
	min := s.bounds.Start + s.minAdLength
	if t < min {
		t = min
	}

	if t > s.duration {
		t = s.duration
	}

	return t
}

// NudgeStart moves the working start by delta seconds, clamped
func (s *Session) NudgeStart(delta float64) Bounds {
	s.ensureBounds()

	if _, ok := s.Current(); ok {
		s.bounds.Start = s.clampStart(s.bounds.Start + delta)
	}

	return s.bounds
}

// NudgeEnd moves the working end by delta seconds, clamped
func (s *Session) NudgeEnd(delta float64) Bounds {
	s.ensureBounds()

	if _, ok := s.Current(); ok {
		s.bounds.End = s.clampEnd(s.bounds.End + delta)
	}

	return s.bounds
}

// SetStart places the working start at an absolute time, clamped
func (s *Session) SetStart(t float64) Bounds {
	s.ensureBounds()

	if _, ok := s.Current(); ok {
		s.bounds.Start = s.clampStart(t)
	}

	return s.bounds
}

// SetEnd places the working end at an absolute time, clamped
func (s *Session) SetEnd(t float64) Bounds {
	s.ensureBounds()

	if _, ok := s.Current(); ok {
		s.bounds.End = s.clampEnd(t)
	}

	return s.bounds
}

// ResetBounds restores the working bounds to the active candidate's original
// start and end, discarding all adjustments
func (s *Session) ResetBounds() {
	s.ensureBounds()

	if c, ok := s.Current(); ok {
		s.bounds = Bounds{Start: c.Start, End: c.End}
	}
}

// Adjustment returns the signed deltas between working and original bounds.
// Always recomputed from the two values so clamping can never make the
// displayed delta drift from the actual bound.
func (s *Session) Adjustment() (startDelta, endDelta float64) {
	s.ensureBounds()

	c, ok := s.Current()
	if !ok {
		return 0, 0
	}

	return s.bounds.Start - c.Start, s.bounds.End - c.End
}

// Modified reports whether the working bounds differ from the original
func (s *Session) Modified() bool {
	ds, de := s.Adjustment()
	return ds != 0 || de != 0
}

// Commit builds the correction record for the active candidate. A save with
// untouched bounds degrades to a confirm; confirm and reject never carry
// adjusted bounds regardless of the working state. Returns false when there
// is no active candidate.
func (s *Session) Commit(kind CommitKind, notes string) (Correction, bool) {
	s.ensureBounds()

	c, ok := s.Current()
	if !ok {
		return Correction{}, false
	}

	corr := Correction{Original: c, Notes: notes}

	switch kind {
	case CommitReject:
		corr.Type = CorrectionReject
	case CommitConfirm:
		corr.Type = CorrectionConfirm
	case CommitSave:
		if s.Modified() {
			start := s.bounds.Start
			end := s.bounds.End
			corr.Type = CorrectionAdjust
			corr.AdjustedStart = &start
			corr.AdjustedEnd = &end
		} else {
			corr.Type = CorrectionConfirm
		}
	}

	return corr, true
}
