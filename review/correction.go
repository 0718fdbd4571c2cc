// ABOUTME: Correction record types emitted when a reviewer commits a decision
// ABOUTME: One Correction per commit; adjust carries both edited bounds

package review

// CorrectionType classifies the reviewer's decision about a candidate
type CorrectionType string

// Correction types
const (
	CorrectionConfirm CorrectionType = "confirm"
	CorrectionReject  CorrectionType = "reject"
	CorrectionAdjust  CorrectionType = "adjust"
)

// CommitKind selects which commit action the reviewer triggered.
// CommitSave degrades to a confirm when the working bounds were never moved.
type CommitKind int

// Commit kinds
const (
	CommitConfirm CommitKind = iota
	CommitReject
	CommitSave
)

// Correction is the structured record of a reviewer's decision. AdjustedStart
// and AdjustedEnd are set together and only for adjust corrections.
type Correction struct {
	Type          CorrectionType
	Original      Candidate
	AdjustedStart *float64
	AdjustedEnd   *float64
	Notes         string
}
