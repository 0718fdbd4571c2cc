// ABOUTME: Touch gesture recognizer: tap, double tap, long press, swipe
// ABOUTME: Pure state machine with caller-supplied timestamps for testability

// Package gesture classifies raw press/move/release input into the editor's
// touch gestures. The recognizer keeps no timers of its own: callers feed it
// timestamps and schedule a wakeup for Deadline, which keeps the whole state
// machine deterministic under test.
package gesture

import "time"

// Kind identifies a recognized gesture
type Kind int

// Gesture kinds
const (
	None Kind = iota
	Tap
	DoubleTap
	LongPress
	SwipeLeft
	SwipeRight
)

// String returns a readable gesture name
func (k Kind) String() string {
	switch k {
	case Tap:
		return "tap"
	case DoubleTap:
		return "double-tap"
	case LongPress:
		return "long-press"
	case SwipeLeft:
		return "swipe-left"
	case SwipeRight:
		return "swipe-right"
	default:
		return "none"
	}
}

// Event is a recognized gesture anchored at the press origin
type Event struct {
	Kind Kind
	X    float64
	Y    float64
}

// Config holds the classification thresholds. Distances are in pixels; the
// terminal frontend scales cell coordinates before feeding the recognizer.
type Config struct {
	TapMax          time.Duration // Presses shorter than this classify as taps
	DoubleTapWindow time.Duration // Second tap within this window of the first
	LongPressHold   time.Duration // Hold this long without moving for a long press
	SwipeThreshold  float64       // Horizontal travel that classifies as a swipe
	MoveSlop        float64       // Travel beyond this cancels the long-press timer
	DoubleTapSlop   float64       // Max distance between the two taps of a double
}

// DefaultConfig returns thresholds matching the web editor
func DefaultConfig() Config {
	return Config{
		TapMax:          500 * time.Millisecond,
		DoubleTapWindow: 300 * time.Millisecond,
		LongPressHold:   500 * time.Millisecond,
		SwipeThreshold:  50,
		MoveSlop:        10,
		DoubleTapSlop:   30,
	}
}

// Recognizer classifies one pointer's gesture stream. Single-tap events are
// deferred by the double-tap window so a double tap never also fires the
// single-tap action.
type Recognizer struct {
	cfg Config

	pressed   bool
	pressX    float64
	pressY    float64
	pressAt   time.Time
	moved     bool
	longFired bool

	// A completed tap waiting out the double-tap window
	pendingTap  bool
	pendingX    float64
	pendingY    float64
	tapDeadline time.Time

	// Set when the current press arrived inside a pending tap's window
	chainedPress bool
}

// NewRecognizer creates a recognizer with the given thresholds
func NewRecognizer(cfg Config) *Recognizer {
	return &Recognizer{cfg: cfg}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}

func (r *Recognizer) near(x1, y1, x2, y2, slop float64) bool {
	return abs(x1-x2) <= slop && abs(y1-y2) <= slop
}

// Press records a pointer going down. It may flush an overdue pending tap
// whose window expired before the caller's timer fired, preserving delivery
// order.
func (r *Recognizer) Press(x, y float64, now time.Time) Event {
	flushed := Event{Kind: None}

	if r.pendingTap {
		if now.After(r.tapDeadline) {
			flushed = Event{Kind: Tap, X: r.pendingX, Y: r.pendingY}
			r.pendingTap = false
		} else if r.near(x, y, r.pendingX, r.pendingY, r.cfg.DoubleTapSlop) {
			// Second press inside the window: a double tap is forming
			r.pendingTap = false
			r.chainedPress = true
		} else {
			// Tap somewhere else entirely: release the held tap now
			flushed = Event{Kind: Tap, X: r.pendingX, Y: r.pendingY}
			r.pendingTap = false
		}
	}

	r.pressed = true
	r.pressX = x
	r.pressY = y
	r.pressAt = now
	r.moved = false
	r.longFired = false

	return flushed
}

// Move records pointer travel during a press. Travel beyond the slop cancels
// the long-press timer, so a stale long press can never fire after the
// pointer has moved away.
func (r *Recognizer) Move(x, y float64) {
	if !r.pressed {
		return
	}

	if !r.near(x, y, r.pressX, r.pressY, r.cfg.MoveSlop) {
		r.moved = true
	}
}

// Release records the pointer going up and classifies the gesture
func (r *Recognizer) Release(x, y float64, now time.Time) Event {
	if !r.pressed {
		return Event{Kind: None}
	}

	r.pressed = false
	chained := r.chainedPress
	r.chainedPress = false

	// A long press already consumed this touch; the release is silent
	if r.longFired {
		r.longFired = false
		return Event{Kind: None}
	}

	dx := x - r.pressX
	dy := y - r.pressY

	if abs(dx) >= r.cfg.SwipeThreshold && abs(dx) > abs(dy) {
		r.pendingTap = false

		if dx < 0 {
			return Event{Kind: SwipeLeft, X: r.pressX, Y: r.pressY}
		}

		return Event{Kind: SwipeRight, X: r.pressX, Y: r.pressY}
	}

	held := now.Sub(r.pressAt)

	// The hold crossed the long-press threshold but the timer has not fired
	// yet; classify here instead
	if held >= r.cfg.LongPressHold && !r.moved {
		return Event{Kind: LongPress, X: r.pressX, Y: r.pressY}
	}

	if held >= r.cfg.TapMax || r.moved {
		return Event{Kind: None}
	}

	if chained {
		return Event{Kind: DoubleTap, X: r.pressX, Y: r.pressY}
	}

	// Hold the tap until the double-tap window closes
	r.pendingTap = true
	r.pendingX = r.pressX
	r.pendingY = r.pressY
	r.tapDeadline = now.Add(r.cfg.DoubleTapWindow)

	return Event{Kind: None}
}

// Cancel aborts the current press and any pending tap (touch-cancel)
func (r *Recognizer) Cancel() {
	r.pressed = false
	r.moved = false
	r.longFired = false
	r.pendingTap = false
	r.chainedPress = false
}

// Deadline returns the next time Expire should be called, if any: the
// long-press deadline while a still press is held, or the pending tap's
// double-tap window.
func (r *Recognizer) Deadline() (time.Time, bool) {
	if r.pressed && !r.moved && !r.longFired {
		return r.pressAt.Add(r.cfg.LongPressHold), true
	}

	if r.pendingTap {
		return r.tapDeadline, true
	}

	return time.Time{}, false
}

// Expire fires due timer-driven gestures: a long press for a press still
// held past the hold threshold, or a deferred single tap whose double-tap
// window closed.
func (r *Recognizer) Expire(now time.Time) Event {
	if r.pressed && !r.moved && !r.longFired &&
		!now.Before(r.pressAt.Add(r.cfg.LongPressHold)) {
		r.longFired = true
		return Event{Kind: LongPress, X: r.pressX, Y: r.pressY}
	}

	if r.pendingTap && !now.Before(r.tapDeadline) {
		r.pendingTap = false
		return Event{Kind: Tap, X: r.pendingX, Y: r.pendingY}
	}

	return Event{Kind: None}
}
