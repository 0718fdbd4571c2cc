// ABOUTME: Tests for touch gesture classification
// ABOUTME: Drives the recognizer with synthetic timestamps

package gesture

import (
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func TestQuickTapDeferredThenFired(t *testing.T) {
	r := NewRecognizer(DefaultConfig())

	r.Press(100, 20, at(0))

	ev := r.Release(100, 20, at(80))
	if ev.Kind != None {
		t.Fatalf("Expected tap deferred at release, got %s", ev.Kind)
	}

	deadline, ok := r.Deadline()
	if !ok || deadline != at(380) {
		t.Fatalf("Expected tap deadline at +380ms, got %v (%v)", deadline, ok)
	}

	ev = r.Expire(at(380))
	if ev.Kind != Tap || ev.X != 100 || ev.Y != 20 {
		t.Errorf("Expected tap at (100, 20), got %s (%.0f, %.0f)", ev.Kind, ev.X, ev.Y)
	}

	// Nothing left to expire
	if ev := r.Expire(at(500)); ev.Kind != None {
		t.Errorf("Expected no further events, got %s", ev.Kind)
	}
}

func TestDoubleTapFiresOnce(t *testing.T) {
	// Scenario: two taps on the same spot within 300ms must produce exactly
	// one double tap and no single taps
	r := NewRecognizer(DefaultConfig())

	r.Press(100, 20, at(0))

	if ev := r.Release(100, 20, at(80)); ev.Kind != None {
		t.Fatalf("Unexpected event at first release: %s", ev.Kind)
	}

	if ev := r.Press(102, 21, at(200)); ev.Kind != None {
		t.Fatalf("Unexpected event at second press: %s", ev.Kind)
	}

	ev := r.Release(102, 21, at(280))
	if ev.Kind != DoubleTap {
		t.Fatalf("Expected double tap, got %s", ev.Kind)
	}

	// No stale deferred tap remains
	if _, ok := r.Deadline(); ok {
		t.Error("Expected no pending deadline after double tap")
	}
}

func TestSecondTapAfterWindowIsTwoSingles(t *testing.T) {
	r := NewRecognizer(DefaultConfig())

	r.Press(100, 20, at(0))
	r.Release(100, 20, at(80))

	// Second press past the 300ms window: the held first tap flushes now
	ev := r.Press(100, 20, at(600))
	if ev.Kind != Tap {
		t.Fatalf("Expected deferred tap flushed at late press, got %s", ev.Kind)
	}

	ev = r.Release(100, 20, at(680))
	if ev.Kind != None {
		t.Fatalf("Expected second tap deferred, got %s", ev.Kind)
	}

	if ev := r.Expire(at(1000)); ev.Kind != Tap {
		t.Errorf("Expected second tap to fire, got %s", ev.Kind)
	}
}

func TestTapElsewhereFlushesPending(t *testing.T) {
	r := NewRecognizer(DefaultConfig())

	r.Press(100, 20, at(0))
	r.Release(100, 20, at(80))

	// A press far away within the window is not a double tap; the first tap
	// is released immediately so ordering is preserved
	ev := r.Press(300, 50, at(200))
	if ev.Kind != Tap || ev.X != 100 {
		t.Errorf("Expected first tap flushed at (100), got %s (%.0f)", ev.Kind, ev.X)
	}
}

func TestLongPressFiresAndSuppressesRelease(t *testing.T) {
	// Scenario: touch held 600ms fires a long press; the release afterwards
	// must not additionally classify as a tap
	r := NewRecognizer(DefaultConfig())

	r.Press(100, 20, at(0))

	deadline, ok := r.Deadline()
	if !ok || deadline != at(500) {
		t.Fatalf("Expected long-press deadline at +500ms, got %v (%v)", deadline, ok)
	}

	ev := r.Expire(at(500))
	if ev.Kind != LongPress || ev.X != 100 {
		t.Fatalf("Expected long press at x=100, got %s (%.0f)", ev.Kind, ev.X)
	}

	ev = r.Release(100, 20, at(600))
	if ev.Kind != None {
		t.Errorf("Expected silent release after long press, got %s", ev.Kind)
	}
}

func TestLongPressClassifiedAtReleaseWithoutTimer(t *testing.T) {
	// The hold crossed the threshold but no timer fired (e.g. the wakeup was
	// still queued); release classifies the long press itself
	r := NewRecognizer(DefaultConfig())

	r.Press(100, 20, at(0))

	ev := r.Release(100, 20, at(550))
	if ev.Kind != LongPress {
		t.Errorf("Expected long press at release, got %s", ev.Kind)
	}
}

func TestMoveCancelsLongPress(t *testing.T) {
	r := NewRecognizer(DefaultConfig())

	r.Press(100, 20, at(0))
	r.Move(130, 22)

	if _, ok := r.Deadline(); ok {
		t.Error("Expected long-press timer cleared after move")
	}

	if ev := r.Expire(at(500)); ev.Kind != None {
		t.Errorf("Expected no long press after move, got %s", ev.Kind)
	}

	// A moved press that is not a swipe classifies as nothing
	if ev := r.Release(130, 22, at(200)); ev.Kind != None {
		t.Errorf("Expected silent release after drift, got %s", ev.Kind)
	}
}

func TestHorizontalSwipe(t *testing.T) {
	r := NewRecognizer(DefaultConfig())

	r.Press(200, 20, at(0))
	r.Move(140, 24)

	ev := r.Release(140, 24, at(150))
	if ev.Kind != SwipeLeft {
		t.Fatalf("Expected swipe left, got %s", ev.Kind)
	}

	r.Press(200, 20, at(1000))

	ev = r.Release(260, 18, at(1150))
	if ev.Kind != SwipeRight {
		t.Errorf("Expected swipe right, got %s", ev.Kind)
	}
}

func TestVerticalDragIsNotSwipe(t *testing.T) {
	r := NewRecognizer(DefaultConfig())

	r.Press(200, 20, at(0))

	// Mostly vertical travel, even past the horizontal threshold
	ev := r.Release(260, 120, at(150))
	if ev.Kind != None {
		t.Errorf("Expected vertical drag to classify as nothing, got %s", ev.Kind)
	}
}

func TestSubThresholdSwipeIgnored(t *testing.T) {
	r := NewRecognizer(DefaultConfig())

	r.Press(200, 20, at(0))
	r.Move(230, 20)

	if ev := r.Release(230, 20, at(150)); ev.Kind != None {
		t.Errorf("Expected 30px travel below threshold to be silent, got %s", ev.Kind)
	}
}

func TestCancelClearsEverything(t *testing.T) {
	r := NewRecognizer(DefaultConfig())

	r.Press(100, 20, at(0))
	r.Cancel()

	if _, ok := r.Deadline(); ok {
		t.Error("Expected no deadline after cancel")
	}

	if ev := r.Expire(at(600)); ev.Kind != None {
		t.Errorf("Expected no event after cancel, got %s", ev.Kind)
	}

	if ev := r.Release(100, 20, at(700)); ev.Kind != None {
		t.Errorf("Expected release after cancel to be silent, got %s", ev.Kind)
	}
}

func TestSlowPressIsNotATap(t *testing.T) {
	r := NewRecognizer(Config{
		TapMax:          500 * time.Millisecond,
		DoubleTapWindow: 300 * time.Millisecond,
		LongPressHold:   800 * time.Millisecond, // hold threshold above tap max
		SwipeThreshold:  50,
		MoveSlop:        10,
		DoubleTapSlop:   30,
	})

	r.Press(100, 20, at(0))

	// Held past tap max but short of the long-press hold: nothing
	if ev := r.Release(100, 20, at(600)); ev.Kind != None {
		t.Errorf("Expected slow press to be silent, got %s", ev.Kind)
	}
}
