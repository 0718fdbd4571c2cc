// ABOUTME: Tests for the playback clock
// ABOUTME: Covers seek clamping, snap-to-start, and preserve-once semantics

package player

import "testing"

func TestSeekClamping(t *testing.T) {
	p := New(100)

	p.Seek(-5)
	if p.Position() != 0 {
		t.Errorf("Expected position clamped at 0, got %.1f", p.Position())
	}

	p.Seek(250)
	if p.Position() != 100 {
		t.Errorf("Expected position clamped at duration, got %.1f", p.Position())
	}

	// Unknown duration: only the lower bound clamps
	u := New(0)
	u.Seek(99999)

	if u.Position() != 99999 {
		t.Errorf("Expected unclamped seek with unknown duration, got %.1f", u.Position())
	}
}

func TestToggleSnapsToCandidateStart(t *testing.T) {
	p := New(3600)

	p.Seek(500)
	p.Toggle(10, 15)

	if !p.Playing() {
		t.Fatal("Expected playback running after toggle")
	}

	if p.Position() != 10 {
		t.Errorf("Expected snap to candidate start 10, got %.1f", p.Position())
	}

	// Inside the region: no snap
	p.Pause()
	p.Seek(12)
	p.Toggle(10, 15)

	if p.Position() != 12 {
		t.Errorf("Expected no snap inside region, got %.1f", p.Position())
	}
}

func TestTogglePausesWhilePlaying(t *testing.T) {
	p := New(3600)

	p.Toggle(10, 15)
	p.Toggle(10, 15)

	if p.Playing() {
		t.Error("Expected second toggle to pause")
	}
}

func TestPreserveSeekSuppressesSnapOnce(t *testing.T) {
	// Scenario: external jump to 12.3 with candidate region [10, 15] moved
	// elsewhere; the immediately following play must not snap
	p := New(3600)

	p.SeekPreserving(12.3)
	p.Toggle(30, 35)

	if p.Position() != 12.3 {
		t.Errorf("Expected preserved position 12.3, got %.1f", p.Position())
	}

	// The flag is one-shot: the next play snaps again
	p.Pause()
	p.Toggle(30, 35)

	if p.Position() != 30 {
		t.Errorf("Expected snap to 30 after flag consumed, got %.1f", p.Position())
	}
}

func TestPreserveFlagConsumedEvenAfterLaterSeek(t *testing.T) {
	// Literal behavior carried over from the web editor: the flag is consumed
	// on the very next play even if the user seeked again in between
	p := New(3600)

	p.SeekPreserving(12.3)
	p.Seek(200)
	p.Toggle(30, 35)

	if p.Position() != 200 {
		t.Errorf("Expected position 200 preserved by armed flag, got %.1f", p.Position())
	}

	p.Pause()
	p.Seek(200)
	p.Toggle(30, 35)

	if p.Position() != 30 {
		t.Errorf("Expected snap once flag is gone, got %.1f", p.Position())
	}
}

func TestAdvance(t *testing.T) {
	p := New(10)

	p.Toggle(0, 10)
	p.Advance(4)

	if p.Position() != 4 {
		t.Errorf("Expected position 4, got %.1f", p.Position())
	}

	// Paused clock does not move
	p.Pause()
	p.Advance(2)

	if p.Position() != 4 {
		t.Errorf("Expected paused position 4, got %.1f", p.Position())
	}

	// Playback stops at the media end
	p.Toggle(0, 10)
	p.Advance(100)

	if p.Position() != 10 || p.Playing() {
		t.Errorf("Expected stop at duration, got pos %.1f playing %v", p.Position(), p.Playing())
	}
}
