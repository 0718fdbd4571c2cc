// ABOUTME: Playback position clock with seek and snap-to-candidate behavior
// ABOUTME: Models play state only; audio byte transport lives outside this tool

// Package player tracks the listen position for a review session. It is a
// pure position clock driven by UI ticks: the editor treats the audio itself
// as an opaque seekable resource.
package player

// Player tracks position and play state for one media resource.
// Not safe for concurrent use; it lives on the UI loop.
type Player struct {
	position float64
	duration float64
	playing  bool

	// preserveSeek suppresses the snap-to-start on the very next play after
	// an externally requested seek. It is consumed exactly once, even if the
	// user seeks again before pressing play (matches the web editor).
	preserveSeek bool
}

// New creates a player for a resource of the given duration in seconds.
// A non-positive duration means the length is unknown and seeks are only
// clamped at zero.
func New(duration float64) *Player {
	return &Player{duration: duration}
}

// Position returns the current listen position in seconds
func (p *Player) Position() float64 {
	return p.position
}

// Duration returns the media duration (0 when unknown)
func (p *Player) Duration() float64 {
	return p.duration
}

// Playing reports whether playback is running
func (p *Player) Playing() bool {
	return p.playing
}

// clamp bounds t to the playable range
func (p *Player) clamp(t float64) float64 {
	if t < 0 {
		return 0
	}

	if p.duration > 0 && t > p.duration {
		return p.duration
	}

	return t
}

// Seek moves the position directly. Progress-bar clicks and drag-seeks all
// route through here.
func (p *Player) Seek(t float64) {
	p.position = p.clamp(t)
}

// SeekPreserving moves the position on behalf of an external jump request
// and arms the one-shot preserve flag so the next play does not snap away
// from it.
func (p *Player) SeekPreserving(t float64) {
	p.Seek(t)
	p.preserveSeek = true
}

// Toggle starts or pauses playback. When starting, the position snaps to
// start if it lies outside [start, end], so pressing play reliably previews
// the candidate region -- unless the preserve flag is armed, which is
// consumed here whether or not a snap would have happened.
func (p *Player) Toggle(start, end float64) {
	if p.playing {
		p.playing = false
		return
	}

	preserved := p.preserveSeek
	p.preserveSeek = false

	if !preserved && (p.position < start || p.position > end) {
		p.position = p.clamp(start)
	}

	p.playing = true
}

// Pause stops playback without moving the position
func (p *Player) Pause() {
	p.playing = false
}

// Advance moves the clock forward by dt seconds of wall time while playing.
// Playback stops at the end of known-length media.
func (p *Player) Advance(dt float64) {
	if !p.playing || dt <= 0 {
		return
	}

	p.position += dt

	if p.duration > 0 && p.position >= p.duration {
		p.position = p.duration
		p.playing = false
	}
}
