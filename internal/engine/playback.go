package engine

import (
	"time"

	"github.com/julianstephens/skateday/internal/constants"
)

// Phase is the playback state
type Phase int

const (
	Idle Phase = iota
	Running
	Finished
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Token identifies one playback run. Frames carrying an older token belong
// to a run that was superseded or reset and must be ignored.
type Token uint64

// Playback holds the progress of the skater along the current path. It is
// driven from a single goroutine: commands and frame ticks are never
// delivered concurrently.
type Playback struct {
	phase    Phase
	progress float64
	start    time.Time
	duration time.Duration
	token    Token
}

// NewPlayback returns an idle playback lasting duration. A non-positive
// duration selects the default of four seconds.
func NewPlayback(duration time.Duration) *Playback {
	if duration <= 0 {
		duration = constants.PlaybackDuration
	}
	return &Playback{duration: duration}
}

func (p *Playback) Phase() Phase            { return p.phase }
func (p *Playback) Progress() float64       { return p.progress }
func (p *Playback) Token() Token            { return p.token }
func (p *Playback) Duration() time.Duration { return p.duration }
func (p *Playback) Running() bool           { return p.phase == Running }

// CanPlay reports whether a path of the given points can be played now.
func (p *Playback) CanPlay(points []Point) bool {
	return len(points) >= 2 && p.phase != Running
}

// CanReplay reports whether the previous run completed and may be restarted.
func (p *Playback) CanReplay(points []Point) bool {
	return p.CanPlay(points) && p.progress == 1
}

// Play starts a new run at now. It returns the run's token, or false if
// playing is not allowed, in which case nothing changes.
func (p *Playback) Play(points []Point, now time.Time) (Token, bool) {
	if !p.CanPlay(points) {
		return p.token, false
	}
	p.token++
	p.phase = Running
	p.progress = 0
	p.start = now
	return p.token, true
}

// Replay restarts a completed run.
func (p *Playback) Replay(points []Point, now time.Time) (Token, bool) {
	if !p.CanReplay(points) {
		return p.token, false
	}
	return p.Play(points, now)
}

// Advance moves the run identified by tok forward to now. It returns true
// while another frame should be scheduled. Stale tokens are ignored.
func (p *Playback) Advance(tok Token, now time.Time) bool {
	if tok != p.token || p.phase != Running {
		return false
	}

	elapsed := now.Sub(p.start)
	next := float64(elapsed) / float64(p.duration)
	if next < p.progress {
		next = p.progress
	}
	if next >= 1 || elapsed >= p.duration {
		p.progress = 1
		p.phase = Finished
		return false
	}
	p.progress = next
	return true
}

// Reset cancels any pending frames and returns to idle at the start of the
// path. It is used when the active day changes.
func (p *Playback) Reset() {
	p.token++
	p.phase = Idle
	p.progress = 0
	p.start = time.Time{}
}
