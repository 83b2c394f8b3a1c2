package yaw

import (
	"github.com/chewxy/math32"

	"github.com/dronecore/skyb/errs"
)

type state int

const (
	stateEmpty state = iota
	stateAtSegment
	statePastEnd
)

// Player is a stateful cursor over a Control, sharing the
// current-segment cache / seek pattern with the trajectory and light
// players.
type Player struct {
	ctrl         *Control
	st           state
	index        int
	startTimeSec float32
}

// NewPlayer creates a player positioned at the control's first
// segment (Empty if it has none).
func NewPlayer(ctrl *Control) *Player {
	p := &Player{ctrl: ctrl}
	p.Rewind()
	return p
}

// Rewind resets the player to AtSegment(0) or Empty.
func (p *Player) Rewind() {
	p.index = 0
	p.startTimeSec = 0
	if p.ctrl == nil || len(p.ctrl.Segments) == 0 {
		p.st = stateEmpty
		return
	}
	p.st = stateAtSegment
}

// HasMoreSegments reports whether BuildNextSegment would move to a
// new segment rather than Past-end.
func (p *Player) HasMoreSegments() bool {
	return p.st == stateAtSegment && p.index+1 < len(p.ctrl.Segments)
}

// BuildNextSegment advances AtSegment(i) to AtSegment(i+1) or
// Past-end.
func (p *Player) BuildNextSegment() error {
	if p.st != stateAtSegment {
		return errs.New(errs.INVAL, "yaw: no current segment to advance from")
	}
	cur := p.ctrl.Segments[p.index]
	p.startTimeSec += cur.DurationSec
	if p.index+1 >= len(p.ctrl.Segments) {
		p.st = statePastEnd
		return nil
	}
	p.index++
	return nil
}

// GetCurrentSegment returns the segment the cursor is positioned on.
func (p *Player) GetCurrentSegment() (Segment, bool) {
	if p.st != stateAtSegment {
		return Segment{}, false
	}
	return p.ctrl.Segments[p.index], true
}

func (p *Player) seek(t float32) {
	if p.st == stateEmpty {
		return
	}
	if p.st == statePastEnd {
		if t >= p.ctrl.TotalDurationSec {
			return
		}
		p.Rewind()
	}
	if t < p.startTimeSec {
		p.Rewind()
	}
	for p.st == stateAtSegment {
		seg := p.ctrl.Segments[p.index]
		if t < p.startTimeSec+seg.DurationSec {
			return
		}
		if err := p.BuildNextSegment(); err != nil {
			return
		}
	}
}

func clampLocalT(t, duration float32) float32 {
	if t < 0 {
		return 0
	}
	if t > duration {
		return duration
	}
	return t
}

// GetYawAtDdeg returns the yaw, in tenths of a degree, at time t. In
// auto-yaw mode the manual delta stream is not authoritative (see
// Control.AutoYaw) and this always returns 0 — fusing it with the
// trajectory's heading is a caller concern, per this format's own
// ambiguity around that composition.
func (p *Player) GetYawAtDdeg(t float32) float32 {
	if p.ctrl != nil && p.ctrl.AutoYaw {
		return 0
	}
	if p.st == stateEmpty {
		if p.ctrl != nil {
			return p.ctrl.OffsetDdeg
		}
		return 0
	}
	if t < 0 {
		t = 0
	}
	p.seek(t)
	if p.st == statePastEnd {
		return p.ctrl.EndYawDdeg()
	}
	seg := p.ctrl.Segments[p.index]
	localT := clampLocalT(t-p.startTimeSec, seg.DurationSec)
	if seg.DurationSec == 0 {
		return seg.StartYawDdeg
	}
	frac := localT / seg.DurationSec
	return seg.StartYawDdeg + (seg.EndYawDdeg-seg.StartYawDdeg)*frac
}

// GetYawRateDdegPerSec returns the yaw rate at time t. Auto-yaw mode
// returns 0, matching GetYawAtDdeg.
func (p *Player) GetYawRateDdegPerSec(t float32) float32 {
	if p.ctrl != nil && p.ctrl.AutoYaw {
		return 0
	}
	if p.st == stateEmpty {
		return 0
	}
	if t < 0 {
		t = 0
	}
	p.seek(t)
	if p.st == statePastEnd {
		return 0
	}
	seg := p.ctrl.Segments[p.index]
	return seg.YawRateDdegPerSec()
}

// FuseAutoYawDeg computes the trajectory-heading yaw (in degrees) a
// caller should use in auto-yaw mode, from horizontal velocity
// components in mm/s. This is the composition the format's own
// documentation leaves to the caller (see Control.AutoYaw); it lives
// here only as a convenience, never invoked internally by GetYawAtDdeg.
func FuseAutoYawDeg(velocityX, velocityY float32) float32 {
	return math32.Atan2(velocityY, velocityX) * (180 / math32.Pi)
}
