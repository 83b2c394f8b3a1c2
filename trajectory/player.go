package trajectory

import (
	"github.com/rs/zerolog"

	"github.com/dronecore/skyb/errs"
	"github.com/dronecore/skyb/poly"
)

// state is the player's position in the {Empty, AtSegment(i),
// Past-end} machine shared by every stream player in this module.
type state int

const (
	stateEmpty state = iota
	stateAtSegment
	statePastEnd
)

// Player is a stateful cursor over a Trajectory: it caches the
// current segment and its absolute start time so that repeated
// monotone-in-time queries are O(1) amortized, per the current-segment
// cache pattern shared by the light and yaw players.
type Player struct {
	traj         *Trajectory
	st           state
	index        int
	startTimeSec float32
	log          *zerolog.Logger
}

// Option configures a Player.
type Option func(*Player)

// WithLogger attaches a structured logger for segment-rebuild
// diagnostics. A nil logger (the default) disables logging.
func WithLogger(l *zerolog.Logger) Option {
	return func(p *Player) { p.log = l }
}

var nopLogger = zerolog.Nop()

func (p *Player) logEvent() *zerolog.Event {
	if p.log == nil {
		return nopLogger.Debug()
	}
	return p.log.Debug()
}

// NewPlayer creates a player over traj, positioned at its first
// segment (or Empty if traj has none).
func NewPlayer(traj *Trajectory, opts ...Option) *Player {
	p := &Player{traj: traj}
	for _, opt := range opts {
		opt(p)
	}
	p.Rewind()
	return p
}

// Rewind returns the player to its initial state: AtSegment(0) if the
// trajectory has segments, Empty otherwise.
func (p *Player) Rewind() {
	p.index = 0
	p.startTimeSec = 0
	if p.traj == nil || len(p.traj.Segments) == 0 {
		p.st = stateEmpty
		return
	}
	p.st = stateAtSegment
}

// HasMoreSegments reports whether BuildNextSegment would move to a new
// segment rather than Past-end.
func (p *Player) HasMoreSegments() bool {
	return p.st == stateAtSegment && p.index+1 < len(p.traj.Segments)
}

// BuildNextSegment advances AtSegment(i) to AtSegment(i+1) or
// Past-end, per the player state machine.
func (p *Player) BuildNextSegment() error {
	if p.st != stateAtSegment {
		return errs.New(errs.INVAL, "trajectory: no current segment to advance from")
	}
	cur := p.traj.Segments[p.index]
	p.startTimeSec += cur.DurationSec
	if p.index+1 >= len(p.traj.Segments) {
		p.st = statePastEnd
		p.logEvent().Msg("trajectory: past end of segments")
		return nil
	}
	p.index++
	p.logEvent().Int("index", p.index).Msg("trajectory: segment rebuilt")
	return nil
}

// GetCurrentSegment returns the segment the cursor is positioned on,
// and false if the player is Empty or Past-end.
func (p *Player) GetCurrentSegment() (Segment, bool) {
	if p.st != stateAtSegment {
		return Segment{}, false
	}
	return p.traj.Segments[p.index], true
}

// seek moves the cursor so that t falls within [start, start+duration)
// of the current segment, per the spec's seeking algorithm: rewind and
// advance for backward queries, step-by-step advance for forward ones.
func (p *Player) seek(t float32) {
	if p.st == stateEmpty {
		return
	}
	if p.st == statePastEnd {
		if t >= p.traj.TotalDurationSec {
			return
		}
		p.Rewind()
	}
	if t < p.startTimeSec {
		p.Rewind()
	}
	for p.st == stateAtSegment {
		seg := p.traj.Segments[p.index]
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

// GetPositionAt returns the 4-D position at time t, clamping to the
// start point before time 0 and to the end point past the trajectory's
// total duration. A trajectory with no segments answers its start
// point; a player with no trajectory answers the zero point.
func (p *Player) GetPositionAt(t float32) poly.Point4 {
	if p.st == stateEmpty {
		if p.traj != nil {
			return p.traj.Start
		}
		return poly.Point4{}
	}
	if t < 0 {
		t = 0
	}
	p.seek(t)
	if p.st == statePastEnd {
		return p.traj.EndPoint()
	}
	seg := p.traj.Segments[p.index]
	localT := clampLocalT(t-p.startTimeSec, seg.DurationSec)
	return seg.Curve.Eval(localT)
}

// GetVelocityAt returns the first time-derivative of position at t.
// Empty and Past-end both answer zero, per the state machine's
// convention that boundary states carry no motion.
func (p *Player) GetVelocityAt(t float32) poly.Point4 {
	if p.st == stateEmpty {
		return poly.Point4{}
	}
	if t < 0 {
		t = 0
	}
	p.seek(t)
	if p.st == statePastEnd {
		return poly.Point4{}
	}
	seg := p.traj.Segments[p.index]
	localT := clampLocalT(t-p.startTimeSec, seg.DurationSec)
	return seg.Curve.Derivative().Eval(localT)
}

// GetAccelerationAt returns the second time-derivative of position
// at t.
func (p *Player) GetAccelerationAt(t float32) poly.Point4 {
	if p.st == stateEmpty {
		return poly.Point4{}
	}
	if t < 0 {
		t = 0
	}
	p.seek(t)
	if p.st == statePastEnd {
		return poly.Point4{}
	}
	seg := p.traj.Segments[p.index]
	localT := clampLocalT(t-p.startTimeSec, seg.DurationSec)
	return seg.Curve.Derivative().Derivative().Eval(localT)
}
