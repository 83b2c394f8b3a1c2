// Package rth synthesizes a return-to-home (RTH) plan entry into a
// synthetic trajectory: the same Bézier-segment encoding the main
// flight trajectory uses, so trajectory.Player can evaluate it without
// any special-casing.
package rth

import (
	"github.com/dronecore/skyb/poly"
	"github.com/dronecore/skyb/trajectory"
)

// Action selects the RTH entry's terminal maneuver.
type Action int

const (
	ActionLand Action = iota
	ActionHorizontalMove
	ActionMove3D
)

// Entry is one RTH-plan record, as decoded from an rth-plan block (see
// container.TypeRTHPlan).
type Entry struct {
	Action             Action
	StartPoint         poly.Point4
	Target             poly.Point4
	TargetAltitudeMm   float32
	PreDelaySec        float32
	PostDelaySec       float32
	PreNeck            bool
	PreNeckDurationSec float32
	DurationSec        float32
}

// Synthesize converts e into a Trajectory whose segments encode, in
// order: an optional pre-delay hover, an optional vertical neck, the
// action itself, and an optional post-delay hover.
func Synthesize(e Entry) (*trajectory.Trajectory, error) {
	t := &trajectory.Trajectory{Start: e.StartPoint}
	cur := e.StartPoint

	if e.PreDelaySec > 0 {
		seg, err := hold(e.PreDelaySec, cur)
		if err != nil {
			return nil, err
		}
		t.Segments = append(t.Segments, seg)
		t.TotalDurationSec += seg.DurationSec
	}

	if e.PreNeck && e.PreNeckDurationSec > 0 {
		neckEnd := cur
		neckEnd.Z = e.TargetAltitudeMm
		seg, err := move(e.PreNeckDurationSec, cur, neckEnd)
		if err != nil {
			return nil, err
		}
		t.Segments = append(t.Segments, seg)
		t.TotalDurationSec += seg.DurationSec
		cur = neckEnd
	}

	actionEnd := actionEndpoint(e, cur)
	if e.DurationSec > 0 {
		seg, err := move(e.DurationSec, cur, actionEnd)
		if err != nil {
			return nil, err
		}
		t.Segments = append(t.Segments, seg)
		t.TotalDurationSec += seg.DurationSec
	}
	cur = actionEnd

	if e.PostDelaySec > 0 {
		seg, err := hold(e.PostDelaySec, cur)
		if err != nil {
			return nil, err
		}
		t.Segments = append(t.Segments, seg)
		t.TotalDurationSec += seg.DurationSec
	}

	return t, nil
}

// actionEndpoint resolves the point the action segment flies to,
// given the entry's Action.
func actionEndpoint(e Entry, cur poly.Point4) poly.Point4 {
	switch e.Action {
	case ActionLand:
		end := cur
		end.X, end.Y = e.Target.X, e.Target.Y
		end.Z = 0
		return end
	case ActionHorizontalMove:
		end := cur
		end.X, end.Y = e.Target.X, e.Target.Y
		return end
	default: // ActionMove3D
		return e.Target
	}
}

func hold(durationSec float32, p poly.Point4) (trajectory.Segment, error) {
	curve, err := buildCurve(durationSec, p, p)
	if err != nil {
		return trajectory.Segment{}, err
	}
	return trajectory.Segment{DurationSec: durationSec, Curve: curve, EndPoint: p}, nil
}

func move(durationSec float32, a, b poly.Point4) (trajectory.Segment, error) {
	curve, err := buildCurve(durationSec, a, b)
	if err != nil {
		return trajectory.Segment{}, err
	}
	return trajectory.Segment{DurationSec: durationSec, Curve: curve, EndPoint: b}, nil
}

func buildCurve(durationSec float32, a, b poly.Point4) (poly.Poly4, error) {
	x, err := poly.Bezier(durationSec, []float32{a.X, b.X})
	if err != nil {
		return poly.Poly4{}, err
	}
	y, err := poly.Bezier(durationSec, []float32{a.Y, b.Y})
	if err != nil {
		return poly.Poly4{}, err
	}
	z, err := poly.Bezier(durationSec, []float32{a.Z, b.Z})
	if err != nil {
		return poly.Poly4{}, err
	}
	yaw, err := poly.Bezier(durationSec, []float32{a.Yaw, b.Yaw})
	if err != nil {
		return poly.Poly4{}, err
	}
	return poly.Poly4{X: x, Y: y, Z: z, Yaw: yaw}, nil
}
