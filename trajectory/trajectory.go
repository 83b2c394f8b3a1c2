package trajectory

import (
	"github.com/dronecore/skyb/internal/streamio"
	"github.com/dronecore/skyb/poly"
)

// Trajectory is a fully decoded trajectory block: a start point plus
// the chain of segments that follow it.
type Trajectory struct {
	Scale            uint8
	Flags            uint8
	Start            poly.Point4
	Segments         []Segment
	TotalDurationSec float32
}

// Decode parses one trajectory block body (as produced by
// container.Parser's trajectory block) into a Trajectory.
func Decode(body []byte) (*Trajectory, error) {
	r := streamio.New(body)
	scale, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	flags, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	xi, err := r.ReadI16()
	if err != nil {
		return nil, err
	}
	yi, err := r.ReadI16()
	if err != nil {
		return nil, err
	}
	zi, err := r.ReadI16()
	if err != nil {
		return nil, err
	}
	yawDdeg, err := r.ReadU16()
	if err != nil {
		return nil, err
	}

	scaleF := float32(scale)
	start := poly.Point4{
		X:   float32(xi) * scaleF,
		Y:   float32(yi) * scaleF,
		Z:   float32(zi) * scaleF,
		Yaw: float32(yawDdeg) / 10,
	}

	t := &Trajectory{Scale: scale, Flags: flags, Start: start}
	prev := start
	for r.Remaining() > 0 {
		seg, err := decodeSegment(r, scale, prev)
		if err != nil {
			return nil, err
		}
		t.Segments = append(t.Segments, seg)
		t.TotalDurationSec += seg.DurationSec
		prev = seg.EndPoint
	}
	return t, nil
}

// EndPoint returns the trajectory's final point, or its start point
// if it has no segments.
func (t *Trajectory) EndPoint() poly.Point4 {
	if len(t.Segments) == 0 {
		return t.Start
	}
	return t.Segments[len(t.Segments)-1].EndPoint
}
