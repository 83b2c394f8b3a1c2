// Package trajectory decodes and plays back a drone's 3-D position
// plus yaw as a sequence of time-bounded Bézier segments.
//
// Decoding mirrors the teacher's typed length-prefixed record walk
// (see the retrieval pack's deepteams/webp internal/container chunk
// reader), specialized to this format's fixed per-axis delta layout
// instead of a generic tag+size+payload chunk.
package trajectory

import (
	"github.com/dronecore/skyb/errs"
	"github.com/dronecore/skyb/internal/streamio"
	"github.com/dronecore/skyb/poly"
)

// axisFormat is the 2-bit per-axis encoding tag packed into a
// segment's header byte.
type axisFormat uint8

const (
	fmtConstant axisFormat = 0
	fmtLinear   axisFormat = 1
	fmtCubic    axisFormat = 2
	fmtReserved axisFormat = 3
)

func (f axisFormat) deltaCount() (int, error) {
	switch f {
	case fmtConstant:
		return 0, nil
	case fmtLinear:
		return 1, nil
	case fmtCubic:
		return 3, nil
	default:
		return 0, errs.New(errs.PARSE, "trajectory: reserved axis format")
	}
}

// Segment is one decoded trajectory segment: a 4-axis polynomial
// already reparameterized over [0, DurationSec], plus the absolute
// endpoint it reaches (cached so the next segment's decode and every
// past-end query can avoid re-evaluating the curve).
type Segment struct {
	DurationSec float32
	Curve       poly.Poly4
	EndPoint    poly.Point4
}

// decodeAxisPoints reads format.deltaCount() i16 deltas, chaining each
// from the previous control point (the first point is always prev,
// the axis's absolute value at the start of this segment), and scales
// spatial deltas into millimeters. Yaw decoding passes scale=1, since
// yaw deltas are already in tenths of a degree.
func decodeAxisPoints(r *streamio.Reader, format axisFormat, prev, scale float32) ([]float32, error) {
	n, err := format.deltaCount()
	if err != nil {
		return nil, err
	}
	points := make([]float32, 1, n+1)
	points[0] = prev
	cur := prev
	for i := 0; i < n; i++ {
		d, err := r.ReadI16()
		if err != nil {
			return nil, err
		}
		cur += float32(d) * scale
		points = append(points, cur)
	}
	return points, nil
}

// decodeSegment reads one segment record starting at r's current
// position, given the running scale and the previous segment's
// (or the trajectory start's) endpoint.
func decodeSegment(r *streamio.Reader, scale uint8, prev poly.Point4) (Segment, error) {
	header, err := r.ReadU8()
	if err != nil {
		return Segment{}, err
	}
	xFmt := axisFormat(header & 0x3)
	yFmt := axisFormat((header >> 2) & 0x3)
	zFmt := axisFormat((header >> 4) & 0x3)
	yawFmt := axisFormat((header >> 6) & 0x3)

	durationMsec, err := r.ReadU16()
	if err != nil {
		return Segment{}, err
	}
	if durationMsec == 0 {
		return Segment{}, errs.New(errs.PARSE, "trajectory: zero-duration segment")
	}
	durationSec := float32(durationMsec) / 1000

	scaleF := float32(scale)

	xPts, err := decodeAxisPoints(r, xFmt, prev.X, scaleF)
	if err != nil {
		return Segment{}, err
	}
	yPts, err := decodeAxisPoints(r, yFmt, prev.Y, scaleF)
	if err != nil {
		return Segment{}, err
	}
	zPts, err := decodeAxisPoints(r, zFmt, prev.Z, scaleF)
	if err != nil {
		return Segment{}, err
	}
	yawPts, err := decodeAxisPoints(r, yawFmt, prev.Yaw*10, 1)
	if err != nil {
		return Segment{}, err
	}

	xPoly, err := poly.Bezier(durationSec, xPts)
	if err != nil {
		return Segment{}, err
	}
	yPoly, err := poly.Bezier(durationSec, yPts)
	if err != nil {
		return Segment{}, err
	}
	zPoly, err := poly.Bezier(durationSec, zPts)
	if err != nil {
		return Segment{}, err
	}
	yawPolyDdeg, err := poly.Bezier(durationSec, yawPts)
	if err != nil {
		return Segment{}, err
	}
	yawPoly := yawPolyDdeg.Scale(0.1)

	curve := poly.Poly4{X: xPoly, Y: yPoly, Z: zPoly, Yaw: yawPoly}
	return Segment{
		DurationSec: durationSec,
		Curve:       curve,
		EndPoint:    curve.Eval(durationSec),
	}, nil
}
