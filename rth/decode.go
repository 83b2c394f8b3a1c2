package rth

import (
	"github.com/dronecore/skyb/errs"
	"github.com/dronecore/skyb/internal/streamio"
	"github.com/dronecore/skyb/poly"
)

// Decode parses an RTH-plan block body into a list of Entry records.
//
// The container's RTH-plan block is sketched, not fully specified:
// spec leaves its wire layout undecided. This implementation picks one
// consistent layout, matching the events block's convention of a
// version byte followed by a count and fixed-size records:
//
//	version: u8 (unused, reserved for future revisions)
//	count:   u16 LE
//	count × {
//	  action:              u8  (0=land, 1=horizontal move, 2=3-D move)
//	  start_point:         i16,i16,i16 mm (x,y,z)
//	  target:              i16,i16,i16 mm (x,y,z)
//	  target_altitude_mm:  i16
//	  pre_delay_msec:      u16
//	  post_delay_msec:     u16
//	  pre_neck:            u8  (0 or 1)
//	  pre_neck_duration_msec: u16
//	  duration_msec:       u16
//	}
func Decode(body []byte) ([]Entry, error) {
	r := streamio.New(body)
	if _, err := r.ReadU8(); err != nil { // version
		return nil, err
	}
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, count)
	for i := uint16(0); i < count; i++ {
		action, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		start, err := readPoint(r)
		if err != nil {
			return nil, err
		}
		target, err := readPoint(r)
		if err != nil {
			return nil, err
		}
		altitude, err := r.ReadI16()
		if err != nil {
			return nil, err
		}
		preDelay, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		postDelay, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		preNeck, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		neckDuration, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		duration, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		a, err := actionFromByte(action)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			Action:             a,
			StartPoint:         start,
			Target:             target,
			TargetAltitudeMm:   float32(altitude),
			PreDelaySec:        float32(preDelay) / 1000,
			PostDelaySec:       float32(postDelay) / 1000,
			PreNeck:            preNeck != 0,
			PreNeckDurationSec: float32(neckDuration) / 1000,
			DurationSec:        float32(duration) / 1000,
		})
	}
	return entries, nil
}

func readPoint(r *streamio.Reader) (poly.Point4, error) {
	x, err := r.ReadI16()
	if err != nil {
		return poly.Point4{}, err
	}
	y, err := r.ReadI16()
	if err != nil {
		return poly.Point4{}, err
	}
	z, err := r.ReadI16()
	if err != nil {
		return poly.Point4{}, err
	}
	return poly.Point4{X: float32(x), Y: float32(y), Z: float32(z)}, nil
}

func actionFromByte(b uint8) (Action, error) {
	switch b {
	case 0:
		return ActionLand, nil
	case 1:
		return ActionHorizontalMove, nil
	case 2:
		return ActionMove3D, nil
	default:
		return 0, errs.New(errs.PARSE, "rth: unknown action byte %d", b)
	}
}
