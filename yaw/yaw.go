// Package yaw decodes and plays back the yaw-control stream: a
// sequence of linear heading deltas in tenths of a degree, with an
// optional auto-yaw mode whose fusion with trajectory heading is left
// to the caller (see Control.AutoYaw).
package yaw

import (
	"github.com/dronecore/skyb/internal/streamio"
)

// Segment is one decoded yaw segment: a linear change in heading over
// a fixed duration, in ddeg (tenths of a degree) to match the wire
// format and avoid repeated float rounding across many segments.
type Segment struct {
	DurationSec  float32
	StartYawDdeg float32
	EndYawDdeg   float32
}

// YawRateDdegPerSec returns the segment's constant yaw rate.
func (s Segment) YawRateDdegPerSec() float32 {
	if s.DurationSec == 0 {
		return 0
	}
	return (s.EndYawDdeg - s.StartYawDdeg) / s.DurationSec
}

// Control is a fully decoded yaw control block.
type Control struct {
	AutoYaw          bool
	OffsetDdeg       float32
	Segments         []Segment
	TotalDurationSec float32
}

// Decode parses a yaw-control block body: {flags:u8 (bit 0 =
// auto_yaw), offset:i16 ddeg, deltas*} where each delta is
// {duration:u16 msec, yaw_change:i16 ddeg}.
func Decode(body []byte) (*Control, error) {
	r := streamio.New(body)
	flags, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	offset, err := r.ReadI16()
	if err != nil {
		return nil, err
	}

	c := &Control{
		AutoYaw:    flags&0x1 != 0,
		OffsetDdeg: float32(offset),
	}
	running := c.OffsetDdeg
	for r.Remaining() > 0 {
		durationMsec, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		change, err := r.ReadI16()
		if err != nil {
			return nil, err
		}
		start := running
		end := start + float32(change)
		c.Segments = append(c.Segments, Segment{
			DurationSec:  float32(durationMsec) / 1000,
			StartYawDdeg: start,
			EndYawDdeg:   end,
		})
		c.TotalDurationSec += float32(durationMsec) / 1000
		running = end
	}
	return c, nil
}

// EndYawDdeg returns the control's final absolute yaw, or its offset
// if it has no segments.
func (c *Control) EndYawDdeg() float32 {
	if len(c.Segments) == 0 {
		return c.OffsetDdeg
	}
	return c.Segments[len(c.Segments)-1].EndYawDdeg
}
