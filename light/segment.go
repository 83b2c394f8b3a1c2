package light

import "image/color"

// Segment is the player's cached view of the opcode currently
// governing the light's color: a time span plus the start/end colors
// to lerp between (or hold, for a non-fading span).
type Segment struct {
	StartTimeMsec uint32
	EndTimeMsec   uint32
	StartColor    color.RGBA
	EndColor      color.RGBA
	Fade          bool
}

// ColorAt returns the color at tMsec, which must already be clamped
// into [StartTimeMsec, EndTimeMsec].
func (s Segment) ColorAt(tMsec uint32) color.RGBA {
	if !s.Fade || s.EndTimeMsec <= s.StartTimeMsec {
		return s.StartColor
	}
	frac := float32(tMsec-s.StartTimeMsec) / float32(s.EndTimeMsec-s.StartTimeMsec)
	return lerpColor(s.StartColor, s.EndColor, frac)
}

// lerpColor performs a linear interpolation in 8-bit per channel,
// frac clamped to [0,1].
func lerpColor(a, b color.RGBA, frac float32) color.RGBA {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return color.RGBA{
		R: lerpByte(a.R, b.R, frac),
		G: lerpByte(a.G, b.G, frac),
		B: lerpByte(a.B, b.B, frac),
		A: lerpByte(a.A, b.A, frac),
	}
}

func lerpByte(a, b uint8, frac float32) uint8 {
	v := float32(a) + (float32(b)-float32(a))*frac
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v + 0.5)
}

func clampU32(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
