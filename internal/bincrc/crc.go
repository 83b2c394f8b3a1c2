// Package bincrc implements the checksum and small numeric utilities
// shared by the binary container parser: the ArduPilot variant of
// CRC-32, a scale-update helper for re-fitting stored coordinates into
// an i16 range, and 2-D/3-D interval and bounding-box expansion.
//
// The ArduPilot variant reuses the standard CRC-32 (IEEE 802.3)
// polynomial table from the standard library but differs in its seed
// (0, not 0xFFFFFFFF) and its output (no final XOR), so it cannot be
// produced by stdlib hash/crc32's Checksum/ChecksumIEEE directly; the
// table itself is reused rather than hand-rolled.
package bincrc

import (
	"hash/crc32"
	"math"
)

var table = crc32.MakeTable(crc32.IEEE)

// Update folds b into the running CRC state (seeded at 0 for a fresh
// computation) using the ArduPilot polynomial/seed/xor-out convention.
func Update(crc uint32, b []byte) uint32 {
	for _, v := range b {
		crc = table[byte(crc)^v] ^ (crc >> 8)
	}
	return crc
}

// Checksum computes the ArduPilot-variant CRC-32 of b in one call.
func Checksum(b []byte) uint32 {
	return Update(0, b)
}

// ScaleFor returns the smallest integer scale in [1, 127] such that
// every value in coords, divided by scale, fits in an int16. It
// returns ok=false if no such scale exists (i.e. scale 127 still
// overflows), matching the encoder-side invariant described in spec
// §9 ("Scale fitting").
func ScaleFor(coords []int32) (scale int, ok bool) {
	for scale = 1; scale <= 127; scale++ {
		fits := true
		for _, c := range coords {
			v := c / int32(scale)
			if v < -32768 || v > 32767 {
				fits = false
				break
			}
		}
		if fits {
			return scale, true
		}
	}
	return 0, false
}

// Interval is a closed scalar range [Lo, Hi].
type Interval struct {
	Lo, Hi float32
}

// Expand grows iv (if necessary) to also contain v.
func (iv Interval) Expand(v float32) Interval {
	if v < iv.Lo {
		iv.Lo = v
	}
	if v > iv.Hi {
		iv.Hi = v
	}
	return iv
}

// EmptyInterval returns an interval that Expand will unconditionally
// widen to its first sample.
func EmptyInterval() Interval {
	return Interval{Lo: float32(math.Inf(1)), Hi: float32(math.Inf(-1))}
}

// BoundingBox is the axis-aligned extent of a flight in three spatial
// dimensions.
type BoundingBox struct {
	X, Y, Z Interval
}

// EmptyBoundingBox returns a bounding box ready to Expand from its
// first sample.
func EmptyBoundingBox() BoundingBox {
	return BoundingBox{X: EmptyInterval(), Y: EmptyInterval(), Z: EmptyInterval()}
}

// Expand grows box to also contain (x, y, z).
func (box BoundingBox) Expand(x, y, z float32) BoundingBox {
	box.X = box.X.Expand(x)
	box.Y = box.Y.Expand(y)
	box.Z = box.Z.Expand(z)
	return box
}
