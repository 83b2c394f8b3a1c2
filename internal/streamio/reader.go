// Package streamio implements the byte-cursor reader shared by the
// stream decoders for trajectory segments, yaw deltas, event records
// and RTH-plan entries.
//
// Unlike the bit-packed readers a pixel codec needs, every field in
// this container format is byte-aligned, so the reader is a plain
// bounds-checked cursor over a byte slice rather than a bit-level
// sliding window — the same "cursor + pos + eof" shape, simplified to
// the granularity this format actually uses.
package streamio

import (
	"encoding/binary"

	"github.com/dronecore/skyb/errs"
)

// Reader is a forward-only (but repositionable) bounds-checked cursor
// over a byte slice.
type Reader struct {
	buf []byte
	pos int
}

// New creates a Reader positioned at the start of buf.
func New(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos returns the current byte offset.
func (r *Reader) Pos() int { return r.pos }

// Len returns the total buffer length.
func (r *Reader) Len() int { return len(r.buf) }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// Seek repositions the cursor to an absolute byte offset.
func (r *Reader) Seek(pos int) error {
	if pos < 0 || pos > len(r.buf) {
		return errs.New(errs.INVAL, "streamio: seek to %d out of range [0,%d]", pos, len(r.buf))
	}
	r.pos = pos
	return nil
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) error {
	return r.Seek(r.pos + n)
}

func (r *Reader) need(n int) error {
	if r.Remaining() < n {
		return errs.New(errs.READ, "streamio: need %d bytes, have %d", n, r.Remaining())
	}
	return nil
}

// ReadBytes returns the next n bytes without copying.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadU8 reads a single byte.
func (r *Reader) ReadU8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

// ReadU16 reads a little-endian uint16.
func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadI16 reads a little-endian int16.
func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

// ReadU32 reads a little-endian uint32.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}
