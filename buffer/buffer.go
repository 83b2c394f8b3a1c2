// Package buffer implements the owned/view byte container used as the
// input to the binary container parser (see package container) and as
// scratch storage for decoded block bodies.
//
// A Buffer is one of three modes: owned-growable (created with New),
// owned-fixed (created with NewFromBytes, taking ownership of an
// existing allocation), or a non-owning view over memory the caller
// guarantees will outlive it (created with NewView). Views forbid
// Resize and Clear.
package buffer

import (
	"math"

	"github.com/dronecore/skyb/errs"
)

// Buffer is a byte sequence with the ownership invariant size <= cap(data).
type Buffer struct {
	data   []byte
	isView bool
}

// New allocates a zeroed owned buffer of at least 1 byte.
func New(initialSize int) *Buffer {
	n := initialSize
	if n < 1 {
		n = 1
	}
	return &Buffer{data: make([]byte, initialSize, n)}
}

// NewFromBytes takes ownership of an existing allocation.
func NewFromBytes(b []byte) (*Buffer, error) {
	if len(b) == 0 {
		return nil, errs.New(errs.INVAL, "buffer: NewFromBytes requires a non-empty slice")
	}
	return &Buffer{data: b}, nil
}

// NewView wraps a non-owning window over memory owned elsewhere.
func NewView(b []byte) *Buffer {
	return &Buffer{data: b, isView: true}
}

// Len returns the current logical size.
func (b *Buffer) Len() int { return len(b.data) }

// Cap returns the current backing capacity.
func (b *Buffer) Cap() int { return cap(b.data) }

// Bytes returns the buffer's current contents. The slice aliases the
// buffer's storage; callers must not retain it across a Resize/Clear.
func (b *Buffer) Bytes() []byte { return b.data }

// IsView reports whether this buffer is a non-owning view.
func (b *Buffer) IsView() bool { return b.isView }

// Resize grows the logical size to newSize, doubling capacity as many
// times as needed to fit it. New bytes are zeroed. Resize never shrinks
// capacity; shrinking the logical size simply re-slices.
func (b *Buffer) Resize(newSize int) error {
	if b.isView {
		return errs.New(errs.FAILURE, "buffer: Resize not permitted on a view")
	}
	if newSize < 0 {
		return errs.New(errs.INVAL, "buffer: negative size %d", newSize)
	}
	if newSize <= cap(b.data) {
		old := len(b.data)
		b.data = b.data[:newSize]
		if newSize > old {
			clear(b.data[old:newSize])
		}
		return nil
	}
	newCap := cap(b.data)
	if newCap < 1 {
		newCap = 1
	}
	for newCap < newSize {
		if newCap > math.MaxInt/2 {
			return errs.New(errs.NOMEM, "buffer: capacity overflow growing to %d", newSize)
		}
		newCap *= 2
	}
	grown := make([]byte, newSize, newCap)
	copy(grown, b.data)
	b.data = grown
	return nil
}

// Clear truncates the logical size to 0 without releasing capacity.
func (b *Buffer) Clear() error {
	if b.isView {
		return errs.New(errs.FAILURE, "buffer: Clear not permitted on a view")
	}
	b.data = b.data[:0]
	return nil
}

// Prune shrinks capacity to exactly the current logical size.
func (b *Buffer) Prune() error {
	if b.isView {
		return errs.New(errs.FAILURE, "buffer: Prune not permitted on a view")
	}
	if cap(b.data) == len(b.data) {
		return nil
	}
	pruned := make([]byte, len(b.data))
	copy(pruned, b.data)
	b.data = pruned
	return nil
}

// Fill overwrites the entire logical range with v.
func (b *Buffer) Fill(v byte) {
	for i := range b.data {
		b.data[i] = v
	}
}

// AppendByte appends a single byte, growing as needed.
func (b *Buffer) AppendByte(v byte) error {
	return b.AppendBytes([]byte{v})
}

// AppendBytes appends s, growing as needed.
func (b *Buffer) AppendBytes(s []byte) error {
	old := len(b.data)
	if err := b.Resize(old + len(s)); err != nil {
		return err
	}
	copy(b.data[old:], s)
	return nil
}

// Concat appends the full contents of other to b.
func (b *Buffer) Concat(other *Buffer) error {
	return b.AppendBytes(other.Bytes())
}
