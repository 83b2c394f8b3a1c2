// Package light implements the light-program opcode interpreter: a
// single-register (current color) machine that steps through a flat
// opcode stream, and a player that seeks within it the same way the
// trajectory player seeks within segments.
//
// The opcode stream has no directory of entries the way the container
// format's blocks do — it is executed, not indexed — so decoding is
// lazy: Program is just the raw bytes, and Player interprets them one
// instruction at a time.
package light

import (
	"image/color"

	"github.com/dronecore/skyb/errs"
)

// OpCode is a single-byte instruction tag. The binary fixtures that
// would confirm each tag's exact value are not available in this
// build (spec's open question); the assignment below is this
// implementation's own enumeration. It covers every opcode spec.md §3
// names for the light program: the generic set/fade-to-color forms,
// the compact gray/black/white variants (which carry fewer or no
// payload bytes than the generic forms), the two timed holds, and the
// control-flow/terminator ops.
type OpCode uint8

const (
	OpEnd       OpCode = 0  // no payload; terminates the program
	OpSetColor  OpCode = 1  // rgb:3 bytes; instantaneous; set-constant-color
	OpSetGray   OpCode = 2  // gray:1 byte; instantaneous; set-gray (R=G=B=gray)
	OpSetBlack  OpCode = 3  // no payload; instantaneous; set-black
	OpSetWhite  OpCode = 4  // no payload; instantaneous; set-white
	OpFade      OpCode = 5  // duration:u16 msec, rgb:3 bytes; timed; fade-to-color
	OpFadeGray  OpCode = 6  // duration:u16 msec, gray:1 byte; timed; fade-to-gray
	OpFadeBlack OpCode = 7  // duration:u16 msec; timed; fade-to-black
	OpFadeWhite OpCode = 8  // duration:u16 msec; timed; fade-to-white
	OpSleep     OpCode = 9  // duration:u16 msec; timed, holds current color
	OpWaitUntil OpCode = 10 // time:u32 msec; instantaneous, clock = max(clock, time)
	OpJump      OpCode = 11 // delta:i16; instantaneous, pc = end of this instruction + delta
	OpLoop      OpCode = 12 // count:u8; instantaneous, pushes a loop frame
	OpEndLoop   OpCode = 13 // no payload; instantaneous, pops/repeats a loop frame
)

var (
	black = color.RGBA{A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func gray(v uint8) color.RGBA { return color.RGBA{R: v, G: v, B: v, A: 255} }

// maxLoopDepth bounds the loop-frame stack, matching spec's "small
// fixed-depth stack" for loop/end-loop.
const maxLoopDepth = 8

// Program is a decoded light program: an opcode stream ready to be
// interpreted by a Player. Decoding performs no validation beyond
// holding the bytes — malformed opcodes surface as PARSE errors from
// the player as it steps through them. (The trajectory decoder, by
// contrast, decodes every segment up front and fails on the first bad
// one.)
type Program struct {
	code []byte
}

// Empty returns a program with no instructions.
func Empty() *Program { return &Program{} }

// Decode copies a light-program block body into an owned Program. The
// copy matters: callers (e.g. skyb.Open) borrow block bodies from a
// shared pool and return them immediately after decoding, so a Program
// that aliased the caller's slice would have its opcode stream
// silently overwritten by the next pool.Get of the same capacity.
func Decode(body []byte) (*Program, error) {
	code := make([]byte, len(body))
	copy(code, body)
	return &Program{code: code}, nil
}

// Clear resets p to an empty program.
func (p *Program) Clear() { p.code = nil }

func truncated(pc, need, have int) error {
	return errs.New(errs.PARSE, "light: opcode at %d needs %d bytes, stream has %d", pc, need, have)
}
