// Package container implements the block-structured binary container
// that carries a drone show's trajectory, light program, yaw control,
// event list, and RTH plan.
//
// A container is a 3-byte (version 1) or 7-byte (version 2) header followed by a flat sequence of
// typed, length-prefixed blocks: {type: u8, length: u16 LE, body}.
// Parser walks that sequence one block at a time, mirroring the
// teacher's RIFF chunk walk (see the retrieval pack's
// deepteams/webp internal/container package) adapted from a fixed
// 4-byte FourCC tag to a 1-byte block type, and from a RIFF-wide
// payload size ceiling to this format's own checksum discipline.
package container

import (
	"encoding/binary"

	"github.com/rs/zerolog"

	"github.com/dronecore/skyb/errs"
	"github.com/dronecore/skyb/internal/bincrc"
	"github.com/dronecore/skyb/internal/pool"
)

// BlockType identifies the kind of payload a block carries.
type BlockType uint8

const (
	TypeNone       BlockType = 0 // sentinel: "not found" / EOF
	TypeTrajectory BlockType = 1
	TypeLight      BlockType = 2
	TypeComment    BlockType = 3
	TypeRTHPlan    BlockType = 4
	TypeYaw        BlockType = 5
	TypeEvents     BlockType = 6
)

// String returns a human-readable block type name.
func (t BlockType) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeTrajectory:
		return "trajectory"
	case TypeLight:
		return "light"
	case TypeComment:
		return "comment"
	case TypeRTHPlan:
		return "rth-plan"
	case TypeYaw:
		return "yaw"
	case TypeEvents:
		return "events"
	default:
		return "unknown"
	}
}

const (
	magic0        = 0x5b
	magic1        = 0xb3
	headerSizeV1  = 3 // magic(2) + version(1)
	headerSizeV2  = 7 // header v1 + crc32(4)
	blockHdrBytes = 3 // type(1) + length(2)
)

// Block describes one parsed block: its type, its payload length, and
// the byte offset of its body within the container's source buffer.
type Block struct {
	Type        BlockType
	Length      int
	StartOfBody int
}

// Parser iterates the blocks of a single container buffer. It never
// copies the source buffer as a whole; ReadCurrentBlock copies a
// block's body into a caller-provided slice, and BorrowCurrentBlock
// hands the caller a copy in a slice borrowed from the pool.
type Parser struct {
	data    []byte
	version uint8
	pos     int // offset of the current block's type byte, or len(data) at EOF
	valid   bool
	log     *zerolog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger attaches a structured logger for diagnostic events (CRC
// mismatches). A nil logger (the default) disables logging.
func WithLogger(l *zerolog.Logger) Option {
	return func(p *Parser) { p.log = l }
}

// NewFromBuffer validates the header (magic, version, and for version
// 2 the body CRC32) and returns a Parser positioned at the first block.
func NewFromBuffer(data []byte, opts ...Option) (*Parser, error) {
	p := &Parser{data: data}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.parseHeader(); err != nil {
		return nil, err
	}
	p.seekFirst()
	return p, nil
}

func (p *Parser) parseHeader() error {
	if len(p.data) < headerSizeV1 {
		return errs.New(errs.PARSE, "container: truncated header (%d bytes)", len(p.data))
	}
	if p.data[0] != magic0 || p.data[1] != magic1 {
		return errs.New(errs.PARSE, "container: bad magic %02x%02x", p.data[0], p.data[1])
	}
	p.version = p.data[2]
	switch p.version {
	case 1:
		p.pos = headerSizeV1
	case 2:
		if len(p.data) < headerSizeV2 {
			return errs.New(errs.PARSE, "container: truncated v2 header")
		}
		wantCRC := binary.LittleEndian.Uint32(p.data[headerSizeV1:headerSizeV2])
		body := p.data[headerSizeV2:]
		gotCRC := bincrc.Checksum(body)
		if gotCRC != wantCRC {
			p.logEvent().Uint32("want", wantCRC).Uint32("got", gotCRC).Msg("container: CRC mismatch")
			return errs.New(errs.CORRUPTED, "container: CRC mismatch (want %#x, got %#x)", wantCRC, gotCRC)
		}
		p.pos = headerSizeV2
	default:
		return errs.New(errs.UNSUPPORTED, "container: unsupported version %d", p.version)
	}
	return nil
}

var nopLogger = zerolog.Nop()

func (p *Parser) logEvent() *zerolog.Event {
	if p.log == nil {
		return nopLogger.Debug()
	}
	return p.log.Debug()
}

// Version returns the container format version (1 or 2).
func (p *Parser) Version() uint8 { return p.version }

func (p *Parser) seekFirst() {
	p.valid = p.pos+blockHdrBytes <= len(p.data)
}

// IsCurrentBlockValid reports whether GetCurrentBlock/ReadCurrentBlock
// may be called right now.
func (p *Parser) IsCurrentBlockValid() bool { return p.valid }

// GetCurrentBlock returns the header of the block the cursor is
// positioned on.
func (p *Parser) GetCurrentBlock() (Block, error) {
	if !p.valid {
		return Block{}, errs.New(errs.INVAL, "container: no current block")
	}
	t := BlockType(p.data[p.pos])
	length := int(binary.LittleEndian.Uint16(p.data[p.pos+1 : p.pos+3]))
	bodyStart := p.pos + blockHdrBytes
	if bodyStart+length > len(p.data) {
		return Block{}, errs.New(errs.PARSE, "container: block body (%d bytes at %d) exceeds buffer", length, bodyStart)
	}
	return Block{Type: t, Length: length, StartOfBody: bodyStart}, nil
}

// ReadCurrentBlock copies the current block's body into out, which
// must be at least Length bytes.
func (p *Parser) ReadCurrentBlock(out []byte) error {
	b, err := p.GetCurrentBlock()
	if err != nil {
		return err
	}
	if len(out) < b.Length {
		return errs.New(errs.INVAL, "container: output buffer (%d bytes) too small for block (%d bytes)", len(out), b.Length)
	}
	copy(out, p.data[b.StartOfBody:b.StartOfBody+b.Length])
	return nil
}

// BorrowCurrentBlock returns a pooled, owned copy of the current
// block's body. The caller must return it with pool.Put when done.
func (p *Parser) BorrowCurrentBlock() ([]byte, error) {
	b, err := p.GetCurrentBlock()
	if err != nil {
		return nil, err
	}
	out := pool.Get(b.Length)
	copy(out, p.data[b.StartOfBody:b.StartOfBody+b.Length])
	return out, nil
}

// SeekToNextBlock advances the cursor past the current block. Once the
// cursor runs past the last block, further calls leave the parser
// invalid and return a READ error, matching spec: "Reading past EOF
// yields {is_valid=false, seek returns READ} on the next seek."
func (p *Parser) SeekToNextBlock() error {
	if !p.valid {
		return errs.New(errs.READ, "container: seek past end of stream")
	}
	b, err := p.GetCurrentBlock()
	if err != nil {
		p.valid = false
		return err
	}
	next := b.StartOfBody + b.Length
	p.pos = next
	p.valid = next+blockHdrBytes <= len(p.data)
	return nil
}

// FindFirstBlockByType rewinds to the start of the block stream and
// scans forward for the first block of type t, leaving the cursor
// positioned on it. Returns a NOENT error (and leaves the cursor
// invalid) if no such block exists.
func (p *Parser) FindFirstBlockByType(t BlockType) error {
	if t == TypeNone {
		return errs.New(errs.INVAL, "container: type 0 is the not-found sentinel, not a searchable type")
	}
	p.pos = headerSizeV1
	if p.version == 2 {
		p.pos = headerSizeV2
	}
	p.seekFirst()
	for p.valid {
		b, err := p.GetCurrentBlock()
		if err != nil {
			return err
		}
		if b.Type == t {
			return nil
		}
		if err := p.SeekToNextBlock(); err != nil {
			break
		}
	}
	return errs.New(errs.NOENT, "container: no block of type %s found", t)
}

// Rewind repositions the cursor at the first block.
func (p *Parser) Rewind() {
	p.pos = headerSizeV1
	if p.version == 2 {
		p.pos = headerSizeV2
	}
	p.seekFirst()
}
