package light

import (
	"encoding/binary"
	"image/color"

	"github.com/rs/zerolog"

	"github.com/dronecore/skyb/errs"
)

type state int

const (
	stateEmpty state = iota
	stateAtSegment
	statePastEnd
)

type loopFrame struct {
	bodyStart int
	remaining int
}

// Player interprets a Program's opcode stream, exposing the same
// rewind/advance/eval-at-time shape as the trajectory and yaw players.
type Player struct {
	prog      *Program
	st        state
	cur       Segment
	pc        int
	colorReg  color.RGBA
	loopStack []loopFrame
	log       *zerolog.Logger
}

// Option configures a Player.
type Option func(*Player)

// WithLogger attaches a structured logger for interpreter diagnostics
// (unknown opcodes). A nil logger (the default)
// disables logging.
func WithLogger(l *zerolog.Logger) Option {
	return func(p *Player) { p.log = l }
}

var nopLogger = zerolog.Nop()

func (p *Player) logEvent() *zerolog.Event {
	if p.log == nil {
		return nopLogger.Debug()
	}
	return p.log.Debug()
}

// NewPlayer creates a player positioned at the program's first timed
// segment (Empty if the program has none).
func NewPlayer(prog *Program, opts ...Option) *Player {
	p := &Player{prog: prog}
	for _, opt := range opts {
		opt(p)
	}
	p.Rewind()
	return p
}

// Rewind resets the virtual clock, color register, and loop stack,
// and re-enters the opcode stream from the start.
func (p *Player) Rewind() {
	p.pc = 0
	p.colorReg = color.RGBA{A: 255}
	p.loopStack = p.loopStack[:0]
	p.cur = Segment{}
	if p.prog == nil || len(p.prog.code) == 0 {
		p.st = stateEmpty
		return
	}
	p.st = stateAtSegment
	ended, err := p.advanceToNextSegment()
	if ended || err != nil {
		p.st = statePastEnd
	}
}

// HasMoreSegments reports whether the opcode stream has any
// instructions left to execute past the current segment.
func (p *Player) HasMoreSegments() bool {
	return p.st == stateAtSegment && p.pc < len(p.prog.code)
}

// BuildNextSegment commits the current segment's end color to the
// register and steps the interpreter forward to the next timed
// segment, or to Past-end if the stream terminates.
func (p *Player) BuildNextSegment() error {
	if p.st != stateAtSegment {
		return errs.New(errs.INVAL, "light: no current segment to advance from")
	}
	p.colorReg = p.cur.EndColor
	ended, err := p.advanceToNextSegment()
	if ended || err != nil {
		p.st = statePastEnd
	}
	return err
}

// GetCurrentSegment returns the segment the cursor is positioned on.
func (p *Player) GetCurrentSegment() (Segment, bool) {
	if p.st != stateAtSegment {
		return Segment{}, false
	}
	return p.cur, true
}

// fadeSegment builds the timed segment a fade-to-* opcode produces:
// a linear interpolation from the current color register to target
// over duration msec starting at clock.
func (p *Player) fadeSegment(clock uint32, durationMsec uint16, target color.RGBA) Segment {
	return Segment{
		StartTimeMsec: clock,
		EndTimeMsec:   clock + uint32(durationMsec),
		StartColor:    p.colorReg,
		EndColor:      target,
		Fade:          true,
	}
}

// advanceToNextSegment runs the interpreter from p.pc, executing
// instantaneous opcodes in place and stopping at the first timed one
// (Fade/Sleep) or at the stream's end (End opcode or EOF).
func (p *Player) advanceToNextSegment() (ended bool, err error) {
	clock := p.cur.EndTimeMsec
	for {
		if p.pc >= len(p.prog.code) {
			return true, nil
		}
		op := OpCode(p.prog.code[p.pc])
		code := p.prog.code
		switch op {
		case OpEnd:
			return true, nil
		case OpSetColor:
			if p.pc+4 > len(code) {
				return false, truncated(p.pc, 4, len(code)-p.pc)
			}
			p.colorReg = color.RGBA{R: code[p.pc+1], G: code[p.pc+2], B: code[p.pc+3], A: 255}
			p.pc += 4
		case OpSetGray:
			if p.pc+2 > len(code) {
				return false, truncated(p.pc, 2, len(code)-p.pc)
			}
			p.colorReg = gray(code[p.pc+1])
			p.pc += 2
		case OpSetBlack:
			p.colorReg = black
			p.pc++
		case OpSetWhite:
			p.colorReg = white
			p.pc++
		case OpFade:
			if p.pc+6 > len(code) {
				return false, truncated(p.pc, 6, len(code)-p.pc)
			}
			duration := binary.LittleEndian.Uint16(code[p.pc+1 : p.pc+3])
			target := color.RGBA{R: code[p.pc+3], G: code[p.pc+4], B: code[p.pc+5], A: 255}
			p.cur = p.fadeSegment(clock, duration, target)
			p.pc += 6
			return false, nil
		case OpFadeGray:
			if p.pc+4 > len(code) {
				return false, truncated(p.pc, 4, len(code)-p.pc)
			}
			duration := binary.LittleEndian.Uint16(code[p.pc+1 : p.pc+3])
			p.cur = p.fadeSegment(clock, duration, gray(code[p.pc+3]))
			p.pc += 4
			return false, nil
		case OpFadeBlack:
			if p.pc+3 > len(code) {
				return false, truncated(p.pc, 3, len(code)-p.pc)
			}
			duration := binary.LittleEndian.Uint16(code[p.pc+1 : p.pc+3])
			p.cur = p.fadeSegment(clock, duration, black)
			p.pc += 3
			return false, nil
		case OpFadeWhite:
			if p.pc+3 > len(code) {
				return false, truncated(p.pc, 3, len(code)-p.pc)
			}
			duration := binary.LittleEndian.Uint16(code[p.pc+1 : p.pc+3])
			p.cur = p.fadeSegment(clock, duration, white)
			p.pc += 3
			return false, nil
		case OpSleep:
			if p.pc+3 > len(code) {
				return false, truncated(p.pc, 3, len(code)-p.pc)
			}
			duration := binary.LittleEndian.Uint16(code[p.pc+1 : p.pc+3])
			p.cur = Segment{
				StartTimeMsec: clock,
				EndTimeMsec:   clock + uint32(duration),
				StartColor:    p.colorReg,
				EndColor:      p.colorReg,
				Fade:          false,
			}
			p.pc += 3
			return false, nil
		case OpWaitUntil:
			if p.pc+5 > len(code) {
				return false, truncated(p.pc, 5, len(code)-p.pc)
			}
			t := binary.LittleEndian.Uint32(code[p.pc+1 : p.pc+5])
			if t > clock {
				clock = t
			}
			p.pc += 5
		case OpJump:
			if p.pc+3 > len(code) {
				return false, truncated(p.pc, 3, len(code)-p.pc)
			}
			delta := int16(binary.LittleEndian.Uint16(code[p.pc+1 : p.pc+3]))
			p.pc += 3 + int(delta)
			if p.pc < 0 {
				return false, errs.New(errs.PARSE, "light: jump target %d out of range", p.pc)
			}
		case OpLoop:
			if p.pc+2 > len(code) {
				return false, truncated(p.pc, 2, len(code)-p.pc)
			}
			if len(p.loopStack) >= maxLoopDepth {
				return false, errs.New(errs.FULL, "light: loop stack depth exceeds %d", maxLoopDepth)
			}
			count := int(code[p.pc+1])
			p.loopStack = append(p.loopStack, loopFrame{bodyStart: p.pc + 2, remaining: count})
			p.pc += 2
		case OpEndLoop:
			if len(p.loopStack) == 0 {
				return false, errs.New(errs.PARSE, "light: end-loop with no matching loop")
			}
			top := &p.loopStack[len(p.loopStack)-1]
			top.remaining--
			if top.remaining > 0 {
				p.pc = top.bodyStart
			} else {
				p.loopStack = p.loopStack[:len(p.loopStack)-1]
				p.pc++
			}
		default:
			p.logEvent().Uint8("opcode", uint8(op)).Int("pc", p.pc).Msg("light: unknown opcode")
			return false, errs.New(errs.PARSE, "light: unknown opcode %d at %d", op, p.pc)
		}
	}
}

// seek moves the cursor so tMsec falls within the current segment's
// span, rewinding for backward queries and stepping forward otherwise.
func (p *Player) seek(tMsec uint32) {
	if p.st == stateEmpty {
		return
	}
	if p.st == statePastEnd {
		if tMsec >= p.cur.EndTimeMsec {
			return
		}
		p.Rewind()
	}
	if tMsec < p.cur.StartTimeMsec {
		p.Rewind()
	}
	for p.st == stateAtSegment && tMsec >= p.cur.EndTimeMsec {
		if err := p.BuildNextSegment(); err != nil {
			return
		}
	}
}

// GetColorAt returns the color at tMsec. An empty program answers
// opaque black; past the program's end it answers the
// color register's final value.
func (p *Player) GetColorAt(tMsec uint32) color.RGBA {
	if p.st == stateEmpty {
		return color.RGBA{A: 255}
	}
	p.seek(tMsec)
	if p.st == statePastEnd {
		return p.colorReg
	}
	return p.cur.ColorAt(clampU32(tMsec, p.cur.StartTimeMsec, p.cur.EndTimeMsec))
}
