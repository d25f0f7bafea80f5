// Package term wires together escparser, sgr, utf8dec, and grid into the
// single aggregate the event loop drives: feed it PTY bytes, get back
// warnings for malformed sequences and a Grid whose damage can be flushed
// to a renderer.
//
// Parses the byte-level state machine over Ground/Escape/CSI directly,
// dispatching completed CSI calls into Grid and SGR parameter vectors into
// the SGR interpreter.
package term

import (
	"github.com/corvid-term/corvid/internal/escparser"
	"github.com/corvid-term/corvid/internal/grid"
	"github.com/corvid-term/corvid/internal/sgr"
	"github.com/corvid-term/corvid/internal/utf8dec"
)

type state int

const (
	stateGround state = iota
	stateEscSeen
	stateCSI
)

// Terminal is the canonical driver: Grid owns the visible state, Terminal
// owns the byte-level parsing state and the EscParser instance.
type Terminal struct {
	Grid *grid.Grid

	state         state
	csi           *escparser.Parser
	pending       []byte
	appCursorMode bool
}

// New creates a Terminal backed by a width x height Grid.
func New(width, height int) *Terminal {
	return &Terminal{
		Grid: grid.New(width, height),
		csi:  escparser.New(),
	}
}

// Feed decodes and applies one chunk of PTY bytes, mutating Grid and
// returning any non-fatal parse warnings encountered along the way. A
// multi-byte UTF-8 sequence split across the end of data is retained
// internally and completed on the next Feed call.
func (t *Terminal) Feed(data []byte) []error {
	buf := append(t.pending, data...)
	var warnings []error

	for len(buf) > 0 {
		if t.state == stateCSI {
			b := buf[0]
			buf = buf[1:]
			dec := t.csi.FeedByte(b)
			switch {
			case dec.Complete():
				t.dispatchCSI(dec.Func, dec.Params)
				t.state = stateGround
			case dec.Failed():
				warnings = append(warnings, dec.Err)
				t.state = stateGround
			}
			continue
		}

		res := utf8dec.DecodeNext(buf)
		if res.NeedMore {
			break
		}
		buf = buf[res.Consumed:]

		switch t.state {
		case stateEscSeen:
			if res.Rune == '[' {
				t.state = stateCSI
			} else {
				// Charset switching, OSC, and other non-CSI escapes are
				// out of scope; drop back to Ground.
				t.state = stateGround
			}
		default:
			if res.Rune == 0x1b {
				t.state = stateEscSeen
				continue
			}
			t.handleGroundRune(res.Rune)
		}
	}

	t.pending = buf
	return warnings
}

func (t *Terminal) handleGroundRune(r rune) {
	switch r {
	case 0x07:
		t.Grid.Bell()
	case 0x08:
		t.Grid.Backspace()
	case 0x09:
		t.Grid.Tab()
	case 0x0A:
		t.Grid.Linefeed()
	case 0x0D:
		t.Grid.CarriageReturn()
	default:
		if r < 0x20 || r == 0x7f {
			return // other C0/DEL controls are ignored
		}
		t.Grid.Putchar(r)
	}
}

func param(params []int, idx, def int) int {
	if idx < len(params) {
		return params[idx]
	}
	return def
}

// dispatchCSI applies a completed CSI call to Grid, per the function table.
func (t *Terminal) dispatchCSI(fn byte, params []int) {
	g := t.Grid
	switch fn {
	case 'H', 'f':
		g.CursorPosition(param(params, 0, 0), param(params, 1, 0))
	case 'A':
		g.CursorUp(param(params, 0, 1))
	case 'B':
		g.CursorDown(param(params, 0, 1))
	case 'C':
		g.CursorForward(param(params, 0, 1))
	case 'D':
		g.CursorBack(param(params, 0, 1))
	case 'E':
		g.CursorNextLine(param(params, 0, 1))
	case 'F':
		g.CursorPrevLine(param(params, 0, 1))
	case 'G':
		g.CursorColumn(param(params, 0, 1))
	case 'J':
		g.EraseScreen(param(params, 0, 0))
	case 'K':
		g.EraseLine(param(params, 0, 0))
	case 'm':
		g.ApplySGRResult(sgr.Interpret(params))
	case 'h':
		t.applyPrivateMode(params, true)
	case 'l':
		t.applyPrivateMode(params, false)
	case 's':
		g.SaveCursor()
	case 'u':
		g.RestoreCursor()
	case '@':
		g.InsertChars(param(params, 0, 1))
	case 'P':
		g.DeleteChars(param(params, 0, 1))
	case 'L':
		g.InsertLines(param(params, 0, 1))
	case 'M':
		g.DeleteLines(param(params, 0, 1))
	case 'X':
		g.EraseChars(param(params, 0, 1))
	case 'b':
		g.RepeatChar(param(params, 0, 1))
	case 'r':
		g.SetScrollRegion(param(params, 0, 1)-1, param(params, 1, g.Height())-1)
	case 'R', 0x7f:
		// Cursor position report / delete: no-op placeholders.
	default:
		// Unrecognised CSI function: ignored, matching the parser's
		// tolerance for unknown SGR codes.
	}
}

func (t *Terminal) applyPrivateMode(params []int, set bool) {
	if len(params) < 2 || params[0] != escparser.Question {
		return
	}
	switch params[1] {
	case 1:
		t.appCursorMode = set
	case 25:
		t.Grid.SetCursorVisible(set)
	case 2004:
		// Bracketed paste: explicit non-goal, no-op.
	}
}

// AppCursorMode reports whether DECCKM (application cursor keys, CSI
// ?1h/?1l) is currently set, for KeyEncoder to pick the SS3 vs CSI arrow
// encoding.
func (t *Terminal) AppCursorMode() bool { return t.appCursorMode }

// Resize reallocates the underlying Grid.
func (t *Terminal) Resize(width, height int) {
	t.Grid.Resize(width, height)
}
