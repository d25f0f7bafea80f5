package term

import "testing"

func TestPlainTextWriting(t *testing.T) {
	tm := New(10, 2)
	warnings := tm.Feed([]byte("hi"))
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if tm.Grid.Cell(0, 0).Codepoint != 'h' || tm.Grid.Cell(1, 0).Codepoint != 'i' {
		t.Fatalf("text not written to grid")
	}
}

// Scenario: reset and coloured text — CSI 0m then CSI 31m then printable
// text should stamp the current red foreground onto new cells only.
func TestResetAndColouredText(t *testing.T) {
	tm := New(10, 2)
	tm.Feed([]byte("\x1b[0m\x1b[31mhi"))
	if tm.Grid.Cell(0, 0).Fg == 0 {
		t.Fatalf("expected non-zero fg after CSI 31m")
	}
	if tm.Grid.Cell(0, 0).Codepoint != 'h' {
		t.Fatalf("expected printable text after SGR")
	}
}

// Scenario: cursor home — CSI H with no params moves to (0,0).
func TestCursorHome(t *testing.T) {
	tm := New(10, 10)
	tm.Feed([]byte("\x1b[5;5H"))
	if c := tm.Grid.Cursor(); c.X != 5 || c.Y != 5 {
		t.Fatalf("cursor = %+v, want (5,5)", c)
	}
	tm.Feed([]byte("\x1bH"))
	// Bare ESC H (no '[') is not a CSI sequence in this core's scope; the
	// cursor should be unaffected since it falls back to Ground.
	if c := tm.Grid.Cursor(); c.X != 5 || c.Y != 5 {
		t.Fatalf("unexpected cursor movement from non-CSI escape: %+v", c)
	}
	tm.Feed([]byte("\x1b[H"))
	if c := tm.Grid.Cursor(); c.X != 0 || c.Y != 0 {
		t.Fatalf("cursor = %+v, want (0,0)", c)
	}
}

// Scenario: truecolour — CSI 38;2;r;g;b m sets an exact RGB foreground.
func TestTruecolourScenario(t *testing.T) {
	tm := New(5, 1)
	tm.Feed([]byte("\x1b[38;2;10;20;30mX"))
	cell := tm.Grid.Cell(0, 0)
	want := uint32(10)<<16 | uint32(20)<<8 | uint32(30)
	if uint32(cell.Fg) != want {
		t.Fatalf("fg = %#x, want %#x", uint32(cell.Fg), want)
	}
}

// Scenario: erase to end of line clears from the cursor rightward, keeping
// earlier cells.
func TestEraseToEndOfLineScenario(t *testing.T) {
	tm := New(5, 1)
	tm.Feed([]byte("abcde"))
	tm.Feed([]byte("\x1b[2G\x1b[K"))
	if tm.Grid.Cell(0, 0).Codepoint != 'a' || tm.Grid.Cell(1, 0).Codepoint != 'b' {
		t.Fatalf("cells before cursor should survive")
	}
	for x := 2; x < 5; x++ {
		if tm.Grid.Cell(x, 0).Codepoint != 0 {
			t.Fatalf("cell %d should be erased", x)
		}
	}
}

// Scenario: UTF-8 round trip across a split read.
func TestUtf8RoundTripAcrossReads(t *testing.T) {
	tm := New(5, 1)
	full := []byte{0xE2, 0x98, 0x83} // ☃
	warnings := tm.Feed(full[:2])
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings on partial sequence: %v", warnings)
	}
	if tm.Grid.Cell(0, 0).Codepoint != 0 {
		t.Fatalf("partial UTF-8 sequence should not have been written yet")
	}
	tm.Feed(full[2:])
	if tm.Grid.Cell(0, 0).Codepoint != 0x2603 {
		t.Fatalf("expected snowman codepoint, got %v", tm.Grid.Cell(0, 0).Codepoint)
	}
}

// Scenario: misplaced '?' yields a non-fatal warning and the parser
// recovers to accept the next sequence cleanly.
func TestMisplacedQuestionScenario(t *testing.T) {
	tm := New(5, 5)
	warnings := tm.Feed([]byte("\x1b[1;?25h"))
	if len(warnings) != 1 {
		t.Fatalf("expected exactly one warning, got %d: %v", len(warnings), warnings)
	}
	// the terminal must recover and accept a fresh sequence afterward
	tm.Feed([]byte("\x1b[3;3H"))
	if c := tm.Grid.Cursor(); c.X != 3 || c.Y != 3 {
		t.Fatalf("cursor = %+v, want (3,3) after recovery", c)
	}
}

func TestPrivateModeCursorVisibility(t *testing.T) {
	tm := New(5, 1)
	tm.Feed([]byte("\x1b[?25l"))
	if tm.Grid.Cursor().Visible {
		t.Fatalf("expected cursor hidden after CSI ?25l")
	}
	tm.Feed([]byte("\x1b[?25h"))
	if !tm.Grid.Cursor().Visible {
		t.Fatalf("expected cursor visible after CSI ?25h")
	}
}

func TestResize(t *testing.T) {
	tm := New(5, 5)
	tm.Resize(10, 10)
	if tm.Grid.Width() != 10 || tm.Grid.Height() != 10 {
		t.Fatalf("resize did not propagate to grid")
	}
}
