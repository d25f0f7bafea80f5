package sgr

import "testing"

func TestEmptyParamsIsFullReset(t *testing.T) {
	res := Interpret(nil)
	if res.Fg.Kind != Reset || res.Bg.Kind != Reset || res.Attrs.Kind != Reset {
		t.Fatalf("empty params should reset all channels, got %+v", res)
	}
}

func TestResetCode(t *testing.T) {
	res := Interpret([]int{0})
	if res.Fg.Kind != Reset || res.Bg.Kind != Reset || res.Attrs.Kind != Reset {
		t.Fatalf("code 0 should reset all channels, got %+v", res)
	}
}

func TestCode1SetsBoldNotUnderline(t *testing.T) {
	res := Interpret([]int{1})
	if res.Attrs.Kind != Value {
		t.Fatalf("expected attrs Value, got %+v", res.Attrs)
	}
	if res.Attrs.Bits&AttrBold == 0 {
		t.Errorf("code 1 should set BOLD, got bits %v", res.Attrs.Bits)
	}
	if res.Attrs.Bits&AttrUnderline != 0 {
		t.Errorf("code 1 must not set UNDERLINE, got bits %v", res.Attrs.Bits)
	}
}

func TestCode4SetsUnderline(t *testing.T) {
	res := Interpret([]int{4})
	if res.Attrs.Bits&AttrUnderline == 0 {
		t.Errorf("code 4 should set UNDERLINE, got bits %v", res.Attrs.Bits)
	}
	if res.Attrs.Bits&AttrBold != 0 {
		t.Errorf("code 4 must not set BOLD, got bits %v", res.Attrs.Bits)
	}
}

func TestCombinedBoldAndUnderline(t *testing.T) {
	res := Interpret([]int{1, 4})
	want := AttrBold | AttrUnderline
	if res.Attrs.Bits != want {
		t.Errorf("Bits = %v, want %v", res.Attrs.Bits, want)
	}
}

func TestBasicForegroundAndBackground(t *testing.T) {
	res := Interpret([]int{31, 44})
	if res.Fg.Kind != Value || res.Fg.RGB != palette8[1] {
		t.Errorf("fg = %+v, want palette8[1]", res.Fg)
	}
	if res.Bg.Kind != Value || res.Bg.RGB != palette8[4] {
		t.Errorf("bg = %+v, want palette8[4]", res.Bg)
	}
}

func TestBrightForegroundAndBackground(t *testing.T) {
	res := Interpret([]int{91, 102})
	if res.Fg.RGB != palette8bright[1] {
		t.Errorf("fg = %+v, want palette8bright[1]", res.Fg)
	}
	if res.Bg.RGB != palette8bright[2] {
		t.Errorf("bg = %+v, want palette8bright[2]", res.Bg)
	}
}

func TestTruecolourForeground(t *testing.T) {
	res := Interpret([]int{38, 2, 255, 128, 0})
	want := RGB(255, 128, 0)
	if res.Fg.Kind != Value || res.Fg.RGB != want {
		t.Errorf("fg = %+v, want %v", res.Fg, want)
	}
}

func TestTruecolourBackground(t *testing.T) {
	res := Interpret([]int{48, 2, 10, 20, 30})
	want := RGB(10, 20, 30)
	if res.Bg.Kind != Value || res.Bg.RGB != want {
		t.Errorf("bg = %+v, want %v", res.Bg, want)
	}
}

func TestPalette256Foreground(t *testing.T) {
	res := Interpret([]int{38, 5, 196})
	want := palette256Lookup(196)
	if res.Fg.Kind != Value || res.Fg.RGB != want {
		t.Errorf("fg = %+v, want %v", res.Fg, want)
	}
}

func TestPalette256LowIndicesMatchBasicPalettes(t *testing.T) {
	for i := 0; i < 8; i++ {
		if palette256Lookup(i) != palette8[i] {
			t.Errorf("palette256Lookup(%d) = %v, want palette8[%d] = %v", i, palette256Lookup(i), i, palette8[i])
		}
	}
	for i := 0; i < 8; i++ {
		if palette256Lookup(8+i) != palette8bright[i] {
			t.Errorf("palette256Lookup(%d) = %v, want palette8bright[%d]", 8+i, palette256Lookup(8+i), i)
		}
	}
}

func TestPalette256GreyscaleTail(t *testing.T) {
	got := palette256Lookup(255)
	if got == 0 {
		t.Errorf("expected non-zero grey level at index 255, got %v", got)
	}
	lo := palette256Lookup(232)
	hi := palette256Lookup(255)
	if hi <= lo {
		t.Errorf("greyscale ramp should increase: low=%v high=%v", lo, hi)
	}
}

func TestUnknownCodeIgnored(t *testing.T) {
	res := Interpret([]int{62})
	if res.Fg.Kind != NoChange || res.Bg.Kind != NoChange || res.Attrs.Kind != NoChange {
		t.Errorf("unknown code should leave everything NoChange, got %+v", res)
	}
}

func TestSentinelParamsIgnored(t *testing.T) {
	// A stray QUESTION sentinel should never appear in a real SGR call, but
	// the interpreter must not panic or misinterpret it as a colour code.
	res := Interpret([]int{-20200905, 1})
	if res.Attrs.Bits&AttrBold == 0 {
		t.Errorf("expected BOLD to still apply after an ignored sentinel, got %+v", res.Attrs)
	}
}
