package escparser

import (
	"strings"
	"testing"
)

func paramsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// feed runs a CSI body (everything after "ESC [") through a fresh Parser
// and returns the Decision that ended the sequence: the first Complete or
// Failed one, or the last NeedMore if the body never ended.
func feed(s string) Decision {
	p := New()
	var last Decision
	for i := 0; i < len(s); i++ {
		last = p.FeedByte(s[i])
		if !last.NeedMore() {
			break
		}
	}
	return last
}

func TestCompleteSequences(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		fn     byte
		params []int
	}{
		{"no params", "H", 'H', nil},
		{"single param", "5H", 'H', []int{5}},
		{"two params", "5;10H", 'H', []int{5, 10}},
		{"sgr reset", "0m", 'm', []int{0}},
		{"sgr combo", "1;31;44m", 'm', []int{1, 31, 44}},
		{"leading question", "?25h", 'h', []int{Question, 25}},
		{"leading equal", "=1c", 'c', []int{Equal, 1}},
		{"middle empty param not supplied", "1;;3H", 'H', []int{1, 3}},
		{"del as final", "5\x7f", 0x7f, []int{5}},
		{"truecolour", "38;2;255;128;0m", 'm', []int{38, 2, 255, 128, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := feed(c.body)
			if !d.Complete() {
				t.Fatalf("expected Complete, got status with err=%v", d.Err)
			}
			if d.Func != c.fn {
				t.Errorf("Func = %q, want %q", d.Func, c.fn)
			}
			if !paramsEqual(d.Params, c.params) {
				t.Errorf("Params = %v, want %v", d.Params, c.params)
			}
		})
	}
}

func TestNeedMoreAcrossReads(t *testing.T) {
	p := New()
	d := p.FeedByte('1')
	if !d.NeedMore() {
		t.Fatalf("expected NeedMore after digit")
	}
	d = p.FeedByte(';')
	if !d.NeedMore() {
		t.Fatalf("expected NeedMore after delimiter")
	}
	d = p.FeedByte('2')
	if !d.NeedMore() {
		t.Fatalf("expected NeedMore after second digit")
	}
	d = p.FeedByte('H')
	if !d.Complete() {
		t.Fatalf("expected Complete at final byte")
	}
	if !paramsEqual(d.Params, []int{1, 2}) {
		t.Errorf("Params = %v, want [1 2]", d.Params)
	}
}

func TestMisplacedQuestion(t *testing.T) {
	d := feed("1;?25h")
	if !d.Failed() {
		t.Fatalf("expected Failed, got %+v", d)
	}
	if d.Err.Kind != ErrMisplacedQuestion {
		t.Errorf("Kind = %v, want ErrMisplacedQuestion", d.Err.Kind)
	}
}

func TestMisplacedEqual(t *testing.T) {
	d := feed("1;=1c")
	if !d.Failed() {
		t.Fatalf("expected Failed, got %+v", d)
	}
	if d.Err.Kind != ErrMisplacedEqual {
		t.Errorf("Kind = %v, want ErrMisplacedEqual", d.Err.Kind)
	}
}

func TestTrailingSemicolonFailsIntConv(t *testing.T) {
	d := feed("5;H")
	if !d.Failed() {
		t.Fatalf("expected Failed, got %+v", d)
	}
	if d.Err.Kind != ErrIntConv {
		t.Errorf("Kind = %v, want ErrIntConv", d.Err.Kind)
	}
}

func TestEmptyParameterList(t *testing.T) {
	d := feed("H")
	if !d.Complete() {
		t.Fatalf("expected Complete, got %+v", d)
	}
	if len(d.Params) != 0 {
		t.Errorf("Params = %v, want empty", d.Params)
	}
}

func TestNonNumericTokenFailsIntConv(t *testing.T) {
	// '!' is neither a digit, a delimiter, nor a final byte, so it
	// accumulates into the parameter token and breaks its conversion.
	d := feed("1!H")
	if !d.Failed() {
		t.Fatalf("expected Failed, got %+v", d)
	}
	if d.Err.Kind != ErrIntConv {
		t.Errorf("Kind = %v, want ErrIntConv", d.Err.Kind)
	}
}

func TestResetAfterFailureAcceptsFreshSequence(t *testing.T) {
	p := New()
	_ = p.FeedByte('1')
	d := p.FeedByte('?') // misplaced, not first byte
	if !d.Failed() {
		t.Fatalf("expected Failed")
	}
	// parser must have reset; a brand new sequence should parse cleanly
	d = p.FeedByte('5')
	if !d.NeedMore() {
		t.Fatalf("expected NeedMore on fresh sequence after reset")
	}
	d = p.FeedByte('H')
	if !d.Complete() || !paramsEqual(d.Params, []int{5}) {
		t.Errorf("fresh sequence after reset: got %+v", d)
	}
}

func TestTooManyParams(t *testing.T) {
	body := ""
	for i := 0; i < MaxParams+5; i++ {
		body += "1;"
	}
	body += "1H"
	d := feed(body)
	if !d.Failed() {
		t.Fatalf("expected Failed for param overflow, got %+v", d)
	}
	if d.Err.Kind != ErrTooManyParams {
		t.Errorf("Kind = %v, want ErrTooManyParams", d.Err.Kind)
	}
}

func TestErrorStringIncludesRaw(t *testing.T) {
	d := feed("5;H")
	if d.Err == nil {
		t.Fatalf("expected non-nil Err")
	}
	msg := d.Err.Error()
	if !strings.Contains(msg, "5;H") {
		t.Errorf("error string %q does not include the raw bytes 5;H", msg)
	}
}
