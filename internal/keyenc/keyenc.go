// Package keyenc maps InputSource key events to the byte sequences written
// to the PTY: arrow/navigation keys, function keys, Ctrl/Alt modified
// letters, and the handful of editor-style actions (fullscreen toggle)
// this single-terminal scope actually uses.
package keyenc

import "github.com/go-gl/glfw/v3.3/glfw"

// Action tells the event loop what to do with a key event beyond (or
// instead of) writing bytes to the PTY.
type Action int

const (
	ActionNone Action = iota
	ActionExit
	ActionInput
	ActionToggleFullscreen
)

// Result is the outcome of translating one key event.
type Result struct {
	Action Action
	Data   []byte
}

// TranslateKey maps a GLFW key press plus modifiers to PTY bytes or a
// control action. appCursorMode selects the application (SS3) arrow-key
// encoding versus the normal (CSI) encoding.
func TranslateKey(key glfw.Key, mods glfw.ModifierKey, appCursorMode bool) Result {
	ctrl := mods&glfw.ModControl != 0
	shift := mods&glfw.ModShift != 0
	alt := mods&glfw.ModAlt != 0

	if ctrl && key == glfw.KeyQ {
		return Result{Action: ActionExit}
	}

	switch key {
	case glfw.KeyUp:
		return Result{Action: ActionInput, Data: arrowSeq('A', appCursorMode)}
	case glfw.KeyDown:
		return Result{Action: ActionInput, Data: arrowSeq('B', appCursorMode)}
	case glfw.KeyRight:
		return Result{Action: ActionInput, Data: arrowSeq('C', appCursorMode)}
	case glfw.KeyLeft:
		return Result{Action: ActionInput, Data: arrowSeq('D', appCursorMode)}
	case glfw.KeyHome:
		return Result{Action: ActionInput, Data: []byte("\x1b[H")}
	case glfw.KeyEnd:
		return Result{Action: ActionInput, Data: []byte("\x1b[F")}
	case glfw.KeyPageUp:
		return Result{Action: ActionInput, Data: []byte("\x1b[5~")}
	case glfw.KeyPageDown:
		return Result{Action: ActionInput, Data: []byte("\x1b[6~")}
	case glfw.KeyInsert:
		return Result{Action: ActionInput, Data: []byte("\x1b[2~")}
	case glfw.KeyDelete:
		return Result{Action: ActionInput, Data: []byte("\x1b[3~")}
	case glfw.KeyBackspace:
		return Result{Action: ActionInput, Data: []byte{0x7f}}
	case glfw.KeyEscape:
		return Result{Action: ActionInput, Data: []byte{0x1b}}
	}

	if seq, ok := functionKeySeqs[key]; ok {
		return Result{Action: ActionInput, Data: seq}
	}

	if shift && (key == glfw.KeyEnter || key == glfw.KeyKPEnter) {
		return Result{Action: ActionToggleFullscreen}
	}
	if key == glfw.KeyEnter || key == glfw.KeyKPEnter {
		return Result{Action: ActionInput, Data: []byte{'\r'}}
	}

	if key == glfw.KeyTab {
		if shift {
			return Result{Action: ActionInput, Data: []byte("\x1b[Z")}
		}
		return Result{Action: ActionInput, Data: []byte{'\t'}}
	}

	if ctrl && key >= glfw.KeyA && key <= glfw.KeyZ {
		return Result{Action: ActionInput, Data: []byte{byte(key - glfw.KeyA + 1)}}
	}

	if key == glfw.KeySpace {
		if ctrl {
			return Result{Action: ActionInput, Data: []byte{0}}
		}
		// Normal space arrives through the char callback, not here.
		return Result{Action: ActionNone}
	}

	if alt && key >= glfw.KeyA && key <= glfw.KeyZ {
		c := byte(key - glfw.KeyA + 'a')
		if shift {
			c = byte(key - glfw.KeyA + 'A')
		}
		return Result{Action: ActionInput, Data: []byte{0x1b, c}}
	}

	return Result{Action: ActionNone}
}

func arrowSeq(final byte, appCursorMode bool) []byte {
	if appCursorMode {
		return []byte{0x1b, 'O', final}
	}
	return []byte{0x1b, '[', final}
}

var functionKeySeqs = map[glfw.Key][]byte{
	glfw.KeyF1:  []byte("\x1bOP"),
	glfw.KeyF2:  []byte("\x1bOQ"),
	glfw.KeyF3:  []byte("\x1bOR"),
	glfw.KeyF4:  []byte("\x1bOS"),
	glfw.KeyF5:  []byte("\x1b[15~"),
	glfw.KeyF6:  []byte("\x1b[17~"),
	glfw.KeyF7:  []byte("\x1b[18~"),
	glfw.KeyF8:  []byte("\x1b[19~"),
	glfw.KeyF9:  []byte("\x1b[20~"),
	glfw.KeyF10: []byte("\x1b[21~"),
	glfw.KeyF11: []byte("\x1b[23~"),
	glfw.KeyF12: []byte("\x1b[24~"),
}

// TranslateChar maps a decoded character (from GLFW's char callback) to the
// UTF-8 bytes written to the PTY. Alt-modified characters get an ESC
// prefix, the standard terminal meta-key convention.
func TranslateChar(char rune, mods glfw.ModifierKey) []byte {
	if mods&glfw.ModAlt != 0 {
		return append([]byte{0x1b}, []byte(string(char))...)
	}
	return []byte(string(char))
}
