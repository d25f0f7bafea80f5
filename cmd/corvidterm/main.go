// Command corvidterm is the surrounding executable around the terminal
// core: it owns GLFW window/event setup, the PTY child process, and the
// single event-loop goroutine that multiplexes PTY bytes and display
// events.
//
// Construction order is window, then surface (which needs the window's GL
// context current), then PTY, then the Grid/Terminal pair; the main loop
// polls GLFW input, drains buffered PTY output, and repaints only when
// either produced damage.
package main

import (
	"log"
	"os"
	"time"

	"github.com/corvid-term/corvid/internal/config"
	"github.com/corvid-term/corvid/internal/glterm"
	"github.com/corvid-term/corvid/internal/keyenc"
	"github.com/corvid-term/corvid/internal/ptyio"
	"github.com/corvid-term/corvid/internal/render"
	"github.com/corvid-term/corvid/internal/term"
)

// Exit codes distinguish which startup stage failed, so a launcher script
// can tell "no display" apart from "shell not found" without scraping logs.
const (
	exitOK                = 0
	exitCannotOpenDisplay = 1
	exitCannotOpenPTY     = 2
	exitCannotAttachTTY   = 3
	exitCannotCreateFonts = 4
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("corvidterm: cannot load configuration: %v", err)
	}
	theme := config.ThemeByName(cfg.Theme)

	win, err := glterm.NewWindow(glterm.DefaultWindowConfig())
	if err != nil {
		log.Printf("corvidterm: cannot open display: %v", err)
		os.Exit(exitCannotOpenDisplay)
	}
	defer win.Destroy()

	surface, err := glterm.NewSurface(win, cfg.Font.Path, cfg.Font.Size, theme)
	if err != nil {
		log.Printf("corvidterm: cannot create font set: %v", err)
		os.Exit(exitCannotCreateFonts)
	}
	defer surface.Destroy()

	cellW, cellH := surface.CellSize()
	fbWidth, fbHeight := win.FramebufferSize()
	cols, rows := gridSize(fbWidth, fbHeight, cellW, cellH)

	port, err := ptyio.Open(cfg.Shell.Path, uint16(cols), uint16(rows))
	if err != nil {
		log.Printf("corvidterm: cannot open PTY: %v", err)
		os.Exit(exitCannotOpenPTY)
	}
	defer port.Close()

	terminal := term.New(cols, rows)
	renderer := render.New(surface)
	input := glterm.NewInputSource(win)

	ptyData := make(chan []byte, 64)
	ptyErr := make(chan error, 1)
	go pumpPTY(port, ptyData, ptyErr)

	renderer.RedrawAll(terminal.Grid)

	const tick = 16 * time.Millisecond
	for !win.ShouldClose() {
		glterm.PollEvents()

		damaged := false

	drainInput:
		for {
			select {
			case ev := <-input.Events():
				if handleEvent(ev, win, surface, terminal, port, &cols, &rows) {
					damaged = true
				}
			default:
				break drainInput
			}
		}

	drainPTY:
		for {
			select {
			case data := <-ptyData:
				if warnings := terminal.Feed(data); len(warnings) > 0 {
					for _, w := range warnings {
						log.Printf("corvidterm: %v", w)
					}
				}
				damaged = true
			case err := <-ptyErr:
				if port.HasExited() {
					log.Printf("corvidterm: shell exited")
				} else if err != nil {
					log.Printf("corvidterm: PTY read error: %v", err)
				}
				return
			default:
				break drainPTY
			}
		}

		if damaged {
			renderer.Apply(terminal.Grid, terminal.Grid.TakeDamage())
		}

		time.Sleep(tick)
	}
	os.Exit(exitOK)
}

// pumpPTY copies PTY output into a channel the main loop can drain without
// blocking the locked GL thread; it is the one place this executable reads
// I/O off the main goroutine, since cgo-based GLFW calls must stay pinned.
func pumpPTY(port *ptyio.Port, data chan<- []byte, errc chan<- error) {
	buf := make([]byte, 4096)
	for {
		n, err := port.Read(buf)
		if n > 0 {
			cp := make([]byte, n)
			copy(cp, buf[:n])
			data <- cp
		}
		if err != nil {
			errc <- err
			return
		}
	}
}

// handleEvent applies one InputSource event, returning true if it produced
// terminal or display damage that warrants a repaint.
func handleEvent(ev glterm.Event, win *glterm.Window, surface *glterm.Surface, terminal *term.Terminal, port *ptyio.Port, cols, rows *int) bool {
	switch ev.Kind {
	case glterm.EventKey:
		result := keyenc.TranslateKey(ev.Key, ev.Mods, terminal.AppCursorMode())
		return applyKeyResult(result, win, port)
	case glterm.EventChar:
		data := keyenc.TranslateChar(ev.Char, ev.Mods)
		port.Write(data)
		return false
	case glterm.EventResize:
		surface.Resize(ev.Width, ev.Height)
		cellW, cellH := surface.CellSize()
		newCols, newRows := gridSize(ev.Width, ev.Height, cellW, cellH)
		if newCols != *cols || newRows != *rows {
			*cols, *rows = newCols, newRows
			terminal.Resize(newCols, newRows)
			port.SetSize(uint16(newCols), uint16(newRows))
		}
		return true
	case glterm.EventExpose:
		return true
	case glterm.EventClose:
		win.GLFW().SetShouldClose(true)
		return false
	}
	return false
}

func applyKeyResult(result keyenc.Result, win *glterm.Window, port *ptyio.Port) bool {
	switch result.Action {
	case keyenc.ActionExit:
		win.GLFW().SetShouldClose(true)
	case keyenc.ActionInput:
		port.Write(result.Data)
	case keyenc.ActionToggleFullscreen:
		win.ToggleFullscreen()
		return true
	}
	return false
}

// gridSize computes the number of columns/rows that fit a framebuffer of
// the given pixel size at the Surface's fixed cell size. Rows are one
// short of a full pack: the bottom row is reserved so a cell-aligned
// cursor/glyph baseline never lands partially off the bottom edge of the
// framebuffer.
func gridSize(pixelW, pixelH, cellW, cellH int) (int, int) {
	cols := pixelW / cellW
	rows := pixelH/cellH - 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}
