// Package glterm implements the Surface and InputSource external ports
// with a GLFW window and an OpenGL 4.1 core-profile context: a glyph-atlas
// text renderer, a coloured-rectangle renderer for cell backgrounds and the
// cursor, and GLFW callbacks that feed key/char/resize events to the event
// loop.
//
// GLFW and its GL context may only be driven from the thread that created
// them, so this package pins itself to the OS thread via
// runtime.LockOSThread() in init() and every GL call in the surface,
// shader, and atlas code below must run on that same goroutine.
package glterm

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW and the GL context may only be touched from the thread that
	// created them; this pins that thread as Go's runtime main OS thread.
	runtime.LockOSThread()
}

// Default cell geometry in pixels; actual values come from the loaded
// font's metrics since this surface uses a real glyph atlas, not a fixed
// bitmap font.
const (
	DefaultCharW   = 8
	DefaultCharH   = 16
	DefaultTopMost = 12
	DefaultLeft    = 2
)

// WindowConfig configures the host window.
type WindowConfig struct {
	Width, Height int
	Title         string
}

// DefaultWindowConfig returns a sensible starting window size.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{Width: 900, Height: 600, Title: "corvidterm"}
}

// Window wraps a GLFW window bound to an OpenGL 4.1 core context.
type Window struct {
	glfw   *glfw.Window
	width  int
	height int

	isFullscreen                    bool
	savedX, savedY, savedW, savedH  int
}

// NewWindow creates the host window and makes its GL context current on
// the calling (locked) thread.
func NewWindow(cfg WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glterm: cannot open display: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHintString(glfw.X11ClassName, "corvidterm")
	glfw.WindowHintString(glfw.X11InstanceName, "corvidterm")

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glterm: cannot open display: %w", err)
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("glterm: cannot initialise OpenGL: %w", err)
	}

	glfw.SwapInterval(1)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	w := &Window{glfw: win, width: cfg.Width, height: cfg.Height}
	w.setIcon()
	return w, nil
}

// GLFW exposes the underlying window for callback registration.
func (w *Window) GLFW() *glfw.Window { return w.glfw }

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() (int, int) { return w.glfw.GetFramebufferSize() }

// ShouldClose reports whether the window has received a close request.
func (w *Window) ShouldClose() bool { return w.glfw.ShouldClose() }

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() { w.glfw.SwapBuffers() }

// SetViewport resizes the GL viewport to match the framebuffer.
func (w *Window) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// ToggleFullscreen switches between windowed and borderless fullscreen on
// the primary monitor.
func (w *Window) ToggleFullscreen() {
	if w.isFullscreen {
		w.glfw.SetMonitor(nil, w.savedX, w.savedY, w.savedW, w.savedH, 0)
		w.isFullscreen = false
		return
	}
	w.savedX, w.savedY = w.glfw.GetPos()
	w.savedW, w.savedH = w.glfw.GetSize()
	monitor := glfw.GetPrimaryMonitor()
	mode := monitor.GetVideoMode()
	w.glfw.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	w.isFullscreen = true
}

func (w *Window) setIcon() {
	icons := renderIconSizes([]int{16, 32, 48, 64, 128})
	if len(icons) > 0 {
		w.glfw.SetIcon(icons)
	}
}

// Destroy tears down the window and terminates GLFW.
func (w *Window) Destroy() {
	w.glfw.Destroy()
	glfw.Terminate()
}

// PollEvents drains the GLFW event queue, invoking any registered
// callbacks. Must be called from the locked main thread.
func PollEvents() {
	glfw.PollEvents()
}

// WaitEventsTimeout blocks up to timeout seconds for an event, or returns
// immediately once one arrives — the display side of the event loop's
// single readiness-wait primitive.
func WaitEventsTimeout(timeout float64) {
	glfw.WaitEventsTimeout(timeout)
}
