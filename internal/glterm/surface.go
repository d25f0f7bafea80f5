package glterm

import (
	"fmt"

	"github.com/corvid-term/corvid/internal/config"
	"github.com/corvid-term/corvid/internal/sgr"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Surface implements the display port: fill_rect, draw_glyph, clear_rect,
// clear_all, flush, in pixel coordinates, with glyph layout aligned to a
// fixed CharW/CharH cell grid offset by TopMost/LeftMost.
type Surface struct {
	win   *Window
	atlas *atlas
	theme config.Theme

	quadProgram uint32
	quadVAO     uint32
	quadVBO     uint32
	quadProjLoc int32
	quadColLoc  int32
	quadOffLoc  int32
	quadSizeLoc int32

	textProgram uint32
	textVAO     uint32
	textVBO     uint32
	textProjLoc int32
	textColLoc  int32
	textOffLoc  int32
	textSizeLoc int32
	textTexLoc  int32

	charW, charH     int
	topMost, leftMost int

	fbWidth, fbHeight int
}

// NewSurface builds the GL programs and glyph atlas for win, using the
// font and theme supplied by the surrounding executable's configuration.
func NewSurface(win *Window, fontPath string, fontSize float64, theme config.Theme) (*Surface, error) {
	a, err := loadAtlas(fontPath, fontSize)
	if err != nil {
		return nil, err
	}

	quadProgram, err := createProgram(quadVertexShader, quadFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("glterm: quad program: %w", err)
	}
	textProgram, err := createProgram(textVertexShader, textFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("glterm: text program: %w", err)
	}

	s := &Surface{
		win:        win,
		atlas:      a,
		theme:      theme,
		quadProgram: quadProgram,
		textProgram: textProgram,
		charW:      a.cellW,
		charH:      a.cellH,
		topMost:    DefaultTopMost,
		leftMost:   DefaultLeft,
	}
	s.fbWidth, s.fbHeight = win.FramebufferSize()

	s.initQuadGeometry()
	s.initTextGeometry()

	s.quadProjLoc = gl.GetUniformLocation(quadProgram, gl.Str("uProjection\x00"))
	s.quadColLoc = gl.GetUniformLocation(quadProgram, gl.Str("uColor\x00"))
	s.quadOffLoc = gl.GetUniformLocation(quadProgram, gl.Str("uOffset\x00"))
	s.quadSizeLoc = gl.GetUniformLocation(quadProgram, gl.Str("uSize\x00"))

	s.textProjLoc = gl.GetUniformLocation(textProgram, gl.Str("uProjection\x00"))
	s.textColLoc = gl.GetUniformLocation(textProgram, gl.Str("uColor\x00"))
	s.textOffLoc = gl.GetUniformLocation(textProgram, gl.Str("uOffset\x00"))
	s.textSizeLoc = gl.GetUniformLocation(textProgram, gl.Str("uSize\x00"))
	s.textTexLoc = gl.GetUniformLocation(textProgram, gl.Str("uAtlas\x00"))

	return s, nil
}

func (s *Surface) initQuadGeometry() {
	vertices := []float32{0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 0, 1}
	gl.GenVertexArrays(1, &s.quadVAO)
	gl.GenBuffers(1, &s.quadVBO)
	gl.BindVertexArray(s.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
}

func (s *Surface) initTextGeometry() {
	// Quad + UV pairs, rewritten per glyph in DrawGlyph via BufferSubData.
	stride := int32(4 * 4)
	gl.GenVertexArrays(1, &s.textVAO)
	gl.GenBuffers(1, &s.textVBO)
	gl.BindVertexArray(s.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.textVBO)
	gl.BufferData(gl.ARRAY_BUFFER, 6*int(stride), nil, gl.DYNAMIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)
}

func (s *Surface) projection() [16]float32 {
	return orthoMatrix(0, float32(s.fbWidth), float32(s.fbHeight), 0, -1, 1)
}

// rgbToFloat converts a resolved sgr.RGB24 to a shader-ready [4]float32,
// treating the zero value as "unset" and resolving it against the theme:
// the Grid's SGR register has no distinct "default colour" sentinel, so
// black-by-omission maps to the theme's default foreground/background.
func (s *Surface) rgbToFloat(c sgr.RGB24, isBackground bool) [4]float32 {
	if c == 0 {
		var t [3]uint8
		if isBackground {
			t = s.theme.Background
		} else {
			t = s.theme.Foreground
		}
		return [4]float32{float32(t[0]) / 255, float32(t[1]) / 255, float32(t[2]) / 255, 1}
	}
	r := uint8(c >> 16)
	g := uint8(c >> 8)
	b := uint8(c)
	return [4]float32{float32(r) / 255, float32(g) / 255, float32(b) / 255, 1}
}

// cellOrigin returns the pixel top-left of the cell at (col, row).
func (s *Surface) cellOrigin(col, row int) (float32, float32) {
	x := float32(s.leftMost + col*s.charW)
	y := float32(s.topMost + row*s.charH)
	return x, y
}

// FillRect draws a solid rectangle, used for cell backgrounds and the
// block cursor.
func (s *Surface) FillRect(x, y, w, h float32, rgb sgr.RGB24) {
	proj := s.projection()
	clr := s.rgbToFloat(rgb, false)
	gl.UseProgram(s.quadProgram)
	gl.UniformMatrix4fv(s.quadProjLoc, 1, false, &proj[0])
	gl.Uniform4fv(s.quadColLoc, 1, &clr[0])
	gl.Uniform2f(s.quadOffLoc, x, y)
	gl.Uniform2f(s.quadSizeLoc, w, h)
	gl.BindVertexArray(s.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

// DrawGlyph paints one codepoint's foreground at cell (col, row).
func (s *Surface) DrawGlyph(col, row int, codepoint rune, rgb sgr.RGB24) {
	if codepoint == 0 || codepoint == ' ' {
		return
	}
	glyph, _ := s.atlas.glyph(codepoint)
	x, y := s.cellOrigin(col, row)
	w, h := float32(s.charW), float32(s.charH)

	vertices := []float32{
		x, y, glyph.u0, glyph.v0,
		x + w, y, glyph.u1, glyph.v0,
		x + w, y + h, glyph.u1, glyph.v1,
		x, y, glyph.u0, glyph.v0,
		x + w, y + h, glyph.u1, glyph.v1,
		x, y + h, glyph.u0, glyph.v1,
	}

	proj := s.projection()
	clr := s.rgbToFloat(rgb, false)

	gl.UseProgram(s.textProgram)
	gl.UniformMatrix4fv(s.textProjLoc, 1, false, &proj[0])
	gl.Uniform4fv(s.textColLoc, 1, &clr[0])
	gl.Uniform2f(s.textOffLoc, 0, 0)
	gl.Uniform2f(s.textSizeLoc, 1, 1)
	gl.Uniform1i(s.textTexLoc, 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, s.atlas.texture)

	gl.BindVertexArray(s.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.textVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

// ClearRect fills the pixel rectangle with the theme background.
func (s *Surface) ClearRect(x, y, w, h float32) {
	proj := s.projection()
	clr := s.rgbToFloat(0, true)
	gl.UseProgram(s.quadProgram)
	gl.UniformMatrix4fv(s.quadProjLoc, 1, false, &proj[0])
	gl.Uniform4fv(s.quadColLoc, 1, &clr[0])
	gl.Uniform2f(s.quadOffLoc, x, y)
	gl.Uniform2f(s.quadSizeLoc, w, h)
	gl.BindVertexArray(s.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

// ClearAll clears the whole framebuffer to the theme background.
func (s *Surface) ClearAll() {
	bg := s.theme.Background
	gl.ClearColor(float32(bg[0])/255, float32(bg[1])/255, float32(bg[2])/255, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Flush presents the frame. The event loop calls this once per iteration
// after all damage for that iteration has been painted, never mid-sequence.
func (s *Surface) Flush() {
	s.win.SwapBuffers()
}

// Resize updates the cached framebuffer size and GL viewport after a
// window resize event; the caller is responsible for recomputing grid
// columns/rows from CellSize() and pushing a full repaint.
func (s *Surface) Resize(pixelW, pixelH int) {
	s.fbWidth, s.fbHeight = pixelW, pixelH
	s.win.SetViewport(pixelW, pixelH)
}

// CellSize returns the pixel dimensions of one grid cell, for computing
// columns/rows from a framebuffer size.
func (s *Surface) CellSize() (int, int) { return s.charW, s.charH }

// Origin returns the TopMost/LeftMost pixel offsets of the grid's first
// cell.
func (s *Surface) Origin() (int, int) { return s.topMost, s.leftMost }

// Destroy releases the GL resources owned by the surface.
func (s *Surface) Destroy() {
	gl.DeleteVertexArrays(1, &s.quadVAO)
	gl.DeleteBuffers(1, &s.quadVBO)
	gl.DeleteVertexArrays(1, &s.textVAO)
	gl.DeleteBuffers(1, &s.textVBO)
	gl.DeleteProgram(s.quadProgram)
	gl.DeleteProgram(s.textProgram)
	gl.DeleteTextures(1, &s.atlas.texture)
}
