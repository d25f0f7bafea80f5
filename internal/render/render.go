// Package render translates grid.Damage into Surface port calls: paint
// grid cells and the cursor onto the Surface, repainting only what the
// Grid reports as damaged.
package render

import (
	"github.com/corvid-term/corvid/internal/grid"
	"github.com/corvid-term/corvid/internal/sgr"
)

// Surface is the subset of the glterm.Surface port the renderer drives.
// Declared here (rather than imported from glterm) so this package stays
// free of any OpenGL/GLFW dependency and is usable with a fake in tests.
type Surface interface {
	FillRect(x, y, w, h float32, rgb sgr.RGB24)
	DrawGlyph(col, row int, codepoint rune, rgb sgr.RGB24)
	ClearRect(x, y, w, h float32)
	ClearAll()
	Flush()
	CellSize() (int, int)
	Origin() (int, int)
}

// Renderer repaints a Grid onto a Surface, following the Grid's damage
// records so unchanged cells are never redrawn.
type Renderer struct {
	surface Surface

	havePrevCursor           bool
	prevCursorX, prevCursorY int
}

// New creates a Renderer bound to surface.
func New(surface Surface) *Renderer {
	return &Renderer{surface: surface}
}

// RedrawAll repaints every cell and the cursor, used after resize or at
// startup.
func (r *Renderer) RedrawAll(g *grid.Grid) {
	r.surface.ClearAll()
	for y := 0; y < g.Height(); y++ {
		r.redrawLineCells(g, y)
	}
	r.DrawCursor(g)
	r.surface.Flush()
}

// RedrawLine repaints every cell on row y.
func (r *Renderer) RedrawLine(g *grid.Grid, y int) {
	r.redrawLineCells(g, y)
	r.DrawCursor(g)
	r.surface.Flush()
}

func (r *Renderer) redrawLineCells(g *grid.Grid, y int) {
	for x := 0; x < g.Width(); x++ {
		r.DrawCell(g, x, y)
	}
}

// DrawCell repaints one cell: its background fill, then its glyph (if the
// cell is not blank).
func (r *Renderer) DrawCell(g *grid.Grid, x, y int) {
	cellW, cellH := r.surface.CellSize()
	top, left := r.surface.Origin()
	px := float32(left + x*cellW)
	py := float32(top + y*cellH)

	cell := g.Cell(x, y)
	r.surface.FillRect(px, py, float32(cellW), float32(cellH), cell.Bg)
	if cell.Codepoint != 0 {
		r.surface.DrawGlyph(x, y, cell.Codepoint, cell.Fg)
	}
}

// DrawCursor repaints the cursor glyph/block if it is visible, using the
// current foreground colour (the SGR register new writes are stamped
// with), then records its position so the next Apply call can erase it if
// the cursor has since moved.
func (r *Renderer) DrawCursor(g *grid.Grid) {
	cur := g.Cursor()
	r.prevCursorX, r.prevCursorY = cur.X, cur.Y
	r.havePrevCursor = true

	if !cur.Visible || cur.Style == grid.CursorNone {
		return
	}
	cellW, cellH := r.surface.CellSize()
	top, left := r.surface.Origin()
	px := float32(left + cur.X*cellW)
	py := float32(top + cur.Y*cellH)
	// Zero resolves to the theme's default foreground in Surface, same as
	// an ordinary cell's Fg.
	fg := g.CurrentFg()

	switch cur.Style {
	case grid.CursorBlock:
		r.surface.FillRect(px, py, float32(cellW), float32(cellH), fg)
	case grid.CursorLine:
		r.surface.FillRect(px, py, 2, float32(cellH), fg)
	}
}

// Apply repaints exactly the damage recorded since the previous call,
// falling back to RedrawAll when FullRedraw is set (resize, line
// insert/delete). Each call that repaints anything ends with exactly one
// Flush, so a PTY read's effects reach the Surface as one unit before the
// next readiness wait; a call with no damage and no cursor motion paints
// nothing and does not flush.
//
// Cursor motion alone (CSI cursor-positioning calls) marks no cell/line
// damage, since the cells under it never changed. Apply tracks where it
// last drew the cursor and, when that differs from the Grid's current
// cursor position, repaints the old cell to erase the stale cursor there
// even though nothing else moved.
func (r *Renderer) Apply(g *grid.Grid, damage grid.Damage) {
	if damage.FullRedraw {
		r.RedrawAll(g)
		return
	}

	cur := g.Cursor()
	cursorMoved := r.havePrevCursor && (cur.X != r.prevCursorX || cur.Y != r.prevCursorY)

	if len(damage.Lines) == 0 && len(damage.Cells) == 0 && !cursorMoved {
		return
	}
	for _, y := range damage.Lines {
		r.redrawLineCells(g, y)
	}
	for _, c := range damage.Cells {
		r.DrawCell(g, c.X, c.Y)
	}
	if cursorMoved {
		r.DrawCell(g, r.prevCursorX, r.prevCursorY)
	}
	r.DrawCursor(g)
	r.surface.Flush()
}
