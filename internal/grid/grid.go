// Package grid owns the terminal's canonical state: the cell matrix, the
// cursor, and the "current SGR register" that new writes are stamped with.
// It accepts decoded code points, C0 controls, and decoded CSI calls, and
// emits damage records so a renderer can repaint only what changed.
//
// Trimmed to the cell model and CSI table this core actually needs: no
// scrollback buffer, no selection tracking, no alternate screen (all
// explicit non-goals at this level).
package grid

import "github.com/corvid-term/corvid/internal/sgr"

// TabWidth is the stop width used by HT.
const TabWidth = 8

// CursorStyle selects how the cursor is drawn.
type CursorStyle int

const (
	CursorNone CursorStyle = iota
	CursorLine
	CursorBlock
)

// Cell is a single grid cell. A Cell with Codepoint == 0 is "empty" and is
// rendered as background only.
type Cell struct {
	Codepoint rune
	Fg        sgr.RGB24
	Bg        sgr.RGB24
	Attrs     sgr.AttrFlags
}

// Cursor is the grid's single cursor.
type Cursor struct {
	X, Y    int
	Style   CursorStyle
	Visible bool
}

// CellCoord addresses one cell for cell-granularity damage.
type CellCoord struct {
	X, Y int
}

// Damage describes what changed since the last TakeDamage call. A renderer
// should treat FullRedraw as overriding Lines and Cells.
type Damage struct {
	FullRedraw bool
	Lines      []int
	Cells      []CellCoord
}

// Grid is the canonical terminal buffer. It exclusively owns its cell
// storage; callers reach it only through the methods below.
type Grid struct {
	width, height int
	cells         []Cell

	cursor Cursor

	// current SGR register: the colours/attrs stamped onto new writes.
	curFg    sgr.RGB24
	curBg    sgr.RGB24
	curAttrs sgr.AttrFlags

	savedX, savedY int

	scrollTop, scrollBottom int // 0-based, inclusive; scrollBottom == height-1 by default

	dirtyLines map[int]bool
	dirtyCells map[CellCoord]bool
	fullDirty  bool
}

// New creates a Grid of the given dimensions. width and height must both be
// positive.
func New(width, height int) *Grid {
	g := &Grid{
		width:        width,
		height:       height,
		cells:        make([]Cell, width*height),
		scrollBottom: height - 1,
		dirtyLines:   make(map[int]bool),
		dirtyCells:   make(map[CellCoord]bool),
	}
	g.cursor.Visible = true
	g.cursor.Style = CursorBlock
	return g
}

func (g *Grid) index(x, y int) int { return y*g.width + x }

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (g *Grid) clampCursor() {
	g.cursor.X = clamp(g.cursor.X, 0, g.width)
	g.cursor.Y = clamp(g.cursor.Y, 0, g.height)
}

func (g *Grid) markCell(x, y int) {
	if g.fullDirty || !g.inBounds(x, y) {
		return
	}
	g.dirtyCells[CellCoord{x, y}] = true
}

func (g *Grid) markLine(y int) {
	if g.fullDirty || y < 0 || y >= g.height {
		return
	}
	g.dirtyLines[y] = true
}

func (g *Grid) markAll() {
	g.fullDirty = true
}

// TakeDamage returns the accumulated damage and clears it.
func (g *Grid) TakeDamage() Damage {
	d := Damage{FullRedraw: g.fullDirty}
	if !g.fullDirty {
		for y := range g.dirtyLines {
			d.Lines = append(d.Lines, y)
		}
		for c := range g.dirtyCells {
			d.Cells = append(d.Cells, c)
		}
	}
	g.fullDirty = false
	g.dirtyLines = make(map[int]bool)
	g.dirtyCells = make(map[CellCoord]bool)
	return d
}

// Width and Height report the grid's current dimensions.
func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Cursor reports the cursor's current state.
func (g *Grid) Cursor() Cursor { return g.cursor }

// Cell reads the cell at (x, y), returning the zero Cell out of bounds.
func (g *Grid) Cell(x, y int) Cell {
	if !g.inBounds(x, y) {
		return Cell{}
	}
	return g.cells[g.index(x, y)]
}

func (g *Grid) setCell(x, y int, c Cell) {
	if !g.inBounds(x, y) {
		return
	}
	g.cells[g.index(x, y)] = c
	g.markCell(x, y)
}

// Putchar writes a printable code point at the cursor, stamped with the
// current SGR register, then advances the cursor with wraparound. A
// zero-width rune (combining marks, non-printables) is dropped rather than
// merged onto the preceding cell, since Cell carries a single Codepoint. A
// wide rune (CJK, fullwidth forms) occupies two cells: the glyph in the
// first and a blank trailing cell in the second, so the renderer never
// double-draws it.
func (g *Grid) Putchar(cp rune) {
	w := RuneWidth(cp)
	if w == 0 {
		return
	}
	g.setCell(g.cursor.X, g.cursor.Y, Cell{Codepoint: cp, Fg: g.curFg, Bg: g.curBg, Attrs: g.curAttrs})
	g.cursor.X++
	if w == 2 && g.cursor.X < g.width {
		g.setCell(g.cursor.X, g.cursor.Y, Cell{Fg: g.curFg, Bg: g.curBg, Attrs: g.curAttrs})
		g.cursor.X++
	}
	if g.cursor.X >= g.width {
		g.cursor.X = 0
		g.cursor.Y++
	}
	if g.cursor.Y >= g.height {
		g.cursor.Y = g.height - 1
	}
}

// Bell is a no-op placeholder for BEL; callers may observe it separately for
// a side-effect notification (e.g. a visual flash) outside the grid.
func (g *Grid) Bell() {}

// Backspace moves the cursor left, wrapping to the previous row, and clears
// the cell the cursor lands on.
func (g *Grid) Backspace() {
	g.cursor.X--
	if g.cursor.X < 0 {
		g.cursor.X = g.width - 1
		g.cursor.Y--
		if g.cursor.Y < 0 {
			g.cursor.Y = 0
		}
	}
	g.setCell(g.cursor.X, g.cursor.Y, Cell{Fg: g.curFg, Bg: g.curBg})
	g.markLine(g.cursor.Y)
}

// Tab advances the cursor to the next TabWidth stop.
func (g *Grid) Tab() {
	next := ((g.cursor.X / TabWidth) + 1) * TabWidth
	g.cursor.X = clamp(next, 0, g.width-1)
}

// CarriageReturn moves the cursor to column 0.
func (g *Grid) CarriageReturn() {
	g.cursor.X = 0
}

// Linefeed moves the cursor down one row, clamped at the bottom (no
// scrollback in this core).
func (g *Grid) Linefeed() {
	g.cursor.Y++
	if g.cursor.Y >= g.height {
		g.cursor.Y = g.height - 1
	}
}

// blankCell fills with the current background colour, per the erase
// semantics: colouring with the current background distinguishes
// "clear to end of line" painting.
func (g *Grid) blankCell() Cell {
	return Cell{Fg: g.curFg, Bg: g.curBg}
}

// EraseScreen implements CSI J. mode 0: cursor to end; 1: start to cursor;
// 2: entire screen.
func (g *Grid) EraseScreen(mode int) {
	switch mode {
	case 0:
		g.eraseRange(g.cursor.Y, g.cursor.X, g.height-1, g.width-1)
	case 1:
		g.eraseRange(0, 0, g.cursor.Y, g.cursor.X)
	case 2:
		g.eraseRange(0, 0, g.height-1, g.width-1)
	}
}

func (g *Grid) eraseRange(y0, x0, y1, x1 int) {
	blank := g.blankCell()
	for y := y0; y <= y1; y++ {
		startX, endX := 0, g.width-1
		if y == y0 {
			startX = x0
		}
		if y == y1 {
			endX = x1
		}
		for x := startX; x <= endX; x++ {
			g.setCell(x, y, blank)
		}
	}
}

// EraseLine implements CSI K within the current row: mode 0 cursor to end,
// 1 start to cursor, 2 entire line.
func (g *Grid) EraseLine(mode int) {
	blank := g.blankCell()
	y := g.cursor.Y
	switch mode {
	case 0:
		for x := g.cursor.X; x < g.width; x++ {
			g.setCell(x, y, blank)
		}
	case 1:
		for x := 0; x <= g.cursor.X; x++ {
			g.setCell(x, y, blank)
		}
	case 2:
		for x := 0; x < g.width; x++ {
			g.setCell(x, y, blank)
		}
	}
}

// CursorUp/Down/Forward/Back move the cursor by n (default handled by the
// caller), clamping to the grid.
func (g *Grid) CursorUp(n int) {
	g.cursor.Y -= n
	g.clampCursor()
}

func (g *Grid) CursorDown(n int) {
	g.cursor.Y += n
	g.clampCursor()
}

func (g *Grid) CursorForward(n int) {
	g.cursor.X += n
	g.clampCursor()
}

func (g *Grid) CursorBack(n int) {
	g.cursor.X -= n
	g.clampCursor()
}

// CursorNextLine / CursorPrevLine implement CSI E / F.
func (g *Grid) CursorNextLine(n int) {
	g.cursor.X = 0
	g.cursor.Y += n
	g.clampCursor()
}

func (g *Grid) CursorPrevLine(n int) {
	g.cursor.X = 0
	g.cursor.Y -= n
	g.clampCursor()
}

// CursorColumn implements CSI G: absolute column, 0-based. The caller
// passes the CSI parameter through unchanged (no 1-based conversion).
func (g *Grid) CursorColumn(x int) {
	g.cursor.X = x
	g.clampCursor()
}

// CursorPosition implements CSI H/f: absolute row and column, 0-based.
func (g *Grid) CursorPosition(y, x int) {
	g.cursor.Y = y
	g.cursor.X = x
	g.clampCursor()
}

// SetCursorVisible toggles cursor visibility (DECTCEM, CSI ?25h/l).
func (g *Grid) SetCursorVisible(v bool) {
	g.cursor.Visible = v
}

// CurrentFg returns the SGR register's current foreground colour, the one
// new writes are stamped with. Zero means "theme default", same convention
// as a Cell's Fg field.
func (g *Grid) CurrentFg() sgr.RGB24 {
	return g.curFg
}

// SaveCursor stashes the cursor position (DECSC / CSI s).
func (g *Grid) SaveCursor() {
	g.savedX, g.savedY = g.cursor.X, g.cursor.Y
}

// RestoreCursor restores a previously saved cursor position (DECRC / CSI u).
func (g *Grid) RestoreCursor() {
	g.cursor.X, g.cursor.Y = g.savedX, g.savedY
	g.clampCursor()
}

// ApplySGRResult folds an sgr.Result into the current SGR register.
func (g *Grid) ApplySGRResult(res sgr.Result) {
	switch res.Fg.Kind {
	case sgr.Reset:
		g.curFg = 0
	case sgr.Value:
		g.curFg = res.Fg.RGB
	}
	switch res.Bg.Kind {
	case sgr.Reset:
		g.curBg = 0
	case sgr.Value:
		g.curBg = res.Bg.RGB
	}
	switch res.Attrs.Kind {
	case sgr.Reset:
		g.curAttrs = 0
	case sgr.Value:
		g.curAttrs |= res.Attrs.Bits
	}
}

// InsertChars implements CSI @: insert n blank cells at the cursor, shifting
// the remainder of the row right and dropping characters that fall off the
// right edge.
func (g *Grid) InsertChars(n int) {
	y := g.cursor.Y
	blank := g.blankCell()
	for x := g.width - 1; x >= g.cursor.X; x-- {
		src := x - n
		if src >= g.cursor.X {
			g.cells[g.index(x, y)] = g.cells[g.index(src, y)]
		} else {
			g.cells[g.index(x, y)] = blank
		}
	}
	g.markLine(y)
}

// DeleteChars implements CSI P: delete n cells at the cursor, shifting the
// remainder of the row left and filling the vacated tail with blanks.
func (g *Grid) DeleteChars(n int) {
	y := g.cursor.Y
	blank := g.blankCell()
	for x := g.cursor.X; x < g.width; x++ {
		src := x + n
		if src < g.width {
			g.cells[g.index(x, y)] = g.cells[g.index(src, y)]
		} else {
			g.cells[g.index(x, y)] = blank
		}
	}
	g.markLine(y)
}

// EraseChars implements CSI X: overwrite n cells from the cursor with
// blanks, without shifting the row.
func (g *Grid) EraseChars(n int) {
	blank := g.blankCell()
	y := g.cursor.Y
	end := clamp(g.cursor.X+n, 0, g.width)
	for x := g.cursor.X; x < end; x++ {
		g.setCell(x, y, blank)
	}
}

// RepeatChar implements CSI b (REP): repeat the last printed code point n
// times, using the cell immediately to the left of the cursor as the
// source. No-op if the cursor is at column 0.
func (g *Grid) RepeatChar(n int) {
	if g.cursor.X == 0 {
		return
	}
	last := g.Cell(g.cursor.X-1, g.cursor.Y)
	if last.Codepoint == 0 {
		return
	}
	for i := 0; i < n; i++ {
		g.Putchar(last.Codepoint)
	}
}

// scrollRegion returns the active scroll region, defaulting to the whole
// grid when none has been set.
func (g *Grid) scrollRegion() (top, bottom int) {
	top, bottom = g.scrollTop, g.scrollBottom
	if bottom <= top {
		top, bottom = 0, g.height-1
	}
	return
}

// InsertLines implements CSI L: insert n blank lines at the cursor row
// within the scroll region, shifting lines below down and dropping lines
// that fall off the bottom of the region.
func (g *Grid) InsertLines(n int) {
	top, bottom := g.scrollRegion()
	y := g.cursor.Y
	if y < top || y > bottom {
		return
	}
	for row := bottom; row >= y+n; row-- {
		src := row - n
		if src >= y {
			g.copyRow(src, row)
		}
	}
	blank := g.blankCell()
	for row := y; row < y+n && row <= bottom; row++ {
		g.fillRow(row, blank)
	}
	g.markAll()
}

// DeleteLines implements CSI M: delete n lines at the cursor row within the
// scroll region, shifting lines below up and filling the vacated bottom
// rows with blanks.
func (g *Grid) DeleteLines(n int) {
	top, bottom := g.scrollRegion()
	y := g.cursor.Y
	if y < top || y > bottom {
		return
	}
	for row := y; row <= bottom-n; row++ {
		g.copyRow(row+n, row)
	}
	blank := g.blankCell()
	for row := bottom - n + 1; row <= bottom; row++ {
		if row >= y {
			g.fillRow(row, blank)
		}
	}
	g.markAll()
}

func (g *Grid) copyRow(src, dst int) {
	copy(g.cells[g.index(0, dst):g.index(0, dst)+g.width], g.cells[g.index(0, src):g.index(0, src)+g.width])
}

func (g *Grid) fillRow(y int, c Cell) {
	for x := 0; x < g.width; x++ {
		g.cells[g.index(x, y)] = c
	}
}

// SetScrollRegion implements DECSTBM (CSI r), 0-based inclusive bounds. The
// region is confined to the visible grid; no history is retained, so this
// stays compatible with the no-scrollback constraint.
func (g *Grid) SetScrollRegion(top, bottom int) {
	top = clamp(top, 0, g.height-1)
	bottom = clamp(bottom, 0, g.height-1)
	if top >= bottom {
		top, bottom = 0, g.height-1
	}
	g.scrollTop, g.scrollBottom = top, bottom
}

// Resize reallocates the cell buffer in place. New cells on growth are
// empty; cells beyond a shrunk edge are dropped. The cursor is clamped and
// a full-screen damage record is produced.
func (g *Grid) Resize(width, height int) {
	newCells := make([]Cell, width*height)
	for y := 0; y < height && y < g.height; y++ {
		for x := 0; x < width && x < g.width; x++ {
			newCells[y*width+x] = g.cells[g.index(x, y)]
		}
	}
	g.cells = newCells
	g.width, g.height = width, height
	g.scrollTop = 0
	g.scrollBottom = height - 1
	g.clampCursor()
	g.markAll()
}
