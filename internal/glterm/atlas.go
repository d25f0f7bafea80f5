package glterm

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// atlasFirstRune/atlasLastRune bound the printable ASCII range rasterized
// into the glyph atlas; codepoints outside this range draw as the '?'
// glyph, since a full Unicode atlas is outside this core's
// drawing scope (a single fixed-size Grid has no use for icon-font ranges).
const (
	atlasFirstRune = rune(0x20)
	atlasLastRune  = rune(0x7e)
)

// glyphInfo locates one rasterized glyph within the atlas texture.
type glyphInfo struct {
	u0, v0, u1, v1 float32
	advance        int
}

// atlas is a monospace glyph atlas rasterized from a TTF/OTF file at a
// configured point size: opentype.Parse + opentype.NewFace + font.Drawer
// rasterization onto an RGBA texture, uploaded once as a GL_RED texture.
type atlas struct {
	texture   uint32
	glyphs    map[rune]glyphInfo
	cellW     int
	cellH     int
	ascent    int
}

// loadAtlas rasterizes the ASCII range of the font at fontPath into a GL
// texture atlas sized for a fixed-width cell grid.
func loadAtlas(fontPath string, sizePoints float64) (*atlas, error) {
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("glterm: cannot create font set: %w", err)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("glterm: cannot create font set: %w", err)
	}

	const dpi = 96
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    sizePoints,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("glterm: cannot create font set: %w", err)
	}
	defer face.Close()

	metrics := face.Metrics()
	cellH := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	advance, _ := face.GlyphAdvance('M')
	cellW := advance.Ceil()
	if cellW <= 0 {
		cellW = cellH / 2
	}

	cols := int(atlasLastRune-atlasFirstRune) + 1
	sheetW := cellW * cols
	sheetH := cellH
	sheet := image.NewRGBA(image.Rect(0, 0, sheetW, sheetH))
	draw.Draw(sheet, sheet.Bounds(), image.Transparent, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  sheet,
		Src:  image.White,
		Face: face,
	}

	glyphs := make(map[rune]glyphInfo, cols)
	for i, r := 0, atlasFirstRune; r <= atlasLastRune; i, r = i+1, r+1 {
		x := i * cellW
		drawer.Dot = fixed.P(x, ascent)
		drawer.DrawString(string(r))
		glyphs[r] = glyphInfo{
			u0:      float32(x) / float32(sheetW),
			v0:      0,
			u1:      float32(x+cellW) / float32(sheetW),
			v1:      1,
			advance: cellW,
		}
	}

	tex := uploadAlphaTexture(sheet)

	return &atlas{
		texture: tex,
		glyphs:  glyphs,
		cellW:   cellW,
		cellH:   cellH,
		ascent:  ascent,
	}, nil
}

// uploadAlphaTexture uploads the alpha channel of an RGBA image as a
// single-channel GL texture sampled by the text fragment shader.
func uploadAlphaTexture(img *image.RGBA) uint32 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	alpha := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			alpha[y*w+x] = byte(a >> 8)
		}
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(w), int32(h), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(alpha))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return tex
}

// glyph looks up a rasterized glyph, falling back to '?' for codepoints
// outside the rasterized ASCII range.
func (a *atlas) glyph(r rune) (glyphInfo, bool) {
	if g, ok := a.glyphs[r]; ok {
		return g, true
	}
	return a.glyphs['?'], false
}
