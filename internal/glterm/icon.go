package glterm

import (
	"bytes"
	"image"
	"image/draw"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// iconSVG is a small vector corvid-silhouette mark, inlined as a string
// literal rather than loaded via go:embed, since no icon asset file ships
// with this tree.
const iconSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64">
  <circle cx="32" cy="32" r="30" fill="#0a0a0a"/>
  <path d="M18 40 Q24 18 32 18 Q40 18 46 40 Q38 34 32 34 Q26 34 18 40 Z" fill="#e0e0e0"/>
  <circle cx="27" cy="28" r="2.4" fill="#0a0a0a"/>
  <circle cx="37" cy="28" r="2.4" fill="#0a0a0a"/>
  <path d="M32 30 L29 36 L35 36 Z" fill="#f0a500"/>
</svg>`

func renderIconSizes(sizes []int) []image.Image {
	icon, err := oksvg.ReadIconStream(bytes.NewReader([]byte(iconSVG)))
	if err != nil {
		return nil
	}
	out := make([]image.Image, 0, len(sizes))
	for _, size := range sizes {
		icon.SetTarget(0, 0, float64(size), float64(size))
		rgba := image.NewRGBA(image.Rect(0, 0, size, size))
		draw.Draw(rgba, rgba.Bounds(), image.Transparent, image.Point{}, draw.Src)
		scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
		raster := rasterx.NewDasher(size, size, scanner)
		icon.Draw(raster, 1.0)
		out = append(out, rgba)
	}
	return out
}
