package glterm

import "testing"

func TestRenderIconSizesProducesOneImagePerSize(t *testing.T) {
	imgs := renderIconSizes([]int{16, 32})
	if len(imgs) != 2 {
		t.Fatalf("expected 2 rendered icons, got %d", len(imgs))
	}
	for i, img := range imgs {
		b := img.Bounds()
		if b.Dx() == 0 || b.Dy() == 0 {
			t.Fatalf("icon %d has empty bounds: %v", i, b)
		}
	}
}

func TestRenderIconSizesEmptyInput(t *testing.T) {
	imgs := renderIconSizes(nil)
	if len(imgs) != 0 {
		t.Fatalf("expected no images for empty size list, got %d", len(imgs))
	}
}
