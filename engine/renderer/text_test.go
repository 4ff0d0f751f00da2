package renderer

import (
	"image/color"
	"testing"
)

func countOpaque(pix []byte) int {
	n := 0
	for i := 3; i < len(pix); i += 4 {
		if pix[i] > 0 {
			n++
		}
	}
	return n
}

func TestRasterizeTextDrawsGlyphs(t *testing.T) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	data := rasterizeText([]string{"Hello"}, 120, 40, white, color.RGBA{}, true)
	if data.Width != 120 || data.Height != 40 || len(data.Pixels) != 120*40*4 {
		t.Fatalf("unexpected staging size %dx%d (%d bytes)", data.Width, data.Height, len(data.Pixels))
	}
	if countOpaque(data.Pixels) == 0 {
		t.Fatal("no glyph pixels drawn")
	}

	blank := rasterizeText(nil, 120, 40, white, color.RGBA{}, true)
	if n := countOpaque(blank.Pixels); n != 0 {
		t.Fatalf("empty text produced %d opaque pixels", n)
	}
}

func TestRasterizeTextFillsBackground(t *testing.T) {
	bg := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	data := rasterizeText(nil, 8, 8, color.RGBA{A: 255}, bg, false)
	if countOpaque(data.Pixels) != 64 {
		t.Fatal("background not filled")
	}
	if data.Pixels[0] != 10 || data.Pixels[1] != 20 || data.Pixels[2] != 30 {
		t.Fatalf("background color = %v", data.Pixels[:4])
	}
}

func TestRasterizeTextRejectsEmptyBox(t *testing.T) {
	if data := rasterizeText([]string{"x"}, 0, 10, color.RGBA{}, color.RGBA{}, false); !data.Empty() {
		t.Fatal("zero-width box produced pixels")
	}
}

func TestLayoutTextSeparatesTitleAndBody(t *testing.T) {
	lines := layoutText("Title", "Body text", 200)
	if len(lines) != 3 || lines[0] != "Title" || lines[1] != "" || lines[2] != "Body text" {
		t.Fatalf("layoutText = %q", lines)
	}
	if lines := layoutText("", "only body", 200); len(lines) != 1 {
		t.Fatalf("body-only layout = %q", lines)
	}
}
