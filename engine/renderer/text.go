package renderer

import (
	"image"
	"image/color"

	"github.com/Carmen-Shannon/imgsphere/common"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	textLineHeight = 16
	textPadding    = 8
)

var textFace font.Face = basicfont.Face7x13

func measureText(s string) int {
	return font.MeasureString(textFace, s).Round()
}

// layoutText wraps a title and body into lines for a box of the given pixel width.
// A blank line separates the two when both are present.
func layoutText(title, body string, width int) []string {
	inner := width - 2*textPadding
	lines := common.WrapText(title, inner, measureText)
	if body != "" {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, common.WrapText(body, inner, measureText)...)
	}
	return lines
}

// rasterizeText draws lines into a width x height RGBA image over bg. Lines that do not fit
// vertically are dropped. When centered is set each line is centered horizontally and the
// block is centered vertically.
func rasterizeText(lines []string, width, height int, fg, bg color.RGBA, centered bool) common.TextureStagingData {
	if width <= 0 || height <= 0 {
		return common.TextureStagingData{}
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if bg.A > 0 {
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = bg.R, bg.G, bg.B, bg.A
		}
	}

	maxLines := (height - 2*textPadding) / textLineHeight
	if centered {
		maxLines = height / textLineHeight
	}
	if len(lines) > maxLines {
		lines = lines[:max(maxLines, 0)]
	}

	top := textPadding
	if centered {
		top = (height - len(lines)*textLineHeight) / 2
	}
	ascent := textFace.Metrics().Ascent.Round()

	d := &font.Drawer{Dst: img, Src: image.NewUniform(fg), Face: textFace}
	for i, line := range lines {
		x := textPadding
		if centered {
			x = (width - measureText(line)) / 2
		}
		y := top + i*textLineHeight + (textLineHeight-ascent)/2 + ascent
		d.Dot = fixed.P(x, y)
		d.DrawString(line)
	}

	return common.TextureStagingData{Pixels: img.Pix, Width: uint32(width), Height: uint32(height)}
}
