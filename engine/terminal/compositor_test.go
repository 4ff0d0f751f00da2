package terminal

import (
	"image/color"
	"testing"
	"time"

	"github.com/Carmen-Shannon/imgsphere/common"
	"github.com/Carmen-Shannon/imgsphere/engine/scene"
)

var (
	black = color.RGBA{A: 255}
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func shown(opacity float64, z int) scene.Transform {
	return scene.Transform{Scale: 1, Opacity: opacity, ZIndex: z, Visible: true}
}

func TestComposeBackground(t *testing.T) {
	sc := scene.NewScene(scene.WithBackground(color.RGBA{R: 10, G: 20, B: 30, A: 255}))
	f := NewCompositor(8, 16).Compose(sc, 4, 3)
	if f.Cols != 4 || f.Rows != 3 || len(f.Cells) != 12 {
		t.Fatalf("frame is %dx%d with %d cells", f.Cols, f.Rows, len(f.Cells))
	}
	for i, c := range f.Cells {
		if c.Top != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) || c.Bottom != c.Top || c.Rune != 0 {
			t.Fatalf("cell %d = %+v", i, c)
		}
	}
}

func TestComposeNodeTintAndContent(t *testing.T) {
	sc := scene.NewScene(scene.WithBackground(black))
	n := sc.AddNode(scene.NodeSpec{Bounds: common.Rect{W: 16, H: 32}, Tint: red})
	n.SetTransform(shown(1, 0))

	c := NewCompositor(8, 16)
	f := c.Compose(sc, 4, 3)
	for _, at := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		if cell := f.At(at[0], at[1]); cell.Top != red || cell.Bottom != red {
			t.Fatalf("cell %v = %+v, want tint", at, cell)
		}
	}
	if cell := f.At(2, 0); cell.Top != black {
		t.Fatalf("cell outside the node = %+v", cell)
	}

	n.SetContent(common.TextureStagingData{
		Pixels: []byte{0, 0, 255, 255, 0, 255, 0, 255},
		Width:  2,
		Height: 1,
	})
	f = c.Compose(sc, 4, 3)
	if f.At(0, 0).Top != blue || f.At(1, 0).Top != green {
		t.Fatalf("content not sampled: %+v %+v", f.At(0, 0), f.At(1, 0))
	}
}

func TestComposeOpacityAndOrder(t *testing.T) {
	sc := scene.NewScene(scene.WithBackground(black))
	back := sc.AddNode(scene.NodeSpec{Bounds: common.Rect{W: 8, H: 16}, Tint: blue})
	front := sc.AddNode(scene.NodeSpec{Bounds: common.Rect{W: 8, H: 16}, Tint: white})
	back.SetTransform(shown(1, 5))
	front.SetTransform(shown(1, 1))

	c := NewCompositor(8, 16)
	if got := c.Compose(sc, 1, 1).At(0, 0).Top; got != blue {
		t.Fatalf("higher z-index not on top: %+v", got)
	}

	back.SetTransform(shown(0, 5))
	front.SetTransform(shown(0.5, 1))
	if got := c.Compose(sc, 1, 1).At(0, 0).Top; got != (color.RGBA{R: 128, G: 128, B: 128, A: 255}) {
		t.Fatalf("half opacity = %+v", got)
	}
}

func TestComposeRoundedClipsCorners(t *testing.T) {
	sc := scene.NewScene(scene.WithBackground(black))
	n := sc.AddNode(scene.NodeSpec{Bounds: common.Rect{W: 32, H: 64}, Rounded: true, Tint: red})
	n.SetTransform(shown(1, 0))

	f := NewCompositor(8, 16).Compose(sc, 4, 4)
	if f.At(0, 0).Top != black {
		t.Fatal("corner of a rounded node was painted")
	}
	if f.At(1, 1).Bottom != red || f.At(2, 2).Top != red {
		t.Fatal("center of a rounded node was not painted")
	}
}

func TestComposeFollowsScroll(t *testing.T) {
	sc := scene.NewScene(scene.WithBackground(black))
	n := sc.AddNode(scene.NodeSpec{Bounds: common.Rect{Y: 16, W: 8, H: 16}, Tint: red})
	n.SetTransform(shown(1, 0))

	c := NewCompositor(8, 16)
	if c.Compose(sc, 1, 2).At(0, 1).Top != red {
		t.Fatal("node not on its page row")
	}
	sc.SetScroll(16)
	f := c.Compose(sc, 1, 2)
	if f.At(0, 0).Top != red || f.At(0, 1).Top != black {
		t.Fatal("node did not move up with the scroll")
	}
}

func TestComposePlaceholderText(t *testing.T) {
	sc := scene.NewScene(scene.WithBackground(black))
	sc.SetPlaceholder(scene.Placeholder{Bounds: common.Rect{W: 80, H: 48}, Text: "No images", Fill: blue})

	f := NewCompositor(8, 16).Compose(sc, 10, 3)
	if f.At(0, 0).Top != blue {
		t.Fatal("placeholder not filled")
	}
	if cell := f.At(0, 1); cell.Rune != 'N' || cell.FG != placeholderFG {
		t.Fatalf("placeholder text cell = %+v", cell)
	}
	if f.At(0, 0).Rune != 0 || f.At(0, 2).Rune != 0 {
		t.Fatal("placeholder text not vertically centered")
	}
}

func TestComposeOverlay(t *testing.T) {
	sc := scene.NewScene(scene.WithBackground(white))
	n := sc.AddNode(scene.NodeSpec{Bounds: common.Rect{W: 8, H: 16}, Tint: red})
	n.SetTransform(shown(1, 0))
	sc.SetOverlay(scene.Overlay{
		Title:    "Hi",
		Backdrop: color.RGBA{A: 255},
		Card:     common.Rect{X: 16, Y: 16, W: 80, H: 96},
		Image:    common.Rect{X: 16, Y: 16, W: 80, H: 32},
		Close:    common.Rect{X: 88, Y: 16, W: 8, H: 16},
	})

	f := NewCompositor(8, 16).Compose(sc, 20, 10)
	if f.At(0, 0).Top != black {
		t.Fatalf("backdrop did not cover the node: %+v", f.At(0, 0))
	}
	if f.At(3, 4).Top != cardFill {
		t.Fatalf("card not filled: %+v", f.At(3, 4))
	}
	if cell := f.At(2, 3); cell.Rune != 'H' || cell.FG != cardText {
		t.Fatalf("title cell = %+v", cell)
	}
	if cell := f.At(11, 1); cell.Rune != 'x' || cell.Top != closeFill {
		t.Fatalf("close cell = %+v", cell)
	}
}

func TestComposeOverlayFadesIn(t *testing.T) {
	opened := time.Unix(1000, 0)
	now := opened
	sc := scene.NewScene(scene.WithBackground(black))
	n := sc.AddNode(scene.NodeSpec{Bounds: common.Rect{W: 8, H: 16}, Tint: red})
	n.SetTransform(shown(1, 0))
	sc.SetOverlay(scene.Overlay{
		Title:    "Hi",
		Backdrop: color.RGBA{A: 200},
		Card:     common.Rect{X: 16, Y: 16, W: 80, H: 96},
		Image:    common.Rect{X: 16, Y: 16, W: 80, H: 32},
		Close:    common.Rect{X: 88, Y: 16, W: 8, H: 16},
		Opened:   opened,
	})
	c := NewCompositor(8, 16, WithCompositorClock(func() time.Time { return now }))

	f := c.Compose(sc, 20, 10)
	if f.At(0, 0).Top != red {
		t.Fatalf("backdrop visible at open: %+v", f.At(0, 0))
	}
	if f.At(3, 4).Top != black || f.At(2, 3).Rune != 0 {
		t.Fatalf("card drawn at open: %+v %+v", f.At(3, 4), f.At(2, 3))
	}

	now = opened.Add(scene.OverlayOpenDuration)
	f = c.Compose(sc, 20, 10)
	if got := f.At(0, 0).Top; got != (color.RGBA{R: 55, A: 255}) {
		t.Fatalf("backdrop after opening = %+v", got)
	}
	if f.At(3, 4).Top != cardFill || f.At(2, 3).Rune != 'H' {
		t.Fatalf("card after opening: %+v %+v", f.At(3, 4), f.At(2, 3))
	}
}

func TestBlend(t *testing.T) {
	if got := blend(black, white, 1); got != white {
		t.Fatalf("opaque blend = %+v", got)
	}
	if got := blend(red, color.RGBA{B: 255}, 1); got != red {
		t.Fatalf("transparent source changed dst: %+v", got)
	}
}
