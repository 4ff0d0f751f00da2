package common

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	data, err := DecodeImage(bytes.NewReader(encodePNG(t, 8, 4, red)), 0)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	if data.Width != 8 || data.Height != 4 || len(data.Pixels) != 8*4*4 {
		t.Fatalf("unexpected size %dx%d (%d bytes)", data.Width, data.Height, len(data.Pixels))
	}
	if got := data.At(0.5, 0.5); got != red {
		t.Fatalf("At = %+v, want %+v", got, red)
	}
	if got := data.Average(); got != red {
		t.Fatalf("Average = %+v, want %+v", got, red)
	}
}

func TestDecodeImageDownsamples(t *testing.T) {
	data, err := DecodeImage(bytes.NewReader(encodePNG(t, 64, 32, color.RGBA{G: 255, A: 255})), 16)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	if data.Width != 16 || data.Height != 8 {
		t.Fatalf("downsampled to %dx%d, want 16x8", data.Width, data.Height)
	}
}

func TestDecodeImageRejectsGarbage(t *testing.T) {
	if _, err := DecodeImage(bytes.NewReader([]byte("not an image")), 0); err == nil {
		t.Fatal("expected error for undecodable input")
	}
}
