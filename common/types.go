// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/cogentcore/webgpu/wgpu"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload or terminal sampling.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// Empty reports whether the staging data carries no pixels.
func (t TextureStagingData) Empty() bool {
	return t.Width == 0 || t.Height == 0 || len(t.Pixels) < int(t.Width*t.Height*4)
}

// At returns the RGBA value of the texel nearest to normalized coordinates (u, v).
// Coordinates outside [0, 1] are clamped to the edge.
//
// Parameters:
//   - u, v: normalized texture coordinates, origin top-left
//
// Returns:
//   - color.RGBA: the sampled texel, or transparent black for empty data
func (t TextureStagingData) At(u, v float64) color.RGBA {
	if t.Empty() {
		return color.RGBA{}
	}
	x := int(u * float64(t.Width))
	y := int(v * float64(t.Height))
	x = max(0, min(x, int(t.Width)-1))
	y = max(0, min(y, int(t.Height)-1))
	i := (y*int(t.Width) + x) * 4
	return color.RGBA{R: t.Pixels[i], G: t.Pixels[i+1], B: t.Pixels[i+2], A: t.Pixels[i+3]}
}

// Average returns the mean color of all texels, weighting color channels by alpha.
func (t TextureStagingData) Average() color.RGBA {
	if t.Empty() {
		return color.RGBA{}
	}
	var r, g, b, a uint64
	n := uint64(t.Width) * uint64(t.Height)
	for i := uint64(0); i < n; i++ {
		p := t.Pixels[i*4 : i*4+4]
		al := uint64(p[3])
		r += uint64(p[0]) * al
		g += uint64(p[1]) * al
		b += uint64(p[2]) * al
		a += al
	}
	if a == 0 {
		return color.RGBA{}
	}
	return color.RGBA{R: uint8(r / a), G: uint8(g / a), B: uint8(b / a), A: uint8(a / n)}
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V, W).
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail (LOD) for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// Compare specifies the comparison function for comparison samplers.
	Compare wgpu.CompareFunction
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}

// DecodeImage decodes an encoded image (PNG, JPEG, GIF or WebP) into RGBA staging data.
// Images whose longest edge exceeds maxEdge are scaled down preserving aspect ratio.
// Reference: https://pkg.go.dev/image
//
// Parameters:
//   - r: reader over the encoded image bytes
//   - maxEdge: the longest allowed edge in pixels, 0 for no limit
//
// Returns:
//   - TextureStagingData: the decoded RGBA pixels
//   - error: error if decoding fails
func DecodeImage(r io.Reader, maxEdge int) (TextureStagingData, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return TextureStagingData{}, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return TextureStagingData{}, fmt.Errorf("decoded %s image has no pixels", format)
	}

	if maxEdge > 0 && max(width, height) > maxEdge {
		if width >= height {
			height = max(1, height*maxEdge/width)
			width = maxEdge
		} else {
			width = max(1, width*maxEdge/height)
			height = maxEdge
		}
		rgba := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), img, bounds, draw.Src, nil)
		return TextureStagingData{Pixels: rgba.Pix, Width: uint32(width), Height: uint32(height)}, nil
	}

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	stddraw.Draw(rgba, rgba.Bounds(), img, bounds.Min, stddraw.Src)
	return TextureStagingData{Pixels: rgba.Pix, Width: uint32(width), Height: uint32(height)}, nil
}
