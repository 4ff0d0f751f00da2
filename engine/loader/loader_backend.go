package loader

import (
	"io"

	"github.com/Carmen-Shannon/imgsphere/common"
)

// loaderBackend decodes one family of image formats.
type loaderBackend interface {
	// Decode reads an encoded image and returns RGBA pixels.
	//
	// Parameters:
	//   - r: the reader providing image data
	//   - maxEdge: the longest allowed edge in pixels, 0 for no limit
	//
	// Returns:
	//   - common.TextureStagingData: the decoded pixels
	//   - error: error if decoding fails
	Decode(r io.Reader, maxEdge int) (common.TextureStagingData, error)
}

// stdImageBackend decodes every format registered with the image package.
type stdImageBackend struct{}

func (stdImageBackend) Decode(r io.Reader, maxEdge int) (common.TextureStagingData, error) {
	return common.DecodeImage(r, maxEdge)
}
