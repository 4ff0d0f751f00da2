package scene

import (
	"image/color"
	"time"

	"github.com/Carmen-Shannon/imgsphere/common"
)

// The overlay opens with a backdrop fade and a card that scales up from OverlayInitialScale.
const (
	OverlayOpenDuration = 300 * time.Millisecond
	OverlayInitialScale = 0.8
)

// Overlay is a modal card drawn above every node, used for the detail view.
type Overlay struct {
	// Title and Caption are the card's text.
	Title   string
	Caption string
	// Backdrop dims everything below the card.
	Backdrop color.RGBA
	// Card is the card rectangle in scene space.
	Card common.Rect
	// Image is where the content is drawn inside the card.
	Image common.Rect
	// Close is the close control rectangle.
	Close common.Rect
	// Content is the full image, empty if it never loaded.
	Content common.TextureStagingData
	// Version changes whenever Content changes.
	Version uint64
	// Opened is when the overlay appeared. The zero time draws it fully open.
	Opened time.Time
}

// Progress returns how far the opening animation has run.
//
// Parameters:
//   - now: the draw time
//
// Returns:
//   - float64: eased progress in [0, 1]
func (o Overlay) Progress(now time.Time) float64 {
	if o.Opened.IsZero() {
		return 1
	}
	p := float64(now.Sub(o.Opened)) / float64(OverlayOpenDuration)
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	// ease-out cubic
	q := 1 - p
	return 1 - q*q*q
}

// Frame returns the overlay as it looks at now: the backdrop alpha ramped by Progress and the
// card, image and close rectangles scaled about the card center. Callers draw the card with
// the returned opacity.
//
// Parameters:
//   - now: the draw time
//
// Returns:
//   - Overlay: the overlay with animated geometry and backdrop
//   - float64: the card opacity in [0, 1]
func (o Overlay) Frame(now time.Time) (Overlay, float64) {
	p := o.Progress(now)
	if p >= 1 {
		return o, 1
	}
	s := OverlayInitialScale + (1-OverlayInitialScale)*p
	cx, cy := o.Card.Center()
	o.Card = o.Card.ScaleAbout(cx, cy, s)
	o.Image = o.Image.ScaleAbout(cx, cy, s)
	o.Close = o.Close.ScaleAbout(cx, cy, s)
	o.Backdrop.A = uint8(float64(o.Backdrop.A)*p + 0.5)
	return o, p
}
