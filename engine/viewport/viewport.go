// Package viewport decides whether a widget is on screen, gating its frame loop.
package viewport

import "github.com/Carmen-Shannon/imgsphere/common"

// Observer tracks whether a target rectangle intersects a root viewport.
// A target counts as visible once the fraction of its area inside the margin-inflated root reaches the threshold.
type Observer interface {
	// Update recomputes visibility for new geometry. The change callback fires only when the state flips.
	//
	// Parameters:
	//   - root: the visible viewport rectangle
	//   - target: the observed rectangle in the same space
	//
	// Returns:
	//   - visible: the new visibility state
	//   - changed: true if the state flipped on this call
	Update(root, target common.Rect) (visible bool, changed bool)

	// Visible returns the last computed state.
	//
	// Returns:
	//   - bool: true when the target was last seen intersecting
	Visible() bool

	// Ratio returns the last computed intersection ratio.
	//
	// Returns:
	//   - float64: intersecting fraction of the target area in [0, 1]
	Ratio() float64

	// OnChange registers the callback fired when visibility flips. A nil callback clears it.
	//
	// Parameters:
	//   - fn: callback receiving the new state
	OnChange(fn func(visible bool))

	// Reset forgets the last state so the next visible Update reports a change.
	Reset()
}
