// Package projection turns static sphere placements and a rotation snapshot into per-frame visual state.
package projection

import "github.com/Carmen-Shannon/imgsphere/engine/motion"

// VisualState is the transient per-item output of one frame. It is never cached across frames.
type VisualState struct {
	// X, Y, Z is the rotated point in sphere-local space. Z grows toward the viewer.
	X, Y, Z float64
	// Visible is false once the point is behind the fade zone; nothing else is computed then.
	Visible bool
	// Fade is the depth fade in [0, 1] before load gating.
	Fade float64
	// Opacity is Fade, or 0 when the item's image has not loaded.
	Opacity float64
	// Scale is the render scale including the hover multiplier.
	Scale float64
	// ZIndex is the stacking order; larger draws on top.
	ZIndex int
	// Hovered echoes the hover flag the state was resolved with.
	Hovered bool
}

// Resolver holds the projection constants of one sphere and produces frame snapshots.
type Resolver interface {
	// Snapshot captures a rotation for one frame. All items of that frame must be resolved
	// through the same snapshot so they observe a consistent orientation.
	//
	// Parameters:
	//   - rot: the rotation read at the top of the frame
	//
	// Returns:
	//   - Frame: the per-frame projector
	Snapshot(rot motion.Rotation) Frame

	// Radius returns the sphere radius used for scale and depth normalization.
	//
	// Returns:
	//   - float64: radius
	Radius() float64

	// SetRadius replaces the sphere radius.
	//
	// Parameters:
	//   - radius: the new radius, ignored if not positive
	SetRadius(radius float64)

	// FadeZone returns the depths where fading starts and where items become hidden.
	//
	// Returns:
	//   - start: depth at and above which opacity is 1
	//   - end: depth at and below which items are hidden
	FadeZone() (start, end float64)

	// HoverScale returns the multiplier applied to a hovered item.
	//
	// Returns:
	//   - float64: hover multiplier
	HoverScale() float64
}
