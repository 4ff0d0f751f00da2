package widget

import (
	"time"

	"github.com/Carmen-Shannon/imgsphere/engine/loader"
	"github.com/Carmen-Shannon/imgsphere/engine/motion"
)

// ImageSphereBuilderOption is a functional option for configuring an ImageSphere.
type ImageSphereBuilderOption func(*imageSphere)

// WithName sets the prefix used for node names and log lines.
//
// Parameters:
//   - name: the widget name
//
// Returns:
//   - ImageSphereBuilderOption: option function to apply
func WithName(name string) ImageSphereBuilderOption {
	return func(w *imageSphere) {
		w.name = name
	}
}

// WithContainerSize sets the widget's square pixel footprint.
//
// Parameters:
//   - px: edge length in pixels
//
// Returns:
//   - ImageSphereBuilderOption: option function to apply
func WithContainerSize(px float64) ImageSphereBuilderOption {
	return func(w *imageSphere) {
		if px > 0 {
			w.containerSize = px
		}
	}
}

// WithRadius sets the sphere radius. Without it the radius is half the container size.
//
// Parameters:
//   - radius: sphere radius in pixels
//
// Returns:
//   - ImageSphereBuilderOption: option function to apply
func WithRadius(radius float64) ImageSphereBuilderOption {
	return func(w *imageSphere) {
		if radius > 0 {
			w.radius = radius
		}
	}
}

// WithDragSensitivity sets the rotation in degrees per pixel of drag.
//
// Parameters:
//   - s: degrees per pixel
//
// Returns:
//   - ImageSphereBuilderOption: option function to apply
func WithDragSensitivity(s float64) ImageSphereBuilderOption {
	return func(w *imageSphere) {
		w.motionOpts = append(w.motionOpts, motion.WithDragSensitivity(s))
	}
}

// WithMomentumDecay sets the per-frame velocity multiplier, in (0, 1).
//
// Parameters:
//   - decay: velocity multiplier
//
// Returns:
//   - ImageSphereBuilderOption: option function to apply
func WithMomentumDecay(decay float64) ImageSphereBuilderOption {
	return func(w *imageSphere) {
		w.motionOpts = append(w.motionOpts, motion.WithMomentumDecay(decay))
	}
}

// WithMaxRotationSpeed clamps the per-frame rotation delta.
//
// Parameters:
//   - deg: degrees per frame
//
// Returns:
//   - ImageSphereBuilderOption: option function to apply
func WithMaxRotationSpeed(deg float64) ImageSphereBuilderOption {
	return func(w *imageSphere) {
		w.motionOpts = append(w.motionOpts, motion.WithMaxRotationSpeed(deg))
	}
}

// WithAutoRotate enables continuous spinning about the vertical axis.
//
// Parameters:
//   - enabled: true to enable
//   - speed: degrees per frame
//
// Returns:
//   - ImageSphereBuilderOption: option function to apply
func WithAutoRotate(enabled bool, speed float64) ImageSphereBuilderOption {
	return func(w *imageSphere) {
		w.motionOpts = append(w.motionOpts, motion.WithAutoRotate(enabled, speed))
	}
}

// WithInitialRotation sets the starting tilt.
//
// Parameters:
//   - r: orientation in degrees
//
// Returns:
//   - ImageSphereBuilderOption: option function to apply
func WithInitialRotation(r motion.Rotation) ImageSphereBuilderOption {
	return func(w *imageSphere) {
		w.motionOpts = append(w.motionOpts, motion.WithInitialRotation(r))
	}
}

// WithBaseImageScale sets the image diameter as a fraction of the container size.
//
// Parameters:
//   - fraction: diameter / container size
//
// Returns:
//   - ImageSphereBuilderOption: option function to apply
func WithBaseImageScale(fraction float64) ImageSphereBuilderOption {
	return func(w *imageSphere) {
		if fraction > 0 {
			w.baseImageScale = fraction
		}
	}
}

// WithHoverScale sets the multiplier applied to the hovered image.
//
// Parameters:
//   - scale: hover multiplier
//
// Returns:
//   - ImageSphereBuilderOption: option function to apply
func WithHoverScale(scale float64) ImageSphereBuilderOption {
	return func(w *imageSphere) {
		if scale > 0 {
			w.hoverScale = scale
		}
	}
}

// WithPerspective sets the container's perspective distance. It is stored for hosts
// that read it back; item geometry already carries depth through scale.
//
// Parameters:
//   - px: distance in pixels
//
// Returns:
//   - ImageSphereBuilderOption: option function to apply
func WithPerspective(px float64) ImageSphereBuilderOption {
	return func(w *imageSphere) {
		if px >= 0 {
			w.perspective = px
		}
	}
}

// WithLoader sets the image loader. Without it Mount creates one reading the working directory.
//
// Parameters:
//   - l: the loader
//
// Returns:
//   - ImageSphereBuilderOption: option function to apply
func WithLoader(l loader.Loader) ImageSphereBuilderOption {
	return func(w *imageSphere) {
		w.loader = l
	}
}

// WithStagger sets the per-index delay before a loaded image becomes visible.
//
// Parameters:
//   - d: delay multiplied by the image index
//
// Returns:
//   - ImageSphereBuilderOption: option function to apply
func WithStagger(d time.Duration) ImageSphereBuilderOption {
	return func(w *imageSphere) {
		if d >= 0 {
			w.stagger = d
		}
	}
}

// WithClickThreshold sets how far the pointer may move while still counting as a click.
//
// Parameters:
//   - px: maximum displacement in pixels
//
// Returns:
//   - ImageSphereBuilderOption: option function to apply
func WithClickThreshold(px float64) ImageSphereBuilderOption {
	return func(w *imageSphere) {
		if px >= 0 {
			w.clickThreshold = px
		}
	}
}

// WithVisibility sets the intersection threshold and root margin used to gate the frame loop.
//
// Parameters:
//   - threshold: visible fraction in [0, 1]
//   - margin: pixels added around the viewport
//
// Returns:
//   - ImageSphereBuilderOption: option function to apply
func WithVisibility(threshold, margin float64) ImageSphereBuilderOption {
	return func(w *imageSphere) {
		w.visThreshold = threshold
		w.visMargin = margin
	}
}

// WithOnOpen sets the callback fired when the detail view opens.
//
// Parameters:
//   - fn: callback receiving the opened descriptor
//
// Returns:
//   - ImageSphereBuilderOption: option function to apply
func WithOnOpen(fn func(ImageDescriptor)) ImageSphereBuilderOption {
	return func(w *imageSphere) {
		w.onOpen = fn
	}
}

// WithOnClose sets the callback fired when the detail view closes.
//
// Parameters:
//   - fn: callback
//
// Returns:
//   - ImageSphereBuilderOption: option function to apply
func WithOnClose(fn func()) ImageSphereBuilderOption {
	return func(w *imageSphere) {
		w.onClose = fn
	}
}

// WithClock sets the time source used to timestamp image loads.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - ImageSphereBuilderOption: option function to apply
func WithClock(now func() time.Time) ImageSphereBuilderOption {
	return func(w *imageSphere) {
		if now != nil {
			w.now = now
		}
	}
}
