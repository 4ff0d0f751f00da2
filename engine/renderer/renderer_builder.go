package renderer

import (
	"time"

	"github.com/Carmen-Shannon/imgsphere/common"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count for the renderer.
// When not specified, the default is MSAA4x. Use MSAAOff to disable MSAA entirely.
//
// Parameters:
//   - count: the MSAASampleCount to use (MSAAOff or MSAA4x)
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingMSAA = &count
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithSampler overrides the sampler used for image sprites. Zero fields keep their defaults.
//
// Parameters:
//   - s: the sampler configuration
//
// Returns:
//   - RendererBuilderOption: a function that applies the sampler option to a renderer
func WithSampler(s common.SamplerStagingData) RendererBuilderOption {
	return func(r *renderer) {
		r.sampler.AddressModeU = common.Coalesce(s.AddressModeU, r.sampler.AddressModeU)
		r.sampler.AddressModeV = common.Coalesce(s.AddressModeV, r.sampler.AddressModeV)
		r.sampler.AddressModeW = common.Coalesce(s.AddressModeW, r.sampler.AddressModeW)
		r.sampler.MagFilter = common.Coalesce(s.MagFilter, r.sampler.MagFilter)
		r.sampler.MinFilter = common.Coalesce(s.MinFilter, r.sampler.MinFilter)
		r.sampler.MipmapFilter = common.Coalesce(s.MipmapFilter, r.sampler.MipmapFilter)
		r.sampler.MaxAnisotropy = common.Coalesce(s.MaxAnisotropy, r.sampler.MaxAnisotropy)
	}
}

// WithClock sets the time source used to animate the overlay.
//
// Parameters:
//   - now: returns the current time
//
// Returns:
//   - RendererBuilderOption: a function that applies the clock to a renderer
func WithClock(now func() time.Time) RendererBuilderOption {
	return func(r *renderer) {
		if now != nil {
			r.now = now
		}
	}
}
