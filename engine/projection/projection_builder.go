package projection

// ResolverBuilderOption is a functional option for configuring a Resolver.
type ResolverBuilderOption func(*resolverImpl)

// WithFadeZone sets the fade ramp. Items at or below end are hidden; at or above start they are opaque.
// The option is ignored unless start > end.
//
// Parameters:
//   - start: depth where fading begins
//   - end: depth where items disappear
//
// Returns:
//   - ResolverBuilderOption: functional option to set the fade zone
func WithFadeZone(start, end float64) ResolverBuilderOption {
	return func(r *resolverImpl) {
		if start > end {
			r.fadeStart = start
			r.fadeEnd = end
		}
	}
}

// WithHoverScale sets the multiplier applied to the hovered item.
//
// Parameters:
//   - scale: hover multiplier
//
// Returns:
//   - ResolverBuilderOption: functional option to set the hover scale
func WithHoverScale(scale float64) ResolverBuilderOption {
	return func(r *resolverImpl) {
		if scale > 0 {
			r.hoverScale = scale
		}
	}
}

// WithDistancePenalties sets how strongly distance from the sphere center shrinks pole and equatorial items.
//
// Parameters:
//   - pole: penalty for items laid out near a pole
//   - equator: penalty for every other item
//
// Returns:
//   - ResolverBuilderOption: functional option to set the penalties
func WithDistancePenalties(pole, equator float64) ResolverBuilderOption {
	return func(r *resolverImpl) {
		r.polePenalty = pole
		r.equatorPenalty = equator
	}
}
