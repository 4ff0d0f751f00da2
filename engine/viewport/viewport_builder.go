package viewport

// ObserverBuilderOption is a functional option for configuring an Observer.
type ObserverBuilderOption func(*observerImpl)

// WithThreshold sets the fraction of the target that must intersect for it to count as visible.
//
// Parameters:
//   - threshold: fraction in [0, 1]
//
// Returns:
//   - ObserverBuilderOption: functional option to set the threshold
func WithThreshold(threshold float64) ObserverBuilderOption {
	return func(o *observerImpl) {
		if threshold >= 0 && threshold <= 1 {
			o.threshold = threshold
		}
	}
}

// WithRootMargin grows the root on every side so targets just outside it already count.
//
// Parameters:
//   - margin: pixels added to each side of the root
//
// Returns:
//   - ObserverBuilderOption: functional option to set the root margin
func WithRootMargin(margin float64) ObserverBuilderOption {
	return func(o *observerImpl) {
		o.margin = margin
	}
}
