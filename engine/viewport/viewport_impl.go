package viewport

import "github.com/Carmen-Shannon/imgsphere/common"

// Defaults for widget visibility gating.
const (
	DefaultThreshold  = 0.2
	DefaultRootMargin = 50.0
)

type observerImpl struct {
	threshold float64
	margin    float64

	visible  bool
	ratio    float64
	onChange func(bool)
}

var _ Observer = &observerImpl{}

// NewObserver creates an observer with the default threshold and root margin.
//
// Parameters:
//   - options: functional options to configure the observer
//
// Returns:
//   - Observer: the newly created observer
func NewObserver(options ...ObserverBuilderOption) Observer {
	o := &observerImpl{
		threshold: DefaultThreshold,
		margin:    DefaultRootMargin,
	}
	for _, option := range options {
		option(o)
	}
	return o
}

func (o *observerImpl) Update(root, target common.Rect) (bool, bool) {
	ratio := 0.0
	if area := target.Area(); area > 0 {
		ratio = root.Inflate(o.margin).Intersect(target).Area() / area
	}
	o.ratio = ratio

	visible := ratio > 0 && ratio >= o.threshold
	if visible == o.visible {
		return visible, false
	}
	o.visible = visible
	if o.onChange != nil {
		o.onChange(visible)
	}
	return visible, true
}

func (o *observerImpl) Visible() bool {
	return o.visible
}

func (o *observerImpl) Ratio() float64 {
	return o.ratio
}

func (o *observerImpl) OnChange(fn func(bool)) {
	o.onChange = fn
}

func (o *observerImpl) Reset() {
	o.visible = false
	o.ratio = 0
}
