package projection

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/imgsphere/engine/layout"
	"github.com/Carmen-Shannon/imgsphere/engine/motion"
	"github.com/go-gl/mathgl/mgl64"
)

// Defaults for the visual-state formulas.
const (
	DefaultFadeStart      = -10.0
	DefaultFadeEnd        = -30.0
	DefaultHoverScale     = 1.2
	DefaultPolePenalty    = 0.4
	DefaultEquatorPenalty = 0.7

	minCenterScale = 0.3
	minDepthScale  = 0.5
	zIndexBase     = 1000
)

type resolverImpl struct {
	mu *sync.Mutex

	radius         float64
	fadeStart      float64
	fadeEnd        float64
	hoverScale     float64
	polePenalty    float64
	equatorPenalty float64
}

var _ Resolver = &resolverImpl{}

// NewResolver creates a resolver for a sphere of the given radius.
//
// Parameters:
//   - radius: sphere radius
//   - options: functional options to configure the resolver
//
// Returns:
//   - Resolver: the newly created resolver
func NewResolver(radius float64, options ...ResolverBuilderOption) Resolver {
	r := &resolverImpl{
		mu:             &sync.Mutex{},
		radius:         radius,
		fadeStart:      DefaultFadeStart,
		fadeEnd:        DefaultFadeEnd,
		hoverScale:     DefaultHoverScale,
		polePenalty:    DefaultPolePenalty,
		equatorPenalty: DefaultEquatorPenalty,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *resolverImpl) Snapshot(rot motion.Rotation) Frame {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Y first, then X, then Z: m = Rz * Rx * Ry.
	m := mgl64.Rotate3DZ(mgl64.DegToRad(rot.Z)).
		Mul3(mgl64.Rotate3DX(mgl64.DegToRad(rot.X))).
		Mul3(mgl64.Rotate3DY(mgl64.DegToRad(rot.Y)))

	return Frame{
		Rotation:       rot,
		matrix:         m,
		radius:         r.radius,
		fadeStart:      r.fadeStart,
		fadeEnd:        r.fadeEnd,
		hoverScale:     r.hoverScale,
		polePenalty:    r.polePenalty,
		equatorPenalty: r.equatorPenalty,
	}
}

func (r *resolverImpl) Radius() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.radius
}

func (r *resolverImpl) SetRadius(radius float64) {
	if radius <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.radius = radius
}

func (r *resolverImpl) FadeZone() (float64, float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fadeStart, r.fadeEnd
}

func (r *resolverImpl) HoverScale() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hoverScale
}

// Frame projects placements through one rotation snapshot. It is a value and safe to copy.
type Frame struct {
	Rotation motion.Rotation

	matrix         mgl64.Mat3
	radius         float64
	fadeStart      float64
	fadeEnd        float64
	hoverScale     float64
	polePenalty    float64
	equatorPenalty float64
}

// Rotate applies the snapshot rotation to a sphere-local point.
//
// Parameters:
//   - p: the unrotated point
//
// Returns:
//   - mgl64.Vec3: the rotated point
func (f Frame) Rotate(p mgl64.Vec3) mgl64.Vec3 {
	return f.matrix.Mul3x1(p)
}

// Fade maps a rotated depth onto the fade ramp.
//
// Parameters:
//   - z: rotated depth
//
// Returns:
//   - float64: 0 at or below the fade end, 1 at or above the fade start, linear between
func (f Frame) Fade(z float64) float64 {
	switch {
	case z <= f.fadeEnd:
		return 0
	case z >= f.fadeStart:
		return 1
	default:
		return (z - f.fadeEnd) / (f.fadeStart - f.fadeEnd)
	}
}

// Resolve computes the visual state of one placement.
//
// Parameters:
//   - p: the placement to project
//   - hovered: whether the pointer is over this item
//   - loaded: whether this item's image has finished loading
//
// Returns:
//   - VisualState: the resolved state for this frame
func (f Frame) Resolve(p layout.Placement, hovered, loaded bool) VisualState {
	v := f.Rotate(p.Base)
	vs := VisualState{
		X:       v.X(),
		Y:       v.Y(),
		Z:       v.Z(),
		ZIndex:  int(math.Round(zIndexBase + v.Z())),
		Hovered: hovered,
	}
	if vs.Z <= f.fadeEnd {
		return vs
	}
	vs.Visible = true
	vs.Fade = f.Fade(vs.Z)
	if loaded {
		vs.Opacity = vs.Fade
	}

	ratio := 0.0
	if f.radius > 0 {
		ratio = mgl64.Clamp(math.Hypot(vs.X, vs.Y)/f.radius, 0, 1)
	}
	penalty := f.equatorPenalty
	if p.Pole() {
		penalty = f.polePenalty
	}
	centerScale := math.Max(minCenterScale, 1-ratio*penalty)

	depth := 0.5
	if f.radius > 0 {
		depth = (vs.Z + f.radius) / (2 * f.radius)
	}
	vs.Scale = centerScale * math.Max(minDepthScale, 0.8+depth*0.3)
	if hovered {
		vs.Scale *= f.hoverScale
	}
	return vs
}
