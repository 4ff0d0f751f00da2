package scene

import (
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/imgsphere/common"
)

// Transform holds the compositing-safe properties written to a node every frame.
// X, Y, Z translate the node from its mount-time center; Z grows toward the viewer.
type Transform struct {
	X, Y, Z float64
	Scale   float64
	Opacity float64
	ZIndex  int
	Visible bool
}

// NodeSpec is the mount-time description of a node. Its geometry never changes afterwards.
type NodeSpec struct {
	// Name is a diagnostic label.
	Name string
	// Bounds is the untransformed rectangle in scene space.
	Bounds common.Rect
	// Rounded clips the node's content to a circle.
	Rounded bool
	// Tint is drawn where no content has been set yet.
	Tint color.RGBA
}

// Node is a retained visual handle. Per-frame writers call SetTransform; content arrives
// asynchronously via SetContent. A node removed from its scene reports Alive() == false.
type Node interface {
	// ID returns the node's scene-unique identifier.
	ID() uint64

	// Spec returns the mount-time description.
	Spec() NodeSpec

	// Alive reports whether the node is still part of a scene.
	Alive() bool

	// Transform returns the last written transform.
	Transform() Transform

	// SetTransform replaces the transform. Writes to a dead node are ignored.
	//
	// Parameters:
	//   - t: the new transform
	SetTransform(t Transform)

	// Content returns the decoded pixels and a version that increments on every SetContent.
	//
	// Returns:
	//   - common.TextureStagingData: the pixels, empty if none were set
	//   - uint64: content version
	Content() (common.TextureStagingData, uint64)

	// SetContent replaces the node's pixels. Writes to a dead node are ignored.
	//
	// Parameters:
	//   - tex: decoded RGBA pixels
	SetContent(tex common.TextureStagingData)

	// Tint returns the fill color drawn before content is available, or the content's average color after.
	//
	// Returns:
	//   - color.RGBA: the tint
	Tint() color.RGBA

	// ScreenRect returns the node's on-screen rectangle: the mount-time center offset by
	// (X, Y) and the bounds multiplied by Scale. Z only orders nodes.
	//
	// Returns:
	//   - common.Rect: the projected rectangle
	ScreenRect() common.Rect
}

type node struct {
	mu *sync.RWMutex

	id    uint64
	spec  NodeSpec
	alive atomic.Bool

	transform Transform
	content   common.TextureStagingData
	version   uint64
	tint      color.RGBA
}

var _ Node = &node{}

func newNode(id uint64, spec NodeSpec) *node {
	n := &node{
		mu:   &sync.RWMutex{},
		id:   id,
		spec: spec,
		tint: spec.Tint,
		transform: Transform{
			Scale: 1,
		},
	}
	n.alive.Store(true)
	return n
}

func (n *node) ID() uint64 {
	return n.id
}

func (n *node) Spec() NodeSpec {
	return n.spec
}

func (n *node) Alive() bool {
	return n.alive.Load()
}

func (n *node) kill() {
	n.alive.Store(false)
}

func (n *node) Transform() Transform {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.transform
}

func (n *node) SetTransform(t Transform) {
	if !n.Alive() {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.transform = t
}

func (n *node) Content() (common.TextureStagingData, uint64) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.content, n.version
}

func (n *node) SetContent(tex common.TextureStagingData) {
	if !n.Alive() {
		return
	}
	avg := tex.Average()
	n.mu.Lock()
	defer n.mu.Unlock()
	n.content = tex
	n.version++
	if avg.A > 0 {
		n.tint = avg
	}
}

func (n *node) Tint() color.RGBA {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.tint
}

func (n *node) ScreenRect() common.Rect {
	t := n.Transform()
	cx, cy := n.spec.Bounds.Center()
	w, h := n.spec.Bounds.W*t.Scale, n.spec.Bounds.H*t.Scale
	return common.Rect{X: cx + t.X - w/2, Y: cy + t.Y - h/2, W: w, H: h}
}
