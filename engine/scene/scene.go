package scene

import (
	"cmp"
	"image/color"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/imgsphere/common"
)

// Scene is a retained list of visual nodes plus an optional overlay and placeholder.
// Mounting code creates and removes nodes; per-frame code only writes node transforms.
// Compositors read a scene through DrawList, Overlay and Placeholder.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Background returns the clear color.
	Background() color.RGBA

	// SetBackground sets the clear color.
	//
	// Parameters:
	//   - c: the clear color
	SetBackground(c color.RGBA)

	// Bounds returns the scene's page rectangle. Its size may exceed the viewport.
	Bounds() common.Rect

	// SetBounds sets the scene's page rectangle.
	//
	// Parameters:
	//   - r: the page rectangle
	SetBounds(r common.Rect)

	// Scroll returns the page scroll offset.
	//
	// Returns:
	//   - float64: vertical scroll in pixels
	Scroll() float64

	// SetScroll sets the page scroll offset.
	//
	// Parameters:
	//   - y: vertical scroll in pixels
	SetScroll(y float64)

	// AddNode creates a node with the given mount-time spec.
	//
	// Parameters:
	//   - spec: the node description
	//
	// Returns:
	//   - Node: the new node
	AddNode(spec NodeSpec) Node

	// Node looks up a node by ID.
	//
	// Parameters:
	//   - id: the node ID
	//
	// Returns:
	//   - Node: the node, or nil if not found
	Node(id uint64) Node

	// RemoveNode removes a node. The removed handle reports Alive() == false.
	//
	// Parameters:
	//   - id: the node ID
	RemoveNode(id uint64)

	// Nodes returns every node in insertion order.
	//
	// Returns:
	//   - []Node: a copy of the node list
	Nodes() []Node

	// Count returns the number of nodes.
	//
	// Returns:
	//   - int: node count
	Count() int

	// Clear removes every node, the overlay and the placeholder.
	Clear()

	// DrawList appends every visible node with non-zero opacity to dst, ordered back to front by
	// ZIndex. Ties keep insertion order.
	//
	// Parameters:
	//   - dst: slice to append to, may be nil
	//
	// Returns:
	//   - []Node: dst with the drawable nodes appended
	DrawList(dst []Node) []Node

	// Placeholder returns the placeholder shown instead of nodes, if any.
	//
	// Returns:
	//   - Placeholder: the placeholder
	//   - bool: true if one is set
	Placeholder() (Placeholder, bool)

	// SetPlaceholder shows a placeholder.
	//
	// Parameters:
	//   - p: the placeholder
	SetPlaceholder(p Placeholder)

	// ClearPlaceholder hides the placeholder.
	ClearPlaceholder()

	// Overlay returns the modal overlay, if any.
	//
	// Returns:
	//   - Overlay: the overlay
	//   - bool: true if one is shown
	Overlay() (Overlay, bool)

	// SetOverlay shows a modal overlay, replacing any existing one.
	//
	// Parameters:
	//   - o: the overlay
	SetOverlay(o Overlay)

	// ClearOverlay hides the modal overlay.
	ClearOverlay()
}

// Placeholder is drawn in place of a widget that has nothing to show.
type Placeholder struct {
	Bounds common.Rect
	Text   string
	Fill   color.RGBA
}

type scene struct {
	mu *sync.RWMutex

	name       string
	active     bool
	background color.RGBA
	bounds     common.Rect
	scroll     float64

	nodes  []*node
	byID   map[uint64]*node
	nextID uint64

	placeholder    Placeholder
	hasPlaceholder bool
	overlay        Overlay
	hasOverlay     bool
}

var _ Scene = &scene{}

// NewScene creates a new empty scene.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:         &sync.RWMutex{},
		name:       "scene",
		active:     true,
		background: color.RGBA{R: 16, G: 16, B: 20, A: 255},
		byID:       make(map[uint64]*node),
		nextID:     1,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Background() color.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *scene) SetBackground(c color.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = c
}

func (s *scene) Bounds() common.Rect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bounds
}

func (s *scene) SetBounds(r common.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds = r
}

func (s *scene) Scroll() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scroll
}

func (s *scene) SetScroll(y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scroll = y
}

func (s *scene) AddNode(spec NodeSpec) Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := newNode(s.nextID, spec)
	s.nextID++
	s.nodes = append(s.nodes, n)
	s.byID[n.id] = n
	return n
}

func (s *scene) Node(id uint64) Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n, ok := s.byID[id]; ok {
		return n
	}
	return nil
}

func (s *scene) RemoveNode(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.byID[id]
	if !ok {
		return
	}
	n.kill()
	delete(s.byID, id)
	s.nodes = slices.DeleteFunc(s.nodes, func(o *node) bool { return o == n })
}

func (s *scene) Nodes() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Node, len(s.nodes))
	for i, n := range s.nodes {
		out[i] = n
	}
	return out
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.nodes {
		n.kill()
	}
	s.nodes = nil
	s.byID = make(map[uint64]*node)
	s.hasOverlay = false
	s.overlay = Overlay{}
	s.hasPlaceholder = false
	s.placeholder = Placeholder{}
}

func (s *scene) DrawList(dst []Node) []Node {
	s.mu.RLock()
	start := len(dst)
	for _, n := range s.nodes {
		t := n.Transform()
		if t.Visible && t.Opacity > 0 {
			dst = append(dst, n)
		}
	}
	s.mu.RUnlock()

	slices.SortStableFunc(dst[start:], func(a, b Node) int {
		return cmp.Compare(a.Transform().ZIndex, b.Transform().ZIndex)
	})
	return dst
}

func (s *scene) Placeholder() (Placeholder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.placeholder, s.hasPlaceholder
}

func (s *scene) SetPlaceholder(p Placeholder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.placeholder = p
	s.hasPlaceholder = true
}

func (s *scene) ClearPlaceholder() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.placeholder = Placeholder{}
	s.hasPlaceholder = false
}

func (s *scene) Overlay() (Overlay, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overlay, s.hasOverlay
}

func (s *scene) SetOverlay(o Overlay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlay = o
	s.hasOverlay = true
}

func (s *scene) ClearOverlay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlay = Overlay{}
	s.hasOverlay = false
}
