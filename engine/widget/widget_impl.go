package widget

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"math"
	"slices"
	"time"

	"github.com/Carmen-Shannon/imgsphere/common"
	"github.com/Carmen-Shannon/imgsphere/engine/frame"
	"github.com/Carmen-Shannon/imgsphere/engine/interaction"
	"github.com/Carmen-Shannon/imgsphere/engine/layout"
	"github.com/Carmen-Shannon/imgsphere/engine/loader"
	"github.com/Carmen-Shannon/imgsphere/engine/motion"
	"github.com/Carmen-Shannon/imgsphere/engine/projection"
	"github.com/Carmen-Shannon/imgsphere/engine/scene"
	"github.com/Carmen-Shannon/imgsphere/engine/viewport"
)

// Defaults for the widget's construction parameters.
const (
	DefaultContainerSize  = 400.0
	DefaultBaseImageScale = 0.12
	DefaultPerspective    = 1000.0
	DefaultStagger        = 30 * time.Millisecond

	placeholderText = "No images to display"
)

var (
	nodeTint        = color.RGBA{R: 60, G: 60, B: 70, A: 255}
	placeholderFill = color.RGBA{R: 32, G: 32, B: 40, A: 255}
	detailBackdrop  = color.RGBA{A: 200}
)

// imageSphere is the implementation of ImageSphere. Its fields form the simulation context:
// they live outside any declarative state and are only touched on the loop goroutine.
type imageSphere struct {
	name           string
	images         []ImageDescriptor
	containerSize  float64
	radius         float64
	baseImageScale float64
	hoverScale     float64
	perspective    float64
	stagger        time.Duration
	clickThreshold float64
	visThreshold   float64
	visMargin      float64
	motionOpts     []motion.ControllerBuilderOption
	onOpen         func(ImageDescriptor)
	onClose        func()
	now            func() time.Time

	loader      loader.Loader
	ownedLoader bool

	placements []layout.Placement
	motion     motion.Controller
	resolver   projection.Resolver
	input      interaction.Controller
	observer   viewport.Observer

	mounted     bool
	generation  uint64
	sched       frame.Scheduler
	sc          scene.Scene
	bounds      common.Rect
	root        common.Rect
	nodes       []scene.Node
	states      []projection.VisualState
	loadedAt    map[int]time.Time
	frameTime   time.Time
	frameID     frame.ID
	cancelLoads context.CancelFunc
	detail      DetailView
	detailAt    time.Time
	layouts     int
}

var _ ImageSphere = &imageSphere{}

// NewImageSphere creates an unmounted widget. It never fails, including for an empty image set.
//
// Parameters:
//   - images: the ordered image set
//   - options: functional options to configure the widget
//
// Returns:
//   - ImageSphere: the newly created widget
func NewImageSphere(images []ImageDescriptor, options ...ImageSphereBuilderOption) ImageSphere {
	w := &imageSphere{
		name:           "sphere",
		images:         slices.Clone(images),
		containerSize:  DefaultContainerSize,
		baseImageScale: DefaultBaseImageScale,
		hoverScale:     projection.DefaultHoverScale,
		perspective:    DefaultPerspective,
		stagger:        DefaultStagger,
		clickThreshold: interaction.DefaultClickThreshold,
		visThreshold:   viewport.DefaultThreshold,
		visMargin:      viewport.DefaultRootMargin,
		now:            time.Now,
		loadedAt:       make(map[int]time.Time),
		detail:         DetailView{Index: interaction.NoIndex},
	}
	for _, option := range options {
		option(w)
	}
	if w.radius <= 0 {
		w.radius = w.containerSize / 2
	}

	w.motion = motion.NewController(w.motionOpts...)
	w.resolver = projection.NewResolver(w.radius, projection.WithHoverScale(w.hoverScale))
	w.observer = viewport.NewObserver(viewport.WithThreshold(w.visThreshold), viewport.WithRootMargin(w.visMargin))
	w.observer.OnChange(w.onVisibility)
	w.input = interaction.NewController(w.motion,
		interaction.WithHitTester(w.hitTest),
		interaction.WithDetailLayout(w.detailLayout),
		interaction.WithClickThreshold(w.clickThreshold),
		interaction.WithOnOpen(w.openDetail),
		interaction.WithOnClose(w.closeDetail),
	)
	w.relayout()
	return w
}

// relayout recomputes base points. It is the only place layout math runs.
func (w *imageSphere) relayout() {
	w.placements = layout.Compute(len(w.images), w.radius)
	w.states = make([]projection.VisualState, len(w.placements))
	w.layouts++
}

func (w *imageSphere) Mount(sched frame.Scheduler, sc scene.Scene, x, y float64) error {
	if w.mounted {
		return ErrAlreadyMounted
	}
	if sched == nil || sc == nil {
		return fmt.Errorf("mount %s: scheduler and scene are required", w.name)
	}
	if w.loader == nil {
		w.loader = loader.NewLoader()
		w.ownedLoader = true
	}

	w.sched = sched
	w.sc = sc
	w.bounds = common.Rect{X: x, Y: y, W: w.containerSize, H: w.containerSize}
	w.mounted = true
	w.mountNodes()
	return nil
}

// mountNodes creates one node per image, or the placeholder, and starts the loads.
func (w *imageSphere) mountNodes() {
	w.generation++
	gen := w.generation
	clear(w.loadedAt)

	if len(w.placements) == 0 {
		w.sc.SetPlaceholder(scene.Placeholder{Bounds: w.bounds, Text: placeholderText, Fill: placeholderFill})
		return
	}

	cx, cy := w.bounds.Center()
	d := w.containerSize * w.baseImageScale
	nodeBounds := common.Rect{X: cx - d/2, Y: cy - d/2, W: d, H: d}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancelLoads = cancel
	w.nodes = make([]scene.Node, len(w.images))
	for i, img := range w.images {
		n := w.sc.AddNode(scene.NodeSpec{
			Name:    fmt.Sprintf("%s/%d:%s", w.name, i, img.ID),
			Bounds:  nodeBounds,
			Rounded: true,
			Tint:    nodeTint,
		})
		n.SetTransform(scene.Transform{Scale: 1})
		w.nodes[i] = n

		index, sched := i, w.sched
		w.loader.Load(ctx, img.Src, func(res loader.Result) {
			sched.Post(func() { w.onLoaded(gen, index, n, res) })
		})
	}
}

// onLoaded runs on the loop goroutine. Results for a previous mount or a removed node are dropped.
func (w *imageSphere) onLoaded(gen uint64, index int, n scene.Node, res loader.Result) {
	if !w.mounted || gen != w.generation || !n.Alive() {
		return
	}
	if res.Err != nil {
		log.Printf("[Widget] %s: image %d (%s) stays hidden: %v", w.name, index, res.Src, res.Err)
		return
	}
	n.SetContent(res.Image)
	w.loadedAt[index] = w.now().Add(time.Duration(index) * w.stagger)
	if w.detail.Index == index {
		if _, open := w.input.Detail(); open {
			w.showOverlay()
		}
	}
}

func (w *imageSphere) unmountNodes() {
	w.stopLoop()
	if w.cancelLoads != nil {
		w.cancelLoads()
		w.cancelLoads = nil
	}
	for _, n := range w.nodes {
		w.sc.RemoveNode(n.ID())
	}
	w.nodes = nil
	w.sc.ClearPlaceholder()
	if _, open := w.input.Detail(); open {
		w.input.Close()
	}
	w.input.Reset()
	clear(w.loadedAt)
	w.generation++
}

func (w *imageSphere) Unmount() error {
	if !w.mounted {
		return ErrNotMounted
	}
	w.unmountNodes()
	w.observer.Reset()
	w.mounted = false
	if w.ownedLoader {
		w.loader.Close()
		w.loader = nil
		w.ownedLoader = false
	}
	w.sched = nil
	w.sc = nil
	return nil
}

func (w *imageSphere) Mounted() bool {
	return w.mounted
}

func (w *imageSphere) Images() []ImageDescriptor {
	return slices.Clone(w.images)
}

func (w *imageSphere) SetImages(images []ImageDescriptor) {
	if w.mounted {
		w.unmountNodes()
	}
	w.images = slices.Clone(images)
	w.relayout()
	if w.mounted {
		w.mountNodes()
		w.startLoop()
	}
}

func (w *imageSphere) Radius() float64 {
	return w.radius
}

func (w *imageSphere) Perspective() float64 {
	return w.perspective
}

func (w *imageSphere) SetRadius(radius float64) {
	if radius <= 0 || radius == w.radius {
		return
	}
	w.radius = radius
	w.resolver.SetRadius(radius)
	w.relayout()
}

func (w *imageSphere) UpdateViewport(root common.Rect) {
	if !w.mounted {
		return
	}
	w.root = root
	w.observer.Update(root, w.bounds)
}

func (w *imageSphere) onVisibility(visible bool) {
	if visible {
		w.startLoop()
	} else {
		w.stopLoop()
	}
}

func (w *imageSphere) Visible() bool {
	return w.observer.Visible()
}

// startLoop schedules the next frame when mounted, visible, non-empty and not already scheduled.
func (w *imageSphere) startLoop() {
	if w.frameID != 0 || !w.mounted || len(w.placements) == 0 || !w.observer.Visible() {
		return
	}
	w.frameID = w.sched.RequestFrame(w.step)
}

func (w *imageSphere) stopLoop() {
	if w.frameID == 0 {
		return
	}
	w.sched.CancelFrame(w.frameID)
	w.frameID = 0
}

// step is the per-frame callback: advance motion, project every placement through one
// rotation snapshot, write node transforms, then reschedule.
func (w *imageSphere) step(now time.Time) {
	w.frameID = 0
	if !w.mounted || len(w.placements) == 0 {
		return
	}
	w.frameTime = now

	w.motion.Step()
	f := w.resolver.Snapshot(w.motion.Rotation())
	hovered := w.input.Hovered()

	for i, p := range w.placements {
		vs := f.Resolve(p, i == hovered, w.loadedBy(i, now))
		w.states[i] = vs
		w.nodes[i].SetTransform(scene.Transform{
			X:       vs.X,
			Y:       vs.Y,
			Z:       vs.Z,
			Scale:   vs.Scale,
			Opacity: vs.Opacity,
			ZIndex:  vs.ZIndex,
			Visible: vs.Visible,
		})
	}

	w.startLoop()
}

func (w *imageSphere) loadedBy(index int, now time.Time) bool {
	at, ok := w.loadedAt[index]
	return ok && !now.Before(at)
}

func (w *imageSphere) Loaded(index int) bool {
	now := w.frameTime
	if now.IsZero() {
		now = w.now()
	}
	return w.loadedBy(index, now)
}

// hitTest finds the topmost drawn image whose circle contains the point, using the last frame's state.
// Ties go to the later index, matching draw order.
func (w *imageSphere) hitTest(x, y float64) (int, bool) {
	best, bestZ := interaction.NoIndex, math.MinInt
	for i, vs := range w.states {
		if i >= len(w.nodes) || !vs.Visible || vs.Opacity <= 0 || vs.ZIndex < bestZ {
			continue
		}
		r := w.nodes[i].ScreenRect()
		cx, cy := r.Center()
		if math.Hypot(x-cx, y-cy) <= r.W/2 {
			best, bestZ = i, vs.ZIndex
		}
	}
	return best, best != interaction.NoIndex
}

func (w *imageSphere) PointerDown(kind interaction.PointerKind, x, y float64) {
	if !w.mounted || len(w.placements) == 0 {
		return
	}
	if _, open := w.input.Detail(); !open && !w.bounds.Contains(x, y) {
		return
	}
	w.input.PointerDown(kind, x, y)
}

func (w *imageSphere) PointerMove(kind interaction.PointerKind, x, y float64) {
	if !w.mounted || len(w.placements) == 0 {
		return
	}
	w.input.PointerMove(kind, x, y)
}

func (w *imageSphere) PointerUp(kind interaction.PointerKind, x, y float64) {
	if !w.mounted || len(w.placements) == 0 {
		return
	}
	w.input.PointerUp(kind, x, y)
}

func (w *imageSphere) PointerLeave() {
	if !w.mounted {
		return
	}
	w.input.PointerLeave()
}

func (w *imageSphere) KeyDown(key int) bool {
	if !w.mounted {
		return false
	}
	if w.input.KeyDown(key) {
		return true
	}
	switch key {
	case common.KeyR:
		w.motion.Reset()
		return true
	case common.KeyA:
		enabled, speed := w.motion.AutoRotate()
		if speed == 0 {
			speed = motion.DefaultAutoRotateSpeed
		}
		w.motion.SetAutoRotate(!enabled, speed)
		return true
	}
	return false
}

func (w *imageSphere) Detail() (DetailView, bool) {
	if _, open := w.input.Detail(); !open {
		return DetailView{}, false
	}
	return w.detail, true
}

func (w *imageSphere) OpenDetail(index int) error {
	if !w.mounted {
		return ErrNotMounted
	}
	if index < 0 || index >= len(w.images) {
		return fmt.Errorf("open detail %d: index out of range [0, %d)", index, len(w.images))
	}
	w.input.Open(index)
	return nil
}

func (w *imageSphere) CloseDetail() {
	w.input.Close()
}

func (w *imageSphere) Empty() bool {
	return len(w.images) == 0
}

func (w *imageSphere) Bounds() (common.Rect, bool) {
	if !w.mounted {
		return common.Rect{}, false
	}
	return w.bounds, true
}

func (w *imageSphere) Rotation() motion.Rotation {
	return w.motion.Rotation()
}

func (w *imageSphere) Hovered() int {
	return w.input.Hovered()
}

func (w *imageSphere) FramePending() bool {
	return w.frameID != 0
}
