package widget

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"testing"
	"testing/fstest"
	"time"

	"github.com/Carmen-Shannon/imgsphere/common"
	"github.com/Carmen-Shannon/imgsphere/engine/frame"
	"github.com/Carmen-Shannon/imgsphere/engine/interaction"
	"github.com/Carmen-Shannon/imgsphere/engine/loader"
	"github.com/Carmen-Shannon/imgsphere/engine/scene"
)

var testRoot = common.Rect{W: 800, H: 600}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type harness struct {
	w     ImageSphere
	sched frame.Scheduler
	sc    scene.Scene
	l     loader.Loader
	clock *fakeClock
	fsys  fstest.MapFS
}

func testImages(t *testing.T, n int) ([]ImageDescriptor, fstest.MapFS) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 180
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}

	fsys := fstest.MapFS{}
	images := make([]ImageDescriptor, n)
	for i := range images {
		src := fmt.Sprintf("img/%02d.png", i)
		fsys[src] = &fstest.MapFile{Data: buf.Bytes()}
		images[i] = ImageDescriptor{
			ID:          fmt.Sprintf("img-%d", i),
			Src:         src,
			Alt:         fmt.Sprintf("image %d", i),
			Title:       fmt.Sprintf("Title %d", i),
			Description: fmt.Sprintf("Description %d", i),
		}
	}
	return images, fsys
}

func newHarness(t *testing.T, n int, opts ...ImageSphereBuilderOption) *harness {
	t.Helper()
	images, fsys := testImages(t, n)
	h := &harness{
		sched: frame.NewScheduler(),
		sc:    scene.NewScene(),
		clock: &fakeClock{t: time.Unix(1_700_000_000, 0)},
		fsys:  fsys,
	}
	h.l = loader.NewLoader(loader.WithFS(fsys), loader.WithWorkers(2))
	t.Cleanup(func() { h.l.Close() })

	opts = append([]ImageSphereBuilderOption{WithLoader(h.l), WithClock(h.clock.Now)}, opts...)
	h.w = NewImageSphere(images, opts...)
	if err := h.w.Mount(h.sched, h.sc, 200, 100); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return h
}

// awaitTasks pumps the task queue until cond holds.
func (h *harness) awaitTasks(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for image loads")
		}
		h.sched.RunTasks(time.Now())
		time.Sleep(time.Millisecond)
	}
}

func (h *harness) awaitLoaded(t *testing.T) {
	t.Helper()
	h.awaitTasks(t, func() bool {
		for _, n := range h.sc.Nodes() {
			if _, v := n.Content(); v == 0 {
				return false
			}
		}
		return true
	})
}

func (h *harness) frame() {
	h.sched.RunTasks(h.clock.Now())
	h.sched.RunFrame(h.clock.Now())
}

func TestEmptySetNeverSchedulesFrames(t *testing.T) {
	var w ImageSphere
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("constructing an empty widget panicked: %v", r)
			}
		}()
		w = NewImageSphere(nil)
	}()
	if !w.Empty() {
		t.Fatal("Empty() = false for no images")
	}

	sched := frame.NewScheduler()
	sc := scene.NewScene()
	if err := w.Mount(sched, sc, 0, 0); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	w.UpdateViewport(testRoot)
	w.PointerDown(interaction.PointerMouse, 10, 10)
	w.PointerUp(interaction.PointerMouse, 10, 10)

	if w.FramePending() || sched.PendingFrames() != 0 {
		t.Fatal("empty widget scheduled a frame")
	}
	if p, ok := sc.Placeholder(); !ok || p.Text == "" {
		t.Fatal("empty widget did not show a placeholder")
	}
	if sc.Count() != 0 {
		t.Fatalf("empty widget created %d nodes", sc.Count())
	}
	if _, ok := w.Detail(); ok {
		t.Fatal("empty widget opened a detail view")
	}
	if err := w.Unmount(); err != nil {
		t.Fatalf("Unmount: %v", err)
	}
	if _, ok := sc.Placeholder(); ok {
		t.Fatal("placeholder survived unmount")
	}
}

func TestMountErrors(t *testing.T) {
	h := newHarness(t, 3)
	if err := h.w.Mount(h.sched, h.sc, 0, 0); !errors.Is(err, ErrAlreadyMounted) {
		t.Fatalf("second Mount err = %v", err)
	}
	if err := h.w.Unmount(); err != nil {
		t.Fatalf("Unmount: %v", err)
	}
	if err := h.w.Unmount(); !errors.Is(err, ErrNotMounted) {
		t.Fatalf("second Unmount err = %v", err)
	}
	if _, ok := h.w.Bounds(); ok {
		t.Fatal("Bounds reported ok after unmount")
	}
	if err := h.w.OpenDetail(0); !errors.Is(err, ErrNotMounted) {
		t.Fatalf("OpenDetail err = %v", err)
	}
}

func TestFrameLoopFollowsVisibility(t *testing.T) {
	h := newHarness(t, 8)
	if h.w.FramePending() {
		t.Fatal("frame scheduled before the widget was seen in view")
	}

	h.w.UpdateViewport(testRoot)
	if !h.w.FramePending() || h.sched.PendingFrames() != 1 {
		t.Fatal("entering view did not schedule a frame")
	}
	h.frame()
	if !h.w.FramePending() {
		t.Fatal("frame loop did not reschedule itself")
	}

	h.w.UpdateViewport(testRoot.Translate(0, 5000))
	if h.w.FramePending() || h.sched.PendingFrames() != 0 {
		t.Fatal("leaving view did not cancel the pending frame")
	}
	if n := h.sched.RunFrame(h.clock.Now()); n != 0 {
		t.Fatalf("hidden widget ran %d frame callbacks", n)
	}

	h.w.UpdateViewport(testRoot)
	if !h.w.FramePending() {
		t.Fatal("re-entering view did not restart the loop")
	}
}

func TestLoadGatedOpacity(t *testing.T) {
	h := newHarness(t, 6, WithStagger(0))
	h.w.UpdateViewport(testRoot)
	h.sched.RunFrame(h.clock.Now())

	for i, n := range h.sc.Nodes() {
		if op := n.Transform().Opacity; op != 0 {
			t.Fatalf("node %d has opacity %v before its image loaded", i, op)
		}
	}

	h.awaitLoaded(t)
	h.frame()

	shown := 0
	for i, n := range h.sc.Nodes() {
		tr := n.Transform()
		if !h.w.Loaded(i) {
			t.Fatalf("image %d not marked loaded", i)
		}
		if tr.Visible && tr.Z >= -10 {
			if tr.Opacity != 1 {
				t.Fatalf("node %d in front has opacity %v after load", i, tr.Opacity)
			}
			shown++
		}
	}
	if shown == 0 {
		t.Fatal("no node became visible after loading")
	}
}

func TestStaggeredFadeIn(t *testing.T) {
	h := newHarness(t, 4, WithStagger(30*time.Millisecond))
	h.w.UpdateViewport(testRoot)
	h.awaitLoaded(t)
	h.frame()

	if !h.w.Loaded(0) || h.w.Loaded(2) {
		t.Fatalf("stagger not applied: loaded(0)=%v loaded(2)=%v", h.w.Loaded(0), h.w.Loaded(2))
	}
	h.clock.Advance(60 * time.Millisecond)
	h.frame()
	if !h.w.Loaded(2) || h.w.Loaded(3) {
		t.Fatalf("after 60ms: loaded(2)=%v loaded(3)=%v", h.w.Loaded(2), h.w.Loaded(3))
	}
}

func TestFailedLoadStaysHidden(t *testing.T) {
	images, fsys := testImages(t, 3)
	images[1].Src = "img/missing.png"
	sched := frame.NewScheduler()
	sc := scene.NewScene()
	l := loader.NewLoader(loader.WithFS(fsys), loader.WithWorkers(1))
	defer l.Close()

	w := NewImageSphere(images, WithLoader(l), WithStagger(0))
	if err := w.Mount(sched, sc, 0, 0); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	nodes := sc.Nodes()
	deadline := time.Now().Add(5 * time.Second)
	for {
		sched.RunTasks(time.Now())
		_, v0 := nodes[0].Content()
		_, v2 := nodes[2].Content()
		if v0 > 0 && v2 > 0 && l.Pending() == 0 && sched.PendingTasks() == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for loads")
		}
		time.Sleep(time.Millisecond)
	}
	if w.Loaded(1) {
		t.Fatal("failed image marked loaded")
	}
	if !w.Loaded(0) || !w.Loaded(2) {
		t.Fatal("sibling images affected by a failed load")
	}
}

func TestStaleLoadsAfterUnmountAreDropped(t *testing.T) {
	h := newHarness(t, 5)
	nodes := h.sc.Nodes()

	// Wait until every completion is queued on the scheduler but not yet run.
	deadline := time.Now().Add(5 * time.Second)
	for h.sched.PendingTasks() < len(nodes) {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for queued completions")
		}
		time.Sleep(time.Millisecond)
	}

	if err := h.w.Unmount(); err != nil {
		t.Fatalf("Unmount: %v", err)
	}
	h.sched.RunTasks(time.Now())

	for i, n := range nodes {
		if n.Alive() {
			t.Fatalf("node %d alive after unmount", i)
		}
		if _, v := n.Content(); v != 0 {
			t.Fatalf("stale load wrote into node %d", i)
		}
	}
	if h.sc.Count() != 0 {
		t.Fatalf("scene still holds %d nodes", h.sc.Count())
	}
}

func TestClickOpensDetailAndEscapeCloses(t *testing.T) {
	var opened []ImageDescriptor
	closed := 0
	h := newHarness(t, 12, WithStagger(0),
		WithOnOpen(func(d ImageDescriptor) { opened = append(opened, d) }),
		WithOnClose(func() { closed++ }),
	)
	h.w.UpdateViewport(testRoot)
	h.awaitLoaded(t)
	h.frame()

	draw := h.sc.DrawList(nil)
	if len(draw) == 0 {
		t.Fatal("nothing drawable after loading")
	}
	top := draw[len(draw)-1]
	index := -1
	for i, n := range h.sc.Nodes() {
		if n == top {
			index = i
		}
	}
	x, y := top.ScreenRect().Center()

	h.w.PointerDown(interaction.PointerMouse, x, y)
	h.w.PointerUp(interaction.PointerMouse, x, y)

	d, ok := h.w.Detail()
	if !ok || d.Index != index {
		t.Fatalf("Detail = (%+v, %v), want index %d", d, ok, index)
	}
	if len(opened) != 1 || opened[0].Title != fmt.Sprintf("Title %d", index) {
		t.Fatalf("OnOpen calls = %+v", opened)
	}
	o, ok := h.sc.Overlay()
	if !ok || o.Caption != fmt.Sprintf("Description %d", index) || o.Content.Empty() {
		t.Fatalf("overlay = %+v, %v", o, ok)
	}
	if !o.Opened.Equal(h.clock.Now()) {
		t.Fatalf("overlay opened at %v, want %v", o.Opened, h.clock.Now())
	}

	if !h.w.KeyDown(common.KeyEsc) {
		t.Fatal("escape not consumed")
	}
	if _, ok := h.w.Detail(); ok || closed != 1 {
		t.Fatal("escape did not close the detail view")
	}
	if _, ok := h.sc.Overlay(); ok {
		t.Fatal("overlay survived close")
	}
}

func TestDragRotatesWithoutOpening(t *testing.T) {
	h := newHarness(t, 12, WithStagger(0))
	h.w.UpdateViewport(testRoot)
	h.awaitLoaded(t)
	h.frame()

	b, _ := h.w.Bounds()
	cx, cy := b.Center()
	before := h.w.Rotation()

	h.w.PointerDown(interaction.PointerMouse, cx, cy)
	for i := 1; i <= 4; i++ {
		h.w.PointerMove(interaction.PointerMouse, cx+float64(i)*10, cy)
		h.frame()
	}
	h.w.PointerUp(interaction.PointerMouse, cx+40, cy)

	if _, ok := h.w.Detail(); ok {
		t.Fatal("drag opened the detail view")
	}
	afterDrag := h.w.Rotation()
	if afterDrag == before {
		t.Fatal("drag did not rotate the sphere")
	}
	h.frame()
	if h.w.Rotation() == afterDrag {
		t.Fatal("no momentum after release")
	}
}

func TestPointerOutsideBoundsIgnored(t *testing.T) {
	h := newHarness(t, 6)
	h.w.UpdateViewport(testRoot)
	h.frame()
	before := h.w.Rotation()
	h.w.PointerDown(interaction.PointerMouse, 5, 5)
	h.w.PointerMove(interaction.PointerMouse, 80, 80)
	h.w.PointerUp(interaction.PointerMouse, 80, 80)
	if h.w.Rotation() != before {
		t.Fatal("gesture outside the widget rotated it")
	}
}

func TestSetImagesRebuildsNodes(t *testing.T) {
	h := newHarness(t, 6)
	h.w.UpdateViewport(testRoot)
	old := h.sc.Nodes()

	h.w.SetImages(nil)
	for _, n := range old {
		if n.Alive() {
			t.Fatal("old node survived SetImages")
		}
	}
	if _, ok := h.sc.Placeholder(); !ok {
		t.Fatal("empty SetImages did not show the placeholder")
	}
	if h.w.FramePending() {
		t.Fatal("empty widget kept its frame loop")
	}

	images, _ := testImages(t, 3)
	h.w.SetImages(images)
	if h.sc.Count() != 3 {
		t.Fatalf("scene has %d nodes, want 3", h.sc.Count())
	}
	if _, ok := h.sc.Placeholder(); ok {
		t.Fatal("placeholder kept after images were supplied")
	}
	if !h.w.FramePending() {
		t.Fatal("visible widget did not restart its loop")
	}
}

func TestDefaultRadiusIsHalfContainer(t *testing.T) {
	w := NewImageSphere(nil, WithContainerSize(500))
	if w.Radius() != 250 {
		t.Fatalf("Radius = %v, want 250", w.Radius())
	}
	w = NewImageSphere(nil, WithContainerSize(500), WithRadius(120))
	if w.Radius() != 120 {
		t.Fatalf("Radius = %v, want 120", w.Radius())
	}
}

func TestSetRadiusRelayoutsOnce(t *testing.T) {
	h := newHarness(t, 12, WithStagger(0))
	h.w.UpdateViewport(testRoot)
	h.awaitLoaded(t)
	h.frame()

	w := h.w.(*imageSphere)
	before := w.layouts
	h.w.SetRadius(100)
	h.frame()

	if h.w.Radius() != 100 || w.resolver.Radius() != 100 {
		t.Fatalf("radius = %v, resolver %v, want 100", h.w.Radius(), w.resolver.Radius())
	}
	if w.layouts != before+1 {
		t.Fatalf("layouts = %d, want %d", w.layouts, before+1)
	}
	for i, n := range h.sc.Nodes() {
		tr := n.Transform()
		if r := math.Sqrt(tr.X*tr.X + tr.Y*tr.Y + tr.Z*tr.Z); math.Abs(r-100) > 1e-6 {
			t.Fatalf("node %d sits %v from the center, want 100", i, r)
		}
	}

	h.w.SetRadius(100)
	h.w.SetRadius(-5)
	h.frame()
	if w.layouts != before+1 || h.w.Radius() != 100 {
		t.Fatalf("repeated or invalid radius changed the layout: layouts %d, radius %v", w.layouts, h.w.Radius())
	}
}

func TestPerspectiveIsStored(t *testing.T) {
	if got := NewImageSphere(nil).Perspective(); got != DefaultPerspective {
		t.Fatalf("Perspective = %v, want %v", got, DefaultPerspective)
	}
	if got := NewImageSphere(nil, WithPerspective(0)).Perspective(); got != 0 {
		t.Fatalf("Perspective = %v, want 0", got)
	}
}
