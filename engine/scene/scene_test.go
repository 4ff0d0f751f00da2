package scene

import (
	"image/color"
	"testing"
	"time"

	"github.com/Carmen-Shannon/imgsphere/common"
)

func TestDrawListOrdersByZIndex(t *testing.T) {
	s := NewScene()
	a := s.AddNode(NodeSpec{Name: "a"})
	b := s.AddNode(NodeSpec{Name: "b"})
	c := s.AddNode(NodeSpec{Name: "c"})
	hidden := s.AddNode(NodeSpec{Name: "hidden"})
	transparent := s.AddNode(NodeSpec{Name: "transparent"})

	a.SetTransform(Transform{Visible: true, Opacity: 1, ZIndex: 1100})
	b.SetTransform(Transform{Visible: true, Opacity: 0.5, ZIndex: 900})
	c.SetTransform(Transform{Visible: true, Opacity: 1, ZIndex: 1100})
	hidden.SetTransform(Transform{Visible: false, Opacity: 1, ZIndex: 2000})
	transparent.SetTransform(Transform{Visible: true, Opacity: 0, ZIndex: 2000})

	got := s.DrawList(nil)
	if len(got) != 3 {
		t.Fatalf("DrawList returned %d nodes, want 3", len(got))
	}
	if got[0] != b || got[1] != a || got[2] != c {
		t.Fatalf("order = %s %s %s, want b a c", got[0].Spec().Name, got[1].Spec().Name, got[2].Spec().Name)
	}
}

func TestRemovedNodeIsDead(t *testing.T) {
	s := NewScene()
	n := s.AddNode(NodeSpec{})
	s.RemoveNode(n.ID())
	if n.Alive() {
		t.Fatal("removed node still alive")
	}
	n.SetContent(common.TextureStagingData{Pixels: make([]byte, 4), Width: 1, Height: 1})
	if _, v := n.Content(); v != 0 {
		t.Fatal("write to dead node was applied")
	}
	if s.Node(n.ID()) != nil || s.Count() != 0 {
		t.Fatal("node still registered")
	}
}

func TestClearKillsNodesAndOverlay(t *testing.T) {
	s := NewScene()
	n := s.AddNode(NodeSpec{})
	s.SetOverlay(Overlay{Title: "x"})
	s.SetPlaceholder(Placeholder{Text: "empty"})
	s.Clear()
	if n.Alive() {
		t.Fatal("Clear left node alive")
	}
	if _, ok := s.Overlay(); ok {
		t.Fatal("Clear left overlay")
	}
	if _, ok := s.Placeholder(); ok {
		t.Fatal("Clear left placeholder")
	}
}

func TestSetContentTracksVersionAndTint(t *testing.T) {
	s := NewScene()
	n := s.AddNode(NodeSpec{Tint: color.RGBA{A: 255}})
	px := []byte{0, 0, 255, 255, 0, 0, 255, 255}
	n.SetContent(common.TextureStagingData{Pixels: px, Width: 2, Height: 1})
	if _, v := n.Content(); v != 1 {
		t.Fatalf("version = %d, want 1", v)
	}
	if got := n.Tint(); got != (color.RGBA{B: 255, A: 255}) {
		t.Fatalf("tint = %+v", got)
	}
}

func TestScreenRectIgnoresDepth(t *testing.T) {
	s := NewScene()
	n := s.AddNode(NodeSpec{Bounds: common.Rect{X: 176, Y: 176, W: 48, H: 48}})
	n.SetTransform(Transform{X: 100, Z: 150, Scale: 1, Visible: true, Opacity: 1})
	r := n.ScreenRect()
	cx, cy := r.Center()
	if cx != 300 || cy != 200 || r.W != 48 || r.H != 48 {
		t.Fatalf("ScreenRect = %+v, want center (300, 200) size 48", r)
	}
	n.SetTransform(Transform{X: 100, Z: -150, Scale: 1.5, Visible: true, Opacity: 1})
	if r := n.ScreenRect(); r.W != 72 || r.X != 300-36 {
		t.Fatalf("ScreenRect behind the center = %+v, want x 264 size 72", r)
	}
}

func TestScreenRect(t *testing.T) {
	s := NewScene()
	n := s.AddNode(NodeSpec{Bounds: common.Rect{X: 90, Y: 90, W: 20, H: 20}})
	n.SetTransform(Transform{X: 10, Y: -10, Scale: 2, Visible: true, Opacity: 1})
	want := common.Rect{X: 90, Y: 70, W: 40, H: 40}
	if got := n.ScreenRect(); got != want {
		t.Fatalf("ScreenRect = %+v, want %+v", got, want)
	}
}

func TestOverlayOpeningAnimation(t *testing.T) {
	opened := time.Unix(1000, 0)
	o := Overlay{
		Backdrop: color.RGBA{A: 200},
		Card:     common.Rect{X: 100, Y: 100, W: 200, H: 200},
		Close:    common.Rect{X: 260, Y: 110, W: 30, H: 30},
		Opened:   opened,
	}

	start, alpha := o.Frame(opened)
	if alpha != 0 || start.Backdrop.A != 0 {
		t.Fatalf("at open: alpha %v, backdrop %d, want 0", alpha, start.Backdrop.A)
	}
	if want := (common.Rect{X: 120, Y: 120, W: 160, H: 160}); start.Card != want {
		t.Fatalf("at open: card %+v, want %+v", start.Card, want)
	}
	if start.Close.X+start.Close.W > start.Card.X+start.Card.W {
		t.Fatalf("close %+v left the scaled card %+v", start.Close, start.Card)
	}

	mid, alpha := o.Frame(opened.Add(OverlayOpenDuration / 2))
	if alpha <= 0.5 || alpha >= 1 || mid.Backdrop.A != 175 {
		t.Fatalf("halfway: alpha %v, backdrop %d, want eased (0.5, 1) and 175", alpha, mid.Backdrop.A)
	}
	if mid.Card.W <= start.Card.W || mid.Card.W >= o.Card.W {
		t.Fatalf("halfway: card width %v not between %v and %v", mid.Card.W, start.Card.W, o.Card.W)
	}

	end, alpha := o.Frame(opened.Add(OverlayOpenDuration))
	if alpha != 1 || end.Card != o.Card || end.Close != o.Close || end.Backdrop != o.Backdrop {
		t.Fatalf("after the animation: alpha %v, overlay %+v, want the resting overlay", alpha, end)
	}
	if _, alpha := (Overlay{Card: o.Card}).Frame(opened); alpha != 1 {
		t.Fatalf("zero open time: alpha %v, want 1", alpha)
	}
}
