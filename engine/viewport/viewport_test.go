package viewport

import (
	"testing"

	"github.com/Carmen-Shannon/imgsphere/common"
)

func TestObserverThreshold(t *testing.T) {
	o := NewObserver(WithRootMargin(0))
	root := common.Rect{W: 800, H: 600}

	// 10% of the target inside the root.
	if vis, _ := o.Update(root, common.Rect{X: 0, Y: 560, W: 400, H: 400}); vis {
		t.Fatalf("10%% intersecting target reported visible (ratio %v)", o.Ratio())
	}
	// 25% inside.
	vis, changed := o.Update(root, common.Rect{X: 0, Y: 500, W: 400, H: 400})
	if !vis || !changed {
		t.Fatalf("25%% intersecting target: visible=%v changed=%v", vis, changed)
	}
	if _, changed := o.Update(root, common.Rect{X: 0, Y: 400, W: 400, H: 400}); changed {
		t.Fatal("staying visible must not report a change")
	}
}

func TestObserverRootMarginPreTriggers(t *testing.T) {
	root := common.Rect{W: 800, H: 600}
	// The target starts 10 px below the root; only the margin reaches it.
	target := common.Rect{X: 0, Y: 610, W: 100, H: 100}

	if vis, _ := NewObserver(WithRootMargin(0)).Update(root, target); vis {
		t.Fatal("target outside root reported visible without margin")
	}
	o := NewObserver(WithRootMargin(50), WithThreshold(0.2))
	if vis, _ := o.Update(root, target); !vis {
		t.Fatalf("margin should pre-trigger visibility (ratio %v)", o.Ratio())
	}
}

func TestObserverCallbackFiresOnFlips(t *testing.T) {
	o := NewObserver()
	var events []bool
	o.OnChange(func(v bool) { events = append(events, v) })

	root := common.Rect{W: 800, H: 600}
	on := common.Rect{X: 100, Y: 100, W: 400, H: 400}
	off := common.Rect{X: 100, Y: 2000, W: 400, H: 400}

	o.Update(root, on)
	o.Update(root, on)
	o.Update(root, off)
	o.Update(root, off)
	o.Update(root, on)

	if len(events) != 3 || !events[0] || events[1] || !events[2] {
		t.Fatalf("events = %v, want [true false true]", events)
	}

	o.Reset()
	if o.Visible() {
		t.Fatal("Reset should clear visibility")
	}
}

func TestObserverEmptyTarget(t *testing.T) {
	o := NewObserver()
	if vis, _ := o.Update(common.Rect{W: 800, H: 600}, common.Rect{}); vis {
		t.Fatal("empty target must never be visible")
	}
}
