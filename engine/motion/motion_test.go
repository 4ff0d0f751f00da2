package motion

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/imgsphere/common"
)

func TestInitialRotation(t *testing.T) {
	c := NewController()
	if got := c.Rotation(); got != DefaultInitialRotation {
		t.Fatalf("Rotation = %+v, want %+v", got, DefaultInitialRotation)
	}
	if !c.Velocity().Zero() {
		t.Fatalf("Velocity = %+v, want zero", c.Velocity())
	}
}

func TestRotationStaysNormalized(t *testing.T) {
	c := NewController(WithInitialRotation(Rotation{}), WithMaxRotationSpeed(50), WithDragSensitivity(1))
	c.BeginDrag()
	for i := 0; i < 500; i++ {
		c.Drag(float64(i%97)-13, float64(i%41)-7)
		r := c.Rotation()
		if r.X <= -180 || r.X > 180 || r.Y <= -180 || r.Y > 180 {
			t.Fatalf("step %d rotation %+v outside (-180, 180]", i, r)
		}
	}
}

func TestNormalizationWrapsPast180(t *testing.T) {
	c := NewController(WithInitialRotation(Rotation{Y: 170}), WithMaxRotationSpeed(30), WithDragSensitivity(1))
	c.BeginDrag()
	c.Drag(30, 0)
	if got := c.Rotation().Y; math.Abs(got-(-160)) > 1e-9 {
		t.Fatalf("Y = %v, want -160", got)
	}
}

func TestMomentumDecayConverges(t *testing.T) {
	c := NewController(WithMomentumDecay(0.95))
	c.SetVelocity(Velocity{X: 5, Y: 5})

	frames := 0
	for !c.Velocity().Zero() {
		c.Step()
		frames++
		if frames > 200 {
			t.Fatalf("velocity still %+v after %d frames", c.Velocity(), frames)
		}
	}
	// ln(0.01/5)/ln(0.95) is about 121.2, so the snap happens on frame 122.
	if frames < 115 || frames > 125 {
		t.Fatalf("velocity reached zero after %d frames, want about 121", frames)
	}

	for i := 0; i < 50; i++ {
		c.Step()
		if v := c.Velocity(); v.X != 0 || v.Y != 0 {
			t.Fatalf("velocity %+v after rest, want exactly zero", v)
		}
	}
}

func TestAutoRotateContinuity(t *testing.T) {
	const speed = 0.3
	c := NewController(WithAutoRotate(true, speed))
	c.SetVelocity(Velocity{X: 2, Y: -3})

	for i := 0; i < 400; i++ {
		c.Step()
	}
	if !c.Velocity().Zero() {
		t.Fatalf("velocity %+v did not decay to zero", c.Velocity())
	}

	for i := 0; i < 2000; i++ {
		before := c.Rotation()
		c.Step()
		after := c.Rotation()
		want := common.NormalizeAngle(before.Y + speed)
		if math.Abs(after.Y-want) > 1e-9 {
			t.Fatalf("frame %d: Y went %v -> %v, want %v", i, before.Y, after.Y, want)
		}
		if after.X != before.X {
			t.Fatalf("frame %d: X drifted %v -> %v", i, before.X, after.X)
		}
	}
}

func TestStepClampsVelocity(t *testing.T) {
	c := NewController(WithInitialRotation(Rotation{}), WithMaxRotationSpeed(5), WithMomentumDecay(0.99))
	c.SetVelocity(Velocity{X: 100, Y: -100})
	c.Step()
	r := c.Rotation()
	if r.X != 5 || r.Y != -5 {
		t.Fatalf("rotation after clamped step = %+v, want (5, -5)", r)
	}
}

func TestDragSuspendsMomentum(t *testing.T) {
	c := NewController(WithInitialRotation(Rotation{}))
	c.SetVelocity(Velocity{X: 3, Y: 3})
	c.BeginDrag()
	if !c.Velocity().Zero() {
		t.Fatal("BeginDrag must clear velocity")
	}

	c.Drag(4, -2)
	want := Rotation{X: 1, Y: 2}
	if got := c.Rotation(); got != want {
		t.Fatalf("rotation after drag = %+v, want %+v", got, want)
	}

	c.Step()
	if got := c.Rotation(); got != want {
		t.Fatalf("Step moved rotation while dragging: %+v", got)
	}

	c.EndDrag()
	if v := c.Velocity(); v.X != 1 || v.Y != 2 {
		t.Fatalf("residual velocity = %+v, want (1, 2)", v)
	}
	c.Step()
	if got := c.Rotation(); got == want {
		t.Fatal("momentum did not resume after EndDrag")
	}
}

func TestDragClampsDelta(t *testing.T) {
	c := NewController(WithInitialRotation(Rotation{}), WithMaxRotationSpeed(5), WithDragSensitivity(0.5))
	c.BeginDrag()
	c.Drag(400, -400)
	if v := c.Velocity(); v.X != 5 || v.Y != 5 {
		t.Fatalf("velocity = %+v, want clamped (5, 5)", v)
	}
}

func TestReset(t *testing.T) {
	c := NewController()
	c.BeginDrag()
	c.Drag(10, 10)
	c.Reset()
	if c.Dragging() || !c.Velocity().Zero() || c.Rotation() != DefaultInitialRotation {
		t.Fatalf("Reset left state %+v %+v dragging=%v", c.Rotation(), c.Velocity(), c.Dragging())
	}
}
