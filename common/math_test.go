package common

import (
	"math"
	"testing"
)

func TestNormalizeAngle(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{-180, 180},
		{200, -160},
		{170 + 30, -160},
		{-190, 170},
		{540, 180},
		{-540, 180},
		{359, -1},
		{725, 5},
	}
	for _, c := range cases {
		if got := NormalizeAngle(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNormalizeAngleRange(t *testing.T) {
	for a := -2000.0; a <= 2000; a += 7.3 {
		got := NormalizeAngle(a)
		if got <= -180 || got > 180 {
			t.Fatalf("NormalizeAngle(%v) = %v, outside (-180, 180]", a, got)
		}
	}
}

func TestClampAbs(t *testing.T) {
	if got := ClampAbs(12, 5); got != 5 {
		t.Errorf("ClampAbs(12, 5) = %v", got)
	}
	if got := ClampAbs(-12, 5); got != -5 {
		t.Errorf("ClampAbs(-12, 5) = %v", got)
	}
	if got := ClampAbs(3, 5); got != 3 {
		t.Errorf("ClampAbs(3, 5) = %v", got)
	}
	if got := ClampAbs(30, 0); got != 30 {
		t.Errorf("ClampAbs with zero limit = %v, want unclamped", got)
	}
}

func TestPixelProjectionMapsCorners(t *testing.T) {
	var m [16]float32
	PixelProjection(m[:], 800, 600)

	project := func(x, y float32) (float32, float32) {
		return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
	}
	check := func(x, y, wantX, wantY float32) {
		gx, gy := project(x, y)
		if math.Abs(float64(gx-wantX)) > 1e-5 || math.Abs(float64(gy-wantY)) > 1e-5 {
			t.Errorf("pixel (%v, %v) -> (%v, %v), want (%v, %v)", x, y, gx, gy, wantX, wantY)
		}
	}
	check(0, 0, -1, 1)
	check(800, 600, 1, -1)
	check(400, 300, 0, 0)
}
