package profiler

import (
	"strings"
	"testing"
	"time"
)

func TestTickReportsOncePerInterval(t *testing.T) {
	now := time.Unix(0, 0)
	var lines []string
	p := NewProfiler(
		WithClock(func() time.Time { return now }),
		WithLogf(func(format string, args ...any) { lines = append(lines, format) }),
	)

	for i := 0; i < 9; i++ {
		now = now.Add(100 * time.Millisecond)
		if p.Tick() {
			t.Fatalf("reported early at tick %d", i)
		}
	}
	now = now.Add(100 * time.Millisecond)
	if !p.Tick(Counter{Name: "sprites", Value: 42}) {
		t.Fatal("no report after a full interval")
	}
	if len(lines) != 1 {
		t.Fatalf("logged %d lines, want 1", len(lines))
	}

	r := p.Last()
	if r.FPS < 9.99 || r.FPS > 10.01 {
		t.Fatalf("FPS = %v, want 10", r.FPS)
	}
	if !strings.Contains(r.String(), "sprites: 42") {
		t.Fatalf("report %q missing counter", r.String())
	}
}

func TestNilLogfIsSilent(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewProfiler(WithClock(func() time.Time { return now }), WithLogf(nil), WithUpdateInterval(time.Millisecond))
	now = now.Add(time.Second)
	if !p.Tick() {
		t.Fatal("expected a report")
	}
}
