package profiler

import (
	"fmt"
	"log"
	"runtime"
	"strings"
	"time"
)

// Counter is a named value reported alongside the frame statistics, such as sprites drawn.
type Counter struct {
	Name  string
	Value int
}

// Report is the result of one profiling interval.
type Report struct {
	FPS         float64
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
	Counters    []Counter
}

// String formats the report as a single log line.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		r.FPS, r.HeapMB, r.AllocRateMB, r.GCCount, r.LastPauseUs, r.MaxPauseUs, r.SysMB)
	for _, c := range r.Counters {
		fmt.Fprintf(&b, " | %s: %d", c.Name, c.Value)
	}
	return b.String()
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	now            func() time.Time
	logf           func(format string, args ...any)
	last           Report
}

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithUpdateInterval sets how often a report is produced.
//
// Parameters:
//   - d: the interval, ignored when not positive
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithUpdateInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithClock replaces time.Now.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// WithLogf replaces log.Printf as the report sink. Nil silences output.
//
// Parameters:
//   - logf: printf-style sink
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithLogf(logf func(format string, args ...any)) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.logf = logf
	}
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
		logf:           log.Printf,
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per rendered frame.
// Logs performance statistics and the given counters when the update interval has elapsed.
//
// Parameters:
//   - counters: values to include in the report, sampled at the moment a report is produced
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(counters ...Counter) bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	r := Report{
		FPS:      float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:   float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:    float64(p.memStats.Sys) / 1024 / 1024,
		GCCount:  p.memStats.NumGC,
		Counters: append([]Counter(nil), counters...),
	}
	// TotalAlloc only grows, so the delta is the churn for this interval.
	r.AllocRateMB = float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()

	if r.GCCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		r.LastPauseUs = p.memStats.PauseNs[(r.GCCount-1)%256] / 1000
		start := p.lastGCCount
		if r.GCCount-start > 256 {
			start = r.GCCount - 256
		}
		for i := start; i < r.GCCount; i++ {
			r.MaxPauseUs = max(r.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	if p.logf != nil {
		p.logf("[Profiler] %s", r)
	}

	p.last = r
	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = r.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recent report, or the zero Report before the first interval elapses.
//
// Returns:
//   - Report: the last report
func (p *Profiler) Last() Report {
	return p.last
}
