// Package frame provides the display-synchronized frame scheduler that drives every widget.
// The host loop (window or terminal) calls RunTasks and RunFrame once per display refresh on
// its own goroutine; widgets request frame callbacks and never run on a fixed timer.
package frame

import "time"

// ID identifies a pending frame callback. The zero ID is never issued.
type ID uint64

// Callback is invoked once on the next frame with the frame timestamp.
type Callback func(now time.Time)

// Poster accepts work to be executed on the loop goroutine.
// It is the only part of the scheduler that may be used from other goroutines.
type Poster interface {
	// Post queues a task to run on the loop goroutine before the next frame.
	//
	// Parameters:
	//   - task: the function to run
	Post(task func())

	// PostAfter queues a task to run on the loop goroutine once the delay has elapsed.
	//
	// Parameters:
	//   - delay: the minimum time to wait before running the task
	//   - task: the function to run
	PostAfter(delay time.Duration, task func())
}

// Scheduler is a next-frame callback primitive plus a UI-thread task queue.
type Scheduler interface {
	Poster

	// RequestFrame registers a callback for the next frame.
	// Callbacks requested while a frame is running are deferred to the following frame.
	//
	// Parameters:
	//   - cb: the callback to invoke
	//
	// Returns:
	//   - ID: handle usable with CancelFrame
	RequestFrame(cb Callback) ID

	// CancelFrame removes a pending callback. Unknown or already-run IDs are ignored.
	//
	// Parameters:
	//   - id: the handle returned by RequestFrame
	CancelFrame(id ID)

	// RunTasks executes every posted task that is due at the given time, in submission order.
	//
	// Parameters:
	//   - now: the current time
	//
	// Returns:
	//   - int: the number of tasks executed
	RunTasks(now time.Time) int

	// RunFrame invokes every callback that was pending when the frame started.
	//
	// Parameters:
	//   - now: the frame timestamp passed to each callback
	//
	// Returns:
	//   - int: the number of callbacks invoked
	RunFrame(now time.Time) int

	// PendingFrames returns the number of callbacks waiting for the next frame.
	//
	// Returns:
	//   - int: pending callback count
	PendingFrames() int

	// PendingTasks returns the number of posted tasks not yet executed.
	//
	// Returns:
	//   - int: queued task count
	PendingTasks() int

	// FrameCount returns how many frames have been run.
	//
	// Returns:
	//   - uint64: frames run since creation
	FrameCount() uint64
}
