package frame

import "time"

// SchedulerBuilderOption is a functional option for configuring a Scheduler.
type SchedulerBuilderOption func(*schedulerImpl)

// WithClock sets the time source used to compute PostAfter deadlines.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - SchedulerBuilderOption: functional option to set the clock
func WithClock(now func() time.Time) SchedulerBuilderOption {
	return func(s *schedulerImpl) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTaskCapacity preallocates the task queue.
//
// Parameters:
//   - n: expected number of queued tasks
//
// Returns:
//   - SchedulerBuilderOption: functional option to size the task queue
func WithTaskCapacity(n int) SchedulerBuilderOption {
	return func(s *schedulerImpl) {
		if n > 0 {
			s.tasks = make([]task, 0, n)
		}
	}
}
