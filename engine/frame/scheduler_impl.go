package frame

import (
	"sync"
	"time"
)

type pendingFrame struct {
	id ID
	cb Callback
}

type task struct {
	due time.Time
	do  func()
}

// schedulerImpl is the implementation of Scheduler.
// Frame state is owned by the loop goroutine; only the task queue is mutex-guarded.
type schedulerImpl struct {
	mu    *sync.Mutex
	tasks []task

	now    func() time.Time
	nextID ID
	frames []pendingFrame
	// running holds the batch being invoked so CancelFrame can reach it mid-frame.
	running []pendingFrame
	count   uint64
}

var _ Scheduler = &schedulerImpl{}

// NewScheduler creates a new frame scheduler.
//
// Parameters:
//   - options: functional options to configure the scheduler
//
// Returns:
//   - Scheduler: the newly created scheduler
func NewScheduler(options ...SchedulerBuilderOption) Scheduler {
	s := &schedulerImpl{
		mu:  &sync.Mutex{},
		now: time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *schedulerImpl) Post(do func()) {
	if do == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task{do: do})
}

func (s *schedulerImpl) PostAfter(delay time.Duration, do func()) {
	if do == nil {
		return
	}
	if delay <= 0 {
		s.Post(do)
		return
	}
	due := s.now().Add(delay)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task{due: due, do: do})
}

func (s *schedulerImpl) RunTasks(now time.Time) int {
	s.mu.Lock()
	var ready []func()
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.due.IsZero() || !now.Before(t.due) {
			ready = append(ready, t.do)
		} else {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = task{}
	}
	s.tasks = kept
	s.mu.Unlock()

	// Tasks run unlocked so they may post follow-up work.
	for _, do := range ready {
		do()
	}
	return len(ready)
}

func (s *schedulerImpl) RequestFrame(cb Callback) ID {
	if cb == nil {
		return 0
	}
	s.nextID++
	s.frames = append(s.frames, pendingFrame{id: s.nextID, cb: cb})
	return s.nextID
}

func (s *schedulerImpl) CancelFrame(id ID) {
	if id == 0 {
		return
	}
	for i, f := range s.frames {
		if f.id == id {
			s.frames = append(s.frames[:i], s.frames[i+1:]...)
			return
		}
	}
	for i, f := range s.running {
		if f.id == id {
			s.running[i].cb = nil
			return
		}
	}
}

func (s *schedulerImpl) RunFrame(now time.Time) int {
	s.count++
	if len(s.frames) == 0 {
		return 0
	}
	s.running = s.frames
	s.frames = nil

	n := 0
	for i := range s.running {
		cb := s.running[i].cb
		if cb == nil {
			continue
		}
		s.running[i].cb = nil
		cb(now)
		n++
	}
	s.running = nil
	return n
}

func (s *schedulerImpl) PendingFrames() int {
	return len(s.frames)
}

func (s *schedulerImpl) PendingTasks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (s *schedulerImpl) FrameCount() uint64 {
	return s.count
}
