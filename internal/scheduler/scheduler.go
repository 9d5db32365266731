package scheduler

import (
	"sync"
	"time"
)

// Scheduler runs a task on a fixed interval in a background goroutine. The
// first run happens as soon as Start is called, so a freshly started process
// sweeps once before the first tick.
type Scheduler struct {
	interval time.Duration
	task     func()

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// New creates a Scheduler; nothing runs until Start.
func New(interval time.Duration, task func()) *Scheduler {
	return &Scheduler{
		interval: interval,
		task:     task,
	}
}

// Start launches the loop. Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(s.stop, s.done)
}

func (s *Scheduler) loop(stop, done chan struct{}) {
	defer close(done)

	s.task()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.task()
		}
	}
}

// Stop halts the loop and waits for any in-progress run to finish. Stopping a
// scheduler that never started is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// IsRunning reports whether the loop is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}
