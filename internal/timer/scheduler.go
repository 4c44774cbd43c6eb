package timer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

type Handle interface {
	// Cancel reports whether the callback was prevented from running.
	Cancel() bool
}

type Scheduler interface {
	After(d time.Duration, fn func()) Handle
}

// LoopScheduler delivers callbacks as jobs on a single channel, so every
// callback runs on the goroutine executing Run.
type LoopScheduler struct {
	jobs     chan func()
	done     chan struct{}
	stopOnce sync.Once
}

func NewLoopScheduler(buffer int) *LoopScheduler {
	return &LoopScheduler{
		jobs: make(chan func(), buffer),
		done: make(chan struct{}),
	}
}

// Post enqueues fn to run on the loop goroutine. It is dropped once the
// loop has stopped.
func (s *LoopScheduler) Post(fn func()) {
	select {
	case s.jobs <- fn:
	case <-s.done:
	}
}

type loopHandle struct {
	t         *time.Timer
	cancelled atomic.Bool
	fired     atomic.Bool
}

func (h *loopHandle) Cancel() bool {
	if h.fired.Load() {
		return false
	}
	h.cancelled.Store(true)
	h.t.Stop()
	return true
}

func (s *LoopScheduler) After(d time.Duration, fn func()) Handle {
	h := &loopHandle{}
	h.t = time.AfterFunc(d, func() {
		s.Post(func() {
			// Cancelled after the timer fired but before the loop picked the job up.
			if h.cancelled.Load() {
				return
			}
			h.fired.Store(true)
			fn()
		})
	})
	return h
}

// Run drains jobs until ctx is done.
func (s *LoopScheduler) Run(ctx context.Context) error {
	defer s.stopOnce.Do(func() { close(s.done) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case job := <-s.jobs:
			job()
		}
	}
}

// ManualScheduler is a virtual clock. Callbacks run synchronously inside
// Advance, in due-time order.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualHandle
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

type manualHandle struct {
	s    *ManualScheduler
	due  time.Duration
	seq  int
	fn   func()
	done bool
}

func (h *manualHandle) Cancel() bool {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	if h.done {
		return false
	}
	h.done = true
	return true
}

func (s *ManualScheduler) After(d time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	h := &manualHandle{s: s, due: s.now + d, seq: s.seq, fn: fn}
	s.pending = append(s.pending, h)
	return h
}

func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending counts callbacks that are neither run nor cancelled.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, h := range s.pending {
		if !h.done {
			n++
		}
	}
	return n
}

func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		h := s.next(target)
		if h == nil {
			break
		}
		h.fn()
	}

	s.mu.Lock()
	s.now = target
	s.compact()
	s.mu.Unlock()
}

func (s *ManualScheduler) next(target time.Duration) *manualHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	var best *manualHandle
	for _, h := range s.pending {
		if h.done || h.due > target {
			continue
		}
		if best == nil || h.due < best.due || (h.due == best.due && h.seq < best.seq) {
			best = h
		}
	}
	if best != nil {
		best.done = true
		s.now = best.due
	}
	return best
}

func (s *ManualScheduler) compact() {
	live := s.pending[:0]
	for _, h := range s.pending {
		if !h.done {
			live = append(live, h)
		}
	}
	s.pending = live
}
