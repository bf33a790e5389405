package voice

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// SinkFunc receives a decoded buffer at the moment its scheduled start time is
// reached. Delivery order follows scheduled start order.
type SinkFunc func(buf *Buffer)

// Scheduler plays decoded audio chunks back to back on a monotonic playback
// clock: each chunk starts exactly when the previous one ends, never earlier
// than the clock's current position.
type Scheduler struct {
	clk   clock.Clock
	epoch time.Time
	sink  SinkFunc

	mu        sync.Mutex
	nextStart time.Duration
	scheduled map[*ScheduledBuffer]struct{}
	stopped   bool
}

// ScheduledBuffer is the handle of one not-yet-finished playback buffer
type ScheduledBuffer struct {
	Start time.Duration
	buf   *Buffer

	timer *clock.Timer
	stop  chan struct{}
	once  sync.Once
}

// Stop cancels the buffer if it has not finished playing
func (h *ScheduledBuffer) Stop() {
	h.once.Do(func() {
		h.timer.Stop()
		close(h.stop)
	})
}

// NewScheduler creates a scheduler whose playback clock starts at zero now
func NewScheduler(clk clock.Clock, sink SinkFunc) *Scheduler {
	return &Scheduler{
		clk:       clk,
		epoch:     clk.Now(),
		sink:      sink,
		scheduled: make(map[*ScheduledBuffer]struct{}),
	}
}

// Now returns the current position of the playback clock
func (s *Scheduler) Now() time.Duration {
	return s.clk.Now().Sub(s.epoch)
}

// Schedule enqueues buf for gapless playback and returns its start position.
// The cursor never moves backwards: if decoding lagged behind real time the
// chunk starts at the clock's current position instead of in the past.
func (s *Scheduler) Schedule(buf *Buffer) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return s.nextStart
	}

	now := s.Now()
	if s.nextStart < now {
		s.nextStart = now
	}
	start := s.nextStart
	s.nextStart += buf.Duration()

	h := &ScheduledBuffer{
		Start: start,
		buf:   buf,
		timer: s.clk.Timer(start - now),
		stop:  make(chan struct{}),
	}
	s.scheduled[h] = struct{}{}
	go s.run(h, buf.Duration())
	return start
}

// run waits for the buffer's start time, delivers it, then retires the handle
// once playback completes.
func (s *Scheduler) run(h *ScheduledBuffer, d time.Duration) {
	select {
	case <-h.timer.C:
	case <-h.stop:
		s.remove(h)
		return
	}

	s.sink(h.buf)

	done := s.clk.Timer(d)
	defer done.Stop()
	select {
	case <-done.C:
	case <-h.stop:
	}
	s.remove(h)
}

func (s *Scheduler) remove(h *ScheduledBuffer) {
	s.mu.Lock()
	delete(s.scheduled, h)
	s.mu.Unlock()
}

// Pending returns the number of scheduled, not-yet-finished buffers
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.scheduled)
}

// StopAll cancels every scheduled buffer and rejects further scheduling
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	s.stopped = true
	handles := make([]*ScheduledBuffer, 0, len(s.scheduled))
	for h := range s.scheduled {
		handles = append(handles, h)
	}
	s.mu.Unlock()

	for _, h := range handles {
		h.Stop()
	}
}
