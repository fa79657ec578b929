package game

import (
	"sync"
	"time"
)

// Scheduler runs a callback at a fixed interval until the returned handle
// is canceled.
type Scheduler interface {
	Schedule(interval time.Duration, fn func()) Handle
}

type Handle interface {
	Cancel()
}

// TickerScheduler drives callbacks from a time.Ticker in its own goroutine.
type TickerScheduler struct{}

type tickerHandle struct {
	done chan struct{}
	once sync.Once
}

func (h *tickerHandle) Cancel() {
	h.once.Do(func() {
		close(h.done)
	})
}

func (TickerScheduler) Schedule(interval time.Duration, fn func()) Handle {
	h := &tickerHandle{done: make(chan struct{})}

	t := time.NewTicker(interval)
	go func() {
		defer t.Stop()

		for {
			select {
			case <-h.done:
				return
			case <-t.C:
			}

			select {
			case <-h.done:
				return
			default:
			}

			fn()
		}
	}()

	return h
}

// ManualScheduler never fires on its own. Fire runs every active callback
// once, which lets tests and replays step gravity deterministically.
type ManualScheduler struct {
	handles []*manualHandle

	*sync.Mutex
}

type manualHandle struct {
	s        *ManualScheduler
	interval time.Duration
	fn       func()
	canceled bool
}

func (h *manualHandle) Cancel() {
	h.s.Lock()
	defer h.s.Unlock()

	h.canceled = true
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{Mutex: new(sync.Mutex)}
}

func (s *ManualScheduler) Schedule(interval time.Duration, fn func()) Handle {
	s.Lock()
	defer s.Unlock()

	h := &manualHandle{s: s, interval: interval, fn: fn}
	s.handles = append(s.handles, h)

	return h
}

// Active returns the number of callbacks that have not been canceled.
func (s *ManualScheduler) Active() int {
	s.Lock()
	defer s.Unlock()

	return len(s.activeL())
}

// Scheduled returns the number of callbacks ever scheduled.
func (s *ManualScheduler) Scheduled() int {
	s.Lock()
	defer s.Unlock()

	return len(s.handles)
}

func (s *ManualScheduler) activeL() []*manualHandle {
	var active []*manualHandle
	for _, h := range s.handles {
		if !h.canceled {
			active = append(active, h)
		}
	}

	return active
}

// Fire runs each active callback once and returns how many ran.
func (s *ManualScheduler) Fire() int {
	s.Lock()
	active := s.activeL()
	s.Unlock()

	for _, h := range active {
		h.fn()
	}

	return len(active)
}

// FireN calls Fire n times.
func (s *ManualScheduler) FireN(n int) {
	for i := 0; i < n; i++ {
		s.Fire()
	}
}
