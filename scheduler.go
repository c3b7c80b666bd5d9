package qbloch

import (
	"context"
	"sync"
	"time"
)

/*
Scheduler is the host's per-frame callback hook, the equivalent of a browser's
requestAnimationFrame. Each requested callback runs once, on the next frame.
*/
type Scheduler interface {
	RequestFrame(fn func())
}

// ManualScheduler holds requested callbacks until Step is called.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []func()
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) RequestFrame(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, fn)
}

/*
Step runs the callbacks that were pending when it was called and returns how
many ran. Callbacks requested while stepping wait for the next Step, the same
way a frame callback that requests another frame does not run twice in one
frame.
*/
func (s *ManualScheduler) Step() int {
	s.mu.Lock()
	frame := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, fn := range frame {
		fn()
	}

	return len(frame)
}

// Pending returns the number of callbacks waiting for the next Step.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

/*
TickerScheduler runs frame callbacks on a single goroutine at a fixed interval
until its context is cancelled. Callbacks never overlap.
*/
type TickerScheduler struct {
	mu       sync.Mutex
	pending  []func()
	interval time.Duration
	done     chan struct{}
}

// NewTickerScheduler starts the frame loop.
func NewTickerScheduler(ctx context.Context, interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}

	s := &TickerScheduler{
		interval: interval,
		done:     make(chan struct{}),
	}

	go s.run(ctx)

	return s
}

func (s *TickerScheduler) RequestFrame(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, fn)
}

// Done is closed once the frame loop has exited.
func (s *TickerScheduler) Done() <-chan struct{} {
	return s.done
}

func (s *TickerScheduler) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			frame := s.pending
			s.pending = nil
			s.mu.Unlock()

			for _, fn := range frame {
				fn()
			}
		}
	}
}
