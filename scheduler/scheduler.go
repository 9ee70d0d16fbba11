package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Scheduler runs a task at a fixed interval until it is stopped or its
// context is cancelled. Ticks that fire while a task run is still in
// progress are dropped by the underlying ticker.
type Scheduler struct {
	name     string
	interval time.Duration
	task     func(context.Context)
	logger   zerolog.Logger

	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// New creates a new Scheduler instance
func New(name string, interval time.Duration, task func(context.Context)) *Scheduler {
	return &Scheduler{
		name:     name,
		interval: interval,
		task:     task,
		logger:   log.With().Str("component", "scheduler").Str("task", name).Logger(),
	}
}

// Start registers the periodic task. A second Start while running is ignored.
func (s *Scheduler) Start(ctx context.Context, firstRunImmediately bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true
	s.logger.Debug().Dur("interval", s.interval).Msg("Periodic task registered")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if firstRunImmediately {
			s.task(ctx)
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.task(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop deregisters the periodic task and waits for the loop to exit
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.running = false
	s.logger.Debug().Msg("Periodic task deregistered")
}

// IsRunning returns true while the task is registered
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Name returns the task name used in logs
func (s *Scheduler) Name() string {
	return s.name
}
