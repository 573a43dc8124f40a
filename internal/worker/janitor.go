package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Sweeper drops expired state and reports how many entries were removed.
type Sweeper interface {
	Sweep(now time.Time) int
}

// Target is a named sweeper with an optional callback receiving the removed count.
type Target struct {
	Name    string
	Sweeper Sweeper
	OnSwept func(removed int)
}

// Janitor periodically sweeps in-memory caches using a small worker pool.
type Janitor struct {
	targets  []Target
	interval time.Duration
	workers  int
	logger   *slog.Logger
	now      func() time.Time

	jobs   chan Target
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewJanitor constructs a janitor sweeping targets every interval.
func NewJanitor(targets []Target, interval time.Duration, workers int, logger *slog.Logger) *Janitor {
	if workers <= 0 {
		workers = 1
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Janitor{
		targets:  targets,
		interval: interval,
		workers:  workers,
		logger:   logger,
		now:      time.Now,
		jobs:     make(chan Target, len(targets)),
	}
}

// Start launches background sweeping.
func (j *Janitor) Start(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.jobs = make(chan Target, len(j.targets))

	for i := 0; i < j.workers; i++ {
		j.wg.Add(1)
		go j.worker(runCtx)
	}

	j.wg.Add(1)
	go j.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (j *Janitor) Stop() {
	j.mu.Lock()
	if j.cancel != nil {
		j.cancel()
		j.cancel = nil
	}
	j.mu.Unlock()

	j.wg.Wait()
}

func (j *Janitor) dispatch(ctx context.Context) {
	defer j.wg.Done()
	defer close(j.jobs)
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, t := range j.targets {
				select {
				case <-ctx.Done():
					return
				case j.jobs <- t:
				}
			}
		}
	}
}

func (j *Janitor) worker(ctx context.Context) {
	defer j.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case target, ok := <-j.jobs:
			if !ok {
				return
			}
			j.sweep(target)
		}
	}
}

func (j *Janitor) sweep(t Target) {
	removed := t.Sweeper.Sweep(j.now())
	if t.OnSwept != nil {
		t.OnSwept(removed)
	}
	if removed > 0 {
		j.logger.Debug("swept expired entries", slog.String("target", t.Name), slog.Int("removed", removed))
	}
}
