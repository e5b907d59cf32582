/*
scheduler.go - Run history retention scheduler

PURPOSE:
  Periodically trims the run history so it keeps at most MaxRuns saved
  simulations. The oldest runs are deleted first.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Prunes once immediately on Start
  - MaxRuns <= 0 keeps everything

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - MaxRuns:       Runs to keep (default: 500)
  - Enabled:       Whether scheduler is active (default: true)

USAGE:
  scheduler := NewRetentionScheduler(store)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - engine/store.go: RunStore
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/warp/sales-simulator/engine"
)

// RetentionScheduler deletes runs beyond MaxRuns.
type RetentionScheduler struct {
	Store         engine.RunStore
	CheckInterval time.Duration
	MaxRuns       int
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewRetentionScheduler creates a new scheduler.
func NewRetentionScheduler(store engine.RunStore) *RetentionScheduler {
	return &RetentionScheduler{
		Store:         store,
		CheckInterval: 1 * time.Hour,
		MaxRuns:       500,
		Enabled:       true,
	}
}

// Start begins the scheduler.
func (rs *RetentionScheduler) Start() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.Enabled || rs.MaxRuns <= 0 {
		log.Println("[Retention] Disabled, not starting")
		return
	}

	if rs.ticker != nil {
		return
	}

	rs.stop = make(chan bool)
	rs.ticker = time.NewTicker(rs.CheckInterval)
	rs.wg.Add(1)

	go rs.run()

	log.Printf("[Retention] Started: keeping %d runs, check interval %v", rs.MaxRuns, rs.CheckInterval)
}

// Stop stops the scheduler.
func (rs *RetentionScheduler) Stop() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.ticker != nil {
		rs.ticker.Stop()
		close(rs.stop)
		rs.wg.Wait()
		rs.ticker = nil
		log.Println("[Retention] Stopped")
	}
}

func (rs *RetentionScheduler) run() {
	defer rs.wg.Done()

	rs.prune(context.Background())

	for {
		select {
		case <-rs.ticker.C:
			rs.prune(context.Background())
		case <-rs.stop:
			return
		}
	}
}

// prune deletes every run past the newest MaxRuns and returns how many.
func (rs *RetentionScheduler) prune(ctx context.Context) int {
	if rs.MaxRuns <= 0 {
		return 0
	}

	runs, err := rs.Store.ListRuns(ctx, 0)
	if err != nil {
		log.Printf("[Retention] Error listing runs: %v", err)
		return 0
	}
	if len(runs) <= rs.MaxRuns {
		return 0
	}

	deleted := 0
	for _, run := range runs[rs.MaxRuns:] {
		if err := rs.Store.DeleteRun(ctx, run.ID); err != nil && !engine.IsNotFound(err) {
			log.Printf("[Retention] Error deleting run %s: %v", run.ID, err)
			continue
		}
		deleted++
	}

	log.Printf("[Retention] Deleted %d runs, kept %d", deleted, rs.MaxRuns)
	return deleted
}
