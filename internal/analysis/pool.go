package analysis

import (
	"context"
	"sync"
	"time"

	"rtp/internal/config"
	"rtp/internal/domain"
	"rtp/internal/ui"
)

// WorkerPool analyzes many suite files in parallel. Files are partitioned
// across workers up front by the scheduler so a run always processes a given
// file on the same worker.
type WorkerPool struct {
	config    *config.Config
	runner    *Runner
	scheduler Scheduler
	progress  *ui.ProgressBar
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner *Runner, scheduler Scheduler) *WorkerPool {
	return &WorkerPool{
		config:    cfg,
		runner:    runner,
		scheduler: scheduler,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Analyze processes all files (no fail-fast).
func (wp *WorkerPool) Analyze(paths []string) ([]domain.SuiteResult, time.Duration, error) {
	return wp.AnalyzeWithOptions(paths, false)
}

// AnalyzeWithOptions processes files with optional fail-fast (stop at the
// first suite carrying error-severity diagnostics).
func (wp *WorkerPool) AnalyzeWithOptions(paths []string, failFast bool) ([]domain.SuiteResult, time.Duration, error) {
	if len(paths) == 0 {
		return nil, 0, nil
	}
	if !failFast {
		return wp.analyzeAll(paths)
	}
	return wp.analyzeFailFast(paths)
}

func (wp *WorkerPool) workerCount() int {
	n := wp.config.Processors
	if n <= 0 {
		n = 1
	}
	return n
}

func (wp *WorkerPool) analyzeAll(paths []string) ([]domain.SuiteResult, time.Duration, error) {
	workerCount := wp.workerCount()
	batches := wp.scheduler.Schedule(paths, workerCount)
	results := make(chan domain.SuiteResult, len(paths))

	var mu sync.Mutex
	var completed, clean, flagged int
	startTime := time.Now()

	var wg sync.WaitGroup
	for _, batch := range batches {
		wg.Add(1)
		go func(batch []string) {
			defer wg.Done()
			for _, path := range batch {
				result := wp.runner.Run(path)
				results <- result
				mu.Lock()
				completed++
				if result.Clean() {
					clean++
				} else {
					flagged++
				}
				if wp.progress != nil {
					wp.progress.Update(completed, clean, flagged)
				}
				mu.Unlock()
			}
		}(batch)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.SuiteResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}

func (wp *WorkerPool) analyzeFailFast(paths []string) ([]domain.SuiteResult, time.Duration, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerCount := wp.workerCount()
	batches := wp.scheduler.Schedule(paths, workerCount)
	results := make(chan domain.SuiteResult, len(paths))

	var mu sync.Mutex
	var completed, clean, flagged int
	var seenFlagged bool
	startTime := time.Now()

	var wg sync.WaitGroup
	for _, batch := range batches {
		wg.Add(1)
		go func(batch []string) {
			defer wg.Done()
			for _, path := range batch {
				select {
				case <-ctx.Done():
					return
				default:
				}
				result := wp.runner.Run(path)
				mu.Lock()
				done := seenFlagged
				mu.Unlock()
				if done {
					return
				}
				results <- result
				mu.Lock()
				completed++
				if result.Clean() {
					clean++
				} else {
					flagged++
				}
				if wp.progress != nil {
					wp.progress.Update(completed, clean, flagged)
				}
				if !result.Clean() {
					seenFlagged = true
					cancel()
				}
				mu.Unlock()
			}
		}(batch)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.SuiteResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}
