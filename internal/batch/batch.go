// Package batch runs a per-file job over many GOD files with a worker pool.
package batch

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// progressInterval is how often a running batch reports progress.
var progressInterval = 2 * time.Second

// Job processes one file. Each call owns its decode; jobs share nothing.
type Job func(path string) error

// Result holds the outcome of processing one file.
type Result struct {
	Path     string
	Err      error
	Duration time.Duration
}

// Run processes paths with the given number of workers and returns one
// result per path, in input order. workers <= 0 uses runtime.NumCPU.
// log may be nil.
func Run(paths []string, workers int, log *zap.Logger, job Job) []Result {
	if log == nil {
		log = zap.NewNop()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, max(len(paths), 1))

	total := len(paths)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := processed.Load(); p > 0 {
					log.Info("batch progress",
						zap.Int64("done", p),
						zap.Int("total", total),
						zap.Float64("files_per_sec", float64(p)/time.Since(start).Seconds()))
				}
			}
		}
	}()

	// Worker pool
	work := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = runOne(paths[idx], job)
				processed.Add(1)
			}
		}()
	}

	for i := range paths {
		work <- i
	}
	close(work)

	wg.Wait()
	close(done)

	log.Debug("batch finished",
		zap.Int("files", total),
		zap.Int("workers", workers),
		zap.Int("failed", Failed(results)),
		zap.Duration("elapsed", time.Since(start)))

	return results
}

func runOne(path string, job Job) Result {
	start := time.Now()
	err := job(path)
	return Result{Path: path, Err: err, Duration: time.Since(start)}
}

// Failed counts results with an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
