// Package pool provides a small order-preserving worker pool used to fan
// independent jobs out across goroutines and join their results.
package pool

import (
	"runtime"
	"sync"
)

// Map runs fn over every job using at most workers goroutines and returns
// the results in the same order as the input jobs, regardless of completion
// order. Jobs share no state, so no locking beyond the join is needed; a
// job that panics is not recovered, matching plain sequential behavior.
// If workers is 0 or negative it defaults to GOMAXPROCS, and is never larger
// than the number of jobs.
func Map[Job any, Result any](jobs []Job, workers int, fn func(Job) Result) []Result {
	if len(jobs) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	type indexed struct {
		pos int
		job Job
	}

	in := make(chan indexed, len(jobs))
	results := make([]Result, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range in {
				results[item.pos] = fn(item.job)
			}
		}()
	}

	for i, j := range jobs {
		in <- indexed{pos: i, job: j}
	}
	close(in)
	wg.Wait()

	return results
}
