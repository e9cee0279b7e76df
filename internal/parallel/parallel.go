// Package parallel fans independent trials out over goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Workers resolves a requested worker count: n <= 0 means one per
// available CPU.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// Map calls fn for every index in [0, n) using up to workers goroutines and
// returns the results in index order. Each index is handled by exactly one
// goroutine, so fn may own per-index state such as a private generator.
func Map[T any](n, workers int, fn func(i int) T) []T {
	if n <= 0 {
		return nil
	}
	results := make([]T, n)

	workers = Workers(workers)
	if workers > n {
		workers = n
	}
	if workers == 1 {
		for i := 0; i < n; i++ {
			results[i] = fn(i)
		}
		return results
	}

	var wg sync.WaitGroup
	chunkSize := (n + workers - 1) / workers

	for w := 0; w < workers; w++ {
		chunkStart := w * chunkSize
		chunkEnd := min(chunkStart+chunkSize, n)
		if chunkStart >= chunkEnd {
			break
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				results[i] = fn(i)
			}
		}(chunkStart, chunkEnd)
	}

	wg.Wait()
	return results
}
