package analysis

import (
	"runtime"
	"sync"
)

// forEachParallel applies fn to every result using a pool of workers.
// Each call writes only to its own result and reads the shared slice, so no
// further synchronization is needed; fn must not mutate other results.
func (a *Analyzer) forEachParallel(results []*InteractionResult, fn func([]*InteractionResult, *InteractionResult)) {
	workers := a.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	items := make(chan *InteractionResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for r := range items {
				fn(results, r)
			}
		}()
	}

	for _, r := range results {
		items <- r
	}
	close(items)
	wg.Wait()
}
