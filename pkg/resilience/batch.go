// Package resilience contains concurrency primitives for bounded,
// backpressured execution of I/O-bound sub-operations.
package resilience

import (
	"context"
	"sync"
)

// IndexedError reports the lowest failing index of a batch run.
type IndexedError struct {
	Index int
	Err   error
}

func (e *IndexedError) Error() string { return e.Err.Error() }

func (e *IndexedError) Unwrap() error { return e.Err }

// RunBatches executes fn for every index in [0, total) in batches of at
// most batchSize concurrent calls. The whole batch must resolve before the
// next one is issued, which bounds in-flight work without per-task
// coordination. batchSize of one or less runs sequentially.
//
// If any call fails, no further batch is started and the error with the
// lowest index is returned as an *IndexedError. Calls already in flight
// within the failing batch run to completion.
func RunBatches(ctx context.Context, total, batchSize int, fn func(ctx context.Context, index int) error) error {
	if batchSize <= 1 {
		batchSize = 1
	}

	for start := 0; start < total; start += batchSize {
		end := start + batchSize
		if end > total {
			end = total
		}

		errs := make([]error, end-start)
		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(index int) {
				defer wg.Done()
				errs[index-start] = fn(ctx, index)
			}(i)
		}
		wg.Wait()

		for offset, err := range errs {
			if err != nil {
				return &IndexedError{Index: start + offset, Err: err}
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
