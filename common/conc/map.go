// Package conc provides small concurrency helpers shared across the
// pipelines: a bounded, order-preserving concurrent map.
package conc

import (
	"context"
	"sync"
)

// Unbounded disables the concurrency cap: every element runs in its own
// goroutine at once.
const Unbounded = 0

// Map applies fn to every element of items concurrently, running at most
// limit calls at a time (Unbounded for no cap), and returns the results in
// input order regardless of completion order.
//
// The first error returned by fn cancels the remaining in-flight calls via
// the derived context and is returned; results from completed calls are
// discarded in that case. Callers that want per-element degradation instead
// of batch failure should absorb errors inside fn and return a zero value.
func Map[T, R any](ctx context.Context, items []T, limit int, fn func(ctx context.Context, item T) (R, error)) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var sem chan struct{}
	if limit > 0 {
		sem = make(chan struct{}, limit)
	}

	results := make([]R, len(items))
	errs := make(chan error, 1)

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()

			if sem != nil {
				select {
				case sem <- struct{}{}:
					defer func() { <-sem }()
				case <-ctx.Done():
					return
				}
			}

			r, err := fn(ctx, item)
			if err != nil {
				select {
				case errs <- err:
					cancel()
				default:
				}
				return
			}
			results[i] = r
		}(i, item)
	}
	wg.Wait()

	select {
	case err := <-errs:
		return nil, err
	default:
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
