// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map runs fn over items with at most workerCount concurrent calls and returns the results in
// item order, independent of completion order. The first error cancels the remaining work.
func Map[T, R any](
	ctx context.Context,
	workerCount int,
	items []T,
	fn func(context.Context, T) (R, error),
) ([]R, error) {
	if workerCount <= 0 {
		workerCount = 1
	}

	results := make([]R, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount)

	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := fn(gctx, item)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
