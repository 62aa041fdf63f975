// Package batcher provides a generic buffered batch processor with rate limiting.
package batcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// ErrStopped is returned by Add after Stop.
var ErrStopped = errors.New("batcher stopped")

// Batcher buffers items and flushes them either by size or interval. Flush failures are logged
// and collected; Stop reports them.
type Batcher[T any] struct {
	flushCallback func(context.Context, []T) error
	itemsCh       chan T
	flushSize     int
	flushInterval time.Duration
	rl            ratelimit.Limiter
	logger        *zap.Logger

	wg   sync.WaitGroup
	stop chan struct{}
	once sync.Once

	mu   sync.Mutex
	errs []error
}

// New constructs a Batcher. A non-positive rps disables flush pacing.
func New[T any](logger *zap.Logger, flushCallback func(context.Context, []T) error, flushSize int, flushInterval time.Duration, rps int) *Batcher[T] {
	if flushSize <= 0 {
		flushSize = 1
	}
	rl := ratelimit.NewUnlimited()
	if rps > 0 {
		rl = ratelimit.New(rps)
	}
	return &Batcher[T]{
		logger:        logger,
		flushCallback: flushCallback,
		itemsCh:       make(chan T, flushSize*2),
		flushSize:     flushSize,
		flushInterval: flushInterval,
		rl:            rl,
		stop:          make(chan struct{}),
	}
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop flushes what is buffered, waits for the loop to exit and returns every flush error
// seen so far. It is safe to call more than once.
func (b *Batcher[T]) Stop() error {
	b.once.Do(func() { close(b.stop) })
	b.wg.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	return errors.Join(b.errs...)
}

// Add queues an item for batching, respecting context cancellation.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return ErrStopped
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.stop:
		return ErrStopped
	case b.itemsCh <- item:
		return nil
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()

	buf := make([]T, 0, b.flushSize)

	flush := func(ctx context.Context) {
		if len(buf) == 0 {
			return
		}

		b.rl.Take()
		err := b.flushCallback(ctx, buf)
		if err != nil {
			b.logger.Error("batch not flushed", zap.Int("size", len(buf)), zap.Error(err))
			b.mu.Lock()
			b.errs = append(b.errs, err)
			b.mu.Unlock()
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		}
		buf = buf[:0]
	}

	// drain moves whatever Add already queued into the buffer before the final flush.
	drain := func() {
		for {
			select {
			case item := <-b.itemsCh:
				buf = append(buf, item)
				if len(buf) >= b.flushSize {
					flush(context.WithoutCancel(ctx))
				}
			default:
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			drain()
			flush(context.WithoutCancel(ctx))
			return

		case <-b.stop:
			drain()
			flush(context.WithoutCancel(ctx))
			return

		case item := <-b.itemsCh:
			buf = append(buf, item)
			if len(buf) >= b.flushSize {
				flush(ctx)
			}

		case <-ticker.C:
			flush(ctx)
		}
	}
}
