// Package offload runs blocking work on a bounded set of goroutines so that
// request handlers can wait on it without holding their own goroutine busy
// on database I/O.
package offload

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"

	"github.com/yungbote/routesettings-backend/internal/platform/logger"
)

type Pool struct {
	log *logger.Logger
	sem *semaphore.Weighted
}

func NewPool(log *logger.Logger, workers int) *Pool {
	if workers <= 0 {
		workers = 8
	}
	return &Pool{
		log: log.With("component", "OffloadPool"),
		sem: semaphore.NewWeighted(int64(workers)),
	}
}

// Do runs fn on a pool goroutine and waits for it or for ctx.
// fn keeps running after ctx is cancelled; its result is dropped.
func (p *Pool) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() {
		defer p.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				p.log.Error("offloaded task panicked", "panic", r)
				done <- fmt.Errorf("offloaded task panicked: %v", r)
			}
		}()
		done <- fn(ctx)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Value is Do for functions that produce a result.
func Value[T any](ctx context.Context, p *Pool, fn func(ctx context.Context) (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	results := make(chan result, 1)
	err := p.Do(ctx, func(ctx context.Context) error {
		v, err := fn(ctx)
		results <- result{v: v, err: err}
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	r := <-results
	return r.v, r.err
}
