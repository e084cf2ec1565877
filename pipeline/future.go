package pipeline

import (
	"context"

	"github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/item"
)

// Future is the pending result of running one pipeline over one
// collection. It bridges pipeline execution to the executor abstraction so
// concurrently started sub-pipelines can be resolved later.
type Future[T any] struct {
	done  chan struct{}
	items []item.Item[T]
	err   error
}

// Submit schedules p over items on the given executor and returns a handle
// to the eventual result. The pipeline mutates and returns the same
// collection it was given.
func Submit[T any](ctx context.Context, exec Executor, p Pipeline[T], items []item.Item[T]) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	exec.Execute(func() {
		defer close(f.done)
		f.err = p.Execute(ctx, &items)
		f.items = items
	})
	return f
}

// Completed returns an already-resolved future holding items. Used where a
// leg has no pipeline configured and its result is the identity.
func Completed[T any](items []item.Item[T]) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), items: items}
	close(f.done)
	return f
}

// Await blocks until the result is available or ctx is done.
//
// A processing failure from the pipeline is returned unchanged so callers
// can match on the real cause; any other failure is wrapped as a
// processing failure. Cancellation while waiting also surfaces as a
// processing failure, never silently.
func (f *Future[T]) Await(ctx context.Context) ([]item.Item[T], error) {
	select {
	case <-f.done:
	case <-ctx.Done():
		return nil, errors.StageProcessing("", "interrupted while awaiting pipeline result").WithCause(ctx.Err())
	}

	if f.err != nil {
		if errors.IsProcessing(f.err) {
			return nil, f.err
		}
		return nil, errors.StageProcessing("", "pipeline execution failed").WithCause(f.err)
	}
	return f.items, nil
}
