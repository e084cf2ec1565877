package pipeline

import (
	"context"

	"github.com/kbukum/pipekit/item"
	"github.com/kbukum/pipekit/resilience"
)

// WithRetry wraps a stage with retry on transient failures. The
// collection is snapshotted before the first attempt and restored after
// each failed one, so every attempt sees the same input regardless of
// how far the previous attempt got.
func WithRetry[T any](stage Stage[T], cfg resilience.RetryConfig) Stage[T] {
	return &retryingStage[T]{Stage: stage, cfg: cfg}
}

type retryingStage[T any] struct {
	Stage[T]
	cfg resilience.RetryConfig
}

func (s *retryingStage[T]) Execute(ctx context.Context, items *[]item.Item[T]) error {
	snapshot := make([]item.Item[T], len(*items))
	for i, it := range *items {
		snapshot[i] = it.Copy()
	}

	return resilience.RetryFunc(ctx, s.cfg, func() error {
		err := s.Stage.Execute(ctx, items)
		if err != nil {
			restored := make([]item.Item[T], len(snapshot))
			for i, it := range snapshot {
				restored[i] = it.Copy()
			}
			*items = restored
		}
		return err
	})
}
