package pipeline

import (
	"context"

	"github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/item"
)

// ItemVisitor is applied to each item by an IteratingStage. A returned
// error aborts the stage.
type ItemVisitor[T any] func(context.Context, item.Item[T]) error

// IteratingStage applies a visitor to every item, in order, mutating items
// in place. It is the building block for per-item transforms that leave
// the collection's membership alone.
type IteratingStage[T any] struct {
	BaseStage[T]

	visit ItemVisitor[T]
}

// NewIteratingStage creates an iterating stage applying visit per item.
func NewIteratingStage[T any](id string, visit ItemVisitor[T]) *IteratingStage[T] {
	return &IteratingStage[T]{
		BaseStage: NewBaseStage[T](id, "IteratingStage"),
		visit:     visit,
	}
}

// Initialize validates that a visitor is configured.
func (s *IteratingStage[T]) Initialize() error {
	return s.InitializeWith(func() error {
		if s.visit == nil {
			return errors.Initialization(s.ID(), "item visitor can not be nil")
		}
		return nil
	})
}

func (s *IteratingStage[T]) Execute(ctx context.Context, items *[]item.Item[T]) error {
	return s.Run(ctx, items, func(ctx context.Context, items *[]item.Item[T]) error {
		for _, it := range *items {
			if err := s.visit(ctx, it); err != nil {
				return err
			}
		}
		return nil
	})
}

// FilteringStage walks the collection and keeps only the items its keep
// function accepts. Dropped items are removed in place; relative order of
// kept items is preserved.
type FilteringStage[T any] struct {
	BaseStage[T]

	keep ItemPredicate[T]
}

// NewFilteringStage creates a filtering stage retaining items accepted by
// keep.
func NewFilteringStage[T any](id string, keep ItemPredicate[T]) *FilteringStage[T] {
	return &FilteringStage[T]{
		BaseStage: NewBaseStage[T](id, "FilteringStage"),
		keep:      keep,
	}
}

// Initialize validates that a keep function is configured.
func (s *FilteringStage[T]) Initialize() error {
	return s.InitializeWith(func() error {
		if s.keep == nil {
			return errors.Initialization(s.ID(), "keep predicate can not be nil")
		}
		return nil
	})
}

func (s *FilteringStage[T]) Execute(ctx context.Context, items *[]item.Item[T]) error {
	return s.Run(ctx, items, func(_ context.Context, items *[]item.Item[T]) error {
		kept := (*items)[:0]
		for _, it := range *items {
			if s.keep(it) {
				kept = append(kept, it)
			}
		}
		*items = kept
		return nil
	})
}
