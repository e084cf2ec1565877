package pipeline

import (
	"context"
	"sort"

	"github.com/kbukum/pipekit/item"
)

// ItemOrderingStrategy produces a reordered view of a collection. The
// input slice must not be mutated; implementations return a new or the
// same slice in the desired order.
type ItemOrderingStrategy[T any] func(items []item.Item[T]) []item.Item[T]

// NoOpOrderingStrategy returns the collection unchanged.
func NoOpOrderingStrategy[T any]() ItemOrderingStrategy[T] {
	return func(items []item.Item[T]) []item.Item[T] {
		return items
	}
}

// OrderByFirstItemID orders items by their first identifier, ascending.
// Items without an identifier sort last, keeping their relative order.
func OrderByFirstItemID[T any]() ItemOrderingStrategy[T] {
	return func(items []item.Item[T]) []item.Item[T] {
		ordered := append([]item.Item[T](nil), items...)
		sort.SliceStable(ordered, func(i, j int) bool {
			a, aok := firstID(ordered[i])
			b, bok := firstID(ordered[j])
			if aok != bok {
				return aok
			}
			return a < b
		})
		return ordered
	}
}

func firstID[T any](it item.Item[T]) (item.ID, bool) {
	ids := item.Get[item.ID](it.Metadata())
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// ItemOrderingStage reorders the collection with a pluggable strategy.
// The default strategy leaves the order unchanged.
type ItemOrderingStage[T any] struct {
	BaseStage[T]

	strategy ItemOrderingStrategy[T]
}

// NewItemOrderingStage creates an ordering stage with the no-op strategy.
func NewItemOrderingStage[T any](id string) *ItemOrderingStage[T] {
	return &ItemOrderingStage[T]{
		BaseStage: NewBaseStage[T](id, "ItemOrderingStage"),
		strategy:  NoOpOrderingStrategy[T](),
	}
}

// SetOrderingStrategy replaces the ordering strategy.
func (s *ItemOrderingStage[T]) SetOrderingStrategy(strategy ItemOrderingStrategy[T]) error {
	if err := s.CheckSettable(); err != nil {
		return err
	}
	if strategy == nil {
		strategy = NoOpOrderingStrategy[T]()
	}
	s.strategy = strategy
	return nil
}

func (s *ItemOrderingStage[T]) Execute(ctx context.Context, items *[]item.Item[T]) error {
	return s.Run(ctx, items, func(_ context.Context, items *[]item.Item[T]) error {
		*items = s.strategy(*items)
		return nil
	})
}
