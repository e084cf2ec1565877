package pipeline

import (
	"context"
	"time"

	"github.com/kbukum/pipekit/component"
	"github.com/kbukum/pipekit/item"
)

// BaseStage is the embeddable conditional stage base. It carries the
// component lifecycle and an optional collection predicate gating the
// stage body; concrete stages call Run from their Execute.
type BaseStage[T any] struct {
	component.Base

	predicate CollectionPredicate[T]
}

// NewBaseStage creates a stage base with the given identifier and type
// name. The collection predicate defaults to always-true.
func NewBaseStage[T any](id, kind string) BaseStage[T] {
	return BaseStage[T]{Base: component.NewBase(id, kind)}
}

// SetCollectionPredicate replaces the predicate gating the stage body.
// A nil predicate means the body always runs.
func (b *BaseStage[T]) SetCollectionPredicate(p CollectionPredicate[T]) error {
	if err := b.CheckSettable(); err != nil {
		return err
	}
	b.predicate = p
	return nil
}

// CollectionGate reports whether the stage body would run for the given
// collection.
func (b *BaseStage[T]) CollectionGate(items []item.Item[T]) bool {
	return b.predicate == nil || b.predicate(items)
}

// Run applies the stage execution contract around body: precondition
// check, predicate gate, timing, and provenance stamping. When the
// predicate rejects the collection the body is skipped but a
// ComponentInfo is still attached to every item. On a body failure the
// error propagates and nothing is stamped.
func (b *BaseStage[T]) Run(ctx context.Context, items *[]item.Item[T], body func(context.Context, *[]item.Item[T]) error) error {
	if err := b.CheckExecutable(); err != nil {
		return err
	}

	start := time.Now()
	if b.CollectionGate(*items) {
		if err := body(ctx, items); err != nil {
			return err
		}
	}

	info := NewComponentInfo(b.ID(), b.Type(), start, time.Now())
	for _, it := range *items {
		it.Metadata().Put(info)
	}
	return nil
}
