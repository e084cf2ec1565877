package pipeline

import (
	"context"

	"github.com/kbukum/pipekit/component"
	"github.com/kbukum/pipekit/item"
)

// Stage is the unit of processing: it consumes an item collection and
// mutates it in place. Elements may be added, removed, reordered, or
// individually transformed.
//
// Execute returns a processing failure (errors.IsProcessing) on any
// processing error. An initialized stage may be executed repeatedly and,
// unless documented otherwise, concurrently, provided each caller passes
// its own collection.
type Stage[T any] interface {
	component.Component

	// Execute processes the collection in place.
	Execute(ctx context.Context, items *[]item.Item[T]) error
}

// Pipeline is an ordered sequence of stages executed sequentially over one
// item collection. Every run appends one ComponentInfo provenance record
// to every item still present when the run completes.
type Pipeline[T any] interface {
	component.Component

	// Stages returns the contained stages in execution order.
	Stages() []Stage[T]

	// Execute runs each stage in order on the same collection.
	Execute(ctx context.Context, items *[]item.Item[T]) error
}

// ItemPredicate selects individual items.
type ItemPredicate[T any] func(item.Item[T]) bool

// CollectionPredicate gates stage execution on the whole collection.
type CollectionPredicate[T any] func([]item.Item[T]) bool

// AtLeast returns a collection predicate satisfied when the collection
// holds at least min items.
func AtLeast[T any](min int) CollectionPredicate[T] {
	return func(items []item.Item[T]) bool {
		return len(items) >= min
	}
}

// CollectionFactory produces the fresh collections that concurrency
// stages hand to their sub-pipelines.
type CollectionFactory[T any] func() []item.Item[T]

// NewCollection is the default collection factory: an empty growable
// slice.
func NewCollection[T any]() []item.Item[T] {
	return nil
}
