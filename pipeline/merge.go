package pipeline

import "github.com/kbukum/pipekit/item"

// CollectionMergeStrategy folds result collections from sub-pipelines back
// into one target collection. The target is mutated in place; sources are
// consumed in the order given.
type CollectionMergeStrategy[T any] interface {
	Merge(target *[]item.Item[T], sources ...[]item.Item[T])
}

// SimpleCollectionMergeStrategy appends every source item to the target in
// source order. No deduplication.
type SimpleCollectionMergeStrategy[T any] struct{}

func (SimpleCollectionMergeStrategy[T]) Merge(target *[]item.Item[T], sources ...[]item.Item[T]) {
	for _, source := range sources {
		*target = append(*target, source...)
	}
}

// DeduplicatingItemIDMergeStrategy merges with first-writer-wins
// deduplication on item.ID metadata. The set of known identifiers is
// seeded from items already in the target; sources are then walked in a
// single left-to-right pass. An item sharing any identifier with an
// earlier item is dropped; items carrying no identifier are always kept.
type DeduplicatingItemIDMergeStrategy[T any] struct{}

func (DeduplicatingItemIDMergeStrategy[T]) Merge(target *[]item.Item[T], sources ...[]item.Item[T]) {
	seen := make(map[item.ID]struct{})
	for _, existing := range *target {
		for _, id := range item.Get[item.ID](existing.Metadata()) {
			seen[id] = struct{}{}
		}
	}

	for _, source := range sources {
		for _, candidate := range source {
			ids := item.Get[item.ID](candidate.Metadata())
			if duplicated(ids, seen) {
				continue
			}
			*target = append(*target, candidate)
			for _, id := range ids {
				seen[id] = struct{}{}
			}
		}
	}
}

func duplicated(ids []item.ID, seen map[item.ID]struct{}) bool {
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
	}
	return false
}
