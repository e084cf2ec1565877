package pipeline

import (
	"context"

	"github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/item"
)

// SplitMergeStage partitions the incoming collection into selected and
// non-selected items by a per-item predicate, runs each partition through
// its own optional sub-pipeline, and merges the two results back into the
// (first cleared) incoming collection.
//
// A leg with no pipeline configured passes its partition through
// unchanged. At least one leg pipeline must be configured before
// initialization. The selection predicate defaults to selecting nothing.
type SplitMergeStage[T any] struct {
	BaseStage[T]

	executor    Executor
	factory     CollectionFactory[T]
	strategy    CollectionMergeStrategy[T]
	selection   ItemPredicate[T]
	selected    Pipeline[T]
	nonselected Pipeline[T]
}

// NewSplitMergeStage creates a split/merge stage with the default direct
// executor, collection factory, and simple merge strategy.
func NewSplitMergeStage[T any](id string) *SplitMergeStage[T] {
	return &SplitMergeStage[T]{
		BaseStage: NewBaseStage[T](id, "SplitMergeStage"),
		executor:  DirectExecutor{},
		factory:   NewCollection[T],
		strategy:  SimpleCollectionMergeStrategy[T]{},
		selection: func(item.Item[T]) bool { return false },
	}
}

// SetExecutor replaces the executor used to run the two leg pipelines.
// The executor's lifecycle stays with the caller.
func (s *SplitMergeStage[T]) SetExecutor(exec Executor) error {
	if err := s.CheckSettable(); err != nil {
		return err
	}
	if exec == nil {
		return errors.Misuse(s.ID(), "executor can not be nil")
	}
	s.executor = exec
	return nil
}

// SetCollectionFactory replaces the factory producing the two leg
// collections.
func (s *SplitMergeStage[T]) SetCollectionFactory(factory CollectionFactory[T]) error {
	if err := s.CheckSettable(); err != nil {
		return err
	}
	if factory == nil {
		return errors.Misuse(s.ID(), "collection factory can not be nil")
	}
	s.factory = factory
	return nil
}

// SetMergeStrategy replaces the strategy merging the leg results back into
// the incoming collection.
func (s *SplitMergeStage[T]) SetMergeStrategy(strategy CollectionMergeStrategy[T]) error {
	if err := s.CheckSettable(); err != nil {
		return err
	}
	if strategy == nil {
		return errors.Misuse(s.ID(), "merge strategy can not be nil")
	}
	s.strategy = strategy
	return nil
}

// SetSelectionPredicate replaces the predicate routing items to the
// selected leg.
func (s *SplitMergeStage[T]) SetSelectionPredicate(p ItemPredicate[T]) error {
	if err := s.CheckSettable(); err != nil {
		return err
	}
	if p == nil {
		return errors.Misuse(s.ID(), "selection predicate can not be nil")
	}
	s.selection = p
	return nil
}

// SetSelectedPipeline sets the pipeline receiving selected items.
func (s *SplitMergeStage[T]) SetSelectedPipeline(p Pipeline[T]) error {
	if err := s.CheckSettable(); err != nil {
		return err
	}
	s.selected = p
	return nil
}

// SetNonselectedPipeline sets the pipeline receiving non-selected items.
func (s *SplitMergeStage[T]) SetNonselectedPipeline(p Pipeline[T]) error {
	if err := s.CheckSettable(); err != nil {
		return err
	}
	s.nonselected = p
	return nil
}

// Initialize validates that at least one leg pipeline is configured and
// initializes any leg pipeline that is not already initialized.
func (s *SplitMergeStage[T]) Initialize() error {
	return s.InitializeWith(func() error {
		if s.selected == nil && s.nonselected == nil {
			return errors.Initialization(s.ID(), "selected and non-selected pipelines are both unset")
		}
		if s.selected != nil && !s.selected.IsInitialized() {
			if err := s.selected.Initialize(); err != nil {
				return err
			}
		}
		if s.nonselected != nil && !s.nonselected.IsInitialized() {
			if err := s.nonselected.Initialize(); err != nil {
				return err
			}
		}
		return nil
	})
}

// Destroy tears down the configured leg pipelines. Idempotent.
func (s *SplitMergeStage[T]) Destroy() {
	s.DestroyWith(func() {
		if s.selected != nil {
			s.selected.Destroy()
		}
		if s.nonselected != nil {
			s.nonselected.Destroy()
		}
	})
}

// Execute splits, runs both legs, and merges. If either leg fails, that
// failure propagates and the incoming collection is left unmodified.
func (s *SplitMergeStage[T]) Execute(ctx context.Context, items *[]item.Item[T]) error {
	return s.Run(ctx, items, s.splitAndMerge)
}

func (s *SplitMergeStage[T]) splitAndMerge(ctx context.Context, items *[]item.Item[T]) error {
	selectedItems := s.factory()
	nonselectedItems := s.factory()
	for _, it := range *items {
		if s.selection(it) {
			selectedItems = append(selectedItems, it)
		} else {
			nonselectedItems = append(nonselectedItems, it)
		}
	}

	// submit both legs before awaiting either
	selectedFuture := s.legFuture(ctx, s.selected, selectedItems)
	nonselectedFuture := s.legFuture(ctx, s.nonselected, nonselectedItems)

	selectedResult, err := selectedFuture.Await(ctx)
	if err != nil {
		return err
	}
	nonselectedResult, err := nonselectedFuture.Await(ctx)
	if err != nil {
		return err
	}

	*items = (*items)[:0]
	s.strategy.Merge(items, selectedResult, nonselectedResult)
	return nil
}

// legFuture submits one leg's work, or resolves immediately with the
// unchanged partition when the leg has no pipeline.
func (s *SplitMergeStage[T]) legFuture(ctx context.Context, p Pipeline[T], legItems []item.Item[T]) *Future[T] {
	if p == nil {
		return Completed(legItems)
	}
	return Submit(ctx, s.executor, p, legItems)
}
