package pipeline

import (
	"context"

	"github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/item"
)

// PipelineMergeStage runs any number of independently configured
// pipelines, each over its own freshly allocated collection, and merges
// all of their results into the incoming collection. Used to pull the
// output of otherwise unrelated source pipelines into one downstream
// flow.
//
// Every pipeline is submitted to the executor before any result is
// awaited; results are then awaited in submission order. A single failure
// aborts the stage and nothing is merged, not even results that did
// succeed.
type PipelineMergeStage[T any] struct {
	BaseStage[T]

	executor  Executor
	factory   CollectionFactory[T]
	strategy  CollectionMergeStrategy[T]
	pipelines []Pipeline[T]
}

// NewPipelineMergeStage creates a merge stage with the default direct
// executor, collection factory, and simple merge strategy.
func NewPipelineMergeStage[T any](id string) *PipelineMergeStage[T] {
	return &PipelineMergeStage[T]{
		BaseStage: NewBaseStage[T](id, "PipelineMergeStage"),
		executor:  DirectExecutor{},
		factory:   NewCollection[T],
		strategy:  SimpleCollectionMergeStrategy[T]{},
	}
}

// SetExecutor replaces the executor used to run the merged pipelines.
// The executor's lifecycle stays with the caller.
func (s *PipelineMergeStage[T]) SetExecutor(exec Executor) error {
	if err := s.CheckSettable(); err != nil {
		return err
	}
	if exec == nil {
		return errors.Misuse(s.ID(), "executor can not be nil")
	}
	s.executor = exec
	return nil
}

// SetCollectionFactory replaces the factory producing each pipeline's
// fresh input collection.
func (s *PipelineMergeStage[T]) SetCollectionFactory(factory CollectionFactory[T]) error {
	if err := s.CheckSettable(); err != nil {
		return err
	}
	if factory == nil {
		return errors.Misuse(s.ID(), "collection factory can not be nil")
	}
	s.factory = factory
	return nil
}

// SetMergeStrategy replaces the strategy merging pipeline results into the
// incoming collection.
func (s *PipelineMergeStage[T]) SetMergeStrategy(strategy CollectionMergeStrategy[T]) error {
	if err := s.CheckSettable(); err != nil {
		return err
	}
	if strategy == nil {
		return errors.Misuse(s.ID(), "merge strategy can not be nil")
	}
	s.strategy = strategy
	return nil
}

// SetMergedPipelines replaces the list of pipelines whose results are
// merged. The slice is copied.
func (s *PipelineMergeStage[T]) SetMergedPipelines(pipelines []Pipeline[T]) error {
	if err := s.CheckSettable(); err != nil {
		return err
	}
	s.pipelines = append([]Pipeline[T](nil), pipelines...)
	return nil
}

// MergedPipelines returns the configured pipelines in merge order.
func (s *PipelineMergeStage[T]) MergedPipelines() []Pipeline[T] {
	return append([]Pipeline[T](nil), s.pipelines...)
}

// Initialize initializes every merged pipeline that is not already
// initialized.
func (s *PipelineMergeStage[T]) Initialize() error {
	return s.InitializeWith(func() error {
		for _, p := range s.pipelines {
			if p.IsInitialized() {
				continue
			}
			if err := p.Initialize(); err != nil {
				return err
			}
		}
		return nil
	})
}

// Destroy tears down the merged pipelines. Idempotent.
func (s *PipelineMergeStage[T]) Destroy() {
	s.DestroyWith(func() {
		for _, p := range s.pipelines {
			p.Destroy()
		}
	})
}

// Execute runs all merged pipelines and folds their results into items.
func (s *PipelineMergeStage[T]) Execute(ctx context.Context, items *[]item.Item[T]) error {
	return s.Run(ctx, items, s.runAndMerge)
}

func (s *PipelineMergeStage[T]) runAndMerge(ctx context.Context, items *[]item.Item[T]) error {
	futures := make([]*Future[T], 0, len(s.pipelines))
	for _, p := range s.pipelines {
		futures = append(futures, Submit(ctx, s.executor, p, s.factory()))
	}

	results := make([][]item.Item[T], 0, len(futures))
	for _, f := range futures {
		result, err := f.Await(ctx)
		if err != nil {
			return err
		}
		results = append(results, result)
	}

	s.strategy.Merge(items, results...)
	return nil
}
