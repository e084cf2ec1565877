package pipeline

import (
	"context"

	"github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/item"
)

// PipelineAndPredicate associates one pipeline with the predicate that
// selects the items routed to it.
type PipelineAndPredicate[T any] struct {
	Pipeline  Pipeline[T]
	Predicate ItemPredicate[T]
}

// PipelineDemultiplexerStage fans copies of selected items out to any
// number of (pipeline, predicate) routes. Route selections are independent
// and may overlap: one item can be copied into zero, one, or many routes.
// The incoming collection itself is never mutated; demultiplexing is a
// side-effecting fan-out, not a transform.
//
// By default the stage waits for every routed pipeline to finish and fails
// if any of them fails. With SetWaitingForPipelines(false) the routed work
// is fired and forgotten: Execute returns immediately after submission and
// the results, including failures, of the routed pipelines are silently
// discarded. This is a deliberate best-effort policy; callers who need the
// outcome must leave waiting enabled.
type PipelineDemultiplexerStage[T any] struct {
	BaseStage[T]

	executor Executor
	factory  CollectionFactory[T]
	routes   []PipelineAndPredicate[T]
	waiting  bool
}

// NewPipelineDemultiplexerStage creates a demultiplexer with the default
// direct executor and collection factory, waiting for routed pipelines.
func NewPipelineDemultiplexerStage[T any](id string) *PipelineDemultiplexerStage[T] {
	return &PipelineDemultiplexerStage[T]{
		BaseStage: NewBaseStage[T](id, "PipelineDemultiplexerStage"),
		executor:  DirectExecutor{},
		factory:   NewCollection[T],
		waiting:   true,
	}
}

// SetExecutor replaces the executor used to run the routed pipelines.
// The executor's lifecycle stays with the caller.
func (s *PipelineDemultiplexerStage[T]) SetExecutor(exec Executor) error {
	if err := s.CheckSettable(); err != nil {
		return err
	}
	if exec == nil {
		return errors.Misuse(s.ID(), "executor can not be nil")
	}
	s.executor = exec
	return nil
}

// SetCollectionFactory replaces the factory producing each route's
// collection of copied items.
func (s *PipelineDemultiplexerStage[T]) SetCollectionFactory(factory CollectionFactory[T]) error {
	if err := s.CheckSettable(); err != nil {
		return err
	}
	if factory == nil {
		return errors.Misuse(s.ID(), "collection factory can not be nil")
	}
	s.factory = factory
	return nil
}

// SetPipelinesAndPredicates replaces the route list. The slice is copied.
func (s *PipelineDemultiplexerStage[T]) SetPipelinesAndPredicates(routes []PipelineAndPredicate[T]) error {
	if err := s.CheckSettable(); err != nil {
		return err
	}
	s.routes = append([]PipelineAndPredicate[T](nil), routes...)
	return nil
}

// PipelinesAndPredicates returns the configured routes.
func (s *PipelineDemultiplexerStage[T]) PipelinesAndPredicates() []PipelineAndPredicate[T] {
	return append([]PipelineAndPredicate[T](nil), s.routes...)
}

// SetWaitingForPipelines toggles whether Execute blocks until every routed
// pipeline completes. Disabling it makes routed failures unobservable.
func (s *PipelineDemultiplexerStage[T]) SetWaitingForPipelines(wait bool) error {
	if err := s.CheckSettable(); err != nil {
		return err
	}
	s.waiting = wait
	return nil
}

// IsWaitingForPipelines reports whether Execute awaits routed pipelines.
func (s *PipelineDemultiplexerStage[T]) IsWaitingForPipelines() bool { return s.waiting }

// Initialize validates the route list and initializes any routed pipeline
// that is not already initialized. At least one route is required and
// every route needs both a pipeline and a predicate.
func (s *PipelineDemultiplexerStage[T]) Initialize() error {
	return s.InitializeWith(func() error {
		if len(s.routes) == 0 {
			return errors.Initialization(s.ID(), "pipeline and predicate list can not be empty")
		}
		for i, route := range s.routes {
			if route.Pipeline == nil {
				return errors.Initialization(s.ID(), "route pipeline can not be nil").WithDetail("route", i)
			}
			if route.Predicate == nil {
				return errors.Initialization(s.ID(), "route predicate can not be nil").WithDetail("route", i)
			}
			if !route.Pipeline.IsInitialized() {
				if err := route.Pipeline.Initialize(); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Destroy tears down the routed pipelines. Idempotent.
func (s *PipelineDemultiplexerStage[T]) Destroy() {
	s.DestroyWith(func() {
		for _, route := range s.routes {
			route.Pipeline.Destroy()
		}
	})
}

// Execute copies matching items into a fresh collection per route and
// submits each (pipeline, copies) unit of work. All routes are submitted
// before any result is awaited.
func (s *PipelineDemultiplexerStage[T]) Execute(ctx context.Context, items *[]item.Item[T]) error {
	return s.Run(ctx, items, s.demultiplex)
}

func (s *PipelineDemultiplexerStage[T]) demultiplex(ctx context.Context, items *[]item.Item[T]) error {
	// fire-and-forget work outlives this call, so detach it from the
	// caller's cancellation
	runCtx := ctx
	if !s.waiting {
		runCtx = context.WithoutCancel(ctx)
	}

	futures := make([]*Future[T], 0, len(s.routes))
	for _, route := range s.routes {
		selected := s.factory()
		for _, it := range *items {
			if route.Predicate(it) {
				selected = append(selected, it.Copy())
			}
		}
		futures = append(futures, Submit(runCtx, s.executor, route.Pipeline, selected))
	}

	if !s.waiting {
		return nil
	}

	for _, f := range futures {
		if _, err := f.Await(ctx); err != nil {
			return err
		}
	}
	return nil
}
