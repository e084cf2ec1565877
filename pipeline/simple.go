package pipeline

import (
	"context"
	"time"

	"github.com/kbukum/pipekit/component"
	"github.com/kbukum/pipekit/item"
	"github.com/kbukum/pipekit/logger"
)

// SimplePipeline runs its stages sequentially over one collection and
// appends exactly one ComponentInfo per run to every surviving item.
type SimplePipeline[T any] struct {
	component.Base

	stages []Stage[T]
	log    *logger.Logger
}

// NewSimplePipeline creates a pipeline with the given identifier and no
// stages.
func NewSimplePipeline[T any](id string) *SimplePipeline[T] {
	return &SimplePipeline[T]{
		Base: component.NewBase(id, "SimplePipeline"),
		log:  logger.Get("pipeline"),
	}
}

// SetStages replaces the pipeline's stage list. The slice is copied.
func (p *SimplePipeline[T]) SetStages(stages []Stage[T]) error {
	if err := p.CheckSettable(); err != nil {
		return err
	}
	p.stages = append([]Stage[T](nil), stages...)
	return nil
}

// Stages returns the contained stages in execution order.
func (p *SimplePipeline[T]) Stages() []Stage[T] {
	return append([]Stage[T](nil), p.stages...)
}

// Initialize transitions the pipeline to initialized, first initializing
// every contained stage that is not already initialized. A failure leaves
// the pipeline in an undefined partially-initialized state; discard and
// reconstruct rather than retrying.
func (p *SimplePipeline[T]) Initialize() error {
	return p.InitializeWith(func() error {
		return initializeStages(p.stages)
	})
}

// Destroy tears the pipeline down along with its stages. Idempotent.
func (p *SimplePipeline[T]) Destroy() {
	p.DestroyWith(func() {
		for _, s := range p.stages {
			s.Destroy()
		}
	})
}

// Execute runs each stage in declaration order on the same collection,
// then stamps the pipeline's own provenance record on every item still
// present.
func (p *SimplePipeline[T]) Execute(ctx context.Context, items *[]item.Item[T]) error {
	if err := p.CheckExecutable(); err != nil {
		return err
	}

	start := time.Now()
	for _, s := range p.stages {
		if err := s.Execute(ctx, items); err != nil {
			p.log.Error("pipeline run failed", map[string]interface{}{
				logger.FieldPipeline: p.ID(),
				logger.FieldStage:    s.ID(),
				logger.FieldError:    err.Error(),
			})
			return err
		}
	}
	complete := time.Now()

	info := NewComponentInfo(p.ID(), p.Type(), start, complete)
	for _, it := range *items {
		it.Metadata().Put(info)
	}

	p.log.Debug("pipeline run completed", map[string]interface{}{
		logger.FieldPipeline: p.ID(),
		logger.FieldItems:    len(*items),
		logger.FieldDuration: complete.Sub(start).Milliseconds(),
	})
	return nil
}

// initializeStages initializes every stage that is not already
// initialized, in order. Shared by pipelines and composite stages.
func initializeStages[T any](stages []Stage[T]) error {
	for _, s := range stages {
		if s.IsInitialized() {
			continue
		}
		if err := s.Initialize(); err != nil {
			return err
		}
	}
	return nil
}
