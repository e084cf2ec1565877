package pipeline

import (
	"context"
	"time"

	"github.com/kbukum/pipekit/component"
	"github.com/kbukum/pipekit/item"
	"github.com/kbukum/pipekit/logger"
)

// CompositeStage is a stage that is internally a pipeline: it owns an
// ordered list of child stages and runs them sequentially, letting a named
// bundle of stages be defined once and nested anywhere a stage fits.
//
// Unlike SimplePipeline it stamps no provenance record of its own; the
// children stamp theirs as usual. SetLoggingProgress makes per-child and
// aggregate progress observable through the log instead.
type CompositeStage[T any] struct {
	component.Base

	stages   []Stage[T]
	progress bool
	log      *logger.Logger
}

// NewCompositeStage creates a composite stage with the given identifier
// and no children.
func NewCompositeStage[T any](id string) *CompositeStage[T] {
	return &CompositeStage[T]{
		Base: component.NewBase(id, "CompositeStage"),
		log:  logger.Get("pipeline"),
	}
}

// SetStages replaces the child stage list. The slice is copied.
func (c *CompositeStage[T]) SetStages(stages []Stage[T]) error {
	if err := c.CheckSettable(); err != nil {
		return err
	}
	c.stages = append([]Stage[T](nil), stages...)
	return nil
}

// Stages returns the child stages in execution order.
func (c *CompositeStage[T]) Stages() []Stage[T] {
	return append([]Stage[T](nil), c.stages...)
}

// SetLoggingProgress toggles progress logging around each child run.
func (c *CompositeStage[T]) SetLoggingProgress(enabled bool) error {
	if err := c.CheckSettable(); err != nil {
		return err
	}
	c.progress = enabled
	return nil
}

// IsLoggingProgress reports whether progress logging is enabled.
func (c *CompositeStage[T]) IsLoggingProgress() bool { return c.progress }

// Initialize initializes every child stage that is not already
// initialized, then the composite itself.
func (c *CompositeStage[T]) Initialize() error {
	return c.InitializeWith(func() error {
		return initializeStages(c.stages)
	})
}

// Destroy tears down the children along with the composite. Idempotent.
func (c *CompositeStage[T]) Destroy() {
	c.DestroyWith(func() {
		for _, s := range c.stages {
			s.Destroy()
		}
	})
}

// Execute runs each child in declaration order on the same collection.
func (c *CompositeStage[T]) Execute(ctx context.Context, items *[]item.Item[T]) error {
	if err := c.CheckExecutable(); err != nil {
		return err
	}

	start := time.Now()
	for _, s := range c.stages {
		childStart := time.Now()
		if err := s.Execute(ctx, items); err != nil {
			return err
		}
		if c.progress {
			c.log.Info("composite child completed", map[string]interface{}{
				logger.FieldStage:    s.ID(),
				logger.FieldItems:    len(*items),
				logger.FieldDuration: time.Since(childStart).Milliseconds(),
			})
		}
	}

	if c.progress {
		c.log.Info("composite stage completed", map[string]interface{}{
			logger.FieldStage:    c.ID(),
			logger.FieldItems:    len(*items),
			logger.FieldDuration: time.Since(start).Milliseconds(),
		})
	}
	return nil
}
