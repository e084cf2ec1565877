package pipeline

import (
	"context"
	"time"

	"github.com/kbukum/pipekit/item"
	"github.com/kbukum/pipekit/logger"
	"github.com/kbukum/pipekit/observability"
)

// WithTracing wraps a stage with OpenTelemetry span creation. Each
// execution creates a span named "{prefix}.{stageID}".
func WithTracing[T any](stage Stage[T], prefix string) Stage[T] {
	return &tracingStage[T]{Stage: stage, prefix: prefix}
}

type tracingStage[T any] struct {
	Stage[T]
	prefix string
}

func (s *tracingStage[T]) Execute(ctx context.Context, items *[]item.Item[T]) error {
	ctx, span := observability.StartSpan(ctx, s.prefix+"."+s.Stage.ID())
	defer span.End()

	observability.SetSpanAttribute(ctx, "pipeline.stage", s.Stage.ID())
	observability.SetSpanAttribute(ctx, "pipeline.items_in", len(*items))

	err := s.Stage.Execute(ctx, items)
	if err != nil {
		observability.SetSpanError(ctx, err)
	} else {
		observability.SetSpanAttribute(ctx, "pipeline.items_out", len(*items))
	}
	return err
}

// WithMetrics wraps a stage with metric recording. Records execution
// count, duration, and errors per stage.
func WithMetrics[T any](stage Stage[T], metrics *observability.Metrics) Stage[T] {
	return &metricsStage[T]{Stage: stage, metrics: metrics}
}

type metricsStage[T any] struct {
	Stage[T]
	metrics *observability.Metrics
}

func (s *metricsStage[T]) Execute(ctx context.Context, items *[]item.Item[T]) error {
	start := time.Now()
	err := s.Stage.Execute(ctx, items)
	duration := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
		s.metrics.RecordError(ctx, "execute", s.Stage.ID())
	}
	s.metrics.RecordOperation(ctx, s.Stage.ID(), "pipeline.execute", status, duration)

	return err
}

// WithLogging wraps a stage with execution logging: stage id, item count,
// duration, and success or error status.
func WithLogging[T any](stage Stage[T], log *logger.Logger) Stage[T] {
	return &loggingStage[T]{Stage: stage, log: log}
}

type loggingStage[T any] struct {
	Stage[T]
	log *logger.Logger
}

func (s *loggingStage[T]) Execute(ctx context.Context, items *[]item.Item[T]) error {
	start := time.Now()
	err := s.Stage.Execute(ctx, items)

	fields := map[string]interface{}{
		logger.FieldStage:    s.Stage.ID(),
		logger.FieldItems:    len(*items),
		logger.FieldDuration: time.Since(start).Milliseconds(),
	}

	if err != nil {
		fields[logger.FieldError] = err.Error()
		s.log.Error("stage failed", fields)
	} else {
		s.log.Debug("stage completed", fields)
	}
	return err
}
