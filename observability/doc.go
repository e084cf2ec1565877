// Package observability provides OpenTelemetry tracing and metrics glue
// for the pipeline engine. The engine itself never initializes providers;
// embedding applications do, and stages opt in through the pipeline
// package's decorators.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("aggregator"))
//	defer tp.Shutdown(ctx)
//
//	stage = pipeline.WithTracing(stage, "aggregator")
//
// Metrics:
//
//	cfg := observability.DefaultMeterConfig("aggregator")
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("aggregator"))
//	stage = pipeline.WithMetrics(stage, metrics)
package observability
