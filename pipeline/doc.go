// Package pipeline implements a generic item-processing engine: ordered
// compositions of lifecycle-managed stages that transform a mutable
// collection of typed items in place.
//
// A Stage is the unit of processing. A Pipeline runs its stages in order
// over one collection and stamps a provenance record on every surviving
// item. CompositeStage makes a pipeline reusable as a stage. Three
// concurrency-bearing stages fan work out to sub-pipelines through a
// pluggable Executor: SplitMergeStage, PipelineMergeStage, and
// PipelineDemultiplexerStage.
//
// Stages and pipelines follow the component lifecycle: configuration
// setters are only legal before Initialize, Execute only after, and
// Destroy is idempotent. Configuration is frozen at initialization, so
// initialized stages are safe for concurrent Execute calls as long as each
// caller passes its own collection.
//
// By default all work runs synchronously on the calling goroutine. Callers
// opt in to real parallelism by supplying a PoolExecutor; its lifecycle
// belongs to the caller, never to a stage.
package pipeline
