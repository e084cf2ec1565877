package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/kbukum/pipekit/component"
	"github.com/kbukum/pipekit/item"
	"github.com/kbukum/pipekit/logger"
	"github.com/kbukum/pipekit/observability"
	"github.com/kbukum/pipekit/pipeline"
	"github.com/kbukum/pipekit/version"
)

// App manages a pipeline engine application with uniform lifecycle.
// The type parameter T is the item payload type; C is the config type,
// which must satisfy the Config interface. Any struct embedding
// config.EngineConfig automatically satisfies Config.
//
// Example:
//
//	app, err := bootstrap.NewApp[MyItem](&cfg)
//	app.RegisterStage("feed-fetch", newFeedFetchStage)
//	if _, err := app.LoadPipeline("ingest"); err != nil { ... }
//	app.RunTask(ctx, func(ctx context.Context) error {
//	    _, err := app.RunPipeline(ctx, "ingest")
//	    return err
//	})
type App[T any, C Config] struct {
	Name     string
	Version  string
	Cfg      C
	Logger   *logger.Logger
	Registry *pipeline.StageRegistry[T]
	Executor pipeline.Executor
	Loader   pipeline.DefinitionLoader
	Summary  *Summary

	components *component.Registry
	metrics    *observability.Metrics

	gracefulTimeout time.Duration
	onStart         []Hook
	onStop          []Hook

	mu        sync.Mutex
	pipelines map[string]pipeline.Pipeline[T]
	pool      *pipeline.PoolExecutor
	stopOnce  sync.Once
	stopErr   error
}

// NewApp creates an application from a typed config. It applies
// defaults, validates the config, initializes the logger, and builds
// the executor and definition loader from the engine configuration.
func NewApp[T any, C Config](cfg C, opts ...Option) (*App[T, C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetEngineConfig()
	o := resolveOptions(opts)

	app := &App[T, C]{
		Name:            base.Name,
		Version:         version.GetShortVersion(),
		Cfg:             cfg,
		Registry:        pipeline.NewStageRegistry[T](),
		components:      component.NewRegistry(),
		metrics:         o.metrics,
		gracefulTimeout: 15 * time.Second,
		pipelines:       make(map[string]pipeline.Pipeline[T]),
	}
	pipeline.RegisterBuiltinStages(app.Registry)

	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(base.Logging)
		app.Logger = logger.Global()
	}

	if base.Executor.Workers > 0 {
		app.pool = pipeline.NewPoolExecutor(base.Executor.Workers)
		app.Executor = app.pool
	} else {
		app.Executor = pipeline.DirectExecutor{}
	}

	app.Loader = pipeline.NewFileDefinitionLoader(base.Definitions.Dirs...)
	app.Summary = NewSummary(base.Name, app.Version, base.Environment)

	return app, nil
}

// RegisterStage registers a stage factory under a type name for use in
// declarative pipeline definitions.
func (a *App[T, C]) RegisterStage(typeName string, factory pipeline.StageFactory[T]) {
	a.Registry.Register(typeName, factory)
}

// AddPipeline registers a constructed pipeline for lifecycle management
// and execution by ID.
func (a *App[T, C]) AddPipeline(p pipeline.Pipeline[T]) error {
	if err := a.components.Register(p); err != nil {
		return err
	}
	a.mu.Lock()
	a.pipelines[p.ID()] = p
	a.mu.Unlock()
	return nil
}

// LoadPipeline loads a named definition through the configured loader,
// builds the pipeline from registered stage factories, and adds it.
func (a *App[T, C]) LoadPipeline(name string) (pipeline.Pipeline[T], error) {
	def, err := a.Loader.Load(name)
	if err != nil {
		return nil, err
	}
	p, err := a.Registry.BuildPipeline(def)
	if err != nil {
		return nil, err
	}
	if err := a.AddPipeline(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Start initializes all registered pipelines and runs OnStart hooks.
func (a *App[T, C]) Start(ctx context.Context) error {
	start := time.Now()

	a.Logger.Info("starting engine", map[string]interface{}{
		"name":    a.Name,
		"version": a.Version,
	})

	if err := a.components.InitializeAll(); err != nil {
		return fmt.Errorf("pipeline initialization failed: %w", err)
	}

	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	a.Summary.SetStartupDuration(time.Since(start))
	return nil
}

// RunPipeline executes the registered pipeline over a fresh collection
// and returns the resulting items. The outcome is recorded in the
// summary and, when metrics are configured, in the run instruments.
func (a *App[T, C]) RunPipeline(ctx context.Context, id string) ([]item.Item[T], error) {
	a.mu.Lock()
	p, ok := a.pipelines[id]
	a.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unknown pipeline: %s", id)
	}

	if a.metrics != nil {
		a.metrics.RecordRunStart(ctx)
	}

	start := time.Now()
	items := pipeline.NewCollection[T]()
	err := p.Execute(ctx, &items)
	duration := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
	}
	if a.metrics != nil {
		a.metrics.RecordRunEnd(ctx, id, status, duration)
	}
	a.Summary.RecordRun(RunRecord{
		Pipeline: id,
		Status:   status,
		Items:    len(items),
		Duration: duration,
		When:     start,
	})

	if err != nil {
		return nil, err
	}
	return items, nil
}

// RunTask executes a finite task with the full lifecycle: Start, run
// the task with signal-based cancellation, then graceful shutdown. Use
// it for batch jobs and one-shot aggregation runs.
func (a *App[T, C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.Start(ctx); err != nil {
		return err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("received signal, canceling task", map[string]interface{}{
				"signal": sig.String(),
			})
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx)

	if stopErr := a.Shutdown(context.Background()); stopErr != nil {
		if taskErr != nil {
			return taskErr
		}
		return stopErr
	}
	return taskErr
}

// Shutdown runs OnStop hooks, destroys all pipelines, and closes the
// worker pool. Safe to call more than once.
func (a *App[T, C]) Shutdown(ctx context.Context) error {
	a.stopOnce.Do(func() {
		a.Logger.Info("shutting down engine", map[string]interface{}{
			"timeout": a.gracefulTimeout.String(),
		})

		hookCtx, cancel := context.WithTimeout(ctx, a.gracefulTimeout)
		defer cancel()

		if err := runHooks(hookCtx, a.onStop); err != nil {
			a.Logger.Error("onStop hook error", map[string]interface{}{
				logger.FieldError: err.Error(),
			})
			a.stopErr = err
		}

		a.components.DestroyAll()
		if a.pool != nil {
			a.pool.Close()
		}

		a.Summary.Display(a.Logger)
		a.Logger.Info("engine shutdown complete")
	})
	return a.stopErr
}
