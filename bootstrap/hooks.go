package bootstrap

import (
	"context"
	"fmt"
)

// Hook is a lifecycle callback that runs during application startup or
// shutdown. Applications register hooks to perform setup and teardown
// without bootstrap knowing about specific infrastructure.
type Hook func(ctx context.Context) error

// OnStart registers a hook that runs after all pipelines are
// initialized, before Start returns.
func (a *App[T, C]) OnStart(hooks ...Hook) {
	a.onStart = append(a.onStart, hooks...)
}

// OnStop registers a hook that runs during graceful shutdown before
// pipelines are destroyed.
func (a *App[T, C]) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

// runHooks executes hooks sequentially, returning the first error.
func runHooks(ctx context.Context, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("hook %d failed: %w", i, err)
		}
	}
	return nil
}
