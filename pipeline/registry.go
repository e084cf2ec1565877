package pipeline

import (
	"sort"
	"sync"

	"github.com/kbukum/pipekit/errors"
)

// StageFactory builds one stage from its definition's id and config.
type StageFactory[T any] func(id string, config map[string]any) (Stage[T], error)

// StageRegistry maps stage type names to factories so declarative
// pipeline definitions can be built into executable pipelines.
type StageRegistry[T any] struct {
	mu        sync.RWMutex
	factories map[string]StageFactory[T]
}

// NewStageRegistry creates an empty registry.
func NewStageRegistry[T any]() *StageRegistry[T] {
	return &StageRegistry[T]{factories: make(map[string]StageFactory[T])}
}

// Register adds a factory under a stage type name, replacing any previous
// registration.
func (r *StageRegistry[T]) Register(typeName string, factory StageFactory[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[typeName] = factory
}

// List returns the sorted names of all registered stage types.
func (r *StageRegistry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildStage builds one stage from its definition.
func (r *StageRegistry[T]) BuildStage(def StageDef) (Stage[T], error) {
	r.mu.RLock()
	factory, ok := r.factories[def.Type]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.InvalidDefinition("unknown stage type").WithDetail("type", def.Type)
	}
	return factory(def.ID, def.Config)
}

// BuildPipeline builds an uninitialized SimplePipeline from a definition.
// The caller initializes it.
func (r *StageRegistry[T]) BuildPipeline(def *PipelineDef) (*SimplePipeline[T], error) {
	stages := make([]Stage[T], 0, len(def.Stages))
	for _, sd := range def.Stages {
		s, err := r.BuildStage(sd)
		if err != nil {
			return nil, err
		}
		stages = append(stages, s)
	}
	p := NewSimplePipeline[T](def.ID)
	if err := p.SetStages(stages); err != nil {
		return nil, err
	}
	return p, nil
}

// RegisterBuiltinStages registers the configuration-free stages shipped
// with the engine: "item-id-generation" and "status-metadata-logging".
// Payload-specific and predicate-bearing stages are constructed in code
// and registered by the embedding application.
func RegisterBuiltinStages[T any](r *StageRegistry[T]) {
	r.Register("item-id-generation", func(id string, _ map[string]any) (Stage[T], error) {
		return NewItemIDGenerationStage[T](id), nil
	})
	r.Register("status-metadata-logging", func(id string, _ map[string]any) (Stage[T], error) {
		return NewStatusMetadataLoggingStage[T](id), nil
	})
}
