package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/kbukum/pipekit/item"
)

// StaticItemSourceStage appends a copy of each of its configured items to
// the collection on every execution. Copies keep the stage reusable: runs
// never observe each other's mutations.
type StaticItemSourceStage[T any] struct {
	BaseStage[T]

	source []item.Item[T]
}

// NewStaticItemSourceStage creates a static source stage with no items.
func NewStaticItemSourceStage[T any](id string) *StaticItemSourceStage[T] {
	return &StaticItemSourceStage[T]{BaseStage: NewBaseStage[T](id, "StaticItemSourceStage")}
}

// SetSourceItems replaces the configured item list. The slice is copied.
func (s *StaticItemSourceStage[T]) SetSourceItems(items []item.Item[T]) error {
	if err := s.CheckSettable(); err != nil {
		return err
	}
	s.source = append([]item.Item[T](nil), items...)
	return nil
}

func (s *StaticItemSourceStage[T]) Execute(ctx context.Context, items *[]item.Item[T]) error {
	return s.Run(ctx, items, func(_ context.Context, items *[]item.Item[T]) error {
		for _, it := range s.source {
			*items = append(*items, it.Copy())
		}
		return nil
	})
}

// ItemIDGenerationStage assigns a generated unique identifier to every
// item that does not already carry one. Items with an existing ID are
// left alone.
type ItemIDGenerationStage[T any] struct {
	BaseStage[T]
}

// NewItemIDGenerationStage creates an ID generation stage.
func NewItemIDGenerationStage[T any](id string) *ItemIDGenerationStage[T] {
	return &ItemIDGenerationStage[T]{BaseStage: NewBaseStage[T](id, "ItemIDGenerationStage")}
}

func (s *ItemIDGenerationStage[T]) Execute(ctx context.Context, items *[]item.Item[T]) error {
	return s.Run(ctx, items, func(_ context.Context, items *[]item.Item[T]) error {
		for _, it := range *items {
			if item.Has[item.ID](it.Metadata()) {
				continue
			}
			it.Metadata().Put(item.NewID(uuid.NewString()))
		}
		return nil
	})
}
