package pipeline

import (
	"context"
	"strings"

	"github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/item"
	"github.com/kbukum/pipekit/logger"
)

// MetadataSelector reports whether a metadata collection carries a value
// of interest. Build one per metadata type with SelectMetadata; a stage
// configured with several selectors matches items carrying any of them.
type MetadataSelector func(*item.MetadataMap) bool

// SelectMetadata returns a selector matching collections that carry at
// least one metadata value of type M.
func SelectMetadata[M item.Metadata]() MetadataSelector {
	return func(m *item.MetadataMap) bool {
		return item.Has[M](m)
	}
}

func anySelected(selectors []MetadataSelector, m *item.MetadataMap) bool {
	for _, selected := range selectors {
		if selected(m) {
			return true
		}
	}
	return false
}

// ItemMetadataAddingStage appends the configured metadata values to every
// item in the collection.
type ItemMetadataAddingStage[T any] struct {
	BaseStage[T]

	values []item.Metadata
}

// NewItemMetadataAddingStage creates a metadata adding stage with no
// values.
func NewItemMetadataAddingStage[T any](id string) *ItemMetadataAddingStage[T] {
	return &ItemMetadataAddingStage[T]{BaseStage: NewBaseStage[T](id, "ItemMetadataAddingStage")}
}

// SetMetadata replaces the values appended to each item. The slice is
// copied.
func (s *ItemMetadataAddingStage[T]) SetMetadata(values []item.Metadata) error {
	if err := s.CheckSettable(); err != nil {
		return err
	}
	s.values = append([]item.Metadata(nil), values...)
	return nil
}

func (s *ItemMetadataAddingStage[T]) Execute(ctx context.Context, items *[]item.Item[T]) error {
	return s.Run(ctx, items, func(_ context.Context, items *[]item.Item[T]) error {
		for _, it := range *items {
			it.Metadata().PutAll(s.values...)
		}
		return nil
	})
}

// ItemMetadataFilterStage drops every item matching at least one of the
// configured metadata selectors. Typically used to discard items flagged
// with error status by an earlier stage.
type ItemMetadataFilterStage[T any] struct {
	BaseStage[T]

	selectors []MetadataSelector
	log       *logger.Logger
}

// NewItemMetadataFilterStage creates a filter stage with no selectors.
// With no selectors configured the stage keeps everything.
func NewItemMetadataFilterStage[T any](id string) *ItemMetadataFilterStage[T] {
	return &ItemMetadataFilterStage[T]{
		BaseStage: NewBaseStage[T](id, "ItemMetadataFilterStage"),
		log:       logger.Get("pipeline"),
	}
}

// SetSelectionRequirements replaces the selectors deciding which items are
// dropped. The slice is copied.
func (s *ItemMetadataFilterStage[T]) SetSelectionRequirements(selectors []MetadataSelector) error {
	if err := s.CheckSettable(); err != nil {
		return err
	}
	s.selectors = append([]MetadataSelector(nil), selectors...)
	return nil
}

func (s *ItemMetadataFilterStage[T]) Execute(ctx context.Context, items *[]item.Item[T]) error {
	return s.Run(ctx, items, func(_ context.Context, items *[]item.Item[T]) error {
		kept := (*items)[:0]
		dropped := 0
		for _, it := range *items {
			if anySelected(s.selectors, it.Metadata()) {
				dropped++
				continue
			}
			kept = append(kept, it)
		}
		*items = kept
		if dropped > 0 {
			s.log.Debug("items dropped by metadata filter", map[string]interface{}{
				logger.FieldStage: s.ID(),
				logger.FieldItems: dropped,
			})
		}
		return nil
	})
}

// ItemMetadataTerminationStage aborts the whole run with a termination
// failure if any item matches one of the configured metadata selectors.
// Place it after validation stages to assert that flagged items never
// reach downstream processing.
type ItemMetadataTerminationStage[T any] struct {
	BaseStage[T]

	selectors []MetadataSelector
}

// NewItemMetadataTerminationStage creates a termination stage with no
// selectors. With no selectors configured the stage never terminates.
func NewItemMetadataTerminationStage[T any](id string) *ItemMetadataTerminationStage[T] {
	return &ItemMetadataTerminationStage[T]{BaseStage: NewBaseStage[T](id, "ItemMetadataTerminationStage")}
}

// SetSelectionRequirements replaces the selectors deciding which items
// trigger termination. The slice is copied.
func (s *ItemMetadataTerminationStage[T]) SetSelectionRequirements(selectors []MetadataSelector) error {
	if err := s.CheckSettable(); err != nil {
		return err
	}
	s.selectors = append([]MetadataSelector(nil), selectors...)
	return nil
}

func (s *ItemMetadataTerminationStage[T]) Execute(ctx context.Context, items *[]item.Item[T]) error {
	return s.Run(ctx, items, func(_ context.Context, items *[]item.Item[T]) error {
		var offending []string
		for _, it := range *items {
			if anySelected(s.selectors, it.Metadata()) {
				offending = append(offending, describeItem(it))
			}
		}
		if len(offending) > 0 {
			return errors.Termination(s.ID(), "terminating run, flagged items: "+strings.Join(offending, ", "))
		}
		return nil
	})
}

// describeItem names an item by its first identifier, if it has one.
func describeItem[T any](it item.Item[T]) string {
	if ids := item.Get[item.ID](it.Metadata()); len(ids) > 0 {
		return ids[0].String()
	}
	return "<unidentified>"
}

// StatusMetadataLoggingStage writes each item's status metadata to the
// log: error statuses at error level, warnings at warn, the rest at info.
// The collection itself is not modified.
type StatusMetadataLoggingStage[T any] struct {
	BaseStage[T]

	log *logger.Logger
}

// NewStatusMetadataLoggingStage creates a status logging stage.
func NewStatusMetadataLoggingStage[T any](id string) *StatusMetadataLoggingStage[T] {
	return &StatusMetadataLoggingStage[T]{
		BaseStage: NewBaseStage[T](id, "StatusMetadataLoggingStage"),
		log:       logger.Get("pipeline"),
	}
}

func (s *StatusMetadataLoggingStage[T]) Execute(ctx context.Context, items *[]item.Item[T]) error {
	return s.Run(ctx, items, func(_ context.Context, items *[]item.Item[T]) error {
		for _, it := range *items {
			name := describeItem(it)
			for _, status := range item.Get[item.Status](it.Metadata()) {
				fields := map[string]interface{}{
					logger.FieldStage:     s.ID(),
					logger.FieldComponent: status.ComponentID(),
					"item":                name,
				}
				switch status.(type) {
				case *item.ErrorStatus:
					s.log.Error(status.StatusMessage(), fields)
				case *item.WarningStatus:
					s.log.Warn(status.StatusMessage(), fields)
				default:
					s.log.Info(status.StatusMessage(), fields)
				}
			}
		}
		return nil
	})
}
