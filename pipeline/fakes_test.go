package pipeline

import (
	"context"
	"sync"
	"testing"

	"github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/item"
)

// countingStage records every body invocation and the collection size it
// observed. Safe for concurrent execution.
type countingStage struct {
	BaseStage[string]

	mu          sync.Mutex
	invocations int
	sizes       []int
}

func newCountingStage(id string) *countingStage {
	return &countingStage{BaseStage: NewBaseStage[string](id, "countingStage")}
}

func (s *countingStage) Execute(ctx context.Context, items *[]item.Item[string]) error {
	return s.Run(ctx, items, func(_ context.Context, items *[]item.Item[string]) error {
		s.mu.Lock()
		s.invocations++
		s.sizes = append(s.sizes, len(*items))
		s.mu.Unlock()
		return nil
	})
}

func (s *countingStage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invocations
}

func (s *countingStage) observedSizes() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.sizes...)
}

// sourceStage appends fresh items with the given identifiers.
type sourceStage struct {
	BaseStage[string]

	ids []string
}

func newSourceStage(id string, itemIDs ...string) *sourceStage {
	return &sourceStage{BaseStage: NewBaseStage[string](id, "sourceStage"), ids: itemIDs}
}

func (s *sourceStage) Execute(ctx context.Context, items *[]item.Item[string]) error {
	return s.Run(ctx, items, func(_ context.Context, items *[]item.Item[string]) error {
		for _, id := range s.ids {
			*items = append(*items, newTestItem(id))
		}
		return nil
	})
}

// terminatingStage always fails with the same termination error instance,
// letting tests assert the failure is propagated unchanged.
type terminatingStage struct {
	BaseStage[string]

	err *errors.Error
}

func newTerminatingStage(id string) *terminatingStage {
	return &terminatingStage{
		BaseStage: NewBaseStage[string](id, "terminatingStage"),
		err:       errors.Termination(id, "deliberate abort"),
	}
}

func (s *terminatingStage) Execute(ctx context.Context, items *[]item.Item[string]) error {
	return s.Run(ctx, items, func(_ context.Context, _ *[]item.Item[string]) error {
		return s.err
	})
}

// newTestItem creates a string item, attaching id as item.ID metadata
// unless empty.
func newTestItem(id string) item.Item[string] {
	it := item.New("payload")
	if id != "" {
		it.Metadata().Put(item.NewID(id))
	}
	return it
}

// newTestPipeline builds and initializes a pipeline over the given
// stages.
func newTestPipeline(t *testing.T, id string, stages ...Stage[string]) *SimplePipeline[string] {
	t.Helper()
	p := NewSimplePipeline[string](id)
	if err := p.SetStages(stages); err != nil {
		t.Fatalf("SetStages: %v", err)
	}
	return p
}

// infosOf returns the ComponentInfo records attached to an item.
func infosOf(it item.Item[string]) []*ComponentInfo {
	return item.Get[*ComponentInfo](it.Metadata())
}
