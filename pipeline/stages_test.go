package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/item"
)

func TestStaticItemSourceStage_AppendsCopies(t *testing.T) {
	static := newTestItem("a")

	s := NewStaticItemSourceStage[string]("static")
	if err := s.SetSourceItems([]item.Item[string]{static}); err != nil {
		t.Fatalf("SetSourceItems: %v", err)
	}
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	var items []item.Item[string]
	if err := s.Execute(context.Background(), &items); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0] == static {
		t.Error("the stage must emit copies, not the configured items")
	}

	// mutating the emitted copy leaves the configured item untouched
	items[0].Metadata().Put(item.NewInfoStatus("x", "mutated"))
	if item.Has[item.Status](static.Metadata()) {
		t.Error("configured item mutated through an emitted copy")
	}
}

func TestItemIDGenerationStage_AssignsOnlyWhereMissing(t *testing.T) {
	s := NewItemIDGenerationStage[string]("gen")
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	withID := newTestItem("fixed")
	withoutID := newTestItem("")
	items := []item.Item[string]{withID, withoutID}
	if err := s.Execute(context.Background(), &items); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if ids := item.Get[item.ID](withID.Metadata()); len(ids) != 1 || ids[0] != "fixed" {
		t.Errorf("existing id disturbed: %v", ids)
	}
	ids := item.Get[item.ID](withoutID.Metadata())
	if len(ids) != 1 || ids[0] == "" {
		t.Errorf("generated id = %v, want one non-empty id", ids)
	}
}

func TestItemMetadataAddingStage_AppendsToEveryItem(t *testing.T) {
	s := NewItemMetadataAddingStage[string]("add")
	if err := s.SetMetadata([]item.Metadata{item.NewInfoStatus("add", "tagged")}); err != nil {
		t.Fatalf("SetMetadata: %v", err)
	}
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	items := threeItems()
	if err := s.Execute(context.Background(), &items); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for i, it := range items {
		if !item.Has[*item.InfoStatus](it.Metadata()) {
			t.Errorf("items[%d] missing appended metadata", i)
		}
	}
}

func TestItemMetadataFilterStage_DropsFlaggedItems(t *testing.T) {
	s := NewItemMetadataFilterStage[string]("filter")
	if err := s.SetSelectionRequirements([]MetadataSelector{
		SelectMetadata[*item.ErrorStatus](),
	}); err != nil {
		t.Fatalf("SetSelectionRequirements: %v", err)
	}
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	flagged := newTestItem("bad")
	flagged.Metadata().Put(item.NewErrorStatus("check", "broken"))
	clean := newTestItem("good")

	items := []item.Item[string]{flagged, clean}
	if err := s.Execute(context.Background(), &items); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(items) != 1 || items[0] != clean {
		t.Errorf("filter kept %d items, want just the clean one", len(items))
	}
}

func TestItemMetadataTerminationStage_AbortsOnFlaggedItem(t *testing.T) {
	s := NewItemMetadataTerminationStage[string]("assert-clean")
	if err := s.SetSelectionRequirements([]MetadataSelector{
		SelectMetadata[*item.ErrorStatus](),
	}); err != nil {
		t.Fatalf("SetSelectionRequirements: %v", err)
	}
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	flagged := newTestItem("bad")
	flagged.Metadata().Put(item.NewErrorStatus("check", "broken"))
	items := []item.Item[string]{flagged}

	err := s.Execute(context.Background(), &items)
	if !errors.IsTermination(err) {
		t.Fatalf("Execute = %v, want termination", err)
	}
	if !errors.IsProcessing(err) {
		t.Error("termination should also be a processing failure")
	}
	if !strings.Contains(err.Error(), "bad") {
		t.Errorf("termination message %q should name the flagged item", err.Error())
	}
}

func TestItemMetadataTerminationStage_CleanRunPasses(t *testing.T) {
	s := NewItemMetadataTerminationStage[string]("assert-clean")
	if err := s.SetSelectionRequirements([]MetadataSelector{
		SelectMetadata[*item.ErrorStatus](),
	}); err != nil {
		t.Fatalf("SetSelectionRequirements: %v", err)
	}
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	items := threeItems()
	if err := s.Execute(context.Background(), &items); err != nil {
		t.Errorf("Execute = %v, want nil for clean items", err)
	}
}

func TestFilteringStage_KeepsAcceptedItems(t *testing.T) {
	s := NewFilteringStage[string]("keep-a", func(it item.Item[string]) bool {
		ids := item.Get[item.ID](it.Metadata())
		return len(ids) > 0 && ids[0] == "a"
	})
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	items := threeItems()
	if err := s.Execute(context.Background(), &items); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("kept %d items, want 1", len(items))
	}
}

func TestFilteringStage_RequiresPredicate(t *testing.T) {
	s := NewFilteringStage[string]("keep", nil)
	if err := s.Initialize(); !errors.IsInitialization(err) {
		t.Errorf("Initialize = %v, want initialization failure", err)
	}
}

func TestIteratingStage_VisitErrorAborts(t *testing.T) {
	visits := 0
	s := NewIteratingStage[string]("visit", func(_ context.Context, it item.Item[string]) error {
		visits++
		ids := item.Get[item.ID](it.Metadata())
		if len(ids) > 0 && ids[0] == "b" {
			return errors.StageProcessing("visit", "refusing item b")
		}
		return nil
	})
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	items := threeItems()
	if err := s.Execute(context.Background(), &items); !errors.IsProcessing(err) {
		t.Fatalf("Execute = %v, want processing failure", err)
	}
	if visits != 2 {
		t.Errorf("visits = %d, want 2: iteration stops at the failure", visits)
	}
}

func TestItemOrderingStage_OrdersByFirstID(t *testing.T) {
	s := NewItemOrderingStage[string]("order")
	if err := s.SetOrderingStrategy(OrderByFirstItemID[string]()); err != nil {
		t.Fatalf("SetOrderingStrategy: %v", err)
	}
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	items := []item.Item[string]{newTestItem("c"), newTestItem(""), newTestItem("a")}
	if err := s.Execute(context.Background(), &items); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	wantOrder := []string{"a", "c", ""}
	for i, want := range wantOrder {
		ids := item.Get[item.ID](items[i].Metadata())
		got := ""
		if len(ids) > 0 {
			got = ids[0].String()
		}
		if got != want {
			t.Errorf("items[%d] id = %q, want %q", i, got, want)
		}
	}
}

func TestItemOrderingStage_DefaultKeepsOrder(t *testing.T) {
	s := NewItemOrderingStage[string]("order")
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	items := threeItems()
	before := append([]item.Item[string](nil), items...)
	if err := s.Execute(context.Background(), &items); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for i := range before {
		if items[i] != before[i] {
			t.Fatal("default strategy must not reorder")
		}
	}
}

func TestStatusMetadataLoggingStage_LeavesCollectionAlone(t *testing.T) {
	s := NewStatusMetadataLoggingStage[string]("log-status")
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	flagged := newTestItem("bad")
	flagged.Metadata().Put(item.NewErrorStatus("check", "broken"))
	flagged.Metadata().Put(item.NewWarningStatus("check", "iffy"))
	items := []item.Item[string]{flagged, newTestItem("good")}

	if err := s.Execute(context.Background(), &items); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("items = %d, want 2", len(items))
	}
}
