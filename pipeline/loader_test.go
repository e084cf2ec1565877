package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/item"
)

const validDefinition = `
id: enrich
stages:
  - id: gen-ids
    type: item-id-generation
  - id: log-status
    type: status-metadata-logging
`

func TestParseDefinition_Valid(t *testing.T) {
	def, err := ParseDefinition([]byte(validDefinition))
	if err != nil {
		t.Fatalf("ParseDefinition: %v", err)
	}
	if def.ID != "enrich" {
		t.Errorf("ID = %q, want %q", def.ID, "enrich")
	}
	if len(def.Stages) != 2 {
		t.Fatalf("stages = %d, want 2", len(def.Stages))
	}
	if def.Stages[0].Type != "item-id-generation" {
		t.Errorf("stage type = %q", def.Stages[0].Type)
	}
}

func TestParseDefinition_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", ":\t this is not yaml"},
		{"missing pipeline id", "stages:\n  - id: a\n    type: b\n"},
		{"no stages", "id: empty\n"},
		{"stage without type", "id: p\nstages:\n  - id: a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDefinition([]byte(tt.yaml))
			if errors.CodeOf(err) != errors.CodeInvalidDefinition {
				t.Errorf("ParseDefinition = %v, want invalid definition", err)
			}
		})
	}
}

func TestStageRegistry_BuildsRunnablePipeline(t *testing.T) {
	registry := NewStageRegistry[string]()
	RegisterBuiltinStages(registry)

	def, err := ParseDefinition([]byte(validDefinition))
	if err != nil {
		t.Fatalf("ParseDefinition: %v", err)
	}
	p, err := registry.BuildPipeline(def)
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}
	if err := p.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	items := []item.Item[string]{item.New("payload")}
	if err := p.Execute(context.Background(), &items); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !item.Has[item.ID](items[0].Metadata()) {
		t.Error("built pipeline should have generated an item id")
	}
}

func TestStageRegistry_UnknownTypeFails(t *testing.T) {
	registry := NewStageRegistry[string]()

	def := &PipelineDef{ID: "p", Stages: []StageDef{{ID: "a", Type: "no-such-stage"}}}
	_, err := registry.BuildPipeline(def)
	if errors.CodeOf(err) != errors.CodeInvalidDefinition {
		t.Errorf("BuildPipeline = %v, want invalid definition", err)
	}
}

func TestStageRegistry_CustomFactory(t *testing.T) {
	registry := NewStageRegistry[string]()
	registry.Register("counting", func(id string, _ map[string]any) (Stage[string], error) {
		return newCountingStage(id), nil
	})

	if got := registry.List(); len(got) != 1 || got[0] != "counting" {
		t.Errorf("List = %v", got)
	}
	s, err := registry.BuildStage(StageDef{ID: "count", Type: "counting"})
	if err != nil {
		t.Fatalf("BuildStage: %v", err)
	}
	if s.ID() != "count" {
		t.Errorf("stage id = %q, want %q", s.ID(), "count")
	}
}

func TestFileDefinitionLoader_FindsDefinitionOnDisk(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "enrich.yaml"), []byte(validDefinition), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	loader := NewFileDefinitionLoader(dir)
	def, err := loader.Load("enrich")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if def.ID != "enrich" {
		t.Errorf("ID = %q, want %q", def.ID, "enrich")
	}

	if _, err := loader.Load("missing"); errors.CodeOf(err) != errors.CodeInvalidDefinition {
		t.Errorf("Load(missing) = %v, want invalid definition", err)
	}
}
