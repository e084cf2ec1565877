package pipeline

import (
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/validation"
)

// PipelineDef is a declarative pipeline definition, typically loaded from
// a YAML file and built into a SimplePipeline through a StageRegistry.
type PipelineDef struct {
	ID     string     `yaml:"id" validate:"required"`
	Stages []StageDef `yaml:"stages" validate:"min=1,dive"`
}

// StageDef declares one stage of a pipeline definition. Type names a
// factory in the registry; Config carries factory-specific settings.
type StageDef struct {
	ID     string         `yaml:"id" validate:"required"`
	Type   string         `yaml:"type" validate:"required"`
	Config map[string]any `yaml:"config"`
}

// ParseDefinition parses and validates one YAML pipeline definition.
func ParseDefinition(data []byte) (*PipelineDef, error) {
	var def PipelineDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, errors.InvalidDefinition("parsing pipeline definition").WithCause(err)
	}
	if err := validation.Struct(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// DefinitionLoader loads pipeline definitions by name.
type DefinitionLoader interface {
	Load(name string) (*PipelineDef, error)
}

// FileDefinitionLoader loads pipeline definitions from YAML files on
// disk.
type FileDefinitionLoader struct {
	dirs []string
}

// NewFileDefinitionLoader creates a loader searching the given
// directories for definition files.
func NewFileDefinitionLoader(dirs ...string) *FileDefinitionLoader {
	return &FileDefinitionLoader{dirs: dirs}
}

// Load searches for {name}.yaml or {name}.yml in each configured
// directory.
func (l *FileDefinitionLoader) Load(name string) (*PipelineDef, error) {
	for _, dir := range l.dirs {
		for _, ext := range []string{".yaml", ".yml"} {
			data, err := os.ReadFile(filepath.Join(dir, name+ext))
			if err != nil {
				continue
			}
			return ParseDefinition(data)
		}
	}
	return nil, errors.InvalidDefinition("pipeline definition not found").WithDetail("name", name)
}
