package config

import (
	"os"
	"path/filepath"
	"testing"
)

// fakeFS serves env files from memory and reports existence from a set.
type fakeFS struct {
	existing map[string]bool
	envErr   error
	loaded   []string
}

func (f *fakeFS) Exists(path string) bool { return f.existing[path] }

func (f *fakeFS) LoadEnv(path string) error {
	f.loaded = append(f.loaded, path)
	return f.envErr
}

func TestEngineConfig_Defaults(t *testing.T) {
	var cfg EngineConfig
	cfg.ApplyDefaults()

	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("Debug should default on in development")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestEngineConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*EngineConfig)
		wantErr bool
	}{
		{"valid", func(*EngineConfig) {}, false},
		{"missing name", func(c *EngineConfig) { c.Name = "" }, true},
		{"bad environment", func(c *EngineConfig) { c.Environment = "qa" }, true},
		{"negative workers", func(c *EngineConfig) { c.Executor.Workers = -1 }, true},
		{"bad log level", func(c *EngineConfig) { c.Logging.Level = "loud" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := EngineConfig{Name: "aggregator"}
			cfg.ApplyDefaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_FromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := `
name: aggregator
environment: production
executor:
  workers: 4
definitions:
  dirs:
    - /etc/aggregator/pipelines
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var cfg EngineConfig
	if err := Load(&cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Name != "aggregator" || cfg.Environment != "production" {
		t.Errorf("base fields = %q/%q", cfg.Name, cfg.Environment)
	}
	if cfg.Executor.Workers != 4 {
		t.Errorf("Executor.Workers = %d, want 4", cfg.Executor.Workers)
	}
	if len(cfg.Definitions.Dirs) != 1 {
		t.Errorf("Definitions.Dirs = %v", cfg.Definitions.Dirs)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("name: aggregator\nexecutor:\n  workers: 2\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Setenv("EXECUTOR_WORKERS", "8")

	var cfg EngineConfig
	if err := Load(&cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Executor.Workers != 8 {
		t.Errorf("Executor.Workers = %d, want env override 8", cfg.Executor.Workers)
	}
}

func TestLoad_MissingFilesIsFine(t *testing.T) {
	fs := &fakeFS{existing: map[string]bool{}}

	var cfg EngineConfig
	if err := Load(&cfg, WithFileSystem(fs)); err != nil {
		t.Fatalf("Load with no files: %v", err)
	}
	if len(fs.loaded) != 0 {
		t.Errorf("loaded env files = %v, want none", fs.loaded)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	variants := envKeyVariants("EXECUTOR_WORKERS")

	want := map[string]bool{"executor_workers": false, "executor.workers": false}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for key, found := range want {
		if !found {
			t.Errorf("variants %v missing %q", variants, key)
		}
	}
}
