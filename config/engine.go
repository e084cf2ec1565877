package config

import (
	"fmt"

	"github.com/kbukum/pipekit/logger"
	"github.com/kbukum/pipekit/util"
)

// EngineConfig holds the engine-level configuration every embedding
// application needs. Extend it by embedding:
//
//	type AppConfig struct {
//	    config.EngineConfig `yaml:",inline" mapstructure:",squash"`
//	    Feeds []FeedConfig  `yaml:"feeds" mapstructure:"feeds"`
//	}
type EngineConfig struct {
	Name        string            `yaml:"name" mapstructure:"name"`
	Environment string            `yaml:"environment" mapstructure:"environment"`
	Debug       bool              `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config     `yaml:"logging" mapstructure:"logging"`
	Executor    ExecutorConfig    `yaml:"executor" mapstructure:"executor"`
	Definitions DefinitionsConfig `yaml:"definitions" mapstructure:"definitions"`
}

// ExecutorConfig sizes the worker pool backing concurrency stages.
// Zero workers means no pool: all sub-pipeline work runs synchronously.
type ExecutorConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// DefinitionsConfig locates declarative pipeline definitions on disk.
type DefinitionsConfig struct {
	Dirs []string `yaml:"dirs" mapstructure:"dirs"`
}

// GetEngineConfig returns the embedded engine configuration. Promoted
// into embedding structs so they satisfy the loader's Config interface.
func (c *EngineConfig) GetEngineConfig() *EngineConfig {
	return c
}

// ApplyDefaults fills unset fields. Embedding structs override this and
// call c.EngineConfig.ApplyDefaults() first.
func (c *EngineConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
}

// Validate checks the engine configuration. Embedding structs override
// this and call c.EngineConfig.Validate() first.
func (c *EngineConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	if !util.StringInSlice(c.Environment, validEnvs) {
		return fmt.Errorf("config.environment must be one of %v (got: %s)", validEnvs, c.Environment)
	}
	if c.Executor.Workers < 0 {
		return fmt.Errorf("config.executor.workers may not be negative (got: %d)", c.Executor.Workers)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}
