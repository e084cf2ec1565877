package bootstrap

import (
	"github.com/kbukum/pipekit/config"
)

// Config is the interface constraint for application configuration
// types. Any struct that embeds config.EngineConfig automatically
// satisfies it via promoted methods.
//
// Example:
//
//	type MyConfig struct {
//	    config.EngineConfig `yaml:",inline" mapstructure:",squash"`
//	    Feeds []FeedConfig  `yaml:"feeds" mapstructure:"feeds"`
//	}
type Config interface {
	GetEngineConfig() *config.EngineConfig
	ApplyDefaults()
	Validate() error
}
