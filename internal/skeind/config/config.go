// Package config wraps the validated options into the running configuration.
package config

import (
	"github.com/skeinlab/skein/internal/skeind/options"
)

// Config is the running configuration structure of the skeind service.
type Config struct {
	*options.Options
}

// CreateConfigFromOptions creates a running configuration instance from options.
func CreateConfigFromOptions(opts *options.Options) (*Config, error) {
	return &Config{opts}, nil
}
