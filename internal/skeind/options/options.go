// Package options defines the skeind command-line and config-file surface.
package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// ServingOptions configure the HTTP listener.
type ServingOptions struct {
	BindAddress string `json:"bind_address" mapstructure:"bind_address"`
	BindPort    int    `json:"bind_port"    mapstructure:"bind_port"`
}

// NewServingOptions returns defaults for local development.
func NewServingOptions() *ServingOptions {
	return &ServingOptions{
		BindAddress: "127.0.0.1",
		BindPort:    11810,
	}
}

// AddFlags binds serving flags to the given flag set.
func (o *ServingOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.BindAddress, "bind-address", o.BindAddress, "IP address the HTTP server listens on.")
	fs.IntVar(&o.BindPort, "bind-port", o.BindPort, "Port the HTTP server listens on.")
}

// Validate checks the serving options.
func (o *ServingOptions) Validate() []error {
	var errs []error
	if o.BindPort < 1 || o.BindPort > 65535 {
		errs = append(errs, fmt.Errorf("bind-port %d is out of range [1, 65535]", o.BindPort))
	}
	return errs
}

// Addr returns the listen address in host:port form.
func (o *ServingOptions) Addr() string {
	return fmt.Sprintf("%s:%d", o.BindAddress, o.BindPort)
}

// StoreOptions select and configure the persistence backend.
type StoreOptions struct {
	Type       string `json:"type"        mapstructure:"type"`
	BoltDBPath string `json:"boltdb_path" mapstructure:"boltdb_path"`
}

// NewStoreOptions returns the in-memory default.
func NewStoreOptions() *StoreOptions {
	return &StoreOptions{
		Type:       "inmemory",
		BoltDBPath: "data/skein.db",
	}
}

// AddFlags binds store flags to the given flag set.
func (o *StoreOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Type, "store-type", o.Type, "Persistence backend: inmemory or boltdb.")
	fs.StringVar(&o.BoltDBPath, "store-boltdb-path", o.BoltDBPath, "BoltDB file path (store-type=boltdb).")
}

// Validate checks the store options.
func (o *StoreOptions) Validate() []error {
	var errs []error
	switch o.Type {
	case "inmemory", "boltdb":
	default:
		errs = append(errs, fmt.Errorf("unknown store-type %q (want inmemory or boltdb)", o.Type))
	}
	return errs
}

// AuthOptions configure gateway bearer authentication.
type AuthOptions struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Token   string `json:"token"   mapstructure:"token"`
}

// NewAuthOptions returns auth disabled by default (local-first daemon).
func NewAuthOptions() *AuthOptions {
	return &AuthOptions{}
}

// AddFlags binds auth flags to the given flag set.
func (o *AuthOptions) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Enabled, "auth-enabled", o.Enabled, "Require Bearer token authentication.")
	fs.StringVar(&o.Token, "auth-token", o.Token, "Bearer token value (also SKEIN_GATEWAY_TOKEN env).")
}

// MiscOptions hold remaining daemon knobs.
type MiscOptions struct {
	LogLevel    string        `json:"log_level"    mapstructure:"log_level"`
	LogFile     string        `json:"log_file"     mapstructure:"log_file"`
	EnablePprof bool          `json:"enable_pprof" mapstructure:"enable_pprof"`
	HintTTL     time.Duration `json:"hint_ttl"     mapstructure:"hint_ttl"`
}

// NewMiscOptions returns info-level logging and pprof off.
func NewMiscOptions() *MiscOptions {
	return &MiscOptions{
		LogLevel: "info",
	}
}

// AddFlags binds misc flags to the given flag set.
func (o *MiscOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Minimum log level: debug, info, warn, error.")
	fs.StringVar(&o.LogFile, "log-file", o.LogFile, "Log file path (stderr only when empty).")
	fs.BoolVar(&o.EnablePprof, "enable-pprof", o.EnablePprof, "Expose pprof endpoints under /debug/pprof.")
	fs.DurationVar(&o.HintTTL, "hint-ttl", o.HintTTL, "How long pending-call hints stay readable.")
}

// Options is the full skeind configuration surface.
type Options struct {
	Serving *ServingOptions `json:"serving" mapstructure:"serving"`
	Store   *StoreOptions   `json:"store"   mapstructure:"store"`
	Auth    *AuthOptions    `json:"auth"    mapstructure:"auth"`
	Misc    *MiscOptions    `json:"misc"    mapstructure:"misc"`
}

// NewOptions returns an Options with all defaults filled.
func NewOptions() *Options {
	return &Options{
		Serving: NewServingOptions(),
		Store:   NewStoreOptions(),
		Auth:    NewAuthOptions(),
		Misc:    NewMiscOptions(),
	}
}

// AddFlags binds every option group to the given flag set.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.Serving.AddFlags(fs)
	o.Store.AddFlags(fs)
	o.Auth.AddFlags(fs)
	o.Misc.AddFlags(fs)
}

// Validate aggregates validation errors from all option groups.
func (o *Options) Validate() []error {
	var errs []error
	errs = append(errs, o.Serving.Validate()...)
	errs = append(errs, o.Store.Validate()...)
	return errs
}
