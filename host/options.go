package host

import (
	"log/slog"

	"github.com/tetratelabs/wazero"

	"github.com/reglet-dev/arith/surface"
)

// Option defines a functional option for configuring the Executor.
type Option func(*Executor)

// WithLogger sets the logger for guest calls and host imports.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRuntimeConfig sets the wazero runtime configuration, for example the
// interpreter in tests.
func WithRuntimeConfig(cfg wazero.RuntimeConfig) Option {
	return func(e *Executor) {
		e.runtimeConfig = cfg
	}
}

// WithHostModules registers native modules as host imports, so guests can
// import their functions by module name.
func WithHostModules(modules ...*surface.Module) Option {
	return func(e *Executor) {
		e.hostModules = append(e.hostModules, modules...)
	}
}
