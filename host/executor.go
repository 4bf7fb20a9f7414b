package host

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	arithwazero "github.com/reglet-dev/arith/infrastructure/wazero"
	"github.com/reglet-dev/arith/surface"
)

// Executor manages the wazero runtime guests run in.
type Executor struct {
	runtime       wazero.Runtime
	runtimeConfig wazero.RuntimeConfig
	logger        *slog.Logger
	hostModules   []*surface.Module
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	e := &Executor{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}

	if e.runtimeConfig == nil {
		e.runtimeConfig = wazero.NewRuntimeConfig()
	}
	rt := wazero.NewRuntimeWithConfig(ctx, e.runtimeConfig)
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to instantiate WASI: %w", err)
	}
	e.runtime = rt

	for _, m := range e.hostModules {
		if _, err := arithwazero.RegisterWithRuntime(ctx, rt, m, arithwazero.WithLogger(e.logger)); err != nil {
			_ = rt.Close(ctx)
			return nil, fmt.Errorf("failed to register host module %s: %w", m.Name(), err)
		}
	}

	return e, nil
}

// Close releases the runtime and every guest loaded into it.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// LoadGuest instantiates a guest module. Guests built as reactors export
// _initialize, which is called before any other export.
func (e *Executor) LoadGuest(ctx context.Context, wasmBytes []byte) (*Guest, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to compile guest: %w", err)
	}

	cfg := wazero.NewModuleConfig().WithName("").WithStartFunctions()
	mod, err := e.runtime.InstantiateModule(ctx, compiled, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate guest: %w", err)
	}

	if init := mod.ExportedFunction("_initialize"); init != nil {
		if _, err := init.Call(ctx); err != nil {
			_ = mod.Close(ctx)
			return nil, fmt.Errorf("failed to call _initialize: %w", err)
		}
	}

	g := &Guest{module: mod, logger: e.logger}
	if err := g.checkExports(); err != nil {
		_ = mod.Close(ctx)
		return nil, err
	}
	return g, nil
}

// requiredExports are the functions every arith guest build provides.
var requiredExports = map[string]struct {
	params  []api.ValueType
	results []api.ValueType
}{
	"add":           {[]api.ValueType{api.ValueTypeI64, api.ValueTypeI64}, []api.ValueType{api.ValueTypeI64}},
	"sum_as_string": {[]api.ValueType{api.ValueTypeF64, api.ValueTypeI64}, []api.ValueType{api.ValueTypeI64}},
}
