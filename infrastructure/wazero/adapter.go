package wazero

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/reglet-dev/arith/convert"
	"github.com/reglet-dev/arith/domain/entities"
	"github.com/reglet-dev/arith/surface"
)

// AdapterConfig holds configuration for the wazero adapter.
type AdapterConfig struct {
	// Logger receives call failures. Defaults to slog.Default().
	Logger *slog.Logger

	// ModuleName is the host module name guests import from.
	// Defaults to the surface module's name.
	ModuleName string
}

// AdapterOption configures the adapter.
type AdapterOption func(*AdapterConfig)

// WithModuleName overrides the host module name.
func WithModuleName(name string) AdapterOption {
	return func(c *AdapterConfig) {
		c.ModuleName = name
	}
}

// WithLogger sets the logger used for call failures.
func WithLogger(logger *slog.Logger) AdapterOption {
	return func(c *AdapterConfig) {
		c.Logger = logger
	}
}

func newAdapterConfig(m *surface.Module, opts []AdapterOption) AdapterConfig {
	cfg := AdapterConfig{ModuleName: m.Name()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}

// RegisterWithRuntime instantiates a host module exporting every function
// of m, and returns it.
func RegisterWithRuntime(ctx context.Context, runtime wazero.Runtime, m *surface.Module, opts ...AdapterOption) (api.Module, error) {
	cfg := newAdapterConfig(m, opts)
	builder := runtime.NewHostModuleBuilder(cfg.ModuleName)

	for _, name := range m.Names() {
		fn, _ := m.Function(name)

		params, results, err := signature(fn)
		if err != nil {
			return nil, fmt.Errorf("wazero: function %s: %w", name, err)
		}

		builder.NewFunctionBuilder().
			WithGoModuleFunction(newHostFunction(cfg, m, fn), params, results).
			WithParameterNames(parameterNames(fn)...).
			Export(name)
	}

	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, fmt.Errorf("wazero: instantiate host module %s: %w", cfg.ModuleName, err)
	}
	return mod, nil
}

// signature derives the WASM parameter and result types of fn.
func signature(fn surface.Function) (params, results []api.ValueType, err error) {
	params = make([]api.ValueType, 0, len(fn.Params)+2)
	for _, p := range fn.Params {
		vt, err := valueType(p.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		params = append(params, vt)
	}

	if fn.Returns == entities.TypeString {
		params = append(params, api.ValueTypeI32, api.ValueTypeI32)
		return params, []api.ValueType{api.ValueTypeI32}, nil
	}

	vt, err := valueType(fn.Returns)
	if err != nil {
		return nil, nil, fmt.Errorf("result: %w", err)
	}
	return params, []api.ValueType{vt}, nil
}

func valueType(t entities.NativeType) (api.ValueType, error) {
	switch t {
	case entities.TypeU64, entities.TypeUsize:
		return api.ValueTypeI64, nil
	case entities.TypeF64:
		return api.ValueTypeF64, nil
	default:
		return 0, fmt.Errorf("no WASM value type for %s", t)
	}
}

func parameterNames(fn surface.Function) []string {
	names := make([]string, 0, len(fn.Params)+2)
	for _, p := range fn.Params {
		names = append(names, p.Name)
	}
	if fn.Returns == entities.TypeString {
		names = append(names, "out_ptr", "out_cap")
	}
	return names
}

// newHostFunction decodes the WASM stack into host values, dispatches the
// call through the surface and encodes the result back onto the stack.
func newHostFunction(cfg AdapterConfig, m *surface.Module, fn surface.Function) api.GoModuleFunc {
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		values := make([]any, len(fn.Params))
		for i, p := range fn.Params {
			values[i] = decodeParam(p.Type, stack[i])
		}

		result, err := m.Invoke(ctx, fn.Name, values)
		if err != nil {
			cfg.Logger.WarnContext(ctx, "wazero: call failed",
				"module", cfg.ModuleName, "function", fn.Name, "error", err)
			panic(err) // wazero turns this into a trap for the guest
		}

		if err := encodeResult(mod, fn, stack, result); err != nil {
			cfg.Logger.ErrorContext(ctx, "wazero: failed to return result",
				"module", cfg.ModuleName, "function", fn.Name, "error", err)
			panic(err)
		}
	}
}

func decodeParam(t entities.NativeType, raw uint64) any {
	switch t {
	case entities.TypeF64:
		return api.DecodeF64(raw)
	case entities.TypeUsize:
		return int64(raw)
	default:
		return raw
	}
}

func encodeResult(mod api.Module, fn surface.Function, stack []uint64, result any) error {
	switch fn.Returns {
	case entities.TypeU64, entities.TypeUsize:
		u, err := convert.ToUint64(result)
		if err != nil {
			return err
		}
		stack[0] = u
	case entities.TypeF64:
		f, err := convert.ToFloat64(result)
		if err != nil {
			return err
		}
		stack[0] = api.EncodeF64(f)
	case entities.TypeString:
		s, ok := result.(string)
		if !ok {
			return fmt.Errorf("expected string result, got %T", result)
		}
		n := len(fn.Params)
		outPtr := api.DecodeU32(stack[n])
		outCap := api.DecodeU32(stack[n+1])
		if err := writeString(mod, outPtr, outCap, s); err != nil {
			return err
		}
		stack[0] = api.EncodeI32(int32(len(s))) //nolint:gosec // G115: rendered numbers are short
	default:
		return fmt.Errorf("unsupported result type %s", fn.Returns)
	}
	return nil
}

// writeString copies at most outCap bytes of s into guest memory at outPtr.
func writeString(mod api.Module, outPtr, outCap uint32, s string) error {
	if outCap == 0 {
		return nil
	}
	mem := mod.ExportedMemory("memory")
	if mem == nil {
		return fmt.Errorf("guest module exports no memory")
	}
	data := []byte(s)
	if uint32(len(data)) > outCap { //nolint:gosec // G115: rendered numbers are short
		data = data[:outCap]
	}
	if !mem.Write(outPtr, data) {
		return fmt.Errorf("output buffer [%d, %d) is out of guest memory range", outPtr, uint64(outPtr)+uint64(len(data)))
	}
	return nil
}
