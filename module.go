package arith

import (
	"context"

	"github.com/reglet-dev/arith/domain/entities"
	"github.com/reglet-dev/arith/surface"
)

// ModuleName is the handle hosts import the functions under.
const ModuleName = "arith"

const (
	addDoc         = "This function adds two unsigned 64-bit integers."
	sumAsStringDoc = "Formats the sum of two numbers as string."
)

var module *surface.Module

func init() {
	m, err := NewModule()
	if err != nil {
		panic("arith: " + err.Error())
	}
	surface.MustRegister(m)
	module = m
}

// Module returns the registered "arith" module handle.
func Module() *surface.Module {
	return module
}

// addArgs documents the arguments of add for the manifest schema.
type addArgs struct {
	A uint64 `json:"a" jsonschema:"description=First operand"`
	B uint64 `json:"b,omitempty" jsonschema:"description=Second operand,default=0"`
}

// sumAsStringArgs documents the arguments of sum_as_string for the manifest schema.
type sumAsStringArgs struct {
	A float64 `json:"a" jsonschema:"description=Floating-point operand"`
	B uint    `json:"b" jsonschema:"description=Non-negative integer operand,minimum=0"`
}

// Backend computes the functions of the module. The native backend runs
// them in-process; a WebAssembly guest build can stand in for it.
type Backend interface {
	Add(ctx context.Context, a, b uint64) (uint64, error)
	SumAsString(ctx context.Context, a float64, b uint) (string, error)
}

type nativeBackend struct{}

func (nativeBackend) Add(_ context.Context, a, b uint64) (uint64, error) {
	return Add(a, b), nil
}

func (nativeBackend) SumAsString(_ context.Context, a float64, b uint) (string, error) {
	return SumAsString(a, b), nil
}

// NewModule builds a fresh, unregistered "arith" module. Extra options are
// applied after the defaults, so callers can add middleware such as
// logging. The package-level handle returned by Module is built with no
// extra options.
func NewModule(opts ...surface.Option) (*surface.Module, error) {
	return NewModuleWithBackend(nativeBackend{}, opts...)
}

// NewModuleWithBackend builds an "arith" module whose functions bind and
// convert arguments as usual but delegate the arithmetic to backend.
func NewModuleWithBackend(backend Backend, opts ...surface.Option) (*surface.Module, error) {
	base := []surface.Option{
		surface.WithDoc("A native module exposing integer addition and float formatting."),
		surface.WithMiddleware(surface.PanicRecoveryMiddleware()),
		surface.WithFunction(surface.Function{
			Name:       "add",
			Doc:        addDoc,
			Returns:    entities.TypeU64,
			ArgsSchema: addArgs{},
			Params: []entities.Param{
				{Name: "a", Type: entities.TypeU64, PositionalOnly: true},
				{Name: "b", Type: entities.TypeU64, PositionalOnly: true, Default: uint64(0)},
			},
			Handler: addHandler(backend),
		}),
		surface.WithFunction(surface.Function{
			Name:       "sum_as_string",
			Doc:        sumAsStringDoc,
			Returns:    entities.TypeString,
			ArgsSchema: sumAsStringArgs{},
			Params: []entities.Param{
				{Name: "a", Type: entities.TypeF64},
				{Name: "b", Type: entities.TypeUsize},
			},
			Handler: sumAsStringHandler(backend),
		}),
	}
	return surface.NewModule(ModuleName, append(base, opts...)...)
}

func addHandler(backend Backend) surface.Handler {
	return func(ctx context.Context, args surface.Args) (any, error) {
		a, err := args.Uint64(0)
		if err != nil {
			return nil, err
		}
		b, err := args.Uint64(1)
		if err != nil {
			return nil, err
		}
		return backend.Add(ctx, a, b)
	}
}

func sumAsStringHandler(backend Backend) surface.Handler {
	return func(ctx context.Context, args surface.Args) (any, error) {
		a, err := args.Float64(0)
		if err != nil {
			return nil, err
		}
		b, err := args.Uint(1)
		if err != nil {
			return nil, err
		}
		return backend.SumAsString(ctx, a, b)
	}
}
