package surface

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/reglet-dev/arith/application/schema"
	"github.com/reglet-dev/arith/domain/entities"
	domainerrors "github.com/reglet-dev/arith/domain/errors"
)

// validate is a package-level singleton; building a validator is expensive.
var validate = validator.New()

// Module is an immutable, named collection of exported functions.
// Once created via NewModule, functions cannot be added or removed.
type Module struct {
	functions map[string]*boundFunction
	name      string
	doc       string
	names     []string // sorted for consistent iteration
}

type boundFunction struct {
	handler Handler // fn.Handler wrapped in the middleware chain
	schema  json.RawMessage
	fn      Function
}

// moduleBuilder accumulates configuration during module construction.
type moduleBuilder struct {
	functions  map[string]Function
	doc        string
	middleware []Middleware
	errors     []error
}

// Option is a functional option for configuring a Module.
type Option func(*moduleBuilder)

// NewModule creates an immutable Module with the given options.
// Returns an error if the name is empty, a function name is registered
// twice, or a function definition is invalid.
//
// Example usage:
//
//	m, err := surface.NewModule("arith",
//	    surface.WithMiddleware(surface.PanicRecoveryMiddleware()),
//	    surface.WithFunction(addFunction),
//	)
func NewModule(name string, opts ...Option) (*Module, error) {
	if name == "" {
		return nil, fmt.Errorf("module name cannot be empty")
	}

	b := &moduleBuilder{
		functions: make(map[string]Function),
	}
	for _, opt := range opts {
		opt(b)
	}

	if len(b.errors) > 0 {
		return nil, fmt.Errorf("module %s: %w", name, b.errors[0])
	}

	m := &Module{
		functions: make(map[string]*boundFunction, len(b.functions)),
		name:      name,
		doc:       b.doc,
		names:     make([]string, 0, len(b.functions)),
	}

	for fname, fn := range b.functions {
		var raw json.RawMessage
		if fn.ArgsSchema != nil {
			data, err := schema.GenerateSchema(fn.ArgsSchema)
			if err != nil {
				return nil, fmt.Errorf("module %s: function %s: %w", name, fname, err)
			}
			raw = data
		}

		// Apply middleware in reverse order so the first one wraps outermost.
		wrapped := fn.Handler
		for i := len(b.middleware) - 1; i >= 0; i-- {
			wrapped = b.middleware[i](wrapped)
		}

		m.functions[fname] = &boundFunction{handler: wrapped, schema: raw, fn: fn}
		m.names = append(m.names, fname)
	}
	sort.Strings(m.names)

	return m, nil
}

// WithDoc sets the module docstring.
func WithDoc(doc string) Option {
	return func(b *moduleBuilder) {
		b.doc = doc
	}
}

// WithFunction registers a function on the module.
func WithFunction(fn Function) Option {
	return func(b *moduleBuilder) {
		if err := b.addFunction(fn); err != nil {
			b.errors = append(b.errors, err)
		}
	}
}

// WithMiddleware adds middleware to every function of the module.
// Middleware executes in FIFO order (first added wraps first).
func WithMiddleware(mw ...Middleware) Option {
	return func(b *moduleBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}

func (b *moduleBuilder) addFunction(fn Function) error {
	if fn.Name == "" {
		return fmt.Errorf("function name cannot be empty")
	}
	if _, exists := b.functions[fn.Name]; exists {
		return fmt.Errorf("duplicate function name: %q", fn.Name)
	}
	if err := validate.Struct(fn); err != nil {
		return fmt.Errorf("invalid function %s: %w", fn.Name, err)
	}
	if err := checkParams(fn); err != nil {
		return fmt.Errorf("invalid function %s: %w", fn.Name, err)
	}
	b.functions[fn.Name] = fn
	return nil
}

// checkParams enforces the ordering rules of the calling convention:
// positional-only parameters come first and required parameters never
// follow optional ones.
func checkParams(fn Function) error {
	seen := make(map[string]bool, len(fn.Params))
	sawOptional := false
	sawKeywordable := false
	for _, p := range fn.Params {
		if seen[p.Name] {
			return fmt.Errorf("duplicate parameter %q", p.Name)
		}
		seen[p.Name] = true

		if p.PositionalOnly && sawKeywordable {
			return fmt.Errorf("positional-only parameter %q follows a keyword parameter", p.Name)
		}
		if !p.PositionalOnly {
			sawKeywordable = true
		}

		if p.Required() && sawOptional {
			return fmt.Errorf("parameter %q without a default follows a parameter with a default", p.Name)
		}
		if !p.Required() {
			sawOptional = true
		}
	}
	return nil
}

// Name returns the module handle name.
func (m *Module) Name() string {
	return m.name
}

// Doc returns the module docstring.
func (m *Module) Doc() string {
	return m.doc
}

// Has returns true if a function with the given name is exported.
func (m *Module) Has(name string) bool {
	_, ok := m.functions[name]
	return ok
}

// Names returns a sorted list of all exported function names.
func (m *Module) Names() []string {
	result := make([]string, len(m.names))
	copy(result, m.names)
	return result
}

// Function returns the definition of an exported function.
func (m *Module) Function(name string) (Function, bool) {
	bf, ok := m.functions[name]
	if !ok {
		return Function{}, false
	}
	return bf.fn, true
}

// Call invokes a function with positional arguments only.
func (m *Module) Call(ctx context.Context, name string, args ...any) (any, error) {
	return m.CallKw(ctx, name, args, nil)
}

// CallKw invokes a function with positional and keyword arguments.
func (m *Module) CallKw(ctx context.Context, name string, args []any, kwargs map[string]any) (any, error) {
	bf, ok := m.functions[name]
	if !ok {
		return nil, &domainerrors.NotFoundError{Kind: "function", Name: m.name + "." + name}
	}

	values, err := bind(bf.fn, args, kwargs)
	if err != nil {
		return nil, err
	}

	cctx := CallContextFrom(ctx, m.name, name)
	return bf.handler(cctx, Args{function: name, params: bf.fn.Params, values: values})
}

// Invoke calls a function with exactly one value per parameter, skipping
// the calling-convention checks. Binary adapters whose signatures are fixed
// by the parameter list use it.
func (m *Module) Invoke(ctx context.Context, name string, values []any) (any, error) {
	bf, ok := m.functions[name]
	if !ok {
		return nil, &domainerrors.NotFoundError{Kind: "function", Name: m.name + "." + name}
	}
	if len(values) != len(bf.fn.Params) {
		return nil, &domainerrors.ArgumentError{
			Function: name,
			Message:  fmt.Sprintf("expects exactly %d arguments (%d given)", len(bf.fn.Params), len(values)),
		}
	}

	cctx := CallContextFrom(ctx, m.name, name)
	return bf.handler(cctx, Args{function: name, params: bf.fn.Params, values: values})
}

// Manifest describes the module and every function it exports.
func (m *Module) Manifest() *entities.ModuleManifest {
	manifest := &entities.ModuleManifest{
		Name:      m.name,
		Doc:       m.doc,
		Functions: make([]entities.FunctionManifest, 0, len(m.names)),
	}
	for _, name := range m.names {
		bf := m.functions[name]
		params := make([]entities.Param, len(bf.fn.Params))
		copy(params, bf.fn.Params)
		manifest.Functions = append(manifest.Functions, entities.FunctionManifest{
			Name:    bf.fn.Name,
			Doc:     bf.fn.Doc,
			Params:  params,
			Returns: bf.fn.Returns,
			Schema:  bf.schema,
		})
	}
	return manifest
}

// bind maps positional and keyword arguments onto fn's parameters and
// fills omitted ones from their defaults.
func bind(fn Function, args []any, kwargs map[string]any) ([]any, error) {
	params := fn.Params
	argErr := func(format string, a ...any) error {
		return &domainerrors.ArgumentError{Function: fn.Name, Message: fmt.Sprintf(format, a...)}
	}

	if len(args) > len(params) {
		required := 0
		for _, p := range params {
			if p.Required() {
				required++
			}
		}
		if required == len(params) {
			return nil, argErr("takes %d positional arguments but %d were given", len(params), len(args))
		}
		return nil, argErr("takes from %d to %d positional arguments but %d were given", required, len(params), len(args))
	}

	values := make([]any, len(params))
	bound := make([]bool, len(params))
	for i, v := range args {
		values[i] = v
		bound[i] = true
	}

	if len(kwargs) > 0 {
		keys := make([]string, 0, len(kwargs))
		for k := range kwargs {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			idx := paramIndex(params, key)
			switch {
			case idx < 0:
				return nil, argErr("got an unexpected keyword argument '%s'", key)
			case params[idx].PositionalOnly:
				return nil, argErr("got some positional-only arguments passed as keyword arguments: '%s'", key)
			case bound[idx]:
				return nil, argErr("got multiple values for argument '%s'", key)
			}
			values[idx] = kwargs[key]
			bound[idx] = true
		}
	}

	var missing []string
	for i, p := range params {
		if bound[i] {
			continue
		}
		if p.Required() {
			missing = append(missing, "'"+p.Name+"'")
			continue
		}
		values[i] = p.Default
	}
	if len(missing) == 1 {
		return nil, argErr("missing 1 required argument: %s", missing[0])
	}
	if len(missing) > 1 {
		return nil, argErr("missing %d required arguments: %s", len(missing), strings.Join(missing, ", "))
	}

	return values, nil
}

func paramIndex(params []entities.Param, name string) int {
	for i, p := range params {
		if p.Name == name {
			return i
		}
	}
	return -1
}
