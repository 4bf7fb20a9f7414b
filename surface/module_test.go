package surface

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/arith/domain/entities"
	domainerrors "github.com/reglet-dev/arith/domain/errors"
)

// echoFunction returns its bound arguments unchanged.
func echoFunction(name string, params ...entities.Param) Function {
	return Function{
		Name:    name,
		Returns: entities.TypeU64,
		Params:  params,
		Handler: func(ctx context.Context, args Args) (any, error) {
			out := make([]any, args.Len())
			for i := range out {
				out[i] = args.Value(i)
			}
			return out, nil
		},
	}
}

func sumFunction() Function {
	return Function{
		Name:    "sum",
		Doc:     "Adds two integers.",
		Returns: entities.TypeU64,
		Params: []entities.Param{
			{Name: "a", Type: entities.TypeU64, PositionalOnly: true},
			{Name: "b", Type: entities.TypeU64, PositionalOnly: true, Default: uint64(0)},
		},
		Handler: func(ctx context.Context, args Args) (any, error) {
			a, err := args.Uint64(0)
			if err != nil {
				return nil, err
			}
			b, err := args.Uint64(1)
			if err != nil {
				return nil, err
			}
			return a + b, nil
		},
	}
}

func TestNewModule_EmptyName(t *testing.T) {
	_, err := NewModule("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestNewModule_Empty(t *testing.T) {
	m, err := NewModule("empty", WithDoc("nothing here"))
	require.NoError(t, err)
	assert.Equal(t, "empty", m.Name())
	assert.Equal(t, "nothing here", m.Doc())
	assert.Empty(t, m.Names())
}

func TestNewModule_DuplicateFunction(t *testing.T) {
	_, err := NewModule("dup",
		WithFunction(sumFunction()),
		WithFunction(sumFunction()),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate function name")
}

func TestNewModule_InvalidDefinitions(t *testing.T) {
	tests := []struct {
		name    string
		fn      Function
		wantErr string
	}{
		{
			name:    "empty name",
			fn:      Function{Returns: entities.TypeU64, Handler: sumFunction().Handler},
			wantErr: "cannot be empty",
		},
		{
			name:    "missing handler",
			fn:      Function{Name: "noop", Returns: entities.TypeU64},
			wantErr: "Handler",
		},
		{
			name:    "bad name",
			fn:      Function{Name: "two words", Returns: entities.TypeU64, Handler: sumFunction().Handler},
			wantErr: "Name",
		},
		{
			name:    "unknown result type",
			fn:      Function{Name: "f", Returns: "i128", Handler: sumFunction().Handler},
			wantErr: "Returns",
		},
		{
			name: "unknown param type",
			fn: echoFunction("f",
				entities.Param{Name: "a", Type: "str"},
			),
			wantErr: "Type",
		},
		{
			name: "required after optional",
			fn: echoFunction("f",
				entities.Param{Name: "a", Type: entities.TypeU64, Default: uint64(1)},
				entities.Param{Name: "b", Type: entities.TypeU64},
			),
			wantErr: "follows a parameter with a default",
		},
		{
			name: "positional-only after keyword",
			fn: echoFunction("f",
				entities.Param{Name: "a", Type: entities.TypeU64},
				entities.Param{Name: "b", Type: entities.TypeU64, PositionalOnly: true},
			),
			wantErr: "follows a keyword parameter",
		},
		{
			name: "duplicate param",
			fn: echoFunction("f",
				entities.Param{Name: "a", Type: entities.TypeU64},
				entities.Param{Name: "a", Type: entities.TypeU64},
			),
			wantErr: "duplicate parameter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewModule("bad", WithFunction(tt.fn))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestModule_Call(t *testing.T) {
	m, err := NewModule("calc", WithFunction(sumFunction()))
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("all positional", func(t *testing.T) {
		got, err := m.Call(ctx, "sum", 5, 7)
		require.NoError(t, err)
		assert.Equal(t, uint64(12), got)
	})

	t.Run("default applied", func(t *testing.T) {
		got, err := m.Call(ctx, "sum", 5)
		require.NoError(t, err)
		assert.Equal(t, uint64(5), got)
	})

	t.Run("unknown function", func(t *testing.T) {
		_, err := m.Call(ctx, "mul", 1, 2)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
		assert.Contains(t, err.Error(), "calc.mul")
	})

	t.Run("conversion error names the parameter", func(t *testing.T) {
		_, err := m.Call(ctx, "sum", 1, -2)
		require.Error(t, err)

		var convErr *domainerrors.ConversionError
		require.True(t, errors.As(err, &convErr))
		assert.Equal(t, "b", convErr.Param)
		assert.Equal(t, domainerrors.ReasonOutOfRange, convErr.Reason)
	})
}

func TestModule_CallKw_Binding(t *testing.T) {
	m, err := NewModule("bind",
		WithFunction(echoFunction("posonly",
			entities.Param{Name: "a", Type: entities.TypeU64, PositionalOnly: true},
			entities.Param{Name: "b", Type: entities.TypeU64, PositionalOnly: true, Default: uint64(0)},
		)),
		WithFunction(echoFunction("keyword",
			entities.Param{Name: "a", Type: entities.TypeF64},
			entities.Param{Name: "b", Type: entities.TypeUsize},
		)),
	)
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name     string
		function string
		args     []any
		kwargs   map[string]any
		want     []any
		wantErr  string
	}{
		{
			name:     "positional only with default",
			function: "posonly",
			args:     []any{1},
			want:     []any{1, uint64(0)},
		},
		{
			name:     "too many positional with default",
			function: "posonly",
			args:     []any{1, 2, 3},
			wantErr:  "posonly() takes from 1 to 2 positional arguments but 3 were given",
		},
		{
			name:     "too many positional",
			function: "keyword",
			args:     []any{1, 2, 3},
			wantErr:  "keyword() takes 2 positional arguments but 3 were given",
		},
		{
			name:     "positional-only passed by keyword",
			function: "posonly",
			kwargs:   map[string]any{"a": 1},
			wantErr:  "got some positional-only arguments passed as keyword arguments: 'a'",
		},
		{
			name:     "missing required",
			function: "posonly",
			wantErr:  "posonly() missing 1 required argument: 'a'",
		},
		{
			name:     "keywords",
			function: "keyword",
			kwargs:   map[string]any{"b": 3, "a": 2.5},
			want:     []any{2.5, 3},
		},
		{
			name:     "mixed",
			function: "keyword",
			args:     []any{2.5},
			kwargs:   map[string]any{"b": 3},
			want:     []any{2.5, 3},
		},
		{
			name:     "unknown keyword",
			function: "keyword",
			args:     []any{2.5, 3},
			kwargs:   map[string]any{"c": 1},
			wantErr:  "got an unexpected keyword argument 'c'",
		},
		{
			name:     "bound twice",
			function: "keyword",
			args:     []any{2.5},
			kwargs:   map[string]any{"a": 1.0, "b": 2},
			wantErr:  "got multiple values for argument 'a'",
		},
		{
			name:     "missing several",
			function: "keyword",
			wantErr:  "keyword() missing 2 required arguments: 'a', 'b'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.CallKw(ctx, tt.function, tt.args, tt.kwargs)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domainerrors.ErrArgument))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModule_Invoke(t *testing.T) {
	m, err := NewModule("inv", WithFunction(sumFunction()))
	require.NoError(t, err)

	got, err := m.Invoke(context.Background(), "sum", []any{uint64(2), uint64(3)})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), got)

	_, err = m.Invoke(context.Background(), "sum", []any{uint64(2)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrArgument))

	_, err = m.Invoke(context.Background(), "nope", nil)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestModule_Manifest(t *testing.T) {
	type sumArgs struct {
		A uint64 `json:"a"`
		B uint64 `json:"b,omitempty"`
	}
	fn := sumFunction()
	fn.ArgsSchema = sumArgs{}

	m, err := NewModule("calc", WithDoc("Calculator."), WithFunction(fn), WithFunction(echoFunction("echo")))
	require.NoError(t, err)

	manifest := m.Manifest()
	assert.Equal(t, "calc", manifest.Name)
	assert.Equal(t, "Calculator.", manifest.Doc)
	require.Len(t, manifest.Functions, 2)

	// Sorted by name.
	assert.Equal(t, "echo", manifest.Functions[0].Name)
	assert.Empty(t, manifest.Functions[0].Schema)

	sum := manifest.Functions[1]
	assert.Equal(t, "sum", sum.Name)
	assert.Equal(t, "Adds two integers.", sum.Doc)
	assert.Equal(t, entities.TypeU64, sum.Returns)
	assert.Equal(t, "sum(a, b=0, /)", sum.Signature())
	assert.Contains(t, string(sum.Schema), `"properties"`)
}

func TestModule_Function(t *testing.T) {
	m, err := NewModule("calc", WithFunction(sumFunction()))
	require.NoError(t, err)

	fn, ok := m.Function("sum")
	require.True(t, ok)
	assert.Len(t, fn.Params, 2)
	assert.True(t, m.Has("sum"))

	_, ok = m.Function("missing")
	assert.False(t, ok)
	assert.False(t, m.Has("missing"))
}
