package host

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"

	"github.com/reglet-dev/arith"
	domainerrors "github.com/reglet-dev/arith/domain/errors"
	"github.com/reglet-dev/arith/internal/testutil"
)

func newExecutor(t *testing.T, opts ...Option) (context.Context, *Executor) {
	t.Helper()
	ctx := context.Background()
	base := []Option{
		WithRuntimeConfig(wazero.NewRuntimeConfigInterpreter()),
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
	}
	e, err := NewExecutor(ctx, append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close(ctx) })
	return ctx, e
}

func TestNewExecutor(t *testing.T) {
	ctx := context.Background()
	e, err := NewExecutor(ctx)
	require.NoError(t, err)
	assert.NoError(t, e.Close(ctx))
}

func TestGuest_Add(t *testing.T) {
	ctx, e := newExecutor(t)
	g, err := e.LoadGuest(ctx, testutil.GuestWasm)
	require.NoError(t, err)

	got, err := g.Add(ctx, 5, 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), got)

	got, err = g.Add(ctx, math.MaxUint64, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got)
}

func TestGuest_SumAsString(t *testing.T) {
	ctx, e := newExecutor(t)
	g, err := e.LoadGuest(ctx, testutil.GuestWasm)
	require.NoError(t, err)

	got, err := g.SumAsString(ctx, 2.5, 3)
	require.NoError(t, err)
	assert.Equal(t, "5.5", got)
}

func TestGuest_SumAsStringTrap(t *testing.T) {
	ctx, e := newExecutor(t)
	g, err := e.LoadGuest(ctx, testutil.GuestWasm)
	require.NoError(t, err)

	// A word above MaxInt64 reaches the guest as a negative i64.
	_, err = g.SumAsString(ctx, 2.5, math.MaxUint)
	if math.MaxUint == math.MaxUint64 {
		require.Error(t, err)
		assert.Contains(t, err.Error(), "guest call sum_as_string failed")
	}

	// The instance keeps working after a trap.
	got, err := g.Add(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got)
}

func TestGuest_Call(t *testing.T) {
	ctx, e := newExecutor(t)
	g, err := e.LoadGuest(ctx, testutil.GuestWasm)
	require.NoError(t, err)

	results, err := g.Call(ctx, "allocate", 10)
	require.NoError(t, err)
	assert.Equal(t, []uint64{64}, results)

	_, err = g.Call(ctx, "mul", 1, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `export "mul" not found`)
}

func TestGuest_ReadPacked(t *testing.T) {
	ctx, e := newExecutor(t)
	g, err := e.LoadGuest(ctx, testutil.GuestWasm)
	require.NoError(t, err)

	data, err := g.readPacked(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, data)

	_, err = g.readPacked(ctx, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "null pointer")

	// One page is 65536 bytes.
	_, err = g.readPacked(ctx, uint64(65530)<<32|100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside guest memory")
}

func TestLoadGuest_MissingExports(t *testing.T) {
	ctx, e := newExecutor(t, WithHostModules(arith.Module()))

	// Exports memory and call_sum, but neither add nor sum_as_string.
	_, err := e.LoadGuest(ctx, testutil.SumCallerWasm)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "guest does not export \"")
}

func TestLoadGuest_NoMemory(t *testing.T) {
	ctx, e := newExecutor(t)

	g, err := e.LoadGuest(ctx, testutil.NoMemoryGuestWasm)
	require.Error(t, err)
	assert.Nil(t, g)
	assert.Contains(t, err.Error(), "guest does not export memory")
}

func TestLoadGuest_WrongSignature(t *testing.T) {
	ctx, e := newExecutor(t)

	g, err := e.LoadGuest(ctx, testutil.BadSignatureGuestWasm)
	require.Error(t, err)
	assert.Nil(t, g)
	assert.Contains(t, err.Error(), `guest export "add" has signature`)
}

func TestLoadGuest_InvalidBinary(t *testing.T) {
	ctx, e := newExecutor(t)

	_, err := e.LoadGuest(ctx, []byte("not wasm"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compile guest")
}

func TestLoadGuest_UnresolvedImport(t *testing.T) {
	ctx, e := newExecutor(t)

	_, err := e.LoadGuest(ctx, testutil.AddCallerWasm)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to instantiate guest")
}

func TestGuest_BacksModule(t *testing.T) {
	ctx, e := newExecutor(t)
	g, err := e.LoadGuest(ctx, testutil.GuestWasm)
	require.NoError(t, err)

	m, err := arith.NewModuleWithBackend(g)
	require.NoError(t, err)

	got, err := m.Call(ctx, "add", 40)
	require.NoError(t, err)
	assert.Equal(t, uint64(40), got)

	got, err = m.CallKw(ctx, "sum_as_string", nil, map[string]any{"a": 2.5, "b": 3})
	require.NoError(t, err)
	assert.Equal(t, "5.5", got)

	_, err = m.Call(ctx, "sum_as_string", 2.5, -3)
	assert.ErrorIs(t, err, domainerrors.ErrConversion)
}
