package surface

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/arith/domain/entities"
	domainerrors "github.com/reglet-dev/arith/domain/errors"
)

func panickingFunction() Function {
	return Function{
		Name:    "explode",
		Returns: entities.TypeU64,
		Handler: func(ctx context.Context, args Args) (any, error) {
			panic("boom")
		},
	}
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	m, err := NewModule("risky",
		WithMiddleware(PanicRecoveryMiddleware()),
		WithFunction(panickingFunction()),
	)
	require.NoError(t, err)

	result, err := m.Call(context.Background(), "explode")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domainerrors.ErrPanic))

	var panicErr *domainerrors.PanicError
	require.True(t, errors.As(err, &panicErr))
	assert.Equal(t, "explode", panicErr.Function)
	assert.Equal(t, "boom", panicErr.Value)
	assert.NotEmpty(t, panicErr.Stack)
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m, err := NewModule("logged",
		WithMiddleware(LoggingMiddleware(logger)),
		WithFunction(sumFunction()),
	)
	require.NoError(t, err)

	_, err = m.Call(context.Background(), "sum", 1, 2)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "call completed")
	assert.Contains(t, buf.String(), "function=sum")
	assert.Contains(t, buf.String(), "module=logged")
	assert.Contains(t, buf.String(), "call_id=")

	buf.Reset()
	_, err = m.Call(context.Background(), "sum", 1, "two")
	require.Error(t, err)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "call failed")
}

func TestMiddleware_Order(t *testing.T) {
	var order []string
	tag := func(label string) Middleware {
		return func(next Handler) Handler {
			return func(ctx context.Context, args Args) (any, error) {
				order = append(order, label)
				return next(ctx, args)
			}
		}
	}

	m, err := NewModule("ordered",
		WithMiddleware(tag("first"), tag("second")),
		WithFunction(sumFunction()),
	)
	require.NoError(t, err)

	_, err = m.Call(context.Background(), "sum", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestCallContext(t *testing.T) {
	var seen CallContext
	fn := Function{
		Name:    "peek",
		Returns: entities.TypeU64,
		Handler: func(ctx context.Context, args Args) (any, error) {
			seen, _ = ctx.(CallContext)
			return uint64(0), nil
		},
	}
	m, err := NewModule("ctx", WithFunction(fn))
	require.NoError(t, err)

	_, err = m.Call(context.Background(), "peek")
	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Equal(t, "ctx", seen.ModuleName())
	assert.Equal(t, "peek", seen.FunctionName())
	assert.Len(t, seen.CallID(), 36)

	// An existing context for the same call is reused.
	assert.Same(t, seen, CallContextFrom(seen, "ctx", "peek"))
	assert.NotSame(t, seen, CallContextFrom(seen, "ctx", "other"))
}
