package surface

import (
	"context"

	"github.com/google/uuid"
)

// CallContext wraps a standard context.Context with the identity of the
// call being dispatched. Middleware reads it to label logs and errors.
type CallContext interface {
	context.Context

	// ModuleName returns the name of the module handle being called.
	ModuleName() string

	// FunctionName returns the name of the function being called.
	FunctionName() string

	// CallID returns an identifier unique to this call.
	CallID() string
}

type callContext struct {
	context.Context
	module   string
	function string
	callID   string
}

// NewCallContext creates a CallContext wrapping the given context.
func NewCallContext(ctx context.Context, module, function string) CallContext {
	return &callContext{
		Context:  ctx,
		module:   module,
		function: function,
		callID:   uuid.NewString(),
	}
}

func (c *callContext) ModuleName() string   { return c.module }
func (c *callContext) FunctionName() string { return c.function }
func (c *callContext) CallID() string       { return c.callID }

// CallContextFrom extracts a CallContext from ctx.
// If ctx is already a CallContext for the same function it is returned
// unchanged; otherwise a new one is created.
func CallContextFrom(ctx context.Context, module, function string) CallContext {
	if cc, ok := ctx.(CallContext); ok && cc.ModuleName() == module && cc.FunctionName() == function {
		return cc
	}
	return NewCallContext(ctx, module, function)
}
