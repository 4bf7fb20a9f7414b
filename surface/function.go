package surface

import (
	"context"
	"errors"

	"github.com/reglet-dev/arith/convert"
	"github.com/reglet-dev/arith/domain/entities"
	domainerrors "github.com/reglet-dev/arith/domain/errors"
)

// Handler is the body of an exported function. It receives arguments that
// are already bound to parameters and converts them through Args.
type Handler func(ctx context.Context, args Args) (any, error)

// Function describes one exported function.
type Function struct {
	Handler Handler `validate:"required"`

	// ArgsSchema is an optional struct value reflected into the JSON schema
	// published in the module manifest.
	ArgsSchema any

	Name    string              `validate:"required,excludesall= .-"`
	Doc     string
	Returns entities.NativeType `validate:"required,oneof=u64 usize f64 str"`
	Params  []entities.Param    `validate:"dive"`
}

// Args holds the arguments of one call, bound in parameter order with
// defaults already applied.
type Args struct {
	function string
	params   []entities.Param
	values   []any
}

// Len returns the number of bound arguments.
func (a Args) Len() int {
	return len(a.values)
}

// Value returns the raw host value of argument i.
func (a Args) Value(i int) any {
	return a.values[i]
}

// Uint64 converts argument i to an unsigned 64-bit integer.
func (a Args) Uint64(i int) (uint64, error) {
	v, err := convert.ToUint64(a.values[i])
	return v, a.stamp(i, err)
}

// Uint converts argument i to a platform-word unsigned integer.
func (a Args) Uint(i int) (uint, error) {
	v, err := convert.ToUint(a.values[i])
	return v, a.stamp(i, err)
}

// Float64 converts argument i to a double.
func (a Args) Float64(i int) (float64, error) {
	v, err := convert.ToFloat64(a.values[i])
	return v, a.stamp(i, err)
}

// stamp records the parameter name on a conversion error.
func (a Args) stamp(i int, err error) error {
	if err == nil {
		return nil
	}
	var convErr *domainerrors.ConversionError
	if errors.As(err, &convErr) && convErr.Param == "" && i < len(a.params) {
		convErr.Param = a.params[i].Name
	}
	return err
}
