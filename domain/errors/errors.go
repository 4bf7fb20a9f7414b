// Package errors provides the domain error types of the callable surface.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/reglet-dev/arith/domain/entities"
)

// Sentinels matched by errors.Is against the typed errors below.
var (
	ErrConversion = stdErrors.New("type conversion failed")
	ErrArgument   = stdErrors.New("invalid call arguments")
	ErrNotFound   = stdErrors.New("not found")
	ErrPanic      = stdErrors.New("handler panicked")
)

// DetailedError is implemented by errors that can render themselves as a
// structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return entities.NewErrorDetail("internal", err.Error())
}

// ConversionReason tells why a host value could not become a native value.
type ConversionReason string

const (
	// ReasonTypeMismatch means the value has the wrong kind (e.g. text for an integer).
	ReasonTypeMismatch ConversionReason = "type_mismatch"
	// ReasonOutOfRange means the value has the right kind but does not fit.
	ReasonOutOfRange ConversionReason = "out_of_range"
)

// ConversionError is raised when a host-supplied argument cannot be
// converted to the native type a parameter requires.
type ConversionError struct {
	Value  any
	Param  string
	Target entities.NativeType
	Got    string
	Reason ConversionReason
}

func (e *ConversionError) Error() string {
	var msg string
	switch e.Reason {
	case ReasonOutOfRange:
		msg = fmt.Sprintf("can't convert %v (%s) to %s: out of range", e.Value, e.Got, e.Target)
	default:
		msg = fmt.Sprintf("'%s' object cannot be converted to %s", e.Got, e.Target)
	}
	if e.Param != "" {
		return fmt.Sprintf("argument '%s': %s", e.Param, msg)
	}
	return msg
}

// Is reports whether target is ErrConversion.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// ToErrorDetail implements DetailedError.
func (e *ConversionError) ToErrorDetail() *entities.ErrorDetail {
	detail := entities.NewErrorDetail("conversion", e.Error()).WithCode(string(e.Reason))
	if e.Param != "" {
		detail.WithDetails(map[string]any{"param": e.Param, "target": string(e.Target)})
	}
	return detail
}

// ArgumentError reports a call whose shape does not match the function's
// parameters: too many arguments, unknown keywords and the like.
type ArgumentError struct {
	Function string
	Message  string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s() %s", e.Function, e.Message)
}

// Is reports whether target is ErrArgument.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrArgument
}

// ToErrorDetail implements DetailedError.
func (e *ArgumentError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("argument", e.Error()).WithCode(e.Function)
}

// NotFoundError reports an unknown module or function name.
type NotFoundError struct {
	Kind string // "module" or "function"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown %s: %s", e.Kind, e.Name)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ToErrorDetail implements DetailedError.
func (e *NotFoundError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("not_found", e.Error()).
		WithCode(e.Kind).
		WithDetails(map[string]any{"name": e.Name})
}

// PanicError wraps a value recovered from a panicking handler.
type PanicError struct {
	Value    any
	Function string
	Stack    []byte
}

func (e *PanicError) Error() string {
	var msg string
	switch v := e.Value.(type) {
	case error:
		msg = v.Error()
	case string:
		msg = v
	default:
		msg = fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("panic in %s: %s", e.Function, msg)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Is reports whether target is ErrPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrPanic
}

// ToErrorDetail implements DetailedError.
func (e *PanicError) ToErrorDetail() *entities.ErrorDetail {
	detail := entities.NewErrorDetail("panic", e.Error()).WithCode(e.Function)
	detail.Stack = e.Stack
	if inner := e.Unwrap(); inner != nil {
		detail.WithWrapped(ToErrorDetail(inner))
	}
	return detail
}
