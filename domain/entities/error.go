package entities

import "fmt"

// ErrorDetail provides structured error information.
// Used by every host binding as the wire format of a failed call.
// Error Types: "conversion", "argument", "not_found", "panic", "internal"
type ErrorDetail struct {
	// Wrapped contains a wrapped error for error chains.
	Wrapped *ErrorDetail `json:"wrapped,omitempty" yaml:"wrapped,omitempty"`

	// Details contains additional error context.
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`

	// Message is a human-readable error description.
	Message string `json:"message" yaml:"message"`

	// Type categorizes the error.
	Type string `json:"type" yaml:"type"`

	// Code is a machine-readable error code.
	Code string `json:"code,omitempty" yaml:"code,omitempty"`

	// Stack contains the stack trace for panic errors.
	Stack []byte `json:"stack,omitempty" yaml:"-"`
}

// Error implements the error interface.
func (e *ErrorDetail) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Type != "" && e.Type != "internal" {
		msg = fmt.Sprintf("%s: %s", e.Type, msg)
	}
	if e.Code != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Code)
	}
	if e.Wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Wrapped.Error())
	}
	return msg
}

// NewErrorDetail creates a new ErrorDetail with the given type and message.
func NewErrorDetail(errorType, message string) *ErrorDetail {
	return &ErrorDetail{
		Type:    errorType,
		Message: message,
	}
}

// WithDetails attaches details and returns the receiver.
func (e *ErrorDetail) WithDetails(details map[string]any) *ErrorDetail {
	e.Details = details
	return e
}

// WithWrapped records the detail of an underlying error and returns the
// receiver.
func (e *ErrorDetail) WithWrapped(inner *ErrorDetail) *ErrorDetail {
	e.Wrapped = inner
	return e
}

// WithCode sets the code and returns the receiver.
func (e *ErrorDetail) WithCode(code string) *ErrorDetail {
	e.Code = code
	return e
}
