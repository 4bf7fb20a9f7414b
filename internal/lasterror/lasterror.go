// Package lasterror keeps the most recent call error for C callers, which
// receive a sentinel return value and then ask what went wrong.
package lasterror

import (
	"encoding/json"
	"sync"

	domainerrors "github.com/reglet-dev/arith/domain/errors"
)

var state struct {
	sync.Mutex
	err error
}

// Set records err as the last error. Set(nil) clears it.
func Set(err error) {
	state.Lock()
	defer state.Unlock()
	state.err = err
}

// Get returns the last recorded error, or nil.
func Get() error {
	state.Lock()
	defer state.Unlock()
	return state.err
}

// JSON renders the last error as a structured ErrorDetail, or "{}" when
// there is none.
func JSON() string {
	err := Get()
	if err == nil {
		return "{}"
	}
	data, marshalErr := json.Marshal(domainerrors.ToErrorDetail(err))
	if marshalErr != nil {
		return `{"type":"internal","message":"failed to encode error"}`
	}
	return string(data)
}

// Capture runs fn, records its error (or clears the last error on success)
// and converts a panic into a recorded error. It reports whether fn
// succeeded.
func Capture(function string, fn func() error) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			Set(&domainerrors.PanicError{Value: r, Function: function})
			ok = false
		}
	}()

	err := fn()
	Set(err)
	return err == nil
}
