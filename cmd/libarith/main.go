//go:build cgo

// Command libarith builds the arith module as a C shared library for hosts
// that bind native code through a C foreign-function interface.
//
// Build:
//
//	go build -buildmode=c-shared -o libarith.so ./cmd/libarith
//
// Strings returned by the library are allocated with malloc and must be
// released with arith_free. Functions that can fail return a sentinel
// (NULL) and record the error, which arith_last_error returns as JSON.
package main

/*
#include <stdlib.h>
#include <stdint.h>
*/
import "C"

import (
	"context"
	"unsafe"

	"github.com/reglet-dev/arith"
	"github.com/reglet-dev/arith/internal/lasterror"
)

//export arith_free
func arith_free(p unsafe.Pointer) { C.free(p) }

//export arith_last_error
func arith_last_error() *C.char {
	return C.CString(lasterror.JSON())
}

//export arith_add
func arith_add(a, b C.uint64_t) C.uint64_t {
	return C.uint64_t(arith.Add(uint64(a), uint64(b)))
}

//export arith_add1
func arith_add1(a C.uint64_t) C.uint64_t {
	return arith_add(a, 0)
}

//export arith_sum_as_string
func arith_sum_as_string(a C.double, b C.int64_t) *C.char {
	var out *C.char
	lasterror.Capture("sum_as_string", func() error {
		result, err := arith.Module().Invoke(context.Background(), "sum_as_string", []any{float64(a), int64(b)})
		if err != nil {
			return err
		}
		out = C.CString(result.(string))
		return nil
	})
	return out
}

func main() {}
