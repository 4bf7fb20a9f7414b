//go:build wasip1

// Command arith-wasm builds the arith module as a WebAssembly guest whose
// exports a WASM host calls directly.
//
// Build:
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o arith.wasm ./cmd/arith-wasm
//
// Exports:
//
//	add(a i64, b i64) i64
//	sum_as_string(a f64, b i64) i64   packed ptr<<32|len of the UTF-8 text
//	allocate(size i32) i32
//	deallocate(ptr i32, size i32)
//
// The host releases the text returned by sum_as_string with deallocate.
// A conversion failure (a negative b) traps.
package main

import (
	"context"

	"github.com/reglet-dev/arith"
	"github.com/reglet-dev/arith/internal/abi"
)

func main() {}

//go:wasmexport add
func add(a, b uint64) uint64 {
	return arith.Add(a, b)
}

//go:wasmexport sum_as_string
func sumAsString(a float64, b int64) uint64 {
	result, err := arith.Module().Invoke(context.Background(), "sum_as_string", []any{a, b})
	if err != nil {
		panic(err)
	}
	return abi.PtrFromString(result.(string))
}
