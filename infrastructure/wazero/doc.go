// Package wazero exposes a surface module to WebAssembly guests as a wazero
// host module, so a guest reaches the functions through its ordinary
// import mechanism:
//
//	(import "arith" "add" (func $add (param i64 i64) (result i64)))
//
// Each function gets a typed signature derived from its parameters:
//
//   - u64 and usize parameters are i64 (usize is read as signed, so a
//     negative guest value fails conversion instead of wrapping);
//   - f64 parameters are f64;
//   - a u64 or usize result is an i64, an f64 result is an f64;
//   - a str result appends two i32 parameters (output pointer and output
//     capacity in guest memory) and returns the full byte length as i32.
//     At most capacity bytes are written, so a guest can call once with
//     capacity 0 to size its buffer.
//
// A failing call traps: the guest's call aborts and the host sees the
// error from api.Function.Call.
//
// # Basic Usage
//
//	runtime := wazero.NewRuntime(ctx)
//	defer runtime.Close(ctx)
//
//	if _, err := adapter.RegisterWithRuntime(ctx, runtime, arith.Module()); err != nil {
//	    return err
//	}
//	guest, err := runtime.Instantiate(ctx, guestWasm)
package wazero
