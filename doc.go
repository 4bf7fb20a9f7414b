// Package arith is a native extension module exposing two arithmetic
// functions to host environments.
//
// The functions are available three ways:
//
//   - as plain Go functions (Add, SumAsString);
//   - through the module handle "arith", registered with the surface import
//     table when this package loads, which hosts call with dynamic
//     arguments (surface.Import("arith"));
//   - through the host bindings built on that handle: the wazero host
//     module (infrastructure/wazero), the C shared library (cmd/libarith),
//     the WebAssembly guest (cmd/arith-wasm) and the CLI (cmd/arith).
package arith
