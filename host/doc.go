// Package host runs WebAssembly guest builds of the arith module.
//
// An Executor owns a wazero runtime with WASI and, optionally, native
// surface modules registered as host imports. LoadGuest instantiates a
// guest and returns a Guest whose exports are called through the packed
// pointer/length convention of internal/abi. A Guest satisfies
// arith.Backend, so a guest build can back a regular surface module.
package host
