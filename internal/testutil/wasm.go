package testutil

var wasmHeader = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

// GuestWasm is a minimal stand-in for the arith-wasm guest build:
//
//	(memory (export "memory") 1)
//	(data (i32.const 16) "5.5")
//	(func (export "add") (param i64 i64) (result i64)
//	  local.get 0 local.get 1 i64.add)
//	(func (export "sum_as_string") (param f64 i64) (result i64)
//	  local.get 1 i64.const 0 i64.lt_s if unreachable end
//	  i64.const 16 i64.const 32 i64.shl i64.const 3 i64.or)
//	(func (export "allocate") (param i32) (result i32) i32.const 64)
//	(func (export "deallocate") (param i32 i32))
//
// sum_as_string always answers "5.5" and traps on a negative b.
var GuestWasm = append(append([]byte{}, wasmHeader...),
	// type section: (i64,i64)->i64, (f64,i64)->i64, (i32)->i32, (i32,i32)->()
	0x01, 0x17, 0x04,
	0x60, 0x02, 0x7e, 0x7e, 0x01, 0x7e,
	0x60, 0x02, 0x7c, 0x7e, 0x01, 0x7e,
	0x60, 0x01, 0x7f, 0x01, 0x7f,
	0x60, 0x02, 0x7f, 0x7f, 0x00,
	// function section
	0x03, 0x05, 0x04, 0x00, 0x01, 0x02, 0x03,
	// memory section: min 1 page
	0x05, 0x03, 0x01, 0x00, 0x01,
	// export section
	0x07, 0x38, 0x05,
	0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
	0x03, 'a', 'd', 'd', 0x00, 0x00,
	0x0d, 's', 'u', 'm', '_', 'a', 's', '_', 's', 't', 'r', 'i', 'n', 'g', 0x00, 0x01,
	0x08, 'a', 'l', 'l', 'o', 'c', 'a', 't', 'e', 0x00, 0x02,
	0x0a, 'd', 'e', 'a', 'l', 'l', 'o', 'c', 'a', 't', 'e', 0x00, 0x03,
	// code section
	0x0a, 0x26, 0x04,
	0x07, 0x00, 0x20, 0x00, 0x20, 0x01, 0x7c, 0x0b,
	0x13, 0x00, 0x20, 0x01, 0x42, 0x00, 0x53, 0x04, 0x40, 0x00, 0x0b,
	0x42, 0x10, 0x42, 0x20, 0x86, 0x42, 0x03, 0x84, 0x0b,
	0x05, 0x00, 0x41, 0xc0, 0x00, 0x0b,
	0x02, 0x00, 0x0b,
	// data section: "5.5" at offset 16
	0x0b, 0x09, 0x01, 0x00, 0x41, 0x10, 0x0b, 0x03, '5', '.', '5',
)

// AddCallerWasm imports arith.add and re-exports it as call_add:
//
//	(import "arith" "add" (func (param i64 i64) (result i64)))
//	(func (export "call_add") (param i64 i64) (result i64)
//	  local.get 0 local.get 1 call 0)
var AddCallerWasm = append(append([]byte{}, wasmHeader...),
	// type section: (i64, i64) -> i64
	0x01, 0x07, 0x01, 0x60, 0x02, 0x7e, 0x7e, 0x01, 0x7e,
	// import section: arith.add, func type 0
	0x02, 0x0d, 0x01, 0x05, 'a', 'r', 'i', 't', 'h', 0x03, 'a', 'd', 'd', 0x00, 0x00,
	// function section: one function of type 0
	0x03, 0x02, 0x01, 0x00,
	// export section: "call_add" -> func 1
	0x07, 0x0c, 0x01, 0x08, 'c', 'a', 'l', 'l', '_', 'a', 'd', 'd', 0x00, 0x01,
	// code section
	0x0a, 0x0a, 0x01, 0x08, 0x00, 0x20, 0x00, 0x20, 0x01, 0x10, 0x00, 0x0b,
)

// SumCallerWasm imports arith.sum_as_string and re-exports it as call_sum,
// with one exported page of memory for the text:
//
//	(import "arith" "sum_as_string" (func (param f64 i64 i32 i32) (result i32)))
//	(memory (export "memory") 1)
//	(func (export "call_sum") (param f64 i64 i32 i32) (result i32)
//	  local.get 0 local.get 1 local.get 2 local.get 3 call 0)
var SumCallerWasm = append(append([]byte{}, wasmHeader...),
	// type section: (f64, i64, i32, i32) -> i32
	0x01, 0x09, 0x01, 0x60, 0x04, 0x7c, 0x7e, 0x7f, 0x7f, 0x01, 0x7f,
	// import section: arith.sum_as_string, func type 0
	0x02, 0x17, 0x01,
	0x05, 'a', 'r', 'i', 't', 'h',
	0x0d, 's', 'u', 'm', '_', 'a', 's', '_', 's', 't', 'r', 'i', 'n', 'g',
	0x00, 0x00,
	// function section: one function of type 0
	0x03, 0x02, 0x01, 0x00,
	// memory section: min 1 page
	0x05, 0x03, 0x01, 0x00, 0x01,
	// export section: "memory" -> memory 0, "call_sum" -> func 1
	0x07, 0x15, 0x02,
	0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
	0x08, 'c', 'a', 'l', 'l', '_', 's', 'u', 'm', 0x00, 0x01,
	// code section
	0x0a, 0x0e, 0x01, 0x0c, 0x00,
	0x20, 0x00, 0x20, 0x01, 0x20, 0x02, 0x20, 0x03, 0x10, 0x00, 0x0b,
)

// NoMemoryGuestWasm has the exports of GuestWasm with the right signatures
// but no memory and no data.
var NoMemoryGuestWasm = append(append([]byte{}, wasmHeader...),
	// type section: (i64,i64)->i64, (f64,i64)->i64, (i32)->i32, (i32,i32)->()
	0x01, 0x17, 0x04,
	0x60, 0x02, 0x7e, 0x7e, 0x01, 0x7e,
	0x60, 0x02, 0x7c, 0x7e, 0x01, 0x7e,
	0x60, 0x01, 0x7f, 0x01, 0x7f,
	0x60, 0x02, 0x7f, 0x7f, 0x00,
	// function section
	0x03, 0x05, 0x04, 0x00, 0x01, 0x02, 0x03,
	// export section
	0x07, 0x2f, 0x04,
	0x03, 'a', 'd', 'd', 0x00, 0x00,
	0x0d, 's', 'u', 'm', '_', 'a', 's', '_', 's', 't', 'r', 'i', 'n', 'g', 0x00, 0x01,
	0x08, 'a', 'l', 'l', 'o', 'c', 'a', 't', 'e', 0x00, 0x02,
	0x0a, 'd', 'e', 'a', 'l', 'l', 'o', 'c', 'a', 't', 'e', 0x00, 0x03,
	// code section
	0x0a, 0x26, 0x04,
	0x07, 0x00, 0x20, 0x00, 0x20, 0x01, 0x7c, 0x0b,
	0x13, 0x00, 0x20, 0x01, 0x42, 0x00, 0x53, 0x04, 0x40, 0x00, 0x0b,
	0x42, 0x10, 0x42, 0x20, 0x86, 0x42, 0x03, 0x84, 0x0b,
	0x05, 0x00, 0x41, 0xc0, 0x00, 0x0b,
	0x02, 0x00, 0x0b,
)

// BadSignatureGuestWasm exports memory and a correct sum_as_string, but add
// takes and returns i32:
//
//	(func (export "add") (param i32 i32) (result i32) local.get 0 local.get 1 i32.add)
//	(func (export "sum_as_string") (param f64 i64) (result i64) i64.const 0)
var BadSignatureGuestWasm = append(append([]byte{}, wasmHeader...),
	// type section: (i32,i32)->i32, (f64,i64)->i64
	0x01, 0x0d, 0x02,
	0x60, 0x02, 0x7f, 0x7f, 0x01, 0x7f,
	0x60, 0x02, 0x7c, 0x7e, 0x01, 0x7e,
	// function section
	0x03, 0x03, 0x02, 0x00, 0x01,
	// memory section: min 1 page
	0x05, 0x03, 0x01, 0x00, 0x01,
	// export section
	0x07, 0x20, 0x03,
	0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
	0x03, 'a', 'd', 'd', 0x00, 0x00,
	0x0d, 's', 'u', 'm', '_', 'a', 's', '_', 's', 't', 'r', 'i', 'n', 'g', 0x00, 0x01,
	// code section
	0x0a, 0x0e, 0x02,
	0x07, 0x00, 0x20, 0x00, 0x20, 0x01, 0x6a, 0x0b,
	0x04, 0x00, 0x42, 0x00, 0x0b,
)
