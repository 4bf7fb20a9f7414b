//go:build wasip1

package abi

import (
	"fmt"
	"sync"
	"unsafe"
)

// ArenaLimit caps the bytes the guest holds for the host at once.
const ArenaLimit = 16 << 20

// arena pins buffers handed to the host until it releases them, so the Go
// GC cannot reclaim memory the host is still reading.
type arena struct {
	mu    sync.Mutex
	live  map[uint32][]byte
	bytes int
	limit int
}

func newArena(limit int) *arena {
	return &arena{live: make(map[uint32][]byte), limit: limit}
}

// alloc returns the address of a fresh zeroed buffer of size bytes.
func (a *arena) alloc(size uint32) (uint32, error) {
	if size == 0 {
		return 0, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.bytes+int(size) > a.limit {
		return 0, fmt.Errorf("abi: arena limit of %d bytes exceeded (%d held, %d requested)", a.limit, a.bytes, size)
	}
	buf := make([]byte, size)
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0]))) //nolint:gosec // G103,G115: wasm addresses are 32-bit
	a.live[ptr] = buf
	a.bytes += len(buf)
	return ptr, nil
}

// free unpins the buffer at ptr. Unknown addresses are ignored.
func (a *arena) free(ptr uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if buf, ok := a.live[ptr]; ok {
		delete(a.live, ptr)
		a.bytes -= len(buf)
	}
}

var guestArena = newArena(ArenaLimit)

// allocate reserves size bytes for the host to write into. It traps when
// the arena limit is exceeded.
//
//go:wasmexport allocate
func allocate(size uint32) uint32 {
	ptr, err := guestArena.alloc(size)
	if err != nil {
		panic(err)
	}
	return ptr
}

// deallocate releases a buffer returned by allocate or PtrFromString. The
// size argument is part of the export signature; the arena tracks sizes
// itself.
//
//go:wasmexport deallocate
func deallocate(ptr uint32, _ uint32) {
	guestArena.free(ptr)
}

// PtrFromString copies s into arena memory and returns its packed
// pointer and length. Empty text packs to 0.
func PtrFromString(s string) uint64 {
	if s == "" {
		return 0
	}
	size := uint32(len(s)) //nolint:gosec // G115: results are short text
	ptr := allocate(size)
	copy(guestBytes(ptr, size), s)
	return PackPtrLen(ptr, size)
}

// guestBytes views length bytes of linear memory at ptr.
func guestBytes(ptr, length uint32) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), length) //nolint:gosec // G103: linear memory access
}
