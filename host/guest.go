package host

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/tetratelabs/wazero/api"

	"github.com/reglet-dev/arith/internal/abi"
)

// Guest is an instantiated guest build of the arith module.
type Guest struct {
	module api.Module
	memory api.Memory
	logger *slog.Logger
}

// Close releases the guest instance.
func (g *Guest) Close(ctx context.Context) error {
	return g.module.Close(ctx)
}

// Call invokes a guest export with raw WebAssembly values.
func (g *Guest) Call(ctx context.Context, name string, params ...uint64) ([]uint64, error) {
	fn := g.module.ExportedFunction(name)
	if fn == nil {
		return nil, fmt.Errorf("export %q not found", name)
	}
	results, err := fn.Call(ctx, params...)
	if err != nil {
		g.logger.WarnContext(ctx, "guest call failed", "function", name, "error", err)
		return nil, fmt.Errorf("guest call %s failed: %w", name, err)
	}
	return results, nil
}

// Add calls the guest's add export.
func (g *Guest) Add(ctx context.Context, a, b uint64) (uint64, error) {
	results, err := g.Call(ctx, "add", a, b)
	if err != nil {
		return 0, err
	}
	return results[0], nil
}

// SumAsString calls the guest's sum_as_string export and copies the text
// out of guest memory, releasing it with the guest's deallocate export.
func (g *Guest) SumAsString(ctx context.Context, a float64, b uint) (string, error) {
	results, err := g.Call(ctx, "sum_as_string", api.EncodeF64(a), api.EncodeI64(int64(b))) //nolint:gosec // G115: the guest decodes the word as signed
	if err != nil {
		return "", err
	}
	data, err := g.readPacked(ctx, results[0])
	if err != nil {
		return "", fmt.Errorf("sum_as_string: %w", err)
	}
	return string(data), nil
}

// readPacked copies the bytes a packed ptr/len result points at.
func (g *Guest) readPacked(ctx context.Context, packed uint64) ([]byte, error) {
	if packed>>abi.PtrHighBits == 0 {
		if uint32(packed) != 0 { //nolint:gosec // G115: low half of the packed value
			return nil, fmt.Errorf("null pointer with length %d", uint32(packed)) //nolint:gosec // G115: low half of the packed value
		}
		return []byte{}, nil
	}
	ptr, length := abi.UnpackPtrLen(packed)

	view, ok := g.memory.Read(ptr, length)
	if !ok {
		return nil, fmt.Errorf("result [%d, %d) is outside guest memory", ptr, ptr+length)
	}
	data := make([]byte, length)
	copy(data, view)

	if dealloc := g.module.ExportedFunction("deallocate"); dealloc != nil {
		if _, err := dealloc.Call(ctx, uint64(ptr), uint64(length)); err != nil {
			g.logger.WarnContext(ctx, "guest deallocate failed", "ptr", ptr, "error", err)
		}
	}
	return data, nil
}

func (g *Guest) checkExports() error {
	// Memory() returns a typed nil for a module without memory, so look
	// the export up by name.
	g.memory = g.module.ExportedMemory("memory")
	if g.memory == nil {
		return fmt.Errorf("guest does not export memory")
	}
	for name, want := range requiredExports {
		fn := g.module.ExportedFunction(name)
		if fn == nil {
			return fmt.Errorf("guest does not export %q", name)
		}
		def := fn.Definition()
		if !slices.Equal(def.ParamTypes(), want.params) || !slices.Equal(def.ResultTypes(), want.results) {
			return fmt.Errorf("guest export %q has signature %v -> %v", name, def.ParamTypes(), def.ResultTypes())
		}
	}
	return nil
}
