package surface

import (
	"fmt"
	"sort"
	"sync"

	domainerrors "github.com/reglet-dev/arith/domain/errors"
)

// imports is the process-wide table a host resolves module names against.
var imports = struct {
	sync.RWMutex
	modules map[string]*Module
}{
	modules: make(map[string]*Module),
}

// Register makes m importable under its name.
// A name can be registered once; later attempts fail.
func Register(m *Module) error {
	if m == nil {
		return fmt.Errorf("cannot register nil module")
	}

	imports.Lock()
	defer imports.Unlock()

	if _, exists := imports.modules[m.name]; exists {
		return fmt.Errorf("module %q already registered", m.name)
	}
	imports.modules[m.name] = m
	return nil
}

// MustRegister registers m or panics. Use it from init functions.
func MustRegister(m *Module) {
	if err := Register(m); err != nil {
		panic(fmt.Sprintf("surface: %v", err))
	}
}

// Import returns the module registered under name.
func Import(name string) (*Module, error) {
	imports.RLock()
	defer imports.RUnlock()

	m, ok := imports.modules[name]
	if !ok {
		return nil, &domainerrors.NotFoundError{Kind: "module", Name: name}
	}
	return m, nil
}

// Names returns the sorted names of every registered module.
func Names() []string {
	imports.RLock()
	defer imports.RUnlock()

	names := make([]string, 0, len(imports.modules))
	for name := range imports.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
