package entities

import "encoding/json"

// ModuleManifest describes a module handle and everything it exports.
type ModuleManifest struct {
	Name      string             `json:"name" yaml:"name"`
	Doc       string             `json:"doc,omitempty" yaml:"doc,omitempty"`
	Functions []FunctionManifest `json:"functions" yaml:"functions"`
}

// FunctionManifest describes a single exported function.
type FunctionManifest struct {
	Name    string          `json:"name" yaml:"name"`
	Doc     string          `json:"doc,omitempty" yaml:"doc,omitempty"`
	Params  []Param         `json:"params" yaml:"params"`
	Returns NativeType      `json:"returns" yaml:"returns"`
	Schema  json.RawMessage `json:"schema,omitempty" yaml:"-"`
}

// Signature renders the host-facing call signature, e.g. "add(a, b=0, /)".
func (f FunctionManifest) Signature() string {
	s := f.Name + "("
	lastPositionalOnly := -1
	for i, p := range f.Params {
		if p.PositionalOnly {
			lastPositionalOnly = i
		}
	}
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += p.Name
		if !p.Required() {
			s += "=" + formatDefault(p.Default)
		}
		if i == lastPositionalOnly {
			s += ", /"
		}
	}
	return s + ")"
}

func formatDefault(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "?"
	}
	return string(data)
}
