package entities

// NativeType names the fixed-width type a host value is converted to
// before a function body runs.
type NativeType string

const (
	// TypeU64 is an unsigned 64-bit integer.
	TypeU64 NativeType = "u64"
	// TypeUsize is an unsigned integer as wide as the platform word.
	TypeUsize NativeType = "usize"
	// TypeF64 is an IEEE-754 double.
	TypeF64 NativeType = "f64"
	// TypeString is UTF-8 text. Only valid as a result type.
	TypeString NativeType = "str"
)

// Param describes one parameter of a callable function.
type Param struct {
	// Default is used when the caller omits the argument. Nil means required.
	Default any `json:"default,omitempty" yaml:"default,omitempty"`

	Name string     `json:"name" yaml:"name" validate:"required,excludesall= .-"`
	Type NativeType `json:"type" yaml:"type" validate:"required,oneof=u64 usize f64"`

	// PositionalOnly forbids binding the parameter by keyword.
	PositionalOnly bool `json:"positional_only,omitempty" yaml:"positional_only,omitempty"`
}

// Required reports whether the caller must supply the argument.
func (p Param) Required() bool {
	return p.Default == nil
}
