// Package convert marshals dynamic host values into the fixed-width native
// types the exported functions take.
//
// The rules follow the host calling convention: integers never come from
// floats or text, booleans count as the integers 0 and 1, and a value of
// the right kind that does not fit the target fails as out of range.
package convert

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/reglet-dev/arith/domain/entities"
	domainerrors "github.com/reglet-dev/arith/domain/errors"
)

// ToUint64 converts a host value to an unsigned 64-bit integer.
func ToUint64(v any) (uint64, error) {
	return toUnsigned(v, entities.TypeU64, math.MaxUint64)
}

// ToUint converts a host value to a platform-word unsigned integer.
func ToUint(v any) (uint, error) {
	u, err := toUnsigned(v, entities.TypeUsize, math.MaxUint)
	if err != nil {
		return 0, err
	}
	return uint(u), nil
}

// ToFloat64 converts a host value to a double.
func ToFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case uintptr:
		return float64(n), nil
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, outOfRange(v, entities.TypeF64)
			}
			return 0, mismatch(v, entities.TypeF64)
		}
		return f, nil
	case *big.Int:
		if n == nil {
			return 0, mismatch(v, entities.TypeF64)
		}
		f, _ := new(big.Float).SetInt(n).Float64()
		if math.IsInf(f, 0) {
			return 0, outOfRange(v, entities.TypeF64)
		}
		return f, nil
	default:
		return 0, mismatch(v, entities.TypeF64)
	}
}

// TypeName returns the host-facing name of a value's kind.
func TypeName(v any) string {
	switch n := v.(type) {
	case nil:
		return "nil"
	case bool:
		return "bool"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr, *big.Int:
		return "int"
	case float32, float64:
		return "float"
	case string:
		return "str"
	case json.Number:
		if isIntegerLiteral(string(n)) {
			return "int"
		}
		return "float"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func toUnsigned(v any, target entities.NativeType, limit uint64) (uint64, error) {
	var (
		u   uint64
		neg bool
	)

	switch n := v.(type) {
	case bool:
		if n {
			u = 1
		}
	case int:
		u, neg = uint64(n), n < 0
	case int8:
		u, neg = uint64(n), n < 0
	case int16:
		u, neg = uint64(n), n < 0
	case int32:
		u, neg = uint64(n), n < 0
	case int64:
		u, neg = uint64(n), n < 0
	case uint:
		u = uint64(n)
	case uint8:
		u = uint64(n)
	case uint16:
		u = uint64(n)
	case uint32:
		u = uint64(n)
	case uint64:
		u = n
	case uintptr:
		u = uint64(n)
	case json.Number:
		if !isIntegerLiteral(string(n)) {
			return 0, mismatch(v, target)
		}
		b, ok := new(big.Int).SetString(string(n), 10)
		if !ok {
			return 0, mismatch(v, target)
		}
		if b.Sign() < 0 || !b.IsUint64() {
			return 0, outOfRange(v, target)
		}
		u = b.Uint64()
	case *big.Int:
		if n == nil {
			return 0, mismatch(v, target)
		}
		if n.Sign() < 0 || !n.IsUint64() {
			return 0, outOfRange(v, target)
		}
		u = n.Uint64()
	default:
		return 0, mismatch(v, target)
	}

	if neg || u > limit {
		return 0, outOfRange(v, target)
	}
	return u, nil
}

// isIntegerLiteral reports whether s is a run of digits with an optional
// leading minus, the only integer form a JSON number takes.
func isIntegerLiteral(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func mismatch(v any, target entities.NativeType) error {
	return &domainerrors.ConversionError{
		Value:  v,
		Target: target,
		Got:    TypeName(v),
		Reason: domainerrors.ReasonTypeMismatch,
	}
}

func outOfRange(v any, target entities.NativeType) error {
	return &domainerrors.ConversionError{
		Value:  v,
		Target: target,
		Got:    TypeName(v),
		Reason: domainerrors.ReasonOutOfRange,
	}
}
