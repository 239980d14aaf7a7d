// Package values implements the shaped scalar/vector/matrix constant-value
// algebra: a closed tagged union over five base types and thirteen shapes,
// with column-major element iteration, map, zip-map and fold.
package values

import "shadereval/internal/types"

// Elem is a single boxed scalar component. Exactly one field is meaningful,
// selected by Base: the tag always agrees with the runtime element type,
// never mixed storage.
type Elem struct {
	Base types.BaseType
	Bool bool
	I32  int32
	U32  uint32
	F32  float32
	F64  float64
}

func BoolElem(b bool) Elem    { return Elem{Base: types.Bool, Bool: b} }
func I32Elem(i int32) Elem    { return Elem{Base: types.I32, I32: i} }
func U32Elem(u uint32) Elem   { return Elem{Base: types.U32, U32: u} }
func F32Elem(f float32) Elem  { return Elem{Base: types.F32, F32: f} }
func F64Elem(f float64) Elem  { return Elem{Base: types.F64, F64: f} }

// ZeroElem returns the additive identity for a base type, used by matrix
// constructors to fill off-diagonal entries.
func ZeroElem(b types.BaseType) Elem {
	switch b {
	case types.Bool:
		return BoolElem(false)
	case types.I32:
		return I32Elem(0)
	case types.U32:
		return U32Elem(0)
	case types.F32:
		return F32Elem(0)
	case types.F64:
		return F64Elem(0)
	default:
		return Elem{}
	}
}

// OneElem returns the multiplicative identity for a base type, used to
// fill matrix diagonals.
func OneElem(b types.BaseType) Elem {
	switch b {
	case types.Bool:
		return BoolElem(true)
	case types.I32:
		return I32Elem(1)
	case types.U32:
		return U32Elem(1)
	case types.F32:
		return F32Elem(1)
	case types.F64:
		return F64Elem(1)
	default:
		return Elem{}
	}
}

// AsFloat64 widens any numeric element to float64 for the scalar
// comparison operators; bool widens as 0/1.
func (e Elem) AsFloat64() float64 {
	switch e.Base {
	case types.Bool:
		if e.Bool {
			return 1
		}
		return 0
	case types.I32:
		return float64(e.I32)
	case types.U32:
		return float64(e.U32)
	case types.F32:
		return float64(e.F32)
	case types.F64:
		return e.F64
	default:
		return 0
	}
}

// Equal reports bitwise/value equality between two elements of the same
// base type. Elements of differing base types are never equal (the
// dispatcher casts operands to a common base before comparing).
func (e Elem) Equal(o Elem) bool {
	if e.Base != o.Base {
		return false
	}
	switch e.Base {
	case types.Bool:
		return e.Bool == o.Bool
	case types.I32:
		return e.I32 == o.I32
	case types.U32:
		return e.U32 == o.U32
	case types.F32:
		return e.F32 == o.F32
	case types.F64:
		return e.F64 == o.F64
	default:
		return false
	}
}
