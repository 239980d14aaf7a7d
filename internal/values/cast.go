package values

import "shadereval/internal/types"

// CastElem performs the explicit scalar conversion rules:
// bool(x) is x != 0 for numerics and identity for bool; int/uint(bool) is
// 1/0; float/double(bool) is 1.0/0.0; cross-numeric conversions use
// C-style truncation float->int, sign-preserving bit-cast int<->uint, and
// IEEE round-to-nearest int->float. These are also the implicit-cast
// conversions the dispatcher applies to an argument before invoking a
// typed instance, so its evaluator always receives already-casted values.
func CastElem(e Elem, to types.BaseType) Elem {
	if e.Base == to {
		return e
	}
	switch to {
	case types.Bool:
		switch e.Base {
		case types.I32:
			return BoolElem(e.I32 != 0)
		case types.U32:
			return BoolElem(e.U32 != 0)
		case types.F32:
			return BoolElem(e.F32 != 0)
		case types.F64:
			return BoolElem(e.F64 != 0)
		}
	case types.I32:
		switch e.Base {
		case types.Bool:
			return I32Elem(boolToI32(e.Bool))
		case types.U32:
			return I32Elem(int32(e.U32))
		case types.F32:
			return I32Elem(int32(e.F32))
		case types.F64:
			return I32Elem(int32(e.F64))
		}
	case types.U32:
		switch e.Base {
		case types.Bool:
			return U32Elem(boolToU32(e.Bool))
		case types.I32:
			return U32Elem(uint32(e.I32))
		case types.F32:
			return U32Elem(uint32(e.F32))
		case types.F64:
			return U32Elem(uint32(e.F64))
		}
	case types.F32:
		switch e.Base {
		case types.Bool:
			return F32Elem(boolToF32(e.Bool))
		case types.I32:
			return F32Elem(float32(e.I32))
		case types.U32:
			return F32Elem(float32(e.U32))
		case types.F64:
			return F32Elem(float32(e.F64))
		}
	case types.F64:
		switch e.Base {
		case types.Bool:
			return F64Elem(boolToF64(e.Bool))
		case types.I32:
			return F64Elem(float64(e.I32))
		case types.U32:
			return F64Elem(float64(e.U32))
		case types.F32:
			return F64Elem(float64(e.F32))
		}
	}
	return e
}

func boolToI32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func boolToF32(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

func boolToF64(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Cast converts every element of v to base type to, preserving shape. Used
// by the dispatcher to implicitly cast a compatible argument to a typed
// instance's declared parameter base type.
func Cast(v Value, to types.BaseType) Value {
	return Map(v, func(e Elem) Elem { return CastElem(e, to) })
}
