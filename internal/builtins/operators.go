// Package builtins ships the populated operator and constructor overload
// tables. Each table is built once, at package init, by appending overload
// entries to a dispatch.Builder and sorting: a "register under a name,
// resolve at call time" pattern generalized from string-keyed builtins to
// prototype-sorted overload sets. Implemented as data-driven registration
// loops over shape/base tables rather than 38 hand-duplicated functions.
package builtins

import (
	"shadereval/internal/dispatch"
	"shadereval/internal/types"
	"shadereval/internal/values"
)

var (
	numericBases = []types.BaseType{types.I32, types.U32, types.F32, types.F64}
	intBases     = []types.BaseType{types.I32, types.U32}
	floatBases   = []types.BaseType{types.F32, types.F64}
	allBases     = []types.BaseType{types.Bool, types.I32, types.U32, types.F32, types.F64}
)

func svOrSvmShape(base types.BaseType) types.ParamShape {
	if base == types.F32 || base == types.F64 {
		return types.GenericSVM
	}
	return types.GenericSV
}

// registerUnary builds a Function with one typed overload per base in
// bases, each accepting a scalar/vector (or scalar/vector/matrix, for
// float bases) value and mapping f over every element.
func registerUnary(name string, bases []types.BaseType, f func(values.Elem) values.Elem) *dispatch.Function {
	b := dispatch.NewBuilder(name)
	for _, base := range bases {
		shape := svOrSvmShape(base)
		b.AddTyped([]types.Param{{Base: base, Shape: shape}}, func(args []values.Value) (values.Value, bool) {
			return values.Map(args[0], f), true
		})
	}
	return b.Build()
}

// registerBroadcastBinary builds the three-overload-per-base pattern:
// (SV,scalar), (scalar,SV), and (SV,SV) requiring the same shape
// (reported absent on mismatch, so the dispatcher keeps searching and
// ultimately reports IllegalBinaryOperand when nothing matches).
func registerBroadcastBinary(name string, bases []types.BaseType, f func(x, y values.Elem) values.Elem) *dispatch.Function {
	b := dispatch.NewBuilder(name)
	for _, base := range bases {
		base := base
		shape := svOrSvmShape(base)
		b.AddTyped([]types.Param{{Base: base, Shape: shape}, {Base: base, Shape: types.Concrete(types.Scalar)}},
			func(args []values.Value) (values.Value, bool) {
				scalar, _ := args[1].AsScalar()
				return values.Map(args[0], func(e values.Elem) values.Elem { return f(e, scalar) }), true
			})
		b.AddTyped([]types.Param{{Base: base, Shape: types.Concrete(types.Scalar)}, {Base: base, Shape: shape}},
			func(args []values.Value) (values.Value, bool) {
				scalar, _ := args[0].AsScalar()
				return values.Map(args[1], func(e values.Elem) values.Elem { return f(scalar, e) }), true
			})
		b.AddTyped([]types.Param{{Base: base, Shape: shape}, {Base: base, Shape: shape}},
			func(args []values.Value) (values.Value, bool) {
				return values.ZipMap(args[0], args[1], f)
			})
	}
	return b.Build()
}

// registerScalarComparison builds a scalar-only, per-base comparison
// overload set: comparisons are scalar numeric only.
func registerScalarComparison(name string, f func(x, y values.Elem) bool) *dispatch.Function {
	b := dispatch.NewBuilder(name)
	for _, base := range numericBases {
		base := base
		b.AddTyped([]types.Param{{Base: base, Shape: types.Concrete(types.Scalar)}, {Base: base, Shape: types.Concrete(types.Scalar)}},
			func(args []values.Value) (values.Value, bool) {
				x, _ := args[0].AsScalar()
				y, _ := args[1].AsScalar()
				return values.ScalarValue(values.BoolElem(f(x, y))), true
			})
	}
	return b.Build()
}

// Unary plus: identity on numeric types, undefined on bool.
var UnaryAdd = registerUnary("+", numericBases, func(e values.Elem) values.Elem { return e })

// Unary minus: wrapping negation on i32/u32, IEEE negation on floats.
var UnaryMinus = registerUnary("-", numericBases, func(e values.Elem) values.Elem {
	switch e.Base {
	case types.I32:
		return values.I32Elem(-e.I32)
	case types.U32:
		return values.U32Elem(-e.U32)
	case types.F32:
		return values.F32Elem(-e.F32)
	default:
		return values.F64Elem(-e.F64)
	}
})

// Logical not: scalar bool only.
var UnaryNot = func() *dispatch.Function {
	b := dispatch.NewBuilder("!")
	b.AddTyped([]types.Param{{Base: types.Bool, Shape: types.Concrete(types.Scalar)}}, func(args []values.Value) (values.Value, bool) {
		s, _ := args[0].AsScalar()
		return values.ScalarValue(values.BoolElem(!s.Bool)), true
	})
	return b.Build()
}()

// Bitwise complement: over i32/u32 scalar-vector.
var UnaryComplement = registerUnary("~", intBases, func(e values.Elem) values.Elem {
	if e.Base == types.I32 {
		return values.I32Elem(^e.I32)
	}
	return values.U32Elem(^e.U32)
})

func registerScalarBoolBinary(name string, f func(x, y bool) bool) *dispatch.Function {
	b := dispatch.NewBuilder(name)
	b.AddTyped([]types.Param{{Base: types.Bool, Shape: types.Concrete(types.Scalar)}, {Base: types.Bool, Shape: types.Concrete(types.Scalar)}},
		func(args []values.Value) (values.Value, bool) {
			x, _ := args[0].AsScalar()
			y, _ := args[1].AsScalar()
			return values.ScalarValue(values.BoolElem(f(x.Bool, y.Bool))), true
		})
	return b.Build()
}

// Binary logical or/xor/and: scalar bool only.
var (
	BinaryOr  = registerScalarBoolBinary("||", func(x, y bool) bool { return x || y })
	BinaryXor = registerScalarBoolBinary("^^", func(x, y bool) bool { return x != y })
	BinaryAnd = registerScalarBoolBinary("&&", func(x, y bool) bool { return x && y })
)

// Bitwise or/xor/and: over i32/u32, with (SV,scalar)/(scalar,SV)/(SV,SV) overload shapes.
var (
	BinaryBitOr = registerBroadcastBinary("|", intBases, func(x, y values.Elem) values.Elem {
		if x.Base == types.I32 {
			return values.I32Elem(x.I32 | y.I32)
		}
		return values.U32Elem(x.U32 | y.U32)
	})
	BinaryBitXor = registerBroadcastBinary("^", intBases, func(x, y values.Elem) values.Elem {
		if x.Base == types.I32 {
			return values.I32Elem(x.I32 ^ y.I32)
		}
		return values.U32Elem(x.U32 ^ y.U32)
	})
	BinaryBitAnd = registerBroadcastBinary("&", intBases, func(x, y values.Elem) values.Elem {
		if x.Base == types.I32 {
			return values.I32Elem(x.I32 & y.I32)
		}
		return values.U32Elem(x.U32 & y.U32)
	})
)

// Comparisons: scalar numeric only; result bool.
var (
	BinaryLT  = registerScalarComparison("<", func(x, y values.Elem) bool { return x.AsFloat64() < y.AsFloat64() })
	BinaryGT  = registerScalarComparison(">", func(x, y values.Elem) bool { return x.AsFloat64() > y.AsFloat64() })
	BinaryLTE = registerScalarComparison("<=", func(x, y values.Elem) bool { return x.AsFloat64() <= y.AsFloat64() })
	BinaryGTE = registerScalarComparison(">=", func(x, y values.Elem) bool { return x.AsFloat64() >= y.AsFloat64() })
)

// BinaryEqual reduces zip_map(==) over all elements with AND; returns
// absent on shape mismatch. Works across all five base
// types and every SV/SVM shape: each base gets one generic-shape overload,
// sorted by the cast lattice so the narrowest common base wins.
var BinaryEqual = func() *dispatch.Function {
	b := dispatch.NewBuilder("==")
	for _, base := range allBases {
		shape := svOrSvmShape(base)
		b.AddTyped([]types.Param{{Base: base, Shape: shape}, {Base: base, Shape: shape}},
			func(args []values.Value) (values.Value, bool) {
				zipped, ok := values.ZipMap(args[0], args[1], func(x, y values.Elem) values.Elem {
					return values.BoolElem(x.Equal(y))
				})
				if !ok {
					return values.Value{}, false
				}
				allEqual := values.Fold(zipped, true, func(acc bool, e values.Elem) bool { return acc && e.Bool })
				return values.ScalarValue(values.BoolElem(allEqual)), true
			})
	}
	return b.Build()
}()

// registerShift builds the i32/u32-by-i32/u32 overload set (LHS base x RHS
// base, each with an (SV,scalar) and an (SV,SV) overload) for << and >>.
func registerShift(name string, apply func(lhsBase types.BaseType, x values.Elem, amount uint32) values.Elem) *dispatch.Function {
	b := dispatch.NewBuilder(name)
	for _, lhsBase := range intBases {
		lhsBase := lhsBase
		lhsShape := types.GenericSV
		for _, rhsBase := range intBases {
			rhsBase := rhsBase
			amountOf := func(e values.Elem) uint32 {
				if rhsBase == types.I32 {
					return uint32(e.I32)
				}
				return e.U32
			}
			b.AddTyped([]types.Param{{Base: lhsBase, Shape: lhsShape}, {Base: rhsBase, Shape: types.Concrete(types.Scalar)}},
				func(args []values.Value) (values.Value, bool) {
					amt, _ := args[1].AsScalar()
					return values.Map(args[0], func(e values.Elem) values.Elem { return apply(lhsBase, e, amountOf(amt)) }), true
				})
			b.AddTyped([]types.Param{{Base: lhsBase, Shape: lhsShape}, {Base: rhsBase, Shape: types.GenericSV}},
				func(args []values.Value) (values.Value, bool) {
					return values.ZipMap(args[0], args[1], func(x, y values.Elem) values.Elem { return apply(lhsBase, x, amountOf(y)) })
				})
		}
	}
	return b.Build()
}

var (
	BinaryLShift = registerShift("<<", func(lhsBase types.BaseType, x values.Elem, amount uint32) values.Elem {
		if lhsBase == types.I32 {
			return values.I32Elem(x.I32 << amount)
		}
		return values.U32Elem(x.U32 << amount)
	})
	BinaryRShift = registerShift(">>", func(lhsBase types.BaseType, x values.Elem, amount uint32) values.Elem {
		if lhsBase == types.I32 {
			return values.I32Elem(x.I32 >> amount)
		}
		return values.U32Elem(x.U32 >> amount)
	})
)

// Add/Sub/Div: broadcast on i32/u32/f32/f64 across SV and, for floats,
// also the nine matrix shapes (elementwise).
var (
	BinaryAdd = registerBroadcastBinary("+", numericBases, func(x, y values.Elem) values.Elem { return numericOp(x, y, addOp) })
	BinarySub = registerBroadcastBinary("-", numericBases, func(x, y values.Elem) values.Elem { return numericOp(x, y, subOp) })
	BinaryDiv = registerBroadcastBinary("/", numericBases, func(x, y values.Elem) values.Elem { return numericOp(x, y, divOp) })
	// Mod: i32/u32 only.
	BinaryMod = registerBroadcastBinary("%", intBases, func(x, y values.Elem) values.Elem { return numericOp(x, y, modOp) })
)

type opKind uint8

const (
	addOp opKind = iota
	subOp
	divOp
	modOp
	mulOp
)

func numericOp(x, y values.Elem, op opKind) values.Elem {
	switch x.Base {
	case types.I32:
		switch op {
		case addOp:
			return values.I32Elem(x.I32 + y.I32)
		case subOp:
			return values.I32Elem(x.I32 - y.I32)
		case divOp:
			return values.I32Elem(x.I32 / y.I32)
		case modOp:
			return values.I32Elem(x.I32 % y.I32)
		default:
			return values.I32Elem(x.I32 * y.I32)
		}
	case types.U32:
		switch op {
		case addOp:
			return values.U32Elem(x.U32 + y.U32)
		case subOp:
			return values.U32Elem(x.U32 - y.U32)
		case divOp:
			return values.U32Elem(x.U32 / y.U32)
		case modOp:
			return values.U32Elem(x.U32 % y.U32)
		default:
			return values.U32Elem(x.U32 * y.U32)
		}
	case types.F32:
		switch op {
		case addOp:
			return values.F32Elem(x.F32 + y.F32)
		case subOp:
			return values.F32Elem(x.F32 - y.F32)
		case divOp:
			return values.F32Elem(x.F32 / y.F32)
		default:
			return values.F32Elem(x.F32 * y.F32)
		}
	default:
		switch op {
		case addOp:
			return values.F64Elem(x.F64 + y.F64)
		case subOp:
			return values.F64Elem(x.F64 - y.F64)
		case divOp:
			return values.F64Elem(x.F64 / y.F64)
		default:
			return values.F64Elem(x.F64 * y.F64)
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
