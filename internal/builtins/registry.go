package builtins

import "shadereval/internal/dispatch"

// Registry is a name -> overload-set table. It implements the FunctionLookup
// interface internal/propagate expects (structurally, via Lookup), handing
// the propagator a populated table of both operators and constructors.
type Registry struct {
	byName map[string]*dispatch.Function
}

// Lookup resolves a call-expression callee name against the registered
// constructors and operators.
func (r Registry) Lookup(name string) (*dispatch.Function, bool) {
	f, ok := r.byName[name]
	return f, ok
}

// BuiltinFunctions assembles the full builtin registry: every type
// constructor under its surface name, plus every operator under its
// symbolic token, so identifier-style calls to either resolve the same
// way. Unary + and - share their tokens with binary + and -, so "+" and
// "-" resolve to the binary overload sets.
func BuiltinFunctions() Registry {
	byName := map[string]*dispatch.Function{}
	for name, fn := range scalarConstructors {
		byName[name] = fn
	}
	for name, fn := range vectorConstructors {
		byName[name] = fn
	}
	for name, fn := range matrixConstructors {
		byName[name] = fn
	}
	for _, fn := range []*dispatch.Function{
		UnaryAdd, UnaryMinus, UnaryNot, UnaryComplement,
		BinaryOr, BinaryXor, BinaryAnd,
		BinaryBitOr, BinaryBitXor, BinaryBitAnd,
		BinaryLT, BinaryGT, BinaryLTE, BinaryGTE,
		BinaryEqual,
		BinaryLShift, BinaryRShift,
		BinaryAdd, BinarySub, BinaryMult, BinaryDiv, BinaryMod,
	} {
		byName[fn.Name] = fn
	}
	return Registry{byName: byName}
}
