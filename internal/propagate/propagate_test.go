package propagate

import (
	"testing"

	"shadereval/internal/ast"
	"shadereval/internal/builtins"
	"shadereval/internal/composite"
	"shadereval/internal/errors"
	"shadereval/internal/literal"
	"shadereval/internal/parser"
	"shadereval/internal/scope"
	"shadereval/internal/types"
	"shadereval/internal/values"
)

func fold(t *testing.T, source string) Result {
	t.Helper()
	expr, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("parse(%q): %v", source, err)
	}
	res, err := Propagate(expr, scope.New(), builtins.BuiltinFunctions())
	if err != nil {
		t.Fatalf("propagate(%q): %v", source, err)
	}
	return res
}

func foldErr(t *testing.T, source string) *errors.EvalError {
	t.Helper()
	expr, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("parse(%q): %v", source, err)
	}
	_, err = Propagate(expr, scope.New(), builtins.BuiltinFunctions())
	if err == nil {
		t.Fatalf("propagate(%q): expected an error, got none", source)
	}
	return err.(*errors.EvalError)
}

func TestNegativeIntegerAddition(t *testing.T) {
	res := fold(t, "-3 + 5")
	if !res.IsConst {
		t.Fatal("expected a constant result")
	}
	base, ok := res.Value.AsBase()
	if !ok || !base.IsScalar() {
		t.Fatal("expected a scalar base value")
	}
	s, _ := base.AsScalar()
	if s.I32 != 2 {
		t.Errorf("-3 + 5 = %d, want 2", s.I32)
	}
}

func TestVectorScalarBroadcastAdd(t *testing.T) {
	res := fold(t, "uvec2(1, 2) + 3")
	if !res.IsConst {
		t.Fatal("expected a constant result")
	}
	base, _ := res.Value.AsBase()
	if base.At(0).U32 != 4 || base.At(1).U32 != 5 {
		t.Errorf("uvec2(1,2)+3 = %v, want (4,5)", base.ColumnIter())
	}
}

func TestMatrixVectorProduct(t *testing.T) {
	res := fold(t, "mat2(1.0) * vec2(1.0, 2.0)")
	if !res.IsConst {
		t.Fatal("expected a constant result")
	}
	base, _ := res.Value.AsBase()
	if base.At(0).F32 != 1.0 || base.At(1).F32 != 2.0 {
		t.Errorf("mat2(1.0)*vec2(1.0,2.0) = %v, want (1.0, 2.0)", base.ColumnIter())
	}
}

func TestTernaryWithConstantConditionLeavesExpressionWithChosenBranchOnly(t *testing.T) {
	res := fold(t, "(true ? 1 : 2) * x")
	if res.IsConst {
		t.Fatal("expected a non-const result because x is free")
	}
	bin, ok := res.Expr.(*ast.Binary)
	if !ok || bin.Op != ast.BinMult {
		t.Fatalf("expected a top-level multiplication, got %#v", res.Expr)
	}
	lit, ok := bin.Left.(*ast.Literal)
	if !ok || lit.Kind != ast.IntLiteral || lit.Int != 1 {
		t.Errorf("expected the ternary to fold to its true branch (1), got %#v", bin.Left)
	}
	if _, ok := bin.Right.(*ast.Variable); !ok {
		t.Errorf("expected the right operand to remain the free variable x, got %#v", bin.Right)
	}
}

func TestBoolVectorEquality(t *testing.T) {
	res := fold(t, "bvec3(true) == bvec3(true, true, false)")
	if !res.IsConst {
		t.Fatal("expected a constant result")
	}
	base, _ := res.Value.AsBase()
	s, _ := base.AsScalar()
	if s.Bool != false {
		t.Error("bvec3(true)==bvec3(true,true,false) should be false")
	}
}

// vec3 takes one scalar (broadcast) or at least three components in
// total; two scalars supply only two, so the constructor call itself is
// what fails here, before the multiply is ever reached.
func TestVectorScalarMultiplyIsIllegal(t *testing.T) {
	e := foldErr(t, "vec3(1.0, 2.0) * 0.5")
	if e.Kind != errors.NoMatchingFunctionOverload {
		t.Errorf("got error kind %v, want NoMatchingFunctionOverload", e.Kind)
	}
}

func TestFreeVariableIsNotAnError(t *testing.T) {
	res := fold(t, "x + 1")
	if res.IsConst {
		t.Fatal("expected a non-const result")
	}
}

func TestScopedConstantLookupFolds(t *testing.T) {
	expr, err := parser.Parse("x + 1")
	if err != nil {
		t.Fatal(err)
	}
	s := scope.New()
	s.Declare("x", composite.FromBase(values.ScalarValue(values.I32Elem(41))))
	res, err := Propagate(expr, s, builtins.BuiltinFunctions())
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsConst {
		t.Fatal("expected x+1 to fold once x is a known constant")
	}
	base, _ := res.Value.AsBase()
	s2, _ := base.AsScalar()
	if s2.I32 != 42 {
		t.Errorf("x+1 = %d, want 42", s2.I32)
	}
}

func TestLiteralsAreAFixpoint(t *testing.T) {
	for _, src := range []string{"1", "1.0", "1u", "true"} {
		res := fold(t, src)
		if !res.IsConst {
			t.Errorf("literal %q should already be constant", src)
		}
	}
}

func TestIndexingIsIllegal(t *testing.T) {
	e := foldErr(t, "x[0]")
	if e.Kind != errors.IllegalExpression {
		t.Errorf("indexing should report IllegalExpression, got %v", e.Kind)
	}
}

func TestIncrementOfConstantIsLValueError(t *testing.T) {
	e := foldErr(t, "++1")
	if e.Kind != errors.UnaryOpExpectedLValue {
		t.Errorf("++1 should report UnaryOpExpectedLValue, got %v", e.Kind)
	}
}

// Every constructable base value must survive a round trip through its
// canonical constructor-call AST form and back through the propagator.
func TestConstructorRoundTrip(t *testing.T) {
	cases := []values.Value{
		values.ScalarValue(values.I32Elem(-7)),
		values.ScalarValue(values.F64Elem(0.25)),
		values.MustNew(types.U32, types.Vec4, []values.Elem{
			values.U32Elem(1), values.U32Elem(2), values.U32Elem(3), values.U32Elem(4),
		}),
		values.MustNew(types.Bool, types.Vec2, []values.Elem{values.BoolElem(true), values.BoolElem(false)}),
		values.MustNew(types.F64, types.Vec3, []values.Elem{
			values.F64Elem(1.5), values.F64Elem(2.5), values.F64Elem(3.5),
		}),
		values.MustNew(types.F32, types.Mat23, []values.Elem{
			values.F32Elem(1), values.F32Elem(2), values.F32Elem(3),
			values.F32Elem(4), values.F32Elem(5), values.F32Elem(6),
		}),
	}
	for _, v := range cases {
		expr := literal.ToAST(v)
		res, err := Propagate(expr, scope.New(), builtins.BuiltinFunctions())
		if err != nil {
			t.Errorf("propagate(to_ast(%s)): %v", v.Shape(), err)
			continue
		}
		if !res.IsConst {
			t.Errorf("to_ast(%s) did not fold back to a constant", v.Shape())
			continue
		}
		base, _ := res.Value.AsBase()
		if !values.Equal(base, v) {
			t.Errorf("round trip changed %s value: got %v, want %v", v.Shape(), base.ColumnIter(), v.ColumnIter())
		}
	}
}

func TestEqualitySymmetry(t *testing.T) {
	pairs := [][2]string{
		{"1", "1u"},
		{"vec2(1.0, 2.0)", "vec2(1.0, 2.0)"},
		{"bvec3(true)", "bvec3(true, true, false)"},
	}
	for _, pair := range pairs {
		ab := fold(t, pair[0]+" == "+pair[1])
		ba := fold(t, pair[1]+" == "+pair[0])
		x, _ := ab.Value.AsBase()
		y, _ := ba.Value.AsBase()
		if !values.Equal(x, y) {
			t.Errorf("%s == %s is not symmetric", pair[0], pair[1])
		}
	}
}

func TestNotEqualIsNegatedEquality(t *testing.T) {
	res := fold(t, "1 != 2")
	base, _ := res.Value.AsBase()
	s, _ := base.AsScalar()
	if !s.Bool {
		t.Error("1 != 2 should be true")
	}
}
