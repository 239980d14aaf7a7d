package builtins

import (
	"testing"

	"shadereval/internal/types"
	"shadereval/internal/values"
)

func scalar(e values.Elem) values.Value { return values.ScalarValue(e) }

func mustScalar(t *testing.T, v values.Value) values.Elem {
	t.Helper()
	e, ok := v.AsScalar()
	if !ok {
		t.Fatal("expected a scalar result")
	}
	return e
}

func TestUnaryMinusWrapsAndNegates(t *testing.T) {
	v, ok := UnaryMinus.Eval([]values.Value{scalar(values.I32Elem(5))})
	if !ok || mustScalar(t, v).I32 != -5 {
		t.Errorf("-5 = %v", v)
	}
	v, ok = UnaryMinus.Eval([]values.Value{scalar(values.F64Elem(2.5))})
	if !ok || mustScalar(t, v).F64 != -2.5 {
		t.Errorf("-2.5 = %v", v)
	}
}

func TestUnaryNotOnlyAcceptsScalarBool(t *testing.T) {
	v, ok := UnaryNot.Eval([]values.Value{scalar(values.BoolElem(true))})
	if !ok || mustScalar(t, v).Bool != false {
		t.Errorf("!true = %v", v)
	}
	if _, ok := UnaryNot.Eval([]values.Value{scalar(values.I32Elem(1))}); ok {
		t.Error("! should reject non-bool operands")
	}
}

func TestUnaryComplementBitwise(t *testing.T) {
	v, ok := UnaryComplement.Eval([]values.Value{scalar(values.I32Elem(0))})
	if !ok || mustScalar(t, v).I32 != -1 {
		t.Errorf("~0 = %v, want -1", v)
	}
}

func TestBroadcastAddScalarVectorBothDirections(t *testing.T) {
	vec := values.MustNew(types.I32, types.Vec2, []values.Elem{values.I32Elem(1), values.I32Elem(2)})
	v, ok := BinaryAdd.Eval([]values.Value{vec, scalar(values.I32Elem(10))})
	if !ok || v.At(0).I32 != 11 || v.At(1).I32 != 12 {
		t.Errorf("vec+scalar = %v", v)
	}
	v, ok = BinaryAdd.Eval([]values.Value{scalar(values.I32Elem(10)), vec})
	if !ok || v.At(0).I32 != 11 || v.At(1).I32 != 12 {
		t.Errorf("scalar+vec = %v", v)
	}
}

func TestBroadcastAddMismatchedVectorsIsAbsent(t *testing.T) {
	a := values.MustNew(types.I32, types.Vec2, []values.Elem{values.I32Elem(1), values.I32Elem(2)})
	b := values.MustNew(types.I32, types.Vec3, []values.Elem{values.I32Elem(1), values.I32Elem(2), values.I32Elem(3)})
	if _, ok := BinaryAdd.Eval([]values.Value{a, b}); ok {
		t.Error("mismatched vector shapes must not match any + overload")
	}
}

func TestModOnlyDefinedForIntegers(t *testing.T) {
	v, ok := BinaryMod.Eval([]values.Value{scalar(values.I32Elem(7)), scalar(values.I32Elem(3))})
	if !ok || mustScalar(t, v).I32 != 1 {
		t.Errorf("7 %% 3 = %v, want 1", v)
	}
	if _, ok := BinaryMod.Eval([]values.Value{scalar(values.F32Elem(7)), scalar(values.F32Elem(3))}); ok {
		t.Error("%% should not accept floats")
	}
}

func TestComparisonsAreScalarOnly(t *testing.T) {
	v, ok := BinaryLT.Eval([]values.Value{scalar(values.I32Elem(1)), scalar(values.I32Elem(2))})
	if !ok || !mustScalar(t, v).Bool {
		t.Errorf("1 < 2 = %v, want true", v)
	}
	vec := values.MustNew(types.I32, types.Vec2, []values.Elem{values.I32Elem(1), values.I32Elem(2)})
	if _, ok := BinaryLT.Eval([]values.Value{vec, vec}); ok {
		t.Error("< should reject vector operands")
	}
}

func TestShiftUsesIntrinsicArithmeticVsLogicalSemantics(t *testing.T) {
	v, ok := BinaryRShift.Eval([]values.Value{scalar(values.I32Elem(-8)), scalar(values.I32Elem(1))})
	if !ok || mustScalar(t, v).I32 != -4 {
		t.Errorf("-8 >> 1 (i32, arithmetic) = %v, want -4", v)
	}
	v, ok = BinaryRShift.Eval([]values.Value{scalar(values.U32Elem(0xFFFFFFFF)), scalar(values.U32Elem(1))})
	if !ok || mustScalar(t, v).U32 != 0x7FFFFFFF {
		t.Errorf("0xFFFFFFFF >> 1 (u32, logical) = %v, want 0x7FFFFFFF", v)
	}
}

func TestBinaryEqualReducesElementwiseWithAnd(t *testing.T) {
	a := values.MustNew(types.Bool, types.Vec3, []values.Elem{values.BoolElem(true), values.BoolElem(true), values.BoolElem(true)})
	b := values.MustNew(types.Bool, types.Vec3, []values.Elem{values.BoolElem(true), values.BoolElem(true), values.BoolElem(false)})
	v, ok := BinaryEqual.Eval([]values.Value{a, b})
	if !ok || mustScalar(t, v).Bool {
		t.Errorf("bvec3(t,t,t)==bvec3(t,t,f) = %v, want false", v)
	}
}

func TestVectorConstructorBroadcastAndExactComponents(t *testing.T) {
	fn := vectorConstructors["vec3"]
	v, ok := fn.Eval([]values.Value{scalar(values.F32Elem(4))})
	if !ok || v.At(0).F32 != 4 || v.At(1).F32 != 4 || v.At(2).F32 != 4 {
		t.Errorf("vec3(4) broadcast = %v", v)
	}
	v, ok = fn.Eval([]values.Value{scalar(values.F32Elem(1)), scalar(values.F32Elem(2)), scalar(values.F32Elem(3))})
	if !ok || v.At(0).F32 != 1 || v.At(1).F32 != 2 || v.At(2).F32 != 3 {
		t.Errorf("vec3(1,2,3) = %v", v)
	}
	if _, ok := fn.Eval([]values.Value{scalar(values.F32Elem(1)), scalar(values.F32Elem(2))}); ok {
		t.Error("vec3 from two scalars should not match any overload")
	}
}

func TestMatrixConstructorScalarBuildsDiagonal(t *testing.T) {
	fn := matrixConstructors["mat2"]
	v, ok := fn.Eval([]values.Value{scalar(values.F32Elem(1))})
	if !ok {
		t.Fatal("mat2(1.0) should construct")
	}
	// column-major 2x2: [c0r0, c0r1, c1r0, c1r1] = identity.
	want := []float32{1, 0, 0, 1}
	for i, e := range v.ColumnIter() {
		if e.F32 != want[i] {
			t.Errorf("mat2(1.0)[%d] = %v, want %v", i, e.F32, want[i])
		}
	}
}

func TestMatrixVectorProductOverElementwise(t *testing.T) {
	ident, _ := matrixConstructors["mat2"].Eval([]values.Value{scalar(values.F32Elem(1))})
	vec := values.MustNew(types.F32, types.Vec2, []values.Elem{values.F32Elem(1), values.F32Elem(2)})
	v, ok := BinaryMult.Eval([]values.Value{ident, vec})
	if !ok || v.At(0).F32 != 1 || v.At(1).F32 != 2 {
		t.Errorf("mat2(1.0)*vec2(1.0,2.0) = %v, want (1.0, 2.0)", v)
	}
}

func TestScalarConstructorAllowsNarrowingCast(t *testing.T) {
	fn := scalarConstructors["bool"]
	v, ok := fn.Eval([]values.Value{scalar(values.I32Elem(0))})
	if !ok || mustScalar(t, v).Bool != false {
		t.Errorf("bool(0) = %v, want false", v)
	}
}

func TestScalarConstructorTakesFirstVectorComponent(t *testing.T) {
	fn := scalarConstructors["int"]
	vec := values.MustNew(types.F32, types.Vec3, []values.Elem{values.F32Elem(7.9), values.F32Elem(8), values.F32Elem(9)})
	v, ok := fn.Eval([]values.Value{vec})
	if !ok || mustScalar(t, v).I32 != 7 {
		t.Errorf("int(vec3(7.9, 8.0, 9.0)) = %v, want 7", v)
	}
	ident, _ := matrixConstructors["mat2"].Eval([]values.Value{scalar(values.F32Elem(1))})
	if _, ok := fn.Eval([]values.Value{ident}); ok {
		t.Error("int should reject a matrix argument")
	}
}

func TestMatrixConstructorFromMatrixOverlaysOntoIdentity(t *testing.T) {
	src, _ := matrixConstructors["mat2"].Eval([]values.Value{
		scalar(values.F32Elem(5)), scalar(values.F32Elem(6)),
		scalar(values.F32Elem(7)), scalar(values.F32Elem(8)),
	})
	v, ok := matrixConstructors["mat3"].Eval([]values.Value{src})
	if !ok {
		t.Fatal("mat3(mat2) should construct")
	}
	// column-major 3x3: top-left 2x2 from src, remaining diagonal 1, rest 0.
	want := []float32{5, 6, 0, 7, 8, 0, 0, 0, 1}
	for i, e := range v.ColumnIter() {
		if e.F32 != want[i] {
			t.Errorf("mat3(mat2)[%d] = %v, want %v", i, e.F32, want[i])
		}
	}
}

func TestRegistryLookupResolvesOperatorsAndConstructors(t *testing.T) {
	reg := BuiltinFunctions()
	if _, ok := reg.Lookup("vec3"); !ok {
		t.Error("registry should resolve vec3")
	}
	if _, ok := reg.Lookup("+"); !ok {
		t.Error("registry should resolve +")
	}
	if _, ok := reg.Lookup("nonexistent"); ok {
		t.Error("registry should not resolve an unknown name")
	}
}
