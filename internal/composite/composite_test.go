package composite

import (
	"testing"

	"shadereval/internal/values"
)

func TestArrayIndexRowMajor(t *testing.T) {
	data := make([]AnyValue, 6)
	for i := range data {
		data[i] = FromBase(values.ScalarValue(values.I32Elem(int32(i))))
	}
	arr, err := NewArray([]int{2, 3}, data)
	if err != nil {
		t.Fatal(err)
	}
	v, err := arr.Index(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	base, _ := v.AsBase()
	scalar, _ := base.AsScalar()
	if scalar.I32 != 5 {
		t.Errorf("arr.Index(1,2) = %d, want 5", scalar.I32)
	}

	// (1,2) lands on the last element under both row-major and column-major
	// orderings, so it can't tell them apart on its own. (0,1) does: row-major
	// gives 1, column-major gives 2.
	v, err = arr.Index(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	base, _ = v.AsBase()
	scalar, _ = base.AsScalar()
	if scalar.I32 != 1 {
		t.Errorf("arr.Index(0,1) = %d, want 1", scalar.I32)
	}
}

func TestArrayIndexOutOfRange(t *testing.T) {
	arr, _ := NewArray([]int{2}, []AnyValue{
		FromBase(values.ScalarValue(values.I32Elem(0))),
		FromBase(values.ScalarValue(values.I32Elem(1))),
	})
	if _, err := arr.Index(5); err == nil {
		t.Error("out-of-range index should fail")
	}
}

func TestNewArrayRejectsMismatchedLength(t *testing.T) {
	if _, err := NewArray([]int{2, 2}, []AnyValue{FromBase(values.ScalarValue(values.I32Elem(0)))}); err == nil {
		t.Error("expected a length mismatch error")
	}
}

func TestRecordLookupAndDuplicateRejection(t *testing.T) {
	rec, err := NewRecord("Point", []Field{
		{Name: "x", Value: FromBase(values.ScalarValue(values.F32Elem(1)))},
		{Name: "y", Value: FromBase(values.ScalarValue(values.F32Elem(2)))},
	})
	if err != nil {
		t.Fatal(err)
	}
	v, ok := rec.Lookup("y")
	if !ok {
		t.Fatal("expected field y to be found")
	}
	base, _ := v.AsBase()
	s, _ := base.AsScalar()
	if s.F32 != 2 {
		t.Errorf("y = %v, want 2", s.F32)
	}
	if _, ok := rec.Lookup("z"); ok {
		t.Error("unknown field should not be found")
	}
	if _, err := NewRecord("Dup", []Field{{Name: "a", Value: AnyValue{}}, {Name: "a", Value: AnyValue{}}}); err == nil {
		t.Error("duplicate field names must be rejected")
	}
}
