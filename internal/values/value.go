package values

import (
	"fmt"

	"shadereval/internal/types"
)

// Value is a shaped scalar/vector/matrix constant: a base type, a shape,
// and a flat column-major store of exactly Shape.Width() elements, every
// one tagged with the same base type.
type Value struct {
	base  types.BaseType
	shape types.Shape
	elems []Elem
}

// New validates and constructs a Value. It fails if the shape/base
// combination is illegal (matrices only exist for f32/f64), the element
// count does not match the shape's width, or any element's tag disagrees
// with base.
func New(base types.BaseType, shape types.Shape, elems []Elem) (Value, error) {
	if !shape.IsLegalFor(base) {
		return Value{}, fmt.Errorf("shape %s is not legal for base type %s", shape, base)
	}
	if len(elems) != shape.Width() {
		return Value{}, fmt.Errorf("shape %s expects %d elements, got %d", shape, shape.Width(), len(elems))
	}
	for i, e := range elems {
		if e.Base != base {
			return Value{}, fmt.Errorf("element %d has base %s, want %s", i, e.Base, base)
		}
	}
	cp := make([]Elem, len(elems))
	copy(cp, elems)
	return Value{base: base, shape: shape, elems: cp}, nil
}

// MustNew is New but panics on error; reserved for built-in tables where
// the shape/element count is a compile-time constant.
func MustNew(base types.BaseType, shape types.Shape, elems []Elem) Value {
	v, err := New(base, shape, elems)
	if err != nil {
		panic(err)
	}
	return v
}

// ScalarValue wraps a single element as a Scalar-shaped Value.
func ScalarValue(e Elem) Value {
	return Value{base: e.Base, shape: types.Scalar, elems: []Elem{e}}
}

func (v Value) Base() types.BaseType { return v.base }
func (v Value) Shape() types.Shape   { return v.shape }
func (v Value) Width() int           { return len(v.elems) }

func (v Value) IsScalar() bool { return v.shape.IsScalar() }
func (v Value) IsVector() bool { return v.shape.IsVector() }
func (v Value) IsMatrix() bool { return v.shape.IsMatrix() }

// At returns the element at column-major index i.
func (v Value) At(i int) Elem { return v.elems[i] }

// AsScalar returns the sole element iff v is Scalar-shaped.
func (v Value) AsScalar() (Elem, bool) {
	if !v.IsScalar() {
		return Elem{}, false
	}
	return v.elems[0], true
}

// ColumnIter returns the elements in column-major storage order. The
// returned slice must not be mutated by callers.
func (v Value) ColumnIter() []Elem { return v.elems }

// Map applies f to every element, preserving shape. The resulting base
// type is taken from f's output (all outputs must agree, which callers
// that change base type -- e.g. cast operators -- naturally satisfy).
func Map(v Value, f func(Elem) Elem) Value {
	out := make([]Elem, len(v.elems))
	for i, e := range v.elems {
		out[i] = f(e)
	}
	base := v.base
	if len(out) > 0 {
		base = out[0].Base
	}
	return Value{base: base, shape: v.shape, elems: out}
}

// ZipMap applies f component-wise to a and b. It returns ok=false iff
// shape(a) != shape(b); it never implicitly broadcasts. Broadcasting,
// where the language allows it, is handled by callers before invoking
// ZipMap.
func ZipMap(a, b Value, f func(x, y Elem) Elem) (Value, bool) {
	if a.shape != b.shape {
		return Value{}, false
	}
	out := make([]Elem, len(a.elems))
	for i := range a.elems {
		out[i] = f(a.elems[i], b.elems[i])
	}
	base := a.base
	if len(out) > 0 {
		base = out[0].Base
	}
	return Value{base: base, shape: a.shape, elems: out}, true
}

// Fold performs a left fold over ColumnIter in iteration order.
func Fold[R any](v Value, init R, g func(acc R, e Elem) R) R {
	acc := init
	for _, e := range v.elems {
		acc = g(acc, e)
	}
	return acc
}

// Broadcast produces a Value of the given shape with every element equal
// to e, used by vector constructors given a single scalar (e.g. vec3(4.0)).
func Broadcast(shape types.Shape, e Elem) Value {
	elems := make([]Elem, shape.Width())
	for i := range elems {
		elems[i] = e
	}
	return Value{base: e.Base, shape: shape, elems: elems}
}

// Equal reports whether a and b have the same shape, base type and
// elementwise values.
func Equal(a, b Value) bool {
	if a.shape != b.shape || a.base != b.base {
		return false
	}
	for i := range a.elems {
		if !a.elems[i].Equal(b.elems[i]) {
			return false
		}
	}
	return true
}
