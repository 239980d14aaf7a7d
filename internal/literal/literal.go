// Package literal bridges shaped constant values and their canonical AST
// representation. ToAST turns any base value into a literal node or a
// constructor call; FromLiteral recovers a shaped value from a literal
// AST leaf. Derives the constructor name from the value's actual shape
// via internal/types, rather than hardcoding a single constructor name
// for every shape.
package literal

import (
	"fmt"
	"strings"

	"shadereval/internal/ast"
	"shadereval/internal/composite"
	"shadereval/internal/types"
	"shadereval/internal/values"
)

// FromLiteral recovers the scalar Value a literal AST leaf denotes.
func FromLiteral(l *ast.Literal) values.Value {
	switch l.Kind {
	case ast.BoolLiteral:
		return values.ScalarValue(values.BoolElem(l.Bool))
	case ast.IntLiteral:
		return values.ScalarValue(values.I32Elem(l.Int))
	case ast.UIntLiteral:
		return values.ScalarValue(values.U32Elem(l.UInt))
	case ast.FloatLiteral:
		return values.ScalarValue(values.F32Elem(l.Float))
	default:
		return values.ScalarValue(values.F64Elem(l.Double))
	}
}

// elemLiteral wraps a single Elem as a scalar *ast.Literal.
func elemLiteral(e values.Elem) *ast.Literal {
	switch e.Base {
	case types.Bool:
		return &ast.Literal{Kind: ast.BoolLiteral, Bool: e.Bool}
	case types.I32:
		return &ast.Literal{Kind: ast.IntLiteral, Int: e.I32}
	case types.U32:
		return &ast.Literal{Kind: ast.UIntLiteral, UInt: e.U32}
	case types.F32:
		return &ast.Literal{Kind: ast.FloatLiteral, Float: e.F32}
	default:
		return &ast.Literal{Kind: ast.DoubleLiteral, Double: e.F64}
	}
}

// ToAST converts a base value to its canonical AST form. Scalars become a
// literal node; everything else becomes a call to the shape's constructor,
// with arguments the element literals in column-major order. Array and
// record values have no canonical literal form and are therefore not
// handled here at all: there is no composite.AnyValue overload of ToAST,
// so the propagator cannot inline them into a non-constant context.
func ToAST(v values.Value) ast.Expr {
	if v.IsScalar() {
		e, _ := v.AsScalar()
		return elemLiteral(e)
	}
	args := make([]ast.Expr, v.Width())
	for i, e := range v.ColumnIter() {
		args[i] = elemLiteral(e)
	}
	return &ast.Call{
		Callee: &ast.Variable{Name: constructorName(v.Base(), v.Shape())},
		Args:   args,
	}
}

// constructorName derives the GLSL-style constructor name for a shape and
// base type, e.g. vec3, ivec3, uvec3, bvec3, dvec3, mat34, dmat34. The
// shape's own width and dims drive the name for every base type, so a
// dvec2 names dvec2, never a wider constructor.
func constructorName(b types.BaseType, s types.Shape) string {
	prefix := ""
	switch b {
	case types.I32:
		prefix = "i"
	case types.U32:
		prefix = "u"
	case types.Bool:
		prefix = "b"
	case types.F64:
		prefix = "d"
	}
	if s.IsMatrix() {
		rows, cols := s.Dims()
		if rows == cols {
			return fmt.Sprintf("%smat%d", prefix, rows)
		}
		return fmt.Sprintf("%smat%d%d", prefix, rows, cols)
	}
	return fmt.Sprintf("%svec%d", prefix, s.Width())
}

// TypeSpecifier returns the language's surface-syntax type for a constant
// value, e.g. "ivec3", "mat4", "dvec2", or "Struct{...}[d1][d2]" for
// composites.
func TypeSpecifier(v composite.AnyValue) string {
	switch v.Kind {
	case composite.KindBase:
		b := v.Base
		if b.IsScalar() {
			return b.Base().String()
		}
		return constructorName(b.Base(), b.Shape())
	case composite.KindArray:
		var sb strings.Builder
		sb.WriteString(TypeSpecifier(v.Array.ElemType()))
		for _, d := range v.Array.Dims() {
			fmt.Fprintf(&sb, "[%d]", d)
		}
		return sb.String()
	case composite.KindRecord:
		return fmt.Sprintf("%s{%s}", v.Record.Name(), strings.Join(v.Record.FieldNames(), ", "))
	default:
		return "unknown"
	}
}
