package builtins

import (
	"shadereval/internal/dispatch"
	"shadereval/internal/types"
	"shadereval/internal/values"
)

// scalarConstructor builds the bool/int/uint/float/double(x) family:
// a single generic overload that accepts any scalar or vector of any base
// type and re-casts its first component explicitly. A generic instance is
// required rather than typed overloads because explicit construction
// allows narrowing conversions the implicit-cast lattice forbids
// (float(3) is fine, but I32 cannot implicitly cast to Bool, so a typed
// Bool-parameter overload would reject it).
func scalarConstructor(name string, to types.BaseType) *dispatch.Function {
	b := dispatch.NewBuilder(name)
	b.AddGeneric(func(args []values.Value) (values.Value, bool) {
		if len(args) != 1 || args[0].IsMatrix() {
			return values.Value{}, false
		}
		return values.ScalarValue(values.CastElem(args[0].At(0), to)), true
	})
	return b.Build()
}

// vectorConstructor builds the vecN(...)/ivecN/uvecN/bvecN/dvecN family: a
// single scalar argument broadcasts; otherwise every argument's elements
// are concatenated in column-major order and the first Width() of them
// taken, explicitly cast to base; too few elements reports absent.
func vectorConstructor(name string, shape types.Shape, base types.BaseType) *dispatch.Function {
	b := dispatch.NewBuilder(name)
	b.AddGeneric(func(args []values.Value) (values.Value, bool) {
		if len(args) == 1 {
			if s, ok := args[0].AsScalar(); ok {
				return values.Broadcast(shape, values.CastElem(s, base)), true
			}
		}
		var flat []values.Elem
		for _, a := range args {
			flat = append(flat, a.ColumnIter()...)
		}
		width := shape.Width()
		if len(flat) < width {
			return values.Value{}, false
		}
		out := make([]values.Elem, width)
		for i := 0; i < width; i++ {
			out[i] = values.CastElem(flat[i], base)
		}
		return values.MustNew(base, shape, out), true
	})
	return b.Build()
}

// matrixConstructor builds the matRC(...)/dmatRC(...) family: a single
// scalar argument builds a diagonal matrix; a single matrix argument
// overlays its top-left submatrix onto an identity matrix of the target
// shape; otherwise arguments flatten column-major and the first R*C
// elements are taken, explicitly cast.
func matrixConstructor(name string, shape types.Shape, base types.BaseType) *dispatch.Function {
	rows, cols := shape.Dims()
	b := dispatch.NewBuilder(name)
	b.AddGeneric(func(args []values.Value) (values.Value, bool) {
		if len(args) == 1 {
			if s, ok := args[0].AsScalar(); ok {
				elems := make([]values.Elem, rows*cols)
				for i := range elems {
					elems[i] = values.ZeroElem(base)
				}
				diag := min(rows, cols)
				casted := values.CastElem(s, base)
				for d := 0; d < diag; d++ {
					elems[d*rows+d] = casted
				}
				return values.MustNew(base, shape, elems), true
			}
			if args[0].IsMatrix() {
				srcRows, srcCols := args[0].Shape().Dims()
				elems := make([]values.Elem, rows*cols)
				for c := 0; c < cols; c++ {
					for r := 0; r < rows; r++ {
						if r == c {
							elems[c*rows+r] = values.OneElem(base)
						} else {
							elems[c*rows+r] = values.ZeroElem(base)
						}
					}
				}
				minR, minC := min(rows, srcRows), min(cols, srcCols)
				for c := 0; c < minC; c++ {
					for r := 0; r < minR; r++ {
						elems[c*rows+r] = values.CastElem(args[0].At(c*srcRows+r), base)
					}
				}
				return values.MustNew(base, shape, elems), true
			}
		}
		var flat []values.Elem
		for _, a := range args {
			flat = append(flat, a.ColumnIter()...)
		}
		width := rows * cols
		if len(flat) < width {
			return values.Value{}, false
		}
		out := make([]values.Elem, width)
		for i := 0; i < width; i++ {
			out[i] = values.CastElem(flat[i], base)
		}
		return values.MustNew(base, shape, out), true
	})
	return b.Build()
}

var scalarConstructors = map[string]*dispatch.Function{
	"bool":   scalarConstructor("bool", types.Bool),
	"int":    scalarConstructor("int", types.I32),
	"uint":   scalarConstructor("uint", types.U32),
	"float":  scalarConstructor("float", types.F32),
	"double": scalarConstructor("double", types.F64),
}

var vectorBasePrefix = map[types.BaseType]string{
	types.Bool: "b",
	types.I32:  "i",
	types.U32:  "u",
	types.F32:  "",
	types.F64:  "d",
}

var vectorShapes = []types.Shape{types.Vec2, types.Vec3, types.Vec4}

var vectorConstructors = func() map[string]*dispatch.Function {
	out := map[string]*dispatch.Function{}
	for base, prefix := range vectorBasePrefix {
		for _, shape := range vectorShapes {
			name := prefix + "vec" + widthSuffix(shape)
			out[name] = vectorConstructor(name, shape, base)
		}
	}
	return out
}()

func widthSuffix(s types.Shape) string {
	switch s {
	case types.Vec2:
		return "2"
	case types.Vec3:
		return "3"
	default:
		return "4"
	}
}

var matrixShapes = []types.Shape{
	types.Mat2, types.Mat23, types.Mat24,
	types.Mat32, types.Mat3, types.Mat34,
	types.Mat42, types.Mat43, types.Mat4,
}

var matrixConstructors = func() map[string]*dispatch.Function {
	out := map[string]*dispatch.Function{}
	for _, base := range floatBases {
		prefix := ""
		if base == types.F64 {
			prefix = "d"
		}
		for _, shape := range matrixShapes {
			rows, cols := shape.Dims()
			name := prefix + "mat" + dimsSuffix(rows, cols)
			out[name] = matrixConstructor(name, shape, base)
		}
	}
	return out
}()

func dimsSuffix(rows, cols int) string {
	if rows == cols {
		return widthDigit(rows)
	}
	return widthDigit(rows) + widthDigit(cols)
}

func widthDigit(n int) string {
	switch n {
	case 2:
		return "2"
	case 3:
		return "3"
	default:
		return "4"
	}
}
