package builtins

import (
	"shadereval/internal/dispatch"
	"shadereval/internal/types"
	"shadereval/internal/values"
)

// matVecProduct computes m (rows x cols) times column vector v (length
// cols), producing a vector of length rows: result[r] = sum_c m[r,c]*v[c].
// Storage is column-major, so m's element at (row r, col c) lives at flat
// index c*rows+r.
func matVecProduct(base types.BaseType, rows, cols int, m, v values.Value) values.Value {
	out := make([]values.Elem, rows)
	for r := 0; r < rows; r++ {
		out[r] = values.ZeroElem(base)
		for c := 0; c < cols; c++ {
			out[r] = numericOp(out[r], numericOp(m.At(c*rows+r), v.At(c), mulOp), addOp)
		}
	}
	shape, _ := types.VectorShapeFor(rows)
	return values.MustNew(base, shape, out)
}

// vecMatProduct computes row vector v (length rows) times m (rows x cols),
// producing a vector of length cols: result[c] = sum_r v[r]*m[r,c].
func vecMatProduct(base types.BaseType, rows, cols int, v, m values.Value) values.Value {
	out := make([]values.Elem, cols)
	for c := 0; c < cols; c++ {
		out[c] = values.ZeroElem(base)
		for r := 0; r < rows; r++ {
			out[c] = numericOp(out[c], numericOp(v.At(r), m.At(c*rows+r), mulOp), addOp)
		}
	}
	shape, _ := types.VectorShapeFor(cols)
	return values.MustNew(base, shape, out)
}

// registerMatrixVectorProducts adds the matRxC*vecC -> vecR and
// vecR*matRxC -> vecC overloads for every legal matrix shape and float
// base, following standard linear-algebra dimensions.
func registerMatrixVectorProducts(b *dispatch.Builder) {
	for _, base := range floatBases {
		for _, shape := range matrixShapes {
			base, shape := base, shape
			rows, cols := shape.Dims()
			colVecShape, _ := types.VectorShapeFor(cols)
			rowVecShape, _ := types.VectorShapeFor(rows)

			b.AddTyped([]types.Param{{Base: base, Shape: types.Concrete(shape)}, {Base: base, Shape: types.Concrete(colVecShape)}},
				func(args []values.Value) (values.Value, bool) {
					return matVecProduct(base, rows, cols, args[0], args[1]), true
				})
			b.AddTyped([]types.Param{{Base: base, Shape: types.Concrete(rowVecShape)}, {Base: base, Shape: types.Concrete(shape)}},
				func(args []values.Value) (values.Value, bool) {
					return vecMatProduct(base, rows, cols, args[0], args[1]), true
				})
		}
	}
}

// BinaryMult: elementwise broadcast on numeric SV and float SVM, plus the
// full set of matrix*vector and vector*matrix products over f32/f64. The
// concrete-shape product overloads sort before the generic elementwise
// ones, so a matrix*vector pair resolves to the linear-algebra product and
// only same-shape SVM pairs fall through to elementwise multiplication.
var BinaryMult = func() *dispatch.Function {
	b := dispatch.NewBuilder("*")
	registerMatrixVectorProducts(b)
	for _, base := range numericBases {
		base := base
		shape := svOrSvmShape(base)
		f := func(x, y values.Elem) values.Elem { return numericOp(x, y, mulOp) }
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
}()
