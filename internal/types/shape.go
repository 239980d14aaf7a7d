package types

// Shape is the closed 13-member enumeration of scalar/vector/matrix shapes.
// Matrix names follow RxC (rows x columns); storage is column-major.
type Shape uint8

const (
	Scalar Shape = iota
	Vec2
	Vec3
	Vec4
	Mat2 // 2x2
	Mat23
	Mat24
	Mat32
	Mat3 // 3x3
	Mat34
	Mat42
	Mat43
	Mat4 // 4x4
)

// shapeInfo captures the row/column dimensions backing each shape. Scalars
// and vectors report Cols==1 with Rows equal to their component count.
type shapeInfo struct {
	rows, cols int
}

var shapeTable = map[Shape]shapeInfo{
	Scalar: {1, 1},
	Vec2:   {2, 1},
	Vec3:   {3, 1},
	Vec4:   {4, 1},
	Mat2:   {2, 2},
	Mat23:  {2, 3},
	Mat24:  {2, 4},
	Mat32:  {3, 2},
	Mat3:   {3, 3},
	Mat34:  {3, 4},
	Mat42:  {4, 2},
	Mat43:  {4, 3},
	Mat4:   {4, 4},
}

// Width returns the element count of a shape: 1/2/3/4 for scalar/vector,
// rows*cols for a matrix.
func (s Shape) Width() int {
	info := shapeTable[s]
	return info.rows * info.cols
}

// Dims returns (rows, cols) for a shape. Scalars and vectors report cols==1.
func (s Shape) Dims() (rows, cols int) {
	info := shapeTable[s]
	return info.rows, info.cols
}

func (s Shape) IsScalar() bool { return s == Scalar }

func (s Shape) IsVector() bool {
	return s == Vec2 || s == Vec3 || s == Vec4
}

func (s Shape) IsMatrix() bool {
	switch s {
	case Mat2, Mat23, Mat24, Mat32, Mat3, Mat34, Mat42, Mat43, Mat4:
		return true
	default:
		return false
	}
}

// IsLegalFor reports whether shape s may be combined with base type b.
// Matrices only exist over f32/f64.
func (s Shape) IsLegalFor(b BaseType) bool {
	if s.IsMatrix() {
		return b == F32 || b == F64
	}
	return true
}

// MatrixShapeFor returns the matrix Shape for a given (rows, cols), or
// false if no such shape exists in the closed enumeration.
func MatrixShapeFor(rows, cols int) (Shape, bool) {
	for s, info := range shapeTable {
		if s.IsMatrix() && info.rows == rows && info.cols == cols {
			return s, true
		}
	}
	return 0, false
}

// VectorShapeFor returns the vector Shape for a given width (2/3/4), or
// false otherwise.
func VectorShapeFor(width int) (Shape, bool) {
	switch width {
	case 2:
		return Vec2, true
	case 3:
		return Vec3, true
	case 4:
		return Vec4, true
	default:
		return 0, false
	}
}

func (s Shape) String() string {
	switch s {
	case Scalar:
		return "scalar"
	case Vec2:
		return "vec2"
	case Vec3:
		return "vec3"
	case Vec4:
		return "vec4"
	case Mat2:
		return "mat2"
	case Mat23:
		return "mat23"
	case Mat24:
		return "mat24"
	case Mat32:
		return "mat32"
	case Mat3:
		return "mat3"
	case Mat34:
		return "mat34"
	case Mat42:
		return "mat42"
	case Mat43:
		return "mat43"
	case Mat4:
		return "mat4"
	default:
		return "unknown-shape"
	}
}

// enumOrder is the intrinsic order used to compare concrete shapes:
// scalar first, then vectors by width, then matrices by (rows, cols).
// Concrete shapes always sort before the generic shapes defined in
// prototype.go.
func (s Shape) enumOrder() int {
	order := []Shape{Scalar, Vec2, Vec3, Vec4, Mat2, Mat23, Mat24, Mat32, Mat3, Mat34, Mat42, Mat43, Mat4}
	for i, sh := range order {
		if sh == s {
			return i
		}
	}
	return len(order)
}
