// Package types describes the closed base-type/shape algebra and the
// implicit-cast lattice the rest of the engine dispatches against.
package types

// BaseType is the closed five-member enumeration of scalar element types.
type BaseType uint8

const (
	Bool BaseType = iota
	I32
	U32
	F32
	F64
)

func (b BaseType) String() string {
	switch b {
	case Bool:
		return "bool"
	case I32:
		return "int"
	case U32:
		return "uint"
	case F32:
		return "float"
	case F64:
		return "double"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether b participates in the numeric cast lattice.
func (b BaseType) IsNumeric() bool {
	return b == I32 || b == U32 || b == F32 || b == F64
}

// CastOrder is the result of comparing two base types under implicit
// conversion. Only i32->u32->f32->f64 style widenings are ever Less/Greater;
// bool only ever compares Equal to itself.
type CastOrder int

const (
	Incomparable CastOrder = iota
	Equal
	Less    // a implicitly converts into b (a is narrower)
	Greater // b implicitly converts into a
)

// castEdges lists the direct implicit-conversion edges of the lattice.
// The relation is reflexive and transitive; CompareCast computes the
// transitive closure on demand.
var castEdges = map[BaseType][]BaseType{
	I32: {U32, F32, F64},
	U32: {F32, F64},
	F32: {F64},
}

func reachable(from, to BaseType) bool {
	if from == to {
		return true
	}
	visited := map[BaseType]bool{from: true}
	queue := []BaseType{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range castEdges[cur] {
			if next == to {
				return true
			}
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

// CompareCast returns how a and b relate under implicit conversion.
func CompareCast(a, b BaseType) CastOrder {
	if a == b {
		return Equal
	}
	if a == Bool || b == Bool {
		return Incomparable
	}
	if reachable(a, b) {
		return Less
	}
	if reachable(b, a) {
		return Greater
	}
	return Incomparable
}

// CanImplicitlyCastTo reports whether a value of type from may be used where
// a value of type to is expected without an explicit constructor call.
func CanImplicitlyCastTo(from, to BaseType) bool {
	order := CompareCast(from, to)
	return order == Equal || order == Less
}

// enumOrder gives the base types a deterministic total order, used as a
// tiebreaker when CompareCast reports Incomparable (e.g. bool vs numeric).
func (b BaseType) enumOrder() int {
	switch b {
	case Bool:
		return 0
	case I32:
		return 1
	case U32:
		return 2
	case F32:
		return 3
	case F64:
		return 4
	default:
		return 5
	}
}
