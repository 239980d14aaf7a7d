package types

// ParamShape extends the 13 concrete Shape values with three generic
// families used only inside function prototypes to match a whole family
// of concrete argument shapes at dispatch time.
type ParamShape struct {
	concrete Shape
	generic  genericKind
}

type genericKind uint8

const (
	notGeneric genericKind = iota
	genericSV              // matches any scalar or vector
	genericM               // matches any matrix
	genericSVM             // matches anything
)

// Concrete builds a ParamShape pinned to one of the 13 concrete shapes.
func Concrete(s Shape) ParamShape { return ParamShape{concrete: s} }

var (
	GenericSV  = ParamShape{generic: genericSV}
	GenericM   = ParamShape{generic: genericM}
	GenericSVM = ParamShape{generic: genericSVM}
)

func (p ParamShape) IsGeneric() bool { return p.generic != notGeneric }

// Matches reports whether concrete shape s is accepted by parameter shape p.
func (p ParamShape) Matches(s Shape) bool {
	switch p.generic {
	case genericSV:
		return s.IsScalar() || s.IsVector()
	case genericM:
		return s.IsMatrix()
	case genericSVM:
		return true
	default:
		return p.concrete == s
	}
}

func (p ParamShape) String() string {
	switch p.generic {
	case genericSV:
		return "<SV>"
	case genericM:
		return "<M>"
	case genericSVM:
		return "<SVM>"
	default:
		return p.concrete.String()
	}
}

// order places concrete shapes (by their intrinsic enum order) before all
// generic shapes, and among generics: SV < M < SVM.
func (p ParamShape) order() int {
	if !p.IsGeneric() {
		return p.concrete.enumOrder()
	}
	const concreteCount = 13
	switch p.generic {
	case genericSV:
		return concreteCount
	case genericM:
		return concreteCount + 1
	default:
		return concreteCount + 2
	}
}

// Param is one formal parameter of a typed function prototype: a base
// type together with a (possibly generic) shape.
type Param struct {
	Base  BaseType
	Shape ParamShape
}

// CompareParam gives the total order used to sort prototypes: first by
// shape (concrete shapes in enum order, then GenericSV, GenericM,
// GenericSVM), then by base type via the cast lattice, falling back to
// the base type's enum order when the lattice is incomparable.
func CompareParam(a, b Param) int {
	if oa, ob := a.Shape.order(), b.Shape.order(); oa != ob {
		if oa < ob {
			return -1
		}
		return 1
	}
	switch CompareCast(a.Base, b.Base) {
	case Equal:
		return 0
	case Less:
		return -1
	case Greater:
		return 1
	default:
		if oa, ob := a.Base.enumOrder(), b.Base.enumOrder(); oa != ob {
			if oa < ob {
				return -1
			}
			return 1
		}
		return 0
	}
}

// ComparePrototype orders two prototypes: first by argument count, then
// lexicographically left-to-right by CompareParam. The result reverses
// when the arguments are swapped (cmp(a,b) == -cmp(b,a)), which is what
// makes the dispatcher's sort-then-first-match total and deterministic.
func ComparePrototype(a, b []Param) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i := range a {
		if c := CompareParam(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}
