// Package dispatch implements the overload instance/builder/dispatcher:
// typed function instances with fixed prototypes, a builder that sorts
// instances by the prototype comparator, and an eval that picks the best
// compatible instance. A sort-then-linear-scan design that generalizes
// the "register under a name, resolve at call time" pattern from
// string-keyed builtins to prototype-sorted overload sets.
package dispatch

import (
	"sort"

	"shadereval/internal/types"
	"shadereval/internal/values"
)

// Evaluator consumes already-casted argument values (for a typed instance)
// or raw argument values (for a generic instance) and returns the result,
// or ok=false to signal "this shape/type combination is not supported --
// keep searching".
type Evaluator func(args []values.Value) (values.Value, bool)

// Instance is one (prototype, evaluator) pair. A nil Prototype marks a
// generic instance: no declared prototype, the evaluator inspects the raw
// argument values itself.
type Instance struct {
	Prototype []types.Param
	Eval      Evaluator
}

func (inst Instance) isGeneric() bool { return inst.Prototype == nil }

// compatible reports whether inst accepts arguments with the given
// (shape, base-type) descriptors.
func (inst Instance) compatible(descs []argDesc) bool {
	if inst.isGeneric() {
		return true
	}
	if len(inst.Prototype) != len(descs) {
		return false
	}
	for i, p := range inst.Prototype {
		if !p.Shape.Matches(descs[i].shape) {
			return false
		}
		if !types.CanImplicitlyCastTo(descs[i].base, p.Base) {
			return false
		}
	}
	return true
}

type argDesc struct {
	shape types.Shape
	base  types.BaseType
}

func describe(v values.Value) argDesc { return argDesc{shape: v.Shape(), base: v.Base()} }

// cast produces the argument slice a typed instance's evaluator receives:
// each argument implicitly cast to the instance's declared parameter base
// type. Generic instances receive the raw arguments unchanged.
func (inst Instance) cast(args []values.Value) []values.Value {
	if inst.isGeneric() {
		return args
	}
	out := make([]values.Value, len(args))
	for i, a := range args {
		out[i] = values.Cast(a, inst.Prototype[i].Base)
	}
	return out
}

// Function is an ordered collection of instances under one name.
type Function struct {
	Name      string
	instances []Instance
}

// Eval walks the sorted overload list and invokes the first compatible
// instance that returns present. It returns ok=false if no overload is
// both compatible and willing to produce a result.
func (f *Function) Eval(args []values.Value) (values.Value, bool) {
	descs := make([]argDesc, len(args))
	for i, a := range args {
		descs[i] = describe(a)
	}
	for _, inst := range f.instances {
		if !inst.compatible(descs) {
			continue
		}
		if v, ok := inst.Eval(inst.cast(args)); ok {
			return v, true
		}
	}
	return values.Value{}, false
}

// Builder accumulates overload instances before a single sort at Build.
type Builder struct {
	name      string
	instances []Instance
}

func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// AddTyped registers a typed overload with a fixed (possibly 0/1/2-ary)
// prototype.
func (b *Builder) AddTyped(prototype []types.Param, eval Evaluator) *Builder {
	proto := append([]types.Param(nil), prototype...)
	if proto == nil {
		proto = []types.Param{}
	}
	b.instances = append(b.instances, Instance{Prototype: proto, Eval: eval})
	return b
}

// AddGeneric registers a generic overload with no declared prototype.
func (b *Builder) AddGeneric(eval Evaluator) *Builder {
	b.instances = append(b.instances, Instance{Prototype: nil, Eval: eval})
	return b
}

// Build sorts typed instances by the prototype comparator, places generic
// instances after all typed ones, and returns the finished Function.
func (b *Builder) Build() *Function {
	typed := make([]Instance, 0, len(b.instances))
	generic := make([]Instance, 0)
	for _, inst := range b.instances {
		if inst.isGeneric() {
			generic = append(generic, inst)
		} else {
			typed = append(typed, inst)
		}
	}
	sort.SliceStable(typed, func(i, j int) bool {
		return types.ComparePrototype(typed[i].Prototype, typed[j].Prototype) < 0
	})
	return &Function{Name: b.name, instances: append(typed, generic...)}
}
