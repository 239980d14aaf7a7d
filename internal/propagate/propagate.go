// Package propagate implements the recursive constant-folding rewriter.
// It walks an expression tree, consulting a scoped constant-binding
// lookup for variables and the built-in overload tables (via a function
// lookup) for operators and constructors, and produces either a fully
// folded constant or an expression with every constant-foldable child
// already reduced. Expressed as a visitor, walking ast.Expr via
// Accept(visitor).
package propagate

import (
	"shadereval/internal/ast"
	"shadereval/internal/builtins"
	"shadereval/internal/composite"
	"shadereval/internal/dispatch"
	"shadereval/internal/errors"
	"shadereval/internal/literal"
	"shadereval/internal/types"
	"shadereval/internal/values"
)

// ConstLookup resolves a free variable name to its bound constant value,
// if any.
type ConstLookup interface {
	Lookup(name string) (composite.AnyValue, bool)
}

// FunctionLookup resolves a call's callee name to a built-in overload set.
// builtins.BuiltinFunctions satisfies this structurally.
type FunctionLookup interface {
	Lookup(name string) (*dispatch.Function, bool)
}

// Result is the propagator's ValueOrExpr: IsConst selects whether Value or
// Expr is the meaningful half. Expr is populated only for a non-const
// result; a parent node that cannot itself fold rebuilds from a const
// child through valueExpr.
type Result struct {
	IsConst bool
	Value   composite.AnyValue
	Expr    ast.Expr
}

// Propagate folds expr as far as const_lookup and fn_lookup allow. It
// returns the first error encountered anywhere in the tree; no partial
// progress is retained on failure.
func Propagate(expr ast.Expr, constLookup ConstLookup, fnLookup FunctionLookup) (Result, error) {
	p := &propagator{constLookup: constLookup, fnLookup: fnLookup}
	res := p.run(expr)
	if p.err != nil {
		return Result{}, p.err
	}
	return res, nil
}

type propagator struct {
	constLookup ConstLookup
	fnLookup    FunctionLookup
	err         *errors.EvalError
}

// run is the only way recursive calls re-enter the visitor: once an error
// has been recorded, it short-circuits without visiting further nodes, so
// the first failure anywhere aborts the whole call.
func (p *propagator) run(e ast.Expr) Result {
	if p.err != nil {
		return Result{}
	}
	return e.Accept(p).(Result)
}

func (p *propagator) fail(err *errors.EvalError) Result {
	if p.err == nil {
		p.err = err
	}
	return Result{}
}

// constResult wraps a folded value. Expr is left nil: a const Result's
// canonical Expr form depends on the original node at the use site (see
// valueExpr), not on anything constResult itself can know.
func constResult(v composite.AnyValue) Result {
	return Result{IsConst: true, Value: v}
}

// valueExpr returns the canonical Expr a child contributes to a parent
// rebuild: a freshly built literal for a folded base constant, or the
// original (unmodified) node for a folded array/record constant, which has
// no canonical literal form and must therefore pass through unfolded
// rather than ever being fabricated.
func valueExpr(original ast.Expr, r Result) ast.Expr {
	if !r.IsConst {
		return r.Expr
	}
	if base, ok := r.Value.AsBase(); ok {
		return literal.ToAST(base)
	}
	return original
}

var unaryOps = map[ast.UnaryOp]*dispatch.Function{
	ast.UnaryAdd:        builtins.UnaryAdd,
	ast.UnaryMinus:      builtins.UnaryMinus,
	ast.UnaryNot:        builtins.UnaryNot,
	ast.UnaryComplement: builtins.UnaryComplement,
}

var binaryOps = map[ast.BinaryOp]*dispatch.Function{
	ast.BinOr:      builtins.BinaryOr,
	ast.BinXor:     builtins.BinaryXor,
	ast.BinAnd:     builtins.BinaryAnd,
	ast.BinBitOr:   builtins.BinaryBitOr,
	ast.BinBitXor:  builtins.BinaryBitXor,
	ast.BinBitAnd:  builtins.BinaryBitAnd,
	ast.BinEqual:   builtins.BinaryEqual,
	ast.BinLT:      builtins.BinaryLT,
	ast.BinGT:      builtins.BinaryGT,
	ast.BinLTE:     builtins.BinaryLTE,
	ast.BinGTE:     builtins.BinaryGTE,
	ast.BinLShift:  builtins.BinaryLShift,
	ast.BinRShift:  builtins.BinaryRShift,
	ast.BinAdd:     builtins.BinaryAdd,
	ast.BinSub:     builtins.BinarySub,
	ast.BinMult:    builtins.BinaryMult,
	ast.BinDiv:     builtins.BinaryDiv,
	ast.BinMod:     builtins.BinaryMod,
}

func (p *propagator) VisitLiteral(l *ast.Literal) interface{} {
	return constResult(composite.FromBase(literal.FromLiteral(l)))
}

func (p *propagator) VisitVariable(e *ast.Variable) interface{} {
	if v, ok := p.constLookup.Lookup(e.Name); ok {
		return constResult(v)
	}
	return Result{IsConst: false, Expr: e}
}

func (p *propagator) VisitUnary(e *ast.Unary) interface{} {
	operand := p.run(e.Operand)
	if p.err != nil {
		return Result{}
	}
	if e.Op == ast.UnaryInc || e.Op == ast.UnaryDec {
		if operand.IsConst {
			return p.fail(errors.NewLValue(errors.UnaryOpExpectedLValue, string(e.Op)))
		}
		return Result{IsConst: false, Expr: &ast.Unary{Op: e.Op, Operand: operand.Expr}}
	}
	if !operand.IsConst {
		return Result{IsConst: false, Expr: &ast.Unary{Op: e.Op, Operand: operand.Expr}}
	}
	base, ok := operand.Value.AsBase()
	if !ok {
		return p.fail(errors.NewUnaryOperand(string(e.Op), literal.TypeSpecifier(operand.Value)))
	}
	fn := unaryOps[e.Op]
	v, ok := fn.Eval([]values.Value{base})
	if !ok {
		return p.fail(errors.NewUnaryOperand(string(e.Op), literal.TypeSpecifier(operand.Value)))
	}
	return constResult(composite.FromBase(v))
}

func (p *propagator) VisitBinary(e *ast.Binary) interface{} {
	left := p.run(e.Left)
	right := p.run(e.Right)
	if p.err != nil {
		return Result{}
	}
	if !left.IsConst || !right.IsConst {
		return Result{IsConst: false, Expr: &ast.Binary{Op: e.Op, Left: valueExpr(e.Left, left), Right: valueExpr(e.Right, right)}}
	}
	lBase, lok := left.Value.AsBase()
	rBase, rok := right.Value.AsBase()
	if !lok || !rok {
		return p.fail(errors.New(errors.IllegalExpression))
	}
	if e.Op == ast.BinNotEq {
		v, ok := builtins.BinaryEqual.Eval([]values.Value{lBase, rBase})
		if !ok {
			return p.fail(errors.NewBinaryOperand(string(e.Op), literal.TypeSpecifier(left.Value), literal.TypeSpecifier(right.Value)))
		}
		eq, _ := v.AsScalar()
		return constResult(composite.FromBase(values.ScalarValue(values.BoolElem(!eq.Bool))))
	}
	fn, ok := binaryOps[e.Op]
	if !ok {
		return p.fail(errors.New(errors.IllegalExpression))
	}
	v, ok := fn.Eval([]values.Value{lBase, rBase})
	if !ok {
		return p.fail(errors.NewBinaryOperand(string(e.Op), literal.TypeSpecifier(left.Value), literal.TypeSpecifier(right.Value)))
	}
	return constResult(composite.FromBase(v))
}

func (p *propagator) VisitTernary(e *ast.Ternary) interface{} {
	cond := p.run(e.Cond)
	if p.err != nil {
		return Result{}
	}
	if cond.IsConst {
		base, ok := cond.Value.AsBase()
		if !ok || !base.IsScalar() || base.Base() != types.Bool {
			return p.fail(errors.New(errors.TernaryExpectedScalarBool))
		}
		b, _ := base.AsScalar()
		if b.Bool {
			return p.run(e.Then)
		}
		return p.run(e.Else)
	}
	then := p.run(e.Then)
	els := p.run(e.Else)
	if p.err != nil {
		return Result{}
	}
	return Result{IsConst: false, Expr: &ast.Ternary{
		Cond: cond.Expr,
		Then: valueExpr(e.Then, then),
		Else: valueExpr(e.Else, els),
	}}
}

func (p *propagator) VisitAssignment(e *ast.Assignment) interface{} {
	target := p.run(e.Target)
	if p.err != nil {
		return Result{}
	}
	if target.IsConst {
		return p.fail(errors.NewLValue(errors.AssignmentExpectedLValue, e.Op))
	}
	value := p.run(e.Value)
	if p.err != nil {
		return Result{}
	}
	return Result{IsConst: false, Expr: &ast.Assignment{
		Target: target.Expr,
		Op:     e.Op,
		Value:  valueExpr(e.Value, value),
	}}
}

func (p *propagator) VisitCall(e *ast.Call) interface{} {
	variable, isIdentifier := e.Callee.(*ast.Variable)
	argResults := make([]Result, len(e.Args))
	for i, a := range e.Args {
		argResults[i] = p.run(a)
		if p.err != nil {
			return Result{}
		}
	}
	allConstBase := isIdentifier
	argValues := make([]values.Value, len(e.Args))
	if isIdentifier {
		for i, r := range argResults {
			if !r.IsConst {
				allConstBase = false
				break
			}
			base, ok := r.Value.AsBase()
			if !ok {
				allConstBase = false
				break
			}
			argValues[i] = base
		}
	}
	if allConstBase {
		if fn, ok := p.fnLookup.Lookup(variable.Name); ok {
			v, ok := fn.Eval(argValues)
			if !ok {
				return p.fail(errors.New(errors.NoMatchingFunctionOverload))
			}
			return constResult(composite.FromBase(v))
		}
	}
	var calleeExpr ast.Expr = variable
	if !isIdentifier {
		calleeRes := p.run(e.Callee)
		if p.err != nil {
			return Result{}
		}
		calleeExpr = valueExpr(e.Callee, calleeRes)
	}
	args := make([]ast.Expr, len(e.Args))
	for i, a := range e.Args {
		args[i] = valueExpr(a, argResults[i])
	}
	return Result{IsConst: false, Expr: &ast.Call{Callee: calleeExpr, Args: args}}
}

func (p *propagator) VisitField(e *ast.Field) interface{} {
	object := p.run(e.Object)
	if p.err != nil {
		return Result{}
	}
	if !object.IsConst {
		return Result{IsConst: false, Expr: &ast.Field{Object: object.Expr, Name: e.Name}}
	}
	switch object.Value.Kind {
	case composite.KindRecord:
		v, ok := object.Value.Record.Lookup(e.Name)
		if !ok {
			return p.fail(errors.NewUnknownMember(e.Name))
		}
		return constResult(v)
	case composite.KindArray:
		return p.fail(errors.New(errors.DotRequiresStructure))
	default:
		// Scalar/vector swizzles are not folded in this pass: leave
		// the member access in place over the constant's canonical
		// form.
		return Result{IsConst: false, Expr: &ast.Field{Object: valueExpr(e.Object, object), Name: e.Name}}
	}
}

func (p *propagator) VisitIndex(e *ast.Index) interface{} {
	return p.fail(errors.New(errors.IllegalExpression))
}

func (p *propagator) VisitPostInc(e *ast.PostInc) interface{} {
	operand := p.run(e.Operand)
	if p.err != nil {
		return Result{}
	}
	if operand.IsConst {
		return p.fail(errors.NewLValue(errors.PostOpExpectedLValue, "++"))
	}
	return Result{IsConst: false, Expr: &ast.PostInc{Operand: operand.Expr}}
}

func (p *propagator) VisitPostDec(e *ast.PostDec) interface{} {
	operand := p.run(e.Operand)
	if p.err != nil {
		return Result{}
	}
	if operand.IsConst {
		return p.fail(errors.NewLValue(errors.PostOpExpectedLValue, "--"))
	}
	return Result{IsConst: false, Expr: &ast.PostDec{Operand: operand.Expr}}
}

func (p *propagator) VisitComma(e *ast.Comma) interface{} {
	left := p.run(e.Left)
	right := p.run(e.Right)
	if p.err != nil {
		return Result{}
	}
	return Result{IsConst: false, Expr: &ast.Comma{
		Left:  valueExpr(e.Left, left),
		Right: valueExpr(e.Right, right),
	}}
}
