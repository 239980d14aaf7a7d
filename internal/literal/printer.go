package literal

import (
	"fmt"
	"strconv"
	"strings"

	"shadereval/internal/ast"
)

// Print renders an Expr tree as fully parenthesized, canonical source text,
// by walking it with the same Accept(visitor) pattern the propagator uses,
// folding into a string buffer instead of a Result. Used to report residual
// (non-const) expressions and to render folded results stored in the cache.
func Print(e ast.Expr) string {
	p := &printer{}
	e.Accept(p)
	return p.buf.String()
}

type printer struct {
	buf strings.Builder
}

func (p *printer) VisitLiteral(l *ast.Literal) interface{} {
	switch l.Kind {
	case ast.BoolLiteral:
		p.buf.WriteString(strconv.FormatBool(l.Bool))
	case ast.IntLiteral:
		p.buf.WriteString(strconv.FormatInt(int64(l.Int), 10))
	case ast.UIntLiteral:
		p.buf.WriteString(strconv.FormatUint(uint64(l.UInt), 10))
		p.buf.WriteByte('u')
	case ast.FloatLiteral:
		p.buf.WriteString(strconv.FormatFloat(float64(l.Float), 'g', -1, 32))
		p.buf.WriteByte('f')
	default:
		p.buf.WriteString(strconv.FormatFloat(l.Double, 'g', -1, 64))
		p.buf.WriteString("lf")
	}
	return nil
}

func (p *printer) VisitVariable(e *ast.Variable) interface{} {
	p.buf.WriteString(e.Name)
	return nil
}

func (p *printer) VisitUnary(e *ast.Unary) interface{} {
	fmt.Fprintf(&p.buf, "(%s", e.Op)
	e.Operand.Accept(p)
	p.buf.WriteByte(')')
	return nil
}

func (p *printer) VisitBinary(e *ast.Binary) interface{} {
	p.buf.WriteByte('(')
	e.Left.Accept(p)
	fmt.Fprintf(&p.buf, " %s ", e.Op)
	e.Right.Accept(p)
	p.buf.WriteByte(')')
	return nil
}

func (p *printer) VisitTernary(e *ast.Ternary) interface{} {
	p.buf.WriteByte('(')
	e.Cond.Accept(p)
	p.buf.WriteString(" ? ")
	e.Then.Accept(p)
	p.buf.WriteString(" : ")
	e.Else.Accept(p)
	p.buf.WriteByte(')')
	return nil
}

func (p *printer) VisitAssignment(e *ast.Assignment) interface{} {
	p.buf.WriteByte('(')
	e.Target.Accept(p)
	fmt.Fprintf(&p.buf, " %s ", e.Op)
	e.Value.Accept(p)
	p.buf.WriteByte(')')
	return nil
}

func (p *printer) VisitCall(e *ast.Call) interface{} {
	e.Callee.Accept(p)
	p.buf.WriteByte('(')
	for i, a := range e.Args {
		if i > 0 {
			p.buf.WriteString(", ")
		}
		a.Accept(p)
	}
	p.buf.WriteByte(')')
	return nil
}

func (p *printer) VisitField(e *ast.Field) interface{} {
	e.Object.Accept(p)
	p.buf.WriteByte('.')
	p.buf.WriteString(e.Name)
	return nil
}

func (p *printer) VisitIndex(e *ast.Index) interface{} {
	e.Object.Accept(p)
	p.buf.WriteByte('[')
	e.Idx.Accept(p)
	p.buf.WriteByte(']')
	return nil
}

func (p *printer) VisitPostInc(e *ast.PostInc) interface{} {
	e.Operand.Accept(p)
	p.buf.WriteString("++")
	return nil
}

func (p *printer) VisitPostDec(e *ast.PostDec) interface{} {
	e.Operand.Accept(p)
	p.buf.WriteString("--")
	return nil
}

func (p *printer) VisitComma(e *ast.Comma) interface{} {
	e.Left.Accept(p)
	p.buf.WriteString(", ")
	e.Right.Accept(p)
	return nil
}
