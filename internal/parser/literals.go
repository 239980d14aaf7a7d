package parser

import (
	"strconv"
	"strings"

	"shadereval/internal/ast"
)

func parseIntLiteral(lexeme string) *ast.Literal {
	n, _ := strconv.ParseInt(lexeme, 10, 32)
	return &ast.Literal{Kind: ast.IntLiteral, Int: int32(n)}
}

func parseUIntLiteral(lexeme string) *ast.Literal {
	trimmed := strings.TrimRight(lexeme, "uU")
	n, _ := strconv.ParseUint(trimmed, 10, 32)
	return &ast.Literal{Kind: ast.UIntLiteral, UInt: uint32(n)}
}

func parseFloatLiteral(lexeme string) *ast.Literal {
	trimmed := strings.TrimRight(lexeme, "fF")
	f, _ := strconv.ParseFloat(trimmed, 32)
	return &ast.Literal{Kind: ast.FloatLiteral, Float: float32(f)}
}

func parseDoubleLiteral(lexeme string) *ast.Literal {
	trimmed := strings.TrimRight(lexeme, "fFlL")
	f, _ := strconv.ParseFloat(trimmed, 64)
	return &ast.Literal{Kind: ast.DoubleLiteral, Double: f}
}
