package main

import (
	"fmt"
	"strings"

	"shadereval/internal/builtins"
	"shadereval/internal/literal"
	"shadereval/internal/parser"
	"shadereval/internal/propagate"
	"shadereval/internal/scope"
)

// FoldCommand parses and folds a single expression, optionally declaring
// constant bindings with -D name=value first.
func FoldCommand(args []string) error {
	s := scope.New()
	var source string

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-D":
			if i+1 >= len(args) {
				return fmt.Errorf("-D requires a name=value argument")
			}
			i++
			if err := declareBinding(s, args[i]); err != nil {
				return err
			}
		case strings.HasPrefix(args[i], "-D"):
			if err := declareBinding(s, strings.TrimPrefix(args[i], "-D")); err != nil {
				return err
			}
		default:
			source = args[i]
		}
	}

	if source == "" {
		return fmt.Errorf("usage: shadereval fold <expr> [-D name=value ...]")
	}

	expr, err := parser.Parse(source)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	result, err := propagate.Propagate(expr, s, builtins.BuiltinFunctions())
	if err != nil {
		return err
	}

	if !result.IsConst {
		fmt.Printf("expr: %s\n", literal.Print(result.Expr))
		return nil
	}

	if base, ok := result.Value.AsBase(); ok {
		fmt.Printf("const %s: %s\n", literal.TypeSpecifier(result.Value), literal.Print(literal.ToAST(base)))
		return nil
	}
	fmt.Printf("const %s\n", literal.TypeSpecifier(result.Value))
	return nil
}

// declareBinding parses a "name=value" pair where value is any expression
// that folds to a constant, and declares it as a global constant.
func declareBinding(s *scope.Stack, binding string) error {
	name, valueText, ok := strings.Cut(binding, "=")
	if !ok {
		return fmt.Errorf("invalid -D binding %q, expected name=value", binding)
	}

	expr, err := parser.Parse(valueText)
	if err != nil {
		return fmt.Errorf("invalid -D value %q: %w", valueText, err)
	}
	result, err := propagate.Propagate(expr, scope.New(), builtins.BuiltinFunctions())
	if err != nil {
		return fmt.Errorf("invalid -D value %q: %w", valueText, err)
	}
	if !result.IsConst {
		return fmt.Errorf("-D value %q must be a constant", valueText)
	}
	s.Declare(name, result.Value)
	return nil
}
