package parser

import (
	"github.com/glyphlang/glyphc/internal/ast"
	"github.com/glyphlang/glyphc/internal/module"
)

func isLiteralKind(k ast.Kind) bool {
	return k >= ast.KindLiteralArray && k <= ast.KindLiteralVoid
}

// ResolveExpression is the parser-time conflict resolver:
// given every expression alternative that matched at pos, it applies the
// ordered preference rules over symbol discriminants and returns the
// single surviving match, or a structured conflict error.
func ResolveExpression(pos module.Pos, hits []Match[*ast.Symbol]) (Match[*ast.Symbol], error) {
	dropped := make([]bool, len(hits))
	indicesOf := func(k ast.Kind) []int {
		var out []int
		for i, h := range hits {
			if h.Value.Kind == k {
				out = append(out, i)
			}
		}
		return out
	}

	prefer := func(a, b ast.Kind) {
		if len(indicesOf(a)) == 0 {
			return
		}
		for _, i := range indicesOf(b) {
			dropped[i] = true
		}
	}

	prefer(ast.KindFunctionCall, ast.KindVariable)
	prefer(ast.KindRead, ast.KindVariable)
	prefer(ast.KindVariableDeclaration, ast.KindVariable)
	prefer(ast.KindFunctionDefinition, ast.KindVariableDeclaration)
	prefer(ast.KindFunctionDefinition, ast.KindLiteralVoid)

	isOperatorLoser := func(k ast.Kind) bool {
		return k == ast.KindFunctionCall || k == ast.KindVariableDeclaration ||
			k == ast.KindVariable || isLiteralKind(k)
	}
	for oi, oh := range hits {
		if oh.Value.Kind != ast.KindOperator {
			continue
		}
		for bi, bh := range hits {
			if oi == bi || dropped[bi] || !isOperatorLoser(bh.Value.Kind) {
				continue
			}
			if oh.Range.Length > bh.Range.Length {
				dropped[bi] = true
			}
		}
	}

	var survivors []Match[*ast.Symbol]
	var names []string
	for i, h := range hits {
		names = append(names, h.Value.Kind.String())
		if !dropped[i] {
			survivors = append(survivors, h)
		}
	}

	switch len(survivors) {
	case 0:
		return Match[*ast.Symbol]{}, &EliminatedConflictError{baseErr{pos}, names}
	case 1:
		return survivors[0], nil
	default:
		var survivorNames []string
		for _, s := range survivors {
			survivorNames = append(survivorNames, s.Value.Kind.String())
		}
		return Match[*ast.Symbol]{}, &MultipleConflictError{baseErr{pos}, survivorNames}
	}
}
