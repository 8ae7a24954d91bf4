package parser

import (
	"github.com/glyphlang/glyphc/internal/ast"
	"github.com/glyphlang/glyphc/internal/lexer"
	"github.com/glyphlang/glyphc/internal/module"
)

// variableMatcher matches a bare identifier reference. Disambiguation
// against VariableDeclaration/FunctionCall is left to the parser-time
// conflict resolver (ResolveExpression).
func variableMatcher(pos module.Pos) (Match[*ast.Symbol], error) {
	got, err := Identifier(pos)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	return Match[*ast.Symbol]{Range: got.Range, Value: &ast.Symbol{Kind: ast.KindVariable, Range: got.Range, Name: pos}}, nil
}

// functionCall matches `identifier(args)`. The call named `read` with no
// arguments is the runtime-support read expression; it is recognized
// here by identifier text rather than a reserved keyword, since `read`
// is not reserved.
func functionCall(pos module.Pos) (Match[*ast.Symbol], error) {
	idMatch, err := Identifier(pos)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next := pos.Advance(1)
	if next.AtEnd() {
		return Match[*ast.Symbol]{}, expectedExclusive(next, lexer.ParenRound)
	}
	tok := next.Token()
	if tok.Kind != lexer.KindParenthesis || tok.ParenKind != lexer.ParenRound {
		return Match[*ast.Symbol]{}, expectedExclusive(next, lexer.ParenRound)
	}
	args, err := parseExprList(pos.Module.File(), tok.Children)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	rng := pos.Range(2)
	kind := ast.KindFunctionCall
	if idMatch.Value.Text() == "read" && len(args) == 0 {
		kind = ast.KindRead
	}
	return Match[*ast.Symbol]{Range: rng, Value: &ast.Symbol{Kind: kind, Range: rng, Name: pos, Args: args}}, nil
}

// parenthesisExpr matches a grouping `(expr)` — a single, comma-free
// expression (a commaed group is literalTuple instead).
func parenthesisExpr(pos module.Pos) (Match[*ast.Symbol], error) {
	got, err := ParenthesisOf(lexer.ParenRound, Expression)(pos)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	return Match[*ast.Symbol]{Range: got.Range, Value: &ast.Symbol{Kind: ast.KindParenthesis, Range: got.Range, Inner: got.Value}}, nil
}

// variableDeclaration matches `let [TypeName] name [= expr]`. It is an
// expression variant (it may appear anywhere an expression can, e.g. a
// for-loop init clause), not only as a statement.
func variableDeclaration(pos module.Pos) (Match[*ast.Symbol], error) {
	_, err := Keyword(lexer.KeywordLet)(pos)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next := pos.Advance(1)

	id1, err := Identifier(next)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	namePos := next
	typeName := ""
	afterFirst := next.Advance(1)
	if _, err2 := Identifier(afterFirst); err2 == nil {
		typeName = id1.Value.Text()
		namePos = afterFirst
		next = afterFirst.Advance(1)
	} else {
		next = afterFirst
	}

	var value *ast.Symbol
	if _, errEq := Operator(lexer.OpAssignEq)(next); errEq == nil {
		after := next.Advance(1)
		exprMatch, errExpr := Expression(after)
		if errExpr != nil {
			return Match[*ast.Symbol]{}, errExpr
		}
		value = exprMatch.Value
		next = after.Advance(exprMatch.Range.Length)
	}

	rng := pos.Range(next.Index - pos.Index)
	return Match[*ast.Symbol]{Range: rng, Value: &ast.Symbol{
		Kind: ast.KindVariableDeclaration, Range: rng, Name: namePos, VarType: typeName, Value: value,
	}}, nil
}
