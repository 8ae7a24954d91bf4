package parser

import (
	"github.com/glyphlang/glyphc/internal/ast"
	"github.com/glyphlang/glyphc/internal/module"
)

// atomOptions lists every expression alternative that does not itself
// start with an operator token. ResolveExpression breaks ties among
// whichever of these match at the same position.
var atomOptions []Matcher[*ast.Symbol]

func init() {
	atomOptions = []Matcher[*ast.Symbol]{
		functionCall,
		literalArray,
		literalTuple,
		literalBool,
		literalChar,
		literalFloat,
		literalInteger,
		literalString,
		literalVoid,
		variableDeclaration,
		variableMatcher,
		parenthesisExpr,
	}
}

var matchAtom = Lazy(func() Matcher[*ast.Symbol] { return AnyOf(atomOptions, ResolveExpression) })

// expressionImpl scans a flat operand/operator component stream starting
// at pos, then folds it with BuildOperatorExpression. A single bare atom
// (no trailing operator) is returned directly without going through the
// operator-expression machinery.
func expressionImpl(pos module.Pos) (Match[*ast.Symbol], error) {
	cur := pos
	var comps []Component
	var lens []int

	for {
		if opMatch, err := AnyOperator(cur); err == nil {
			comps = append(comps, operatorComponent(opMatch.Range, opMatch.Value.Operator))
			lens = append(lens, opMatch.Range.Length)
			cur = cur.Advance(opMatch.Range.Length)
			continue
		}
		atomMatch, err := matchAtom(cur)
		if err != nil {
			break
		}
		comps = append(comps, operandComponent(atomMatch.Value))
		lens = append(lens, atomMatch.Range.Length)
		cur = cur.Advance(atomMatch.Range.Length)
	}

	if len(comps) == 0 {
		return Match[*ast.Symbol]{}, expectedSymbol(pos)
	}
	if len(comps) == 1 {
		if !comps[0].IsOperand {
			return Match[*ast.Symbol]{}, expectedSymbol(pos)
		}
		return Match[*ast.Symbol]{Range: pos.Range(lens[0]), Value: comps[0].Operand}, nil
	}

	tree, n, err := BuildOperatorExpression(comps, pos)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	total := 0
	for i := 0; i < n; i++ {
		total += lens[i]
	}
	return Match[*ast.Symbol]{Range: pos.Range(total), Value: tree}, nil
}

// Expression matches one expression of any shape: literal, variable
// reference, declaration, call, parenthesized group, or operator
// expression. Lazy because every atom alternative (parenthesisExpr,
// variableDeclaration's initializer, function-call arguments) recurses
// back into Expression.
var Expression = Lazy(func() Matcher[*ast.Symbol] { return expressionImpl })

// expressionStatement matches an expression followed by a required `;`.
func expressionStatement(pos module.Pos) (Match[*ast.Symbol], error) {
	exprMatch, err := Expression(pos)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next := pos.Advance(exprMatch.Range.Length)
	if _, err := SemiColon(next); err != nil {
		return Match[*ast.Symbol]{}, err
	}
	rng := pos.Range(exprMatch.Range.Length + 1)
	return Match[*ast.Symbol]{Range: rng, Value: exprMatch.Value}, nil
}

// statementOptions lists every statement alternative. Keyword-led forms
// (block, functionDef, classDef, ifStmt, ...) never overlap with each
// other; overlaps with expressionStatement are settled by
// resolveStatementConflict.
var statementOptions []Matcher[*ast.Symbol]

func init() {
	statementOptions = []Matcher[*ast.Symbol]{
		block,
		functionDef,
		classDef,
		ifStmt,
		whileStmt,
		forStmt,
		importStmt,
		breakStmt,
		continueStmt,
		returnStmt,
		printStmt,
		expressionStatement,
	}
}

// resolveStatementConflict breaks statement-level ambiguity. `continue`
// is recognized by identifier text, so `continue;` also parses as a
// bare-variable expression statement of the same length; the dedicated
// statement wins. Any other exact tie (e.g. `print(x);` against a
// user-defined function named print) is a genuine ambiguity and
// surfaces as MultipleConflictError.
func resolveStatementConflict(pos module.Pos, hits []Match[*ast.Symbol]) (Match[*ast.Symbol], error) {
	hasDedicated := false
	for _, h := range hits {
		if h.Value.Kind == ast.KindContinue {
			hasDedicated = true
			break
		}
	}
	if hasDedicated {
		kept := make([]Match[*ast.Symbol], 0, len(hits))
		for _, h := range hits {
			if h.Value.Kind == ast.KindVariable {
				continue
			}
			kept = append(kept, h)
		}
		hits = kept
	}
	return resolveLongest(pos, hits)
}

// Statement matches one top-level or block-level statement.
var Statement = Lazy(func() Matcher[*ast.Symbol] {
	return AnyOf(statementOptions, resolveStatementConflict)
})

// parseStatementList consumes statements from pos until the enclosing
// token vector is exhausted.
func parseStatementList(pos module.Pos) ([]*ast.Symbol, module.Pos, error) {
	var out []*ast.Symbol
	cur := pos
	for !cur.AtEnd() {
		got, err := Statement(cur)
		if err != nil {
			return nil, cur, err
		}
		out = append(out, got.Value)
		cur = cur.Advance(got.Range.Length)
	}
	return out, cur, nil
}

// ParseModule parses every top-level statement of m, requiring the whole
// token vector to be consumed.
func ParseModule(m *module.Module) ([]*ast.Symbol, error) {
	stmts, _, err := parseStatementList(m.Pos(0))
	if err != nil {
		return nil, err
	}
	return stmts, nil
}
