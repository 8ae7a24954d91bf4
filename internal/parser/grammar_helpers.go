package parser

import (
	"github.com/glyphlang/glyphc/internal/ast"
	"github.com/glyphlang/glyphc/internal/lexer"
	"github.com/glyphlang/glyphc/internal/module"
	"github.com/glyphlang/glyphc/internal/source"
)

// splitGroups recovers the comma-separated groups folded by the lexer
//: a single CommaList token expands to its
// Groups; anything else (including the empty slice) is one group.
func splitGroups(tokens []lexer.Token) [][]lexer.Token {
	if len(tokens) == 0 {
		return nil
	}
	if len(tokens) == 1 && tokens[0].Kind == lexer.KindCommaList {
		return tokens[0].Groups
	}
	return [][]lexer.Token{tokens}
}

// splitBySemicolon splits tokens on top-level SemiColon tokens, used by
// forStmt to recover its three `;`-separated clauses.
func splitBySemicolon(tokens []lexer.Token) [][]lexer.Token {
	var out [][]lexer.Token
	var cur []lexer.Token
	for _, t := range tokens {
		if t.Kind == lexer.KindSemiColon {
			out = append(out, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	out = append(out, cur)
	return out
}

// parseFullExpr parses tokens as a single expression, requiring every
// token to be consumed.
func parseFullExpr(file *source.File, tokens []lexer.Token) (*ast.Symbol, error) {
	m := module.New(file, tokens)
	got, err := Expression(m.Pos(0))
	if err != nil {
		return nil, err
	}
	if got.Range.Start+got.Range.Length != m.Len() {
		return nil, matchFailed(m.Pos(got.Range.Start + got.Range.Length))
	}
	return got.Value, nil
}

// parseOptionalExpr is parseFullExpr but treats an empty token slice as
// "no expression" rather than an error (for-loop clauses may be omitted).
func parseOptionalExpr(file *source.File, tokens []lexer.Token) (*ast.Symbol, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	return parseFullExpr(file, tokens)
}

// parseExprList parses tokens as a comma-separated expression list (array
// elements, tuple elements, call arguments), respecting the lexer's comma
// folding. An empty slice yields no elements, not an error.
func parseExprList(file *source.File, tokens []lexer.Token) ([]*ast.Symbol, error) {
	groups := splitGroups(tokens)
	out := make([]*ast.Symbol, 0, len(groups))
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		sym, err := parseFullExpr(file, g)
		if err != nil {
			return nil, err
		}
		out = append(out, sym)
	}
	return out, nil
}

// parseParams parses a function parameter list's tokens: each group must
// be exactly `TypeName paramName`: parameter
// names are identifier tokens).
func parseParams(file *source.File, tokens []lexer.Token) ([]ast.Param, error) {
	groups := splitGroups(tokens)
	out := make([]ast.Param, 0, len(groups))
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		if len(g) != 2 || g[0].Kind != lexer.KindIdentifier || g[1].Kind != lexer.KindIdentifier {
			pm := module.New(file, g)
			return nil, matchFailed(pm.Pos(0))
		}
		pm := module.New(file, g)
		out = append(out, ast.Param{Name: pm.Pos(1), Type: g[0].Text()})
	}
	return out, nil
}
