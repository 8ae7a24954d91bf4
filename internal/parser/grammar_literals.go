package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/glyphlang/glyphc/internal/ast"
	"github.com/glyphlang/glyphc/internal/lexer"
	"github.com/glyphlang/glyphc/internal/module"
)

// decodeQuotedBody strips the surrounding quote characters and resolves
// backslash escapes: the escaped character is kept literally, only the
// backslash itself is dropped.
func decodeQuotedBody(raw string) string {
	if len(raw) < 2 {
		return ""
	}
	inner := []rune(raw[1 : len(raw)-1])
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
		}
		b.WriteRune(inner[i])
	}
	return b.String()
}

func decodeStringLiteral(raw string) (string, error) {
	return decodeQuotedBody(raw), nil
}

func decodeCharLiteral(raw string) (rune, error) {
	s := []rune(decodeQuotedBody(raw))
	if len(s) != 1 {
		return 0, fmt.Errorf("char literal must be exactly one character, got %q", string(s))
	}
	return s[0], nil
}

// parseIntLiteral parses a Number token's text as a signed integer,
// recognizing the `0x`/`0b` prefixes.
func parseIntLiteral(text string) (int64, error) {
	base := 10
	s := text
	switch {
	case strings.HasPrefix(text, "0x"), strings.HasPrefix(text, "0X"):
		base = 16
		s = text[2:]
	case strings.HasPrefix(text, "0b"), strings.HasPrefix(text, "0B"):
		base = 2
		s = text[2:]
	}
	return strconv.ParseInt(s, base, 64)
}

var numberToken = Token("number", func(t lexer.Token) bool { return t.Kind == lexer.KindNumber })

func literalInteger(pos module.Pos) (Match[*ast.Symbol], error) {
	got, err := numberToken(pos)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	text := got.Value.Text()
	if strings.Contains(text, ".") {
		return Match[*ast.Symbol]{}, expectedKind(pos, lexer.KindNumber)
	}
	n, err := parseIntLiteral(text)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	return Match[*ast.Symbol]{Range: got.Range, Value: &ast.Symbol{Kind: ast.KindLiteralInteger, Range: got.Range, LiteralI64: n}}, nil
}

func literalFloat(pos module.Pos) (Match[*ast.Symbol], error) {
	got, err := numberToken(pos)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	text := got.Value.Text()
	if !strings.Contains(text, ".") {
		return Match[*ast.Symbol]{}, expectedKind(pos, lexer.KindNumber)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	return Match[*ast.Symbol]{Range: got.Range, Value: &ast.Symbol{Kind: ast.KindLiteralFloat, Range: got.Range, LiteralF64: f}}, nil
}

func literalBool(pos module.Pos) (Match[*ast.Symbol], error) {
	if got, err := Keyword(lexer.KeywordTrue)(pos); err == nil {
		return Match[*ast.Symbol]{Range: got.Range, Value: &ast.Symbol{Kind: ast.KindLiteralBool, Range: got.Range, LiteralBool: true}}, nil
	}
	got, err := Keyword(lexer.KeywordFalse)(pos)
	if err != nil {
		return Match[*ast.Symbol]{}, expectedToken(pos, "bool literal")
	}
	return Match[*ast.Symbol]{Range: got.Range, Value: &ast.Symbol{Kind: ast.KindLiteralBool, Range: got.Range, LiteralBool: false}}, nil
}

func literalVoid(pos module.Pos) (Match[*ast.Symbol], error) {
	got, err := Keyword(lexer.KeywordVoid)(pos)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	return Match[*ast.Symbol]{Range: got.Range, Value: &ast.Symbol{Kind: ast.KindLiteralVoid, Range: got.Range}}, nil
}

func literalChar(pos module.Pos) (Match[*ast.Symbol], error) {
	got, err := Quote(lexer.QuoteSingle, decodeCharLiteral)(pos)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	return Match[*ast.Symbol]{Range: got.Range, Value: &ast.Symbol{Kind: ast.KindLiteralChar, Range: got.Range, LiteralChar: got.Value}}, nil
}

func literalString(pos module.Pos) (Match[*ast.Symbol], error) {
	got, err := Quote(lexer.QuoteDouble, decodeStringLiteral)(pos)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	return Match[*ast.Symbol]{Range: got.Range, Value: &ast.Symbol{Kind: ast.KindLiteralString, Range: got.Range, LiteralStr: got.Value}}, nil
}

// literalArray matches a `[...]` group: empty, a single element, or a
// comma-separated list.
func literalArray(pos module.Pos) (Match[*ast.Symbol], error) {
	if pos.AtEnd() {
		return Match[*ast.Symbol]{}, expectedExclusive(pos, lexer.ParenSquare)
	}
	tok := pos.Token()
	if tok.Kind != lexer.KindParenthesis || tok.ParenKind != lexer.ParenSquare {
		return Match[*ast.Symbol]{}, expectedExclusive(pos, lexer.ParenSquare)
	}
	elems, err := parseExprList(pos.Module.File(), tok.Children)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	rng := pos.Range(1)
	return Match[*ast.Symbol]{Range: rng, Value: &ast.Symbol{Kind: ast.KindLiteralArray, Range: rng, Elements: elems}}, nil
}

// literalTuple matches a `(a, b, ...)` group: requires at least one comma
// (an un-commaed `(...)` is parenthesisExpr instead, since the lexer
// only folds a CommaList when it saw at least one comma).
func literalTuple(pos module.Pos) (Match[*ast.Symbol], error) {
	if pos.AtEnd() {
		return Match[*ast.Symbol]{}, expectedExclusive(pos, lexer.ParenRound)
	}
	tok := pos.Token()
	if tok.Kind != lexer.KindParenthesis || tok.ParenKind != lexer.ParenRound {
		return Match[*ast.Symbol]{}, expectedExclusive(pos, lexer.ParenRound)
	}
	if len(tok.Children) != 1 || tok.Children[0].Kind != lexer.KindCommaList {
		return Match[*ast.Symbol]{}, matchFailed(pos)
	}
	elems, err := parseExprList(pos.Module.File(), tok.Children)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	rng := pos.Range(1)
	return Match[*ast.Symbol]{Range: rng, Value: &ast.Symbol{Kind: ast.KindLiteralTuple, Range: rng, Elements: elems}}, nil
}
