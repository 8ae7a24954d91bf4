package parser

import (
	"github.com/glyphlang/glyphc/internal/ast"
	"github.com/glyphlang/glyphc/internal/lexer"
	"github.com/glyphlang/glyphc/internal/module"
	"github.com/glyphlang/glyphc/internal/source"
)

// block matches `{ statement* }`.
func block(pos module.Pos) (Match[*ast.Symbol], error) {
	got, err := ParenthesisOf(lexer.ParenCurly, func(ip module.Pos) (Match[[]*ast.Symbol], error) {
		stmts, end, err := parseStatementList(ip)
		if err != nil {
			return Match[[]*ast.Symbol]{}, err
		}
		return Match[[]*ast.Symbol]{Range: ip.Range(end.Index - ip.Index), Value: stmts}, nil
	})(pos)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	return Match[*ast.Symbol]{Range: got.Range, Value: &ast.Symbol{Kind: ast.KindBlock, Range: got.Range, Statements: got.Value}}, nil
}

// ifStmt matches `if (cond) block (else (ifStmt | block))?`.
func ifStmt(pos module.Pos) (Match[*ast.Symbol], error) {
	_, err := Keyword(lexer.KeywordIf)(pos)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next := pos.Advance(1)

	condMatch, err := ParenthesisOf(lexer.ParenRound, Expression)(next)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next = next.Advance(condMatch.Range.Length)

	thenMatch, err := block(next)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next = next.Advance(thenMatch.Range.Length)

	var elseSym *ast.Symbol
	if _, errElse := Keyword(lexer.KeywordElse)(next); errElse == nil {
		after := next.Advance(1)
		if elifMatch, errIf := ifStmt(after); errIf == nil {
			elseSym = elifMatch.Value
			next = after.Advance(elifMatch.Range.Length)
		} else if blkMatch, errBlk := block(after); errBlk == nil {
			elseSym = blkMatch.Value
			next = after.Advance(blkMatch.Range.Length)
		} else {
			return Match[*ast.Symbol]{}, errBlk
		}
	}

	rng := pos.Range(next.Index - pos.Index)
	return Match[*ast.Symbol]{Range: rng, Value: &ast.Symbol{
		Kind: ast.KindIf, Range: rng, Cond: condMatch.Value, Then: thenMatch.Value, Else: elseSym,
	}}, nil
}

// whileStmt matches `while (cond) block`.
func whileStmt(pos module.Pos) (Match[*ast.Symbol], error) {
	_, err := Keyword(lexer.KeywordWhile)(pos)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next := pos.Advance(1)

	condMatch, err := ParenthesisOf(lexer.ParenRound, Expression)(next)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next = next.Advance(condMatch.Range.Length)

	bodyMatch, err := block(next)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next = next.Advance(bodyMatch.Range.Length)

	rng := pos.Range(next.Index - pos.Index)
	return Match[*ast.Symbol]{Range: rng, Value: &ast.Symbol{
		Kind: ast.KindWhile, Range: rng, Cond: condMatch.Value, Body: bodyMatch.Value,
	}}, nil
}

// forStmt matches `for (init?; cond?; post?) block`. The three clauses
// are separated by SemiColon tokens the lexer already produces inside the
// parenthesis.
func forStmt(pos module.Pos) (Match[*ast.Symbol], error) {
	_, err := Keyword(lexer.KeywordFor)(pos)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next := pos.Advance(1)
	if next.AtEnd() {
		return Match[*ast.Symbol]{}, expectedExclusive(next, lexer.ParenRound)
	}
	parenTok := next.Token()
	if parenTok.Kind != lexer.KindParenthesis || parenTok.ParenKind != lexer.ParenRound {
		return Match[*ast.Symbol]{}, expectedExclusive(next, lexer.ParenRound)
	}
	parts := splitBySemicolon(parenTok.Children)
	if len(parts) != 3 {
		return Match[*ast.Symbol]{}, matchFailed(next)
	}
	file := pos.Module.File()
	initSym, err := parseOptionalExpr(file, parts[0])
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	condSym, err := parseOptionalExpr(file, parts[1])
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	postSym, err := parseOptionalExpr(file, parts[2])
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next = next.Advance(1)

	bodyMatch, err := block(next)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next = next.Advance(bodyMatch.Range.Length)

	rng := pos.Range(next.Index - pos.Index)
	return Match[*ast.Symbol]{Range: rng, Value: &ast.Symbol{
		Kind: ast.KindFor, Range: rng, Init: initSym, Cond: condSym, Post: postSym, Body: bodyMatch.Value,
	}}, nil
}

// importStmt matches `import "path";`.
func importStmt(pos module.Pos) (Match[*ast.Symbol], error) {
	_, err := Keyword(lexer.KeywordImport)(pos)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next := pos.Advance(1)

	strMatch, err := Quote(lexer.QuoteDouble, decodeStringLiteral)(next)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next = next.Advance(strMatch.Range.Length)

	if _, err := SemiColon(next); err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next = next.Advance(1)

	rng := pos.Range(next.Index - pos.Index)
	return Match[*ast.Symbol]{Range: rng, Value: &ast.Symbol{Kind: ast.KindImport, Range: rng, ImportPath: strMatch.Value}}, nil
}

// breakStmt matches `break;`.
func breakStmt(pos module.Pos) (Match[*ast.Symbol], error) {
	_, err := Keyword(lexer.KeywordBreak)(pos)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next := pos.Advance(1)
	if _, err := SemiColon(next); err != nil {
		return Match[*ast.Symbol]{}, err
	}
	rng := pos.Range(2)
	return Match[*ast.Symbol]{Range: rng, Value: &ast.Symbol{Kind: ast.KindBreak, Range: rng}}, nil
}

// continueStmt matches `continue;`. `continue` is not a reserved
// keyword, so it is recognized by identifier text, the same trick used
// for `print`, `read`, and `function`.
func continueStmt(pos module.Pos) (Match[*ast.Symbol], error) {
	idMatch, err := Identifier(pos)
	if err != nil || idMatch.Value.Text() != "continue" {
		return Match[*ast.Symbol]{}, expectedToken(pos, "'continue'")
	}
	next := pos.Advance(1)
	if _, err := SemiColon(next); err != nil {
		return Match[*ast.Symbol]{}, err
	}
	rng := pos.Range(2)
	return Match[*ast.Symbol]{Range: rng, Value: &ast.Symbol{Kind: ast.KindContinue, Range: rng}}, nil
}

// returnStmt matches `return expr?;`.
func returnStmt(pos module.Pos) (Match[*ast.Symbol], error) {
	_, err := Keyword(lexer.KeywordReturn)(pos)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next := pos.Advance(1)

	var value *ast.Symbol
	if _, errSemi := SemiColon(next); errSemi == nil {
		next = next.Advance(1)
	} else {
		exprMatch, errExpr := Expression(next)
		if errExpr != nil {
			return Match[*ast.Symbol]{}, errExpr
		}
		value = exprMatch.Value
		next = next.Advance(exprMatch.Range.Length)
		if _, err := SemiColon(next); err != nil {
			return Match[*ast.Symbol]{}, err
		}
		next = next.Advance(1)
	}

	rng := pos.Range(next.Index - pos.Index)
	return Match[*ast.Symbol]{Range: rng, Value: &ast.Symbol{Kind: ast.KindReturn, Range: rng, Value: value}}, nil
}

// printStmt matches `print expr;`. `print` is recognized by identifier
// text, not a reserved keyword — see continueStmt.
func printStmt(pos module.Pos) (Match[*ast.Symbol], error) {
	idMatch, err := Identifier(pos)
	if err != nil || idMatch.Value.Text() != "print" {
		return Match[*ast.Symbol]{}, expectedToken(pos, "'print'")
	}
	next := pos.Advance(1)

	exprMatch, err := Expression(next)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next = next.Advance(exprMatch.Range.Length)

	if _, err := SemiColon(next); err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next = next.Advance(1)

	rng := pos.Range(next.Index - pos.Index)
	return Match[*ast.Symbol]{Range: rng, Value: &ast.Symbol{Kind: ast.KindPrint, Range: rng, Value: exprMatch.Value}}, nil
}

// functionDef matches `function name(TypeName paramName, ...) ReturnType? block`.
// `function` is recognized by identifier text, not a reserved keyword —
// see continueStmt.
func functionDef(pos module.Pos) (Match[*ast.Symbol], error) {
	idMatch, err := Identifier(pos)
	if err != nil || idMatch.Value.Text() != "function" {
		return Match[*ast.Symbol]{}, expectedToken(pos, "'function'")
	}
	next := pos.Advance(1)

	_, err = Identifier(next)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	namePos := next
	next = next.Advance(1)

	if next.AtEnd() {
		return Match[*ast.Symbol]{}, expectedExclusive(next, lexer.ParenRound)
	}
	parenTok := next.Token()
	if parenTok.Kind != lexer.KindParenthesis || parenTok.ParenKind != lexer.ParenRound {
		return Match[*ast.Symbol]{}, expectedExclusive(next, lexer.ParenRound)
	}
	params, err := parseParams(pos.Module.File(), parenTok.Children)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next = next.Advance(1)

	returnType := ""
	if retMatch, errRet := Identifier(next); errRet == nil {
		after := next.Advance(1)
		if !after.AtEnd() && after.Token().Kind == lexer.KindParenthesis && after.Token().ParenKind == lexer.ParenCurly {
			returnType = retMatch.Value.Text()
			next = after
		}
	}

	bodyMatch, err := block(next)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next = next.Advance(bodyMatch.Range.Length)

	rng := pos.Range(next.Index - pos.Index)
	return Match[*ast.Symbol]{Range: rng, Value: &ast.Symbol{
		Kind: ast.KindFunctionDefinition, Range: rng, Name: namePos,
		Params: params, ReturnType: returnType, Body: bodyMatch.Value,
	}}, nil
}

// classDef matches `class Name (extends Base)? { member* }`.
func classDef(pos module.Pos) (Match[*ast.Symbol], error) {
	_, err := Keyword(lexer.KeywordClass)(pos)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next := pos.Advance(1)

	_, err = Identifier(next)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	namePos := next
	next = next.Advance(1)

	extends := ""
	if _, errExt := Keyword(lexer.KeywordExtends)(next); errExt == nil {
		next = next.Advance(1)
		baseMatch, errB := Identifier(next)
		if errB != nil {
			return Match[*ast.Symbol]{}, errB
		}
		extends = baseMatch.Value.Text()
		next = next.Advance(1)
	}

	if next.AtEnd() {
		return Match[*ast.Symbol]{}, expectedExclusive(next, lexer.ParenCurly)
	}
	bodyTok := next.Token()
	if bodyTok.Kind != lexer.KindParenthesis || bodyTok.ParenKind != lexer.ParenCurly {
		return Match[*ast.Symbol]{}, expectedExclusive(next, lexer.ParenCurly)
	}
	members, err := parseClassMembers(pos.Module.File(), bodyTok.Children)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next = next.Advance(1)

	rng := pos.Range(next.Index - pos.Index)
	return Match[*ast.Symbol]{Range: rng, Value: &ast.Symbol{
		Kind: ast.KindClassDefinition, Range: rng, Name: namePos, Extends: extends, Members: members,
	}}, nil
}

// fieldDecl matches a class-body variable declaration: `let name = expr;`.
func fieldDecl(pos module.Pos) (Match[*ast.Symbol], error) {
	declMatch, err := variableDeclaration(pos)
	if err != nil {
		return Match[*ast.Symbol]{}, err
	}
	next := pos.Advance(declMatch.Range.Length)
	if _, err := SemiColon(next); err != nil {
		return Match[*ast.Symbol]{}, err
	}
	rng := pos.Range(declMatch.Range.Length + 1)
	declMatch.Value.Range = rng
	return Match[*ast.Symbol]{Range: rng, Value: declMatch.Value}, nil
}

// memberDecl matches one class member: optional visibility/static
// modifiers followed by either a method (functionDef) or a field
// (fieldDecl).
func memberDecl(pos module.Pos) (Match[*ast.Symbol], error) {
	cur := pos
	vis := ast.VisibilityPrivate
	if _, err := Keyword(lexer.KeywordPublic)(cur); err == nil {
		vis = ast.VisibilityPublic
		cur = cur.Advance(1)
	} else if _, err := Keyword(lexer.KeywordPrivate)(cur); err == nil {
		vis = ast.VisibilityPrivate
		cur = cur.Advance(1)
	}
	static := false
	if _, err := Keyword(lexer.KeywordStatic)(cur); err == nil {
		static = true
		cur = cur.Advance(1)
	}

	if fnMatch, err := functionDef(cur); err == nil {
		fnMatch.Value.Visibility = vis
		fnMatch.Value.Static = static
		total := cur.Index - pos.Index + fnMatch.Range.Length
		return Match[*ast.Symbol]{Range: pos.Range(total), Value: fnMatch.Value}, nil
	}
	if fieldMatch, err := fieldDecl(cur); err == nil {
		fieldMatch.Value.Visibility = vis
		fieldMatch.Value.Static = static
		total := cur.Index - pos.Index + fieldMatch.Range.Length
		return Match[*ast.Symbol]{Range: pos.Range(total), Value: fieldMatch.Value}, nil
	}
	return Match[*ast.Symbol]{}, expectedSymbol(pos)
}

func parseClassMembers(file *source.File, tokens []lexer.Token) ([]*ast.Symbol, error) {
	m := module.New(file, tokens)
	var out []*ast.Symbol
	cur := m.Pos(0)
	for !cur.AtEnd() {
		got, err := memberDecl(cur)
		if err != nil {
			return nil, err
		}
		out = append(out, got.Value)
		cur = cur.Advance(got.Range.Length)
	}
	return out, nil
}
