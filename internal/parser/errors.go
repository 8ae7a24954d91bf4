// Package parser implements a combinator library and the concrete symbol
// grammar on top of it: a Matcher[T] is a pure
// function from a module.Pos to either a matched range+value or a
// structured ASTError, and combinators compose matchers without allocating
// state beyond the matched region.
package parser

import (
	"fmt"

	"github.com/glyphlang/glyphc/internal/lexer"
	"github.com/glyphlang/glyphc/internal/module"
)

// ASTError is the syntactic error taxonomy.
type ASTError interface {
	error
	astError()
}

type baseErr struct{ Pos module.Pos }

func (baseErr) astError() {}

// MatchFailedError reports that a matcher made no progress at pos.
type MatchFailedError struct {
	baseErr
}

func (e *MatchFailedError) Error() string {
	return fmt.Sprintf("match failed at token %d", e.Pos.Index)
}

// ExpectedSymbolError reports that no symbol matcher succeeded at pos.
type ExpectedSymbolError struct {
	baseErr
}

func (e *ExpectedSymbolError) Error() string {
	return fmt.Sprintf("expected a symbol at token %d", e.Pos.Index)
}

// ExpectedTokenError reports a specific expected token kind (e.g. a
// particular keyword or operator) was missing.
type ExpectedTokenError struct {
	baseErr
	Want string
}

func (e *ExpectedTokenError) Error() string {
	return fmt.Sprintf("expected %s at token %d", e.Want, e.Pos.Index)
}

// ExpectedTokenKindError reports a token of the wrong lexer.Kind.
type ExpectedTokenKindError struct {
	baseErr
	Want lexer.Kind
}

func (e *ExpectedTokenKindError) Error() string {
	return fmt.Sprintf("expected token kind %s at token %d", e.Want, e.Pos.Index)
}

// ExpectedExclusiveError reports a parenthesis-kind mismatch (e.g. `}`
// where `)` was required).
type ExpectedExclusiveError struct {
	baseErr
	Want lexer.ParenKind
}

func (e *ExpectedExclusiveError) Error() string {
	return fmt.Sprintf("expected %s parenthesis at token %d", e.Want, e.Pos.Index)
}

// MultipleConflictError reports that the conflict resolver left two or more
// equally-preferred candidates standing.
type MultipleConflictError struct {
	baseErr
	Candidates []string
}

func (e *MultipleConflictError) Error() string {
	return fmt.Sprintf("ambiguous parse at token %d: %v", e.Pos.Index, e.Candidates)
}

// EliminatedConflictError reports that every candidate was eliminated by
// the preference rules, leaving none.
type EliminatedConflictError struct {
	baseErr
	Candidates []string
}

func (e *EliminatedConflictError) Error() string {
	return fmt.Sprintf("all candidates eliminated at token %d: %v", e.Pos.Index, e.Candidates)
}

// MatchOptionsFailedError reports that every option of an anyOf failed
// outright (as opposed to succeeding and then losing to conflict
// resolution).
type MatchOptionsFailedError struct {
	baseErr
	Children []error
}

func (e *MatchOptionsFailedError) Error() string {
	return fmt.Sprintf("no alternative matched at token %d (%d candidates tried)", e.Pos.Index, len(e.Children))
}

func matchFailed(pos module.Pos) error     { return &MatchFailedError{baseErr{pos}} }
func expectedSymbol(pos module.Pos) error  { return &ExpectedSymbolError{baseErr{pos}} }
func expectedToken(pos module.Pos, want string) error {
	return &ExpectedTokenError{baseErr{pos}, want}
}
func expectedKind(pos module.Pos, want lexer.Kind) error {
	return &ExpectedTokenKindError{baseErr{pos}, want}
}
func expectedExclusive(pos module.Pos, want lexer.ParenKind) error {
	return &ExpectedExclusiveError{baseErr{pos}, want}
}
