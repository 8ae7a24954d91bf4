package parser

import (
	"github.com/glyphlang/glyphc/internal/lexer"
	"github.com/glyphlang/glyphc/internal/module"
)

// Match is the successful result of a Matcher: the range it consumed and
// the value it produced.
type Match[T any] struct {
	Range module.Range
	Value T
}

// Matcher is a pure function ModulePos → Result<Match[T], ASTError>
//. A Matcher never mutates its input; failure must leave
// the caller free to retry a sibling alternative at the same position.
type Matcher[T any] func(module.Pos) (Match[T], error)

// Option is the value produced by OptionalOf: Present is false on a miss,
// in which case Value is the zero value of T.
type Option[T any] struct {
	Present bool
	Value   T
}

// Token matches exactly one token for which accept returns true, wrapping
// it with want for diagnostics.
func Token(want string, accept func(lexer.Token) bool) Matcher[lexer.Token] {
	return func(pos module.Pos) (Match[lexer.Token], error) {
		if pos.AtEnd() {
			return Match[lexer.Token]{}, expectedToken(pos, want)
		}
		tok := pos.Token()
		if !accept(tok) {
			return Match[lexer.Token]{}, expectedToken(pos, want)
		}
		return Match[lexer.Token]{Range: pos.Range(1), Value: tok}, nil
	}
}

// Keyword matches exactly one Keyword(k) token.
func Keyword(k lexer.Keyword) Matcher[lexer.Token] {
	return Token(k.String(), func(t lexer.Token) bool {
		return t.Kind == lexer.KindKeyword && t.Keyword == k
	})
}

// Operator matches exactly one Operator(op) token.
func Operator(op lexer.Operator) Matcher[lexer.Token] {
	return Token(op.String(), func(t lexer.Token) bool {
		return t.Kind == lexer.KindOperator && t.Operator == op
	})
}

// Identifier matches exactly one Identifier token.
var Identifier = Token("identifier", func(t lexer.Token) bool { return t.Kind == lexer.KindIdentifier })

// SemiColon matches exactly one SemiColon token.
var SemiColon = Token("';'", func(t lexer.Token) bool { return t.Kind == lexer.KindSemiColon })

// AnyOperator matches one Operator token of any kind, yielding the token.
var AnyOperator = Token("operator", func(t lexer.Token) bool { return t.Kind == lexer.KindOperator })

// ParenthesisOf matches one Parenthesis(kind, …) token and runs inner
// against a fresh Module built from its children, requiring inner to
// consume every child token.
func ParenthesisOf[T any](kind lexer.ParenKind, inner Matcher[T]) Matcher[T] {
	return func(pos module.Pos) (Match[T], error) {
		if pos.AtEnd() {
			return Match[T]{}, expectedExclusive(pos, kind)
		}
		tok := pos.Token()
		if tok.Kind != lexer.KindParenthesis {
			return Match[T]{}, expectedExclusive(pos, kind)
		}
		if tok.ParenKind != kind {
			return Match[T]{}, expectedExclusive(pos, kind)
		}
		child := module.New(pos.Module.File(), tok.Children)
		m, err := inner(child.Pos(0))
		if err != nil {
			return Match[T]{}, err
		}
		if m.Range.Start+m.Range.Length != child.Len() {
			return Match[T]{}, matchFailed(child.Pos(m.Range.Start + m.Range.Length))
		}
		return Match[T]{Range: pos.Range(1), Value: m.Value}, nil
	}
}

// Quote matches one String(kind, …) token and decodes its text with f.
func Quote[T any](kind lexer.QuoteKind, f func(string) (T, error)) Matcher[T] {
	return func(pos module.Pos) (Match[T], error) {
		if pos.AtEnd() {
			return Match[T]{}, expectedKind(pos, lexer.KindString)
		}
		tok := pos.Token()
		if tok.Kind != lexer.KindString || tok.QuoteKind != kind {
			return Match[T]{}, expectedKind(pos, lexer.KindString)
		}
		v, err := f(tok.Text())
		if err != nil {
			return Match[T]{}, err
		}
		return Match[T]{Range: pos.Range(1), Value: v}, nil
	}
}

// OptionalOf always succeeds: it yields Present=true with m's value on a
// hit, or Present=false with an empty range on a miss.
func OptionalOf[T any](m Matcher[T]) Matcher[Option[T]] {
	return func(pos module.Pos) (Match[Option[T]], error) {
		got, err := m(pos)
		if err != nil {
			return Match[Option[T]]{Range: pos.Range(0), Value: Option[T]{}}, nil
		}
		return Match[Option[T]]{Range: got.Range, Value: Option[T]{Present: true, Value: got.Value}}, nil
	}
}

// Repeat greedily applies m starting at pos, failing if fewer than min
// matches were found.
func Repeat[T any](min int, m Matcher[T]) Matcher[[]T] {
	return func(pos module.Pos) (Match[[]T], error) {
		start := pos
		var out []T
		cur := pos
		for {
			got, err := m(cur)
			if err != nil {
				break
			}
			if got.Range.Length == 0 {
				// A zero-width match would loop forever; treat as end of repetition.
				break
			}
			out = append(out, got.Value)
			cur = cur.Advance(got.Range.Length)
		}
		if len(out) < min {
			return Match[[]T]{}, matchFailed(start)
		}
		length := cur.Index - start.Index
		return Match[[]T]{Range: start.Range(length), Value: out}, nil
	}
}

// MapValue transforms a successful match's value, keeping its range.
func MapValue[T, U any](m Matcher[T], f func(module.Range, T) (U, error)) Matcher[U] {
	return func(pos module.Pos) (Match[U], error) {
		got, err := m(pos)
		if err != nil {
			return Match[U]{}, err
		}
		v, err := f(got.Range, got.Value)
		if err != nil {
			return Match[U]{}, err
		}
		return Match[U]{Range: got.Range, Value: v}, nil
	}
}

// Lazy defers construction of the underlying matcher until first use and
// memoizes it, breaking the initialization cycle inherent in a mutually
// recursive grammar.
func Lazy[T any](build func() Matcher[T]) Matcher[T] {
	var m Matcher[T]
	return func(pos module.Pos) (Match[T], error) {
		if m == nil {
			m = build()
		}
		return m(pos)
	}
}
