// Package module wraps a lexed token vector into the immutable unit shared
// by every downstream pass for one compilation unit.
package module

import (
	"github.com/glyphlang/glyphc/internal/lexer"
	"github.com/glyphlang/glyphc/internal/source"
)

// Module is the immutable ordered sequence of top-level tokens for one
// compilation unit, plus a back-pointer to the SourceFile it was lexed
// from. Created once per unit and shared by reference (never copied) by
// every pass operating on that unit.
type Module struct {
	file   *source.File
	tokens []lexer.Token
}

// New wraps tokens (the output of lexer.Lex) for file.
func New(file *source.File, tokens []lexer.Token) *Module {
	return &Module{file: file, tokens: tokens}
}

// File returns the SourceFile this module was lexed from.
func (m *Module) File() *source.File { return m.file }

// Tokens returns the top-level token vector. Callers must not mutate it.
func (m *Module) Tokens() []lexer.Token { return m.tokens }

// Len returns the number of top-level tokens.
func (m *Module) Len() int { return len(m.tokens) }

// Pos returns the position at token index i.
func (m *Module) Pos(i int) Pos { return Pos{Module: m, Index: i} }

// Range returns the range of length tokens starting at index i.
func (m *Module) Range(i, length int) Range { return Range{Module: m, Start: i, Length: length} }

// Pos identifies one token slot within a Module. Equality is by (module
// identity, index).
type Pos struct {
	Module *Module
	Index  int
}

// AtEnd reports whether p is at or past the end of the module's token
// vector.
func (p Pos) AtEnd() bool { return p.Index >= p.Module.Len() }

// Token returns the token at p, or the zero Token if AtEnd.
func (p Pos) Token() lexer.Token {
	if p.AtEnd() {
		return lexer.Token{}
	}
	return p.Module.tokens[p.Index]
}

// Advance returns the position n tokens ahead of p.
func (p Pos) Advance(n int) Pos { return Pos{Module: p.Module, Index: p.Index + n} }

// Range returns the range of length tokens starting at p.
func (p Pos) Range(length int) Range { return Range{Module: p.Module, Start: p.Index, Length: length} }

// Equal reports whether p and other refer to the same module slot.
func (p Pos) Equal(other Pos) bool { return p.Module == other.Module && p.Index == other.Index }

// Range identifies a span of tokens [Start, Start+Length) within a Module.
// Equality is by (module identity, start index, length).
type Range struct {
	Module *Module
	Start  int
	Length int
}

// End returns the exclusive end position of the range.
func (r Range) End() Pos { return Pos{Module: r.Module, Index: r.Start + r.Length} }

// Tokens returns the slice of tokens covered by r.
func (r Range) Tokens() []lexer.Token {
	end := r.Start + r.Length
	if end > r.Module.Len() {
		end = r.Module.Len()
	}
	if r.Start >= end {
		return nil
	}
	return r.Module.tokens[r.Start:end]
}

// SourceRange returns the source.Range spanning the first through last
// token of r (used when a diagnostic needs a byte-accurate location).
func (r Range) SourceRange() source.Range {
	toks := r.Tokens()
	if len(toks) == 0 {
		return source.Range{}
	}
	combined := toks[0].Range
	for _, t := range toks[1:] {
		combined = combined.Combined(t.Range)
	}
	return combined
}

// Combined returns the smallest range spanning both r and other. Both must
// belong to the same Module.
func (r Range) Combined(other Range) Range {
	start := r.Start
	if other.Start < start {
		start = other.Start
	}
	end := r.Start + r.Length
	if oe := other.Start + other.Length; oe > end {
		end = oe
	}
	return Range{Module: r.Module, Start: start, Length: end - start}
}
