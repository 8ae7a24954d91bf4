package lexer

import "github.com/glyphlang/glyphc/internal/source"

// commaContainer accumulates the tokens of one comma-list segment: a
// running group vector plus a finalized group-of-groups, folded into
// either a flat token vector or a single CommaList token once the
// segment is closed.
type commaContainer struct {
	start        source.Pos
	currentGroup []Token
	groups       [][]Token
	sawComma     bool
}

func newCommaContainer(start source.Pos) *commaContainer {
	return &commaContainer{start: start}
}

func (c *commaContainer) push(t Token) {
	c.currentGroup = append(c.currentGroup, t)
}

func (c *commaContainer) comma() {
	c.groups = append(c.groups, c.currentGroup)
	c.currentGroup = nil
	c.sawComma = true
}

// fold closes the segment at end, returning the tokens to splice into the
// enclosing scope: the plain token list when no comma was seen, or a single
// CommaList token spanning [start, end) otherwise. A trailing comma (an
// empty currentGroup after the last comma) is accepted and dropped.
func (c *commaContainer) fold(end source.Pos) []Token {
	if !c.sawComma {
		return c.currentGroup
	}
	groups := c.groups
	if len(c.currentGroup) > 0 {
		groups = append(groups, c.currentGroup)
	}
	rng := source.NewRange(c.start, end.Offset-c.start.Offset)
	return []Token{{Kind: KindCommaList, Range: rng, Groups: groups}}
}

// scope is one level of the parenthesis/block nesting stack. Each scope
// owns a sequence of finalized segments (output) plus the comma container
// for the segment currently being accumulated; a semicolon folds the
// current container into output and starts a fresh one.
type scope struct {
	output    []Token
	container *commaContainer

	isParen bool
	kind    ParenKind
	openPos source.Pos
}

func newScope(start source.Pos) *scope {
	return &scope{container: newCommaContainer(start)}
}

func (s *scope) push(t Token) {
	s.container.push(t)
}

func (s *scope) comma() {
	s.container.comma()
}

// semicolon finalizes the in-progress segment, appends it plus a SemiColon
// token to output, and starts a fresh container right after semiPos.
func (s *scope) semicolon(semiPos source.Pos, semiRange source.Range) {
	folded := s.container.fold(semiPos)
	s.output = append(s.output, folded...)
	s.output = append(s.output, Token{Kind: KindSemiColon, Range: semiRange})
	next := semiRange.End()
	s.container = newCommaContainer(next)
}

// finalize closes out the scope at end-of-input (top level) or at the
// position of a matching closing bracket, returning the full token vector.
func (s *scope) finalize(end source.Pos) []Token {
	folded := s.container.fold(end)
	return append(s.output, folded...)
}
