package parser

import (
	"fmt"

	"github.com/glyphlang/glyphc/internal/ast"
	"github.com/glyphlang/glyphc/internal/module"
)

// AnyOf tries every option at pos, collects the ones that succeed, and
// hands them to resolve to pick a winner. If none
// succeed, returns MatchOptionsFailedError carrying every option's error.
func AnyOf[T any](options []Matcher[T], resolve func(module.Pos, []Match[T]) (Match[T], error)) Matcher[T] {
	return func(pos module.Pos) (Match[T], error) {
		var hits []Match[T]
		var misses []error
		for _, opt := range options {
			got, err := opt(pos)
			if err != nil {
				misses = append(misses, err)
				continue
			}
			hits = append(hits, got)
		}
		if len(hits) == 0 {
			return Match[T]{}, &MatchOptionsFailedError{baseErr{pos}, misses}
		}
		return resolve(pos, hits)
	}
}

// OneOf is AnyOf with the longest-match resolver (resolveLongest): used for
// alternatives with no overlapping grammar.
func OneOf[T any](options []Matcher[T]) Matcher[T] {
	return AnyOf(options, resolveLongest[T])
}

// resolveLongest requires a unique winner among hits: a strictly longer
// match beats shorter ones, but an exact length tie between two
// alternatives is a genuine ambiguity and surfaces as
// MultipleConflictError, never decided by option order.
func resolveLongest[T any](pos module.Pos, hits []Match[T]) (Match[T], error) {
	if len(hits) == 1 {
		return hits[0], nil
	}
	best := hits[0]
	tied := false
	for _, h := range hits[1:] {
		switch {
		case h.Range.Length > best.Range.Length:
			best = h
			tied = false
		case h.Range.Length == best.Range.Length:
			tied = true
		}
	}
	if tied {
		var names []string
		for _, h := range hits {
			if h.Range.Length == best.Range.Length {
				names = append(names, describeMatch(h))
			}
		}
		return Match[T]{}, &MultipleConflictError{baseErr{pos}, names}
	}
	return best, nil
}

// describeMatch names a match for conflict diagnostics: the symbol kind
// when the value is an AST node, the consumed length otherwise.
func describeMatch[T any](m Match[T]) string {
	if sym, ok := any(m.Value).(*ast.Symbol); ok {
		return sym.Kind.String()
	}
	return fmt.Sprintf("%d-token match", m.Range.Length)
}
