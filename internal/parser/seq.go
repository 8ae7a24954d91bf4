package parser

import "github.com/glyphlang/glyphc/internal/module"

// Seq2 runs ma then mb in sequence, combining their values. The composite
// range spans from ma's start to mb's end.
func Seq2[A, B, R any](ma Matcher[A], mb Matcher[B], combine func(module.Range, A, B) R) Matcher[R] {
	return func(pos module.Pos) (Match[R], error) {
		a, err := ma(pos)
		if err != nil {
			return Match[R]{}, err
		}
		next := pos.Advance(a.Range.Length)
		b, err := mb(next)
		if err != nil {
			return Match[R]{}, err
		}
		rng := a.Range.Combined(b.Range)
		v := combine(rng, a.Value, b.Value)
		return Match[R]{Range: rng, Value: v}, nil
	}
}

// Seq3 sequences three matchers.
func Seq3[A, B, C, R any](ma Matcher[A], mb Matcher[B], mc Matcher[C], combine func(module.Range, A, B, C) R) Matcher[R] {
	type ab struct {
		a A
		b B
	}
	pair := Seq2(ma, mb, func(_ module.Range, a A, b B) ab { return ab{a, b} })
	return Seq2(pair, mc, func(rng module.Range, p ab, c C) R { return combine(rng, p.a, p.b, c) })
}

// Seq4 sequences four matchers.
func Seq4[A, B, C, D, R any](ma Matcher[A], mb Matcher[B], mc Matcher[C], md Matcher[D], combine func(module.Range, A, B, C, D) R) Matcher[R] {
	type abc struct {
		a A
		b B
		c C
	}
	triple := Seq3(ma, mb, mc, func(_ module.Range, a A, b B, c C) abc { return abc{a, b, c} })
	return Seq2(triple, md, func(rng module.Range, t abc, d D) R { return combine(rng, t.a, t.b, t.c, d) })
}

// Seq5 sequences five matchers.
func Seq5[A, B, C, D, E, R any](ma Matcher[A], mb Matcher[B], mc Matcher[C], md Matcher[D], me Matcher[E], combine func(module.Range, A, B, C, D, E) R) Matcher[R] {
	type abcd struct {
		a A
		b B
		c C
		d D
	}
	quad := Seq4(ma, mb, mc, md, func(_ module.Range, a A, b B, c C, d D) abcd { return abcd{a, b, c, d} })
	return Seq2(quad, me, func(rng module.Range, q abcd, e E) R { return combine(rng, q.a, q.b, q.c, q.d, e) })
}
