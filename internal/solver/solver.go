// Package solver implements the type-constraint solver: each expression
// position accumulates constraints as it is
// visited (forced/exact types, excluded types, priority hints, and ordered
// implicit-conversion subsets) and resolves them, once, to a single Type or
// a structured diagnostic.
package solver

import (
	"github.com/glyphlang/glyphc/internal/module"
	"github.com/glyphlang/glyphc/internal/types"
)

type entry struct {
	typ    *types.Type
	ranges []module.Range
}

type subsetRecord struct {
	types []*types.Type
	rng   module.Range
}

type priorityEntry struct {
	typ      *types.Type
	priority uint16
}

// Solver accumulates constraints for one expression position and resolves
// them via Take. Not safe for concurrent use by multiple goroutines against
// the same instance; each expression owns exactly one Solver.
type Solver struct {
	required []entry
	excluded []entry

	subset    []entry // current ordered intersection of every subsetOrdered call so far
	hasSubset bool
	history   []subsetRecord

	priorities []priorityEntry
}

// New returns an empty Solver with no constraints registered.
func New() *Solver {
	return &Solver{}
}

// Forced records an Exact(T) constraint: the expression's type must be
// exactly t.
func (s *Solver) Forced(t *types.Type, r module.Range) {
	for i := range s.required {
		if s.required[i].typ == t {
			s.required[i].ranges = append(s.required[i].ranges, r)
			return
		}
	}
	s.required = append(s.required, entry{typ: t, ranges: []module.Range{r}})
}

// Excluded records that t may not be the expression's resolved type.
func (s *Solver) Excluded(t *types.Type, r module.Range) {
	for i := range s.excluded {
		if s.excluded[i].typ == t {
			s.excluded[i].ranges = append(s.excluded[i].ranges, r)
			return
		}
	}
	s.excluded = append(s.excluded, entry{typ: t, ranges: []module.Range{r}})
}

// Priority records a priority hint for t: at resolution time, the
// highest-priority, non-excluded type (if unique) wins outright, ahead of
// subset-based resolution.
func (s *Solver) Priority(t *types.Type, priority uint16) {
	s.priorities = append(s.priorities, priorityEntry{typ: t, priority: priority})
}

// SubsetOrdered records an Implicit(S) constraint: the expression's type
// must be a member of sorted, which must already be sorted by type
// identity (types.Type.ID ascending) — a caller invariant, not checked here.
// Each call narrows the accumulated candidate set to its intersection with
// every subset seen so far.
func (s *Solver) SubsetOrdered(sorted []*types.Type, r module.Range) {
	s.history = append(s.history, subsetRecord{types: sorted, rng: r})

	if !s.hasSubset {
		next := make([]entry, len(sorted))
		for i, t := range sorted {
			next[i] = entry{typ: t, ranges: []module.Range{r}}
		}
		s.subset = next
		s.hasSubset = true
		return
	}

	var merged []entry
	i, j := 0, 0
	for i < len(s.subset) && j < len(sorted) {
		a := s.subset[i]
		b := sorted[j]
		switch {
		case a.typ.ID < b.ID:
			i++
		case a.typ.ID > b.ID:
			j++
		default:
			merged = append(merged, entry{typ: a.typ, ranges: append(append([]module.Range{}, a.ranges...), r)})
			i++
			j++
		}
	}
	s.subset = merged
}

func (s *Solver) findExcluded(t *types.Type) int {
	for i, e := range s.excluded {
		if e.typ == t {
			return i
		}
	}
	return -1
}

func (s *Solver) subsetContains(t *types.Type) bool {
	for _, e := range s.subset {
		if e.typ == t {
			return true
		}
	}
	return false
}

// rangesOmitting returns the ranges of every recorded SubsetOrdered call
// whose list did not include t — used to explain a ForcedSubsetError.
func (s *Solver) rangesOmitting(t *types.Type) []module.Range {
	var out []module.Range
	for _, rec := range s.history {
		found := false
		for _, rt := range rec.types {
			if rt == t {
				found = true
				break
			}
		}
		if !found {
			out = append(out, rec.rng)
		}
	}
	return out
}

// topPriority returns the resolved Result from the priority queue alone:
// ok is false if zero non-excluded candidates sit at the maximum recorded
// priority, meaning resolution must fall through to subset-based logic.
func (s *Solver) topPriority() (Result, bool) {
	if len(s.priorities) == 0 {
		return Result{}, false
	}
	maxP := s.priorities[0].priority
	for _, p := range s.priorities {
		if p.priority > maxP {
			maxP = p.priority
		}
	}

	seen := map[*types.Type]bool{}
	var top []*types.Type
	for _, p := range s.priorities {
		if p.priority != maxP || seen[p.typ] {
			continue
		}
		seen[p.typ] = true
		if s.findExcluded(p.typ) >= 0 {
			continue
		}
		top = append(top, p.typ)
	}

	switch len(top) {
	case 0:
		return Result{}, false
	case 1:
		return Result{Type: top[0]}, true
	default:
		return Result{Errors: []error{&AmbiguousError{Candidates: top}}}, true
	}
}

// Result is the outcome of Take: either a resolved Type (Ok() true) or one
// or more structured errors explaining why resolution failed.
type Result struct {
	Type   *types.Type
	Errors []error
}

// Ok reports whether resolution succeeded.
func (r Result) Ok() bool { return r.Type != nil }

// Take resolves the accumulated constraints to a single Type in three
// steps:
//
//  1. More than one Exact constraint is a Conflict.
//  2. Exactly one Exact constraint wins unless it is excluded
//     (ForcedExcluded) or absent from the subset intersection
//     (ForcedSubset).
//  3. With no Exact constraint, the highest-priority non-excluded
//     candidate wins if unique (Ambiguous if tied); otherwise the subset
//     intersection is filtered by exclusion and must leave exactly one
//     candidate (Eliminated/Unconstrained if none, Ambiguous if more than
//     one).
func (s *Solver) Take() Result {
	if len(s.required) > 1 {
		ts := make([]*types.Type, len(s.required))
		ranges := make([][]module.Range, len(s.required))
		for i, e := range s.required {
			ts[i] = e.typ
			ranges[i] = e.ranges
		}
		return Result{Errors: []error{&ConflictError{Types: ts, Ranges: ranges}}}
	}

	if len(s.required) == 1 {
		f := s.required[0]
		if idx := s.findExcluded(f.typ); idx >= 0 {
			return Result{Errors: []error{&ForcedExcludedError{
				Forced:         f.typ,
				ForcedRanges:   f.ranges,
				ExcludedRanges: s.excluded[idx].ranges,
			}}}
		}
		if s.hasSubset && !s.subsetContains(f.typ) {
			return Result{Errors: []error{&ForcedSubsetError{
				Forced:         f.typ,
				ForcedRanges:   f.ranges,
				ExcludedRanges: s.rangesOmitting(f.typ),
			}}}
		}
		return Result{Type: f.typ}
	}

	if res, ok := s.topPriority(); ok {
		return res
	}

	var errs []error
	var candidates []*types.Type
	for _, e := range s.subset {
		if idx := s.findExcluded(e.typ); idx >= 0 {
			errs = append(errs, &ExcludedError{Selected: e.typ, ExcludedRanges: s.excluded[idx].ranges})
			continue
		}
		candidates = append(candidates, e.typ)
	}

	switch len(candidates) {
	case 0:
		// A subset or priority constraint existed and every candidate it
		// named was excluded; only a solver that never saw a candidate at
		// all is unconstrained.
		if s.hasSubset || len(s.priorities) > 0 {
			errs = append(errs, &EliminatedError{})
		} else {
			errs = append(errs, &UnconstrainedError{})
		}
		return Result{Errors: errs}
	case 1:
		return Result{Type: candidates[0]}
	default:
		return Result{Errors: append(errs, &AmbiguousError{Candidates: candidates})}
	}
}
