package solver

import (
	"fmt"
	"strings"

	"github.com/glyphlang/glyphc/internal/module"
	"github.com/glyphlang/glyphc/internal/types"
)

// ConflictError reports two or more incompatible Exact constraints on the
// same expression.
type ConflictError struct {
	Types  []*types.Type
	Ranges [][]module.Range
}

func (e *ConflictError) Error() string {
	names := make([]string, len(e.Types))
	for i, t := range e.Types {
		names[i] = t.Name
	}
	return fmt.Sprintf("conflicting required types: %s", strings.Join(names, ", "))
}

// ForcedExcludedError reports a forced (Exact) type that is also excluded.
type ForcedExcludedError struct {
	Forced         *types.Type
	ForcedRanges   []module.Range
	ExcludedRanges []module.Range
}

func (e *ForcedExcludedError) Error() string {
	return fmt.Sprintf("required type %s is also excluded", e.Forced.Name)
}

// ForcedSubsetError reports a forced (Exact) type absent from the
// accumulated Implicit subset intersection.
type ForcedSubsetError struct {
	Forced         *types.Type
	ForcedRanges   []module.Range
	ExcludedRanges []module.Range // ranges of subset() calls that omitted Forced
}

func (e *ForcedSubsetError) Error() string {
	return fmt.Sprintf("required type %s is not a member of the allowed subset", e.Forced.Name)
}

// ExcludedError reports that the sole surviving subset candidate is itself
// excluded.
type ExcludedError struct {
	Selected       *types.Type
	ExcludedRanges []module.Range
}

func (e *ExcludedError) Error() string {
	return fmt.Sprintf("type %s was excluded", e.Selected.Name)
}

// AmbiguousError reports two or more surviving candidates with nothing to
// break the tie.
type AmbiguousError struct {
	Candidates []*types.Type
}

func (e *AmbiguousError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, t := range e.Candidates {
		names[i] = t.Name
	}
	return fmt.Sprintf("ambiguous type: could be any of %s", strings.Join(names, ", "))
}

// EliminatedError reports that subset or priority constraints were
// registered but no candidate survived them (all excluded, or the subset
// intersection is empty).
type EliminatedError struct{}

func (e *EliminatedError) Error() string { return "every candidate type was excluded" }

// UnconstrainedError reports that no constraint was ever registered.
type UnconstrainedError struct{}

func (e *UnconstrainedError) Error() string { return "type is unconstrained" }
