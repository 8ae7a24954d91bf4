// Package backend fixes the contracts the core exposes to the
// code-generation collaborator: the handoff shape for a resolved unit,
// the runtime-support entry points compiled programs link against, and
// the linker/static-compiler invocation paths.
package backend

import (
	"fmt"
	"io"
	"strings"

	"github.com/glyphlang/glyphc/internal/resolver"
)

// Handoff is what the core gives the code generator for one unit: the
// entry-point name, the resolved statement vector, the function-parameter
// id map, and the unit id used for variable uniqueness across modules.
type Handoff struct {
	EntryName  string
	Statements []*resolver.Statement

	// ParamIDs maps each function's stable id to the variable ids of its
	// parameters, in declaration order.
	ParamIDs map[uint64][]uint64

	// UnitID disambiguates variable ids across modules.
	UnitID uint64
}

// NewHandoff flattens a resolved unit into the backend contract. The
// entry point is named after the unit id, so linked modules never collide.
func NewHandoff(ast *resolver.ResolvedAST) *Handoff {
	h := &Handoff{
		EntryName:  fmt.Sprintf("main_%d", ast.ID),
		Statements: ast.Statements,
		ParamIDs:   map[uint64][]uint64{},
		UnitID:     ast.ID,
	}
	var walk func(stmts []*resolver.Statement)
	walk = func(stmts []*resolver.Statement) {
		for _, s := range stmts {
			if s.Kind == resolver.StmtFunctionDefinition {
				h.ParamIDs[s.Function.ID] = s.ParamIDs
			}
			walk(s.Statements)
			if s.Then != nil {
				walk([]*resolver.Statement{s.Then})
			}
			if s.Else != nil {
				walk([]*resolver.Statement{s.Else})
			}
			if s.Body != nil {
				walk([]*resolver.Statement{s.Body})
			}
		}
	}
	walk(ast.Statements)
	return h
}

// Adapter consumes one resolved unit and produces machine code for it.
// The real code generator lives outside this repository; StubAdapter
// stands in for it during development and testing.
type Adapter interface {
	Compile(h *Handoff) error
}

// StubAdapter logs each handoff's statement kinds instead of generating
// code, so the full pipeline is exercisable without the code generator.
type StubAdapter struct {
	Out io.Writer
}

// Compile writes a one-line-per-statement dump of the handoff.
func (a *StubAdapter) Compile(h *Handoff) error {
	if a.Out == nil {
		return nil
	}
	fmt.Fprintf(a.Out, "unit %d entry %s\n", h.UnitID, h.EntryName)
	for _, s := range h.Statements {
		dumpStatement(a.Out, s, 1)
	}
	return nil
}

func dumpStatement(w io.Writer, s *resolver.Statement, depth int) {
	indent := strings.Repeat("  ", depth)
	switch s.Kind {
	case resolver.StmtFunctionDefinition:
		fmt.Fprintf(w, "%s%s %s/%d\n", indent, s.Kind, s.Function.Name, len(s.Function.Params))
	case resolver.StmtExpr:
		fmt.Fprintf(w, "%s%s %s: %s\n", indent, s.Kind, s.Expr.Kind, s.Expr.Type.Name)
	default:
		fmt.Fprintf(w, "%s%s\n", indent, s.Kind)
	}
	for _, child := range s.Statements {
		dumpStatement(w, child, depth+1)
	}
	if s.Then != nil {
		dumpStatement(w, s.Then, depth+1)
	}
	if s.Else != nil {
		dumpStatement(w, s.Else, depth+1)
	}
	if s.Body != nil {
		dumpStatement(w, s.Body, depth+1)
	}
}
