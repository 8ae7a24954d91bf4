// Package resolver orchestrates the per-unit pipeline: collect exports,
// synchronize on the global export-table
// barrier, then walk the AST seeding type constraints and binding names,
// producing a fully resolved AST for the code-generation backend.
package resolver

import (
	"github.com/glyphlang/glyphc/internal/lexer"
	"github.com/glyphlang/glyphc/internal/module"
	"github.com/glyphlang/glyphc/internal/types"
)

// ExprKind discriminates the resolved-expression sum.
type ExprKind int

const (
	ExprOperator ExprKind = iota
	ExprFunctionCall
	ExprConstructorCall
	ExprVariableDeclare
	ExprVariable
	ExprProperty
	ExprLiteral
	ExprRead
)

func (k ExprKind) String() string {
	switch k {
	case ExprOperator:
		return "Operator"
	case ExprFunctionCall:
		return "FunctionCall"
	case ExprConstructorCall:
		return "ConstructorCall"
	case ExprVariableDeclare:
		return "VariableDeclare"
	case ExprVariable:
		return "Variable"
	case ExprProperty:
		return "Property"
	case ExprLiteral:
		return "Literal"
	case ExprRead:
		return "Read"
	default:
		return "Unknown"
	}
}

// Expr is a resolved expression: every variant carries its concrete
// Type, every variable reference a globally-unique id, and every call a
// Function handle.
type Expr struct {
	Kind  ExprKind
	Type  *types.Type
	Range module.Range

	// ExprOperator.
	Operator lexer.Operator
	Operands []*Expr

	// ExprFunctionCall / ExprConstructorCall.
	Function *types.Function
	Args     []*Expr

	// ExprVariable / ExprVariableDeclare.
	Name  string
	VarID uint64
	Value *Expr // declaration initializer, nil when absent

	// ExprProperty.
	Target   *Expr
	Property string

	// ExprLiteral payloads.
	Bool     bool
	Char     rune
	Int      int64
	Float    float64
	Str      string
	Elements []*Expr
}

// Assignable reports whether the expression may appear on the left of an
// assignment: variables, freshly declared variables, and properties.
func (e *Expr) Assignable() bool {
	switch e.Kind {
	case ExprVariable, ExprVariableDeclare, ExprProperty:
		return true
	}
	return false
}

// StmtKind discriminates the resolved-statement sum.
type StmtKind int

const (
	StmtIf StmtKind = iota
	StmtWhile
	StmtReturn
	StmtExpr
	StmtFunctionDefinition
	StmtScope
	StmtMultiple
	StmtPrint
	StmtBreak
	StmtContinue
)

func (k StmtKind) String() string {
	switch k {
	case StmtIf:
		return "If"
	case StmtWhile:
		return "While"
	case StmtReturn:
		return "Return"
	case StmtExpr:
		return "Expr"
	case StmtFunctionDefinition:
		return "FunctionDefinition"
	case StmtScope:
		return "Scope"
	case StmtMultiple:
		return "Multiple"
	case StmtPrint:
		return "Print"
	case StmtBreak:
		return "Break"
	case StmtContinue:
		return "Continue"
	default:
		return "Unknown"
	}
}

// Statement is one resolved statement.
type Statement struct {
	Kind StmtKind

	// StmtIf.
	Cond *Expr
	Then *Statement
	Else *Statement // nil when absent

	// StmtWhile.
	Body *Statement

	// StmtReturn / StmtPrint.
	Value *Expr // nil for a bare `return;`

	// StmtExpr.
	Expr *Expr

	// StmtFunctionDefinition.
	Function *types.Function
	ParamIDs []uint64 // variable ids assigned to the parameters, in order

	// StmtScope / StmtMultiple children; also the function body for
	// StmtFunctionDefinition.
	Statements []*Statement
}

// ResolvedAST is one unit's fully resolved statement vector plus the
// unit's id, used by the backend for entry-point naming and variable
// uniqueness across modules.
type ResolvedAST struct {
	ID         uint64
	Statements []*Statement
}

// scopeOf wraps statements into a single StmtScope statement.
func scopeOf(statements []*Statement) *Statement {
	return &Statement{Kind: StmtScope, Statements: statements}
}

// multipleOf wraps statements into a single StmtMultiple statement (used
// for lowered constructs that expand to several statements but occupy one
// statement slot, like the for-loop rewrite).
func multipleOf(statements []*Statement) *Statement {
	return &Statement{Kind: StmtMultiple, Statements: statements}
}
