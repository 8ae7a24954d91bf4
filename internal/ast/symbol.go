// Package ast defines Symbol, the exhaustive sum-type AST node: one
// concrete, tagged struct plus small inherent accessor functions. No
// interface, no vtable — statement and expression dispatch is always an
// exhaustive switch on Kind.
package ast

import (
	"github.com/glyphlang/glyphc/internal/lexer"
	"github.com/glyphlang/glyphc/internal/module"
	"github.com/glyphlang/glyphc/internal/solver"
)

// Kind discriminates the Symbol sum type.
type Kind int

const (
	KindBlock Kind = iota
	KindBreak
	KindContinue
	KindClassDefinition
	KindFunctionDefinition
	KindIf
	KindImport
	KindReturn
	KindWhile
	KindFor
	KindLoop

	// Expression variants.
	KindFunctionCall
	KindConstructorCall
	KindOperator
	KindParenthesis
	KindVariableDeclaration
	KindVariable
	KindMemberAccess
	KindMethodCall
	KindRead
	KindPrint

	// Literal variants.
	KindLiteralArray
	KindLiteralBool
	KindLiteralChar
	KindLiteralFloat
	KindLiteralInteger
	KindLiteralString
	KindLiteralTuple
	KindLiteralVoid
)

func (k Kind) String() string {
	switch k {
	case KindBlock:
		return "Block"
	case KindBreak:
		return "Break"
	case KindContinue:
		return "Continue"
	case KindClassDefinition:
		return "ClassDefinition"
	case KindFunctionDefinition:
		return "FunctionDefinition"
	case KindIf:
		return "If"
	case KindImport:
		return "Import"
	case KindReturn:
		return "Return"
	case KindWhile:
		return "While"
	case KindFor:
		return "For"
	case KindLoop:
		return "Loop"
	case KindFunctionCall:
		return "FunctionCall"
	case KindConstructorCall:
		return "ConstructorCall"
	case KindOperator:
		return "Operator"
	case KindParenthesis:
		return "Parenthesis"
	case KindVariableDeclaration:
		return "VariableDeclaration"
	case KindVariable:
		return "Variable"
	case KindMemberAccess:
		return "MemberAccess"
	case KindMethodCall:
		return "MethodCall"
	case KindRead:
		return "Read"
	case KindPrint:
		return "Print"
	case KindLiteralArray:
		return "LiteralArray"
	case KindLiteralBool:
		return "LiteralBool"
	case KindLiteralChar:
		return "LiteralChar"
	case KindLiteralFloat:
		return "LiteralFloat"
	case KindLiteralInteger:
		return "LiteralInteger"
	case KindLiteralString:
		return "LiteralString"
	case KindLiteralTuple:
		return "LiteralTuple"
	case KindLiteralVoid:
		return "LiteralVoid"
	default:
		return "Unknown"
	}
}

// IsExpression reports whether k produces a value and therefore carries a
// constraint solver.
func (k Kind) IsExpression() bool {
	return k >= KindFunctionCall
}

// Param is one entry of a function's parameter list.
type Param struct {
	Name module.Pos
	Type string // type-expression text; resolved to a *types.Type downstream
}

// Visibility mirrors the `public`/`private` keywords.
type Visibility int

const (
	VisibilityPrivate Visibility = iota
	VisibilityPublic
)

// Symbol is every syntactic construct, tagged by Kind. Every
// Symbol carries a Range (invariant (a): the range lies within its
// module). Only the fields relevant to Kind are populated; the comments
// on the field groups below name the kinds that use them.
type Symbol struct {
	Kind  Kind
	Range module.Range

	// Block / If / While / For / Loop / FunctionDefinition bodies.
	Statements []*Symbol
	Cond       *Symbol
	Then       *Symbol
	Else       *Symbol
	Init       *Symbol
	Post       *Symbol
	Body       *Symbol

	// ClassDefinition / FunctionDefinition.
	Name       module.Pos
	Extends    string
	Members    []*Symbol
	Params     []Param
	ReturnType string
	Static     bool
	Visibility Visibility

	// Import.
	ImportPath string

	// Return / Print.
	Value *Symbol

	// FunctionCall / ConstructorCall / MethodCall.
	Callee    *Symbol
	ClassName string
	Method    module.Pos
	Args      []*Symbol

	// Operator.
	Operator lexer.Operator
	Operands []*Symbol

	// Parenthesis / VariableDeclaration.
	Inner   *Symbol
	VarType string // declared type name, empty when inferred

	// MemberAccess.
	Target *Symbol
	Member module.Pos

	// Literals.
	Elements    []*Symbol
	LiteralBool bool
	LiteralChar rune
	LiteralF64  float64
	LiteralI64  int64
	LiteralStr  string

	// solver is the expression's lazily-populated constraint solver.
	// Only meaningful when Kind.IsExpression().
	solver *solver.Solver
}

// Solver lazily constructs and returns this expression's constraint
// solver. Panics if called on a non-expression Symbol.
func (s *Symbol) Solver() *solver.Solver {
	if !s.Kind.IsExpression() {
		panic("ast: Solver() called on non-expression symbol " + s.Kind.String())
	}
	if s.solver == nil {
		s.solver = solver.New()
	}
	return s.solver
}

// HasSolver reports whether a solver has already been created, without
// creating one (used by the resolver to tell unconstrained positions apart
// without forcing allocation).
func (s *Symbol) HasSolver() bool { return s.solver != nil }
