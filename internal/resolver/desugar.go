package resolver

import (
	"github.com/glyphlang/glyphc/internal/ast"
	"github.com/glyphlang/glyphc/internal/lexer"
	"github.com/glyphlang/glyphc/internal/solver"
	"github.com/glyphlang/glyphc/internal/types"
)

// desugarIncDec lowers `a++` to `a += 1` and `a--` to `a -= 1` at
// resolution time, so the backend never sees the unary forms. The
// decrement maps to subtraction, not division.
func (r *bodyResolver) desugarIncDec(sym *ast.Symbol, op lexer.Operator, target *Expr) *Expr {
	if !target.Assignable() {
		r.errorf(&NotAssignableError{Range: sym.Range})
		return nil
	}
	if !target.Type.IsArithmetic {
		r.errorf(&TypeResolutionError{Range: sym.Range, Cause: &solver.ConflictError{Types: []*types.Type{target.Type}}})
		return nil
	}

	lowered := lexer.OpPlusAssign
	if op == lexer.OpDecrement {
		lowered = lexer.OpMinusAssign
	}

	one := &Expr{Kind: ExprLiteral, Type: target.Type, Range: sym.Range, Int: 1}
	if target.Type == types.Float {
		one.Float = 1
		one.Int = 0
	}

	sym.Solver().Forced(target.Type, sym.Range)
	if t := r.takeType(sym); t == nil {
		return nil
	}
	return &Expr{Kind: ExprOperator, Type: target.Type, Range: sym.Range, Operator: lowered, Operands: []*Expr{target, one}}
}
