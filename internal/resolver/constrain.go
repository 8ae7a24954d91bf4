package resolver

import (
	"github.com/glyphlang/glyphc/internal/ast"
	"github.com/glyphlang/glyphc/internal/export"
	"github.com/glyphlang/glyphc/internal/lexer"
	"github.com/glyphlang/glyphc/internal/module"
	"github.com/glyphlang/glyphc/internal/solver"
	"github.com/glyphlang/glyphc/internal/types"
)

// bodyResolver walks one unit's AST in stage two, seeding type
// constraints and binding names against the unit's scopes plus the
// merged export table.
type bodyResolver struct {
	unit  *Unit
	table *export.Table
	ids   *idAllocator

	loopDepth int
}

func (r *bodyResolver) errorf(err error) {
	r.unit.Errors = append(r.unit.Errors, err)
}

// implicitOf seeds an Implicit(T) constraint: T's implicit-conversion set
// as the allowed subset (sorted by type identity, the solver's caller
// invariant) plus a priority pin on T itself.
func implicitOf(s *solver.Solver, t *types.Type, rng module.Range) {
	set := types.SortByIdentity(t.ImplicitSet(), func(x *types.Type) int { return int(x.ID) })
	s.SubsetOrdered(set, rng)
	s.Priority(t, 1)
}

// takeType runs the solver for sym and returns the resolved type, or nil
// after recording a TypeResolutionError.
func (r *bodyResolver) takeType(sym *ast.Symbol) *types.Type {
	res := sym.Solver().Take()
	if !res.Ok() {
		for _, err := range res.Errors {
			r.errorf(&TypeResolutionError{Range: sym.Range, Cause: err})
		}
		return nil
	}
	return res.Type
}

func (r *bodyResolver) lookupType(name string, rng module.Range) *types.Type {
	if t, ok := r.table.LookupType(name); ok {
		return t
	}
	r.errorf(&UnknownNameError{Name: name, What: "type", Range: rng})
	return nil
}

// resolveStatement lowers one AST statement into the resolved-statement
// sum. Returns nil when the statement failed to resolve (the error is
// already recorded) or vanished during lowering.
func (r *bodyResolver) resolveStatement(sc *scope, sym *ast.Symbol) *Statement {
	switch sym.Kind {
	case ast.KindBlock:
		inner := newScope(sc)
		var stmts []*Statement
		for _, child := range sym.Statements {
			if stmt := r.resolveStatement(inner, child); stmt != nil {
				stmts = append(stmts, stmt)
			}
		}
		return scopeOf(stmts)

	case ast.KindIf:
		sym.Cond.Solver().Forced(types.Bool, sym.Cond.Range)
		cond := r.resolveExpr(sc, sym.Cond)
		then := r.resolveStatement(newScope(sc), sym.Then)
		var els *Statement
		if sym.Else != nil {
			els = r.resolveStatement(newScope(sc), sym.Else)
		}
		if cond == nil || then == nil {
			return nil
		}
		return &Statement{Kind: StmtIf, Cond: cond, Then: then, Else: els}

	case ast.KindWhile:
		sym.Cond.Solver().Forced(types.Bool, sym.Cond.Range)
		cond := r.resolveExpr(sc, sym.Cond)
		r.loopDepth++
		body := r.resolveStatement(newScope(sc), sym.Body)
		r.loopDepth--
		if cond == nil || body == nil {
			return nil
		}
		return &Statement{Kind: StmtWhile, Cond: cond, Body: body}

	case ast.KindFor:
		return r.resolveFor(sc, sym)

	case ast.KindLoop:
		// `loop { }` is an unconditional while (true).
		r.loopDepth++
		body := r.resolveStatement(newScope(sc), sym.Body)
		r.loopDepth--
		if body == nil {
			return nil
		}
		cond := &Expr{Kind: ExprLiteral, Type: types.Bool, Bool: true, Range: sym.Range}
		return &Statement{Kind: StmtWhile, Cond: cond, Body: body}

	case ast.KindBreak:
		if r.loopDepth == 0 {
			r.errorf(&MisplacedStatementError{What: "break", Range: sym.Range})
			return nil
		}
		return &Statement{Kind: StmtBreak}

	case ast.KindContinue:
		if r.loopDepth == 0 {
			r.errorf(&MisplacedStatementError{What: "continue", Range: sym.Range})
			return nil
		}
		return &Statement{Kind: StmtContinue}

	case ast.KindReturn:
		fn := sc.enclosing
		if fn == nil {
			r.errorf(&MisplacedStatementError{What: "return", Range: sym.Range})
			return nil
		}
		if sym.Value == nil {
			if fn.ReturnType != types.Void {
				r.errorf(&TypeResolutionError{Range: sym.Range, Cause: &solver.ConflictError{Types: []*types.Type{fn.ReturnType, types.Void}}})
				return nil
			}
			return &Statement{Kind: StmtReturn}
		}
		sym.Value.Solver().Forced(fn.ReturnType, sym.Value.Range)
		value := r.resolveExpr(sc, sym.Value)
		if value == nil {
			return nil
		}
		return &Statement{Kind: StmtReturn, Value: value}

	case ast.KindPrint:
		value := r.resolveExpr(sc, sym.Value)
		if value == nil {
			return nil
		}
		return &Statement{Kind: StmtPrint, Value: value}

	case ast.KindImport:
		// Imports only influence which units join the compilation; by
		// stage two their exports are already in the merged table.
		return nil

	case ast.KindFunctionDefinition:
		return r.resolveFunctionDef(sym)

	case ast.KindClassDefinition:
		return r.resolveClassDef(sym)

	default:
		if !sym.Kind.IsExpression() {
			r.errorf(&MisplacedStatementError{What: sym.Kind.String(), Range: sym.Range})
			return nil
		}
		expr := r.resolveExpr(sc, sym)
		if expr == nil {
			return nil
		}
		return &Statement{Kind: StmtExpr, Expr: expr}
	}
}

// resolveFor lowers `for (init; cond; post) body` into the resolved sum:
// Scope[ init; While(cond) Multiple[body; post] ].
func (r *bodyResolver) resolveFor(sc *scope, sym *ast.Symbol) *Statement {
	inner := newScope(sc)

	var stmts []*Statement
	if sym.Init != nil {
		if init := r.resolveExpr(inner, sym.Init); init != nil {
			stmts = append(stmts, &Statement{Kind: StmtExpr, Expr: init})
		}
	}

	var cond *Expr
	if sym.Cond != nil {
		sym.Cond.Solver().Forced(types.Bool, sym.Cond.Range)
		cond = r.resolveExpr(inner, sym.Cond)
	} else {
		cond = &Expr{Kind: ExprLiteral, Type: types.Bool, Bool: true, Range: sym.Range}
	}

	r.loopDepth++
	body := r.resolveStatement(newScope(inner), sym.Body)
	r.loopDepth--

	if cond == nil || body == nil {
		return nil
	}

	loopBody := []*Statement{body}
	if sym.Post != nil {
		if post := r.resolveExpr(inner, sym.Post); post != nil {
			loopBody = append(loopBody, &Statement{Kind: StmtExpr, Expr: post})
		}
	}

	stmts = append(stmts, &Statement{Kind: StmtWhile, Cond: cond, Body: multipleOf(loopBody)})
	return scopeOf(stmts)
}

func (r *bodyResolver) resolveFunctionDef(sym *ast.Symbol) *Statement {
	name := sym.Name.Token().Text()
	fn, ok := r.unit.functions[name]
	// Handles are minted from top-level definitions in stage one; a
	// definition the collector never saw is nested inside another body,
	// which the resolved form has no place for.
	if !ok || r.unit.bodies[fn] != sym {
		r.errorf(&MisplacedStatementError{What: "nested function definition", Range: sym.Range})
		return nil
	}
	return r.resolveFunctionBody(fn, sym, nil)
}

// resolveFunctionBody resolves one function's body in a fresh scope seeded
// with its parameters (and `this` for methods), assigning each parameter a
// variable id that the backend maps to its calling convention.
func (r *bodyResolver) resolveFunctionBody(fn *types.Function, sym *ast.Symbol, owner *types.Type) *Statement {
	sc := newScope(nil)
	sc.enclosing = fn

	var paramIDs []uint64
	if owner != nil {
		this := &Variable{ID: r.ids.nextID(), Name: "this", Type: owner}
		sc.declare(this)
		paramIDs = append(paramIDs, this.ID)
	}
	for _, p := range fn.Params {
		v := &Variable{ID: r.ids.nextID(), Name: p.Name, Type: p.Type}
		sc.declare(v)
		paramIDs = append(paramIDs, v.ID)
	}

	body := r.resolveStatement(sc, sym.Body)
	if body == nil {
		return nil
	}
	return &Statement{
		Kind:       StmtFunctionDefinition,
		Function:   fn,
		ParamIDs:   paramIDs,
		Statements: []*Statement{body},
	}
}

// resolveClassDef resolves every method body of a class. The class's
// field layout and method signatures were fixed in stage one; only bodies
// remain. The lowered form is a Multiple of the method definitions.
func (r *bodyResolver) resolveClassDef(sym *ast.Symbol) *Statement {
	className := sym.Name.Token().Text()
	owner, ok := r.unit.classes[className]
	if !ok {
		return nil
	}

	var methods []*Statement
	for _, member := range sym.Members {
		if member.Kind != ast.KindFunctionDefinition {
			continue
		}
		fn, ok := owner.Methods[member.Name.Token().Text()]
		if !ok {
			continue
		}
		if def := r.resolveFunctionBody(fn, member, owner); def != nil {
			methods = append(methods, def)
		}
	}
	return multipleOf(methods)
}

// resolveExpr resolves one expression symbol bottom-up. Contextual
// constraints (a call's parameter type, a condition's bool, a return's
// function type) must already be seeded on sym's solver by the caller;
// this function adds the expression's intrinsic constraints, recurses,
// and runs the solver exactly once.
func (r *bodyResolver) resolveExpr(sc *scope, sym *ast.Symbol) *Expr {
	switch sym.Kind {
	case ast.KindLiteralBool:
		implicitOf(sym.Solver(), types.Bool, sym.Range)
		return r.literal(sym, func(e *Expr) { e.Bool = sym.LiteralBool })
	case ast.KindLiteralChar:
		implicitOf(sym.Solver(), types.Char, sym.Range)
		return r.literal(sym, func(e *Expr) { e.Char = sym.LiteralChar })
	case ast.KindLiteralInteger:
		implicitOf(sym.Solver(), types.Int, sym.Range)
		return r.literal(sym, func(e *Expr) { e.Int = sym.LiteralI64 })
	case ast.KindLiteralFloat:
		implicitOf(sym.Solver(), types.Float, sym.Range)
		return r.literal(sym, func(e *Expr) { e.Float = sym.LiteralF64 })
	case ast.KindLiteralString:
		implicitOf(sym.Solver(), types.Str, sym.Range)
		return r.literal(sym, func(e *Expr) { e.Str = sym.LiteralStr })
	case ast.KindLiteralVoid:
		implicitOf(sym.Solver(), types.Void, sym.Range)
		return r.literal(sym, nil)

	case ast.KindLiteralArray, ast.KindLiteralTuple:
		// Array/tuple literals resolve each element independently; the
		// aggregate itself carries no primitive type.
		var elems []*Expr
		for _, el := range sym.Elements {
			if e := r.resolveExpr(sc, el); e != nil {
				elems = append(elems, e)
			}
		}
		t := r.takeOrVoid(sym)
		return &Expr{Kind: ExprLiteral, Type: t, Range: sym.Range, Elements: elems}

	case ast.KindParenthesis:
		return r.resolveExpr(sc, sym.Inner)

	case ast.KindVariable:
		name := sym.Name.Token().Text()
		v, ok := sc.lookup(name)
		if !ok {
			r.errorf(&UnknownNameError{Name: name, What: "variable", Range: sym.Range})
			return nil
		}
		sym.Solver().Forced(v.Type, sym.Range)
		if t := r.takeType(sym); t == nil {
			return nil
		}
		return &Expr{Kind: ExprVariable, Type: v.Type, Range: sym.Range, Name: v.Name, VarID: v.ID}

	case ast.KindVariableDeclaration:
		return r.resolveDeclaration(sc, sym)

	case ast.KindRead:
		sym.Solver().Forced(types.Int, sym.Range)
		if t := r.takeType(sym); t == nil {
			return nil
		}
		return &Expr{Kind: ExprRead, Type: types.Int, Range: sym.Range}

	case ast.KindFunctionCall:
		return r.resolveCall(sc, sym)

	case ast.KindOperator:
		return r.resolveOperator(sc, sym)

	default:
		r.errorf(&MisplacedStatementError{What: sym.Kind.String(), Range: sym.Range})
		return nil
	}
}

func (r *bodyResolver) literal(sym *ast.Symbol, fill func(*Expr)) *Expr {
	t := r.takeType(sym)
	if t == nil {
		return nil
	}
	e := &Expr{Kind: ExprLiteral, Type: t, Range: sym.Range}
	if fill != nil {
		fill(e)
	}
	return e
}

// takeOrVoid drains the solver if any constraints landed on sym, falling
// back to void for positions nothing constrained.
func (r *bodyResolver) takeOrVoid(sym *ast.Symbol) *types.Type {
	if !sym.HasSolver() {
		return types.Void
	}
	res := sym.Solver().Take()
	if res.Ok() {
		return res.Type
	}
	if len(res.Errors) == 1 {
		if _, ok := res.Errors[0].(*solver.UnconstrainedError); ok {
			return types.Void
		}
	}
	for _, err := range res.Errors {
		r.errorf(&TypeResolutionError{Range: sym.Range, Cause: err})
	}
	return nil
}

func (r *bodyResolver) resolveDeclaration(sc *scope, sym *ast.Symbol) *Expr {
	name := sym.Name.Token().Text()

	var declared *types.Type
	if sym.VarType != "" {
		declared = r.lookupType(sym.VarType, sym.Range)
		if declared == nil {
			return nil
		}
	}

	var value *Expr
	if sym.Value != nil {
		if declared != nil {
			sym.Value.Solver().Forced(declared, sym.Range)
		}
		value = r.resolveExpr(sc, sym.Value)
		if value == nil {
			return nil
		}
		if declared == nil {
			declared = value.Type
		}
	}

	if declared == nil {
		r.errorf(&UnknownNameError{Name: name, What: "type", Range: sym.Range})
		return nil
	}

	sym.Solver().Forced(declared, sym.Range)
	if t := r.takeType(sym); t == nil {
		return nil
	}

	v := &Variable{ID: r.ids.nextID(), Name: name, Type: declared}
	sc.declare(v)
	return &Expr{Kind: ExprVariableDeclare, Type: declared, Range: sym.Range, Name: name, VarID: v.ID, Value: value}
}

// resolveCall binds `name(args)` to a Function handle: the unit's own
// functions (including private ones) shadow the merged export table.
// Argument i carries Exact(parameter_i.type); the call expression carries
// Exact(returnType).
func (r *bodyResolver) resolveCall(sc *scope, sym *ast.Symbol) *Expr {
	name := sym.Name.Token().Text()

	fn, ok := r.unit.functions[name]
	if !ok {
		fn, ok = r.table.LookupFunction(name)
	}
	if !ok {
		// A class name in call position is a constructor call.
		if class, isClass := r.table.LookupType(name); isClass {
			return r.resolveConstructor(sc, sym, class)
		}
		r.errorf(&UnknownNameError{Name: name, What: "function", Range: sym.Range})
		return nil
	}

	if len(sym.Args) != len(fn.Params) {
		r.errorf(&ArgumentCountError{Function: name, Want: len(fn.Params), Got: len(sym.Args), Range: sym.Range})
		return nil
	}

	args := make([]*Expr, 0, len(sym.Args))
	for i, argSym := range sym.Args {
		argSym.Solver().Forced(fn.Params[i].Type, argSym.Range)
		arg := r.resolveExpr(sc, argSym)
		if arg == nil {
			return nil
		}
		args = append(args, arg)
	}

	sym.Solver().Forced(fn.ReturnType, sym.Range)
	if t := r.takeType(sym); t == nil {
		return nil
	}
	return &Expr{Kind: ExprFunctionCall, Type: fn.ReturnType, Range: sym.Range, Function: fn, Args: args}
}

// resolveConstructor handles `ClassName()`: a zero-argument allocation of
// the class with every field default-initialized.
func (r *bodyResolver) resolveConstructor(sc *scope, sym *ast.Symbol, class *types.Type) *Expr {
	if len(sym.Args) != 0 {
		r.errorf(&ArgumentCountError{Function: class.Name, Want: 0, Got: len(sym.Args), Range: sym.Range})
		return nil
	}
	sym.Solver().Forced(class, sym.Range)
	if t := r.takeType(sym); t == nil {
		return nil
	}
	return &Expr{Kind: ExprConstructorCall, Type: class, Range: sym.Range}
}

// widerOf picks the result type of a binary arithmetic operation: the
// operand type the other operand implicitly converts to.
func widerOf(a, b *types.Type) (*types.Type, bool) {
	if a == b {
		return a, true
	}
	if b.AcceptsImplicit(a) {
		return b, true
	}
	if a.AcceptsImplicit(b) {
		return a, true
	}
	return nil, false
}

func isAssignOp(op lexer.Operator) bool {
	switch op {
	case lexer.OpAssignEq, lexer.OpPlusAssign, lexer.OpMinusAssign,
		lexer.OpMultAssign, lexer.OpDivAssign, lexer.OpModAssign:
		return true
	}
	return false
}

func isComparisonOp(op lexer.Operator) bool {
	switch op {
	case lexer.OpCompareEq, lexer.OpCompareNotEq, lexer.OpGreater,
		lexer.OpGreaterEq, lexer.OpLess, lexer.OpLessEq:
		return true
	}
	return false
}

func isArithmeticOp(op lexer.Operator) bool {
	switch op {
	case lexer.OpPlus, lexer.OpMinus, lexer.OpMult, lexer.OpDiv, lexer.OpMod:
		return true
	}
	return false
}

func (r *bodyResolver) resolveOperator(sc *scope, sym *ast.Symbol) *Expr {
	op := sym.Operator

	switch {
	case op == lexer.OpDot:
		return r.resolveDot(sc, sym)

	case isAssignOp(op):
		return r.resolveAssignment(sc, sym)

	case op == lexer.OpAnd || op == lexer.OpOr:
		for _, operand := range sym.Operands {
			operand.Solver().Forced(types.Bool, operand.Range)
		}
		operands, ok := r.resolveOperands(sc, sym)
		if !ok {
			return nil
		}
		sym.Solver().Forced(types.Bool, sym.Range)
		if t := r.takeType(sym); t == nil {
			return nil
		}
		return &Expr{Kind: ExprOperator, Type: types.Bool, Range: sym.Range, Operator: op, Operands: operands}

	case isComparisonOp(op):
		operands, ok := r.resolveOperands(sc, sym)
		if !ok {
			return nil
		}
		if _, widens := widerOf(operands[0].Type, operands[1].Type); !widens {
			r.errorf(&TypeResolutionError{Range: sym.Range, Cause: &solver.ConflictError{Types: []*types.Type{operands[0].Type, operands[1].Type}}})
			return nil
		}
		sym.Solver().Forced(types.Bool, sym.Range)
		if t := r.takeType(sym); t == nil {
			return nil
		}
		return &Expr{Kind: ExprOperator, Type: types.Bool, Range: sym.Range, Operator: op, Operands: operands}

	case isArithmeticOp(op):
		operands, ok := r.resolveOperands(sc, sym)
		if !ok {
			return nil
		}
		result, widens := widerOf(operands[0].Type, operands[1].Type)
		if !widens || !result.IsArithmetic {
			r.errorf(&TypeResolutionError{Range: sym.Range, Cause: &solver.ConflictError{Types: []*types.Type{operands[0].Type, operands[1].Type}}})
			return nil
		}
		implicitOf(sym.Solver(), result, sym.Range)
		t := r.takeType(sym)
		if t == nil {
			return nil
		}
		return &Expr{Kind: ExprOperator, Type: t, Range: sym.Range, Operator: op, Operands: operands}

	case op == lexer.OpNot:
		sym.Operands[0].Solver().Forced(types.Bool, sym.Operands[0].Range)
		operands, ok := r.resolveOperands(sc, sym)
		if !ok {
			return nil
		}
		sym.Solver().Forced(types.Bool, sym.Range)
		if t := r.takeType(sym); t == nil {
			return nil
		}
		return &Expr{Kind: ExprOperator, Type: types.Bool, Range: sym.Range, Operator: op, Operands: operands}

	case op == lexer.OpIncrement || op == lexer.OpDecrement:
		operands, ok := r.resolveOperands(sc, sym)
		if !ok {
			return nil
		}
		return r.desugarIncDec(sym, op, operands[0])

	case op == lexer.OpCast:
		return r.resolveCast(sc, sym)

	default:
		// Range, ellipsis and error-propagation operators reach the
		// resolved tree unchanged; their operand types flow through.
		operands, ok := r.resolveOperands(sc, sym)
		if !ok {
			return nil
		}
		t := operands[0].Type
		sym.Solver().Forced(t, sym.Range)
		if got := r.takeType(sym); got == nil {
			return nil
		}
		return &Expr{Kind: ExprOperator, Type: t, Range: sym.Range, Operator: op, Operands: operands}
	}
}

func (r *bodyResolver) resolveOperands(sc *scope, sym *ast.Symbol) ([]*Expr, bool) {
	operands := make([]*Expr, 0, len(sym.Operands))
	for _, o := range sym.Operands {
		e := r.resolveExpr(sc, o)
		if e == nil {
			return nil, false
		}
		operands = append(operands, e)
	}
	return operands, true
}

// resolveAssignment handles `=` and the compound-assignment family: the
// left side must be assignable, the right carries Implicit(leftType), and
// the expression's type is the left type.
func (r *bodyResolver) resolveAssignment(sc *scope, sym *ast.Symbol) *Expr {
	left := r.resolveExpr(sc, sym.Operands[0])
	if left == nil {
		return nil
	}
	if !left.Assignable() {
		r.errorf(&NotAssignableError{Range: sym.Operands[0].Range})
		return nil
	}

	implicitOf(sym.Operands[1].Solver(), left.Type, sym.Operands[1].Range)
	right := r.resolveExpr(sc, sym.Operands[1])
	if right == nil {
		return nil
	}

	sym.Solver().Forced(left.Type, sym.Range)
	if t := r.takeType(sym); t == nil {
		return nil
	}
	return &Expr{Kind: ExprOperator, Type: left.Type, Range: sym.Range, Operator: sym.Operator, Operands: []*Expr{left, right}}
}

// resolveDot handles member access `a.b` and method calls `a.b(c)`.
func (r *bodyResolver) resolveDot(sc *scope, sym *ast.Symbol) *Expr {
	target := r.resolveExpr(sc, sym.Operands[0])
	if target == nil {
		return nil
	}
	member := sym.Operands[1]

	switch member.Kind {
	case ast.KindVariable:
		name := member.Name.Token().Text()
		propType, ok := target.Type.Property(name)
		if !ok {
			r.errorf(&UnknownNameError{Name: name, What: "property", Range: member.Range})
			return nil
		}
		sym.Solver().Forced(propType, sym.Range)
		if t := r.takeType(sym); t == nil {
			return nil
		}
		return &Expr{Kind: ExprProperty, Type: propType, Range: sym.Range, Target: target, Property: name}

	case ast.KindFunctionCall:
		name := member.Name.Token().Text()
		fn, ok := target.Type.Methods[name]
		if !ok {
			r.errorf(&UnknownNameError{Name: name, What: "property", Range: member.Range})
			return nil
		}
		if len(member.Args) != len(fn.Params) {
			r.errorf(&ArgumentCountError{Function: name, Want: len(fn.Params), Got: len(member.Args), Range: member.Range})
			return nil
		}
		// The receiver rides in front of the declared parameters.
		args := []*Expr{target}
		for i, argSym := range member.Args {
			argSym.Solver().Forced(fn.Params[i].Type, argSym.Range)
			arg := r.resolveExpr(sc, argSym)
			if arg == nil {
				return nil
			}
			args = append(args, arg)
		}
		sym.Solver().Forced(fn.ReturnType, sym.Range)
		if t := r.takeType(sym); t == nil {
			return nil
		}
		return &Expr{Kind: ExprFunctionCall, Type: fn.ReturnType, Range: sym.Range, Function: fn, Args: args}

	default:
		r.errorf(&UnknownNameError{Name: member.Kind.String(), What: "property", Range: member.Range})
		return nil
	}
}

// resolveCast handles `expr as TypeName`.
func (r *bodyResolver) resolveCast(sc *scope, sym *ast.Symbol) *Expr {
	target := sym.Operands[1]
	if target.Kind != ast.KindVariable {
		r.errorf(&UnknownNameError{Name: target.Kind.String(), What: "type", Range: target.Range})
		return nil
	}
	to := r.lookupType(target.Name.Token().Text(), target.Range)
	if to == nil {
		return nil
	}
	value := r.resolveExpr(sc, sym.Operands[0])
	if value == nil {
		return nil
	}
	sym.Solver().Forced(to, sym.Range)
	if t := r.takeType(sym); t == nil {
		return nil
	}
	return &Expr{Kind: ExprOperator, Type: to, Range: sym.Range, Operator: lexer.OpCast, Operands: []*Expr{value}}
}
