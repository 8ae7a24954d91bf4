package resolver

import (
	"sync/atomic"

	"github.com/glyphlang/glyphc/internal/ast"
	"github.com/glyphlang/glyphc/internal/export"
	"github.com/glyphlang/glyphc/internal/lexer"
	"github.com/glyphlang/glyphc/internal/module"
	"github.com/glyphlang/glyphc/internal/parser"
	"github.com/glyphlang/glyphc/internal/source"
	"github.com/glyphlang/glyphc/internal/types"
)

var nextUnitID uint64

// Unit carries one compilation unit through the pipeline: stage one
// (load → lex → parse → collect exports), then stage two (resolve bodies
// against the merged export table). Owned by a single worker at a time;
// never aliased across workers.
type Unit struct {
	ID     uint64
	File   *source.File
	Module *module.Module
	AST    []*ast.Symbol

	Errors []error

	factory *types.Factory

	// Stage-one products, consumed by stage two.
	classes   map[string]*types.Type
	functions map[string]*types.Function
	bodies    map[*types.Function]*ast.Symbol
}

// NewUnit runs lexing and parsing over file. Any lexical or syntactic
// error lands in Unit.Errors; a unit with stage-one errors never proceeds
// to stage two.
func NewUnit(file *source.File, factory *types.Factory) *Unit {
	u := &Unit{
		ID:        atomic.AddUint64(&nextUnitID, 1),
		File:      file,
		factory:   factory,
		classes:   map[string]*types.Type{},
		functions: map[string]*types.Function{},
		bodies:    map[*types.Function]*ast.Symbol{},
	}

	tokens, lexErrs := lexer.New(file).Lex()
	for _, e := range lexErrs {
		u.Errors = append(u.Errors, e)
	}
	if len(lexErrs) > 0 {
		return u
	}

	u.Module = module.New(file, tokens)
	stmts, err := parser.ParseModule(u.Module)
	if err != nil {
		u.Errors = append(u.Errors, err)
		return u
	}
	u.AST = stmts
	return u
}

// Failed reports whether the unit has accumulated any error so far.
func (u *Unit) Failed() bool { return len(u.Errors) > 0 }

// lookupLocalType resolves a type name against the primitives plus this
// unit's own class declarations. Used during stage one, before the merged
// table exists. A signature type naming another unit's class is not found
// here and is not looked up again later.
func (u *Unit) lookupLocalType(name string) (*types.Type, bool) {
	if t, ok := u.classes[name]; ok {
		return t, true
	}
	return types.ByName(name)
}

// CollectExports is the first resolver pass: walk the top-level AST,
// mint Type/Function handles for every class and function, and
// contribute the exported ones to the shared global table.
// This must run to completion before the unit ever touches the barrier.
func (u *Unit) CollectExports(global *export.Global) {
	if u.Failed() {
		return
	}

	// Classes first: function signatures may reference them.
	for _, sym := range u.AST {
		if sym.Kind == ast.KindClassDefinition {
			u.collectClass(sym)
		}
	}
	for _, sym := range u.AST {
		if sym.Kind == ast.KindFunctionDefinition {
			u.collectFunction(sym, nil)
		}
	}

	if u.Failed() {
		return
	}

	err := global.WithWriteTable(func(tab *export.Table) error {
		for _, t := range u.classes {
			if err := tab.AddExportedType(t); err != nil {
				u.Errors = append(u.Errors, err)
			}
		}
		for _, fn := range u.functions {
			if fn.Visibility != types.Public {
				continue
			}
			if err := tab.AddExportedFunction(fn); err != nil {
				u.Errors = append(u.Errors, err)
			}
		}
		return nil
	})
	if err != nil {
		u.Errors = append(u.Errors, err)
	}
}

func (u *Unit) collectClass(sym *ast.Symbol) {
	name := sym.Name.Token().Text()
	t := types.New(name, 64)

	for _, member := range sym.Members {
		switch member.Kind {
		case ast.KindVariableDeclaration:
			fieldType, ok := u.fieldType(member)
			if !ok {
				continue
			}
			t.Properties[member.Name.Token().Text()] = fieldType
		}
	}
	u.classes[name] = t

	// Methods after fields so their signatures can reference the class.
	for _, member := range sym.Members {
		if member.Kind == ast.KindFunctionDefinition {
			u.collectFunction(member, t)
		}
	}
}

// fieldType determines a class field's type from its declared type name,
// or from the shape of a literal initializer when the declaration is
// inferred.
func (u *Unit) fieldType(member *ast.Symbol) (*types.Type, bool) {
	if member.VarType != "" {
		t, ok := u.lookupLocalType(member.VarType)
		if !ok {
			u.Errors = append(u.Errors, &UnknownNameError{Name: member.VarType, What: "type", Range: member.Range})
			return nil, false
		}
		return t, true
	}
	if member.Value != nil {
		if t, ok := literalType(member.Value); ok {
			return t, true
		}
	}
	u.Errors = append(u.Errors, &UnknownNameError{Name: member.Name.Token().Text(), What: "type", Range: member.Range})
	return nil, false
}

func literalType(sym *ast.Symbol) (*types.Type, bool) {
	switch sym.Kind {
	case ast.KindLiteralBool:
		return types.Bool, true
	case ast.KindLiteralChar:
		return types.Char, true
	case ast.KindLiteralInteger:
		return types.Int, true
	case ast.KindLiteralFloat:
		return types.Float, true
	case ast.KindLiteralString:
		return types.Str, true
	case ast.KindLiteralVoid:
		return types.Void, true
	}
	return nil, false
}

func (u *Unit) collectFunction(sym *ast.Symbol, owner *types.Type) {
	name := sym.Name.Token().Text()

	ret := types.Void
	if sym.ReturnType != "" {
		t, ok := u.lookupLocalType(sym.ReturnType)
		if !ok {
			u.Errors = append(u.Errors, &UnknownNameError{Name: sym.ReturnType, What: "type", Range: sym.Range})
			return
		}
		ret = t
	}

	params := make([]types.Param, 0, len(sym.Params))
	for _, p := range sym.Params {
		t, ok := u.lookupLocalType(p.Type)
		if !ok {
			u.Errors = append(u.Errors, &UnknownNameError{Name: p.Type, What: "type", Range: sym.Range})
			return
		}
		params = append(params, types.Param{Name: p.Name.Token().Text(), Type: t})
	}

	vis := types.Public
	if owner != nil && sym.Visibility == ast.VisibilityPrivate {
		vis = types.Private
	}

	fn := u.factory.NewFunction(vis, name, ret, params)
	u.bodies[fn] = sym
	if owner != nil {
		owner.Methods[name] = fn
		return
	}
	u.functions[name] = fn
}

// ResolveBodies is stage two: with the merged export table in hand,
// resolve every statement and function body of the unit, producing a
// ResolvedAST. Returns nil when resolution produced errors.
func (u *Unit) ResolveBodies(complete *export.Table, ids *idAllocator) *ResolvedAST {
	if u.Failed() {
		return nil
	}

	r := &bodyResolver{unit: u, table: complete, ids: ids}
	top := newScope(nil)

	var stmts []*Statement
	for _, sym := range u.AST {
		if stmt := r.resolveStatement(top, sym); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	if u.Failed() {
		return nil
	}
	return &ResolvedAST{ID: u.ID, Statements: stmts}
}
