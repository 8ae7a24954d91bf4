package resolver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/glyphlang/glyphc/internal/export"
	"github.com/glyphlang/glyphc/internal/lexer"
	"github.com/glyphlang/glyphc/internal/solver"
	"github.com/glyphlang/glyphc/internal/source"
	"github.com/glyphlang/glyphc/internal/types"
)

// resolveSource runs a single in-memory unit through both stages.
func resolveSource(t *testing.T, text string) (*Unit, *ResolvedAST) {
	t.Helper()
	global := export.NewGlobal()
	factory := types.NewFactory()

	unit := NewUnit(source.New("test.gly", text), factory)
	unit.CollectExports(global)
	complete := global.AwaitComplete()
	resolved := unit.ResolveBodies(complete, &idAllocator{})
	return unit, resolved
}

func mustResolve(t *testing.T, text string) *ResolvedAST {
	t.Helper()
	unit, resolved := resolveSource(t, text)
	if len(unit.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", unit.Errors)
	}
	if resolved == nil {
		t.Fatal("ResolveBodies returned nil without errors")
	}
	return resolved
}

func TestResolveSimpleProgram(t *testing.T) {
	resolved := mustResolve(t, `
		function add(int a, int b) int { return a + b; }
		let x = add(1, 2);
		print x;
	`)
	if len(resolved.Statements) != 3 {
		t.Fatalf("want 3 statements, got %d", len(resolved.Statements))
	}

	def := resolved.Statements[0]
	if def.Kind != StmtFunctionDefinition || def.Function.Name != "add" {
		t.Fatalf("statement 0 = %+v", def)
	}
	if len(def.ParamIDs) != 2 {
		t.Fatalf("want 2 param ids, got %d", len(def.ParamIDs))
	}

	decl := resolved.Statements[1]
	if decl.Kind != StmtExpr || decl.Expr.Kind != ExprVariableDeclare {
		t.Fatalf("statement 1 = %+v", decl)
	}
	if decl.Expr.Type != types.Int {
		t.Errorf("x resolved to %s, want int", decl.Expr.Type.Name)
	}
	call := decl.Expr.Value
	if call.Kind != ExprFunctionCall || call.Function.Name != "add" {
		t.Fatalf("initializer = %+v", call)
	}
	if call.Type != types.Int {
		t.Errorf("call type = %s, want int", call.Type.Name)
	}

	if resolved.Statements[2].Kind != StmtPrint {
		t.Errorf("statement 2 = %s, want Print", resolved.Statements[2].Kind)
	}
}

func TestVariableIDsAreUnique(t *testing.T) {
	resolved := mustResolve(t, `
		let a = 1;
		let b = 2;
		{ let a = 3; }
	`)
	seen := map[uint64]bool{}
	var walk func(*Statement)
	var walkExpr func(*Expr)
	walkExpr = func(e *Expr) {
		if e == nil {
			return
		}
		if e.Kind == ExprVariableDeclare {
			if seen[e.VarID] {
				t.Errorf("variable id %d reused", e.VarID)
			}
			seen[e.VarID] = true
		}
		walkExpr(e.Value)
		for _, o := range e.Operands {
			walkExpr(o)
		}
	}
	walk = func(s *Statement) {
		walkExpr(s.Expr)
		for _, c := range s.Statements {
			walk(c)
		}
	}
	for _, s := range resolved.Statements {
		walk(s)
	}
	if len(seen) != 3 {
		t.Fatalf("want 3 distinct declarations, got %d", len(seen))
	}
}

func TestShadowingResolvesInnermost(t *testing.T) {
	resolved := mustResolve(t, `
		let x = 1;
		{
			let x = 2.5;
			print x;
		}
	`)
	block := resolved.Statements[1]
	if block.Kind != StmtScope {
		t.Fatalf("want Scope, got %s", block.Kind)
	}
	pr := block.Statements[1]
	if pr.Kind != StmtPrint {
		t.Fatalf("want Print, got %s", pr.Kind)
	}
	if pr.Value.Type != types.Float {
		t.Errorf("shadowed x resolved to %s, want float", pr.Value.Type.Name)
	}
}

func TestIfConditionMustBeBool(t *testing.T) {
	unit, _ := resolveSource(t, "if (1) { print 2; }")
	if len(unit.Errors) == 0 {
		t.Fatal("expected a type error for non-bool condition")
	}
	var tre *TypeResolutionError
	if !errors.As(unit.Errors[0], &tre) {
		t.Fatalf("want TypeResolutionError, got %T", unit.Errors[0])
	}
	var fs *solver.ForcedSubsetError
	if !errors.As(tre.Cause, &fs) {
		t.Fatalf("want ForcedSubsetError cause, got %T", tre.Cause)
	}
}

func TestUnknownVariable(t *testing.T) {
	unit, _ := resolveSource(t, "print missing;")
	if len(unit.Errors) == 0 {
		t.Fatal("expected an unknown-variable error")
	}
	var unk *UnknownNameError
	if !errors.As(unit.Errors[0], &unk) || unk.What != "variable" {
		t.Fatalf("got %v", unit.Errors[0])
	}
}

func TestReturnOutsideFunction(t *testing.T) {
	unit, _ := resolveSource(t, "return 1;")
	if len(unit.Errors) == 0 {
		t.Fatal("expected a misplaced-return error")
	}
	var mp *MisplacedStatementError
	if !errors.As(unit.Errors[0], &mp) || mp.What != "return" {
		t.Fatalf("got %v", unit.Errors[0])
	}
}

func TestBreakOutsideLoop(t *testing.T) {
	unit, _ := resolveSource(t, "break;")
	var mp *MisplacedStatementError
	if len(unit.Errors) == 0 || !errors.As(unit.Errors[0], &mp) {
		t.Fatalf("want MisplacedStatementError, got %v", unit.Errors)
	}
}

func TestIncrementDesugarsToPlusAssign(t *testing.T) {
	resolved := mustResolve(t, `
		let x = 1;
		while (x < 10) { x++; }
	`)
	loop := resolved.Statements[1]
	body := loop.Body.Statements[0]
	if body.Kind != StmtExpr {
		t.Fatalf("loop body = %s", body.Kind)
	}
	e := body.Expr
	if e.Kind != ExprOperator || e.Operator != lexer.OpPlusAssign {
		t.Fatalf("x++ lowered to %v, want +=", e.Operator)
	}
	if len(e.Operands) != 2 || e.Operands[1].Int != 1 {
		t.Fatalf("operands = %+v", e.Operands)
	}
}

func TestDecrementDesugarsToMinusAssign(t *testing.T) {
	resolved := mustResolve(t, `
		let x = 10;
		while (x > 0) { x--; }
	`)
	e := resolved.Statements[1].Body.Statements[0].Expr
	if e.Operator != lexer.OpMinusAssign {
		t.Fatalf("x-- lowered to %v, want -=", e.Operator)
	}
}

func TestForLoopLowersToWhile(t *testing.T) {
	resolved := mustResolve(t, `
		let total = 0;
		for (let i = 0; i < 3; i++) { total = total + i; }
	`)
	lowered := resolved.Statements[1]
	if lowered.Kind != StmtScope {
		t.Fatalf("for should lower to Scope, got %s", lowered.Kind)
	}
	if len(lowered.Statements) != 2 {
		t.Fatalf("scope should hold init + while, got %d", len(lowered.Statements))
	}
	if lowered.Statements[1].Kind != StmtWhile {
		t.Fatalf("second child = %s, want While", lowered.Statements[1].Kind)
	}
	loopBody := lowered.Statements[1].Body
	if loopBody.Kind != StmtMultiple || len(loopBody.Statements) != 2 {
		t.Fatalf("loop body should be Multiple[body, post], got %+v", loopBody)
	}
}

func TestClassResolution(t *testing.T) {
	resolved := mustResolve(t, `
		class Point {
			public let int x = 0;
			public function shifted(int d) int { return this.x + d; }
		}
		let p = Point();
		print p.x;
		print p.shifted(3);
	`)
	decl := resolved.Statements[1].Expr
	if decl.Value.Kind != ExprConstructorCall {
		t.Fatalf("Point() = %s, want ConstructorCall", decl.Value.Kind)
	}
	if decl.Type.Name != "Point" {
		t.Errorf("p type = %s", decl.Type.Name)
	}

	prop := resolved.Statements[2].Value
	if prop.Kind != ExprProperty || prop.Property != "x" || prop.Type != types.Int {
		t.Fatalf("p.x = %+v", prop)
	}

	call := resolved.Statements[3].Value
	if call.Kind != ExprFunctionCall || call.Function.Name != "shifted" {
		t.Fatalf("p.shifted(3) = %+v", call)
	}
	// Receiver rides first.
	if len(call.Args) != 2 || call.Args[0].Type.Name != "Point" {
		t.Fatalf("method args = %+v", call.Args)
	}
}

func TestImplicitWideningIntToFloat(t *testing.T) {
	resolved := mustResolve(t, `
		let float f = 1;
	`)
	decl := resolved.Statements[0].Expr
	if decl.Type != types.Float {
		t.Fatalf("declared type = %s, want float", decl.Type.Name)
	}
	// The literal widened to float under the Forced(float) context.
	if decl.Value.Type != types.Float {
		t.Errorf("initializer resolved to %s, want float", decl.Value.Type.Name)
	}
}

func TestReadResolvesToInt(t *testing.T) {
	resolved := mustResolve(t, "let n = read();")
	decl := resolved.Statements[0].Expr
	if decl.Value.Kind != ExprRead || decl.Type != types.Int {
		t.Fatalf("read() = %+v", decl.Value)
	}
}

func TestCrossUnitCall(t *testing.T) {
	global := export.NewGlobal()
	factory := types.NewFactory()
	ids := &idAllocator{}

	a := NewUnit(source.New("a.gly", "function twice(int v) int { return v + v; }"), factory)
	b := NewUnit(source.New("b.gly", "print twice(21);"), factory)

	a.CollectExports(global)
	b.CollectExports(global)
	complete := global.AwaitComplete()

	if resolved := a.ResolveBodies(complete, ids); resolved == nil {
		t.Fatalf("unit a failed: %v", a.Errors)
	}
	resolvedB := b.ResolveBodies(complete, ids)
	if resolvedB == nil {
		t.Fatalf("unit b failed: %v", b.Errors)
	}
	call := resolvedB.Statements[0].Value
	if call.Kind != ExprFunctionCall || call.Function.Name != "twice" {
		t.Fatalf("cross-unit call = %+v", call)
	}
}

func TestDriverRunParallel(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"main.gly": "print helper(4);",
		"util.gly": "function helper(int v) int { return v * v; }",
	}
	var paths []string
	for name, text := range files {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}

	result := Run(paths, Options{Workers: 2})
	if errs := result.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	resolved := result.GetCompiledResult()
	if resolved == nil || len(resolved) != 2 {
		t.Fatalf("GetCompiledResult = %v", resolved)
	}
}

func TestDriverRunParallelMintsClassTypes(t *testing.T) {
	// Class types are minted from every worker goroutine during stage
	// one; each declaration must still get a distinct identity.
	dir := t.TempDir()
	const units = 4
	var paths []string
	for i := 0; i < units; i++ {
		text := fmt.Sprintf(`
			class Widget%d { public let int id = %d; }
			let w = Widget%d();
			print w.id;
		`, i, i, i)
		p := filepath.Join(dir, fmt.Sprintf("unit%d.gly", i))
		if err := os.WriteFile(p, []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}

	result := Run(paths, Options{Workers: units})
	if errs := result.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if resolved := result.GetCompiledResult(); len(resolved) != units {
		t.Fatalf("GetCompiledResult = %v", resolved)
	}

	seen := map[uint64]bool{}
	for i := 0; i < units; i++ {
		typ, ok := result.Exports.LookupType(fmt.Sprintf("Widget%d", i))
		if !ok {
			t.Fatalf("Widget%d missing from merged exports", i)
		}
		if seen[typ.ID] {
			t.Fatalf("type id %d minted twice", typ.ID)
		}
		seen[typ.ID] = true
	}
}

func TestDriverFailedUnitYieldsNil(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.gly")
	bad := filepath.Join(dir, "bad.gly")
	os.WriteFile(good, []byte("let a = 1;"), 0o644)
	os.WriteFile(bad, []byte("let b = missing;"), 0o644)

	result := Run([]string{good, bad}, Options{Workers: 2})
	if result.GetCompiledResult() != nil {
		t.Fatal("GetCompiledResult should be nil when any unit fails")
	}
	if len(result.Errors()) == 0 {
		t.Fatal("expected errors from the failing unit")
	}
}

func TestDriverMissingFile(t *testing.T) {
	result := Run([]string{"/does/not/exist.gly"}, Options{})
	if result.GetCompiledResult() != nil {
		t.Fatal("missing file should fail the run")
	}
	var re *source.ReadError
	if errs := result.Errors(); len(errs) == 0 || !errors.As(errs[0], &re) {
		t.Fatalf("want source.ReadError, got %v", result.Errors())
	}
}
