package backend

import (
	"strings"
	"testing"

	"github.com/glyphlang/glyphc/internal/resolver"
	"github.com/glyphlang/glyphc/internal/types"
)

func TestHandoffCollectsParamIDs(t *testing.T) {
	factory := types.NewFactory()
	fn := factory.NewFunction(types.Public, "add", types.Int, []types.Param{
		{Name: "a", Type: types.Int},
		{Name: "b", Type: types.Int},
	})

	ast := &resolver.ResolvedAST{
		ID: 7,
		Statements: []*resolver.Statement{
			{
				Kind:     resolver.StmtFunctionDefinition,
				Function: fn,
				ParamIDs: []uint64{11, 12},
				Statements: []*resolver.Statement{
					{Kind: resolver.StmtScope},
				},
			},
		},
	}

	h := NewHandoff(ast)
	if h.EntryName != "main_7" {
		t.Errorf("entry name = %q", h.EntryName)
	}
	if got := h.ParamIDs[fn.ID]; len(got) != 2 || got[0] != 11 || got[1] != 12 {
		t.Errorf("param ids = %v", got)
	}
}

func TestStubAdapterDump(t *testing.T) {
	var sb strings.Builder
	a := &StubAdapter{Out: &sb}

	ast := &resolver.ResolvedAST{
		ID: 3,
		Statements: []*resolver.Statement{
			{Kind: resolver.StmtExpr, Expr: &resolver.Expr{Kind: resolver.ExprLiteral, Type: types.Int}},
		},
	}
	if err := a.Compile(NewHandoff(ast)); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	if !strings.Contains(out, "unit 3 entry main_3") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, "Expr Literal: int") {
		t.Errorf("missing statement line: %q", out)
	}
}

func TestDefaultLinkerPaths(t *testing.T) {
	lp := DefaultLinkerPaths("")
	if !strings.HasPrefix(lp.Linker, "ld") || !strings.HasPrefix(lp.LLC, "llc") {
		t.Errorf("unexpected defaults: %+v", lp)
	}
	dir := DefaultLinkerPaths("/opt/llvm/bin")
	if !strings.HasPrefix(dir.LLC, "/opt/llvm/bin/") {
		t.Errorf("dir not joined: %+v", dir)
	}
}
