package glyphc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glyphlang/glyphc/internal/backend"
)

func writeFiles(t *testing.T, files map[string]string) []string {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for name, text := range files {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	return paths
}

func TestCompileEndToEnd(t *testing.T) {
	paths := writeFiles(t, map[string]string{
		"math.gly": `
			function square(int v) int { return v * v; }
		`,
		"main.gly": `
			let total = 0;
			for (let i = 0; i < 5; i++) { total = total + square(i); }
			print total;
		`,
	})

	var sb strings.Builder
	result := Compile(paths, Options{Jobs: 2, Adapter: &backend.StubAdapter{Out: &sb}})
	if !result.Ok() {
		t.Fatalf("compile failed: %v", result.Errors())
	}
	out := sb.String()
	if !strings.Contains(out, "FunctionDefinition square/1") {
		t.Errorf("dump missing function definition:\n%s", out)
	}
}

func TestCompileReportsAllUnits(t *testing.T) {
	paths := writeFiles(t, map[string]string{
		"a.gly": "let x = nope;",
		"b.gly": "let y = also_missing;",
	})

	result := Compile(paths, Options{Jobs: 2})
	if result.Ok() {
		t.Fatal("expected failure")
	}
	// Both units surface their errors in one run.
	if len(result.Errors()) < 2 {
		t.Fatalf("want errors from both units, got %v", result.Errors())
	}
}

func TestCompileWithoutAdapterIsFrontEndOnly(t *testing.T) {
	paths := writeFiles(t, map[string]string{
		"ok.gly": "let a = 1; print a;",
	})
	result := Compile(paths, Options{})
	if !result.Ok() {
		t.Fatalf("front-end check failed: %v", result.Errors())
	}
	if len(result.BackendErrors) != 0 {
		t.Fatalf("no adapter, no backend errors: %v", result.BackendErrors)
	}
}
