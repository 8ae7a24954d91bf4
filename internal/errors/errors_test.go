package errors

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/glyphlang/glyphc/internal/lexer"
	"github.com/glyphlang/glyphc/internal/module"
	"github.com/glyphlang/glyphc/internal/source"
)

func moduleOf(t *testing.T, text string) *module.Module {
	t.Helper()
	file := source.New("demo.gly", text)
	tokens, errs := lexer.New(file).Lex()
	if len(errs) > 0 {
		t.Fatalf("lex: %v", errs)
	}
	return module.New(file, tokens)
}

func TestFormatThreeLines(t *testing.T) {
	m := moduleOf(t, "let a = b + missing / c ;")
	// Token indices: let a = b + missing / c ;  →  missing is index 5.
	d := New(m.Pos(5), "unknown variable %q", "missing")

	out := d.Format()
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("want 4 lines (header, location, context, caret), got %d:\n%s", len(lines), out)
	}
	if lines[0] != `error: unknown variable "missing"` {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "demo.gly:5") {
		t.Errorf("location = %q", lines[1])
	}
	caretCol := strings.Index(lines[3], "^")
	if caretCol < 0 {
		t.Fatal("no caret")
	}
	if got := lines[2][caretCol:]; !strings.HasPrefix(got, "missing") {
		t.Errorf("caret points at %q, want the offending token", got)
	}
}

func TestContextWindowIsFiveTokens(t *testing.T) {
	m := moduleOf(t, "a b c d e f g h i j k l m n ;")
	d := New(m.Pos(7), "middle")
	context := strings.Split(d.Format(), "\n")[2]
	fields := strings.Fields(context)
	// Five before + offender + five after.
	if len(fields) != 11 {
		t.Errorf("context shows %d tokens, want 11: %q", len(fields), context)
	}
}

func TestNewlinesCollapsed(t *testing.T) {
	m := moduleOf(t, "\"multi\nline\" x ;")
	d := New(m.Pos(1), "after a multi-line string")
	context := strings.Split(d.Format(), "\n")
	// Header, location, context, caret: the embedded newline inside the
	// string token must not add extra lines.
	if len(context) != 4 {
		t.Errorf("collapsed output has %d lines:\n%s", len(context), d.Format())
	}
}

func TestEndOfModulePosition(t *testing.T) {
	m := moduleOf(t, "let x =")
	d := New(m.Pos(m.Len()), "unexpected end of input")
	out := d.Format()
	if !strings.Contains(out, "<end>") {
		t.Errorf("EOF diagnostic should mark the end position:\n%s", out)
	}
}

func TestFormatSnapshots(t *testing.T) {
	m := moduleOf(t, "print x + y ;")
	snaps.MatchSnapshot(t, New(m.Pos(3), "unknown variable \"y\"").Format())
	snaps.MatchSnapshot(t, FormatAll([]*Diagnostic{
		New(m.Pos(1), "first"),
		New(m.Pos(3), "second"),
	}))
}

func TestAtSource(t *testing.T) {
	file := source.New("demo.gly", "let x = @;")
	out := AtSource(source.NewRange(source.Pos{File: file, Offset: 8}, 1), "invalid character '@'")
	if !strings.Contains(out, "demo.gly:1:9") {
		t.Errorf("AtSource location wrong:\n%s", out)
	}
}
