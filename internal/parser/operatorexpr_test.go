package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glyphlang/glyphc/internal/ast"
	"github.com/glyphlang/glyphc/internal/lexer"
	"github.com/glyphlang/glyphc/internal/module"
	"github.com/glyphlang/glyphc/internal/source"
)

func moduleOf(t *testing.T, text string) *module.Module {
	t.Helper()
	file := source.New("test.gly", text)
	tokens, errs := lexer.New(file).Lex()
	if len(errs) > 0 {
		t.Fatalf("lex %q: %v", text, errs)
	}
	return module.New(file, tokens)
}

// sexpr renders an expression tree in operator-prefix form for shape
// assertions: `a + b / c` → `(+ a (/ b c))`.
func sexpr(sym *ast.Symbol) string {
	switch sym.Kind {
	case ast.KindOperator:
		parts := make([]string, 0, len(sym.Operands)+1)
		parts = append(parts, sym.Operator.Text())
		for _, o := range sym.Operands {
			parts = append(parts, sexpr(o))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ast.KindVariable:
		return sym.Name.Token().Text()
	default:
		return fmt.Sprintf("<%s>", sym.Kind)
	}
}

func TestOperatorExpressionShapes(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"a + b", "(+ a b)"},
		{"a + b + c", "(+ (+ a b) c)"},
		{"a / b + c", "(+ (/ a b) c)"},
		{"a + b / c", "(+ a (/ b c))"},
		{"a++", "(++ a)"},
		{"a++ / b", "(/ (++ a) b)"},
		{"a + b++ / c", "(+ a (/ (++ b) c))"},
		// A trailing operand after a complete unary expression is not
		// part of the expression; the valid prefix wins.
		{"a ++ b", "(++ a)"},
	}

	for _, tc := range cases {
		m := moduleOf(t, tc.input)
		got, err := Expression(m.Pos(0))
		if err != nil {
			t.Errorf("%q: unexpected error %v", tc.input, err)
			continue
		}
		if s := sexpr(got.Value); s != tc.want {
			t.Errorf("%q: got %s, want %s", tc.input, s, tc.want)
		}
	}
}

func TestOperatorExpressionRejects(t *testing.T) {
	// Inputs that contain no valid operator expression of length >= 2.
	inputs := []string{
		"a b",  // two operands
		"+",    // single operator
		"+ +",  // two operators
		"a +",  // binary with one operand
		"++",   // unary only
	}
	for _, input := range inputs {
		m := moduleOf(t, input)
		if got, err := Expression(m.Pos(0)); err == nil && got.Value.Kind == ast.KindOperator {
			t.Errorf("%q: expected failure, got %s", input, sexpr(got.Value))
		} else if err == nil && got.Range.Length > 1 {
			t.Errorf("%q: expected failure or single-atom match, got range %d", input, got.Range.Length)
		}
	}

	// A single operand is not an operator expression: the builder itself
	// must reject it even though the expression matcher would hand the
	// bare atom through.
	m := moduleOf(t, "a")
	atom, err := Expression(m.Pos(0))
	if err != nil {
		t.Fatalf("single atom should parse as an expression: %v", err)
	}
	comps := []Component{operandComponent(atom.Value)}
	if _, _, err := BuildOperatorExpression(comps, m.Pos(0)); err == nil {
		t.Error("builder accepted a single operand")
	}
}

func TestBuilderRangeSpansOperandsAndOperator(t *testing.T) {
	m := moduleOf(t, "a + b")
	got, err := Expression(m.Pos(0))
	if err != nil {
		t.Fatal(err)
	}
	if got.Range.Start != 0 || got.Range.Length != 3 {
		t.Errorf("range = [%d, %d), want [0, 3)", got.Range.Start, got.Range.Start+got.Range.Length)
	}
	if got.Value.Range.Length != 3 {
		t.Errorf("tree root range length = %d, want 3", got.Value.Range.Length)
	}
}

func TestPrefixTrimStopsAtSuffix(t *testing.T) {
	m := moduleOf(t, "a ++ b")
	got, err := Expression(m.Pos(0))
	if err != nil {
		t.Fatal(err)
	}
	// Only `a ++` is consumed; `b` stays for the next matcher.
	if got.Range.Length != 2 {
		t.Errorf("consumed %d tokens, want 2", got.Range.Length)
	}
}
