// Package errors formats compiler diagnostics for a terminal: one header
// line, one location line, and one context line with a caret pointing at
// the offending token, following the layout the rest of the compiler's
// messages use.
package errors

import (
	"fmt"
	"strings"

	"github.com/glyphlang/glyphc/internal/module"
	"github.com/glyphlang/glyphc/internal/source"
)

// contextTokens is the fixed context window: up to this many tokens are
// shown on each side of the offending position.
const contextTokens = 5

// Diagnostic is one formatted compiler error: a message anchored to a
// token position within a module.
type Diagnostic struct {
	Message string
	Pos     module.Pos
}

// New creates a Diagnostic.
func New(pos module.Pos, format string, args ...any) *Diagnostic {
	return &Diagnostic{Message: fmt.Sprintf(format, args...), Pos: pos}
}

// Error implements the error interface with the full three-line format.
func (d *Diagnostic) Error() string { return d.Format() }

// collapse replaces newlines and carriage returns with single spaces so
// the context line stays on one terminal row.
func collapse(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// Format renders the diagnostic:
//
//	error: <message>
//	(at <module>:<index>)
//	<up to 5 tokens before> <offender> <up to 5 tokens after>
//	                        ^
func (d *Diagnostic) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "error: %s\n", d.Message)

	m := d.Pos.Module
	if m == nil {
		return strings.TrimSuffix(sb.String(), "\n")
	}
	fmt.Fprintf(&sb, "(at %s:%d)\n", m.File().Path(), d.Pos.Index)

	start := d.Pos.Index - contextTokens
	if start < 0 {
		start = 0
	}
	end := d.Pos.Index + contextTokens + 1
	if end > m.Len() {
		end = m.Len()
	}

	var line strings.Builder
	caretCol := -1
	for i := start; i < end; i++ {
		if i > start {
			line.WriteByte(' ')
		}
		if i == d.Pos.Index {
			caretCol = line.Len()
		}
		line.WriteString(collapse(tokenText(m, i)))
	}
	if d.Pos.Index >= m.Len() {
		// Offending position is one past the last token (unexpected EOF).
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		caretCol = line.Len()
		line.WriteString("<end>")
	}

	sb.WriteString(line.String())
	sb.WriteByte('\n')
	if caretCol >= 0 {
		sb.WriteString(strings.Repeat(" ", caretCol))
		sb.WriteByte('^')
	}
	return sb.String()
}

func tokenText(m *module.Module, i int) string {
	tok := m.Tokens()[i]
	return tok.Range.Text()
}

// AtSource formats a lexical diagnostic, which has only a byte range (no
// token index yet): header plus a path:line:col location.
func AtSource(r source.Range, message string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "error: %s\n", message)
	if r.File == nil {
		return strings.TrimSuffix(sb.String(), "\n")
	}
	line, col := r.File.LineCol(r.Offset)
	fmt.Fprintf(&sb, "(at %s:%d:%d)", r.File.Path(), line, col)
	return sb.String()
}

// FormatAll renders a slice of diagnostics separated by blank lines.
func FormatAll(diags []*Diagnostic) string {
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = d.Format()
	}
	return strings.Join(parts, "\n\n")
}
