package resolver

import (
	"fmt"

	"github.com/glyphlang/glyphc/internal/module"
)

// UnknownNameError reports a reference to a variable, function, or type
// that no scope, unit, or export table defines.
type UnknownNameError struct {
	Name  string
	What  string // "variable", "function", "type", "property"
	Range module.Range
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.What, e.Name)
}

// NotAssignableError reports an assignment whose left side is not a
// variable, declaration, or property.
type NotAssignableError struct {
	Range module.Range
}

func (e *NotAssignableError) Error() string {
	return "left side of assignment is not assignable"
}

// ArgumentCountError reports a call with the wrong number of arguments.
type ArgumentCountError struct {
	Function string
	Want     int
	Got      int
	Range    module.Range
}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("%s expects %d argument(s), got %d", e.Function, e.Want, e.Got)
}

// TypeResolutionError wraps a solver diagnostic with the range of the
// expression it failed on.
type TypeResolutionError struct {
	Range module.Range
	Cause error
}

func (e *TypeResolutionError) Error() string {
	return e.Cause.Error()
}

func (e *TypeResolutionError) Unwrap() error { return e.Cause }

// MisplacedStatementError reports a statement used outside its legal
// context, e.g. `return` at unit top level or `break` outside a loop.
type MisplacedStatementError struct {
	What  string
	Range module.Range
}

func (e *MisplacedStatementError) Error() string {
	return fmt.Sprintf("%s is not allowed here", e.What)
}
