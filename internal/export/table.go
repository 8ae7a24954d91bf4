// Package export implements the per-unit export table and the
// multi-threaded global export-table protocol: N independent unit
// resolvers each contribute their exported symbols to a shared table,
// then block on a barrier that completes exactly once, when the last
// writer finishes.
package export

import (
	"fmt"

	"github.com/glyphlang/glyphc/internal/types"
)

// ConflictingTypeError reports two exported types sharing one name.
type ConflictingTypeError struct {
	Existing *types.Type
	New      *types.Type
}

func (e *ConflictingTypeError) Error() string {
	return fmt.Sprintf("conflicting definitions of type %s", e.New.Name)
}

// ConflictingFunctionError reports two exported functions sharing one name.
type ConflictingFunctionError struct {
	Existing *types.Function
	New      *types.Function
}

func (e *ConflictingFunctionError) Error() string {
	return fmt.Sprintf("conflicting definitions of function %s", e.New.Name)
}

// Table is the mutable per-unit export table: exported type-name → Type
// and exported function-name → Function. Mutable only while its unit's
// writer is alive; the global merge freezes it.
type Table struct {
	classes   map[string]*types.Type
	functions map[string]*types.Function
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{
		classes:   map[string]*types.Type{},
		functions: map[string]*types.Function{},
	}
}

// AddExportedType inserts t under its name, detecting name collisions on
// insert.
func (t *Table) AddExportedType(typ *types.Type) error {
	if existing, ok := t.classes[typ.Name]; ok {
		return &ConflictingTypeError{Existing: existing, New: typ}
	}
	t.classes[typ.Name] = typ
	return nil
}

// AddExportedFunction inserts fn under its name, detecting collisions.
func (t *Table) AddExportedFunction(fn *types.Function) error {
	if existing, ok := t.functions[fn.Name]; ok {
		return &ConflictingFunctionError{Existing: existing, New: fn}
	}
	t.functions[fn.Name] = fn
	return nil
}

// Merge appends other's classes and functions into t, reporting every
// name collision encountered.
func (t *Table) Merge(other *Table) []error {
	var errs []error
	for _, typ := range other.classes {
		if err := t.AddExportedType(typ); err != nil {
			errs = append(errs, err)
		}
	}
	for _, fn := range other.functions {
		if err := t.AddExportedFunction(fn); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// LookupType returns the exported type registered under name.
func (t *Table) LookupType(name string) (*types.Type, bool) {
	typ, ok := t.classes[name]
	return typ, ok
}

// LookupFunction returns the exported function registered under name.
func (t *Table) LookupFunction(name string) (*types.Function, bool) {
	fn, ok := t.functions[name]
	return fn, ok
}

// Types returns the number of exported types.
func (t *Table) Types() int { return len(t.classes) }

// Functions returns the number of exported functions.
func (t *Table) Functions() int { return len(t.functions) }

// coreTable builds the process-wide core export set: the primitive type
// singletons. Rebuilt per merge because the
// merged table takes ownership of the map entries.
func coreTable() *Table {
	core := NewTable()
	for _, t := range types.Primitives() {
		core.classes[t.Name] = t
	}
	return core
}
