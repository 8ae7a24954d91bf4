package resolver

import (
	"sync/atomic"

	"github.com/glyphlang/glyphc/internal/types"
)

// Variable is one named binding within a scope.
type Variable struct {
	ID   uint64
	Name string
	Type *types.Type
}

// idAllocator mints globally-unique variable ids. One allocator is shared
// by every unit of a compilation; stage two runs units concurrently, so
// minting is atomic.
type idAllocator struct {
	next uint64
}

func (a *idAllocator) nextID() uint64 {
	return atomic.AddUint64(&a.next, 1)
}

// scope is one lexical nesting level: a name→Variable map chained to its
// parent. Lookup walks outward; declaration always lands in the innermost
// level, shadowing any outer binding of the same name.
type scope struct {
	parent *scope
	vars   map[string]*Variable

	// enclosing is the function whose body this scope sits in, nil at
	// unit top level. Return-statement constraint seeding reads it.
	enclosing *types.Function
}

func newScope(parent *scope) *scope {
	s := &scope{parent: parent, vars: map[string]*Variable{}}
	if parent != nil {
		s.enclosing = parent.enclosing
	}
	return s
}

func (s *scope) declare(v *Variable) {
	s.vars[v.Name] = v
}

func (s *scope) lookup(name string) (*Variable, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}
