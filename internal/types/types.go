// Package types defines the shared-by-reference Type and Function handles
// used throughout resolution. Type identity
// is pointer identity, never structural equality: two handles describing
// the "same" primitive must in fact be the one canonical instance.
package types

import (
	"sort"
	"sync/atomic"
)

// Type is a handle to a type descriptor. Always constructed through New or
// one of the primitive singletons below; never compare by value, only by
// pointer (== on *Type).
type Type struct {
	// ID is a construction-order identity number, used only where the
	// solver needs a total order over types for sorted-subset
	// intersection — never for type equality, which is
	// always pointer identity.
	ID           uint64
	Name         string
	Bits         int // static size in bits
	Implicit     []*Type
	Properties   map[string]*Type
	Methods      map[string]*Function
	IsArithmetic bool
}

var nextTypeID uint64

// New constructs a fresh Type handle. Each call produces a distinct
// identity: a user type is constructed exactly once per unique
// declaration. Stage one mints class types from every worker goroutine
// concurrently, so the id counter is atomic, like Factory.NewFunction.
func New(name string, bits int) *Type {
	id := atomic.AddUint64(&nextTypeID, 1)
	return &Type{ID: id, Name: name, Bits: bits, Properties: map[string]*Type{}, Methods: map[string]*Function{}}
}

// AddImplicit appends target to the ordered list of types this type may
// silently widen to.
func (t *Type) AddImplicit(target *Type) {
	t.Implicit = append(t.Implicit, target)
}

// ImplicitSet returns {t} ∪ t.Implicit, in stable order (t first): the
// full set of types a value of type t may occupy.
func (t *Type) ImplicitSet() []*Type {
	set := make([]*Type, 0, len(t.Implicit)+1)
	set = append(set, t)
	set = append(set, t.Implicit...)
	return set
}

// AcceptsImplicit reports whether other may be implicitly converted to t,
// i.e. t is reachable from other's implicit conversion set (or t == other).
func (t *Type) AcceptsImplicit(other *Type) bool {
	if other == t {
		return true
	}
	for _, target := range other.Implicit {
		if target == t {
			return true
		}
	}
	return false
}

// Property looks up a named property/field type.
func (t *Type) Property(name string) (*Type, bool) {
	p, ok := t.Properties[name]
	return p, ok
}

// Primitive singletons. Each is constructed exactly once, process-wide, on
// package initialization.
var (
	Bool  = New("bool", 1)
	Char  = New("char", 8)
	Int   = New("int", 64)
	Float = New("float", 64)
	Void  = New("void", 0)
	Str   = New("String", 0)
)

func init() {
	Int.IsArithmetic = true
	Float.IsArithmetic = true
	Char.IsArithmetic = true

	Int.AddImplicit(Float)
	Char.AddImplicit(Int)
	Char.AddImplicit(Float)
}

// Primitives returns every primitive singleton, in a fixed, stable order.
// Used to seed the core export set.
func Primitives() []*Type {
	return []*Type{Bool, Char, Int, Float, Void, Str}
}

// ByName performs a case-sensitive lookup over the primitive set; it is
// the only structural (name-based) comparison sanctioned by this package,
// used to resolve primitive type names written in source (and by tests),
// never for type identity checks.
func ByName(name string) (*Type, bool) {
	for _, t := range Primitives() {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// SortByIdentity returns a stable ordering over a set of types keyed by a
// synthetic identity number (their position in discovery order), used by
// the solver when it needs a canonical order for set-intersection.
func SortByIdentity(ts []*Type, identity func(*Type) int) []*Type {
	out := append([]*Type(nil), ts...)
	sort.Slice(out, func(i, j int) bool { return identity(out[i]) < identity(out[j]) })
	return out
}

// Visibility controls whether a Function or class member is visible
// outside its declaring unit.
type Visibility int

const (
	Private Visibility = iota
	Public
)

// Function is a handle to a callable signature. Identity is handle
// identity (compare with ==), exactly like Type.
type Function struct {
	ID         uint64
	Visibility Visibility
	Name       string
	ReturnType *Type
	Params     []Param
}

// Param is one entry of a Function's ordered parameter list.
type Param struct {
	Name string
	Type *Type
}

// Factory mints Function handles with process-wide-unique, monotonically
// increasing IDs.
// A single Factory is shared across all units of one compilation; stage
// one runs every unit's export collection concurrently, so
// minting is done with an atomic counter rather than a plain increment.
type Factory struct {
	next uint64
}

// NewFactory creates an empty Factory.
func NewFactory() *Factory { return &Factory{} }

// NewFunction mints a Function handle with the next id. Safe to call
// concurrently from multiple unit-resolver goroutines.
func (f *Factory) NewFunction(vis Visibility, name string, ret *Type, params []Param) *Function {
	id := atomic.AddUint64(&f.next, 1)
	return &Function{ID: id, Visibility: vis, Name: name, ReturnType: ret, Params: params}
}
