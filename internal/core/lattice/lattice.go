// Package lattice defines the closed set of tagged values the
// type-expansion engine computes over: both the symbolic binding
// expressions fed into an expansion and the expanded types it produces
// are values of this same vocabulary.
package lattice

import (
	"sort"
	"strconv"
	"strings"
)

// Value is a node in the type lattice. It is a closed sum type: every
// concrete type in this package implements it, and nothing outside the
// package may.
type Value interface {
	// String renders a canonical, deterministic textual form. It is used
	// for visitation-stack membership and debug tracing — never for
	// anything user-facing. (Union collapsing compares with Equal.)
	String() string

	sealed()
}

// Absorbing and identity elements.
//
// None is the absurd type: proven impossible. It absorbs into any
// container that references it.
//
// Unknown is the absent lattice value ("Nil" in the design notes,
// renamed here to avoid colliding with Go's nil): unknown but plausible.
// It is the identity element for Combine.
var (
	None    Value = noneValue{}
	Unknown Value = unknownValue{}
)

type noneValue struct{}

func (noneValue) sealed()        {}
func (noneValue) String() string { return "none()" }

type unknownValue struct{}

func (unknownValue) sealed()        {}
func (unknownValue) String() string { return "unknown()" }

// IsNone reports whether v is the absorbing None element.
func IsNone(v Value) bool {
	_, ok := v.(noneValue)
	return ok
}

// IsUnknown reports whether v is the identity Unknown element.
func IsUnknown(v Value) bool {
	_, ok := v.(unknownValue)
	return ok
}

// Atom is the singleton atom value named A (e.g. :ok, :error, nil,
// true, false are all atoms in the host language).
type Atom struct{ A string }

func (Atom) sealed()          {}
func (a Atom) String() string { return ":" + a.A }

// Integer is the singleton integer value I. Integer *literals* are
// always singletons; the broader "integer" *type* has no literal and is
// represented as Unknown (see the Spec Parser).
type Integer struct{ I int64 }

func (Integer) sealed()          {}
func (i Integer) String() string { return strconv.FormatInt(i.I, 10) }

// Tuple is a tuple of known arity; every position carries a lattice
// value.
type Tuple struct{ Elems []Value }

func (Tuple) sealed() {}
func (t Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Field is one association of an ordered map/struct field list. Order
// is insertion order; it is irrelevant to equality but preserved for
// iteration.
type Field struct {
	Key   string
	Value Value
}

// Map is a map whose statically known keys are atoms. Updated, when
// non-nil, is an unexpanded base expression to merge Fields over; it is
// always nil in a fully expanded Map.
type Map struct {
	Fields  []Field
	Updated Value
}

func (Map) sealed() {}
func (m Map) String() string {
	return "%{" + fieldsString(m.Fields) + "}"
}

// Struct is a Map additionally tagged with the defining module, which
// may be Unknown (module not yet resolved), or any Value expression
// naming the module before expansion. A Struct with a known module atom
// always carries a "__struct__" field equal to Atom{Module}.
type Struct struct {
	Fields  []Field
	Module  Value // Atom, or Unknown/None/an unresolved expression
	Updated Value
}

func (Struct) sealed() {}
func (s Struct) String() string {
	mod := "?"
	if s.Module != nil {
		mod = s.Module.String()
	}
	return "%" + mod + "{" + fieldsString(s.Fields) + "}"
}

func fieldsString(fields []Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Key + ": " + f.Value.String()
	}
	return strings.Join(parts, ", ")
}

// FieldOf looks up a key; ok is false if absent.
func FieldOf(fields []Field, key string) (Value, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// WithField returns a copy of fields with key set to v, preserving
// insertion order and overwriting any existing entry for key
// (last-write-wins).
func WithField(fields []Field, key string, v Value) []Field {
	out := make([]Field, 0, len(fields)+1)
	found := false
	for _, f := range fields {
		if f.Key == key {
			out = append(out, Field{key, v})
			found = true
			continue
		}
		out = append(out, f)
	}
	if !found {
		out = append(out, Field{key, v})
	}
	return out
}

// WithoutField returns a copy of fields with key removed, if present.
func WithoutField(fields []Field, key string) []Field {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		if f.Key != key {
			out = append(out, f)
		}
	}
	return out
}

// SortedKeys returns the field keys of a and b, deduplicated, in a
// deterministic (sorted) order. Used by the Combiner, where iteration
// order does not matter but determinism in tests does.
func SortedKeys(a, b []Field) []string {
	seen := map[string]bool{}
	var keys []string
	for _, f := range a {
		if !seen[f.Key] {
			seen[f.Key] = true
			keys = append(keys, f.Key)
		}
	}
	for _, f := range b {
		if !seen[f.Key] {
			seen[f.Key] = true
			keys = append(keys, f.Key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Union is a disjunction. NewUnion normalizes by collapsing equal
// variants — if all variants are structurally equal, it returns that
// single variant rather than a Union of one.
type Union struct{ Variants []Value }

func (Union) sealed() {}
func (u Union) String() string {
	parts := make([]string, len(u.Variants))
	for i, v := range u.Variants {
		parts[i] = v.String()
	}
	return strings.Join(parts, " | ")
}

// NewUnion builds a Union, collapsing duplicate variants (by structural
// equality) and collapsing to the bare variant when only one remains.
func NewUnion(variants ...Value) Value {
	var out []Value
	for _, v := range variants {
		dup := false
		for _, o := range out {
			if Equal(o, v) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return Unknown
	}
	if len(out) == 1 {
		return out[0]
	}
	return Union{out}
}

// Intersection is a conjunction; it is eliminated by the Combiner during
// expansion and should never appear in fully expanded output.
type Intersection struct{ Variants []Value }

func (Intersection) sealed() {}
func (i Intersection) String() string {
	parts := make([]string, len(i.Variants))
	for idx, v := range i.Variants {
		parts[idx] = v.String()
	}
	return strings.Join(parts, " & ")
}

// Variable is a reference to a local variable slot by name.
type Variable struct{ Name string }

func (Variable) sealed()          {}
func (v Variable) String() string { return v.Name }

// Attribute is a reference to a module attribute by name.
type Attribute struct{ Name string }

func (Attribute) sealed()          {}
func (a Attribute) String() string { return "@" + a.Name }

// Call is a remote call: Target is a lattice value (typically an Atom
// naming a module, but may be any expression that expands to one).
type Call struct {
	Target Value
	Fun    string
	Args   []Value
}

func (Call) sealed() {}
func (c Call) String() string {
	return c.Target.String() + "." + c.Fun + "(" + argsString(c.Args) + ")"
}

// LocalCall is an unqualified call, resolved through the current
// module, then imports, then built-in modules.
type LocalCall struct {
	Fun  string
	Args []Value
}

func (LocalCall) sealed() {}
func (c LocalCall) String() string {
	return c.Fun + "(" + argsString(c.Args) + ")"
}

func argsString(args []Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

// TupleNth is a zero-based tuple projection.
type TupleNth struct {
	Tuple Value
	N     int
}

func (TupleNth) sealed() {}
func (t TupleNth) String() string {
	return "elem(" + t.Tuple.String() + ", " + strconv.Itoa(t.N) + ")"
}

// Equal reports whether a and b are structurally equal. Field order is
// irrelevant: two Maps/Structs with the same key/value associations in
// different orders are equal.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case noneValue:
		_, ok := b.(noneValue)
		return ok
	case unknownValue:
		_, ok := b.(unknownValue)
		return ok
	case Atom:
		y, ok := b.(Atom)
		return ok && x.A == y.A
	case Integer:
		y, ok := b.(Integer)
		return ok && x.I == y.I
	case Tuple:
		y, ok := b.(Tuple)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !Equal(x.Elems[i], y.Elems[i]) {
				return false
			}
		}
		return true
	case Map:
		y, ok := b.(Map)
		return ok && fieldsEqual(x.Fields, y.Fields) && valueEqualNilable(x.Updated, y.Updated)
	case Struct:
		y, ok := b.(Struct)
		if !ok || !fieldsEqual(x.Fields, y.Fields) || !valueEqualNilable(x.Updated, y.Updated) {
			return false
		}
		return valueEqualNilable(x.Module, y.Module)
	case Union:
		y, ok := b.(Union)
		if !ok || len(x.Variants) != len(y.Variants) {
			return false
		}
		for i := range x.Variants {
			if !Equal(x.Variants[i], y.Variants[i]) {
				return false
			}
		}
		return true
	case Intersection:
		y, ok := b.(Intersection)
		if !ok || len(x.Variants) != len(y.Variants) {
			return false
		}
		for i := range x.Variants {
			if !Equal(x.Variants[i], y.Variants[i]) {
				return false
			}
		}
		return true
	case Variable:
		y, ok := b.(Variable)
		return ok && x.Name == y.Name
	case Attribute:
		y, ok := b.(Attribute)
		return ok && x.Name == y.Name
	case Call:
		y, ok := b.(Call)
		return ok && x.Fun == y.Fun && Equal(x.Target, y.Target) && argsEqual(x.Args, y.Args)
	case LocalCall:
		y, ok := b.(LocalCall)
		return ok && x.Fun == y.Fun && argsEqual(x.Args, y.Args)
	case TupleNth:
		y, ok := b.(TupleNth)
		return ok && x.N == y.N && Equal(x.Tuple, y.Tuple)
	default:
		return false
	}
}

func valueEqualNilable(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Equal(a, b)
}

func fieldsEqual(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}
	for _, fa := range a {
		fb, ok := FieldOf(b, fa.Key)
		if !ok || !Equal(fa.Value, fb) {
			return false
		}
	}
	return true
}

func argsEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
