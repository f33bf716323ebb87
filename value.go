package texpand

import "github.com/elixir-tools/texpand/internal/core/lattice"

// Value is a node in the type lattice: both the binding expression an
// Expand call is given and the expanded type it returns are values of
// this vocabulary.
type Value = lattice.Value

// None and Unknown are the lattice's absorbing and identity elements.
var (
	None    = lattice.None
	Unknown = lattice.Unknown
)

func IsNone(v Value) bool    { return lattice.IsNone(v) }
func IsUnknown(v Value) bool { return lattice.IsUnknown(v) }

// Equal reports whether a and b are structurally equal.
func Equal(a, b Value) bool { return lattice.Equal(a, b) }

type (
	Atom         = lattice.Atom
	Integer      = lattice.Integer
	Tuple        = lattice.Tuple
	Field        = lattice.Field
	Map          = lattice.Map
	Struct       = lattice.Struct
	Union        = lattice.Union
	Intersection = lattice.Intersection
	Variable     = lattice.Variable
	Attribute    = lattice.Attribute
	Call         = lattice.Call
	LocalCall    = lattice.LocalCall
	TupleNth     = lattice.TupleNth
)

// NewUnion builds a Union, collapsing duplicate and singleton variants.
func NewUnion(variants ...Value) Value { return lattice.NewUnion(variants...) }

// WithField, WithoutField and FieldOf manipulate a Map/Struct's field
// list without mutating the slice passed in.
func WithField(fields []Field, key string, v Value) []Field {
	return lattice.WithField(fields, key, v)
}

func WithoutField(fields []Field, key string) []Field {
	return lattice.WithoutField(fields, key)
}

func FieldOf(fields []Field, key string) (Value, bool) {
	return lattice.FieldOf(fields, key)
}
