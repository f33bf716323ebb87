// Package specast is the concrete syntax tree fed to the Spec Parser:
// the shape a typespec takes once the host language's own parser (the
// "String-to-syntax" provider, owned outside this engine) has turned
// stored spec text, or the host's own introspected spec term, into a
// tree this package's consumer (internal/core/compile) can walk.
//
// It deliberately does not try to be a faithful Elixir AST — only the
// handful of shapes the Spec Parser grammar cares about.
package specast

// Node is any node in a typespec syntax tree.
type Node interface {
	sealed()
}

// Union is `A | B | ...`.
type Union struct{ Members []Node }

func (Union) sealed() {}

// StructLit is `%ModAlias{field: T, ...}`. Module is the normalized
// module name (a bare atom or the dotted name of an alias list both
// collapse to this single string at syntax-tree construction time).
type StructLit struct {
	Module string
	Fields []Field
}

func (StructLit) sealed() {}

// MapLit is `%{field: T, ...}` or `%{optional(field) => T, ...}`.
type MapLit struct{ Fields []Field }

func (MapLit) sealed() {}

// Field is one key/value pair of a StructLit or MapLit. Optional marks
// a `optional(key) => value` entry; it carries no semantic weight for
// StructLit (struct fields cannot be optional) but is accepted there
// too so both literal kinds can share one Field shape.
type Field struct {
	Key      Node // only Atom keys are kept by the Spec Parser; others are skipped
	Value    Node
	Optional bool
}

// MapNullary is the nullary `map()` type.
type MapNullary struct{}

func (MapNullary) sealed() {}

// TupleLit is `{T1, ..., Tn}`.
type TupleLit struct{ Elems []Node }

func (TupleLit) sealed() {}

// RemoteType is `Mod.Name(args...)`.
type RemoteType struct {
	Module string
	Name   string
	Args   []Node
}

func (RemoteType) sealed() {}

// LocalType is `Name(args...)`, resolved against the current module.
type LocalType struct {
	Name string
	Args []Node
}

func (LocalType) sealed() {}

// NoReturn is `no_return()`.
type NoReturn struct{}

func (NoReturn) sealed() {}

// Atom is an atom literal.
type Atom struct{ Name string }

func (Atom) sealed() {}

// Int is an integer literal.
type Int struct{ Value int64 }

func (Int) sealed() {}

// ParamRef is a reference, inside a parameterized type's body, to one
// of that type's declared parameters. It only ever appears nested
// inside a ParamSpec.Body and is substituted away by the Type Resolver
// before the body reaches the Spec Parser proper.
type ParamRef struct{ Name string }

func (ParamRef) sealed() {}

// ParamSpec wraps the body of a parameterized user type declaration,
// i.e. a spec of the form `name(params) when params :: ast`. Params
// names the declared parameters in order; Body is the `ast` half, which
// may contain ParamRef nodes naming them.
type ParamSpec struct {
	Params []string
	Body   Node
}

func (ParamSpec) sealed() {}

// Substitute returns a copy of n with every ParamRef whose name is a key
// of bindings replaced by the bound subtree. It is the mechanical half
// of resolving a ParamSpec: the caller first matches declared
// parameters positionally against the arguments a type was invoked
// with, then calls Substitute on the body.
func Substitute(n Node, bindings map[string]Node) Node {
	switch x := n.(type) {
	case ParamRef:
		if b, ok := bindings[x.Name]; ok {
			return b
		}
		return x
	case Union:
		return Union{Members: substituteAll(x.Members, bindings)}
	case StructLit:
		return StructLit{Module: x.Module, Fields: substituteFields(x.Fields, bindings)}
	case MapLit:
		return MapLit{Fields: substituteFields(x.Fields, bindings)}
	case TupleLit:
		return TupleLit{Elems: substituteAll(x.Elems, bindings)}
	case RemoteType:
		return RemoteType{Module: x.Module, Name: x.Name, Args: substituteAll(x.Args, bindings)}
	case LocalType:
		return LocalType{Name: x.Name, Args: substituteAll(x.Args, bindings)}
	default:
		return n
	}
}

func substituteAll(nodes []Node, bindings map[string]Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = Substitute(n, bindings)
	}
	return out
}

func substituteFields(fields []Field, bindings map[string]Node) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = Field{Key: f.Key, Value: Substitute(f.Value, bindings), Optional: f.Optional}
	}
	return out
}
