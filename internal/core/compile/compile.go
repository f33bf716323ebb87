// Package compile implements the Spec Parser: it converts a typespec
// syntax tree (internal/core/specast) into a Type Lattice value
// (internal/core/lattice).
//
// Grounded on cuelang.org/go/internal/core/compile.Config/Scope: rather
// than importing the package that resolves named references, Config
// takes a callback the caller binds to its own state. Here that lets
// internal/core/resolve depend on compile (to parse fetched spec text)
// without compile depending back on resolve.
package compile

import (
	"github.com/elixir-tools/texpand/internal/core/lattice"
	"github.com/elixir-tools/texpand/internal/core/specast"
)

// ResolveType resolves a named user type reference encountered while
// parsing a spec body. args are the unexpanded syntax subtrees the type
// was invoked with; substituting a parameterized type's declared
// parameters with them is the resolver's job, not the parser's.
type ResolveType func(mod, name string, args []specast.Node, includePrivate bool) lattice.Value

// Config configures a single Parse call.
type Config struct {
	// CurrentModule is used to resolve LocalType references.
	CurrentModule string

	// IncludePrivate propagates into LocalType resolution (types within
	// CurrentModule). It never propagates across a RemoteType boundary.
	IncludePrivate bool

	// Resolve is consulted for every RemoteType/LocalType node. It must
	// be non-nil.
	Resolve ResolveType
}

// Parse converts a typespec syntax tree into a lattice value.
func Parse(cfg Config, n specast.Node) lattice.Value {
	if n == nil {
		return lattice.Unknown
	}
	switch x := n.(type) {
	case specast.Union:
		variants := make([]lattice.Value, len(x.Members))
		for i, m := range x.Members {
			variants[i] = Parse(cfg, m)
		}
		return lattice.NewUnion(variants...)

	case specast.StructLit:
		return lattice.Struct{
			Fields: parseFields(cfg, x.Fields),
			Module: lattice.Atom{A: x.Module},
		}

	case specast.MapLit:
		return lattice.Map{Fields: parseFields(cfg, x.Fields)}

	case specast.MapNullary:
		return lattice.Map{}

	case specast.TupleLit:
		elems := make([]lattice.Value, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = Parse(cfg, e)
		}
		return lattice.Tuple{Elems: elems}

	case specast.RemoteType:
		if cfg.Resolve == nil {
			return lattice.Unknown
		}
		return cfg.Resolve(x.Module, x.Name, x.Args, false)

	case specast.LocalType:
		if cfg.Resolve == nil {
			return lattice.Unknown
		}
		return cfg.Resolve(cfg.CurrentModule, x.Name, x.Args, cfg.IncludePrivate)

	case specast.NoReturn:
		return lattice.None

	case specast.Atom:
		return lattice.Atom{A: x.Name}

	case specast.Int:
		return lattice.Integer{I: x.Value}

	default:
		// Includes ParamRef/ParamSpec nodes reaching here unsubstituted,
		// and any node shape this grammar does not recognize.
		return lattice.Unknown
	}
}

// parseFields parses a StructLit/MapLit field list, keeping only
// entries whose key is an atom literal and stripping the `optional`
// wrapper (it carries no information once parsed: absence from the
// literal already means "unknown" via lattice.Unknown on lookup).
func parseFields(cfg Config, fields []specast.Field) []lattice.Field {
	var out []lattice.Field
	for _, f := range fields {
		atom, ok := f.Key.(specast.Atom)
		if !ok {
			continue
		}
		out = lattice.WithField(out, atom.Name, Parse(cfg, f.Value))
	}
	return out
}
