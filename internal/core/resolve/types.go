package resolve

import (
	"github.com/elixir-tools/texpand/internal/core/compile"
	"github.com/elixir-tools/texpand/internal/core/lattice"
	"github.com/elixir-tools/texpand/internal/core/specast"
	"github.com/elixir-tools/texpand/internal/core/tenv"
)

// ResolveType implements the Type Resolver. Its signature matches
// compile.ResolveType so it can be handed directly to
// compile.Config.Resolve as a method value.
func (c *Context) ResolveType(mod, name string, args []specast.Node, includePrivate bool) lattice.Value {
	key := tenv.TypeKey{Module: mod, Name: name, Arity: len(args)}

	// Cycle guard: a user type that (directly or through other types)
	// refers back to itself would otherwise recurse forever parsing the
	// same spec text; see DESIGN.md.
	if c.inFlight[key] {
		return lattice.Unknown
	}
	c.inFlight[key] = true
	defer delete(c.inFlight, key)

	if info, ok := c.Env.Types[key]; ok {
		if info.Kind != tenv.KindType && !includePrivate {
			return lattice.Unknown
		}
		node, ok := c.Env.Parser.Parse(info.Spec)
		if !ok {
			return lattice.Unknown
		}
		return c.expandTypeBody(mod, node, args, includePrivate)
	}

	kind, raw, ok := c.Env.Introspection.GetTypeSpec(mod, name, len(args))
	if !ok {
		return lattice.Unknown
	}
	if kind != tenv.KindType && !includePrivate {
		return lattice.Unknown
	}
	node, ok := c.Env.Typespec.TypeToQuoted(raw)
	if !ok {
		return lattice.Unknown
	}
	return c.expandTypeBody(mod, node, args, includePrivate)
}

// expandTypeBody resolves a ParamSpec's declared parameters against the
// syntax the type was invoked with, then hands the (possibly
// substituted) body to the Spec Parser.
func (c *Context) expandTypeBody(mod string, node specast.Node, args []specast.Node, includePrivate bool) lattice.Value {
	if ps, ok := node.(specast.ParamSpec); ok {
		bindings := make(map[string]specast.Node, len(ps.Params))
		for i, p := range ps.Params {
			if i < len(args) {
				bindings[p] = args[i]
			}
		}
		node = specast.Substitute(ps.Body, bindings)
	}
	cfg := compile.Config{
		CurrentModule:  mod,
		IncludePrivate: includePrivate,
		Resolve:        c.ResolveType,
	}
	return compile.Parse(cfg, node)
}
