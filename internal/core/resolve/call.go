package resolve

import (
	"github.com/elixir-tools/texpand/internal/core/compile"
	"github.com/elixir-tools/texpand/internal/core/lattice"
	"github.com/elixir-tools/texpand/internal/core/tenv"
)

// ResolveCall implements the Call Resolver. target has already been
// expanded by the caller (the Expander's Call/LocalCall dispatch); args
// have not — built-ins decide case by case whether to expand each one.
func (c *Context) ResolveCall(target lattice.Value, fun string, args []lattice.Value, includePrivate bool) lattice.Value {
	if lattice.IsUnknown(target) {
		return lattice.Unknown
	}
	if lattice.IsNone(target) {
		return lattice.None
	}

	switch t := target.(type) {
	case lattice.Map:
		if len(args) != 0 {
			return lattice.None
		}
		return c.fieldAccess(t.Fields, fun)

	case lattice.Struct:
		if len(args) != 0 {
			return lattice.None
		}
		return c.fieldAccess(t.Fields, fun)

	case lattice.Atom:
		if v, handled := c.builtin(t.A, fun, args); handled {
			return v
		}
		if isNilTrueFalse(t.A) || isNilTrueFalse(fun) {
			return lattice.Unknown
		}
		return c.dispatch(t.A, fun, args, includePrivate)

	default:
		return lattice.Unknown
	}
}

func isNilTrueFalse(a string) bool {
	return a == "nil" || a == "true" || a == "false"
}

func (c *Context) fieldAccess(fields []lattice.Field, fun string) lattice.Value {
	v, ok := lattice.FieldOf(fields, fun)
	if !ok {
		return lattice.Unknown
	}
	return c.expand(v)
}

// dispatch tries metadata first, introspection second.
func (c *Context) dispatch(mod, fun string, args []lattice.Value, includePrivate bool) lattice.Value {
	if v, matched := c.metadataCall(mod, fun, len(args), includePrivate); matched {
		return v
	}
	return c.introspectionCall(mod, fun, len(args), includePrivate)
}

// metadataCall returns matched=false only when no ModFunInfo entry exists for (mod, fun) at all, the entry is
// not visible to this caller, or no declared arity clause tolerates the
// called arity — i.e. metadata has no opinion on this call whatsoever. Once metadata owns (mod, fun) at the
// resolved arity, it is authoritative even if that entry carries no
// spec (a user definition always shadows a host one of the same name;
// see DESIGN.md for why this reading was chosen over falling through to
// introspection in that case too).
func (c *Context) metadataCall(mod, fun string, calledArity int, includePrivate bool) (lattice.Value, bool) {
	info, ok := c.Env.LookupModFun(mod, fun)
	if !ok {
		return nil, false
	}
	if !info.Visible(includePrivate) {
		return nil, false
	}
	declaredArity, ok := arityFor(info, calledArity)
	if !ok {
		return nil, false
	}

	texts, ok := c.Env.Specs[tenv.SpecKey{Module: mod, Fun: fun, Arity: declaredArity}]
	if !ok || len(texts) == 0 {
		return lattice.Unknown, true
	}

	cfg := compile.Config{CurrentModule: mod, IncludePrivate: includePrivate, Resolve: c.ResolveType}
	variants := make([]lattice.Value, 0, len(texts))
	for _, text := range texts {
		node, ok := c.Env.Parser.Parse(text)
		if !ok {
			variants = append(variants, lattice.Unknown)
			continue
		}
		variants = append(variants, compile.Parse(cfg, node))
	}
	// The parsed return type is expanded like any other value, so a
	// struct it names carries its __struct__ tag.
	return c.expand(lattice.NewUnion(variants...)), true
}

func arityFor(info tenv.ModFunInfo, called int) (int, bool) {
	for _, a := range info.Arities {
		if a.Tolerates(called) {
			return a.Declared, true
		}
	}
	return 0, false
}

// introspectionCall falls through to the host's raw introspection data
// when metadata has no opinion on this call.
func (c *Context) introspectionCall(mod, fun string, calledArity int, includePrivate bool) lattice.Value {
	resolvedArity, ok := c.resolveIntrospectionArity(mod, fun, calledArity)
	if !ok {
		return lattice.Unknown
	}

	raws, ok := c.Env.Introspection.GetSpec(mod, fun, resolvedArity)
	if !ok || len(raws) == 0 {
		return lattice.Unknown
	}

	cfg := compile.Config{CurrentModule: mod, IncludePrivate: includePrivate, Resolve: c.ResolveType}
	variants := make([]lattice.Value, 0, len(raws))
	for _, raw := range raws {
		node, ok := c.Env.Typespec.SpecToQuoted(fun, raw)
		if !ok {
			variants = append(variants, lattice.Unknown)
			continue
		}
		variants = append(variants, compile.Parse(cfg, node))
	}
	return c.expand(lattice.NewUnion(variants...))
}

func (c *Context) resolveIntrospectionArity(mod, fun string, called int) (int, bool) {
	docs, ok := c.Env.Introspection.Docs(mod)
	if !ok {
		if c.Env.Introspection.FunctionExported(mod, fun, called) {
			return called, true
		}
		return 0, false
	}
	for _, d := range docs {
		if d.Fun == fun && called <= d.Arity && called >= d.Arity-d.Defaults {
			return d.Arity, true
		}
	}
	return 0, false
}
