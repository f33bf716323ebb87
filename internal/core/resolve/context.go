// Package resolve implements the Call Resolver (including its
// structural built-ins) and the Type Resolver.
//
// Both need to recursively expand sub-expressions (e.g. a map argument
// before reading one of its fields), but the Expander that does that
// also needs to call back into this package for every Call/LocalCall
// node it dispatches. To avoid an import cycle between the driver and
// its resolvers, this package never imports internal/core/expand: the
// Expander instead hands this package a plain callback, exactly as
// cuelang.org/go/internal/core/compile takes a Scope instead of
// importing the runtime that satisfies it.
package resolve

import (
	"github.com/elixir-tools/texpand/internal/core/lattice"
	"github.com/elixir-tools/texpand/internal/core/tenv"
)

// Context bundles what the resolvers need for one expansion call:
// the Environment, a callback to (recursively) expand a sub-expression
// through the visitation stack the Expander owns, and a set tracking
// user types currently being resolved.
//
// The type-resolution cycle guard is not spelled out in the
// specification the way the Expander's visitation stack is — see
// DESIGN.md's Open Questions for why one is still required and how it
// is scoped.
type Context struct {
	Env    *tenv.Environment
	Expand func(lattice.Value) lattice.Value

	inFlight map[tenv.TypeKey]bool
}

// NewContext creates a resolver Context bound to env and an Expand
// callback. Callers construct one fresh Context per top-level Expand
// invocation, mirroring the fresh visitation stack the Expander itself
// starts with.
func NewContext(env *tenv.Environment, expand func(lattice.Value) lattice.Value) *Context {
	return &Context{Env: env, Expand: expand, inFlight: map[tenv.TypeKey]bool{}}
}

func (c *Context) expand(v lattice.Value) lattice.Value {
	if v == nil {
		return lattice.Unknown
	}
	return c.Expand(v)
}
