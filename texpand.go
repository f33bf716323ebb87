// Package texpand computes the most precise expanded type for a
// symbolic binding expression against an Environment of locally
// observed variables, attributes, specs and types, and a set of
// external providers for the host's struct registry, module
// introspection, and typespec/spec-text syntax.
//
// The public surface is intentionally small: build an Environment,
// implement its provider interfaces against your host, and call
// Expand. Everything else — the type lattice, the intersection
// combiner, the spec parser, the call and type resolvers, and the
// expansion driver itself — is an implementation detail behind this
// one entry point.
package texpand

import (
	"fmt"

	"github.com/elixir-tools/texpand/internal/core/expand"
)

// Expand computes the most precise expanded type for expr against env.
// It never returns an error for a malformed expr — an expression this
// engine cannot make sense of simply expands to Unknown or None — but
// it does return one if env itself is unusable (a required provider is
// nil).
//
// A fresh Expander is created for each call, so its visitation stack
// never leaks state across unrelated expansions.
func Expand(env *Environment, expr Value) (Value, error) {
	if env == nil {
		return nil, fmt.Errorf("texpand: nil environment")
	}
	if err := env.Validate(); err != nil {
		return nil, fmt.Errorf("texpand: invalid environment: %w", err)
	}
	return expand.New(env).Expand(expr), nil
}
