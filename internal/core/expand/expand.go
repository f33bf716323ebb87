// Package expand implements the Expander: the driver that walks a
// binding expression and computes its most precise expanded type,
// guarded by a per-call visitation stack.
//
// It imports internal/core/resolve (the Call Resolver/Type Resolver)
// but hands resolve a plain callback for its own recursive expansion
// needs, rather than resolve importing this package — see
// internal/core/resolve's package doc for why.
package expand

import (
	"strings"

	"github.com/elixir-tools/texpand/internal/core/combine"
	"github.com/elixir-tools/texpand/internal/core/lattice"
	"github.com/elixir-tools/texpand/internal/core/resolve"
	"github.com/elixir-tools/texpand/internal/core/tenv"
	"github.com/elixir-tools/texpand/internal/core/trace"
)

// builtinLocalModules are consulted for an unqualified call after the
// current module and its imports, mirroring the host's own fallback
// order for Kernel/Kernel.SpecialForms functions.
var builtinLocalModules = []string{"Kernel", "Kernel.SpecialForms"}

// Expander holds the per-call visitation stack: a node already being
// expanded higher up the same call chain short-
// circuits to Unknown rather than recursing forever on a cyclic
// binding (e.g. a struct update referencing a variable bound to
// itself). A fresh Expander is created per top-level Expand call.
type Expander struct {
	env   *tenv.Environment
	rc    *resolve.Context
	stack map[string]bool
}

// New creates an Expander bound to env.
func New(env *tenv.Environment) *Expander {
	e := &Expander{env: env, stack: map[string]bool{}}
	e.rc = resolve.NewContext(env, e.Expand)
	return e
}

// Expand computes the most precise type for v.
func (e *Expander) Expand(v lattice.Value) lattice.Value {
	if v == nil {
		return lattice.Unknown
	}
	switch v.(type) {
	case lattice.Atom, lattice.Integer:
		return v
	}
	if lattice.IsNone(v) || lattice.IsUnknown(v) {
		return v
	}

	key := v.String()
	if e.stack[key] {
		trace.Logf("cycle guard hit: %s", key)
		return lattice.Unknown
	}
	e.stack[key] = true
	defer delete(e.stack, key)

	switch x := v.(type) {
	case lattice.Variable:
		return e.expandVariable(x)
	case lattice.Attribute:
		return e.expandAttribute(x)
	case lattice.Struct:
		return e.expandStruct(x)
	case lattice.Map:
		return e.expandMap(x)
	case lattice.TupleNth:
		return e.expandTupleNth(x)
	case lattice.Tuple:
		return e.expandTuple(x)
	case lattice.Union:
		return e.expandUnion(x)
	case lattice.Intersection:
		return e.expandIntersection(x)
	case lattice.Call:
		return e.expandCall(x)
	case lattice.LocalCall:
		return e.expandLocalCall(x)
	default:
		return v
	}
}

// expandVariable handles the Variable case: any name beginning with
// "_" (not just the bare discard pattern) is irrelevant and carries no
// type at all (None); a recorded variable expands its recorded type;
// anything else is re-interpreted as a zero-arity local call — the
// binding expression compiler hands us bare names it could not
// classify as variables this way, letting the Call Resolver's
// candidate-module search settle it.
func (e *Expander) expandVariable(v lattice.Variable) lattice.Value {
	if strings.HasPrefix(v.Name, "_") {
		return lattice.None
	}
	if rec, ok := e.env.LookupVariable(v.Name); ok {
		return e.Expand(rec.Type)
	}
	return e.Expand(lattice.LocalCall{Fun: v.Name})
}

func (e *Expander) expandAttribute(a lattice.Attribute) lattice.Value {
	if rec, ok := e.env.LookupAttribute(a.Name); ok {
		return e.Expand(rec.Type)
	}
	return lattice.Unknown
}

// expandStruct expands a struct literal/update. Updated, when present,
// is an unexpanded base
// expression whose fields this struct's own Fields are overlaid onto;
// a base that itself expands to a Struct donates its module when this
// struct's own module expression is still Unknown. If the resulting
// module atom is registered in the struct registry, the merged fields
// are projected onto its declared field set: unknown keys are dropped
// and declared fields the caller didn't supply are filled with Unknown.
func (e *Expander) expandStruct(s lattice.Struct) lattice.Value {
	mod := e.expandModule(s.Module)

	var fields []lattice.Field
	if s.Updated != nil {
		base := e.Expand(s.Updated)
		if lattice.IsNone(base) {
			return lattice.None
		}
		switch b := base.(type) {
		case lattice.Struct:
			fields = b.Fields
			if lattice.IsUnknown(mod) {
				mod = b.Module
			}
		case lattice.Map:
			fields = b.Fields
		}
	}

	for _, f := range s.Fields {
		fields = lattice.WithField(fields, f.Key, f.Value)
	}
	if atom, ok := mod.(lattice.Atom); ok {
		if e.env.Structs != nil && e.env.Structs.IsStruct(atom.A) {
			fields = e.projectStructFields(atom.A, fields)
		}
		if _, ok := lattice.FieldOf(fields, "__struct__"); !ok {
			fields = lattice.WithField(fields, "__struct__", atom)
		}
	}

	out := make([]lattice.Field, len(fields))
	for i, f := range fields {
		out[i] = lattice.Field{Key: f.Key, Value: e.Expand(f.Value)}
	}
	return lattice.Struct{Fields: out, Module: mod}
}

// projectStructFields drops any key outside mod's declared field set
// and fills any declared field the caller didn't supply with Unknown.
// __struct__ itself is left for the caller to set.
func (e *Expander) projectStructFields(mod string, fields []lattice.Field) []lattice.Field {
	declared := e.env.Structs.Fields(mod)
	projected := make([]lattice.Field, 0, len(declared))
	for _, key := range declared {
		if key == "__struct__" {
			continue
		}
		if v, ok := lattice.FieldOf(fields, key); ok {
			projected = append(projected, lattice.Field{Key: key, Value: v})
		} else {
			projected = append(projected, lattice.Field{Key: key, Value: lattice.Unknown})
		}
	}
	if v, ok := lattice.FieldOf(fields, "__struct__"); ok {
		projected = lattice.WithField(projected, "__struct__", v)
	}
	return projected
}

func (e *Expander) expandModule(mod lattice.Value) lattice.Value {
	if mod == nil {
		return lattice.Unknown
	}
	if _, ok := mod.(lattice.Atom); ok {
		return mod
	}
	return e.Expand(mod)
}

// expandMap expands a map literal/update. Unlike Struct, a Map overlay
// only preserves the base's
// struct-ness if the base itself is a struct — updating a plain map's
// fields never tags it with a module.
func (e *Expander) expandMap(m lattice.Map) lattice.Value {
	var fields []lattice.Field
	var mod lattice.Value

	if m.Updated != nil {
		base := e.Expand(m.Updated)
		if lattice.IsNone(base) {
			return lattice.None
		}
		switch b := base.(type) {
		case lattice.Struct:
			fields = b.Fields
			mod = b.Module
		case lattice.Map:
			fields = b.Fields
		}
	}

	for _, f := range m.Fields {
		fields = lattice.WithField(fields, f.Key, f.Value)
	}

	out := make([]lattice.Field, len(fields))
	for i, f := range fields {
		out[i] = lattice.Field{Key: f.Key, Value: e.Expand(f.Value)}
	}
	if mod != nil {
		return lattice.Struct{Fields: out, Module: mod}
	}
	return lattice.Map{Fields: out}
}

func (e *Expander) expandTupleNth(t lattice.TupleNth) lattice.Value {
	v := e.Expand(t.Tuple)
	if lattice.IsUnknown(v) {
		return lattice.Unknown
	}
	tup, ok := v.(lattice.Tuple)
	if !ok {
		return lattice.None
	}
	if t.N < 0 || t.N >= len(tup.Elems) {
		return lattice.None
	}
	return e.Expand(tup.Elems[t.N])
}

// expandTuple expands every element; per data-model invariant (a), any
// element expanding to None collapses the whole tuple to None.
func (e *Expander) expandTuple(t lattice.Tuple) lattice.Value {
	elems := make([]lattice.Value, len(t.Elems))
	for i, el := range t.Elems {
		v := e.Expand(el)
		if lattice.IsNone(v) {
			return lattice.None
		}
		elems[i] = v
	}
	return lattice.Tuple{Elems: elems}
}

func (e *Expander) expandUnion(u lattice.Union) lattice.Value {
	variants := make([]lattice.Value, len(u.Variants))
	for i, v := range u.Variants {
		variants[i] = e.Expand(v)
	}
	return lattice.NewUnion(variants...)
}

// expandIntersection folds the Combiner over every expanded variant,
// left to right; Unknown is the fold's identity so an
// empty or single-variant intersection degrades gracefully.
func (e *Expander) expandIntersection(i lattice.Intersection) lattice.Value {
	result := lattice.Unknown
	for _, v := range i.Variants {
		result = combine.Combine(result, e.Expand(v))
		if lattice.IsNone(result) {
			return lattice.None
		}
	}
	return result
}

func (e *Expander) expandCall(c lattice.Call) lattice.Value {
	if e.anyArgIsNone(c.Args) {
		return lattice.None
	}
	target := e.Expand(c.Target)
	if lattice.IsNone(target) {
		return lattice.None
	}
	return e.rc.ResolveCall(target, c.Fun, c.Args, false)
}

// anyArgIsNone reports whether any of args expands to None, per
// data-model invariant (a): a call whose argument is None never
// reaches the Call Resolver.
func (e *Expander) anyArgIsNone(args []lattice.Value) bool {
	for _, a := range args {
		if lattice.IsNone(e.Expand(a)) {
			return true
		}
	}
	return false
}

// expandLocalCall handles the LocalCall case: try the current module,
// then each import, then the built-in Kernel modules,
// in order, taking the first candidate whose Call Resolver answer is
// not Unknown. Unknown from a candidate means "this module has nothing
// to say about this name" (whether because it doesn't define it, or
// because it does but carries no spec) — in both readings trying the
// next candidate is harmless, since a real definition elsewhere would
// otherwise go unseen.
func (e *Expander) expandLocalCall(lc lattice.LocalCall) lattice.Value {
	if e.anyArgIsNone(lc.Args) {
		return lattice.None
	}
	for _, mod := range e.candidateModules() {
		includePrivate := e.env.HasCurrentModule && mod == e.env.CurrentModule
		v := e.rc.ResolveCall(lattice.Atom{A: mod}, lc.Fun, lc.Args, includePrivate)
		if !lattice.IsUnknown(v) {
			return v
		}
	}
	return lattice.Unknown
}

func (e *Expander) candidateModules() []string {
	var mods []string
	if e.env.HasCurrentModule {
		mods = append(mods, e.env.CurrentModule)
	}
	mods = append(mods, e.env.Imports...)
	mods = append(mods, builtinLocalModules...)
	return mods
}
