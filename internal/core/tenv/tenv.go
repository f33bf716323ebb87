// Package tenv holds the Environment the Expander runs against and the
// four external provider interfaces it consumes. It is a leaf package:
// it depends only on lattice,
// specast and internal/diag, so both internal/core/resolve and internal/core/expand (and
// the module's public façade) can depend on it without creating an
// import cycle between the driver and the resolvers.
package tenv

import (
	"github.com/elixir-tools/texpand/internal/core/lattice"
	"github.com/elixir-tools/texpand/internal/core/specast"
)

// FuncDefKind is how a function/macro was declared.
type FuncDefKind int

const (
	Def FuncDefKind = iota
	Defp
	Defmacro
	Defguard
	Defdelegate
)

// SpecKind is the kind of a user type declaration.
type SpecKind int

const (
	KindType SpecKind = iota
	KindOpaque
	KindTypep
)

// VarRecord is one entry of Environment.Variables. The first matching
// record wins on lookup.
type VarRecord struct {
	Name string
	Type lattice.Value
}

// AttrRecord is one entry of Environment.Attributes.
type AttrRecord struct {
	Name string
	Type lattice.Value
}

// SpecKey identifies a function spec, keyed by resolved arity.
type SpecKey struct {
	Module string
	Fun    string
	Arity  int
}

// TypeKey identifies a user type declaration, keyed by arity.
type TypeKey struct {
	Module string
	Name   string
	Arity  int
}

// TypeInfo is the metadata held for one TypeKey.
type TypeInfo struct {
	Kind SpecKind
	Spec string // raw spec-text; parsed on demand via Environment.Parser
}

// ModFunKey identifies a function/macro definition, irrespective of
// arity — matching the host's "(module, fun, nil)" key convention; the
// per-arity default-parameter counts live inside ModFunInfo.
type ModFunKey struct {
	Module string
	Fun    string
}

// ArityInfo records one declared arity clause and how many of its
// trailing parameters carry defaults.
type ArityInfo struct {
	Declared int
	Defaults int
}

// Tolerates reports whether a called arity is compatible with this
// clause under default-parameter tolerance:
// declared - defaults <= called <= declared.
func (a ArityInfo) Tolerates(called int) bool {
	return called <= a.Declared && called >= a.Declared-a.Defaults
}

// ModFunInfo is the metadata held for one ModFunKey.
type ModFunInfo struct {
	Kind    FuncDefKind
	Arities []ArityInfo
}

// Visible reports whether this definition is visible to a caller:
// visible if includePrivate is true, or the kind is anything other
// than Defp.
func (m ModFunInfo) Visible(includePrivate bool) bool {
	return includePrivate || m.Kind != Defp
}

// StructProvider is the Struct external interface (§6): struct registry
// membership and field enumeration.
type StructProvider interface {
	IsStruct(module string) bool
	// Fields returns the struct's field names, including "__struct__".
	Fields(module string) []string
}

// FunctionDoc is one entry of an IntrospectionProvider.Docs result.
type FunctionDoc struct {
	Fun      string
	Arity    int
	Defaults int
}

// RawAST is an opaque, host-format spec/type term as introspection
// returns it — not yet in this engine's specast vocabulary. It must be
// converted via TypespecProvider before the Spec Parser can use it.
type RawAST any

// IntrospectionProvider is the Introspection external interface (§6):
// raw introspection of compiled modules.
type IntrospectionProvider interface {
	// Docs returns nil (ok=false) if the module carries no docs chunk.
	Docs(module string) (docs []FunctionDoc, ok bool)
	FunctionExported(module, fun string, arity int) bool
	// GetSpec returns the raw per-overload spec terms for (module, fun,
	// arity), or ok=false if the function has no spec.
	GetSpec(module, fun string, arity int) (raws []RawAST, ok bool)
	// GetTypeSpec returns the raw spec term and kind for a type
	// declaration, or ok=false if none is found.
	GetTypeSpec(module, name string, arity int) (kind SpecKind, raw RawAST, ok bool)
}

// TypespecProvider is the Typespec external interface (§6): converts
// the host's raw introspected spec/type terms into this engine's
// specast vocabulary.
type TypespecProvider interface {
	SpecToQuoted(fun string, raw RawAST) (specast.Node, bool)
	TypeToQuoted(raw RawAST) (specast.Node, bool)
}

// SpecTextParser is the "String-to-syntax" external interface (§6): a
// parser from stored spec text (Environment.Specs/Types) to a syntax
// tree, with success/failure discrimination.
type SpecTextParser interface {
	Parse(source string) (specast.Node, bool)
}

// Environment bundles everything the Expander reads. It is immutable
// during a single expansion (§3.2).
type Environment struct {
	Structs       StructProvider
	Introspection IntrospectionProvider
	Typespec      TypespecProvider
	Parser        SpecTextParser

	Variables  []VarRecord
	Attributes []AttrRecord

	CurrentModule    string
	HasCurrentModule bool
	Imports          []string

	Specs       map[SpecKey][]string
	Types       map[TypeKey]TypeInfo
	ModsAndFuns map[ModFunKey]ModFunInfo
}

// LookupVariable returns the first variable record matching name.
func (e *Environment) LookupVariable(name string) (VarRecord, bool) {
	for _, v := range e.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return VarRecord{}, false
}

// LookupAttribute returns the attribute record matching name.
func (e *Environment) LookupAttribute(name string) (AttrRecord, bool) {
	for _, a := range e.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return AttrRecord{}, false
}

// LookupModFun returns the ModFunInfo for (module, fun), regardless of
// arity; per-arity tolerance is checked separately via ArityInfo.
func (e *Environment) LookupModFun(module, fun string) (ModFunInfo, bool) {
	info, ok := e.ModsAndFuns[ModFunKey{Module: module, Fun: fun}]
	return info, ok
}

// ResolvedArity finds the first declared arity clause of (module, fun)
// that tolerates the called arity, per default-parameter tolerance.
// It returns the *declared* arity, which is what specs/types are keyed
// by.
func (e *Environment) ResolvedArity(module, fun string, called int) (int, bool) {
	info, ok := e.LookupModFun(module, fun)
	if !ok {
		return 0, false
	}
	for _, a := range info.Arities {
		if a.Tolerates(called) {
			return a.Declared, true
		}
	}
	return 0, false
}
