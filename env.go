package texpand

import "github.com/elixir-tools/texpand/internal/core/tenv"

// Environment is everything the Expander reads to compute an expanded
// type: locally observed variables and attributes, the enclosing
// module and its imports, and the host-metadata/introspection
// providers below. It is immutable for the duration of a single Expand
// call.
type Environment = tenv.Environment

// VarRecord is one entry of Environment.Variables.
type VarRecord = tenv.VarRecord

// AttrRecord is one entry of Environment.Attributes.
type AttrRecord = tenv.AttrRecord

// SpecKey identifies a function spec by (module, function, arity).
type SpecKey = tenv.SpecKey

// TypeKey identifies a user type declaration by (module, name, arity).
type TypeKey = tenv.TypeKey

// TypeInfo is the metadata held for one TypeKey.
type TypeInfo = tenv.TypeInfo

// ModFunKey identifies a function/macro definition, irrespective of
// arity.
type ModFunKey = tenv.ModFunKey

// ArityInfo records one declared arity clause and its default-parameter
// count.
type ArityInfo = tenv.ArityInfo

// ModFunInfo is the metadata held for one ModFunKey.
type ModFunInfo = tenv.ModFunInfo

// FuncDefKind is how a function/macro was declared.
type FuncDefKind = tenv.FuncDefKind

const (
	Def         = tenv.Def
	Defp        = tenv.Defp
	Defmacro    = tenv.Defmacro
	Defguard    = tenv.Defguard
	Defdelegate = tenv.Defdelegate
)

// SpecKind is the kind of a user type declaration.
type SpecKind = tenv.SpecKind

const (
	KindType   = tenv.KindType
	KindOpaque = tenv.KindOpaque
	KindTypep  = tenv.KindTypep
)
