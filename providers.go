package texpand

import "github.com/elixir-tools/texpand/internal/core/tenv"

// StructProvider is the external Struct interface: struct registry
// membership and field enumeration.
type StructProvider = tenv.StructProvider

// FunctionDoc is one entry of an IntrospectionProvider.Docs result.
type FunctionDoc = tenv.FunctionDoc

// RawAST is an opaque, host-format spec/type term as introspection
// returns it, not yet converted into this engine's syntax tree.
type RawAST = tenv.RawAST

// IntrospectionProvider is the external Introspection interface: raw
// introspection of compiled modules.
type IntrospectionProvider = tenv.IntrospectionProvider

// TypespecProvider is the external Typespec interface: converts the
// host's raw introspected spec/type terms into this engine's syntax
// tree.
type TypespecProvider = tenv.TypespecProvider

// SpecTextParser is the "String-to-syntax" external interface: a
// parser from stored spec text to a syntax tree.
type SpecTextParser = tenv.SpecTextParser
