package resolve_test

import (
	"github.com/elixir-tools/texpand/internal/core/specast"
	"github.com/elixir-tools/texpand/internal/core/tenv"
)

// fakeParser implements tenv.SpecTextParser by looking text up in a map,
// standing in for the host's own "String-to-syntax" provider.
type fakeParser map[string]specast.Node

func (f fakeParser) Parse(source string) (specast.Node, bool) {
	n, ok := f[source]
	return n, ok
}

// fakeTypespec implements tenv.TypespecProvider. In these tests raw
// introspected terms are already specast.Node values wrapped in
// tenv.RawAST, so conversion is just a type assertion — a real
// implementation would walk the host's own term representation.
type fakeTypespec struct{}

func (fakeTypespec) SpecToQuoted(fun string, raw tenv.RawAST) (specast.Node, bool) {
	n, ok := raw.(specast.Node)
	return n, ok
}

func (fakeTypespec) TypeToQuoted(raw tenv.RawAST) (specast.Node, bool) {
	n, ok := raw.(specast.Node)
	return n, ok
}

// fakeIntrospection implements tenv.IntrospectionProvider from small
// fixed tables, enough to exercise the Call/Type Resolver's
// introspection fallback without a real host.
type fakeIntrospection struct {
	docs     map[string][]tenv.FunctionDoc
	exported map[[3]interface{}]bool
	specs    map[[3]interface{}][]tenv.RawAST
	types    map[[3]interface{}]typeSpecEntry
}

type typeSpecEntry struct {
	kind tenv.SpecKind
	raw  tenv.RawAST
}

func (f fakeIntrospection) Docs(module string) ([]tenv.FunctionDoc, bool) {
	d, ok := f.docs[module]
	return d, ok
}

func (f fakeIntrospection) FunctionExported(module, fun string, arity int) bool {
	return f.exported[[3]interface{}{module, fun, arity}]
}

func (f fakeIntrospection) GetSpec(module, fun string, arity int) ([]tenv.RawAST, bool) {
	raws, ok := f.specs[[3]interface{}{module, fun, arity}]
	return raws, ok
}

func (f fakeIntrospection) GetTypeSpec(module, name string, arity int) (tenv.SpecKind, tenv.RawAST, bool) {
	e, ok := f.types[[3]interface{}{module, name, arity}]
	if !ok {
		return 0, nil, false
	}
	return e.kind, e.raw, ok
}

type fakeStructs struct {
	structs map[string][]string
}

func (f fakeStructs) IsStruct(module string) bool {
	_, ok := f.structs[module]
	return ok
}

func (f fakeStructs) Fields(module string) []string {
	return f.structs[module]
}

func newEnv() *tenv.Environment {
	return &tenv.Environment{
		Structs:       fakeStructs{structs: map[string][]string{}},
		Introspection: fakeIntrospection{},
		Typespec:      fakeTypespec{},
		Parser:        fakeParser{},
	}
}
