package resolve_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/elixir-tools/texpand/internal/core/lattice"
	"github.com/elixir-tools/texpand/internal/core/resolve"
	"github.com/elixir-tools/texpand/internal/core/specast"
	"github.com/elixir-tools/texpand/internal/core/tenv"
)

func TestResolveTypeMetadataHit(t *testing.T) {
	env := newEnv()
	env.Parser = fakeParser{"atom_spec": specast.Atom{Name: "ok"}}
	env.Types = map[tenv.TypeKey]tenv.TypeInfo{
		{Module: "M", Name: "t", Arity: 0}: {Kind: tenv.KindType, Spec: "atom_spec"},
	}
	c := resolve.NewContext(env, identity)

	got := c.ResolveType("M", "t", nil, false)
	qt.Assert(t, qt.IsTrue(lattice.Equal(got, lattice.Atom{A: "ok"})))
}

func TestResolveTypeMetadataPrivateTypeHiddenWithoutIncludePrivate(t *testing.T) {
	env := newEnv()
	env.Parser = fakeParser{"atom_spec": specast.Atom{Name: "ok"}}
	env.Types = map[tenv.TypeKey]tenv.TypeInfo{
		{Module: "M", Name: "t", Arity: 0}: {Kind: tenv.KindTypep, Spec: "atom_spec"},
	}
	c := resolve.NewContext(env, identity)

	got := c.ResolveType("M", "t", nil, false)
	qt.Assert(t, qt.IsTrue(lattice.IsUnknown(got)))

	got = c.ResolveType("M", "t", nil, true)
	qt.Assert(t, qt.IsTrue(lattice.Equal(got, lattice.Atom{A: "ok"})))
}

func TestResolveTypeMetadataEntryWithUnparsableSpecIsUnknownNotFallthrough(t *testing.T) {
	env := newEnv()
	env.Types = map[tenv.TypeKey]tenv.TypeInfo{
		{Module: "M", Name: "t", Arity: 0}: {Kind: tenv.KindType, Spec: "unparsable"},
	}
	env.Introspection = fakeIntrospection{
		types: map[[3]interface{}]typeSpecEntry{
			{"M", "t", 0}: {kind: tenv.KindType, raw: specast.Atom{Name: "from_introspection"}},
		},
	}
	c := resolve.NewContext(env, identity)

	got := c.ResolveType("M", "t", nil, false)
	qt.Assert(t, qt.IsTrue(lattice.IsUnknown(got)))
}

func TestResolveTypeFallsThroughToIntrospectionWhenNoMetadataEntry(t *testing.T) {
	env := newEnv()
	env.Introspection = fakeIntrospection{
		types: map[[3]interface{}]typeSpecEntry{
			{"M", "t", 0}: {kind: tenv.KindType, raw: specast.Atom{Name: "ok"}},
		},
	}
	c := resolve.NewContext(env, identity)

	got := c.ResolveType("M", "t", nil, false)
	qt.Assert(t, qt.IsTrue(lattice.Equal(got, lattice.Atom{A: "ok"})))
}

func TestResolveTypeIntrospectionOpaqueHiddenWithoutIncludePrivate(t *testing.T) {
	env := newEnv()
	env.Introspection = fakeIntrospection{
		types: map[[3]interface{}]typeSpecEntry{
			{"M", "t", 0}: {kind: tenv.KindOpaque, raw: specast.Atom{Name: "ok"}},
		},
	}
	c := resolve.NewContext(env, identity)

	got := c.ResolveType("M", "t", nil, false)
	qt.Assert(t, qt.IsTrue(lattice.IsUnknown(got)))
}

func TestResolveTypeCycleGuardTerminatesAtUnknown(t *testing.T) {
	env := newEnv()
	// t() :: t() — a self-referential user type.
	env.Parser = fakeParser{"self": specast.LocalType{Name: "t"}}
	env.Types = map[tenv.TypeKey]tenv.TypeInfo{
		{Module: "M", Name: "t", Arity: 0}: {Kind: tenv.KindType, Spec: "self"},
	}
	c := resolve.NewContext(env, identity)

	got := c.ResolveType("M", "t", nil, false)
	qt.Assert(t, qt.IsTrue(lattice.IsUnknown(got)))
}

func TestResolveTypeParameterizedSubstitution(t *testing.T) {
	// t(x) :: {x, x}
	env := newEnv()
	env.Parser = fakeParser{
		"param": specast.ParamSpec{
			Params: []string{"x"},
			Body: specast.TupleLit{Elems: []specast.Node{
				specast.ParamRef{Name: "x"},
				specast.ParamRef{Name: "x"},
			}},
		},
	}
	env.Types = map[tenv.TypeKey]tenv.TypeInfo{
		{Module: "M", Name: "t", Arity: 1}: {Kind: tenv.KindType, Spec: "param"},
	}
	c := resolve.NewContext(env, identity)

	got := c.ResolveType("M", "t", []specast.Node{specast.Atom{Name: "a"}}, false)
	want := lattice.Tuple{Elems: []lattice.Value{lattice.Atom{A: "a"}, lattice.Atom{A: "a"}}}
	qt.Assert(t, qt.IsTrue(lattice.Equal(got, want)))
}

func TestResolveTypeUnknownWhenNoEntryAnywhere(t *testing.T) {
	c := resolve.NewContext(newEnv(), identity)
	got := c.ResolveType("M", "t", nil, false)
	qt.Assert(t, qt.IsTrue(lattice.IsUnknown(got)))
}
