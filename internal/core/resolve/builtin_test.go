package resolve_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/elixir-tools/texpand/internal/core/lattice"
	"github.com/elixir-tools/texpand/internal/core/resolve"
)

func call(c *resolve.Context, mod, fun string, args ...lattice.Value) lattice.Value {
	return c.ResolveCall(lattice.Atom{A: mod}, fun, args, false)
}

func TestBuiltinMapGetFetch(t *testing.T) {
	c := resolve.NewContext(newEnv(), identity)
	m := lattice.Map{Fields: []lattice.Field{{Key: "a", Value: lattice.Integer{I: 1}}}}

	qt.Assert(t, qt.IsTrue(lattice.Equal(call(c, "Map", "fetch", m, lattice.Atom{A: "a"}), lattice.Integer{I: 1})))
	qt.Assert(t, qt.IsTrue(lattice.IsUnknown(call(c, "Map", "fetch", m, lattice.Atom{A: "missing"}))))
	qt.Assert(t, qt.IsTrue(lattice.Equal(call(c, "Map", "fetch!", m, lattice.Atom{A: "a"}), lattice.Integer{I: 1})))
	qt.Assert(t, qt.IsTrue(lattice.IsUnknown(call(c, "Map", "fetch", m, lattice.Unknown))))
}

func TestBuiltinMapGetDefaultVsGetLazy(t *testing.T) {
	c := resolve.NewContext(newEnv(), identity)
	m := lattice.Map{}

	// get/3's default is expanded eagerly.
	got := call(c, "Map", "get", m, lattice.Atom{A: "missing"}, lattice.Integer{I: 9})
	qt.Assert(t, qt.IsTrue(lattice.Equal(got, lattice.Integer{I: 9})))

	// get_lazy/3's default is a zero-arity closure never expanded here;
	// the miss value is Unknown regardless of what was passed.
	got = call(c, "Map", "get_lazy", m, lattice.Atom{A: "missing"}, lattice.Integer{I: 9})
	qt.Assert(t, qt.IsTrue(lattice.IsUnknown(got)))
}

func TestBuiltinMapGetKeyShapes(t *testing.T) {
	c := resolve.NewContext(newEnv(), identity)
	m := lattice.Map{Fields: []lattice.Field{{Key: "a", Value: lattice.Integer{I: 1}}}}

	qt.Assert(t, qt.IsTrue(lattice.IsNone(call(c, "Map", "get", m, lattice.None, lattice.Integer{I: 0}))))

	got := call(c, "Map", "get", m, lattice.Unknown, lattice.Integer{I: 0})
	qt.Assert(t, qt.IsTrue(lattice.IsUnknown(got)))

	qt.Assert(t, qt.IsTrue(lattice.IsNone(call(c, "Map", "get", m, lattice.Integer{I: 1}, lattice.Integer{I: 0}))))
}

func TestBuiltinMapPutAndReplaceShareLogic(t *testing.T) {
	c := resolve.NewContext(newEnv(), identity)
	m := lattice.Map{Fields: []lattice.Field{{Key: "a", Value: lattice.Integer{I: 1}}}}
	want := lattice.Map{Fields: []lattice.Field{{Key: "a", Value: lattice.Integer{I: 2}}}}

	got := call(c, "Map", "put", m, lattice.Atom{A: "a"}, lattice.Integer{I: 2})
	qt.Assert(t, qt.IsTrue(lattice.Equal(got, want)))

	got = call(c, "Map", "replace!", m, lattice.Atom{A: "a"}, lattice.Integer{I: 2})
	qt.Assert(t, qt.IsTrue(lattice.Equal(got, want)))
}

func TestBuiltinMapPutOnStructKeepsModule(t *testing.T) {
	c := resolve.NewContext(newEnv(), identity)
	s := lattice.Struct{Module: lattice.Atom{A: "M"}, Fields: []lattice.Field{{Key: "a", Value: lattice.Integer{I: 1}}}}
	want := lattice.Struct{Module: lattice.Atom{A: "M"}, Fields: []lattice.Field{{Key: "a", Value: lattice.Integer{I: 2}}}}

	got := call(c, "Map", "put", s, lattice.Atom{A: "a"}, lattice.Integer{I: 2})
	qt.Assert(t, qt.IsTrue(lattice.Equal(got, want)))
}

func TestBuiltinMapPutNewAndPutNewLazy(t *testing.T) {
	c := resolve.NewContext(newEnv(), identity)
	m := lattice.Map{Fields: []lattice.Field{{Key: "a", Value: lattice.Integer{I: 1}}}}

	got := call(c, "Map", "put_new", m, lattice.Atom{A: "a"}, lattice.Integer{I: 2})
	qt.Assert(t, qt.IsTrue(lattice.Equal(got, m)))

	got = call(c, "Map", "put_new", m, lattice.Atom{A: "b"}, lattice.Integer{I: 2})
	want := lattice.Map{Fields: []lattice.Field{{Key: "a", Value: lattice.Integer{I: 1}}, {Key: "b", Value: lattice.Integer{I: 2}}}}
	qt.Assert(t, qt.IsTrue(lattice.Equal(got, want)))

	got = call(c, "Map", "put_new_lazy", m, lattice.Atom{A: "b"}, lattice.Integer{I: 2})
	want = lattice.Map{Fields: []lattice.Field{{Key: "a", Value: lattice.Integer{I: 1}}, {Key: "b", Value: lattice.Unknown}}}
	qt.Assert(t, qt.IsTrue(lattice.Equal(got, want)))
}

func TestBuiltinMapDelete(t *testing.T) {
	c := resolve.NewContext(newEnv(), identity)
	m := lattice.Map{Fields: []lattice.Field{{Key: "a", Value: lattice.Integer{I: 1}}, {Key: "b", Value: lattice.Integer{I: 2}}}}

	got := call(c, "Map", "delete", m, lattice.Atom{A: "a"})
	want := lattice.Map{Fields: []lattice.Field{{Key: "b", Value: lattice.Integer{I: 2}}}}
	qt.Assert(t, qt.IsTrue(lattice.Equal(got, want)))
}

func TestBuiltinMapMerge2(t *testing.T) {
	a := lattice.Map{Fields: []lattice.Field{{Key: "a", Value: lattice.Integer{I: 1}}}}
	b := lattice.Map{Fields: []lattice.Field{{Key: "b", Value: lattice.Integer{I: 2}}}}
	c := resolve.NewContext(newEnv(), identity)

	got := call(c, "Map", "merge", a, b)
	want := lattice.Map{Fields: []lattice.Field{{Key: "a", Value: lattice.Integer{I: 1}}, {Key: "b", Value: lattice.Integer{I: 2}}}}
	qt.Assert(t, qt.IsTrue(lattice.Equal(got, want)))
}

func TestBuiltinMapMerge3ConflictBecomesUnknown(t *testing.T) {
	a := lattice.Map{Fields: []lattice.Field{{Key: "a", Value: lattice.Integer{I: 1}}}}
	b := lattice.Map{Fields: []lattice.Field{{Key: "a", Value: lattice.Integer{I: 2}}, {Key: "b", Value: lattice.Atom{A: "x"}}}}
	ctx := resolve.NewContext(newEnv(), identity)

	got := call(ctx, "Map", "merge", a, b, lattice.Unknown)
	// merge/3's third argument is the conflict-resolution fun, which is
	// never invoked structurally; a conflicting key becomes Unknown.
	want := lattice.Map{Fields: []lattice.Field{{Key: "a", Value: lattice.Unknown}, {Key: "b", Value: lattice.Atom{A: "x"}}}}
	qt.Assert(t, qt.IsTrue(lattice.Equal(got, want)))
}

func TestBuiltinMapUpdateAlwaysSetsKeyToUnknown(t *testing.T) {
	m := lattice.Map{Fields: []lattice.Field{{Key: "a", Value: lattice.Integer{I: 1}}}}
	c := resolve.NewContext(newEnv(), identity)

	got := call(c, "Map", "update", m, lattice.Atom{A: "a"}, lattice.Integer{I: 0}, lattice.Unknown)
	want := lattice.Map{Fields: []lattice.Field{{Key: "a", Value: lattice.Unknown}}}
	qt.Assert(t, qt.IsTrue(lattice.Equal(got, want)))

	got = call(c, "Map", "update!", m, lattice.Atom{A: "a"}, lattice.Unknown)
	qt.Assert(t, qt.IsTrue(lattice.Equal(got, want)))
}

func TestBuiltinMapFromStructOnStruct(t *testing.T) {
	s := lattice.Struct{
		Module: lattice.Atom{A: "M"},
		Fields: []lattice.Field{{Key: "__struct__", Value: lattice.Atom{A: "M"}}, {Key: "a", Value: lattice.Integer{I: 1}}},
	}
	c := resolve.NewContext(newEnv(), identity)

	got := call(c, "Map", "from_struct", s)
	want := lattice.Map{Fields: []lattice.Field{{Key: "a", Value: lattice.Integer{I: 1}}}}
	qt.Assert(t, qt.IsTrue(lattice.Equal(got, want)))
}

func TestBuiltinMapFromStructOnModuleAtomSynthesizes(t *testing.T) {
	// With the plain identity expand callback used across this file's
	// tests, synthesizing Struct{Module: Atom(m)} expands to itself
	// (struct auto-tagging from the Struct registry is the real
	// Expander's job, exercised in internal/core/expand instead); the
	// only structural guarantee checked here is that from_struct still
	// drops __struct__ and returns a Map, not None.
	c := resolve.NewContext(newEnv(), identity)

	got := call(c, "Map", "from_struct", lattice.Atom{A: "M"})
	want := lattice.Map{}
	qt.Assert(t, qt.IsTrue(lattice.Equal(got, want)))
}

func TestBuiltinKernelElemOutOfBoundsIsNone(t *testing.T) {
	c := resolve.NewContext(newEnv(), identity)
	tup := lattice.Tuple{Elems: []lattice.Value{lattice.Atom{A: "a"}}}

	got := call(c, "Kernel", "elem", tup, lattice.Integer{I: 1})
	qt.Assert(t, qt.IsTrue(lattice.IsNone(got)))
}

func TestBuiltinKernelElemNonIntegerIndexIsNone(t *testing.T) {
	c := resolve.NewContext(newEnv(), identity)
	tup := lattice.Tuple{Elems: []lattice.Value{lattice.Atom{A: "a"}}}

	got := call(c, "Kernel", "elem", tup, lattice.Atom{A: "not_an_index"})
	qt.Assert(t, qt.IsTrue(lattice.IsNone(got)))
}

func TestBuiltinKernelElemUnknownIndexIsUnknown(t *testing.T) {
	c := resolve.NewContext(newEnv(), identity)
	tup := lattice.Tuple{Elems: []lattice.Value{lattice.Atom{A: "a"}}}

	got := call(c, "Kernel", "elem", tup, lattice.Unknown)
	qt.Assert(t, qt.IsTrue(lattice.IsUnknown(got)))
}
