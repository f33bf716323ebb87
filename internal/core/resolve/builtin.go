package resolve

import "github.com/elixir-tools/texpand/internal/core/lattice"

// builtin implements the structural built-ins: Kernel.elem/2 and the
// Map.* family. handled is false for any
// (mod, fun) this engine does not special-case, so the caller falls
// through to dispatch.
func (c *Context) builtin(mod, fun string, args []lattice.Value) (lattice.Value, bool) {
	switch mod {
	case "Kernel":
		if fun == "elem" && len(args) == 2 {
			return c.builtinElem(args[0], args[1]), true
		}
	case "Map":
		return c.builtinMap(fun, args)
	}
	return nil, false
}

// builtinElem implements Kernel.elem/2's contract: the index argument
// decides the outcome, not the tuple argument —
// a non-integer, non-Unknown index is a proof the call is invalid
// (None) regardless of what the first argument turns out to be.
func (c *Context) builtinElem(tuple, index lattice.Value) lattice.Value {
	idx := c.expand(index)
	if i, ok := idx.(lattice.Integer); ok {
		return c.expand(lattice.TupleNth{Tuple: tuple, N: int(i.I)})
	}
	if lattice.IsUnknown(idx) {
		return lattice.Unknown
	}
	return lattice.None
}

// fieldsOf is the "fields-of(E)" helper: expand E; a Map or Struct
// contributes its field list; Unknown contributes no
// fields (the call proceeds, just with nothing to match against);
// anything else makes the whole enclosing call None.
func (c *Context) fieldsOf(e lattice.Value) ([]lattice.Field, bool) {
	v := c.expand(e)
	switch x := v.(type) {
	case lattice.Map:
		return x.Fields, true
	case lattice.Struct:
		return x.Fields, true
	}
	if lattice.IsUnknown(v) {
		return nil, true
	}
	return nil, false
}

func (c *Context) builtinMap(fun string, args []lattice.Value) (lattice.Value, bool) {
	switch fun {
	case "fetch", "fetch!":
		if len(args) != 2 {
			return nil, false
		}
		return c.mapGet(args[0], args[1], lattice.Unknown), true

	case "get":
		switch len(args) {
		case 2:
			return c.mapGet(args[0], args[1], lattice.Unknown), true
		case 3:
			return c.mapGet(args[0], args[1], c.expand(args[2])), true
		}
		return nil, false

	case "get_lazy":
		if len(args) != 3 {
			return nil, false
		}
		// default is a zero-arity closure expression, unlike get/3's
		// already-a-value third argument — never expanded, just returned
		// as Unknown on a miss.
		return c.mapGet(args[0], args[1], lattice.Unknown), true

	case "put", "replace!":
		if len(args) != 3 {
			return nil, false
		}
		return c.mapPut(args[0], args[1], args[2]), true

	case "put_new":
		if len(args) != 3 {
			return nil, false
		}
		return c.mapPutNew(args[0], args[1], args[2]), true

	case "put_new_lazy":
		if len(args) != 3 {
			return nil, false
		}
		return c.mapPutNew(args[0], args[1], lattice.Unknown), true

	case "delete":
		if len(args) != 2 {
			return nil, false
		}
		return c.mapDelete(args[0], args[1]), true

	case "merge":
		switch len(args) {
		case 2:
			return c.mapMerge2(args[0], args[1]), true
		case 3:
			return c.mapMerge3(args[0], args[1]), true
		}
		return nil, false

	case "update":
		if len(args) != 4 {
			return nil, false
		}
		return c.mapUpdate(args[0], args[1]), true

	case "update!":
		if len(args) != 3 {
			return nil, false
		}
		return c.mapUpdate(args[0], args[1]), true

	case "from_struct":
		if len(args) != 1 {
			return nil, false
		}
		return c.mapFromStruct(args[0]), true
	}
	return nil, false
}

// keyedResult dispatches on an expanded key's shape, the pattern every
// Map.* built-in below shares: None on a None key, base reported as-is
// (shape preserved, contents unknown) on an Unknown key, the atom
// handler otherwise, and None for any other concrete, non-atom key.
func (c *Context) keyedResult(m, key lattice.Value, fields []lattice.Field, onAtom func(atom string) lattice.Value) lattice.Value {
	k := c.expand(key)
	if lattice.IsNone(k) {
		return lattice.None
	}
	if lattice.IsUnknown(k) {
		return c.retagged(m, fields)
	}
	atom, ok := k.(lattice.Atom)
	if !ok {
		return lattice.None
	}
	return onAtom(atom.A)
}

// mapGet implements get/2,3, fetch/2, and fetch!/2. Unlike the
// shape-preserving Map.* mutations below, a lookup with an Unknown key
// carries no shape to preserve: the value at an unknown key is itself
// Unknown, not "the original map".
func (c *Context) mapGet(m, key, miss lattice.Value) lattice.Value {
	fields, ok := c.fieldsOf(m)
	if !ok {
		return lattice.None
	}
	k := c.expand(key)
	if lattice.IsNone(k) {
		return lattice.None
	}
	if lattice.IsUnknown(k) {
		return lattice.Unknown
	}
	atom, ok := k.(lattice.Atom)
	if !ok {
		return lattice.None
	}
	v, found := lattice.FieldOf(fields, atom.A)
	if !found {
		return miss
	}
	return c.expand(v)
}

// mapPut implements both put/3 and replace!/3: the table gives them an
// identical structural contract (neither checks real presence — that
// is a runtime concern replace! alone has, not something this engine
// can see from field shape).
func (c *Context) mapPut(m, key, val lattice.Value) lattice.Value {
	fields, ok := c.fieldsOf(m)
	if !ok {
		return lattice.None
	}
	return c.keyedResult(m, key, fields, func(atom string) lattice.Value {
		// val is stored unexpanded: put/3 preserves laziness, matching how
		// the rest of a Map's field list is never eagerly forced.
		return c.retagged(m, lattice.WithField(fields, atom, val))
	})
}

func (c *Context) mapPutNew(m, key, val lattice.Value) lattice.Value {
	fields, ok := c.fieldsOf(m)
	if !ok {
		return lattice.None
	}
	return c.keyedResult(m, key, fields, func(atom string) lattice.Value {
		if _, found := lattice.FieldOf(fields, atom); found {
			return c.retagged(m, fields)
		}
		return c.retagged(m, lattice.WithField(fields, atom, val))
	})
}

func (c *Context) mapDelete(m, key lattice.Value) lattice.Value {
	fields, ok := c.fieldsOf(m)
	if !ok {
		return lattice.None
	}
	return c.keyedResult(m, key, fields, func(atom string) lattice.Value {
		return c.retagged(m, lattice.WithoutField(fields, atom))
	})
}

func (c *Context) mapMerge2(a, b lattice.Value) lattice.Value {
	af, ok := c.fieldsOf(a)
	if !ok {
		return lattice.None
	}
	bf, ok := c.fieldsOf(b)
	if !ok {
		return lattice.None
	}
	out := append([]lattice.Field{}, af...)
	for _, f := range bf {
		out = lattice.WithField(out, f.Key, f.Value)
	}
	return c.retagged(a, out)
}

// mapMerge3 is merge/3: conflicting keys (present on both sides) become
// Unknown because the caller's conflict-resolution function is opaque
// to this engine — it cannot predict which side's value, or some third
// value entirely, the function returns.
func (c *Context) mapMerge3(a, b lattice.Value) lattice.Value {
	af, ok := c.fieldsOf(a)
	if !ok {
		return lattice.None
	}
	bf, ok := c.fieldsOf(b)
	if !ok {
		return lattice.None
	}
	out := append([]lattice.Field{}, af...)
	for _, f := range bf {
		if _, collides := lattice.FieldOf(af, f.Key); collides {
			out = lattice.WithField(out, f.Key, lattice.Unknown)
		} else {
			out = lattice.WithField(out, f.Key, f.Value)
		}
	}
	return c.retagged(a, out)
}

// mapUpdate implements both update/4 and update!/3: per the table,
// the result is simply the original map with the targeted key set to
// Unknown, regardless of whether the key was already present — the
// updating function's (or the default's) contribution cannot be
// predicted from here either way.
func (c *Context) mapUpdate(m, key lattice.Value) lattice.Value {
	fields, ok := c.fieldsOf(m)
	if !ok {
		return lattice.None
	}
	return c.keyedResult(m, key, fields, func(atom string) lattice.Value {
		return c.retagged(m, lattice.WithField(fields, atom, lattice.Unknown))
	})
}

// mapFromStruct is from_struct/1: a struct argument drops its
// __struct__ tag; a bare module atom synthesizes the empty struct for
// that module (picking up any struct-registry default fields through
// the normal Struct expansion path) before doing the same.
func (c *Context) mapFromStruct(s lattice.Value) lattice.Value {
	v := c.expand(s)
	if st, ok := v.(lattice.Struct); ok {
		return lattice.Map{Fields: lattice.WithoutField(st.Fields, "__struct__")}
	}
	if atom, ok := v.(lattice.Atom); ok {
		synthesized := c.expand(lattice.Struct{Module: atom})
		if st, ok := synthesized.(lattice.Struct); ok {
			return lattice.Map{Fields: lattice.WithoutField(st.Fields, "__struct__")}
		}
		return lattice.None
	}
	if lattice.IsUnknown(v) {
		return lattice.Unknown
	}
	return lattice.None
}

// retagged rebuilds base's container (Map stays Map, Struct stays
// Struct with its module preserved) around a new field list, matching
// how every Map.* mutation in this table preserves struct-ness.
func (c *Context) retagged(base lattice.Value, fields []lattice.Field) lattice.Value {
	b := c.expand(base)
	if st, ok := b.(lattice.Struct); ok {
		return lattice.Struct{Fields: fields, Module: st.Module}
	}
	return lattice.Map{Fields: fields}
}
