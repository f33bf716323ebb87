// Package combine implements the intersection-combination algebra: the
// pairwise meet of two expanded types used to fold multiple constraints
// on the same expression.
package combine

import "github.com/elixir-tools/texpand/internal/core/lattice"

// Combine computes the meet (greatest lower bound) of a and b.
//
// None absorbs, Unknown is the identity, and equal operands collapse —
// these three rules are checked before any of the structural cases, so
// they hold regardless of shape. The combiner is associative up to
// None-propagation.
func Combine(a, b lattice.Value) lattice.Value {
	if lattice.IsNone(a) || lattice.IsNone(b) {
		return lattice.None
	}
	if lattice.IsUnknown(a) {
		return b
	}
	if lattice.IsUnknown(b) {
		return a
	}
	if lattice.Equal(a, b) {
		return a
	}

	switch x := a.(type) {
	case lattice.Struct:
		if y, ok := b.(lattice.Struct); ok {
			return combineStructs(x, y)
		}
		if y, ok := b.(lattice.Map); ok {
			return combineStructMap(x, y)
		}
		return lattice.None

	case lattice.Map:
		if y, ok := b.(lattice.Map); ok {
			return combineMaps(x, y)
		}
		if y, ok := b.(lattice.Struct); ok {
			return combineStructMap(y, x)
		}
		return lattice.None

	case lattice.Tuple:
		y, ok := b.(lattice.Tuple)
		if !ok || len(x.Elems) != len(y.Elems) {
			return lattice.None
		}
		elems := make([]lattice.Value, len(x.Elems))
		for i := range x.Elems {
			m := Combine(x.Elems[i], y.Elems[i])
			if lattice.IsNone(m) {
				return lattice.None
			}
			elems[i] = m
		}
		return lattice.Tuple{Elems: elems}

	case lattice.Union:
		return combineUnion(x.Variants, b)
	}

	if y, ok := b.(lattice.Union); ok {
		return combineUnion(y.Variants, a)
	}

	return lattice.None
}

// moduleOf returns the known module atom name and whether it is known.
func moduleOf(s lattice.Struct) (string, bool) {
	if s.Module == nil || lattice.IsUnknown(s.Module) {
		return "", false
	}
	if a, ok := s.Module.(lattice.Atom); ok {
		return a.A, true
	}
	return "", false
}

func combineStructs(x, y lattice.Struct) lattice.Value {
	xMod, xKnown := moduleOf(x)
	yMod, yKnown := moduleOf(y)

	switch {
	case xKnown && yKnown:
		if xMod != yMod {
			return lattice.None
		}
		return combineKeySet(x.Fields, y.Fields, x.Fields, x.Module)
	case xKnown && !yKnown:
		return combineKeySet(x.Fields, y.Fields, x.Fields, x.Module)
	case !xKnown && yKnown:
		return combineKeySet(x.Fields, y.Fields, y.Fields, y.Module)
	default:
		keys := lattice.SortedKeys(x.Fields, y.Fields)
		fields, ok := combineFields(keys, x.Fields, y.Fields)
		if !ok {
			return lattice.None
		}
		return lattice.Struct{Fields: fields, Module: lattice.Unknown}
	}
}

// combineKeySet combines x and y over exactly the keys present in
// keySource (the "typed side"), per §4.5's rule that a known struct
// module narrows the key set.
func combineKeySet(xFields, yFields, keySource []lattice.Field, module lattice.Value) lattice.Value {
	keys := make([]string, len(keySource))
	for i, f := range keySource {
		keys[i] = f.Key
	}
	fields, ok := combineFields(keys, xFields, yFields)
	if !ok {
		return lattice.None
	}
	return lattice.Struct{Fields: fields, Module: module}
}

func combineMaps(x, y lattice.Map) lattice.Value {
	keys := lattice.SortedKeys(x.Fields, y.Fields)
	fields, ok := combineFields(keys, x.Fields, y.Fields)
	if !ok {
		return lattice.None
	}
	return lattice.Map{Fields: fields}
}

func combineStructMap(s lattice.Struct, m lattice.Map) lattice.Value {
	_, known := moduleOf(s)
	var keys []string
	if known {
		for _, f := range s.Fields {
			keys = append(keys, f.Key)
		}
	} else {
		keys = lattice.SortedKeys(s.Fields, m.Fields)
	}
	fields, ok := combineFields(keys, s.Fields, m.Fields)
	if !ok {
		return lattice.None
	}
	return lattice.Struct{Fields: fields, Module: s.Module}
}

func combineFields(keys []string, a, b []lattice.Field) ([]lattice.Field, bool) {
	out := make([]lattice.Field, 0, len(keys))
	for _, k := range keys {
		av, aok := lattice.FieldOf(a, k)
		bv, bok := lattice.FieldOf(b, k)
		var merged lattice.Value
		switch {
		case aok && bok:
			merged = Combine(av, bv)
		case aok:
			merged = av
		case bok:
			merged = bv
		default:
			merged = lattice.Unknown
		}
		if lattice.IsNone(merged) {
			return nil, false
		}
		out = append(out, lattice.Field{Key: k, Value: merged})
	}
	return out, true
}

func combineUnion(variants []lattice.Value, other lattice.Value) lattice.Value {
	for _, v := range variants {
		m := Combine(v, other)
		if !lattice.IsNone(m) {
			return m
		}
	}
	return lattice.None
}
