// Package lattice derives the effective type of a schema node and expands
// it into a set of primitive instance types. Integer is a sub-kind of
// Number: every set containing Number also contains Integer.
package lattice

import (
	"slices"
	"strings"

	js "github.com/reoring/skemadiff/jsonschema"
)

type class uint8

const (
	classSimple class = iota
	classMultiple
	classAny
	classNever
)

// Type is the effective type of a node: Simple(kind), Multiple(kinds), Any
// or Never. The zero value is Simple(string); use the constructors.
type Type struct {
	class class
	kinds []js.Type
}

func Simple(t js.Type) Type      { return Type{class: classSimple, kinds: []js.Type{t}} }
func Multiple(ts ...js.Type) Type { return Type{class: classMultiple, kinds: slices.Clone(ts)} }
func Any() Type                   { return Type{class: classAny} }
func Never() Type                 { return Type{class: classNever} }

// IsMultiple reports whether t is Multiple with at least two distinct kinds.
func (t Type) IsMultiple() bool { return t.class == classMultiple && len(t.kinds) > 1 }

// Kinds returns the member kinds of Simple and Multiple types.
func (t Type) Kinds() []js.Type { return slices.Clone(t.kinds) }

// Equal is structural equality.
func (t Type) Equal(o Type) bool {
	return t.class == o.class && slices.Equal(t.kinds, o.kinds)
}

func (t Type) String() string {
	switch t.class {
	case classAny:
		return "Any"
	case classNever:
		return "Never"
	case classSimple:
		return t.kinds[0].String()
	}
	names := make([]string, len(t.kinds))
	for i, k := range t.kinds {
		names[i] = k.String()
	}
	return "[" + strings.Join(names, ",") + "]"
}

// Set expands t into primitive kinds.
func (t Type) Set() Set {
	switch t.class {
	case classAny:
		return All
	case classNever:
		return 0
	}
	var s Set
	for _, k := range t.kinds {
		s = s.Add(k)
		if k == js.TypeNumber {
			s = s.Add(js.TypeInteger)
		}
	}
	return s
}

// Of derives the effective type of s without following $ref. Priority:
// type, const, non-empty properties, anyOf, not:true, then Any.
func Of(s *js.Schema) Type {
	switch {
	case len(s.Type) == 1:
		return Simple(s.Type[0])
	case len(s.Type) > 1:
		return Multiple(s.Type...)
	case s.HasConst:
		return Simple(js.KindOf(s.Const))
	case len(s.Object.Properties) > 0:
		return Simple(js.TypeObject)
	case s.AnyOf != nil:
		var u Set
		for _, b := range s.AnyOf {
			u = u.Union(Of(b).Set())
		}
		return Multiple(u.Kinds()...)
	case s.Not != nil && s.Not.IsTrue():
		return Never()
	default:
		return Any()
	}
}

// Set is a set of primitive kinds.
type Set uint8

// All contains every primitive kind.
const All Set = 1<<len(js.AllTypes) - 1

func (s Set) Has(t js.Type) bool { return s&(1<<t) != 0 }
func (s Set) Add(t js.Type) Set  { return s | 1<<t }
func (s Set) Union(o Set) Set    { return s | o }
func (s Set) Minus(o Set) Set    { return s &^ o }
func (s Set) Len() int {
	n := 0
	for _, t := range js.AllTypes {
		if s.Has(t) {
			n++
		}
	}
	return n
}

// Kinds lists the members in canonical order (string, number, integer,
// object, array, boolean, null).
func (s Set) Kinds() []js.Type {
	out := make([]js.Type, 0, len(js.AllTypes))
	for _, t := range js.AllTypes {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}
