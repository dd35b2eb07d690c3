package engine

import (
	"maps"
	"reflect"
	"slices"
	"strconv"

	"github.com/reoring/skemadiff/change"
	js "github.com/reoring/skemadiff/jsonschema"
)

func (w *Walker) diffConst(path string, lhs, rhs *js.Schema) {
	normalizeConst(lhs)
	normalizeConst(rhs)
	switch {
	case lhs.HasConst && !rhs.HasConst:
		w.emit(path, change.ConstRemove{Removed: lhs.Const})
	case !lhs.HasConst && rhs.HasConst:
		w.emit(path, change.ConstAdd{Added: rhs.Const})
	case lhs.HasConst && rhs.HasConst && !reflect.DeepEqual(lhs.Const, rhs.Const):
		w.emit(path, change.ConstRemove{Removed: lhs.Const})
		w.emit(path, change.ConstAdd{Added: rhs.Const})
	}
}

func (w *Walker) diffProperties(depth int, path string, lhs, rhs *js.Schema) error {
	lp, rp := lhs.Object.Properties, rhs.Object.Properties
	lhsOpen := lhs.Object.AdditionalProperties == nil || lhs.Object.AdditionalProperties.IsTrue()

	for _, name := range slices.Sorted(maps.Keys(lp)) {
		if _, ok := rp[name]; !ok {
			w.emit(path, change.PropertyRemove{LHSAdditionalProperties: lhsOpen, Removed: name})
		}
	}
	for _, name := range slices.Sorted(maps.Keys(rp)) {
		if _, ok := lp[name]; !ok {
			w.emit(path, change.PropertyAdd{LHSAdditionalProperties: lhsOpen, Added: name})
		}
	}
	for _, name := range slices.Sorted(maps.Keys(lp)) {
		r, ok := rp[name]
		if !ok {
			continue
		}
		if err := w.diff(depth+1, path+"."+name, lp[name], r, false); err != nil {
			return err
		}
	}
	return nil
}

// diffRange compares the four numeric bounds independently. When a side has
// no bounds of its own and fallThrough is set, bounds are read from its only
// anyOf branch that carries any.
func (w *Walker) diffRange(path string, lhs, rhs *js.Schema, fallThrough bool) {
	l := numberFacet(lhs, fallThrough)
	r := numberFacet(rhs, fallThrough)
	w.diffBound(path, change.Minimum, l.Minimum, r.Minimum)
	w.diffBound(path, change.Maximum, l.Maximum, r.Maximum)
	w.diffBound(path, change.ExclusiveMinimum, l.ExclusiveMinimum, r.ExclusiveMinimum)
	w.diffBound(path, change.ExclusiveMaximum, l.ExclusiveMaximum, r.ExclusiveMaximum)
}

func numberFacet(s *js.Schema, fallThrough bool) js.NumberFacet {
	if !s.Number.IsZero() || !fallThrough {
		return s.Number
	}
	var found *js.Schema
	for _, b := range s.AnyOf {
		if b.Number.IsZero() {
			continue
		}
		if found != nil {
			return js.NumberFacet{}
		}
		found = b
	}
	if found == nil {
		return js.NumberFacet{}
	}
	return found.Number
}

func (w *Walker) diffBound(path string, b change.Bound, l, r *float64) {
	switch {
	case l != nil && r == nil:
		w.emit(path, change.RangeRemove{Removed: change.Range{Bound: b, Value: *l}})
	case l == nil && r != nil:
		w.emit(path, change.RangeAdd{Added: change.Range{Bound: b, Value: *r}})
	case l != nil && r != nil && *l != *r:
		w.emit(path, change.RangeChange{
			OldValue: change.Range{Bound: b, Value: *l},
			NewValue: change.Range{Bound: b, Value: *r},
		})
	}
}

// diffAdditionalProperties recurses only when both sides state the keyword
// and the schemas differ. Absent-versus-present is reflected in the property
// changes through LHSAdditionalProperties.
func (w *Walker) diffAdditionalProperties(depth int, path string, lhs, rhs *js.Schema) error {
	l, r := lhs.Object.AdditionalProperties, rhs.Object.AdditionalProperties
	if l == nil || r == nil || js.Equal(l, r) {
		return nil
	}
	return w.diff(depth+1, path+".<additionalProperties>", l, r, false)
}

func (w *Walker) diffItems(depth int, path string, lhs, rhs *js.Schema) error {
	l, r := lhs.Array.Items, rhs.Array.Items
	if l == nil || r == nil {
		return nil
	}
	switch {
	case !l.IsTuple() && !r.IsTuple():
		return w.diff(depth+1, path+".?", l.Single, r.Single, false)

	case l.IsTuple() && r.IsTuple():
		if len(l.Tuple) != len(r.Tuple) {
			w.emit(path, change.TupleChange{NewLength: len(r.Tuple)})
		}
		for i := range min(len(l.Tuple), len(r.Tuple)) {
			if err := w.diff(depth+1, indexPath(path, i), l.Tuple[i], r.Tuple[i], false); err != nil {
				return err
			}
		}

	case !l.IsTuple() && r.IsTuple():
		w.emit(path, change.ArrayToTuple{NewLength: len(r.Tuple)})
		for i, item := range r.Tuple {
			if err := w.diff(depth+1, indexPath(path, i), l.Single, item, false); err != nil {
				return err
			}
		}

	default:
		w.emit(path, change.TupleToArray{OldLength: len(l.Tuple)})
		for i, item := range l.Tuple {
			if err := w.diff(depth+1, indexPath(path, i), item, r.Single, false); err != nil {
				return err
			}
		}
	}
	return nil
}

func indexPath(path string, i int) string { return path + "." + strconv.Itoa(i) }

func (w *Walker) diffRequired(path string, lhs, rhs *js.Schema) {
	l, r := stringSet(lhs.Object.Required), stringSet(rhs.Object.Required)
	for _, name := range slices.Sorted(maps.Keys(l)) {
		if _, ok := r[name]; !ok {
			w.emit(path, change.RequiredRemove{Property: name})
		}
	}
	for _, name := range slices.Sorted(maps.Keys(r)) {
		if _, ok := l[name]; !ok {
			w.emit(path, change.RequiredAdd{Property: name})
		}
	}
}

func stringSet(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, s := range in {
		out[s] = struct{}{}
	}
	return out
}

func (w *Walker) diffStrings(path string, lhs, rhs *js.Schema) {
	l, r := lhs.String, rhs.String
	w.emitOptional(path, diffOptional(l.Format, r.Format,
		func(v string) change.Payload { return change.FormatAdd{Added: v} },
		func(v string) change.Payload { return change.FormatRemove{Removed: v} },
		func(o, n string) change.Payload { return change.FormatChange{OldFormat: o, NewFormat: n} },
	))
	w.emitOptional(path, diffOptional(l.Pattern, r.Pattern,
		func(v string) change.Payload { return change.PatternAdd{Added: v} },
		func(v string) change.Payload { return change.PatternRemove{Removed: v} },
		func(o, n string) change.Payload { return change.PatternChange{OldPattern: o, NewPattern: n} },
	))
	w.emitOptional(path, diffOptional(l.MinLength, r.MinLength,
		func(v uint32) change.Payload { return change.MinLengthAdd{Added: v} },
		func(v uint32) change.Payload { return change.MinLengthRemove{Removed: v} },
		func(o, n uint32) change.Payload { return change.MinLengthChange{OldValue: o, NewValue: n} },
	))
	w.emitOptional(path, diffOptional(l.MaxLength, r.MaxLength,
		func(v uint32) change.Payload { return change.MaxLengthAdd{Added: v} },
		func(v uint32) change.Payload { return change.MaxLengthRemove{Removed: v} },
		func(o, n uint32) change.Payload { return change.MaxLengthChange{OldValue: o, NewValue: n} },
	))
}

func (w *Walker) emitOptional(path string, p change.Payload) {
	if p != nil {
		w.emit(path, p)
	}
}

// diffOptional compares an optional keyword: absent to present is an add,
// present to absent a remove, and two different values a change.
func diffOptional[T comparable](l, r *T, add, remove func(T) change.Payload, chg func(T, T) change.Payload) change.Payload {
	switch {
	case l == nil && r != nil:
		return add(*r)
	case l != nil && r == nil:
		return remove(*l)
	case l != nil && r != nil && *l != *r:
		return chg(*l, *r)
	}
	return nil
}
