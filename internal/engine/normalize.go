package engine

import (
	js "github.com/reoring/skemadiff/jsonschema"
	"github.com/reoring/skemadiff/internal/lattice"
)

// splitTypes rewrites a node that declares two or more types, and carries no
// anyOf, into {"anyOf": [project(T1), ..., project(Tn)]}. It reports whether
// the node was rewritten. Keywords that are not type-specific are dropped.
func splitTypes(s *js.Schema) bool {
	if s.AnyOf != nil {
		return false
	}
	t := lattice.Of(s)
	if !t.IsMultiple() {
		return false
	}
	kinds := t.Kinds()
	branches := make([]*js.Schema, 0, len(kinds))
	for _, k := range kinds {
		branches = append(branches, project(s, k))
	}
	*s = js.Schema{AnyOf: branches}
	return true
}

// project keeps only the facet block relevant to t.
func project(s *js.Schema, t js.Type) *js.Schema {
	out := &js.Schema{Type: []js.Type{t}}
	switch t {
	case js.TypeString:
		out.String = s.String
	case js.TypeNumber, js.TypeInteger:
		out.Number = s.Number
	case js.TypeObject:
		out.Object = s.Object
	case js.TypeArray:
		out.Array = s.Array
	}
	return out
}

// normalizeConst rewrites an object-valued const into properties whose
// schemas carry the member values as consts, recursively, so object
// constants diff property by property. Other consts are left alone.
func normalizeConst(s *js.Schema) {
	if !s.HasConst {
		return
	}
	obj, ok := s.Const.(map[string]any)
	if !ok {
		return
	}
	props := make(map[string]*js.Schema, len(obj))
	for k, v := range obj {
		child := &js.Schema{Const: v, HasConst: true}
		normalizeConst(child)
		props[k] = child
	}
	s.Const, s.HasConst = nil, false
	s.Object.Properties = props
	if len(s.Type) == 0 {
		s.Type = []js.Type{js.TypeObject}
	}
}
