// Package resolver maps local $ref strings to definition entries of a root
// schema.
package resolver

import (
	js "github.com/reoring/skemadiff/jsonschema"
)

// Resolver is built once per root document. Lookup is exact-string.
type Resolver struct {
	defs   map[string]*js.Schema
	lookup map[string]string // reference -> definition key
}

// New indexes every definition of root under all the spellings a local
// reference may use:
//
//	#/definitions/<name>, #/$defs/<name>
//	<root $id>#/definitions/<name>, <root $id>#/$defs/<name>
//	<definition $id>
func New(root *js.Schema) *Resolver {
	r := &Resolver{
		defs:   root.Definitions,
		lookup: make(map[string]string, 2*len(root.Definitions)),
	}
	for key, def := range root.Definitions {
		if def != nil && def.ID != "" {
			r.lookup[def.ID] = key
		}
		if root.ID != "" {
			r.lookup[root.ID+"#/definitions/"+key] = key
			r.lookup[root.ID+"#/$defs/"+key] = key
		}
		r.lookup["#/definitions/"+key] = key
		r.lookup["#/$defs/"+key] = key
	}
	return r
}

// Resolve returns the definition that ref points to. The returned schema is
// owned by the root document; callers clone before mutating.
func (r *Resolver) Resolve(ref string) (*js.Schema, bool) {
	key, ok := r.lookup[ref]
	if !ok {
		return nil, false
	}
	s, ok := r.defs[key]
	return s, ok
}

// Len reports the number of indexed reference spellings.
func (r *Resolver) Len() int { return len(r.lookup) }
