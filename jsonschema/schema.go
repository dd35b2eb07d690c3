package jsonschema

import (
	"reflect"
	"slices"
)

// Schema is the subset of a JSON Schema document that the diff engine
// understands. Keywords outside this subset are dropped while decoding.
//
// The boolean schemas decode to plain nodes: true is the empty schema and
// false is {"not": {}}.
type Schema struct {
	ID  string // $id
	Ref string // $ref

	// Type holds the declared "type" keyword; nil when absent.
	Type []Type

	// Const is the canonical "const" value; HasConst distinguishes an
	// absent keyword from "const": null.
	Const    any
	HasConst bool

	// Enum is carried through unchanged; it does not take part in diffs.
	Enum []any

	Number NumberFacet
	String StringFacet
	Object ObjectFacet
	Array  ArrayFacet

	AnyOf []*Schema
	Not   *Schema

	// Definitions merges "definitions" and "$defs". Only the root table is
	// consulted when resolving references.
	Definitions map[string]*Schema
}

// NumberFacet groups the keywords that apply to numbers and integers.
type NumberFacet struct {
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
}

func (f NumberFacet) IsZero() bool {
	return f.Minimum == nil && f.Maximum == nil && f.ExclusiveMinimum == nil && f.ExclusiveMaximum == nil
}

// StringFacet groups the keywords that apply to strings.
type StringFacet struct {
	MinLength *uint32
	MaxLength *uint32
	Pattern   *string
	Format    *string
}

func (f StringFacet) IsZero() bool {
	return f.MinLength == nil && f.MaxLength == nil && f.Pattern == nil && f.Format == nil
}

// ObjectFacet groups the keywords that apply to objects.
type ObjectFacet struct {
	Properties map[string]*Schema
	Required   []string
	// AdditionalProperties is nil when the keyword is absent.
	AdditionalProperties *Schema
}

func (f ObjectFacet) IsZero() bool {
	return f.Properties == nil && f.Required == nil && f.AdditionalProperties == nil
}

// ArrayFacet groups the keywords that apply to arrays.
type ArrayFacet struct {
	Items *Items
}

func (f ArrayFacet) IsZero() bool { return f.Items == nil }

// Items is either the single-schema ("array") form or the tuple form of the
// "items" keyword. Single is nil exactly when the tuple form is used.
type Items struct {
	Single *Schema
	Tuple  []*Schema
}

// IsTuple reports whether items uses the tuple form.
func (it *Items) IsTuple() bool { return it != nil && it.Single == nil }

// True returns the schema that admits every instance.
func True() *Schema { return &Schema{} }

// False returns the schema that admits no instance.
func False() *Schema { return &Schema{Not: True()} }

// IsTrue reports whether s is structurally the open schema. $id is ignored.
func (s *Schema) IsTrue() bool {
	if s == nil {
		return false
	}
	probe := *s
	probe.ID = ""
	return reflect.DeepEqual(probe, Schema{})
}

// HasType reports whether the "type" keyword is present.
func (s *Schema) HasType() bool { return len(s.Type) > 0 }

// Equal reports structural equality.
func Equal(a, b *Schema) bool { return reflect.DeepEqual(a, b) }

// Clone returns a deep copy of s.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := &Schema{
		ID:       s.ID,
		Ref:      s.Ref,
		Type:     slices.Clone(s.Type),
		Const:    CloneValue(s.Const),
		HasConst: s.HasConst,
		Number: NumberFacet{
			Minimum:          clonePtr(s.Number.Minimum),
			Maximum:          clonePtr(s.Number.Maximum),
			ExclusiveMinimum: clonePtr(s.Number.ExclusiveMinimum),
			ExclusiveMaximum: clonePtr(s.Number.ExclusiveMaximum),
		},
		String: StringFacet{
			MinLength: clonePtr(s.String.MinLength),
			MaxLength: clonePtr(s.String.MaxLength),
			Pattern:   clonePtr(s.String.Pattern),
			Format:    clonePtr(s.String.Format),
		},
		Object: ObjectFacet{
			Properties:           cloneSchemaMap(s.Object.Properties),
			Required:             slices.Clone(s.Object.Required),
			AdditionalProperties: s.Object.AdditionalProperties.Clone(),
		},
		AnyOf:       cloneSchemas(s.AnyOf),
		Not:         s.Not.Clone(),
		Definitions: cloneSchemaMap(s.Definitions),
	}
	if s.Enum != nil {
		out.Enum = make([]any, len(s.Enum))
		for i, v := range s.Enum {
			out.Enum[i] = CloneValue(v)
		}
	}
	if it := s.Array.Items; it != nil {
		out.Array.Items = &Items{Single: it.Single.Clone(), Tuple: cloneSchemas(it.Tuple)}
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSchemas(in []*Schema) []*Schema {
	if in == nil {
		return nil
	}
	out := make([]*Schema, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}

func cloneSchemaMap(in map[string]*Schema) map[string]*Schema {
	if in == nil {
		return nil
	}
	out := make(map[string]*Schema, len(in))
	for k, s := range in {
		out[k] = s.Clone()
	}
	return out
}

// CloneValue deep-copies a canonical JSON value.
func CloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = CloneValue(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = CloneValue(t[i])
		}
		return out
	default:
		return v
	}
}
