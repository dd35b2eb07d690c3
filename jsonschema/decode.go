package jsonschema

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// DecodeError reports a known keyword whose value has the wrong shape.
type DecodeError struct {
	Path    string // JSON Pointer of the offending value.
	Message string
}

func (e *DecodeError) Error() string {
	path := e.Path
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("jsonschema: %s at %s", e.Message, path)
}

// FromValue builds a Schema from a decoded JSON document (map[string]any,
// []any, string, bool, nil and numbers). Numbers may be float64, any Go
// integer type, or a json.Number-like value. Unknown keywords are ignored.
func FromValue(v any) (*Schema, error) {
	return decodeSchema(v, "")
}

func decodeSchema(v any, path string) (*Schema, error) {
	switch t := v.(type) {
	case bool:
		if t {
			return True(), nil
		}
		return False(), nil
	case map[string]any:
		return decodeObject(t, path)
	default:
		return nil, &DecodeError{Path: path, Message: fmt.Sprintf("schema must be an object or a boolean, got %s", describe(v))}
	}
}

func decodeObject(m map[string]any, path string) (*Schema, error) {
	s := &Schema{}
	var err error

	if s.ID, err = optString(m, "$id", path); err != nil {
		return nil, err
	}
	if s.Ref, err = optString(m, "$ref", path); err != nil {
		return nil, err
	}
	if raw, ok := m["type"]; ok {
		if s.Type, err = decodeTypes(raw, join(path, "type")); err != nil {
			return nil, err
		}
	}
	if raw, ok := m["const"]; ok {
		if s.Const, err = canonicalValue(raw, join(path, "const")); err != nil {
			return nil, err
		}
		s.HasConst = true
	}
	if raw, ok := m["enum"]; ok {
		arr, ok := raw.([]any)
		if !ok {
			return nil, &DecodeError{Path: join(path, "enum"), Message: "enum must be an array"}
		}
		s.Enum = make([]any, len(arr))
		for i, e := range arr {
			if s.Enum[i], err = canonicalValue(e, join(join(path, "enum"), strconv.Itoa(i))); err != nil {
				return nil, err
			}
		}
	}

	if err := decodeNumberFacet(m, path, &s.Number); err != nil {
		return nil, err
	}
	if err := decodeStringFacet(m, path, &s.String); err != nil {
		return nil, err
	}
	if err := decodeObjectFacet(m, path, &s.Object); err != nil {
		return nil, err
	}

	if raw, ok := m["items"]; ok {
		p := join(path, "items")
		if arr, ok := raw.([]any); ok {
			it := &Items{Tuple: make([]*Schema, len(arr))}
			for i, e := range arr {
				if it.Tuple[i], err = decodeSchema(e, join(p, strconv.Itoa(i))); err != nil {
					return nil, err
				}
			}
			s.Array.Items = it
		} else {
			single, err := decodeSchema(raw, p)
			if err != nil {
				return nil, err
			}
			s.Array.Items = &Items{Single: single}
		}
	}

	if raw, ok := m["anyOf"]; ok {
		if s.AnyOf, err = decodeSchemaList(raw, join(path, "anyOf")); err != nil {
			return nil, err
		}
	}
	if raw, ok := m["not"]; ok {
		if s.Not, err = decodeSchema(raw, join(path, "not")); err != nil {
			return nil, err
		}
	}

	// $defs first so that "definitions" wins on a name clash.
	for _, kw := range []string{"$defs", "definitions"} {
		raw, ok := m[kw]
		if !ok {
			continue
		}
		defs, err := decodeSchemaMap(raw, join(path, kw))
		if err != nil {
			return nil, err
		}
		if s.Definitions == nil {
			s.Definitions = make(map[string]*Schema, len(defs))
		}
		for k, d := range defs {
			s.Definitions[k] = d
		}
	}
	return s, nil
}

func decodeTypes(raw any, path string) ([]Type, error) {
	switch t := raw.(type) {
	case string:
		ty, ok := ParseType(t)
		if !ok {
			return nil, &DecodeError{Path: path, Message: fmt.Sprintf("unknown type %q", t)}
		}
		return []Type{ty}, nil
	case []any:
		out := make([]Type, 0, len(t))
		for i, e := range t {
			name, ok := e.(string)
			if !ok {
				return nil, &DecodeError{Path: join(path, strconv.Itoa(i)), Message: "type entries must be strings"}
			}
			ty, ok := ParseType(name)
			if !ok {
				return nil, &DecodeError{Path: join(path, strconv.Itoa(i)), Message: fmt.Sprintf("unknown type %q", name)}
			}
			if !containsType(out, ty) {
				out = append(out, ty)
			}
		}
		if len(out) == 0 {
			return nil, &DecodeError{Path: path, Message: "type list must not be empty"}
		}
		return out, nil
	default:
		return nil, &DecodeError{Path: path, Message: "type must be a string or an array of strings"}
	}
}

func containsType(ts []Type, t Type) bool {
	for _, x := range ts {
		if x == t {
			return true
		}
	}
	return false
}

func decodeNumberFacet(m map[string]any, path string, f *NumberFacet) error {
	fields := []struct {
		kw  string
		dst **float64
	}{
		{"minimum", &f.Minimum},
		{"maximum", &f.Maximum},
		{"exclusiveMinimum", &f.ExclusiveMinimum},
		{"exclusiveMaximum", &f.ExclusiveMaximum},
	}
	for _, fl := range fields {
		raw, ok := m[fl.kw]
		if !ok {
			continue
		}
		// Draft-4 boolean exclusive bounds are outside the supported subset.
		if _, isBool := raw.(bool); isBool && strings.HasPrefix(fl.kw, "exclusive") {
			continue
		}
		n, ok := toFloat(raw)
		if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
			return &DecodeError{Path: join(path, fl.kw), Message: fl.kw + " must be a finite number"}
		}
		*fl.dst = &n
	}
	return nil
}

func decodeStringFacet(m map[string]any, path string, f *StringFacet) error {
	for _, fl := range []struct {
		kw  string
		dst **uint32
	}{
		{"minLength", &f.MinLength},
		{"maxLength", &f.MaxLength},
	} {
		raw, ok := m[fl.kw]
		if !ok {
			continue
		}
		n, err := toUint32(raw)
		if err != nil {
			return &DecodeError{Path: join(path, fl.kw), Message: fl.kw + " " + err.Error()}
		}
		*fl.dst = &n
	}
	for _, fl := range []struct {
		kw  string
		dst **string
	}{
		{"pattern", &f.Pattern},
		{"format", &f.Format},
	} {
		raw, ok := m[fl.kw]
		if !ok {
			continue
		}
		str, ok := raw.(string)
		if !ok {
			return &DecodeError{Path: join(path, fl.kw), Message: fl.kw + " must be a string"}
		}
		*fl.dst = &str
	}
	return nil
}

func decodeObjectFacet(m map[string]any, path string, f *ObjectFacet) error {
	var err error
	if raw, ok := m["properties"]; ok {
		if f.Properties, err = decodeSchemaMap(raw, join(path, "properties")); err != nil {
			return err
		}
	}
	if raw, ok := m["required"]; ok {
		arr, ok := raw.([]any)
		if !ok {
			return &DecodeError{Path: join(path, "required"), Message: "required must be an array of strings"}
		}
		f.Required = make([]string, 0, len(arr))
		for i, e := range arr {
			name, ok := e.(string)
			if !ok {
				return &DecodeError{Path: join(join(path, "required"), strconv.Itoa(i)), Message: "required entries must be strings"}
			}
			f.Required = append(f.Required, name)
		}
	}
	if raw, ok := m["additionalProperties"]; ok {
		if f.AdditionalProperties, err = decodeSchema(raw, join(path, "additionalProperties")); err != nil {
			return err
		}
	}
	return nil
}

func decodeSchemaList(raw any, path string) ([]*Schema, error) {
	arr, ok := raw.([]any)
	if !ok {
		return nil, &DecodeError{Path: path, Message: "expected an array of schemas"}
	}
	out := make([]*Schema, len(arr))
	for i, e := range arr {
		s, err := decodeSchema(e, join(path, strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func decodeSchemaMap(raw any, path string) (map[string]*Schema, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, &DecodeError{Path: path, Message: "expected an object of schemas"}
	}
	// Sorted so that the first reported error is stable.
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]*Schema, len(m))
	for _, k := range keys {
		s, err := decodeSchema(m[k], join(path, k))
		if err != nil {
			return nil, err
		}
		out[k] = s
	}
	return out, nil
}

func optString(m map[string]any, kw, path string) (string, error) {
	raw, ok := m[kw]
	if !ok {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", &DecodeError{Path: join(path, kw), Message: kw + " must be a string"}
	}
	return s, nil
}

// canonicalValue converts a decoded JSON value into the canonical shape used
// by Const and Enum: numbers become float64, containers are copied.
func canonicalValue(v any, path string) (any, error) {
	switch t := v.(type) {
	case nil, bool, string:
		return t, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			c, err := canonicalValue(vv, join(path, k))
			if err != nil {
				return nil, err
			}
			out[k] = c
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			c, err := canonicalValue(vv, join(path, strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	}
	if n, ok := toFloat(v); ok {
		return n, nil
	}
	return nil, &DecodeError{Path: path, Message: fmt.Sprintf("unsupported value %s", describe(v))}
}

// toFloat accepts float64, Go integer types and json.Number-like values
// (both encoding/json and go-json numbers satisfy the interface).
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case interface{ Float64() (float64, error) }:
		f, err := t.Float64()
		return f, err == nil
	}
	return 0, false
}

func toUint32(v any) (uint32, error) {
	var i64 int64
	switch t := v.(type) {
	case interface{ Int64() (int64, error) }:
		n, err := t.Int64()
		if err != nil {
			f, ok := toFloat(v)
			if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
				return 0, fmt.Errorf("must be a non-negative integer")
			}
			if f > math.MaxUint32 {
				return 0, fmt.Errorf("out of range")
			}
			n = int64(f)
		}
		i64 = n
	default:
		f, ok := toFloat(v)
		if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("must be a non-negative integer")
		}
		if f > math.MaxUint32 {
			return 0, fmt.Errorf("out of range")
		}
		i64 = int64(f)
	}
	n, err := safecast.Conv[uint32](i64)
	if err != nil {
		if i64 < 0 {
			return 0, fmt.Errorf("must be a non-negative integer")
		}
		return 0, fmt.Errorf("out of range")
	}
	return n, nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case []any:
		return "array"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	}
	if _, ok := toFloat(v); ok {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}

// join appends a JSON Pointer segment, escaping "~" and "/".
func join(path, seg string) string {
	seg = strings.ReplaceAll(seg, "~", "~0")
	seg = strings.ReplaceAll(seg, "/", "~1")
	return path + "/" + seg
}
