package jsonschema

import "fmt"

// Type is one of the seven primitive JSON Schema instance types.
type Type uint8

const (
	TypeString Type = iota
	TypeNumber
	TypeInteger
	TypeObject
	TypeArray
	TypeBoolean
	TypeNull
)

// AllTypes lists every primitive type in canonical order. Change streams
// iterate types in this order.
var AllTypes = [...]Type{TypeString, TypeNumber, TypeInteger, TypeObject, TypeArray, TypeBoolean, TypeNull}

var typeNames = [...]string{
	TypeString:  "string",
	TypeNumber:  "number",
	TypeInteger: "integer",
	TypeObject:  "object",
	TypeArray:   "array",
	TypeBoolean: "boolean",
	TypeNull:    "null",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// MarshalText renders the keyword spelling ("string", "integer", ...).
func (t Type) MarshalText() ([]byte, error) {
	if int(t) >= len(typeNames) {
		return nil, fmt.Errorf("jsonschema: unknown type %d", uint8(t))
	}
	return []byte(typeNames[t]), nil
}

// UnmarshalText accepts the keyword spelling.
func (t *Type) UnmarshalText(b []byte) error {
	v, ok := ParseType(string(b))
	if !ok {
		return fmt.Errorf("jsonschema: unknown type %q", string(b))
	}
	*t = v
	return nil
}

// ParseType maps a "type" keyword value to a Type.
func ParseType(s string) (Type, bool) {
	for i, n := range typeNames {
		if n == s {
			return Type(i), true
		}
	}
	return 0, false
}

// KindOf reports the instance type of a canonical JSON value (see FromValue).
// Numbers always report TypeNumber.
func KindOf(v any) Type {
	switch v.(type) {
	case nil:
		return TypeNull
	case bool:
		return TypeBoolean
	case float64:
		return TypeNumber
	case string:
		return TypeString
	case []any:
		return TypeArray
	case map[string]any:
		return TypeObject
	}
	return TypeNull
}
