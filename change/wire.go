package change

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// MarshalJSON renders the flattened wire shape: the payload fields sit next
// to "path" and a "change" discriminator holding the kind name.
//
//	{"path":".a","change":"TypeAdd","added":"string"}
func (c Change) MarshalJSON() ([]byte, error) { return c.encode(nil) }

// MarshalJSONWithBreaking is MarshalJSON plus a trailing "is_breaking" field,
// the line format of the command-line tool.
func (c Change) MarshalJSONWithBreaking() ([]byte, error) {
	b := c.IsBreaking()
	return c.encode(&b)
}

func (c Change) encode(isBreaking *bool) ([]byte, error) {
	if c.Change == nil {
		return nil, fmt.Errorf("change: nil payload at %q", c.Path)
	}
	path, err := json.Marshal(c.Path)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(c.Change)
	if err != nil {
		return nil, fmt.Errorf("change: encode %s: %w", c.Change.Kind(), err)
	}
	body = bytes.TrimSpace(body)
	if len(body) < 2 || body[0] != '{' || body[len(body)-1] != '}' {
		return nil, fmt.Errorf("change: %s payload is not an object", c.Change.Kind())
	}

	var buf bytes.Buffer
	buf.WriteString(`{"path":`)
	buf.Write(path)
	buf.WriteString(`,"change":"`)
	buf.WriteString(c.Change.Kind().String())
	buf.WriteByte('"')
	if inner := body[1 : len(body)-1]; len(bytes.TrimSpace(inner)) > 0 {
		buf.WriteByte(',')
		buf.Write(inner)
	}
	if isBreaking != nil {
		fmt.Fprintf(&buf, `,"is_breaking":%t`, *isBreaking)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON renders a range as a one-key object keyed by the bound name,
// e.g. {"minimum":1}.
func (r Range) MarshalJSON() ([]byte, error) {
	v, err := json.Marshal(r.Value)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"`)
	buf.WriteString(r.Bound.String())
	buf.WriteString(`":`)
	buf.Write(v)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
