package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// decodeJSON decodes exactly one JSON value. Numbers stay json.Number so
// the schema decoder sees them at full precision.
func decodeJSON(data []byte, strict bool) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmpty
	}
	if strict {
		if err := findDuplicateKey(data); err != nil {
			return nil, err
		}
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("source: json: %w", err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("source: json: unexpected data after top-level value")
	}
	return v, nil
}

type dupFrame struct {
	object       bool
	keys         map[string]struct{}
	expectingKey bool
	key          string
	index        int
}

func (f *dupFrame) segment() string {
	if f.object {
		return f.key
	}
	return strconv.Itoa(f.index)
}

func (f *dupFrame) valueDone() {
	if f.object {
		f.expectingKey = true
		return
	}
	f.index++
}

// findDuplicateKey walks the token stream and reports the first key that
// repeats within one object. Syntax errors are left to the decoder.
func findDuplicateKey(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var stack []*dupFrame

	pop := func() {
		stack = stack[:len(stack)-1]
		if n := len(stack); n > 0 {
			stack[n-1].valueDone()
		}
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil
		}

		if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectingKey {
			top := stack[n-1]
			if d, ok := tok.(json.Delim); ok && d == '}' {
				pop()
				continue
			}
			key, _ := tok.(string)
			if _, seen := top.keys[key]; seen {
				return &DuplicateKeyError{Key: key, Path: pointer(stack[:n-1]), Offset: dec.InputOffset()}
			}
			top.keys[key] = struct{}{}
			top.key = key
			top.expectingKey = false
			continue
		}

		switch tok {
		case json.Delim('{'):
			stack = append(stack, &dupFrame{object: true, keys: map[string]struct{}{}, expectingKey: true})
		case json.Delim('['):
			stack = append(stack, &dupFrame{})
		case json.Delim(']'), json.Delim('}'):
			if len(stack) > 0 {
				pop()
			}
		default:
			if n := len(stack); n > 0 {
				stack[n-1].valueDone()
			}
		}
	}
}

// pointer renders the JSON Pointer of the value currently open in the
// innermost frame of stack.
func pointer(stack []*dupFrame) string {
	var b strings.Builder
	for _, f := range stack {
		b.WriteByte('/')
		seg := strings.ReplaceAll(f.segment(), "~", "~0")
		b.WriteString(strings.ReplaceAll(seg, "/", "~1"))
	}
	return b.String()
}
