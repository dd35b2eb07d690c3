// Package source loads schema documents from JSON or YAML input into the
// plain Go values (map[string]any, []any, ...) accepted by the decoder in
// package jsonschema.
//
// Kubernetes CustomResourceDefinitions are recognised and unwrapped to their
// served openAPIV3Schema, so two CRD manifests can be diffed directly.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format selects the input syntax.
type Format int

const (
	// FormatAuto picks YAML for .yaml/.yml files and JSON otherwise. For
	// unnamed input it sniffs the first non-blank byte.
	FormatAuto Format = iota
	FormatJSON
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "auto"
	}
}

// ParseFormat accepts "auto", "json", "yaml" and "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatAuto, fmt.Errorf("source: unknown format %q", s)
}

func (f *Format) UnmarshalText(b []byte) error {
	v, err := ParseFormat(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Options controls loading.
type Options struct {
	Format Format
	// Strict rejects documents with duplicate object keys instead of
	// keeping the last occurrence.
	Strict bool
	// CRDKind picks the CustomResourceDefinition with this spec.names.kind
	// out of a multi-document stream. Empty selects the first document.
	CRDKind string
}

var (
	// ErrEmpty is returned when the input holds no document.
	ErrEmpty = errors.New("source: empty input")
	// ErrCRDNotFound is returned when Options.CRDKind matches no document.
	ErrCRDNotFound = errors.New("source: CRD kind not found")
)

// DuplicateKeyError reports an object key that occurs twice. Path is the
// JSON Pointer of the enclosing object. Line and Col locate the duplicate
// in YAML input; Offset is the byte offset after the key in JSON input and
// -1 for YAML.
type DuplicateKeyError struct {
	Key       string
	Path      string
	Line      int
	Col       int
	FirstLine int
	FirstCol  int
	Offset    int64
}

func (e *DuplicateKeyError) Error() string {
	where := e.Path
	if where == "" {
		where = "/"
	}
	if e.Line > 0 {
		return fmt.Sprintf("source: duplicate key %q in %s at %d:%d (first at %d:%d)", e.Key, where, e.Line, e.Col, e.FirstLine, e.FirstCol)
	}
	return fmt.Sprintf("source: duplicate key %q in %s at offset %d", e.Key, where, e.Offset)
}

// Decode parses data and returns the selected document.
func Decode(data []byte, opts Options) (any, error) {
	format := opts.Format
	if format == FormatAuto {
		format = sniff(data)
	}

	var docs []any
	var err error
	switch format {
	case FormatYAML:
		docs, err = decodeYAML(data, opts.Strict)
	default:
		var doc any
		doc, err = decodeJSON(data, opts.Strict)
		docs = []any{doc}
	}
	if err != nil {
		return nil, err
	}
	return selectDocument(docs, opts.CRDKind)
}

// Read consumes r and decodes it.
func Read(r io.Reader, opts Options) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("source: read: %w", err)
	}
	return Decode(data, opts)
}

// ReadFile loads a document from disk. With FormatAuto the file extension
// picks the syntax.
func ReadFile(path string, opts Options) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if opts.Format == FormatAuto {
		opts.Format = FormatFromPath(path)
	}
	v, err := Decode(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// FormatFromPath maps .yaml and .yml to FormatYAML, everything else to
// FormatJSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

func sniff(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) == 0 {
		return FormatJSON
	}
	switch trimmed[0] {
	case '{', '[':
		return FormatJSON
	}
	if bytes.HasPrefix(trimmed, []byte("true")) || bytes.HasPrefix(trimmed, []byte("false")) {
		return FormatJSON
	}
	return FormatYAML
}
