package skemadiff

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/skemadiff/internal/engine"
	js "github.com/reoring/skemadiff/jsonschema"
	"github.com/reoring/skemadiff/source"
)

// Issue codes.
const (
	CodeParseError    = "parse_error"
	CodeDuplicateKey  = "duplicate_key"
	CodeInvalidSchema = "invalid_schema"
	CodeDiffDepth     = "diff_depth"
)

// ErrDiffDepth is matched by errors.Is when a diff exceeded its depth bound.
var ErrDiffDepth = errors.New("skemadiff: maximum diff depth exceeded")

// Issue represents a single failure.
type Issue struct {
	// Document is the side the issue was found in; empty for diff issues.
	Document Document
	// Path is a JSON Pointer into the document for input issues and a change
	// path (".a.?") for diff_depth.
	Path    string
	Code    string
	Message string
	Cause   error
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_schema in rhs at /properties/a: ...
		b.WriteString(it.Code)
		if it.Document != "" {
			fmt.Fprintf(b, " in %s", it.Document)
		}
		if it.Path != "" {
			fmt.Fprintf(b, " at %s", it.Path)
		}
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// Unwrap exposes the underlying causes to errors.Is and errors.As.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// inputIssue classifies a failure to load or decode one side.
func inputIssue(doc Document, err error) Issue {
	var dk *source.DuplicateKeyError
	if errors.As(err, &dk) {
		return Issue{Document: doc, Path: dk.Path, Code: CodeDuplicateKey, Message: fmt.Sprintf("duplicate key %q", dk.Key), Cause: err}
	}
	var de *js.DecodeError
	if errors.As(err, &de) {
		return Issue{Document: doc, Path: de.Path, Code: CodeInvalidSchema, Message: de.Message, Cause: err}
	}
	return Issue{Document: doc, Code: CodeParseError, Message: err.Error(), Cause: err}
}

func diffIssues(err error) Issues {
	var de *engine.DepthError
	if errors.As(err, &de) {
		return AppendIssues(nil, Issue{
			Path:    de.Path,
			Code:    CodeDiffDepth,
			Message: fmt.Sprintf("maximum depth %d exceeded", de.Limit),
			Cause:   fmt.Errorf("%w: %w", ErrDiffDepth, err),
		})
	}
	return AppendIssues(nil, Issue{Code: CodeParseError, Message: err.Error(), Cause: err})
}
