package skemadiff

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/reoring/skemadiff/change"
	"github.com/reoring/skemadiff/internal/engine"
	js "github.com/reoring/skemadiff/jsonschema"
	"github.com/reoring/skemadiff/source"
)

// Diff compares lhs (old) against rhs (new) and returns the changes in walk
// order. Each side may be a *jsonschema.Schema, raw JSON or YAML bytes
// ([]byte, json.RawMessage), or a decoded JSON value (map[string]any, bool).
//
// Errors are Issues: invalid input is reported per side, and exceeding the
// depth bound yields a diff_depth issue matching ErrDiffDepth.
func Diff(lhs, rhs any, opts ...DiffOpt) ([]Change, error) {
	changes := []Change{}
	err := Walk(lhs, rhs, func(c Change) { changes = append(changes, c) }, opts...)
	if err != nil {
		return nil, err
	}
	return changes, nil
}

// Walk is Diff with a streaming sink. The sink is called synchronously in
// emission order; changes already delivered stay delivered when Walk fails.
func Walk(lhs, rhs any, sink func(Change), opts ...DiffOpt) error {
	var opt DiffOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	l, r, err := compilePair(lhs, rhs)
	if err != nil {
		return err
	}
	w := engine.New(l, r, sink, engine.Options{MaxDepth: opt.MaxDepth, Logger: opt.Logger})
	if err := w.Run(); err != nil {
		return diffIssues(err)
	}
	return nil
}

// Compile converts one document into the schema model. It accepts the same
// inputs as Diff.
func Compile(v any) (*js.Schema, error) {
	s, err := compile(v)
	if err != nil {
		return nil, AppendIssues(nil, inputIssue("", err))
	}
	return s, nil
}

// DiffFiles loads both documents concurrently and diffs them. YAML is
// picked by file extension unless src.Format says otherwise.
func DiffFiles(ctx context.Context, lhsPath, rhsPath string, src source.Options, opts ...DiffOpt) ([]Change, error) {
	var docs [2]any
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range []string{lhsPath, rhsPath} {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := source.ReadFile(p, src)
			if err != nil {
				return AppendIssues(nil, inputIssue(sideOf(i), err))
			}
			docs[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Diff(docs[0], docs[1], opts...)
}

// IsBreaking reports whether any change is breaking.
func IsBreaking(changes []Change) bool {
	for _, c := range changes {
		if c.IsBreaking() {
			return true
		}
	}
	return false
}

// Breaking filters changes down to the breaking ones.
func Breaking(changes []Change) []Change {
	out := []Change{}
	for _, c := range changes {
		if c.IsBreaking() {
			out = append(out, c)
		}
	}
	return out
}

// ParseKind resolves a change kind by name.
func ParseKind(name string) (Kind, bool) { return change.ParseKind(name) }

func sideOf(i int) Document {
	if i == 0 {
		return LHS
	}
	return RHS
}

func compilePair(lhs, rhs any) (*js.Schema, *js.Schema, error) {
	var iss Issues
	l, err := compile(lhs)
	if err != nil {
		iss = AppendIssues(iss, inputIssue(LHS, err))
	}
	r, err := compile(rhs)
	if err != nil {
		iss = AppendIssues(iss, inputIssue(RHS, err))
	}
	if len(iss) > 0 {
		return nil, nil, iss
	}
	return l, r, nil
}

func compile(v any) (*js.Schema, error) {
	switch t := v.(type) {
	case nil:
		return nil, fmt.Errorf("nil document")
	case *js.Schema:
		if t == nil {
			return nil, fmt.Errorf("nil document")
		}
		return t, nil
	case js.Schema:
		return &t, nil
	case []byte:
		return compileBytes(t)
	case json.RawMessage:
		return compileBytes(t)
	default:
		return js.FromValue(v)
	}
}

func compileBytes(b []byte) (*js.Schema, error) {
	v, err := source.Decode(b, source.Options{})
	if err != nil {
		return nil, err
	}
	return js.FromValue(v)
}
