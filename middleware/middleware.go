// Package middleware gates schema uploads on backward compatibility: the
// request body is diffed against the currently registered schema and
// breaking changes are rejected before the handler runs. Framework adapters
// live in the gin and echo submodules.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	skemadiff "github.com/reoring/skemadiff"
	"github.com/reoring/skemadiff/source"
)

// DefaultMaxBody bounds the request body read by the gate.
const DefaultMaxBody = 4 << 20

// Baseline returns the schema a request is checked against. ok=false means
// nothing is registered yet, so any schema is accepted.
type Baseline func(r *http.Request) (schema any, ok bool, err error)

// Options configures a Gate.
type Options struct {
	// AllowBreaking records breaking changes without rejecting them.
	AllowBreaking bool
	MaxBody       int64
	Diff          skemadiff.DiffOpt
}

// Result is what the gate learned about an accepted upload.
type Result struct {
	// Schema is the decoded request body.
	Schema   any
	Changes  []skemadiff.Change
	Breaking []skemadiff.Change
	// First is set when there was no baseline to compare against.
	First bool
}

// RejectError is returned by Check when the upload is refused. Status is the
// HTTP status to answer with; Payload the JSON body.
type RejectError struct {
	Status  int
	Payload map[string]any
}

func (e *RejectError) Error() string { return fmt.Sprintf("middleware: rejected with status %d", e.Status) }

// Gate performs the compatibility check independently of any framework.
type Gate struct {
	baseline Baseline
	opts     Options
}

func NewGate(baseline Baseline, opts Options) *Gate {
	if opts.MaxBody <= 0 {
		opts.MaxBody = DefaultMaxBody
	}
	return &Gate{baseline: baseline, opts: opts}
}

// Check reads the request body and diffs it against the baseline. The body
// is consumed; the decoded schema is returned in Result.
func (g *Gate) Check(r *http.Request) (Result, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, g.opts.MaxBody+1))
	if err != nil {
		return Result{}, err
	}
	if int64(len(body)) > g.opts.MaxBody {
		return Result{}, &RejectError{Status: http.StatusRequestEntityTooLarge, Payload: map[string]any{"error": "schema too large"}}
	}
	doc, err := source.Decode(body, source.Options{Strict: true})
	if err != nil {
		return Result{}, reject(http.StatusBadRequest, skemadiff.RHS, err)
	}
	// Validate the upload on its own so a bad schema is reported even when
	// nothing is registered yet.
	if _, err := skemadiff.Compile(doc); err != nil {
		return Result{}, rejectIssues(http.StatusBadRequest, skemadiff.RHS, err)
	}

	base, ok, err := g.baseline(r)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Schema: doc, First: true}, nil
	}
	changes, err := skemadiff.Diff(base, doc, g.opts.Diff)
	if err != nil {
		if iss, isIssues := skemadiff.AsIssues(err); isIssues {
			return Result{}, &RejectError{Status: http.StatusUnprocessableEntity, Payload: ErrorPayload(iss)}
		}
		return Result{}, err
	}
	res := Result{Schema: doc, Changes: changes, Breaking: skemadiff.Breaking(changes)}
	if len(res.Breaking) > 0 && !g.opts.AllowBreaking {
		return Result{}, &RejectError{Status: http.StatusConflict, Payload: BreakingPayload(res.Breaking)}
	}
	return res, nil
}

func reject(status int, doc skemadiff.Document, err error) error {
	var dk *source.DuplicateKeyError
	code := skemadiff.CodeParseError
	path := ""
	if errors.As(err, &dk) {
		code, path = skemadiff.CodeDuplicateKey, dk.Path
	}
	return &RejectError{Status: status, Payload: ErrorPayload(skemadiff.Issues{{Document: doc, Path: path, Code: code, Message: err.Error()}})}
}

func rejectIssues(status int, doc skemadiff.Document, err error) error {
	iss, ok := skemadiff.AsIssues(err)
	if !ok {
		return reject(status, doc, err)
	}
	for i := range iss {
		iss[i].Document = doc
	}
	return &RejectError{Status: status, Payload: ErrorPayload(iss)}
}

type ctxKeyResult struct{}

// ContextWithResult attaches a Result to the context.
func ContextWithResult(ctx context.Context, res Result) context.Context {
	return context.WithValue(ctx, ctxKeyResult{}, res)
}

// ResultFromContext retrieves the Result stored by the gate.
func ResultFromContext(ctx context.Context) (Result, bool) {
	v, ok := ctx.Value(ctxKeyResult{}).(Result)
	return v, ok
}

// Handler wraps next with the gate for plain net/http servers.
func Handler(g *Gate, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, err := g.Check(r)
		if err != nil {
			WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithResult(r.Context(), res)))
	})
}

// WriteError answers a failed Check.
func WriteError(w http.ResponseWriter, err error) {
	status, payload := StatusPayload(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// StatusPayload maps a Check error to a status code and JSON body.
func StatusPayload(err error) (int, map[string]any) {
	var re *RejectError
	if errors.As(err, &re) {
		return re.Status, re.Payload
	}
	return http.StatusInternalServerError, map[string]any{"error": err.Error()}
}

// ReportedChange marshals with its is_breaking flag.
type ReportedChange skemadiff.Change

func (c ReportedChange) MarshalJSON() ([]byte, error) {
	return skemadiff.Change(c).MarshalJSONWithBreaking()
}

// Report converts changes for a JSON response.
func Report(changes []skemadiff.Change) []ReportedChange {
	out := make([]ReportedChange, len(changes))
	for i, c := range changes {
		out[i] = ReportedChange(c)
	}
	return out
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues skemadiff.Issues) map[string]any {
	type issue struct {
		Document string `json:"document,omitempty"`
		Path     string `json:"path,omitempty"`
		Code     string `json:"code"`
		Message  string `json:"message,omitempty"`
	}
	out := make([]issue, len(issues))
	for i, it := range issues {
		out[i] = issue{Document: string(it.Document), Path: it.Path, Code: it.Code, Message: it.Message}
	}
	return map[string]any{"issues": out}
}

// BreakingPayload shapes a 409 response.
func BreakingPayload(breaking []skemadiff.Change) map[string]any {
	return map[string]any{"error": "incompatible schema change", "breaking": Report(breaking)}
}
