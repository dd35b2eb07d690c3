// Package engine implements the recursive schema diff walker.
//
// The walker is handed (path, lhs, rhs), resolves $ref on both sides,
// normalizes both nodes (type-splitting, const rewriting), then compares
// facet by facet, emitting changes to a sink in walk order. Nodes passed in
// are never mutated; every level works on clones.
package engine

import (
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/reoring/skemadiff/change"
	js "github.com/reoring/skemadiff/jsonschema"
	"github.com/reoring/skemadiff/internal/lattice"
	"github.com/reoring/skemadiff/internal/resolver"
)

// DefaultMaxDepth bounds recursion when Options.MaxDepth is zero.
const DefaultMaxDepth = 512

// Sink receives changes synchronously, in emission order.
type Sink func(change.Change)

// Options controls a walk.
type Options struct {
	// MaxDepth bounds the recursion depth, counting $ref hops and anyOf
	// trial diffs. Zero means DefaultMaxDepth.
	MaxDepth int
	// Logger receives debug records; nil disables logging.
	Logger log.Logger
}

// DepthError is returned when a walk exceeds Options.MaxDepth, typically
// because of cyclic references.
type DepthError struct {
	Path  string
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("engine: maximum diff depth %d exceeded at %q", e.Limit, e.Path)
}

type side struct {
	root *js.Schema
	refs *resolver.Resolver
}

// Walker diffs two root documents. It holds no state between walks besides
// its configuration; separate Walkers may run concurrently.
type Walker struct {
	lhs, rhs side
	sink     Sink
	maxDepth int
	logger   log.Logger
}

// New prepares a walker over two root documents. Each side resolves
// references against its own root.
func New(lhsRoot, rhsRoot *js.Schema, sink Sink, opts Options) *Walker {
	w := &Walker{
		lhs:      side{root: lhsRoot, refs: resolver.New(lhsRoot)},
		rhs:      side{root: rhsRoot, refs: resolver.New(rhsRoot)},
		sink:     sink,
		maxDepth: opts.MaxDepth,
		logger:   opts.Logger,
	}
	if w.maxDepth <= 0 {
		w.maxDepth = DefaultMaxDepth
	}
	if w.logger == nil {
		w.logger = log.NewNopLogger()
	}
	if w.sink == nil {
		w.sink = func(change.Change) {}
	}
	return w
}

// Run diffs the two roots starting at path "".
func (w *Walker) Run() error {
	return w.diff(0, "", w.lhs.root, w.rhs.root, false)
}

func (w *Walker) emit(path string, p change.Payload) {
	w.sink(change.Change{Path: path, Change: p})
}

// diff compares one pair of nodes. comparingAnyOf suppresses the type facet
// for aligned anyOf branches; the parent reports type changes instead.
func (w *Walker) diff(depth int, path string, lhs, rhs *js.Schema, comparingAnyOf bool) error {
	if depth > w.maxDepth {
		return &DepthError{Path: path, Limit: w.maxDepth}
	}

	lhs, err := w.resolve(path, w.lhs, lhs)
	if err != nil {
		return err
	}
	rhs, err = w.resolve(path, w.rhs, rhs)
	if err != nil {
		return err
	}

	lhsSplit := w.splitTypes(path, lhs)
	rhsSplit := w.splitTypes(path, rhs)

	aligned, err := w.diffAnyOf(depth, path, lhs, rhs, rhsSplit)
	if err != nil {
		return err
	}
	if !comparingAnyOf {
		w.diffTypes(path, lhs, rhs)
	}
	w.diffConst(path, lhs, rhs)

	// A split node restates its facets through the anyOf branches.
	if lhsSplit || rhsSplit {
		return nil
	}
	if err := w.diffProperties(depth, path, lhs, rhs); err != nil {
		return err
	}
	w.diffRange(path, lhs, rhs, !aligned)
	if err := w.diffAdditionalProperties(depth, path, lhs, rhs); err != nil {
		return err
	}
	if err := w.diffItems(depth, path, lhs, rhs); err != nil {
		return err
	}
	w.diffRequired(path, lhs, rhs)
	w.diffStrings(path, lhs, rhs)
	return nil
}

// resolve follows $ref chains against the side's root and returns a clone
// the caller may rewrite. Unresolvable references leave the node as is.
func (w *Walker) resolve(path string, sd side, s *js.Schema) (*js.Schema, error) {
	for hops := 0; s.Ref != ""; hops++ {
		if hops > w.maxDepth {
			return nil, &DepthError{Path: path, Limit: w.maxDepth}
		}
		target, ok := sd.refs.Resolve(s.Ref)
		if !ok {
			level.Debug(w.logger).Log("msg", "unresolved reference", "ref", s.Ref, "path", path)
			break
		}
		s = target
	}
	return s.Clone(), nil
}

func (w *Walker) splitTypes(path string, s *js.Schema) bool {
	if !splitTypes(s) {
		return false
	}
	level.Debug(w.logger).Log("msg", "split multi-type schema", "path", path, "branches", len(s.AnyOf))
	return true
}

func (w *Walker) diffTypes(path string, lhs, rhs *js.Schema) {
	l := lattice.Of(lhs).Set()
	r := lattice.Of(rhs).Set()
	for _, t := range l.Minus(r).Kinds() {
		w.emit(path, change.TypeRemove{Removed: t})
	}
	for _, t := range r.Minus(l).Kinds() {
		w.emit(path, change.TypeAdd{Added: t})
	}
}
