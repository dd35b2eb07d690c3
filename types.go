package skemadiff

import (
	"github.com/go-kit/log"

	"github.com/reoring/skemadiff/change"
	"github.com/reoring/skemadiff/internal/engine"
)

// Change is one atomic change located by a path such as ".a.<anyOf:1>.?".
type Change = change.Change

// Kind names a change variant (TypeAdd, RangeChange, ...).
type Kind = change.Kind

// DefaultMaxDepth is the recursion bound used when DiffOpt.MaxDepth is zero.
const DefaultMaxDepth = engine.DefaultMaxDepth

// DiffOpt bundles diff options.
type DiffOpt struct {
	// MaxDepth bounds recursion through nested schemas and $ref hops. Cyclic
	// references fail with a diff_depth issue once it is reached.
	MaxDepth int
	// Logger receives debug records (unresolved references, type splits).
	// Nil discards them.
	Logger log.Logger
}

// Document names one side of a diff.
type Document string

const (
	LHS Document = "lhs" // The old schema.
	RHS Document = "rhs" // The new schema.
)
