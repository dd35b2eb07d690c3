package engine

import (
	"errors"
	"fmt"

	"github.com/go-kit/log"

	"github.com/reoring/skemadiff/change"
	js "github.com/reoring/skemadiff/jsonschema"
	"github.com/reoring/skemadiff/internal/assign"
)

// diffAnyOf pairs up the anyOf branches of both sides when both carry one.
// The shorter list is padded with false schemas; the cost of pairing (i, j)
// is the number of changes a trial diff of the two branches emits, and the
// pairing with the least total cost is diffed for real. It reports whether
// alignment ran.
func (w *Walker) diffAnyOf(depth int, path string, lhs, rhs *js.Schema, rhsSplit bool) (bool, error) {
	if lhs.AnyOf == nil || rhs.AnyOf == nil {
		return false, nil
	}
	l, r := padBranches(lhs.AnyOf, rhs.AnyOf)

	cost := make([][]int, len(l))
	for i := range l {
		cost[i] = make([]int, len(r))
		for j := range r {
			n, err := w.trialCost(depth+1, l[i], r[j])
			if err != nil {
				return false, prefixDepthError(branchPath(path, j, rhsSplit), err)
			}
			cost[i][j] = n
		}
	}

	for i, j := range assign.Solve(cost) {
		if err := w.diff(depth+1, branchPath(path, j, rhsSplit), l[i], r[j], true); err != nil {
			return false, err
		}
	}
	return true, nil
}

// trialCost counts the changes of a throwaway diff without emitting them.
func (w *Walker) trialCost(depth int, l, r *js.Schema) (int, error) {
	n := 0
	trial := *w
	trial.sink = func(change.Change) { n++ }
	trial.logger = log.NewNopLogger()
	err := trial.diff(depth, "", l, r, false)
	return n, err
}

func padBranches(l, r []*js.Schema) ([]*js.Schema, []*js.Schema) {
	n := max(len(l), len(r))
	return pad(l, n), pad(r, n)
}

func pad(in []*js.Schema, n int) []*js.Schema {
	out := make([]*js.Schema, n)
	copy(out, in)
	for i := len(in); i < n; i++ {
		out[i] = js.False()
	}
	return out
}

// branchPath names RHS branch j. A branch produced by splitting the RHS type
// list is reported at the parent path.
func branchPath(path string, j int, rhsSplit bool) string {
	if rhsSplit {
		return path
	}
	return fmt.Sprintf("%s.<anyOf:%d>", path, j)
}

func prefixDepthError(path string, err error) error {
	var de *DepthError
	if errors.As(err, &de) {
		return &DepthError{Path: path + de.Path, Limit: de.Limit}
	}
	return err
}
