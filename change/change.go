// Package change defines the atomic change records produced when diffing
// two JSON Schemas, and whether each change is breaking.
//
// A change is breaking when a document that validates under the new (RHS)
// schema may fail under the old (LHS) schema, i.e. the set of accepted
// documents possibly shrank. The classification is conservative.
package change

import (
	"fmt"
	"math"

	js "github.com/reoring/skemadiff/jsonschema"
)

// Change is one atomic change, located by a path such as "", ".foo",
// ".items.0", ".?", ".<additionalProperties>" or ".<anyOf:1>".
type Change struct {
	Path   string
	Change Payload
}

// Payload is implemented by every change kind below.
type Payload interface {
	Kind() Kind
	IsBreaking() bool
}

// IsBreaking reports whether the change potentially rejects documents that
// used to be accepted.
func (c Change) IsBreaking() bool { return c.Change.IsBreaking() }

// Kind reports the kind of the payload.
func (c Change) Kind() Kind { return c.Change.Kind() }

func (c Change) String() string {
	return fmt.Sprintf("%q %s %+v", c.Path, c.Change.Kind(), c.Change)
}

// TypeAdd: an instance type is now additionally allowed.
type TypeAdd struct {
	Added js.Type `json:"added"`
}

// TypeRemove: an instance type is no longer allowed.
type TypeRemove struct {
	Removed js.Type `json:"removed"`
}

// ConstAdd: a const constraint was introduced or replaced.
type ConstAdd struct {
	Added any `json:"added"`
}

// ConstRemove: a const constraint was dropped or replaced.
type ConstRemove struct {
	Removed any `json:"removed"`
}

// PropertyAdd: a property schema was added. LHSAdditionalProperties records
// whether the old object admitted arbitrary additional properties.
type PropertyAdd struct {
	LHSAdditionalProperties bool   `json:"lhs_additional_properties"`
	Added                   string `json:"added"`
}

// PropertyRemove: a property schema was removed.
type PropertyRemove struct {
	LHSAdditionalProperties bool   `json:"lhs_additional_properties"`
	Removed                 string `json:"removed"`
}

// RangeAdd: a numeric bound was introduced.
type RangeAdd struct {
	Added Range `json:"added"`
}

// RangeRemove: a numeric bound was dropped.
type RangeRemove struct {
	Removed Range `json:"removed"`
}

// RangeChange: a numeric bound moved.
type RangeChange struct {
	OldValue Range `json:"old_value"`
	NewValue Range `json:"new_value"`
}

// TupleToArray: items went from tuple form to single-schema form.
// Inner items are still diffed.
type TupleToArray struct {
	OldLength int `json:"old_length"`
}

// ArrayToTuple: items went from single-schema form to tuple form.
type ArrayToTuple struct {
	NewLength int `json:"new_length"`
}

// TupleChange: a tuple got longer or shorter.
type TupleChange struct {
	NewLength int `json:"new_length"`
}

// RequiredAdd: a property became required.
type RequiredAdd struct {
	Property string `json:"property"`
}

// RequiredRemove: a property is no longer required.
type RequiredRemove struct {
	Property string `json:"property"`
}

type FormatAdd struct {
	Added string `json:"added"`
}

type FormatRemove struct {
	Removed string `json:"removed"`
}

type FormatChange struct {
	OldFormat string `json:"old_format"`
	NewFormat string `json:"new_format"`
}

type PatternAdd struct {
	Added string `json:"added"`
}

type PatternRemove struct {
	Removed string `json:"removed"`
}

type PatternChange struct {
	OldPattern string `json:"old_pattern"`
	NewPattern string `json:"new_pattern"`
}

type MinLengthAdd struct {
	Added uint32 `json:"added"`
}

type MinLengthRemove struct {
	Removed uint32 `json:"removed"`
}

type MinLengthChange struct {
	OldValue uint32 `json:"old_value"`
	NewValue uint32 `json:"new_value"`
}

type MaxLengthAdd struct {
	Added uint32 `json:"added"`
}

type MaxLengthRemove struct {
	Removed uint32 `json:"removed"`
}

type MaxLengthChange struct {
	OldValue uint32 `json:"old_value"`
	NewValue uint32 `json:"new_value"`
}

func (TypeAdd) Kind() Kind         { return KindTypeAdd }
func (TypeRemove) Kind() Kind      { return KindTypeRemove }
func (ConstAdd) Kind() Kind        { return KindConstAdd }
func (ConstRemove) Kind() Kind     { return KindConstRemove }
func (PropertyAdd) Kind() Kind     { return KindPropertyAdd }
func (PropertyRemove) Kind() Kind  { return KindPropertyRemove }
func (RangeAdd) Kind() Kind        { return KindRangeAdd }
func (RangeRemove) Kind() Kind     { return KindRangeRemove }
func (RangeChange) Kind() Kind     { return KindRangeChange }
func (TupleToArray) Kind() Kind    { return KindTupleToArray }
func (ArrayToTuple) Kind() Kind    { return KindArrayToTuple }
func (TupleChange) Kind() Kind     { return KindTupleChange }
func (RequiredAdd) Kind() Kind     { return KindRequiredAdd }
func (RequiredRemove) Kind() Kind  { return KindRequiredRemove }
func (FormatAdd) Kind() Kind       { return KindFormatAdd }
func (FormatRemove) Kind() Kind    { return KindFormatRemove }
func (FormatChange) Kind() Kind    { return KindFormatChange }
func (PatternAdd) Kind() Kind      { return KindPatternAdd }
func (PatternRemove) Kind() Kind   { return KindPatternRemove }
func (PatternChange) Kind() Kind   { return KindPatternChange }
func (MinLengthAdd) Kind() Kind    { return KindMinLengthAdd }
func (MinLengthRemove) Kind() Kind { return KindMinLengthRemove }
func (MinLengthChange) Kind() Kind { return KindMinLengthChange }
func (MaxLengthAdd) Kind() Kind    { return KindMaxLengthAdd }
func (MaxLengthRemove) Kind() Kind { return KindMaxLengthRemove }
func (MaxLengthChange) Kind() Kind { return KindMaxLengthChange }

func (TypeAdd) IsBreaking() bool     { return false }
func (TypeRemove) IsBreaking() bool  { return true }
func (ConstAdd) IsBreaking() bool    { return true }
func (ConstRemove) IsBreaking() bool { return false }

// Adding a typed property under an open parent constrains values that used
// to be unconstrained.
func (p PropertyAdd) IsBreaking() bool    { return p.LHSAdditionalProperties }
func (p PropertyRemove) IsBreaking() bool { return !p.LHSAdditionalProperties }

func (RangeAdd) IsBreaking() bool    { return true }
func (RangeRemove) IsBreaking() bool { return false }

// IsBreaking is false only when the new bound is at least as permissive:
// lower bounds may not increase, upper bounds may not decrease, and
// inclusive to exclusive at the same value tightens.
func (r RangeChange) IsBreaking() bool {
	o, n := r.OldValue, r.NewValue
	switch {
	case o.Bound == ExclusiveMinimum && n.Bound == Minimum:
		return o.Value < n.Value
	case o.Bound == ExclusiveMaximum && n.Bound == Maximum:
		return o.Value > n.Value
	case o.Bound != n.Bound:
		return true
	case o.Bound == Minimum || o.Bound == ExclusiveMinimum:
		return o.Value < n.Value
	default:
		return o.Value > n.Value
	}
}

func (TupleToArray) IsBreaking() bool   { return false }
func (ArrayToTuple) IsBreaking() bool   { return true }
func (TupleChange) IsBreaking() bool    { return true }
func (RequiredAdd) IsBreaking() bool    { return true }
func (RequiredRemove) IsBreaking() bool { return false }
func (FormatAdd) IsBreaking() bool      { return true }
func (FormatRemove) IsBreaking() bool   { return false }
func (FormatChange) IsBreaking() bool   { return true }

// Regex subset checks are undecided, so any new or changed pattern counts.
func (PatternAdd) IsBreaking() bool    { return true }
func (PatternRemove) IsBreaking() bool { return false }
func (PatternChange) IsBreaking() bool { return true }

func (MinLengthAdd) IsBreaking() bool      { return true }
func (MinLengthRemove) IsBreaking() bool   { return false }
func (c MinLengthChange) IsBreaking() bool { return c.NewValue > c.OldValue }
func (MaxLengthAdd) IsBreaking() bool      { return true }
func (MaxLengthRemove) IsBreaking() bool   { return false }
func (c MaxLengthChange) IsBreaking() bool { return c.NewValue < c.OldValue }

// Bound names one of the four numeric range keywords.
type Bound uint8

const (
	Minimum Bound = iota
	Maximum
	ExclusiveMinimum
	ExclusiveMaximum
)

var boundNames = [...]string{
	Minimum:          "minimum",
	Maximum:          "maximum",
	ExclusiveMinimum: "exclusiveMinimum",
	ExclusiveMaximum: "exclusiveMaximum",
}

// String returns the keyword spelling.
func (b Bound) String() string {
	if int(b) < len(boundNames) {
		return boundNames[b]
	}
	return fmt.Sprintf("Bound(%d)", uint8(b))
}

// Range is a numeric bound together with its value.
type Range struct {
	Bound Bound
	Value float64
}

func (r Range) String() string {
	if r.Value == math.Trunc(r.Value) && math.Abs(r.Value) < 1e15 {
		return fmt.Sprintf("%s(%.1f)", r.Bound, r.Value)
	}
	return fmt.Sprintf("%s(%g)", r.Bound, r.Value)
}
