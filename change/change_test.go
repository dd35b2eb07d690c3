package change_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/skemadiff/change"
	js "github.com/reoring/skemadiff/jsonschema"
)

func TestIsBreaking_Table(t *testing.T) {
	cases := []struct {
		payload  change.Payload
		breaking bool
	}{
		{change.TypeAdd{Added: js.TypeString}, false},
		{change.TypeRemove{Removed: js.TypeString}, true},
		{change.ConstAdd{Added: "x"}, true},
		{change.ConstRemove{Removed: "x"}, false},
		{change.PropertyAdd{LHSAdditionalProperties: true, Added: "a"}, true},
		{change.PropertyAdd{LHSAdditionalProperties: false, Added: "a"}, false},
		{change.PropertyRemove{LHSAdditionalProperties: true, Removed: "a"}, false},
		{change.PropertyRemove{LHSAdditionalProperties: false, Removed: "a"}, true},
		{change.RangeAdd{Added: change.Range{Bound: change.Minimum, Value: 1}}, true},
		{change.RangeRemove{Removed: change.Range{Bound: change.Minimum, Value: 1}}, false},
		{change.TupleToArray{OldLength: 2}, false},
		{change.ArrayToTuple{NewLength: 2}, true},
		{change.TupleChange{NewLength: 3}, true},
		{change.RequiredAdd{Property: "a"}, true},
		{change.RequiredRemove{Property: "a"}, false},
		{change.FormatAdd{Added: "email"}, true},
		{change.FormatRemove{Removed: "email"}, false},
		{change.FormatChange{OldFormat: "email", NewFormat: "uri"}, true},
		{change.PatternAdd{Added: "^a"}, true},
		{change.PatternRemove{Removed: "^a"}, false},
		{change.PatternChange{OldPattern: "^a", NewPattern: "^a|^b"}, true},
		{change.MinLengthAdd{Added: 1}, true},
		{change.MinLengthRemove{Removed: 1}, false},
		{change.MinLengthChange{OldValue: 1, NewValue: 2}, true},
		{change.MinLengthChange{OldValue: 2, NewValue: 1}, false},
		{change.MaxLengthAdd{Added: 1}, true},
		{change.MaxLengthRemove{Removed: 1}, false},
		{change.MaxLengthChange{OldValue: 2, NewValue: 1}, true},
		{change.MaxLengthChange{OldValue: 1, NewValue: 2}, false},
	}
	for _, tc := range cases {
		c := change.Change{Path: "", Change: tc.payload}
		require.Equal(t, tc.breaking, c.IsBreaking(), "%s", c)
	}
}

func TestIsBreaking_RangeChange(t *testing.T) {
	r := func(b change.Bound, v float64) change.Range { return change.Range{Bound: b, Value: v} }
	cases := []struct {
		old, new change.Range
		breaking bool
	}{
		{r(change.Minimum, 1), r(change.Minimum, 1), false},
		{r(change.Minimum, 1), r(change.Minimum, 2), true},
		{r(change.Minimum, 2), r(change.Minimum, 1), false},
		{r(change.Minimum, 1), r(change.ExclusiveMinimum, 1), true},
		{r(change.Minimum, 1), r(change.ExclusiveMinimum, 2), true},
		{r(change.Minimum, 2), r(change.ExclusiveMinimum, 1), true},
		{r(change.ExclusiveMinimum, 1), r(change.ExclusiveMinimum, 1), false},
		{r(change.ExclusiveMinimum, 1), r(change.ExclusiveMinimum, 2), true},
		{r(change.ExclusiveMinimum, 2), r(change.ExclusiveMinimum, 1), false},
		{r(change.ExclusiveMinimum, 1), r(change.Minimum, 1), false},
		{r(change.ExclusiveMinimum, 1), r(change.Minimum, 2), true},
		{r(change.Maximum, 1), r(change.Maximum, 1), false},
		{r(change.Maximum, 1), r(change.Maximum, 2), false},
		{r(change.Maximum, 2), r(change.Maximum, 1), true},
		{r(change.Maximum, 1), r(change.ExclusiveMaximum, 1), true},
		{r(change.Maximum, 1), r(change.ExclusiveMaximum, 2), true},
		{r(change.Maximum, 2), r(change.ExclusiveMaximum, 1), true},
		{r(change.ExclusiveMaximum, 1), r(change.ExclusiveMaximum, 1), false},
		{r(change.ExclusiveMaximum, 1), r(change.ExclusiveMaximum, 2), false},
		{r(change.ExclusiveMaximum, 2), r(change.ExclusiveMaximum, 1), true},
		{r(change.ExclusiveMaximum, 2), r(change.Maximum, 2), false},
		{r(change.Minimum, 1), r(change.Maximum, 5), true},
	}
	for _, tc := range cases {
		p := change.RangeChange{OldValue: tc.old, NewValue: tc.new}
		require.Equal(t, tc.breaking, p.IsBreaking(), "%s -> %s", tc.old, tc.new)
	}
}

func TestKind_Names(t *testing.T) {
	for _, k := range change.Kinds() {
		back, ok := change.ParseKind(k.String())
		require.True(t, ok, "kind %d", k)
		require.Equal(t, k, back)
	}
	require.Len(t, change.Kinds(), 26)
	_, ok := change.ParseKind("Bogus")
	require.False(t, ok)
}

func TestRange_String(t *testing.T) {
	require.Equal(t, "minimum(1.0)", change.Range{Bound: change.Minimum, Value: 1}.String())
	require.Equal(t, "exclusiveMaximum(2.5)", change.Range{Bound: change.ExclusiveMaximum, Value: 2.5}.String())
}
