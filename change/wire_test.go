package change_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/skemadiff/change"
	js "github.com/reoring/skemadiff/jsonschema"
)

func TestMarshalJSON_Flattened(t *testing.T) {
	cases := []struct {
		in   change.Change
		want string
	}{
		{
			change.Change{Path: "", Change: change.TypeAdd{Added: js.TypeInteger}},
			`{"path":"","change":"TypeAdd","added":"integer"}`,
		},
		{
			change.Change{Path: ".a", Change: change.PropertyRemove{LHSAdditionalProperties: true, Removed: "b"}},
			`{"path":".a","change":"PropertyRemove","lhs_additional_properties":true,"removed":"b"}`,
		},
		{
			change.Change{Path: ".<anyOf:1>", Change: change.RangeChange{
				OldValue: change.Range{Bound: change.Minimum, Value: 1},
				NewValue: change.Range{Bound: change.Minimum, Value: 2.5},
			}},
			`{"path":".<anyOf:1>","change":"RangeChange","old_value":{"minimum":1},"new_value":{"minimum":2.5}}`,
		},
		{
			change.Change{Path: ".?", Change: change.ConstAdd{Added: map[string]any{"k": []any{1.0, nil}}}},
			`{"path":".?","change":"ConstAdd","added":{"k":[1,null]}}`,
		},
		{
			change.Change{Path: ".0", Change: change.MaxLengthChange{OldValue: 3, NewValue: 1}},
			`{"path":".0","change":"MaxLengthChange","old_value":3,"new_value":1}`,
		},
	}
	for _, tc := range cases {
		got, err := tc.in.MarshalJSON()
		require.NoError(t, err)
		require.JSONEq(t, tc.want, string(got))
	}
}

func TestMarshalJSON_FieldOrder(t *testing.T) {
	c := change.Change{Path: ".x", Change: change.RequiredAdd{Property: "id"}}
	got, err := c.MarshalJSONWithBreaking()
	require.NoError(t, err)
	require.Equal(t, `{"path":".x","change":"RequiredAdd","property":"id","is_breaking":true}`, string(got))
}

func TestMarshalJSON_NilPayload(t *testing.T) {
	_, err := change.Change{Path: ".x"}.MarshalJSON()
	require.Error(t, err)
}
