package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	js "github.com/reoring/skemadiff/jsonschema"
	"github.com/reoring/skemadiff/internal/lattice"
)

func schema(t *testing.T, v any) *js.Schema {
	t.Helper()
	s, err := js.FromValue(v)
	require.NoError(t, err)
	return s
}

func TestOf_Priority(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want lattice.Type
	}{
		{"single type", map[string]any{"type": "string", "const": 1.0}, lattice.Simple(js.TypeString)},
		{"type list", map[string]any{"type": []any{"string", "null"}}, lattice.Multiple(js.TypeString, js.TypeNull)},
		{"const", map[string]any{"const": "x", "properties": map[string]any{"a": true}}, lattice.Simple(js.TypeString)},
		{"const number", map[string]any{"const": 3.0}, lattice.Simple(js.TypeNumber)},
		{"properties", map[string]any{"properties": map[string]any{"a": true}}, lattice.Simple(js.TypeObject)},
		{"empty properties", map[string]any{"properties": map[string]any{}}, lattice.Any()},
		{"anyOf", map[string]any{"anyOf": []any{
			map[string]any{"type": "null"},
			map[string]any{"type": "string"},
		}}, lattice.Multiple(js.TypeString, js.TypeNull)},
		{"not true", map[string]any{"not": true}, lattice.Never()},
		{"not object", map[string]any{"not": map[string]any{"type": "string"}}, lattice.Any()},
		{"false", false, lattice.Never()},
		{"true", true, lattice.Any()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := lattice.Of(schema(t, tc.in))
			require.True(t, tc.want.Equal(got), "want %v, got %v", tc.want, got)
		})
	}
}

func TestOf_DoesNotFollowRefs(t *testing.T) {
	s := schema(t, map[string]any{
		"$ref":        "#/definitions/A",
		"definitions": map[string]any{"A": map[string]any{"type": "string"}},
	})
	require.True(t, lattice.Any().Equal(lattice.Of(s)))
}

func TestSet_Expansion(t *testing.T) {
	require.Equal(t, []js.Type{js.TypeNumber, js.TypeInteger}, lattice.Simple(js.TypeNumber).Set().Kinds())
	require.Equal(t, []js.Type{js.TypeInteger}, lattice.Simple(js.TypeInteger).Set().Kinds())
	require.Equal(t, js.AllTypes[:], lattice.Any().Set().Kinds())
	require.Empty(t, lattice.Never().Set().Kinds())
	require.Equal(t,
		[]js.Type{js.TypeString, js.TypeNumber, js.TypeInteger},
		lattice.Multiple(js.TypeNumber, js.TypeString).Set().Kinds())
	require.Equal(t, 7, lattice.All.Len())
}

func TestSet_Algebra(t *testing.T) {
	a := lattice.Multiple(js.TypeString, js.TypeInteger).Set()
	b := lattice.Simple(js.TypeNumber).Set()
	require.Equal(t, []js.Type{js.TypeString}, a.Minus(b).Kinds())
	require.Equal(t, []js.Type{js.TypeNumber}, b.Minus(a).Kinds())
	require.Equal(t, 3, a.Union(b).Len())
}

func TestType_IsMultiple(t *testing.T) {
	require.True(t, lattice.Multiple(js.TypeString, js.TypeNull).IsMultiple())
	require.False(t, lattice.Multiple(js.TypeString).IsMultiple())
	require.False(t, lattice.Any().IsMultiple())
}
