package skemadiff_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	skemadiff "github.com/reoring/skemadiff"
	"github.com/reoring/skemadiff/change"
)

func TestDiffCRD(t *testing.T) {
	oldCRD := map[string]any{
		"apiVersion": "apiextensions.k8s.io/v1",
		"kind":       "CustomResourceDefinition",
		"spec": map[string]any{"versions": []any{
			map[string]any{"name": "v1alpha1", "served": true, "schema": map[string]any{"openAPIV3Schema": map[string]any{"type": "object"}}},
			map[string]any{"name": "v1", "served": true, "storage": true, "schema": map[string]any{"openAPIV3Schema": map[string]any{
				"type": "object",
				"properties": map[string]any{"spec": map[string]any{
					"type":       "object",
					"properties": map[string]any{"replicas": map[string]any{"type": "integer"}},
				}},
			}}},
		}},
	}
	newCRD := map[string]any{
		"apiVersion": "apiextensions.k8s.io/v1",
		"kind":       "CustomResourceDefinition",
		"spec": map[string]any{"versions": []any{
			map[string]any{"name": "v1", "served": true, "storage": true, "schema": map[string]any{"openAPIV3Schema": map[string]any{
				"type": "object",
				"properties": map[string]any{"spec": map[string]any{
					"type":       "object",
					"properties": map[string]any{"replicas": map[string]any{"type": "integer", "minimum": 1}},
				}},
			}}},
			map[string]any{"name": "v2", "served": true},
		}},
	}

	out, err := skemadiff.DiffCRD(oldCRD, newCRD)
	require.NoError(t, err)
	require.Equal(t, []skemadiff.VersionDiff{
		{Version: "v1", Served: true, Changes: []skemadiff.Change{
			{Path: ".spec.replicas", Change: change.RangeAdd{Added: change.Range{Bound: change.Minimum, Value: 1}}},
		}},
		{Version: "v2", Served: true, Added: true},
		{Version: "v1alpha1", Removed: true},
	}, out)
	require.True(t, out[0].IsBreaking())
	require.False(t, out[1].IsBreaking())
	require.True(t, out[2].IsBreaking())
}

func TestDiffCRD_NotACRD(t *testing.T) {
	_, err := skemadiff.DiffCRD(map[string]any{"kind": "ConfigMap"}, map[string]any{"kind": "CustomResourceDefinition"})
	iss, ok := skemadiff.AsIssues(err)
	require.True(t, ok)
	require.Equal(t, skemadiff.LHS, iss[0].Document)
}
