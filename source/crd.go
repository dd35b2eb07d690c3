package source

import (
	"fmt"
	"strings"
)

const crdKind = "CustomResourceDefinition"

// selectDocument picks the document to diff. With kind set, only CRDs whose
// spec.names.kind matches are considered; otherwise the first document is
// taken. CRDs are unwrapped to their schema.
func selectDocument(docs []any, kind string) (any, error) {
	if kind == "" {
		for _, d := range docs {
			if d == nil {
				continue
			}
			return unwrapIfCRD(d), nil
		}
		return nil, ErrEmpty
	}
	for _, d := range docs {
		m, ok := d.(map[string]any)
		if !ok || !IsCRD(m) {
			continue
		}
		spec, _ := m["spec"].(map[string]any)
		names, _ := spec["names"].(map[string]any)
		if k, _ := names["kind"].(string); k == kind {
			return unwrapIfCRD(m), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCRDNotFound, kind)
}

// IsCRD reports whether doc looks like an apiextensions.k8s.io
// CustomResourceDefinition manifest.
func IsCRD(doc map[string]any) bool {
	k, _ := doc["kind"].(string)
	if k != crdKind {
		return false
	}
	av, _ := doc["apiVersion"].(string)
	return av == "" || strings.HasPrefix(av, "apiextensions.k8s.io/")
}

func unwrapIfCRD(d any) any {
	m, ok := d.(map[string]any)
	if !ok || !IsCRD(m) {
		return d
	}
	if s := CRDSchema(m); s != nil {
		return s
	}
	return d
}

// CRDSchema returns the openAPIV3Schema of the first served version, the
// first version carrying a schema when none is served, or the legacy
// spec.validation schema. It returns nil when the manifest has none.
func CRDSchema(crd map[string]any) map[string]any {
	spec, ok := crd["spec"].(map[string]any)
	if !ok {
		return nil
	}
	if vers, ok := spec["versions"].([]any); ok {
		var fallback map[string]any
		for _, v := range vers {
			vm, _ := v.(map[string]any)
			if vm == nil {
				continue
			}
			served := true
			if sv, ok := vm["served"].(bool); ok {
				served = sv
			}
			sch, _ := vm["schema"].(map[string]any)
			oas, ok := sch["openAPIV3Schema"].(map[string]any)
			if !ok {
				continue
			}
			if served {
				return oas
			}
			if fallback == nil {
				fallback = oas
			}
		}
		if fallback != nil {
			return fallback
		}
	}
	if val, ok := spec["validation"].(map[string]any); ok {
		if oas, ok := val["openAPIV3Schema"].(map[string]any); ok {
			return oas
		}
	}
	return nil
}

// CRDVersion is one entry of spec.versions.
type CRDVersion struct {
	Name    string
	Served  bool
	Storage bool
	// Schema is the version's openAPIV3Schema, nil when it has none.
	Schema map[string]any
}

// CRDVersions lists spec.versions in manifest order. A legacy manifest with
// only spec.version and spec.validation yields a single served entry.
func CRDVersions(crd map[string]any) []CRDVersion {
	spec, ok := crd["spec"].(map[string]any)
	if !ok {
		return nil
	}
	var legacy map[string]any
	if val, ok := spec["validation"].(map[string]any); ok {
		legacy, _ = val["openAPIV3Schema"].(map[string]any)
	}
	vers, ok := spec["versions"].([]any)
	if !ok {
		name, _ := spec["version"].(string)
		if name == "" && legacy == nil {
			return nil
		}
		return []CRDVersion{{Name: name, Served: true, Storage: true, Schema: legacy}}
	}
	out := make([]CRDVersion, 0, len(vers))
	for _, v := range vers {
		vm, _ := v.(map[string]any)
		if vm == nil {
			continue
		}
		cv := CRDVersion{Served: true}
		cv.Name, _ = vm["name"].(string)
		if sv, ok := vm["served"].(bool); ok {
			cv.Served = sv
		}
		cv.Storage, _ = vm["storage"].(bool)
		if sch, ok := vm["schema"].(map[string]any); ok {
			cv.Schema, _ = sch["openAPIV3Schema"].(map[string]any)
		}
		if cv.Schema == nil {
			// Pre-1.16 manifests share one top-level schema across versions.
			cv.Schema = legacy
		}
		out = append(out, cv)
	}
	return out
}
