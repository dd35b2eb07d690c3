package skemadiff

import (
	"fmt"

	"github.com/reoring/skemadiff/source"
)

// VersionDiff compares one CustomResourceDefinition version across two
// manifests.
type VersionDiff struct {
	Version string
	// Served is the version's served flag in the new manifest.
	Served bool
	// Added: the version is new. Removed: it was served before and is now
	// gone or no longer served.
	Added   bool
	Removed bool
	Changes []Change
}

// IsBreaking reports whether clients of this version may be rejected.
func (v VersionDiff) IsBreaking() bool { return v.Removed || IsBreaking(v.Changes) }

// DiffCRD diffs two CRD manifests version by version. Results follow the new
// manifest's version order, then versions only the old one had. A version
// without a schema accepts anything.
func DiffCRD(lhs, rhs map[string]any, opts ...DiffOpt) ([]VersionDiff, error) {
	if !source.IsCRD(lhs) {
		return nil, AppendIssues(nil, Issue{Document: LHS, Code: CodeInvalidSchema, Message: "not a CustomResourceDefinition"})
	}
	if !source.IsCRD(rhs) {
		return nil, AppendIssues(nil, Issue{Document: RHS, Code: CodeInvalidSchema, Message: "not a CustomResourceDefinition"})
	}
	old := source.CRDVersions(lhs)
	byName := make(map[string]source.CRDVersion, len(old))
	for _, v := range old {
		byName[v.Name] = v
	}

	var out []VersionDiff
	seen := make(map[string]bool, len(old))
	for _, nv := range source.CRDVersions(rhs) {
		seen[nv.Name] = true
		vd := VersionDiff{Version: nv.Name, Served: nv.Served}
		ov, ok := byName[nv.Name]
		if !ok {
			vd.Added = true
			out = append(out, vd)
			continue
		}
		vd.Removed = ov.Served && !nv.Served
		changes, err := Diff(schemaOrAny(ov.Schema), schemaOrAny(nv.Schema), opts...)
		if err != nil {
			return nil, fmt.Errorf("version %s: %w", nv.Name, err)
		}
		vd.Changes = changes
		out = append(out, vd)
	}
	for _, ov := range old {
		if seen[ov.Name] {
			continue
		}
		out = append(out, VersionDiff{Version: ov.Name, Removed: ov.Served})
	}
	return out, nil
}

func schemaOrAny(s map[string]any) any {
	if s == nil {
		return true
	}
	return s
}
