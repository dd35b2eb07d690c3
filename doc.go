// Package skemadiff computes a structural, semantic diff between two JSON
// Schema documents and classifies every change as breaking or not.
//
// A change is breaking when a document accepted by the new (RHS) schema may
// be rejected by the old (LHS) one, i.e. the set of permitted documents
// possibly shrank. The classification is conservative.
//
// Design policy:
//   - Keep only public APIs in the root package; put the diff walker, the type
//     lattice, the reference resolver and the assignment solver under internal/.
//   - The schema model lives in jsonschema/, the change taxonomy in change/,
//     input loading in source/, message catalogs in i18n/ and the CLI under
//     cmd/skemadiff.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	changes, err := skemadiff.Diff(oldDoc, newDoc)
//	for _, c := range changes {
//		if c.IsBreaking() {
//			fmt.Println("breaking:", c)
//		}
//	}
//
//	changes, err = skemadiff.DiffFiles(ctx, "old.json", "new.yaml", source.Options{Strict: true})
//
// Kubernetes CustomResourceDefinitions can be compared version by version
// with DiffCRD. Package middleware rejects breaking schema uploads over HTTP.
package skemadiff
