//go:build jscan

package compare_test

import (
	"testing"

	"github.com/romshark/jscan"
)

// jscan: token scan only, a floor for the strict duplicate-key pass
func Benchmark_Scan_jscan(b *testing.B) {
	data := schemaDocument(cmpProps)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		it := jscan.Begin()
		if err := it.Feed(data); err != nil {
			b.Fatal(err)
		}
		for it.Next() {
			_ = it.Value()
		}
		if err := it.Err(); err != nil {
			b.Fatal(err)
		}
	}
}
