//go:build jstream

package compare_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/bcicen/jstream"
)

// jstream: emit each property schema at depth 2 without building the root map
func Benchmark_Scan_jstream(b *testing.B) {
	data := schemaDocument(cmpProps)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dec := jstream.NewDecoder(bytes.NewReader(data), 2)
		for mv := range dec.Stream() {
			if mv.Value == nil {
				b.Fatal("nil")
			}
		}
		if err := dec.Err(); err != nil && err != io.EOF {
			b.Fatal(err)
		}
	}
}
