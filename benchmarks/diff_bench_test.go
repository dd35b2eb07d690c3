package benchmarks_test

import (
	"testing"

	skemadiff "github.com/reoring/skemadiff"
	"github.com/reoring/skemadiff/source"
)

func compile(tb testing.TB, data []byte) any {
	tb.Helper()
	s, err := skemadiff.Compile(data)
	if err != nil {
		tb.Fatalf("compile: %v", err)
	}
	return s
}

func benchDiff(b *testing.B, lhs, rhs []byte) {
	l, r := compile(b, lhs), compile(b, rhs)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := skemadiff.Diff(l, r); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Diff_Wide_Identical(b *testing.B) {
	doc := wideSchema(1000, false)
	benchDiff(b, doc, doc)
}

func Benchmark_Diff_Wide_Changed(b *testing.B) {
	benchDiff(b, wideSchema(1000, false), wideSchema(1000, true))
}

// Alignment cost grows with the square of the branch count.
func Benchmark_Diff_AnyOf_Reordered_8(b *testing.B) {
	benchDiff(b, unionSchema(8, false), unionSchema(8, true))
}

func Benchmark_Diff_AnyOf_Reordered_32(b *testing.B) {
	benchDiff(b, unionSchema(32, false), unionSchema(32, true))
}

func Benchmark_Decode_Wide_Lenient(b *testing.B) {
	data := wideSchema(1000, false)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := source.Decode(data, source.Options{Format: source.FormatJSON}); err != nil {
			b.Fatal(err)
		}
	}
}

// Strict mode adds a token pass for duplicate keys.
func Benchmark_Decode_Wide_Strict(b *testing.B) {
	data := wideSchema(1000, false)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := source.Decode(data, source.Options{Format: source.FormatJSON, Strict: true}); err != nil {
			b.Fatal(err)
		}
	}
}

func TestGeneratedSchemasDiff(t *testing.T) {
	out, err := skemadiff.Diff(wideSchema(8, false), wideSchema(8, true))
	if err != nil {
		t.Fatal(err)
	}
	// p0 and p4 widen maxLength 32 -> 64.
	if len(out) != 2 {
		t.Fatalf("want 2 changes, got %d: %v", len(out), out)
	}
	out, err = skemadiff.Diff(unionSchema(4, false), unionSchema(4, true))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Fatalf("reordered anyOf should align cleanly, got %v", out)
	}
}
