package benchmarks_test

import (
	"fmt"
	"strings"
)

// wideSchema returns an object schema with n properties cycling through
// string, number, array and nullable-object shapes. bump alters every
// fourth property so a diff has work to report.
func wideSchema(n int, bump bool) []byte {
	var b strings.Builder
	b.WriteString(`{"type":"object","properties":{`)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		limit := 32
		if bump && i%4 == 0 {
			limit = 64
		}
		switch i % 4 {
		case 0:
			fmt.Fprintf(&b, `"p%d":{"type":"string","maxLength":%d,"format":"email"}`, i, limit)
		case 1:
			fmt.Fprintf(&b, `"p%d":{"type":"number","minimum":0,"maximum":%d}`, i, limit)
		case 2:
			fmt.Fprintf(&b, `"p%d":{"type":"array","items":{"$ref":"#/definitions/Item"}}`, i)
		default:
			fmt.Fprintf(&b, `"p%d":{"type":["object","null"],"properties":{"k":{"type":"string"}},"required":["k"]}`, i)
		}
	}
	b.WriteString(`},"required":["p0","p1"],"definitions":{"Item":{"type":"object","properties":{"id":{"type":"integer"}}}}}`)
	return []byte(b.String())
}

// unionSchema returns an anyOf with n object branches; reversed lists them
// in the opposite order.
func unionSchema(n int, reversed bool) []byte {
	branches := make([]string, n)
	for i := range branches {
		branches[i] = fmt.Sprintf(`{"type":"object","properties":{"kind":{"const":"k%d"},"v%d":{"type":"string"}},"required":["kind"]}`, i, i)
	}
	if reversed {
		for i, j := 0, len(branches)-1; i < j; i, j = i+1, j-1 {
			branches[i], branches[j] = branches[j], branches[i]
		}
	}
	return []byte(`{"anyOf":[` + strings.Join(branches, ",") + `]}`)
}
