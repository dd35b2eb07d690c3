package compare_test

import (
	"fmt"
	"strings"
)

const cmpProps = 2000

// schemaDocument returns an object schema with n properties, the shape of a
// large generated API model.
func schemaDocument(n int) []byte {
	var b strings.Builder
	b.WriteString(`{"$schema":"http://json-schema.org/draft-07/schema#","type":"object","properties":{`)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		switch i % 3 {
		case 0:
			fmt.Fprintf(&b, `"f%d":{"type":"string","minLength":1,"pattern":"^[a-z]+$"}`, i)
		case 1:
			fmt.Fprintf(&b, `"f%d":{"type":["integer","null"],"minimum":0}`, i)
		default:
			fmt.Fprintf(&b, `"f%d":{"type":"array","items":{"$ref":"#/definitions/Tag"}}`, i)
		}
	}
	b.WriteString(`},"definitions":{"Tag":{"type":"object","properties":{"name":{"type":"string"}},"required":["name"]}}}`)
	return []byte(b.String())
}
