package change

import "fmt"

// Kind tags the payload of a Change.
type Kind uint8

const (
	KindTypeAdd Kind = iota
	KindTypeRemove
	KindConstAdd
	KindConstRemove
	KindPropertyAdd
	KindPropertyRemove
	KindRangeAdd
	KindRangeRemove
	KindRangeChange
	KindTupleToArray
	KindArrayToTuple
	KindTupleChange
	KindRequiredAdd
	KindRequiredRemove
	KindFormatAdd
	KindFormatRemove
	KindFormatChange
	KindPatternAdd
	KindPatternRemove
	KindPatternChange
	KindMinLengthAdd
	KindMinLengthRemove
	KindMinLengthChange
	KindMaxLengthAdd
	KindMaxLengthRemove
	KindMaxLengthChange
)

var kindNames = [...]string{
	KindTypeAdd:         "TypeAdd",
	KindTypeRemove:      "TypeRemove",
	KindConstAdd:        "ConstAdd",
	KindConstRemove:     "ConstRemove",
	KindPropertyAdd:     "PropertyAdd",
	KindPropertyRemove:  "PropertyRemove",
	KindRangeAdd:        "RangeAdd",
	KindRangeRemove:     "RangeRemove",
	KindRangeChange:     "RangeChange",
	KindTupleToArray:    "TupleToArray",
	KindArrayToTuple:    "ArrayToTuple",
	KindTupleChange:     "TupleChange",
	KindRequiredAdd:     "RequiredAdd",
	KindRequiredRemove:  "RequiredRemove",
	KindFormatAdd:       "FormatAdd",
	KindFormatRemove:    "FormatRemove",
	KindFormatChange:    "FormatChange",
	KindPatternAdd:      "PatternAdd",
	KindPatternRemove:   "PatternRemove",
	KindPatternChange:   "PatternChange",
	KindMinLengthAdd:    "MinLengthAdd",
	KindMinLengthRemove: "MinLengthRemove",
	KindMinLengthChange: "MinLengthChange",
	KindMaxLengthAdd:    "MaxLengthAdd",
	KindMaxLengthRemove: "MaxLengthRemove",
	KindMaxLengthChange: "MaxLengthChange",
}

// String returns the wire name ("TypeAdd", "RangeChange", ...).
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind maps a wire name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}
