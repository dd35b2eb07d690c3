package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/skemadiff/change"
	"github.com/reoring/skemadiff/i18n"
	js "github.com/reoring/skemadiff/jsonschema"
)

var sample = []change.Change{
	{Path: "", Change: change.TypeRemove{Removed: js.TypeString}},
	{Path: ".a", Change: change.RangeChange{
		OldValue: change.Range{Bound: change.Minimum, Value: 1},
		NewValue: change.Range{Bound: change.Minimum, Value: 0},
	}},
	{Path: ".b", Change: change.ConstAdd{Added: "on"}},
}

func TestWrite_JSONLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample, Options{}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	require.JSONEq(t, `{"path":"","change":"TypeRemove","removed":"string","is_breaking":true}`, lines[0])
	require.JSONEq(t, `{"path":".a","change":"RangeChange","old_value":{"minimum":1},"new_value":{"minimum":0},"is_breaking":false}`, lines[1])
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample, Options{Format: FormatText}))

	out := buf.String()
	require.Contains(t, out, "(root) TypeRemove: type string is no longer allowed BREAKING\n")
	require.Contains(t, out, ".a RangeChange: bound changed from minimum(1.0) to minimum(0.0)")
	require.Contains(t, out, `.b ConstAdd: constrained to const "on" BREAKING`)
	require.True(t, strings.HasSuffix(out, "3 changes, 2 breaking\n"), out)
	require.NotContains(t, out, "\x1b[", "color must be off unless requested")
}

func TestWrite_TextColor(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample[:1], Options{Format: FormatText, Color: true}))
	require.Contains(t, buf.String(), "\x1b[")
}

func TestWrite_Japanese(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample[:1], Options{Format: FormatText, Translator: i18n.New("ja")}))
	require.Contains(t, buf.String(), "(ルート) TypeRemove: 型 string が許可されなくなりました 破壊的変更")
}

func TestPrinter_BreakingOnly(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, Options{BreakingOnly: true})
	for _, c := range sample {
		require.NoError(t, p.Print(c))
	}
	require.Equal(t, 2, strings.Count(buf.String(), "\n"))
	require.NotContains(t, buf.String(), "RangeChange")

	total, breaking := p.Counts()
	require.Equal(t, 3, total)
	require.Equal(t, 2, breaking)
}

func TestFields(t *testing.T) {
	require.Equal(t, map[string]string{"lhs_additional_properties": "true", "added": "x"},
		Fields(change.PropertyAdd{LHSAdditionalProperties: true, Added: "x"}))
	require.Equal(t, map[string]string{"old_value": "3", "new_value": "5"},
		Fields(change.MaxLengthChange{OldValue: 3, NewValue: 5}))
	require.Equal(t, map[string]string{"removed": `{"k":[1,2]}`},
		Fields(change.ConstRemove{Removed: map[string]any{"k": []any{1, 2}}}))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("TEXT")
	require.NoError(t, err)
	require.Equal(t, FormatText, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	require.Error(t, err)
}
