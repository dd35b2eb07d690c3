package i18n

import (
	"strings"
)

// Translator retrieves localized messages for change kinds ("TypeAdd",
// "RangeChange", ...), issue codes ("parse_error", ...) and report labels.
// data supplies the payload fields referenced by a template, keyed by their
// wire names (for example "added" or "old_value").
type Translator interface {
	Message(code string, data map[string]string) string
}

var catalogs = map[string]map[string]string{
	"en": {
		"TypeAdd":         "type {added} is now allowed",
		"TypeRemove":      "type {removed} is no longer allowed",
		"ConstAdd":        "constrained to const {added}",
		"ConstRemove":     "const {removed} dropped",
		"PropertyAdd":     "property {added} added",
		"PropertyRemove":  "property {removed} removed",
		"RangeAdd":        "bound {added} added",
		"RangeRemove":     "bound {removed} removed",
		"RangeChange":     "bound changed from {old_value} to {new_value}",
		"TupleToArray":    "tuple of {old_length} items became an array",
		"ArrayToTuple":    "array became a tuple of {new_length} items",
		"TupleChange":     "tuple length changed to {new_length}",
		"RequiredAdd":     "property {property} is now required",
		"RequiredRemove":  "property {property} is no longer required",
		"FormatAdd":       "format {added} added",
		"FormatRemove":    "format {removed} removed",
		"FormatChange":    "format changed from {old_format} to {new_format}",
		"PatternAdd":      "pattern {added} added",
		"PatternRemove":   "pattern {removed} removed",
		"PatternChange":   "pattern changed from {old_pattern} to {new_pattern}",
		"MinLengthAdd":    "minLength {added} added",
		"MinLengthRemove": "minLength {removed} removed",
		"MinLengthChange": "minLength changed from {old_value} to {new_value}",
		"MaxLengthAdd":    "maxLength {added} added",
		"MaxLengthRemove": "maxLength {removed} removed",
		"MaxLengthChange": "maxLength changed from {old_value} to {new_value}",

		"parse_error":    "parse error",
		"duplicate_key":  "duplicate key",
		"invalid_schema": "invalid schema",
		"diff_depth":     "maximum diff depth exceeded",

		"breaking": "BREAKING",
		"root":     "(root)",
		"summary":  "{total} changes, {breaking} breaking",
	},
	"ja": {
		"TypeAdd":         "型 {added} が許可されました",
		"TypeRemove":      "型 {removed} が許可されなくなりました",
		"ConstAdd":        "定数 {added} に制限されました",
		"ConstRemove":     "定数 {removed} が削除されました",
		"PropertyAdd":     "プロパティ {added} が追加されました",
		"PropertyRemove":  "プロパティ {removed} が削除されました",
		"RangeAdd":        "範囲 {added} が追加されました",
		"RangeRemove":     "範囲 {removed} が削除されました",
		"RangeChange":     "範囲が {old_value} から {new_value} に変更されました",
		"TupleToArray":    "要素数 {old_length} のタプルが配列になりました",
		"ArrayToTuple":    "配列が要素数 {new_length} のタプルになりました",
		"TupleChange":     "タプルの要素数が {new_length} に変更されました",
		"RequiredAdd":     "プロパティ {property} が必須になりました",
		"RequiredRemove":  "プロパティ {property} が必須ではなくなりました",
		"FormatAdd":       "フォーマット {added} が追加されました",
		"FormatRemove":    "フォーマット {removed} が削除されました",
		"FormatChange":    "フォーマットが {old_format} から {new_format} に変更されました",
		"PatternAdd":      "パターン {added} が追加されました",
		"PatternRemove":   "パターン {removed} が削除されました",
		"PatternChange":   "パターンが {old_pattern} から {new_pattern} に変更されました",
		"MinLengthAdd":    "最小長 {added} が追加されました",
		"MinLengthRemove": "最小長 {removed} が削除されました",
		"MinLengthChange": "最小長が {old_value} から {new_value} に変更されました",
		"MaxLengthAdd":    "最大長 {added} が追加されました",
		"MaxLengthRemove": "最大長 {removed} が削除されました",
		"MaxLengthChange": "最大長が {old_value} から {new_value} に変更されました",

		"parse_error":    "解析エラー",
		"duplicate_key":  "キーが重複しています",
		"invalid_schema": "スキーマが不正です",
		"diff_depth":     "差分の最大深さを超えました",

		"breaking": "破壊的変更",
		"root":     "(ルート)",
		"summary":  "変更 {total} 件、うち破壊的変更 {breaking} 件",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

// New returns the built-in Translator for lang. Unknown languages fall back
// to English.
func New(lang string) Translator {
	if _, ok := catalogs[lang]; !ok {
		lang = "en"
	}
	return dictTranslator{lang: lang}
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := catalogs[t.lang][code]
	if !ok {
		if tmpl, ok = catalogs["en"][code]; !ok {
			return code
		}
	}
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// Languages lists the built-in catalogs.
func Languages() []string { return []string{"en", "ja"} }

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) { currentTranslator = New(lang) }

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
