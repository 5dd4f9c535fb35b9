// Package i18n localizes the messages attached to keyboard issues.
package i18n

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "key" or "value").
type Translator interface {
	Message(code string, data map[string]string) string
}

var english = map[string]string{
	"mismatched_field_count":    "not every description of the keyboard contains the same number of keys",
	"duplicate_matrix_position": "duplicate matrix position",
	"duplicate_position":        "duplicate position",
	"duplicate_key":             "duplicate key",
	"unknown_key":               "unknown key",
	"missing_key":               "missing key",
	"null_value":                "null value",
	"source_read":               "cannot read keyboard description",
	"template_render":           "cannot render plot template",
}

var japanese = map[string]string{
	"mismatched_field_count":    "キーボードの各記述でキーの数が一致していません",
	"duplicate_matrix_position": "マトリクス位置が重複しています",
	"duplicate_position":        "位置が重複しています",
	"duplicate_key":             "キーが重複しています",
	"unknown_key":               "未知のキーです",
	"missing_key":               "必須キーが不足しています",
	"null_value":                "値が null です",
	"source_read":               "キーボード記述を読み込めません",
	"template_render":           "プロットテンプレートを描画できません",
}

// dictTranslator is the built-in dictionary-based Translator. Entries of data
// named "field", "key" or "value" are appended as `: <v>` in that order.
type dictTranslator struct{ dict map[string]string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := t.dict[code]
	if !ok {
		return code
	}
	for _, k := range []string{"field", "key", "value"} {
		if v, ok := data[k]; ok && v != "" {
			msg += ": " + v
		}
	}
	return msg
}

var (
	supported = []language.Tag{language.English, language.Japanese}
	matcher   = language.NewMatcher(supported)

	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{dict: english}
)

// SetLanguage switches the built-in Translator language. It accepts BCP 47
// tags ("ja", "ja-JP", "en-US"); anything unsupported falls back to English.
func SetLanguage(lang string) {
	dict := english
	if strings.TrimSpace(lang) != "" {
		_, idx := language.MatchStrings(matcher, lang)
		if supported[idx] == language.Japanese {
			dict = japanese
		}
	}
	mu.Lock()
	currentTranslator = dictTranslator{dict: dict}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{dict: english}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
