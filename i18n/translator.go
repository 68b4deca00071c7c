package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "key" or "path").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "invalid_key":
			return "キー名が不正です"
		case "invalid_length":
			return "長さが不正です"
		case "missing_value":
			return "値が不足しています"
		case "missing_id":
			return "idが不足しています"
		case "unknown_key":
			return "未知のキーです"
		case "invalid_link":
			return "リンクが不正です"
		case "parse_error":
			return "解析エラー"
		case "resolve_error":
			return "解決エラー"
		case "document_error":
			return "ドキュメントエラー"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "invalid_key":
			return "invalid key"
		case "invalid_length":
			return "invalid length"
		case "missing_value":
			return "missing value"
		case "missing_id":
			return "missing id"
		case "unknown_key":
			return "unknown key"
		case "invalid_link":
			return "invalid link"
		case "parse_error":
			return "parse error"
		case "resolve_error":
			return "resolve error"
		case "document_error":
			return "document error"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T resolves a message for code via the current Translator.
func T(code string, data map[string]string) string {
	return currentTranslator.Message(code, data)
}
