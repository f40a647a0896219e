package utils

// Server-side messages only: health text and the error bodies of the API.

// SupportedLocales lists the locales T has translations for.
var SupportedLocales = []string{"en", "zh"}

var translations = map[string]map[string]string{
	"en": {
		"health.ok":        "ok",
		"health.not_ready": "dataset not loaded",
		"error.not_found":  "resource not found",
		"error.invalid_id": "id must be an integer",
		"error.format":     "unsupported format",
		"error.internal":   "an unexpected error occurred",
	},
	"zh": {
		"health.ok":        "好的",
		"health.not_ready": "数据尚未加载",
		"error.not_found":  "未找到资源",
		"error.invalid_id": "id 必须是整数",
		"error.format":     "不支持的格式",
		"error.internal":   "发生意外错误",
	},
}

// T returns the translated string for key in locale; falls back to English.
func T(locale, key string) string {
	if m, ok := translations[locale]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if m, ok := translations["en"]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return key
}
