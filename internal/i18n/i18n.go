package i18n

import "strings"

// Language is a short language code (zh, en) selecting the prompt template.
type Language string

const (
	LanguageChinese Language = "zh"
	LanguageEnglish Language = "en"

	DefaultLanguage = LanguageChinese
)

// Normalize maps user input onto a language code. Empty input falls back to
// DefaultLanguage; unknown codes pass through lowercased.
func Normalize(value string) Language {
	lang := strings.ToLower(strings.TrimSpace(value))
	switch lang {
	case "", "zh", "zh-cn", "zh_cn", "zh-hans", "cn", "chinese", "中文":
		return DefaultLanguage
	case "en", "en-us", "en_us", "en-gb", "english":
		return LanguageEnglish
	default:
		return Language(lang)
	}
}

// Code returns the normalized code.
func (l Language) Code() string {
	return string(Normalize(string(l)))
}

// DisplayName returns a human name for known languages and the raw code otherwise.
func (l Language) DisplayName() string {
	switch Normalize(string(l)) {
	case LanguageChinese:
		return "中文"
	case LanguageEnglish:
		return "English"
	default:
		return strings.TrimSpace(string(l))
	}
}
