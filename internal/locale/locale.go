package locale

import (
	"strings"
	"time"
)

const (
	LanguageEnglish = "en"
	LanguageSpanish = "es"
	LanguageChinese = "zh"
)

var weekdayNames = map[string][7]string{
	LanguageEnglish: {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	LanguageSpanish: {"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
	LanguageChinese: {"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"},
}

var notAvailable = map[string]string{
	LanguageEnglish: "N/A",
	LanguageSpanish: "N/D",
	LanguageChinese: "暂无",
}

// NormalizeLanguage maps a language tag to a supported language, or "".
func NormalizeLanguage(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case trimmed == "":
		return ""
	case strings.HasPrefix(trimmed, "zh") || trimmed == "cn":
		return LanguageChinese
	case strings.HasPrefix(trimmed, "es"):
		return LanguageSpanish
	case strings.HasPrefix(trimmed, "en"):
		return LanguageEnglish
	}
	return ""
}

// LanguageFromAcceptLanguage picks the first supported language in an
// Accept-Language header.
func LanguageFromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(part, ";")
		if lang := NormalizeLanguage(tag); lang != "" {
			return lang
		}
	}
	return ""
}

// Resolve returns the first supported language among candidates, defaulting to English.
func Resolve(candidates ...string) string {
	for _, c := range candidates {
		if lang := NormalizeLanguage(c); lang != "" {
			return lang
		}
	}
	return LanguageEnglish
}

// WeekdayName localizes a canonical English weekday name such as "Monday".
// Unknown names, including "N/A", pass through the not-available label.
func WeekdayName(language, canonical string) string {
	lang := Resolve(language)
	for i, name := range weekdayNames[LanguageEnglish] {
		if strings.EqualFold(name, canonical) {
			return weekdayNames[lang][i]
		}
	}
	return notAvailable[lang]
}

// ShortWeekday returns the abbreviated label used on chart axes.
func ShortWeekday(language string, day time.Weekday) string {
	lang := Resolve(language)
	name := []rune(weekdayNames[lang][day])
	if lang == LanguageChinese {
		return string(name[len(name)-1:])
	}
	return string(name[:3])
}
