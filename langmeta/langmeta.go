// Package langmeta provides a small language metadata registry (native
// names) used to label languages in build and inspect output.
package langmeta

import "strings"

// Meta describes language display metadata.
type Meta struct {
	Name string
}

// Registry contains canonical language metadata. Locale variants are
// resolved in Resolve() via normalization and base-language fallback.
var Registry = map[string]Meta{
	"ar":    {Name: "العربية"},
	"bg":    {Name: "Български"},
	"cs":    {Name: "Čeština"},
	"da":    {Name: "Dansk"},
	"de":    {Name: "Deutsch"},
	"el":    {Name: "Ελληνικά"},
	"en":    {Name: "English"},
	"es":    {Name: "Español"},
	"fi":    {Name: "Suomi"},
	"fr":    {Name: "Français"},
	"he":    {Name: "עברית"},
	"hi":    {Name: "हिन्दी"},
	"hr":    {Name: "Hrvatski"},
	"hu":    {Name: "Magyar"},
	"id":    {Name: "Bahasa Indonesia"},
	"it":    {Name: "Italiano"},
	"ja":    {Name: "日本語"},
	"ko":    {Name: "한국어"},
	"lt":    {Name: "Lietuvių"},
	"lv":    {Name: "Latviešu"},
	"nl":    {Name: "Nederlands"},
	"no":    {Name: "Norsk"},
	"pl":    {Name: "Polski"},
	"pt":    {Name: "Português"},
	"pt-BR": {Name: "Português (Brasil)"},
	"ro":    {Name: "Română"},
	"ru":    {Name: "Русский"},
	"sk":    {Name: "Slovenčina"},
	"sr":    {Name: "Српски"},
	"sv":    {Name: "Svenska"},
	"th":    {Name: "ไทย"},
	"tr":    {Name: "Türkçe"},
	"uk":    {Name: "Українська"},
	"vi":    {Name: "Tiếng Việt"},
	"zh":    {Name: "中文"},
	"zh-CN": {Name: "简体中文"},
	"zh-TW": {Name: "繁體中文"},
}

// canonicalize normalizes "pt_br" and "PT-br" style codes to "pt-BR".
func canonicalize(lang string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if normalized == "" {
		return ""
	}
	parts := strings.Split(normalized, "-")
	parts[0] = strings.ToLower(parts[0])
	if len(parts) >= 2 {
		parts[1] = strings.ToUpper(parts[1])
	}
	return strings.Join(parts, "-")
}

// Resolve returns best-effort language metadata for a language code,
// supporting variants like pt_BR and pt-BR with base-language fallback.
// Unknown codes resolve to themselves.
func Resolve(lang string) Meta {
	if m, ok := Registry[lang]; ok {
		return m
	}
	normalized := canonicalize(lang)
	if m, ok := Registry[normalized]; ok {
		return m
	}
	if parts := strings.SplitN(normalized, "-", 2); len(parts) == 2 {
		if m, ok := Registry[parts[0]]; ok {
			return m
		}
	}
	return Meta{Name: lang}
}
