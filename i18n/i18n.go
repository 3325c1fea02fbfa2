// Package i18n provides internationalization support for mofmt itself.
//
// It wraps the gotext library to provide simple T() and N() functions
// for translating mofmt's user-facing strings. Translations are embedded
// in the binary via //go:embed and loaded at startup via Init().
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// locales embeds the translation catalogs.
// Directory structure: locales/{lang}/LC_MESSAGES/mofmt.po
//
//go:embed all:locales
var locales embed.FS

// domain is the gettext domain name for mofmt.
const domain = "mofmt"

// locale is the gotext locale object used for translations.
var locale *gotext.Locale

// Init initializes the i18n system. If lang is empty, it auto-detects
// from the environment variables LANGUAGE, LC_ALL, LC_MESSAGES, LANG
// (in that order, matching GNU gettext behavior).
//
// Init should be called once at program startup, before any T() or N()
// calls.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}

	locale = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	locale.AddDomain(domain)
	locale.SetDomain(domain)
}

// T translates a string. If no translation is available, returns the
// original string unchanged (standard gettext passthrough behavior).
func T(msgid string) string {
	if locale == nil {
		return msgid
	}
	return locale.Get(msgid)
}

// N translates a string with plural forms.
func N(singular, plural string, n int) string {
	if locale == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return locale.GetN(singular, plural, n)
}

// detectLanguage reads environment variables to determine the user's
// preferred language, following GNU gettext conventions.
func detectLanguage() string {
	// GNU gettext priority: LANGUAGE > LC_ALL > LC_MESSAGES > LANG
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		// LANGUAGE can be a colon-separated list; take the first
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		// Strip encoding suffix (e.g. "ru_RU.UTF-8" -> "ru_RU")
		val, _, _ = strings.Cut(val, ".")
		// "C" and "POSIX" mean no translation
		if val == "C" || val == "POSIX" || val == "" {
			continue
		}
		return val
	}
	return "en"
}
