package i18n

import "testing"

func TestTranslationLookup(t *testing.T) {
	Init("ru")

	if got := T("No input file given"); got != "Не указан входной файл" {
		t.Fatalf("T() = %q", got)
	}
	if got := T("never translated"); got != "never translated" {
		t.Fatalf("T() passthrough = %q", got)
	}
	if got := N("entry written", "entries written", 1); got != "запись записана" {
		t.Fatalf("N(1) = %q", got)
	}
	if got := N("entry written", "entries written", 5); got != "записей записано" {
		t.Fatalf("N(5) = %q", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	t.Setenv("LANGUAGE", "de:fr")
	t.Setenv("LC_ALL", "")
	if got := detectLanguage(); got != "de" {
		t.Fatalf("detectLanguage() = %q, want de", got)
	}

	t.Setenv("LANGUAGE", "")
	t.Setenv("LC_ALL", "C")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "ru_RU.UTF-8")
	if got := detectLanguage(); got != "ru_RU" {
		t.Fatalf("detectLanguage() = %q, want ru_RU", got)
	}
}
