package pofile

import (
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, src string) *Catalog {
	t.Helper()
	c, err := Parse([]byte(src), "test.po")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return c
}

func TestParseSimpleEntry(t *testing.T) {
	c := mustParse(t, "msgid \"foo\"\nmsgstr \"bar\"\n")

	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	m, ok := c.Lookup(Key{ID: "foo"})
	if !ok {
		t.Fatal("foo entry not found")
	}
	if m.Str != "bar" || m.Plural || m.HasCtx || m.Fuzzy {
		t.Fatalf("unexpected message: %#v", m)
	}
}

func TestParseMultilineAndConcatenation(t *testing.T) {
	src := `msgid ""
"Hello, "
"world!"
msgstr "Hallo, " "Welt!"
"!"
`
	c := mustParse(t, src)
	m, ok := c.Lookup(Key{ID: "Hello, world!"})
	if !ok {
		t.Fatal("concatenated msgid not found")
	}
	if m.Str != "Hallo, Welt!!" {
		t.Fatalf("Str = %q, want %q", m.Str, "Hallo, Welt!!")
	}
}

func TestParseContextEntry(t *testing.T) {
	src := `msgctxt "Menu"
msgid "foo"
msgstr "Voh"
`
	c := mustParse(t, src)
	m, ok := c.Lookup(Key{Ctx: "Menu", HasCtx: true, ID: "foo"})
	if !ok {
		t.Fatal("contexted entry not found")
	}
	if m.Str != "Voh" {
		t.Fatalf("Str = %q, want Voh", m.Str)
	}
	if _, ok := c.Lookup(Key{ID: "foo"}); ok {
		t.Fatal("contextless key should not exist")
	}
}

func TestParsePluralEntry(t *testing.T) {
	src := `msgid "%d file"
msgid_plural "%d files"
msgstr[0] "%d Datei"
msgstr[1] "%d Dateien"
`
	c := mustParse(t, src)
	m, ok := c.Lookup(Key{ID: "%d file"})
	if !ok {
		t.Fatal("plural entry not found")
	}
	if !m.Plural || m.PluralID != "%d files" {
		t.Fatalf("plural bookkeeping wrong: %#v", m)
	}
	if len(m.Strs) != 2 || m.Strs[0] != "%d Datei" || m.Strs[1] != "%d Dateien" {
		t.Fatalf("Strs = %q", m.Strs)
	}
}

func TestParseFuzzyFlag(t *testing.T) {
	src := `#, fuzzy, c-format
msgid "draft"
msgstr "entwurf"

#: somewhere.go:1
msgid "reviewed"
msgstr "geprueft"
`
	c := mustParse(t, src)
	draft, _ := c.Lookup(Key{ID: "draft"})
	if draft == nil || !draft.Fuzzy {
		t.Fatalf("draft should be fuzzy: %#v", draft)
	}
	reviewed, _ := c.Lookup(Key{ID: "reviewed"})
	if reviewed == nil || reviewed.Fuzzy {
		t.Fatalf("reviewed should not be fuzzy: %#v", reviewed)
	}
}

func TestFuzzyIsTokenNotSubstring(t *testing.T) {
	c := mustParse(t, "#, fuzzy-ish\nmsgid \"a\"\nmsgstr \"b\"\n")
	m, _ := c.Lookup(Key{ID: "a"})
	if m == nil || m.Fuzzy {
		t.Fatalf("fuzzy-ish must not set the fuzzy flag: %#v", m)
	}
}

func TestBlankLinesDoNotCloseSections(t *testing.T) {
	src := "msgid \"foo\"\n\n\nmsgstr \"bar\"\n"
	c := mustParse(t, src)
	if m, _ := c.Lookup(Key{ID: "foo"}); m == nil || m.Str != "bar" {
		t.Fatalf("blank lines should be skipped entirely: %#v", m)
	}
}

func TestParseCommitOrder(t *testing.T) {
	src := `msgid "b"
msgstr "2"

msgid "a"
msgstr "1"
`
	c := mustParse(t, src)
	msgs := c.Messages()
	if len(msgs) != 2 || msgs[0].ID != "b" || msgs[1].ID != "a" {
		t.Fatalf("commit order must follow input order: %v", msgs)
	}
}

func TestParseRejectsBOM(t *testing.T) {
	src := append([]byte{0xef, 0xbb, 0xbf}, []byte("msgid \"x\"\nmsgstr \"y\"\n")...)
	_, err := Parse(src, "bom.po")
	if err == nil || !strings.Contains(err.Error(), "BOM") {
		t.Fatalf("BOM input must fail, got %v", err)
	}
}

func TestParseGrammarErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
		line int
	}{
		{
			name: "msgstr before msgid",
			src:  "msgstr \"x\"\n",
			want: "msgstr must be preceded by msgid",
			line: 1,
		},
		{
			name: "msgid_plural at start",
			src:  "msgid_plural \"xs\"\n",
			want: "msgid_plural must be preceded by msgid",
			line: 1,
		},
		{
			name: "msgid_plural after msgctxt",
			src:  "msgctxt \"c\"\nmsgid_plural \"xs\"\n",
			want: "msgid_plural not allowed after msgctxt",
			line: 2,
		},
		{
			name: "comment inside entry",
			src:  "msgid \"x\"\n# too late\nmsgstr \"y\"\n",
			want: "comment not allowed after msgid",
			line: 2,
		},
		{
			name: "msgctxt after msgid",
			src:  "msgid \"x\"\nmsgctxt \"c\"\n",
			want: "msgctxt not allowed after msgid",
			line: 2,
		},
		{
			name: "second plain msgstr",
			src:  "msgid \"x\"\nmsgstr \"y\"\nmsgstr \"z\"\n",
			want: "msgstr not allowed after msgstr",
			line: 3,
		},
		{
			name: "dangling msgctxt",
			src:  "msgid \"x\"\nmsgstr \"y\"\nmsgctxt \"c\"\n",
			want: "missing msgid after msgctxt",
			line: 3,
		},
		{
			name: "dangling msgid",
			src:  "msgid \"x\"\n",
			want: "missing msgstr after msgid",
			line: 1,
		},
		{
			name: "dangling msgid_plural",
			src:  "msgid \"x\"\nmsgid_plural \"xs\"\n",
			want: "missing msgstr[0] after msgid_plural",
			line: 2,
		},
		{
			name: "stray continuation",
			src:  "\"floating\"\n",
			want: "string continuation not allowed after start of file",
			line: 1,
		},
		{
			name: "continuation after comment",
			src:  "# note\n\"floating\"\n",
			want: "string continuation not allowed after comment",
			line: 2,
		},
		{
			name: "unquoted remainder",
			src:  "msgid bare\n",
			want: "syntax error",
			line: 1,
		},
		{
			name: "trailing garbage after string",
			src:  "msgid \"x\" tail\nmsgstr \"y\"\n",
			want: "syntax error",
			line: 1,
		},
	}

	for _, tc := range tests {
		_, err := Parse([]byte(tc.src), "test.po")
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		var syn *SyntaxError
		if !errors.As(err, &syn) {
			t.Fatalf("%s: error type = %T, want *SyntaxError", tc.name, err)
		}
		if syn.File != "test.po" || syn.Line != tc.line {
			t.Fatalf("%s: position = %s:%d, want test.po:%d", tc.name, syn.File, syn.Line, tc.line)
		}
		if !strings.Contains(syn.Msg, tc.want) {
			t.Fatalf("%s: message %q does not contain %q", tc.name, syn.Msg, tc.want)
		}
	}
}

func TestParsePluralIndexErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "skipped index",
			src:  "msgid \"x\"\nmsgid_plural \"xs\"\nmsgstr[0] \"a\"\nmsgstr[2] \"c\"\n",
			want: "plural form has incorrect index, found '2' but should be '1'",
		},
		{
			name: "first index not zero",
			src:  "msgid \"x\"\nmsgid_plural \"xs\"\nmsgstr[1] \"b\"\n",
			want: "plural form has incorrect index, found '1' but should be '0'",
		},
		{
			name: "indexed without msgid_plural",
			src:  "msgid \"x\"\nmsgstr[0] \"a\"\n",
			want: "missing msgid_plural section",
		},
		{
			name: "plain msgstr on plural record",
			src:  "msgid \"x\"\nmsgid_plural \"xs\"\nmsgstr \"a\"\n",
			want: "indexed msgstr required after msgid_plural",
		},
	}

	for _, tc := range tests {
		_, err := Parse([]byte(tc.src), "test.po")
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: error = %v, want %q", tc.name, err, tc.want)
		}
	}
}

func TestParseDuplicateEntries(t *testing.T) {
	src := `msgid "foo"
msgstr "bar"

msgid "foo"
msgstr "baz"
`
	_, err := Parse([]byte(src), "dup.po")
	if err == nil || !strings.Contains(err.Error(), "duplicate entry") {
		t.Fatalf("duplicate key must fail, got %v", err)
	}

	// Same id under a different context is a distinct key.
	src = `msgid "foo"
msgstr "bar"

msgctxt "Menu"
msgid "foo"
msgstr "baz"
`
	c := mustParse(t, src)
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
}

func TestParseEscapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "newline", src: `"a\nb"`, want: "a\nb"},
		{name: "tab and cr", src: `"a\tb\r"`, want: "a\tb\r"},
		{name: "quote and backslash", src: `"\"\\"`, want: `"\`},
		{name: "bell and friends", src: `"\a\b\f\v"`, want: "\a\b\f\v"},
		{name: "octal", src: `"\101\12"`, want: "A\n"},
		{name: "hex", src: `"\x41\x0a"`, want: "A\n"},
	}

	for _, tc := range tests {
		c := mustParse(t, "msgid \"k-"+tc.name+"\"\nmsgstr "+tc.src+"\n")
		m, _ := c.Lookup(Key{ID: "k-" + tc.name})
		if m == nil || m.Str != tc.want {
			t.Fatalf("%s: value = %q, want %q", tc.name, m.Str, tc.want)
		}
	}
}

func TestParseInvalidEscapes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{src: `msgstr "\q"`, want: `invalid escape sequence: '\q'`},
		{src: `msgstr "\xZZ"`, want: `invalid escape sequence: '\xZ'`},
		{src: `msgstr "\8"`, want: `invalid escape sequence: '\8'`},
	}

	for _, tc := range tests {
		_, err := Parse([]byte("msgid \"x\"\n"+tc.src+"\n"), "test.po")
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: error = %v, want %q", tc.src, err, tc.want)
		}
	}
}

func TestHeaderEncodingDiscovery(t *testing.T) {
	header := "msgid \"\"\n" +
		"msgstr \"Content-Type: text/plain; charset=mac_roman\\n\"\n\n"
	// 0x8E is "e with acute" in Mac Roman.
	src := append([]byte(header), []byte("msgid \"coffee\"\nmsgstr \"caf\x8e\"\n")...)

	c, err := Parse(src, "mac.po")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	m, _ := c.Lookup(Key{ID: "coffee"})
	if m == nil || m.Str != "café" {
		t.Fatalf("mac_roman bytes not decoded: %#v", m)
	}
}

func TestDefaultEncodingIsLatin1(t *testing.T) {
	// 0xE9 is "e with acute" in Latin-1; with no header every byte must
	// decode without failure.
	src := []byte("msgid \"coffee\"\nmsgstr \"caf\xe9\"\n")
	c, err := Parse(src, "latin.po")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	m, _ := c.Lookup(Key{ID: "coffee"})
	if m == nil || m.Str != "café" {
		t.Fatalf("latin-1 bytes not decoded: %#v", m)
	}
}

func TestHeaderUnknownCharsetFails(t *testing.T) {
	src := "msgid \"\"\nmsgstr \"Content-Type: text/plain; charset=martian-5\\n\"\n"
	_, err := Parse([]byte(src), "test.po")
	if err == nil || !strings.Contains(err.Error(), "unsupported charset") {
		t.Fatalf("unknown charset must fail, got %v", err)
	}
}

func TestHeaderFieldLookup(t *testing.T) {
	src := "msgid \"\"\n" +
		"msgstr \"\"\n" +
		"\"Project-Id-Version: demo 1.0\\n\"\n" +
		"\"Content-Type: text/plain; charset=UTF-8\\n\"\n"
	c := mustParse(t, src)
	h := c.Header()
	if h == nil {
		t.Fatal("header entry missing")
	}
	if got := h.HeaderField("project-id-version"); got != "demo 1.0" {
		t.Fatalf("HeaderField = %q, want demo 1.0", got)
	}
	if got := h.HeaderField("Language"); got != "" {
		t.Fatalf("absent field = %q, want empty", got)
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	values := []string{
		"plain",
		"with \"quotes\" and \\slashes\\",
		"line one\nline two\ttabbed",
		"",
	}
	for _, want := range values {
		c := mustParse(t, "msgid \"k\"\nmsgstr "+Quote(want)+"\n")
		m, _ := c.Lookup(Key{ID: "k"})
		if m == nil || m.Str != want {
			t.Fatalf("Quote round trip for %q got %q", want, m.Str)
		}
	}
}

func TestRemoveFuzzy(t *testing.T) {
	src := `#, fuzzy
msgid ""
msgstr "Content-Type: text/plain; charset=UTF-8\n"

#, fuzzy
msgid "draft"
msgstr "entwurf"

msgid "done"
msgstr "fertig"
`
	c := mustParse(t, src)
	if got := c.RemoveFuzzy(); got != 1 {
		t.Fatalf("RemoveFuzzy() = %d, want 1", got)
	}
	if c.Header() == nil {
		t.Fatal("fuzzy header must be kept")
	}
	if _, ok := c.Lookup(Key{ID: "draft"}); ok {
		t.Fatal("fuzzy entry must be removed")
	}
	if _, ok := c.Lookup(Key{ID: "done"}); !ok {
		t.Fatal("non-fuzzy entry must be kept")
	}
}
