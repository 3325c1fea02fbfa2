package pofile

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// SyntaxError describes a fatal PO grammar violation. Parsing is
// all-or-nothing: the first error aborts the whole parse.
type SyntaxError struct {
	// File is the filename used for diagnostics.
	File string
	// Line is the 1-based line number of the offending line.
	Line int
	// Msg describes the violation.
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// section is the grammar section the parser is currently inside.
type section int

const (
	secNone section = iota
	secComment
	secCtxt
	secID
	secPlural
	secStr
)

func (s section) String() string {
	switch s {
	case secComment:
		return "comment"
	case secCtxt:
		return "msgctxt"
	case secID:
		return "msgid"
	case secPlural:
		return "msgid_plural"
	case secStr:
		return "msgstr"
	default:
		return "start of file"
	}
}

// sectionSet is a set of sections, used for the transition table.
type sectionSet uint8

func setOf(sections ...section) sectionSet {
	var ss sectionSet
	for _, s := range sections {
		ss |= 1 << s
	}
	return ss
}

func (ss sectionSet) has(s section) bool {
	return ss&(1<<s) != 0
}

// Legal predecessor sections per keyword. msgstr is handled separately
// because the plain and indexed forms differ.
var (
	beforeComment = setOf(secNone, secComment, secStr)
	beforeCtxt    = setOf(secNone, secComment, secStr)
	beforeID      = setOf(secNone, secComment, secStr, secCtxt)
	beforeStr     = setOf(secID, secPlural, secStr)
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// parser holds the transient state of one parse run. Nothing survives the
// call; concurrent parses are independent.
type parser struct {
	file    string
	line    int
	dec     *encoding.Decoder
	sec     section
	cur     *Message
	catalog *Catalog
}

// Parse parses the raw byte content of a PO file into a catalog. The
// filename is used only for diagnostics. Input is taken as bytes because
// the charset is unknown until the header entry has been seen; bytes are
// decoded as Latin-1 until a Content-Type charset declaration refines the
// decoding for all subsequent lines.
func Parse(src []byte, filename string) (*Catalog, error) {
	if bytes.HasPrefix(src, utf8BOM) {
		return nil, &SyntaxError{
			File: filename,
			Line: 1,
			Msg:  "file starts with a UTF-8 BOM, which is not allowed in PO files",
		}
	}

	p := &parser{
		file:    filename,
		dec:     charmap.ISO8859_1.NewDecoder(),
		cur:     &Message{},
		catalog: NewCatalog(),
	}

	// Lines are classified on their raw bytes (the keywords are ASCII)
	// and decoded inside each handler, after any pending commit: the
	// header commit may change the charset the current line decodes with.
	for _, raw := range splitLines(src) {
		p.line++
		if len(bytes.TrimSpace(raw)) == 0 {
			continue
		}

		var err error
		switch {
		case raw[0] == '#':
			err = p.parseComment(raw)
		case bytes.HasPrefix(raw, []byte("msgctxt")):
			err = p.parseCtxt(raw)
		case bytes.HasPrefix(raw, []byte("msgid_plural")):
			err = p.parsePlural(raw)
		case bytes.HasPrefix(raw, []byte("msgid")):
			err = p.parseID(raw)
		case bytes.HasPrefix(raw, []byte("msgstr")):
			err = p.parseStr(raw)
		default:
			err = p.parseContinuation(raw)
		}
		if err != nil {
			return nil, err
		}
	}

	// End-of-input validation: a dangling msgctxt, msgid or msgid_plural
	// is fatal; an open msgstr section commits the final message.
	switch p.sec {
	case secCtxt:
		return nil, p.errf("missing msgid after msgctxt")
	case secID:
		return nil, p.errf("missing msgstr after msgid")
	case secPlural:
		return nil, p.errf("missing msgstr[0] after msgid_plural")
	case secStr:
		if err := p.commit(); err != nil {
			return nil, err
		}
	}

	return p.catalog, nil
}

func (p *parser) errf(format string, args ...any) error {
	return &SyntaxError{File: p.file, Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

// commit adds the in-progress message to the catalog and resets the
// builder. Committing the header entry refines the active charset.
func (p *parser) commit() error {
	if err := p.catalog.Add(p.cur); err != nil {
		return p.errf("%v", err)
	}
	if p.cur.IsHeader() {
		if cs := headerCharset(p.cur.Str); cs != "" {
			enc, err := charsetEncoding(cs)
			if err != nil {
				return p.errf("%v", err)
			}
			p.dec = enc.NewDecoder()
		}
	}
	p.cur = &Message{}
	return nil
}

// decode converts a raw line into a string using the active charset.
func (p *parser) decode(raw []byte) (string, error) {
	line, err := p.dec.String(string(raw))
	if err != nil {
		return "", p.errf("cannot decode line: %v", err)
	}
	return line, nil
}

// quoted parses a keyword line's remainder as a run of quoted strings,
// converting any quoting or escape error into a positioned SyntaxError.
func (p *parser) quoted(rest string) (string, error) {
	s, err := unquote(rest)
	if err != nil {
		return "", p.errf("%v", err)
	}
	return s, nil
}

func (p *parser) parseComment(raw []byte) error {
	if !beforeComment.has(p.sec) {
		return p.errf("comment not allowed after %s", p.sec)
	}
	if p.sec == secStr {
		if err := p.commit(); err != nil {
			return err
		}
	}
	line, err := p.decode(raw)
	if err != nil {
		return err
	}
	if strings.HasPrefix(line, "#,") && hasFuzzyFlag(line[2:]) {
		p.cur.Fuzzy = true
	}
	p.sec = secComment
	return nil
}

// hasFuzzyFlag reports whether a "#," flag list contains the fuzzy token.
func hasFuzzyFlag(flags string) bool {
	for _, f := range strings.Split(flags, ",") {
		if strings.TrimSpace(f) == "fuzzy" {
			return true
		}
	}
	return false
}

func (p *parser) parseCtxt(raw []byte) error {
	if !beforeCtxt.has(p.sec) {
		return p.errf("msgctxt not allowed after %s", p.sec)
	}
	if p.sec == secStr {
		if err := p.commit(); err != nil {
			return err
		}
	}
	line, err := p.decode(raw)
	if err != nil {
		return err
	}
	ctx, err := p.quoted(strings.TrimPrefix(line, "msgctxt"))
	if err != nil {
		return err
	}
	p.cur.Ctx = ctx
	p.cur.HasCtx = true
	p.sec = secCtxt
	return nil
}

func (p *parser) parseID(raw []byte) error {
	if !beforeID.has(p.sec) {
		return p.errf("msgid not allowed after %s", p.sec)
	}
	if p.sec == secStr {
		if err := p.commit(); err != nil {
			return err
		}
	}
	line, err := p.decode(raw)
	if err != nil {
		return err
	}
	id, err := p.quoted(strings.TrimPrefix(line, "msgid"))
	if err != nil {
		return err
	}
	p.cur.ID = id
	p.sec = secID
	return nil
}

func (p *parser) parsePlural(raw []byte) error {
	if p.sec == secNone {
		return p.errf("msgid_plural must be preceded by msgid")
	}
	if p.sec != secID {
		return p.errf("msgid_plural not allowed after %s", p.sec)
	}
	line, err := p.decode(raw)
	if err != nil {
		return err
	}
	plural, err := p.quoted(strings.TrimPrefix(line, "msgid_plural"))
	if err != nil {
		return err
	}
	p.cur.PluralID = plural
	p.cur.Plural = true
	p.sec = secPlural
	return nil
}

func (p *parser) parseStr(raw []byte) error {
	if p.sec == secNone {
		return p.errf("msgstr must be preceded by msgid")
	}
	if !beforeStr.has(p.sec) {
		return p.errf("msgstr not allowed after %s", p.sec)
	}

	line, err := p.decode(raw)
	if err != nil {
		return err
	}
	rest := strings.TrimPrefix(line, "msgstr")
	if strings.HasPrefix(rest, "[") {
		return p.parseIndexedStr(rest)
	}

	// Plain (non-indexed) msgstr.
	if p.cur.Plural {
		return p.errf("indexed msgstr required after msgid_plural")
	}
	if p.sec == secStr {
		return p.errf("msgstr not allowed after msgstr")
	}
	str, err := p.quoted(rest)
	if err != nil {
		return err
	}
	p.cur.Str = str
	p.sec = secStr
	return nil
}

// parseIndexedStr handles msgstr[N]. Indices must run 0, 1, 2, ... with
// no gaps and no reordering.
func (p *parser) parseIndexedStr(rest string) error {
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return p.errf("syntax error: msgstr%s", rest)
	}
	index := 0
	digits := rest[1:end]
	if digits == "" {
		return p.errf("syntax error: msgstr%s", rest)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return p.errf("syntax error: msgstr%s", rest)
		}
		index = index*10 + int(digits[i]-'0')
	}

	if !p.cur.Plural {
		return p.errf("missing msgid_plural section")
	}
	if want := len(p.cur.Strs); index != want {
		return p.errf("plural form has incorrect index, found '%d' but should be '%d'", index, want)
	}

	str, err := p.quoted(rest[end+1:])
	if err != nil {
		return err
	}
	p.cur.Strs = append(p.cur.Strs, str)
	p.sec = secStr
	return nil
}

// parseContinuation handles a bare quoted string line, appended to
// whatever section is currently open.
func (p *parser) parseContinuation(raw []byte) error {
	line, err := p.decode(raw)
	if err != nil {
		return err
	}
	str, err := p.quoted(line)
	if err != nil {
		return err
	}
	switch p.sec {
	case secCtxt:
		p.cur.Ctx += str
	case secID:
		p.cur.ID += str
	case secPlural:
		p.cur.PluralID += str
	case secStr:
		if p.cur.Plural {
			p.cur.Strs[len(p.cur.Strs)-1] += str
		} else {
			p.cur.Str += str
		}
	default:
		return p.errf("string continuation not allowed after %s", p.sec)
	}
	return nil
}

// splitLines splits src on \n, \r\n and lone \r line terminators, without
// including the terminators in the returned lines.
func splitLines(src []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			lines = append(lines, src[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, src[start:i])
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(src) {
		lines = append(lines, src[start:])
	}
	return lines
}
